package domain

// Metadata is the stored attribute set of an indexed domain sale.
type Metadata struct {
	Domain            string  `json:"domain"`
	TLD               string  `json:"tld"`
	Length            int     `json:"length"`
	Price             float64 `json:"price"`
	Date              string  `json:"date"`
	Platform          string  `json:"platform"`
	PrimaryCategory   string  `json:"primary_category"`
	SecondaryCategory string  `json:"secondary_category"`
	DescIndex         int     `json:"desc_index"`
}

// Candidate is a single nearest-neighbor hit from the vector store.
// Candidates are transient: created per query attempt and fully replaced
// when the fallback retry triggers. QueryIndex records which input
// description produced the hit (1-based); it is attached by the retriever,
// not the store.
type Candidate struct {
	ID         string
	Document   string
	Distance   float64
	Metadata   Metadata
	QueryIndex int
}

// ScoredComparable is the terminal, ranked representation of a comparable
// sale handed to the caller. Deduplicated per domain: only the
// highest-scoring instance survives.
type ScoredComparable struct {
	Domain            string  `json:"domain"`
	Price             float64 `json:"price"`
	Date              string  `json:"date"`
	Platform          string  `json:"platform"`
	PrimaryCategory   string  `json:"primary_category"`
	SecondaryCategory string  `json:"secondary_category"`
	Description       string  `json:"description"`
	SemanticSim       float64 `json:"semantic_sim"`
	CategoryMatch     float64 `json:"cat_match"`
	TLDMatch          float64 `json:"tld_match"`
	Recency           float64 `json:"recency"`
	Score             float64 `json:"score"`
	DescIndex         int     `json:"desc_index"`
	QueryIndex        int     `json:"query_index"`
}
