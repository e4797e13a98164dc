package domain

// Categories is the fixed category vocabulary for domain classification.
var Categories = []string{
	"Acronym",
	"Brandable",
	"Combination",
	"Descriptive",
	"Exact match",
	"Geo-specific",
	"Generic",
	"Service-based",
	"Niche",
	"Keyword",
	"Product-based",
}

// ValidCategory reports whether s is one of the fixed categories.
func ValidCategory(s string) bool {
	for _, c := range Categories {
		if c == s {
			return true
		}
	}
	return false
}

// Enrichment is the classification and description set produced for an
// input domain by the enrichment collaborator.
type Enrichment struct {
	PrimaryCategory   string   `json:"primary_category"`
	SecondaryCategory string   `json:"secondary_category"`
	Descriptions      []string `json:"descriptions"`
}
