package score

import (
	"math"
	"sort"
	"time"

	"go.uber.org/zap"

	"github.com/sellside/comps/internal/domain"
)

// Weights splits the composite score across its three components. The
// three weights are expected to sum to 1.
type Weights struct {
	Semantic float64
	Category float64
	Recency  float64
}

// RecencyBand maps a maximum sale age to a recency weight. Bands are
// evaluated in order; the first band whose MaxAgeDays covers the sale age
// wins.
type RecencyBand struct {
	MaxAgeDays int
	Weight     float64
}

// Config holds ranking tuning.
type Config struct {
	Weights      Weights
	MinScore     float64
	TopK         int
	RecencyBands []RecencyBand
	OldestWeight float64
}

// DefaultRecencyBands returns the standard sale-age decay schedule.
func DefaultRecencyBands() []RecencyBand {
	return []RecencyBand{
		{MaxAgeDays: 90, Weight: 1.0},
		{MaxAgeDays: 180, Weight: 0.9},
		{MaxAgeDays: 365, Weight: 0.8},
		{MaxAgeDays: 730, Weight: 0.6},
	}
}

// neutralRecency is assigned when the sale date cannot be parsed. It sits
// mid-schedule so unparsable dates neither sink nor float a candidate.
const neutralRecency = 0.5

// compatiblePairs lists unordered category pairs close enough to count as
// a partial match. Symmetric by construction: both orientations are keyed.
var compatiblePairs = map[[2]string]bool{}

func init() {
	pairs := [][2]string{
		{"Brandable", "Generic"},
		{"Descriptive", "Keyword"},
		{"Service-based", "Product-based"},
		{"Niche", "Generic"},
	}
	for _, p := range pairs {
		compatiblePairs[[2]string{p[0], p[1]}] = true
		compatiblePairs[[2]string{p[1], p[0]}] = true
	}
}

// saleDateLayouts are tried in order when parsing candidate sale dates.
var saleDateLayouts = []string{
	time.RFC3339,
	"2006-01-02T15:04:05",
	"2006-01-02",
}

// Input carries the target-domain attributes candidates are ranked
// against.
type Input struct {
	TLD               string
	PrimaryCategory   string
	SecondaryCategory string
}

// Service scores, deduplicates, and ranks retrieval candidates.
type Service struct {
	cfg      Config
	families domain.Families
	logger   *zap.Logger
	now      func() time.Time
}

// New creates the ranking engine.
func New(cfg Config, families domain.Families, logger *zap.Logger) *Service {
	return &Service{cfg: cfg, families: families, logger: logger, now: time.Now}
}

// WithClock overrides the wall clock used for recency. Test hook.
func (s *Service) WithClock(now func() time.Time) *Service {
	s.now = now
	return s
}

// Score converts raw candidates into the final ranked comparable list:
// per-candidate composite scores, a minimum-score cut, dedup per domain
// keeping the best instance, then a stable descending sort truncated to
// the top K.
func (s *Service) Score(in Input, candidates []domain.Candidate) []domain.ScoredComparable {
	scored := make([]domain.ScoredComparable, 0, len(candidates))
	for _, c := range candidates {
		sc := s.scoreOne(in, c)
		if sc.Score >= s.cfg.MinScore {
			scored = append(scored, sc)
		}
	}

	scored = dedupeByDomain(scored)

	sort.SliceStable(scored, func(i, j int) bool {
		return scored[i].Score > scored[j].Score
	})

	if s.cfg.TopK > 0 && len(scored) > s.cfg.TopK {
		scored = scored[:s.cfg.TopK]
	}
	return scored
}

func (s *Service) scoreOne(in Input, c domain.Candidate) domain.ScoredComparable {
	description, ok := extractDescription(c.Document)
	if !ok {
		s.logger.Debug("candidate document has no description marker",
			zap.String("domain", c.Metadata.Domain))
	}

	semantic := round(semanticSimilarity(c.Distance), 4)
	category := round(s.categoryMatch(in, c.Metadata), 2)
	tld := round(s.tldMatch(in.TLD, c.Metadata.TLD), 2)
	recency := round(s.recencyWeight(c.Metadata.Date), 2)

	w := s.cfg.Weights
	score := round(w.Semantic*semantic+w.Category*category+w.Recency*recency, 4)

	return domain.ScoredComparable{
		Domain:            c.Metadata.Domain,
		Price:             c.Metadata.Price,
		Date:              c.Metadata.Date,
		Platform:          c.Metadata.Platform,
		PrimaryCategory:   c.Metadata.PrimaryCategory,
		SecondaryCategory: c.Metadata.SecondaryCategory,
		Description:       description,
		SemanticSim:       semantic,
		CategoryMatch:     category,
		TLDMatch:          tld,
		Recency:           recency,
		Score:             score,
		DescIndex:         c.Metadata.DescIndex,
		QueryIndex:        c.QueryIndex,
	}
}

// semanticSimilarity converts a raw vector distance into (0, 1]. Negative
// distances indicate a store that reported similarity on an unexpected
// scale; those collapse to a neutral 0.5.
func semanticSimilarity(distance float64) float64 {
	if distance < 0 {
		return 0.5
	}
	return 1 / (1 + distance)
}

// categoryMatch grades category alignment on the fixed ladder: exact
// primary match, crossed primary/secondary match, compatible-pair match,
// nothing.
func (s *Service) categoryMatch(in Input, m domain.Metadata) float64 {
	switch {
	case m.PrimaryCategory == in.PrimaryCategory:
		return 1.0
	case m.PrimaryCategory == in.SecondaryCategory || m.SecondaryCategory == in.PrimaryCategory:
		return 0.7
	case compatiblePairs[[2]string{m.PrimaryCategory, in.PrimaryCategory}]:
		return 0.5
	default:
		return 0.0
	}
}

// tldMatch grades suffix alignment: exact suffix, same family, candidate
// holds .com while the input's family covers it, nothing. Informational
// only; it is reported on each comparable but carries no score weight.
func (s *Service) tldMatch(inputTLD, candidateTLD string) float64 {
	switch {
	case candidateTLD == inputTLD:
		return 1.0
	case s.families.FamilyOf(candidateTLD) != domain.FamilyOther &&
		s.families.FamilyOf(candidateTLD) == s.families.FamilyOf(inputTLD):
		return 0.7
	case candidateTLD == ".com" && s.families.FamilyOf(".com") == s.families.FamilyOf(inputTLD):
		return 0.3
	default:
		return 0.0
	}
}

// recencyWeight maps sale age onto the configured band schedule. An
// unparsable date gets the neutral weight.
func (s *Service) recencyWeight(date string) float64 {
	var saleDate time.Time
	var err error
	for _, layout := range saleDateLayouts {
		if saleDate, err = time.Parse(layout, date); err == nil {
			break
		}
	}
	if err != nil {
		return neutralRecency
	}

	ageDays := int(s.now().Sub(saleDate).Hours() / 24)
	for _, band := range s.cfg.RecencyBands {
		if ageDays < band.MaxAgeDays {
			return band.Weight
		}
	}
	return s.cfg.OldestWeight
}

// dedupeByDomain keeps the highest-scoring instance per domain, preserving
// first-encounter order so the later stable sort breaks score ties by
// encounter order.
func dedupeByDomain(scored []domain.ScoredComparable) []domain.ScoredComparable {
	seen := make(map[string]int, len(scored))
	out := make([]domain.ScoredComparable, 0, len(scored))
	for _, sc := range scored {
		if i, ok := seen[sc.Domain]; ok {
			if sc.Score > out[i].Score {
				out[i] = sc
			}
			continue
		}
		seen[sc.Domain] = len(out)
		out = append(out, sc)
	}
	return out
}

func round(v float64, places int) float64 {
	p := math.Pow10(places)
	return math.Round(v*p) / p
}
