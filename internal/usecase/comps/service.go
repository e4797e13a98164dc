package comps

import (
	"context"
	"fmt"

	"go.uber.org/zap"

	"github.com/sellside/comps/internal/domain"
	"github.com/sellside/comps/internal/usecase/retrieve"
	"github.com/sellside/comps/internal/usecase/score"
)

// highConfidenceMin is the comparable count at which the result is
// labeled high-confidence.
const highConfidenceMin = 5

// Result is the full pipeline response for one input domain.
type Result struct {
	InputDomain        string                    `json:"input_domain"`
	SLD                string                    `json:"sld"`
	TLD                string                    `json:"tld"`
	Length             int                       `json:"length"`
	PrimaryCategory    string                    `json:"primary_category"`
	SecondaryCategory  string                    `json:"secondary_category"`
	Descriptions       []string                  `json:"descriptions"`
	Comparables        []domain.ScoredComparable `json:"comparables"`
	TotalComparables   int                       `json:"total_comparables"`
	Confidence         string                    `json:"confidence"`
	FallbackEnrichment bool                      `json:"fallback_enrichment,omitempty"`
}

// Service runs the full comparable-sales pipeline: feature extraction,
// enrichment, tiered retrieval, and ranking.
type Service struct {
	enricher Enricher
	retr     Retriever
	scorer   Scorer
	logger   *zap.Logger
}

// New creates the pipeline service.
func New(enricher Enricher, retr Retriever, scorer Scorer, logger *zap.Logger) *Service {
	return &Service{enricher: enricher, retr: retr, scorer: scorer, logger: logger}
}

// Find produces the ranked comparable list for one raw domain name. An
// enrichment failure degrades to a generic default classification so the
// pipeline still returns comparables; a retrieval failure is terminal.
func (s *Service) Find(ctx context.Context, name string) (*Result, error) {
	features := domain.ParseFeatures(name)

	fallback := false
	enr, err := s.enricher.Enrich(ctx, features.SLD+features.TLD)
	if err != nil {
		s.logger.Warn("enrichment failed, using default classification",
			zap.String("domain", name), zap.Error(err))
		enr = defaultEnrichment(features)
		fallback = true
	}

	candidates, err := s.retr.Retrieve(ctx, retrieve.Input{
		Features:          features,
		PrimaryCategory:   enr.PrimaryCategory,
		SecondaryCategory: enr.SecondaryCategory,
		Descriptions:      enr.Descriptions,
	})
	if err != nil {
		return nil, fmt.Errorf("retrieve comparables for %s: %w", name, err)
	}

	comparables := s.scorer.Score(score.Input{
		TLD:               features.TLD,
		PrimaryCategory:   enr.PrimaryCategory,
		SecondaryCategory: enr.SecondaryCategory,
	}, candidates)

	confidence := "low"
	if len(comparables) >= highConfidenceMin {
		confidence = "high"
	}

	return &Result{
		InputDomain:        name,
		SLD:                features.SLD,
		TLD:                features.TLD,
		Length:             features.Length,
		PrimaryCategory:    enr.PrimaryCategory,
		SecondaryCategory:  enr.SecondaryCategory,
		Descriptions:       enr.Descriptions,
		Comparables:        comparables,
		TotalComparables:   len(comparables),
		Confidence:         confidence,
		FallbackEnrichment: fallback,
	}, nil
}

// defaultEnrichment is the conservative classification used when the
// enrichment collaborator is unavailable. Brandable plus Service-based is
// the widest-matching category pair, and the descriptions stay generic so
// the vector queries still land near the input's neighborhood.
func defaultEnrichment(f domain.Features) domain.Enrichment {
	return domain.Enrichment{
		PrimaryCategory:   "Brandable",
		SecondaryCategory: "Service-based",
		Descriptions: []string{
			fmt.Sprintf("A brandable domain name %s suitable for a modern business or startup", f.SLD),
			fmt.Sprintf("The domain %s%s offered for sale on the aftermarket", f.SLD, f.TLD),
		},
	}
}
