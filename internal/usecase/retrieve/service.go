package retrieve

import (
	"context"
	"strings"

	"go.uber.org/zap"

	"github.com/sellside/comps/internal/domain"
	"github.com/sellside/comps/internal/domain/filter"
	"github.com/sellside/comps/internal/metrics"
)

// Config holds retrieval tuning.
type Config struct {
	ResultsPerQuery  int
	LengthBand       int
	TLDFallback      bool
	MinResults       int
	NumericFilter    bool
	NumericThreshold float64
}

// Input is one retrieval request.
type Input struct {
	Features          domain.Features
	PrimaryCategory   string
	SecondaryCategory string
	Descriptions      []string
}

// Service is the tiered retriever: one gateway query per description with
// the strict predicate, and a single widen-and-retry without the TLD
// clause when the strict search starves below the minimum. It does not
// rank or deduplicate.
type Service struct {
	gw       Gateway
	families domain.Families
	cfg      Config
	logger   *zap.Logger
}

// New creates the tiered retriever.
func New(gw Gateway, families domain.Families, cfg Config, logger *zap.Logger) *Service {
	return &Service{gw: gw, families: families, cfg: cfg, logger: logger}
}

// Retrieve returns a flat candidate list grouped by description index,
// then by the store's native rank within each description. A retrieval
// error from either attempt is terminal.
func (s *Service) Retrieve(ctx context.Context, in Input) ([]domain.Candidate, error) {
	queries := cleanQueries(in.Descriptions)
	if len(queries) == 0 {
		return nil, nil
	}

	cands, err := s.attempt(ctx, in, queries, true)
	if err != nil {
		return nil, err
	}

	if s.cfg.TLDFallback && len(cands) < s.cfg.MinResults {
		s.logger.Info("widening search: strict TLD filter starved the result set",
			zap.String("tld", in.Features.TLD),
			zap.String("family", s.families.FamilyOf(in.Features.TLD)),
			zap.Int("results", len(cands)),
			zap.Int("min_results", s.cfg.MinResults),
		)
		metrics.RetrievalFallbackTotal.Inc()

		// The strict attempt's candidates are discarded, not merged.
		cands, err = s.attempt(ctx, in, queries, false)
		if err != nil {
			return nil, err
		}
	}

	metrics.RetrievalCandidates.Observe(float64(len(cands)))
	return cands, nil
}

func (s *Service) attempt(
	ctx context.Context, in Input, queries []string, includeTLD bool,
) ([]domain.Candidate, error) {
	label := "strict"
	if !includeTLD {
		label = "widened"
	}
	metrics.RetrievalQueriesTotal.WithLabelValues(label).Inc()

	pred := filter.Build(filter.Input{
		TLD:               in.Features.TLD,
		Length:            in.Features.Length,
		PrimaryCategory:   in.PrimaryCategory,
		SecondaryCategory: in.SecondaryCategory,
		LengthBand:        s.cfg.LengthBand,
		IncludeTLD:        includeTLD,
	}, s.families)

	perQuery, err := s.gw.Query(ctx, queries, pred, s.cfg.ResultsPerQuery)
	if err != nil {
		return nil, err
	}

	var all []domain.Candidate
	for i, cands := range perQuery {
		for _, c := range cands {
			c.QueryIndex = i + 1
			all = append(all, c)
		}
	}

	if s.cfg.NumericFilter {
		all = filterNumeric(all, in.Features.HasNumbers, s.cfg.NumericThreshold)
	}
	return all, nil
}

func cleanQueries(descriptions []string) []string {
	queries := make([]string, 0, len(descriptions))
	for _, d := range descriptions {
		if cleaned := strings.TrimSpace(d); cleaned != "" {
			queries = append(queries, cleaned)
		}
	}
	return queries
}
