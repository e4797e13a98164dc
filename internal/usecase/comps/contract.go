package comps

import (
	"context"

	"github.com/sellside/comps/internal/domain"
	"github.com/sellside/comps/internal/usecase/retrieve"
	"github.com/sellside/comps/internal/usecase/score"
)

// Enricher classifies an input domain and writes its search descriptions.
type Enricher interface {
	Enrich(ctx context.Context, domainName string) (domain.Enrichment, error)
}

// Retriever finds raw comparable candidates for the enriched input.
type Retriever interface {
	Retrieve(ctx context.Context, in retrieve.Input) ([]domain.Candidate, error)
}

// Scorer ranks raw candidates into the final comparable list.
type Scorer interface {
	Score(in score.Input, candidates []domain.Candidate) []domain.ScoredComparable
}
