package retrieve

import (
	"context"

	"github.com/sellside/comps/internal/domain"
	"github.com/sellside/comps/internal/domain/filter"
)

// Repository runs filtered nearest-neighbor searches against the vector
// store and maps hits into candidates.
type Repository interface {
	SearchKNN(ctx context.Context, vector []float32, pred filter.Predicate, topN int) ([]domain.Candidate, error)
}

// Embedder vectorizes query text. It must use the same embedding model the
// sales index was built with; a mismatched embedding space cannot be
// detected here.
type Embedder interface {
	Embed(ctx context.Context, text string) (domain.EmbeddingResult, error)
}

// Gateway runs one independent nearest-neighbor search per text and
// returns one ranked candidate list per text, in input order. It owns no
// business logic and does not retry.
type Gateway interface {
	Query(ctx context.Context, texts []string, pred filter.Predicate, topN int) ([][]domain.Candidate, error)
}
