package retrieve

import (
	"context"
	"fmt"

	"golang.org/x/sync/errgroup"

	"github.com/sellside/comps/internal/domain"
	"github.com/sellside/comps/internal/domain/filter"
)

// KNNGateway implements Gateway by embedding each text and delegating to
// the store repository. Any backend failure propagates wrapped in
// domain.ErrRetrieval.
type KNNGateway struct {
	repo  Repository
	embed Embedder
}

// NewGateway creates a vector query gateway.
func NewGateway(repo Repository, embed Embedder) *KNNGateway {
	return &KNNGateway{repo: repo, embed: embed}
}

// Query searches per text. The per-text searches are independent and
// read-only, so they fan out concurrently; results slot back by input
// index to keep output ordering deterministic.
func (g *KNNGateway) Query(
	ctx context.Context, texts []string, pred filter.Predicate, topN int,
) ([][]domain.Candidate, error) {
	results := make([][]domain.Candidate, len(texts))

	eg, ctx := errgroup.WithContext(ctx)
	for i, text := range texts {
		eg.Go(func() error {
			emb, err := g.embed.Embed(ctx, text)
			if err != nil {
				return fmt.Errorf("%w: embed query %d: %w", domain.ErrRetrieval, i+1, err)
			}

			cands, err := g.repo.SearchKNN(ctx, emb.Embedding, pred, topN)
			if err != nil {
				return fmt.Errorf("%w: query %d: %w", domain.ErrRetrieval, i+1, err)
			}

			results[i] = cands
			return nil
		})
	}
	if err := eg.Wait(); err != nil {
		return nil, err
	}

	return results, nil
}
