// Package comps maps raw vector store hits into domain candidates.
package comps

import (
	"context"
	"fmt"
	"strconv"

	"github.com/sellside/comps/internal/db"
	"github.com/sellside/comps/internal/domain"
	"github.com/sellside/comps/internal/domain/filter"
)

// store is the consumer interface for search operations (ISP).
type store interface {
	SearchKNN(ctx context.Context, q *db.KNNQuery) (*db.SearchResult, error)
}

// Repo implements the retrieval usecase's Repository over a db.Store.
type Repo struct {
	store store
	index string
}

// New creates a comparables repository querying the given index.
func New(s store, index string) *Repo {
	return &Repo{store: s, index: index}
}

// returnFields are the stored fields a candidate is built from.
var returnFields = []string{
	"__content",
	"__vector_score",
	"domain",
	filter.FieldTLD,
	filter.FieldLength,
	filter.FieldPrimaryCategory,
	filter.FieldSecondaryCategory,
	"price",
	"date",
	"platform",
	"desc_index",
}

// SearchKNN runs one filtered nearest-neighbor search and maps hits into
// candidates.
func (r *Repo) SearchKNN(
	ctx context.Context, vector []float32, pred filter.Predicate, topN int,
) ([]domain.Candidate, error) {
	q := &db.KNNQuery{
		IndexName:    r.index,
		Filters:      pred,
		Vector:       vector,
		K:            topN,
		ReturnFields: returnFields,
	}

	sr, err := r.store.SearchKNN(ctx, q)
	if err != nil {
		return nil, fmt.Errorf("search knn %s: %w", r.index, err)
	}

	cands := make([]domain.Candidate, 0, len(sr.Entries))
	for _, e := range sr.Entries {
		cands = append(cands, candidateFromEntry(e))
	}
	return cands, nil
}

// candidateFromEntry parses stored fields leniently: malformed historical
// metadata degrades to zero values rather than failing the request.
func candidateFromEntry(e db.SearchEntry) domain.Candidate {
	f := e.Fields

	descIndex := parseInt(f["desc_index"])
	if descIndex == 0 {
		descIndex = 1
	}

	return domain.Candidate{
		ID:       e.Key,
		Document: f["__content"],
		Distance: e.Distance,
		Metadata: domain.Metadata{
			Domain:            f["domain"],
			TLD:               f[filter.FieldTLD],
			Length:            parseInt(f[filter.FieldLength]),
			Price:             parseFloat(f["price"]),
			Date:              f["date"],
			Platform:          f["platform"],
			PrimaryCategory:   f[filter.FieldPrimaryCategory],
			SecondaryCategory: f[filter.FieldSecondaryCategory],
			DescIndex:         descIndex,
		},
	}
}

func parseInt(s string) int {
	n, _ := strconv.Atoi(s)
	return n
}

func parseFloat(s string) float64 {
	v, _ := strconv.ParseFloat(s, 64)
	return v
}
