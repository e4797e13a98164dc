// Package db defines the backend-agnostic vector store contract. Each
// backend owns its own translation of filter.Predicate into its native
// query language.
package db

import (
	"context"
	"time"

	"github.com/sellside/comps/internal/domain/filter"
)

// Store is the vector store contract. Implementations are read-only from
// the pipeline's point of view and safe for concurrent use.
type Store interface {
	// SearchKNN runs a filtered nearest-neighbor search and returns hits
	// with raw backend distances. Distance semantics are backend-defined;
	// mapping distances into similarity scores is the caller's concern.
	SearchKNN(ctx context.Context, q *KNNQuery) (*SearchResult, error)

	// WaitForReady blocks until the store responds or the timeout expires.
	WaitForReady(ctx context.Context, timeout time.Duration) error

	Close()
}

// KNNQuery is the input for a filtered vector similarity search.
type KNNQuery struct {
	IndexName    string
	Filters      filter.Predicate
	Vector       []float32
	K            int
	ReturnFields []string
}

// SearchResult is the output of a search operation.
type SearchResult struct {
	Total   int
	Entries []SearchEntry
}

// SearchEntry is a single hit: document key, raw distance, stored fields.
type SearchEntry struct {
	Key      string
	Distance float64
	Fields   map[string]string
}
