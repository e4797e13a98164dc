// Package memory implements db.Store over an in-process HNSW graph.
// Intended for tests, local development, and small corpora; the index name
// in queries is ignored since the store holds a single corpus.
package memory

import (
	"context"
	"sort"
	"sync"
	"time"

	"github.com/coder/hnsw"

	"github.com/sellside/comps/internal/db"
)

// Compile-time check: Store implements db.Store.
var _ db.Store = (*Store)(nil)

// Doc is a document to index: vector plus stored fields.
type Doc struct {
	ID     string
	Vector []float32
	Fields map[string]string
}

// Config holds HNSW graph parameters.
type Config struct {
	M        int
	EfSearch int
}

// Store implements db.Store over coder/hnsw with in-memory metadata.
// Predicate filtering happens after the graph search, so KNN is
// oversampled to compensate.
type Store struct {
	mu     sync.RWMutex
	graph  *hnsw.Graph[uint64]
	docs   map[uint64]Doc
	nextID uint64
}

// searchOversample widens the graph search to leave room for post-filtering.
const searchOversample = 4

// NewStore creates an empty in-memory store using Euclidean distance, so
// that reported distances are L2 like the production backend's.
func NewStore(cfg Config) *Store {
	graph := hnsw.NewGraph[uint64]()
	graph.Distance = hnsw.EuclideanDistance
	if cfg.M > 0 {
		graph.M = cfg.M
	}
	if cfg.EfSearch > 0 {
		graph.EfSearch = cfg.EfSearch
	}

	return &Store{
		graph: graph,
		docs:  make(map[uint64]Doc),
	}
}

// Add indexes documents. The corpus is treated as append-only historical
// data; duplicate IDs are not collapsed.
func (s *Store) Add(docs ...Doc) {
	s.mu.Lock()
	defer s.mu.Unlock()

	for _, d := range docs {
		vec := make([]float32, len(d.Vector))
		copy(vec, d.Vector)

		key := s.nextID
		s.nextID++

		s.graph.Add(hnsw.MakeNode(key, vec))
		s.docs[key] = Doc{ID: d.ID, Vector: vec, Fields: d.Fields}
	}
}

// Len returns the number of indexed documents.
func (s *Store) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.docs)
}

// SearchKNN runs a nearest-neighbor search and evaluates the predicate
// over each hit's stored fields.
func (s *Store) SearchKNN(_ context.Context, q *db.KNNQuery) (*db.SearchResult, error) {
	if len(q.Vector) == 0 {
		return nil, &db.Error{Op: db.OpSearch, Err: errVectorRequired}
	}
	if q.K <= 0 {
		return nil, &db.Error{Op: db.OpSearch, Err: errKRequired}
	}

	s.mu.RLock()
	defer s.mu.RUnlock()

	if s.graph.Len() == 0 {
		return &db.SearchResult{}, nil
	}

	nodes := s.graph.Search(q.Vector, q.K*searchOversample)

	// graph.Search does not guarantee rank order, so distances are
	// computed up front and hits sorted before the K cut.
	type hit struct {
		doc  Doc
		dist float64
	}
	hits := make([]hit, 0, len(nodes))
	for _, node := range nodes {
		doc, ok := s.docs[node.Key]
		if !ok {
			continue
		}
		hits = append(hits, hit{
			doc:  doc,
			dist: float64(s.graph.Distance(q.Vector, node.Value)),
		})
	}
	sort.Slice(hits, func(i, j int) bool { return hits[i].dist < hits[j].dist })

	entries := make([]db.SearchEntry, 0, q.K)
	for _, h := range hits {
		if !evalPredicate(q.Filters, h.doc.Fields) {
			continue
		}

		entries = append(entries, db.SearchEntry{
			Key:      h.doc.ID,
			Distance: h.dist,
			Fields:   projectFields(h.doc.Fields, q.ReturnFields),
		})
		if len(entries) == q.K {
			break
		}
	}

	return &db.SearchResult{Total: len(entries), Entries: entries}, nil
}

// WaitForReady is immediate for an in-process store.
func (s *Store) WaitForReady(context.Context, time.Duration) error { return nil }

// Close is a no-op; the graph needs no explicit cleanup.
func (s *Store) Close() {}

func projectFields(fields map[string]string, returnFields []string) map[string]string {
	if len(returnFields) == 0 {
		out := make(map[string]string, len(fields))
		for k, v := range fields {
			out[k] = v
		}
		return out
	}
	out := make(map[string]string, len(returnFields))
	for _, name := range returnFields {
		if v, ok := fields[name]; ok {
			out[name] = v
		}
	}
	return out
}
