package comps

import (
	"context"
	"errors"
	"testing"

	"github.com/sellside/comps/internal/db"
	"github.com/sellside/comps/internal/domain/filter"
)

type mockStore struct {
	result    *db.SearchResult
	err       error
	lastQuery *db.KNNQuery
}

func (m *mockStore) SearchKNN(_ context.Context, q *db.KNNQuery) (*db.SearchResult, error) {
	m.lastQuery = q
	return m.result, m.err
}

func TestSearchKNN_QueryShape(t *testing.T) {
	st := &mockStore{result: &db.SearchResult{}}
	repo := New(st, "idx:domain_embeddings")

	band, _ := filter.NewRange("length", 7, 11)
	_, err := repo.SearchKNN(context.Background(), []float32{1, 2}, filter.And(band), 50)
	if err != nil {
		t.Fatalf("SearchKNN: %v", err)
	}

	q := st.lastQuery
	if q.IndexName != "idx:domain_embeddings" {
		t.Errorf("index: got %q", q.IndexName)
	}
	if q.K != 50 {
		t.Errorf("k: got %d, want 50", q.K)
	}
	if len(q.ReturnFields) == 0 {
		t.Error("return fields not set")
	}
}

func TestSearchKNN_ErrorWrapped(t *testing.T) {
	sentinel := errors.New("connection reset")
	repo := New(&mockStore{err: sentinel}, "idx")

	_, err := repo.SearchKNN(context.Background(), []float32{1}, filter.And(), 10)
	if !errors.Is(err, sentinel) {
		t.Fatalf("expected wrapped store error, got %v", err)
	}
}

func TestSearchKNN_CandidateMapping(t *testing.T) {
	st := &mockStore{result: &db.SearchResult{
		Total: 1,
		Entries: []db.SearchEntry{{
			Key:      "sale:42",
			Distance: 0.25,
			Fields: map[string]string{
				"__content":          "Domain: brand.ai. Description: a startup brand.",
				"domain":             "brand.ai",
				"tld":                ".ai",
				"length":             "5",
				"price":              "12500.50",
				"date":               "2026-03-01",
				"platform":           "GoDaddy",
				"primary_category":   "Brandable",
				"secondary_category": "Service-based",
				"desc_index":         "2",
			},
		}},
	}}
	repo := New(st, "idx")

	cands, err := repo.SearchKNN(context.Background(), []float32{1}, filter.And(), 10)
	if err != nil {
		t.Fatalf("SearchKNN: %v", err)
	}
	if len(cands) != 1 {
		t.Fatalf("candidates: got %d, want 1", len(cands))
	}

	c := cands[0]
	if c.ID != "sale:42" || c.Distance != 0.25 {
		t.Errorf("identity: got %+v", c)
	}
	m := c.Metadata
	if m.Domain != "brand.ai" || m.TLD != ".ai" || m.Length != 5 {
		t.Errorf("metadata: got %+v", m)
	}
	if m.Price != 12500.50 || m.Platform != "GoDaddy" || m.Date != "2026-03-01" {
		t.Errorf("sale fields: got %+v", m)
	}
	if m.DescIndex != 2 {
		t.Errorf("desc_index: got %d, want 2", m.DescIndex)
	}
}

func TestSearchKNN_MalformedFieldsDegrade(t *testing.T) {
	st := &mockStore{result: &db.SearchResult{
		Total: 1,
		Entries: []db.SearchEntry{{
			Key: "sale:1",
			Fields: map[string]string{
				"domain": "brand.ai",
				"length": "not-a-number",
				"price":  "",
			},
		}},
	}}
	repo := New(st, "idx")

	cands, err := repo.SearchKNN(context.Background(), []float32{1}, filter.And(), 10)
	if err != nil {
		t.Fatalf("SearchKNN: %v", err)
	}

	m := cands[0].Metadata
	if m.Length != 0 || m.Price != 0 {
		t.Errorf("malformed numerics should zero out, got %+v", m)
	}
	if m.DescIndex != 1 {
		t.Errorf("missing desc_index should default to 1, got %d", m.DescIndex)
	}
}
