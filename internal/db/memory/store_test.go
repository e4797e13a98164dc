package memory

import (
	"context"
	"strconv"
	"testing"

	"github.com/sellside/comps/internal/db"
	"github.com/sellside/comps/internal/domain/filter"
)

func saleDoc(id, domainName, tld string, length int, category string) Doc {
	return Doc{
		ID:     id,
		Vector: vectorFor(length),
		Fields: map[string]string{
			"domain":           domainName,
			"tld":              tld,
			"length":           strconv.Itoa(length),
			"primary_category": category,
			"__content":        "Domain: " + domainName + ". Description: a comparable sale.",
		},
	}
}

// vectorFor spreads docs along one axis so nearest-neighbor order is
// deterministic in tests.
func vectorFor(n int) []float32 {
	return []float32{float32(n), 0, 0}
}

func TestSearchKNN_Validation(t *testing.T) {
	s := NewStore(Config{})

	if _, err := s.SearchKNN(context.Background(), &db.KNNQuery{K: 5}); err == nil {
		t.Error("expected error for missing vector")
	}
	if _, err := s.SearchKNN(context.Background(), &db.KNNQuery{Vector: []float32{1}}); err == nil {
		t.Error("expected error for non-positive k")
	}
}

func TestSearchKNN_EmptyStore(t *testing.T) {
	s := NewStore(Config{})

	res, err := s.SearchKNN(context.Background(), &db.KNNQuery{Vector: []float32{1, 0, 0}, K: 5})
	if err != nil {
		t.Fatalf("SearchKNN: %v", err)
	}
	if res.Total != 0 || len(res.Entries) != 0 {
		t.Errorf("empty store: got %+v", res)
	}
}

func TestSearchKNN_RangeFilter(t *testing.T) {
	s := NewStore(Config{})
	s.Add(
		saleDoc("k1", "short.ai", ".ai", 5, "Brandable"),
		saleDoc("k2", "justright.ai", ".ai", 9, "Brandable"),
		saleDoc("k3", "alsoright.io", ".io", 9, "Brandable"),
		saleDoc("k4", "waytoolongname.ai", ".ai", 14, "Brandable"),
	)

	band, _ := filter.NewRange("length", 7, 11)
	res, err := s.SearchKNN(context.Background(), &db.KNNQuery{
		Vector:  vectorFor(9),
		K:       10,
		Filters: filter.And(band),
	})
	if err != nil {
		t.Fatalf("SearchKNN: %v", err)
	}
	if len(res.Entries) != 2 {
		t.Fatalf("band filter: got %d entries, want 2", len(res.Entries))
	}
	for _, e := range res.Entries {
		if e.Key != "k2" && e.Key != "k3" {
			t.Errorf("unexpected hit %s", e.Key)
		}
	}
}

func TestSearchKNN_RangeEdgesInclusive(t *testing.T) {
	s := NewStore(Config{})
	s.Add(
		saleDoc("low-edge", "lowedge.ai", ".ai", 7, "Brandable"),
		saleDoc("high-edge", "highedge.ai", ".ai", 11, "Brandable"),
		saleDoc("below", "below.ai", ".ai", 6, "Brandable"),
		saleDoc("above", "above.ai", ".ai", 12, "Brandable"),
	)

	band, _ := filter.NewRange("length", 7, 11)
	res, err := s.SearchKNN(context.Background(), &db.KNNQuery{
		Vector:  vectorFor(9),
		K:       10,
		Filters: filter.And(band),
	})
	if err != nil {
		t.Fatalf("SearchKNN: %v", err)
	}
	if len(res.Entries) != 2 {
		t.Fatalf("inclusive band: got %d entries, want 2", len(res.Entries))
	}
	for _, e := range res.Entries {
		if e.Key != "low-edge" && e.Key != "high-edge" {
			t.Errorf("unexpected hit %s", e.Key)
		}
	}
}

func TestSearchKNN_InAndOrFilters(t *testing.T) {
	s := NewStore(Config{})
	s.Add(
		saleDoc("k1", "alpha.ai", ".ai", 5, "Brandable"),
		saleDoc("k2", "bravo.io", ".io", 5, "Generic"),
		saleDoc("k3", "charly.com", ".com", 6, "Descriptive"),
	)

	tld, _ := filter.NewIn("tld", ".ai", ".io")
	brand, _ := filter.NewIn("primary_category", "Brandable")
	generic, _ := filter.NewIn("primary_category", "Generic")
	either, _ := filter.NewOr(brand, generic)

	res, err := s.SearchKNN(context.Background(), &db.KNNQuery{
		Vector:  vectorFor(5),
		K:       10,
		Filters: filter.And(tld, either),
	})
	if err != nil {
		t.Fatalf("SearchKNN: %v", err)
	}
	if len(res.Entries) != 2 {
		t.Fatalf("in+or filter: got %d entries, want 2", len(res.Entries))
	}
}

func TestSearchKNN_KLimitAndOrdering(t *testing.T) {
	s := NewStore(Config{})
	for i := 1; i <= 8; i++ {
		s.Add(saleDoc(strconv.Itoa(i), "name.ai", ".ai", i, "Brandable"))
	}

	res, err := s.SearchKNN(context.Background(), &db.KNNQuery{
		Vector: vectorFor(1),
		K:      3,
	})
	if err != nil {
		t.Fatalf("SearchKNN: %v", err)
	}
	if len(res.Entries) != 3 {
		t.Fatalf("k limit: got %d entries, want 3", len(res.Entries))
	}
	for i := 1; i < len(res.Entries); i++ {
		if res.Entries[i-1].Distance > res.Entries[i].Distance {
			t.Errorf("entries not ordered by distance: %v then %v",
				res.Entries[i-1].Distance, res.Entries[i].Distance)
		}
	}
	// The cut must keep the nearest three, never a farther doc in
	// place of a nearer one.
	for i, want := range []string{"1", "2", "3"} {
		if res.Entries[i].Key != want {
			t.Errorf("rank %d: got %s, want %s", i, res.Entries[i].Key, want)
		}
	}
}

func TestSearchKNN_ReturnFieldsProjection(t *testing.T) {
	s := NewStore(Config{})
	s.Add(saleDoc("k1", "alpha.ai", ".ai", 5, "Brandable"))

	res, err := s.SearchKNN(context.Background(), &db.KNNQuery{
		Vector:       vectorFor(5),
		K:            1,
		ReturnFields: []string{"domain"},
	})
	if err != nil {
		t.Fatalf("SearchKNN: %v", err)
	}
	fields := res.Entries[0].Fields
	if len(fields) != 1 || fields["domain"] != "alpha.ai" {
		t.Errorf("projection: got %v", fields)
	}
}
