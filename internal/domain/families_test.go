package domain

import "testing"

func TestDefaultFamilies_KnownSuffixes(t *testing.T) {
	f := DefaultFamilies()

	tests := []struct {
		tld  string
		want string
	}{
		{".com", "legacy_gold"},
		{".net", "legacy_standard"},
		{".ai", "tech_elite"},
		{".io", "tech_elite"},
		{".shop", "ecommerce"},
		{".de", "geo_tier1"},
		{".xyz", "generic_modern"},
		{".example", FamilyOther},
	}
	for _, tt := range tests {
		if got := f.FamilyOf(tt.tld); got != tt.want {
			t.Errorf("FamilyOf(%q): got %q, want %q", tt.tld, got, tt.want)
		}
	}
}

func TestFamilies_SuffixesSameFamily(t *testing.T) {
	f := DefaultFamilies()

	suffixes := f.Suffixes("tech_elite")
	if len(suffixes) != 2 {
		t.Fatalf("tech_elite suffixes: got %v", suffixes)
	}
	for _, s := range suffixes {
		if f.FamilyOf(s) != "tech_elite" {
			t.Errorf("suffix %q does not round-trip to tech_elite", s)
		}
	}
}

func TestNewFamilies_DuplicateSuffix(t *testing.T) {
	_, err := NewFamilies(map[string][]string{
		"a": {".com"},
		"b": {".com"},
	})
	if err == nil {
		t.Fatal("expected error for duplicate suffix")
	}
}

func TestNewFamilies_ReservedName(t *testing.T) {
	_, err := NewFamilies(map[string][]string{
		FamilyOther: {".com"},
	})
	if err == nil {
		t.Fatal("expected error for reserved family name")
	}
}

func TestFamilies_NamesSorted(t *testing.T) {
	f := DefaultFamilies()
	names := f.Names()
	for i := 1; i < len(names); i++ {
		if names[i-1] >= names[i] {
			t.Fatalf("names not sorted: %v", names)
		}
	}
}
