package domain

import (
	"fmt"
	"sort"
)

// FamilyOther is the sentinel family for suffixes absent from the table.
const FamilyOther = "other"

// Families groups TLD suffixes into named families of mutually
// substitutable comparables. Immutable after construction and safe to share
// across concurrent requests. Filter building and scoring must use the same
// table to avoid drift.
type Families struct {
	names    []string            // sorted, for deterministic iteration
	suffixes map[string][]string // family -> ordered suffix list
	byTLD    map[string]string   // suffix -> family
}

// NewFamilies validates and creates a family table. Every suffix may belong
// to at most one family.
func NewFamilies(table map[string][]string) (Families, error) {
	names := make([]string, 0, len(table))
	for name := range table {
		if name == FamilyOther {
			return Families{}, fmt.Errorf("family name %q is reserved", FamilyOther)
		}
		names = append(names, name)
	}
	sort.Strings(names)

	f := Families{
		names:    names,
		suffixes: make(map[string][]string, len(table)),
		byTLD:    make(map[string]string),
	}
	for _, name := range names {
		for _, tld := range table[name] {
			if prev, ok := f.byTLD[tld]; ok {
				return Families{}, fmt.Errorf("suffix %s belongs to both %s and %s", tld, prev, name)
			}
			f.byTLD[tld] = name
		}
		f.suffixes[name] = append([]string(nil), table[name]...)
	}
	return f, nil
}

// FamilyOf returns the family containing tld, or FamilyOther.
func (f Families) FamilyOf(tld string) string {
	if name, ok := f.byTLD[tld]; ok {
		return name
	}
	return FamilyOther
}

// Suffixes returns the ordered suffix list of a family, or nil for an
// unknown family.
func (f Families) Suffixes(name string) []string {
	return f.suffixes[name]
}

// Names returns the declared family names in sorted order.
func (f Families) Names() []string {
	return f.names
}

// DefaultFamilies returns the built-in family table. Families reflect
// aftermarket price bands and buyer pools: names inside a family are
// treated as substitutable comparables.
func DefaultFamilies() Families {
	f, err := NewFamilies(map[string][]string{
		"legacy_gold":     {".com"},
		"legacy_standard": {".net", ".org", ".info"},
		"tech_elite":      {".ai", ".io"},
		"tech_modern":     {".co", ".app", ".dev", ".tech", ".cloud", ".software"},
		"corporate_id":    {".inc", ".llc", ".ltd", ".biz", ".company", ".corp", ".holdings"},
		"ecommerce":       {".shop", ".store", ".market", ".buy", ".deals", ".solutions", ".services"},
		"niche_premium":   {".bet", ".gg", ".game", ".tv", ".casino", ".poker"},
		"creative":        {".design", ".art", ".media", ".studio", ".agency", ".photography", ".news"},
		"finance_web3":    {".finance", ".money", ".pay", ".crypto", ".cash", ".bank"},
		"geo_tier1":       {".de", ".uk", ".ca", ".au", ".fr", ".nl", ".jp", ".us", ".eu"},
		"geo_tier2":       {".in", ".cn", ".br", ".me", ".sg", ".hk", ".kr", ".it", ".es", ".ch"},
		"generic_modern":  {".xyz", ".online", ".site", ".website", ".space", ".fun", ".life", ".world", ".live", ".digital"},
	})
	if err != nil {
		panic("default family table: " + err.Error())
	}
	return f
}
