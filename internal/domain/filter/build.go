package filter

import "github.com/sellside/comps/internal/domain"

// Metadata field names shared by all store backends.
const (
	FieldLength            = "length"
	FieldTLD               = "tld"
	FieldPrimaryCategory   = "primary_category"
	FieldSecondaryCategory = "secondary_category"
)

// Input carries the domain attributes the hard-filter predicate is
// compiled from.
type Input struct {
	TLD               string
	Length            int
	PrimaryCategory   string
	SecondaryCategory string
	LengthBand        int
	IncludeTLD        bool
}

// Build compiles domain attributes into the hard-filter predicate:
// a length band, a category-overlap disjunction, and, when IncludeTLD is
// set, a TLD family clause. The category clause is deliberately
// permissive (any overlap between the candidate's two category slots and
// the input's two); precision is enforced later by scoring. A suffix
// outside every declared family degrades to an exact-match singleton so
// thin comparable pools still compete.
func Build(in Input, families domain.Families) Predicate {
	lengthClause, _ := NewRange(FieldLength,
		float64(in.Length-in.LengthBand), float64(in.Length+in.LengthBand))

	cats := []string{in.PrimaryCategory, in.SecondaryCategory}
	primaryIn, _ := NewIn(FieldPrimaryCategory, cats...)
	secondaryIn, _ := NewIn(FieldSecondaryCategory, cats...)
	categoryClause, _ := NewOr(primaryIn, secondaryIn)

	clauses := []Clause{lengthClause, categoryClause}

	if in.IncludeTLD {
		var tldClause Clause
		if fam := families.FamilyOf(in.TLD); fam == domain.FamilyOther {
			tldClause, _ = NewIn(FieldTLD, in.TLD)
		} else {
			tldClause, _ = NewIn(FieldTLD, families.Suffixes(fam)...)
		}
		clauses = append(clauses, tldClause)
	}

	return And(clauses...)
}
