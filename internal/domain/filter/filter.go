// Package filter models the backend-agnostic hard-filter predicate applied
// to nearest-neighbor searches. A Predicate is a conjunction of clauses;
// each clause is a numeric range, a set membership, or a disjunction of
// nested clauses. Backends translate the tree into their own query language
// (RediSearch pre-filter string, in-memory evaluator); the tree itself
// carries no backend coupling.
package filter

import "fmt"

// Kind discriminates the clause variants.
type Kind int

const (
	// KindRange is an inclusive numeric range on a field.
	KindRange Kind = iota
	// KindIn is set membership on a field.
	KindIn
	// KindOr is a disjunction of nested clauses.
	KindOr
)

// Predicate is an AND over clauses. Conjunct order carries no semantics;
// backends must treat AND as commutative.
type Predicate struct {
	clauses []Clause
}

// And creates a predicate from clauses combined with AND.
func And(clauses ...Clause) Predicate {
	return Predicate{clauses: clauses}
}

// Clauses returns the conjunct clauses.
func (p Predicate) Clauses() []Clause { return p.clauses }

// IsEmpty reports whether the predicate has no clauses.
func (p Predicate) IsEmpty() bool { return len(p.clauses) == 0 }

// Clause is a single filter node.
type Clause struct {
	kind   Kind
	field  string
	lo, hi float64
	values []string
	nested []Clause
}

// NewRange creates an inclusive numeric range clause lo <= field <= hi.
func NewRange(field string, lo, hi float64) (Clause, error) {
	if field == "" {
		return Clause{}, fmt.Errorf("filter field is required")
	}
	if lo > hi {
		return Clause{}, fmt.Errorf("range low %g exceeds high %g for field %q", lo, hi, field)
	}
	return Clause{kind: KindRange, field: field, lo: lo, hi: hi}, nil
}

// NewIn creates a set membership clause.
func NewIn(field string, values ...string) (Clause, error) {
	if field == "" {
		return Clause{}, fmt.Errorf("filter field is required")
	}
	if len(values) == 0 {
		return Clause{}, fmt.Errorf("at least one value is required for field %q", field)
	}
	return Clause{kind: KindIn, field: field, values: values}, nil
}

// NewOr creates a disjunction of nested clauses.
func NewOr(clauses ...Clause) (Clause, error) {
	if len(clauses) == 0 {
		return Clause{}, fmt.Errorf("at least one clause is required in a disjunction")
	}
	return Clause{kind: KindOr, nested: clauses}, nil
}

// Kind returns the clause variant.
func (c Clause) Kind() Kind { return c.kind }

// Field returns the field name. Empty for KindOr.
func (c Clause) Field() string { return c.field }

// Bounds returns the inclusive range boundaries of a KindRange clause.
func (c Clause) Bounds() (lo, hi float64) { return c.lo, c.hi }

// Values returns the member set of a KindIn clause.
func (c Clause) Values() []string { return c.values }

// Nested returns the nested clauses of a KindOr clause.
func (c Clause) Nested() []Clause { return c.nested }
