package memory

import (
	"errors"
	"slices"
	"strconv"

	"github.com/sellside/comps/internal/domain/filter"
)

var (
	errVectorRequired = errors.New("vector is required")
	errKRequired      = errors.New("k must be positive")
)

// evalPredicate reports whether stored fields satisfy the predicate. This
// is the in-memory counterpart of the RediSearch query translation; both
// must agree on clause semantics.
func evalPredicate(p filter.Predicate, fields map[string]string) bool {
	for _, c := range p.Clauses() {
		if !evalClause(c, fields) {
			return false
		}
	}
	return true
}

func evalClause(c filter.Clause, fields map[string]string) bool {
	switch c.Kind() {
	case filter.KindRange:
		v, err := strconv.ParseFloat(fields[c.Field()], 64)
		if err != nil {
			return false
		}
		lo, hi := c.Bounds()
		return v >= lo && v <= hi
	case filter.KindIn:
		v, ok := fields[c.Field()]
		return ok && slices.Contains(c.Values(), v)
	case filter.KindOr:
		for _, n := range c.Nested() {
			if evalClause(n, fields) {
				return true
			}
		}
		return false
	}
	return false
}
