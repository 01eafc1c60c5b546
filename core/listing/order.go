package listing

import (
	"sort"

	"github.com/trezcool/tutoria/core"
)

// OrderClause is a list of ordering terms, applied in order.
type OrderClause []core.DBOrdering

// By returns the ordering term of field in direction dir.
func By(field string, dir Direction) core.DBOrdering {
	return core.DBOrdering{Field: field, Ascending: dir != Desc}
}

// NewOrder returns terms followed by the ascending tiebreaker (a unique column).
// Without it, rows tied on the requested fields could swap places between two page fetches.
// The tiebreaker is not repeated when terms already end with it.
func NewOrder(tiebreaker string, terms ...core.DBOrdering) OrderClause {
	order := make(OrderClause, 0, len(terms)+1)
	order = append(order, terms...)
	if last, ok := order.Tiebreaker(); ok && last.Field == tiebreaker {
		return order
	}
	return append(order, core.DBOrdering{Field: tiebreaker, Ascending: true})
}

// Tiebreaker returns the last term of the clause.
func (o OrderClause) Tiebreaker() (core.DBOrdering, bool) {
	if len(o) == 0 {
		return core.DBOrdering{}, false
	}
	return o[len(o)-1], true
}

// SortColumns maps each sortable API field of a resource to its store column(s).
type SortColumns map[string][]string

// Fields returns the sortable fields, sorted.
func (sc SortColumns) Fields() []string {
	fields := make([]string, 0, len(sc))
	for fld := range sc {
		fields = append(fields, fld)
	}
	sort.Strings(fields)
	return fields
}

// Order maps s to its columns, all in s.Dir, then the tiebreaker.
func (sc SortColumns) Order(s Sort, tiebreaker string) OrderClause {
	cols := sc[s.Field]
	terms := make([]core.DBOrdering, 0, len(cols))
	for _, col := range cols {
		terms = append(terms, By(col, s.Dir))
	}
	return NewOrder(tiebreaker, terms...)
}
