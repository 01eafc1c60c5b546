package listing

import (
	"time"
)

// TenantField is the column every Where is anchored on.
const TenantField = "tenant_id"

// Predicate is a store-agnostic boolean expression.
// Only the types of this package implement it; stores translate them (see storage/database).
type Predicate interface {
	isPredicate()
}

type (
	// Eq matches rows where Field equals Value.
	Eq struct {
		Field string
		Value interface{}
	}

	// In matches rows where Field equals any of Values.
	In struct {
		Field  string
		Values []interface{}
	}

	// Contains is a case-insensitive substring match.
	Contains struct {
		Field string
		Value string
	}

	// Gte is an inclusive lower bound.
	Gte struct {
		Field string
		Value interface{}
	}

	// Lt is an exclusive upper bound.
	Lt struct {
		Field string
		Value interface{}
	}

	And []Predicate
	Or  []Predicate
)

func (Eq) isPredicate()       {}
func (In) isPredicate()       {}
func (Contains) isPredicate() {}
func (Gte) isPredicate()      {}
func (Lt) isPredicate()       {}
func (And) isPredicate()      {}
func (Or) isPredicate()       {}

// Where is the root of every predicate tree.
// The tenant conjunct is a dedicated field rather than one of Conds, so it cannot be left out or reordered.
type Where struct {
	Tenant Eq
	Conds  []Predicate
}

// NewWhere anchors conds on tenantID. nil conds are dropped.
func NewWhere(tenantID string, conds ...Predicate) Where {
	w := Where{Tenant: Eq{Field: TenantField, Value: tenantID}}
	for _, cond := range conds {
		if cond != nil {
			w.Conds = append(w.Conds, cond)
		}
	}
	return w
}

// Predicates returns the conjuncts of w, tenant first.
func (w Where) Predicates() []Predicate {
	preds := make([]Predicate, 0, len(w.Conds)+1)
	preds = append(preds, w.Tenant)
	return append(preds, w.Conds...)
}

// ScopedTo reports whether w is anchored on tenantID.
func (w Where) ScopedTo(tenantID string) bool {
	if tenantID == "" || w.Tenant.Field != TenantField {
		return false
	}
	id, ok := w.Tenant.Value.(string)
	return ok && id == tenantID
}

// Search expands term to a disjunction of case-insensitive matches over fields.
// It returns nil when term is empty.
func Search(term string, fields ...string) Predicate {
	if term == "" || len(fields) == 0 {
		return nil
	}
	or := make(Or, 0, len(fields))
	for _, fld := range fields {
		or = append(or, Contains{Field: fld, Value: term})
	}
	return or
}

// OneOf returns an Eq for a single value and an In for a list of values.
func OneOf(field string, value interface{}) Predicate {
	switch v := value.(type) {
	case nil:
		return nil
	case []string:
		vals := make([]interface{}, 0, len(v))
		for _, s := range v {
			vals = append(vals, s)
		}
		return In{Field: field, Values: vals}
	default:
		return Eq{Field: field, Value: v}
	}
}

// DateRange bounds field by the inclusive day `from` and the inclusive day `to`.
// The upper bound is exclusive at the start of the day after `to`, so that the whole final day matches
// whatever the store's time resolution.
func DateRange(field string, from, to time.Time) Predicate {
	var and And
	if !from.IsZero() {
		and = append(and, Gte{Field: field, Value: startOfDay(from)})
	}
	if !to.IsZero() {
		and = append(and, Lt{Field: field, Value: startOfDay(to).AddDate(0, 0, 1)})
	}
	if len(and) == 0 {
		return nil
	}
	return and
}

func startOfDay(t time.Time) time.Time {
	t = t.UTC()
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
}
