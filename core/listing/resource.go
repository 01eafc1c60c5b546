package listing

import (
	"context"
)

// Resource isolates everything a list endpoint knows about one entity.
// The engine never touches a store row except through these methods.
type Resource interface {
	// Key identifies the resource in the Registry. It is chosen by server code, never by clients.
	Key() string
	// Entity names the store entity (table) holding the rows.
	Entity() string
	Contract() Contract

	// BuildWhere must start from NewWhere(c.TenantID, ...).
	BuildWhere(c Criteria) Where
	// BuildOrderBy must end with a unique tiebreaker (see NewOrder).
	BuildOrderBy(s Sort) OrderClause
	// MapRow selects the fields the API may expose. It must never return the Row itself.
	MapRow(row Row) interface{}
	// Columns is the export manifest. Values receive rows returned by MapRow.
	Columns() []Column
}

// Criteria is what a Resource needs to build its Where.
type Criteria struct {
	TenantID string
	Search   string // empty when absent
	Filters  Filters
}

// Store is the count & find capability the engine runs against.
type Store interface {
	Count(ctx context.Context, entity string, where Where) (int, error)
	Find(ctx context.Context, entity string, where Where, order OrderClause, skip, take int) ([]Row, error)
}
