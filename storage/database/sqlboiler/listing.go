package boiledrepos

import (
	"context"
	"fmt"
	"strings"

	"github.com/jmoiron/sqlx"
	"github.com/pkg/errors"
	"github.com/volatiletech/sqlboiler/v4/drivers"
	"github.com/volatiletech/sqlboiler/v4/queries"
	"github.com/volatiletech/sqlboiler/v4/queries/qm"
	"github.com/volatiletech/strmangle"

	"github.com/trezcool/tutoria/core/listing"
)

var dialect = drivers.Dialect{
	LQ: '"',
	RQ: '"',

	UseIndexPlaceholders: true,
	UseLastInsertID:      false,
	UseSchema:            false,
	UseDefaultKeyword:    true,
	UseAutoColumns:       false,
	UseTopClause:         false,
	UseOutputClause:      false,
}

type listingStore struct {
	exec sqlx.QueryerContext
}

var _ listing.Store = (*listingStore)(nil) // interface compliance check

// NewListingStore returns the postgres listing.Store. exec is usually a *sqlx.DB.
func NewListingStore(exec sqlx.QueryerContext) *listingStore {
	return &listingStore{exec: exec}
}

func quote(ident string) string {
	return strmangle.IdentQuote(dialect.LQ, dialect.RQ, ident)
}

func newQuery(mods ...qm.QueryMod) *queries.Query {
	q := &queries.Query{}
	queries.SetDialect(q, &dialect)
	qm.Apply(q, mods...)
	return q
}

// whereMods compiles where into one qm.Where per conjunct, tenant first.
func whereMods(where listing.Where) ([]qm.QueryMod, error) {
	preds := where.Predicates()
	mods := make([]qm.QueryMod, 0, len(preds))
	for _, pred := range preds {
		clause, args, err := compile(pred)
		if err != nil {
			return nil, err
		}
		mods = append(mods, qm.Where(clause, args...))
	}
	return mods, nil
}

func compile(pred listing.Predicate) (string, []interface{}, error) {
	switch p := pred.(type) {
	case listing.Eq:
		if p.Value == nil {
			return quote(p.Field) + " IS NULL", nil, nil
		}
		return quote(p.Field) + " = ?", []interface{}{p.Value}, nil
	case listing.In:
		if len(p.Values) == 0 {
			return "FALSE", nil, nil
		}
		marks := strings.TrimSuffix(strings.Repeat("?,", len(p.Values)), ",")
		return fmt.Sprintf("%s IN (%s)", quote(p.Field), marks), p.Values, nil
	case listing.Contains:
		return quote(p.Field) + " ILIKE ?", []interface{}{"%" + escapeLike(p.Value) + "%"}, nil
	case listing.Gte:
		return quote(p.Field) + " >= ?", []interface{}{p.Value}, nil
	case listing.Lt:
		return quote(p.Field) + " < ?", []interface{}{p.Value}, nil
	case listing.And:
		return join(p, " AND ")
	case listing.Or:
		return join(p, " OR ")
	}
	return "", nil, errors.Errorf("unsupported predicate %T", pred)
}

func join(preds []listing.Predicate, sep string) (string, []interface{}, error) {
	if len(preds) == 0 {
		return "TRUE", nil, nil
	}
	clauses := make([]string, 0, len(preds))
	var args []interface{}
	for _, pred := range preds {
		clause, a, err := compile(pred)
		if err != nil {
			return "", nil, err
		}
		clauses = append(clauses, "("+clause+")")
		args = append(args, a...)
	}
	return strings.Join(clauses, sep), args, nil
}

// escapeLike makes the LIKE wildcards of s match literally.
func escapeLike(s string) string {
	return strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`).Replace(s)
}

func orderBy(order listing.OrderClause) qm.QueryMod {
	terms := make([]string, 0, len(order))
	for _, ord := range order {
		terms = append(terms, quote(ord.Field)+" "+ord.Direction())
	}
	return qm.OrderBy(strings.Join(terms, ", "))
}

func (store listingStore) Count(ctx context.Context, entity string, where listing.Where) (int, error) {
	mods, err := whereMods(where)
	if err != nil {
		return 0, errors.Wrap(err, "building count query")
	}
	q := newQuery(append([]qm.QueryMod{qm.From(quote(entity))}, mods...)...)
	queries.SetCount(q)

	query, args := queries.BuildQuery(q)
	var count int
	if err = store.exec.QueryRowxContext(ctx, query, args...).Scan(&count); err != nil {
		return 0, errors.Wrapf(err, "counting %s", entity)
	}
	return count, nil
}

func (store listingStore) Find(ctx context.Context, entity string, where listing.Where, order listing.OrderClause, skip, take int) ([]listing.Row, error) {
	if skip < 0 || take < 0 {
		return nil, errors.Errorf("finding %s: negative offset %d or limit %d", entity, skip, take)
	}
	mods, err := whereMods(where)
	if err != nil {
		return nil, errors.Wrap(err, "building find query")
	}
	mods = append([]qm.QueryMod{qm.From(quote(entity))}, mods...)
	if len(order) > 0 {
		mods = append(mods, orderBy(order))
	}
	mods = append(mods, qm.Limit(take))
	if skip > 0 {
		mods = append(mods, qm.Offset(skip))
	}

	query, args := queries.BuildQuery(newQuery(mods...))
	rows, err := store.exec.QueryxContext(ctx, query, args...)
	if err != nil {
		return nil, errors.Wrapf(err, "querying %s", entity)
	}
	defer func() { _ = rows.Close() }()

	found := make([]listing.Row, 0, take)
	for rows.Next() {
		row := make(map[string]interface{})
		if err = rows.MapScan(row); err != nil {
			return nil, errors.Wrapf(err, "scanning %s", entity)
		}
		found = append(found, row)
	}
	if err = rows.Err(); err != nil {
		return nil, errors.Wrapf(err, "iterating %s", entity)
	}
	return found, nil
}
