package inmemdb

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/trezcool/tutoria/core/listing"
)

const entity = "widgets"

func seed(t *testing.T) *DB {
	t.Helper()
	day := time.Date(2024, 3, 5, 0, 0, 0, 0, time.UTC)
	db := Open()
	require.NoError(t, db.Insert(entity,
		listing.Row{"id": "w-1", "tenant_id": "a", "name": "Alpha", "size": int64(3), "tag": nil, "made_at": day},
		listing.Row{"id": "w-2", "tenant_id": "a", "name": "beta", "size": int64(1), "tag": "x", "made_at": day.Add(23 * time.Hour)},
		listing.Row{"id": "w-3", "tenant_id": "a", "name": "Gamma", "size": int64(2), "tag": "y", "made_at": day.AddDate(0, 0, 1)},
		listing.Row{"id": "w-4", "tenant_id": "b", "name": "Alpha", "size": int64(3), "tag": "x", "made_at": day},
	))
	return db
}

func ids(rows []listing.Row) []string {
	out := make([]string, 0, len(rows))
	for _, row := range rows {
		out = append(out, row.String("id"))
	}
	return out
}

func TestDB_Insert(t *testing.T) {
	db := Open()
	assert.Error(t, db.Insert(entity, listing.Row{"name": "no id"}))

	row := listing.Row{"id": "w-1", "tenant_id": "a", "name": "Alpha"}
	require.NoError(t, db.Insert(entity, row))
	row["name"] = "mutated"

	found, err := db.Find(context.Background(), entity, listing.NewWhere("a"), nil, 0, 10)
	require.NoError(t, err)
	require.Len(t, found, 1)
	assert.Equal(t, "Alpha", found[0].String("name"))

	db.Truncate()
	n, err := db.Count(context.Background(), entity, listing.NewWhere("a"))
	require.NoError(t, err)
	assert.Zero(t, n)
}

func TestDB_Count(t *testing.T) {
	db := seed(t)
	day := time.Date(2024, 3, 5, 0, 0, 0, 0, time.UTC)

	tests := []struct {
		name  string
		where listing.Where
		want  int
	}{
		{name: "tenant only", where: listing.NewWhere("a"), want: 3},
		{name: "other tenant", where: listing.NewWhere("b"), want: 1},
		{name: "unknown tenant", where: listing.NewWhere("c"), want: 0},
		{name: "eq", where: listing.NewWhere("a", listing.Eq{Field: "tag", Value: "x"}), want: 1},
		{name: "eq null", where: listing.NewWhere("a", listing.Eq{Field: "tag", Value: nil}), want: 1},
		{name: "eq int", where: listing.NewWhere("a", listing.Eq{Field: "size", Value: 2}), want: 1},
		{name: "in", where: listing.NewWhere("a", listing.OneOf("tag", []string{"x", "y"})), want: 2},
		{name: "empty in", where: listing.NewWhere("a", listing.In{Field: "tag"}), want: 0},
		{name: "search is case-insensitive", where: listing.NewWhere("a", listing.Search("ALP", "name", "tag")), want: 1},
		{name: "search skips nulls", where: listing.NewWhere("a", listing.Search("x", "tag")), want: 1},
		{name: "whole day", where: listing.NewWhere("a", listing.DateRange("made_at", day, day)), want: 2},
		{name: "from only", where: listing.NewWhere("a", listing.DateRange("made_at", day.AddDate(0, 0, 1), time.Time{})), want: 1},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			n, err := db.Count(context.Background(), entity, tt.where)
			require.NoError(t, err)
			assert.Equal(t, tt.want, n)
		})
	}
}

func TestDB_Find(t *testing.T) {
	db := seed(t)
	where := listing.NewWhere("a")

	tests := []struct {
		name       string
		order      listing.OrderClause
		skip, take int
		want       []string
	}{
		{name: "asc", order: listing.OrderClause{{Field: "size", Ascending: true}}, take: 10, want: []string{"w-2", "w-3", "w-1"}},
		{name: "desc", order: listing.OrderClause{{Field: "made_at"}}, take: 10, want: []string{"w-3", "w-2", "w-1"}},
		{name: "nulls last asc", order: listing.OrderClause{{Field: "tag", Ascending: true}}, take: 10, want: []string{"w-2", "w-3", "w-1"}},
		{name: "nulls first desc", order: listing.OrderClause{{Field: "tag"}}, take: 10, want: []string{"w-1", "w-3", "w-2"}},
		{name: "tiebreaker", order: listing.OrderClause{{Field: "tenant_id"}, {Field: "id", Ascending: true}}, take: 10, want: []string{"w-1", "w-2", "w-3"}},
		{name: "page", order: listing.OrderClause{{Field: "id", Ascending: true}}, skip: 1, take: 1, want: []string{"w-2"}},
		{name: "past the end", order: listing.OrderClause{{Field: "id", Ascending: true}}, skip: 3, take: 1, want: []string{}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rows, err := db.Find(context.Background(), entity, where, tt.order, tt.skip, tt.take)
			require.NoError(t, err)
			assert.Equal(t, tt.want, ids(rows))
		})
	}
}

type unknownPredicate struct{ listing.Predicate }

func TestDB_errors(t *testing.T) {
	db := seed(t)
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := db.Count(ctx, entity, listing.NewWhere("a"))
	assert.Equal(t, context.Canceled, err)
	_, err = db.Find(ctx, entity, listing.NewWhere("a"), nil, 0, 10)
	assert.Equal(t, context.Canceled, err)

	_, err = db.Count(context.Background(), entity, listing.NewWhere("a", unknownPredicate{}))
	assert.Error(t, err)

	_, err = db.Find(context.Background(), entity, listing.NewWhere("a"), nil, -4611686018427387904, 3)
	assert.Error(t, err)
}
