package listing_test

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/trezcool/tutoria/core"
	"github.com/trezcool/tutoria/core/listing"
	"github.com/trezcool/tutoria/storage/database/inmem"
)

type widget struct {
	ID        string    `json:"id"`
	Name      string    `json:"name"`
	Status    string    `json:"status"`
	CreatedAt time.Time `json:"createdAt"`
}

var widgetSorts = listing.SortColumns{
	"name":      {"name"},
	"createdAt": {"created_at"},
}

// widgetResource scopes its Where to tenantOverride when set.
type widgetResource struct {
	exportCap      int
	tenantOverride string
}

func (r widgetResource) Key() string    { return "widgets" }
func (r widgetResource) Entity() string { return "widgets" }

func (r widgetResource) Contract() listing.Contract {
	exportCap := r.exportCap
	if exportCap == 0 {
		exportCap = listing.MaxExportRows
	}
	return listing.Contract{
		AllowedSortFields: widgetSorts.Fields(),
		DefaultSort:       listing.Sort{Field: "createdAt", Dir: listing.Desc},
		DefaultPageSize:   listing.DefaultPageSize,
		MaxPageSize:       listing.MaxPageSize,
		MaxExportRows:     exportCap,
		Filters: listing.FilterSchema{
			"status": listing.EnumFilter("ON", "OFF"),
		}.WithDateRange(),
	}
}

func (r widgetResource) BuildWhere(c listing.Criteria) listing.Where {
	tenantID := c.TenantID
	if r.tenantOverride != "" {
		tenantID = r.tenantOverride
	}
	return listing.NewWhere(tenantID,
		listing.Search(c.Search, "name"),
		listing.OneOf("status", c.Filters["status"]),
		c.Filters.DateRange("created_at"),
	)
}

func (r widgetResource) BuildOrderBy(s listing.Sort) listing.OrderClause {
	return widgetSorts.Order(s, "id")
}

func (r widgetResource) MapRow(row listing.Row) interface{} {
	return widget{
		ID:        row.String("id"),
		Name:      row.String("name"),
		Status:    row.String("status"),
		CreatedAt: row.Time("created_at"),
	}
}

func (r widgetResource) Columns() []listing.Column {
	return []listing.Column{
		{Header: "ID", Value: func(row interface{}) string { return row.(widget).ID }},
		{Header: "Name", Value: func(row interface{}) string { return row.(widget).Name }},
	}
}

var day0 = time.Date(2024, 1, 10, 0, 0, 0, 0, time.UTC)

func insertWidget(t *testing.T, db *inmemdb.DB, tenantID, id, name, status string, createdAt time.Time) {
	t.Helper()
	err := db.Insert("widgets", listing.Row{
		"id":         id,
		"tenant_id":  tenantID,
		"name":       name,
		"status":     status,
		"created_at": createdAt,
		"secret":     "do not leak",
	})
	require.NoError(t, err)
}

func widgetIDs(rows []interface{}) []string {
	ids := make([]string, 0, len(rows))
	for _, row := range rows {
		ids = append(ids, row.(widget).ID)
	}
	return ids
}

func TestExecutor_Execute_paginationIsDeterministic(t *testing.T) {
	db := inmemdb.Open()
	// all created at the same instant: only the tiebreaker orders them
	for _, id := range []string{"w5", "w2", "w7", "w1", "w4", "w6", "w3"} {
		insertWidget(t, db, "t1", id, "same", "ON", day0)
	}
	ex := listing.NewExecutor(db)
	res := widgetResource{}

	var seen []string
	for page := 1; page <= 3; page++ {
		q := listing.Query{Page: page, PageSize: 3, Sort: listing.Sort{Field: "createdAt", Dir: listing.Desc}}
		result, err := ex.Execute(context.Background(), res, "t1", q)
		require.NoError(t, err)
		assert.Equal(t, 7, result.TotalCount)
		seen = append(seen, widgetIDs(result.Rows)...)
	}
	assert.Equal(t, []string{"w1", "w2", "w3", "w4", "w5", "w6", "w7"}, seen)
}

func TestExecutor_Execute(t *testing.T) {
	db := inmemdb.Open()
	insertWidget(t, db, "t1", "w1", "Alpha", "ON", day0)
	insertWidget(t, db, "t1", "w2", "beta", "OFF", day0.Add(time.Hour))
	insertWidget(t, db, "t1", "w3", "Alphabet", "OFF", day0.AddDate(0, 0, 1))
	insertWidget(t, db, "t2", "w4", "Alpha", "ON", day0)
	ex := listing.NewExecutor(db)

	tests := []struct {
		name      string
		q         listing.Query
		wantIDs   []string
		wantTotal int
	}{
		{
			name:      "tenant only",
			q:         listing.Query{Page: 1, PageSize: 25, Sort: listing.Sort{Field: "createdAt", Dir: listing.Desc}},
			wantIDs:   []string{"w3", "w2", "w1"},
			wantTotal: 3,
		},
		{
			name:      "search is case insensitive",
			q:         listing.Query{Page: 1, PageSize: 25, Search: "ALPHA", Sort: listing.Sort{Field: "name", Dir: listing.Asc}},
			wantIDs:   []string{"w1", "w3"},
			wantTotal: 2,
		},
		{
			name:      "filters",
			q:         listing.Query{Page: 1, PageSize: 25, Filters: listing.Filters{"status": "OFF"}, Sort: listing.Sort{Field: "name", Dir: listing.Asc}},
			wantIDs:   []string{"w3", "w2"},
			wantTotal: 2,
		},
		{
			name: "single day range",
			q: listing.Query{
				Page: 1, PageSize: 25,
				Filters: listing.Filters{listing.FilterFrom: day0, listing.FilterTo: day0},
				Sort:    listing.Sort{Field: "createdAt", Dir: listing.Asc},
			},
			wantIDs:   []string{"w1", "w2"},
			wantTotal: 2,
		},
		{
			name:      "page past the end",
			q:         listing.Query{Page: 5, PageSize: 2, Sort: listing.Sort{Field: "createdAt", Dir: listing.Desc}},
			wantIDs:   []string{},
			wantTotal: 3,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result, err := ex.Execute(context.Background(), widgetResource{}, "t1", tt.q)
			require.NoError(t, err)
			assert.Equal(t, tt.wantIDs, widgetIDs(result.Rows))
			assert.Equal(t, tt.wantTotal, result.TotalCount)
			assert.Equal(t, tt.q.Page, result.Page)
			assert.Equal(t, tt.q.PageSize, result.PageSize)
			assert.Nil(t, result.ExportTruncated)
			assert.NotNil(t, result.Rows)
		})
	}
}

func TestExecutor_ExecuteExport(t *testing.T) {
	db := inmemdb.Open()
	for i := 1; i <= 5; i++ {
		insertWidget(t, db, "t1", fmt.Sprintf("w%d", i), "w", "ON", day0.Add(time.Duration(i)*time.Minute))
	}
	ex := listing.NewExecutor(db)
	q := listing.Query{Page: 4, PageSize: 1, Sort: listing.Sort{Field: "createdAt", Dir: listing.Asc}}

	tests := []struct {
		name          string
		exportCap     int
		wantIDs       []string
		wantTruncated bool
	}{
		{name: "capped", exportCap: 3, wantIDs: []string{"w1", "w2", "w3"}, wantTruncated: true},
		{name: "exactly the cap", exportCap: 5, wantIDs: []string{"w1", "w2", "w3", "w4", "w5"}},
		{name: "under the cap", exportCap: 10, wantIDs: []string{"w1", "w2", "w3", "w4", "w5"}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result, err := ex.ExecuteExport(context.Background(), widgetResource{exportCap: tt.exportCap}, "t1", q)
			require.NoError(t, err)
			assert.Equal(t, tt.wantIDs, widgetIDs(result.Rows))
			assert.Equal(t, 5, result.TotalCount)
			assert.Equal(t, 1, result.Page)
			assert.Equal(t, tt.exportCap, result.PageSize)
			if assert.NotNil(t, result.ExportTruncated) {
				assert.Equal(t, tt.wantTruncated, *result.ExportTruncated)
			}
		})
	}
}

type failingStore struct{}

func (failingStore) Count(context.Context, string, listing.Where) (int, error) {
	return 0, errors.New("connection refused")
}

func (failingStore) Find(context.Context, string, listing.Where, listing.OrderClause, int, int) ([]listing.Row, error) {
	return nil, errors.New("connection refused")
}

func TestExecutor_errors(t *testing.T) {
	q := listing.Query{Page: 1, PageSize: 25, Sort: listing.Sort{Field: "createdAt", Dir: listing.Desc}}

	t.Run("no tenant", func(t *testing.T) {
		_, err := listing.NewExecutor(inmemdb.Open()).Execute(context.Background(), widgetResource{}, "", q)
		assert.True(t, errors.Is(err, listing.ErrNoTenant))
	})

	t.Run("predicate scoped to another tenant", func(t *testing.T) {
		_, err := listing.NewExecutor(inmemdb.Open()).Execute(context.Background(), widgetResource{tenantOverride: "t2"}, "t1", q)
		assert.True(t, errors.Is(err, listing.ErrTenantMismatch))
		assert.False(t, core.IsValidationError(err))
	})

	t.Run("store failure", func(t *testing.T) {
		_, err := listing.NewExecutor(failingStore{}).Execute(context.Background(), widgetResource{}, "t1", q)
		require.Error(t, err)
		assert.Contains(t, err.Error(), "connection refused")
		assert.False(t, core.IsValidationError(err), "store failures are not client errors")
	})

	t.Run("offset overflow", func(t *testing.T) {
		huge := listing.Query{Page: 4611686018427387905, PageSize: 3, Sort: q.Sort}
		_, err := listing.NewExecutor(inmemdb.Open()).Execute(context.Background(), widgetResource{}, "t1", huge)
		assert.True(t, errors.Is(err, listing.ErrInvalidQuery))
		assert.True(t, core.IsValidationError(err))
	})

	t.Run("cancelled context", func(t *testing.T) {
		ctx, cancel := context.WithCancel(context.Background())
		cancel()
		_, err := listing.NewExecutor(inmemdb.Open()).Execute(ctx, widgetResource{}, "t1", q)
		assert.True(t, errors.Is(err, context.Canceled))
	})
}
