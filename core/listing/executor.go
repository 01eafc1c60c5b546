package listing

import (
	"context"

	"github.com/pkg/errors"
	"golang.org/x/sync/errgroup"
)

// Result is the list response envelope.
type Result struct {
	Rows            []interface{}          `json:"rows"`
	TotalCount      int                    `json:"totalCount"`
	Page            int                    `json:"page"`
	PageSize        int                    `json:"pageSize"`
	Sort            Sort                   `json:"sort"`
	Search          string                 `json:"search,omitempty"`
	AppliedFilters  map[string]interface{} `json:"appliedFilters"`
	ExportTruncated *bool                  `json:"exportTruncated,omitempty"`
}

// Truncated reports whether an export result was capped.
func (r Result) Truncated() bool {
	return r.ExportTruncated != nil && *r.ExportTruncated
}

// Executor runs parsed queries against a Store.
// It holds no per-request state and is safe for concurrent use.
type Executor struct {
	store Store
}

func NewExecutor(store Store) *Executor {
	return &Executor{store: store}
}

// Execute fetches page q.Page of q.PageSize rows along with the total count of matching rows.
func (ex *Executor) Execute(ctx context.Context, res Resource, tenantID string, q Query) (Result, error) {
	if q.Page < 1 || q.PageSize < 1 || q.Page-1 > MaxOffset/q.PageSize {
		return Result{}, invalidQuery(fieldErr("page", "page is out of range"))
	}
	skip := (q.Page - 1) * q.PageSize
	rows, total, err := ex.run(ctx, res, tenantID, q, skip, q.PageSize)
	if err != nil {
		return Result{}, err
	}
	return Result{
		Rows:           rows,
		TotalCount:     total,
		Page:           q.Page,
		PageSize:       q.PageSize,
		Sort:           q.Sort,
		Search:         q.Search,
		AppliedFilters: q.AppliedFilters,
	}, nil
}

// ExecuteExport fetches up to the contract's export cap, from the first row, ignoring q.Page & q.PageSize.
// The reported PageSize is the cap.
func (ex *Executor) ExecuteExport(ctx context.Context, res Resource, tenantID string, q Query) (Result, error) {
	limit := res.Contract().MaxExportRows
	rows, total, err := ex.run(ctx, res, tenantID, q, 0, limit)
	if err != nil {
		return Result{}, err
	}
	truncated := total > limit
	return Result{
		Rows:            rows,
		TotalCount:      total,
		Page:            1,
		PageSize:        limit,
		Sort:            q.Sort,
		Search:          q.Search,
		AppliedFilters:  q.AppliedFilters,
		ExportTruncated: &truncated,
	}, nil
}

// run counts and fetches concurrently; both calls share ctx and are joined before returning.
func (ex *Executor) run(ctx context.Context, res Resource, tenantID string, q Query, skip, take int) ([]interface{}, int, error) {
	if tenantID == "" {
		return nil, 0, ErrNoTenant
	}
	where := res.BuildWhere(q.Criteria(tenantID))
	if !where.ScopedTo(tenantID) {
		return nil, 0, errors.Wrapf(ErrTenantMismatch, "building %s predicate", res.Key())
	}
	order := res.BuildOrderBy(q.Sort)
	entity := res.Entity()

	var (
		total int
		found []Row
	)
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		n, err := ex.store.Count(gctx, entity, where)
		if err != nil {
			return errors.Wrapf(err, "counting %s", entity)
		}
		total = n
		return nil
	})
	g.Go(func() error {
		rows, err := ex.store.Find(gctx, entity, where, order, skip, take)
		if err != nil {
			return errors.Wrapf(err, "finding %s", entity)
		}
		found = rows
		return nil
	})
	if err := g.Wait(); err != nil {
		return nil, 0, err
	}

	mapped := make([]interface{}, 0, len(found))
	for _, row := range found {
		mapped = append(mapped, res.MapRow(row))
	}
	return mapped, total, nil
}
