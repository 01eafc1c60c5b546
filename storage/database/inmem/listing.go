package inmemdb

import (
	"context"
	"sort"
	"strings"
	"time"

	"github.com/pkg/errors"

	"github.com/trezcool/tutoria/core/listing"
)

var _ listing.Store = (*DB)(nil) // interface compliance check

func (db *DB) Count(ctx context.Context, entity string, where listing.Where) (int, error) {
	if err := ctx.Err(); err != nil {
		return 0, err
	}
	rows, err := db.scan(entity, where)
	if err != nil {
		return 0, errors.Wrapf(err, "counting %s", entity)
	}
	return len(rows), nil
}

// Find sorts the way postgres does: NULLs last when ascending, first when descending.
func (db *DB) Find(ctx context.Context, entity string, where listing.Where, order listing.OrderClause, skip, take int) ([]listing.Row, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if skip < 0 {
		return nil, errors.Errorf("finding %s: negative offset %d", entity, skip)
	}
	rows, err := db.scan(entity, where)
	if err != nil {
		return nil, errors.Wrapf(err, "finding %s", entity)
	}

	sort.SliceStable(rows, func(i, j int) bool {
		for _, ord := range order {
			c := compareNullable(rows[i][ord.Field], rows[j][ord.Field])
			if c == 0 {
				continue
			}
			if ord.Ascending {
				return c < 0
			}
			return c > 0
		}
		return false
	})

	if skip >= len(rows) {
		return []listing.Row{}, nil
	}
	rows = rows[skip:]
	if take >= 0 && take < len(rows) {
		rows = rows[:take]
	}
	return rows, nil
}

func matchAll(row listing.Row, preds []listing.Predicate) (bool, error) {
	for _, pred := range preds {
		ok, err := match(row, pred)
		if err != nil || !ok {
			return false, err
		}
	}
	return true, nil
}

func match(row listing.Row, pred listing.Predicate) (bool, error) {
	switch p := pred.(type) {
	case listing.Eq:
		if p.Value == nil {
			return row[p.Field] == nil, nil
		}
		c, ok := compare(row[p.Field], p.Value)
		return ok && c == 0, nil
	case listing.In:
		for _, v := range p.Values {
			if c, ok := compare(row[p.Field], v); ok && c == 0 {
				return true, nil
			}
		}
		return false, nil
	case listing.Contains:
		if row[p.Field] == nil {
			return false, nil
		}
		return strings.Contains(strings.ToLower(row.String(p.Field)), strings.ToLower(p.Value)), nil
	case listing.Gte:
		c, ok := compare(row[p.Field], p.Value)
		return ok && c >= 0, nil
	case listing.Lt:
		c, ok := compare(row[p.Field], p.Value)
		return ok && c < 0, nil
	case listing.And:
		return matchAll(row, p)
	case listing.Or:
		for _, sub := range p {
			ok, err := match(row, sub)
			if err != nil || ok {
				return ok, err
			}
		}
		return false, nil
	}
	return false, errors.Errorf("unsupported predicate %T", pred)
}

// compareNullable orders NULL after any value.
func compareNullable(a, b interface{}) int {
	switch {
	case a == nil && b == nil:
		return 0
	case a == nil:
		return 1
	case b == nil:
		return -1
	}
	c, _ := compare(a, b)
	return c
}

// compare returns -1, 0 or 1; ok is false when a & b are not comparable (NULL included).
func compare(a, b interface{}) (c int, ok bool) {
	a, b = normalize(a), normalize(b)
	switch x := a.(type) {
	case string:
		if y, isStr := b.(string); isStr {
			return strings.Compare(x, y), true
		}
	case float64:
		if y, isNum := b.(float64); isNum {
			switch {
			case x < y:
				return -1, true
			case x > y:
				return 1, true
			}
			return 0, true
		}
	case bool:
		if y, isBool := b.(bool); isBool {
			switch {
			case x == y:
				return 0, true
			case !x:
				return -1, true
			}
			return 1, true
		}
	case time.Time:
		if y, isTime := b.(time.Time); isTime {
			switch {
			case x.Before(y):
				return -1, true
			case x.After(y):
				return 1, true
			}
			return 0, true
		}
	}
	return 0, false
}

func normalize(v interface{}) interface{} {
	switch val := v.(type) {
	case []byte:
		return string(val)
	case int:
		return float64(val)
	case int32:
		return float64(val)
	case int64:
		return float64(val)
	case float32:
		return float64(val)
	case time.Time:
		return val.UTC()
	}
	return v
}
