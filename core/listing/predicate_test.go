package listing

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestNewWhere(t *testing.T) {
	w := NewWhere("t1", nil, Eq{Field: "status", Value: "ACTIVE"}, Search("", "name"), DateRange("created_at", time.Time{}, time.Time{}))

	preds := w.Predicates()
	if assert.Len(t, preds, 2) {
		assert.Equal(t, Eq{Field: TenantField, Value: "t1"}, preds[0], "tenant conjunct must come first")
		assert.Equal(t, Eq{Field: "status", Value: "ACTIVE"}, preds[1])
	}
	assert.True(t, w.ScopedTo("t1"))
	assert.False(t, w.ScopedTo("t2"))
	assert.False(t, w.ScopedTo(""))
	assert.False(t, Where{}.ScopedTo(""))
}

func TestSearch(t *testing.T) {
	assert.Nil(t, Search("", "name"))
	assert.Nil(t, Search("jane"))
	assert.Equal(t,
		Or{Contains{Field: "first_name", Value: "jane"}, Contains{Field: "last_name", Value: "jane"}},
		Search("jane", "first_name", "last_name"),
	)
}

func TestOneOf(t *testing.T) {
	assert.Nil(t, OneOf("status", nil))
	assert.Equal(t, Eq{Field: "status", Value: "ACTIVE"}, OneOf("status", "ACTIVE"))
	assert.Equal(t, In{Field: "status", Values: []interface{}{"ACTIVE", "INACTIVE"}}, OneOf("status", []string{"ACTIVE", "INACTIVE"}))
}

func TestDateRange(t *testing.T) {
	day := func(s string) time.Time {
		d, _ := time.Parse("2006-01-02T15:04", s)
		return d
	}

	tests := []struct {
		name     string
		from, to time.Time
		want     Predicate
	}{
		{name: "none"},
		{
			name: "from only",
			from: day("2024-01-10T00:00"),
			want: And{Gte{Field: "d", Value: day("2024-01-10T00:00")}},
		},
		{
			name: "to only covers the whole day",
			to:   day("2024-01-10T00:00"),
			want: And{Lt{Field: "d", Value: day("2024-01-11T00:00")}},
		},
		{
			name: "single day",
			from: day("2024-01-10T00:00"),
			to:   day("2024-01-10T00:00"),
			want: And{Gte{Field: "d", Value: day("2024-01-10T00:00")}, Lt{Field: "d", Value: day("2024-01-11T00:00")}},
		},
		{
			name: "times are truncated to the day",
			from: day("2024-01-10T15:30"),
			to:   day("2024-01-31T23:59"),
			want: And{Gte{Field: "d", Value: day("2024-01-10T00:00")}, Lt{Field: "d", Value: day("2024-02-01T00:00")}},
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := DateRange("d", tt.from, tt.to)
			if tt.want == nil {
				assert.Nil(t, got)
				return
			}
			assert.Equal(t, tt.want, got)
		})
	}
}
