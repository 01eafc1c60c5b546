package listing

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

type stubResource struct {
	key      string
	contract Contract
}

func (r stubResource) Key() string                   { return r.key }
func (r stubResource) Entity() string                { return r.key }
func (r stubResource) Contract() Contract            { return r.contract }
func (r stubResource) BuildWhere(c Criteria) Where   { return NewWhere(c.TenantID) }
func (r stubResource) BuildOrderBy(Sort) OrderClause { return NewOrder("id") }
func (r stubResource) MapRow(row Row) interface{}    { return row.String("id") }
func (r stubResource) Columns() []Column             { return nil }

func TestRegistry(t *testing.T) {
	reg := NewRegistry(
		stubResource{key: "students", contract: testContract},
		stubResource{key: "announcements", contract: testContract},
	)

	assert.Equal(t, []string{"announcements", "students"}, reg.Keys())

	res, ok := reg.Get("students")
	assert.True(t, ok)
	assert.Equal(t, "students", res.Key())

	_, ok = reg.Get("users")
	assert.False(t, ok)

	assert.Panics(t, func() { reg.Register(stubResource{key: "students", contract: testContract}) }, "duplicate key")
	assert.Panics(t, func() { reg.Register(stubResource{key: "bad"}) }, "invalid contract")
}
