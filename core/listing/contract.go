package listing

import (
	"fmt"
	"math"

	"github.com/trezcool/tutoria/core"
)

// Page size & export bounds shared by the admin tables.
const (
	DefaultPageSize = 25
	MaxPageSize     = 100
	MaxExportRows   = 5000

	// MaxSearchLen caps the search term; longer terms are rejected, not truncated.
	MaxSearchLen = 100

	// MaxOffset bounds (page-1)*pageSize, the number of rows a page skips.
	MaxOffset = math.MaxInt32
)

type Direction string

const (
	Asc  Direction = "asc"
	Desc Direction = "desc"
)

type Sort struct {
	Field string    `json:"field"`
	Dir   Direction `json:"dir"`
}

// Contract is the closed set of facts used to validate and bound a resource's list requests.
// Contracts are static: they are declared in code and never change at runtime.
type Contract struct {
	AllowedSortFields []string
	DefaultSort       Sort
	DefaultPageSize   int
	MaxPageSize       int
	MaxExportRows     int
	Filters           FilterSchema
}

func (c Contract) AllowsSort(field string) bool {
	return core.StringInSlice(field, c.AllowedSortFields)
}

// Validate reports programming errors in the contract declaration.
func (c Contract) Validate() error {
	switch {
	case len(c.AllowedSortFields) == 0:
		return fmt.Errorf("no sort fields allowed")
	case !c.AllowsSort(c.DefaultSort.Field):
		return fmt.Errorf("default sort field %q is not allowed", c.DefaultSort.Field)
	case c.DefaultSort.Dir != Asc && c.DefaultSort.Dir != Desc:
		return fmt.Errorf("invalid default sort direction %q", c.DefaultSort.Dir)
	case c.DefaultPageSize < 1 || c.MaxPageSize < c.DefaultPageSize:
		return fmt.Errorf("invalid page sizes: default %d, max %d", c.DefaultPageSize, c.MaxPageSize)
	case c.MaxExportRows < 1:
		return fmt.Errorf("invalid export cap %d", c.MaxExportRows)
	}
	for key, fld := range c.Filters {
		if fld.Kind == KindEnum && len(fld.Values) == 0 {
			return fmt.Errorf("enum filter %q has no values", key)
		}
	}
	return nil
}
