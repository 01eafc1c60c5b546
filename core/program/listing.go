package program

import (
	"strconv"
	"time"

	"github.com/trezcool/tutoria/core/listing"
)

const (
	Key   = "programs"
	Table = "programs"
)

var (
	sortColumns = listing.SortColumns{
		"name":      {"name"},
		"code":      {"code"},
		"status":    {"status"},
		"createdAt": {"created_at"},
	}

	contract = listing.Contract{
		AllowedSortFields: sortColumns.Fields(),
		DefaultSort:       listing.Sort{Field: "createdAt", Dir: listing.Desc},
		DefaultPageSize:   listing.DefaultPageSize,
		MaxPageSize:       listing.MaxPageSize,
		MaxExportRows:     listing.MaxExportRows,
		Filters: listing.FilterSchema{
			"status": listing.EnumFilter(Statuses...),
		}.WithDateRange(),
	}
)

type resource struct{}

// Resource is the programs admin table.
func Resource() listing.Resource { return resource{} }

func (resource) Key() string                { return Key }
func (resource) Entity() string             { return Table }
func (resource) Contract() listing.Contract { return contract }

func (resource) BuildWhere(c listing.Criteria) listing.Where {
	return listing.NewWhere(c.TenantID,
		listing.Search(c.Search, "name", "code"),
		listing.OneOf("status", c.Filters["status"]),
		c.Filters.DateRange("created_at"),
	)
}

func (resource) BuildOrderBy(s listing.Sort) listing.OrderClause {
	return sortColumns.Order(s, "id")
}

// MapRow leaves internal notes out.
func (resource) MapRow(row listing.Row) interface{} {
	return Program{
		ID:        row.String("id"),
		Name:      row.String("name"),
		Code:      row.String("code"),
		Status:    row.String("status"),
		Capacity:  row.Int("capacity"),
		CreatedAt: row.Time("created_at"),
		UpdatedAt: row.Time("updated_at"),
	}
}

func (resource) Columns() []listing.Column {
	return []listing.Column{
		column("ID", func(p Program) string { return p.ID }),
		column("Name", func(p Program) string { return p.Name }),
		column("Code", func(p Program) string { return p.Code }),
		column("Status", func(p Program) string { return p.Status }),
		column("Capacity", func(p Program) string { return strconv.Itoa(p.Capacity) }),
		column("Created At", func(p Program) string { return p.CreatedAt.Format(time.RFC3339) }),
	}
}

func column(header string, value func(Program) string) listing.Column {
	return listing.Column{
		Header: header,
		Value: func(row interface{}) string {
			p, _ := row.(Program)
			return value(p)
		},
	}
}
