package student

import (
	"strconv"
	"time"

	"github.com/trezcool/tutoria/core/listing"
)

const (
	Key   = "students"
	Table = "students"
)

var (
	sortColumns = listing.SortColumns{
		"name":       {"last_name", "first_name"},
		"gradeLevel": {"grade_level"},
		"status":     {"status"},
		"createdAt":  {"created_at"},
	}

	// never notes nor guardian contacts
	searchFields = []string{"first_name", "last_name", "preferred_name"}

	contract = listing.Contract{
		AllowedSortFields: sortColumns.Fields(),
		DefaultSort:       listing.Sort{Field: "name", Dir: listing.Asc},
		DefaultPageSize:   listing.DefaultPageSize,
		MaxPageSize:       listing.MaxPageSize,
		MaxExportRows:     listing.MaxExportRows,
		Filters: listing.FilterSchema{
			"status":     listing.EnumFilter(Statuses...),
			"programId":  listing.IDFilter(),
			"gradeLevel": listing.IntFilter(1, 12),
		}.WithDateRange(),
	}
)

type resource struct{}

// Resource is the students admin table.
func Resource() listing.Resource { return resource{} }

func (resource) Key() string                { return Key }
func (resource) Entity() string             { return Table }
func (resource) Contract() listing.Contract { return contract }

func (resource) BuildWhere(c listing.Criteria) listing.Where {
	var conds []listing.Predicate
	conds = append(conds, listing.Search(c.Search, searchFields...))
	if v, ok := c.Filters["status"]; ok {
		conds = append(conds, listing.OneOf("status", v))
	}
	if id, ok := c.Filters.String("programId"); ok {
		conds = append(conds, listing.Eq{Field: "program_id", Value: id})
	}
	if lvl, ok := c.Filters.Int("gradeLevel"); ok {
		conds = append(conds, listing.Eq{Field: "grade_level", Value: lvl})
	}
	conds = append(conds, c.Filters.DateRange("created_at"))
	return listing.NewWhere(c.TenantID, conds...)
}

func (resource) BuildOrderBy(s listing.Sort) listing.OrderClause {
	return sortColumns.Order(s, "id")
}

func (resource) MapRow(row listing.Row) interface{} {
	return Student{
		ID:            row.String("id"),
		FirstName:     row.String("first_name"),
		LastName:      row.String("last_name"),
		PreferredName: row.NullString("preferred_name"),
		ProgramID:     row.NullString("program_id"),
		GradeLevel:    row.Int("grade_level"),
		Status:        row.String("status"),
		CreatedAt:     row.Time("created_at"),
	}
}

func (resource) Columns() []listing.Column {
	return []listing.Column{
		column("ID", func(s Student) string { return s.ID }),
		column("First Name", func(s Student) string { return s.FirstName }),
		column("Last Name", func(s Student) string { return s.LastName }),
		column("Preferred Name", func(s Student) string { return s.PreferredName.String }),
		column("Grade", func(s Student) string { return strconv.Itoa(s.GradeLevel) }),
		column("Status", func(s Student) string { return s.Status }),
		column("Program ID", func(s Student) string { return s.ProgramID.String }),
		column("Created At", func(s Student) string { return s.CreatedAt.Format(time.RFC3339) }),
	}
}

func column(header string, value func(Student) string) listing.Column {
	return listing.Column{
		Header: header,
		Value: func(row interface{}) string {
			s, _ := row.(Student)
			return value(s)
		},
	}
}
