package absence

import (
	"time"

	"github.com/trezcool/tutoria/core"
	"github.com/trezcool/tutoria/core/listing"
)

const (
	Key   = "absence-requests"
	Table = "absence_requests"
)

var (
	sortColumns = listing.SortColumns{
		"absenceDate": {"absence_date"},
		"submittedAt": {"submitted_at"},
		"status":      {"status"},
		"studentName": {"student_name"},
	}

	contract = listing.Contract{
		AllowedSortFields: sortColumns.Fields(),
		DefaultSort:       listing.Sort{Field: "submittedAt", Dir: listing.Desc},
		DefaultPageSize:   listing.DefaultPageSize,
		MaxPageSize:       listing.MaxPageSize,
		MaxExportRows:     listing.MaxExportRows,
		Filters: listing.FilterSchema{
			"status":    listing.EnumFilter(Statuses...),
			"studentId": listing.IDFilter(),
		}.WithDateRange(),
	}
)

type resource struct{}

func Resource() listing.Resource { return resource{} }

func (resource) Key() string                { return Key }
func (resource) Entity() string             { return Table }
func (resource) Contract() listing.Contract { return contract }

// BuildWhere: the date range applies to the day of absence, not to the submission.
func (resource) BuildWhere(c listing.Criteria) listing.Where {
	var student listing.Predicate
	if id, ok := c.Filters.String("studentId"); ok {
		student = listing.Eq{Field: "student_id", Value: id}
	}
	return listing.NewWhere(c.TenantID,
		listing.Search(c.Search, "student_name"),
		listing.OneOf("status", c.Filters["status"]),
		student,
		c.Filters.DateRange("absence_date"),
	)
}

func (resource) BuildOrderBy(s listing.Sort) listing.OrderClause {
	return sortColumns.Order(s, "id")
}

// MapRow leaves the reviewer's note out.
func (resource) MapRow(row listing.Row) interface{} {
	return Request{
		ID:          row.String("id"),
		StudentID:   row.String("student_id"),
		StudentName: row.String("student_name"),
		AbsenceDate: row.Time("absence_date"),
		Reason:      row.String("reason"),
		Status:      row.String("status"),
		SubmittedAt: row.Time("submitted_at"),
		ReviewedAt:  row.NullTime("reviewed_at"),
	}
}

func (resource) Columns() []listing.Column {
	return []listing.Column{
		column("ID", func(r Request) string { return r.ID }),
		column("Student", func(r Request) string { return r.StudentName }),
		column("Absence Date", func(r Request) string { return r.AbsenceDate.Format(core.DateLayout) }),
		column("Reason", func(r Request) string { return r.Reason }),
		column("Status", func(r Request) string { return r.Status }),
		column("Submitted At", func(r Request) string { return r.SubmittedAt.Format(time.RFC3339) }),
		column("Reviewed At", func(r Request) string {
			if !r.ReviewedAt.Valid {
				return ""
			}
			return r.ReviewedAt.Time.Format(time.RFC3339)
		}),
	}
}

func column(header string, value func(Request) string) listing.Column {
	return listing.Column{
		Header: header,
		Value: func(row interface{}) string {
			r, _ := row.(Request)
			return value(r)
		},
	}
}
