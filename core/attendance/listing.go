package attendance

import (
	"time"

	"github.com/trezcool/tutoria/core"
	"github.com/trezcool/tutoria/core/listing"
)

const (
	Key   = "attendance"
	Table = "attendance_records"
)

var (
	sortColumns = listing.SortColumns{
		"sessionDate": {"session_date"},
		"studentName": {"student_name"},
		"status":      {"status"},
		"markedAt":    {"marked_at"},
	}

	contract = listing.Contract{
		AllowedSortFields: sortColumns.Fields(),
		DefaultSort:       listing.Sort{Field: "sessionDate", Dir: listing.Desc},
		DefaultPageSize:   listing.DefaultPageSize,
		MaxPageSize:       listing.MaxPageSize,
		MaxExportRows:     listing.MaxExportRows,
		Filters: listing.FilterSchema{
			"status":    listing.EnumFilter(Statuses...),
			"sessionId": listing.IDFilter(),
			"studentId": listing.IDFilter(),
		}.WithDateRange(),
	}
)

type resource struct{}

func Resource() listing.Resource { return resource{} }

func (resource) Key() string                { return Key }
func (resource) Entity() string             { return Table }
func (resource) Contract() listing.Contract { return contract }

func (resource) BuildWhere(c listing.Criteria) listing.Where {
	conds := []listing.Predicate{
		listing.Search(c.Search, "student_name", "session_title"),
		listing.OneOf("status", c.Filters["status"]),
	}
	if id, ok := c.Filters.String("sessionId"); ok {
		conds = append(conds, listing.Eq{Field: "session_id", Value: id})
	}
	if id, ok := c.Filters.String("studentId"); ok {
		conds = append(conds, listing.Eq{Field: "student_id", Value: id})
	}
	conds = append(conds, c.Filters.DateRange("session_date"))
	return listing.NewWhere(c.TenantID, conds...)
}

func (resource) BuildOrderBy(s listing.Sort) listing.OrderClause {
	return sortColumns.Order(s, "id")
}

func (resource) MapRow(row listing.Row) interface{} {
	return Record{
		ID:           row.String("id"),
		SessionID:    row.String("session_id"),
		StudentID:    row.String("student_id"),
		StudentName:  row.String("student_name"),
		SessionTitle: row.String("session_title"),
		SessionDate:  row.Time("session_date"),
		Status:       row.String("status"),
		MarkedAt:     row.Time("marked_at"),
	}
}

func (resource) Columns() []listing.Column {
	return []listing.Column{
		column("ID", func(r Record) string { return r.ID }),
		column("Session Date", func(r Record) string { return r.SessionDate.Format(core.DateLayout) }),
		column("Session", func(r Record) string { return r.SessionTitle }),
		column("Student", func(r Record) string { return r.StudentName }),
		column("Status", func(r Record) string { return r.Status }),
		column("Marked At", func(r Record) string { return r.MarkedAt.Format(time.RFC3339) }),
	}
}

func column(header string, value func(Record) string) listing.Column {
	return listing.Column{
		Header: header,
		Value: func(row interface{}) string {
			r, _ := row.(Record)
			return value(r)
		},
	}
}
