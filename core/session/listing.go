package session

import (
	"time"

	"github.com/trezcool/tutoria/core/listing"
)

const (
	Key   = "sessions"
	Table = "tutoring_sessions"
)

var (
	sortColumns = listing.SortColumns{
		"startsAt": {"starts_at"},
		"title":    {"title"},
		"status":   {"status"},
	}

	contract = listing.Contract{
		AllowedSortFields: sortColumns.Fields(),
		DefaultSort:       listing.Sort{Field: "startsAt", Dir: listing.Desc},
		DefaultPageSize:   listing.DefaultPageSize,
		MaxPageSize:       listing.MaxPageSize,
		MaxExportRows:     listing.MaxExportRows,
		Filters: listing.FilterSchema{
			"status":    listing.EnumFilter(Statuses...),
			"programId": listing.IDFilter(),
		}.WithDateRange(),
	}
)

type resource struct{}

// Resource is the tutoring sessions admin table; its date range applies to the start time.
func Resource() listing.Resource { return resource{} }

func (resource) Key() string                { return Key }
func (resource) Entity() string             { return Table }
func (resource) Contract() listing.Contract { return contract }

func (resource) BuildWhere(c listing.Criteria) listing.Where {
	var program listing.Predicate
	if id, ok := c.Filters.String("programId"); ok {
		program = listing.Eq{Field: "program_id", Value: id}
	}
	return listing.NewWhere(c.TenantID,
		listing.Search(c.Search, "title", "tutor_name", "location"),
		listing.OneOf("status", c.Filters["status"]),
		program,
		c.Filters.DateRange("starts_at"),
	)
}

func (resource) BuildOrderBy(s listing.Sort) listing.OrderClause {
	return sortColumns.Order(s, "id")
}

func (resource) MapRow(row listing.Row) interface{} {
	return Session{
		ID:        row.String("id"),
		ProgramID: row.String("program_id"),
		Title:     row.String("title"),
		TutorName: row.String("tutor_name"),
		Location:  row.String("location"),
		StartsAt:  row.Time("starts_at"),
		EndsAt:    row.Time("ends_at"),
		Status:    row.String("status"),
	}
}

func (resource) Columns() []listing.Column {
	return []listing.Column{
		column("ID", func(s Session) string { return s.ID }),
		column("Title", func(s Session) string { return s.Title }),
		column("Tutor", func(s Session) string { return s.TutorName }),
		column("Location", func(s Session) string { return s.Location }),
		column("Starts At", func(s Session) string { return s.StartsAt.Format(time.RFC3339) }),
		column("Ends At", func(s Session) string { return s.EndsAt.Format(time.RFC3339) }),
		column("Status", func(s Session) string { return s.Status }),
		column("Program ID", func(s Session) string { return s.ProgramID }),
	}
}

func column(header string, value func(Session) string) listing.Column {
	return listing.Column{
		Header: header,
		Value: func(row interface{}) string {
			s, _ := row.(Session)
			return value(s)
		},
	}
}
