package announcement

import (
	"time"

	"github.com/trezcool/tutoria/core/listing"
)

const (
	Key   = "announcements"
	Table = "announcements"
)

var (
	sortColumns = listing.SortColumns{
		"createdAt":   {"created_at"},
		"publishedAt": {"published_at"},
		"title":       {"title"},
		"status":      {"status"},
	}

	contract = listing.Contract{
		AllowedSortFields: sortColumns.Fields(),
		DefaultSort:       listing.Sort{Field: "createdAt", Dir: listing.Desc},
		DefaultPageSize:   listing.DefaultPageSize,
		MaxPageSize:       listing.MaxPageSize,
		MaxExportRows:     listing.MaxExportRows,
		Filters: listing.FilterSchema{
			"status":   listing.EnumFilter(Statuses...),
			"audience": listing.EnumFilter(Audiences...),
		}.WithDateRange(),
	}
)

type resource struct{}

func Resource() listing.Resource { return resource{} }

func (resource) Key() string                { return Key }
func (resource) Entity() string             { return Table }
func (resource) Contract() listing.Contract { return contract }

func (resource) BuildWhere(c listing.Criteria) listing.Where {
	return listing.NewWhere(c.TenantID,
		listing.Search(c.Search, "title"),
		listing.OneOf("status", c.Filters["status"]),
		listing.OneOf("audience", c.Filters["audience"]),
		c.Filters.DateRange("created_at"),
	)
}

func (resource) BuildOrderBy(s listing.Sort) listing.OrderClause {
	return sortColumns.Order(s, "id")
}

func (resource) MapRow(row listing.Row) interface{} {
	return Announcement{
		ID:          row.String("id"),
		Title:       row.String("title"),
		Audience:    row.String("audience"),
		Status:      row.String("status"),
		AuthorName:  row.String("author_name"),
		PublishedAt: row.NullTime("published_at"),
		CreatedAt:   row.Time("created_at"),
	}
}

func (resource) Columns() []listing.Column {
	return []listing.Column{
		column("ID", func(a Announcement) string { return a.ID }),
		column("Title", func(a Announcement) string { return a.Title }),
		column("Audience", func(a Announcement) string { return a.Audience }),
		column("Status", func(a Announcement) string { return a.Status }),
		column("Author", func(a Announcement) string { return a.AuthorName }),
		column("Published At", func(a Announcement) string {
			if !a.PublishedAt.Valid {
				return ""
			}
			return a.PublishedAt.Time.Format(time.RFC3339)
		}),
		column("Created At", func(a Announcement) string { return a.CreatedAt.Format(time.RFC3339) }),
	}
}

func column(header string, value func(Announcement) string) listing.Column {
	return listing.Column{
		Header: header,
		Value: func(row interface{}) string {
			a, _ := row.(Announcement)
			return value(a)
		},
	}
}
