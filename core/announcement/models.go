package announcement

import (
	"time"

	"github.com/volatiletech/null/v8"
)

const (
	StatusDraft     = "DRAFT"
	StatusPublished = "PUBLISHED"
	StatusArchived  = "ARCHIVED"
)

const (
	AudienceAll       = "ALL"
	AudienceStudents  = "STUDENTS"
	AudienceGuardians = "GUARDIANS"
	AudienceStaff     = "STAFF"
)

var (
	Statuses  = []string{StatusDraft, StatusPublished, StatusArchived}
	Audiences = []string{AudienceAll, AudienceStudents, AudienceGuardians, AudienceStaff}
)

// Announcement as listed; the body is only served by the detail view.
type Announcement struct {
	ID          string    `json:"id"`
	Title       string    `json:"title"`
	Audience    string    `json:"audience"`
	Status      string    `json:"status"`
	AuthorName  string    `json:"authorName"`
	PublishedAt null.Time `json:"publishedAt"`
	CreatedAt   time.Time `json:"createdAt"`
}
