package testutil

import (
	"fmt"
	"testing"
	"time"

	ut "github.com/go-playground/universal-translator"
	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
	"github.com/volatiletech/null/v8"

	"github.com/trezcool/tutoria/core"
	"github.com/trezcool/tutoria/core/absence"
	"github.com/trezcool/tutoria/core/announcement"
	"github.com/trezcool/tutoria/core/attendance"
	"github.com/trezcool/tutoria/core/listing"
	"github.com/trezcool/tutoria/core/program"
	"github.com/trezcool/tutoria/core/resources"
	"github.com/trezcool/tutoria/core/session"
	"github.com/trezcool/tutoria/core/student"
	"github.com/trezcool/tutoria/storage/database/inmem"
)

// Sensitive is the value seeded in columns that must never leave the store.
const Sensitive = "SENSITIVE-DO-NOT-EXPOSE"

func NewID() string { return uuid.New().String() }

// UUID returns the n-th fixed fixture id. Fixture ids sort in n order.
func UUID(n int) string { return fmt.Sprintf("00000000-0000-4000-8000-%012d", n) }

func Insert(t *testing.T, db *inmemdb.DB, entity string, rows ...listing.Row) {
	t.Helper()
	if err := db.Insert(entity, rows...); err != nil {
		t.Fatalf("Insert() failed: %v", err)
	}
}

func nullable(s string) interface{} {
	if s == "" {
		return nil
	}
	return s
}

func ProgramRow(tenantID, id, name, code string, createdAt time.Time) listing.Row {
	return listing.Row{
		"id":             id,
		"tenant_id":      tenantID,
		"name":           name,
		"code":           code,
		"status":         program.StatusActive,
		"capacity":       int64(20),
		"internal_notes": Sensitive,
		"created_at":     createdAt.UTC(),
		"updated_at":     createdAt.UTC(),
	}
}

func StudentRow(tenantID, id, firstName, lastName, preferredName string, createdAt time.Time) listing.Row {
	return listing.Row{
		"id":             id,
		"tenant_id":      tenantID,
		"first_name":     firstName,
		"last_name":      lastName,
		"preferred_name": nullable(preferredName),
		"program_id":     nil,
		"grade_level":    int64(5),
		"status":         student.StatusActive,
		"guardian_email": Sensitive,
		"guardian_phone": Sensitive,
		"medical_notes":  Sensitive,
		"created_at":     createdAt.UTC(),
	}
}

func SessionRow(tenantID, id, programID, title string, startsAt time.Time) listing.Row {
	return listing.Row{
		"id":         id,
		"tenant_id":  tenantID,
		"program_id": programID,
		"title":      title,
		"tutor_name": "Tutor",
		"location":   "Room 1",
		"starts_at":  startsAt.UTC(),
		"ends_at":    startsAt.Add(time.Hour).UTC(),
		"status":     session.StatusScheduled,
		"created_at": startsAt.UTC(),
	}
}

func AttendanceRow(tenantID, id, sessionID, studentID, studentName string, sessionDate time.Time) listing.Row {
	return listing.Row{
		"id":            id,
		"tenant_id":     tenantID,
		"session_id":    sessionID,
		"student_id":    studentID,
		"student_name":  studentName,
		"session_title": "Algebra",
		"session_date":  sessionDate.UTC(),
		"status":        attendance.StatusPresent,
		"marked_at":     sessionDate.UTC(),
		"note":          Sensitive,
	}
}

func AbsenceRow(tenantID, id, studentID, studentName string, absenceDate time.Time) listing.Row {
	return listing.Row{
		"id":            id,
		"tenant_id":     tenantID,
		"student_id":    studentID,
		"student_name":  studentName,
		"absence_date":  absenceDate.UTC(),
		"reason":        "sick",
		"status":        absence.StatusPending,
		"submitted_at":  absenceDate.UTC(),
		"reviewed_at":   nil,
		"reviewer_note": Sensitive,
	}
}

func AnnouncementRow(tenantID, id, title string, createdAt time.Time, publishedAt null.Time) listing.Row {
	row := listing.Row{
		"id":           id,
		"tenant_id":    tenantID,
		"title":        title,
		"body":         Sensitive,
		"audience":     announcement.AudienceAll,
		"status":       announcement.StatusDraft,
		"author_name":  "Principal",
		"published_at": nil,
		"created_at":   createdAt.UTC(),
	}
	if publishedAt.Valid {
		row["status"] = announcement.StatusPublished
		row["published_at"] = publishedAt.Time.UTC()
	}
	return row
}

// NewValidator returns a validator & translator set up as in the apps.
func NewValidator() (*validator.Validate, ut.Translator) {
	validate := validator.New()
	translator := core.NewTranslator()
	core.InitValidators(validate, translator)
	return validate, translator
}

// NewService returns a listing service over every admin table, backed by store.
func NewService(store listing.Store, events listing.EventPublisher, logger core.Logger) *listing.Service {
	validate, translator := NewValidator()
	return listing.NewService(
		resources.NewRegistry(),
		listing.NewParser(validate, translator),
		listing.NewExecutor(store),
		events,
		logger,
	)
}
