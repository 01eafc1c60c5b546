package student

import (
	"time"

	"github.com/volatiletech/null/v8"
)

// Statuses
const (
	StatusActive   = "ACTIVE"
	StatusInactive = "INACTIVE"
)

var Statuses = []string{StatusActive, StatusInactive}

// Student is what the admin tables expose of a student.
// Guardian contacts & medical notes stay in the store.
type Student struct {
	ID            string      `json:"id"`
	FirstName     string      `json:"firstName"`
	LastName      string      `json:"lastName"`
	PreferredName null.String `json:"preferredName"`
	ProgramID     null.String `json:"programId"`
	GradeLevel    int         `json:"gradeLevel"`
	Status        string      `json:"status"`
	CreatedAt     time.Time   `json:"createdAt"` // UTC
}
