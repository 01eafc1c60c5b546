package absence

import (
	"time"

	"github.com/volatiletech/null/v8"
)

const (
	StatusPending  = "PENDING"
	StatusApproved = "APPROVED"
	StatusRejected = "REJECTED"
)

var Statuses = []string{StatusPending, StatusApproved, StatusRejected}

// Request is a guardian's request to excuse a student for one day.
type Request struct {
	ID          string    `json:"id"`
	StudentID   string    `json:"studentId"`
	StudentName string    `json:"studentName"`
	AbsenceDate time.Time `json:"absenceDate"`
	Reason      string    `json:"reason"`
	Status      string    `json:"status"`
	SubmittedAt time.Time `json:"submittedAt"`
	ReviewedAt  null.Time `json:"reviewedAt"`
}
