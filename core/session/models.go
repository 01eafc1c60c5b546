package session

import "time"

const (
	StatusScheduled = "SCHEDULED"
	StatusCompleted = "COMPLETED"
	StatusCancelled = "CANCELLED"
)

var Statuses = []string{StatusScheduled, StatusCompleted, StatusCancelled}

// Session is a tutoring session.
type Session struct {
	ID        string    `json:"id"`
	ProgramID string    `json:"programId"`
	Title     string    `json:"title"`
	TutorName string    `json:"tutorName"`
	Location  string    `json:"location"`
	StartsAt  time.Time `json:"startsAt"`
	EndsAt    time.Time `json:"endsAt"`
	Status    string    `json:"status"`
}
