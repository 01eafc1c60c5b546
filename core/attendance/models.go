package attendance

import "time"

const (
	StatusPresent = "PRESENT"
	StatusAbsent  = "ABSENT"
	StatusLate    = "LATE"
	StatusExcused = "EXCUSED"
)

var Statuses = []string{StatusPresent, StatusAbsent, StatusLate, StatusExcused}

// Record is the attendance of one student at one session.
// Student & session names are denormalized at marking time.
type Record struct {
	ID           string    `json:"id"`
	SessionID    string    `json:"sessionId"`
	StudentID    string    `json:"studentId"`
	StudentName  string    `json:"studentName"`
	SessionTitle string    `json:"sessionTitle"`
	SessionDate  time.Time `json:"sessionDate"`
	Status       string    `json:"status"`
	MarkedAt     time.Time `json:"markedAt"`
}
