package events

import (
	"time"

	"github.com/spec-kit/college-records/internal/domain"
)

// EventType enumerates supported event identifiers.
type EventType string

const (
	EventUserLoggedIn   EventType = "user_logged_in"
	EventUserLoggedOut  EventType = "user_logged_out"
	EventStudentCreated EventType = "student_created"
	EventStudentUpdated EventType = "student_updated"
	EventStudentDeleted EventType = "student_deleted"
)

// Actor encapsulates actor metadata for an event. Both fields are nil for
// actions whose caller could not be resolved, such as a logout carrying an
// already-expired token.
type Actor struct {
	UserID *string      `json:"user_id,omitempty"`
	Role   *domain.Role `json:"role,omitempty"`
}

// Event represents a domain event emitted by services. SubjectID names the
// record the event is about: a user ID for session events, a student ID for
// directory events.
type Event struct {
	ID        string      `json:"id"`
	Type      EventType   `json:"type"`
	SubjectID string      `json:"subject_id"`
	Actor     Actor       `json:"actor"`
	Timestamp time.Time   `json:"timestamp"`
	Payload   interface{} `json:"payload"`
}

// SessionPayload payload for login/logout events.
type SessionPayload struct {
	Email string      `json:"email,omitempty"`
	Role  domain.Role `json:"role,omitempty"`
}

// StudentChangedPayload payload for directory events.
type StudentChangedPayload struct {
	Programme string               `json:"programme,omitempty"`
	Semester  int                  `json:"semester,omitempty"`
	Status    domain.StudentStatus `json:"status,omitempty"`
}
