package domain

import "time"

// StudentStatus represents lifecycle states for a student record.
type StudentStatus string

const (
	StudentStatusActive    StudentStatus = "ACTIVE"
	StudentStatusInactive  StudentStatus = "INACTIVE"
	StudentStatusGraduated StudentStatus = "GRADUATED"
	StudentStatusSuspended StudentStatus = "SUSPENDED"
	StudentStatusWithdrawn StudentStatus = "WITHDRAWN"
)

// Valid reports whether the status is one of the known values.
func (s StudentStatus) Valid() bool {
	switch s {
	case StudentStatusActive, StudentStatusInactive, StudentStatusGraduated,
		StudentStatusSuspended, StudentStatusWithdrawn:
		return true
	}
	return false
}

// Student is the domain model for an enrolled student in the directory.
type Student struct {
	ID        string
	StudentID string
	FirstName string
	LastName  string
	Email     string
	Phone     *string
	Programme string
	Semester  int
	Status    StudentStatus
	GPA       *float64
	CreatedAt time.Time
	UpdatedAt time.Time
}

// FullName joins the name parts for display.
func (s *Student) FullName() string {
	return s.FirstName + " " + s.LastName
}

// IsActive reports whether the student is currently enrolled.
func (s *Student) IsActive() bool {
	return s.Status == StudentStatusActive
}
