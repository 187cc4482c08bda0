package dto

import (
	"time"

	"github.com/spec-kit/college-records/internal/domain"
)

// StudentRequest payload for create/update of directory records.
type StudentRequest struct {
	StudentID string                `json:"studentId"`
	FirstName string                `json:"firstName"`
	LastName  string                `json:"lastName"`
	Email     string                `json:"email"`
	Phone     *string               `json:"phone,omitempty"`
	Programme string                `json:"programme"`
	Semester  int                   `json:"semester"`
	Status    *domain.StudentStatus `json:"status,omitempty"`
	GPA       *float64              `json:"gpa,omitempty"`
}

// StudentResponse is the wire form of a directory record.
type StudentResponse struct {
	StudentID string               `json:"studentId"`
	FirstName string               `json:"firstName"`
	LastName  string               `json:"lastName"`
	FullName  string               `json:"fullName"`
	Email     string               `json:"email"`
	Phone     *string              `json:"phone,omitempty"`
	Programme string               `json:"programme"`
	Semester  int                  `json:"semester"`
	Status    domain.StudentStatus `json:"status"`
	GPA       *float64             `json:"gpa,omitempty"`
	CreatedAt time.Time            `json:"createdAt"`
	UpdatedAt time.Time            `json:"updatedAt"`
}

// NewStudentResponse projects a domain student.
func NewStudentResponse(student *domain.Student) StudentResponse {
	return StudentResponse{
		StudentID: student.StudentID,
		FirstName: student.FirstName,
		LastName:  student.LastName,
		FullName:  student.FullName(),
		Email:     student.Email,
		Phone:     student.Phone,
		Programme: student.Programme,
		Semester:  student.Semester,
		Status:    student.Status,
		GPA:       student.GPA,
		CreatedAt: student.CreatedAt,
		UpdatedAt: student.UpdatedAt,
	}
}
