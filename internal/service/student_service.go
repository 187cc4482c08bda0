package service

import (
	"context"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"

	"github.com/spec-kit/college-records/internal/auth"
	"github.com/spec-kit/college-records/internal/domain"
	"github.com/spec-kit/college-records/internal/events"
	"github.com/spec-kit/college-records/internal/repository"
	apperrors "github.com/spec-kit/college-records/pkg/util/errorutil"
)

// StudentInput carries the writable fields of a directory record.
type StudentInput struct {
	StudentID string
	FirstName string
	LastName  string
	Email     string
	Phone     *string
	Programme string
	Semester  int
	Status    *domain.StudentStatus
	GPA       *float64
}

// StudentService manages the student directory.
type StudentService struct {
	students   repository.StudentRepository
	dispatcher events.Dispatcher
}

// NewStudentService builds the service.
func NewStudentService(students repository.StudentRepository, dispatcher events.Dispatcher) *StudentService {
	return &StudentService{students: students, dispatcher: dispatcher}
}

// List returns directory records matching the filter.
func (s *StudentService) List(ctx context.Context, filter repository.StudentFilter) ([]domain.Student, error) {
	return s.students.List(ctx, filter)
}

// Get fetches one record by business key.
func (s *StudentService) Get(ctx context.Context, studentID string) (*domain.Student, error) {
	student, err := s.students.GetByStudentID(ctx, studentID)
	if err != nil {
		if err == pgx.ErrNoRows {
			return nil, apperrors.NewNotFound("student", map[string]any{"student_id": studentID})
		}
		return nil, err
	}
	return student, nil
}

// Create adds a new record after uniqueness checks on student ID and email.
func (s *StudentService) Create(ctx context.Context, actor *auth.Principal, input StudentInput) (*domain.Student, error) {
	if err := validateStudentInput(input, true); err != nil {
		return nil, err
	}

	if _, err := s.students.GetByStudentID(ctx, input.StudentID); err == nil {
		return nil, apperrors.NewConflict("student ID already exists", map[string]any{"student_id": input.StudentID})
	} else if err != pgx.ErrNoRows {
		return nil, err
	}
	if _, err := s.students.GetByEmail(ctx, input.Email); err == nil {
		return nil, apperrors.NewConflict("email already exists", map[string]any{"email": input.Email})
	} else if err != pgx.ErrNoRows {
		return nil, err
	}

	status := domain.StudentStatusActive
	if input.Status != nil {
		status = *input.Status
	}
	student := &domain.Student{
		StudentID: input.StudentID,
		FirstName: input.FirstName,
		LastName:  input.LastName,
		Email:     input.Email,
		Phone:     input.Phone,
		Programme: input.Programme,
		Semester:  input.Semester,
		Status:    status,
		GPA:       input.GPA,
	}
	if err := s.students.Create(ctx, student); err != nil {
		return nil, err
	}

	s.publishChange(ctx, events.EventStudentCreated, actor, student)
	return student, nil
}

// Update modifies an existing record.
func (s *StudentService) Update(ctx context.Context, actor *auth.Principal, studentID string, input StudentInput) (*domain.Student, error) {
	if err := validateStudentInput(input, false); err != nil {
		return nil, err
	}

	student, err := s.Get(ctx, studentID)
	if err != nil {
		return nil, err
	}

	student.FirstName = input.FirstName
	student.LastName = input.LastName
	student.Email = input.Email
	student.Phone = input.Phone
	student.Programme = input.Programme
	student.Semester = input.Semester
	if input.Status != nil {
		student.Status = *input.Status
	}
	student.GPA = input.GPA

	if err := s.students.Update(ctx, student); err != nil {
		if err == pgx.ErrNoRows {
			return nil, apperrors.NewNotFound("student", map[string]any{"student_id": studentID})
		}
		return nil, err
	}

	s.publishChange(ctx, events.EventStudentUpdated, actor, student)
	return student, nil
}

// Delete removes a record from the directory.
func (s *StudentService) Delete(ctx context.Context, actor *auth.Principal, studentID string) error {
	student, err := s.Get(ctx, studentID)
	if err != nil {
		return err
	}
	if err := s.students.Delete(ctx, studentID); err != nil {
		if err == pgx.ErrNoRows {
			return apperrors.NewNotFound("student", map[string]any{"student_id": studentID})
		}
		return err
	}

	s.publishChange(ctx, events.EventStudentDeleted, actor, student)
	return nil
}

func (s *StudentService) publishChange(ctx context.Context, eventType events.EventType, actor *auth.Principal, student *domain.Student) {
	if s.dispatcher == nil {
		return
	}
	event := events.Event{
		ID:        uuid.NewString(),
		Type:      eventType,
		SubjectID: student.StudentID,
		Timestamp: time.Now(),
		Payload: events.StudentChangedPayload{
			Programme: student.Programme,
			Semester:  student.Semester,
			Status:    student.Status,
		},
	}
	if actor != nil && actor.User != nil {
		event.Actor = events.Actor{UserID: &actor.User.UserID, Role: &actor.Role}
	}
	_ = s.dispatcher.Publish(ctx, event)
}

func validateStudentInput(input StudentInput, requireStudentID bool) error {
	details := map[string]any{}
	if requireStudentID && strings.TrimSpace(input.StudentID) == "" {
		details["student_id"] = "required"
	}
	if strings.TrimSpace(input.FirstName) == "" {
		details["first_name"] = "required"
	}
	if strings.TrimSpace(input.LastName) == "" {
		details["last_name"] = "required"
	}
	if strings.TrimSpace(input.Email) == "" {
		details["email"] = "required"
	}
	if strings.TrimSpace(input.Programme) == "" {
		details["programme"] = "required"
	}
	if input.Semester <= 0 {
		details["semester"] = "must be positive"
	}
	if input.Status != nil && !input.Status.Valid() {
		details["status"] = "unknown status"
	}
	if len(details) > 0 {
		return apperrors.NewValidationError("invalid student payload", details)
	}
	return nil
}
