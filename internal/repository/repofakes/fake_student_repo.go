package repofakes

import (
	"context"
	"sync"

	"github.com/jackc/pgx/v5"

	"github.com/spec-kit/college-records/internal/domain"
	"github.com/spec-kit/college-records/internal/repository"
)

// FakeStudentRepo is an in-memory StudentRepository for tests.
type FakeStudentRepo struct {
	mu       sync.RWMutex
	students map[string]*domain.Student
}

// NewFakeStudentRepo creates an empty fake.
func NewFakeStudentRepo() *FakeStudentRepo {
	return &FakeStudentRepo{students: make(map[string]*domain.Student)}
}

var _ repository.StudentRepository = (*FakeStudentRepo)(nil)

// Create stores the student keyed by business ID.
func (f *FakeStudentRepo) Create(_ context.Context, student *domain.Student) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	copied := *student
	f.students[student.StudentID] = &copied
	return nil
}

// Update replaces a stored student.
func (f *FakeStudentRepo) Update(_ context.Context, student *domain.Student) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if _, ok := f.students[student.StudentID]; !ok {
		return pgx.ErrNoRows
	}
	copied := *student
	f.students[student.StudentID] = &copied
	return nil
}

// Delete removes a student.
func (f *FakeStudentRepo) Delete(_ context.Context, studentID string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if _, ok := f.students[studentID]; !ok {
		return pgx.ErrNoRows
	}
	delete(f.students, studentID)
	return nil
}

// GetByStudentID fetches by business key.
func (f *FakeStudentRepo) GetByStudentID(_ context.Context, studentID string) (*domain.Student, error) {
	f.mu.RLock()
	defer f.mu.RUnlock()
	student, ok := f.students[studentID]
	if !ok {
		return nil, pgx.ErrNoRows
	}
	copied := *student
	return &copied, nil
}

// GetByEmail scans for a matching email.
func (f *FakeStudentRepo) GetByEmail(_ context.Context, email string) (*domain.Student, error) {
	f.mu.RLock()
	defer f.mu.RUnlock()
	for _, student := range f.students {
		if student.Email == email {
			copied := *student
			return &copied, nil
		}
	}
	return nil, pgx.ErrNoRows
}

// List applies the filter over the stored students.
func (f *FakeStudentRepo) List(_ context.Context, filter repository.StudentFilter) ([]domain.Student, error) {
	f.mu.RLock()
	defer f.mu.RUnlock()
	result := []domain.Student{}
	for _, student := range f.students {
		if filter.Programme != nil && student.Programme != *filter.Programme {
			continue
		}
		if filter.Semester != nil && student.Semester != *filter.Semester {
			continue
		}
		if filter.Status != nil && student.Status != *filter.Status {
			continue
		}
		result = append(result, *student)
	}
	return result, nil
}

// Count returns the number of stored students.
func (f *FakeStudentRepo) Count(_ context.Context) (int64, error) {
	f.mu.RLock()
	defer f.mu.RUnlock()
	return int64(len(f.students)), nil
}

// CountByStatus counts students in one status.
func (f *FakeStudentRepo) CountByStatus(_ context.Context, status domain.StudentStatus) (int64, error) {
	f.mu.RLock()
	defer f.mu.RUnlock()
	var count int64
	for _, student := range f.students {
		if student.Status == status {
			count++
		}
	}
	return count, nil
}
