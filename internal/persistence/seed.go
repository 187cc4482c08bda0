package persistence

import (
	"context"

	"go.uber.org/zap"

	"github.com/spec-kit/college-records/internal/auth"
	"github.com/spec-kit/college-records/internal/domain"
	"github.com/spec-kit/college-records/internal/repository"
)

type seedUser struct {
	userID    string
	email     string
	password  string
	firstName string
	lastName  string
	role      domain.Role
}

type seedStudent struct {
	studentID string
	firstName string
	lastName  string
	email     string
	programme string
	semester  int
}

var seedUsers = []seedUser{
	{"ADMIN001", "admin@college.edu", "admin123", "John", "Administrator", domain.RoleAdmin},
	{"STAFF001", "admissions@college.edu", "staff123", "Michael", "Thompson", domain.RoleStaff},
	{"STUDENT001", "john.doe@college.edu", "student123", "John", "Doe", domain.RoleStudent},
}

var seedStudents = []seedStudent{
	{"STUDENT001", "John", "Doe", "john.doe@college.edu", "Computer Science", 3},
	{"STUDENT002", "Jane", "Smith", "jane.smith@college.edu", "Electrical Engineering", 2},
}

// SeedData populates the baseline accounts and directory records. It only
// writes into empty tables, so a restarted service never duplicates rows.
func SeedData(ctx context.Context, users repository.UserRepository, students repository.StudentRepository, bcryptCost int, logger *zap.Logger) error {
	userCount, err := users.Count(ctx)
	if err != nil {
		return err
	}
	if userCount == 0 {
		for _, seed := range seedUsers {
			hash, err := auth.HashPassword(seed.password, bcryptCost)
			if err != nil {
				return err
			}
			user := &domain.User{
				UserID:       seed.userID,
				Email:        seed.email,
				PasswordHash: hash,
				FirstName:    seed.firstName,
				LastName:     seed.lastName,
				Role:         seed.role,
			}
			if err := users.Create(ctx, user); err != nil {
				return err
			}
		}
		logger.Info("seeded users", zap.Int("count", len(seedUsers)))
	}

	studentCount, err := students.Count(ctx)
	if err != nil {
		return err
	}
	if studentCount == 0 {
		for _, seed := range seedStudents {
			student := &domain.Student{
				StudentID: seed.studentID,
				FirstName: seed.firstName,
				LastName:  seed.lastName,
				Email:     seed.email,
				Programme: seed.programme,
				Semester:  seed.semester,
				Status:    domain.StudentStatusActive,
			}
			if err := students.Create(ctx, student); err != nil {
				return err
			}
		}
		logger.Info("seeded students", zap.Int("count", len(seedStudents)))
	}

	return nil
}
