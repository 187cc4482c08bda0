package service

import (
	"context"
	"time"

	"github.com/spec-kit/college-records/internal/domain"
	"github.com/spec-kit/college-records/internal/persistence"
	"github.com/spec-kit/college-records/internal/repository"
)

// DashboardStats aggregates the counters shown on the admin dashboard.
type DashboardStats struct {
	TotalStudents  int64 `json:"totalStudents"`
	ActiveStudents int64 `json:"activeStudents"`
	TotalUsers     int64 `json:"totalUsers"`
}

// SystemHealth reports coarse backend health for the dashboard.
type SystemHealth struct {
	Status    string    `json:"status"`
	Database  string    `json:"database"`
	Timestamp time.Time `json:"timestamp"`
}

// DashboardService aggregates counts across repositories.
type DashboardService struct {
	students repository.StudentRepository
	users    repository.UserRepository
	postgres *persistence.Postgres
}

// NewDashboardService builds the service.
func NewDashboardService(students repository.StudentRepository, users repository.UserRepository, postgres *persistence.Postgres) *DashboardService {
	return &DashboardService{students: students, users: users, postgres: postgres}
}

// Stats computes dashboard counters.
func (s *DashboardService) Stats(ctx context.Context) (*DashboardStats, error) {
	totalStudents, err := s.students.Count(ctx)
	if err != nil {
		return nil, err
	}
	activeStudents, err := s.students.CountByStatus(ctx, domain.StudentStatusActive)
	if err != nil {
		return nil, err
	}
	totalUsers, err := s.users.Count(ctx)
	if err != nil {
		return nil, err
	}
	return &DashboardStats{
		TotalStudents:  totalStudents,
		ActiveStudents: activeStudents,
		TotalUsers:     totalUsers,
	}, nil
}

// Health reports backend connectivity.
func (s *DashboardService) Health(ctx context.Context) *SystemHealth {
	health := &SystemHealth{Status: "UP", Database: "CONNECTED", Timestamp: time.Now()}
	if s.postgres == nil || s.postgres.Ping(ctx) != nil {
		health.Status = "DEGRADED"
		health.Database = "DISCONNECTED"
	}
	return health
}
