package repository

import (
	"context"
	"fmt"
	"strings"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/spec-kit/college-records/internal/domain"
)

// StudentFilter narrows directory listings.
type StudentFilter struct {
	Programme *string
	Semester  *int
	Status    *domain.StudentStatus
}

// StudentRepository defines persistence access for the student directory.
type StudentRepository interface {
	Create(ctx context.Context, student *domain.Student) error
	Update(ctx context.Context, student *domain.Student) error
	Delete(ctx context.Context, studentID string) error
	GetByStudentID(ctx context.Context, studentID string) (*domain.Student, error)
	GetByEmail(ctx context.Context, email string) (*domain.Student, error)
	List(ctx context.Context, filter StudentFilter) ([]domain.Student, error)
	Count(ctx context.Context) (int64, error)
	CountByStatus(ctx context.Context, status domain.StudentStatus) (int64, error)
}

type studentRepository struct {
	pool *pgxpool.Pool
}

// NewStudentRepository returns a Postgres-backed implementation.
func NewStudentRepository(pool *pgxpool.Pool) StudentRepository {
	return &studentRepository{pool: pool}
}

const studentColumns = `id, student_id, first_name, last_name, email, phone, programme, semester, status, gpa, created_at, updated_at`

func (r *studentRepository) Create(ctx context.Context, student *domain.Student) error {
	const query = `
        INSERT INTO students (student_id, first_name, last_name, email, phone, programme, semester, status, gpa)
        VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
        RETURNING id, created_at, updated_at`

	return r.pool.QueryRow(ctx, query,
		student.StudentID,
		student.FirstName,
		student.LastName,
		student.Email,
		student.Phone,
		student.Programme,
		student.Semester,
		student.Status,
		student.GPA,
	).Scan(&student.ID, &student.CreatedAt, &student.UpdatedAt)
}

func (r *studentRepository) Update(ctx context.Context, student *domain.Student) error {
	const query = `
        UPDATE students
        SET first_name=$1, last_name=$2, email=$3, phone=$4, programme=$5, semester=$6, status=$7, gpa=$8, updated_at=NOW()
        WHERE student_id=$9`

	cmd, err := r.pool.Exec(ctx, query,
		student.FirstName,
		student.LastName,
		student.Email,
		student.Phone,
		student.Programme,
		student.Semester,
		student.Status,
		student.GPA,
		student.StudentID,
	)
	if err != nil {
		return err
	}
	if cmd.RowsAffected() == 0 {
		return pgx.ErrNoRows
	}
	return nil
}

func (r *studentRepository) Delete(ctx context.Context, studentID string) error {
	cmd, err := r.pool.Exec(ctx, `DELETE FROM students WHERE student_id=$1`, studentID)
	if err != nil {
		return err
	}
	if cmd.RowsAffected() == 0 {
		return pgx.ErrNoRows
	}
	return nil
}

func (r *studentRepository) GetByStudentID(ctx context.Context, studentID string) (*domain.Student, error) {
	query := fmt.Sprintf(`SELECT %s FROM students WHERE student_id=$1`, studentColumns)
	return r.scanOne(r.pool.QueryRow(ctx, query, studentID))
}

func (r *studentRepository) GetByEmail(ctx context.Context, email string) (*domain.Student, error) {
	query := fmt.Sprintf(`SELECT %s FROM students WHERE email=$1`, studentColumns)
	return r.scanOne(r.pool.QueryRow(ctx, query, email))
}

func (r *studentRepository) List(ctx context.Context, filter StudentFilter) ([]domain.Student, error) {
	conditions := []string{}
	args := []any{}

	if filter.Programme != nil {
		args = append(args, *filter.Programme)
		conditions = append(conditions, fmt.Sprintf("programme=$%d", len(args)))
	}
	if filter.Semester != nil {
		args = append(args, *filter.Semester)
		conditions = append(conditions, fmt.Sprintf("semester=$%d", len(args)))
	}
	if filter.Status != nil {
		args = append(args, *filter.Status)
		conditions = append(conditions, fmt.Sprintf("status=$%d", len(args)))
	}

	query := fmt.Sprintf(`SELECT %s FROM students`, studentColumns)
	if len(conditions) > 0 {
		query += " WHERE " + strings.Join(conditions, " AND ")
	}
	query += " ORDER BY student_id"

	rows, err := r.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	students := []domain.Student{}
	for rows.Next() {
		var student domain.Student
		if err := rows.Scan(
			&student.ID,
			&student.StudentID,
			&student.FirstName,
			&student.LastName,
			&student.Email,
			&student.Phone,
			&student.Programme,
			&student.Semester,
			&student.Status,
			&student.GPA,
			&student.CreatedAt,
			&student.UpdatedAt,
		); err != nil {
			return nil, err
		}
		students = append(students, student)
	}
	return students, rows.Err()
}

func (r *studentRepository) Count(ctx context.Context) (int64, error) {
	var count int64
	if err := r.pool.QueryRow(ctx, `SELECT COUNT(*) FROM students`).Scan(&count); err != nil {
		return 0, err
	}
	return count, nil
}

func (r *studentRepository) CountByStatus(ctx context.Context, status domain.StudentStatus) (int64, error) {
	var count int64
	if err := r.pool.QueryRow(ctx, `SELECT COUNT(*) FROM students WHERE status=$1`, status).Scan(&count); err != nil {
		return 0, err
	}
	return count, nil
}

func (r *studentRepository) scanOne(row pgx.Row) (*domain.Student, error) {
	var student domain.Student
	if err := row.Scan(
		&student.ID,
		&student.StudentID,
		&student.FirstName,
		&student.LastName,
		&student.Email,
		&student.Phone,
		&student.Programme,
		&student.Semester,
		&student.Status,
		&student.GPA,
		&student.CreatedAt,
		&student.UpdatedAt,
	); err != nil {
		return nil, err
	}
	return &student, nil
}
