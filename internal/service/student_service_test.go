package service_test

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/spec-kit/college-records/internal/domain"
	"github.com/spec-kit/college-records/internal/repository"
	"github.com/spec-kit/college-records/internal/repository/repofakes"
	"github.com/spec-kit/college-records/internal/service"
	apperrors "github.com/spec-kit/college-records/pkg/util/errorutil"
)

func validInput() service.StudentInput {
	return service.StudentInput{
		StudentID: "STUDENT010",
		FirstName: "Ada",
		LastName:  "Lovelace",
		Email:     "ada.lovelace@college.edu",
		Programme: "Mathematics",
		Semester:  1,
	}
}

func TestStudentCreateAndGet(t *testing.T) {
	ctx := context.Background()
	svc := service.NewStudentService(repofakes.NewFakeStudentRepo(), nil)

	created, err := svc.Create(ctx, nil, validInput())
	require.NoError(t, err)
	require.Equal(t, domain.StudentStatusActive, created.Status)

	fetched, err := svc.Get(ctx, "STUDENT010")
	require.NoError(t, err)
	require.Equal(t, "Ada Lovelace", fetched.FullName())
}

func TestStudentCreateValidation(t *testing.T) {
	ctx := context.Background()
	svc := service.NewStudentService(repofakes.NewFakeStudentRepo(), nil)

	input := validInput()
	input.Email = ""
	input.Semester = 0

	_, err := svc.Create(ctx, nil, input)
	require.Error(t, err)

	var domainErr *apperrors.DomainError
	require.True(t, errors.As(err, &domainErr))
	require.Equal(t, "VALIDATION_FAILED", domainErr.Code)
	require.Contains(t, domainErr.Details, "email")
	require.Contains(t, domainErr.Details, "semester")
}

func TestStudentCreateDuplicateConflict(t *testing.T) {
	ctx := context.Background()
	svc := service.NewStudentService(repofakes.NewFakeStudentRepo(), nil)

	_, err := svc.Create(ctx, nil, validInput())
	require.NoError(t, err)

	_, err = svc.Create(ctx, nil, validInput())
	var domainErr *apperrors.DomainError
	require.True(t, errors.As(err, &domainErr))
	require.Equal(t, "CONFLICT", domainErr.Code)
}

func TestStudentUpdateAndDelete(t *testing.T) {
	ctx := context.Background()
	svc := service.NewStudentService(repofakes.NewFakeStudentRepo(), nil)

	_, err := svc.Create(ctx, nil, validInput())
	require.NoError(t, err)

	input := validInput()
	input.Semester = 2
	graduated := domain.StudentStatusGraduated
	input.Status = &graduated

	updated, err := svc.Update(ctx, nil, "STUDENT010", input)
	require.NoError(t, err)
	require.Equal(t, 2, updated.Semester)
	require.Equal(t, domain.StudentStatusGraduated, updated.Status)

	require.NoError(t, svc.Delete(ctx, nil, "STUDENT010"))

	_, err = svc.Get(ctx, "STUDENT010")
	var domainErr *apperrors.DomainError
	require.True(t, errors.As(err, &domainErr))
	require.Equal(t, "NOT_FOUND", domainErr.Code)
}

func TestStudentListFilter(t *testing.T) {
	ctx := context.Background()
	repo := repofakes.NewFakeStudentRepo()
	svc := service.NewStudentService(repo, nil)

	first := validInput()
	_, err := svc.Create(ctx, nil, first)
	require.NoError(t, err)

	second := validInput()
	second.StudentID = "STUDENT011"
	second.Email = "grace.hopper@college.edu"
	second.FirstName = "Grace"
	second.LastName = "Hopper"
	second.Programme = "Computer Science"
	_, err = svc.Create(ctx, nil, second)
	require.NoError(t, err)

	programme := "Computer Science"
	matched, err := svc.List(ctx, repository.StudentFilter{Programme: &programme})
	require.NoError(t, err)
	require.Len(t, matched, 1)
	require.Equal(t, "STUDENT011", matched[0].StudentID)

	all, err := svc.List(ctx, repository.StudentFilter{})
	require.NoError(t, err)
	require.Len(t, all, 2)
}
