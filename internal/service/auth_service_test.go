package service_test

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	authpkg "github.com/spec-kit/college-records/internal/auth"
	"github.com/spec-kit/college-records/internal/config"
	"github.com/spec-kit/college-records/internal/domain"
	"github.com/spec-kit/college-records/internal/repository/repofakes"
	"github.com/spec-kit/college-records/internal/service"
)

type authFixture struct {
	users       *repofakes.FakeUserRepo
	revocations *authpkg.MemoryRevocationStore
	service     *service.AuthService
}

func setupAuthService(t *testing.T) *authFixture {
	t.Helper()

	users := repofakes.NewFakeUserRepo()
	hash, err := authpkg.HashPassword("student123", bcrypt.MinCost)
	require.NoError(t, err)
	require.NoError(t, users.Create(context.Background(), &domain.User{
		UserID:       "STUDENT001",
		Email:        "john.doe@college.edu",
		PasswordHash: hash,
		FirstName:    "John",
		LastName:     "Doe",
		Role:         domain.RoleStudent,
	}))

	revocations := authpkg.NewMemoryRevocationStore()
	svc := service.NewAuthService(config.AuthConfig{
		JWTSecret:     "service-test-secret",
		TokenTTLHours: 24,
	}, users, revocations, nil)

	return &authFixture{users: users, revocations: revocations, service: svc}
}

func TestAuthenticateSuccess(t *testing.T) {
	f := setupAuthService(t)

	user, err := f.service.Authenticate(context.Background(), "john.doe@college.edu", "student123")
	require.NoError(t, err)
	require.Equal(t, "STUDENT001", user.UserID)
	require.Equal(t, domain.RoleStudent, user.Role)
}

func TestAuthenticateFailuresAreIndistinguishable(t *testing.T) {
	f := setupAuthService(t)
	ctx := context.Background()

	_, wrongPassword := f.service.Authenticate(ctx, "john.doe@college.edu", "wrong")
	_, unknownEmail := f.service.Authenticate(ctx, "nobody@college.edu", "student123")

	require.ErrorIs(t, wrongPassword, service.ErrInvalidCredentials)
	require.ErrorIs(t, unknownEmail, service.ErrInvalidCredentials)
	require.Equal(t, wrongPassword.Error(), unknownEmail.Error())
}

func TestBuildSessionIssuesVerifiableToken(t *testing.T) {
	f := setupAuthService(t)
	ctx := context.Background()

	user, err := f.service.Authenticate(ctx, "john.doe@college.edu", "student123")
	require.NoError(t, err)

	session, err := f.service.BuildSession(ctx, user)
	require.NoError(t, err)
	require.NotEmpty(t, session.Token)
	require.WithinDuration(t, time.Now().Add(24*time.Hour), session.ExpiresAt, 5*time.Second)

	claims, err := f.service.TokenManager().Verify(session.Token)
	require.NoError(t, err)
	require.Equal(t, "STUDENT001", claims.Subject)
	require.Equal(t, "john.doe@college.edu", claims.Email)
	require.Equal(t, domain.RoleStudent, claims.Role)
	require.Equal(t, "John", claims.FirstName)
	require.Equal(t, "Doe", claims.LastName)
}

func TestEndSessionRevokesToken(t *testing.T) {
	f := setupAuthService(t)
	ctx := context.Background()

	user, err := f.service.Authenticate(ctx, "john.doe@college.edu", "student123")
	require.NoError(t, err)
	session, err := f.service.BuildSession(ctx, user)
	require.NoError(t, err)

	require.NoError(t, f.service.EndSession(ctx, session.Token))

	revoked, err := f.revocations.IsRevoked(ctx, session.Token)
	require.NoError(t, err)
	require.True(t, revoked)

	// revoking twice stays a no-op
	require.NoError(t, f.service.EndSession(ctx, session.Token))
}

func TestEndSessionIgnoresUnparseableToken(t *testing.T) {
	f := setupAuthService(t)
	ctx := context.Background()

	require.NoError(t, f.service.EndSession(ctx, "not-a-token"))

	revoked, err := f.revocations.IsRevoked(ctx, "not-a-token")
	require.NoError(t, err)
	require.False(t, revoked)
}
