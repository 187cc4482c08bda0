package http_test

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"

	httptransport "github.com/spec-kit/college-records/internal/api/http"
	"github.com/spec-kit/college-records/internal/api/http/handlers"
	"github.com/spec-kit/college-records/internal/auth"
	"github.com/spec-kit/college-records/internal/config"
	"github.com/spec-kit/college-records/internal/domain"
	"github.com/spec-kit/college-records/internal/events"
	"github.com/spec-kit/college-records/internal/observability"
	"github.com/spec-kit/college-records/internal/persistence"
	"github.com/spec-kit/college-records/internal/repository/repofakes"
	"github.com/spec-kit/college-records/internal/service"
)

func setupApp(t *testing.T) *fiber.App {
	t.Helper()
	ctx := context.Background()

	users := repofakes.NewFakeUserRepo()
	for _, seed := range []struct {
		userID, email, password, first, last string
		role                                 domain.Role
	}{
		{"ADMIN001", "admin@college.edu", "admin123", "John", "Administrator", domain.RoleAdmin},
		{"STAFF001", "admissions@college.edu", "staff123", "Michael", "Thompson", domain.RoleStaff},
		{"STUDENT001", "john.doe@college.edu", "student123", "John", "Doe", domain.RoleStudent},
	} {
		hash, err := auth.HashPassword(seed.password, bcrypt.MinCost)
		require.NoError(t, err)
		require.NoError(t, users.Create(ctx, &domain.User{
			UserID:       seed.userID,
			Email:        seed.email,
			PasswordHash: hash,
			FirstName:    seed.first,
			LastName:     seed.last,
			Role:         seed.role,
		}))
	}

	students := repofakes.NewFakeStudentRepo()
	require.NoError(t, students.Create(ctx, &domain.Student{
		StudentID: "STUDENT001", FirstName: "John", LastName: "Doe",
		Email: "john.doe@college.edu", Programme: "Computer Science",
		Semester: 3, Status: domain.StudentStatusActive,
	}))
	require.NoError(t, students.Create(ctx, &domain.Student{
		StudentID: "STUDENT002", FirstName: "Jane", LastName: "Smith",
		Email: "jane.smith@college.edu", Programme: "Electrical Engineering",
		Semester: 2, Status: domain.StudentStatusActive,
	}))

	revocations := auth.NewMemoryRevocationStore()
	dispatcher := events.NewInMemoryDispatcher()
	logger := zap.NewNop()

	authService := service.NewAuthService(config.AuthConfig{
		JWTSecret:     "router-test-secret",
		TokenTTLHours: 24,
	}, users, revocations, dispatcher)
	studentService := service.NewStudentService(students, dispatcher)
	dashboardService := service.NewDashboardService(students, users, &persistence.Postgres{})

	app := fiber.New()
	httptransport.RegisterMiddlewares(app, logger, observability.NewMetrics(), 0)
	httptransport.RegisterRoutes(app, httptransport.RouteConfig{
		Health:         handlers.NewHealthHandler("college-records-service", "test", &persistence.Postgres{}, &persistence.Redis{}),
		Auth:           handlers.NewAuthHandler(authService),
		Students:       handlers.NewStudentsHandler(studentService),
		Dashboard:      handlers.NewDashboardHandler(dashboardService),
		AuthMiddleware: auth.NewAuthMiddleware(authService.TokenManager(), revocations, users, logger),
	})
	return app
}

func doJSON(t *testing.T, app *fiber.App, method, path, bearer string, body any) (*http.Response, map[string]any) {
	t.Helper()
	var reader *bytes.Reader
	if body != nil {
		payload, err := json.Marshal(body)
		require.NoError(t, err)
		reader = bytes.NewReader(payload)
	} else {
		reader = bytes.NewReader(nil)
	}
	req := httptest.NewRequest(method, path, reader)
	req.Header.Set("Content-Type", "application/json")
	if bearer != "" {
		req.Header.Set("Authorization", "Bearer "+bearer)
	}
	resp, err := app.Test(req)
	require.NoError(t, err)

	var decoded map[string]any
	_ = json.NewDecoder(resp.Body).Decode(&decoded)
	resp.Body.Close()
	return resp, decoded
}

func login(t *testing.T, app *fiber.App, email, password string) string {
	t.Helper()
	resp, body := doJSON(t, app, http.MethodPost, "/auth/login", "", map[string]string{
		"email": email, "password": password,
	})
	require.Equal(t, http.StatusOK, resp.StatusCode)
	require.Equal(t, true, body["success"])
	token, _ := body["token"].(string)
	require.NotEmpty(t, token)
	return token
}

func TestLoginValidation(t *testing.T) {
	app := setupApp(t)

	resp, body := doJSON(t, app, http.MethodPost, "/auth/login", "", map[string]string{"email": "admin@college.edu"})
	require.Equal(t, http.StatusBadRequest, resp.StatusCode)
	require.Equal(t, "Email and password are required", body["error"])
}

func TestLoginBadCredentials(t *testing.T) {
	app := setupApp(t)

	for _, creds := range []map[string]string{
		{"email": "john.doe@college.edu", "password": "wrong"},
		{"email": "nobody@college.edu", "password": "student123"},
	} {
		resp, body := doJSON(t, app, http.MethodPost, "/auth/login", "", creds)
		require.Equal(t, http.StatusBadRequest, resp.StatusCode)
		require.Equal(t, "Invalid credentials", body["error"])
	}
}

func TestLoginResponsePayload(t *testing.T) {
	app := setupApp(t)

	resp, body := doJSON(t, app, http.MethodPost, "/auth/login", "", map[string]string{
		"email": "john.doe@college.edu", "password": "student123",
	})
	require.Equal(t, http.StatusOK, resp.StatusCode)
	require.Equal(t, true, body["success"])
	require.NotEmpty(t, body["token"])

	user, ok := body["user"].(map[string]any)
	require.True(t, ok)
	require.Equal(t, "STUDENT001", user["id"])
	require.Equal(t, "john.doe@college.edu", user["email"])
	require.Equal(t, "STUDENT", user["role"])
	require.Equal(t, "John", user["firstName"])
	require.Equal(t, "Doe", user["lastName"])
	require.Equal(t, "John Doe", user["fullName"])
}

func TestSessionLifecycle(t *testing.T) {
	app := setupApp(t)
	token := login(t, app, "john.doe@college.edu", "student123")

	resp, body := doJSON(t, app, http.MethodGet, "/auth/me", token, nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	user := body["user"].(map[string]any)
	require.Equal(t, "STUDENT001", user["id"])
	require.Equal(t, "STUDENT", user["role"])

	resp, body = doJSON(t, app, http.MethodPost, "/auth/logout", token, nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	require.Equal(t, true, body["success"])
	require.Equal(t, "Logged out successfully", body["message"])

	// same token no longer authenticates
	resp, _ = doJSON(t, app, http.MethodGet, "/auth/me", token, nil)
	require.Equal(t, http.StatusUnauthorized, resp.StatusCode)
}

func TestLogoutWithoutTokenIsNoOp(t *testing.T) {
	app := setupApp(t)

	resp, body := doJSON(t, app, http.MethodPost, "/auth/logout", "", nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	require.Equal(t, true, body["success"])
}

func TestMeRequiresAuthentication(t *testing.T) {
	app := setupApp(t)

	resp, _ := doJSON(t, app, http.MethodGet, "/auth/me", "", nil)
	require.Equal(t, http.StatusUnauthorized, resp.StatusCode)
}

func TestStudentDirectoryRoleGuards(t *testing.T) {
	app := setupApp(t)

	resp, _ := doJSON(t, app, http.MethodGet, "/students", "", nil)
	require.Equal(t, http.StatusUnauthorized, resp.StatusCode)

	studentToken := login(t, app, "john.doe@college.edu", "student123")
	resp, _ = doJSON(t, app, http.MethodGet, "/students", studentToken, nil)
	require.Equal(t, http.StatusForbidden, resp.StatusCode)

	staffToken := login(t, app, "admissions@college.edu", "staff123")
	resp, body := doJSON(t, app, http.MethodGet, "/students", staffToken, nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	data := body["data"].([]any)
	require.Len(t, data, 2)

	// create is admin only
	newStudent := map[string]any{
		"studentId": "STUDENT003", "firstName": "Amelia", "lastName": "Chen",
		"email": "amelia.chen@college.edu", "programme": "Mathematics", "semester": 1,
	}
	resp, _ = doJSON(t, app, http.MethodPost, "/students", staffToken, newStudent)
	require.Equal(t, http.StatusForbidden, resp.StatusCode)

	adminToken := login(t, app, "admin@college.edu", "admin123")
	resp, _ = doJSON(t, app, http.MethodPost, "/students", adminToken, newStudent)
	require.Equal(t, http.StatusCreated, resp.StatusCode)

	resp, body = doJSON(t, app, http.MethodGet, "/students/STUDENT003", adminToken, nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	record := body["data"].(map[string]any)
	require.Equal(t, "Amelia Chen", record["fullName"])
}

func TestDashboardStats(t *testing.T) {
	app := setupApp(t)
	adminToken := login(t, app, "admin@college.edu", "admin123")

	resp, body := doJSON(t, app, http.MethodGet, "/dashboard/stats", adminToken, nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	require.Equal(t, float64(2), body["totalStudents"])
	require.Equal(t, float64(2), body["activeStudents"])
	require.Equal(t, float64(3), body["totalUsers"])
}
