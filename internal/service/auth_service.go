package service

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"

	"github.com/spec-kit/college-records/internal/auth"
	"github.com/spec-kit/college-records/internal/config"
	"github.com/spec-kit/college-records/internal/domain"
	"github.com/spec-kit/college-records/internal/events"
	"github.com/spec-kit/college-records/internal/repository"
)

// ErrInvalidCredentials is returned for both an unknown email and a wrong
// password, so a caller cannot tell which field was at fault.
var ErrInvalidCredentials = errors.New("invalid credentials")

// Session is the result of a successful login: the authenticated account and
// a freshly issued token. The password hash stays on the User and must not
// leave the handler layer.
type Session struct {
	User      *domain.User
	Token     string
	ExpiresAt time.Time
}

// AuthService coordinates login, session issuance and logout.
type AuthService struct {
	users       repository.UserRepository
	tokens      *auth.TokenManager
	revocations auth.RevocationStore
	dispatcher  events.Dispatcher
}

// NewAuthService builds the service.
func NewAuthService(cfg config.AuthConfig, users repository.UserRepository, revocations auth.RevocationStore, dispatcher events.Dispatcher) *AuthService {
	return &AuthService{
		users:       users,
		tokens:      auth.NewTokenManager(cfg.JWTSecret, cfg.TokenTTL()),
		revocations: revocations,
		dispatcher:  dispatcher,
	}
}

// Authenticate looks up the account by email and compares the password
// against the stored hash. There is no partial success.
func (s *AuthService) Authenticate(ctx context.Context, email, password string) (*domain.User, error) {
	user, err := s.users.GetByEmail(ctx, email)
	if err != nil {
		return nil, ErrInvalidCredentials
	}
	if err := auth.ComparePassword(user.PasswordHash, password); err != nil {
		return nil, ErrInvalidCredentials
	}
	return user, nil
}

// BuildSession issues a token for an already-authenticated account.
func (s *AuthService) BuildSession(ctx context.Context, user *domain.User) (*Session, error) {
	token, expiresAt, err := s.tokens.Issue(user)
	if err != nil {
		return nil, err
	}

	s.publish(ctx, events.Event{
		ID:        uuid.NewString(),
		Type:      events.EventUserLoggedIn,
		SubjectID: user.UserID,
		Actor:     events.Actor{UserID: &user.UserID, Role: &user.Role},
		Timestamp: time.Now(),
		Payload:   events.SessionPayload{Email: user.Email, Role: user.Role},
	})

	return &Session{User: user, Token: token, ExpiresAt: expiresAt}, nil
}

// EndSession revokes the token for the remainder of its validity window.
// Unparseable tokens are ignored: they can never verify, so there is nothing
// to revoke.
func (s *AuthService) EndSession(ctx context.Context, token string) error {
	expiresAt, err := s.tokens.UnverifiedExpiry(token)
	if err != nil {
		return nil
	}
	if err := s.revocations.Revoke(ctx, token, expiresAt); err != nil {
		return err
	}

	event := events.Event{
		ID:        uuid.NewString(),
		Type:      events.EventUserLoggedOut,
		Timestamp: time.Now(),
	}
	if subject, err := s.tokens.UnverifiedSubject(token); err == nil {
		event.SubjectID = subject
	}
	s.publish(ctx, event)
	return nil
}

// TokenManager exposes the underlying token manager for middleware usage.
func (s *AuthService) TokenManager() *auth.TokenManager {
	return s.tokens
}

func (s *AuthService) publish(ctx context.Context, event events.Event) {
	if s.dispatcher == nil {
		return
	}
	_ = s.dispatcher.Publish(ctx, event)
}
