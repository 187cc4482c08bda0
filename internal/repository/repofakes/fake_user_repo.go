package repofakes

import (
	"context"
	"sync"

	"github.com/jackc/pgx/v5"

	"github.com/spec-kit/college-records/internal/domain"
	"github.com/spec-kit/college-records/internal/repository"
)

// FakeUserRepo is an in-memory UserRepository for tests.
type FakeUserRepo struct {
	mu    sync.RWMutex
	users map[string]*domain.User
}

// NewFakeUserRepo creates an empty fake.
func NewFakeUserRepo() *FakeUserRepo {
	return &FakeUserRepo{users: make(map[string]*domain.User)}
}

var _ repository.UserRepository = (*FakeUserRepo)(nil)

// Create stores the user keyed by business ID.
func (f *FakeUserRepo) Create(_ context.Context, user *domain.User) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	copied := *user
	f.users[user.UserID] = &copied
	return nil
}

// GetByUserID fetches by business key.
func (f *FakeUserRepo) GetByUserID(_ context.Context, userID string) (*domain.User, error) {
	f.mu.RLock()
	defer f.mu.RUnlock()
	user, ok := f.users[userID]
	if !ok {
		return nil, pgx.ErrNoRows
	}
	copied := *user
	return &copied, nil
}

// GetByEmail scans for a matching email.
func (f *FakeUserRepo) GetByEmail(_ context.Context, email string) (*domain.User, error) {
	f.mu.RLock()
	defer f.mu.RUnlock()
	for _, user := range f.users {
		if user.Email == email {
			copied := *user
			return &copied, nil
		}
	}
	return nil, pgx.ErrNoRows
}

// Count returns the number of stored users.
func (f *FakeUserRepo) Count(_ context.Context) (int64, error) {
	f.mu.RLock()
	defer f.mu.RUnlock()
	return int64(len(f.users)), nil
}

// Delete removes a user, simulating account deletion after token issuance.
func (f *FakeUserRepo) Delete(userID string) {
	f.mu.Lock()
	defer f.mu.Unlock()
	delete(f.users, userID)
}
