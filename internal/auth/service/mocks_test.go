package service_test

import (
	"context"
	"testing"
	"time"

	"github.com/AlibekovAA/ricebook/backend/internal/auth/service"
	"github.com/AlibekovAA/ricebook/backend/internal/common/clock"
	"github.com/AlibekovAA/ricebook/backend/internal/common/logger"
	"github.com/AlibekovAA/ricebook/backend/internal/session"
	userdomain "github.com/AlibekovAA/ricebook/backend/internal/user/domain"
	userrepo "github.com/AlibekovAA/ricebook/backend/internal/user/repository"
)

type mockUserRepo struct {
	createFunc         func(ctx context.Context, user userdomain.User) error
	findByUsernameFunc func(ctx context.Context, username string) (userdomain.User, error)
	findByIDFunc       func(ctx context.Context, id userdomain.ID) (userdomain.User, error)
	updatePasswordFunc func(ctx context.Context, username, hash string) error
	updateFieldFunc    func(ctx context.Context, username string, field userdomain.Field, value string) error
}

func (m *mockUserRepo) Create(ctx context.Context, user userdomain.User) error {
	if m.createFunc != nil {
		return m.createFunc(ctx, user)
	}
	return nil
}

func (m *mockUserRepo) FindByUsername(ctx context.Context, username string) (userdomain.User, error) {
	if m.findByUsernameFunc != nil {
		return m.findByUsernameFunc(ctx, username)
	}
	return userdomain.User{}, userrepo.ErrUserNotFound
}

func (m *mockUserRepo) FindByID(ctx context.Context, id userdomain.ID) (userdomain.User, error) {
	if m.findByIDFunc != nil {
		return m.findByIDFunc(ctx, id)
	}
	return userdomain.User{}, userrepo.ErrUserNotFound
}

func (m *mockUserRepo) UpdatePassword(ctx context.Context, username, hash string) error {
	if m.updatePasswordFunc != nil {
		return m.updatePasswordFunc(ctx, username, hash)
	}
	return nil
}

func (m *mockUserRepo) UpdateField(ctx context.Context, username string, field userdomain.Field, value string) error {
	if m.updateFieldFunc != nil {
		return m.updateFieldFunc(ctx, username, field, value)
	}
	return nil
}

type mockHasher struct {
	hashFunc    func(password string) (string, error)
	compareFunc func(hash string, password string) error
}

func (m *mockHasher) Hash(password string) (string, error) {
	if m.hashFunc != nil {
		return m.hashFunc(password)
	}
	return "hashed_" + password, nil
}

func (m *mockHasher) Compare(hash string, password string) error {
	if m.compareFunc != nil {
		return m.compareFunc(hash, password)
	}
	if hash != "hashed_"+password {
		return errMismatch
	}
	return nil
}

type mockIDGenerator struct {
	newIDFunc func() (string, error)
}

func (m *mockIDGenerator) NewID() (string, error) {
	if m.newIDFunc != nil {
		return m.newIDFunc()
	}
	return "00000000-0000-0000-0000-000000000001", nil
}

type mockSessionStore struct {
	createFunc func(ctx context.Context, s session.Session) error
	getFunc    func(ctx context.Context, id string) (session.Session, error)
	deleteFunc func(ctx context.Context, id string) error
}

func (m *mockSessionStore) Create(ctx context.Context, s session.Session) error {
	if m.createFunc != nil {
		return m.createFunc(ctx, s)
	}
	return nil
}

func (m *mockSessionStore) Get(ctx context.Context, id string) (session.Session, error) {
	if m.getFunc != nil {
		return m.getFunc(ctx, id)
	}
	return session.Session{}, session.ErrSessionNotFound
}

func (m *mockSessionStore) Delete(ctx context.Context, id string) error {
	if m.deleteFunc != nil {
		return m.deleteFunc(ctx, id)
	}
	return session.ErrSessionNotFound
}

func (m *mockSessionStore) DeleteExpired(ctx context.Context) (int64, error) {
	return 0, nil
}

type authFixture struct {
	svc      *service.AuthService
	users    *userrepo.MemoryRepository
	sessions *session.MemoryStore
	hasher   *mockHasher
	clock    *clock.MockClock
}

// setupAuthService wires the service over in-memory stores with a
// deterministic hasher and clock.
func setupAuthService(t *testing.T) *authFixture {
	t.Helper()

	clk := clock.NewMockClock(time.Date(2024, 1, 1, 12, 0, 0, 0, time.UTC))
	users := userrepo.NewMemoryRepository()
	sessions := session.NewMemoryStore(clk)
	hasher := &mockHasher{}
	log, _ := logger.New("", "test", "info")

	svc := service.NewAuthService(
		service.AuthServiceDeps{
			Repo:        users,
			Sessions:    sessions,
			Hasher:      hasher,
			IDGenerator: &mockIDGenerator{},
			Clock:       clk,
			Log:         log,
		},
		service.AuthServiceConfig{SessionTTL: time.Hour},
	)

	return &authFixture{svc: svc, users: users, sessions: sessions, hasher: hasher, clock: clk}
}

func setupAuthServiceWith(t *testing.T, repo userrepo.Repository, sessions session.Store) *service.AuthService {
	t.Helper()

	log, _ := logger.New("", "test", "info")
	return service.NewAuthService(
		service.AuthServiceDeps{
			Repo:        repo,
			Sessions:    sessions,
			Hasher:      &mockHasher{},
			IDGenerator: &mockIDGenerator{},
			Clock:       clock.NewMockClock(time.Date(2024, 1, 1, 12, 0, 0, 0, time.UTC)),
			Log:         log,
		},
		service.AuthServiceConfig{},
	)
}

func validRegisterInput(username string) service.RegisterInput {
	return service.RegisterInput{
		Username: username,
		Password: "secret",
		Email:    username + "@example.com",
		Dob:      "1990-04-01",
		Zipcode:  "77005",
		Phone:    "123-456-7890",
	}
}
