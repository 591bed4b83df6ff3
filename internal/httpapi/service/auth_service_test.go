package service

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"gorm.io/gorm"

	"reviewhub/internal/config"
	"reviewhub/internal/httpapi/models"
	"reviewhub/internal/httpapi/validate"
)

// MockUserRepository mocks the repository.UserRepository interface
type MockUserRepository struct {
	mock.Mock
}

func (m *MockUserRepository) Create(ctx context.Context, user *models.User) error {
	args := m.Called(ctx, user)
	if args.Error(0) == nil && user.ID == "" {
		user.ID = "user-1"
	}
	return args.Error(0)
}

func (m *MockUserRepository) List(ctx context.Context, search string, page, pageSize int) ([]models.User, int64, error) {
	args := m.Called(ctx, search, page, pageSize)
	return args.Get(0).([]models.User), args.Get(1).(int64), args.Error(2)
}

func (m *MockUserRepository) FindByUsername(ctx context.Context, username string) (*models.User, error) {
	args := m.Called(ctx, username)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.User), args.Error(1)
}

func (m *MockUserRepository) FindByEmail(ctx context.Context, email string) (*models.User, error) {
	args := m.Called(ctx, email)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.User), args.Error(1)
}

func (m *MockUserRepository) FindByID(ctx context.Context, id string) (*models.User, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.User), args.Error(1)
}

func (m *MockUserRepository) Update(ctx context.Context, user *models.User) error {
	args := m.Called(ctx, user)
	return args.Error(0)
}

func (m *MockUserRepository) DeleteByUsername(ctx context.Context, username string) error {
	args := m.Called(ctx, username)
	return args.Error(0)
}

// fakeCodeStore keeps plaintext codes in a map; good enough for unit tests.
type fakeCodeStore struct {
	codes map[string]string
}

func newFakeCodeStore() *fakeCodeStore {
	return &fakeCodeStore{codes: make(map[string]string)}
}

func (f *fakeCodeStore) Issue(ctx context.Context, userID, code string) error {
	f.codes[userID] = code
	return nil
}

func (f *fakeCodeStore) Consume(ctx context.Context, userID, code string) (bool, error) {
	stored, ok := f.codes[userID]
	if !ok || stored != code {
		return false, nil
	}
	delete(f.codes, userID)
	return true, nil
}

// fakeSender records dispatches and optionally fails them.
type fakeSender struct {
	sent []string
	err  error
}

func (f *fakeSender) SendConfirmationCode(to, code string) error {
	if f.err != nil {
		return f.err
	}
	f.sent = append(f.sent, to)
	return nil
}

func testLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func testConfig() *config.Config {
	return &config.Config{
		JWTSecret:      "0123456789abcdef0123456789abcdef",
		AccessTokenTTL: time.Hour,
	}
}

func newTestAuthService(repo *MockUserRepository, codes CodeStore, sender *fakeSender) AuthService {
	return NewAuthService(repo, codes, sender, testLogger(), testConfig())
}

func TestSignUp_NewUser(t *testing.T) {
	repo := new(MockUserRepository)
	codes := newFakeCodeStore()
	sender := &fakeSender{}
	svc := newTestAuthService(repo, codes, sender)

	repo.On("FindByUsername", mock.Anything, "bob").Return(nil, gorm.ErrRecordNotFound)
	repo.On("FindByEmail", mock.Anything, "b@x.com").Return(nil, gorm.ErrRecordNotFound)
	repo.On("Create", mock.Anything, mock.AnythingOfType("*models.User")).Return(nil)

	user, err := svc.SignUp(context.Background(), "bob", "b@x.com")

	assert.NoError(t, err)
	assert.Equal(t, "bob", user.Username)
	assert.Equal(t, models.RoleUser, user.Role)
	assert.Len(t, codes.codes, 1)
	assert.Equal(t, []string{"b@x.com"}, sender.sent)
	repo.AssertExpectations(t)
}

func TestSignUp_IdempotentRetry(t *testing.T) {
	repo := new(MockUserRepository)
	codes := newFakeCodeStore()
	sender := &fakeSender{}
	svc := newTestAuthService(repo, codes, sender)

	existing := &models.User{ID: "user-1", Username: "bob", Email: "b@x.com"}
	repo.On("FindByUsername", mock.Anything, "bob").Return(existing, nil)

	codes.codes["user-1"] = "old-code"

	user, err := svc.SignUp(context.Background(), "bob", "b@x.com")

	assert.NoError(t, err)
	assert.Equal(t, "bob", user.Username)
	// retry re-issues a fresh code for the same user
	assert.NotEqual(t, "old-code", codes.codes["user-1"])
	repo.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
}

func TestSignUp_UsernameHeldByDifferentEmail(t *testing.T) {
	repo := new(MockUserRepository)
	svc := newTestAuthService(repo, newFakeCodeStore(), &fakeSender{})

	existing := &models.User{ID: "user-1", Username: "bob", Email: "b@x.com"}
	repo.On("FindByUsername", mock.Anything, "bob").Return(existing, nil)

	_, err := svc.SignUp(context.Background(), "bob", "other@x.com")

	assert.ErrorIs(t, err, ErrUsernameTaken)
}

func TestSignUp_EmailHeldByDifferentUsername(t *testing.T) {
	repo := new(MockUserRepository)
	svc := newTestAuthService(repo, newFakeCodeStore(), &fakeSender{})

	repo.On("FindByUsername", mock.Anything, "alice").Return(nil, gorm.ErrRecordNotFound)
	repo.On("FindByEmail", mock.Anything, "b@x.com").
		Return(&models.User{ID: "user-1", Username: "bob", Email: "b@x.com"}, nil)

	_, err := svc.SignUp(context.Background(), "alice", "b@x.com")

	assert.ErrorIs(t, err, ErrEmailTaken)
}

func TestSignUp_ReservedUsername(t *testing.T) {
	repo := new(MockUserRepository)
	svc := newTestAuthService(repo, newFakeCodeStore(), &fakeSender{})

	for _, name := range []string{"me", "Me", "ME"} {
		_, err := svc.SignUp(context.Background(), name, "me@x.com")
		assert.ErrorIs(t, err, validate.ErrUsernameReserved)
	}
	repo.AssertNotCalled(t, "FindByUsername", mock.Anything, mock.Anything)
}

func TestSignUp_DispatchFailureDoesNotUndoUser(t *testing.T) {
	repo := new(MockUserRepository)
	codes := newFakeCodeStore()
	sender := &fakeSender{err: errors.New("smtp down")}
	svc := newTestAuthService(repo, codes, sender)

	repo.On("FindByUsername", mock.Anything, "bob").Return(nil, gorm.ErrRecordNotFound)
	repo.On("FindByEmail", mock.Anything, "b@x.com").Return(nil, gorm.ErrRecordNotFound)
	repo.On("Create", mock.Anything, mock.AnythingOfType("*models.User")).Return(nil)

	user, err := svc.SignUp(context.Background(), "bob", "b@x.com")

	// delivery is best-effort; the account and code survive the failed send
	assert.NoError(t, err)
	assert.NotNil(t, user)
	assert.Len(t, codes.codes, 1)
}

func TestIssueToken_Success(t *testing.T) {
	repo := new(MockUserRepository)
	codes := newFakeCodeStore()
	svc := newTestAuthService(repo, codes, &fakeSender{})

	user := &models.User{ID: "user-1", Username: "bob", Email: "b@x.com", Role: models.RoleUser}
	repo.On("FindByUsername", mock.Anything, "bob").Return(user, nil)
	codes.codes["user-1"] = "12345678"

	token, err := svc.IssueToken(context.Background(), "bob", "12345678")

	assert.NoError(t, err)
	assert.NotEmpty(t, token)

	claims, err := svc.ValidateToken(token)
	assert.NoError(t, err)
	assert.Equal(t, "user-1", claims.UserID)
	assert.Equal(t, "bob", claims.Username)
	assert.Equal(t, string(models.RoleUser), claims.Role)

	// single use: a second exchange with the same code fails
	_, err = svc.IssueToken(context.Background(), "bob", "12345678")
	assert.ErrorIs(t, err, ErrInvalidCode)
}

func TestIssueToken_WrongCode(t *testing.T) {
	repo := new(MockUserRepository)
	codes := newFakeCodeStore()
	svc := newTestAuthService(repo, codes, &fakeSender{})

	user := &models.User{ID: "user-1", Username: "bob", Email: "b@x.com"}
	repo.On("FindByUsername", mock.Anything, "bob").Return(user, nil)
	codes.codes["user-1"] = "12345678"

	_, err := svc.IssueToken(context.Background(), "bob", "00000000")

	assert.ErrorIs(t, err, ErrInvalidCode)
	// the stored code survives a failed attempt
	assert.Equal(t, "12345678", codes.codes["user-1"])
}

func TestIssueToken_UnknownUser(t *testing.T) {
	repo := new(MockUserRepository)
	svc := newTestAuthService(repo, newFakeCodeStore(), &fakeSender{})

	repo.On("FindByUsername", mock.Anything, "ghost").Return(nil, gorm.ErrRecordNotFound)

	_, err := svc.IssueToken(context.Background(), "ghost", "12345678")

	assert.ErrorIs(t, err, gorm.ErrRecordNotFound)
}

func TestIssueToken_ReservedUsername(t *testing.T) {
	repo := new(MockUserRepository)
	svc := newTestAuthService(repo, newFakeCodeStore(), &fakeSender{})

	_, err := svc.IssueToken(context.Background(), "me", "12345678")

	assert.ErrorIs(t, err, validate.ErrUsernameReserved)
	repo.AssertNotCalled(t, "FindByUsername", mock.Anything, mock.Anything)
}

func TestValidateToken_Garbage(t *testing.T) {
	svc := newTestAuthService(new(MockUserRepository), newFakeCodeStore(), &fakeSender{})

	_, err := svc.ValidateToken("not-a-token")
	assert.Error(t, err)
}
