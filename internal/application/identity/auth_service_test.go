package identity

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/orgdesk/backend/internal/application/action"
	"github.com/orgdesk/backend/internal/domain/identity"
	"github.com/orgdesk/backend/internal/domain/shared"
	"github.com/orgdesk/backend/internal/infrastructure/auth"
	"github.com/orgdesk/backend/internal/infrastructure/config"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

type MockUserRepository struct {
	mock.Mock
}

func (m *MockUserRepository) FindByID(ctx context.Context, id uuid.UUID) (*identity.User, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*identity.User), args.Error(1)
}

func (m *MockUserRepository) FindByEmail(ctx context.Context, email string) (*identity.User, error) {
	args := m.Called(ctx, email)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*identity.User), args.Error(1)
}

func (m *MockUserRepository) FindByIDs(ctx context.Context, ids []uuid.UUID) ([]identity.User, error) {
	args := m.Called(ctx, ids)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]identity.User), args.Error(1)
}

func (m *MockUserRepository) ExistsByEmail(ctx context.Context, email string) (bool, error) {
	args := m.Called(ctx, email)
	return args.Bool(0), args.Error(1)
}

func (m *MockUserRepository) Save(ctx context.Context, user *identity.User) error {
	args := m.Called(ctx, user)
	return args.Error(0)
}

func newTestJWTService() *auth.JWTService {
	return auth.NewJWTService(config.JWTConfig{
		Secret:                 "test-secret-key-that-is-long-enough-1234",
		AccessTokenExpiration:  15 * time.Minute,
		RefreshTokenExpiration: 24 * time.Hour,
		Issuer:                 "orgdesk-test",
		MaxRefreshCount:        3,
	})
}

func createAuthService(users *MockUserRepository) (*AuthService, *auth.MemoryRevocationList) {
	revoked := auth.NewMemoryRevocationList()
	svc := NewAuthService(users, newTestJWTService(), revoked, action.NewExecutor(nil), AuthServiceConfig{
		MaxLoginAttempts: 3,
		LockDuration:     10 * time.Minute,
	})
	return svc, revoked
}

func createTestUser(t *testing.T) *identity.User {
	t.Helper()
	u, err := identity.NewUser("ana@example.com", "Ana", "s3cretpass")
	require.NoError(t, err)
	u.ClearDomainEvents()
	return u
}

func signedIn(userID uuid.UUID) context.Context {
	return action.WithActor(context.Background(), &action.Actor{UserID: userID})
}

func TestAuthService_Register_Success(t *testing.T) {
	users := new(MockUserRepository)
	svc, _ := createAuthService(users)

	users.On("ExistsByEmail", mock.Anything, "ana@example.com").Return(false, nil)
	users.On("Save", mock.Anything, mock.AnythingOfType("*identity.User")).Return(nil)

	r := svc.Register(context.Background(), RegisterInput{Email: " Ana@Example.com", Name: "Ana <b>L</b>", Password: "s3cretpass"})

	require.True(t, r.OK(), r.Message)
	assert.Equal(t, "ana@example.com", r.Data.User.Email)
	assert.Equal(t, "Ana L", r.Data.User.Name)
	assert.NotEmpty(t, r.Data.Tokens.AccessToken)
	assert.NotEmpty(t, r.Data.Tokens.RefreshToken)
	users.AssertExpectations(t)
}

func TestAuthService_Register_DuplicateEmail(t *testing.T) {
	users := new(MockUserRepository)
	svc, _ := createAuthService(users)
	users.On("ExistsByEmail", mock.Anything, "ana@example.com").Return(true, nil)

	r := svc.Register(context.Background(), RegisterInput{Email: "ana@example.com", Name: "Ana", Password: "s3cretpass"})

	assert.Equal(t, action.StatusConflict, r.Status)
	require.Len(t, r.FieldErrors, 1)
	assert.Equal(t, "email", r.FieldErrors[0].Field)
	users.AssertNotCalled(t, "Save", mock.Anything, mock.Anything)
}

func TestAuthService_Register_Validation(t *testing.T) {
	svc, _ := createAuthService(new(MockUserRepository))

	r := svc.Register(context.Background(), RegisterInput{Email: "not-an-email", Name: "", Password: "short"})

	assert.Equal(t, action.StatusValidationError, r.Status)
	fields := map[string]bool{}
	for _, fe := range r.FieldErrors {
		fields[fe.Field] = true
	}
	assert.True(t, fields["email"])
	assert.True(t, fields["name"])
	assert.True(t, fields["password"])
}

func TestAuthService_Login_Success(t *testing.T) {
	users := new(MockUserRepository)
	svc, _ := createAuthService(users)
	user := createTestUser(t)

	users.On("FindByEmail", mock.Anything, "ana@example.com").Return(user, nil)
	users.On("Save", mock.Anything, user).Return(nil)

	r := svc.Login(context.Background(), LoginInput{Email: "ANA@example.com", Password: "s3cretpass"})

	require.True(t, r.OK(), r.Message)
	assert.Equal(t, user.ID, r.Data.User.ID)
	assert.NotNil(t, user.LastLoginAt)
	claims, err := newTestJWTService().ValidateAccessToken(r.Data.Tokens.AccessToken)
	require.NoError(t, err)
	assert.Equal(t, user.ID.String(), claims.UserID)
}

func TestAuthService_Login_UnknownEmail(t *testing.T) {
	users := new(MockUserRepository)
	svc, _ := createAuthService(users)
	users.On("FindByEmail", mock.Anything, "ghost@example.com").Return(nil, shared.ErrNotFound)

	r := svc.Login(context.Background(), LoginInput{Email: "ghost@example.com", Password: "whatever1"})

	assert.Equal(t, action.StatusUnauthorized, r.Status)
	assert.Equal(t, ErrInvalidCredentials.Message, r.Message)
}

func TestAuthService_Login_LocksAfterRepeatedFailures(t *testing.T) {
	users := new(MockUserRepository)
	svc, _ := createAuthService(users)
	now := time.Date(2026, 3, 1, 9, 0, 0, 0, time.UTC)
	svc.now = func() time.Time { return now }
	user := createTestUser(t)

	users.On("FindByEmail", mock.Anything, "ana@example.com").Return(user, nil)
	users.On("Save", mock.Anything, user).Return(nil)

	for i := 0; i < 2; i++ {
		r := svc.Login(context.Background(), LoginInput{Email: "ana@example.com", Password: "wrongpass1"})
		assert.Equal(t, ErrInvalidCredentials.Message, r.Message)
	}
	r := svc.Login(context.Background(), LoginInput{Email: "ana@example.com", Password: "wrongpass1"})
	assert.Equal(t, action.StatusUnauthorized, r.Status)
	assert.Equal(t, ErrAccountLocked.Message, r.Message)

	// locked even with the right password
	r = svc.Login(context.Background(), LoginInput{Email: "ana@example.com", Password: "s3cretpass"})
	assert.Equal(t, ErrAccountLocked.Message, r.Message)

	now = now.Add(11 * time.Minute)
	r = svc.Login(context.Background(), LoginInput{Email: "ana@example.com", Password: "s3cretpass"})
	assert.True(t, r.OK())
}

func TestAuthService_Refresh_RotatesToken(t *testing.T) {
	users := new(MockUserRepository)
	svc, revoked := createAuthService(users)
	user := createTestUser(t)
	users.On("FindByID", mock.Anything, user.ID).Return(user, nil)

	pair, err := newTestJWTService().GenerateTokenPair(user.ID, user.Email)
	require.NoError(t, err)

	r := svc.Refresh(context.Background(), RefreshInput{RefreshToken: pair.RefreshToken})
	require.True(t, r.OK(), r.Message)
	assert.NotEqual(t, pair.RefreshToken, r.Data.Tokens.RefreshToken)

	claims, err := newTestJWTService().ValidateRefreshToken(pair.RefreshToken)
	require.NoError(t, err)
	isRevoked, err := revoked.IsRevoked(context.Background(), claims.ID)
	require.NoError(t, err)
	assert.True(t, isRevoked)

	replay := svc.Refresh(context.Background(), RefreshInput{RefreshToken: pair.RefreshToken})
	assert.Equal(t, action.StatusUnauthorized, replay.Status)
}

func TestAuthService_Refresh_InvalidToken(t *testing.T) {
	svc, _ := createAuthService(new(MockUserRepository))

	r := svc.Refresh(context.Background(), RefreshInput{RefreshToken: "garbage"})
	assert.Equal(t, action.StatusUnauthorized, r.Status)

	access, err := newTestJWTService().GenerateTokenPair(uuid.New(), "x@example.com")
	require.NoError(t, err)
	r = svc.Refresh(context.Background(), RefreshInput{RefreshToken: access.AccessToken})
	assert.Equal(t, action.StatusUnauthorized, r.Status)
}

func TestAuthService_Me(t *testing.T) {
	users := new(MockUserRepository)
	svc, _ := createAuthService(users)
	user := createTestUser(t)
	users.On("FindByID", mock.Anything, user.ID).Return(user, nil)

	r := svc.Me(signedIn(user.ID))
	require.True(t, r.OK())
	assert.Equal(t, "Ana", r.Data.Name)

	assert.Equal(t, action.StatusUnauthorized, svc.Me(context.Background()).Status)
}

func TestAuthService_Logout_RevokesTokens(t *testing.T) {
	svc, revoked := createAuthService(new(MockUserRepository))
	userID := uuid.New()
	pair, err := newTestJWTService().GenerateTokenPair(userID, "x@example.com")
	require.NoError(t, err)

	ctx := action.WithActor(context.Background(), &action.Actor{
		UserID:         userID,
		TokenID:        "access-jti",
		TokenExpiresAt: time.Now().Add(time.Minute),
	})
	r := svc.Logout(ctx, LogoutInput{RefreshToken: pair.RefreshToken})
	require.True(t, r.OK())

	ok, _ := revoked.IsRevoked(context.Background(), "access-jti")
	assert.True(t, ok)
	claims, err := newTestJWTService().ValidateRefreshToken(pair.RefreshToken)
	require.NoError(t, err)
	ok, _ = revoked.IsRevoked(context.Background(), claims.ID)
	assert.True(t, ok)
}

func TestAuthService_ChangePassword(t *testing.T) {
	users := new(MockUserRepository)
	svc, _ := createAuthService(users)
	user := createTestUser(t)
	users.On("FindByID", mock.Anything, user.ID).Return(user, nil)
	users.On("Save", mock.Anything, user).Return(nil)

	r := svc.ChangePassword(signedIn(user.ID), ChangePasswordInput{CurrentPassword: "wrongpass1", NewPassword: "n3wpassword"})
	assert.Equal(t, action.StatusValidationError, r.Status)

	r = svc.ChangePassword(signedIn(user.ID), ChangePasswordInput{CurrentPassword: "s3cretpass", NewPassword: "n3wpassword"})
	require.True(t, r.OK())
	assert.True(t, user.VerifyPassword("n3wpassword"))
}
