package identity

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/orgdesk/backend/internal/application/action"
	"github.com/orgdesk/backend/internal/domain/identity"
	"github.com/orgdesk/backend/internal/domain/shared"
	"github.com/orgdesk/backend/internal/infrastructure/auth"
	"go.uber.org/zap"
)

var (
	ErrInvalidCredentials  = shared.NewDomainError(shared.ErrUnauthorized.Code, "Invalid email or password")
	ErrAccountLocked       = shared.NewDomainError(shared.ErrUnauthorized.Code, "Too many failed login attempts, try again later")
	ErrInvalidRefreshToken = shared.NewDomainError(shared.ErrUnauthorized.Code, "Refresh token is invalid or expired")
	ErrEmailTaken          = shared.NewFieldError("DUPLICATE_EMAIL", "email", "An account with this email already exists")
)

// AuthServiceConfig contains configuration for the auth service
type AuthServiceConfig struct {
	MaxLoginAttempts int           // Maximum failed login attempts before lock
	LockDuration     time.Duration // How long to lock account after max attempts
}

// DefaultAuthServiceConfig returns default configuration
func DefaultAuthServiceConfig() AuthServiceConfig {
	return AuthServiceConfig{
		MaxLoginAttempts: 5,
		LockDuration:     15 * time.Minute,
	}
}

// AuthService handles authentication operations
type AuthService struct {
	users   identity.UserRepository
	tokens  *auth.JWTService
	revoked auth.RevocationList
	exec    *action.Executor
	config  AuthServiceConfig
	now     func() time.Time
}

// NewAuthService creates a new authentication service
func NewAuthService(
	users identity.UserRepository,
	tokens *auth.JWTService,
	revoked auth.RevocationList,
	exec *action.Executor,
	config AuthServiceConfig,
) *AuthService {
	return &AuthService{
		users:   users,
		tokens:  tokens,
		revoked: revoked,
		exec:    exec,
		config:  config,
		now:     time.Now,
	}
}

// Register creates an account and signs it in
func (s *AuthService) Register(ctx context.Context, in RegisterInput) action.Result[*AuthResult] {
	op := action.Op[*AuthResult]{Name: "auth.register", Input: &in, Public: true}
	return action.Execute(ctx, s.exec, op, func(ctx context.Context, sc action.Scope) (*AuthResult, error) {
		exists, err := s.users.ExistsByEmail(ctx, strings.ToLower(strings.TrimSpace(in.Email)))
		if err != nil {
			return nil, err
		}
		if exists {
			return nil, ErrEmailTaken
		}
		user, err := identity.NewUser(in.Email, in.Name, in.Password)
		if err != nil {
			return nil, err
		}
		user.RecordLoginSuccess(s.now())
		if err := s.users.Save(ctx, user); err != nil {
			if errors.Is(err, shared.ErrAlreadyExists) {
				return nil, ErrEmailTaken
			}
			return nil, err
		}
		s.exec.Publish(ctx, user)
		sc.Logger.Info("user registered", zap.String("user_id", user.ID.String()))
		return s.issue(user)
	})
}

// Login checks credentials and issues a token pair. Repeated failures lock the account.
func (s *AuthService) Login(ctx context.Context, in LoginInput) action.Result[*AuthResult] {
	op := action.Op[*AuthResult]{Name: "auth.login", Input: &in, Public: true}
	return action.Execute(ctx, s.exec, op, func(ctx context.Context, sc action.Scope) (*AuthResult, error) {
		user, err := s.users.FindByEmail(ctx, strings.ToLower(strings.TrimSpace(in.Email)))
		if errors.Is(err, shared.ErrNotFound) {
			return nil, ErrInvalidCredentials
		}
		if err != nil {
			return nil, err
		}

		now := s.now()
		if user.IsLocked(now) {
			sc.Logger.Warn("login attempt for locked account", zap.String("user_id", user.ID.String()))
			return nil, ErrAccountLocked
		}

		if !user.VerifyPassword(in.Password) {
			locked := user.RecordLoginFailure(now, s.config.MaxLoginAttempts, s.config.LockDuration)
			if err := s.users.Save(ctx, user); err != nil {
				sc.Logger.Error("failed to record login failure", zap.Error(err))
			}
			if locked {
				sc.Logger.Warn("account locked after too many failed attempts",
					zap.String("user_id", user.ID.String()),
					zap.Int("attempts", s.config.MaxLoginAttempts))
				return nil, ErrAccountLocked
			}
			return nil, ErrInvalidCredentials
		}

		user.RecordLoginSuccess(now)
		if err := s.users.Save(ctx, user); err != nil {
			// the login itself succeeded
			sc.Logger.Warn("failed to record login", zap.Error(err))
		}
		return s.issue(user)
	})
}

// Refresh rotates a refresh token: the presented token is revoked and a new pair issued
func (s *AuthService) Refresh(ctx context.Context, in RefreshInput) action.Result[*AuthResult] {
	op := action.Op[*AuthResult]{Name: "auth.refresh", Input: &in, Public: true}
	return action.Execute(ctx, s.exec, op, func(ctx context.Context, sc action.Scope) (*AuthResult, error) {
		claims, err := s.tokens.ValidateRefreshToken(in.RefreshToken)
		if err != nil {
			sc.Logger.Debug("refresh token rejected", zap.Error(err))
			return nil, ErrInvalidRefreshToken
		}
		revoked, err := s.revoked.IsRevoked(ctx, claims.ID)
		if err != nil {
			return nil, err
		}
		if revoked {
			sc.Logger.Warn("revoked refresh token presented", zap.String("user_id", claims.UserID))
			return nil, ErrInvalidRefreshToken
		}

		userID, _ := claims.UserUUID()
		user, err := s.users.FindByID(ctx, userID)
		if errors.Is(err, shared.ErrNotFound) {
			return nil, ErrInvalidRefreshToken
		}
		if err != nil {
			return nil, err
		}

		pair, _, err := s.tokens.Refresh(in.RefreshToken)
		if errors.Is(err, auth.ErrMaxRefreshExceeded) {
			return nil, shared.NewDomainError(shared.ErrUnauthorized.Code, "Session expired, sign in again")
		}
		if err != nil {
			return nil, err
		}
		if err := s.revoked.Revoke(ctx, claims.ID, claims.RemainingTTL()); err != nil {
			return nil, err
		}
		return &AuthResult{User: ToUserResponse(user), Tokens: pair}, nil
	})
}

// Me returns the signed-in user
func (s *AuthService) Me(ctx context.Context) action.Result[UserResponse] {
	op := action.Op[UserResponse]{Name: "auth.me"}
	return action.Execute(ctx, s.exec, op, func(ctx context.Context, sc action.Scope) (UserResponse, error) {
		user, err := s.users.FindByID(ctx, sc.Actor.UserID)
		if errors.Is(err, shared.ErrNotFound) {
			return UserResponse{}, shared.ErrUnauthorized
		}
		if err != nil {
			return UserResponse{}, err
		}
		return ToUserResponse(user), nil
	})
}

// Logout revokes the access token of the request and, when given, the refresh token
func (s *AuthService) Logout(ctx context.Context, in LogoutInput) action.Result[struct{}] {
	op := action.Op[struct{}]{Name: "auth.logout"}
	return action.Execute(ctx, s.exec, op, func(ctx context.Context, sc action.Scope) (struct{}, error) {
		if sc.Actor.TokenID != "" {
			if ttl := time.Until(sc.Actor.TokenExpiresAt); ttl > 0 {
				if err := s.revoked.Revoke(ctx, sc.Actor.TokenID, ttl); err != nil {
					return struct{}{}, err
				}
			}
		}
		if in.RefreshToken == "" {
			return struct{}{}, nil
		}
		claims, err := s.tokens.ValidateRefreshToken(in.RefreshToken)
		if err != nil || claims.UserID != sc.Actor.UserID.String() {
			// an unusable refresh token has nothing left to revoke
			return struct{}{}, nil
		}
		return struct{}{}, s.revoked.Revoke(ctx, claims.ID, claims.RemainingTTL())
	})
}

// ChangePassword replaces the signed-in user's password
func (s *AuthService) ChangePassword(ctx context.Context, in ChangePasswordInput) action.Result[struct{}] {
	op := action.Op[struct{}]{Name: "auth.change_password", Input: &in}
	return action.Execute(ctx, s.exec, op, func(ctx context.Context, sc action.Scope) (struct{}, error) {
		user, err := s.users.FindByID(ctx, sc.Actor.UserID)
		if err != nil {
			return struct{}{}, err
		}
		if err := user.ChangePassword(in.CurrentPassword, in.NewPassword); err != nil {
			return struct{}{}, err
		}
		return struct{}{}, s.users.Save(ctx, user)
	})
}

func (s *AuthService) issue(user *identity.User) (*AuthResult, error) {
	pair, err := s.tokens.GenerateTokenPair(user.ID, user.Email)
	if err != nil {
		return nil, err
	}
	return &AuthResult{User: ToUserResponse(user), Tokens: pair}, nil
}
