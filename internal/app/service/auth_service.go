package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"elibrary/internal/common"
	"elibrary/internal/common/security"
	"elibrary/internal/domain/model"
	"elibrary/internal/domain/repository"
)

// SessionRevoker is the denylist consulted on sign-out and on every
// authenticated request.
type SessionRevoker interface {
	Revoke(ctx context.Context, jti string, expiresAt time.Time) error
	IsRevoked(ctx context.Context, jti string) (bool, error)
}

type AuthService struct {
	userRepo    repository.UserRepository
	revocations SessionRevoker
}

func NewAuthService(userRepo repository.UserRepository, revocations SessionRevoker) *AuthService {
	return &AuthService{userRepo: userRepo, revocations: revocations}
}

type SignInRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// Session is an issued token plus the identity it carries.
type Session struct {
	User      *model.User
	Token     string
	JTI       string
	ExpiresAt time.Time
}

// SignIn validates credentials and mints a session token. Unknown email and
// wrong password both come back as the same bare ErrUnauthorized so callers
// cannot enumerate accounts.
func (s *AuthService) SignIn(ctx context.Context, req SignInRequest) (*Session, error) {
	if req.Email == "" || req.Password == "" {
		return nil, common.Errorf("email and password are required: %w", common.ErrValidation)
	}

	user, err := s.userRepo.FindByEmail(ctx, req.Email)
	if err != nil {
		if errors.Is(err, common.ErrNotFound) {
			return nil, common.ErrUnauthorized
		}
		return nil, fmt.Errorf("failed to find user: %w", err)
	}

	if !security.CheckPasswordHash(req.Password, user.HashedPassword) {
		return nil, common.ErrUnauthorized
	}

	token, jti, expiresAt, err := security.GenerateToken(user.ID, user.Email, user.Role)
	if err != nil {
		return nil, fmt.Errorf("failed to generate token: %w", err)
	}
	return &Session{User: user, Token: token, JTI: jti, ExpiresAt: expiresAt}, nil
}

// SignOut denylists the session until the token would expire on its own.
func (s *AuthService) SignOut(ctx context.Context, jti string, expiresAt time.Time) error {
	if jti == "" {
		return nil
	}
	return s.revocations.Revoke(ctx, jti, expiresAt)
}

// IsSessionRevoked reports whether a token has been signed out. Revocation
// store failures fail open: sign-out is best effort and a cache blip must not
// lock every signed-in user out of the API.
func (s *AuthService) IsSessionRevoked(ctx context.Context, jti string) (bool, error) {
	if jti == "" {
		return false, nil
	}
	return s.revocations.IsRevoked(ctx, jti)
}
