// Package usecase implements authentication business logic: credential login
// and access token validation.
package usecase

import (
	"context"
	"time"

	"github.com/allisson/go-pwdhash"
	"github.com/google/uuid"

	authDomain "github.com/allisson/familyvault/internal/auth/domain"
	authService "github.com/allisson/familyvault/internal/auth/service"
	userDomain "github.com/allisson/familyvault/internal/user/domain"

	apperrors "github.com/allisson/familyvault/internal/errors"
)

// LoginOutput contains the result of a successful login
type LoginOutput struct {
	AccessToken string
	TokenType   string
	ExpiresAt   time.Time
	User        *userDomain.User
}

// AuthUseCase defines the interface for authentication operations
type AuthUseCase interface {
	Login(ctx context.Context, email, password string) (*LoginOutput, error)
	Authenticate(ctx context.Context, token string) (*userDomain.User, error)
}

// UserRepository defines the user lookups required by authentication
type UserRepository interface {
	GetByID(ctx context.Context, id uuid.UUID) (*userDomain.User, error)
	GetByEmail(ctx context.Context, email string) (*userDomain.User, error)
}

// authUseCase handles authentication business logic
type authUseCase struct {
	userRepo       UserRepository
	tokenService   authService.TokenService
	passwordHasher *pwdhash.PasswordHasher
}

// NewAuthUseCase creates a new AuthUseCase
func NewAuthUseCase(userRepo UserRepository, tokenService authService.TokenService) (AuthUseCase, error) {
	hasher, err := pwdhash.New(pwdhash.WithPolicy(pwdhash.PolicyInteractive))
	if err != nil {
		return nil, apperrors.Wrap(err, "failed to create password hasher")
	}

	return &authUseCase{
		userRepo:       userRepo,
		tokenService:   tokenService,
		passwordHasher: hasher,
	}, nil
}

// Login verifies the credentials of a live user and issues an access token.
// Unknown emails and wrong passwords produce the same error to avoid
// leaking which accounts exist.
func (uc *authUseCase) Login(ctx context.Context, email, password string) (*LoginOutput, error) {
	user, err := uc.userRepo.GetByEmail(ctx, email)
	if err != nil {
		if apperrors.Is(err, apperrors.ErrNotFound) {
			return nil, authDomain.ErrInvalidCredentials
		}
		return nil, err
	}

	ok, err := uc.passwordHasher.Verify([]byte(password), user.PasswordHash)
	if err != nil || !ok {
		return nil, authDomain.ErrInvalidCredentials
	}

	if !user.Active {
		return nil, userDomain.ErrUserInactive
	}

	token, expiresAt, err := uc.tokenService.Generate(user.ID, user.Email)
	if err != nil {
		return nil, err
	}

	return &LoginOutput{
		AccessToken: token,
		TokenType:   "bearer",
		ExpiresAt:   expiresAt,
		User:        user,
	}, nil
}

// Authenticate validates an access token and resolves it to a live, active user.
func (uc *authUseCase) Authenticate(ctx context.Context, token string) (*userDomain.User, error) {
	claims, err := uc.tokenService.Parse(token)
	if err != nil {
		return nil, err
	}

	userID, err := uuid.Parse(claims.Subject)
	if err != nil {
		return nil, authDomain.ErrInvalidToken
	}

	user, err := uc.userRepo.GetByID(ctx, userID)
	if err != nil {
		if apperrors.Is(err, apperrors.ErrNotFound) {
			return nil, authDomain.ErrInvalidToken
		}
		return nil, err
	}

	if !user.Active {
		return nil, userDomain.ErrUserInactive
	}

	return user, nil
}
