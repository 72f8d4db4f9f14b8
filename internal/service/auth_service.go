// Package service contains the application's business logic, layered
// between HTTP handlers and repositories.
package service

import (
	"context"
	"strings"

	"github.com/iamsihlegqeza/sterkspruit/internal/googleauth"
	"github.com/iamsihlegqeza/sterkspruit/internal/models"
	"github.com/iamsihlegqeza/sterkspruit/internal/repository"
	"github.com/iamsihlegqeza/sterkspruit/internal/validation"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"
)

// AuthService implements account registration and credential checks.
type AuthService struct {
	users    repository.UserRepository
	verifier googleauth.Verifier
}

// RegisterInput carries the signup payload.
type RegisterInput struct {
	FullName string
	Email    string
	Password string
}

// NewAuthService creates an AuthService. verifier may be nil when
// federated sign-in is not configured.
func NewAuthService(users repository.UserRepository, verifier googleauth.Verifier) *AuthService {
	return &AuthService{users: users, verifier: verifier}
}

// Register creates a password account. The unique username is derived
// from the email local-part; see deriveUsername for the collision rule.
func (s *AuthService) Register(ctx context.Context, in RegisterInput) (*models.User, error) {
	if err := validation.ValidateFullName(in.FullName); err != nil {
		return nil, models.NewValidationError(err.Error())
	}
	if err := validation.ValidateEmail(in.Email); err != nil {
		return nil, models.NewValidationError(err.Error())
	}
	if err := validation.ValidatePassword(in.Password); err != nil {
		return nil, models.NewValidationError(err.Error())
	}

	email := strings.ToLower(strings.TrimSpace(in.Email))
	existing, err := s.users.GetByEmail(ctx, email)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		return nil, models.NewConflictError("Email already registered")
	}

	hashed, err := bcrypt.GenerateFromPassword([]byte(in.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, models.NewInternalError(err)
	}

	username, err := s.deriveUsername(ctx, email)
	if err != nil {
		return nil, err
	}

	user := &models.User{
		FullName: in.FullName,
		Email:    email,
		Username: username,
		Password: string(hashed),
	}
	if err := s.users.Create(ctx, user); err != nil {
		return nil, err
	}
	return user, nil
}

// Authenticate verifies a password login.
func (s *AuthService) Authenticate(ctx context.Context, email, password string) (*models.User, error) {
	user, err := s.users.GetByEmail(ctx, strings.ToLower(strings.TrimSpace(email)))
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, models.NewNotFoundError("account for", email)
	}
	if user.GoogleAuth {
		return nil, models.NewWrongMethodError("Account was created using Google. Try logging in with Google")
	}
	if err := bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(password)); err != nil {
		return nil, models.NewUnauthorizedError("Incorrect password")
	}
	return user, nil
}

// AuthenticateGoogle verifies a Google ID token and signs the account
// in, creating it on first contact. A password account with the same
// email is refused, never merged.
func (s *AuthService) AuthenticateGoogle(ctx context.Context, rawToken string) (*models.User, error) {
	if s.verifier == nil {
		return nil, models.NewInternalError(errNoVerifier)
	}

	claims, err := s.verifier.Verify(ctx, rawToken)
	if err != nil {
		return nil, models.NewUnauthorizedError("Invalid Google ID token")
	}

	email := strings.ToLower(claims.Email)
	user, err := s.users.GetByEmail(ctx, email)
	if err != nil {
		return nil, err
	}
	if user != nil {
		if !user.GoogleAuth {
			return nil, models.NewWrongMethodError("Account was registered with a password. Sign in with email and password")
		}
		return user, nil
	}

	username, err := s.deriveUsername(ctx, email)
	if err != nil {
		return nil, err
	}

	user = &models.User{
		FullName:   claims.Name,
		Email:      email,
		Username:   username,
		ProfileImg: claims.Picture,
		GoogleAuth: true,
	}
	if err := s.users.Create(ctx, user); err != nil {
		return nil, err
	}
	return user, nil
}

// ChangePassword reissues the credential after checking the current
// one. Federated accounts have no credential to reissue.
func (s *AuthService) ChangePassword(ctx context.Context, userID uint, current, next string) error {
	if err := validation.ValidatePassword(next); err != nil {
		return models.NewValidationError(err.Error())
	}

	user, err := s.users.GetByID(ctx, userID)
	if err != nil {
		return err
	}
	if user.GoogleAuth {
		return models.NewWrongMethodError("Account was created using Google; it has no password to change")
	}
	if err := bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(current)); err != nil {
		return models.NewUnauthorizedError("Incorrect current password")
	}

	hashed, err := bcrypt.GenerateFromPassword([]byte(next), bcrypt.DefaultCost)
	if err != nil {
		return models.NewInternalError(err)
	}
	return s.users.UpdatePassword(ctx, userID, string(hashed))
}

// deriveUsername takes the email local-part, and on collision appends a
// short random suffix. The suffixed candidate is retried once only;
// pathological collision storms fall through to the database's unique
// constraint.
func (s *AuthService) deriveUsername(ctx context.Context, email string) (string, error) {
	base := strings.SplitN(email, "@", 2)[0]

	taken, err := s.users.UsernameTaken(ctx, base)
	if err != nil {
		return "", err
	}
	if !taken {
		return base, nil
	}

	candidate := base + "-" + randomSuffix()
	taken, err = s.users.UsernameTaken(ctx, candidate)
	if err != nil {
		return "", err
	}
	if !taken {
		return candidate, nil
	}
	return base + "-" + randomSuffix(), nil
}

func randomSuffix() string {
	return uuid.NewString()[:5]
}
