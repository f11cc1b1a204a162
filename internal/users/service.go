package users

import (
	"context"
	"errors"
	"strings"

	"golang.org/x/crypto/bcrypt"

	"seedrowz-backend/internal/shared/auth"
)

const bcryptCost = 10

// TokenSigner issues session tokens for authenticated users.
type TokenSigner interface {
	Sign(claims auth.Claims) (string, error)
}

type Service struct {
	Repo   Repo
	Tokens TokenSigner
}

func NewService(repo Repo, tokens TokenSigner) *Service {
	return &Service{Repo: repo, Tokens: tokens}
}

// Register creates a password account. An empty role becomes DefaultRole.
func (s *Service) Register(ctx context.Context, name, email, password, role string) (User, error) {
	if s == nil || s.Repo == nil {
		return User{}, errors.New("users service not configured")
	}
	name = strings.TrimSpace(name)
	email = normalizeEmail(email)
	if name == "" || email == "" || password == "" {
		return User{}, ErrMissingFields
	}
	role = strings.TrimSpace(role)
	if role == "" {
		role = DefaultRole
	}

	if _, err := s.Repo.GetByEmail(ctx, email); err == nil {
		return User{}, ErrDuplicateEmail
	} else if !errors.Is(err, ErrNotFound) {
		return User{}, err
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcryptCost)
	if err != nil {
		return User{}, err
	}
	return s.Repo.Create(ctx, User{
		Name:         name,
		Email:        email,
		PasswordHash: string(hash),
		Role:         role,
	})
}

// Login checks the password and returns a signed session token.
// Unknown emails and wrong passwords both yield ErrInvalidCredentials.
func (s *Service) Login(ctx context.Context, email, password string) (string, User, error) {
	if s == nil || s.Repo == nil || s.Tokens == nil {
		return "", User{}, errors.New("users service not configured")
	}
	email = normalizeEmail(email)
	if email == "" || password == "" {
		return "", User{}, ErrInvalidCredentials
	}

	user, err := s.Repo.GetByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, ErrNotFound) {
			return "", User{}, ErrInvalidCredentials
		}
		return "", User{}, err
	}
	if user.PasswordHash == "" {
		return "", User{}, ErrInvalidCredentials
	}
	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password)); err != nil {
		return "", User{}, ErrInvalidCredentials
	}

	token, err := s.IssueToken(user)
	if err != nil {
		return "", User{}, err
	}
	return token, user, nil
}

// IssueToken signs a session token carrying the user's id, email and role.
func (s *Service) IssueToken(user User) (string, error) {
	if s == nil || s.Tokens == nil {
		return "", errors.New("token signer not configured")
	}
	return s.Tokens.Sign(auth.Claims{UserID: user.ID, Email: user.Email, Role: user.Role})
}

// FindOrCreateExternal returns the account for an identity verified elsewhere,
// creating a password-less account on first sign-in.
func (s *Service) FindOrCreateExternal(ctx context.Context, email, name string) (User, error) {
	if s == nil || s.Repo == nil {
		return User{}, errors.New("users service not configured")
	}
	email = normalizeEmail(email)
	if email == "" {
		return User{}, errors.New("email is required")
	}
	user, err := s.Repo.GetByEmail(ctx, email)
	if err == nil {
		return user, nil
	}
	if !errors.Is(err, ErrNotFound) {
		return User{}, err
	}

	name = strings.TrimSpace(name)
	if name == "" {
		name = email
	}
	user, err = s.Repo.Create(ctx, User{Name: name, Email: email, Role: DefaultRole})
	if errors.Is(err, ErrDuplicateEmail) {
		return s.Repo.GetByEmail(ctx, email)
	}
	return user, err
}

func (s *Service) List(ctx context.Context) ([]User, error) {
	if s == nil || s.Repo == nil {
		return nil, errors.New("users service not configured")
	}
	return s.Repo.List(ctx)
}

func (s *Service) GetByID(ctx context.Context, userID int64) (User, error) {
	if s == nil || s.Repo == nil {
		return User{}, errors.New("users service not configured")
	}
	if userID <= 0 {
		return User{}, ErrNotFound
	}
	return s.Repo.GetByID(ctx, userID)
}

func normalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}
