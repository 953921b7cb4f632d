// README: Auth service; sign-up, sign-in and password reset over bcrypt hashes.
package user

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"golang.org/x/crypto/bcrypt"
)

const bcryptCost = 10

var (
	ErrBadRequest         = errors.New("bad request")
	ErrNotFound           = errors.New("user not found")
	ErrEmailTaken         = errors.New("user already exists")
	ErrInvalidCredentials = errors.New("invalid credentials")
)

type Repository interface {
	GetByEmail(ctx context.Context, email string) (*User, error)
	Create(ctx context.Context, u *User) (int64, error)
	UpdatePassword(ctx context.Context, id int64, hash string) (bool, error)
}

type Service struct {
	store Repository
	cost  int
}

func NewService(store Repository) *Service {
	return &Service{store: store, cost: bcryptCost}
}

type SignUpCommand struct {
	Email     string
	Password  string
	FirstName string
	LastName  string
}

type SignInCommand struct {
	Email    string
	Password string
}

type ResetPasswordCommand struct {
	Email           string
	CurrentPassword string
	NewPassword     string
}

func (s *Service) SignUp(ctx context.Context, cmd SignUpCommand) (int64, error) {
	email := normalizeEmail(cmd.Email)
	if email == "" || cmd.Password == "" || cmd.FirstName == "" || cmd.LastName == "" {
		return 0, ErrBadRequest
	}

	// Fast path only; the unique index decides under concurrent sign-ups.
	_, err := s.store.GetByEmail(ctx, email)
	switch {
	case err == nil:
		return 0, ErrEmailTaken
	case !errors.Is(err, ErrNotFound):
		return 0, err
	}

	hash, err := s.hash(cmd.Password)
	if err != nil {
		return 0, err
	}
	return s.store.Create(ctx, &User{
		Email:        email,
		PasswordHash: hash,
		FirstName:    strings.TrimSpace(cmd.FirstName),
		LastName:     strings.TrimSpace(cmd.LastName),
	})
}

func (s *Service) SignIn(ctx context.Context, cmd SignInCommand) (*PublicUser, error) {
	email := normalizeEmail(cmd.Email)
	if email == "" || cmd.Password == "" {
		return nil, ErrBadRequest
	}
	u, err := s.authenticate(ctx, email, cmd.Password)
	if err != nil {
		return nil, err
	}
	pub := u.Public()
	return &pub, nil
}

func (s *Service) ResetPassword(ctx context.Context, cmd ResetPasswordCommand) error {
	email := normalizeEmail(cmd.Email)
	if email == "" || cmd.NewPassword == "" {
		return ErrBadRequest
	}
	u, err := s.authenticate(ctx, email, cmd.CurrentPassword)
	if err != nil {
		return err
	}

	hash, err := s.hash(cmd.NewPassword)
	if err != nil {
		return err
	}
	ok, err := s.store.UpdatePassword(ctx, u.ID, hash)
	if err != nil {
		return err
	}
	if !ok {
		return ErrNotFound
	}
	return nil
}

// hash rejects passwords bcrypt cannot take (over 72 bytes) as bad input.
func (s *Service) hash(password string) (string, error) {
	h, err := bcrypt.GenerateFromPassword([]byte(password), s.cost)
	if errors.Is(err, bcrypt.ErrPasswordTooLong) {
		return "", ErrBadRequest
	}
	if err != nil {
		return "", fmt.Errorf("hash password: %w", err)
	}
	return string(h), nil
}

func (s *Service) authenticate(ctx context.Context, email, password string) (*User, error) {
	u, err := s.store.GetByEmail(ctx, email)
	if err != nil {
		return nil, err
	}
	if bcrypt.CompareHashAndPassword([]byte(u.PasswordHash), []byte(password)) != nil {
		return nil, ErrInvalidCredentials
	}
	return u, nil
}

func normalizeEmail(v string) string {
	return strings.ToLower(strings.TrimSpace(v))
}
