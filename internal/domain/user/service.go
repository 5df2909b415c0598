package user

import (
	"context"
	"errors"
	"fmt"

	"golang.org/x/crypto/bcrypt"
	"golang.org/x/exp/slog"

	"diary/internal/domain/token"
)

// ResetTokenMaxAge bounds how long an emailed password reset link stays
// redeemable.
const ResetTokenMaxAge = token.DefaultMaxAge

// dummyHash is a valid bcrypt hash compared against when the email is
// unknown, so a failed login takes the same time whichever factor was wrong.
const dummyHash = "$2a$10$N9qo8uLOickgx2ZMRZoMyeIjZAgcfl7p92ldGxad68LJZdL17lhWy"

type Servicer interface {
	Register(ctx context.Context, email, password string) (User, error)
	Authenticate(ctx context.Context, email, password string) (User, error)
	FindByEmail(ctx context.Context, email string) (User, error)
	IssueResetToken(u User) (string, error)
	RedeemResetToken(ctx context.Context, tok string) (User, error)
	SetPassword(ctx context.Context, u User, newPassword string) error
}

type Service struct {
	repo  Repository
	codec *token.Codec
	log   *slog.Logger
}

func NewService(repo Repository, codec *token.Codec, log *slog.Logger) *Service {
	return &Service{
		repo:  repo,
		codec: codec,
		log:   log.With("component", "user_service"),
	}
}

// Register stores a new account with a bcrypt hash of password. The email is
// matched exactly as given; no case normalization is applied.
func (s *Service) Register(ctx context.Context, email, password string) (User, error) {
	if email == "" || password == "" {
		return User{}, fmt.Errorf("%w: email and password are required", ErrInvalidInput)
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return User{}, fmt.Errorf("hash password: %w", err)
	}

	id, err := s.repo.Create(ctx, email, string(hash))
	if err != nil {
		if errors.Is(err, ErrDuplicateEmail) {
			return User{}, ErrDuplicateEmail
		}
		s.log.Error("failed to create user", "error", err)
		return User{}, fmt.Errorf("create user: %w", err)
	}

	s.log.Info("user registered", "user_id", id)

	return User{ID: id, Email: email, PasswordHash: string(hash)}, nil
}

// Authenticate resolves email and verifies password. The caller gets the
// same ErrInvalidCredentials whether the email is unknown or the password is
// wrong, and both paths pay one bcrypt comparison.
func (s *Service) Authenticate(ctx context.Context, email, password string) (User, error) {
	u, err := s.repo.FindByEmail(ctx, email)
	if err != nil {
		_ = bcrypt.CompareHashAndPassword([]byte(dummyHash), []byte(password))
		return User{}, ErrInvalidCredentials
	}

	if err := bcrypt.CompareHashAndPassword([]byte(u.PasswordHash), []byte(password)); err != nil {
		return User{}, ErrInvalidCredentials
	}

	return u, nil
}

func (s *Service) FindByEmail(ctx context.Context, email string) (User, error) {
	u, err := s.repo.FindByEmail(ctx, email)
	if err != nil {
		return User{}, ErrNotFound
	}
	return u, nil
}

// IssueResetToken mints a signed password reset token for u. Tokens are
// purpose-salted, so they redeem only through RedeemResetToken.
func (s *Service) IssueResetToken(u User) (string, error) {
	tok, err := s.codec.Issue(u.ID)
	if err != nil {
		return "", fmt.Errorf("issue reset token: %w", err)
	}
	return tok, nil
}

// RedeemResetToken resolves a reset token back to its user. Malformed,
// tampered and expired tokens all report ErrNotFound uniformly.
func (s *Service) RedeemResetToken(ctx context.Context, tok string) (User, error) {
	id, err := s.codec.Verify(tok, ResetTokenMaxAge)
	if err != nil {
		return User{}, ErrNotFound
	}

	u, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return User{}, ErrNotFound
	}
	return u, nil
}

// SetPassword replaces the stored hash. Outstanding reset tokens are not
// invalidated; they keep working until their age bound runs out.
func (s *Service) SetPassword(ctx context.Context, u User, newPassword string) error {
	if newPassword == "" {
		return fmt.Errorf("%w: password is required", ErrInvalidInput)
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(newPassword), bcrypt.DefaultCost)
	if err != nil {
		return fmt.Errorf("hash password: %w", err)
	}

	if err := s.repo.UpdatePassword(ctx, u.ID, string(hash)); err != nil {
		s.log.Error("failed to update password", "user_id", u.ID, "error", err)
		return fmt.Errorf("update password: %w", err)
	}

	s.log.Info("password updated", "user_id", u.ID)
	return nil
}
