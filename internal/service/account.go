package service

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/msomdec/taskvault/internal/domain"
)

// AccountService handles registration and credential checks.
type AccountService struct {
	hasher PasswordHasher
}

// NewAccountService creates a new AccountService.
func NewAccountService(hasher PasswordHasher) *AccountService {
	return &AccountService{hasher: hasher}
}

// Register creates an active user. The password is checked before any
// hashing work is done.
func (s *AccountService) Register(ctx context.Context, sess domain.Session, email, password string) (*domain.User, error) {
	if strings.TrimSpace(password) == "" {
		return nil, domain.ErrPasswordEmpty
	}

	users := sess.Users()
	if _, err := users.GetByEmail(ctx, email); err == nil {
		return nil, domain.ErrUserExists
	} else if !errors.Is(err, domain.ErrNotFound) {
		return nil, fmt.Errorf("get user: %w", err)
	}

	hash, err := s.hasher.Hash(password)
	if err != nil {
		return nil, fmt.Errorf("hash password: %w", err)
	}

	user := &domain.User{
		Email:        email,
		PasswordHash: hash,
		IsActive:     true,
	}
	if err := users.Create(ctx, user); err != nil {
		// Lost a race with a concurrent registration.
		if errors.Is(err, domain.ErrConflict) {
			return nil, domain.ErrUserExists
		}
		return nil, fmt.Errorf("create user: %w", err)
	}

	return user, nil
}

// Authenticate returns the user matching email and password, or nil when
// either the user is unknown or the password is wrong. IsActive is not
// checked here.
func (s *AccountService) Authenticate(ctx context.Context, sess domain.Session, email, password string) (*domain.User, error) {
	user, err := sess.Users().GetByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return nil, nil
		}
		return nil, fmt.Errorf("get user: %w", err)
	}

	if !s.hasher.Verify(password, user.PasswordHash) {
		return nil, nil
	}
	return user, nil
}
