// Package auth implements the shared-password gate. There are no user
// accounts: one secret, stored as a bcrypt hash in the credentials
// collection, guards every data operation.
package auth

import (
	"context"

	"github.com/pkg/errors"
	"golang.org/x/crypto/bcrypt"
)

var ErrInvalidPassword = errors.New("Invalid password")

type (
	Repository interface {
		GetPasswordHash(ctx context.Context) ([]byte, error)
		SetPasswordHash(ctx context.Context, hash []byte) error
	}

	Service struct {
		repo Repository
	}
)

func NewService(repo Repository) *Service {
	return &Service{repo: repo}
}

// Authenticate checks the supplied password against the stored hash.
// A missing stored secret rejects every password.
func (s *Service) Authenticate(ctx context.Context, password string) error {
	hash, err := s.repo.GetPasswordHash(ctx)
	if err != nil {
		return errors.Wrap(err, "loading password hash")
	}
	if len(hash) == 0 {
		return ErrInvalidPassword
	}
	if err := bcrypt.CompareHashAndPassword(hash, []byte(password)); err != nil {
		return ErrInvalidPassword
	}
	return nil
}

// SetPassword stores the bcrypt hash of the new shared password.
func (s *Service) SetPassword(ctx context.Context, password string) error {
	if password == "" {
		return errors.New("password must not be empty")
	}
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return errors.Wrap(err, "hashing password")
	}
	return s.repo.SetPasswordHash(ctx, hash)
}
