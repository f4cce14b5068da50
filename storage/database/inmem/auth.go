package inmemdb

import (
	"context"

	"github.com/upperenglish/backend/core/auth"
)

type authRepository struct {
	db *DB
}

var _ auth.Repository = (*authRepository)(nil)

func NewAuthRepository(db *DB) *authRepository {
	return &authRepository{db: db}
}

func (r *authRepository) GetPasswordHash(_ context.Context) ([]byte, error) {
	r.db.mu.RLock()
	defer r.db.mu.RUnlock()

	return r.db.passwordHash, nil
}

func (r *authRepository) SetPasswordHash(_ context.Context, hash []byte) error {
	r.db.mu.Lock()
	defer r.db.mu.Unlock()

	r.db.passwordHash = hash
	return nil
}
