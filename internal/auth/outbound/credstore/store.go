// Package credstore persists account credentials.
//
// Implementations return goerror.ErrNotFound for missing accounts and
// goerror.ErrConflict when a unique constraint (email) is violated.
package credstore

import (
	"context"

	"github.com/arimasna/pelajarin/internal/auth/entity"
)

// Store is the persistence contract for account credentials.
type Store interface {
	// Create stores a new credential.
	Create(ctx context.Context, cred entity.Credential) error

	// GetByEmail returns the credential for an email.
	GetByEmail(ctx context.Context, email string) (*entity.Credential, error)

	// GetByID returns the credential for an account id.
	GetByID(ctx context.Context, id int64) (*entity.Credential, error)
}
