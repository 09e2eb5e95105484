// Package otpstore persists pending one-time codes keyed by identifier.
//
// Implementations return goerror.ErrNotFound for missing identifiers and
// treat Delete as idempotent. Atomicity across Find/AddAttempt/Delete is the
// caller's responsibility (the use case serializes per identifier).
package otpstore

import (
	"context"

	"github.com/arimasna/pelajarin/internal/auth/entity"
)

// Store is the persistence contract for pending one-time codes.
type Store interface {
	// Save stores the record, replacing any pending record for the identifier.
	Save(ctx context.Context, rec entity.OTPRecord) error

	// Find returns the pending record for the identifier.
	Find(ctx context.Context, identifier string) (*entity.OTPRecord, error)

	// AddAttempt increments the failed-attempt counter and returns the new count.
	AddAttempt(ctx context.Context, identifier string) (int, error)

	// Delete removes the pending record. Deleting a missing record is not an error.
	Delete(ctx context.Context, identifier string) error
}
