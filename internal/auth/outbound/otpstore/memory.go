package otpstore

import (
	"context"
	"sync"

	"github.com/arimasna/pelajarin/internal/auth/entity"
	"github.com/arimasna/pelajarin/internal/pkg/goerror"
)

// Memory is an in-process Store. Used for local runs and tests.
type Memory struct {
	mu   sync.RWMutex
	recs map[string]entity.OTPRecord
}

// NewMemory returns an empty in-process store.
func NewMemory() *Memory {
	return &Memory{recs: make(map[string]entity.OTPRecord)}
}

// Save stores the record, replacing any pending record for the identifier.
func (m *Memory) Save(ctx context.Context, rec entity.OTPRecord) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	m.mu.Lock()
	m.recs[rec.Identifier] = rec
	m.mu.Unlock()

	return nil
}

// Find returns the pending record for the identifier.
func (m *Memory) Find(ctx context.Context, identifier string) (*entity.OTPRecord, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	m.mu.RLock()
	rec, ok := m.recs[identifier]
	m.mu.RUnlock()

	if !ok {
		return nil, goerror.ErrNotFound
	}

	return &rec, nil
}

// AddAttempt increments the failed-attempt counter and returns the new count.
func (m *Memory) AddAttempt(ctx context.Context, identifier string) (int, error) {
	if err := ctx.Err(); err != nil {
		return 0, err
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	rec, ok := m.recs[identifier]
	if !ok {
		return 0, goerror.ErrNotFound
	}

	rec.Attempts++
	m.recs[identifier] = rec

	return rec.Attempts, nil
}

// Delete removes the pending record.
func (m *Memory) Delete(ctx context.Context, identifier string) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	m.mu.Lock()
	delete(m.recs, identifier)
	m.mu.Unlock()

	return nil
}
