package credstore

import (
	"context"
	"sync"

	"github.com/arimasna/pelajarin/internal/auth/entity"
	"github.com/arimasna/pelajarin/internal/pkg/goerror"
)

// Memory is an in-process Store. Used for local runs and tests.
type Memory struct {
	mu      sync.RWMutex
	byID    map[int64]entity.Credential
	byEmail map[string]int64
}

// NewMemory returns an empty in-process store.
func NewMemory() *Memory {
	return &Memory{
		byID:    make(map[int64]entity.Credential),
		byEmail: make(map[string]int64),
	}
}

// Create stores a new credential.
func (m *Memory) Create(ctx context.Context, cred entity.Credential) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	if _, ok := m.byEmail[cred.Email]; ok {
		return goerror.ErrConflict
	}

	m.byID[cred.ID] = cred
	m.byEmail[cred.Email] = cred.ID

	return nil
}

// GetByEmail returns the credential for an email.
func (m *Memory) GetByEmail(ctx context.Context, email string) (*entity.Credential, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	m.mu.RLock()
	defer m.mu.RUnlock()

	id, ok := m.byEmail[email]
	if !ok {
		return nil, goerror.ErrNotFound
	}

	cred := m.byID[id]
	return &cred, nil
}

// GetByID returns the credential for an account id.
func (m *Memory) GetByID(ctx context.Context, id int64) (*entity.Credential, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	m.mu.RLock()
	defer m.mu.RUnlock()

	cred, ok := m.byID[id]
	if !ok {
		return nil, goerror.ErrNotFound
	}

	return &cred, nil
}
