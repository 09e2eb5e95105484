package credstore

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/arimasna/pelajarin/internal/auth/entity"
	"github.com/arimasna/pelajarin/internal/pkg/goerror"
)

func testCredential() entity.Credential {
	return entity.Credential{
		ID:        7,
		Email:     "student@example.com",
		FullName:  "Test Student",
		Password:  "$2a$04$hash",
		Role:      entity.RoleStudent,
		Language:  "en",
		CreatedAt: time.Date(2025, 6, 1, 10, 0, 0, 0, time.UTC),
	}
}

func TestMemory_CreateAndGet(t *testing.T) {
	// Arrange
	store := NewMemory()
	ctx := context.Background()

	// Act
	if err := store.Create(ctx, testCredential()); err != nil {
		t.Fatalf("Create() error = %v", err)
	}

	// Assert
	byEmail, err := store.GetByEmail(ctx, "student@example.com")
	if err != nil {
		t.Fatalf("GetByEmail() error = %v", err)
	}
	if byEmail.ID != 7 {
		t.Fatalf("ID = %d, want 7", byEmail.ID)
	}

	byID, err := store.GetByID(ctx, 7)
	if err != nil {
		t.Fatalf("GetByID() error = %v", err)
	}
	if byID.Email != "student@example.com" {
		t.Fatalf("Email = %q, want stored email", byID.Email)
	}
}

func TestMemory_CreateDuplicateEmail(t *testing.T) {
	// Arrange
	store := NewMemory()
	ctx := context.Background()

	if err := store.Create(ctx, testCredential()); err != nil {
		t.Fatalf("Create() error = %v", err)
	}

	dup := testCredential()
	dup.ID = 8

	// Act
	err := store.Create(ctx, dup)

	// Assert
	if !errors.Is(err, goerror.ErrConflict) {
		t.Fatalf("error = %v, want ErrConflict", err)
	}
}

func TestMemory_GetMissing(t *testing.T) {
	// Arrange
	store := NewMemory()
	ctx := context.Background()

	// Act / Assert
	if _, err := store.GetByEmail(ctx, "nobody@example.com"); !errors.Is(err, goerror.ErrNotFound) {
		t.Fatalf("GetByEmail() error = %v, want ErrNotFound", err)
	}
	if _, err := store.GetByID(ctx, 404); !errors.Is(err, goerror.ErrNotFound) {
		t.Fatalf("GetByID() error = %v, want ErrNotFound", err)
	}
}
