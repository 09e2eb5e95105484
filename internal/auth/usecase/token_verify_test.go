package usecase

import (
	"context"
	"net/http"
	"strings"
	"testing"

	"github.com/arimasna/pelajarin/internal/auth/entity"
)

func TestVerifyToken_ResolvesIdentity(t *testing.T) {
	// Arrange
	h := newTestHarness(t)

	admin := entity.Credential{
		ID:        1,
		Email:     "admin@example.com",
		FullName:  "Platform Admin",
		Password:  "$2a$04$hash",
		Role:      entity.RoleAdmin,
		Language:  "en",
		CreatedAt: h.clock.Now(),
	}
	if err := h.creds.Create(context.Background(), admin); err != nil {
		t.Fatalf("Create() error = %v", err)
	}

	token, err := h.uc.jwt.Generate(admin.ID, admin.Email, admin.Role.String())
	if err != nil {
		t.Fatalf("Generate() error = %v", err)
	}

	// Act
	out, err := h.uc.VerifyToken(context.Background(), VerifyTokenInput{Token: token})

	// Assert
	if err != nil {
		t.Fatalf("VerifyToken() error = %v", err)
	}
	if out.UserID != admin.ID {
		t.Fatalf("UserID = %d, want %d", out.UserID, admin.ID)
	}
	if out.Role != "admin" {
		t.Fatalf("Role = %q, want %q", out.Role, "admin")
	}
}

func TestVerifyToken_Tampered(t *testing.T) {
	// Arrange
	h := newTestHarness(t)
	userID, _ := h.registerUser(t, "student@example.com")

	token, err := h.uc.jwt.Generate(userID, "student@example.com", "student")
	if err != nil {
		t.Fatalf("Generate() error = %v", err)
	}

	parts := strings.Split(token, ".")
	tampered := parts[0] + "." + parts[1] + "." + strings.Repeat("A", len(parts[2]))

	// Act
	_, err = h.uc.VerifyToken(context.Background(), VerifyTokenInput{Token: tampered})

	// Assert
	assertStatus(t, err, http.StatusUnauthorized)
}

func TestVerifyToken_MissingAccount(t *testing.T) {
	// Arrange: a well-signed token whose account was never created.
	h := newTestHarness(t)

	token, err := h.uc.jwt.Generate(999, "ghost@example.com", "student")
	if err != nil {
		t.Fatalf("Generate() error = %v", err)
	}

	// Act
	_, err = h.uc.VerifyToken(context.Background(), VerifyTokenInput{Token: token})

	// Assert
	assertStatus(t, err, http.StatusUnauthorized)
}
