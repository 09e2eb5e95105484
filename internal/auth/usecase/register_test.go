package usecase

import (
	"context"
	"net/http"
	"testing"
)

func TestRegister_Success(t *testing.T) {
	// Arrange
	h := newTestHarness(t)

	// Act
	out, err := h.uc.Register(context.Background(), RegisterInput{
		Email:    "New.Student@Example.com",
		Password: "Secret123!",
		FullName: "New Student",
		Role:     "student",
	})

	// Assert
	if err != nil {
		t.Fatalf("Register() error = %v", err)
	}
	if out.User.ID == 0 {
		t.Fatal("User.ID = 0, want non-zero")
	}
	if out.Token == "" {
		t.Fatal("Token is empty, want a signed token")
	}
	if out.User.Password != "" {
		t.Fatal("User.Password is set, want the hash stripped")
	}
	if !out.Delivered {
		t.Fatal("Delivered = false, want true")
	}

	ev := h.pub.last(t)
	if ev.Identifier != "new.student@example.com" {
		t.Fatalf("event Identifier = %q, want lowercased email", ev.Identifier)
	}
	if ev.Method != "email" {
		t.Fatalf("event Method = %q, want %q", ev.Method, "email")
	}
	if ev.Language != "en" {
		t.Fatalf("event Language = %q, want default %q", ev.Language, "en")
	}
	if len(ev.Code) != 6 {
		t.Fatalf("event Code = %q, want 6 digits", ev.Code)
	}

	cred, err := h.creds.GetByEmail(context.Background(), "new.student@example.com")
	if err != nil {
		t.Fatalf("GetByEmail() error = %v", err)
	}
	if cred.Password == "Secret123!" {
		t.Fatal("stored password is plaintext, want a hash")
	}
}

func TestRegister_DuplicateEmail(t *testing.T) {
	// Arrange
	h := newTestHarness(t)
	h.registerUser(t, "student@example.com")

	// Act
	_, err := h.uc.Register(context.Background(), RegisterInput{
		Email:    "student@example.com",
		Password: "Secret123!",
		FullName: "Other Student",
		Role:     "student",
	})

	// Assert
	assertStatus(t, err, http.StatusConflict)
}

func TestRegister_InvalidInput(t *testing.T) {
	// Arrange
	h := newTestHarness(t)

	tests := []struct {
		name string
		in   RegisterInput
	}{
		{
			name: "bad email",
			in:   RegisterInput{Email: "not-an-email", Password: "Secret123!", FullName: "Test Student", Role: "student"},
		},
		{
			name: "short password",
			in:   RegisterInput{Email: "a@example.com", Password: "short", FullName: "Test Student", Role: "student"},
		},
		{
			name: "admin role not self-served",
			in:   RegisterInput{Email: "a@example.com", Password: "Secret123!", FullName: "Test Student", Role: "admin"},
		},
		{
			name: "full name with digits",
			in:   RegisterInput{Email: "a@example.com", Password: "Secret123!", FullName: "Student 99", Role: "student"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			// Act
			_, err := h.uc.Register(context.Background(), tt.in)

			// Assert
			assertStatus(t, err, http.StatusUnprocessableEntity)
		})
	}
}

func TestRegister_DeliveryFailureStillSucceeds(t *testing.T) {
	// Arrange
	h := newTestHarness(t)
	h.pub.fail = true

	// Act
	out, err := h.uc.Register(context.Background(), RegisterInput{
		Email:    "student@example.com",
		Password: "Secret123!",
		FullName: "Test Student",
		Role:     "student",
	})

	// Assert
	if err != nil {
		t.Fatalf("Register() error = %v", err)
	}
	if out.Delivered {
		t.Fatal("Delivered = true, want false when the broker rejects the event")
	}

	// The code was stored even though delivery failed, so a resend can follow.
	if _, err := h.otps.Find(context.Background(), "student@example.com"); err != nil {
		t.Fatalf("Find() error = %v, want pending record", err)
	}
}
