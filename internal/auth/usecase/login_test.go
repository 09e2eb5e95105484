package usecase

import (
	"context"
	"net/http"
	"testing"
)

func TestLogin_ReturnsToken(t *testing.T) {
	// Arrange
	h := newTestHarness(t)
	userID, _ := h.registerUser(t, "student@example.com")

	// Act
	out, err := h.uc.Login(context.Background(), LoginInput{
		Email:    "Student@Example.com",
		Password: "Secret123!",
	})

	// Assert
	if err != nil {
		t.Fatalf("Login() error = %v", err)
	}
	if out.User.ID != userID {
		t.Fatalf("User.ID = %d, want %d", out.User.ID, userID)
	}
	if out.Token == "" {
		t.Fatal("Token is empty, want a signed token")
	}
	if out.User.Password != "" {
		t.Fatal("User.Password is set, want the hash stripped")
	}
}

func TestLogin_WrongPassword(t *testing.T) {
	// Arrange
	h := newTestHarness(t)
	h.registerUser(t, "student@example.com")

	// Act
	_, err := h.uc.Login(context.Background(), LoginInput{
		Email:    "student@example.com",
		Password: "WrongPassword!",
	})

	// Assert
	assertStatus(t, err, http.StatusUnauthorized)
}

func TestLogin_UnknownEmail(t *testing.T) {
	// Arrange
	h := newTestHarness(t)

	// Act
	_, err := h.uc.Login(context.Background(), LoginInput{
		Email:    "nobody@example.com",
		Password: "Secret123!",
	})

	// Assert: indistinguishable from a wrong password.
	assertStatus(t, err, http.StatusUnauthorized)
}
