package usecase

import (
	"context"
	"net/http"
	"testing"
)

func TestResendOTP_Email(t *testing.T) {
	// Arrange
	h := newTestHarness(t)
	userID, _ := h.registerUser(t, "student@example.com")

	// Act
	out, err := h.uc.ResendOTP(context.Background(), ResendOTPInput{
		UserID: userID,
		Method: "email",
	})

	// Assert
	if err != nil {
		t.Fatalf("ResendOTP() error = %v", err)
	}
	if !out.Delivered {
		t.Fatal("Delivered = false, want true")
	}

	ev := h.pub.last(t)
	if ev.Destination != "student@example.com" {
		t.Fatalf("event Destination = %q, want email address", ev.Destination)
	}
}

func TestResendOTP_PhoneUsesSMSDestination(t *testing.T) {
	// Arrange
	h := newTestHarness(t)

	out, err := h.uc.Register(context.Background(), RegisterInput{
		Email:    "student@example.com",
		Password: "Secret123!",
		FullName: "Test Student",
		Phone:    "+628123456789",
		Role:     "student",
	})
	if err != nil {
		t.Fatalf("Register() error = %v", err)
	}

	// Act
	if _, err := h.uc.ResendOTP(context.Background(), ResendOTPInput{
		UserID: out.User.ID,
		Method: "phone",
	}); err != nil {
		t.Fatalf("ResendOTP() error = %v", err)
	}

	// Assert
	ev := h.pub.last(t)
	if ev.Method != "phone" {
		t.Fatalf("event Method = %q, want %q", ev.Method, "phone")
	}
	if ev.Destination != "+628123456789" {
		t.Fatalf("event Destination = %q, want phone number", ev.Destination)
	}
	if ev.Identifier != "student@example.com" {
		t.Fatalf("event Identifier = %q, want email address", ev.Identifier)
	}
}

func TestResendOTP_PhoneWithoutNumber(t *testing.T) {
	// Arrange
	h := newTestHarness(t)
	userID, _ := h.registerUser(t, "student@example.com")

	// Act
	_, err := h.uc.ResendOTP(context.Background(), ResendOTPInput{
		UserID: userID,
		Method: "phone",
	})

	// Assert
	assertStatus(t, err, http.StatusUnprocessableEntity)
}

func TestResendOTP_UnknownUser(t *testing.T) {
	// Arrange
	h := newTestHarness(t)

	// Act
	_, err := h.uc.ResendOTP(context.Background(), ResendOTPInput{
		UserID: 42,
		Method: "email",
	})

	// Assert
	assertStatus(t, err, http.StatusNotFound)
}
