package usecase

import (
	"context"
	"net/http"
	"sync"
	"testing"
	"time"
)

func TestVerifyOTP_ValidCodeIssuesToken(t *testing.T) {
	// Arrange
	h := newTestHarness(t)
	userID, code := h.registerUser(t, "student@example.com")

	// Act
	out, err := h.uc.VerifyOTP(context.Background(), VerifyOTPInput{
		Identifier: "student@example.com",
		OTP:        code,
		Type:       "email",
	})

	// Assert
	if err != nil {
		t.Fatalf("VerifyOTP() error = %v", err)
	}
	if out.VerificationToken == "" {
		t.Fatal("VerificationToken is empty")
	}
	if out.UserID != userID {
		t.Fatalf("UserID = %d, want %d", out.UserID, userID)
	}
	if out.Role != "student" {
		t.Fatalf("Role = %q, want %q", out.Role, "student")
	}
}

func TestVerifyOTP_CodeIsSingleUse(t *testing.T) {
	// Arrange
	h := newTestHarness(t)
	_, code := h.registerUser(t, "student@example.com")

	if _, err := h.uc.VerifyOTP(context.Background(), VerifyOTPInput{
		Identifier: "student@example.com",
		OTP:        code,
	}); err != nil {
		t.Fatalf("first VerifyOTP() error = %v", err)
	}

	// Act
	_, err := h.uc.VerifyOTP(context.Background(), VerifyOTPInput{
		Identifier: "student@example.com",
		OTP:        code,
	})

	// Assert
	assertStatus(t, err, http.StatusNotFound)
}

func TestVerifyOTP_UnknownIdentifier(t *testing.T) {
	// Arrange
	h := newTestHarness(t)

	// Act
	_, err := h.uc.VerifyOTP(context.Background(), VerifyOTPInput{
		Identifier: "nobody@example.com",
		OTP:        "123456",
	})

	// Assert
	assertStatus(t, err, http.StatusNotFound)
}

func TestVerifyOTP_ExpiredCode(t *testing.T) {
	// Arrange
	h := newTestHarness(t)
	_, code := h.registerUser(t, "student@example.com")

	h.clock.Advance(6 * time.Minute)

	// Act: a correct code past its expiry is still rejected.
	_, err := h.uc.VerifyOTP(context.Background(), VerifyOTPInput{
		Identifier: "student@example.com",
		OTP:        code,
	})

	// Assert
	assertStatus(t, err, http.StatusUnauthorized)

	// An expired record is removed on observation; the next attempt is 404.
	_, err = h.uc.VerifyOTP(context.Background(), VerifyOTPInput{
		Identifier: "student@example.com",
		OTP:        code,
	})
	assertStatus(t, err, http.StatusNotFound)
}

func TestVerifyOTP_AttemptCeiling(t *testing.T) {
	// Arrange
	h := newTestHarness(t)
	_, code := h.registerUser(t, "student@example.com")
	bad := wrongCode(code)

	for range 3 {
		_, err := h.uc.VerifyOTP(context.Background(), VerifyOTPInput{
			Identifier: "student@example.com",
			OTP:        bad,
		})
		assertStatus(t, err, http.StatusUnauthorized)
	}

	// Act: even the correct code is rejected once the ceiling is reached.
	_, err := h.uc.VerifyOTP(context.Background(), VerifyOTPInput{
		Identifier: "student@example.com",
		OTP:        code,
	})

	// Assert
	assertStatus(t, err, http.StatusUnauthorized)

	// The record is removed; a further attempt is 404.
	_, err = h.uc.VerifyOTP(context.Background(), VerifyOTPInput{
		Identifier: "student@example.com",
		OTP:        code,
	})
	assertStatus(t, err, http.StatusNotFound)
}

func TestVerifyOTP_ReissueResetsAttempts(t *testing.T) {
	// Arrange
	h := newTestHarness(t)
	userID, code := h.registerUser(t, "student@example.com")
	bad := wrongCode(code)

	for range 2 {
		_, err := h.uc.VerifyOTP(context.Background(), VerifyOTPInput{
			Identifier: "student@example.com",
			OTP:        bad,
		})
		assertStatus(t, err, http.StatusUnauthorized)
	}

	out, err := h.uc.ResendOTP(context.Background(), ResendOTPInput{UserID: userID, Method: "email"})
	if err != nil {
		t.Fatalf("ResendOTP() error = %v", err)
	}
	if !out.Delivered {
		t.Fatal("Delivered = false, want true")
	}
	fresh := h.pub.last(t).Code

	// Act: the fresh code verifies even after earlier failures.
	res, err := h.uc.VerifyOTP(context.Background(), VerifyOTPInput{
		Identifier: "student@example.com",
		OTP:        fresh,
	})

	// Assert
	if err != nil {
		t.Fatalf("VerifyOTP() error = %v", err)
	}
	if res.VerificationToken == "" {
		t.Fatal("VerificationToken is empty")
	}

	// The replaced code is gone.
	_, err = h.uc.VerifyOTP(context.Background(), VerifyOTPInput{
		Identifier: "student@example.com",
		OTP:        code,
	})
	assertStatus(t, err, http.StatusNotFound)
}

func TestVerifyOTP_ConcurrentSubmissions(t *testing.T) {
	// Arrange
	h := newTestHarness(t)
	_, code := h.registerUser(t, "student@example.com")

	// Act: two concurrent submissions of the correct code. The per-identifier
	// lock serializes them, so exactly one wins.
	var wg sync.WaitGroup
	errs := make([]error, 2)
	for i := range errs {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_, errs[i] = h.uc.VerifyOTP(context.Background(), VerifyOTPInput{
				Identifier: "student@example.com",
				OTP:        code,
			})
		}()
	}
	wg.Wait()

	// Assert
	var okCount, notFoundCount int
	for _, err := range errs {
		if err == nil {
			okCount++
			continue
		}
		assertStatus(t, err, http.StatusNotFound)
		notFoundCount++
	}
	if okCount != 1 || notFoundCount != 1 {
		t.Fatalf("okCount = %d, notFoundCount = %d, want 1 and 1", okCount, notFoundCount)
	}
}
