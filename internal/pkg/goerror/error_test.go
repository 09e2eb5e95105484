package goerror

import (
	"errors"
	"net/http"
	"testing"
)

func TestError_StatusCode(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want int
	}{
		{name: "server", err: NewServer(errors.New("boom")), want: http.StatusInternalServerError},
		{name: "invalid format", err: NewInvalidFormat(), want: http.StatusBadRequest},
		{name: "invalid input", err: NewInvalidInput(errors.New("bad")), want: http.StatusUnprocessableEntity},
		{name: "not found", err: NewBusiness("missing", CodeNotFound), want: http.StatusNotFound},
		{name: "conflict", err: NewBusiness("duplicate", CodeConflict), want: http.StatusConflict},
		{name: "unauthorized", err: NewBusiness("who are you", CodeUnauthorized), want: http.StatusUnauthorized},
		{name: "forbidden", err: NewBusiness("not yours", CodeForbidden), want: http.StatusForbidden},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			// Arrange
			var gerr *Error
			if !errors.As(tt.err, &gerr) {
				t.Fatalf("error = %v, want *Error", tt.err)
			}

			// Act / Assert
			if gerr.StatusCode() != tt.want {
				t.Fatalf("StatusCode() = %d, want %d", gerr.StatusCode(), tt.want)
			}
		})
	}
}

func TestNewServer_HidesCause(t *testing.T) {
	// Arrange
	cause := errors.New("pq: connection refused")

	// Act
	err := NewServer(cause)

	// Assert
	var gerr *Error
	if !errors.As(err, &gerr) {
		t.Fatalf("error = %v, want *Error", err)
	}
	if gerr.Msg() != "Internal server error" {
		t.Fatalf("Msg() = %q, want generic message", gerr.Msg())
	}
	if !errors.Is(err, cause) {
		t.Fatal("wrapped cause is not reachable via errors.Is")
	}
}

func TestNewInvalidInputFields(t *testing.T) {
	// Arrange / Act
	err := NewInvalidInputFields("method", "account has no phone number")

	// Assert
	var gerr *Error
	if !errors.As(err, &gerr) {
		t.Fatalf("error = %v, want *Error", err)
	}
	if got := gerr.Fields()["method"]; got != "account has no phone number" {
		t.Fatalf("Fields()[method] = %q, want detail", got)
	}
}
