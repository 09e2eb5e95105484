package otp

import "testing"

func TestNumeric_Generate(t *testing.T) {
	// Arrange
	gen := NewNumeric()

	for range 1000 {
		// Act
		code, err := gen.Generate()

		// Assert
		if err != nil {
			t.Fatalf("Generate() error = %v", err)
		}
		if len(code) != 6 {
			t.Fatalf("len(code) = %d, want 6; code = %q", len(code), code)
		}
		if code < "100000" || code > "999999" {
			t.Fatalf("code = %q, want within [100000, 999999]", code)
		}
	}
}
