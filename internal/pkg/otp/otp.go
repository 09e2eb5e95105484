// Package otp generates numeric one-time codes.
package otp

import (
	"crypto/rand"
	"math/big"
	"strconv"
)

const (
	codeMin = 100000
	codeMax = 999999
)

// Generator produces one-time codes.
type Generator interface {
	// Generate returns a new one-time code.
	Generate() (string, error)
}

// Numeric generates 6-digit codes from crypto/rand, uniformly distributed
// over [100000, 999999].
type Numeric struct{}

// NewNumeric returns a numeric code generator.
func NewNumeric() *Numeric {
	return &Numeric{}
}

// Generate returns a new 6-digit code.
func (n *Numeric) Generate() (string, error) {
	span := big.NewInt(codeMax - codeMin + 1)

	v, err := rand.Int(rand.Reader, span)
	if err != nil {
		return "", err
	}

	return strconv.FormatInt(v.Int64()+codeMin, 10), nil
}
