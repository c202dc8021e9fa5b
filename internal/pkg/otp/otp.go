package otp

import (
	"crypto/rand"
	"fmt"
	"math/big"
)

const (
	min  = 100000
	span = 900000 // codes are uniform over [100000, 999999]
)

// Generate returns a 6-digit verification code drawn from crypto/rand.
// Safe for concurrent use; crypto/rand carries no shared mutable state here.
func Generate() (string, error) {
	n, err := rand.Int(rand.Reader, big.NewInt(span))
	if err != nil {
		return "", fmt.Errorf("generate otp: %w", err)
	}
	return fmt.Sprintf("%06d", n.Int64()+min), nil
}
