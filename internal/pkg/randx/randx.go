/*
Package randx provides functions for generating cryptographically secure random numbers
and unique identifiers.

It is used to generate message identifiers (UUID v4, effectively a 128-bit random token)
and the small numeric aliases substituted for display names in anonymous messages.
*/
package randx

import (
	"crypto/rand"
	"fmt"
	"math/big"

	"github.com/google/uuid"
)

// MessageID generates a standard UUID v4 string to serve as a unique identifier for a message.
func MessageID() string {
	return uuid.New().String()
}

// AliasNumber draws a random alias in the range [1, max] using crypto/rand.
// max must be at least 1.
func AliasNumber(max int) (int, error) {
	if max < 1 {
		return 0, fmt.Errorf("alias range upper bound must be positive, got %d", max)
	}

	num, err := rand.Int(rand.Reader, big.NewInt(int64(max)))
	if err != nil {
		return 0, fmt.Errorf("failed to generate random number for alias: %v", err)
	}

	return int(num.Int64()) + 1, nil
}
