package service

import (
	"context"
	"crypto/rand"
	"fmt"
	"math/big"

	appErrors "github.com/hostelworks/hostel-admin-api/pkg/errors"
)

const customIDAlphabet = "abcdefghijklmnopqrstuvwxyzABCDEFGHIJKLMNOPQRSTUVWXYZ0123456789"

// CustomIDGenerator issues short human-readable user ids. Candidates are
// checked against the taken callback and generation gives up after the
// configured number of attempts rather than looping forever.
type CustomIDGenerator struct {
	length   int
	attempts int
}

// NewCustomIDGenerator constructs a generator with the given id length and
// attempt budget. Non-positive values fall back to 6 and 10.
func NewCustomIDGenerator(length, attempts int) *CustomIDGenerator {
	if length <= 0 {
		length = 6
	}
	if attempts <= 0 {
		attempts = 10
	}
	return &CustomIDGenerator{length: length, attempts: attempts}
}

// Generate returns a fresh id not reported taken. It returns
// ErrIDGenerationExhausted once the attempt budget runs out.
func (g *CustomIDGenerator) Generate(ctx context.Context, taken func(ctx context.Context, id string) (bool, error)) (string, error) {
	for i := 0; i < g.attempts; i++ {
		candidate, err := g.random()
		if err != nil {
			return "", fmt.Errorf("generate custom id: %w", err)
		}
		exists, err := taken(ctx, candidate)
		if err != nil {
			return "", fmt.Errorf("check custom id: %w", err)
		}
		if !exists {
			return candidate, nil
		}
	}
	return "", appErrors.ErrIDGenerationExhausted
}

func (g *CustomIDGenerator) random() (string, error) {
	buf := make([]byte, g.length)
	max := big.NewInt(int64(len(customIDAlphabet)))
	for i := range buf {
		n, err := rand.Int(rand.Reader, max)
		if err != nil {
			return "", err
		}
		buf[i] = customIDAlphabet[n.Int64()]
	}
	return string(buf), nil
}
