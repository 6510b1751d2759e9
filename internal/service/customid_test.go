package service

import (
	"context"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	appErrors "github.com/hostelworks/hostel-admin-api/pkg/errors"
)

func TestCustomIDGeneratorProducesAlphanumeric(t *testing.T) {
	gen := NewCustomIDGenerator(6, 10)

	id, err := gen.Generate(context.Background(), func(ctx context.Context, id string) (bool, error) {
		return false, nil
	})
	require.NoError(t, err)
	assert.Len(t, id, 6)
	for _, r := range id {
		assert.True(t, strings.ContainsRune(customIDAlphabet, r))
	}
}

func TestCustomIDGeneratorRetriesUntilFree(t *testing.T) {
	gen := NewCustomIDGenerator(6, 10)

	calls := 0
	id, err := gen.Generate(context.Background(), func(ctx context.Context, id string) (bool, error) {
		calls++
		return calls < 3, nil
	})
	require.NoError(t, err)
	assert.NotEmpty(t, id)
	assert.Equal(t, 3, calls)
}

func TestCustomIDGeneratorExhaustsBudget(t *testing.T) {
	gen := NewCustomIDGenerator(6, 4)

	calls := 0
	_, err := gen.Generate(context.Background(), func(ctx context.Context, id string) (bool, error) {
		calls++
		return true, nil
	})
	assert.ErrorIs(t, err, appErrors.ErrIDGenerationExhausted)
	assert.Equal(t, 4, calls)
}
