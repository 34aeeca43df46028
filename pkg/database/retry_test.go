package database

import (
	"context"
	"testing"

	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestIsBusyError(t *testing.T) {
	t.Parallel()

	assert.False(t, isBusyError(nil))
	assert.False(t, isBusyError(errors.New("UNIQUE constraint failed: user_book_relations.user_id, user_book_relations.book_id")))
	assert.True(t, isBusyError(errors.New("database is locked")))
	assert.True(t, isBusyError(errors.New("database table is locked")))
	assert.True(t, isBusyError(errors.New("SQLITE_BUSY")))
	assert.True(t, isBusyError(errors.New("sqlite: busy (5) (SQLITE_BUSY)")))
}

func TestRetryWithBackoffStopsOnSuccess(t *testing.T) {
	t.Parallel()

	attempts := 0
	err := retryWithBackoff(context.Background(), 5, func() error {
		attempts++
		if attempts < 3 {
			return errors.New("database is locked")
		}
		return nil
	})
	require.NoError(t, err)
	assert.Equal(t, 3, attempts)
}

func TestRetryWithBackoffPassesThroughOtherErrors(t *testing.T) {
	t.Parallel()

	attempts := 0
	err := retryWithBackoff(context.Background(), 5, func() error {
		attempts++
		return errors.New("UNIQUE constraint failed")
	})
	require.Error(t, err)
	assert.Equal(t, 1, attempts)
}

func TestRetryWithBackoffGivesUpAfterMaxRetries(t *testing.T) {
	t.Parallel()

	attempts := 0
	err := retryWithBackoff(context.Background(), 2, func() error {
		attempts++
		return errors.New("database is locked")
	})
	require.Error(t, err)
	assert.Equal(t, 3, attempts)
}
