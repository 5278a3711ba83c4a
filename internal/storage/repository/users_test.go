package repository

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/magabrotheeeer/shop-backend/internal/models"
)

func TestStorage_Users(t *testing.T) {
	storage := setupTestDatabase(t)
	verify := NewTestVerification(storage)
	ctx := context.Background()

	user := models.User{Email: "alice@example.com", PasswordHash: "hash", IsAdmin: true}
	id, err := storage.CreateUser(ctx, user)
	require.NoError(t, err)
	assert.Positive(t, id)

	t.Run("get by email", func(t *testing.T) {
		got, err := storage.GetUserByEmail(ctx, "alice@example.com")
		require.NoError(t, err)
		assert.Equal(t, id, got.ID)
		assert.Equal(t, "hash", got.PasswordHash)
		assert.True(t, got.IsAdmin)
	})

	t.Run("duplicate email leaves a single row", func(t *testing.T) {
		_, err := storage.CreateUser(ctx, models.User{Email: "alice@example.com", PasswordHash: "other"})
		require.ErrorIs(t, err, models.ErrAlreadyExists)
		assert.Equal(t, 1, verify.Count(t, "users"))
	})

	t.Run("unknown email", func(t *testing.T) {
		_, err := storage.GetUserByEmail(ctx, "bob@example.com")
		require.ErrorIs(t, err, models.ErrNotFound)
	})

	t.Run("cancelled context", func(t *testing.T) {
		cctx, cancel := context.WithCancel(ctx)
		cancel()
		_, err := storage.CreateUser(cctx, models.User{Email: "carol@example.com", PasswordHash: "h"})
		require.ErrorIs(t, err, context.Canceled)
	})
}

func TestCheckDatabaseReady(t *testing.T) {
	storage := setupTestDatabase(t)
	require.NoError(t, CheckDatabaseReady(storage))

	_, err := storage.DB.Exec(`DROP TABLE orders`)
	require.NoError(t, err)
	require.Error(t, CheckDatabaseReady(storage))
}
