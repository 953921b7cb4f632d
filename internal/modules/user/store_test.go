// README: User store tests against a live PostgreSQL (skipped without EZT_TEST_DSN).
package user

import (
	"context"
	"fmt"
	"os"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"eztravel/internal/infra"
)

func setupTestStore(t *testing.T) *Store {
	t.Helper()
	dsn := os.Getenv("EZT_TEST_DSN")
	if dsn == "" {
		t.Skip("EZT_TEST_DSN not set")
	}
	require.NoError(t, infra.RunMigrations(dsn))

	pool, err := infra.NewDB(context.Background(), dsn, 2*time.Second)
	require.NoError(t, err)
	t.Cleanup(pool.Close)
	return NewStore(pool, 2*time.Second)
}

func TestStore_CreateAndLookup(t *testing.T) {
	store := setupTestStore(t)
	ctx := context.Background()
	email := fmt.Sprintf("store-%d@example.com", time.Now().UnixNano())

	id, err := store.Create(ctx, &User{Email: email, PasswordHash: "h", FirstName: "A", LastName: "B"})
	require.NoError(t, err)
	assert.Positive(t, id)

	u, err := store.GetByEmail(ctx, email)
	require.NoError(t, err)
	assert.Equal(t, id, u.ID)
	assert.False(t, u.CreatedAt.IsZero())

	_, err = store.Create(ctx, &User{Email: email, PasswordHash: "h2", FirstName: "C", LastName: "D"})
	assert.ErrorIs(t, err, ErrEmailTaken)

	ok, err := store.UpdatePassword(ctx, id, "h3")
	require.NoError(t, err)
	assert.True(t, ok)

	ok, err = store.UpdatePassword(ctx, -1, "h4")
	require.NoError(t, err)
	assert.False(t, ok)

	_, err = store.GetByEmail(ctx, "nope-"+email)
	assert.ErrorIs(t, err, ErrNotFound)
}
