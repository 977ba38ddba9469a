package session

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestInMemoryStore(t *testing.T) {
	ctx := context.Background()

	t.Run("create and get", func(t *testing.T) {
		store := NewInMemoryStore()

		sess, err := store.Create(ctx, "ada@example.com", "Ada", time.Hour)
		require.NoError(t, err)
		assert.NotEmpty(t, sess.ID)

		got, err := store.Get(ctx, sess.ID)
		require.NoError(t, err)
		require.NotNil(t, got)
		assert.Equal(t, "ada@example.com", got.Email)
		assert.Equal(t, "Ada", got.DisplayName())
	})

	t.Run("ids are unique", func(t *testing.T) {
		store := NewInMemoryStore()

		a, err := store.Create(ctx, "a@example.com", "", time.Hour)
		require.NoError(t, err)
		b, err := store.Create(ctx, "b@example.com", "", time.Hour)
		require.NoError(t, err)

		assert.NotEqual(t, a.ID, b.ID)
	})

	t.Run("unknown session", func(t *testing.T) {
		store := NewInMemoryStore()

		got, err := store.Get(ctx, "missing")
		assert.NoError(t, err)
		assert.Nil(t, got)
	})

	t.Run("expired session is dropped", func(t *testing.T) {
		store := NewInMemoryStore()
		now := time.Date(2016, 1, 1, 12, 0, 0, 0, time.UTC)
		store.now = func() time.Time { return now }

		sess, err := store.Create(ctx, "ada@example.com", "", time.Minute)
		require.NoError(t, err)

		now = now.Add(2 * time.Minute)
		got, err := store.Get(ctx, sess.ID)
		assert.NoError(t, err)
		assert.Nil(t, got)
		assert.Empty(t, store.sessions)
	})

	t.Run("delete", func(t *testing.T) {
		store := NewInMemoryStore()
		sess, err := store.Create(ctx, "ada@example.com", "", time.Hour)
		require.NoError(t, err)

		require.NoError(t, store.Delete(ctx, sess.ID))

		got, _ := store.Get(ctx, sess.ID)
		assert.Nil(t, got)
	})

	t.Run("purge expired", func(t *testing.T) {
		store := NewInMemoryStore()
		now := time.Date(2016, 1, 1, 12, 0, 0, 0, time.UTC)
		store.now = func() time.Time { return now }

		_, err := store.Create(ctx, "short@example.com", "", time.Minute)
		require.NoError(t, err)
		long, err := store.Create(ctx, "long@example.com", "", time.Hour)
		require.NoError(t, err)

		now = now.Add(10 * time.Minute)

		assert.Equal(t, 1, store.PurgeExpired())
		got, _ := store.Get(ctx, long.ID)
		assert.NotNil(t, got)
	})
}

func TestSession_DisplayName(t *testing.T) {
	assert.Equal(t, "Ada", (&Session{Email: "ada@example.com", Name: "Ada"}).DisplayName())
	assert.Equal(t, "ada@example.com", (&Session{Email: "ada@example.com"}).DisplayName())
}
