package cache

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestInMemoryIdempotencyStore_Reserve(t *testing.T) {
	t.Run("first reservation wins", func(t *testing.T) {
		store := NewInMemoryIdempotencyStore()
		defer store.Close()

		ok, err := store.Reserve(context.Background(), "payment:abc", time.Minute)
		require.NoError(t, err)
		assert.True(t, ok)

		ok, err = store.Reserve(context.Background(), "payment:abc", time.Minute)
		require.NoError(t, err)
		assert.False(t, ok)
	})

	t.Run("expired key can be reserved again", func(t *testing.T) {
		store := NewInMemoryIdempotencyStore()
		defer store.Close()

		ok, err := store.Reserve(context.Background(), "payment:xyz", -time.Second)
		require.NoError(t, err)
		assert.True(t, ok)

		ok, err = store.Reserve(context.Background(), "payment:xyz", time.Minute)
		require.NoError(t, err)
		assert.True(t, ok)
	})

	t.Run("distinct keys do not collide", func(t *testing.T) {
		store := NewInMemoryIdempotencyStore()
		defer store.Close()

		ok, err := store.Reserve(context.Background(), "payment:a", time.Minute)
		require.NoError(t, err)
		assert.True(t, ok)

		ok, err = store.Reserve(context.Background(), "payment:b", time.Minute)
		require.NoError(t, err)
		assert.True(t, ok)
	})
}

func TestInMemoryIdempotencyStore_Seen(t *testing.T) {
	t.Run("reports held and expired keys", func(t *testing.T) {
		store := NewInMemoryIdempotencyStore()
		defer store.Close()

		_, err := store.Reserve(context.Background(), "held", time.Minute)
		require.NoError(t, err)
		_, err = store.Reserve(context.Background(), "expired", -time.Second)
		require.NoError(t, err)

		seen, err := store.Seen(context.Background(), "held")
		require.NoError(t, err)
		assert.True(t, seen)

		seen, err = store.Seen(context.Background(), "expired")
		require.NoError(t, err)
		assert.False(t, seen)

		seen, err = store.Seen(context.Background(), "unknown")
		require.NoError(t, err)
		assert.False(t, seen)
	})
}
