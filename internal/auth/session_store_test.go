package auth

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func TestMemorySessionStore(t *testing.T) {
	ctx := context.Background()

	t.Run("SaveAndGet", func(t *testing.T) {
		store := NewMemorySessionStore()
		require.NoError(t, store.Save(ctx, "sid-1", 42, time.Hour))

		userID, err := store.Get(ctx, "sid-1")
		require.NoError(t, err)
		require.EqualValues(t, 42, userID)
	})

	t.Run("UnknownSessionReturnsNotFound", func(t *testing.T) {
		store := NewMemorySessionStore()

		_, err := store.Get(ctx, "yok-boyle-bir-oturum")
		require.ErrorIs(t, err, ErrSessionNotFound)
	})

	t.Run("DeleteRemovesSession", func(t *testing.T) {
		store := NewMemorySessionStore()
		require.NoError(t, store.Save(ctx, "sid-1", 42, time.Hour))
		require.NoError(t, store.Delete(ctx, "sid-1"))

		_, err := store.Get(ctx, "sid-1")
		require.ErrorIs(t, err, ErrSessionNotFound)
	})

	t.Run("ExpiredSessionRejected", func(t *testing.T) {
		store := NewMemorySessionStore()
		require.NoError(t, store.Save(ctx, "sid-1", 42, -time.Second))

		_, err := store.Get(ctx, "sid-1")
		require.ErrorIs(t, err, ErrSessionNotFound)
	})
}
