// Package storetest holds the behaviour every store.Store must share.
package storetest

import (
	"context"
	"testing"

	"github.com/pdrpinto/bestfirst"
	"github.com/pdrpinto/bestfirst/internal/store"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// RunContract exercises s through the store.Store interface.
func RunContract(t *testing.T, s store.Store) {
	ctx := context.Background()
	key := store.Key("anima", "contract")

	t.Run("Put and Get", func(t *testing.T) {
		entry := &store.Entry{
			Domain:  "anima",
			Found:   true,
			Actions: []string{"Up", "Left"},
			Stats:   bestfirst.Stats{Expanded: 7, Generated: 20, Visited: 8},
		}
		require.NoError(t, s.Put(ctx, key, entry))

		loaded, err := s.Get(ctx, key)
		require.NoError(t, err)
		assert.Equal(t, entry, loaded)
	})

	t.Run("Get Non-Existent", func(t *testing.T) {
		_, err := s.Get(ctx, key+"-missing")
		assert.ErrorIs(t, err, store.ErrNotFound)
	})

	t.Run("Overwrite", func(t *testing.T) {
		require.NoError(t, s.Put(ctx, key, &store.Entry{Domain: "anima", Found: false}))

		loaded, err := s.Get(ctx, key)
		require.NoError(t, err)
		assert.False(t, loaded.Found)
		assert.Empty(t, loaded.Actions)
	})

	t.Run("Delete", func(t *testing.T) {
		require.NoError(t, s.Put(ctx, key, &store.Entry{Domain: "anima"}))
		require.NoError(t, s.Delete(ctx, key))

		_, err := s.Get(ctx, key)
		assert.ErrorIs(t, err, store.ErrNotFound, "Get after Delete should return ErrNotFound")
	})
}
