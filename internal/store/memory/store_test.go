package memory_test

import (
	"context"
	"testing"

	"github.com/pdrpinto/bestfirst/internal/store"
	"github.com/pdrpinto/bestfirst/internal/store/memory"
	"github.com/pdrpinto/bestfirst/internal/store/storetest"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMemoryStore_Contract(t *testing.T) {
	storetest.RunContract(t, memory.NewStore())
}

func TestMemoryStore_Isolation(t *testing.T) {
	s := memory.NewStore()
	ctx := context.Background()
	entry := &store.Entry{Domain: "sticky", Found: true, Actions: []string{"Up"}}

	require.NoError(t, s.Put(ctx, "k", entry))
	entry.Actions[0] = "Down"

	loaded, err := s.Get(ctx, "k")
	require.NoError(t, err)
	assert.Equal(t, []string{"Up"}, loaded.Actions)

	loaded.Actions[0] = "Left"
	again, err := s.Get(ctx, "k")
	require.NoError(t, err)
	assert.Equal(t, []string{"Up"}, again.Actions)
}
