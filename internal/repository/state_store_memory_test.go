package repository

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMemoryStateStoreSetGetDelete(t *testing.T) {
	store := NewMemoryStateStore()
	ctx := context.Background()

	val, err := store.Get(ctx, "missing")
	require.NoError(t, err)
	assert.Nil(t, val)

	require.NoError(t, store.Set(ctx, "k", []byte("v"), 0))
	val, err = store.Get(ctx, "k")
	require.NoError(t, err)
	assert.Equal(t, []byte("v"), val)

	exists, err := store.Exists(ctx, "k")
	require.NoError(t, err)
	assert.True(t, exists)

	require.NoError(t, store.Delete(ctx, "k"))
	exists, err = store.Exists(ctx, "k")
	require.NoError(t, err)
	assert.False(t, exists)
}

func TestMemoryStateStoreTTL(t *testing.T) {
	store := NewMemoryStateStore()
	ctx := context.Background()

	require.NoError(t, store.Set(ctx, "short", []byte("v"), 20*time.Millisecond))
	require.NoError(t, store.Set(ctx, "forever", []byte("v"), 0))

	assert.Eventually(t, func() bool {
		exists, err := store.Exists(ctx, "short")
		return err == nil && !exists
	}, time.Second, 5*time.Millisecond)

	exists, err := store.Exists(ctx, "forever")
	require.NoError(t, err)
	assert.True(t, exists, "zero ttl means no expiry")
}
