package cache

import (
	"context"
	"testing"

	pkgcache "TradeLens/pkg/cache"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestResponseCache_NamespacesKeys(t *testing.T) {
	ctx := context.Background()
	store := pkgcache.NewMemoryCache()
	defer store.Close()

	rc := NewResponseCache(store, "backend")
	_, ok, err := rc.GetBytes(ctx, "/stocks")
	require.NoError(t, err)
	assert.False(t, ok)

	require.NoError(t, rc.SetBytes(ctx, "/stocks", []byte(`["SFBT"]`), 0))
	b, ok, err := rc.GetBytes(ctx, "/stocks")
	require.NoError(t, err)
	require.True(t, ok)
	assert.Equal(t, `["SFBT"]`, string(b))

	exists, _ := store.Exists(ctx, "backend:/stocks")
	assert.True(t, exists)
}
