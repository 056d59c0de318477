package infra

import (
	"context"
	"path/filepath"
	"testing"

	"go-caixa-pos/internal/config"
	"go-caixa-pos/pkg/kvstore"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestOpenStore_Memory(t *testing.T) {
	store, closeFn, err := OpenStore(context.Background(), &config.Config{StoreDriver: "memory"})
	require.NoError(t, err)
	defer closeFn()
	assert.IsType(t, &kvstore.Memory{}, store)
}

func TestOpenStore_SQLitePersists(t *testing.T) {
	ctx := context.Background()
	cfg := &config.Config{StoreDriver: "sqlite", SQLitePath: filepath.Join(t.TempDir(), "caixa.db")}

	store, closeFn, err := OpenStore(ctx, cfg)
	require.NoError(t, err)
	require.NoError(t, kvstore.SetJSON(ctx, store, "isLoggedIn", true))
	require.NoError(t, closeFn())

	reopened, closeFn, err := OpenStore(ctx, cfg)
	require.NoError(t, err)
	defer closeFn()

	var loggedIn bool
	found, err := kvstore.GetJSON(ctx, reopened, "isLoggedIn", &loggedIn)
	require.NoError(t, err)
	assert.True(t, found)
	assert.True(t, loggedIn)
}

func TestOpenStore_UnknownDriver(t *testing.T) {
	_, _, err := OpenStore(context.Background(), &config.Config{StoreDriver: "etcd"})
	assert.Error(t, err)
}
