package credstore_test

import (
	"context"
	"testing"

	"github.com/spf13/afero"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/campusdesk/schedkit/core/credstore"
)

var testPair = credstore.Pair{Access: "access-token", Refresh: "refresh-token"}

func TestPairEmpty(t *testing.T) {
	t.Parallel()

	assert.True(t, credstore.Pair{}.Empty())
	assert.False(t, credstore.Pair{Access: "a"}.Empty())
	assert.False(t, credstore.Pair{Refresh: "r"}.Empty())
}

// runStoreContract exercises the behavior every Store implementation must
// share: round-trip, ErrNotFound on empty, idempotent clear.
func runStoreContract(t *testing.T, store credstore.Store) {
	t.Helper()
	ctx := context.Background()

	_, err := store.Load(ctx)
	require.ErrorIs(t, err, credstore.ErrNotFound)

	require.NoError(t, store.Save(ctx, testPair))

	loaded, err := store.Load(ctx)
	require.NoError(t, err)
	assert.Equal(t, testPair, loaded)

	require.NoError(t, store.Clear(ctx))
	_, err = store.Load(ctx)
	require.ErrorIs(t, err, credstore.ErrNotFound)

	// Clearing an already-empty store is a no-op, not an error.
	require.NoError(t, store.Clear(ctx))
}

func TestMemory(t *testing.T) {
	t.Parallel()
	runStoreContract(t, credstore.NewMemory())
}

func TestFile(t *testing.T) {
	t.Parallel()

	t.Run("contract", func(t *testing.T) {
		t.Parallel()
		runStoreContract(t, credstore.NewFileFs(afero.NewMemMapFs(), "auth/credentials.json"))
	})

	t.Run("survives a second store instance", func(t *testing.T) {
		t.Parallel()
		ctx := context.Background()
		fs := afero.NewMemMapFs()

		first := credstore.NewFileFs(fs, "credentials.json")
		require.NoError(t, first.Save(ctx, testPair))

		// A new instance over the same filesystem sees the saved pair,
		// mirroring an application restart.
		second := credstore.NewFileFs(fs, "credentials.json")
		loaded, err := second.Load(ctx)
		require.NoError(t, err)
		assert.Equal(t, testPair, loaded)
	})

	t.Run("corrupted file reported as load failure", func(t *testing.T) {
		t.Parallel()
		ctx := context.Background()
		fs := afero.NewMemMapFs()
		require.NoError(t, afero.WriteFile(fs, "credentials.json", []byte("{not json"), 0o600))

		store := credstore.NewFileFs(fs, "credentials.json")
		_, err := store.Load(ctx)
		require.ErrorIs(t, err, credstore.ErrLoadFailed)
	})
}

func TestFallback(t *testing.T) {
	t.Parallel()

	t.Run("contract while durable store works", func(t *testing.T) {
		t.Parallel()
		runStoreContract(t, credstore.WithFallback(credstore.NewMemory(), nil))
	})

	t.Run("degrades on save failure", func(t *testing.T) {
		t.Parallel()
		ctx := context.Background()

		// Read-only filesystem: every write fails.
		fs := afero.NewReadOnlyFs(afero.NewMemMapFs())
		store := credstore.WithFallback(credstore.NewFileFs(fs, "credentials.json"), nil)

		require.NoError(t, store.Save(ctx, testPair))
		assert.True(t, store.Degraded())

		// The pair is still available from the in-memory copy.
		loaded, err := store.Load(ctx)
		require.NoError(t, err)
		assert.Equal(t, testPair, loaded)

		require.NoError(t, store.Clear(ctx))
		_, err = store.Load(ctx)
		require.ErrorIs(t, err, credstore.ErrNotFound)
	})

	t.Run("degrades on load failure", func(t *testing.T) {
		t.Parallel()
		ctx := context.Background()
		fs := afero.NewMemMapFs()
		require.NoError(t, afero.WriteFile(fs, "credentials.json", []byte("garbage"), 0o600))

		store := credstore.WithFallback(credstore.NewFileFs(fs, "credentials.json"), nil)
		_, err := store.Load(ctx)
		require.ErrorIs(t, err, credstore.ErrNotFound)
		assert.True(t, store.Degraded())
	})
}
