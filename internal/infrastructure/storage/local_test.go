package storage

import (
	"context"
	"io"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/iho/compta/internal/domain"
)

func TestLocalStoreRoundTrip(t *testing.T) {
	ctx := context.Background()
	store, err := NewLocalStore(t.TempDir())
	require.NoError(t, err)
	assert.Equal(t, domain.StorageLocal, store.Provider())

	key := "2024/03/01HX_facture.pdf"
	require.NoError(t, store.Put(ctx, key, strings.NewReader("%PDF-1.7"), 8, "application/pdf"))

	body, err := store.Get(ctx, key)
	require.NoError(t, err)
	data, err := io.ReadAll(body)
	require.NoError(t, body.Close())
	require.NoError(t, err)
	assert.Equal(t, "%PDF-1.7", string(data))

	entries, err := os.ReadDir(filepath.Join(store.root, "2024", "03"))
	require.NoError(t, err)
	require.Len(t, entries, 1, "temporary upload files must not be left behind")

	require.NoError(t, store.Delete(ctx, key))
	_, err = store.Get(ctx, key)
	assert.ErrorIs(t, err, domain.ErrJustificatifNotFound)

	assert.NoError(t, store.Delete(ctx, key), "deleting a missing object is a no-op")
}

func TestLocalStoreOverwrite(t *testing.T) {
	ctx := context.Background()
	store, err := NewLocalStore(t.TempDir())
	require.NoError(t, err)

	require.NoError(t, store.Put(ctx, "a.txt", strings.NewReader("first"), 5, "text/plain"))
	require.NoError(t, store.Put(ctx, "a.txt", strings.NewReader("second"), 6, "text/plain"))

	body, err := store.Get(ctx, "a.txt")
	require.NoError(t, err)
	defer body.Close()
	data, _ := io.ReadAll(body)
	assert.Equal(t, "second", string(data))
}

func TestLocalStoreRejectsEscapingKeys(t *testing.T) {
	ctx := context.Background()
	store, err := NewLocalStore(t.TempDir())
	require.NoError(t, err)

	for _, key := range []string{"", "../secret", "2024/../../etc/passwd", "/etc/passwd"} {
		t.Run(key, func(t *testing.T) {
			assert.ErrorIs(t, store.Put(ctx, key, strings.NewReader("x"), 1, "text/plain"), ErrInvalidKey)
			_, err := store.Get(ctx, key)
			assert.ErrorIs(t, err, ErrInvalidKey)
			assert.ErrorIs(t, store.Delete(ctx, key), ErrInvalidKey)
		})
	}
}

func TestLocalStoreCanceledContext(t *testing.T) {
	store, err := NewLocalStore(t.TempDir())
	require.NoError(t, err)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	assert.ErrorIs(t, store.Put(ctx, "a.txt", strings.NewReader("x"), 1, "text/plain"), context.Canceled)
}

func TestNewLocalStoreRequiresRoot(t *testing.T) {
	_, err := NewLocalStore("")
	assert.Error(t, err)
}
