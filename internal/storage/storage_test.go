package storage

import (
	"context"
	"io"
	"strings"
	"testing"

	"github.com/outreach-crm/outreach-api/internal/config"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func TestLocalStorage_SaveOpenDelete(t *testing.T) {
	store, err := NewLocalStorage(t.TempDir())
	require.NoError(t, err)
	ctx := context.Background()

	key := "digests/2024-01/todo-2024-01-17.csv"
	size, err := store.Save(ctx, key, "text/csv", strings.NewReader("contact,due\nAda Lane,2024-01-17\n"))
	require.NoError(t, err)
	assert.Equal(t, int64(32), size)

	// same key overwrites
	_, err = store.Save(ctx, key, "text/csv", strings.NewReader("replaced"))
	require.NoError(t, err)

	rc, err := store.Open(ctx, key)
	require.NoError(t, err)
	body, err := io.ReadAll(rc)
	require.NoError(t, rc.Close())
	require.NoError(t, err)
	assert.Equal(t, "replaced", string(body))

	require.NoError(t, store.Delete(ctx, key))
	require.NoError(t, store.Delete(ctx, key))

	_, err = store.Open(ctx, key)
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestLocalStorage_RejectsEscapingKeys(t *testing.T) {
	store, err := NewLocalStorage(t.TempDir())
	require.NoError(t, err)
	ctx := context.Background()

	for _, key := range []string{"", "/etc/passwd", "../outside.csv", "digests/../../x", `digests\x.csv`, "."} {
		_, err := store.Save(ctx, key, "text/csv", strings.NewReader("x"))
		assert.ErrorIs(t, err, ErrInvalidKey, key)
	}
}

func TestNewStorage_Modes(t *testing.T) {
	local, err := NewStorage(&config.StorageConfig{Mode: "local", LocalBasePath: t.TempDir()}, zap.NewNop())
	require.NoError(t, err)
	assert.IsType(t, &LocalStorage{}, local)

	_, err = NewStorage(&config.StorageConfig{Mode: "azure"}, zap.NewNop())
	assert.ErrorContains(t, err, "connection string required")

	_, err = NewStorage(&config.StorageConfig{Mode: "ftp"}, zap.NewNop())
	assert.ErrorContains(t, err, "unsupported storage mode")
}
