package storage_test

import (
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ammerola/stockscan/internal/adapters/storage"
	"github.com/ammerola/stockscan/test/helpers"
)

func TestLocalStorage_RoundTrip(t *testing.T) {
	ctx := context.Background()
	base := t.TempDir()
	s := storage.NewLocalStorage(base, helpers.TestLogger())

	path, err := s.Upload(ctx, "labels/7/42.png", strings.NewReader("png-bytes"), "image/png")
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(base, "labels", "7", "42.png"), path)

	data, err := s.Download(ctx, "labels/7/42.png")
	require.NoError(t, err)
	assert.Equal(t, "png-bytes", string(data))

	// overwrite keeps a single file
	_, err = s.Upload(ctx, "labels/7/42.png", strings.NewReader("reprinted"), "")
	require.NoError(t, err)
	data, err = s.Download(ctx, "labels/7/42.png")
	require.NoError(t, err)
	assert.Equal(t, "reprinted", string(data))

	require.NoError(t, s.Delete(ctx, "labels/7/42.png"))
	require.NoError(t, s.Delete(ctx, "labels/7/42.png"))

	_, err = os.Stat(path)
	assert.True(t, os.IsNotExist(err))

	_, err = s.Download(ctx, "labels/7/42.png")
	assert.Error(t, err)
}

func TestLocalStorage_List(t *testing.T) {
	ctx := context.Background()
	s := storage.NewLocalStorage(t.TempDir(), helpers.TestLogger())

	for _, key := range []string{"labels/8/1.png", "labels/7/2.png", "exports/stock.xlsx"} {
		_, err := s.Upload(ctx, key, strings.NewReader(key), "")
		require.NoError(t, err)
	}

	keys, err := s.List(ctx, "labels/")
	require.NoError(t, err)
	assert.Equal(t, []string{"labels/7/2.png", "labels/8/1.png"}, keys)

	empty, err := storage.NewLocalStorage(filepath.Join(t.TempDir(), "missing"), helpers.TestLogger()).List(ctx, "")
	require.NoError(t, err)
	assert.Empty(t, empty)
}

func TestLocalStorage_RejectsEscapingKeys(t *testing.T) {
	ctx := context.Background()
	base := t.TempDir()
	s := storage.NewLocalStorage(base, helpers.TestLogger())

	for _, key := range []string{"../outside.png", "/etc/passwd", "labels/../../x", "."} {
		t.Run(key, func(t *testing.T) {
			_, err := s.Upload(ctx, key, strings.NewReader("x"), "")
			assert.Error(t, err)
		})
	}

	_, err := os.Stat(filepath.Join(filepath.Dir(base), "outside.png"))
	assert.True(t, os.IsNotExist(err))
}
