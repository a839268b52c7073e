package fs_test

import (
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/fwojciec/urlcast"
	"github.com/fwojciec/urlcast/fs"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestStore(t *testing.T) {
	t.Parallel()

	t.Run("puts object and returns public URL", func(t *testing.T) {
		t.Parallel()

		dir := t.TempDir()
		s := fs.NewStore(dir, "http://localhost:8000/files/")

		url, err := s.Put(context.Background(), "audio/ep.mp3", "audio/mpeg", strings.NewReader("mp3 data"))

		require.NoError(t, err)
		assert.Equal(t, "http://localhost:8000/files/audio/ep.mp3", url)

		data, err := os.ReadFile(filepath.Join(dir, "audio", "ep.mp3"))
		require.NoError(t, err)
		assert.Equal(t, "mp3 data", string(data))
	})

	t.Run("replaces existing object without leaving temp files", func(t *testing.T) {
		t.Parallel()

		dir := t.TempDir()
		s := fs.NewStore(dir, "http://x")
		ctx := context.Background()

		_, err := s.Put(ctx, "feed.xml", "application/xml", strings.NewReader("old"))
		require.NoError(t, err)
		_, err = s.Put(ctx, "feed.xml", "application/xml", strings.NewReader("new"))
		require.NoError(t, err)

		data, err := s.Get(ctx, "feed.xml")
		require.NoError(t, err)
		assert.Equal(t, "new", string(data))

		entries, err := os.ReadDir(dir)
		require.NoError(t, err)
		assert.Len(t, entries, 1)
	})

	t.Run("returns ENOTFOUND for missing object", func(t *testing.T) {
		t.Parallel()

		_, err := fs.NewStore(t.TempDir(), "http://x").Get(context.Background(), "feed.xml")

		require.Error(t, err)
		assert.Equal(t, urlcast.ENOTFOUND, urlcast.ErrorCode(err))
	})

	t.Run("rejects keys outside the directory", func(t *testing.T) {
		t.Parallel()

		s := fs.NewStore(t.TempDir(), "http://x")

		_, err := s.Put(context.Background(), "../escape.mp3", "audio/mpeg", strings.NewReader("x"))
		assert.Equal(t, urlcast.EINVALID, urlcast.ErrorCode(err))

		_, err = s.Get(context.Background(), "/etc/passwd")
		assert.Equal(t, urlcast.EINVALID, urlcast.ErrorCode(err))
	})
}

func TestWorkDir(t *testing.T) {
	t.Parallel()

	w, err := fs.NewWorkDir(t.TempDir())
	require.NoError(t, err)

	f, err := w.CreateTemp("chunk-*.mp3")
	require.NoError(t, err)
	require.NoError(t, f.Close())
	assert.Equal(t, w.Path(), filepath.Dir(f.Name()))
	assert.Equal(t, filepath.Join(w.Path(), "a.mp3"), w.Join("a.mp3"))

	require.NoError(t, w.Close())
	_, err = os.Stat(w.Path())
	assert.True(t, os.IsNotExist(err))
}
