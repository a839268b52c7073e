package fs_test

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/fwojciec/urlcast"
	"github.com/fwojciec/urlcast/fs"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestURLToPath(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		url     string
		want    string
		wantErr bool
	}{
		{
			name: "simple path",
			url:  "https://example.com/blog/2024/post",
			want: "blog/2024/post.md",
		},
		{
			name: "trailing slash becomes index",
			url:  "https://example.com/blog/",
			want: "blog/index.md",
		},
		{
			name: "root path becomes index",
			url:  "https://example.com/",
			want: "index.md",
		},
		{
			name: "root without trailing slash",
			url:  "https://example.com",
			want: "index.md",
		},
		{
			name: "ignores query string",
			url:  "https://example.com/post?utm_source=feed",
			want: "post.md",
		},
		{
			name: "ignores fragment",
			url:  "https://example.com/post#comments",
			want: "post.md",
		},
		{
			name:    "invalid URL",
			url:     "://bad",
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			got, err := fs.URLToPath(tt.url)

			if tt.wantErr {
				require.Error(t, err)
				return
			}

			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestFormatArticle(t *testing.T) {
	t.Parallel()

	t.Run("formats article with frontmatter", func(t *testing.T) {
		t.Parallel()

		article := &urlcast.Article{Title: "A Post", Content: "# A Post\n\nBody text."}

		got := fs.FormatArticle("https://example.com/post", article, time.Date(2025, 1, 8, 0, 0, 0, 0, time.UTC))

		want := `---
source: https://example.com/post
title: A Post
extracted: 2025-01-08
---

# A Post

Body text.
`
		assert.Equal(t, want, got)
	})

	t.Run("marks truncated articles", func(t *testing.T) {
		t.Parallel()

		article := &urlcast.Article{Title: "Long", Content: "x", Truncated: true}

		got := fs.FormatArticle("https://example.com/long", article, time.Date(2025, 1, 8, 0, 0, 0, 0, time.UTC))

		assert.Contains(t, got, "\ntruncated: true\n---\n")
	})
}

func TestWriter_WriteArticle(t *testing.T) {
	t.Parallel()

	t.Run("writes article to URL derived path", func(t *testing.T) {
		t.Parallel()

		baseDir := t.TempDir()
		w := fs.NewWriter(baseDir)

		path, err := w.WriteArticle("https://example.com/blog/post", &urlcast.Article{Title: "Post", Content: "# Post"})

		require.NoError(t, err)
		assert.Equal(t, filepath.Join(baseDir, "blog", "post.md"), path)

		content, err := os.ReadFile(path)
		require.NoError(t, err)
		assert.Contains(t, string(content), "source: https://example.com/blog/post\ntitle: Post\n")
		assert.Contains(t, string(content), "---\n\n# Post\n")
	})

	t.Run("rejects paths escaping the directory", func(t *testing.T) {
		t.Parallel()

		w := fs.NewWriter(t.TempDir())

		_, err := w.WriteArticle("https://example.com/../../etc/passwd", &urlcast.Article{Content: "x"})

		require.Error(t, err)
		assert.Equal(t, urlcast.EINVALID, urlcast.ErrorCode(err))
	})
}
