package urlcast_test

import (
	"context"
	"testing"

	"github.com/fwojciec/urlcast"
	"github.com/fwojciec/urlcast/mock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPageReader_Read(t *testing.T) {
	t.Parallel()

	t.Run("fetches and extracts the page", func(t *testing.T) {
		t.Parallel()

		reader := &urlcast.PageReader{
			Fetcher: &mock.Fetcher{
				FetchFn: func(_ context.Context, url string) (string, error) {
					assert.Equal(t, "https://example.com/post", url)
					return "<html>page</html>", nil
				},
			},
			Extractor: &mock.Extractor{
				ExtractFn: func(html string) (*urlcast.Article, error) {
					assert.Equal(t, "<html>page</html>", html)
					return &urlcast.Article{Title: "Post", Content: "# Post"}, nil
				},
			},
		}

		article, err := reader.Read(context.Background(), "https://example.com/post")

		require.NoError(t, err)
		assert.Equal(t, "Post", article.Title)
	})

	t.Run("rejects invalid URLs before fetching", func(t *testing.T) {
		t.Parallel()

		reader := &urlcast.PageReader{
			Fetcher: &mock.Fetcher{
				FetchFn: func(context.Context, string) (string, error) {
					t.Fatal("fetch should not be called")
					return "", nil
				},
			},
		}

		for _, u := range []string{"", "ftp://example.com/file", "/relative/path", "https://"} {
			_, err := reader.Read(context.Background(), u)
			require.Error(t, err, "url %q", u)
			assert.Equal(t, urlcast.EINVALID, urlcast.ErrorCode(err), "url %q", u)
		}
	})

	t.Run("propagates fetch errors", func(t *testing.T) {
		t.Parallel()

		reader := &urlcast.PageReader{
			Fetcher: &mock.Fetcher{
				FetchFn: func(context.Context, string) (string, error) {
					return "", urlcast.Errorf(urlcast.EFETCH, "HTTP 503")
				},
			},
		}

		_, err := reader.Read(context.Background(), "https://example.com")

		require.Error(t, err)
		assert.Equal(t, urlcast.EFETCH, urlcast.ErrorCode(err))
	})
}
