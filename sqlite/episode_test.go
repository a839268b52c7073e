package sqlite_test

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/fwojciec/urlcast"
	"github.com/fwojciec/urlcast/sqlite"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newEpisode(n int, publishedAt time.Time) *urlcast.Episode {
	return &urlcast.Episode{
		Title:       fmt.Sprintf("Episode %d", n),
		SourceURL:   fmt.Sprintf("https://example.com/post-%d", n),
		AudioKey:    fmt.Sprintf("audio/post-%d.mp3", n),
		AudioURL:    fmt.Sprintf("https://cdn.example.com/audio/post-%d.mp3", n),
		AudioSize:   int64(1000 + n),
		ContentHash: fmt.Sprintf("hash-%d", n),
		PublishedAt: publishedAt,
	}
}

func TestEpisodeService_CreateEpisode(t *testing.T) {
	t.Parallel()

	t.Run("creates episode with generated ID", func(t *testing.T) {
		t.Parallel()

		svc := sqlite.NewEpisodeService(setupTestDB(t))
		ctx := context.Background()

		episode := newEpisode(1, time.Time{})
		require.NoError(t, svc.CreateEpisode(ctx, episode))

		assert.NotEmpty(t, episode.ID)
		assert.False(t, episode.PublishedAt.IsZero(), "PublishedAt should be set")

		found, err := svc.FindEpisodeByID(ctx, episode.ID)
		require.NoError(t, err)
		assert.Equal(t, episode, found)
	})

	t.Run("returns error for invalid episode", func(t *testing.T) {
		t.Parallel()

		svc := sqlite.NewEpisodeService(setupTestDB(t))

		err := svc.CreateEpisode(context.Background(), &urlcast.Episode{})

		require.Error(t, err)
		assert.Equal(t, urlcast.EINVALID, urlcast.ErrorCode(err))
	})
}

func TestEpisodeService_FindEpisodeByID(t *testing.T) {
	t.Parallel()

	svc := sqlite.NewEpisodeService(setupTestDB(t))

	_, err := svc.FindEpisodeByID(context.Background(), "missing")

	require.Error(t, err)
	assert.Equal(t, urlcast.ENOTFOUND, urlcast.ErrorCode(err))
}

func TestEpisodeService_FindEpisodes(t *testing.T) {
	t.Parallel()

	svc := sqlite.NewEpisodeService(setupTestDB(t))
	ctx := context.Background()
	base := time.Date(2024, 5, 1, 12, 0, 0, 0, time.UTC)
	for i := 1; i <= 3; i++ {
		require.NoError(t, svc.CreateEpisode(ctx, newEpisode(i, base.Add(time.Duration(i)*time.Hour))))
	}

	t.Run("returns newest first", func(t *testing.T) {
		t.Parallel()

		episodes, err := svc.FindEpisodes(ctx, urlcast.EpisodeFilter{})

		require.NoError(t, err)
		require.Len(t, episodes, 3)
		assert.Equal(t, "Episode 3", episodes[0].Title)
		assert.Equal(t, "Episode 1", episodes[2].Title)
	})

	t.Run("filters by source URL and content hash", func(t *testing.T) {
		t.Parallel()

		source, hash := "https://example.com/post-2", "hash-2"
		episodes, err := svc.FindEpisodes(ctx, urlcast.EpisodeFilter{SourceURL: &source, ContentHash: &hash})

		require.NoError(t, err)
		require.Len(t, episodes, 1)
		assert.Equal(t, "Episode 2", episodes[0].Title)

		other := "other"
		episodes, err = svc.FindEpisodes(ctx, urlcast.EpisodeFilter{SourceURL: &source, ContentHash: &other})
		require.NoError(t, err)
		assert.Empty(t, episodes)
	})

	t.Run("applies limit and offset", func(t *testing.T) {
		t.Parallel()

		episodes, err := svc.FindEpisodes(ctx, urlcast.EpisodeFilter{Limit: 1, Offset: 1})

		require.NoError(t, err)
		require.Len(t, episodes, 1)
		assert.Equal(t, "Episode 2", episodes[0].Title)
	})
}

func TestEpisodeService_DeleteEpisode(t *testing.T) {
	t.Parallel()

	svc := sqlite.NewEpisodeService(setupTestDB(t))
	ctx := context.Background()
	episode := newEpisode(1, time.Now())
	require.NoError(t, svc.CreateEpisode(ctx, episode))

	require.NoError(t, svc.DeleteEpisode(ctx, episode.ID))

	_, err := svc.FindEpisodeByID(ctx, episode.ID)
	assert.Equal(t, urlcast.ENOTFOUND, urlcast.ErrorCode(err))

	err = svc.DeleteEpisode(ctx, episode.ID)
	assert.Equal(t, urlcast.ENOTFOUND, urlcast.ErrorCode(err))
}
