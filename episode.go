package urlcast

import (
	"context"
	"time"
)

// Episode represents one published audio rendition of a web page.
type Episode struct {
	ID          string    `json:"id"`
	Title       string    `json:"title"`
	SourceURL   string    `json:"sourceUrl"`
	AudioKey    string    `json:"audioKey"`
	AudioURL    string    `json:"audioUrl"`
	AudioSize   int64     `json:"audioSize"`
	ContentHash string    `json:"contentHash"`
	PublishedAt time.Time `json:"publishedAt"`
}

// Validate returns an error if the episode contains invalid fields.
func (e *Episode) Validate() error {
	if e.Title == "" {
		return Errorf(EINVALID, "episode title required")
	}
	if e.SourceURL == "" {
		return Errorf(EINVALID, "episode source URL required")
	}
	if e.AudioURL == "" {
		return Errorf(EINVALID, "episode audio URL required")
	}
	return nil
}

// EpisodeService represents a service for managing episodes.
type EpisodeService interface {
	// CreateEpisode creates a new episode.
	CreateEpisode(ctx context.Context, episode *Episode) error

	// FindEpisodeByID retrieves an episode by ID.
	// Returns ENOTFOUND if episode does not exist.
	FindEpisodeByID(ctx context.Context, id string) (*Episode, error)

	// FindEpisodes retrieves episodes matching the filter, newest first.
	FindEpisodes(ctx context.Context, filter EpisodeFilter) ([]*Episode, error)

	// DeleteEpisode permanently removes an episode.
	// Returns ENOTFOUND if episode does not exist.
	DeleteEpisode(ctx context.Context, id string) error
}

// EpisodeFilter represents a filter for FindEpisodes.
type EpisodeFilter struct {
	ID          *string `json:"id"`
	SourceURL   *string `json:"sourceUrl"`
	ContentHash *string `json:"contentHash"`

	Offset int `json:"offset"`
	Limit  int `json:"limit"`
}
