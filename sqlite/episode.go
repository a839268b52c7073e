package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"strings"
	"time"

	"github.com/fwojciec/urlcast"
	"github.com/google/uuid"
)

// Compile-time interface verification.
var _ urlcast.EpisodeService = (*EpisodeService)(nil)

// EpisodeService implements urlcast.EpisodeService using SQLite.
type EpisodeService struct {
	db *DB
}

// NewEpisodeService creates a new EpisodeService.
func NewEpisodeService(db *DB) *EpisodeService {
	return &EpisodeService{db: db}
}

const episodeColumns = "id, title, source_url, audio_key, audio_url, audio_size, content_hash, published_at"

// CreateEpisode creates a new episode. A zero PublishedAt is set to now.
func (s *EpisodeService) CreateEpisode(ctx context.Context, episode *urlcast.Episode) error {
	if err := episode.Validate(); err != nil {
		return err
	}

	episode.ID = uuid.New().String()
	if episode.PublishedAt.IsZero() {
		episode.PublishedAt = time.Now()
	}
	episode.PublishedAt = episode.PublishedAt.UTC().Truncate(time.Second)

	_, err := s.db.ExecContext(ctx, `
		INSERT INTO episodes (`+episodeColumns+`)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?)
	`, episode.ID, episode.Title, episode.SourceURL, episode.AudioKey, episode.AudioURL,
		episode.AudioSize, episode.ContentHash, episode.PublishedAt.Format(time.RFC3339))

	return err
}

// FindEpisodeByID retrieves an episode by ID.
func (s *EpisodeService) FindEpisodeByID(ctx context.Context, id string) (*urlcast.Episode, error) {
	row := s.db.QueryRowContext(ctx, "SELECT "+episodeColumns+" FROM episodes WHERE id = ?", id)

	episode, err := scanEpisode(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, urlcast.Errorf(urlcast.ENOTFOUND, "episode not found")
	}
	if err != nil {
		return nil, err
	}
	return episode, nil
}

// FindEpisodes retrieves episodes matching the filter, newest first.
func (s *EpisodeService) FindEpisodes(ctx context.Context, filter urlcast.EpisodeFilter) ([]*urlcast.Episode, error) {
	var query strings.Builder
	var args []any

	query.WriteString("SELECT " + episodeColumns + " FROM episodes WHERE 1=1")

	if filter.ID != nil {
		query.WriteString(" AND id = ?")
		args = append(args, *filter.ID)
	}
	if filter.SourceURL != nil {
		query.WriteString(" AND source_url = ?")
		args = append(args, *filter.SourceURL)
	}
	if filter.ContentHash != nil {
		query.WriteString(" AND content_hash = ?")
		args = append(args, *filter.ContentHash)
	}

	query.WriteString(" ORDER BY published_at DESC, rowid DESC")
	appendPagination(&query, &args, filter.Limit, filter.Offset)

	rows, err := s.db.QueryContext(ctx, query.String(), args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var episodes []*urlcast.Episode
	for rows.Next() {
		episode, err := scanEpisode(rows)
		if err != nil {
			return nil, err
		}
		episodes = append(episodes, episode)
	}

	return episodes, rows.Err()
}

// DeleteEpisode permanently removes an episode.
func (s *EpisodeService) DeleteEpisode(ctx context.Context, id string) error {
	result, err := s.db.ExecContext(ctx, "DELETE FROM episodes WHERE id = ?", id)
	if err != nil {
		return err
	}

	n, err := result.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return urlcast.Errorf(urlcast.ENOTFOUND, "episode not found")
	}
	return nil
}

type scanner interface {
	Scan(dest ...any) error
}

func scanEpisode(row scanner) (*urlcast.Episode, error) {
	var episode urlcast.Episode
	var publishedAt string

	if err := row.Scan(&episode.ID, &episode.Title, &episode.SourceURL, &episode.AudioKey,
		&episode.AudioURL, &episode.AudioSize, &episode.ContentHash, &publishedAt); err != nil {
		return nil, err
	}

	var err error
	episode.PublishedAt, err = parseRFC3339(publishedAt, "published_at")
	if err != nil {
		return nil, err
	}
	return &episode, nil
}
