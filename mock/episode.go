package mock

import (
	"context"

	"github.com/fwojciec/urlcast"
)

var _ urlcast.EpisodeService = (*EpisodeService)(nil)

// EpisodeService is a mock implementation of urlcast.EpisodeService.
type EpisodeService struct {
	CreateEpisodeFn   func(ctx context.Context, episode *urlcast.Episode) error
	FindEpisodeByIDFn func(ctx context.Context, id string) (*urlcast.Episode, error)
	FindEpisodesFn    func(ctx context.Context, filter urlcast.EpisodeFilter) ([]*urlcast.Episode, error)
	DeleteEpisodeFn   func(ctx context.Context, id string) error
}

func (s *EpisodeService) CreateEpisode(ctx context.Context, episode *urlcast.Episode) error {
	return s.CreateEpisodeFn(ctx, episode)
}

func (s *EpisodeService) FindEpisodeByID(ctx context.Context, id string) (*urlcast.Episode, error) {
	return s.FindEpisodeByIDFn(ctx, id)
}

func (s *EpisodeService) FindEpisodes(ctx context.Context, filter urlcast.EpisodeFilter) ([]*urlcast.Episode, error) {
	return s.FindEpisodesFn(ctx, filter)
}

func (s *EpisodeService) DeleteEpisode(ctx context.Context, id string) error {
	return s.DeleteEpisodeFn(ctx, id)
}
