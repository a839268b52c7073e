// Package publish turns web articles into podcast episodes.
//
// A Publisher reads an article, optionally adapts it for listening, splits it
// into synthesis-sized chunks, synthesizes them concurrently, stitches the
// audio in order, uploads it and republishes the feed.
package publish

import (
	"bytes"
	"context"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"sync"
	"time"

	"github.com/cespare/xxhash/v2"
	"github.com/fwojciec/urlcast"
	"golang.org/x/sync/errgroup"
)

// Defaults applied when the corresponding Publisher field is zero.
const (
	DefaultConcurrency = 4
	DefaultFeedSize    = 50
)

// UntitledArticle is the episode title of pages without a title.
const UntitledArticle = "Untitled Article"

// Ensure Publisher implements urlcast.Publisher at compile time.
var _ urlcast.Publisher = (*Publisher)(nil)

// WorkDir is where intermediate audio files are written. It is owned by the
// caller, which removes it when done.
type WorkDir interface {
	CreateTemp(pattern string) (*os.File, error)
}

// ProgressFunc is called after each synthesized chunk.
type ProgressFunc func(completed, total int)

// Publisher converts pages into episodes.
type Publisher struct {
	Reader      urlcast.ArticleReader
	Adapter     urlcast.Adapter // optional
	Synthesizer urlcast.Synthesizer
	Episodes    urlcast.EpisodeService
	Store       urlcast.ObjectStore
	Feed        urlcast.FeedRenderer
	WorkDir     WorkDir
	Channel     urlcast.Channel
	Concurrency int
	FeedSize    int
	Progress    ProgressFunc
	Logger      *slog.Logger
	Now         func() time.Time
}

// HashContent returns the hex encoded xxHash of content.
func HashContent(content string) string {
	return fmt.Sprintf("%016x", xxhash.Sum64String(content))
}

// AudioKey returns the object key of an episode's audio.
func AudioKey(title string, publishedAt time.Time) string {
	return fmt.Sprintf("audio/%s-%s.mp3", publishedAt.UTC().Format("20060102-150405"), urlcast.Slug(title))
}

func (p *Publisher) logger() *slog.Logger {
	if p.Logger != nil {
		return p.Logger
	}
	return slog.Default()
}

func (p *Publisher) now() time.Time {
	if p.Now != nil {
		return p.Now()
	}
	return time.Now()
}

// Preview synthesizes the first words of the page into the work directory.
func (p *Publisher) Preview(ctx context.Context, url string) (*urlcast.Preview, error) {
	article, err := p.Reader.Read(ctx, url)
	if err != nil {
		return nil, err
	}

	text := urlcast.FirstWords(article.SpeechText(), urlcast.PreviewWords)
	chunks := urlcast.SplitText(text, urlcast.MaxSpeechChars)
	if len(chunks) == 0 {
		return nil, urlcast.Errorf(urlcast.ENOCONTENT, "no text to synthesize")
	}

	audio, err := p.Synthesizer.Synthesize(ctx, chunks[0])
	if err != nil {
		return nil, err
	}

	f, err := p.WorkDir.CreateTemp("preview-*.mp3")
	if err != nil {
		return nil, err
	}
	if _, err := f.Write(audio); err != nil {
		f.Close()
		return nil, err
	}
	if err := f.Close(); err != nil {
		return nil, err
	}

	return &urlcast.Preview{Article: article, AudioFile: filepath.Base(f.Name())}, nil
}

// Publish converts the whole page into an episode. A page whose content is
// unchanged since its last publication reuses the existing episode.
func (p *Publisher) Publish(ctx context.Context, url string) (*urlcast.Publication, error) {
	article, err := p.Reader.Read(ctx, url)
	if err != nil {
		return nil, err
	}

	hash := HashContent(article.Content)
	existing, err := p.Episodes.FindEpisodes(ctx, urlcast.EpisodeFilter{
		SourceURL:   &url,
		ContentHash: &hash,
		Limit:       1,
	})
	if err != nil {
		return nil, fmt.Errorf("find episodes: %w", err)
	}
	if len(existing) > 0 {
		feedURL, err := p.PublishFeed(ctx)
		if err != nil {
			return nil, err
		}
		p.logger().Info("reusing episode", "url", url, "episode", existing[0].ID)
		return &urlcast.Publication{Article: article, Episode: existing[0], FeedURL: feedURL, Reused: true}, nil
	}

	text := p.adapt(ctx, article.SpeechText())
	chunks := urlcast.SplitText(text, urlcast.MaxSpeechChars)
	if len(chunks) == 0 {
		return nil, urlcast.Errorf(urlcast.ENOCONTENT, "no text to synthesize")
	}

	path, size, err := p.synthesize(ctx, chunks)
	if err != nil {
		return nil, err
	}
	defer os.Remove(path)

	title := article.Title
	if title == "" {
		title = UntitledArticle
	}
	publishedAt := p.now()
	key := AudioKey(title, publishedAt)

	audioURL, err := p.upload(ctx, key, path)
	if err != nil {
		return nil, err
	}

	episode := &urlcast.Episode{
		Title:       title,
		SourceURL:   url,
		AudioKey:    key,
		AudioURL:    audioURL,
		AudioSize:   size,
		ContentHash: hash,
		PublishedAt: publishedAt,
	}
	if err := p.Episodes.CreateEpisode(ctx, episode); err != nil {
		return nil, fmt.Errorf("create episode: %w", err)
	}

	feedURL, err := p.PublishFeed(ctx)
	if err != nil {
		return nil, err
	}

	p.logger().Info("published episode",
		"url", url,
		"episode", episode.ID,
		"chunks", len(chunks),
		"bytes", size,
	)

	return &urlcast.Publication{Article: article, Episode: episode, FeedURL: feedURL}, nil
}

// PublishFeed renders the newest episodes and uploads the feed.
func (p *Publisher) PublishFeed(ctx context.Context) (string, error) {
	limit := p.FeedSize
	if limit <= 0 {
		limit = DefaultFeedSize
	}

	episodes, err := p.Episodes.FindEpisodes(ctx, urlcast.EpisodeFilter{Limit: limit})
	if err != nil {
		return "", fmt.Errorf("find episodes: %w", err)
	}

	data, err := p.Feed.RenderFeed(p.Channel, episodes)
	if err != nil {
		return "", fmt.Errorf("render feed: %w", err)
	}

	url, err := p.Store.Put(ctx, urlcast.FeedKey, "application/xml", bytes.NewReader(data))
	if err != nil {
		return "", fmt.Errorf("upload feed: %w", err)
	}
	return url, nil
}

// adapt returns the adapted text, or text itself when no adapter is set or
// adaptation fails.
func (p *Publisher) adapt(ctx context.Context, text string) string {
	if p.Adapter == nil {
		return text
	}
	adaptation, err := p.Adapter.Adapt(ctx, text)
	if err != nil {
		p.logger().Warn("adaptation failed, using original text", "err", err)
		return text
	}
	return adaptation.Revised
}

// synthesize converts chunks concurrently and writes the audio, in chunk
// order, to a new file in the work directory.
func (p *Publisher) synthesize(ctx context.Context, chunks []string) (string, int64, error) {
	concurrency := p.Concurrency
	if concurrency <= 0 {
		concurrency = DefaultConcurrency
	}

	parts := make([][]byte, len(chunks))
	var mu sync.Mutex
	var completed int

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(concurrency)
	for i, chunk := range chunks {
		g.Go(func() error {
			audio, err := p.Synthesizer.Synthesize(gctx, chunk)
			if err != nil {
				return fmt.Errorf("synthesize chunk %d/%d: %w", i+1, len(chunks), err)
			}
			parts[i] = audio

			mu.Lock()
			completed++
			if p.Progress != nil {
				p.Progress(completed, len(chunks))
			}
			mu.Unlock()
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return "", 0, err
	}

	return p.stitch(parts)
}

// stitch concatenates MP3 parts into one file. MP3 frames are self-contained,
// so the concatenation is a valid stream.
func (p *Publisher) stitch(parts [][]byte) (string, int64, error) {
	f, err := p.WorkDir.CreateTemp("episode-*.mp3")
	if err != nil {
		return "", 0, err
	}

	var size int64
	for _, part := range parts {
		n, err := f.Write(part)
		size += int64(n)
		if err != nil {
			f.Close()
			os.Remove(f.Name())
			return "", 0, err
		}
	}
	if err := f.Close(); err != nil {
		os.Remove(f.Name())
		return "", 0, err
	}
	return f.Name(), size, nil
}

func (p *Publisher) upload(ctx context.Context, key, path string) (string, error) {
	f, err := os.Open(path)
	if err != nil {
		return "", err
	}
	defer f.Close()

	url, err := p.Store.Put(ctx, key, "audio/mpeg", f)
	if err != nil {
		return "", fmt.Errorf("upload audio: %w", err)
	}
	return url, nil
}
