package urlcast

import "context"

// PreviewWords is the number of leading words synthesized for a preview.
const PreviewWords = 100

// Preview is a short spoken sample of an article.
type Preview struct {
	Article *Article

	// AudioFile is the name of the audio file inside the work directory.
	AudioFile string
}

// Publication is the result of publishing an article as a feed episode.
type Publication struct {
	Article *Article
	Episode *Episode
	FeedURL string

	// Reused is set when an episode with identical content already existed.
	Reused bool
}

// Publisher turns web pages into audio.
type Publisher interface {
	// Preview synthesizes the first PreviewWords words of the page.
	Preview(ctx context.Context, url string) (*Preview, error)

	// Publish synthesizes the whole page, uploads the audio and updates
	// the feed.
	Publish(ctx context.Context, url string) (*Publication, error)
}
