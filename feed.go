package urlcast

// FeedKey is the object key of the published RSS feed.
const FeedKey = "feed.xml"

// Channel holds the metadata of the podcast feed.
type Channel struct {
	Title       string
	Link        string
	Description string
	Language    string
	Author      string
	Category    string
}

// DefaultChannel returns the channel metadata used when none is configured.
func DefaultChannel() Channel {
	return Channel{
		Title:       "URL to Audio Feed",
		Description: "Audio versions of web articles",
		Language:    "en-us",
		Author:      "URL to Audio",
		Category:    "Technology",
	}
}

// FeedRenderer renders episodes as a podcast feed document.
type FeedRenderer interface {
	// RenderFeed returns the feed XML. Episodes are rendered in the given order.
	RenderFeed(channel Channel, episodes []*Episode) ([]byte, error)
}
