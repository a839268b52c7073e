// Package etree renders the podcast RSS feed with beevik/etree.
package etree

import (
	"strconv"
	"time"

	"github.com/beevik/etree"
	"github.com/fwojciec/urlcast"
)

// ITunesNamespace is the namespace of the itunes: elements.
const ITunesNamespace = "http://www.itunes.com/dtds/podcast-1.0.dtd"

// pubDateLayout matches RFC 1123 with a literal GMT zone.
const pubDateLayout = "Mon, 02 Jan 2006 15:04:05 GMT"

// Ensure FeedRenderer implements urlcast.FeedRenderer at compile time.
var _ urlcast.FeedRenderer = (*FeedRenderer)(nil)

// FeedRenderer renders RSS 2.0 documents with iTunes tags.
type FeedRenderer struct{}

// NewFeedRenderer creates a new FeedRenderer.
func NewFeedRenderer() *FeedRenderer {
	return &FeedRenderer{}
}

// RenderFeed returns the RSS document for episodes, in the given order.
func (r *FeedRenderer) RenderFeed(channel urlcast.Channel, episodes []*urlcast.Episode) ([]byte, error) {
	doc := etree.NewDocument()
	doc.CreateProcInst("xml", `version="1.0" encoding="UTF-8"`)

	rss := doc.CreateElement("rss")
	rss.CreateAttr("version", "2.0")
	rss.CreateAttr("xmlns:itunes", ITunesNamespace)

	ch := rss.CreateElement("channel")
	ch.CreateElement("title").SetText(channel.Title)
	ch.CreateElement("link").SetText(channel.Link)
	ch.CreateElement("description").SetText(channel.Description)
	ch.CreateElement("language").SetText(channel.Language)
	ch.CreateElement("itunes:author").SetText(channel.Author)
	ch.CreateElement("itunes:summary").SetText(channel.Description)
	ch.CreateElement("itunes:category").CreateAttr("text", channel.Category)

	for _, e := range episodes {
		item := ch.CreateElement("item")
		item.CreateElement("title").SetText(e.Title)
		item.CreateElement("link").SetText(e.SourceURL)

		guid := item.CreateElement("guid")
		guid.CreateAttr("isPermaLink", "true")
		guid.SetText(e.AudioURL)

		item.CreateElement("pubDate").SetText(e.PublishedAt.In(time.UTC).Format(pubDateLayout))
		item.CreateElement("description").SetText("Audio version of: " + e.Title)

		enclosure := item.CreateElement("enclosure")
		enclosure.CreateAttr("url", e.AudioURL)
		enclosure.CreateAttr("type", "audio/mpeg")
		enclosure.CreateAttr("length", strconv.FormatInt(e.AudioSize, 10))
	}

	doc.Indent(2)
	return doc.WriteToBytes()
}
