// Package stream implements urlcast.Streamer.
//
// A Streamer re-segments normalized article text into paragraphs, lines and
// words, then replays it as a paced sequence of events. The total word count
// is computed in a first pass so that consumers can render progress from the
// init event onwards.
package stream

import (
	"context"
	"errors"
	"iter"
	"regexp"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/fwojciec/urlcast"
	"golang.org/x/time/rate"
)

// Ensure Streamer implements urlcast.Streamer at compile time.
var _ urlcast.Streamer = (*Streamer)(nil)

// DefaultDelay is the pause between two word events.
const DefaultDelay = 10 * time.Millisecond

const paragraphSeparator = "\n\n"

// headingPattern matches a line that starts with a heading marker.
var headingPattern = regexp.MustCompile(`^(#+) `)

// Option configures a Streamer.
type Option func(*Streamer)

// WithDelay sets the pause between word events. Zero disables pacing.
func WithDelay(d time.Duration) Option {
	return func(s *Streamer) {
		s.delay = d
	}
}

// Streamer replays normalized text as word events.
type Streamer struct {
	delay time.Duration
}

// New creates a Streamer with the default pacing delay.
func New(opts ...Option) *Streamer {
	s := &Streamer{delay: DefaultDelay}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// line is one line of a paragraph with its heading marker stripped.
type line struct {
	level int
	words []string
}

type paragraph []line

// segment splits text into paragraphs and lines and counts the words.
func segment(text string) ([]paragraph, int, error) {
	if !utf8.ValidString(text) {
		return nil, 0, urlcast.Errorf(urlcast.EINVALID, "text is not valid UTF-8")
	}
	text = strings.ReplaceAll(text, "\r\n", "\n")

	var (
		paragraphs []paragraph
		total      int
	)
	for _, raw := range strings.Split(text, paragraphSeparator) {
		var p paragraph
		for _, l := range strings.Split(raw, "\n") {
			var level int
			if m := headingPattern.FindStringSubmatch(l); m != nil {
				level = len(m[1])
				l = l[len(m[0]):]
			}
			words := strings.Fields(l)
			total += len(words)
			p = append(p, line{level: level, words: words})
		}
		paragraphs = append(paragraphs, p)
	}
	return paragraphs, total, nil
}

// Stream returns the event sequence for text.
//
// Breaks are held back until the next word is emitted, so the sequence never
// ends with a break and never carries two breaks for the same word. A
// paragraph boundary upgrades a pending line break. Canceling ctx ends the
// sequence without a terminal event; an expired deadline ends it with an
// error event.
func (s *Streamer) Stream(ctx context.Context, text string) iter.Seq[urlcast.Event] {
	return func(yield func(urlcast.Event) bool) {
		if err := ctx.Err(); err != nil {
			if !errors.Is(err, context.Canceled) {
				yield(urlcast.ErrorEvent(err.Error()))
			}
			return
		}

		paragraphs, total, err := segment(text)
		if err != nil {
			yield(urlcast.ErrorEvent(urlcast.ErrorMessage(err)))
			return
		}

		if !yield(urlcast.InitEvent(total)) {
			return
		}

		limit := rate.Inf
		if s.delay > 0 {
			limit = rate.Every(s.delay)
		}
		limiter := rate.NewLimiter(limit, 1)

		e := emitter{last: -1}
		for pi, p := range paragraphs {
			if pi > 0 {
				e.markBreak(true, 0)
			}
			for li, l := range p {
				if li > 0 {
					e.markBreak(false, p[li-1].level)
				}
				for _, w := range l.words {
					if err := limiter.Wait(ctx); err != nil {
						if !errors.Is(ctx.Err(), context.Canceled) {
							yield(urlcast.ErrorEvent(err.Error()))
						}
						return
					}
					if !e.word(w, l.level, yield) {
						return
					}
				}
			}
		}

		yield(urlcast.CompleteEvent())
	}
}

// emitter tracks the last emitted word index and the break waiting to be
// flushed before the next word.
type emitter struct {
	last    int
	pending *urlcast.Event
}

func (e *emitter) markBreak(paragraph bool, level int) {
	if e.last < 0 {
		return
	}
	if e.pending == nil {
		ev := urlcast.LineBreakEvent(e.last, paragraph, level)
		if paragraph {
			ev.HeaderLevel = 0
		}
		e.pending = &ev
		return
	}
	if paragraph {
		e.pending.ParagraphBreak = true
		e.pending.HeaderLevel = 0
	}
}

func (e *emitter) word(content string, level int, yield func(urlcast.Event) bool) bool {
	if e.pending != nil {
		ev := *e.pending
		e.pending = nil
		if !yield(ev) {
			return false
		}
	}
	e.last++
	return yield(urlcast.WordEvent(content, e.last, level))
}
