package stream_test

import (
	"context"
	"strings"
	"testing"
	"time"

	"github.com/fwojciec/urlcast"
	"github.com/fwojciec/urlcast/stream"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func collect(ctx context.Context, s *stream.Streamer, text string) []urlcast.Event {
	var events []urlcast.Event
	for e := range s.Stream(ctx, text) {
		events = append(events, e)
	}
	return events
}

func TestStreamer_Stream(t *testing.T) {
	t.Parallel()

	s := stream.New(stream.WithDelay(0))

	t.Run("streams headings and paragraphs", func(t *testing.T) {
		t.Parallel()

		events := collect(context.Background(), s, "# T\n\n# Hi\n\none two")

		assert.Equal(t, []urlcast.Event{
			urlcast.InitEvent(4),
			urlcast.WordEvent("T", 0, 1),
			urlcast.LineBreakEvent(0, true, 0),
			urlcast.WordEvent("Hi", 1, 1),
			urlcast.LineBreakEvent(1, true, 0),
			urlcast.WordEvent("one", 2, 0),
			urlcast.WordEvent("two", 3, 0),
			urlcast.CompleteEvent(),
		}, events)
	})

	t.Run("emits line breaks inside a paragraph with the line heading level", func(t *testing.T) {
		t.Parallel()

		events := collect(context.Background(), s, "## Head\nnext line")

		assert.Equal(t, []urlcast.Event{
			urlcast.InitEvent(3),
			urlcast.WordEvent("Head", 0, 2),
			urlcast.LineBreakEvent(0, false, 2),
			urlcast.WordEvent("next", 1, 0),
			urlcast.WordEvent("line", 2, 0),
			urlcast.CompleteEvent(),
		}, events)
	})

	t.Run("empty text yields init and complete", func(t *testing.T) {
		t.Parallel()

		events := collect(context.Background(), s, "")

		assert.Equal(t, []urlcast.Event{urlcast.InitEvent(0), urlcast.CompleteEvent()}, events)
	})

	t.Run("empty paragraphs do not repeat a break", func(t *testing.T) {
		t.Parallel()

		events := collect(context.Background(), s, "a\n\n\n\nb")

		assert.Equal(t, []urlcast.Event{
			urlcast.InitEvent(2),
			urlcast.WordEvent("a", 0, 0),
			urlcast.LineBreakEvent(0, true, 0),
			urlcast.WordEvent("b", 1, 0),
			urlcast.CompleteEvent(),
		}, events)
	})

	t.Run("paragraph boundary upgrades a pending line break", func(t *testing.T) {
		t.Parallel()

		events := collect(context.Background(), s, "a\n \n\nb")

		assert.Equal(t, []urlcast.Event{
			urlcast.InitEvent(2),
			urlcast.WordEvent("a", 0, 0),
			urlcast.LineBreakEvent(0, true, 0),
			urlcast.WordEvent("b", 1, 0),
			urlcast.CompleteEvent(),
		}, events)
	})

	t.Run("leading and trailing empty paragraphs emit no break", func(t *testing.T) {
		t.Parallel()

		events := collect(context.Background(), s, "\n\nword\n\n")

		assert.Equal(t, []urlcast.Event{
			urlcast.InitEvent(1),
			urlcast.WordEvent("word", 0, 0),
			urlcast.CompleteEvent(),
		}, events)
	})

	t.Run("heading marker without words contributes nothing", func(t *testing.T) {
		t.Parallel()

		events := collect(context.Background(), s, "x\n\n# \n\ny")

		assert.Equal(t, []urlcast.Event{
			urlcast.InitEvent(2),
			urlcast.WordEvent("x", 0, 0),
			urlcast.LineBreakEvent(0, true, 0),
			urlcast.WordEvent("y", 1, 0),
			urlcast.CompleteEvent(),
		}, events)
	})

	t.Run("hash without space is a word", func(t *testing.T) {
		t.Parallel()

		events := collect(context.Background(), s, "#golang rocks")

		assert.Equal(t, []urlcast.Event{
			urlcast.InitEvent(2),
			urlcast.WordEvent("#golang", 0, 0),
			urlcast.WordEvent("rocks", 1, 0),
			urlcast.CompleteEvent(),
		}, events)
	})

	t.Run("invalid UTF-8 yields a single error", func(t *testing.T) {
		t.Parallel()

		events := collect(context.Background(), s, "bad \xff byte")

		require.Len(t, events, 1)
		assert.Equal(t, urlcast.EventError, events[0].Kind)
		assert.NotEmpty(t, events[0].Message)
	})

	t.Run("word indices are gapless and match total", func(t *testing.T) {
		t.Parallel()

		text := "# Title\n\n*An excerpt here*\n\n## Part one\n\nFirst paragraph has five words.\nA second line.\n\n> quoted text\n\nEnd."
		events := collect(context.Background(), s, text)

		require.NotEmpty(t, events)
		require.Equal(t, urlcast.EventInit, events[0].Kind)
		assert.Equal(t, urlcast.EventComplete, events[len(events)-1].Kind)

		var indices []int
		for _, e := range events {
			if e.Kind == urlcast.EventWord {
				indices = append(indices, e.Index)
			}
		}
		assert.Len(t, indices, events[0].Total)
		for i, idx := range indices {
			assert.Equal(t, i, idx)
		}
	})

	t.Run("streaming twice is identical", func(t *testing.T) {
		t.Parallel()

		text := "# T\n\nsome words\nmore words\n\nlast"

		assert.Equal(t, collect(context.Background(), s, text), collect(context.Background(), s, text))
	})

	t.Run("transcript rebuilds normalized text", func(t *testing.T) {
		t.Parallel()

		for _, text := range []string{
			"# T\n\n# Hi\n\none two",
			"## Head\nnext line\n\n> quote here\n\n*desc*",
		} {
			var tr urlcast.Transcript
			for e := range s.Stream(context.Background(), text) {
				tr.Apply(e)
			}
			assert.Equal(t, text, tr.String())
		}
	})
}

func TestStreamer_Stream_Stopping(t *testing.T) {
	t.Parallel()

	t.Run("consumer break stops emission", func(t *testing.T) {
		t.Parallel()

		s := stream.New(stream.WithDelay(0))
		var n int
		for range s.Stream(context.Background(), "a b c d") {
			n++
			if n == 2 {
				break
			}
		}

		assert.Equal(t, 2, n)
	})

	t.Run("cancellation ends silently", func(t *testing.T) {
		t.Parallel()

		s := stream.New(stream.WithDelay(0))
		ctx, cancel := context.WithCancel(context.Background())
		defer cancel()

		var events []urlcast.Event
		for e := range s.Stream(ctx, "a b c") {
			events = append(events, e)
			if e.Kind == urlcast.EventWord {
				cancel()
			}
		}

		assert.Equal(t, []urlcast.Event{urlcast.InitEvent(3), urlcast.WordEvent("a", 0, 0)}, events)
	})

	t.Run("canceled before start emits nothing", func(t *testing.T) {
		t.Parallel()

		ctx, cancel := context.WithCancel(context.Background())
		cancel()

		events := collect(ctx, stream.New(), "a b")

		assert.Empty(t, events)
	})

	t.Run("expired deadline yields an error", func(t *testing.T) {
		t.Parallel()

		ctx, cancel := context.WithDeadline(context.Background(), time.Now().Add(-time.Second))
		defer cancel()

		events := collect(ctx, stream.New(), "a b")

		require.Len(t, events, 1)
		assert.Equal(t, urlcast.EventError, events[0].Kind)
	})

	t.Run("paces words with the configured delay", func(t *testing.T) {
		t.Parallel()

		s := stream.New(stream.WithDelay(20 * time.Millisecond))
		start := time.Now()

		events := collect(context.Background(), s, strings.Repeat("w ", 4))

		assert.Len(t, events, 6)
		assert.GreaterOrEqual(t, time.Since(start), 50*time.Millisecond)
	})
}
