package urlcast_test

import (
	"encoding/json"
	"testing"

	"github.com/fwojciec/urlcast"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestEvent_MarshalJSON(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name  string
		event urlcast.Event
		want  string
	}{
		{"init", urlcast.InitEvent(4), `{"type":"init","total":4}`},
		{"word in heading", urlcast.WordEvent("T", 0, 1), `{"type":"word","content":"T","index":0,"headerLevel":1}`},
		{"word outside heading has null level", urlcast.WordEvent("two", 3, 0), `{"type":"word","content":"two","index":3,"headerLevel":null}`},
		{"paragraph break", urlcast.LineBreakEvent(1, true, 0), `{"type":"lineBreak","index":1,"isParagraphBreak":true,"headerLevel":null}`},
		{"line break in heading", urlcast.LineBreakEvent(2, false, 2), `{"type":"lineBreak","index":2,"isParagraphBreak":false,"headerLevel":2}`},
		{"complete", urlcast.CompleteEvent(), `{"type":"complete"}`},
		{"error", urlcast.ErrorEvent("boom"), `{"type":"error","message":"boom"}`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			data, err := json.Marshal(tt.event)
			require.NoError(t, err)
			assert.JSONEq(t, tt.want, string(data))
		})
	}
}

func TestEvent_MarshalJSON_UnknownKind(t *testing.T) {
	t.Parallel()

	_, err := json.Marshal(urlcast.Event{Kind: "bogus"})
	require.Error(t, err)
}

func TestEvent_UnmarshalJSON(t *testing.T) {
	t.Parallel()

	t.Run("decodes word with header level", func(t *testing.T) {
		t.Parallel()

		var e urlcast.Event
		err := json.Unmarshal([]byte(`{"type":"word","content":"Hi","index":7,"headerLevel":2}`), &e)

		require.NoError(t, err)
		assert.Equal(t, urlcast.WordEvent("Hi", 7, 2), e)
	})

	t.Run("decodes null header level as zero", func(t *testing.T) {
		t.Parallel()

		var e urlcast.Event
		err := json.Unmarshal([]byte(`{"type":"lineBreak","index":1,"isParagraphBreak":true,"headerLevel":null}`), &e)

		require.NoError(t, err)
		assert.Equal(t, urlcast.LineBreakEvent(1, true, 0), e)
	})

	t.Run("rejects unknown type", func(t *testing.T) {
		t.Parallel()

		var e urlcast.Event
		err := json.Unmarshal([]byte(`{"type":"nope"}`), &e)

		require.Error(t, err)
	})
}

func TestEvent_Terminal(t *testing.T) {
	t.Parallel()

	assert.True(t, urlcast.CompleteEvent().Terminal())
	assert.True(t, urlcast.ErrorEvent("x").Terminal())
	assert.False(t, urlcast.InitEvent(1).Terminal())
	assert.False(t, urlcast.WordEvent("a", 0, 0).Terminal())
}

func TestTranscript(t *testing.T) {
	t.Parallel()

	t.Run("rebuilds headings paragraphs and lines", func(t *testing.T) {
		t.Parallel()

		events := []urlcast.Event{
			urlcast.InitEvent(6),
			urlcast.WordEvent("T", 0, 1),
			urlcast.LineBreakEvent(0, true, 0),
			urlcast.WordEvent("Sub", 1, 2),
			urlcast.WordEvent("head", 2, 2),
			urlcast.LineBreakEvent(2, false, 2),
			urlcast.WordEvent("one", 3, 0),
			urlcast.WordEvent("two", 4, 0),
			urlcast.LineBreakEvent(4, true, 0),
			urlcast.WordEvent("three", 5, 0),
			urlcast.CompleteEvent(),
		}

		var tr urlcast.Transcript
		for _, e := range events {
			tr.Apply(e)
		}

		assert.Equal(t, "# T\n\n## Sub head\none two\n\nthree", tr.String())
	})

	t.Run("returns appended delta", func(t *testing.T) {
		t.Parallel()

		var tr urlcast.Transcript

		assert.Equal(t, "", tr.Apply(urlcast.InitEvent(2)))
		assert.Equal(t, "## a", tr.Apply(urlcast.WordEvent("a", 0, 2)))
		assert.Equal(t, " b", tr.Apply(urlcast.WordEvent("b", 1, 2)))
		assert.Equal(t, "\n\n", tr.Apply(urlcast.LineBreakEvent(1, true, 0)))
		assert.Equal(t, "", tr.Apply(urlcast.CompleteEvent()))
	})
}
