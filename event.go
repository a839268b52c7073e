package urlcast

import (
	"context"
	"encoding/json"
	"fmt"
	"iter"
	"strings"
)

// EventKind identifies the type of a stream event.
type EventKind string

// Stream event kinds.
const (
	EventInit      EventKind = "init"
	EventWord      EventKind = "word"
	EventLineBreak EventKind = "lineBreak"
	EventComplete  EventKind = "complete"
	EventError     EventKind = "error"
)

// Event is one unit of a word stream. Only the fields relevant to Kind are set.
type Event struct {
	Kind EventKind

	// Total is the number of words about to be streamed (init).
	Total int

	// Content is the word text (word).
	Content string

	// Index is the zero-based word index (word), or the index of the last
	// word preceding the break (lineBreak).
	Index int

	// HeaderLevel is the heading level the word belongs to; zero means the
	// word is not part of a heading (word, lineBreak).
	HeaderLevel int

	// ParagraphBreak distinguishes a blank-line block boundary from an
	// intra-block line boundary (lineBreak).
	ParagraphBreak bool

	// Message describes the failure (error).
	Message string
}

// InitEvent returns the event announcing the total word count.
func InitEvent(total int) Event {
	return Event{Kind: EventInit, Total: total}
}

// WordEvent returns the event for a single word.
func WordEvent(content string, index, headerLevel int) Event {
	return Event{Kind: EventWord, Content: content, Index: index, HeaderLevel: headerLevel}
}

// LineBreakEvent returns a break after the word at index.
func LineBreakEvent(index int, paragraph bool, headerLevel int) Event {
	return Event{Kind: EventLineBreak, Index: index, ParagraphBreak: paragraph, HeaderLevel: headerLevel}
}

// CompleteEvent returns the terminal success event.
func CompleteEvent() Event {
	return Event{Kind: EventComplete}
}

// ErrorEvent returns the terminal failure event.
func ErrorEvent(message string) Event {
	return Event{Kind: EventError, Message: message}
}

// Terminal reports whether e ends a stream.
func (e Event) Terminal() bool {
	return e.Kind == EventComplete || e.Kind == EventError
}

func headerLevelPtr(level int) *int {
	if level <= 0 {
		return nil
	}
	return &level
}

// MarshalJSON encodes the event with the fields of its kind only.
// A zero HeaderLevel is encoded as null.
func (e Event) MarshalJSON() ([]byte, error) {
	switch e.Kind {
	case EventInit:
		return json.Marshal(struct {
			Type  EventKind `json:"type"`
			Total int       `json:"total"`
		}{e.Kind, e.Total})
	case EventWord:
		return json.Marshal(struct {
			Type        EventKind `json:"type"`
			Content     string    `json:"content"`
			Index       int       `json:"index"`
			HeaderLevel *int      `json:"headerLevel"`
		}{e.Kind, e.Content, e.Index, headerLevelPtr(e.HeaderLevel)})
	case EventLineBreak:
		return json.Marshal(struct {
			Type             EventKind `json:"type"`
			Index            int       `json:"index"`
			IsParagraphBreak bool      `json:"isParagraphBreak"`
			HeaderLevel      *int      `json:"headerLevel"`
		}{e.Kind, e.Index, e.ParagraphBreak, headerLevelPtr(e.HeaderLevel)})
	case EventComplete:
		return json.Marshal(struct {
			Type EventKind `json:"type"`
		}{e.Kind})
	case EventError:
		return json.Marshal(struct {
			Type    EventKind `json:"type"`
			Message string    `json:"message"`
		}{e.Kind, e.Message})
	default:
		return nil, fmt.Errorf("unknown event kind %q", e.Kind)
	}
}

// UnmarshalJSON decodes an event produced by MarshalJSON.
func (e *Event) UnmarshalJSON(data []byte) error {
	var v struct {
		Type             EventKind `json:"type"`
		Total            int       `json:"total"`
		Content          string    `json:"content"`
		Index            int       `json:"index"`
		IsParagraphBreak bool      `json:"isParagraphBreak"`
		HeaderLevel      *int      `json:"headerLevel"`
		Message          string    `json:"message"`
	}
	if err := json.Unmarshal(data, &v); err != nil {
		return err
	}

	switch v.Type {
	case EventInit, EventWord, EventLineBreak, EventComplete, EventError:
	default:
		return fmt.Errorf("unknown event kind %q", v.Type)
	}

	*e = Event{
		Kind:           v.Type,
		Total:          v.Total,
		Content:        v.Content,
		Index:          v.Index,
		ParagraphBreak: v.IsParagraphBreak,
		Message:        v.Message,
	}
	if v.HeaderLevel != nil {
		e.HeaderLevel = *v.HeaderLevel
	}
	return nil
}

// Streamer re-segments a normalized document into word events.
type Streamer interface {
	// Stream returns the single-pass event sequence for text. The sequence
	// starts with init, unless text cannot be segmented, and ends with at most
	// one of complete or error. Breaking out of the range loop or canceling
	// ctx stops emission.
	Stream(ctx context.Context, text string) iter.Seq[Event]
}

// Transcript rebuilds displayable text from stream events.
// The zero value is ready to use.
type Transcript struct {
	sb      strings.Builder
	midLine bool
}

// Apply consumes one event and returns the text it appends.
func (t *Transcript) Apply(e Event) string {
	var delta string
	switch e.Kind {
	case EventWord:
		if t.midLine {
			delta = " " + e.Content
		} else {
			if e.HeaderLevel > 0 {
				delta = strings.Repeat("#", e.HeaderLevel) + " "
			}
			delta += e.Content
			t.midLine = true
		}
	case EventLineBreak:
		delta = "\n"
		if e.ParagraphBreak {
			delta = "\n\n"
		}
		t.midLine = false
	}
	t.sb.WriteString(delta)
	return delta
}

// String returns the text rebuilt so far.
func (t *Transcript) String() string {
	return t.sb.String()
}
