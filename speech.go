package urlcast

import (
	"context"
	"strings"
	"unicode/utf8"
)

// MaxSpeechChars is the largest text accepted by a single synthesis call.
const MaxSpeechChars = 4000

// Synthesizer converts text to speech.
type Synthesizer interface {
	// Synthesize returns encoded MP3 audio for text.
	// Text longer than MaxSpeechChars is rejected with EINVALID.
	Synthesize(ctx context.Context, text string) ([]byte, error)
}

// Adaptation is the result of rewriting an article for listening.
type Adaptation struct {
	// Analysis explains the changes made to the original.
	Analysis string

	// Revised is the rewritten article.
	Revised string
}

// Adapter rewrites written content so it reads well aloud.
type Adapter interface {
	Adapt(ctx context.Context, content string) (*Adaptation, error)
}

// SplitText packs text into chunks of at most max bytes, breaking only at
// sentence boundaries where possible. Sentences longer than max are split
// between words and words longer than max are split at rune boundaries.
// Whitespace inside chunks is collapsed to single spaces.
// A max of zero or less selects MaxSpeechChars.
func SplitText(text string, max int) []string {
	if max <= 0 {
		max = MaxSpeechChars
	}

	var chunks []string
	var cur strings.Builder

	flush := func() {
		if cur.Len() > 0 {
			chunks = append(chunks, cur.String())
			cur.Reset()
		}
	}
	add := func(piece string) {
		if cur.Len() > 0 && cur.Len()+1+len(piece) > max {
			flush()
		}
		if cur.Len() > 0 {
			cur.WriteByte(' ')
		}
		cur.WriteString(piece)
	}

	for _, s := range splitSentences(text) {
		if len(s) <= max {
			add(s)
			continue
		}
		for _, w := range strings.Fields(s) {
			for len(w) > max {
				n := runeCut(w, max)
				add(w[:n])
				w = w[n:]
			}
			add(w)
		}
	}
	flush()

	return chunks
}

// splitSentences groups the words of text into sentences. Paragraph
// boundaries always end a sentence.
func splitSentences(text string) []string {
	var sentences []string
	var cur []string

	for _, para := range strings.Split(text, blockSeparator) {
		for _, w := range strings.Fields(para) {
			cur = append(cur, w)
			if endsSentence(w) {
				sentences = append(sentences, strings.Join(cur, " "))
				cur = cur[:0]
			}
		}
		if len(cur) > 0 {
			sentences = append(sentences, strings.Join(cur, " "))
			cur = cur[:0]
		}
	}

	return sentences
}

func endsSentence(word string) bool {
	word = strings.TrimRight(word, "\"')]”’")
	r, _ := utf8.DecodeLastRuneInString(word)
	return r == '.' || r == '!' || r == '?'
}

// runeCut returns the largest prefix length of s that is at most max bytes
// and ends on a rune boundary. It is at least one rune long.
func runeCut(s string, max int) int {
	n := max
	for n > 0 && !utf8.RuneStart(s[n]) {
		n--
	}
	if n == 0 {
		_, size := utf8.DecodeRuneInString(s)
		return size
	}
	return n
}

// FirstWords returns the first n whitespace-separated words of s joined by
// single spaces.
func FirstWords(s string, n int) string {
	words := strings.Fields(s)
	if len(words) > n {
		words = words[:n]
	}
	return strings.Join(words, " ")
}
