package urlcast

import (
	"regexp"
	"strings"
	"unicode"
)

// DefaultMaxLength is the default budget, in bytes, for the content portion
// of an article. Title and description do not count against it.
const DefaultMaxLength = 16000

// TruncationMarker is appended to an article whose content exceeded the budget.
const TruncationMarker = "[Content truncated due to length]"

const blockSeparator = "\n\n"

// BlockKind identifies the structural type of a Block.
type BlockKind int

// Block kinds.
const (
	BlockParagraph BlockKind = iota
	BlockHeading
	BlockQuote
	BlockEmphasis
)

// Block is one structural unit of extracted content.
type Block struct {
	Kind  BlockKind
	Level int // heading level 1-6; ignored for other kinds
	Text  string
}

// Markdown renders the block as a single markdown line.
func (b Block) Markdown() string {
	switch b.Kind {
	case BlockHeading:
		level := b.Level
		if level < 1 {
			level = 1
		} else if level > 6 {
			level = 6
		}
		return strings.Repeat("#", level) + " " + b.Text
	case BlockQuote:
		return "> " + b.Text
	case BlockEmphasis:
		return "*" + b.Text + "*"
	default:
		return b.Text
	}
}

// Article is the normalized result of extracting a page.
type Article struct {
	Title       string
	Description string

	// Blocks holds the content blocks that fit within the length budget.
	Blocks []Block

	// Truncated reports whether content blocks were dropped to honor the budget.
	Truncated bool

	// Content is the normalized markdown-like document.
	Content string
}

// NewArticle assembles an Article from a title, a description and the content
// blocks of a page, in document order.
//
// Blocks are appended while the content portion (blocks joined by blank
// lines) stays within maxLength bytes. The first block that does not fit
// ends the content and TruncationMarker is appended instead. A maxLength of
// zero or less selects DefaultMaxLength.
func NewArticle(title, description string, blocks []Block, maxLength int) *Article {
	if maxLength <= 0 {
		maxLength = DefaultMaxLength
	}

	a := &Article{
		Title:       collapseText(title),
		Description: collapseText(description),
	}

	parts := make([]string, 0, len(blocks))
	used := 0
	for _, b := range blocks {
		b.Text = collapseText(b.Text)
		if b.Text == "" {
			continue
		}

		md := b.Markdown()
		n := len(md)
		if len(parts) > 0 {
			n += len(blockSeparator)
		}
		if used+n > maxLength {
			a.Truncated = true
			break
		}
		used += n
		a.Blocks = append(a.Blocks, b)
		parts = append(parts, md)
	}

	var sb strings.Builder
	if a.Title != "" {
		sb.WriteString(Block{Kind: BlockHeading, Level: 1, Text: a.Title}.Markdown())
		sb.WriteString(blockSeparator)
	}
	if a.Description != "" {
		sb.WriteString(Block{Kind: BlockEmphasis, Text: a.Description}.Markdown())
		sb.WriteString(blockSeparator)
	}
	sb.WriteString(strings.Join(parts, blockSeparator))

	content := sb.String()
	if a.Truncated {
		content = strings.TrimRightFunc(content, unicode.IsSpace)
		if content != "" {
			content += blockSeparator
		}
		content += TruncationMarker
	}
	a.Content = Normalize(content)

	return a
}

// SpeechText returns the article text without markdown markers, suitable
// for speech synthesis.
func (a *Article) SpeechText() string {
	parts := make([]string, 0, len(a.Blocks)+2)
	if a.Title != "" {
		parts = append(parts, a.Title)
	}
	if a.Description != "" {
		parts = append(parts, a.Description)
	}
	for _, b := range a.Blocks {
		parts = append(parts, b.Text)
	}
	return strings.Join(parts, blockSeparator)
}

var (
	newlineRunRe = regexp.MustCompile(`\n{3,}`)
	spaceRunRe   = regexp.MustCompile(` {2,}`)
)

// Normalize collapses runs of three or more newlines to a blank line, runs of
// two or more spaces to one space, and trims surrounding whitespace.
func Normalize(s string) string {
	s = newlineRunRe.ReplaceAllString(s, "\n\n")
	s = spaceRunRe.ReplaceAllString(s, " ")
	return strings.TrimSpace(s)
}

// collapseText joins the whitespace-separated fields of s with single spaces.
func collapseText(s string) string {
	return strings.Join(strings.Fields(s), " ")
}

// Slug creates a URL-safe name from a title.
// Converts to lowercase, replaces spaces with hyphens, removes special chars.
func Slug(title string) string {
	var sb strings.Builder
	prevHyphen := false

	for _, r := range strings.ToLower(title) {
		if unicode.IsLetter(r) || unicode.IsDigit(r) {
			sb.WriteRune(r)
			prevHyphen = false
		} else if unicode.IsSpace(r) || r == '-' || r == '_' {
			if !prevHyphen && sb.Len() > 0 {
				sb.WriteRune('-')
				prevHyphen = true
			}
		}
	}

	result := strings.TrimSuffix(sb.String(), "-")
	if result == "" {
		return "untitled"
	}
	return result
}

// Extractor extracts the main content of an HTML page as an Article.
type Extractor interface {
	// Extract parses raw HTML and returns the normalized article.
	// Returns ENOCONTENT if no content region can be located.
	Extract(html string) (*Article, error)
}
