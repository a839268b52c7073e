package goquery

import (
	"regexp"
	"strings"

	"github.com/PuerkitoBio/goquery"
	"github.com/fwojciec/urlcast"
	"golang.org/x/net/html"
	"golang.org/x/net/html/atom"
)

// Ensure Extractor implements urlcast.Extractor at compile time.
var _ urlcast.Extractor = (*Extractor)(nil)

// contentClassPattern matches class attributes that typically mark the main
// content container of a page.
var contentClassPattern = regexp.MustCompile(`(?i)article|content|post|entry`)

// regionFinder returns the content region of a document or nil if the
// strategy finds nothing.
type regionFinder func(doc *goquery.Document) *goquery.Selection

// regionFinders are tried in order; the first match wins. The body is the
// last resort and is handled by Extract.
var regionFinders = []regionFinder{
	firstElement("article"),
	firstElement("main"),
	firstContentClass,
}

// Option configures an Extractor.
type Option func(*Extractor)

// WithMaxLength overrides the block budget of the rendered content.
func WithMaxLength(n int) Option {
	return func(e *Extractor) {
		e.maxLength = n
	}
}

// Extractor pulls the main content region out of an HTML page using a fixed
// cascade of heuristics: article, main, a content-like class, then body.
type Extractor struct {
	maxLength int
}

// NewExtractor creates a new Extractor.
func NewExtractor(opts ...Option) *Extractor {
	e := &Extractor{maxLength: urlcast.DefaultMaxLength}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

// Extract renders the main content of rawHTML as an article.
func (e *Extractor) Extract(rawHTML string) (*urlcast.Article, error) {
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(rawHTML))
	if err != nil {
		return nil, urlcast.Errorf(urlcast.ENOCONTENT, "failed to parse HTML: %v", err)
	}

	// Body presence is decided before noise removal empties it.
	hasBody := declaresBody(rawHTML) || !isBlank(doc.Find("body").First())

	RemoveNoise(doc.Selection)

	region := findRegion(doc)
	if region == nil && hasBody {
		region = doc.Find("body").First()
	}
	if region == nil {
		return nil, urlcast.Errorf(urlcast.ENOCONTENT, "no content found")
	}

	return urlcast.NewArticle(Title(doc), Description(doc), Blocks(region), e.maxLength), nil
}

func findRegion(doc *goquery.Document) *goquery.Selection {
	for _, find := range regionFinders {
		if sel := find(doc); sel != nil {
			return sel
		}
	}
	return nil
}

func firstElement(selector string) regionFinder {
	return func(doc *goquery.Document) *goquery.Selection {
		sel := doc.Find(selector).First()
		if sel.Length() == 0 {
			return nil
		}
		return sel
	}
}

func firstContentClass(doc *goquery.Document) *goquery.Selection {
	var found *goquery.Selection
	doc.Find("[class]").EachWithBreak(func(_ int, sel *goquery.Selection) bool {
		if contentClassPattern.MatchString(sel.AttrOr("class", "")) {
			found = sel
			return false
		}
		return true
	})
	return found
}

// declaresBody reports whether the markup contains a body start tag. The
// HTML parser synthesizes a body for every document, so the parsed tree
// cannot tell an explicit empty body from a missing one.
func declaresBody(rawHTML string) bool {
	z := html.NewTokenizer(strings.NewReader(rawHTML))
	for {
		switch z.Next() {
		case html.ErrorToken:
			return false
		case html.StartTagToken, html.SelfClosingTagToken:
			name, _ := z.TagName()
			if atom.Lookup(name) == atom.Body {
				return true
			}
		}
	}
}

func isBlank(sel *goquery.Selection) bool {
	return sel.Length() == 0 || (sel.Children().Length() == 0 && strings.TrimSpace(sel.Text()) == "")
}
