// Package goquery implements urlcast.Extractor on top of goquery.
package goquery

import (
	"strings"

	"github.com/PuerkitoBio/goquery"
	"github.com/fwojciec/urlcast"
	"golang.org/x/net/html"
	"golang.org/x/net/html/atom"
)

// NoiseSelector matches elements that never contribute article text.
const NoiseSelector = "nav, footer, script, style, header, img, figure, picture, svg"

// blockSelector matches the elements rendered as blocks.
const blockSelector = "h1, h2, h3, h4, h5, h6, p, blockquote"

// RemoveNoise deletes noise elements under sel and turns line breaks into
// spaces so that adjacent words stay separated in extracted text.
func RemoveNoise(sel *goquery.Selection) {
	sel.Find(NoiseSelector).Remove()
	sel.Find("br").ReplaceWithHtml(" ")
}

// Blocks walks the descendants of region in document order and returns a
// block for every heading, paragraph and blockquote with visible text.
// Nested matches (a paragraph inside a blockquote) yield a block each.
func Blocks(region *goquery.Selection) []urlcast.Block {
	var blocks []urlcast.Block
	region.Find(blockSelector).Each(func(_ int, sel *goquery.Selection) {
		text := strings.Join(strings.Fields(sel.Text()), " ")
		if text == "" {
			return
		}

		node := sel.Get(0)
		switch {
		case node.DataAtom == atom.Blockquote:
			blocks = append(blocks, urlcast.Block{Kind: urlcast.BlockQuote, Text: text})
		case node.DataAtom == atom.P:
			blocks = append(blocks, urlcast.Block{Kind: urlcast.BlockParagraph, Text: text})
		default:
			blocks = append(blocks, urlcast.Block{Kind: urlcast.BlockHeading, Level: headingLevel(node), Text: text})
		}
	})
	return blocks
}

// headingLevel returns the level of a heading element, defaulting to 1.
func headingLevel(n *html.Node) int {
	switch n.DataAtom {
	case atom.H1:
		return 1
	case atom.H2:
		return 2
	case atom.H3:
		return 3
	case atom.H4:
		return 4
	case atom.H5:
		return 5
	case atom.H6:
		return 6
	}
	return 1
}

// Title returns the trimmed text of the document's first title element.
func Title(doc *goquery.Document) string {
	return strings.TrimSpace(doc.Find("title").First().Text())
}

// Description returns the content of the description meta tag, or of the
// Open Graph description when the page has no description tag. A present
// but empty description tag yields "".
func Description(doc *goquery.Document) string {
	for _, selector := range []string{`meta[name="description"]`, `meta[property="og:description"]`} {
		if sel := doc.Find(selector).First(); sel.Length() > 0 {
			return strings.TrimSpace(sel.AttrOr("content", ""))
		}
	}
	return ""
}

// BlocksFromHTML parses an HTML fragment, strips noise and returns its
// blocks. It serves extractors whose libraries hand back cleaned HTML.
func BlocksFromHTML(fragment string) ([]urlcast.Block, error) {
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(fragment))
	if err != nil {
		return nil, urlcast.Errorf(urlcast.ENOCONTENT, "failed to parse HTML: %v", err)
	}
	RemoveNoise(doc.Selection)
	return Blocks(doc.Selection), nil
}

// BlocksFromNode returns the blocks under an already parsed node.
func BlocksFromNode(n *html.Node) []urlcast.Block {
	doc := goquery.NewDocumentFromNode(n)
	RemoveNoise(doc.Selection)
	return Blocks(doc.Selection)
}
