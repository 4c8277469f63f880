package extract

import (
	"strings"

	"github.com/PuerkitoBio/goquery"
	"golang.org/x/net/html"
	"golang.org/x/net/html/atom"

	"github.com/couchcryptid/marine-bulletin-service/internal/domain"
)

// contentRoot returns the first matching content container, or the whole
// document when no selector matches.
func contentRoot(doc *goquery.Document) *goquery.Selection {
	for _, sel := range contentRootSelectors {
		if s := doc.Find(sel).First(); s.Length() > 0 {
			return s
		}
	}
	return doc.Selection
}

// resolveTitle picks the bulletin title: a dated <h4>, the first <h4>, the
// first <h1>, the <title> tag, then DefaultTitle.
func resolveTitle(doc *goquery.Document) string {
	var dated string
	doc.Find("h4").EachWithBreak(func(_ int, s *goquery.Selection) bool {
		if text := collapseWhitespace(s.Text()); hasDate(text) {
			dated = text
			return false
		}
		return true
	})
	if dated != "" {
		return dated
	}
	for _, sel := range []string{"h4", "h1", "title"} {
		if text := collapseWhitespace(doc.Find(sel).First().Text()); text != "" {
			return text
		}
	}
	return DefaultTitle
}

// structuralSections collects one section per <h5> under root, empty ones
// included. Each section runs over the heading's following siblings up to the
// next <h5>.
func structuralSections(root *goquery.Selection) []domain.RawSection {
	var sections []domain.RawSection
	root.Find("h5").Each(func(_ int, s *goquery.Selection) {
		label := collapseWhitespace(s.Text())

		var parts []string
		for n := s.Get(0).NextSibling; n != nil; n = n.NextSibling {
			if n.Type == html.ElementNode && n.DataAtom == atom.H5 {
				break
			}
			parts = append(parts, blockLines(n)...)
		}

		text := normalizeText(strings.Join(parts, "\n"))
		sections = append(sections, domain.RawSection{Label: label, Text: text})
	})
	return sections
}

// blockLines renders a sibling node as text lines. Lists become "- item"
// lines; paragraphs, spans and inline emphasis become their text; divs are
// descended so nested lists keep their shape.
func blockLines(n *html.Node) []string {
	switch n.Type {
	case html.TextNode:
		if t := collapseLines(n.Data); t != "" {
			return []string{t}
		}
		return nil
	case html.ElementNode:
	default:
		return nil
	}

	switch n.DataAtom {
	case atom.Ul, atom.Ol:
		var lines []string
		for li := n.FirstChild; li != nil; li = li.NextSibling {
			if li.Type != html.ElementNode || li.DataAtom != atom.Li {
				continue
			}
			if t := collapseWhitespace(inlineText(li)); t != "" {
				lines = append(lines, "- "+t)
			}
		}
		return lines
	case atom.Div:
		if !hasBlockChild(n) {
			return nonEmpty(collapseLines(inlineText(n)))
		}
		var lines []string
		for c := n.FirstChild; c != nil; c = c.NextSibling {
			lines = append(lines, blockLines(c)...)
		}
		return lines
	case atom.P, atom.Span, atom.B, atom.Strong, atom.Em, atom.I, atom.Font:
		return nonEmpty(collapseLines(inlineText(n)))
	default:
		return nil
	}
}

func hasBlockChild(n *html.Node) bool {
	for c := n.FirstChild; c != nil; c = c.NextSibling {
		if c.Type != html.ElementNode {
			continue
		}
		switch c.DataAtom {
		case atom.P, atom.Div, atom.Ul, atom.Ol:
			return true
		}
	}
	return false
}

// inlineText concatenates the text under n, turning <br> into newlines.
func inlineText(n *html.Node) string {
	var b strings.Builder
	var walk func(*html.Node)
	walk = func(n *html.Node) {
		switch n.Type {
		case html.TextNode:
			b.WriteString(n.Data)
		case html.ElementNode:
			switch n.DataAtom {
			case atom.Br:
				b.WriteByte('\n')
				return
			case atom.Script, atom.Style, atom.Noscript:
				return
			}
		}
		for c := n.FirstChild; c != nil; c = c.NextSibling {
			walk(c)
		}
	}
	walk(n)
	return b.String()
}

func nonEmpty(s string) []string {
	if s == "" {
		return nil
	}
	return []string{s}
}

// looksLikePortal reports whether a structural result should be discarded in
// favour of the marker fallback.
func looksLikePortal(title string, sections []domain.RawSection) bool {
	if len(sections) < 2 {
		return true
	}
	lowerTitle := strings.ToLower(title)
	if !hasDate(title) {
		for _, name := range genericSiteNames {
			if strings.Contains(lowerTitle, name) {
				return true
			}
		}
	}
	for _, s := range sections {
		label := strings.ToLower(s.Label)
		for _, kw := range offTopicKeywords {
			if strings.Contains(label, kw) {
				return true
			}
		}
	}
	return false
}
