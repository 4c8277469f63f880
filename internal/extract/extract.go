// Package extract turns a raw bulletin page into labelled text sections.
//
// Extraction is an ordered chain of pure steps: a structural scan of <h5>
// headings, a portal-page check that can reject that scan, and a
// marker-based fallback over the flattened page text. Extraction never
// fails; a page with nothing recognisable yields no sections.
package extract

import (
	"strings"
	"time"

	"github.com/PuerkitoBio/goquery"
	"golang.org/x/net/html"
	"golang.org/x/net/html/atom"

	"github.com/couchcryptid/marine-bulletin-service/internal/domain"
)

// Extraction paths, reported for logging and metrics.
const (
	PathStructural = "structural"
	PathFallback   = "fallback"
)

// Result is the outcome of extracting one bulletin page.
type Result struct {
	Title    string
	IssuedAt *time.Time
	Sections []domain.RawSection
	Path     string
}

// Extract parses page and returns its title, issue time and sections.
func Extract(page string, lang domain.Lang) Result {
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(page))
	if err != nil {
		return Result{Title: DefaultTitle, Path: PathFallback}
	}
	doc.Find("script, style, noscript").Remove()

	title := resolveTitle(doc)
	body := pageText(doc)

	res := Result{
		Title:    title,
		IssuedAt: resolveIssuedAt(title, body),
		Sections: structuralSections(contentRoot(doc)),
		Path:     PathStructural,
	}
	if looksLikePortal(title, res.Sections) {
		res.Sections = markerFallback(body, lang)
		res.Path = PathFallback
	}
	return res
}

// pageText flattens the document body (or the whole document when there is
// no body) to whitespace-collapsed text. Element boundaries become spaces so
// adjacent blocks do not run together.
func pageText(doc *goquery.Document) string {
	root := doc.Find("body")
	if root.Length() == 0 {
		root = doc.Selection
	}

	var b strings.Builder
	var walk func(*html.Node)
	walk = func(n *html.Node) {
		switch n.Type {
		case html.TextNode:
			b.WriteString(n.Data)
			return
		case html.ElementNode:
			switch n.DataAtom {
			case atom.Script, atom.Style, atom.Noscript:
				return
			}
			b.WriteByte(' ')
			defer b.WriteByte(' ')
		}
		for c := n.FirstChild; c != nil; c = c.NextSibling {
			walk(c)
		}
	}
	for _, n := range root.Nodes {
		walk(n)
	}
	return collapseWhitespace(b.String())
}
