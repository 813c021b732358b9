// Package dom wraps goquery behind the small set of lookups the extractors
// need, so that markup coupling stays in one place.
package dom

import (
	"fmt"
	"io"
	"strings"

	"github.com/PuerkitoBio/goquery"
	"golang.org/x/net/html"
)

// Element is one node of a parsed page
type Element interface {
	// FindAll returns every descendant matching s, in document order
	FindAll(s Selector) []Element
	// FindFirst returns the first descendant matching s
	FindFirst(s Selector) (Element, bool)
	// FindPrevious returns the nearest element before this one in document
	// order (ancestors included) matching s
	FindPrevious(s Selector) (Element, bool)
	// NextSibling returns the first following sibling matching s
	NextSibling(s Selector) (Element, bool)
	// Attr returns the value of attribute key
	Attr(key string) (string, bool)
	// Text returns the trimmed text content
	Text() string
}

// Document is a parsed HTML page
type Document struct {
	doc *goquery.Document
}

// Parse reads and parses an HTML document
func Parse(r io.Reader) (*Document, error) {
	doc, err := goquery.NewDocumentFromReader(r)
	if err != nil {
		return nil, fmt.Errorf("failed to parse HTML: %w", err)
	}
	return &Document{doc: doc}, nil
}

// ParseString parses an HTML document held in memory
func ParseString(s string) (*Document, error) {
	return Parse(strings.NewReader(s))
}

// Root returns the document element
func (d *Document) Root() Element {
	return &element{doc: d.doc, sel: d.doc.Selection}
}

type element struct {
	doc *goquery.Document
	sel *goquery.Selection
}

func (e *element) wrap(sel *goquery.Selection) *element {
	return &element{doc: e.doc, sel: sel}
}

func (e *element) candidates(s Selector) *goquery.Selection {
	tag := s.Tag
	if tag == "" {
		tag = "*"
	}
	return e.sel.Find(tag).FilterFunction(func(_ int, c *goquery.Selection) bool {
		return s.matches(c)
	})
}

func (e *element) FindAll(s Selector) []Element {
	var out []Element
	e.candidates(s).Each(func(_ int, c *goquery.Selection) {
		out = append(out, e.wrap(c))
	})
	return out
}

func (e *element) FindFirst(s Selector) (Element, bool) {
	found := e.candidates(s).First()
	if found.Length() == 0 {
		return nil, false
	}
	return e.wrap(found), true
}

func (e *element) FindPrevious(s Selector) (Element, bool) {
	if e.sel.Length() == 0 {
		return nil, false
	}
	for n := previousInOrder(e.sel.Get(0)); n != nil; n = previousInOrder(n) {
		if n.Type != html.ElementNode {
			continue
		}
		if c := e.doc.FindNodes(n); s.matches(c) {
			return e.wrap(c), true
		}
	}
	return nil, false
}

func (e *element) NextSibling(s Selector) (Element, bool) {
	found := e.sel.NextAll().FilterFunction(func(_ int, c *goquery.Selection) bool {
		return s.matches(c)
	}).First()
	if found.Length() == 0 {
		return nil, false
	}
	return e.wrap(found), true
}

func (e *element) Attr(key string) (string, bool) {
	return e.sel.Attr(key)
}

func (e *element) Text() string {
	return strings.TrimSpace(e.sel.Text())
}

// previousInOrder steps one node backwards in document order: the deepest
// last descendant of the previous sibling, or else the parent.
func previousInOrder(n *html.Node) *html.Node {
	if n.PrevSibling == nil {
		return n.Parent
	}
	p := n.PrevSibling
	for p.LastChild != nil {
		p = p.LastChild
	}
	return p
}
