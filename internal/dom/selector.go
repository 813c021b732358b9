package dom

import (
	"strings"

	"github.com/PuerkitoBio/goquery"
	"golang.org/x/net/html"
)

// Kind identifies how a Selector matches an element
type Kind int

const (
	// ByTagAndClass matches a tag carrying every listed class
	ByTagAndClass Kind = iota
	// ByTagAndAttribute matches a tag whose attributes equal the listed values,
	// optionally also carrying every listed class
	ByTagAndAttribute
	// ByLabelText matches a tag whose text contains Text, ignoring case
	ByLabelText
)

func (k Kind) String() string {
	switch k {
	case ByTagAndClass:
		return "tag+class"
	case ByTagAndAttribute:
		return "tag+attribute"
	case ByLabelText:
		return "label"
	default:
		return "unknown"
	}
}

// Attr is a single attribute key/value pair to match exactly
type Attr struct {
	Key string
	Val string
}

// Selector describes one element lookup
type Selector struct {
	Kind  Kind
	Tag   string
	Class string // whitespace separated class tokens
	Attrs []Attr
	Text  string
}

// TagClass matches <tag class="..."> where the element carries every token of class.
func TagClass(tag, class string) Selector {
	return Selector{Kind: ByTagAndClass, Tag: tag, Class: class}
}

// TagAttr matches <tag key="val" ...> for every given pair.
func TagAttr(tag string, attrs ...Attr) Selector {
	return Selector{Kind: ByTagAndAttribute, Tag: tag, Attrs: attrs}
}

// Label matches <tag> whose text contains text, case-insensitively.
func Label(tag, text string) Selector {
	return Selector{Kind: ByLabelText, Tag: tag, Text: text}
}

// WithClass narrows an attribute selector to elements that also carry class.
func (s Selector) WithClass(class string) Selector {
	s.Class = class
	return s
}

func (s Selector) String() string {
	var b strings.Builder
	b.WriteString(s.Tag)
	for _, c := range strings.Fields(s.Class) {
		b.WriteString(".")
		b.WriteString(c)
	}
	for _, a := range s.Attrs {
		b.WriteString("[" + a.Key + "=" + a.Val + "]")
	}
	if s.Kind == ByLabelText {
		b.WriteString(":contains(" + s.Text + ")")
	}
	return b.String()
}

// matches reports whether the single element in sel satisfies the selector
func (s Selector) matches(sel *goquery.Selection) bool {
	if sel.Length() != 1 || sel.Get(0).Type != html.ElementNode {
		return false
	}
	if s.Tag != "" && goquery.NodeName(sel) != s.Tag {
		return false
	}
	for _, c := range strings.Fields(s.Class) {
		if !sel.HasClass(c) {
			return false
		}
	}
	for _, want := range s.Attrs {
		got, ok := sel.Attr(want.Key)
		if !ok || got != want.Val {
			return false
		}
	}
	if s.Kind == ByLabelText {
		return strings.Contains(strings.ToLower(sel.Text()), strings.ToLower(s.Text))
	}
	return true
}
