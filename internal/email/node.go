// Package email describes email documents as a tree of typed layout nodes.
//
// Templates build a tree with the helpers in this package and hand it to a
// renderer (see package render), which turns it into a deliverable message
// body. The tree itself carries no markup.
package email

import "strings"

// Kind identifies the layout role of a node.
type Kind string

const (
	KindFragment  Kind = "fragment"
	KindHTML      Kind = "html"
	KindHead      Kind = "head"
	KindPreview   Kind = "preview"
	KindBody      Kind = "body"
	KindContainer Kind = "container"
	KindSection   Kind = "section"
	KindRow       Kind = "row"
	KindColumn    Kind = "column"
	KindHeading   Kind = "heading"
	KindText      Kind = "text"
	KindSpan      Kind = "span"
	KindLink      Kind = "link"
	KindImg       Kind = "img"
	KindHr        Kind = "hr"
	KindBr        Kind = "br"
	KindString    Kind = "string"
)

// Node is a single element of an email document.
type Node struct {
	Kind     Kind              `json:"kind"`
	Class    string            `json:"class,omitempty"`
	Attrs    map[string]string `json:"attrs,omitempty"`
	Text     string            `json:"text,omitempty"`
	Children []*Node           `json:"children,omitempty"`
}

// Attr returns the attribute value or an empty string.
func (n *Node) Attr(key string) string {
	if n == nil || n.Attrs == nil {
		return ""
	}
	return n.Attrs[key]
}

// Walk visits n and all of its descendants depth-first, parents first.
// Returning false from fn skips the children of the current node.
func (n *Node) Walk(fn func(*Node) bool) {
	if n == nil {
		return
	}
	if !fn(n) {
		return
	}
	for _, c := range n.Children {
		c.Walk(fn)
	}
}

// FindAll returns every descendant (including n) of the given kind in document order.
func (n *Node) FindAll(kind Kind) []*Node {
	var out []*Node
	n.Walk(func(c *Node) bool {
		if c.Kind == kind {
			out = append(out, c)
		}
		return true
	})
	return out
}

// TextContent concatenates all string leaves below n.
func (n *Node) TextContent() string {
	var b strings.Builder
	n.Walk(func(c *Node) bool {
		if c.Kind == KindString {
			b.WriteString(c.Text)
		}
		return true
	})
	return b.String()
}

func el(kind Kind, class string, children []*Node) *Node {
	return &Node{Kind: kind, Class: class, Children: compact(children)}
}

// compact drops nil children so templates can inline conditional branches.
func compact(children []*Node) []*Node {
	out := children[:0:0]
	for _, c := range children {
		if c != nil {
			out = append(out, c)
		}
	}
	return out
}

// Str is a raw text leaf.
func Str(s string) *Node {
	return &Node{Kind: KindString, Text: s}
}

func Fragment(children ...*Node) *Node { return el(KindFragment, "", children) }

func HTML(children ...*Node) *Node { return el(KindHTML, "", children) }

func Head() *Node { return el(KindHead, "", nil) }

// Preview is the inbox preview line; clients show it next to the subject.
func Preview(text string) *Node {
	return el(KindPreview, "", []*Node{Str(text)})
}

func Body(class string, children ...*Node) *Node { return el(KindBody, class, children) }

func Container(class string, children ...*Node) *Node {
	return el(KindContainer, class, children)
}

func Section(class string, children ...*Node) *Node { return el(KindSection, class, children) }

func Row(class string, children ...*Node) *Node { return el(KindRow, class, children) }

// Column is a table cell of a Row. align is one of left, center, right.
func Column(align, class string, children ...*Node) *Node {
	n := el(KindColumn, class, children)
	if align != "" {
		n.Attrs = map[string]string{"align": align}
	}
	return n
}

func Heading(class string, children ...*Node) *Node { return el(KindHeading, class, children) }

func Text(class string, children ...*Node) *Node { return el(KindText, class, children) }

func Span(class string, children ...*Node) *Node { return el(KindSpan, class, children) }

func Link(href, class string, children ...*Node) *Node {
	n := el(KindLink, class, children)
	n.Attrs = map[string]string{"href": href}
	return n
}

func Img(src, alt, height string) *Node {
	n := el(KindImg, "", nil)
	n.Attrs = map[string]string{"src": src, "alt": alt, "height": height}
	return n
}

func Hr(class string) *Node { return el(KindHr, class, nil) }

func Br() *Node { return el(KindBr, "", nil) }
