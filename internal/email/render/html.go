// Package render turns email document trees into deliverable message bodies.
package render

import (
	"bytes"
	"fmt"

	"golang.org/x/net/html"
	"golang.org/x/net/html/atom"

	"github.com/ardevpk/dub/internal/email"
	"github.com/ardevpk/dub/internal/pool"
)

const (
	doctypePublic = "-//W3C//DTD XHTML 1.0 Transitional//EN"
	doctypeSystem = "http://www.w3.org/TR/xhtml1/DTD/xhtml1-transitional.dtd"
)

const previewStyle = "display:none;overflow:hidden;line-height:1px;opacity:0;max-height:0;max-width:0"

var buffers = pool.New(16, func() *bytes.Buffer { return new(bytes.Buffer) })

// HTML renders the document as a complete HTML email body.
func HTML(doc *email.Node) (string, error) {
	root := &html.Node{Type: html.DocumentNode}
	root.AppendChild(&html.Node{
		Type: html.DoctypeNode,
		Data: "html",
		Attr: []html.Attribute{{Key: "public", Val: doctypePublic}, {Key: "system", Val: doctypeSystem}},
	})
	appendNode(root, doc)

	buf := buffers.Get()
	defer buffers.Put(buf)

	if err := html.Render(buf, root); err != nil {
		return "", fmt.Errorf("render html: %w", err)
	}
	return buf.String(), nil
}

func appendNode(parent *html.Node, n *email.Node) {
	if n == nil {
		return
	}

	switch n.Kind {
	case email.KindString:
		parent.AppendChild(&html.Node{Type: html.TextNode, Data: n.Text})
		return
	case email.KindFragment:
		appendChildren(parent, n)
		return
	}

	el, content := element(n)
	parent.AppendChild(el)
	appendChildren(content, n)
}

func appendChildren(parent *html.Node, n *email.Node) {
	for _, c := range n.Children {
		appendNode(parent, c)
	}
}

// element builds the markup for n and returns the outer node together with
// the node its children belong in.
func element(n *email.Node) (outer, content *html.Node) {
	switch n.Kind {
	case email.KindHTML:
		el := newElement(atom.Html, n.Class, "lang", "en", "dir", "ltr")
		return el, el
	case email.KindHead:
		el := newElement(atom.Head, "")
		el.AppendChild(newElement(atom.Meta, "", "content", "text/html; charset=UTF-8", "http-equiv", "Content-Type"))
		return el, el
	case email.KindPreview:
		el := newElement(atom.Div, "", "style", previewStyle, "data-skip-in-text", "true")
		return el, el
	case email.KindBody:
		el := newElement(atom.Body, n.Class)
		return el, el
	case email.KindContainer:
		return table(n.Class, "max-width:37.5em")
	case email.KindSection:
		return table(n.Class, "")
	case email.KindRow:
		t := presentationTable(n.Class)
		tbody := newElement(atom.Tbody, "", "style", "width:100%")
		tr := newElement(atom.Tr, "", "style", "width:100%")
		t.AppendChild(tbody)
		tbody.AppendChild(tr)
		return t, tr
	case email.KindColumn:
		el := newElement(atom.Td, n.Class, "data-id", "__react-email-column")
		if align := n.Attr("align"); align != "" {
			el.Attr = append(el.Attr, html.Attribute{Key: "align", Val: align})
		}
		return el, el
	case email.KindHeading:
		el := newElement(atom.H1, n.Class)
		return el, el
	case email.KindText:
		el := newElement(atom.P, n.Class)
		return el, el
	case email.KindSpan:
		el := newElement(atom.Span, n.Class)
		return el, el
	case email.KindLink:
		el := newElement(atom.A, n.Class, "href", n.Attr("href"), "target", "_blank")
		return el, el
	case email.KindImg:
		el := newElement(atom.Img, n.Class,
			"alt", n.Attr("alt"),
			"height", n.Attr("height"),
			"src", n.Attr("src"),
			"style", "display:block;outline:none;border:none;text-decoration:none",
		)
		return el, el
	case email.KindHr:
		el := newElement(atom.Hr, n.Class)
		return el, el
	case email.KindBr:
		el := newElement(atom.Br, "")
		return el, el
	default:
		el := newElement(atom.Div, n.Class)
		return el, el
	}
}

func table(class, style string) (outer, content *html.Node) {
	t := presentationTable(class)
	t.Attr = append(t.Attr, html.Attribute{Key: "align", Val: "center"})
	if style != "" {
		t.Attr = append(t.Attr, html.Attribute{Key: "style", Val: style})
	}
	tbody := newElement(atom.Tbody, "")
	tr := newElement(atom.Tr, "", "style", "width:100%")
	td := newElement(atom.Td, "")
	t.AppendChild(tbody)
	tbody.AppendChild(tr)
	tr.AppendChild(td)
	return t, td
}

func presentationTable(class string) *html.Node {
	return newElement(atom.Table, class,
		"width", "100%",
		"border", "0",
		"cellpadding", "0",
		"cellspacing", "0",
		"role", "presentation",
	)
}

// newElement creates an element node; kv holds attribute key/value pairs.
func newElement(a atom.Atom, class string, kv ...string) *html.Node {
	el := &html.Node{Type: html.ElementNode, DataAtom: a, Data: a.String()}
	if class != "" {
		el.Attr = append(el.Attr, html.Attribute{Key: "class", Val: class})
	}
	for i := 0; i+1 < len(kv); i += 2 {
		el.Attr = append(el.Attr, html.Attribute{Key: kv[i], Val: kv[i+1]})
	}
	return el
}
