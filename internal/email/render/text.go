package render

import (
	"strings"

	"github.com/ardevpk/dub/internal/email"
)

const textRule = "------------------------------------------------------------"

// PlainText renders the document as the text/plain alternative of the email.
// The preview line and images are omitted; links are followed by their target.
func PlainText(doc *email.Node) string {
	var blocks []string
	collectBlocks(doc, &blocks)
	return strings.Join(blocks, "\n\n") + "\n"
}

func collectBlocks(n *email.Node, blocks *[]string) {
	if n == nil {
		return
	}

	switch n.Kind {
	case email.KindPreview, email.KindImg, email.KindHead:
		return
	case email.KindHeading:
		*blocks = append(*blocks, strings.ToUpper(inline(n)))
		return
	case email.KindText:
		*blocks = append(*blocks, inline(n))
		return
	case email.KindHr:
		*blocks = append(*blocks, textRule)
		return
	case email.KindRow:
		cols := make([]string, 0, len(n.Children))
		for _, c := range n.Children {
			cols = append(cols, inline(c))
		}
		*blocks = append(*blocks, strings.Join(cols, "  "))
		return
	case email.KindString:
		if s := strings.TrimSpace(n.Text); s != "" {
			*blocks = append(*blocks, s)
		}
		return
	}

	for _, c := range n.Children {
		collectBlocks(c, blocks)
	}
}

func inline(n *email.Node) string {
	var b strings.Builder
	writeInline(&b, n)
	return strings.TrimSpace(b.String())
}

func writeInline(b *strings.Builder, n *email.Node) {
	switch n.Kind {
	case email.KindString:
		b.WriteString(n.Text)
		return
	case email.KindBr:
		b.WriteByte('\n')
		return
	case email.KindLink:
		for _, c := range n.Children {
			writeInline(b, c)
		}
		if href := n.Attr("href"); href != "" {
			b.WriteString(" [")
			b.WriteString(href)
			b.WriteString("]")
		}
		return
	}
	for _, c := range n.Children {
		writeInline(b, c)
	}
}
