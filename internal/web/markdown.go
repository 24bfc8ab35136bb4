package web

import (
	"bytes"
	"html/template"
	"strings"

	"dropboard/internal/docs"

	"github.com/yuin/goldmark"
	emoji "github.com/yuin/goldmark-emoji"
	"github.com/yuin/goldmark/ast"
	"github.com/yuin/goldmark/extension"
	"github.com/yuin/goldmark/parser"
	"github.com/yuin/goldmark/renderer/html"
	"github.com/yuin/goldmark/text"
)

var docRenderer = goldmark.New(
	goldmark.WithExtensions(
		extension.GFM,
		emoji.Emoji,
	),
	goldmark.WithParserOptions(
		parser.WithAutoHeadingID(),
	),
	goldmark.WithRendererOptions(
		// No html.WithUnsafe: raw HTML in the source is dropped.
		html.WithHardWraps(),
	),
)

// docSection is a second-level heading of a help topic and its anchor.
type docSection struct {
	ID    string
	Title string
}

type renderedDoc struct {
	HTML     template.HTML
	Sections []docSection
}

// renderDoc renders a help topic. Headings get anchors, "## " headings are
// collected for the page index, and links to "<topic>.md" are pointed at
// the topic's page.
func renderDoc(src string) renderedDoc {
	src = strings.TrimSpace(src)
	if src == "" {
		return renderedDoc{}
	}
	source := []byte(src)
	root := docRenderer.Parser().Parse(text.NewReader(source))

	var out renderedDoc
	_ = ast.Walk(root, func(n ast.Node, entering bool) (ast.WalkStatus, error) {
		if !entering {
			return ast.WalkContinue, nil
		}
		switch n := n.(type) {
		case *ast.Heading:
			if n.Level != 2 {
				break
			}
			id, _ := n.AttributeString("id")
			idb, _ := id.([]byte)
			out.Sections = append(out.Sections, docSection{ID: string(idb), Title: plainText(n, source)})
		case *ast.Link:
			n.Destination = topicLink(n.Destination)
		}
		return ast.WalkContinue, nil
	})

	var b bytes.Buffer
	if err := docRenderer.Renderer().Render(&b, source, root); err != nil {
		return renderedDoc{HTML: template.HTML("<pre>" + template.HTMLEscapeString(src) + "</pre>")}
	}
	out.HTML = template.HTML(b.String())
	return out
}

func topicLink(dest []byte) []byte {
	d, anchor := string(dest), ""
	if i := strings.IndexByte(d, '#'); i >= 0 {
		d, anchor = d[:i], d[i:]
	}
	if strings.Contains(d, "/") || !strings.HasSuffix(d, ".md") {
		return dest
	}
	topic := strings.ToLower(strings.TrimSuffix(d, ".md"))
	if _, ok := docs.Get(topic); !ok {
		return dest
	}
	return []byte("/docs/" + topic + anchor)
}

func plainText(n ast.Node, source []byte) string {
	var b strings.Builder
	_ = ast.Walk(n, func(c ast.Node, entering bool) (ast.WalkStatus, error) {
		if !entering {
			return ast.WalkContinue, nil
		}
		switch c := c.(type) {
		case *ast.Text:
			b.Write(c.Segment.Value(source))
		case *ast.String:
			b.Write(c.Value)
		}
		return ast.WalkContinue, nil
	})
	return b.String()
}
