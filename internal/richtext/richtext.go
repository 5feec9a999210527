// Package richtext converts between the HTML stored in entry content and the
// plain forms the CLI prints.
package richtext

import (
	"bytes"
	"strings"

	"github.com/mattn/go-runewidth"
	"github.com/yuin/goldmark"
	"golang.org/x/net/html"
	"golang.org/x/net/html/atom"
)

var mdRenderer = goldmark.New()

// MarkdownToHTML renders Markdown source to the HTML form entries store.
func MarkdownToHTML(source string) (string, error) {
	var b bytes.Buffer
	if err := mdRenderer.Convert([]byte(source), &b); err != nil {
		return "", err
	}
	return b.String(), nil
}

// PlainText drops markup from stored HTML, keeping line breaks at block
// boundaries. Script, style and head content is skipped.
func PlainText(content string) string {
	doc, err := html.Parse(strings.NewReader(content))
	if err != nil {
		return strings.TrimSpace(content)
	}

	var b strings.Builder
	collectText(&b, doc)

	lines := strings.Split(b.String(), "\n")
	out := make([]string, 0, len(lines))
	blanks := 0
	for _, line := range lines {
		line = strings.Join(strings.Fields(line), " ")
		if line == "" {
			blanks++
			if blanks > 1 {
				continue
			}
		} else {
			blanks = 0
		}
		out = append(out, line)
	}
	return strings.TrimSpace(strings.Join(out, "\n"))
}

func collectText(b *strings.Builder, n *html.Node) {
	switch n.Type {
	case html.TextNode:
		b.WriteString(n.Data)
		return
	case html.CommentNode, html.DoctypeNode:
		return
	case html.ElementNode:
		switch n.DataAtom {
		case atom.Script, atom.Style, atom.Head, atom.Template, atom.Noscript:
			return
		case atom.Br:
			b.WriteByte('\n')
			return
		}
	}

	for c := n.FirstChild; c != nil; c = c.NextSibling {
		collectText(b, c)
	}
	if n.Type == html.ElementNode && isBlock(n.DataAtom) {
		b.WriteByte('\n')
	}
}

func isBlock(a atom.Atom) bool {
	switch a {
	case atom.P, atom.Div, atom.Li, atom.Ul, atom.Ol, atom.Blockquote, atom.Pre,
		atom.H1, atom.H2, atom.H3, atom.H4, atom.H5, atom.H6,
		atom.Tr, atom.Table, atom.Hr, atom.Section, atom.Article:
		return true
	}
	return false
}

// Excerpt flattens content to a single line no wider than width cells.
func Excerpt(content string, width int) string {
	flat := strings.Join(strings.Fields(PlainText(content)), " ")
	if width <= 0 {
		return flat
	}
	return runewidth.Truncate(flat, width, "...")
}
