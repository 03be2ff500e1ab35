package application

import (
	"strings"

	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/ast"
	"github.com/yuin/goldmark/extension"
	"github.com/yuin/goldmark/text"
)

// markdown is shared by every estimate; goldmark parsers are safe for concurrent use.
var markdown = goldmark.New(
	goldmark.WithExtensions(
		extension.GFM,
	),
)

// plainText returns the readable text of a Markdown body: prose, inline code
// and code blocks. Raw HTML and embedded components are skipped.
func plainText(body []byte) string {
	doc := markdown.Parser().Parse(text.NewReader(body))

	var sb strings.Builder
	write := func(b []byte) {
		if len(b) == 0 {
			return
		}
		sb.Write(b)
		sb.WriteByte(' ')
	}

	ast.Walk(doc, func(n ast.Node, entering bool) (ast.WalkStatus, error) {
		if !entering {
			return ast.WalkContinue, nil
		}

		switch node := n.(type) {
		case *ast.HTMLBlock, *ast.RawHTML:
			return ast.WalkSkipChildren, nil
		case *ast.FencedCodeBlock, *ast.CodeBlock:
			lines := node.Lines()
			for i := 0; i < lines.Len(); i++ {
				segment := lines.At(i)
				write(segment.Value(body))
			}
			return ast.WalkSkipChildren, nil
		case *ast.AutoLink:
			write(node.Label(body))
		case *ast.Text:
			write(node.Segment.Value(body))
		case *ast.String:
			write(node.Value)
		}

		return ast.WalkContinue, nil
	})

	return sb.String()
}

func countWords(body []byte) int {
	return len(strings.Fields(plainText(body)))
}
