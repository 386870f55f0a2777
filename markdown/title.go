// Package markdown extracts metadata from markdown content using the
// goldmark parser.
package markdown

import (
	"strings"

	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/ast"
	"github.com/yuin/goldmark/text"
)

// FirstHeading returns the text of the first level-1 heading in the
// document, or "" if there is none.
func FirstHeading(content string) string {
	source := []byte(content)
	root := goldmark.New().Parser().Parse(text.NewReader(source))

	var title string
	_ = ast.Walk(root, func(n ast.Node, entering bool) (ast.WalkStatus, error) {
		if !entering {
			return ast.WalkContinue, nil
		}
		heading, ok := n.(*ast.Heading)
		if !ok || heading.Level != 1 {
			return ast.WalkContinue, nil
		}
		title = headingText(heading, source)
		return ast.WalkStop, nil
	})

	return title
}

// headingText concatenates the text nodes under a heading, so inline
// markup like emphasis or code spans doesn't truncate the title.
func headingText(heading ast.Node, source []byte) string {
	var sb strings.Builder
	_ = ast.Walk(heading, func(n ast.Node, entering bool) (ast.WalkStatus, error) {
		if !entering {
			return ast.WalkContinue, nil
		}
		if t, ok := n.(*ast.Text); ok {
			sb.Write(t.Segment.Value(source))
		}
		return ast.WalkContinue, nil
	})
	return strings.TrimSpace(sb.String())
}
