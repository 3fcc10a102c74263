package parser

import (
	sitter "github.com/tree-sitter/go-tree-sitter"

	"uilint/internal/engine/model"
)

// extractionContext carries shared state and helpers used by the language
// extractors.
type extractionContext struct {
	source []byte
	path   string
}

func (c *extractionContext) text(node *sitter.Node) string {
	if node == nil {
		return ""
	}
	return string(c.source[node.StartByte():node.EndByte()])
}

func (c *extractionContext) location(node *sitter.Node) model.Location {
	pos := node.StartPosition()
	return model.Location{
		File:   c.path,
		Line:   int(pos.Row) + 1,
		Column: int(pos.Column) + 1,
	}
}

func (c *extractionContext) childOfKind(node *sitter.Node, kind string) *sitter.Node {
	if node == nil {
		return nil
	}
	for i := uint(0); i < node.ChildCount(); i++ {
		child := node.Child(i)
		if child.Kind() == kind {
			return child
		}
	}
	return nil
}
