package parser

import (
	"path/filepath"
	"strings"

	sitter "github.com/tree-sitter/go-tree-sitter"

	"uilint/internal/engine/model"
)

// extractHTML maps a plain HTML fragment onto the structural model: one
// synthetic function component per file whose body is the top-level element
// list. Element-level rules (URL validation, redundant wrappers, duplicate
// literals) apply unchanged; component-shape rules see a well-formed
// function component and stay quiet.
func extractHTML(ctx *extractionContext, root *sitter.Node) []*model.ComponentNode {
	c := &model.ComponentNode{
		ID:       ctx.path + ":1:1",
		Kind:     model.FunctionComponent,
		Name:     htmlComponentName(ctx.path),
		Location: model.Location{File: ctx.path, Line: 1, Column: 1},
	}

	var walk func(n *sitter.Node)
	walk = func(n *sitter.Node) {
		if n == nil {
			return
		}
		if n.Kind() == "element" {
			if el := buildHTMLElement(ctx, n); el != nil {
				c.Body = append(c.Body, el)
			}
			return
		}
		for i := uint(0); i < n.ChildCount(); i++ {
			walk(n.Child(i))
		}
	}
	walk(root)

	if len(c.Body) == 0 {
		return nil
	}
	return []*model.ComponentNode{c}
}

// htmlComponentName derives a PascalCase component name from the file base
// so the synthetic wrapper satisfies the model's naming invariant.
func htmlComponentName(path string) string {
	base := filepath.Base(path)
	base = strings.TrimSuffix(base, filepath.Ext(base))
	parts := strings.FieldsFunc(base, func(r rune) bool {
		return r == '-' || r == '_' || r == '.' || r == ' '
	})
	var b strings.Builder
	for _, p := range parts {
		if p == "" {
			continue
		}
		b.WriteString(strings.ToUpper(p[:1]))
		b.WriteString(p[1:])
	}
	if b.Len() == 0 {
		return "Fragment"
	}
	return b.String()
}

func buildHTMLElement(ctx *extractionContext, node *sitter.Node) *model.ElementNode {
	start := ctx.childOfKind(node, "start_tag")
	if start == nil {
		start = ctx.childOfKind(node, "self_closing_tag")
	}
	if start == nil {
		return nil
	}

	el := &model.ElementNode{
		ID:       nodeID(ctx.path, node),
		Tag:      ctx.text(ctx.childOfKind(start, "tag_name")),
		Location: ctx.location(node),
	}

	for i := uint(0); i < start.ChildCount(); i++ {
		attr := start.Child(i)
		if attr.Kind() != "attribute" {
			continue
		}
		name := ctx.text(ctx.childOfKind(attr, "attribute_name"))
		raw := htmlAttributeValue(ctx, attr)
		value := model.AttributeValue{
			Kind:     model.AttrStringLiteral,
			Raw:      raw,
			Location: ctx.location(attr),
		}
		if navigationAttrNames[name] {
			value.Kind = model.AttrURLReference
			value.Validated = isSafeLiteralURL(raw)
		}
		el.Attributes = append(el.Attributes, model.Attribute{Name: name, Value: value})
	}

	for i := uint(0); i < node.ChildCount(); i++ {
		child := node.Child(i)
		switch child.Kind() {
		case "element":
			if sub := buildHTMLElement(ctx, child); sub != nil {
				el.Children = append(el.Children, sub)
			}
		case "text":
			text := strings.TrimSpace(ctx.text(child))
			if text != "" {
				el.Children = append(el.Children, model.TextLiteral{Value: text, Location: ctx.location(child)})
			}
		}
	}
	return el
}

func htmlAttributeValue(ctx *extractionContext, attr *sitter.Node) string {
	if quoted := ctx.childOfKind(attr, "quoted_attribute_value"); quoted != nil {
		return ctx.text(ctx.childOfKind(quoted, "attribute_value"))
	}
	return ctx.text(ctx.childOfKind(attr, "attribute_value"))
}
