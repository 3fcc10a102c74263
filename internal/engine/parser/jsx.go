package parser

import (
	"strings"

	sitter "github.com/tree-sitter/go-tree-sitter"

	"uilint/internal/engine/model"
)

// lifecycleMethods are the class-component hooks that keep a class from
// being mechanically convertible to a function component.
var lifecycleMethods = map[string]bool{
	"componentDidMount":        true,
	"componentDidUpdate":       true,
	"componentWillUnmount":     true,
	"shouldComponentUpdate":    true,
	"getSnapshotBeforeUpdate":  true,
	"getDerivedStateFromProps": true,
	"componentDidCatch":        true,
}

// navigationAttrNames mirrors the attribute set the URL rule keys on; the
// parser classifies these values as URL references.
var navigationAttrNames = map[string]bool{
	"href":       true,
	"src":        true,
	"action":     true,
	"formAction": true,
	"to":         true,
}

var jsxNodeKinds = map[string]bool{
	"jsx_element":              true,
	"jsx_self_closing_element": true,
	"jsx_fragment":             true,
}

// extractComponents finds every component declaration in a parsed JS/TS
// source: function declarations, arrow assignments, and class declarations
// whose bodies produce JSX.
func extractComponents(ctx *extractionContext, root *sitter.Node) []*model.ComponentNode {
	var components []*model.ComponentNode
	walkDeclarations(ctx, root, &components)
	return components
}

func walkDeclarations(ctx *extractionContext, node *sitter.Node, out *[]*model.ComponentNode) {
	if node == nil {
		return
	}

	switch node.Kind() {
	case "function_declaration":
		if c := functionComponent(ctx, node); c != nil {
			*out = append(*out, c)
		}
		return
	case "class_declaration":
		if c := classComponent(ctx, node); c != nil {
			*out = append(*out, c)
		}
		return
	case "lexical_declaration", "variable_declaration":
		for i := uint(0); i < node.ChildCount(); i++ {
			child := node.Child(i)
			if child.Kind() != "variable_declarator" {
				continue
			}
			if c := arrowComponent(ctx, child); c != nil {
				*out = append(*out, c)
			}
		}
		return
	}

	for i := uint(0); i < node.ChildCount(); i++ {
		walkDeclarations(ctx, node.Child(i), out)
	}
}

func functionComponent(ctx *extractionContext, node *sitter.Node) *model.ComponentNode {
	body := node.ChildByFieldName("body")
	if !containsJSX(ctx, body) {
		return nil
	}
	name := ctx.text(node.ChildByFieldName("name"))
	c := &model.ComponentNode{
		ID:       nodeID(ctx.path, node),
		Kind:     model.FunctionComponent,
		Name:     name,
		Props:    extractProps(ctx, node.ChildByFieldName("parameters")),
		Location: ctx.location(node),
	}
	c.Body = collectJSXRoots(ctx, body, listContext{})
	return c
}

func arrowComponent(ctx *extractionContext, declarator *sitter.Node) *model.ComponentNode {
	value := declarator.ChildByFieldName("value")
	if value == nil {
		return nil
	}
	kind := value.Kind()
	if kind != "arrow_function" && kind != "function_expression" && kind != "function" {
		return nil
	}
	body := value.ChildByFieldName("body")
	if !containsJSX(ctx, body) {
		return nil
	}
	c := &model.ComponentNode{
		ID:       nodeID(ctx.path, declarator),
		Kind:     model.FunctionComponent,
		Name:     ctx.text(declarator.ChildByFieldName("name")),
		Props:    extractProps(ctx, value.ChildByFieldName("parameters")),
		Location: ctx.location(declarator),
	}
	c.Body = collectJSXRoots(ctx, body, listContext{})
	return c
}

func classComponent(ctx *extractionContext, node *sitter.Node) *model.ComponentNode {
	body := node.ChildByFieldName("body")
	if body == nil || !containsJSX(ctx, body) {
		return nil
	}

	c := &model.ComponentNode{
		ID:       nodeID(ctx.path, node),
		Kind:     model.ClassComponent,
		Name:     ctx.text(node.ChildByFieldName("name")),
		Location: ctx.location(node),
	}

	for i := uint(0); i < body.ChildCount(); i++ {
		member := body.Child(i)
		if member.Kind() != "method_definition" {
			continue
		}
		name := ctx.text(member.ChildByFieldName("name"))
		if lifecycleMethods[name] {
			c.UsesLifecycleMethods = true
		}
		if name == "render" {
			c.Body = collectJSXRoots(ctx, member.ChildByFieldName("body"), listContext{})
		}
	}
	if strings.Contains(ctx.text(body), ".bind(this)") {
		c.UsesThisBinding = true
	}
	return c
}

func extractProps(ctx *extractionContext, params *sitter.Node) []model.PropDecl {
	if params == nil {
		return nil
	}
	var props []model.PropDecl
	var collect func(node *sitter.Node)
	collect = func(node *sitter.Node) {
		if node == nil {
			return
		}
		switch node.Kind() {
		case "shorthand_property_identifier_pattern", "shorthand_property_identifier":
			props = append(props, model.PropDecl{Name: ctx.text(node)})
			return
		case "pair_pattern":
			key := node.ChildByFieldName("key")
			props = append(props, model.PropDecl{Name: ctx.text(key)})
			return
		case "object_assignment_pattern":
			left := node.ChildByFieldName("left")
			props = append(props, model.PropDecl{Name: ctx.text(left), HasDefault: true})
			return
		}
		for i := uint(0); i < node.ChildCount(); i++ {
			collect(node.Child(i))
		}
	}
	collect(params)
	return props
}

func containsJSX(ctx *extractionContext, node *sitter.Node) bool {
	if node == nil {
		return false
	}
	if jsxNodeKinds[node.Kind()] {
		return true
	}
	for i := uint(0); i < node.ChildCount(); i++ {
		if containsJSX(ctx, node.Child(i)) {
			return true
		}
	}
	return false
}

// listContext tracks whether the JSX being built is the body of a
// list-producing map call, and which parameter is the positional index.
type listContext struct {
	inList    bool
	indexName string
}

// collectJSXRoots gathers the outermost JSX productions under node, without
// descending into nested components.
func collectJSXRoots(ctx *extractionContext, node *sitter.Node, lc listContext) []*model.ElementNode {
	var roots []*model.ElementNode
	var walk func(n *sitter.Node)
	walk = func(n *sitter.Node) {
		if n == nil {
			return
		}
		if jsxNodeKinds[n.Kind()] {
			if el := buildElement(ctx, n, lc); el != nil {
				roots = append(roots, el)
			}
			return
		}
		for i := uint(0); i < n.ChildCount(); i++ {
			walk(n.Child(i))
		}
	}
	walk(node)
	return roots
}

func buildElement(ctx *extractionContext, node *sitter.Node, lc listContext) *model.ElementNode {
	el := &model.ElementNode{
		ID:              nodeID(ctx.path, node),
		InListRendering: lc.inList,
		Location:        ctx.location(node),
	}

	var attrSource *sitter.Node
	switch node.Kind() {
	case "jsx_fragment":
		el.Tag = "fragment"
		el.IsFragmentWrapper = true
	case "jsx_self_closing_element":
		el.Tag = ctx.text(node.ChildByFieldName("name"))
		attrSource = node
	case "jsx_element":
		opening := ctx.childOfKind(node, "jsx_opening_element")
		el.Tag = ctx.text(opening.ChildByFieldName("name"))
		attrSource = opening
	default:
		return nil
	}

	if attrSource != nil {
		for i := uint(0); i < attrSource.ChildCount(); i++ {
			attr := attrSource.Child(i)
			if attr.Kind() != "jsx_attribute" {
				continue
			}
			name, value := buildAttribute(ctx, attr, lc)
			if name == "key" {
				el.KeyValue = &value
				continue
			}
			el.Attributes = append(el.Attributes, model.Attribute{Name: name, Value: value})
		}
	}

	if node.Kind() == "jsx_element" {
		appendChildren(ctx, node, el, lc)
	}
	return el
}

func appendChildren(ctx *extractionContext, node *sitter.Node, el *model.ElementNode, lc listContext) {
	for i := uint(0); i < node.ChildCount(); i++ {
		child := node.Child(i)
		switch child.Kind() {
		case "jsx_element", "jsx_self_closing_element", "jsx_fragment":
			if sub := buildElement(ctx, child, listContext{}); sub != nil {
				el.Children = append(el.Children, sub)
			}
		case "jsx_text":
			text := strings.TrimSpace(ctx.text(child))
			if text != "" {
				el.Children = append(el.Children, model.TextLiteral{Value: text, Location: ctx.location(child)})
			}
		case "jsx_expression":
			appendExpressionChild(ctx, child, el)
		}
	}
}

// appendExpressionChild handles an embedded expression in element position.
// A `.map(...)` call marks the JSX inside its callback as list-rendered and
// records the callback's second parameter as the positional index.
func appendExpressionChild(ctx *extractionContext, expr *sitter.Node, el *model.ElementNode) {
	if call := findMapCall(ctx, expr); call != nil {
		callback := mapCallback(ctx, call)
		if callback != nil {
			lc := listContext{inList: true, indexName: callbackIndexParam(ctx, callback)}
			items := collectJSXRoots(ctx, callback.ChildByFieldName("body"), lc)
			for _, item := range items {
				el.Children = append(el.Children, item)
			}
			return
		}
	}

	text := strings.TrimSpace(strings.Trim(ctx.text(expr), "{}"))
	if text != "" {
		el.Children = append(el.Children, model.ExpressionRef{Expr: text, Location: ctx.location(expr)})
	}
}

func findMapCall(ctx *extractionContext, node *sitter.Node) *sitter.Node {
	if node == nil {
		return nil
	}
	if node.Kind() == "call_expression" {
		fn := node.ChildByFieldName("function")
		if fn != nil && fn.Kind() == "member_expression" {
			prop := fn.ChildByFieldName("property")
			if ctx.text(prop) == "map" {
				return node
			}
		}
	}
	for i := uint(0); i < node.ChildCount(); i++ {
		if found := findMapCall(ctx, node.Child(i)); found != nil {
			return found
		}
	}
	return nil
}

func mapCallback(ctx *extractionContext, call *sitter.Node) *sitter.Node {
	args := call.ChildByFieldName("arguments")
	if args == nil {
		return nil
	}
	for i := uint(0); i < args.ChildCount(); i++ {
		arg := args.Child(i)
		kind := arg.Kind()
		if kind == "arrow_function" || kind == "function_expression" || kind == "function" {
			return arg
		}
	}
	return nil
}

// callbackIndexParam returns the name of the callback's second parameter,
// which is the positional index in Array.prototype.map.
func callbackIndexParam(ctx *extractionContext, callback *sitter.Node) string {
	params := callback.ChildByFieldName("parameters")
	if params == nil {
		// Single-identifier arrow shorthand has no index parameter.
		return ""
	}
	seen := 0
	for i := uint(0); i < params.ChildCount(); i++ {
		p := params.Child(i)
		if p.Kind() != "identifier" && p.Kind() != "object_pattern" && p.Kind() != "required_parameter" {
			continue
		}
		seen++
		if seen == 2 {
			if p.Kind() == "required_parameter" {
				return ctx.text(p.ChildByFieldName("pattern"))
			}
			return ctx.text(p)
		}
	}
	return ""
}

func buildAttribute(ctx *extractionContext, attr *sitter.Node, lc listContext) (string, model.AttributeValue) {
	name := ""
	var valueNode *sitter.Node
	for i := uint(0); i < attr.ChildCount(); i++ {
		child := attr.Child(i)
		switch child.Kind() {
		case "property_identifier", "jsx_namespace_name", "identifier":
			if name == "" {
				name = ctx.text(child)
			}
		case "string", "jsx_expression":
			valueNode = child
		}
	}

	value := model.AttributeValue{Kind: model.AttrStringLiteral, Location: ctx.location(attr)}
	if valueNode == nil {
		// Bare boolean attribute.
		value.Raw = "true"
		return name, value
	}

	if valueNode.Kind() == "string" {
		raw := strings.Trim(ctx.text(valueNode), `"'`)
		value.Raw = raw
		if navigationAttrNames[name] {
			value.Kind = model.AttrURLReference
			value.Validated = isSafeLiteralURL(raw)
		}
		return name, value
	}

	// Expression value.
	inner := innerExpression(valueNode)
	text := strings.TrimSpace(strings.Trim(ctx.text(valueNode), "{}"))
	value.Raw = text

	switch {
	case name == "dangerouslySetInnerHTML":
		value.Kind = model.AttrRawHTMLInjection
		value.Sanitized = looksSanitized(text)
	case navigationAttrNames[name]:
		value.Kind = model.AttrURLReference
		value.Validated = looksValidatedURL(text)
	case inner != nil && (inner.Kind() == "arrow_function" || inner.Kind() == "function_expression" || inner.Kind() == "function"):
		value.Kind = model.AttrFunctionRef
	case strings.HasPrefix(name, "on") && inner != nil && inner.Kind() == "identifier":
		value.Kind = model.AttrFunctionRef
	default:
		value.Kind = model.AttrTemplateExpression
	}

	if name == "key" {
		value.IndexRef = isIndexReference(text, lc)
	}
	return name, value
}

func innerExpression(exprNode *sitter.Node) *sitter.Node {
	for i := uint(0); i < exprNode.ChildCount(); i++ {
		child := exprNode.Child(i)
		kind := child.Kind()
		if kind == "{" || kind == "}" {
			continue
		}
		return child
	}
	return nil
}

// isIndexReference reports whether a key expression resolves to the
// positional loop index: the map callback's index parameter, or one of the
// conventional bare index names when the callback is unknown.
func isIndexReference(expr string, lc listContext) bool {
	expr = strings.TrimSpace(expr)
	if lc.indexName != "" && expr == lc.indexName {
		return true
	}
	if lc.indexName == "" && (expr == "index" || expr == "i" || expr == "idx") {
		return true
	}
	return false
}

// looksSanitized checks the injected-HTML expression for a sanitizer call.
// Matching is heuristic by necessity; a custom sanitizer can be recognized
// by naming it with a "sanitize" prefix.
func looksSanitized(expr string) bool {
	lower := strings.ToLower(expr)
	return strings.Contains(lower, "sanitize") || strings.Contains(lower, "dompurify")
}

func looksValidatedURL(expr string) bool {
	lower := strings.ToLower(expr)
	if strings.Contains(lower, "validate") || strings.Contains(lower, "sanitize") {
		return true
	}
	// Template literals pinned to a safe scheme.
	return strings.HasPrefix(expr, "`https://") || strings.HasPrefix(expr, "`http://")
}

// isSafeLiteralURL accepts relative references, fragments, and the benign
// schemes; javascript: and data: URLs are the attack vectors the rule exists
// for.
func isSafeLiteralURL(raw string) bool {
	trimmed := strings.TrimSpace(strings.ToLower(raw))
	if trimmed == "" {
		return false
	}
	if strings.HasPrefix(trimmed, "javascript:") || strings.HasPrefix(trimmed, "data:") || strings.HasPrefix(trimmed, "vbscript:") {
		return false
	}
	if strings.HasPrefix(trimmed, "http://") || strings.HasPrefix(trimmed, "https://") ||
		strings.HasPrefix(trimmed, "mailto:") || strings.HasPrefix(trimmed, "tel:") {
		return true
	}
	// Scheme-less references are resolved against the document origin.
	return !strings.Contains(trimmed, ":")
}
