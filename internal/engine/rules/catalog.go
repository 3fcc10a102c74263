package rules

import (
	"fmt"
	"strings"
	"unicode"
	"unicode/utf8"

	"uilint/internal/engine/model"
)

// DefaultDuplicateLiteralThreshold is the minimum run of near-identical
// siblings before duplicate-literal-siblings fires.
const DefaultDuplicateLiteralThreshold = 3

type CatalogOptions struct {
	// DuplicateLiteralThreshold overrides the sibling count needed for
	// duplicate-literal-siblings. Zero keeps the default.
	DuplicateLiteralThreshold int
}

// navigationAttrs are attribute names whose values cause navigation or
// resource fetches and therefore need protocol validation.
var navigationAttrs = map[string]bool{
	"href":       true,
	"src":        true,
	"action":     true,
	"formAction": true,
	"to":         true,
}

// Catalog returns the built-in rule set in its canonical order.
func Catalog(opts CatalogOptions) []Rule {
	threshold := opts.DuplicateLiteralThreshold
	if threshold <= 0 {
		threshold = DefaultDuplicateLiteralThreshold
	}

	return []Rule{
		{
			ID:        "prefer-function-component",
			Title:     "Class component could be a function component",
			Severity:  model.SeverityWarning,
			AppliesTo: []model.NodeKind{model.KindComponent},
			Check:     checkPreferFunctionComponent,
		},
		{
			ID:        "pascal-case-component-name",
			Title:     "Component names use PascalCase",
			Severity:  model.SeverityWarning,
			AppliesTo: []model.NodeKind{model.KindComponent},
			Check:     checkPascalCaseName,
		},
		{
			ID:        "no-index-as-key",
			Title:     "List keys must not be positional indexes",
			Severity:  model.SeverityWarning,
			AppliesTo: []model.NodeKind{model.KindElement},
			Check:     checkNoIndexAsKey,
		},
		{
			ID:        "missing-list-key",
			Title:     "List-rendered elements need a key",
			Severity:  model.SeverityWarning,
			AppliesTo: []model.NodeKind{model.KindElement},
			Check:     checkMissingListKey,
		},
		{
			ID:        "unsanitized-raw-html",
			Title:     "Raw HTML injection without sanitization",
			Severity:  model.SeverityError,
			AppliesTo: []model.NodeKind{model.KindElement},
			Check:     checkUnsanitizedRawHTML,
		},
		{
			ID:        "unvalidated-url-reference",
			Title:     "Navigation URL without protocol validation",
			Severity:  model.SeverityError,
			AppliesTo: []model.NodeKind{model.KindElement},
			Check:     checkUnvalidatedURL,
		},
		{
			ID:        "redundant-wrapper-element",
			Title:     "Wrapper element adds nothing over a fragment",
			Severity:  model.SeverityInfo,
			AppliesTo: []model.NodeKind{model.KindElement},
			Check:     checkRedundantWrapper,
		},
		{
			ID:        "duplicate-literal-siblings",
			Title:     "Repeated literal markup should be a loop",
			Severity:  model.SeverityInfo,
			AppliesTo: []model.NodeKind{model.KindElement},
			Check:     duplicateLiteralCheck(threshold),
		},
	}
}

func checkPreferFunctionComponent(v model.NodeView) *Finding {
	c := v.Component
	if c == nil || c.Kind != model.ClassComponent || c.UsesLifecycleMethods {
		return nil
	}
	return &Finding{
		Message:      fmt.Sprintf("class component %q uses no lifecycle methods and could be a function component", c.Name),
		SuggestedFix: fmt.Sprintf("rewrite %q as a function component", c.Name),
	}
}

func checkPascalCaseName(v model.NodeView) *Finding {
	c := v.Component
	if c == nil || c.Name == "" {
		return nil
	}
	first, size := utf8.DecodeRuneInString(c.Name)
	if unicode.IsUpper(first) {
		return nil
	}
	renamed := string(unicode.ToUpper(first)) + c.Name[size:]
	return &Finding{
		Message:      fmt.Sprintf("component name %q does not start with an uppercase letter", c.Name),
		SuggestedFix: fmt.Sprintf("rename to %q", renamed),
	}
}

func checkNoIndexAsKey(v model.NodeView) *Finding {
	e := v.Element
	if e == nil || !e.InListRendering || e.KeyValue == nil || !e.KeyValue.IndexRef {
		return nil
	}
	return &Finding{
		Message:      fmt.Sprintf("<%s> derives its key from the positional loop index", e.Tag),
		SuggestedFix: "key on a stable identifier from the item itself",
	}
}

func checkMissingListKey(v model.NodeView) *Finding {
	e := v.Element
	if e == nil || !e.InListRendering || e.KeyValue != nil {
		return nil
	}
	return &Finding{
		Message:      fmt.Sprintf("<%s> is rendered per list item but has no key", e.Tag),
		SuggestedFix: "add a key attribute with a stable identifier",
	}
}

func checkUnsanitizedRawHTML(v model.NodeView) *Finding {
	e := v.Element
	if e == nil {
		return nil
	}
	for _, attr := range e.Attributes {
		if attr.Value.Kind == model.AttrRawHTMLInjection && !attr.Value.Sanitized {
			return &Finding{
				Message:      fmt.Sprintf("<%s> injects raw HTML via %s without sanitization", e.Tag, attr.Name),
				SuggestedFix: "pass the value through an HTML sanitizer before injection",
			}
		}
	}
	return nil
}

func checkUnvalidatedURL(v model.NodeView) *Finding {
	e := v.Element
	if e == nil {
		return nil
	}
	for _, attr := range e.Attributes {
		if !navigationAttrs[attr.Name] {
			continue
		}
		if attr.Value.Kind == model.AttrURLReference && !attr.Value.Validated {
			return &Finding{
				Message:      fmt.Sprintf("<%s %s> uses a URL whose protocol is not validated", e.Tag, attr.Name),
				SuggestedFix: "validate the URL scheme (http/https/mailto/relative) before rendering",
			}
		}
	}
	return nil
}

func checkRedundantWrapper(v model.NodeView) *Finding {
	e := v.Element
	if e == nil || v.IsRoot || e.IsFragmentWrapper {
		return nil
	}
	if len(e.Attributes) != 0 || e.KeyValue != nil {
		return nil
	}
	if len(e.Children) != 1 {
		return nil
	}
	if _, ok := e.Children[0].(*model.ElementNode); !ok {
		return nil
	}
	return &Finding{
		Message:      fmt.Sprintf("<%s> wraps a single child and carries no attributes", e.Tag),
		SuggestedFix: "drop the wrapper or replace it with a fragment",
	}
}

// duplicateLiteralCheck fires once per group, on the group's first element,
// when threshold-or-more siblings share tag and attribute shape and differ
// only in a single text literal child.
func duplicateLiteralCheck(threshold int) func(model.NodeView) *Finding {
	return func(v model.NodeView) *Finding {
		e := v.Element
		if e == nil || len(v.Siblings) < threshold {
			return nil
		}
		if !singleLiteralChild(e) {
			return nil
		}
		sig := literalSiblingSignature(e)
		group := make([]*model.ElementNode, 0, len(v.Siblings))
		for _, s := range v.Siblings {
			if singleLiteralChild(s) && literalSiblingSignature(s) == sig {
				group = append(group, s)
			}
		}
		if len(group) < threshold || group[0] != e {
			return nil
		}
		return &Finding{
			Message:      fmt.Sprintf("%d sibling <%s> elements differ only in their text literal", len(group), e.Tag),
			SuggestedFix: "render the literals from a collection with a single loop",
		}
	}
}

func singleLiteralChild(e *model.ElementNode) bool {
	if e == nil || len(e.Children) != 1 {
		return false
	}
	_, ok := e.Children[0].(model.TextLiteral)
	return ok
}

// literalSiblingSignature captures everything about an element except its
// text literal, so equal signatures mean "differ only in the literal".
func literalSiblingSignature(e *model.ElementNode) string {
	var b strings.Builder
	b.WriteString(e.Tag)
	for _, attr := range e.Attributes {
		b.WriteByte('|')
		b.WriteString(attr.Name)
		b.WriteByte('=')
		b.WriteString(attr.Value.Raw)
	}
	return b.String()
}
