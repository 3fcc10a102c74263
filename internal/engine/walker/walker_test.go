package walker

import (
	"reflect"
	"sort"
	"testing"

	"uilint/internal/engine/model"
	"uilint/internal/engine/rules"
)

func resolveDefault(t *testing.T) []rules.Rule {
	t.Helper()
	active, err := rules.Resolve(rules.RegistryConfig{})
	if err != nil {
		t.Fatalf("resolve default registry: %v", err)
	}
	return active
}

func findingIDs(findings []rules.Finding) []string {
	ids := make([]string, 0, len(findings))
	for _, f := range findings {
		ids = append(ids, f.RuleID)
	}
	sort.Strings(ids)
	return ids
}

func TestWalk_ClassWithoutLifecycle(t *testing.T) {
	tree := &model.ComponentNode{
		ID:   "button",
		Kind: model.ClassComponent,
		Name: "Button",
	}

	findings := Walk(tree, resolveDefault(t))

	if len(findings) != 1 {
		t.Fatalf("expected 1 finding, got %d: %v", len(findings), findingIDs(findings))
	}
	if findings[0].RuleID != "prefer-function-component" {
		t.Fatalf("expected prefer-function-component, got %s", findings[0].RuleID)
	}
	if findings[0].Severity != model.SeverityWarning {
		t.Fatalf("expected warning severity, got %s", findings[0].Severity)
	}
}

func TestWalk_ClassWithLifecycleIsClean(t *testing.T) {
	tree := &model.ComponentNode{
		ID:                   "timer",
		Kind:                 model.ClassComponent,
		Name:                 "Timer",
		UsesLifecycleMethods: true,
	}

	if findings := Walk(tree, resolveDefault(t)); len(findings) != 0 {
		t.Fatalf("expected no findings, got %v", findingIDs(findings))
	}
}

func TestWalk_UnsanitizedRawHTML(t *testing.T) {
	tree := &model.ComponentNode{
		ID:   "page",
		Kind: model.FunctionComponent,
		Name: "Page",
		Body: []*model.ElementNode{
			{
				ID:  "div1",
				Tag: "div",
				Attributes: []model.Attribute{
					{
						Name:  "dangerouslySetInnerHTML",
						Value: model.AttributeValue{Kind: model.AttrRawHTMLInjection, Sanitized: false},
					},
				},
			},
		},
	}

	findings := Walk(tree, resolveDefault(t))

	if len(findings) != 1 {
		t.Fatalf("expected 1 finding, got %v", findingIDs(findings))
	}
	f := findings[0]
	if f.RuleID != "unsanitized-raw-html" || f.Severity != model.SeverityError {
		t.Fatalf("unexpected finding: %+v", f)
	}
}

func TestWalk_LowercaseComponentName(t *testing.T) {
	tree := &model.ComponentNode{ID: "login", Kind: model.FunctionComponent, Name: "login"}

	findings := Walk(tree, resolveDefault(t))

	ids := findingIDs(findings)
	if !reflect.DeepEqual(ids, []string{"pascal-case-component-name"}) {
		t.Fatalf("expected pascal-case-component-name, got %v", ids)
	}
}

func TestWalk_DuplicateLiteralSiblings(t *testing.T) {
	nav := &model.ElementNode{ID: "ul", Tag: "ul"}
	for i, label := range []string{"Home", "About", "Contact"} {
		nav.Children = append(nav.Children, &model.ElementNode{
			ID:       "li" + label,
			Tag:      "li",
			Location: model.Location{Line: i + 2},
			Children: []model.Child{model.TextLiteral{Value: label}},
		})
	}
	tree := &model.ComponentNode{
		ID:   "nav",
		Kind: model.FunctionComponent,
		Name: "Nav",
		Body: []*model.ElementNode{nav},
	}

	findings := Walk(tree, resolveDefault(t))

	dupes := 0
	for _, f := range findings {
		if f.RuleID == "duplicate-literal-siblings" {
			dupes++
		}
	}
	if dupes != 1 {
		t.Fatalf("expected exactly one duplicate-literal-siblings finding, got %d (%v)", dupes, findingIDs(findings))
	}
}

func TestWalk_EmptyBodyIsClean(t *testing.T) {
	tree := &model.ComponentNode{ID: "empty", Kind: model.FunctionComponent, Name: "Empty"}

	if findings := Walk(tree, resolveDefault(t)); len(findings) != 0 {
		t.Fatalf("expected no findings, got %v", findingIDs(findings))
	}
}

func TestWalk_IndexKey(t *testing.T) {
	tree := &model.ComponentNode{
		ID:   "list",
		Kind: model.FunctionComponent,
		Name: "List",
		Body: []*model.ElementNode{
			{
				ID:              "item",
				Tag:             "li",
				InListRendering: true,
				KeyValue:        &model.AttributeValue{Kind: model.AttrTemplateExpression, Raw: "index", IndexRef: true},
			},
		},
	}

	findings := Walk(tree, resolveDefault(t))

	ids := findingIDs(findings)
	if !reflect.DeepEqual(ids, []string{"no-index-as-key"}) {
		t.Fatalf("expected no-index-as-key, got %v", ids)
	}
}

func TestWalk_MissingListKey(t *testing.T) {
	tree := &model.ComponentNode{
		ID:   "list",
		Kind: model.FunctionComponent,
		Name: "List",
		Body: []*model.ElementNode{
			{ID: "item", Tag: "li", InListRendering: true},
		},
	}

	findings := Walk(tree, resolveDefault(t))

	ids := findingIDs(findings)
	if !reflect.DeepEqual(ids, []string{"missing-list-key"}) {
		t.Fatalf("expected missing-list-key, got %v", ids)
	}
}

func TestWalk_Idempotent(t *testing.T) {
	tree := &model.ComponentNode{
		ID:   "b",
		Kind: model.ClassComponent,
		Name: "badName",
		Body: []*model.ElementNode{
			{
				ID:  "a1",
				Tag: "a",
				Attributes: []model.Attribute{
					{Name: "href", Value: model.AttributeValue{Kind: model.AttrURLReference, Validated: false}},
				},
			},
		},
	}
	active := resolveDefault(t)

	first := Walk(tree, active)
	second := Walk(tree, active)

	if !reflect.DeepEqual(findingIDs(first), findingIDs(second)) {
		t.Fatalf("walks differ: %v vs %v", findingIDs(first), findingIDs(second))
	}
}

func TestWalk_DisabledRuleRemovesOnlyItsFindings(t *testing.T) {
	tree := &model.ComponentNode{
		ID:   "b",
		Kind: model.ClassComponent,
		Name: "badName",
		Body: []*model.ElementNode{
			{
				ID:  "a1",
				Tag: "a",
				Attributes: []model.Attribute{
					{Name: "href", Value: model.AttributeValue{Kind: model.AttrURLReference, Validated: false}},
				},
			},
		},
	}

	full := Walk(tree, resolveDefault(t))
	if len(full) < 2 {
		t.Fatalf("fixture must trigger several rules, got %v", findingIDs(full))
	}

	const disabled = "pascal-case-component-name"
	without, err := rules.Resolve(rules.RegistryConfig{DisabledRuleIDs: []string{disabled}})
	if err != nil {
		t.Fatalf("resolve with disabled rule: %v", err)
	}
	reduced := Walk(tree, without)

	var kept []rules.Finding
	for _, f := range full {
		if f.RuleID != disabled {
			kept = append(kept, f)
		}
	}
	if len(kept) == len(full) {
		t.Fatalf("fixture must trigger %s, got %v", disabled, findingIDs(full))
	}
	if !reflect.DeepEqual(reduced, kept) {
		t.Fatalf("disabling %s changed other findings:\n got %+v\nwant %+v", disabled, reduced, kept)
	}
}

func TestWalk_RuleOrderIndependent(t *testing.T) {
	tree := &model.ComponentNode{
		ID:   "c",
		Kind: model.ClassComponent,
		Name: "card",
	}
	active := resolveDefault(t)

	reversed := make([]rules.Rule, len(active))
	for i, r := range active {
		reversed[len(active)-1-i] = r
	}

	a := findingIDs(Walk(tree, active))
	b := findingIDs(Walk(tree, reversed))
	if !reflect.DeepEqual(a, b) {
		t.Fatalf("rule order changed findings: %v vs %v", a, b)
	}
}

func TestWalk_PanickingRuleIsIsolated(t *testing.T) {
	tree := &model.ComponentNode{ID: "x", Kind: model.ClassComponent, Name: "x"}

	active := resolveDefault(t)
	active = append([]rules.Rule{{
		ID:        "exploding-rule",
		Severity:  model.SeverityInfo,
		AppliesTo: []model.NodeKind{model.KindComponent},
		Check: func(model.NodeView) *rules.Finding {
			panic("boom")
		},
	}}, active...)

	findings := Walk(tree, active)

	var sawInternal, sawPrefer, sawPascal bool
	for _, f := range findings {
		switch f.RuleID {
		case rules.InternalRuleErrorID:
			sawInternal = true
			if f.Severity != model.SeverityError {
				t.Fatalf("internal-rule-error must be error severity, got %s", f.Severity)
			}
		case "prefer-function-component":
			sawPrefer = true
		case "pascal-case-component-name":
			sawPascal = true
		}
	}
	if !sawInternal {
		t.Fatal("expected internal-rule-error finding for panicking rule")
	}
	if !sawPrefer || !sawPascal {
		t.Fatalf("panicking rule suppressed other findings: %v", findingIDs(findings))
	}
}
