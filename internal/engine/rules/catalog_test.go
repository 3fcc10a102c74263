package rules

import (
	"testing"

	"uilint/internal/engine/model"
)

func TestCheckUnvalidatedURL(t *testing.T) {
	cases := []struct {
		name  string
		attr  model.Attribute
		fires bool
	}{
		{
			name: "unvalidated href",
			attr: model.Attribute{
				Name:  "href",
				Value: model.AttributeValue{Kind: model.AttrURLReference, Validated: false},
			},
			fires: true,
		},
		{
			name: "validated href",
			attr: model.Attribute{
				Name:  "href",
				Value: model.AttributeValue{Kind: model.AttrURLReference, Validated: true},
			},
			fires: false,
		},
		{
			name: "non-navigation attribute ignored",
			attr: model.Attribute{
				Name:  "title",
				Value: model.AttributeValue{Kind: model.AttrURLReference, Validated: false},
			},
			fires: false,
		},
		{
			name: "plain string href ignored",
			attr: model.Attribute{
				Name:  "href",
				Value: model.AttributeValue{Kind: model.AttrStringLiteral, Raw: "/home"},
			},
			fires: false,
		},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			el := &model.ElementNode{ID: "a", Tag: "a", Attributes: []model.Attribute{tc.attr}}
			f := checkUnvalidatedURL(model.NodeView{Element: el})
			if (f != nil) != tc.fires {
				t.Fatalf("fires=%v, want %v", f != nil, tc.fires)
			}
		})
	}
}

func TestCheckRedundantWrapper(t *testing.T) {
	inner := &model.ElementNode{ID: "span", Tag: "span"}
	wrapper := &model.ElementNode{ID: "div", Tag: "div", Children: []model.Child{inner}}

	if f := checkRedundantWrapper(model.NodeView{Element: wrapper}); f == nil {
		t.Fatal("bare single-child wrapper should fire")
	}

	if f := checkRedundantWrapper(model.NodeView{Element: wrapper, IsRoot: true}); f != nil {
		t.Fatal("tree root is exempt")
	}

	withAttr := &model.ElementNode{
		ID:         "div2",
		Tag:        "div",
		Attributes: []model.Attribute{{Name: "className", Value: model.AttributeValue{Raw: "box"}}},
		Children:   []model.Child{inner},
	}
	if f := checkRedundantWrapper(model.NodeView{Element: withAttr}); f != nil {
		t.Fatal("wrapper with attributes is not redundant")
	}

	textWrapper := &model.ElementNode{
		ID:       "p",
		Tag:      "p",
		Children: []model.Child{model.TextLiteral{Value: "hello"}},
	}
	if f := checkRedundantWrapper(model.NodeView{Element: textWrapper}); f != nil {
		t.Fatal("text container is not a redundant wrapper")
	}

	keyed := &model.ElementNode{
		ID:       "k",
		Tag:      "div",
		KeyValue: &model.AttributeValue{Raw: "id"},
		Children: []model.Child{inner},
	}
	if f := checkRedundantWrapper(model.NodeView{Element: keyed}); f != nil {
		t.Fatal("keyed wrapper carries list identity and stays")
	}
}

func TestCheckPreferFunctionComponent(t *testing.T) {
	class := &model.ComponentNode{Kind: model.ClassComponent, Name: "Button"}
	if f := checkPreferFunctionComponent(model.NodeView{Component: class}); f == nil {
		t.Fatal("plain class component should fire")
	}

	withLifecycle := &model.ComponentNode{Kind: model.ClassComponent, Name: "Timer", UsesLifecycleMethods: true}
	if f := checkPreferFunctionComponent(model.NodeView{Component: withLifecycle}); f != nil {
		t.Fatal("lifecycle methods keep the class form")
	}

	fn := &model.ComponentNode{Kind: model.FunctionComponent, Name: "Button"}
	if f := checkPreferFunctionComponent(model.NodeView{Component: fn}); f != nil {
		t.Fatal("function component should not fire")
	}
}

func TestCheckPascalCaseName(t *testing.T) {
	lower := &model.ComponentNode{Kind: model.FunctionComponent, Name: "login"}
	f := checkPascalCaseName(model.NodeView{Component: lower})
	if f == nil {
		t.Fatal("lowercase name should fire")
	}
	if f.SuggestedFix != `rename to "Login"` {
		t.Fatalf("unexpected fix text: %q", f.SuggestedFix)
	}

	upper := &model.ComponentNode{Kind: model.FunctionComponent, Name: "Login"}
	if f := checkPascalCaseName(model.NodeView{Component: upper}); f != nil {
		t.Fatal("PascalCase name should not fire")
	}

	accented := &model.ComponentNode{Kind: model.FunctionComponent, Name: "élan"}
	f = checkPascalCaseName(model.NodeView{Component: accented})
	if f == nil {
		t.Fatal("lowercase multibyte initial should fire")
	}
	if f.SuggestedFix != `rename to "Élan"` {
		t.Fatalf("unexpected fix text: %q", f.SuggestedFix)
	}
}

func TestDuplicateLiteralSignatureRespectsAttributes(t *testing.T) {
	rule := findRule(t, Catalog(CatalogOptions{}), "duplicate-literal-siblings")

	siblings := []*model.ElementNode{
		{ID: "a", Tag: "li", Children: []model.Child{model.TextLiteral{Value: "Home"}}},
		{
			ID:         "b",
			Tag:        "li",
			Attributes: []model.Attribute{{Name: "className", Value: model.AttributeValue{Raw: "active"}}},
			Children:   []model.Child{model.TextLiteral{Value: "About"}},
		},
		{ID: "c", Tag: "li", Children: []model.Child{model.TextLiteral{Value: "Contact"}}},
	}
	view := model.NodeView{Element: siblings[0], Siblings: siblings}
	if f := rule.Check(view); f != nil {
		t.Fatal("siblings differing beyond the literal must not fire")
	}
}
