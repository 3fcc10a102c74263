package walker

import (
	"fmt"

	"uilint/internal/engine/model"
	"uilint/internal/engine/rules"
)

// Walk runs every applicable rule at every node of the tree in a single
// pre-order depth-first pass. Rules are invoked in registry order; each node
// is visited exactly once and no rule can re-enter the traversal, which
// keeps cost at O(nodes x applicable rules) and makes the collected set
// independent of rule order.
func Walk(tree *model.ComponentNode, ruleSet []rules.Rule) []rules.Finding {
	if tree == nil {
		return nil
	}

	w := &walker{rules: ruleSet}
	w.visit(model.NodeView{Component: tree})

	for _, root := range tree.Body {
		w.element(tree, root, nil, tree.Body, true)
	}
	return w.findings
}

type walker struct {
	rules    []rules.Rule
	findings []rules.Finding
}

func (w *walker) element(comp *model.ComponentNode, el *model.ElementNode, parent *model.ElementNode, parentChildren []*model.ElementNode, isRoot bool) {
	w.visit(model.NodeView{
		Component: comp,
		Element:   el,
		Parent:    parent,
		Siblings:  parentChildren,
		IsRoot:    isRoot,
	})

	children := el.ChildElements()
	for _, child := range children {
		w.element(comp, child, el, children, false)
	}
}

func (w *walker) visit(view model.NodeView) {
	kind := view.Kind()
	for _, rule := range w.rules {
		if !rule.Applies(kind) {
			continue
		}
		if f := w.apply(rule, view); f != nil {
			w.findings = append(w.findings, *f)
		}
	}
}

// apply invokes one rule predicate, converting a panic into an
// internal-rule-error finding so one misbehaving rule cannot take down the
// walk or suppress findings from others.
func (w *walker) apply(rule rules.Rule, view model.NodeView) (out *rules.Finding) {
	defer func() {
		if r := recover(); r != nil {
			out = &rules.Finding{
				RuleID:   rules.InternalRuleErrorID,
				NodeID:   view.NodeID(),
				Severity: model.SeverityError,
				Message:  fmt.Sprintf("rule %q failed at node %s: %v", rule.ID, view.NodeID(), r),
				Location: view.Location(),
			}
		}
	}()

	f := rule.Check(view)
	if f == nil {
		return nil
	}
	stamped := *f
	stamped.RuleID = rule.ID
	stamped.NodeID = view.NodeID()
	stamped.Severity = rule.Severity
	stamped.Location = view.Location()
	return &stamped
}
