package rules

import (
	"uilint/internal/engine/model"
)

// InternalRuleErrorID tags findings synthesized when a rule predicate fails
// internally. It is reserved and may not be used by catalog or extra rules.
const InternalRuleErrorID = "internal-rule-error"

// Finding is one reported violation. Immutable once created; the aggregator
// owns it for the remainder of the run.
type Finding struct {
	RuleID       string
	NodeID       string
	Severity     model.Severity
	Message      string
	SuggestedFix string
	Location     model.Location
}

// Rule is a stateless check. Check must be side-effect-free and
// order-independent; it returns nil when the node is clean. The walker stamps
// RuleID, Severity and Location onto the returned finding, so predicates only
// fill Message and SuggestedFix.
type Rule struct {
	ID        string
	Title     string
	Severity  model.Severity
	AppliesTo []model.NodeKind
	Check     func(model.NodeView) *Finding
}

func (r Rule) Applies(kind model.NodeKind) bool {
	for _, k := range r.AppliesTo {
		if k == kind {
			return true
		}
	}
	return false
}
