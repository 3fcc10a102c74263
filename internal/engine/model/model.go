package model

// Structural model of one UI component declaration. Trees are built by the
// parser frontend and are read-only for the rest of a run.

type ComponentKind int

const (
	FunctionComponent ComponentKind = iota
	ClassComponent
)

func (k ComponentKind) String() string {
	if k == ClassComponent {
		return "class"
	}
	return "function"
}

type NodeKind int

const (
	KindComponent NodeKind = iota
	KindElement
)

type Severity int

const (
	SeverityInfo Severity = iota
	SeverityWarning
	SeverityError
)

func (s Severity) String() string {
	switch s {
	case SeverityError:
		return "error"
	case SeverityWarning:
		return "warning"
	default:
		return "info"
	}
}

// ParseSeverity maps a config string to a Severity. The bool reports whether
// the input was recognized.
func ParseSeverity(s string) (Severity, bool) {
	switch s {
	case "info":
		return SeverityInfo, true
	case "warning", "warn":
		return SeverityWarning, true
	case "error":
		return SeverityError, true
	}
	return SeverityInfo, false
}

type Location struct {
	File   string
	Line   int
	Column int
}

type ComponentNode struct {
	ID                   string
	Kind                 ComponentKind
	Name                 string
	Props                []PropDecl
	Body                 []*ElementNode
	UsesLifecycleMethods bool
	UsesThisBinding      bool
	Location             Location
}

type PropDecl struct {
	Name       string
	HasDefault bool
}

type ElementNode struct {
	ID                string
	Tag               string
	Attributes        []Attribute // ordered; names unique
	Children          []Child
	IsFragmentWrapper bool
	KeyValue          *AttributeValue
	// InListRendering marks an element produced per item of a repeated
	// construct (a map/loop body), which is when a key is required.
	InListRendering bool
	Location        Location
}

// Attribute lookup by name. Returns nil when absent.
func (e *ElementNode) Attribute(name string) *AttributeValue {
	for i := range e.Attributes {
		if e.Attributes[i].Name == name {
			return &e.Attributes[i].Value
		}
	}
	return nil
}

// ChildElements returns only the element children, preserving order.
func (e *ElementNode) ChildElements() []*ElementNode {
	out := make([]*ElementNode, 0, len(e.Children))
	for _, c := range e.Children {
		if el, ok := c.(*ElementNode); ok {
			out = append(out, el)
		}
	}
	return out
}

// Child is one entry of an element body: a nested element, a text literal,
// or an embedded expression.
type Child interface {
	isChild()
}

func (*ElementNode) isChild() {}

type TextLiteral struct {
	Value    string
	Location Location
}

func (TextLiteral) isChild() {}

type ExpressionRef struct {
	Expr     string
	Location Location
}

func (ExpressionRef) isChild() {}

type AttrKind int

const (
	AttrStringLiteral AttrKind = iota
	AttrTemplateExpression
	AttrFunctionRef
	AttrRawHTMLInjection
	AttrURLReference
)

type Attribute struct {
	Name  string
	Value AttributeValue
}

// AttributeValue is a tagged variant; Sanitized is meaningful only for
// AttrRawHTMLInjection, Validated only for AttrURLReference, IndexRef only
// for key values resolved during parsing.
type AttributeValue struct {
	Kind      AttrKind
	Raw       string
	Sanitized bool
	Validated bool
	IndexRef  bool
	Location  Location
}
