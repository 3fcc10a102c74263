package model

// NodeView is what a rule gets to see at each visited node: the node itself
// plus a bounded window of context (enclosing component, parent element,
// sibling elements). Views are constructed by the walker; rules never reach
// outside the view.
type NodeView struct {
	Component *ComponentNode
	// Element is nil when the view is positioned on the component node
	// itself rather than on a markup element.
	Element  *ElementNode
	Parent   *ElementNode
	Siblings []*ElementNode // element siblings including Element, in order
	IsRoot   bool           // Element is a direct body root of Component
}

func (v NodeView) Kind() NodeKind {
	if v.Element == nil {
		return KindComponent
	}
	return KindElement
}

func (v NodeView) NodeID() string {
	if v.Element != nil {
		return v.Element.ID
	}
	if v.Component != nil {
		return v.Component.ID
	}
	return ""
}

func (v NodeView) Location() Location {
	if v.Element != nil {
		return v.Element.Location
	}
	if v.Component != nil {
		return v.Component.Location
	}
	return Location{}
}
