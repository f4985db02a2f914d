package uiplan

// NodeKind identifies which widget a plan node lowers to. The set is closed:
// no value outside AllKinds is ever valid anywhere in a tree.
type NodeKind string

const (
	KindPage       NodeKind = "page"
	KindStack      NodeKind = "stack"
	KindSection    NodeKind = "section"
	KindSidebar    NodeKind = "sidebar"
	KindNavbar     NodeKind = "navbar"
	KindCard       NodeKind = "card"
	KindButton     NodeKind = "button"
	KindInput      NodeKind = "input"
	KindTextarea   NodeKind = "textarea"
	KindTable      NodeKind = "table"
	KindEmptyState NodeKind = "empty-state"
	KindChart      NodeKind = "chart"
	KindModal      NodeKind = "modal"
)

var allKinds = []NodeKind{
	KindPage,
	KindStack,
	KindSection,
	KindSidebar,
	KindNavbar,
	KindCard,
	KindButton,
	KindInput,
	KindTextarea,
	KindTable,
	KindEmptyState,
	KindChart,
	KindModal,
}

// AllKinds returns every supported node kind in declaration order.
func AllKinds() []NodeKind {
	out := make([]NodeKind, len(allKinds))
	copy(out, allKinds)
	return out
}

// Valid reports whether k is one of the supported kinds.
func (k NodeKind) Valid() bool {
	switch k {
	case KindPage, KindStack, KindSection, KindSidebar, KindNavbar, KindCard,
		KindButton, KindInput, KindTextarea, KindTable, KindEmptyState, KindChart, KindModal:
		return true
	}
	return false
}

// IsContainer reports whether nodes of this kind render their children.
// Leaf kinds ignore any children present on the node.
func (k NodeKind) IsContainer() bool {
	switch k {
	case KindPage, KindStack, KindSection, KindSidebar, KindCard:
		return true
	}
	return false
}

func (k NodeKind) String() string { return string(k) }

// LayoutStyle is the advisory layout hint attached to a plan.
type LayoutStyle string

const (
	LayoutDashboard LayoutStyle = "dashboard"
	LayoutForm      LayoutStyle = "form"
	LayoutTable     LayoutStyle = "table"
	LayoutCustom    LayoutStyle = "custom"
)

// Valid reports whether s is one of the four layout styles.
func (s LayoutStyle) Valid() bool {
	switch s {
	case LayoutDashboard, LayoutForm, LayoutTable, LayoutCustom:
		return true
	}
	return false
}

// ChangeKind classifies an entry of the advisory change log.
type ChangeKind string

const (
	ChangeAdd    ChangeKind = "add"
	ChangeRemove ChangeKind = "remove"
	ChangeUpdate ChangeKind = "update"
)

// Valid reports whether c is add, remove or update.
func (c ChangeKind) Valid() bool {
	switch c {
	case ChangeAdd, ChangeRemove, ChangeUpdate:
		return true
	}
	return false
}
