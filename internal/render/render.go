// Package render instantiates a validated UI plan as a tree of widget
// instances, mirroring the tags the code generator emits for the same plan.
package render

import (
	"github.com/felixgeelhaar/uiforge/internal/codegen"
	"github.com/felixgeelhaar/uiforge/internal/uiplan"
)

// Instance is one instantiated widget.
type Instance struct {
	Widget   Widget
	Kind     uiplan.NodeKind
	NodeID   string
	Props    map[string]any
	Children []*Instance
}

// Tree is the result of rendering a plan. Root is nil when the root node's
// kind has no widget.
type Tree struct {
	Root *Instance
}

// Render builds the instance tree for plan. Props are handed to each widget
// as they are in the plan; defaulting is the widget's concern.
func Render(plan uiplan.Plan) Tree {
	return Tree{Root: renderNode(plan.Root)}
}

func renderNode(n uiplan.Node) *Instance {
	w, ok := Lookup(n.Kind)
	if !ok {
		return nil
	}

	inst := &Instance{Widget: w, Kind: n.Kind, NodeID: n.ID, Props: n.Props}
	if !w.Container() {
		return inst
	}

	for _, child := range n.Children {
		if c := renderNode(child); c != nil {
			inst.Children = append(inst.Children, c)
		}
	}
	return inst
}

// Resolved returns the props the widget actually draws with: its defaults
// overlaid by the instance props.
func (i *Instance) Resolved() map[string]any {
	out := i.Widget.Defaults()
	for k, v := range i.Props {
		out[k] = v
	}
	return out
}

// Walk visits instances in pre-order with their depth.
func Walk(t Tree, fn func(inst *Instance, depth int)) {
	if t.Root == nil {
		return
	}
	walk(t.Root, 0, fn)
}

func walk(inst *Instance, depth int, fn func(*Instance, int)) {
	fn(inst, depth)
	for _, child := range inst.Children {
		walk(child, depth+1, fn)
	}
}

// OutlineEntry is the structural signature of one instance.
type OutlineEntry struct {
	Tag   string
	Depth int
	Props []string
}

// Outline flattens the tree into pre-order signatures. Prop keys are the
// ones that surface as attributes in generated code.
func Outline(t Tree) []OutlineEntry {
	var entries []OutlineEntry
	Walk(t, func(inst *Instance, depth int) {
		entries = append(entries, OutlineEntry{
			Tag:   inst.Widget.Name(),
			Depth: depth,
			Props: codegen.AttributeKeys(inst.Props),
		})
	})
	return entries
}
