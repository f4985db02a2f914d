// Package uiplan defines the UI plan schema: a closed vocabulary of node kinds,
// the plan envelope around a node tree, and the validator that turns arbitrary
// decoded JSON into a trusted Plan.
//
// Validation is the single authority for trust. Consumers of a validated Plan
// (the code generator, the renderer) never re-check kind membership.
package uiplan

import (
	"encoding/json"
	"math"
	"reflect"
)

// Node is one element of a plan tree. A node exclusively owns its children.
type Node struct {
	ID       string         `json:"id"`
	Kind     NodeKind       `json:"kind"`
	Props    map[string]any `json:"props"`
	Children []Node         `json:"children,omitempty"`
}

// Layout is advisory metadata; it is never enforced against the tree shape.
type Layout struct {
	LayoutStyle LayoutStyle `json:"layoutStyle"`
	HasSidebar  *bool       `json:"hasSidebar,omitempty"`
	HasNavbar   *bool       `json:"hasNavbar,omitempty"`
}

// Change is one entry of the advisory change log reported by the planner.
// It is not verified against the actual tree diff.
type Change struct {
	Kind        ChangeKind `json:"kind"`
	TargetID    string     `json:"targetId,omitempty"`
	Description string     `json:"description"`
}

// Plan is the root artifact of one generation step. Plans are values: every
// modification produces a new Plan.
type Plan struct {
	Summary string   `json:"summary"`
	Layout  Layout   `json:"layout"`
	Root    Node     `json:"root"`
	Changes []Change `json:"changes,omitempty"`
}

// ToRaw converts a plan back into the generic JSON shape accepted by Validate.
// Validate(ToRaw(p)) reproduces p for any validated plan.
func ToRaw(p Plan) map[string]any {
	layout := map[string]any{
		"layoutStyle": string(p.Layout.LayoutStyle),
	}
	if p.Layout.HasSidebar != nil {
		layout["hasSidebar"] = *p.Layout.HasSidebar
	}
	if p.Layout.HasNavbar != nil {
		layout["hasNavbar"] = *p.Layout.HasNavbar
	}

	raw := map[string]any{
		"summary": p.Summary,
		"layout":  layout,
		"root":    nodeToRaw(p.Root),
	}

	if p.Changes != nil {
		changes := make([]any, len(p.Changes))
		for i, c := range p.Changes {
			entry := map[string]any{
				"kind":        string(c.Kind),
				"description": c.Description,
			}
			if c.TargetID != "" {
				entry["targetId"] = c.TargetID
			}
			changes[i] = entry
		}
		raw["changes"] = changes
	}

	return raw
}

func nodeToRaw(n Node) map[string]any {
	raw := map[string]any{
		"id":    n.ID,
		"kind":  string(n.Kind),
		"props": cloneProps(n.Props),
	}
	if n.Children != nil {
		children := make([]any, len(n.Children))
		for i, child := range n.Children {
			children[i] = nodeToRaw(child)
		}
		raw["children"] = children
	}
	return raw
}

// jsonValue deep-copies v into the JSON value domain so validated plans
// never alias caller-owned maps or slices. The second result is false for
// values JSON cannot carry (NaN, infinities, funcs, channels, structs). Such
// elements of a list or object become null.
func jsonValue(v any) (any, bool) {
	switch val := v.(type) {
	case nil:
		return nil, true
	case string, bool, json.Number:
		return val, true
	case float64:
		return finiteOrNil(val)
	case float32:
		return finiteOrNil(float64(val))
	case map[string]any:
		return cloneObject(val), true
	case []any:
		out := make([]any, len(val))
		for i, item := range val {
			out[i], _ = jsonValue(item)
		}
		return out, true
	}

	rv := reflect.ValueOf(v)
	switch rv.Kind() {
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64,
		reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64:
		return v, true
	case reflect.Float32, reflect.Float64:
		return finiteOrNil(rv.Float())
	case reflect.String:
		return rv.String(), true
	case reflect.Bool:
		return rv.Bool(), true
	case reflect.Slice, reflect.Array:
		out := make([]any, rv.Len())
		for i := range out {
			out[i], _ = jsonValue(rv.Index(i).Interface())
		}
		return out, true
	case reflect.Map:
		if rv.Type().Key().Kind() != reflect.String {
			return nil, false
		}
		out := make(map[string]any, rv.Len())
		iter := rv.MapRange()
		for iter.Next() {
			out[iter.Key().String()], _ = jsonValue(iter.Value().Interface())
		}
		return out, true
	}
	return nil, false
}

func finiteOrNil(f float64) (any, bool) {
	if math.IsNaN(f) || math.IsInf(f, 0) {
		return nil, false
	}
	return f, true
}

// cloneObject copies a nested object; members with no JSON form become null.
func cloneObject(m map[string]any) map[string]any {
	out := make(map[string]any, len(m))
	for k, v := range m {
		out[k], _ = jsonValue(v)
	}
	return out
}

// cloneProps copies a props object, dropping members with no JSON form.
func cloneProps(m map[string]any) map[string]any {
	out := make(map[string]any, len(m))
	for k, v := range m {
		if val, ok := jsonValue(v); ok {
			out[k] = val
		}
	}
	return out
}
