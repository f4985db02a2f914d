package uiplan

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
)

// ErrInvalidPlan is matched by every error Validate returns.
var ErrInvalidPlan = errors.New("invalid ui plan")

// ValidationError names the path of the first structural violation found.
type ValidationError struct {
	Path   string
	Reason string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("ui plan: %s: %s", e.Path, e.Reason)
}

// Is makes errors.Is(err, ErrInvalidPlan) hold for every ValidationError.
func (e *ValidationError) Is(target error) bool {
	return target == ErrInvalidPlan
}

func invalid(path, format string, args ...any) error {
	return &ValidationError{Path: path, Reason: fmt.Sprintf(format, args...)}
}

// Validate checks raw decoded JSON against the plan schema and returns the
// canonical Plan. It never returns a partial result.
//
// Two modes apply to different parts of the schema. Structure (layout and the
// node tree) is strict: the first violation fails the whole plan. The
// advisory change log is lenient: malformed entries are dropped silently.
func Validate(raw any) (Plan, error) {
	obj, ok := asObject(raw)
	if !ok {
		return Plan{}, invalid("plan", "must be an object")
	}

	summary, _ := obj["summary"].(string)

	layout, err := validateLayout(obj["layout"])
	if err != nil {
		return Plan{}, err
	}

	root, err := ValidateNode(obj["root"], "root")
	if err != nil {
		return Plan{}, err
	}

	return Plan{
		Summary: summary,
		Layout:  layout,
		Root:    root,
		Changes: filterChanges(obj["changes"]),
	}, nil
}

// ValidateJSON decodes data and validates the result. Numbers are kept as
// json.Number so their literal text survives into generated code.
func ValidateJSON(data []byte) (Plan, error) {
	raw, err := DecodeJSON(data)
	if err != nil {
		return Plan{}, invalid("plan", "malformed JSON: %v", err)
	}
	return Validate(raw)
}

// DecodeJSON decodes a single JSON value using json.Number for numbers.
func DecodeJSON(data []byte) (any, error) {
	dec := json.NewDecoder(bytes.NewReader(data))
	dec.UseNumber()
	var raw any
	if err := dec.Decode(&raw); err != nil {
		return nil, err
	}
	if dec.More() {
		return nil, errors.New("trailing data after JSON value")
	}
	return raw, nil
}

// validateLayout is strict: layoutStyle must be one of the four literals.
// hasSidebar and hasNavbar are kept only when they are literal booleans.
func validateLayout(raw any) (Layout, error) {
	obj, ok := asObject(raw)
	if !ok {
		return Layout{}, invalid("layout", "must be an object")
	}

	styleStr, _ := obj["layoutStyle"].(string)
	style := LayoutStyle(styleStr)
	if !style.Valid() {
		return Layout{}, invalid("layout.layoutStyle", "must be one of dashboard|form|table|custom")
	}

	return Layout{
		LayoutStyle: style,
		HasSidebar:  optionalBool(obj["hasSidebar"]),
		HasNavbar:   optionalBool(obj["hasNavbar"]),
	}, nil
}

// ValidateNode validates one node and, recursively, its children. path is
// used in error messages (root, root.children[0], ...).
func ValidateNode(raw any, path string) (Node, error) {
	obj, ok := asObject(raw)
	if !ok {
		return Node{}, invalid(path, "must be an object")
	}

	idStr, _ := obj["id"].(string)
	id := strings.TrimSpace(idStr)
	if id == "" {
		return Node{}, invalid(path, "missing a valid id")
	}

	kindStr, isString := obj["kind"].(string)
	kind := NodeKind(kindStr)
	if !isString || !kind.Valid() {
		return Node{}, invalid(path, "unsupported kind %q", fmt.Sprint(obj["kind"]))
	}

	props := map[string]any{}
	if p, ok := asObject(obj["props"]); ok {
		props = cloneProps(p)
	}

	node := Node{ID: id, Kind: kind, Props: props}

	if items, ok := obj["children"].([]any); ok && len(items) > 0 {
		node.Children = make([]Node, len(items))
		for i, item := range items {
			child, err := ValidateNode(item, fmt.Sprintf("%s.children[%d]", path, i))
			if err != nil {
				return Node{}, err
			}
			node.Children[i] = child
		}
	}

	return node, nil
}

// filterChanges is lenient: it keeps well-formed entries and drops the rest.
// A non-array value, or one with no surviving entry, yields nil.
func filterChanges(raw any) []Change {
	items, ok := raw.([]any)
	if !ok {
		return nil
	}

	changes := make([]Change, 0, len(items))
	for _, item := range items {
		obj, ok := asObject(item)
		if !ok {
			continue
		}
		kindStr, _ := obj["kind"].(string)
		kind := ChangeKind(kindStr)
		if !kind.Valid() {
			continue
		}
		desc, _ := obj["description"].(string)
		desc = strings.TrimSpace(desc)
		if desc == "" {
			continue
		}
		target, _ := obj["targetId"].(string)
		changes = append(changes, Change{Kind: kind, TargetID: target, Description: desc})
	}
	if len(changes) == 0 {
		return nil
	}
	return changes
}

func asObject(v any) (map[string]any, bool) {
	m, ok := v.(map[string]any)
	return m, ok && m != nil
}

func optionalBool(v any) *bool {
	b, ok := v.(bool)
	if !ok {
		return nil
	}
	return &b
}
