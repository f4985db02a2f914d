package render

import (
	"github.com/felixgeelhaar/uiforge/internal/codegen"
	"github.com/felixgeelhaar/uiforge/internal/uiplan"
)

// Widget describes one component of the fixed widget set.
type Widget interface {
	// Name is the component tag, identical to the generated code's tag.
	Name() string
	// Container reports whether the widget renders children.
	Container() bool
	// Defaults are applied by the widget for props the plan leaves unset.
	Defaults() map[string]any
}

type widget struct {
	name      string
	container bool
	defaults  map[string]any
}

func (w widget) Name() string    { return w.name }
func (w widget) Container() bool { return w.container }

func (w widget) Defaults() map[string]any {
	out := make(map[string]any, len(w.defaults))
	for k, v := range w.defaults {
		out[k] = v
	}
	return out
}

var widgetDefaults = map[uiplan.NodeKind]map[string]any{
	uiplan.KindStack:  {"direction": "vertical", "gap": "md"},
	uiplan.KindButton: {"variant": "primary", "size": "md"},
	uiplan.KindInput:  {"type": "text"},
	uiplan.KindTable:  {"columns": []any{}, "rows": []any{}, "emptyMessage": "No data"},
	uiplan.KindChart:  {"series": []any{}},
	uiplan.KindModal:  {"triggerLabel": "Open"},
}

var registry = buildRegistry()

func buildRegistry() map[uiplan.NodeKind]Widget {
	widgets := make(map[uiplan.NodeKind]Widget, len(uiplan.AllKinds()))
	for _, kind := range uiplan.AllKinds() {
		tag, ok := codegen.TagFor(kind)
		if !ok {
			continue
		}
		widgets[kind] = widget{
			name:      tag,
			container: kind.IsContainer(),
			defaults:  widgetDefaults[kind],
		}
	}
	return widgets
}

// Lookup returns the widget a node kind instantiates.
func Lookup(kind uiplan.NodeKind) (Widget, bool) {
	w, ok := registry[kind]
	return w, ok
}
