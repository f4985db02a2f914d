package uiplan

import (
	"encoding/json"
	"errors"
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func mustDecode(t *testing.T, s string) any {
	t.Helper()
	raw, err := DecodeJSON([]byte(s))
	require.NoError(t, err)
	return raw
}

func TestValidate_Scenario(t *testing.T) {
	raw := mustDecode(t, `{
		"root": {"id": "r", "kind": "page", "children": [
			{"id": "b1", "kind": "button", "props": {"label": "Go"}}
		]},
		"layout": {"layoutStyle": "form"}
	}`)

	plan, err := Validate(raw)
	require.NoError(t, err)

	assert.Equal(t, "", plan.Summary)
	assert.Equal(t, LayoutForm, plan.Layout.LayoutStyle)
	assert.Nil(t, plan.Layout.HasSidebar)
	assert.Nil(t, plan.Layout.HasNavbar)
	assert.Nil(t, plan.Changes)

	assert.Equal(t, "r", plan.Root.ID)
	assert.Equal(t, KindPage, plan.Root.Kind)
	assert.Equal(t, map[string]any{}, plan.Root.Props)
	require.Len(t, plan.Root.Children, 1)
	assert.Equal(t, Node{ID: "b1", Kind: KindButton, Props: map[string]any{"label": "Go"}}, plan.Root.Children[0])
}

func TestValidate_SchemaClosure(t *testing.T) {
	for _, kind := range []any{"div", "Page", "grid", "", "empty_state", 42, nil, true} {
		raw := map[string]any{
			"layout": map[string]any{"layoutStyle": "custom"},
			"root": map[string]any{
				"id":       "r",
				"kind":     "page",
				"children": []any{map[string]any{"id": "x", "kind": kind}},
			},
		}

		_, err := Validate(raw)
		require.Error(t, err, "kind %v must be rejected", kind)
		assert.True(t, errors.Is(err, ErrInvalidPlan))

		var vErr *ValidationError
		require.True(t, errors.As(err, &vErr))
		assert.Equal(t, "root.children[0]", vErr.Path)
		assert.Contains(t, vErr.Reason, "unsupported kind")
	}
}

func TestValidate_AllKindsAccepted(t *testing.T) {
	for _, kind := range AllKinds() {
		raw := map[string]any{
			"layout": map[string]any{"layoutStyle": "dashboard"},
			"root":   map[string]any{"id": "n", "kind": string(kind)},
		}
		plan, err := Validate(raw)
		require.NoError(t, err, kind)
		assert.Equal(t, kind, plan.Root.Kind)
	}
	assert.Len(t, AllKinds(), 13)
}

func TestValidate_IDRequirement(t *testing.T) {
	tests := []struct {
		name string
		node map[string]any
	}{
		{name: "empty id", node: map[string]any{"id": "", "kind": "card"}},
		{name: "blank id", node: map[string]any{"id": "   ", "kind": "card"}},
		{name: "missing id", node: map[string]any{"kind": "card"}},
		{name: "numeric id", node: map[string]any{"id": 7, "kind": "card"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Validate(map[string]any{
				"layout": map[string]any{"layoutStyle": "form"},
				"root":   tt.node,
			})
			require.Error(t, err)
			assert.EqualError(t, err, "ui plan: root: missing a valid id")
		})
	}
}

func TestValidate_DefaultsPropsAndChildren(t *testing.T) {
	plan, err := Validate(map[string]any{
		"layout": map[string]any{"layoutStyle": "form"},
		"root":   map[string]any{"id": "  r  ", "kind": "section", "props": "nope"},
	})
	require.NoError(t, err)

	assert.Equal(t, "r", plan.Root.ID)
	assert.NotNil(t, plan.Root.Props)
	assert.Empty(t, plan.Root.Props)
	assert.Nil(t, plan.Root.Children)
}

func TestValidate_RecursiveRejection(t *testing.T) {
	raw := mustDecode(t, `{
		"layout": {"layoutStyle": "dashboard"},
		"root": {"id": "r", "kind": "page", "children": [
			{"id": "s", "kind": "stack", "children": [
				{"id": "ok", "kind": "button"},
				{"id": "bad", "kind": "carousel"}
			]}
		]}
	}`)

	plan, err := Validate(raw)
	require.Error(t, err)
	assert.Equal(t, Plan{}, plan)
	assert.EqualError(t, err, `ui plan: root.children[0].children[1]: unsupported kind "carousel"`)
}

func TestValidate_Layout(t *testing.T) {
	tests := []struct {
		name    string
		layout  any
		wantErr string
	}{
		{name: "missing", layout: nil, wantErr: "ui plan: layout: must be an object"},
		{name: "array", layout: []any{}, wantErr: "ui plan: layout: must be an object"},
		{name: "bad style", layout: map[string]any{"layoutStyle": "grid"}, wantErr: "ui plan: layout.layoutStyle: must be one of dashboard|form|table|custom"},
		{name: "missing style", layout: map[string]any{}, wantErr: "ui plan: layout.layoutStyle: must be one of dashboard|form|table|custom"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Validate(map[string]any{
				"layout": tt.layout,
				"root":   map[string]any{"id": "r", "kind": "page"},
			})
			assert.EqualError(t, err, tt.wantErr)
		})
	}
}

func TestValidate_LayoutFlagsCoerced(t *testing.T) {
	plan, err := Validate(map[string]any{
		"layout": map[string]any{"layoutStyle": "dashboard", "hasSidebar": "yes", "hasNavbar": false},
		"root":   map[string]any{"id": "r", "kind": "page"},
	})
	require.NoError(t, err)

	assert.Nil(t, plan.Layout.HasSidebar)
	require.NotNil(t, plan.Layout.HasNavbar)
	assert.False(t, *plan.Layout.HasNavbar)
}

func TestValidate_NotAnObject(t *testing.T) {
	for _, raw := range []any{nil, "plan", []any{}, 3.5} {
		_, err := Validate(raw)
		assert.EqualError(t, err, "ui plan: plan: must be an object")
	}
}

func TestValidate_SummaryDefaults(t *testing.T) {
	plan, err := Validate(map[string]any{
		"summary": 12,
		"layout":  map[string]any{"layoutStyle": "table"},
		"root":    map[string]any{"id": "r", "kind": "table"},
	})
	require.NoError(t, err)
	assert.Equal(t, "", plan.Summary)
}

func TestValidate_ChangesAreLenient(t *testing.T) {
	raw := mustDecode(t, `{
		"layout": {"layoutStyle": "form"},
		"root": {"id": "r", "kind": "page"},
		"changes": [
			{"kind": "add", "targetId": "b1", "description": "  added a button  "},
			{"kind": "rename", "description": "bad kind"},
			{"kind": "remove", "description": "   "},
			"not an object",
			{"kind": "update", "targetId": 4, "description": "tweaked"}
		]
	}`)

	plan, err := Validate(raw)
	require.NoError(t, err)
	assert.Equal(t, []Change{
		{Kind: ChangeAdd, TargetID: "b1", Description: "added a button"},
		{Kind: ChangeUpdate, Description: "tweaked"},
	}, plan.Changes)
}

func TestValidate_ChangesNotArray(t *testing.T) {
	plan, err := Validate(map[string]any{
		"layout":  map[string]any{"layoutStyle": "form"},
		"root":    map[string]any{"id": "r", "kind": "page"},
		"changes": "everything",
	})
	require.NoError(t, err)
	assert.Nil(t, plan.Changes)
}

func TestValidate_Idempotent(t *testing.T) {
	inputs := []string{
		`{"layout": {"layoutStyle": "form"}, "root": {"id": "r", "kind": "page"}}`,
		`{"summary": "dash", "layout": {"layoutStyle": "dashboard", "hasSidebar": true, "hasNavbar": "x"},
		  "root": {"id": " r ", "kind": "page", "props": {"title": "Ops", "n": 3, "nested": {"a": [1, "b", null]}},
		    "children": [{"id": "s", "kind": "sidebar", "children": []}, {"id": "c", "kind": "chart", "props": null}]},
		  "changes": [{"kind": "add", "description": "x"}, {"kind": "nope"}]}`,
		`{"layout": {"layoutStyle": "custom"}, "root": {"id": "b", "kind": "button", "children": [{"id": "ignored", "kind": "input"}]}, "changes": []}`,
	}

	for _, in := range inputs {
		first, err := Validate(mustDecode(t, in))
		require.NoError(t, err)

		second, err := Validate(ToRaw(first))
		require.NoError(t, err)
		assert.Equal(t, first, second)

		// Round trip through bytes as well.
		data, err := json.Marshal(first)
		require.NoError(t, err)
		third, err := ValidateJSON(data)
		require.NoError(t, err)
		assert.Equal(t, first, third)
	}
}

func TestValidate_EmptyChildrenCollapse(t *testing.T) {
	withEmpty, err := Validate(mustDecode(t, `{"layout": {"layoutStyle": "form"}, "root": {"id": "c", "kind": "card", "children": []}}`))
	require.NoError(t, err)
	without, err := Validate(mustDecode(t, `{"layout": {"layoutStyle": "form"}, "root": {"id": "c", "kind": "card"}}`))
	require.NoError(t, err)

	assert.Nil(t, withEmpty.Root.Children)
	assert.Equal(t, without, withEmpty)
}

func TestValidate_PropsReduceToJSONValues(t *testing.T) {
	plan, err := Validate(map[string]any{
		"layout": map[string]any{"layoutStyle": "form"},
		"root": map[string]any{"id": "b", "kind": "button", "props": map[string]any{
			"label":   "Go",
			"weight":  math.NaN(),
			"onClick": func() {},
			"tags":    []string{"a", "b"},
			"nested":  map[string]any{"ratio": math.Inf(-1), "ok": true},
			"count":   3,
		}},
	})
	require.NoError(t, err)

	assert.Equal(t, map[string]any{
		"label":  "Go",
		"tags":   []any{"a", "b"},
		"nested": map[string]any{"ratio": nil, "ok": true},
		"count":  3,
	}, plan.Root.Props)

	_, err = Fingerprint(plan)
	assert.NoError(t, err)
}

func TestValidate_DoesNotAliasInput(t *testing.T) {
	props := map[string]any{"label": "Go"}
	raw := map[string]any{
		"layout": map[string]any{"layoutStyle": "form"},
		"root":   map[string]any{"id": "b", "kind": "button", "props": props},
	}

	plan, err := Validate(raw)
	require.NoError(t, err)

	props["label"] = "Changed"
	assert.Equal(t, "Go", plan.Root.Props["label"])
}

func TestValidateJSON_Malformed(t *testing.T) {
	_, err := ValidateJSON([]byte(`{"layout": `))
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrInvalidPlan))
}
