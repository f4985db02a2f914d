package uiplan

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCanonicalize_SortedKeys(t *testing.T) {
	plan := Plan{
		Layout: Layout{LayoutStyle: LayoutForm},
		Root:   Node{ID: "b", Kind: KindButton, Props: map[string]any{"z": 1, "a": "x"}},
	}

	canonical, err := Canonicalize(plan)
	require.NoError(t, err)
	assert.Equal(t,
		`{"layout":{"layoutStyle":"form"},"root":{"id":"b","kind":"button","props":{"a":"x","z":1}},"summary":""}`,
		string(canonical))
}

func TestFingerprint(t *testing.T) {
	a := Plan{Layout: Layout{LayoutStyle: LayoutForm}, Root: Node{ID: "r", Kind: KindPage, Props: map[string]any{}}}
	b := Plan{Layout: Layout{LayoutStyle: LayoutForm}, Root: Node{ID: "r", Kind: KindPage, Props: map[string]any{}}}
	c := Plan{Layout: Layout{LayoutStyle: LayoutTable}, Root: Node{ID: "r", Kind: KindPage, Props: map[string]any{}}}

	fa, err := Fingerprint(a)
	require.NoError(t, err)
	fb, err := Fingerprint(b)
	require.NoError(t, err)
	fc, err := Fingerprint(c)
	require.NoError(t, err)

	assert.Equal(t, fa, fb)
	assert.NotEqual(t, fa, fc)
	assert.Len(t, fa, 64)
}
