package uiplan

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func sampleTree() Node {
	return Node{ID: "a", Kind: KindPage, Children: []Node{
		{ID: "b", Kind: KindStack, Children: []Node{
			{ID: "c", Kind: KindButton},
			{ID: "b", Kind: KindInput},
		}},
		{ID: "d", Kind: KindTable},
	}}
}

func TestIDs_PreOrder(t *testing.T) {
	assert.Equal(t, []string{"a", "b", "c", "b", "d"}, IDs(sampleTree()))
}

func TestDuplicateIDs(t *testing.T) {
	assert.Equal(t, []string{"b"}, DuplicateIDs(sampleTree()))
	assert.Empty(t, DuplicateIDs(Node{ID: "x", Kind: KindCard}))
}

func TestWalk_Depth(t *testing.T) {
	depths := map[string]int{}
	Walk(sampleTree(), func(n Node, depth int) bool {
		if _, ok := depths[n.ID]; !ok {
			depths[n.ID] = depth
		}
		return true
	})
	assert.Equal(t, map[string]int{"a": 0, "b": 1, "c": 2, "d": 1}, depths)
}

func TestWalk_SkipChildren(t *testing.T) {
	var visited []string
	Walk(sampleTree(), func(n Node, _ int) bool {
		visited = append(visited, n.ID)
		return n.Kind != KindStack
	})
	assert.Equal(t, []string{"a", "b", "d"}, visited)
}

func TestFlattenAndCount(t *testing.T) {
	nodes := Flatten(sampleTree())
	assert.Len(t, nodes, 5)
	assert.Equal(t, 5, Count(sampleTree()))
	assert.Equal(t, KindTable, nodes[4].Kind)
}

func TestNodeKind_IsContainer(t *testing.T) {
	containers := map[NodeKind]bool{
		KindPage: true, KindStack: true, KindSection: true, KindSidebar: true, KindCard: true,
	}
	for _, k := range AllKinds() {
		assert.Equal(t, containers[k], k.IsContainer(), k)
	}
}
