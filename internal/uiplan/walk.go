package uiplan

// Walk visits root and its descendants in pre-order. Returning false from fn
// skips the children of the node just visited.
func Walk(root Node, fn func(n Node, depth int) bool) {
	walk(root, 0, fn)
}

func walk(n Node, depth int, fn func(Node, int) bool) {
	if !fn(n, depth) {
		return
	}
	for _, child := range n.Children {
		walk(child, depth+1, fn)
	}
}

// Flatten returns every node of the tree in pre-order.
func Flatten(root Node) []Node {
	var nodes []Node
	Walk(root, func(n Node, _ int) bool {
		nodes = append(nodes, n)
		return true
	})
	return nodes
}

// IDs returns the node ids of the tree in pre-order, duplicates included.
func IDs(root Node) []string {
	var ids []string
	Walk(root, func(n Node, _ int) bool {
		ids = append(ids, n.ID)
		return true
	})
	return ids
}

// DuplicateIDs returns ids that occur more than once, in first-seen order.
// Validate does not reject duplicates; callers decide whether to warn.
func DuplicateIDs(root Node) []string {
	seen := make(map[string]int)
	var dups []string
	for _, id := range IDs(root) {
		seen[id]++
		if seen[id] == 2 {
			dups = append(dups, id)
		}
	}
	return dups
}

// Count returns the number of nodes in the tree.
func Count(root Node) int {
	n := 0
	Walk(root, func(Node, int) bool {
		n++
		return true
	})
	return n
}
