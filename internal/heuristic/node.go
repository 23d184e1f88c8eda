package heuristic

import (
	sitter "github.com/smacker/go-tree-sitter"
)

// nodeText returns the source text of a tree-sitter node.
func nodeText(node *sitter.Node, source []byte) string {
	return string(source[node.StartByte():node.EndByte()])
}

// eachNode visits node and every descendant in document order.
func eachNode(node *sitter.Node, fn func(*sitter.Node)) {
	if node == nil {
		return
	}
	fn(node)
	for i := 0; i < int(node.ChildCount()); i++ {
		eachNode(node.Child(i), fn)
	}
}

// childOfType returns the first direct child with one of the given types.
func childOfType(node *sitter.Node, types ...string) *sitter.Node {
	for i := 0; i < int(node.ChildCount()); i++ {
		child := node.Child(i)
		for _, t := range types {
			if child.Type() == t {
				return child
			}
		}
	}
	return nil
}

// hasDescendant reports whether any descendant of node has the given type.
func hasDescendant(node *sitter.Node, nodeType string) bool {
	found := false
	eachNode(node, func(n *sitter.Node) {
		if n.Type() == nodeType {
			found = true
		}
	})
	return found
}
