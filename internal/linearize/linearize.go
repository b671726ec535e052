// Package linearize walks a parsed tree in preorder and copies each node's
// item into a flat output stream (spec.md §4.7). The stream owns
// independent copies of items so it outlives the arena the tree was built
// in (spec.md §3, "Lifecycle").
package linearize

import "github.com/aledsdavies/polishc/internal/ast"

// Preorder visits root, then its left subtree, then its right subtree,
// appending each node's Item to the returned slice in visit order.
// Iterative rather than recursive so a pathological left-spine input (many
// chained equal-priority operators) cannot blow the Go call stack.
func Preorder(root *ast.Node) []ast.Item {
	if root == nil {
		return nil
	}
	items := make([]ast.Item, 0, 8)
	stack := []*ast.Node{root}
	for len(stack) > 0 {
		n := stack[len(stack)-1]
		stack = stack[:len(stack)-1]
		items = append(items, n.Item)
		// Push right before left so left pops first (stack is LIFO).
		if n.Right != nil {
			stack = append(stack, n.Right)
		}
		if n.Left != nil {
			stack = append(stack, n.Left)
		}
	}
	return items
}
