package parser

import "github.com/aledsdavies/polishc/internal/ast"

// fixup implements the precedence fix-up rotation of spec.md §4.5. op has
// just been attached as a pivot with op.Right set to the freshly-parsed
// rhs; isPrefix distinguishes the prefix-production trigger from the
// infix-production one. It returns the subtree root the caller should use
// in op's place — either op itself (no rotation needed) or rhs (rotated).
//
// Grouped subtrees are treated as atomic throughout: LowerPriorityThan and
// LeftGrouped (internal/ast) both refuse to fire across a Grouped node, so
// a rotation never reaches into a parenthesised sub-expression.
func fixup(op *ast.Node, isPrefix bool) *ast.Node {
	rhs := op.Right
	if rhs == nil {
		return op
	}

	var trigger bool
	if isPrefix {
		trigger = ast.LeftGrouped(rhs) || (ast.LowerPriorityThan(rhs, op) && rhs.Left != nil)
	} else {
		trigger = ast.LowerPriorityThan(rhs, op) && rhs.Left != nil
	}
	if !trigger {
		return op
	}

	// Descend along rhs's left spine to the deepest operator whose
	// priority still admits op, per spec.md §4.5 step 2.
	target := rhs
	for {
		child := target.Left
		if !ast.LowerPriorityThan(child, op) {
			break
		}
		if isPrefix && child.Left == nil {
			break
		}
		target = child
	}

	pivot := target.Left
	op.Right = pivot
	target.Left = op
	return rhs
}
