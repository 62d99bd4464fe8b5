// Package traverse implements the engine's depth-first visitation of a
// parsed tree: one enter event before a node's children, one leave event
// after, each tagged with whether the node sits on a statically predictable
// control-flow path.
package traverse

import (
	tree_sitter "github.com/tree-sitter/go-tree-sitter"

	"github.com/airbus-cert/minusone/internal/ast"
	"github.com/airbus-cert/minusone/internal/lang"
)

// BranchFlow tags whether a node's subtree is unconditionally executed
// exactly once in its enclosing scope (Predictable) or may run zero, more
// than once, or conditionally (Unpredictable).
type BranchFlow int

const (
	Predictable BranchFlow = iota
	Unpredictable
)

// Visitor receives enter/leave callbacks during a Walk. Either method may
// be a no-op; RuleSet implements Visitor by fanning events out to every
// rule in order (see internal/rule).
type Visitor interface {
	Enter(h ast.Handle, flow BranchFlow)
	Leave(h ast.Handle, flow BranchFlow)
}

// Walk performs one full pre-order/post-order traversal of root, invoking
// v.Enter before descending into a node's children and v.Leave after. flow
// starts Predictable at the root and becomes Unpredictable for the
// subtree of any node whose grammar kind is in spec.BranchNodeTypes;
// children of an Unpredictable node stay Unpredictable (it does not
// recover partway through a branch body). Once a rule records a Fault on
// tree (see ast.Handle.Fail), no further Enter or Leave events are sent.
func Walk(root *tree_sitter.Node, tree *ast.Tree, spec *lang.Spec, v Visitor) {
	branchKinds := make(map[string]bool, len(spec.BranchNodeTypes))
	for _, k := range spec.BranchNodeTypes {
		branchKinds[k] = true
	}
	walk(root, tree, branchKinds, Predictable, v)
}

func walk(n *tree_sitter.Node, tree *ast.Tree, branchKinds map[string]bool, flow BranchFlow, v Visitor) {
	if n == nil || tree.Fault != nil {
		return
	}
	h := ast.NewHandle(n, tree)
	v.Enter(h, flow)

	childFlow := flow
	if branchKinds[n.Kind()] {
		childFlow = Unpredictable
	}

	for i := uint(0); i < n.ChildCount(); i++ {
		walk(n.Child(i), tree, branchKinds, childFlow, v)
	}

	if tree.Fault != nil {
		return
	}
	v.Leave(h, flow)
}
