// Package ast provides read-only and mutating views over a tree-sitter
// concrete syntax tree, and the per-node annotation side table the engine
// folds values into.
//
// Annotations live in a map keyed by node identity, not in a parallel
// owning tree: the CST belongs to the external parser (internal/parser);
// ast only adds a side table alongside it, per the "arena + index"
// design note.
package ast

import (
	tree_sitter "github.com/tree-sitter/go-tree-sitter"

	"github.com/airbus-cert/minusone/internal/value"
)

// Annotations is the per-node side table: a mapping from node identity to
// its current InferredValue. It is born empty, grows monotonically within
// a pass (rules only set, never erase), and may be overwritten across
// passes.
type Annotations struct {
	byID map[uintptr]value.Value
}

// NewAnnotations allocates an empty annotation table.
func NewAnnotations() *Annotations {
	return &Annotations{byID: make(map[uintptr]value.Value)}
}

// Len returns the number of nodes currently carrying an annotation.
func (a *Annotations) Len() int { return len(a.byID) }

func nodeID(n *tree_sitter.Node) uintptr {
	return uintptr(n.Id())
}

// Tree pairs a parsed CST with its source text and annotation table. It is
// the shared context every View and Handle is constructed against.
type Tree struct {
	Source      []byte
	Annotations *Annotations
	// Dirty is raised by Handle.Set whenever a Set call adds an annotation
	// or changes an existing annotation's value. The engine resets it to
	// false before each pass.
	Dirty bool
	// Fault is set by Handle.Fail when a rule observes a tree shape that
	// violates its documented precondition beyond "cannot fold" — an
	// engine.InvariantError. The engine checks it after every pass and
	// aborts without retrying.
	Fault error
}

// NewTree constructs a Tree ready for a fresh engine run.
func NewTree(source []byte) *Tree {
	return &Tree{Source: source, Annotations: NewAnnotations()}
}

// View is a cheap-to-copy, read-only capability over one CST node.
type View struct {
	node *tree_sitter.Node
	tree *Tree
}

// NewView wraps a tree-sitter node for read-only inspection.
func NewView(n *tree_sitter.Node, t *Tree) View {
	return View{node: n, tree: t}
}

// Node returns the underlying tree-sitter node.
func (v View) Node() *tree_sitter.Node { return v.node }

// Kind returns the grammar category of the node, e.g. "additive_expression".
func (v View) Kind() string { return v.node.Kind() }

// Text returns the exact source substring the node's span covers.
func (v View) Text() string {
	return string(v.tree.Source[v.node.StartByte():v.node.EndByte()])
}

// ChildCount returns the number of children (named and anonymous).
func (v View) ChildCount() int { return int(v.node.ChildCount()) }

// NamedChildCount returns the number of named (semantically significant)
// children, excluding anonymous tokens like punctuation.
func (v View) NamedChildCount() int { return int(v.node.NamedChildCount()) }

// Child returns the i-th child as a View, or the zero View with ok=false
// if out of range.
func (v View) Child(i int) (View, bool) {
	if i < 0 || i >= v.ChildCount() {
		return View{}, false
	}
	c := v.node.Child(uint(i))
	if c == nil {
		return View{}, false
	}
	return View{node: c, tree: v.tree}, true
}

// NamedChild returns the i-th named child (skipping anonymous tokens like
// punctuation), or ok=false if out of range.
func (v View) NamedChild(i int) (View, bool) {
	if i < 0 || i >= v.NamedChildCount() {
		return View{}, false
	}
	c := v.node.NamedChild(uint(i))
	if c == nil {
		return View{}, false
	}
	return View{node: c, tree: v.tree}, true
}

// ChildByFieldName returns the child bound to a grammar field name, or
// ok=false if absent.
func (v View) ChildByFieldName(name string) (View, bool) {
	c := v.node.ChildByFieldName(name)
	if c == nil {
		return View{}, false
	}
	return View{node: c, tree: v.tree}, true
}

// Parent returns the node's parent as a View, or ok=false at the root.
func (v View) Parent() (View, bool) {
	p := v.node.Parent()
	if p == nil {
		return View{}, false
	}
	return View{node: p, tree: v.tree}, true
}

// Data returns the node's current annotation, if any.
func (v View) Data() (value.Value, bool) {
	val, ok := v.tree.Annotations.byID[nodeID(v.node)]
	return val, ok
}

// ID returns the node's stable identity, suitable as a map key for
// rule-private state that must not pass through the public value lattice
// (and therefore can never reach the renderer).
func (v View) ID() uintptr { return nodeID(v.node) }

// Handle extends View with the ability to mutate the node's annotation.
// It is the only capability through which a rule may write to the
// annotation table.
type Handle struct {
	View
}

// NewHandle wraps a tree-sitter node for annotation and inspection.
func NewHandle(n *tree_sitter.Node, t *Tree) Handle {
	return Handle{View: NewView(n, t)}
}

// Set records val as the node's annotation. Unless a prior annotation
// exists and equals val (per value.Value.Equal), the tree's dirty flag is
// raised so the engine schedules another pass.
func (h Handle) Set(val value.Value) {
	id := nodeID(h.node)
	if prev, ok := h.tree.Annotations.byID[id]; ok && prev.Equal(val) {
		return
	}
	h.tree.Annotations.byID[id] = val
	h.tree.Dirty = true
}

// Fail records a hard invariant violation on the tree, aborting the
// current pass. Use it only for tree shapes that violate a rule's
// documented precondition (e.g. a ternary node with two children), never
// for an ordinary "cannot fold" — that case is expressed by simply not
// calling Set.
func (h Handle) Fail(err error) {
	if h.tree.Fault == nil {
		h.tree.Fault = err
	}
}
