package psrules

import (
	"strings"

	"github.com/airbus-cert/minusone/internal/ast"
	"github.com/airbus-cert/minusone/internal/rule"
	"github.com/airbus-cert/minusone/internal/traverse"
	"github.com/airbus-cert/minusone/internal/value"
)

// pipeScope holds the set of scriptblock nodes PSItemInferrator has
// recognized as the "{ [char] $_ }" idiom, keyed by node identity. PSItem
// is a rule-side marker, not a public variant of value.Value: recording it
// here instead of through Handle.Set keeps it out of the annotation table
// the renderer substitutes from, so an unconsumed scriptblock (one ForEach
// never fires on, e.g. because its pipeline source isn't an inferred
// array) can never render as a raw sentinel.
type pipeScope struct {
	marked map[uintptr]bool
}

func newPipeRules() (*PSItemInferrator, *ForEach) {
	scope := &pipeScope{marked: make(map[uintptr]bool)}
	return &PSItemInferrator{scope: scope}, &ForEach{scope: scope}
}

// PSItemInferrator recognizes a script_block (or script_block_expression)
// whose sole statement is a cast to [char] applied to the $_ automatic
// variable, e.g. "{ [char] $_ }". It does not evaluate $_ itself — there is
// no bound value yet — it only marks the scriptblock as the idiom ForEach
// consumes once it sees the scriptblock applied to an array.
type PSItemInferrator struct {
	rule.Base
	scope *pipeScope
}

func (*PSItemInferrator) Name() string { return "PSItemInferrator" }

func (r *PSItemInferrator) Leave(h ast.Handle, _ traverse.BranchFlow) {
	if h.Kind() != "script_block" && h.Kind() != "script_block_expression" {
		return
	}
	if h.NamedChildCount() != 1 {
		return
	}
	stmt, ok := h.NamedChild(0)
	if !ok {
		return
	}
	if !isCharCastOfPSItem(stmt) {
		return
	}
	r.scope.marked[h.ID()] = true
}

// isCharCastOfPSItem reports whether n is (structurally) "[char] $_": a
// cast_expression whose type child's text is "char" and whose operand is a
// variable reference named "_".
func isCharCastOfPSItem(n ast.View) bool {
	if n.Kind() != "cast_expression" || n.NamedChildCount() != 2 {
		return false
	}
	typeNode, ok := n.NamedChild(0)
	if !ok {
		return false
	}
	operand, ok := n.NamedChild(1)
	if !ok {
		return false
	}
	if !strings.EqualFold(strings.Trim(typeNode.Text(), "[]"), "char") {
		return false
	}
	return strings.EqualFold(strings.TrimPrefix(operand.Text(), "$"), "_")
}

// ForEach lifts PSItemInferrator's result across a pipeline: an
// Array(Num)-valued left-hand side piped into a "%" / "ForEach-Object"
// invocation carrying the recognized char-cast scriptblock folds to
// Raw(Array(Str)) of the per-element character casts.
type ForEach struct {
	rule.Base
	scope *pipeScope
}

func (*ForEach) Name() string { return "ForEach" }

func (r *ForEach) Leave(h ast.Handle, _ traverse.BranchFlow) {
	if h.Kind() != "pipeline" || h.NamedChildCount() != 2 {
		return
	}
	srcNode, ok := h.NamedChild(0)
	if !ok {
		return
	}
	cmdNode, ok := h.NamedChild(1)
	if !ok {
		return
	}
	srcVal, has := srcNode.Data()
	if !has || srcVal.Kind != value.Array {
		return
	}
	if !r.isForEachInvocation(cmdNode) {
		return
	}

	arr := srcVal.ArrayVal()
	out := make([]value.Value, 0, len(arr))
	for _, e := range arr {
		c, ok := value.CastToChar(e)
		if !ok {
			return
		}
		out = append(out, c)
	}
	h.Set(value.NewArray(out).AsRaw())
}

// isForEachInvocation reports whether cmdNode is a command_invokation of
// "%" or "ForEach-Object" whose sole scriptblock argument is marked in r's
// scope as the recognized PSItem char-cast idiom.
func (r *ForEach) isForEachInvocation(cmdNode ast.View) bool {
	if cmdNode.Kind() != "command_invokation" {
		return false
	}
	nameNode, ok := cmdNode.ChildByFieldName("command")
	if !ok {
		return false
	}
	name := nameNode.Text()
	if !strings.EqualFold(name, "%") && !strings.EqualFold(name, "ForEach-Object") {
		return false
	}
	n := cmdNode.NamedChildCount()
	for i := 0; i < n; i++ {
		arg, ok := cmdNode.NamedChild(i)
		if !ok {
			continue
		}
		if r.scope.marked[arg.ID()] {
			return true
		}
	}
	return false
}
