package psrules

import (
	"strings"

	"github.com/airbus-cert/minusone/internal/ast"
	"github.com/airbus-cert/minusone/internal/rule"
	"github.com/airbus-cert/minusone/internal/traverse"
	"github.com/airbus-cert/minusone/internal/value"
)

func normalizeVarName(text string) string {
	return strings.ToLower(strings.TrimPrefix(text, "$"))
}

// staticVarTable is the immutable, known-at-build-time mapping of
// PowerShell automatic variables this engine resolves without a runtime.
// It is intentionally small: only the variables obfuscated scripts are
// actually observed to reference for their literal value, not a full
// $Host/$PSVersionTable model.
var staticVarTable = map[string]value.Value{
	"pshome":  value.NewStr(`C:\Windows\System32\WindowsPowerShell\v1.0`),
	"shellid": value.NewStr("Microsoft.PowerShell"),
	"true":    value.NewBool(true),
	"false":   value.NewBool(false),
	"null":    value.NewNull(),
}

// StaticVar folds a variable reference whose normalized name appears in
// the static automatic-variable table.
type StaticVar struct{ rule.Base }

func (StaticVar) Name() string { return "StaticVar" }

func (StaticVar) Leave(h ast.Handle, _ traverse.BranchFlow) {
	if h.Kind() != "variable" {
		return
	}
	v, ok := staticVarTable[normalizeVarName(h.Text())]
	if !ok {
		return
	}
	h.Set(v.AsRaw())
}

// Var maintains the engine's variable binding table: a mapping from
// normalized variable name to InferredValue, built from assignment
// statements seen under Predictable flow and consulted by every later
// variable reference. It owns its table exclusively across the engine's
// passes over one tree; a fresh DefaultRuleSet call starts a fresh table.
type Var struct {
	rule.Base
	bindings map[string]value.Value
}

func newVarRule() *Var {
	return &Var{bindings: make(map[string]value.Value)}
}

func (*Var) Name() string { return "Var" }

func (r *Var) Leave(h ast.Handle, flow traverse.BranchFlow) {
	switch h.Kind() {
	case "assignment_expression":
		r.bindAssignment(h, flow)
	case "variable":
		if isAssignmentTarget(h.View) {
			return
		}
		name := normalizeVarName(h.Text())
		if val, ok := r.bindings[name]; ok {
			h.Set(val.Forwarded())
		}
	}
}

func (r *Var) bindAssignment(h ast.Handle, flow traverse.BranchFlow) {
	if flow != traverse.Predictable || h.ChildCount() != 3 {
		return
	}
	lhs, ok := h.Child(0)
	if !ok || lhs.Kind() != "variable" {
		return
	}
	op, ok := h.Child(1)
	if !ok || op.Text() != "=" {
		return
	}
	rhs, ok := h.Child(2)
	if !ok {
		return
	}
	rv, has := rhs.Data()
	if !has || !rv.Raw {
		return
	}
	r.bindings[normalizeVarName(lhs.Text())] = rv
}

// isAssignmentTarget reports whether n is the left-hand variable of an
// assignment_expression — that node must never be overwritten with the
// assigned value, or rendering would turn "$x = 5" into "5 = 5".
func isAssignmentTarget(n ast.View) bool {
	parent, ok := n.Parent()
	if !ok || parent.Kind() != "assignment_expression" {
		return false
	}
	first, ok := parent.Child(0)
	if !ok {
		return false
	}
	return first.Node() == n.Node()
}
