package psrules

import (
	"github.com/airbus-cert/minusone/internal/ast"
	"github.com/airbus-cert/minusone/internal/rule"
	"github.com/airbus-cert/minusone/internal/traverse"
	"github.com/airbus-cert/minusone/internal/value"
)

// CastNull folds a unary '+' or '-' applied to an empty sub-expression
// ("+$()", "-$()") to Raw(Num(0)). PowerShell coerces the empty pipeline
// result $() to $null, and arithmetic on $null coerces it to 0.
type CastNull struct{ rule.Base }

func (CastNull) Name() string { return "CastNull" }

func (CastNull) Leave(h ast.Handle, _ traverse.BranchFlow) {
	if h.Kind() != "unary_expression" || h.ChildCount() != 2 {
		return
	}
	opView, ok := h.Child(0)
	if !ok {
		return
	}
	op := opView.Text()
	if op != "+" && op != "-" {
		return
	}
	operand, ok := h.Child(1)
	if !ok {
		return
	}
	if operand.Kind() != "sub_expression" || operand.NamedChildCount() != 0 {
		return
	}
	h.Set(value.NewNum(0).AsRaw())
}
