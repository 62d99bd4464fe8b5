package psrules

import (
	"github.com/airbus-cert/minusone/internal/ast"
	"github.com/airbus-cert/minusone/internal/rule"
	"github.com/airbus-cert/minusone/internal/traverse"
	"github.com/airbus-cert/minusone/internal/value"
)

// AddInt folds a three-child additive_expression ("L op R") whose operator
// is '+' or '-'. Both operands must already carry an inferred value. '+'
// additionally accepts (Str,Str), (Str,Num), (Num,Str), and (Array,Array)
// — string concatenation is the same additive_expression '+' case handled
// here, not a distinct firing rule.
type AddInt struct{ rule.Base }

func (AddInt) Name() string { return "AddInt" }

func (AddInt) Leave(h ast.Handle, _ traverse.BranchFlow) {
	l, op, r, ok := binaryOperands(h, "additive_expression")
	if !ok {
		return
	}
	switch op {
	case "+":
		if res, ok := value.Add(l, r); ok {
			h.Set(res)
		}
	case "-":
		if res, ok := value.Sub(l, r); ok {
			h.Set(res)
		}
	}
}

// binaryOperands extracts (left value, operator text, right value) from a
// three-child "L op R" node of the given kind, requiring both operands to
// already carry an inferred value.
func binaryOperands(h ast.Handle, kind string) (l value.Value, op string, r value.Value, ok bool) {
	if h.Kind() != kind || h.ChildCount() != 3 {
		return value.Value{}, "", value.Value{}, false
	}
	lv, lok := h.Child(0)
	opv, opok := h.Child(1)
	rv, rok := h.Child(2)
	if !lok || !opok || !rok {
		return value.Value{}, "", value.Value{}, false
	}
	lVal, lHas := lv.Data()
	rVal, rHas := rv.Data()
	if !lHas || !rHas {
		return value.Value{}, "", value.Value{}, false
	}
	return lVal, opv.Text(), rVal, true
}
