package psrules

import (
	"strings"

	"github.com/airbus-cert/minusone/internal/ast"
	"github.com/airbus-cert/minusone/internal/rule"
	"github.com/airbus-cert/minusone/internal/traverse"
	"github.com/airbus-cert/minusone/internal/value"
)

var caseSensitiveComparisonOps = map[string]bool{
	"-ceq": true, "-cne": true,
}

// Comparison folds "-eq, -ne, -lt, -le, -gt, -ge, -ceq, -cne" over two
// fully-inferred operands, delegating to value.Compare.
type Comparison struct{ rule.Base }

func (Comparison) Name() string { return "Comparison" }

func (Comparison) Leave(h ast.Handle, _ traverse.BranchFlow) {
	l, op, r, ok := binaryOperands(h, "comparison_expression")
	if !ok {
		return
	}
	lop := strings.ToLower(op)
	switch lop {
	case "-eq", "-ne", "-lt", "-le", "-gt", "-ge", "-ceq", "-cne":
	default:
		return
	}
	if res, ok := value.Compare(lop, l, r, caseSensitiveComparisonOps[lop]); ok {
		h.Set(res)
	}
}

// Not folds "!" / "-not" applied to a Bool operand.
type Not struct{ rule.Base }

func (Not) Name() string { return "Not" }

func (Not) Leave(h ast.Handle, _ traverse.BranchFlow) {
	if h.Kind() != "unary_expression" || h.ChildCount() != 2 {
		return
	}
	op, ok := h.Child(0)
	if !ok {
		return
	}
	opText := strings.ToLower(op.Text())
	if opText != "!" && opText != "-not" {
		return
	}
	operand, ok := h.Child(1)
	if !ok {
		return
	}
	v, has := operand.Data()
	if !has {
		return
	}
	if res, ok := value.Not(v); ok {
		h.Set(res)
	}
}

// BoolAlgebra folds "-and", "-or", "-xor" over two Bool operands.
type BoolAlgebra struct{ rule.Base }

func (BoolAlgebra) Name() string { return "BoolAlgebra" }

func (BoolAlgebra) Leave(h ast.Handle, _ traverse.BranchFlow) {
	l, op, r, ok := binaryOperands(h, "logical_expression")
	if !ok {
		return
	}
	lop := strings.ToLower(op)
	switch lop {
	case "-and", "-or", "-xor":
	default:
		return
	}
	if res, ok := value.BoolAlgebra(lop, l, r); ok {
		h.Set(res)
	}
}

// Length folds the ".Length" / ".Count" property access on a fully
// inferred Str or Array.
type Length struct{ rule.Base }

func (Length) Name() string { return "Length" }

func (Length) Leave(h ast.Handle, _ traverse.BranchFlow) {
	if h.Kind() != "member_access" {
		return
	}
	target, ok := h.ChildByFieldName("target")
	if !ok {
		return
	}
	member, ok := h.ChildByFieldName("member")
	if !ok {
		return
	}
	name := strings.ToLower(member.Text())
	if name != "length" && name != "count" {
		return
	}
	tv, has := target.Data()
	if !has {
		return
	}
	switch tv.Kind {
	case value.Str:
		h.Set(value.NewNum(int64(len([]rune(tv.StrVal())))).AsRaw())
	case value.Array:
		h.Set(value.NewNum(int64(len(tv.ArrayVal()))).AsRaw())
	}
}
