package psrules

import (
	"strings"

	"github.com/airbus-cert/minusone/internal/ast"
	"github.com/airbus-cert/minusone/internal/rule"
	"github.com/airbus-cert/minusone/internal/traverse"
	"github.com/airbus-cert/minusone/internal/value"
)

// joinArray concatenates an Array's elements into a string with sep between
// them, declining if any element isn't Str or Num (the only kinds
// PowerShell's string coercion here is unambiguous for).
func joinArray(arr []value.Value, sep string) (string, bool) {
	parts := make([]string, 0, len(arr))
	for _, e := range arr {
		switch e.Kind {
		case value.Str:
			parts = append(parts, e.StrVal())
		case value.Num:
			s, _ := value.CastToStr(e)
			parts = append(parts, s.StrVal())
		default:
			return "", false
		}
	}
	return strings.Join(parts, sep), true
}

// JoinOperator folds the unary prefix form "-join $arr", joining with "".
type JoinOperator struct{ rule.Base }

func (JoinOperator) Name() string { return "JoinOperator" }

func (JoinOperator) Leave(h ast.Handle, _ traverse.BranchFlow) {
	if h.Kind() != "unary_expression" || h.ChildCount() != 2 {
		return
	}
	op, ok := h.Child(0)
	if !ok || !strings.EqualFold(op.Text(), "-join") {
		return
	}
	operand, ok := h.Child(1)
	if !ok {
		return
	}
	v, has := operand.Data()
	if !has || v.Kind != value.Array {
		return
	}
	if s, ok := joinArray(v.ArrayVal(), ""); ok {
		h.Set(value.NewStr(s).AsRaw())
	}
}

// JoinComparison folds the binary infix form "$arr -join $sep". The
// tree-sitter-powershell grammar groups "-join" with the comparison-class
// binary operators ("-eq", "-split", "-replace", …), so this surface
// syntax lands on a comparison_expression node rather than a dedicated
// join node — hence the name, distinct from the unary JoinOperator form.
type JoinComparison struct{ rule.Base }

func (JoinComparison) Name() string { return "JoinComparison" }

func (JoinComparison) Leave(h ast.Handle, _ traverse.BranchFlow) {
	l, op, r, ok := binaryOperands(h, "comparison_expression")
	if !ok || !strings.EqualFold(op, "-join") {
		return
	}
	if l.Kind != value.Array || r.Kind != value.Str {
		return
	}
	if s, ok := joinArray(l.ArrayVal(), r.StrVal()); ok {
		h.Set(value.NewStr(s).AsRaw())
	}
}

// JoinStringMethod folds "[string]::Join(sep, $arr)".
type JoinStringMethod struct{ rule.Base }

func (JoinStringMethod) Name() string { return "JoinStringMethod" }

func (JoinStringMethod) Leave(h ast.Handle, _ traverse.BranchFlow) {
	if h.Kind() != "invokation_expression" {
		return
	}
	target, ok := h.ChildByFieldName("invoker")
	if !ok {
		return
	}
	tv, has := target.Data()
	if !has || tv.Kind != value.Type || !strings.EqualFold(tv.TypeName(), "System.String") {
		return
	}
	method, ok := h.ChildByFieldName("member")
	if !ok || !strings.EqualFold(method.Text(), "Join") {
		return
	}
	args, ok := h.ChildByFieldName("arguments")
	if !ok || args.NamedChildCount() != 2 {
		return
	}
	sepNode, ok := args.NamedChild(0)
	if !ok {
		return
	}
	arrNode, ok := args.NamedChild(1)
	if !ok {
		return
	}
	sepVal, sok := sepNode.Data()
	arrVal, aok := arrNode.Data()
	if !sok || !aok || sepVal.Kind != value.Str || arrVal.Kind != value.Array {
		return
	}
	if s, ok := joinArray(arrVal.ArrayVal(), sepVal.StrVal()); ok {
		h.Set(value.NewStr(s).AsRaw())
	}
}
