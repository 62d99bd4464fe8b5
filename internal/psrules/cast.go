package psrules

import (
	"github.com/airbus-cert/minusone/internal/ast"
	"github.com/airbus-cert/minusone/internal/rule"
	"github.com/airbus-cert/minusone/internal/traverse"
	"github.com/airbus-cert/minusone/internal/value"
)

// Cast folds a cast_expression node ("[type] expr") whose type child is a
// Raw(Type(_)) and whose expression child already carries a value, for the
// numeric, string, boolean, and char target types.
type Cast struct{ rule.Base }

func (Cast) Name() string { return "Cast" }

func (Cast) Leave(h ast.Handle, _ traverse.BranchFlow) {
	if h.Kind() != "cast_expression" || h.ChildCount() != 2 {
		return
	}
	typeView, ok := h.Child(0)
	if !ok {
		return
	}
	exprView, ok := h.Child(1)
	if !ok {
		return
	}
	typeVal, ok := typeView.Data()
	if !ok || typeVal.Kind != value.Type {
		return
	}
	exprVal, ok := exprView.Data()
	if !ok {
		return
	}

	var res value.Value
	var folded bool
	switch typeVal.TypeName() {
	case "System.String":
		res, folded = value.CastToStr(exprVal)
	case "System.Char":
		res, folded = castToChar(exprVal)
	case "System.Boolean":
		res, folded = value.CastToBool(exprVal)
	case "System.Int32", "System.Int64", "System.Int16", "System.Byte", "System.UInt32", "System.UInt64":
		res, folded = castToInt(exprVal)
	}
	if folded {
		h.Set(res)
	}
}

func castToChar(v value.Value) (value.Value, bool) {
	if v.Kind == value.Num {
		return value.CastToChar(v)
	}
	return value.Value{}, false
}

func castToInt(v value.Value) (value.Value, bool) {
	switch v.Kind {
	case value.Num:
		return v.AsRaw(), true
	case value.Str:
		return value.CastToNum(v)
	case value.Bool:
		if v.BoolVal() {
			return value.NewNum(1).AsRaw(), true
		}
		return value.NewNum(0).AsRaw(), true
	default:
		return value.Value{}, false
	}
}
