package psrules

import (
	"github.com/airbus-cert/minusone/internal/ast"
	"github.com/airbus-cert/minusone/internal/rule"
	"github.com/airbus-cert/minusone/internal/traverse"
	"github.com/airbus-cert/minusone/internal/value"
)

// ComputeArrayExpr folds an array_expression ("@( … )") once its body is
// fully inferred. A body that is itself a single Array-valued expression
// (e.g. "@(1,2,3)" wrapping an array_literal_expression) is adopted
// directly; a body of several statements folds to the statements' values
// in order, an Array-valued statement contributing its elements (e.g.
// "@($a; $b)").
type ComputeArrayExpr struct{ rule.Base }

func (ComputeArrayExpr) Name() string { return "ComputeArrayExpr" }

func (ComputeArrayExpr) Leave(h ast.Handle, _ traverse.BranchFlow) {
	if h.Kind() != "array_expression" {
		return
	}
	if h.NamedChildCount() == 0 {
		h.Set(value.NewArray(nil).AsRaw())
		return
	}
	body, ok := h.NamedChild(0)
	if !ok {
		return
	}

	if v, has := body.Data(); has && v.Kind == value.Array {
		h.Set(value.NewArray(v.ArrayVal()).AsRaw())
		return
	}

	stmts := body.NamedChildCount()
	if stmts == 0 {
		v, has := body.Data()
		if !has {
			return
		}
		if v.Kind == value.Array {
			h.Set(value.NewArray(v.ArrayVal()).AsRaw())
			return
		}
		h.Set(value.NewArray([]value.Value{v}).AsRaw())
		return
	}

	elems := make([]value.Value, 0, stmts)
	for i := 0; i < stmts; i++ {
		c, ok := body.NamedChild(i)
		if !ok {
			return
		}
		v, has := c.Data()
		if !has {
			return
		}
		if v.Kind == value.Array {
			elems = append(elems, v.ArrayVal()...)
			continue
		}
		elems = append(elems, v)
	}
	h.Set(value.NewArray(elems).AsRaw())
}
