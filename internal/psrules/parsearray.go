package psrules

import (
	"github.com/airbus-cert/minusone/internal/ast"
	"github.com/airbus-cert/minusone/internal/rule"
	"github.com/airbus-cert/minusone/internal/traverse"
	"github.com/airbus-cert/minusone/internal/value"
)

// ParseArrayLiteral folds a comma-separated array_literal_expression node
// into Raw(Array([…])) once every element already carries an inferred
// value.
type ParseArrayLiteral struct{ rule.Base }

func (ParseArrayLiteral) Name() string { return "ParseArrayLiteral" }

func (ParseArrayLiteral) Leave(h ast.Handle, _ traverse.BranchFlow) {
	if h.Kind() != "array_literal_expression" {
		return
	}
	n := h.NamedChildCount()
	if n == 0 {
		return
	}
	elems := make([]value.Value, 0, n)
	for i := 0; i < n; i++ {
		c, ok := h.NamedChild(i)
		if !ok {
			return
		}
		v, has := c.Data()
		if !has {
			return
		}
		elems = append(elems, v)
	}
	h.Set(value.NewArray(elems).AsRaw())
}
