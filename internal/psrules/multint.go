package psrules

import (
	"github.com/airbus-cert/minusone/internal/ast"
	"github.com/airbus-cert/minusone/internal/rule"
	"github.com/airbus-cert/minusone/internal/traverse"
	"github.com/airbus-cert/minusone/internal/value"
)

// MultInt folds a three-child multiplicative_expression ("L op R") whose
// operator is '*' or '/'. '*' also accepts (Str,Num)/(Num,Str) string
// repetition.
type MultInt struct{ rule.Base }

func (MultInt) Name() string { return "MultInt" }

func (MultInt) Leave(h ast.Handle, _ traverse.BranchFlow) {
	l, op, r, ok := binaryOperands(h, "multiplicative_expression")
	if !ok {
		return
	}
	switch op {
	case "*":
		if res, ok := value.Mult(l, r); ok {
			h.Set(res)
		}
	case "/":
		if res, ok := value.Div(l, r); ok {
			h.Set(res)
		}
	}
}
