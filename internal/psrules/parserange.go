package psrules

import (
	"github.com/airbus-cert/minusone/internal/ast"
	"github.com/airbus-cert/minusone/internal/rule"
	"github.com/airbus-cert/minusone/internal/traverse"
	"github.com/airbus-cert/minusone/internal/value"
)

// ParseRange folds a range_expression ("a..b") whose endpoints are both
// Num into Raw(Array(...)) of the inclusive arithmetic sequence from a to
// b. Direction follows the sign of b-a: a <= b counts up, a > b counts
// down. Cap bounds the element count the same way NewObjectArray bounds
// byte-array preallocation, so an obfuscated "0..999999999" cannot exhaust
// memory.
type ParseRange struct {
	rule.Base
	Cap int
}

func (ParseRange) Name() string { return "ParseRange" }

func (p ParseRange) Leave(h ast.Handle, _ traverse.BranchFlow) {
	if h.Kind() != "range_expression" || h.NamedChildCount() != 2 {
		return
	}
	lo, ok := h.NamedChild(0)
	if !ok {
		return
	}
	hi, ok := h.NamedChild(1)
	if !ok {
		return
	}
	lv, lok := lo.Data()
	hv, hok := hi.Data()
	if !lok || !hok || lv.Kind != value.Num || hv.Kind != value.Num {
		return
	}

	a, b := lv.NumVal(), hv.NumVal()
	count := b - a
	if count < 0 {
		count = -count
	}
	count++
	cap := p.Cap
	if cap <= 0 {
		cap = 1 << 20
	}
	if count > int64(cap) {
		return
	}

	elems := make([]value.Value, 0, count)
	if a <= b {
		for i := a; i <= b; i++ {
			elems = append(elems, value.NewNum(i))
		}
	} else {
		for i := a; i >= b; i-- {
			elems = append(elems, value.NewNum(i))
		}
	}
	h.Set(value.NewArray(elems).AsRaw())
}
