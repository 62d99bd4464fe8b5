package psrules

import (
	"strings"

	"github.com/airbus-cert/minusone/internal/ast"
	"github.com/airbus-cert/minusone/internal/rule"
	"github.com/airbus-cert/minusone/internal/traverse"
	"github.com/airbus-cert/minusone/internal/value"
)

// NewObjectArray folds "& 'New-Object' 'byte[]' n" / "New-Object byte[] n"
// into Raw(Array(Num(0) x n)), a common obfuscation idiom for preallocating
// a byte buffer to decode into. ByteArrayCap bounds n the same way
// ParseRange bounds its element count, so a huge literal can't exhaust
// memory.
type NewObjectArray struct {
	rule.Base
	ByteArrayCap int
}

func (NewObjectArray) Name() string { return "NewObjectArray" }

func (r NewObjectArray) Leave(h ast.Handle, _ traverse.BranchFlow) {
	if h.Kind() != "command_invokation" {
		return
	}
	cmdNode, ok := h.ChildByFieldName("command")
	if !ok || !strings.EqualFold(strings.Trim(cmdNode.Text(), "'\""), "New-Object") {
		return
	}
	n := h.NamedChildCount()
	if n < 2 {
		return
	}
	typeArg, ok := h.NamedChild(0)
	if !ok {
		return
	}
	typeText := strings.Trim(strings.Trim(typeArg.Text(), "'\""), " ")
	if !strings.EqualFold(typeText, "byte[]") {
		return
	}
	sizeArg, ok := h.NamedChild(1)
	if !ok {
		return
	}
	sizeVal, has := sizeArg.Data()
	if !has || sizeVal.Kind != value.Num {
		return
	}
	size := sizeVal.NumVal()
	cap := int64(r.ByteArrayCap)
	if cap <= 0 {
		cap = 1 << 20
	}
	if size < 0 || size > cap {
		return
	}
	elems := make([]value.Value, size)
	for i := range elems {
		elems[i] = value.NewNum(0)
	}
	h.Set(value.NewArray(elems).AsRaw())
}
