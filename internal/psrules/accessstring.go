package psrules

import (
	"github.com/airbus-cert/minusone/internal/ast"
	"github.com/airbus-cert/minusone/internal/rule"
	"github.com/airbus-cert/minusone/internal/traverse"
	"github.com/airbus-cert/minusone/internal/value"
)

// AccessString folds an element_access node over a Str or Array target
// with a Num or Array(Num) index. Negative indices count from the end,
// 1-indexed from the right: index -1 is the last element, matching
// PowerShell's array and string slicing semantics. Out-of-bounds indices
// decline to fold rather than guess.
type AccessString struct{ rule.Base }

func (AccessString) Name() string { return "AccessString" }

func (AccessString) Leave(h ast.Handle, _ traverse.BranchFlow) {
	if h.Kind() != "element_access" || h.NamedChildCount() != 2 {
		return
	}
	targetNode, ok := h.NamedChild(0)
	if !ok {
		return
	}
	indexNode, ok := h.NamedChild(1)
	if !ok {
		return
	}
	target, hasTarget := targetNode.Data()
	index, hasIndex := indexNode.Data()
	if !hasTarget || !hasIndex {
		return
	}

	switch {
	case target.Kind == value.Str && index.Kind == value.Num:
		if r, ok := indexRune(target.StrVal(), index.NumVal()); ok {
			h.Set(value.NewStr(string(r)).AsRaw())
		}
	case target.Kind == value.Str && index.Kind == value.Array:
		if elems, ok := indexRunesByArray(target.StrVal(), index.ArrayVal()); ok {
			h.Set(value.NewArray(elems).AsRaw())
		}
	case target.Kind == value.Array && index.Kind == value.Num:
		arr := target.ArrayVal()
		if i, ok := resolveIndex(len(arr), index.NumVal()); ok {
			h.Set(arr[i])
		}
	case target.Kind == value.Array && index.Kind == value.Array:
		arr := target.ArrayVal()
		idxs := index.ArrayVal()
		out := make([]value.Value, 0, len(idxs))
		for _, iv := range idxs {
			if iv.Kind != value.Num {
				return
			}
			i, ok := resolveIndex(len(arr), iv.NumVal())
			if !ok {
				return
			}
			out = append(out, arr[i])
		}
		h.Set(value.NewArray(out).AsRaw())
	}
}

// resolveIndex converts a possibly-negative PowerShell index into a
// 0-based Go slice index, or ok=false if out of bounds. -1 is the last
// element.
func resolveIndex(length int, idx int64) (int, bool) {
	if idx < 0 {
		idx += int64(length)
	}
	if idx < 0 || idx >= int64(length) {
		return 0, false
	}
	return int(idx), true
}

func indexRune(s string, idx int64) (rune, bool) {
	runes := []rune(s)
	i, ok := resolveIndex(len(runes), idx)
	if !ok {
		return 0, false
	}
	return runes[i], true
}

func indexRunesByArray(s string, idxs []value.Value) ([]value.Value, bool) {
	runes := []rune(s)
	out := make([]value.Value, 0, len(idxs))
	for _, iv := range idxs {
		if iv.Kind != value.Num {
			return nil, false
		}
		i, ok := resolveIndex(len(runes), iv.NumVal())
		if !ok {
			return nil, false
		}
		out = append(out, value.NewStr(string(runes[i])))
	}
	return out, true
}
