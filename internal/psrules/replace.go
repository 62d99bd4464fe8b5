package psrules

import (
	"strings"

	"github.com/airbus-cert/minusone/internal/ast"
	"github.com/airbus-cert/minusone/internal/rule"
	"github.com/airbus-cert/minusone/internal/traverse"
	"github.com/airbus-cert/minusone/internal/value"
)

// regexMeta are the characters -replace treats as a regular expression
// metacharacter in its left-hand pattern argument. StringReplaceOp declines
// to fold when the pattern contains one, since a literal substring replace
// would silently change semantics; see the Open Question decision in
// DESIGN.md.
const regexMeta = `\.^$|?*+()[]{}`

func containsRegexMeta(s string) bool {
	return strings.ContainsAny(s, regexMeta)
}

// StringReplaceMethod folds "$str.Replace(old, new)" on a Str receiver.
// PowerShell's String.Replace(string, string) overload coerces non-string
// arguments (e.g. a Num old/new in a chained ".Replace('abc',1)") through
// .NET's ToString, so both arguments are cast through value.CastToStr
// rather than required to already be Str.
type StringReplaceMethod struct{ rule.Base }

func (StringReplaceMethod) Name() string { return "StringReplaceMethod" }

func (StringReplaceMethod) Leave(h ast.Handle, _ traverse.BranchFlow) {
	if h.Kind() != "invokation_expression" {
		return
	}
	target, ok := h.ChildByFieldName("invoker")
	if !ok {
		return
	}
	tv, has := target.Data()
	if !has || tv.Kind != value.Str {
		return
	}
	method, ok := h.ChildByFieldName("member")
	if !ok || !strings.EqualFold(method.Text(), "Replace") {
		return
	}
	args, ok := h.ChildByFieldName("arguments")
	if !ok || args.NamedChildCount() != 2 {
		return
	}
	oldNode, ok := args.NamedChild(0)
	if !ok {
		return
	}
	newNode, ok := args.NamedChild(1)
	if !ok {
		return
	}
	oldVal, ook := oldNode.Data()
	newVal, nok := newNode.Data()
	if !ook || !nok {
		return
	}
	oldStr, ook := value.CastToStr(oldVal)
	newStr, nok := value.CastToStr(newVal)
	if !ook || !nok {
		return
	}
	h.Set(value.NewStr(strings.ReplaceAll(tv.StrVal(), oldStr.StrVal(), newStr.StrVal())).AsRaw())
}

// StringReplaceOp folds the binary "-replace" operator for a literal,
// metacharacter-free pattern. A pattern containing a regex metacharacter is
// left unfolded, since honoring real regex semantics would require pulling
// in a PowerShell-flavored regex engine beyond this operator's scope. The
// right operand is either the pattern alone (replacement defaults to "") or
// an Array(Str, Str) of [pattern, replacement].
type StringReplaceOp struct{ rule.Base }

func (StringReplaceOp) Name() string { return "StringReplaceOp" }

func (StringReplaceOp) Leave(h ast.Handle, _ traverse.BranchFlow) {
	l, op, r, ok := binaryOperands(h, "comparison_expression")
	if !ok || !strings.EqualFold(op, "-replace") {
		return
	}
	if l.Kind != value.Str {
		return
	}

	var pattern, replacement string
	switch r.Kind {
	case value.Str:
		pattern, replacement = r.StrVal(), ""
	case value.Array:
		arr := r.ArrayVal()
		if len(arr) != 2 || arr[0].Kind != value.Str || arr[1].Kind != value.Str {
			return
		}
		pattern, replacement = arr[0].StrVal(), arr[1].StrVal()
	default:
		return
	}
	if containsRegexMeta(pattern) {
		return
	}
	h.Set(value.NewStr(strings.ReplaceAll(l.StrVal(), pattern, replacement)).AsRaw())
}
