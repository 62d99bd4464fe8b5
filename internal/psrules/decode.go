package psrules

import (
	"encoding/base64"
	"strings"
	"unicode/utf16"

	"github.com/airbus-cert/minusone/internal/ast"
	"github.com/airbus-cert/minusone/internal/rule"
	"github.com/airbus-cert/minusone/internal/traverse"
	"github.com/airbus-cert/minusone/internal/value"
)

// DecodeBase64 folds "[Convert]::FromBase64String(s)" for a Str s into
// Raw(Array(Num)) of decoded bytes. Malformed base64 declines rather than
// guessing a partial result.
type DecodeBase64 struct{ rule.Base }

func (DecodeBase64) Name() string { return "DecodeBase64" }

func (DecodeBase64) Leave(h ast.Handle, _ traverse.BranchFlow) {
	if h.Kind() != "invokation_expression" {
		return
	}
	target, ok := h.ChildByFieldName("invoker")
	if !ok {
		return
	}
	tv, has := target.Data()
	if !has || tv.Kind != value.Type || !strings.EqualFold(tv.TypeName(), "System.Convert") {
		return
	}
	method, ok := h.ChildByFieldName("member")
	if !ok || !strings.EqualFold(method.Text(), "FromBase64String") {
		return
	}
	args, ok := h.ChildByFieldName("arguments")
	if !ok || args.NamedChildCount() != 1 {
		return
	}
	argNode, ok := args.NamedChild(0)
	if !ok {
		return
	}
	argVal, has := argNode.Data()
	if !has || argVal.Kind != value.Str {
		return
	}
	raw, err := base64.StdEncoding.DecodeString(argVal.StrVal())
	if err != nil {
		return
	}
	elems := make([]value.Value, len(raw))
	for i, b := range raw {
		elems[i] = value.NewNum(int64(b))
	}
	h.Set(value.NewArray(elems).AsRaw())
}

// FromUTF folds the text-encoding static methods used to turn a decoded
// byte array back into a string: "[System.Text.Encoding]::UTF8.GetString"
// / "...::Unicode.GetString" / "...::ASCII.GetString" applied to an
// Array(Num) of byte values.
type FromUTF struct{ rule.Base }

func (FromUTF) Name() string { return "FromUTF" }

func (FromUTF) Leave(h ast.Handle, _ traverse.BranchFlow) {
	if h.Kind() != "invokation_expression" {
		return
	}
	target, ok := h.ChildByFieldName("invoker")
	if !ok {
		return
	}
	encoding, ok := encodingName(target)
	if !ok {
		return
	}
	method, ok := h.ChildByFieldName("member")
	if !ok || !strings.EqualFold(method.Text(), "GetString") {
		return
	}
	args, ok := h.ChildByFieldName("arguments")
	if !ok || args.NamedChildCount() != 1 {
		return
	}
	argNode, ok := args.NamedChild(0)
	if !ok {
		return
	}
	argVal, has := argNode.Data()
	if !has || argVal.Kind != value.Array {
		return
	}
	raw, ok := byteSliceOf(argVal.ArrayVal())
	if !ok {
		return
	}

	s, ok := decodeBytes(encoding, raw)
	if !ok {
		return
	}
	h.Set(value.NewStr(s).AsRaw())
}

// encodingName extracts the static encoding accessor name ("UTF8",
// "Unicode", "ASCII") from an invoker expression shaped like
// "[System.Text.Encoding]::UTF8" — a member_access on a Type value.
func encodingName(target ast.View) (string, bool) {
	if target.Kind() != "member_access" {
		return "", false
	}
	typeNode, ok := target.ChildByFieldName("target")
	if !ok {
		return "", false
	}
	tv, has := typeNode.Data()
	if !has || tv.Kind != value.Type || !strings.EqualFold(tv.TypeName(), "System.Text.Encoding") {
		return "", false
	}
	member, ok := target.ChildByFieldName("member")
	if !ok {
		return "", false
	}
	return member.Text(), true
}

func byteSliceOf(arr []value.Value) ([]byte, bool) {
	out := make([]byte, len(arr))
	for i, e := range arr {
		if e.Kind != value.Num || e.NumVal() < 0 || e.NumVal() > 255 {
			return nil, false
		}
		out[i] = byte(e.NumVal())
	}
	return out, true
}

func decodeBytes(encoding string, raw []byte) (string, bool) {
	switch strings.ToUpper(encoding) {
	case "UTF8":
		return string(raw), true
	case "ASCII":
		for _, b := range raw {
			if b > 127 {
				return "", false
			}
		}
		return string(raw), true
	case "UNICODE":
		if len(raw)%2 != 0 {
			return "", false
		}
		units := make([]uint16, len(raw)/2)
		for i := range units {
			units[i] = uint16(raw[2*i]) | uint16(raw[2*i+1])<<8
		}
		return string(utf16.Decode(units)), true
	default:
		return "", false
	}
}
