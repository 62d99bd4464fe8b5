package psrules

import (
	"strconv"
	"strings"

	"github.com/airbus-cert/minusone/internal/ast"
	"github.com/airbus-cert/minusone/internal/rule"
	"github.com/airbus-cert/minusone/internal/traverse"
	"github.com/airbus-cert/minusone/internal/value"
)

// FormatString folds "'fmt' -f arg, arg…", the .NET composite-format
// operator. Only positional placeholders ("{0}", "{1}", …) with an
// optional numeric alignment ("{0,10}", right-justified; "{0,-10}",
// left-justified, both space-padded) are supported; any other format
// specifier (a ":" format string, nested braces) causes the rule to
// decline so it doesn't silently mis-render.
type FormatString struct{ rule.Base }

func (FormatString) Name() string { return "FormatString" }

func (FormatString) Leave(h ast.Handle, _ traverse.BranchFlow) {
	l, op, r, ok := binaryOperands(h, "comparison_expression")
	if !ok || !strings.EqualFold(op, "-f") {
		return
	}
	if l.Kind != value.Str {
		return
	}
	var args []value.Value
	switch r.Kind {
	case value.Array:
		args = r.ArrayVal()
	default:
		args = []value.Value{r}
	}

	out, ok := applyFormat(l.StrVal(), args)
	if !ok {
		return
	}
	h.Set(value.NewStr(out).AsRaw())
}

func applyFormat(format string, args []value.Value) (string, bool) {
	var b strings.Builder
	i := 0
	for i < len(format) {
		c := format[i]
		switch c {
		case '{':
			if i+1 < len(format) && format[i+1] == '{' {
				b.WriteByte('{')
				i += 2
				continue
			}
			end := strings.IndexByte(format[i:], '}')
			if end < 0 {
				return "", false
			}
			spec := format[i+1 : i+end]
			i += end + 1

			idxStr := spec
			alignStr := ""
			hasAlign := false
			if comma := strings.IndexByte(spec, ','); comma >= 0 {
				idxStr = spec[:comma]
				alignStr = spec[comma+1:]
				hasAlign = true
			}
			if colon := strings.IndexByte(idxStr, ':'); colon >= 0 {
				return "", false
			}
			idx, err := strconv.Atoi(idxStr)
			if err != nil || idx < 0 || idx >= len(args) {
				return "", false
			}
			arg := args[idx]
			s, ok := value.CastToStr(arg)
			if !ok {
				return "", false
			}
			text := s.StrVal()
			if hasAlign {
				align, err := strconv.Atoi(alignStr)
				if err != nil {
					return "", false
				}
				text = padToAlignment(text, align)
			}
			b.WriteString(text)
		case '}':
			if i+1 < len(format) && format[i+1] == '}' {
				b.WriteByte('}')
				i += 2
				continue
			}
			return "", false
		default:
			b.WriteByte(c)
			i++
		}
	}
	return b.String(), true
}

// padToAlignment applies .NET composite-format alignment: a positive width
// right-justifies (pads left), a negative width left-justifies (pads
// right), both with spaces; |width| no greater than len(s) is a no-op.
func padToAlignment(s string, width int) string {
	n := width
	if n < 0 {
		n = -n
	}
	pad := n - len([]rune(s))
	if pad <= 0 {
		return s
	}
	padding := strings.Repeat(" ", pad)
	if width < 0 {
		return s + padding
	}
	return padding + s
}
