package psrules

import (
	"strings"

	"github.com/airbus-cert/minusone/internal/ast"
	"github.com/airbus-cert/minusone/internal/rule"
	"github.com/airbus-cert/minusone/internal/traverse"
	"github.com/airbus-cert/minusone/internal/value"
)

// ParseString resolves single-quoted, double-quoted, and here-string
// literal nodes into Raw(Str(s)), applying PowerShell's escape rules.
// Here-strings carry their multi-line body verbatim in the node's own
// span, so no separate multiline-concatenation step is needed — the
// grammar already delivers the whole literal as one node.
//
// An expandable (double-quoted / here-string) literal containing variable
// interpolation ($name, $(...)) is not a plain literal: folding it would
// require evaluating the interpolated expression, which this rule does
// not attempt. It declines rather than emit a string with the
// interpolation syntax baked in as literal text.
type ParseString struct{ rule.Base }

func (ParseString) Name() string { return "ParseString" }

func (ParseString) Leave(h ast.Handle, _ traverse.BranchFlow) {
	text := h.Text()
	switch h.Kind() {
	case "verbatim_string_literal":
		s, ok := decodeSingleQuoted(text)
		if ok {
			h.Set(value.NewStr(s).AsRaw())
		}
	case "expandable_string_literal":
		s, ok := decodeDoubleQuoted(text)
		if ok {
			h.Set(value.NewStr(s).AsRaw())
		}
	case "verbatim_here_string_literal":
		body := stripHereStringDelimiters(text, `@'`, `'@`)
		h.Set(value.NewStr(body).AsRaw())
	case "expandable_here_string_literal":
		body := stripHereStringDelimiters(text, `@"`, `"@`)
		if hasInterpolation(body) {
			return
		}
		h.Set(value.NewStr(decodeBacktickEscapes(body)).AsRaw())
	}
}

func decodeSingleQuoted(text string) (string, bool) {
	if len(text) < 2 || text[0] != '\'' || text[len(text)-1] != '\'' {
		return "", false
	}
	inner := text[1 : len(text)-1]
	return strings.ReplaceAll(inner, "''", "'"), true
}

func decodeDoubleQuoted(text string) (string, bool) {
	if len(text) < 2 || text[0] != '"' || text[len(text)-1] != '"' {
		return "", false
	}
	inner := text[1 : len(text)-1]
	if hasInterpolation(inner) {
		return "", false
	}
	return decodeBacktickEscapes(inner), true
}

func hasInterpolation(s string) bool {
	for i := 0; i < len(s); i++ {
		if s[i] != '$' {
			continue
		}
		if i > 0 && s[i-1] == '`' {
			continue // escaped dollar sign, not interpolation
		}
		if i+1 < len(s) && (s[i+1] == '(' || isIdentStart(s[i+1]) || s[i+1] == '{') {
			return true
		}
	}
	return false
}

func isIdentStart(c byte) bool {
	return c == '_' || (c >= 'a' && c <= 'z') || (c >= 'A' && c <= 'Z')
}

func decodeBacktickEscapes(s string) string {
	var b strings.Builder
	for i := 0; i < len(s); i++ {
		if s[i] != '`' || i+1 >= len(s) {
			b.WriteByte(s[i])
			continue
		}
		i++
		switch s[i] {
		case 'n':
			b.WriteByte('\n')
		case 'r':
			b.WriteByte('\r')
		case 't':
			b.WriteByte('\t')
		case '0':
			b.WriteByte(0)
		case '`':
			b.WriteByte('`')
		case '"':
			b.WriteByte('"')
		case '$':
			b.WriteByte('$')
		default:
			b.WriteByte('`')
			b.WriteByte(s[i])
		}
	}
	return b.String()
}

func stripHereStringDelimiters(text, open, close string) string {
	body := text
	if strings.HasPrefix(body, open) {
		body = body[len(open):]
	}
	body = strings.TrimPrefix(body, "\r\n")
	body = strings.TrimPrefix(body, "\n")
	if strings.HasSuffix(body, close) {
		body = body[:len(body)-len(close)]
	}
	body = strings.TrimSuffix(body, "\r\n")
	body = strings.TrimSuffix(body, "\n")
	return body
}
