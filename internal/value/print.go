package value

import (
	"strconv"
	"strings"
)

// PrettyPrint renders an InferredValue as PowerShell source text, the form
// the Renderer substitutes for a node's subtree text.
func PrettyPrint(v Value) string {
	switch v.Kind {
	case Num:
		return strconv.FormatInt(v.num, 10)
	case Str:
		return quoteString(v.str)
	case Bool:
		if v.bl {
			return "$true"
		}
		return "$false"
	case Array:
		parts := make([]string, len(v.arr))
		for i, e := range v.arr {
			parts[i] = PrettyPrint(e)
		}
		return "@(" + strings.Join(parts, ", ") + ")"
	case Hash:
		parts := make([]string, len(v.hash))
		for i, e := range v.hash {
			parts[i] = PrettyPrint(*e.hashKey) + " = " + PrettyPrint(*e.hashVal)
		}
		return "@{" + strings.Join(parts, "; ") + "}"
	case Type:
		return "[" + v.typ + "]"
	case Null:
		return "$null"
	default:
		return ""
	}
}

// quoteString double-quotes s, escaping PowerShell's expandable-string
// metacharacters so the emitted literal round-trips back to s.
func quoteString(s string) string {
	var b strings.Builder
	b.WriteByte('"')
	for _, r := range s {
		switch r {
		case '"':
			b.WriteString("`\"")
		case '`':
			b.WriteString("``")
		case '$':
			b.WriteString("`$")
		case '\n':
			b.WriteString("`n")
		case '\r':
			b.WriteString("`r")
		case '\t':
			b.WriteString("`t")
		default:
			b.WriteRune(r)
		}
	}
	b.WriteByte('"')
	return b.String()
}
