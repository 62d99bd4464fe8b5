package render

import (
	"strings"
	"unicode"

	"github.com/airbus-cert/minusone/internal/ast"
	"github.com/airbus-cert/minusone/internal/value"
)

// TokenKind is one of the small alphabet the external HTML renderer tags
// emitted spans with.
type TokenKind string

const (
	KeywordKind  TokenKind = "keyword"
	NumberKind   TokenKind = "number"
	StringKind   TokenKind = "string"
	VariableKind TokenKind = "variable"
	TypeKind     TokenKind = "type"
	OperatorKind TokenKind = "operator"
	CommentKind  TokenKind = "comment"
)

// Token is one emitted fragment of rendered source together with its kind,
// the unit the HTML renderer wraps in a tagged span.
type Token struct {
	Kind TokenKind
	Text string
}

// RenderTagged performs the same substitution walk as Render but returns
// the output as a sequence of kind-tagged tokens instead of one string.
// Unlike Render, it emits no token for the source text between a node's
// children (such as whitespace), so the joined token texts omit that text.
func RenderTagged(view ast.View) []Token {
	var toks []Token
	renderTaggedInto(&toks, view)
	return toks
}

func renderTaggedInto(toks *[]Token, v ast.View) {
	if val, ok := v.Data(); ok && val.Raw && safeToSubstitute(v) {
		*toks = append(*toks, Token{Kind: kindOfValue(val.Kind), Text: value.PrettyPrint(val)})
		return
	}

	n := v.ChildCount()
	if n == 0 {
		*toks = append(*toks, Token{Kind: kindOfLeaf(v), Text: lowerIfIdentifier(v)})
		return
	}

	commandField, hasCommandField := v.ChildByFieldName("command")
	for i := 0; i < n; i++ {
		c, ok := v.Child(i)
		if !ok {
			continue
		}
		if hasCommandField && v.Kind() == "command_invokation" && c.Node() == commandField.Node() {
			*toks = append(*toks, Token{Kind: KeywordKind, Text: strings.ToLower(Render(c))})
			continue
		}
		renderTaggedInto(toks, c)
	}
}

// kindOfValue maps a substituted InferredValue's Kind to the token-kind
// alphabet. Array/Hash/HashEntry/Null don't have a dedicated slot in the
// alphabet the HTML collaborator defines; they render as composite literal
// syntax ("@(...)", "@{...}", "$null") closest in spirit to a string
// literal, so they're tagged String.
func kindOfValue(k value.Kind) TokenKind {
	switch k {
	case value.Num:
		return NumberKind
	case value.Str:
		return StringKind
	case value.Bool:
		return KeywordKind
	case value.Type:
		return TypeKind
	default:
		return StringKind
	}
}

// kindOfLeaf classifies an unsubstituted leaf node by its grammar kind and
// text shape.
func kindOfLeaf(v ast.View) TokenKind {
	switch v.Kind() {
	case "variable":
		return VariableKind
	case "type_literal":
		return TypeKind
	case "comment":
		return CommentKind
	}
	switch {
	case isNumericLiteralKind(v.Kind()):
		return NumberKind
	case isStringLiteralKind(v.Kind()):
		return StringKind
	case isSymbolOnly(v.Text()):
		return OperatorKind
	default:
		return KeywordKind
	}
}

func isNumericLiteralKind(kind string) bool {
	return strings.Contains(kind, "integer_literal") || strings.Contains(kind, "number_literal")
}

func isStringLiteralKind(kind string) bool {
	return strings.Contains(kind, "string_literal")
}

func isSymbolOnly(text string) bool {
	if text == "" {
		return false
	}
	for _, r := range text {
		if unicode.IsLetter(r) || unicode.IsDigit(r) {
			return false
		}
	}
	return true
}
