package render

import (
	"strings"

	"github.com/airbus-cert/minusone/internal/ast"
	"github.com/airbus-cert/minusone/internal/value"
)

// Render walks view depth-first and reconstructs minimal PowerShell source:
// substituting the pretty-printed form of every safe-to-fold Raw annotation,
// and otherwise re-emitting each node from its own children and the source
// text between them.
func Render(view ast.View) string {
	var b strings.Builder
	renderInto(&b, view)
	return b.String()
}

func renderInto(b *strings.Builder, v ast.View) {
	if val, ok := v.Data(); ok && val.Raw && safeToSubstitute(v) {
		b.WriteString(value.PrettyPrint(val))
		return
	}

	n := v.ChildCount()
	if n == 0 {
		b.WriteString(lowerIfIdentifier(v))
		return
	}

	text := v.Text()
	start := v.Node().StartByte()
	prev := start
	commandField, hasCommandField := v.ChildByFieldName("command")
	for i := 0; i < n; i++ {
		c, ok := v.Child(i)
		if !ok {
			continue
		}
		b.WriteString(text[prev-start : c.Node().StartByte()-start])
		prev = c.Node().EndByte()
		if hasCommandField && v.Kind() == "command_invokation" && c.Node() == commandField.Node() {
			b.WriteString(strings.ToLower(Render(c)))
			continue
		}
		renderInto(b, c)
	}
	b.WriteString(text[prev-start:])
}

// lowerIfIdentifier applies the identifier-casing policy to a leaf node:
// variable names are lowercased (the "$" sigil included); everything else
// is emitted verbatim, preserving string content's original case.
func lowerIfIdentifier(v ast.View) string {
	if v.Kind() == "variable" {
		return strings.ToLower(v.Text())
	}
	return v.Text()
}

// safeToSubstitute reports whether v's Raw annotation may be replaced by
// its pretty-printed value without changing program meaning: not the
// left-hand variable of an assignment, where the rendered value would
// replace the binding target rather than its value.
func safeToSubstitute(v ast.View) bool {
	return !isAssignmentTarget(v)
}

func isAssignmentTarget(v ast.View) bool {
	parent, ok := v.Parent()
	if !ok || parent.Kind() != "assignment_expression" {
		return false
	}
	first, ok := parent.Child(0)
	if !ok {
		return false
	}
	return first.Node() == v.Node()
}
