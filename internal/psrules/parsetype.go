package psrules

import (
	"strings"

	"github.com/airbus-cert/minusone/internal/ast"
	"github.com/airbus-cert/minusone/internal/rule"
	"github.com/airbus-cert/minusone/internal/traverse"
	"github.com/airbus-cert/minusone/internal/value"
)

// typeAccelerators maps PowerShell's built-in short type names to their
// fully qualified .NET names, the same normalization the Cast rule relies
// on to recognize "[char]", "[int]", "[string]" casts regardless of which
// spelling the obfuscated script used.
var typeAccelerators = map[string]string{
	"int":       "System.Int32",
	"long":      "System.Int64",
	"string":    "System.String",
	"char":      "System.Char",
	"byte":      "System.Byte",
	"bool":      "System.Boolean",
	"double":    "System.Double",
	"single":    "System.Single",
	"array":     "System.Array",
	"hashtable": "System.Collections.Hashtable",
	"convert":   "System.Convert",
}

// ParseType folds a type_literal node ("[System.Text.Encoding]", "[char]",
// …) into Raw(Type(name)) with the name normalized through the type
// accelerator table.
type ParseType struct{ rule.Base }

func (ParseType) Name() string { return "ParseType" }

func (ParseType) Leave(h ast.Handle, _ traverse.BranchFlow) {
	if h.Kind() != "type_literal" {
		return
	}
	name := NormalizeTypeName(strings.Trim(h.Text(), "[]"))
	h.Set(value.NewType(name).AsRaw())
}

// NormalizeTypeName expands a type accelerator to its fully qualified
// name, or returns name unchanged if it is already qualified or unknown.
func NormalizeTypeName(name string) string {
	if full, ok := typeAccelerators[strings.ToLower(name)]; ok {
		return full
	}
	return name
}
