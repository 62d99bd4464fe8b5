package psrules

import (
	"github.com/airbus-cert/minusone/internal/rule"
)

// DefaultRuleSet composes the full PowerShell rule library in the order
// layered folding depends on: parsers and Forward first so downstream
// rules see inferred values on their operands, then arithmetic/string/array
// operations, then the rules that consume fully-inferred arrays or
// strings (join, replace, decode), then variable propagation last so it
// sees whatever the rest of the pass already folded on a predictable path.
//
// byteArrayCap bounds NewObjectArray's preallocation per engine.Options.
func DefaultRuleSet(byteArrayCap int) *rule.Set {
	varRule := newVarRule()
	psItemInferrator, forEach := newPipeRules()

	return rule.NewSet(
		// Literal parsers — establish Raw values on leaf nodes.
		ParseInt{},
		ParseString{},
		ParseBool{},
		ParseType{},

		// Grammar-transparent propagation; must run before consumers so a
		// wrapped literal's value is visible (as a forwarded, non-Raw
		// annotation) to the rules below.
		Forward{},

		// Arithmetic / string / array construction.
		AddInt{},
		MultInt{},
		ParseArrayLiteral{},
		ParseRange{Cap: byteArrayCap},
		ComputeArrayExpr{},
		ParseHash{},
		Cast{},
		CastNull{},

		// Indexing, joining, replacing — all consume fully-inferred
		// operands produced above.
		AccessString{},
		JoinOperator{},
		JoinComparison{},
		JoinStringMethod{},
		StringReplaceMethod{},
		StringReplaceOp{},
		FormatString{},

		// Pipeline character-cast idiom.
		psItemInferrator,
		forEach,

		// Decoding.
		DecodeBase64{},
		FromUTF{},

		// Predicates / comparisons / misc accessors.
		Comparison{},
		Not{},
		BoolAlgebra{},
		Length{},
		NewObjectArray{ByteArrayCap: byteArrayCap},

		// Variable propagation — last, so it captures whatever the pass
		// already folded for an assignment's right-hand side.
		StaticVar{},
		varRule,
	)
}

