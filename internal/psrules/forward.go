package psrules

import (
	"github.com/airbus-cert/minusone/internal/ast"
	"github.com/airbus-cert/minusone/internal/lang"
	"github.com/airbus-cert/minusone/internal/rule"
	"github.com/airbus-cert/minusone/internal/traverse"
)

var wrapperKinds = buildWrapperKindSet()

func buildWrapperKindSet() map[string]bool {
	set := make(map[string]bool)
	if spec := lang.ForLanguage(lang.Powershell); spec != nil {
		for _, k := range spec.WrapperNodeTypes {
			set[k] = true
		}
	}
	return set
}

// Forward propagates a single child's inferred value through a
// grammatically transparent wrapper node (parenthesized expressions and
// the grammar's various single-child expression wrappers). It never
// forwards a Raw value: the propagated annotation is marked Forwarded so
// that later rules needing a node's *own* literal (Raw(Num(_)), etc.)
// correctly refuse to fold through it and lose the original identity.
type Forward struct{ rule.Base }

func (Forward) Name() string { return "Forward" }

func (Forward) Leave(h ast.Handle, _ traverse.BranchFlow) {
	if !wrapperKinds[h.Kind()] {
		return
	}
	if h.ChildCount() != 1 {
		return
	}
	child, ok := h.Child(0)
	if !ok {
		return
	}
	val, ok := child.Data()
	if !ok {
		return
	}
	h.Set(val.Forwarded())
}
