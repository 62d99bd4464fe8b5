package psrules

import (
	"strings"

	"github.com/airbus-cert/minusone/internal/ast"
	"github.com/airbus-cert/minusone/internal/rule"
	"github.com/airbus-cert/minusone/internal/traverse"
	"github.com/airbus-cert/minusone/internal/value"
)

// ParseBool folds the $true / $false automatic variable literals into
// Raw(Bool(_)). PowerShell variable names are case-insensitive.
type ParseBool struct{ rule.Base }

func (ParseBool) Name() string { return "ParseBool" }

func (ParseBool) Leave(h ast.Handle, _ traverse.BranchFlow) {
	if h.Kind() != "variable" {
		return
	}
	switch strings.ToLower(h.Text()) {
	case "$true":
		h.Set(value.NewBool(true).AsRaw())
	case "$false":
		h.Set(value.NewBool(false).AsRaw())
	}
}
