// Package rule defines the Rule abstraction and RuleSet composition that
// fan traversal events out to the PowerShell fold rules in internal/psrules.
package rule

import (
	"github.com/airbus-cert/minusone/internal/ast"
	"github.com/airbus-cert/minusone/internal/traverse"
)

// Rule inspects one node kind on enter and/or leave and may annotate it.
// Either callback may be a no-op. Rules are stateless across nodes except
// where they explicitly maintain collector state (e.g. Var's binding
// table), which they own exclusively.
type Rule interface {
	// Name identifies the rule by a short name, e.g. "AddInt".
	Name() string
	Enter(h ast.Handle, flow traverse.BranchFlow)
	Leave(h ast.Handle, flow traverse.BranchFlow)
}

// Base is embedded by rules that only implement one of Enter/Leave, so
// they don't each need to write an empty method body for the other.
type Base struct{}

func (Base) Enter(ast.Handle, traverse.BranchFlow) {}
func (Base) Leave(ast.Handle, traverse.BranchFlow) {}

// Set is an ordered, fixed tuple of rules. On each traversal event the
// engine fans the event out to every rule in Set's order: a later rule
// observes mutations an earlier rule performed on the same node in the
// same event, which is how layered folding (ParseInt before AddInt,
// Forward before its consumers) composes.
type Set struct {
	rules []Rule
}

// NewSet composes a fixed RuleSet from rules in declaration order.
func NewSet(rules ...Rule) *Set {
	return &Set{rules: rules}
}

// Enter implements traverse.Visitor by fanning out to every rule in order.
func (s *Set) Enter(h ast.Handle, flow traverse.BranchFlow) {
	for _, r := range s.rules {
		r.Enter(h, flow)
	}
}

// Leave implements traverse.Visitor by fanning out to every rule in order.
func (s *Set) Leave(h ast.Handle, flow traverse.BranchFlow) {
	for _, r := range s.rules {
		r.Leave(h, flow)
	}
}

// Rules returns the ordered rule tuple, e.g. for diagnostics enumeration.
func (s *Set) Rules() []Rule { return s.rules }
