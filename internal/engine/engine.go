// Package engine drives the rule-based tree-annotation process to a fixed
// point: repeated traversals over a RuleSet until a pass produces no
// change, or a bounded pass count is reached.
package engine

import (
	"log/slog"

	tree_sitter "github.com/tree-sitter/go-tree-sitter"

	"github.com/airbus-cert/minusone/internal/ast"
	"github.com/airbus-cert/minusone/internal/lang"
	"github.com/airbus-cert/minusone/internal/rule"
	"github.com/airbus-cert/minusone/internal/traverse"
)

// Options configures a single engine run. There is no persisted
// configuration: every field has a safe default and is set per call.
type Options struct {
	// MaxPasses bounds the fixed-point loop. Termination is guaranteed by
	// this bound regardless of whether the tree converges.
	MaxPasses int

	// ByteArrayCap bounds allocation rules like NewObjectArray ('New-Object
	// byte[] n') to avoid a single fold materializing an unbounded array.
	ByteArrayCap int
}

// DefaultOptions returns a 25-pass budget and a 2^20-element preallocation
// cap for rules like NewObjectArray that materialize arrays from a literal
// size.
func DefaultOptions() Options {
	return Options{MaxPasses: 25, ByteArrayCap: 1 << 20}
}

// Diagnostics summarizes one engine run for callers and logging.
type Diagnostics struct {
	Passes         int
	BudgetHit      bool
	AnnotatedNodes int
}

// Run drives rules to a fixed point over root, mutating tree's annotation
// table in place. It returns Diagnostics and, if the pass budget was
// exhausted while the tree was still dirty, a *BudgetExceeded alongside the
// best-effort Diagnostics (not a fatal error — see Deobfuscate). Any
// *ast.Tree.Fault a rule recorded via Handle.Fail is returned as the
// *InvariantError it wraps and aborts immediately, pass incomplete.
func Run(root *tree_sitter.Node, tree *ast.Tree, spec *lang.Spec, rules *rule.Set, opts Options) (Diagnostics, error) {
	var diag Diagnostics

	for pass := 1; pass <= opts.MaxPasses; pass++ {
		tree.Dirty = false

		traverse.Walk(root, tree, spec, rules)

		diag.Passes = pass
		diag.AnnotatedNodes = tree.Annotations.Len()

		if tree.Fault != nil {
			slog.Warn("engine.invariant_violation", "pass", pass, "err", tree.Fault)
			return diag, tree.Fault
		}

		if !tree.Dirty {
			slog.Info("engine.converged", "pass", pass)
			return diag, nil
		}
	}

	diag.BudgetHit = true
	slog.Warn("engine.budget_exceeded", "passes", opts.MaxPasses)
	return diag, &BudgetExceeded{Passes: opts.MaxPasses}
}
