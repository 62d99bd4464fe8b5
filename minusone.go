// Package minusone deobfuscates PowerShell source by parsing it into a
// concrete syntax tree, running the PowerShell rule library to a fixed
// point, and re-rendering the annotated tree as minimal, readable source.
// It never executes the input.
package minusone

import (
	"context"
	"encoding/hex"
	"fmt"
	"log/slog"
	"runtime"
	"sync"

	tree_sitter "github.com/tree-sitter/go-tree-sitter"
	"github.com/zeebo/xxh3"
	"golang.org/x/sync/errgroup"

	"github.com/airbus-cert/minusone/internal/ast"
	"github.com/airbus-cert/minusone/internal/engine"
	"github.com/airbus-cert/minusone/internal/lang"
	"github.com/airbus-cert/minusone/internal/parser"
	"github.com/airbus-cert/minusone/internal/psrules"
	"github.com/airbus-cert/minusone/internal/render"
)

// Result is one source's deobfuscation outcome: the rendered output plus
// engine diagnostics. Err is non-nil only for a hard failure (parse error
// or invariant violation); a pass-budget exhaustion is reported via
// Diagnostics.BudgetHit alongside the best-effort Output, not as Err.
type Result struct {
	Output      string
	Diagnostics engine.Diagnostics
	Err         error
}

// Deobfuscate parses source as language, folds it to a fixed point with
// the default rule set and pass budget, and renders the result. A
// *engine.BudgetExceeded is returned alongside the best-effort rendering
// of whatever the engine managed to infer before the budget ran out; every
// other error aborts with an empty string.
func Deobfuscate(source string, language lang.Language) (string, error) {
	out, _, err := deobfuscate(source, language, engine.DefaultOptions())
	return out, err
}

// DeobfuscateTagged behaves like Deobfuscate but returns the output as
// kind-tagged tokens for an HTML (or other syntax-highlighted) renderer.
func DeobfuscateTagged(source string, language lang.Language) ([]render.Token, error) {
	cst, annotations, _, err := runEngine(source, language, engine.DefaultOptions())
	if cst == nil {
		return nil, err
	}
	defer cst.Close()

	toks := render.RenderTagged(ast.NewView(cst.RootNode(), annotations))
	if _, budgetHit := err.(*engine.BudgetExceeded); err != nil && !budgetHit {
		return nil, err
	}
	return toks, err
}

// DeobfuscateAll runs the deobfuscation pipeline over many sources
// concurrently, bounding fan-out with an errgroup.Group. A source whose
// identical body has already been folded reuses that cached Result, keyed
// by an xxh3 content hash, to skip redundant work; identical bodies that
// are in flight at the same time are each folded.
func DeobfuscateAll(ctx context.Context, sources []string, language lang.Language) ([]Result, error) {
	results := make([]Result, len(sources))

	var cacheMu sync.Mutex
	cache := make(map[string]Result, len(sources))

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(runtime.NumCPU())
	for i, src := range sources {
		i, src := i, src
		g.Go(func() error {
			if gctx.Err() != nil {
				return gctx.Err()
			}
			key := contentHash(src)

			cacheMu.Lock()
			cached, hit := cache[key]
			cacheMu.Unlock()
			if hit {
				results[i] = cached
				return nil
			}

			out, diag, err := deobfuscate(src, language, engine.DefaultOptions())
			res := Result{Output: out, Diagnostics: diag}
			if err != nil {
				if _, budgetHit := err.(*engine.BudgetExceeded); !budgetHit {
					res.Err = err
				}
			}
			results[i] = res

			cacheMu.Lock()
			cache[key] = res
			cacheMu.Unlock()
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return results, err
	}
	return results, nil
}

func contentHash(s string) string {
	h := xxh3.New()
	_, _ = h.WriteString(s)
	return hex.EncodeToString(h.Sum(nil))
}

// deobfuscate runs the full parse-fold-render pipeline for one source and
// returns the rendered text alongside the engine's diagnostics. A
// *engine.BudgetExceeded renders best-effort and returns alongside it;
// every other error returns an empty string.
func deobfuscate(source string, language lang.Language, opts engine.Options) (string, engine.Diagnostics, error) {
	cst, annotations, diag, err := runEngine(source, language, opts)
	if cst == nil {
		return "", diag, err
	}
	defer cst.Close()

	if _, budgetHit := err.(*engine.BudgetExceeded); err != nil && !budgetHit {
		return "", diag, err
	}
	return render.Render(ast.NewView(cst.RootNode(), annotations)), diag, err
}

// runEngine parses source, drives the rule set to a fixed point, and
// returns the still-open tree-sitter tree (the caller must Close it once
// done reading nodes) alongside the annotation table. On a hard failure
// (parse error, unsupported language, invariant violation) cst is nil and
// there is nothing left to close.
func runEngine(source string, language lang.Language, opts engine.Options) (cst *tree_sitter.Tree, annotations *ast.Tree, diag engine.Diagnostics, err error) {
	spec := lang.ForLanguage(language)
	if spec == nil {
		return nil, nil, diag, fmt.Errorf("minusone: unsupported language %s", language)
	}

	cst, perr := parser.Parse(language, []byte(source))
	if perr != nil {
		return nil, nil, diag, perr
	}

	annotations = ast.NewTree([]byte(source))
	rules := psrules.DefaultRuleSet(opts.ByteArrayCap)

	diag, rerr := engine.Run(cst.RootNode(), annotations, spec, rules, opts)
	if rerr != nil {
		if _, budgetHit := rerr.(*engine.BudgetExceeded); budgetHit {
			slog.Warn("minusone.budget_exceeded", "passes", diag.Passes)
			return cst, annotations, diag, rerr
		}
		cst.Close()
		return nil, nil, diag, rerr
	}
	return cst, annotations, diag, nil
}
