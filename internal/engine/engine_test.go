package engine

import (
	"testing"

	"github.com/airbus-cert/minusone/internal/ast"
	"github.com/airbus-cert/minusone/internal/lang"
	"github.com/airbus-cert/minusone/internal/parser"
	"github.com/airbus-cert/minusone/internal/rule"
	"github.com/airbus-cert/minusone/internal/traverse"
	"github.com/airbus-cert/minusone/internal/value"
)

// parseIntRule folds decimal_integer_literal nodes, in one leave pass —
// enough to exercise Run's convergence and diagnostics without depending
// on the full PowerShell rule library.
type parseIntRule struct{ rule.Base }

func (parseIntRule) Name() string { return "testParseInt" }

func (parseIntRule) Leave(h ast.Handle, _ traverse.BranchFlow) {
	if h.Kind() != "decimal_integer_literal" {
		return
	}
	var n int64
	for _, c := range h.Text() {
		if c < '0' || c > '9' {
			return
		}
		n = n*10 + int64(c-'0')
	}
	h.Set(value.NewNum(n).AsRaw())
}

// addIntRule folds "L + R" additive_expression nodes whose operands are
// already Num. It fires in the same pass as parseIntRule: both literals'
// Leave events come before the additive_expression's.
type addIntRule struct{ rule.Base }

func (addIntRule) Name() string { return "testAddInt" }

func (addIntRule) Leave(h ast.Handle, _ traverse.BranchFlow) {
	if h.Kind() != "additive_expression" || h.ChildCount() != 3 {
		return
	}
	l, lok := mustChild(h, 0)
	r, rok := mustChild(h, 2)
	if !lok || !rok {
		return
	}
	lv, ok := l.Data()
	if !ok || lv.Kind != value.Num {
		return
	}
	rv, ok := r.Data()
	if !ok || rv.Kind != value.Num {
		return
	}
	h.Set(value.NewNum(lv.NumVal() + rv.NumVal()).AsRaw())
}

func mustChild(h ast.Handle, i int) (ast.View, bool) {
	return h.Child(i)
}

func TestRunConvergesAndFoldsAddition(t *testing.T) {
	tree, err := parser.Parse(lang.Powershell, []byte("1+2"))
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}
	defer tree.Close()

	at := ast.NewTree([]byte("1+2"))
	spec := lang.ForLanguage(lang.Powershell)
	rules := rule.NewSet(parseIntRule{}, addIntRule{})

	diag, err := Run(tree.RootNode(), at, spec, rules, DefaultOptions())
	if err != nil {
		t.Fatalf("Run: %v", err)
	}
	if diag.Passes < 1 {
		t.Errorf("expected at least 1 pass, got %d", diag.Passes)
	}

	var foundSum bool
	view := ast.NewView(tree.RootNode(), at)
	walkAdditive(t, view, &foundSum)
	if !foundSum {
		t.Error("expected the additive_expression to be annotated Num(3)")
	}
}

func walkAdditive(t *testing.T, v ast.View, foundSum *bool) {
	t.Helper()
	if v.Kind() == "additive_expression" {
		val, ok := v.Data()
		if ok && val.Kind == value.Num && val.NumVal() == 3 {
			*foundSum = true
		}
	}
	for i := 0; i < v.ChildCount(); i++ {
		c, ok := v.Child(i)
		if !ok {
			continue
		}
		walkAdditive(t, c, foundSum)
	}
}

// flipFlopRule never converges: it changes a node's annotation on every
// pass (1, 2, 3, …), exercising the pass budget.
type flipFlopRule struct{ rule.Base }

func (flipFlopRule) Name() string { return "testFlipFlop" }

func (flipFlopRule) Leave(h ast.Handle, _ traverse.BranchFlow) {
	if h.Kind() != "decimal_integer_literal" {
		return
	}
	cur, ok := h.Data()
	if !ok || cur.NumVal() == 0 {
		h.Set(value.NewNum(1).AsRaw())
		return
	}
	h.Set(value.NewNum(cur.NumVal() + 1).AsRaw())
}

func TestRunStopsAtBudgetWithoutConvergence(t *testing.T) {
	tree, err := parser.Parse(lang.Powershell, []byte("1+2"))
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}
	defer tree.Close()

	at := ast.NewTree([]byte("1+2"))
	spec := lang.ForLanguage(lang.Powershell)
	rules := rule.NewSet(flipFlopRule{})

	opts := DefaultOptions()
	opts.MaxPasses = 5

	diag, err := Run(tree.RootNode(), at, spec, rules, opts)
	if err == nil {
		t.Fatal("expected BudgetExceeded error")
	}
	if _, ok := err.(*BudgetExceeded); !ok {
		t.Errorf("expected *BudgetExceeded, got %T: %v", err, err)
	}
	if diag.Passes != opts.MaxPasses {
		t.Errorf("expected %d passes, got %d", opts.MaxPasses, diag.Passes)
	}
	if !diag.BudgetHit {
		t.Error("expected BudgetHit to be true")
	}
}
