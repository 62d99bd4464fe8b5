package render

import (
	"testing"

	"github.com/airbus-cert/minusone/internal/ast"
	"github.com/airbus-cert/minusone/internal/engine"
	"github.com/airbus-cert/minusone/internal/lang"
	"github.com/airbus-cert/minusone/internal/parser"
	"github.com/airbus-cert/minusone/internal/psrules"
)

func deobfuscate(t *testing.T, source string) string {
	t.Helper()
	tree, err := parser.Parse(lang.Powershell, []byte(source))
	if err != nil {
		t.Fatalf("Parse(%q): %v", source, err)
	}
	defer tree.Close()

	at := ast.NewTree([]byte(source))
	spec := lang.ForLanguage(lang.Powershell)
	rules := psrules.DefaultRuleSet(1 << 20)

	if _, err := engine.Run(tree.RootNode(), at, spec, rules, engine.DefaultOptions()); err != nil {
		t.Fatalf("Run(%q): %v", source, err)
	}
	return Render(ast.NewView(tree.RootNode(), at))
}

func TestRenderFoldsIntegerAddition(t *testing.T) {
	got := deobfuscate(t, "1+2")
	if got != "3" {
		t.Errorf("Render(1+2) = %q, want %q", got, "3")
	}
}

func TestRenderLowercasesVariableNames(t *testing.T) {
	got := deobfuscate(t, "$X = 1+2; $X")
	want := "$x = 3; $x"
	if got != want {
		t.Errorf("Render = %q, want %q", got, want)
	}
}

func TestRenderTaggedExposesTokenKinds(t *testing.T) {
	tree, err := parser.Parse(lang.Powershell, []byte("1+2"))
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}
	defer tree.Close()

	at := ast.NewTree([]byte("1+2"))
	spec := lang.ForLanguage(lang.Powershell)
	rules := psrules.DefaultRuleSet(1 << 20)
	if _, err := engine.Run(tree.RootNode(), at, spec, rules, engine.DefaultOptions()); err != nil {
		t.Fatalf("Run: %v", err)
	}

	toks := RenderTagged(ast.NewView(tree.RootNode(), at))
	if len(toks) != 1 {
		t.Fatalf("expected the whole fold to collapse to one token, got %d: %v", len(toks), toks)
	}
	if toks[0].Kind != NumberKind || toks[0].Text != "3" {
		t.Errorf("got %+v, want {Kind:number Text:3}", toks[0])
	}
}
