package psrules

import (
	"testing"

	"github.com/airbus-cert/minusone/internal/ast"
	"github.com/airbus-cert/minusone/internal/engine"
	"github.com/airbus-cert/minusone/internal/lang"
	"github.com/airbus-cert/minusone/internal/parser"
	"github.com/airbus-cert/minusone/internal/value"
)

// runSource parses source, drives DefaultRuleSet to a fixed point, and
// returns the resulting annotation tree for assertions.
func runSource(t *testing.T, source string) (ast.View, *ast.Tree) {
	t.Helper()
	tree, err := parser.Parse(lang.Powershell, []byte(source))
	if err != nil {
		t.Fatalf("Parse(%q): %v", source, err)
	}
	defer tree.Close()

	at := ast.NewTree([]byte(source))
	spec := lang.ForLanguage(lang.Powershell)
	rules := DefaultRuleSet(1 << 20)

	if _, err := engine.Run(tree.RootNode(), at, spec, rules, engine.DefaultOptions()); err != nil {
		t.Fatalf("Run(%q): %v", source, err)
	}
	return ast.NewView(tree.RootNode(), at), at
}

// findByKind returns the first descendant (pre-order) whose Kind matches,
// or ok=false.
func findByKind(v ast.View, kind string) (ast.View, bool) {
	if v.Kind() == kind {
		return v, true
	}
	for i := 0; i < v.ChildCount(); i++ {
		c, ok := v.Child(i)
		if !ok {
			continue
		}
		if found, ok := findByKind(c, kind); ok {
			return found, true
		}
	}
	return ast.View{}, false
}

func TestIntegerAdditionFolds(t *testing.T) {
	root, _ := runSource(t, "1+2")
	node, ok := findByKind(root, "additive_expression")
	if !ok {
		t.Fatal("no additive_expression in tree")
	}
	v, has := node.Data()
	if !has || v.Kind != value.Num || v.NumVal() != 3 {
		t.Errorf("got %v, want Num(3)", v)
	}
}

func TestJoinOfIndexedReversedString(t *testing.T) {
	root, _ := runSource(t, `-join 'gnirtSteG'[-1..-9]`)
	node, ok := findByKind(root, "unary_expression")
	if !ok {
		t.Fatal("no unary_expression in tree")
	}
	v, has := node.Data()
	if !has || v.Kind != value.Str || v.StrVal() != "GetString" {
		t.Errorf("got %v, want Str(\"GetString\")", v)
	}
}

func TestCharCastArrayJoin(t *testing.T) {
	root, _ := runSource(t, `-join (65,66,67 | % { [char] $_ })`)
	node, ok := findByKind(root, "unary_expression")
	if !ok {
		t.Fatal("no unary_expression in tree")
	}
	v, has := node.Data()
	if !has || v.Kind != value.Str || v.StrVal() != "ABC" {
		t.Errorf("got %v, want Str(\"ABC\")", v)
	}
}

func TestReplaceChain(t *testing.T) {
	root, _ := runSource(t, `'abc.def.ghi'.replace('abc',1).replace('def',2).replace('ghi',3)`)
	node, ok := findByKind(root, "invokation_expression")
	if !ok {
		t.Fatal("no invokation_expression in tree")
	}
	v, has := node.Data()
	if !has || v.Kind != value.Str || v.StrVal() != "1.2.3" {
		t.Errorf("got %v, want Str(\"1.2.3\")", v)
	}
}

func TestBase64AndUTF8Decode(t *testing.T) {
	root, _ := runSource(t, `[System.Text.Encoding]::UTF8.GetString([Convert]::FromBase64String('aGVsbG8='))`)
	node, ok := findByKind(root, "invokation_expression")
	if !ok {
		t.Fatal("no invokation_expression in tree")
	}
	v, has := node.Data()
	if !has || v.Kind != value.Str || v.StrVal() != "hello" {
		t.Errorf("got %v, want Str(\"hello\")", v)
	}
}

func TestVariablePropagation(t *testing.T) {
	root, _ := runSource(t, "$x = 1+2; $x")
	var last ast.View
	var found bool
	var walk func(ast.View)
	walk = func(v ast.View) {
		if v.Kind() == "variable" {
			last, found = v, true
		}
		for i := 0; i < v.ChildCount(); i++ {
			if c, ok := v.Child(i); ok {
				walk(c)
			}
		}
	}
	walk(root)
	if !found {
		t.Fatal("no variable node in tree")
	}
	v, has := last.Data()
	if !has || v.Kind != value.Num || v.NumVal() != 3 {
		t.Errorf("got %v, want Num(3) propagated from binding", v)
	}
}

func TestFormatStringPositionalArgs(t *testing.T) {
	root, _ := runSource(t, `'{0}-{1}' -f 'a', 'b'`)
	node, ok := findByKind(root, "comparison_expression")
	if !ok {
		t.Fatal("no comparison_expression in tree")
	}
	v, has := node.Data()
	if !has || v.Kind != value.Str || v.StrVal() != "a-b" {
		t.Errorf("got %v, want Str(\"a-b\")", v)
	}
}
