package parser

import (
	"testing"

	tree_sitter "github.com/tree-sitter/go-tree-sitter"

	"github.com/airbus-cert/minusone/internal/lang"
)

func TestParseIntegerAddition(t *testing.T) {
	source := []byte(`1+2`)
	tree, err := Parse(lang.Powershell, source)
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}
	defer tree.Close()

	root := tree.RootNode()
	if root == nil {
		t.Fatal("root node is nil")
	}

	var addCount, litCount int
	Walk(root, func(n *tree_sitter.Node) bool {
		switch n.Kind() {
		case "additive_expression":
			addCount++
		case "decimal_integer_literal":
			litCount++
		}
		return true
	})
	if addCount != 1 {
		t.Errorf("expected 1 additive_expression, got %d", addCount)
	}
	if litCount != 2 {
		t.Errorf("expected 2 decimal_integer_literal, got %d", litCount)
	}
}

func TestParseCommandInvocation(t *testing.T) {
	source := []byte(`Write-Host "hello"`)
	tree, err := Parse(lang.Powershell, source)
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}
	defer tree.Close()

	var invokeCount int
	Walk(tree.RootNode(), func(n *tree_sitter.Node) bool {
		if n.Kind() == "command_invokation" {
			invokeCount++
		}
		return true
	})
	if invokeCount != 1 {
		t.Errorf("expected 1 command_invokation, got %d", invokeCount)
	}
}

func TestGetLanguageUnsupported(t *testing.T) {
	if _, err := GetLanguage(lang.Language("cobol")); err == nil {
		t.Error("expected error for unsupported language")
	}
}

func TestAllLanguagesLoad(t *testing.T) {
	for _, l := range lang.AllLanguages() {
		if _, err := GetLanguage(l); err != nil {
			t.Errorf("GetLanguage(%s): %v", l, err)
		}
	}
}

func TestNodeText(t *testing.T) {
	source := []byte(`$x = 1+2`)
	tree, err := Parse(lang.Powershell, source)
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}
	defer tree.Close()

	var found string
	Walk(tree.RootNode(), func(n *tree_sitter.Node) bool {
		if n.Kind() == "additive_expression" {
			found = NodeText(n, source)
			return false
		}
		return true
	})
	if found != "1+2" {
		t.Errorf("expected %q, got %q", "1+2", found)
	}
}
