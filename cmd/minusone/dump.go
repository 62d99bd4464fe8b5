package main

import (
	"fmt"
	"io"
	"strings"

	tree_sitter "github.com/tree-sitter/go-tree-sitter"

	"github.com/airbus-cert/minusone/internal/lang"
	"github.com/airbus-cert/minusone/internal/parser"
)

// dumpAST prints the raw tree-sitter parse tree for source with no rules
// applied: one line per node, indented by depth, showing kind and a
// truncated text span. Useful for debugging the parser boundary
// independent of the rule engine.
func dumpAST(w io.Writer, source string) error {
	tree, err := parser.Parse(lang.Powershell, []byte(source))
	if err != nil {
		return err
	}
	defer tree.Close()

	printNode(w, tree.RootNode(), []byte(source), 0)
	return nil
}

func printNode(w io.Writer, node *tree_sitter.Node, source []byte, indent int) {
	if node == nil {
		return
	}
	text := string(source[node.StartByte():node.EndByte()])
	if len(text) > 60 {
		text = text[:60] + "..."
	}
	fmt.Fprintf(w, "%s%s %q\n", strings.Repeat("  ", indent), node.Kind(), text)
	for i := uint(0); i < node.ChildCount(); i++ {
		printNode(w, node.Child(i), source, indent+1)
	}
}
