// Package parser wraps the external tree-sitter grammar that produces the
// concrete syntax tree the engine annotates: no folding semantics live
// here, only grammar registration, pooled parsing, and raw text/identity
// extraction over tree-sitter nodes.
package parser

import (
	"fmt"
	"sync"

	tree_sitter "github.com/tree-sitter/go-tree-sitter"
	tree_sitter_powershell "github.com/airbus-cert/tree-sitter-powershell/bindings/go"

	"github.com/airbus-cert/minusone/internal/lang"
)

// Error wraps a tree-sitter grammar or parser-pool failure. Callers should
// treat it as the ParseError variant of the error taxonomy: it is
// propagated unchanged by the engine, never retried.
type Error struct {
	Language lang.Language
	Err      error
}

func (e *Error) Error() string {
	return fmt.Sprintf("parse %s: %v", e.Language, e.Err)
}

func (e *Error) Unwrap() error { return e.Err }

var (
	languagesOnce sync.Once
	languages     map[lang.Language]*tree_sitter.Language
	parserPools   map[lang.Language]*sync.Pool
)

func initLanguages() {
	languagesOnce.Do(func() {
		languages = map[lang.Language]*tree_sitter.Language{
			lang.Powershell: tree_sitter.NewLanguage(tree_sitter_powershell.Language()),
		}

		parserPools = make(map[lang.Language]*sync.Pool, len(languages))
		for l, tsLang := range languages {
			tsLang := tsLang
			parserPools[l] = &sync.Pool{
				New: func() any {
					p := tree_sitter.NewParser()
					if err := p.SetLanguage(tsLang); err != nil {
						panic(fmt.Sprintf("set language: %v", err))
					}
					return p
				},
			}
		}
	})
}

// GetLanguage returns the tree-sitter Language for a lang.Language.
func GetLanguage(l lang.Language) (*tree_sitter.Language, error) {
	initLanguages()
	tsLang, ok := languages[l]
	if !ok {
		return nil, &Error{Language: l, Err: fmt.Errorf("unsupported language")}
	}
	return tsLang, nil
}

// Parse parses source text into a tree-sitter CST.
// The caller must call tree.Close() when done. Parsers are pooled per
// language via sync.Pool to avoid per-call allocation.
func Parse(l lang.Language, source []byte) (*tree_sitter.Tree, error) {
	initLanguages()

	pool, ok := parserPools[l]
	if !ok {
		return nil, &Error{Language: l, Err: fmt.Errorf("unsupported language")}
	}

	p, _ := pool.Get().(*tree_sitter.Parser)
	if p == nil {
		return nil, &Error{Language: l, Err: fmt.Errorf("failed to acquire parser")}
	}
	tree := p.Parse(source, nil)
	pool.Put(p)

	if tree == nil {
		return nil, &Error{Language: l, Err: fmt.Errorf("parser returned no tree")}
	}

	return tree, nil
}

// WalkFunc is called for each node during a depth-first traversal.
// Return false to skip the node's children.
type WalkFunc func(node *tree_sitter.Node) bool

// Walk traverses the CST in depth-first, child-index order. It is used by
// callers (e.g. this package's tests) that need a plain traversal without the
// engine's enter/leave event structure; see internal/traverse for the
// engine's own pre/post-order visitor with branch-flow tagging.
func Walk(node *tree_sitter.Node, fn WalkFunc) {
	if node == nil {
		return
	}
	if !fn(node) {
		return
	}
	for i := uint(0); i < node.ChildCount(); i++ {
		child := node.Child(i)
		if child != nil {
			Walk(child, fn)
		}
	}
}

// NodeText returns the exact source substring covered by a node's span.
func NodeText(node *tree_sitter.Node, source []byte) string {
	return string(source[node.StartByte():node.EndByte()])
}
