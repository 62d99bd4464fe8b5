package psrules

import (
	"github.com/airbus-cert/minusone/internal/ast"
	"github.com/airbus-cert/minusone/internal/rule"
	"github.com/airbus-cert/minusone/internal/traverse"
	"github.com/airbus-cert/minusone/internal/value"
)

// ParseHash folds a hash_literal_expression node ("@{k=v; …}") into
// Raw(Hash([...])) once every entry's key and value are fully inferred.
type ParseHash struct{ rule.Base }

func (ParseHash) Name() string { return "ParseHash" }

func (ParseHash) Leave(h ast.Handle, _ traverse.BranchFlow) {
	if h.Kind() != "hash_literal_expression" {
		return
	}
	n := h.NamedChildCount()
	entries := make([]value.Value, 0, n)
	for i := 0; i < n; i++ {
		entryNode, ok := h.NamedChild(i)
		if !ok {
			return
		}
		if entryNode.Kind() != "hash_entry" || entryNode.NamedChildCount() != 2 {
			return
		}
		keyNode, ok := entryNode.NamedChild(0)
		if !ok {
			return
		}
		valNode, ok := entryNode.NamedChild(1)
		if !ok {
			return
		}
		keyVal, hasKey := keyNode.Data()
		valVal, hasVal := valNode.Data()
		if !hasKey || !hasVal {
			return
		}
		entries = append(entries, value.NewHashEntry(keyVal, valVal))
	}
	h.Set(value.NewHash(entries).AsRaw())
}
