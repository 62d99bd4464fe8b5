// Package value implements InferredValue, the lattice of deobfuscated
// values the engine annotates tree nodes with, and the typed operators
// (arithmetic, casts, comparisons) PowerShell rules fold through.
//
// InferredValue is a closed tagged union represented as a struct with a
// Kind discriminator; callers exhaustively switch on Kind rather than type
// assert, the same shape the fold rules in internal/psrules expect.
package value

import (
	"fmt"
	"strings"
)

// Kind discriminates the variant an InferredValue carries.
type Kind int

const (
	// Num is the zero Kind, so an unset Value (ast.View with no annotation)
	// reads as Num(0); callers must check the ok result of ast.View.Data
	// before switching on Kind.
	Num Kind = iota
	Str
	Bool
	Array
	HashEntry
	Hash
	Type
	Null
)

func (k Kind) String() string {
	switch k {
	case Num:
		return "Num"
	case Str:
		return "Str"
	case Bool:
		return "Bool"
	case Array:
		return "Array"
	case HashEntry:
		return "HashEntry"
	case Hash:
		return "Hash"
	case Type:
		return "Type"
	case Null:
		return "Null"
	default:
		return "Unknown"
	}
}

// Value is an InferredValue: a tagged union over the variants in Kind.
// Raw distinguishes a node's own literal fold from a value forwarded
// through a transparent wrapper node — rules that need a concrete literal
// match on Raw and refuse to fold through a forwarded value whose identity
// would be lost.
type Value struct {
	Kind Kind
	Raw  bool

	num  int64
	str  string
	bl   bool
	arr  []Value
	hash []Value // Kind == HashEntry pairs, in insertion order
	typ  string

	// hashKey/hashVal back a single HashEntry; arr/hash are unused on it.
	hashKey *Value
	hashVal *Value
}

// NewNum constructs a Num value.
func NewNum(n int64) Value { return Value{Kind: Num, num: n} }

// NewStr constructs a Str value.
func NewStr(s string) Value { return Value{Kind: Str, str: s} }

// NewBool constructs a Bool value.
func NewBool(b bool) Value { return Value{Kind: Bool, bl: b} }

// NewArray constructs an Array value, preserving element order.
func NewArray(elems []Value) Value {
	cp := make([]Value, len(elems))
	copy(cp, elems)
	return Value{Kind: Array, arr: cp}
}

// NewHashEntry constructs a single key/value hashtable entry.
func NewHashEntry(key, val Value) Value {
	k, v := key, val
	return Value{Kind: HashEntry, hashKey: &k, hashVal: &v}
}

// NewHash constructs a Hash value from entries, preserving insertion order.
// Every element of entries must have Kind == HashEntry.
func NewHash(entries []Value) Value {
	cp := make([]Value, len(entries))
	copy(cp, entries)
	return Value{Kind: Hash, hash: cp}
}

// NewType constructs a Type value from a normalized type name, e.g.
// "System.Text.Encoding".
func NewType(name string) Value { return Value{Kind: Type, typ: name} }

// NewNull constructs the Null value (e.g. the $null automatic variable).
func NewNull() Value { return Value{Kind: Null} }

// AsRaw returns a copy of v with Raw set, marking it as a node's own
// literal fold rather than a value forwarded from a child.
func (v Value) AsRaw() Value {
	v.Raw = true
	return v
}

// Forwarded returns a copy of v with Raw cleared, the form a wrapper node
// propagates a child's value upward as.
func (v Value) Forwarded() Value {
	v.Raw = false
	return v
}

// NumVal returns the integer payload; valid only when Kind == Num.
func (v Value) NumVal() int64 { return v.num }

// StrVal returns the string payload; valid only when Kind == Str.
func (v Value) StrVal() string { return v.str }

// BoolVal returns the boolean payload; valid only when Kind == Bool.
func (v Value) BoolVal() bool { return v.bl }

// ArrayVal returns the element slice; valid only when Kind == Array.
// The returned slice is owned by the caller; mutating it does not affect v.
func (v Value) ArrayVal() []Value {
	cp := make([]Value, len(v.arr))
	copy(cp, v.arr)
	return cp
}

// HashEntries returns the entry slice; valid only when Kind == Hash.
func (v Value) HashEntries() []Value {
	cp := make([]Value, len(v.hash))
	copy(cp, v.hash)
	return cp
}

// EntryKey returns the key of a HashEntry value.
func (v Value) EntryKey() Value { return *v.hashKey }

// EntryValue returns the value of a HashEntry value.
func (v Value) EntryValue() Value { return *v.hashVal }

// TypeName returns the normalized type name; valid only when Kind == Type.
func (v Value) TypeName() string { return v.typ }

// Equal reports whether two values are semantically equal, using
// PowerShell's default case-insensitive string comparison (see
// CaseSensitiveEqual for the -c* comparison operators). Equal is the test
// the engine uses to decide whether overwriting an annotation should raise
// the dirty flag.
func (v Value) Equal(other Value) bool {
	if v.Kind != other.Kind {
		return false
	}
	switch v.Kind {
	case Num:
		return v.num == other.num
	case Str:
		return strings.EqualFold(v.str, other.str)
	case Bool:
		return v.bl == other.bl
	case Type:
		return strings.EqualFold(v.typ, other.typ)
	case Null:
		return true
	case Array:
		if len(v.arr) != len(other.arr) {
			return false
		}
		for i := range v.arr {
			if !v.arr[i].Equal(other.arr[i]) {
				return false
			}
		}
		return true
	case HashEntry:
		return v.hashKey.Equal(*other.hashKey) && v.hashVal.Equal(*other.hashVal)
	case Hash:
		if len(v.hash) != len(other.hash) {
			return false
		}
		for i := range v.hash {
			if !v.hash[i].Equal(other.hash[i]) {
				return false
			}
		}
		return true
	default:
		return false
	}
}

// CaseSensitiveEqual compares two Str or Type values byte-for-byte, backing
// the -ceq/-cne comparison operators. Any other Kind pair falls back to
// Equal.
func (v Value) CaseSensitiveEqual(other Value) bool {
	if v.Kind != other.Kind {
		return false
	}
	switch v.Kind {
	case Str:
		return v.str == other.str
	case Type:
		return v.typ == other.typ
	default:
		return v.Equal(other)
	}
}

func (v Value) String() string {
	switch v.Kind {
	case Num:
		return fmt.Sprintf("Num(%d)", v.num)
	case Str:
		return fmt.Sprintf("Str(%q)", v.str)
	case Bool:
		return fmt.Sprintf("Bool(%v)", v.bl)
	case Array:
		return fmt.Sprintf("Array(%v)", v.arr)
	case HashEntry:
		return fmt.Sprintf("HashEntry(%v=%v)", v.hashKey, v.hashVal)
	case Hash:
		return fmt.Sprintf("Hash(%v)", v.hash)
	case Type:
		return fmt.Sprintf("Type(%s)", v.typ)
	case Null:
		return "Null"
	default:
		return "Unknown"
	}
}
