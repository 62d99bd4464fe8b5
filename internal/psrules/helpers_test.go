package psrules

import (
	"testing"

	"github.com/airbus-cert/minusone/internal/value"
)

func TestResolveIndexNegativeFromRight(t *testing.T) {
	cases := []struct {
		length int
		idx    int64
		want   int
		ok     bool
	}{
		{9, -1, 8, true},
		{9, -9, 0, true},
		{9, -10, 0, false},
		{9, 0, 0, true},
		{9, 8, 8, true},
		{9, 9, 0, false},
	}
	for _, c := range cases {
		got, ok := resolveIndex(c.length, c.idx)
		if ok != c.ok || (ok && got != c.want) {
			t.Errorf("resolveIndex(%d, %d) = (%d, %v), want (%d, %v)", c.length, c.idx, got, ok, c.want, c.ok)
		}
	}
}

func TestContainsRegexMeta(t *testing.T) {
	if !containsRegexMeta("a.b") {
		t.Error("expected '.' to be detected as a metacharacter")
	}
	if containsRegexMeta("abc") {
		t.Error("expected plain text to contain no metacharacters")
	}
}

func TestApplyFormatPositional(t *testing.T) {
	out, ok := applyFormat("{0}-{1}", []value.Value{value.NewStr("a"), value.NewStr("b")})
	if !ok || out != "a-b" {
		t.Errorf("applyFormat = (%q, %v), want (\"a-b\", true)", out, ok)
	}
}

func TestApplyFormatDeclinesOnFormatSpec(t *testing.T) {
	if _, ok := applyFormat("{0:N2}", []value.Value{value.NewNum(1)}); ok {
		t.Error("expected decline on a format specifier")
	}
}

func TestParseIntegerLiteralMultiplier(t *testing.T) {
	n, ok := parseIntegerLiteral("1kb")
	if !ok || n != 1024 {
		t.Errorf("parseIntegerLiteral(1kb) = (%d, %v), want (1024, true)", n, ok)
	}
	n, ok = parseIntegerLiteral("2mb")
	if !ok || n != 2*1<<20 {
		t.Errorf("parseIntegerLiteral(2mb) = (%d, %v), want (%d, true)", n, ok, 2*1<<20)
	}
}

func TestParseIntegerLiteralTypeSuffix(t *testing.T) {
	n, ok := parseIntegerLiteral("42l")
	if !ok || n != 42 {
		t.Errorf("parseIntegerLiteral(42l) = (%d, %v), want (42, true)", n, ok)
	}
}

func TestApplyFormatAlignment(t *testing.T) {
	out, ok := applyFormat("{0,10}", []value.Value{value.NewStr("x")})
	if !ok || out != "         x" {
		t.Errorf("applyFormat right-align = (%q, %v), want (%q, true)", out, ok, "         x")
	}

	out, ok = applyFormat("{0,-10}", []value.Value{value.NewStr("x")})
	if !ok || out != "x         " {
		t.Errorf("applyFormat left-align = (%q, %v), want (%q, true)", out, ok, "x         ")
	}
}
