package value

import "testing"

func TestAddIntegers(t *testing.T) {
	v, ok := Add(NewNum(1), NewNum(2))
	if !ok {
		t.Fatal("expected Add to fold")
	}
	if v.NumVal() != 3 {
		t.Errorf("1+2 = %d, want 3", v.NumVal())
	}
	if !v.Raw {
		t.Error("expected Add result to be Raw")
	}
}

func TestAddIntegerOverflowWraps(t *testing.T) {
	v, ok := Add(NewNum(9223372036854775807), NewNum(1))
	if !ok {
		t.Fatal("expected Add to fold despite overflow")
	}
	if v.NumVal() != -9223372036854775808 {
		t.Errorf("expected wraparound, got %d", v.NumVal())
	}
}

func TestStringRepetition(t *testing.T) {
	v, ok := Mult(NewStr("ab"), NewNum(3))
	if !ok || v.StrVal() != "ababab" {
		t.Fatalf("Mult(\"ab\",3) = %v, ok=%v", v, ok)
	}
}

func TestStringConcatWithNumber(t *testing.T) {
	v, ok := Add(NewStr("n="), NewNum(5))
	if !ok || v.StrVal() != "n=5" {
		t.Fatalf("Add(str,num) = %v, ok=%v", v, ok)
	}
}

func TestDivByZeroDeclines(t *testing.T) {
	if _, ok := Div(NewNum(4), NewNum(0)); ok {
		t.Error("expected division by zero to decline folding")
	}
}

func TestCastNumToChar(t *testing.T) {
	v, ok := CastToChar(NewNum(65))
	if !ok || v.StrVal() != "A" {
		t.Fatalf("CastToChar(65) = %v, ok=%v", v, ok)
	}
}

func TestCastStrToNumDeclinesOnBadInput(t *testing.T) {
	if _, ok := CastToNum(NewStr("not a number")); ok {
		t.Error("expected CastToNum to decline on unparsable input")
	}
}

func TestCastArrayToStrJoinsWithNoSeparator(t *testing.T) {
	arr := NewArray([]Value{NewStr("a"), NewStr("b"), NewNum(3)})
	v, ok := CastToStr(arr)
	if !ok || v.StrVal() != "ab3" {
		t.Fatalf("CastToStr(array) = %v, ok=%v", v, ok)
	}
}
