package minusone

import (
	"context"
	"testing"

	"github.com/airbus-cert/minusone/internal/lang"
)

func TestDeobfuscateIntegerAddition(t *testing.T) {
	out, err := Deobfuscate("1+2", lang.Powershell)
	if err != nil {
		t.Fatalf("Deobfuscate: %v", err)
	}
	if out != "3" {
		t.Errorf("got %q, want %q", out, "3")
	}
}

func TestDeobfuscateJoinOfIndexedReversedString(t *testing.T) {
	out, err := Deobfuscate(`-join 'gnirtSteG'[-1..-9]`, lang.Powershell)
	if err != nil {
		t.Fatalf("Deobfuscate: %v", err)
	}
	if out != `"GetString"` {
		t.Errorf("got %q, want %q", out, `"GetString"`)
	}
}

func TestDeobfuscateUnsupportedLanguage(t *testing.T) {
	if _, err := Deobfuscate("1+2", lang.Language("cobol")); err == nil {
		t.Error("expected an error for an unsupported language")
	}
}

func TestDeobfuscateTaggedReturnsTokens(t *testing.T) {
	toks, err := DeobfuscateTagged("1+2", lang.Powershell)
	if err != nil {
		t.Fatalf("DeobfuscateTagged: %v", err)
	}
	if len(toks) == 0 {
		t.Fatal("expected at least one token")
	}
}

func TestDeobfuscateAllDeduplicatesIdenticalSources(t *testing.T) {
	sources := []string{"1+2", "1+2", "3*4"}
	results, err := DeobfuscateAll(context.Background(), sources, lang.Powershell)
	if err != nil {
		t.Fatalf("DeobfuscateAll: %v", err)
	}
	if len(results) != 3 {
		t.Fatalf("got %d results, want 3", len(results))
	}
	if results[0].Output != "3" || results[1].Output != "3" {
		t.Errorf("duplicate sources: got %q and %q, want both %q", results[0].Output, results[1].Output, "3")
	}
	if results[2].Output != "12" {
		t.Errorf("got %q, want %q", results[2].Output, "12")
	}
}
