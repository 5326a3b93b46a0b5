package prompts

import (
	"strings"
	"testing"
)

func TestSelect(t *testing.T) {
	if Select(true) != Accessible {
		t.Error("Select(true) should return the accessible prompt")
	}
	if Select(false) != Standard {
		t.Error("Select(false) should return the standard prompt")
	}
	if Accessible == Standard {
		t.Error("the two prompts must differ")
	}
}

func TestAccessiblePromptIsSymbolFree(t *testing.T) {
	// The accessibility template instructs spelled-out arithmetic and
	// must not itself contain the symbols it forbids.
	for _, sym := range []string{"+", "=", "📌", "📖", "💡", "🖐", "---"} {
		if strings.Contains(Accessible, sym) {
			t.Errorf("accessible prompt contains forbidden symbol %q", sym)
		}
	}
	for _, word := range []string{"plus", "equals", "SHORT SENTENCES"} {
		if !strings.Contains(Accessible, word) {
			t.Errorf("accessible prompt missing %q", word)
		}
	}
}

func TestStandardPromptHasSections(t *testing.T) {
	for _, section := range []string{"📌 ANSWER", "📖 EXPLANATION", "💡 EXAMPLE"} {
		if !strings.Contains(Standard, section) {
			t.Errorf("standard prompt missing section %q", section)
		}
	}
}
