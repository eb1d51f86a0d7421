package check

import (
	"slices"
	"testing"
)

func TestPhrase_Deterministic(t *testing.T) {
	t.Parallel()

	specs := []Spec{{Actual: "x", Expected: 1, Message: "m"}}
	first := Phrase("ex", specs)
	for range 10 {
		if got := Phrase("ex", specs); got != first {
			t.Fatalf("Phrase() = %q, then %q", first, got)
		}
	}
	if !slices.Contains(Phrases, first) {
		t.Errorf("Phrase() = %q, not in Phrases", first)
	}
}

func TestPhrase_VariesWithInput(t *testing.T) {
	t.Parallel()

	seen := make(map[string]bool)
	for i := range 50 {
		specs := []Spec{{Actual: i, Expected: i, Message: "m"}}
		seen[Phrase("", specs)] = true
	}
	if len(seen) < 2 {
		t.Errorf("50 different inputs produced %d distinct phrases", len(seen))
	}
}

func TestSeedText(t *testing.T) {
	t.Parallel()

	specs := []Spec{
		{Actual: "x", Expected: 1, Message: "m"},
		{Actual: 2, Expected: 2.5, Message: "n", Compare: Exact{}, Mode: ModeCheck},
	}
	want := `ex` + "\x00" + `[("x", 1, "m", default, ""), (2, 2.5, "n", exact, "check")]`
	if got := seedText("ex", specs); got != want {
		t.Errorf("seedText() = %q, want %q", got, want)
	}
}

func TestPhrases_Unique(t *testing.T) {
	t.Parallel()

	seen := make(map[string]bool, len(Phrases))
	for _, p := range Phrases {
		if seen[p] {
			t.Errorf("duplicate phrase %q", p)
		}
		seen[p] = true
	}
}
