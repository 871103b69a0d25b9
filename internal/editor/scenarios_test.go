package editor

import (
	"testing"

	"github.com/chewing/gochewing/internal/dictionary"
	"github.com/chewing/gochewing/internal/estimate"
	"github.com/chewing/gochewing/internal/layout"
)

func newScenarioEditor(t *testing.T, opts Options) (*Editor, dictionary.Dictionary) {
	t.Helper()
	sys := dictionary.NewReadOnlyMapDict("seed", dictionary.LoadSeed())
	dict := dictionary.NewLayered(dictionary.NewMapDict("user"), sys)
	e := New(layout.NewStandard(), dict, estimate.NewLax(0), opts)
	return e, dict
}

func typeKeys(t *testing.T, e *Editor, keys string) {
	t.Helper()
	for _, r := range keys {
		if err := e.PressKey(KeyEvent{Rune: r}); err != nil {
			t.Fatalf("PressKey(%q) = %v", r, err)
		}
	}
}

// TestScenarioGuominCommitsAsTwoCharacterPhrase: 國(eji6) + 民(aup6)
// converts to a single 國民 phrase interval on commit.
func TestScenarioGuominCommitsAsTwoCharacterPhrase(t *testing.T) {
	e, _ := newScenarioEditor(t, Options{})
	typeKeys(t, e, "eji6aup6")
	if e.com.Len() != 2 {
		t.Fatalf("composition length = %d, want 2", e.com.Len())
	}
	if err := e.PressKey(KeyEvent{Special: KeyEnter}); err != nil {
		t.Fatalf("Enter = %v", err)
	}
	if got := e.Committed(); got != "國民" {
		t.Errorf("Committed() = %q, want 國民", got)
	}
}

// TestScenarioDaibiaoTabReconvertsToZhaibiao: 代(294) + 表(1ul3) converts
// to 代表 by default; Tab at end-of-buffer cycles nth_conversion through
// the k-best list until it reaches the lower-frequency 戴錶 reading.
func TestScenarioDaibiaoTabReconvertsToZhaibiao(t *testing.T) {
	e, _ := newScenarioEditor(t, Options{})
	typeKeys(t, e, "2941ul3")
	if got := e.CurrentPath().Intervals; len(got) != 1 || got[0].Text != "代表" {
		t.Fatalf("default conversion = %+v, want single 代表 interval", got)
	}
	reached := false
	for i := 0; i < 100; i++ {
		if err := e.PressKey(KeyEvent{Special: KeyTab}); err != nil {
			t.Fatalf("Tab = %v", err)
		}
		if got := e.CurrentPath().Intervals; len(got) == 1 && got[0].Text == "戴錶" {
			reached = true
			break
		}
	}
	if !reached {
		t.Fatal("cycling Tab never reached the 戴錶 reading")
	}
}

// TestScenarioTabMidBufferForcesBreakSplit: Tab at a cursor position
// inside the buffer, not at the end, inserts a Break gap there instead of
// cycling nth_conversion, forcing 國民 to commit as two separate
// one-character phrases.
func TestScenarioTabMidBufferForcesBreakSplit(t *testing.T) {
	e, _ := newScenarioEditor(t, Options{})
	typeKeys(t, e, "eji6aup6")
	e.cursor = 1
	if err := e.PressKey(KeyEvent{Special: KeyTab}); err != nil {
		t.Fatalf("Tab = %v", err)
	}
	if got := e.CurrentPath().Intervals; len(got) != 2 {
		t.Fatalf("conversion after mid-buffer Tab = %+v, want a Break-forced 2-interval split", got)
	}
	if err := e.PressKey(KeyEvent{Special: KeyEnter}); err != nil {
		t.Fatalf("Enter = %v", err)
	}
	if got := e.Committed(); got != "國民" {
		t.Fatalf("Committed() = %q, want 國民 (committed as two joined single-character phrases)", got)
	}
}

// TestScenarioForcedSelectionSurvivesReconversion: forcing 戴錶 over the
// higher-frequency 代表 reading via Selecting must survive verbatim in
// every nth_conversion segmentation afterward.
func TestScenarioForcedSelectionSurvivesReconversion(t *testing.T) {
	e, dict := newScenarioEditor(t, Options{})
	typeKeys(t, e, "2941ul3")
	e.cursor = 0
	if err := e.PressKey(KeyEvent{Special: KeyDown}); err != nil {
		t.Fatalf("enter Selecting = %v", err)
	}
	candidates := e.selector.Candidates(e.com, e.assembler, dict, false)
	found := false
	for _, c := range candidates {
		if c.Text == "戴錶" {
			found = true
		}
	}
	if !found {
		t.Fatalf("candidates = %v, want 戴錶 among them", candidates)
	}
	if err := e.confirmPhrase("戴錶"); err != nil {
		t.Fatalf("confirmPhrase = %v", err)
	}
	sel := e.com.Selections()
	if len(sel) != 1 || sel[0].Text != "戴錶" {
		t.Fatalf("Selections() = %v, want single 戴錶 interval", sel)
	}
	for i := 0; i < 5; i++ {
		if got := e.CurrentPath().Intervals; len(got) != 1 || got[0].Text != "戴錶" {
			t.Fatalf("path after %d Tab cycles = %+v, forced selection did not survive", i, got)
		}
		e.PressKey(KeyEvent{Special: KeyTab})
	}
}

// TestScenarioAutoCommitThresholdFlushesOldestSymbols: with a threshold
// of 2, a third committed syllable forces the oldest symbol out through
// auto-commit instead of growing the buffer past the threshold.
func TestScenarioAutoCommitThresholdFlushesOldestSymbols(t *testing.T) {
	e, _ := newScenarioEditor(t, Options{AutoCommitThreshold: 2})
	typeKeys(t, e, "u86")
	typeKeys(t, e, "u86")
	if e.com.Len() != 2 {
		t.Fatalf("composition length = %d, want 2 before crossing threshold", e.com.Len())
	}
	typeKeys(t, e, "u86")
	if e.com.Len() != 2 {
		t.Fatalf("composition length = %d, want 2 after auto-commit flush", e.com.Len())
	}
	if e.Committed() == "" {
		t.Error("Committed() empty, want the oldest symbol auto-committed")
	}
}

// TestScenarioAutoLearnGluesTwoSingleCharacterCommits: two single-syllable,
// non-break-word commits with no existing combined dictionary entry are
// glued by auto-learn into one new phrase, reachable by Lookup afterward.
func TestScenarioAutoLearnGluesTwoSingleCharacterCommits(t *testing.T) {
	e, dict := newScenarioEditor(t, Options{})
	typeKeys(t, e, "eji6") // 國
	typeKeys(t, e, "cl3")  // 好, no 國好 dictionary entry exists
	syls, ok := extractSyllables(e.com, 0, e.com.Len())
	if !ok {
		t.Fatal("extractSyllables() failed before commit")
	}
	if err := e.PressKey(KeyEvent{Special: KeyEnter}); err != nil {
		t.Fatalf("Enter = %v", err)
	}
	if got := e.Committed(); got != "國好" {
		t.Fatalf("Committed() = %q, want 國好", got)
	}
	learned := dict.Lookup(syls, dictionary.Standard)
	found := false
	for _, p := range learned {
		if p.Text == "國好" {
			found = true
		}
	}
	if !found {
		t.Errorf("Lookup() after commit = %v, want a newly auto-learned 國好 phrase", learned)
	}
}
