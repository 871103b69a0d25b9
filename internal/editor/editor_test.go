package editor

import (
	"testing"

	"github.com/chewing/gochewing/internal/dictionary"
	"github.com/chewing/gochewing/internal/layout"
	"github.com/chewing/gochewing/internal/zhuyin"
)

func newTestEditor(t *testing.T) (*Editor, *dictionary.MapDict) {
	t.Helper()
	dict := dictionary.NewMapDict("test")
	e := New(layout.NewStandard(), dict, nil, Options{})
	return e, dict
}

func TestTypingSyllableThenEnterCommits(t *testing.T) {
	e, _ := newTestEditor(t)
	for _, r := range "u8" {
		if err := e.PressKey(KeyEvent{Rune: r}); err != nil {
			t.Fatalf("PressKey(%q) = %v", r, err)
		}
	}
	if err := e.PressKey(KeyEvent{Rune: '6'}); err != nil { // tone2, commits syllable
		t.Fatalf("tone PressKey = %v", err)
	}
	if e.com.Len() != 1 {
		t.Fatalf("composition length = %d, want 1", e.com.Len())
	}
	if err := e.PressKey(KeyEvent{Special: KeyEnter}); err != nil {
		t.Fatalf("Enter PressKey = %v", err)
	}
	got := e.Committed()
	if got == "" {
		t.Error("Committed() returned empty string after Enter")
	}
	if e.com.Len() != 0 {
		t.Errorf("composition not cleared after commit, len = %d", e.com.Len())
	}
}

func TestBackspaceRemovesAssemblerThenSymbol(t *testing.T) {
	e, _ := newTestEditor(t)
	e.PressKey(KeyEvent{Rune: 'u'})
	if err := e.PressKey(KeyEvent{Special: KeyBackspace}); err != nil {
		t.Fatalf("Backspace on assembler = %v", err)
	}
	if !e.assembler.IsEmpty() {
		t.Error("assembler not cleared by Backspace")
	}
	if err := e.PressKey(KeyEvent{Special: KeyBackspace}); err != errAtBoundary {
		t.Errorf("Backspace at boundary = %v, want errAtBoundary", err)
	}
}

func TestEnterSelectingOffersCandidateFromDictionary(t *testing.T) {
	e, dict := newTestEditor(t)
	for _, r := range "u8" {
		e.PressKey(KeyEvent{Rune: r})
	}
	e.PressKey(KeyEvent{Rune: '6'}) // commits the in-progress syllable

	sym := e.com.Symbols()[0]
	s, ok := sym.Syllable()
	if !ok {
		t.Fatal("first composition symbol is not a syllable")
	}
	if err := dict.AddPhrase([]zhuyin.Syllable{s}, dictionary.Phrase{Text: "亞", Freq: 5}); err != nil {
		t.Fatal(err)
	}

	e.cursor = 0
	if err := e.PressKey(KeyEvent{Special: KeyDown}); err != nil {
		t.Fatalf("enter Selecting = %v", err)
	}
	if e.Mode() != Selecting {
		t.Fatalf("Mode() = %v, want Selecting", e.Mode())
	}
	if err := e.PressKey(KeyEvent{Special: KeyEnter}); err != nil {
		t.Fatalf("confirm selection = %v", err)
	}
	if e.Mode() != Entering {
		t.Errorf("Mode() after confirm = %v, want Entering", e.Mode())
	}
	sel := e.com.Selections()
	if len(sel) != 1 || sel[0].Text != "亞" {
		t.Errorf("Selections() = %v, want single 亞 interval", sel)
	}
}
