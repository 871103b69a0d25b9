package abi

import (
	"testing"

	"github.com/chewing/gochewing/internal/dictionary"
	"github.com/chewing/gochewing/internal/editor"
)

func TestSetOptionValidatesRange(t *testing.T) {
	var o Options
	if err := o.SetOption("candidates_per_page", "0"); err == nil {
		t.Error("SetOption(candidates_per_page, 0) should be rejected")
	}
	if err := o.SetOption("candidates_per_page", "5"); err != nil {
		t.Errorf("SetOption(candidates_per_page, 5) = %v", err)
	}
	got, err := o.GetOption("candidates_per_page")
	if err != nil || got != "5" {
		t.Errorf("GetOption(candidates_per_page) = %q, %v, want 5", got, err)
	}
}

func TestSetOptionRejectsUnknownName(t *testing.T) {
	var o Options
	if err := o.SetOption("not_a_real_option", "1"); err == nil {
		t.Error("SetOption() with unknown name should error")
	}
}

func TestContextPressKeyCommitsSyllable(t *testing.T) {
	dict := dictionary.NewMapDict("test")
	ctx := New(dict, DefaultOptions(), nil)

	for _, r := range "u86" {
		res := ctx.PressKey(editor.KeyEvent{Rune: r})
		if !res.Handled {
			t.Fatalf("PressKey(%q) not handled", r)
		}
	}
	if ctx.BufferString() == "" {
		t.Error("BufferString() empty after composing a syllable")
	}
	res := ctx.PressKey(editor.KeyEvent{Special: editor.KeyEnter})
	if !res.Handled {
		t.Fatal("Enter not handled")
	}
	if ctx.CommitString() == "" {
		t.Error("CommitString() empty after Enter")
	}
}

func TestIntervalOpenReflectsBestPath(t *testing.T) {
	dict := dictionary.NewMapDict("test")
	ctx := New(dict, DefaultOptions(), nil)
	for _, r := range "u86" {
		ctx.PressKey(editor.KeyEvent{Rune: r})
	}
	it := ctx.IntervalOpen()
	if !it.IntervalHasNext() {
		t.Fatal("IntervalOpen() has no intervals for a composed syllable")
	}
	iv, ok := it.IntervalGet()
	if !ok || iv.From != 0 {
		t.Errorf("IntervalGet() = %+v, %v, want From=0", iv, ok)
	}
}
