package layout

import (
	"testing"

	"github.com/chewing/gochewing/internal/zhuyin"
)

func TestStandardAssemblesSyllable(t *testing.T) {
	s := NewStandard()
	for _, r := range "u8" {
		if got := s.KeyPress(KeyEvent{Rune: r}); got.Kind != Absorb {
			t.Fatalf("KeyPress(%q) = %v, want Absorb", r, got.Kind)
		}
	}
	if got := s.KeyPress(KeyEvent{Rune: '6'}); got.Kind != Commit {
		t.Fatalf("tone KeyPress = %v, want Commit", got.Kind)
	}
	want := zhuyin.Syl(zhuyin.I, zhuyin.A, zhuyin.TONE2)
	if s.Read() != want {
		t.Errorf("Read() = %v, want %v", s.Read(), want)
	}
}

func TestStandardSpaceCommitsTone1(t *testing.T) {
	s := NewStandard()
	s.KeyPress(KeyEvent{Rune: '1'})
	got := s.KeyPress(KeyEvent{Rune: ' '})
	if got.Kind != Commit {
		t.Fatalf("space KeyPress = %v, want Commit", got.Kind)
	}
}

func TestHsuReinterpretsShAsXBeforeMedialI(t *testing.T) {
	h := NewHsu()
	h.KeyPress(KeyEvent{Rune: 'c'}) // SH initial
	h.KeyPress(KeyEvent{Rune: 'e'}) // medial/rime context letter, reinterprets SH as X before I
	h.KeyPress(KeyEvent{Rune: 'n'}) // rime context letter
	if h.IsEmpty() {
		t.Fatal("Hsu buffer unexpectedly empty after key sequence")
	}
	if got, want := h.Read(), zhuyin.Syl(zhuyin.X, zhuyin.I, zhuyin.EN); got != want {
		t.Errorf("Read() = %v, want %v", got, want)
	}
}

func TestHsuClonedFuzzyKeyPressDoesNotMutateOriginal(t *testing.T) {
	h := NewHsu()
	h.KeyPress(KeyEvent{Rune: 'b'})
	before := h.Read()
	clone := h.Clone()
	clone.KeyPress(KeyEvent{Rune: 'o'})
	if h.Read() != before {
		t.Errorf("Clone mutated original: got %v, want %v", h.Read(), before)
	}
}

func TestFuzzyKeyPressCommitsEarlyOnOverwrite(t *testing.T) {
	s := NewStandard()
	s.KeyPress(KeyEvent{Rune: '1'}) // B
	s.KeyPress(KeyEvent{Rune: 'u'}) // I medial
	behavior := FuzzyKeyPress(s, KeyEvent{Rune: '1'})
	if behavior.Kind != FuzzyCommitted {
		t.Fatalf("FuzzyKeyPress = %v, want FuzzyCommitted", behavior.Kind)
	}
	if behavior.Fuzzy.IsEmpty() {
		t.Error("FuzzyCommitted result carried an empty syllable")
	}
}

func TestPinyinHanyuParsesZhong(t *testing.T) {
	p := NewPinyin(HanyuPinyin)
	for _, r := range "zhong1" {
		p.KeyPress(KeyEvent{Rune: r})
	}
	got := p.Read()
	want := zhuyin.Syl(zhuyin.ZH, zhuyin.U, zhuyin.ENG, zhuyin.TONE1)
	if got != want {
		t.Errorf("Read() = %v, want %v", got, want)
	}
}

func TestPinyinHanyuParsesZhi(t *testing.T) {
	p := NewPinyin(HanyuPinyin)
	for _, r := range "zhi" {
		p.KeyPress(KeyEvent{Rune: r})
	}
	p.KeyPress(KeyEvent{Rune: ' '})
	got := p.Read()
	want := zhuyin.Syl(zhuyin.ZH)
	if got != want {
		t.Errorf("Read() = %v, want %v (bare retroflex, no medial)", got, want)
	}
}
