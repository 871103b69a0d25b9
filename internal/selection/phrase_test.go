package selection

import (
	"testing"

	"github.com/chewing/gochewing/internal/composition"
	"github.com/chewing/gochewing/internal/dictionary"
	"github.com/chewing/gochewing/internal/zhuyin"
)

func syl(bs ...zhuyin.Bopomofo) composition.Symbol {
	return composition.FromSyllable(zhuyin.Syl(bs...))
}

func TestInitWidensToWidestMatch(t *testing.T) {
	com := composition.New()
	com.Push(syl(zhuyin.ZH, zhuyin.U, zhuyin.ENG)) // zhong
	com.Push(syl(zhuyin.U, zhuyin.EN, zhuyin.TONE2))

	dict := dictionary.NewMapDict("test")
	zhong := zhuyin.Syl(zhuyin.ZH, zhuyin.U, zhuyin.ENG)
	wen := zhuyin.Syl(zhuyin.U, zhuyin.EN, zhuyin.TONE2)
	if err := dict.AddPhrase([]zhuyin.Syllable{zhong, wen}, dictionary.Phrase{Text: "中文", Freq: 10}); err != nil {
		t.Fatal(err)
	}
	if err := dict.AddPhrase([]zhuyin.Syllable{zhong}, dictionary.Phrase{Text: "中", Freq: 5}); err != nil {
		t.Fatal(err)
	}

	ps := NewPhraseSelector(dictionary.Standard)
	if !ps.Init(com, 0, dict, true) {
		t.Fatal("Init() = false, want true")
	}
	if ps.Begin() != 0 || ps.End() != 2 {
		t.Errorf("range = [%d,%d), want [0,2)", ps.Begin(), ps.End())
	}
}

func TestAfterPreviousBreakPointStopsAtBreak(t *testing.T) {
	com := composition.New()
	com.Push(syl(zhuyin.B))
	com.Push(syl(zhuyin.P))
	com.SetGap(1, composition.GapBreak)

	ps := NewPhraseSelector(dictionary.Standard)
	if got := ps.AfterPreviousBreakPoint(com, 2); got != 1 {
		t.Errorf("AfterPreviousBreakPoint = %d, want 1", got)
	}
}

func TestAfterPreviousBreakPointStopsAtNonSyllable(t *testing.T) {
	com := composition.New()
	com.Push(composition.FromChar('x'))
	com.Push(syl(zhuyin.B))

	ps := NewPhraseSelector(dictionary.Standard)
	if got := ps.AfterPreviousBreakPoint(com, 2); got != 1 {
		t.Errorf("AfterPreviousBreakPoint = %d, want 1", got)
	}
}
