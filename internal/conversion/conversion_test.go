package conversion

import (
	"testing"

	"github.com/chewing/gochewing/internal/composition"
	"github.com/chewing/gochewing/internal/dictionary"
	"github.com/chewing/gochewing/internal/zhuyin"
)

func sylSym(bs ...zhuyin.Bopomofo) composition.Symbol {
	return composition.FromSyllable(zhuyin.Syl(bs...))
}

func TestConvertPrefersLongerMatchedPhrase(t *testing.T) {
	com := composition.New()
	com.Push(sylSym(zhuyin.ZH, zhuyin.U, zhuyin.ENG))
	com.Push(sylSym(zhuyin.U, zhuyin.EN, zhuyin.TONE2))

	dict := dictionary.NewMapDict("test")
	zhong := zhuyin.Syl(zhuyin.ZH, zhuyin.U, zhuyin.ENG)
	wen := zhuyin.Syl(zhuyin.U, zhuyin.EN, zhuyin.TONE2)
	if err := dict.AddPhrase([]zhuyin.Syllable{zhong, wen}, dictionary.Phrase{Text: "中文", Freq: 1000}); err != nil {
		t.Fatal(err)
	}
	if err := dict.AddPhrase([]zhuyin.Syllable{zhong}, dictionary.Phrase{Text: "中", Freq: 10}); err != nil {
		t.Fatal(err)
	}
	if err := dict.AddPhrase([]zhuyin.Syllable{wen}, dictionary.Phrase{Text: "文", Freq: 10}); err != nil {
		t.Fatal(err)
	}

	e := NewChewingEngine()
	paths := e.Convert(com, dict)
	if len(paths) == 0 {
		t.Fatal("Convert() returned no paths")
	}
	best := paths[0]
	if len(best.Intervals) != 1 || best.Intervals[0].Text != "中文" {
		t.Errorf("best path = %+v, want single 中文 interval", best.Intervals)
	}
}

func TestConvertRespectsBreakGap(t *testing.T) {
	com := composition.New()
	com.Push(sylSym(zhuyin.ZH, zhuyin.U, zhuyin.ENG))
	com.Push(sylSym(zhuyin.U, zhuyin.EN, zhuyin.TONE2))
	com.SetGap(1, composition.GapBreak)

	dict := dictionary.NewMapDict("test")
	zhong := zhuyin.Syl(zhuyin.ZH, zhuyin.U, zhuyin.ENG)
	wen := zhuyin.Syl(zhuyin.U, zhuyin.EN, zhuyin.TONE2)
	dict.AddPhrase([]zhuyin.Syllable{zhong, wen}, dictionary.Phrase{Text: "中文", Freq: 1000})
	dict.AddPhrase([]zhuyin.Syllable{zhong}, dictionary.Phrase{Text: "中", Freq: 10})
	dict.AddPhrase([]zhuyin.Syllable{wen}, dictionary.Phrase{Text: "文", Freq: 10})

	e := NewChewingEngine()
	paths := e.Convert(com, dict)
	best := paths[0]
	if len(best.Intervals) != 2 {
		t.Fatalf("best path = %+v, want two intervals split at the Break gap", best.Intervals)
	}
}

func TestConvertFallsBackToBareSyllableWhenNoMatch(t *testing.T) {
	com := composition.New()
	com.Push(sylSym(zhuyin.B, zhuyin.A))
	dict := dictionary.NewMapDict("empty")

	e := NewChewingEngine()
	paths := e.Convert(com, dict)
	if len(paths) == 0 || len(paths[0].Intervals) != 1 {
		t.Fatalf("Convert() = %+v, want a single fallback interval", paths)
	}
}

// TestConvertHonorsForcedSelection mirrors scenario S4: 代表 keyed in,
// 戴錶 forced via push_selection, must survive reconversion verbatim even
// though 代表 itself is a higher-frequency dictionary phrase.
func TestConvertHonorsForcedSelection(t *testing.T) {
	com := composition.New()
	com.Push(sylSym(zhuyin.D, zhuyin.AI, zhuyin.TONE4))
	com.Push(sylSym(zhuyin.B, zhuyin.I, zhuyin.AU, zhuyin.TONE3))

	dict := dictionary.NewMapDict("test")
	dai := zhuyin.Syl(zhuyin.D, zhuyin.AI, zhuyin.TONE4)
	biao := zhuyin.Syl(zhuyin.B, zhuyin.I, zhuyin.AU, zhuyin.TONE3)
	dict.AddPhrase([]zhuyin.Syllable{dai, biao}, dictionary.Phrase{Text: "代表", Freq: 200})
	dict.AddPhrase([]zhuyin.Syllable{dai, biao}, dictionary.Phrase{Text: "戴錶", Freq: 100})

	com.PushSelection(composition.Interval{Start: 0, End: 2, IsPhrase: true, Text: "戴錶"})

	e := NewChewingEngine()
	for _, p := range e.Convert(com, dict) {
		if len(p.Intervals) != 1 || p.Intervals[0].Text != "戴錶" {
			t.Fatalf("path %+v does not carry the forced 戴錶 selection verbatim", p.Intervals)
		}
	}
}

func TestConvertGluesAdjacentIntervalsAcrossGlueGap(t *testing.T) {
	com := composition.New()
	com.Push(sylSym(zhuyin.ZH, zhuyin.U, zhuyin.ENG))
	com.Push(sylSym(zhuyin.U, zhuyin.EN, zhuyin.TONE2))
	com.SetGap(1, composition.GapGlue)

	dict := dictionary.NewMapDict("test")
	zhong := zhuyin.Syl(zhuyin.ZH, zhuyin.U, zhuyin.ENG)
	wen := zhuyin.Syl(zhuyin.U, zhuyin.EN, zhuyin.TONE2)
	dict.AddPhrase([]zhuyin.Syllable{zhong}, dictionary.Phrase{Text: "中", Freq: 10})
	dict.AddPhrase([]zhuyin.Syllable{wen}, dictionary.Phrase{Text: "文", Freq: 10})

	e := NewChewingEngine()
	best := e.Convert(com, dict)[0]
	if len(best.Intervals) != 1 || best.Intervals[0].Text != "中文" {
		t.Errorf("best path = %+v, want single glued 中文 interval", best.Intervals)
	}
}

func TestSimpleEngineEmitsOnePerSymbolAndOverlaysSelections(t *testing.T) {
	com := composition.New()
	com.Push(sylSym(zhuyin.ZH, zhuyin.U, zhuyin.ENG))
	com.Push(sylSym(zhuyin.U, zhuyin.EN, zhuyin.TONE2))

	dict := dictionary.NewMapDict("test")
	zhong := zhuyin.Syl(zhuyin.ZH, zhuyin.U, zhuyin.ENG)
	dict.AddPhrase([]zhuyin.Syllable{zhong}, dictionary.Phrase{Text: "中", Freq: 10})

	e := NewSimpleEngine()
	paths := e.Convert(com, dict)
	if len(paths) != 1 || len(paths[0].Intervals) != 2 {
		t.Fatalf("SimpleEngine.Convert() = %+v, want one path with two per-symbol intervals", paths)
	}
	if paths[0].Intervals[0].Text != "中" {
		t.Errorf("Intervals[0].Text = %q, want 中", paths[0].Intervals[0].Text)
	}

	com.PushSelection(composition.Interval{Start: 0, End: 2, IsPhrase: true, Text: "forced"})
	paths = e.Convert(com, dict)
	if len(paths[0].Intervals) != 1 || paths[0].Intervals[0].Text != "forced" {
		t.Errorf("SimpleEngine did not overlay selection: %+v", paths[0].Intervals)
	}
}

func TestFuzzyChewingEngineToleratesMissingTone(t *testing.T) {
	com := composition.New()
	com.Push(composition.FromSyllable(zhuyin.Syl(zhuyin.N, zhuyin.I)))

	dict := dictionary.NewMapDict("test")
	ni := zhuyin.Syl(zhuyin.N, zhuyin.I, zhuyin.TONE3)
	dict.AddPhrase([]zhuyin.Syllable{ni}, dictionary.Phrase{Text: "你", Freq: 10})

	e := NewFuzzyChewingEngine()
	paths := e.Convert(com, dict)
	if len(paths) == 0 || paths[0].Intervals[0].Text != "你" {
		t.Fatalf("FuzzyChewingEngine.Convert() = %+v, want 你 via fuzzy tone match", paths)
	}
}
