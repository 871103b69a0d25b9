package estimate

import (
	"testing"

	"github.com/chewing/gochewing/internal/dictionary"
	"github.com/chewing/gochewing/internal/zhuyin"
)

func oneSyl() []zhuyin.Syllable { return []zhuyin.Syllable{zhuyin.Syl(zhuyin.N, zhuyin.I, zhuyin.TONE3)} }
func threeSyls() []zhuyin.Syllable {
	return []zhuyin.Syllable{
		zhuyin.Syl(zhuyin.SH, zhuyin.U),
		zhuyin.Syl(zhuyin.R, zhuyin.U, zhuyin.TONE4),
		zhuyin.Syl(zhuyin.F, zhuyin.A, zhuyin.TONE3),
	}
}

func TestEstimateShortWindowIncreasesFrequency(t *testing.T) {
	e := NewLax(1000)
	p := dictionary.Phrase{Text: "x", Freq: 50, LastUsed: 999}
	got := e.Estimate(p, 1, 1000)
	if got <= p.Freq {
		t.Errorf("Estimate() = %d, want > %d within short window", got, p.Freq)
	}
}

func TestEstimateLongWindowDecaysTowardOriginal(t *testing.T) {
	e := NewLax(100000)
	p := dictionary.Phrase{Text: "x", Freq: 500, LastUsed: 1}
	got := e.Estimate(p, 10, 1000)
	if got >= p.Freq {
		t.Errorf("Estimate() = %d, want < %d after long idle", got, p.Freq)
	}
	if got < 10 {
		t.Errorf("Estimate() = %d, must not decay below origFreq 10", got)
	}
}

func TestOpenLaxSeedsFromMaxLastUsed(t *testing.T) {
	e := OpenLax([]dictionary.Phrase{{LastUsed: 5}, {LastUsed: 42}, {LastUsed: 7}})
	if e.Now() != 42 {
		t.Errorf("Now() = %d, want 42", e.Now())
	}
}

func TestAutoLearnRunsGluesSingleSyllableNonBreakWords(t *testing.T) {
	commits := []Committed{
		{Text: "國", Syllables: oneSyl()},
		{Text: "語", Syllables: oneSyl()},
		{Text: "的", Syllables: oneSyl()},
		{Text: "輸入法", Syllables: threeSyls()},
	}
	got := AutoLearnRuns(commits)
	want := []string{"國語", "輸入法"}
	if len(got) != len(want) {
		t.Fatalf("AutoLearnRuns() = %v, want %v", got, want)
	}
	for i := range want {
		if got[i].Text != want[i] {
			t.Errorf("run[%d].Text = %s, want %s", i, got[i].Text, want[i])
		}
	}
	if len(got[0].Syllables) != 2 {
		t.Errorf("run[0] (國語) has %d syllables, want 2 glued", len(got[0].Syllables))
	}
	if len(got[1].Syllables) != 3 {
		t.Errorf("run[1] (輸入法) has %d syllables, want 3", len(got[1].Syllables))
	}
}

func TestAutoLearnRunsSkipsCharIntervalsAsRunBoundaries(t *testing.T) {
	commits := []Committed{
		{Text: "國", Syllables: oneSyl()},
		{Text: ",", Syllables: nil},
		{Text: "好", Syllables: oneSyl()},
	}
	got := AutoLearnRuns(commits)
	if len(got) != 2 {
		t.Fatalf("AutoLearnRuns() = %v, want 2 runs split by the char interval", got)
	}
	if got[0].Text != "國" || got[1].Text != "好" {
		t.Errorf("runs = %+v, want [國, 好]", got)
	}
}
