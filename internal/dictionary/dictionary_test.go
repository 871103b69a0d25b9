package dictionary

import (
	"testing"

	"github.com/chewing/gochewing/internal/zhuyin"
)

func ce() []zhuyin.Syllable { return []zhuyin.Syllable{zhuyin.Syl(zhuyin.C, zhuyin.EH, zhuyin.TONE4)} }

func TestLayeredLookupSumsFrequencyAndMaxLastUsed(t *testing.T) {
	sys := NewReadOnlyMapDict("sys", map[string][]Phrase{
		key(ce()): {{Text: "冊", Freq: 1}},
	})
	user := NewMapDict("user")
	if err := user.AddPhrase(ce(), Phrase{Text: "冊", Freq: 100, LastUsed: 42}); err != nil {
		t.Fatal(err)
	}
	l := NewLayered(user, sys)
	got := l.Lookup(ce(), Standard)
	if len(got) != 1 {
		t.Fatalf("Lookup() = %v, want 1 merged entry", got)
	}
	if got[0].Freq != 101 {
		t.Errorf("Freq = %d, want 101", got[0].Freq)
	}
	if got[0].LastUsed != 42 {
		t.Errorf("LastUsed = %d, want 42", got[0].LastUsed)
	}
}

func TestReadOnlyMapDictRejectsMutation(t *testing.T) {
	d := NewReadOnlyMapDict("sys", nil)
	if err := d.AddPhrase(ce(), Phrase{Text: "x"}); err != ErrReadOnly {
		t.Errorf("AddPhrase err = %v, want ErrReadOnly", err)
	}
	if err := d.Reopen(); err != ErrReadOnly {
		t.Errorf("Reopen err = %v, want ErrReadOnly", err)
	}
}

func TestLayeredRefusesEmptyPhraseSilently(t *testing.T) {
	user := NewMapDict("user")
	l := NewLayered(user)
	if err := l.AddPhrase(ce(), Phrase{Text: ""}); err != nil {
		t.Fatalf("AddPhrase(empty) returned error %v, want nil (logged and dropped)", err)
	}
	if got := len(user.Entries()); got != 0 {
		t.Errorf("empty-text phrase was stored, Entries() has %d", got)
	}
}

func TestSortByFrequencyDescending(t *testing.T) {
	phrases := []Phrase{{Text: "b", Freq: 1}, {Text: "a", Freq: 5}, {Text: "c", Freq: 5}}
	SortByFrequency(phrases)
	want := []string{"a", "c", "b"}
	for i, w := range want {
		if phrases[i].Text != w {
			t.Errorf("phrases[%d] = %s, want %s", i, phrases[i].Text, w)
		}
	}
}

func TestFuzzyPartialPrefixToleratesMissingToneOnASyllable(t *testing.T) {
	d := NewMapDict("user")
	full := []zhuyin.Syllable{zhuyin.Syl(zhuyin.N, zhuyin.I, zhuyin.TONE3)}
	if err := d.AddPhrase(full, Phrase{Text: "你", Freq: 1}); err != nil {
		t.Fatal(err)
	}
	partial := []zhuyin.Syllable{zhuyin.Syl(zhuyin.N, zhuyin.I)}
	if got := d.Lookup(partial, Standard); len(got) != 0 {
		t.Fatalf("Standard Lookup(partial) = %v, want no match", got)
	}
	got := d.Lookup(partial, FuzzyPartialPrefix)
	if len(got) != 1 || got[0].Text != "你" {
		t.Errorf("FuzzyPartialPrefix Lookup(partial) = %v, want single 你 entry", got)
	}

	other := []zhuyin.Syllable{zhuyin.Syl(zhuyin.M, zhuyin.I)}
	if got := d.Lookup(other, FuzzyPartialPrefix); len(got) != 0 {
		t.Errorf("FuzzyPartialPrefix Lookup() matched a different initial: %v", got)
	}
}

func TestLoadSeedParsesKnownPhrase(t *testing.T) {
	seed := LoadSeed()
	d := NewReadOnlyMapDict("seed", seed)
	de := []zhuyin.Syllable{zhuyin.Syl(zhuyin.D, zhuyin.E, zhuyin.TONE5)}
	got := d.Lookup(de, Standard)
	if len(got) != 1 || got[0].Text != "的" {
		t.Errorf("Lookup(de) = %v, want single 的 entry", got)
	}
}
