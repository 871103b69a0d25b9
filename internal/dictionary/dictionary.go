// Package dictionary implements the phrase lookup abstraction: a
// queryable, layered store of (syllable sequence -> phrase, frequency)
// entries backed by a read-only system layer and a mutable user layer.
package dictionary

import (
	"errors"
	"log"
	"sort"

	"github.com/chewing/gochewing/internal/zhuyin"
)

// Phrase is one candidate phrase text with its learned frequency and the
// tick at which it was last used (0 if never).
type Phrase struct {
	Text     string
	Freq     uint32
	LastUsed uint64
}

// LookupStrategy selects how Dictionary.Lookup treats the query.
type LookupStrategy int

const (
	// Standard requires an exact syllable-by-syllable match.
	Standard LookupStrategy = iota
	// FuzzyPartialPrefix additionally matches any entry of the same length
	// whose syllables agree with the query's wherever the query has a
	// medial, rime or tone (see fuzzyMatchSyllable); initials must match
	// exactly.
	FuzzyPartialPrefix
)

var (
	// ErrReadOnly is returned by mutation methods on a read-only Dictionary.
	ErrReadOnly = errors.New("dictionary: read-only")
	// ErrEmptyPhrase is returned when add/update is given a phrase with
	// empty text.
	ErrEmptyPhrase = errors.New("dictionary: phrase text must not be empty")
)

// Dictionary is a queryable store of phonetic-syllable-sequence to phrase
// entries.
type Dictionary interface {
	Lookup(syllables []zhuyin.Syllable, strategy LookupStrategy) []Phrase
	Entries() []Phrase
	About() string
	AddPhrase(syllables []zhuyin.Syllable, phrase Phrase) error
	UpdatePhrase(syllables []zhuyin.Syllable, phrase Phrase) error
	RemovePhrase(syllables []zhuyin.Syllable, text string) error
	Reopen() error
	Flush() error
}

func key(syllables []zhuyin.Syllable) string {
	buf := make([]byte, 0, len(syllables)*2)
	for _, s := range syllables {
		v := s.ToU16()
		buf = append(buf, byte(v>>8), byte(v))
	}
	return string(buf)
}

// MapDict is an in-memory Dictionary, suitable both as the seed system
// dictionary (loaded once, read-only in practice) and as a user
// dictionary that learns at runtime.
type MapDict struct {
	about    string
	entries  map[string][]Phrase
	readOnly bool
}

// NewMapDict returns an empty, mutable MapDict.
func NewMapDict(about string) *MapDict {
	return &MapDict{about: about, entries: make(map[string][]Phrase)}
}

// NewReadOnlyMapDict returns a MapDict seeded from entries that rejects
// all mutation, modeling the teacher's trie-backed read-only system
// dictionary.
func NewReadOnlyMapDict(about string, seed map[string][]Phrase) *MapDict {
	d := &MapDict{about: about, entries: make(map[string][]Phrase, len(seed)), readOnly: true}
	for k, v := range seed {
		d.entries[k] = append([]Phrase{}, v...)
	}
	return d
}

func (d *MapDict) Lookup(syllables []zhuyin.Syllable, strategy LookupStrategy) []Phrase {
	k := key(syllables)
	var out []Phrase
	if v, ok := d.entries[k]; ok {
		out = append(out, v...)
	}
	if strategy == FuzzyPartialPrefix {
		for stored, phrases := range d.entries {
			if stored == k {
				continue
			}
			storedSyls, err := unkey(stored)
			if err != nil || !fuzzyMatchSyllables(syllables, storedSyls) {
				continue
			}
			out = append(out, phrases...)
		}
	}
	return out
}

// unkey reconstructs the syllable sequence packed by key.
func unkey(k string) ([]zhuyin.Syllable, error) {
	if len(k)%2 != 0 {
		return nil, errors.New("dictionary: malformed key")
	}
	b := []byte(k)
	syls := make([]zhuyin.Syllable, 0, len(b)/2)
	for i := 0; i < len(b); i += 2 {
		syls = append(syls, zhuyin.FromU16(uint16(b[i])<<8|uint16(b[i+1])))
	}
	return syls, nil
}

// fuzzyMatchSyllables reports whether every query syllable fuzzy-matches
// its counterpart in stored, per fuzzyMatchSyllable. Sequences of
// different length never match.
func fuzzyMatchSyllables(query, stored []zhuyin.Syllable) bool {
	if len(query) != len(stored) {
		return false
	}
	for i := range query {
		if !fuzzyMatchSyllable(query[i], stored[i]) {
			return false
		}
	}
	return true
}

// fuzzyMatchSyllable matches query against stored tolerating a query that
// omits medial, rime, or tone: a field present in query must equal the
// corresponding field in stored, but a field absent from query matches
// any value (or absence) in stored. Initial is never tolerant: it must
// match exactly, present or absent in both.
func fuzzyMatchSyllable(query, stored zhuyin.Syllable) bool {
	qi, qiOk := query.Initial()
	si, siOk := stored.Initial()
	if qiOk != siOk || qi != si {
		return false
	}
	if qm, ok := query.Medial(); ok {
		if sm, ok2 := stored.Medial(); !ok2 || sm != qm {
			return false
		}
	}
	if qr, ok := query.Rime(); ok {
		if sr, ok2 := stored.Rime(); !ok2 || sr != qr {
			return false
		}
	}
	if qt, ok := query.Tone(); ok {
		if st, ok2 := stored.Tone(); !ok2 || st != qt {
			return false
		}
	}
	return true
}

func (d *MapDict) Entries() []Phrase {
	var out []Phrase
	for _, v := range d.entries {
		out = append(out, v...)
	}
	return out
}

func (d *MapDict) About() string { return d.about }

func (d *MapDict) AddPhrase(syllables []zhuyin.Syllable, phrase Phrase) error {
	if d.readOnly {
		return ErrReadOnly
	}
	if phrase.Text == "" {
		return ErrEmptyPhrase
	}
	k := key(syllables)
	d.entries[k] = append(d.entries[k], phrase)
	return nil
}

func (d *MapDict) UpdatePhrase(syllables []zhuyin.Syllable, phrase Phrase) error {
	if d.readOnly {
		return ErrReadOnly
	}
	if phrase.Text == "" {
		return ErrEmptyPhrase
	}
	k := key(syllables)
	for i, p := range d.entries[k] {
		if p.Text == phrase.Text {
			d.entries[k][i] = phrase
			return nil
		}
	}
	d.entries[k] = append(d.entries[k], phrase)
	return nil
}

func (d *MapDict) RemovePhrase(syllables []zhuyin.Syllable, text string) error {
	if d.readOnly {
		return ErrReadOnly
	}
	k := key(syllables)
	kept := d.entries[k][:0:0]
	for _, p := range d.entries[k] {
		if p.Text != text {
			kept = append(kept, p)
		}
	}
	d.entries[k] = kept
	return nil
}

func (d *MapDict) Reopen() error {
	if d.readOnly {
		return ErrReadOnly
	}
	return nil
}

func (d *MapDict) Flush() error {
	if d.readOnly {
		return ErrReadOnly
	}
	return nil
}

// Layered unions any number of read-only system dictionaries with one
// mutable user dictionary, merging duplicate phrase text by summing
// frequency and keeping the larger LastUsed tick.
type Layered struct {
	sysDicts []Dictionary
	userDict Dictionary
}

// NewLayered returns a Layered dictionary over sysDicts (checked first,
// in order) with userDict as the sole mutable layer.
func NewLayered(userDict Dictionary, sysDicts ...Dictionary) *Layered {
	return &Layered{sysDicts: sysDicts, userDict: userDict}
}

func (l *Layered) UserDict() Dictionary { return l.userDict }

func (l *Layered) Lookup(syllables []zhuyin.Syllable, strategy LookupStrategy) []Phrase {
	index := make(map[string]int)
	var merged []Phrase
	merge := func(p Phrase) {
		if i, ok := index[p.Text]; ok {
			merged[i].Freq += p.Freq
			if p.LastUsed > merged[i].LastUsed {
				merged[i].LastUsed = p.LastUsed
			}
			return
		}
		index[p.Text] = len(merged)
		merged = append(merged, p)
	}
	for _, dict := range l.sysDicts {
		for _, p := range dict.Lookup(syllables, strategy) {
			merge(p)
		}
	}
	for _, p := range l.userDict.Lookup(syllables, strategy) {
		merge(p)
	}
	return merged
}

func (l *Layered) Entries() []Phrase {
	var out []Phrase
	for _, dict := range l.sysDicts {
		out = append(out, dict.Entries()...)
	}
	out = append(out, l.userDict.Entries()...)
	return out
}

func (l *Layered) About() string { return "layered dictionary" }

func (l *Layered) AddPhrase(syllables []zhuyin.Syllable, phrase Phrase) error {
	if phrase.Text == "" {
		log.Printf("dictionary: refusing to add empty-text phrase")
		return nil
	}
	return l.userDict.AddPhrase(syllables, phrase)
}

func (l *Layered) UpdatePhrase(syllables []zhuyin.Syllable, phrase Phrase) error {
	if phrase.Text == "" {
		log.Printf("dictionary: refusing to update empty-text phrase")
		return nil
	}
	return l.userDict.UpdatePhrase(syllables, phrase)
}

func (l *Layered) RemovePhrase(syllables []zhuyin.Syllable, text string) error {
	return l.userDict.RemovePhrase(syllables, text)
}

func (l *Layered) Reopen() error { return l.userDict.Reopen() }
func (l *Layered) Flush() error  { return l.userDict.Flush() }

// SortByFrequency sorts phrases by descending frequency, breaking ties by
// text for determinism.
func SortByFrequency(phrases []Phrase) {
	sort.SliceStable(phrases, func(i, j int) bool {
		if phrases[i].Freq != phrases[j].Freq {
			return phrases[i].Freq > phrases[j].Freq
		}
		return phrases[i].Text < phrases[j].Text
	})
}
