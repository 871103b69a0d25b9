// Package selection implements the widen/shrink phrase-range picker the
// editor uses in its Selecting state, plus the punctuation/symbol table
// pickers for the Entering state's special-key handling.
package selection

import (
	"github.com/chewing/gochewing/internal/composition"
	"github.com/chewing/gochewing/internal/dictionary"
	"github.com/chewing/gochewing/internal/layout"
	"github.com/chewing/gochewing/internal/zhuyin"
)

// PhraseSelector tracks the in-progress phrase range a cursor position has
// been widened to, and lets the editor cycle through shorter matching
// sub-ranges.
type PhraseSelector struct {
	begin, end    int
	forwardSelect bool
	orig          composition.Interval
	strategy      dictionary.LookupStrategy
}

// NewPhraseSelector returns a selector using strategy for all lookups.
func NewPhraseSelector(strategy dictionary.LookupStrategy) *PhraseSelector {
	return &PhraseSelector{strategy: strategy}
}

func (ps *PhraseSelector) Begin() int { return ps.begin }
func (ps *PhraseSelector) End() int   { return ps.end }

// NextBreakPoint walks forward from cursor while symbols remain syllables,
// stopping just before a Break gap.
func (ps *PhraseSelector) NextBreakPoint(com *composition.Composition, cursor int) int {
	i := cursor
	for i < com.Len() {
		sym, ok := com.Symbol(i)
		if !ok || !sym.IsSyllable() {
			break
		}
		i++
		if gap, ok := com.Gap(i); ok && gap == composition.GapBreak {
			break
		}
	}
	return i
}

// AfterPreviousBreakPoint walks backward from cursor, stopping just after
// a Break gap or a non-syllable symbol.
func (ps *PhraseSelector) AfterPreviousBreakPoint(com *composition.Composition, cursor int) int {
	i := cursor
	for i > 0 {
		gap, _ := com.Gap(i)
		sym, ok := com.Symbol(i - 1)
		if gap == composition.GapBreak || !ok || !sym.IsSyllable() {
			break
		}
		i--
	}
	return i
}

func (ps *PhraseSelector) syllablesInRange(com *composition.Composition, begin, end int) ([]zhuyin.Syllable, bool) {
	syls := make([]zhuyin.Syllable, 0, end-begin)
	for i := begin; i < end; i++ {
		sym, ok := com.Symbol(i)
		if !ok {
			return nil, false
		}
		s, ok := sym.Syllable()
		if !ok {
			return nil, false
		}
		syls = append(syls, s)
	}
	return syls, true
}

// Init picks the widest matching phrase range within the surrounding
// unbroken run of syllables. With forwardSelect the range starts at cursor
// and extends toward the end of the buffer; otherwise it ends just after
// cursor and extends toward the start. With no match it is the single
// symbol at cursor.
func (ps *PhraseSelector) Init(com *composition.Composition, cursor int, dict dictionary.Dictionary, forwardSelect bool) bool {
	return ps.init(com, cursor, dict, forwardSelect)
}

func (ps *PhraseSelector) init(com *composition.Composition, cursor int, dict dictionary.Dictionary, forwardSelect bool) bool {
	lo := ps.AfterPreviousBreakPoint(com, cursor)
	hi := ps.NextBreakPoint(com, cursor)
	ps.forwardSelect = forwardSelect

	bestBegin, bestEnd, found := cursor, cursor+1, false
	if forwardSelect {
		for end := hi; end > cursor; end-- {
			if syls, ok := ps.syllablesInRange(com, cursor, end); ok && len(dict.Lookup(syls, ps.strategy)) > 0 {
				bestBegin, bestEnd, found = cursor, end, true
				break
			}
		}
	} else {
		for begin := lo; begin <= cursor; begin++ {
			if syls, ok := ps.syllablesInRange(com, begin, cursor+1); ok && len(dict.Lookup(syls, ps.strategy)) > 0 {
				bestBegin, bestEnd, found = begin, cursor+1, true
				break
			}
		}
	}
	if !found {
		bestBegin, bestEnd = cursor, cursor+1
	}
	ps.begin, ps.end = bestBegin, bestEnd
	ps.orig = composition.Interval{Start: bestBegin, End: bestEnd}
	return ps.begin < ps.end
}

// InitSingleWord pins the selection to exactly one symbol at cursor.
func (ps *PhraseSelector) InitSingleWord(cursor int) {
	ps.begin, ps.end = cursor, cursor+1
	ps.orig = composition.Interval{Start: cursor, End: cursor + 1}
}

// Next shrinks the current selection by one symbol on the trailing edge,
// wrapping back to the original widest range once it collapses.
func (ps *PhraseSelector) Next(com *composition.Composition, dict dictionary.Dictionary) {
	if ps.forwardSelect {
		ps.end--
		if ps.end <= ps.begin {
			ps.end = ps.orig.End
		}
	} else {
		ps.begin++
		if ps.begin >= ps.end {
			ps.begin = ps.orig.Start
		}
	}
}

// Candidates returns every phrase matching the current selection range,
// widening with the assembler's alternate syllable readings when the
// range covers exactly one symbol.
func (ps *PhraseSelector) Candidates(com *composition.Composition, assembler layout.SyllableEditor, dict dictionary.Dictionary, sortByFreq bool) []dictionary.Phrase {
	syls, ok := ps.syllablesInRange(com, ps.begin, ps.end)
	if !ok {
		return nil
	}
	result := dict.Lookup(syls, ps.strategy)
	if len(syls) == 1 && assembler != nil {
		for _, alt := range assembler.AltSyllables(syls[0]) {
			result = append(result, dict.Lookup([]zhuyin.Syllable{alt}, ps.strategy)...)
		}
	}
	if sortByFreq {
		dictionary.SortByFrequency(result)
	}
	return result
}

// Interval returns the selection's current range as a Composition
// interval carrying phrase as its rendered text.
func (ps *PhraseSelector) Interval(phrase string) composition.Interval {
	return composition.Interval{Start: ps.begin, End: ps.end, IsPhrase: true, Text: phrase}
}
