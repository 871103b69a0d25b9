// Package layout implements the phonetic keyboard layouts that assemble
// keystrokes into a Bopomofo Syllable: Standard, Hsu, Et, Et26, GinYieh,
// Ibm, DaiChien26, and Pinyin (Hanyu/THL/Mps2).
package layout

import "github.com/chewing/gochewing/internal/zhuyin"

// KeyEvent is a single keystroke offered to a syllable assembler. Only the
// printable rune the key produces matters to a layout; the
// editor state machine (package editor) is responsible for routing
// function keys (Backspace, Esc, arrows, ...) around the assembler
// entirely rather than through it.
type KeyEvent struct {
	Rune rune
}

// BehaviorKind is the outcome of offering a key to a SyllableEditor.
type BehaviorKind int

const (
	Absorb         BehaviorKind = iota // key consumed, syllable still in progress
	Commit                             // syllable completed
	NoWord                             // key outside the layout's accepted set, no progress
	KeyError                           // consumed but left the assembler empty/invalid
	FuzzyCommitted                     // a syllable completed prematurely by fuzzy_key_press
)

// Behavior is the result of SyllableEditor.KeyPress / FuzzyKeyPress.
type Behavior struct {
	Kind  BehaviorKind
	Fuzzy zhuyin.Syllable // valid when Kind == FuzzyCommitted
}

// SyllableEditor accumulates keystrokes for one phonetic keyboard layout.
type SyllableEditor interface {
	// KeyPress handles one keystroke, returning the resulting Behavior.
	KeyPress(key KeyEvent) Behavior
	// IsEmpty reports whether the assembler buffer holds nothing yet.
	IsEmpty() bool
	// RemoveLast pops the most recently entered Bopomofo.
	RemoveLast()
	// Clear empties the assembler buffer.
	Clear()
	// Read returns the syllable under construction without consuming it.
	Read() zhuyin.Syllable
	// AltSyllables returns alternative readings for syl, if the layout's
	// end-key heuristics make more than one reading plausible.
	AltSyllables(syl zhuyin.Syllable) []zhuyin.Syllable
	// Clone returns an independent copy of the editor's state, used by
	// FuzzyKeyPress to probe a hypothetical keystroke without mutating the
	// original.
	Clone() SyllableEditor
}

// FuzzyKeyPress implements the shared "fuzzy" key press algorithm: if
// applying key to a cleared clone of e would set a field already present
// in e's current syllable, or a field that comes before one present (in
// initial, medial, rime order), the current syllable is committed early as
// a FuzzyCommitted result and key is re-applied to a freshly cleared e.
// No layout has a FuzzyKeyPress method of its own: the editor calls this
// function in place of KeyPress when its FuzzyKeyboard option is set.
func FuzzyKeyPress(e SyllableEditor, key KeyEvent) Behavior {
	if e.IsEmpty() {
		return e.KeyPress(key)
	}
	clone := e.Clone()
	clone.Clear()
	clone.KeyPress(key)
	current := e.Read()
	next := clone.Read()

	wouldOverwrite := current.HasInitial() && next.HasInitial() ||
		current.HasMedial() && (next.HasInitial() || next.HasMedial()) ||
		current.HasRime() && (next.HasInitial() || next.HasMedial() || next.HasRime())

	if wouldOverwrite {
		ret := Behavior{Kind: FuzzyCommitted, Fuzzy: current}
		e.Clear()
		e.KeyPress(key)
		return ret
	}
	return e.KeyPress(key)
}
