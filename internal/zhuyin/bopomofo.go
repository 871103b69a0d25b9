// Package zhuyin implements the Bopomofo phonetic alphabet and the packed
// Syllable encoding used throughout the input method core.
package zhuyin

import "fmt"

// Kind categorizes a Bopomofo letter into one of the four phonetic roles.
//
//  1. Initial sounds: ㄅㄆㄇㄈㄉㄊㄋㄌㄍㄎㄏㄐㄑㄒㄓㄔㄕㄖㄗㄘㄙ
//  2. Medial glides: ㄧㄨㄩ
//  3. Rimes: ㄚㄛㄜㄝㄞㄟㄠㄡㄢㄣㄤㄥㄦ
//  4. Tonal marks: ˙ˊˇˋ
type Kind int

const (
	KindInitial Kind = iota
	KindMedial
	KindRime
	KindTone
)

// Bopomofo is one of the 37 letters or 4 tone marks of Zhuyin.
type Bopomofo uint8

const (
	B Bopomofo = iota
	P
	M
	F
	D
	T
	N
	L
	G
	K
	H
	J
	Q
	X
	ZH
	CH
	SH
	R
	Z
	C
	S
	I
	U
	IU
	A
	O
	E
	EH
	AI
	EI
	AU
	OU
	AN
	EN
	ANG
	ENG
	ER
	TONE5
	TONE2
	TONE3
	TONE4
	TONE1
)

var initialMap = [...]Bopomofo{B, P, M, F, D, T, N, L, G, K, H, J, Q, X, ZH, CH, SH, R, Z, C, S}
var medialMap = [...]Bopomofo{I, U, IU}
var rimeMap = [...]Bopomofo{A, O, E, EH, AI, EI, AU, OU, AN, EN, ANG, ENG, ER}
var toneMap = [...]Bopomofo{TONE5, TONE2, TONE3, TONE4}

// Kind returns the phonetic role of b.
func (b Bopomofo) Kind() Kind {
	switch b {
	case B, P, M, F, D, T, N, L, G, K, H, J, Q, X, ZH, CH, SH, R, Z, C, S:
		return KindInitial
	case I, U, IU:
		return KindMedial
	case A, O, E, EH, AI, EI, AU, OU, AN, EN, ANG, ENG, ER:
		return KindRime
	default:
		return KindTone
	}
}

// ErrIndexOutOfRange is returned by the From* constructors when index does
// not identify a valid Bopomofo of the requested kind.
var ErrIndexOutOfRange = fmt.Errorf("zhuyin: index out of range")

// ErrUnknownSymbol is returned by Parse when the rune is not a Bopomofo.
var ErrUnknownSymbol = fmt.Errorf("zhuyin: unknown symbol")

// FromInitial returns the initial-kind Bopomofo at the given 1-based index.
func FromInitial(index uint16) (Bopomofo, error) {
	if index < 1 || int(index-1) >= len(initialMap) {
		return 0, ErrIndexOutOfRange
	}
	return initialMap[index-1], nil
}

// FromMedial returns the medial-kind Bopomofo at the given 1-based index.
func FromMedial(index uint16) (Bopomofo, error) {
	if index < 1 || int(index-1) >= len(medialMap) {
		return 0, ErrIndexOutOfRange
	}
	return medialMap[index-1], nil
}

// FromRime returns the rime-kind Bopomofo at the given 1-based index.
func FromRime(index uint16) (Bopomofo, error) {
	if index < 1 || int(index-1) >= len(rimeMap) {
		return 0, ErrIndexOutOfRange
	}
	return rimeMap[index-1], nil
}

// FromTone returns the tone-kind Bopomofo at the given 1-based index.
func FromTone(index uint16) (Bopomofo, error) {
	if index < 1 || int(index-1) >= len(toneMap) {
		return 0, ErrIndexOutOfRange
	}
	return toneMap[index-1], nil
}

func indexOf(table []Bopomofo, b Bopomofo) uint16 {
	for i, v := range table {
		if v == b {
			return uint16(i + 1)
		}
	}
	panic(fmt.Sprintf("zhuyin: %v is not a member of the given table", b))
}

// InitialIndex returns b's 1-based index among initials. Panics if b is not
// an initial.
func (b Bopomofo) InitialIndex() uint16 { return indexOf(initialMap[:], b) }

// MedialIndex returns b's 1-based index among medials. Panics if b is not a
// medial.
func (b Bopomofo) MedialIndex() uint16 { return indexOf(medialMap[:], b) }

// RimeIndex returns b's 1-based index among rimes. Panics if b is not a
// rime.
func (b Bopomofo) RimeIndex() uint16 { return indexOf(rimeMap[:], b) }

// ToneIndex returns b's 1-based index among tones. Panics if b is not a
// tone.
func (b Bopomofo) ToneIndex() uint16 { return indexOf(toneMap[:], b) }

var runeTable = map[Bopomofo]rune{
	B: 'ㄅ', P: 'ㄆ', M: 'ㄇ', F: 'ㄈ', D: 'ㄉ', T: 'ㄊ', N: 'ㄋ', L: 'ㄌ',
	G: 'ㄍ', K: 'ㄎ', H: 'ㄏ', J: 'ㄐ', Q: 'ㄑ', X: 'ㄒ', ZH: 'ㄓ', CH: 'ㄔ',
	SH: 'ㄕ', R: 'ㄖ', Z: 'ㄗ', C: 'ㄘ', S: 'ㄙ',
	A: 'ㄚ', O: 'ㄛ', E: 'ㄜ', EH: 'ㄝ', AI: 'ㄞ', EI: 'ㄟ', AU: 'ㄠ', OU: 'ㄡ',
	AN: 'ㄢ', EN: 'ㄣ', ANG: 'ㄤ', ENG: 'ㄥ', ER: 'ㄦ',
	I: 'ㄧ', U: 'ㄨ', IU: 'ㄩ',
	TONE1: 'ˉ', TONE5: '˙', TONE2: 'ˊ', TONE3: 'ˇ', TONE4: 'ˋ',
}

var fromRune map[rune]Bopomofo

func init() {
	fromRune = make(map[rune]Bopomofo, len(runeTable))
	for b, r := range runeTable {
		fromRune[r] = b
	}
}

// Rune returns the Unicode rendering of b.
func (b Bopomofo) Rune() rune {
	if r, ok := runeTable[b]; ok {
		return r
	}
	return '?'
}

// String implements fmt.Stringer.
func (b Bopomofo) String() string { return string(b.Rune()) }

// Parse maps a single Unicode Bopomofo character back to its Bopomofo
// value.
func Parse(r rune) (Bopomofo, error) {
	if b, ok := fromRune[r]; ok {
		return b, nil
	}
	return 0, ErrUnknownSymbol
}
