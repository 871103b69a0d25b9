package layout

import "github.com/chewing/gochewing/internal/zhuyin"

// et26FixedLetterMap covers the Et26 keys whose meaning never depends on
// buffer state.
var et26FixedLetterMap = map[rune]zhuyin.Bopomofo{
	'b': zhuyin.B, 'c': zhuyin.C, 'd': zhuyin.D, 'f': zhuyin.F,
	'g': zhuyin.G, 'h': zhuyin.H, 'j': zhuyin.ZH, 'k': zhuyin.K,
	'l': zhuyin.L, 'n': zhuyin.N, 'q': zhuyin.CH, 'r': zhuyin.R,
	's': zhuyin.S, 't': zhuyin.T, 'w': zhuyin.AU, 'x': zhuyin.SH,
	'z': zhuyin.Z, 'u': zhuyin.IU, 'i': zhuyin.I,
}

// et26ContextLetterMap covers keys whose Bopomofo is the nonEmpty entry
// when an initial or medial is already present, and the empty entry
// otherwise (v and y read the same either way).
var et26ContextLetterMap = map[rune]struct {
	empty, nonEmpty zhuyin.Bopomofo
}{
	'a': {zhuyin.A, zhuyin.AI},
	'e': {zhuyin.E, zhuyin.EI},
	'm': {zhuyin.M, zhuyin.AN},
	'o': {zhuyin.O, zhuyin.OU},
	'p': {zhuyin.P, zhuyin.ENG},
	'v': {zhuyin.EH, zhuyin.EH},
	'y': {zhuyin.TONE2, zhuyin.TONE2},
}

// Et26 assembles keystrokes under the 26-key Et layout: every letter key
// is used, with a handful of context-sensitive keys whose meaning depends
// on whether the syllable already has an initial or medial.
//
// approximate key table
type Et26 struct {
	syl zhuyin.Syllable
}

func NewEt26() *Et26 { return &Et26{} }

func (e *Et26) KeyPress(key KeyEvent) Behavior {
	r := key.Rune
	if r == ' ' {
		if e.syl.IsEmpty() {
			return Behavior{Kind: NoWord}
		}
		return Behavior{Kind: Commit}
	}
	if b, ok := et26FixedLetterMap[r]; ok {
		e.syl.Update(b)
		if b.Kind() == zhuyin.KindTone {
			return Behavior{Kind: Commit}
		}
		return Behavior{Kind: Absorb}
	}
	if ctx, ok := et26ContextLetterMap[r]; ok {
		b := ctx.empty
		if e.syl.HasInitial() || e.syl.HasMedial() {
			b = ctx.nonEmpty
		}
		e.syl.Update(b)
		if b.Kind() == zhuyin.KindTone {
			return Behavior{Kind: Commit}
		}
		return Behavior{Kind: Absorb}
	}
	return Behavior{Kind: NoWord}
}

func (e *Et26) IsEmpty() bool         { return e.syl.IsEmpty() }
func (e *Et26) RemoveLast()           { e.syl.Pop() }
func (e *Et26) Clear()                { e.syl.Clear() }
func (e *Et26) Read() zhuyin.Syllable { return e.syl }
func (e *Et26) AltSyllables(zhuyin.Syllable) []zhuyin.Syllable { return nil }
func (e *Et26) Clone() SyllableEditor {
	cp := *e
	return &cp
}
