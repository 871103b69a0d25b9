package layout

import "github.com/chewing/gochewing/internal/zhuyin"

// standardKeyMap is the "Default" Zhuyin keyboard printed on keyboards sold
// in Taiwan: each physical key produces exactly one Bopomofo of a fixed
// kind, so assembly is a straight insert-by-kind with no end-key
// promotion or fuzzy rules.
var standardKeyMap = map[rune]zhuyin.Bopomofo{
	'1': zhuyin.B, 'q': zhuyin.P, 'a': zhuyin.M, 'z': zhuyin.F,
	'2': zhuyin.D, 'w': zhuyin.T, 's': zhuyin.N, 'x': zhuyin.L,
	'e': zhuyin.G, 'd': zhuyin.K, 'c': zhuyin.H,
	'r': zhuyin.J, 'f': zhuyin.Q, 'v': zhuyin.X,
	'5': zhuyin.ZH, 't': zhuyin.CH, 'g': zhuyin.SH, 'b': zhuyin.R,
	'y': zhuyin.Z, 'h': zhuyin.C, 'n': zhuyin.S,
	'u': zhuyin.I, 'j': zhuyin.U, 'm': zhuyin.IU,
	'8': zhuyin.A, 'i': zhuyin.O, 'k': zhuyin.E, ',': zhuyin.EH,
	'9': zhuyin.AI, 'o': zhuyin.EI, 'l': zhuyin.AU, '.': zhuyin.OU,
	'0': zhuyin.AN, 'p': zhuyin.EN, ';': zhuyin.ANG, '/': zhuyin.ENG,
	'-': zhuyin.ER,
	'6': zhuyin.TONE2, '3': zhuyin.TONE3, '4': zhuyin.TONE4, '7': zhuyin.TONE5,
}

// Standard assembles keystrokes under the default layout.
type Standard struct {
	syl zhuyin.Syllable
}

func NewStandard() *Standard { return &Standard{} }

func (s *Standard) KeyPress(key KeyEvent) Behavior {
	if key.Rune == ' ' {
		if s.syl.IsEmpty() {
			return Behavior{Kind: NoWord}
		}
		return Behavior{Kind: Commit}
	}
	b, ok := standardKeyMap[key.Rune]
	if !ok {
		return Behavior{Kind: NoWord}
	}
	s.syl.Update(b)
	if b.Kind() == zhuyin.KindTone {
		return Behavior{Kind: Commit}
	}
	return Behavior{Kind: Absorb}
}

func (s *Standard) IsEmpty() bool  { return s.syl.IsEmpty() }
func (s *Standard) RemoveLast()    { s.syl.Pop() }
func (s *Standard) Clear()         { s.syl.Clear() }
func (s *Standard) Read() zhuyin.Syllable { return s.syl }
func (s *Standard) AltSyllables(zhuyin.Syllable) []zhuyin.Syllable { return nil }
func (s *Standard) Clone() SyllableEditor {
	cp := *s
	return &cp
}
