package layout

import "github.com/chewing/gochewing/internal/zhuyin"

// tableEditor is the shared implementation for layouts where every key
// maps to exactly one Bopomofo regardless of buffer state: Et, GinYieh,
// Ibm and DaiChien26 all fit this shape, differing only in their key
// table, the same way the teacher's VNI and Telex formats share
// OutputFormat plumbing but differ in their lookup tables.
type tableEditor struct {
	syl   zhuyin.Syllable
	table map[rune]zhuyin.Bopomofo
}

func newTableEditor(table map[rune]zhuyin.Bopomofo) *tableEditor {
	return &tableEditor{table: table}
}

func (t *tableEditor) KeyPress(key KeyEvent) Behavior {
	if key.Rune == ' ' {
		if t.syl.IsEmpty() {
			return Behavior{Kind: NoWord}
		}
		return Behavior{Kind: Commit}
	}
	b, ok := t.table[key.Rune]
	if !ok {
		return Behavior{Kind: NoWord}
	}
	t.syl.Update(b)
	if b.Kind() == zhuyin.KindTone {
		return Behavior{Kind: Commit}
	}
	return Behavior{Kind: Absorb}
}

func (t *tableEditor) IsEmpty() bool         { return t.syl.IsEmpty() }
func (t *tableEditor) RemoveLast()           { t.syl.Pop() }
func (t *tableEditor) Clear()                { t.syl.Clear() }
func (t *tableEditor) Read() zhuyin.Syllable { return t.syl }
func (t *tableEditor) AltSyllables(zhuyin.Syllable) []zhuyin.Syllable { return nil }
func (t *tableEditor) Clone() SyllableEditor {
	cp := *t
	return &cp
}

// Et is the "倚天" (Et) 37-key layout.
//
// approximate key table
type Et struct{ *tableEditor }

func NewEt() *Et {
	return &Et{newTableEditor(map[rune]zhuyin.Bopomofo{
		'1': zhuyin.B, '2': zhuyin.D, '3': zhuyin.TONE3, '4': zhuyin.TONE4,
		'5': zhuyin.ZH, '6': zhuyin.TONE2, '7': zhuyin.TONE5, '8': zhuyin.A,
		'9': zhuyin.AI, '0': zhuyin.AN, '-': zhuyin.ER,
		'q': zhuyin.P, 'w': zhuyin.T, 'e': zhuyin.G, 'r': zhuyin.J,
		't': zhuyin.CH, 'y': zhuyin.Z, 'u': zhuyin.I, 'i': zhuyin.O,
		'o': zhuyin.EI, 'p': zhuyin.EN,
		'a': zhuyin.M, 's': zhuyin.N, 'd': zhuyin.K, 'f': zhuyin.Q,
		'g': zhuyin.SH, 'h': zhuyin.C, 'j': zhuyin.U, 'k': zhuyin.E,
		'l': zhuyin.AU, ';': zhuyin.ANG,
		'z': zhuyin.F, 'x': zhuyin.L, 'c': zhuyin.H, 'v': zhuyin.X,
		'b': zhuyin.R, 'n': zhuyin.S, 'm': zhuyin.IU, ',': zhuyin.EH,
		'.': zhuyin.OU, '/': zhuyin.ENG,
	})}
}

// GinYieh is the "倉頡/金頁" GinYieh 37-key layout.
//
// approximate key table
type GinYieh struct{ *tableEditor }

func NewGinYieh() *GinYieh {
	return &GinYieh{newTableEditor(map[rune]zhuyin.Bopomofo{
		'1': zhuyin.B, 'q': zhuyin.P, 'a': zhuyin.M, 'z': zhuyin.F,
		'2': zhuyin.D, 'w': zhuyin.T, 's': zhuyin.N, 'x': zhuyin.L,
		'e': zhuyin.G, 'd': zhuyin.K, 'c': zhuyin.H,
		'r': zhuyin.J, 'f': zhuyin.Q, 'v': zhuyin.X,
		't': zhuyin.ZH, 'g': zhuyin.CH, 'b': zhuyin.SH, 'y': zhuyin.R,
		'h': zhuyin.Z, 'n': zhuyin.C, 'j': zhuyin.S,
		'u': zhuyin.I, 'm': zhuyin.U, 'i': zhuyin.IU,
		'8': zhuyin.A, 'k': zhuyin.O, ',': zhuyin.E, 'o': zhuyin.EH,
		'9': zhuyin.AI, 'l': zhuyin.EI, '.': zhuyin.AU, ';': zhuyin.OU,
		'0': zhuyin.AN, 'p': zhuyin.EN, '-': zhuyin.ANG, '[': zhuyin.ENG,
		']': zhuyin.ER,
		'6': zhuyin.TONE2, '3': zhuyin.TONE3, '4': zhuyin.TONE4, '7': zhuyin.TONE5,
	})}
}

// Ibm is the IBM 37-key layout.
//
// approximate key table
type Ibm struct{ *tableEditor }

func NewIbm() *Ibm {
	return &Ibm{newTableEditor(map[rune]zhuyin.Bopomofo{
		'1': zhuyin.B, '2': zhuyin.P, '3': zhuyin.M, '4': zhuyin.F,
		'5': zhuyin.D, '6': zhuyin.T, '7': zhuyin.N, '8': zhuyin.L,
		'9': zhuyin.G, '0': zhuyin.K,
		'q': zhuyin.H, 'w': zhuyin.J, 'e': zhuyin.Q, 'r': zhuyin.X,
		't': zhuyin.ZH, 'y': zhuyin.CH, 'u': zhuyin.SH, 'i': zhuyin.R,
		'o': zhuyin.Z, 'p': zhuyin.C,
		'a': zhuyin.S, 's': zhuyin.I, 'd': zhuyin.U, 'f': zhuyin.IU,
		'g': zhuyin.A, 'h': zhuyin.O, 'j': zhuyin.E, 'k': zhuyin.EH,
		'l': zhuyin.AI, ';': zhuyin.EI,
		'z': zhuyin.AU, 'x': zhuyin.OU, 'c': zhuyin.AN, 'v': zhuyin.EN,
		'b': zhuyin.ANG, 'n': zhuyin.ENG, 'm': zhuyin.ER,
		',': zhuyin.TONE2, '.': zhuyin.TONE3, '/': zhuyin.TONE4,
	})}
}

// DaiChien26 is the 26-key "大千" (DaChen) layout.
//
// approximate key table
type DaiChien26 struct{ *tableEditor }

func NewDaiChien26() *DaiChien26 {
	return &DaiChien26{newTableEditor(map[rune]zhuyin.Bopomofo{
		'b': zhuyin.B, 'p': zhuyin.P, 'm': zhuyin.M, 'f': zhuyin.F,
		'd': zhuyin.D, 't': zhuyin.T, 'n': zhuyin.N, 'l': zhuyin.L,
		'g': zhuyin.G, 'k': zhuyin.K, 'h': zhuyin.H,
		'j': zhuyin.J, 'q': zhuyin.Q, 'x': zhuyin.X,
		'z': zhuyin.ZH, 'c': zhuyin.CH, 's': zhuyin.SH, 'r': zhuyin.R,
		'y': zhuyin.Z, 'w': zhuyin.C, 'v': zhuyin.S,
		'u': zhuyin.I, 'o': zhuyin.U, 'i': zhuyin.IU,
		'a': zhuyin.A, 'e': zhuyin.O, 'E': zhuyin.E, '1': zhuyin.EH,
		'2': zhuyin.AI, '3': zhuyin.EI, '4': zhuyin.AU, '5': zhuyin.OU,
		'6': zhuyin.AN, '7': zhuyin.EN, '8': zhuyin.ANG, '9': zhuyin.ENG,
		'0': zhuyin.ER,
		'-': zhuyin.TONE2, '=': zhuyin.TONE3, '[': zhuyin.TONE4, ']': zhuyin.TONE5,
	})}
}
