package layout

import (
	"unicode"

	"github.com/chewing/gochewing/internal/zhuyin"
)

// hsuFixedLetterMap holds the Hsu letter keys whose meaning never depends
// on the buffer. The context keys are resolved in mapLetter instead: a, g,
// h, k, l, m and n read as a rime once an initial or medial is present,
// and e reads as ㄝ after a medial and as the medial ㄧ otherwise.
var hsuFixedLetterMap = map[rune]zhuyin.Bopomofo{
	'b': zhuyin.B, 'c': zhuyin.SH, 'd': zhuyin.D, 'f': zhuyin.F,
	'i': zhuyin.AI, 'j': zhuyin.ZH, 'o': zhuyin.OU, 'p': zhuyin.P,
	'r': zhuyin.R, 's': zhuyin.S, 't': zhuyin.T, 'u': zhuyin.IU,
	'v': zhuyin.CH, 'w': zhuyin.AU, 'x': zhuyin.U, 'y': zhuyin.A,
	'z': zhuyin.Z,
}

// hsuEndPromotion maps J, Q and X back to ZH, CH and SH when an end key
// arrives while the syllable has no medial.
var hsuEndPromotion = map[zhuyin.Bopomofo]zhuyin.Bopomofo{
	zhuyin.J: zhuyin.ZH,
	zhuyin.Q: zhuyin.CH,
	zhuyin.X: zhuyin.SH,
}

var hsuEndRimeFallback = map[zhuyin.Bopomofo]zhuyin.Bopomofo{
	zhuyin.H: zhuyin.O,
	zhuyin.G: zhuyin.E,
	zhuyin.M: zhuyin.AN,
	zhuyin.N: zhuyin.EN,
	zhuyin.K: zhuyin.ANG,
	zhuyin.L: zhuyin.ER,
}

// Hsu assembles keystrokes under the Hsu (許氏) layout.
type Hsu struct {
	syl zhuyin.Syllable
}

func NewHsu() *Hsu { return &Hsu{} }

func isHsuEndKey(r rune, empty bool) bool {
	if empty {
		return false
	}
	return r == 's' || r == 'd' || r == 'f' || r == 'j' || r == ' '
}

func (h *Hsu) KeyPress(key KeyEvent) Behavior {
	r := unicode.ToLower(key.Rune)
	if r != ' ' && (r < 'a' || r > 'z') {
		return Behavior{Kind: NoWord}
	}
	if isHsuEndKey(r, h.syl.IsEmpty()) {
		return h.commitEndKey(r)
	}
	if r == ' ' {
		return Behavior{Kind: NoWord}
	}
	b, ok := h.mapLetter(r)
	if !ok {
		return Behavior{Kind: NoWord}
	}
	h.syl.Update(b)
	h.resolveZhChSh()
	return Behavior{Kind: Absorb}
}

func (h *Hsu) mapLetter(r rune) (zhuyin.Bopomofo, bool) {
	hasIM := h.syl.HasInitial() || h.syl.HasMedial()
	switch r {
	case 'a':
		if hasIM {
			return zhuyin.EI, true
		}
		return zhuyin.C, true
	case 'e':
		if h.syl.HasMedial() {
			return zhuyin.EH, true
		}
		return zhuyin.I, true
	case 'g':
		if hasIM {
			return zhuyin.E, true
		}
		return zhuyin.G, true
	case 'h':
		if hasIM {
			return zhuyin.O, true
		}
		return zhuyin.H, true
	case 'k':
		if hasIM {
			return zhuyin.ANG, true
		}
		return zhuyin.K, true
	case 'l':
		if hasIM {
			return zhuyin.ENG, true
		}
		return zhuyin.L, true
	case 'm':
		if hasIM {
			return zhuyin.AN, true
		}
		return zhuyin.M, true
	case 'n':
		if hasIM {
			return zhuyin.EN, true
		}
		return zhuyin.N, true
	}
	b, ok := hsuFixedLetterMap[r]
	return b, ok
}

// resolveZhChSh fixes up the initial/medial pair when ZH/CH/SH is followed
// by I or IU, or J/Q/X is left without one: only J/Q/X combine with
// I/IU in practice, so the pair is silently reinterpreted.
func (h *Hsu) resolveZhChSh() {
	initial, ok := h.syl.Initial()
	if !ok {
		return
	}
	medial, hasMedial := h.syl.Medial()
	isIOrIU := hasMedial && (medial == zhuyin.I || medial == zhuyin.IU)
	switch {
	case isIOrIU && initial == zhuyin.ZH:
		h.replaceInitial(zhuyin.J)
	case isIOrIU && initial == zhuyin.CH:
		h.replaceInitial(zhuyin.Q)
	case isIOrIU && initial == zhuyin.SH:
		h.replaceInitial(zhuyin.X)
	case !isIOrIU && hasMedial && initial == zhuyin.J:
		h.replaceInitial(zhuyin.ZH)
	case !isIOrIU && hasMedial && initial == zhuyin.Q:
		h.replaceInitial(zhuyin.CH)
	case !isIOrIU && hasMedial && initial == zhuyin.X:
		h.replaceInitial(zhuyin.SH)
	}
}

func (h *Hsu) replaceInitial(b zhuyin.Bopomofo) {
	medial, hasMedial := h.syl.Medial()
	rime, hasRime := h.syl.Rime()
	tone, hasTone := h.syl.Tone()
	h.syl.Clear()
	h.syl.Update(b)
	if hasMedial {
		h.syl.Update(medial)
	}
	if hasRime {
		h.syl.Update(rime)
	}
	if hasTone {
		h.syl.Update(tone)
	}
}

func (h *Hsu) commitEndKey(r rune) Behavior {
	if initial, ok := h.syl.Initial(); ok {
		if zh, ok := hsuEndPromotion[initial]; ok && !h.syl.HasMedial() {
			h.replaceInitial(zh)
		} else if rime, ok := hsuEndRimeFallback[initial]; ok && !h.syl.HasRime() {
			h.syl.RemoveInitial()
			h.syl.Update(rime)
		}
	}
	switch r {
	case 'd':
		h.syl.Update(zhuyin.TONE2)
	case 'f':
		h.syl.Update(zhuyin.TONE3)
	case 'j':
		h.syl.Update(zhuyin.TONE4)
	case 's':
		h.syl.Update(zhuyin.TONE5)
	}
	return Behavior{Kind: Commit}
}

func (h *Hsu) IsEmpty() bool          { return h.syl.IsEmpty() }
func (h *Hsu) RemoveLast()            { h.syl.Pop() }
func (h *Hsu) Clear()                 { h.syl.Clear() }
func (h *Hsu) Read() zhuyin.Syllable  { return h.syl }

// hsuAltTable lists Hsu's end-key ambiguities: a syllable that ends up
// reading as one value may plausibly have been intended as another.
var hsuAltTable = map[zhuyin.Bopomofo][]zhuyin.Bopomofo{
	zhuyin.C:   {zhuyin.EI},
	zhuyin.EI:  {zhuyin.C},
	zhuyin.I:   {zhuyin.EH},
	zhuyin.EH:  {zhuyin.I},
	zhuyin.S:   {zhuyin.TONE5},
	zhuyin.D:   {zhuyin.TONE2},
	zhuyin.F:   {zhuyin.TONE3},
	zhuyin.E:   {zhuyin.G},
	zhuyin.G:   {zhuyin.E},
	zhuyin.O:   {zhuyin.H},
	zhuyin.H:   {zhuyin.O},
	zhuyin.ZH:  {zhuyin.J, zhuyin.TONE4},
	zhuyin.ANG: {zhuyin.K},
	zhuyin.K:   {zhuyin.ANG},
	zhuyin.ER:  {zhuyin.L, zhuyin.ENG},
	zhuyin.ENG: {zhuyin.L},
	zhuyin.SH:  {zhuyin.X},
	zhuyin.CH:  {zhuyin.Q},
	zhuyin.EN:  {zhuyin.N},
	zhuyin.AN:  {zhuyin.M},
}

func (h *Hsu) AltSyllables(syl zhuyin.Syllable) []zhuyin.Syllable {
	var alts []zhuyin.Syllable
	consider := func(kind func() (zhuyin.Bopomofo, bool), replace func(zhuyin.Bopomofo) zhuyin.Syllable) {
		b, ok := kind()
		if !ok {
			return
		}
		for _, alt := range hsuAltTable[b] {
			alts = append(alts, replace(alt))
		}
	}
	consider(syl.Initial, func(alt zhuyin.Bopomofo) zhuyin.Syllable {
		return replaceField(syl, alt)
	})
	consider(syl.Rime, func(alt zhuyin.Bopomofo) zhuyin.Syllable {
		return replaceField(syl, alt)
	})
	consider(syl.Tone, func(alt zhuyin.Bopomofo) zhuyin.Syllable {
		return replaceField(syl, alt)
	})
	return alts
}

// replaceField rebuilds syl with one field's Bopomofo swapped for alt,
// keyed by alt's own Kind.
func replaceField(syl zhuyin.Syllable, alt zhuyin.Bopomofo) zhuyin.Syllable {
	initial, hasI := syl.Initial()
	medial, hasM := syl.Medial()
	rime, hasR := syl.Rime()
	tone, hasT := syl.Tone()
	switch alt.Kind() {
	case zhuyin.KindInitial:
		initial, hasI = alt, true
	case zhuyin.KindMedial:
		medial, hasM = alt, true
	case zhuyin.KindRime:
		rime, hasR = alt, true
	case zhuyin.KindTone:
		tone, hasT = alt, true
	}
	var out zhuyin.Syllable
	if hasI {
		out.Update(initial)
	}
	if hasM {
		out.Update(medial)
	}
	if hasR {
		out.Update(rime)
	}
	if hasT {
		out.Update(tone)
	}
	return out
}

func (h *Hsu) Clone() SyllableEditor {
	cp := *h
	return &cp
}
