package layout

import (
	"strings"

	"github.com/chewing/gochewing/internal/zhuyin"
)

// pinyinInitials maps a romanized initial, longest match first, to the
// Bopomofo initial it spells. Checked before pinyinFinals since initials
// are always a prefix of the syllable.
var pinyinInitials = []struct {
	text string
	b    zhuyin.Bopomofo
}{
	{"zh", zhuyin.ZH}, {"ch", zhuyin.CH}, {"sh", zhuyin.SH},
	{"b", zhuyin.B}, {"p", zhuyin.P}, {"m", zhuyin.M}, {"f", zhuyin.F},
	{"d", zhuyin.D}, {"t", zhuyin.T}, {"n", zhuyin.N}, {"l", zhuyin.L},
	{"g", zhuyin.G}, {"k", zhuyin.K}, {"h", zhuyin.H},
	{"j", zhuyin.J}, {"q", zhuyin.Q}, {"x", zhuyin.X},
	{"r", zhuyin.R}, {"z", zhuyin.Z}, {"c", zhuyin.C}, {"s", zhuyin.S},
}

// pinyinFinals maps the remainder of a romanized syllable, longest match
// first, to the medial/rime Bopomofo pair it spells (either may be
// absent).
var pinyinFinals = []struct {
	text          string
	medial, rime  zhuyin.Bopomofo
	hasM, hasR    bool
}{
	{text: "iang", medial: zhuyin.I, hasM: true, rime: zhuyin.ANG, hasR: true},
	{text: "iong", medial: zhuyin.IU, hasM: true, rime: zhuyin.ENG, hasR: true},
	{text: "uang", medial: zhuyin.U, hasM: true, rime: zhuyin.ANG, hasR: true},
	{text: "ang", rime: zhuyin.ANG, hasR: true},
	{text: "eng", rime: zhuyin.ENG, hasR: true},
	{text: "ian", medial: zhuyin.I, hasM: true, rime: zhuyin.AN, hasR: true},
	{text: "uan", medial: zhuyin.U, hasM: true, rime: zhuyin.AN, hasR: true},
	{text: "uai", medial: zhuyin.U, hasM: true, rime: zhuyin.AI, hasR: true},
	{text: "iao", medial: zhuyin.I, hasM: true, rime: zhuyin.AU, hasR: true},
	{text: "ing", medial: zhuyin.I, hasM: true, rime: zhuyin.ENG, hasR: true},
	{text: "ong", medial: zhuyin.U, hasM: true, rime: zhuyin.ENG, hasR: true},
	{text: "er", rime: zhuyin.ER, hasR: true},
	{text: "ai", rime: zhuyin.AI, hasR: true},
	{text: "ei", rime: zhuyin.EI, hasR: true},
	{text: "ao", rime: zhuyin.AU, hasR: true},
	{text: "ou", rime: zhuyin.OU, hasR: true},
	{text: "an", rime: zhuyin.AN, hasR: true},
	{text: "en", rime: zhuyin.EN, hasR: true},
	{text: "ie", medial: zhuyin.I, hasM: true, rime: zhuyin.EH, hasR: true},
	{text: "ue", medial: zhuyin.IU, hasM: true, rime: zhuyin.EH, hasR: true},
	{text: "ia", medial: zhuyin.I, hasM: true, rime: zhuyin.A, hasR: true},
	{text: "ua", medial: zhuyin.U, hasM: true, rime: zhuyin.A, hasR: true},
	{text: "uo", medial: zhuyin.U, hasM: true, rime: zhuyin.O, hasR: true},
	{text: "ui", medial: zhuyin.U, hasM: true, rime: zhuyin.EI, hasR: true},
	{text: "iu", medial: zhuyin.I, hasM: true, rime: zhuyin.OU, hasR: true},
	{text: "in", medial: zhuyin.I, hasM: true, rime: zhuyin.EN, hasR: true},
	{text: "un", medial: zhuyin.U, hasM: true, rime: zhuyin.EN, hasR: true},
	{text: "a", rime: zhuyin.A, hasR: true},
	{text: "o", rime: zhuyin.O, hasR: true},
	{text: "e", rime: zhuyin.E, hasR: true},
	{text: "i", medial: zhuyin.I, hasM: true},
	{text: "u", medial: zhuyin.U, hasM: true},
	{text: "v", medial: zhuyin.IU, hasM: true},
}

var pinyinTones = map[byte]zhuyin.Bopomofo{
	'1': zhuyin.TONE1, '2': zhuyin.TONE2, '3': zhuyin.TONE3,
	'4': zhuyin.TONE4, '5': zhuyin.TONE5,
}

// PinyinScheme names one of the romanization schemes the Pinyin editor
// accepts. They share a parser; only the acceptable alternate spellings
// differ.
type PinyinScheme int

const (
	HanyuPinyin PinyinScheme = iota
	ThlPinyin
	Mps2Pinyin
)

// pinyinAliases lists scheme-specific spellings that are folded to their
// Hanyu equivalent before table lookup.
var pinyinAliases = map[PinyinScheme]map[string]string{
	ThlPinyin: {
		"zh": "jh", "c": "c", "q": "c", "x": "s",
	},
	Mps2Pinyin: {
		"zh": "j", "ch": "q", "sh": "x", "ng": "ng",
	},
}

// Pinyin assembles a romanized syllable typed as plain ASCII (optionally
// followed by a 1-5 tone digit) into a Bopomofo Syllable on space or
// digit.
type Pinyin struct {
	scheme PinyinScheme
	buf    []byte
	parsed zhuyin.Syllable
}

func NewPinyin(scheme PinyinScheme) *Pinyin { return &Pinyin{scheme: scheme} }

func (p *Pinyin) KeyPress(key KeyEvent) Behavior {
	switch {
	case key.Rune == ' ':
		if len(p.buf) == 0 {
			return Behavior{Kind: NoWord}
		}
		return p.commit(0)
	case key.Rune >= '1' && key.Rune <= '5':
		if len(p.buf) == 0 {
			return Behavior{Kind: NoWord}
		}
		return p.commit(byte(key.Rune))
	case key.Rune >= 'a' && key.Rune <= 'z':
		p.buf = append(p.buf, byte(key.Rune))
		return Behavior{Kind: Absorb}
	default:
		return Behavior{Kind: NoWord}
	}
}

func (p *Pinyin) commit(tone byte) Behavior {
	syl, ok := p.parse(string(p.buf), tone)
	p.buf = p.buf[:0]
	if !ok {
		return Behavior{Kind: KeyError}
	}
	p.parsed = syl
	return Behavior{Kind: Commit}
}

func (p *Pinyin) parse(text string, tone byte) (zhuyin.Syllable, bool) {
	if alias, ok := pinyinAliases[p.scheme]; ok {
		for from, to := range alias {
			if strings.HasPrefix(text, from) {
				text = to + text[len(from):]
				break
			}
		}
	}
	b := zhuyin.NewBuilder()
	rest := text
	var initial zhuyin.Bopomofo
	hasInitial := false
	for _, in := range pinyinInitials {
		if strings.HasPrefix(rest, in.text) {
			if err := b.Insert(in.b); err != nil {
				return 0, false
			}
			initial, hasInitial = in.b, true
			rest = rest[len(in.text):]
			break
		}
	}
	if rest == "i" && hasInitial {
		switch initial {
		case zhuyin.ZH, zhuyin.CH, zhuyin.SH, zhuyin.R, zhuyin.Z, zhuyin.C, zhuyin.S:
			rest = ""
		}
	}

	matched := false
	for _, fin := range pinyinFinals {
		if rest == fin.text {
			if fin.hasM {
				if err := b.Insert(fin.medial); err != nil {
					return 0, false
				}
			}
			if fin.hasR {
				if err := b.Insert(fin.rime); err != nil {
					return 0, false
				}
			}
			matched = true
			break
		}
	}
	if !matched && rest != "" {
		return 0, false
	}
	if tone != 0 {
		if t, ok := pinyinTones[tone]; ok {
			if err := b.Insert(t); err != nil {
				return 0, false
			}
		}
	}
	return b.Build(), true
}

func (p *Pinyin) IsEmpty() bool { return len(p.buf) == 0 && p.parsed.IsEmpty() }
func (p *Pinyin) RemoveLast() {
	if len(p.buf) > 0 {
		p.buf = p.buf[:len(p.buf)-1]
		return
	}
	p.parsed.Pop()
}
func (p *Pinyin) Clear() {
	p.buf = p.buf[:0]
	p.parsed.Clear()
}
func (p *Pinyin) Read() zhuyin.Syllable { return p.parsed }
func (p *Pinyin) AltSyllables(zhuyin.Syllable) []zhuyin.Syllable { return nil }
func (p *Pinyin) Clone() SyllableEditor {
	cp := &Pinyin{scheme: p.scheme, parsed: p.parsed}
	cp.buf = append(cp.buf, p.buf...)
	return cp
}
