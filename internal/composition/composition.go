// Package composition implements the cursor-addressable buffer of symbols,
// gaps and user selections that the editor state machine operates on.
package composition

import "github.com/chewing/gochewing/internal/zhuyin"

// Gap describes the relationship enforced between two adjacent symbols.
type Gap int

const (
	GapBegin  Gap = iota // reserved for index 0
	GapBreak             // forbids a phrase spanning across it
	GapGlue              // forces concatenation of the two adjacent phrases
	GapNormal            // no constraint
)

// Symbol is a tagged union of a phonetic Syllable or a direct passthrough
// character. Go has no tagged-union type, so the discriminant is explicit,
// matching the struct-with-discriminant shape the teacher uses for its own
// multi-variant ToneMark/VowelMark values.
type Symbol struct {
	syllable zhuyin.Syllable
	char     rune
	isChar   bool
}

// FromSyllable wraps a Syllable as a Symbol.
func FromSyllable(s zhuyin.Syllable) Symbol { return Symbol{syllable: s} }

// FromChar wraps a rune as a Symbol.
func FromChar(r rune) Symbol { return Symbol{char: r, isChar: true} }

func (s Symbol) IsSyllable() bool { return !s.isChar }
func (s Symbol) IsChar() bool     { return s.isChar }

// Syllable returns the wrapped Syllable and true, or the zero Syllable and
// false if s wraps a char.
func (s Symbol) Syllable() (zhuyin.Syllable, bool) {
	if s.isChar {
		return 0, false
	}
	return s.syllable, true
}

// Char returns the wrapped rune and true, or 0 and false if s wraps a
// Syllable.
func (s Symbol) Char() (rune, bool) {
	if !s.isChar {
		return 0, false
	}
	return s.char, true
}

// Interval is a half-open segment over the composition buffer together with
// the rendered string for that segment.
type Interval struct {
	Start, End int
	IsPhrase   bool
	Text       string
}

// Len returns End - Start.
func (iv Interval) Len() int { return iv.End - iv.Start }

// IsEmpty reports whether iv spans zero symbols.
func (iv Interval) IsEmpty() bool { return iv.Len() == 0 }

// Contains reports whether iv fully contains other.
func (iv Interval) Contains(other Interval) bool {
	return iv.ContainsRange(other.Start, other.End)
}

func (iv Interval) ContainsRange(start, end int) bool {
	return iv.Start <= start && iv.End >= end
}

// Intersect reports whether iv and other overlap partially (neither fully
// containing the other is not required for this check; it is true for any
// non-empty overlap).
func (iv Interval) Intersect(other Interval) bool {
	return iv.IntersectRange(other.Start, other.End)
}

func (iv Interval) IntersectRange(start, end int) bool {
	return max(iv.Start, start) < min(iv.End, end)
}

// Composition holds the in-progress input: a parallel symbols/gaps slice
// plus user-forced selection intervals.
type Composition struct {
	symbols    []Symbol
	gaps       []Gap
	selections []Interval
}

// New returns an empty Composition.
func New() *Composition { return &Composition{} }

// Len returns the number of symbols, asserting the symbols/gaps invariant.
func (c *Composition) Len() int {
	if len(c.symbols) != len(c.gaps) {
		panic("composition: symbols/gaps length mismatch")
	}
	return len(c.symbols)
}

func (c *Composition) IsEmpty() bool { return c.Len() == 0 }

// Symbol returns the symbol under the cursor at index, or false if index is
// at or beyond the end of the buffer.
func (c *Composition) Symbol(index int) (Symbol, bool) {
	if index < 0 || index >= c.Len() {
		return Symbol{}, false
	}
	return c.symbols[index], true
}

func (c *Composition) Symbols() []Symbol { return c.symbols }

func (c *Composition) Selections() []Interval { return c.selections }

func (c *Composition) Gap(index int) (Gap, bool) {
	if index < 0 || index >= c.Len() {
		return 0, false
	}
	return c.gaps[index], true
}

func (c *Composition) GapAfter(index int) (Gap, bool) {
	if index+1 >= c.Len() {
		return 0, false
	}
	return c.gaps[index+1], true
}

// SetGap sets the gap at index. Break removes any selection straddling it.
func (c *Composition) SetGap(index int, gap Gap) {
	if index >= c.Len() {
		panic("composition: SetGap index out of range")
	}
	if gap == GapBegin {
		panic("composition: cannot set GapBegin explicitly")
	}
	if index == 0 {
		return
	}
	if gap == GapBreak {
		c.removeSelectionsWhere(func(sel Interval) bool {
			return sel.Start < index && index < sel.End
		})
	}
	c.gaps[index] = gap
}

// Push appends sym to the end of the buffer.
func (c *Composition) Push(sym Symbol) { c.Insert(c.Len(), sym) }

// Insert places sym at index, shifting later symbols, gaps and selections.
// Any selection strictly containing index is removed.
func (c *Composition) Insert(index int, sym Symbol) {
	if index > c.Len() {
		panic("composition: Insert index out of range")
	}
	kept := c.selections[:0:0]
	for _, sel := range c.selections {
		if sel.Start < index && index < sel.End {
			continue
		}
		if sel.Start >= index {
			sel.Start++
			sel.End++
		}
		kept = append(kept, sel)
	}
	c.selections = kept

	c.symbols = append(c.symbols, Symbol{})
	copy(c.symbols[index+1:], c.symbols[index:])
	c.symbols[index] = sym

	oldGapLen := len(c.gaps)
	if oldGapLen > 0 && index != oldGapLen {
		c.gaps[index] = GapNormal
	}
	c.gaps = append(c.gaps, 0)
	copy(c.gaps[index+1:], c.gaps[index:])
	c.gaps[index] = GapNormal
	c.gaps[0] = GapBegin
}

// Replace overwrites the symbol at index and resets its leading gap to
// Normal.
func (c *Composition) Replace(index int, sym Symbol) {
	if index >= c.Len() {
		panic("composition: Replace index out of range")
	}
	c.symbols[index] = sym
	c.SetGap(index, GapNormal)
}

// PushSelection adds a forced interval, removing any selection that
// intersects it and clearing Break gaps strictly inside it.
func (c *Composition) PushSelection(iv Interval) {
	if iv.End > c.Len() {
		panic("composition: PushSelection interval out of range")
	}
	c.removeSelectionsWhere(func(sel Interval) bool { return sel.Intersect(iv) })
	for i := iv.Start + 1; i < iv.End; i++ {
		c.gaps[i] = GapNormal
	}
	c.selections = append(c.selections, iv)
}

// RemoveFront drops the first n symbols, shifting or dropping selections
// accordingly.
func (c *Composition) RemoveFront(n int) {
	if n > c.Len() {
		panic("composition: RemoveFront out of range")
	}
	kept := c.selections[:0:0]
	for _, sel := range c.selections {
		if sel.Start < n {
			continue
		}
		sel.Start -= n
		sel.End -= n
		kept = append(kept, sel)
	}
	c.selections = kept
	c.symbols = append([]Symbol{}, c.symbols[n:]...)
	c.gaps = append([]Gap{}, c.gaps[n:]...)
	if len(c.gaps) > 0 {
		c.gaps[0] = GapBegin
	}
}

// Remove deletes the symbol at index, shifting or dropping selections
// accordingly.
func (c *Composition) Remove(index int) {
	if index >= c.Len() {
		panic("composition: Remove index out of range")
	}
	kept := c.selections[:0:0]
	for _, sel := range c.selections {
		if sel.Start <= index {
			if index < sel.End {
				continue
			}
		} else {
			sel.Start--
			sel.End--
		}
		kept = append(kept, sel)
	}
	c.selections = kept
	c.symbols = append(c.symbols[:index], c.symbols[index+1:]...)
	c.gaps = append(c.gaps[:index], c.gaps[index+1:]...)
	if len(c.gaps) > 0 {
		c.gaps[0] = GapBegin
	}
}

// Clear empties the buffer entirely.
func (c *Composition) Clear() {
	c.symbols = nil
	c.gaps = nil
	c.selections = nil
}

func (c *Composition) removeSelectionsWhere(match func(Interval) bool) {
	kept := c.selections[:0:0]
	for _, sel := range c.selections {
		if !match(sel) {
			kept = append(kept, sel)
		}
	}
	c.selections = kept
}
