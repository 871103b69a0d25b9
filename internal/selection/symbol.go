package selection

import "strings"

// SymbolCategory is one named group of a SymbolSelector's text table, or
// the unnamed top-level group of bare characters listed without a
// "category=" prefix.
type SymbolCategory struct {
	Name  string
	Chars []rune
}

// ParseSymbolTable parses a table of lines, each either "category=chars"
// or a bare "char" line, into categories. Bare characters are gathered
// into a single unnamed leading category.
func ParseSymbolTable(text string) []SymbolCategory {
	var cats []SymbolCategory
	var bare []rune
	for _, line := range strings.Split(text, "\n") {
		line = strings.TrimSpace(line)
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		if i := strings.IndexByte(line, '='); i >= 0 {
			cats = append(cats, SymbolCategory{Name: line[:i], Chars: []rune(line[i+1:])})
			continue
		}
		bare = append(bare, []rune(line)...)
	}
	if len(bare) > 0 {
		cats = append([]SymbolCategory{{Chars: bare}}, cats...)
	}
	return cats
}

// SymbolSelector is a two-level menu: the top level lists category names
// (plus any bare characters, under the unnamed category), and choosing a
// category descends into its characters.
type SymbolSelector struct {
	categories []SymbolCategory
	active     int // -1 while showing the top-level menu
}

// NewSymbolSelector returns a selector over table, parsed by ParseSymbolTable.
func NewSymbolSelector(table string) *SymbolSelector {
	return &SymbolSelector{categories: ParseSymbolTable(table), active: -1}
}

// AtTopLevel reports whether the selector is still showing category
// names rather than one category's characters.
func (s *SymbolSelector) AtTopLevel() bool { return s.active < 0 }

// Menu returns the current level's labels: category names at the top
// level, or the chosen category's characters.
func (s *SymbolSelector) Menu() []string {
	if s.AtTopLevel() {
		names := make([]string, len(s.categories))
		for i, c := range s.categories {
			names[i] = c.Name
		}
		return names
	}
	chars := s.categories[s.active].Chars
	out := make([]string, len(chars))
	for i, r := range chars {
		out[i] = string(r)
	}
	return out
}

// Choose selects entry idx at the current level. At the top level this
// descends into the chosen category and returns (0, false); within a
// category it returns the chosen char and true.
func (s *SymbolSelector) Choose(idx int) (rune, bool) {
	if s.AtTopLevel() {
		if idx < 0 || idx >= len(s.categories) {
			return 0, false
		}
		s.active = idx
		return 0, false
	}
	chars := s.categories[s.active].Chars
	if idx < 0 || idx >= len(chars) {
		return 0, false
	}
	return chars[idx], true
}

// DefaultSymbolTable is a small built-in symbol table covering the
// punctuation and symbol categories commonly bound to Ctrl+0/Ctrl+1.
const DefaultSymbolTable = `
標點=，。、；：？！…—
數學=＋－×÷＝％
括號=（）［］｛｝「」『』
單位=℃℉€￥
`

// specialSymbolFamilies groups punctuation that SpecialSymbolSelector
// offers as alternatives to whichever member the cursor is already on.
var specialSymbolFamilies = []string{
	"「」『』",
	"《》〈〉",
	"【】〔〕",
	"（）",
	"［］｛｝",
	"、，",
	"。．",
	"！!",
	"？?",
	"：:",
	"；;",
	"～~",
	"—－-",
	"…⋯",
}

// SpecialSymbolSelector offers the punctuation family containing a given
// symbol, e.g. landing on any bracket offers every bracket variant.
type SpecialSymbolSelector struct {
	family []rune
}

// NewSpecialSymbolSelector returns a selector over the family containing
// symbol, or nil if symbol belongs to no known family.
func NewSpecialSymbolSelector(symbol rune) *SpecialSymbolSelector {
	for _, family := range specialSymbolFamilies {
		for _, r := range family {
			if r == symbol {
				return &SpecialSymbolSelector{family: []rune(family)}
			}
		}
	}
	return nil
}

// Candidates returns the family's members in table order.
func (s *SpecialSymbolSelector) Candidates() []rune { return s.family }

// Choose returns the chosen member of the family.
func (s *SpecialSymbolSelector) Choose(idx int) (rune, bool) {
	if idx < 0 || idx >= len(s.family) {
		return 0, false
	}
	return s.family[idx], true
}
