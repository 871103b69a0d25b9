// Package editor implements the input method's key-dispatch state
// machine: Entering (and its EnteringSyllable sub-state while a syllable
// is mid-assembly), Selecting (choosing among phrase, symbol, or special
// symbol candidates), and Highlighting (manually adjusting a phrase
// boundary).
package editor

import (
	"errors"
	"strings"

	"github.com/chewing/gochewing/internal/composition"
	"github.com/chewing/gochewing/internal/conversion"
	"github.com/chewing/gochewing/internal/dictionary"
	"github.com/chewing/gochewing/internal/estimate"
	"github.com/chewing/gochewing/internal/layout"
	"github.com/chewing/gochewing/internal/selection"
	"github.com/chewing/gochewing/internal/zhuyin"
)

// Mode names the editor's current top-level state.
type Mode int

const (
	Entering Mode = iota
	EnteringSyllable
	Selecting
	Highlighting
)

// SpecialKey names a non-printable key the host forwards to the editor.
type SpecialKey int

const (
	KeyNone SpecialKey = iota
	KeyBackspace
	KeyDelete
	KeyEsc
	KeyEnter
	KeyLeft
	KeyRight
	KeyUp
	KeyDown
	KeyHome
	KeyEnd
	KeyTab
	KeyPageUp
	KeyPageDown
	KeyCapsLock
)

// KeyEvent is one keystroke offered to the editor. Shift and Ctrl report
// whether the physical modifier was held; NumLock marks a key that
// arrived through the host's numeric keypad passthrough layer.
type KeyEvent struct {
	Rune    rune
	Special SpecialKey
	Shift   bool
	Ctrl    bool
	NumLock bool
}

// ErrorKind classifies why PressKey declined a key.
type ErrorKind int

const (
	ErrNone ErrorKind = iota
	ErrKeyError
	ErrAtBoundary
	ErrNoSelection
)

// Error reports why a keystroke had no effect.
type Error struct{ Kind ErrorKind }

func (e *Error) Error() string {
	switch e.Kind {
	case ErrKeyError:
		return "editor: key rejected"
	case ErrAtBoundary:
		return "editor: cursor already at boundary"
	case ErrNoSelection:
		return "editor: no active selection"
	default:
		return "editor: error"
	}
}

var errKeyError = &Error{Kind: ErrKeyError}
var errAtBoundary = &Error{Kind: ErrAtBoundary}
var errNoSelection = &Error{Kind: ErrNoSelection}

// selectorKind names which of the three Selector variants the Selecting
// mode is currently driving.
type selectorKind int

const (
	selNone selectorKind = iota
	selPhrase
	selSymbol
	selSpecialSymbol
)

// Options configures editor behavior.
type Options struct {
	// AutoCommitThreshold, if positive, force-commits the oldest symbols
	// once the buffer grows past this many symbols.
	AutoCommitThreshold int
	// FuzzyKeyboard routes every keystroke through layout.FuzzyKeyPress
	// instead of SyllableEditor.KeyPress directly.
	FuzzyKeyboard bool
	// LookupStrategy selects exact or fuzzy-prefix dictionary lookups.
	LookupStrategy dictionary.LookupStrategy
	// SortCandidatesByFrequency sorts each candidate list by descending
	// learned frequency before presenting it.
	SortCandidatesByFrequency bool
	// Engine overrides the conversion engine; nil selects ChewingEngine.
	Engine conversion.Engine

	// DisableAutoLearnPhrase turns off learning on commit entirely.
	DisableAutoLearnPhrase bool
	// AutoShiftCursor advances the cursor by the confirmed phrase's
	// length after a Selecting confirm.
	AutoShiftCursor bool
	// CandidatesPerPage pages phrase/symbol candidate lists; 0 means 10.
	CandidatesPerPage int
	// SelectionKeys are the 10 keys (in order) that choose a candidate
	// at its position on the current page; empty means "1234567890".
	SelectionKeys string
	// SpaceIsSelectKey makes Space in Entering start Selecting at the
	// cursor, and makes Space page through Selecting's candidates.
	SpaceIsSelectKey bool
	// PhraseChoiceRearward widens PhraseSelector's initial range backward
	// from the cursor instead of forward.
	PhraseChoiceRearward bool
	// EscClearAllBuffer lets Esc clear the whole composition buffer.
	EscClearAllBuffer bool
	// LearnBackward makes Ctrl+n learn the n symbols before the cursor
	// instead of the n symbols from the cursor forward.
	LearnBackward bool
	// EasySymbolInput enables abbreviation expansion for printable keys
	// in Chinese mode.
	EasySymbolInput bool
	// FullwidthToggleEnabled lets Shift+Space toggle halfwidth/fullwidth.
	FullwidthToggleEnabled bool
	// InitialEnglishMode/InitialFullwidth seed the editor's language mode
	// and character form; CapsLock and Shift+Space toggle them live.
	InitialEnglishMode bool
	InitialFullwidth  bool
	// SymbolTable is the text table SymbolSelector parses; empty selects
	// selection.DefaultSymbolTable.
	SymbolTable string
}

// Editor is the input method's key-dispatch state machine.
type Editor struct {
	mode      Mode
	com       *composition.Composition
	cursor    int
	assembler layout.SyllableEditor
	dict      dictionary.Dictionary
	conv      conversion.Engine
	est       estimate.UserFreqEstimate

	selKind    selectorKind
	selector   *selection.PhraseSelector
	symSel     *selection.SymbolSelector
	specialSel *selection.SpecialSymbolSelector
	selAnchor  int
	page       int

	highlight composition.Interval
	convIndex int
	english   bool
	fullwidth bool
	opts      Options

	committed strings.Builder
}

// New returns an Editor over an initially empty composition.
func New(assembler layout.SyllableEditor, dict dictionary.Dictionary, est estimate.UserFreqEstimate, opts Options) *Editor {
	engine := opts.Engine
	if engine == nil {
		engine = conversion.NewChewingEngine()
	}
	return &Editor{
		com:       composition.New(),
		assembler: assembler,
		dict:      dict,
		conv:      engine,
		est:       est,
		english:   opts.InitialEnglishMode,
		fullwidth: opts.InitialFullwidth,
		opts:      opts,
	}
}

// SetOptions replaces the editor's option set; if opts.Engine is nil the
// current conversion engine is left untouched. Does not affect the live
// language-mode/fullwidth toggle state — see SetEnglishMode/SetFullwidth.
func (e *Editor) SetOptions(opts Options) {
	if opts.Engine != nil {
		e.conv = opts.Engine
	}
	e.opts = opts
}

// SetEngine swaps the conversion engine in place.
func (e *Editor) SetEngine(engine conversion.Engine) {
	if engine != nil {
		e.conv = engine
	}
}

// SetEnglishMode forces the live language mode, as an explicit
// language_mode option write would.
func (e *Editor) SetEnglishMode(english bool) { e.english = english }

// SetFullwidth forces the live character form, as an explicit
// character_form option write would.
func (e *Editor) SetFullwidth(fullwidth bool) { e.fullwidth = fullwidth }

// EnglishMode reports the current (possibly CapsLock-toggled) language mode.
func (e *Editor) EnglishMode() bool { return e.english }

// Fullwidth reports the current (possibly Shift+Space-toggled) character form.
func (e *Editor) Fullwidth() bool { return e.fullwidth }

func (e *Editor) Mode() Mode {
	if e.mode == Entering && !e.assembler.IsEmpty() {
		return EnteringSyllable
	}
	return e.mode
}

func (e *Editor) Cursor() int { return e.cursor }

// Committed drains and returns all text committed since the last call.
func (e *Editor) Committed() string {
	s := e.committed.String()
	e.committed.Reset()
	return s
}

// Paths returns the current best-to-worst segmentations of the buffer.
func (e *Editor) Paths() []conversion.Path { return e.conv.Convert(e.com, e.dict) }

// CurrentPath returns the segmentation nth_conversion currently selects
// (Tab at end-of-buffer cycles it), wrapping silently past the end of
// the k-best list.
func (e *Editor) CurrentPath() conversion.Path { return e.currentPath() }

// currentPath returns the segmentation nth_conversion (convIndex) points
// to, wrapping silently if Tab has cycled past the end of the k-best list.
func (e *Editor) currentPath() conversion.Path {
	paths := e.Paths()
	if len(paths) == 0 {
		return conversion.Path{}
	}
	return paths[e.convIndex%len(paths)]
}

// Preedit renders the composition buffer using the segmentation
// nth_conversion currently selects, ready for host display.
func (e *Editor) Preedit() string {
	var sb strings.Builder
	path := e.currentPath()
	if len(path.Intervals) == 0 {
		for _, sym := range e.com.Symbols() {
			writeSymbol(&sb, sym)
		}
	} else {
		for _, iv := range path.Intervals {
			sb.WriteString(iv.Text)
		}
	}
	if !e.assembler.IsEmpty() {
		sb.WriteString(e.assembler.Read().String())
	}
	return sb.String()
}

func writeSymbol(sb *strings.Builder, sym composition.Symbol) {
	if r, ok := sym.Char(); ok {
		sb.WriteRune(r)
		return
	}
	if s, ok := sym.Syllable(); ok {
		sb.WriteString(s.String())
	}
}

// rangeText renders symbols [start,end) the way they'd appear in a fresh
// single-symbol conversion: the dictionary's first phrase per syllable,
// or the raw char/bopomofo spelling if none exists. Used to name a phrase
// being newly taught to the dictionary (Ctrl+n, Highlighting-Enter),
// where no existing dictionary entry can be looked up for its text.
func (e *Editor) rangeText(start, end int) string {
	var sb strings.Builder
	for i := start; i < end; i++ {
		sym, ok := e.com.Symbol(i)
		if !ok {
			continue
		}
		if r, ok := sym.Char(); ok {
			sb.WriteRune(r)
			continue
		}
		s, _ := sym.Syllable()
		if phrases := e.dict.Lookup([]zhuyin.Syllable{s}, dictionary.Standard); len(phrases) > 0 {
			sb.WriteString(phrases[0].Text)
			continue
		}
		sb.WriteString(s.String())
	}
	return sb.String()
}

// PressKey dispatches key to the handler for the editor's current mode.
// NumLock passthrough bypasses the buffer and every mode entirely.
func (e *Editor) PressKey(key KeyEvent) error {
	if key.NumLock && key.Rune != 0 {
		e.committed.WriteRune(key.Rune)
		return nil
	}
	switch e.mode {
	case Selecting:
		return e.pressSelecting(key)
	case Highlighting:
		return e.pressHighlighting(key)
	default:
		return e.pressEntering(key)
	}
}

func (e *Editor) pressEntering(key KeyEvent) error {
	if key.Special != KeyNone {
		return e.pressEnteringSpecial(key)
	}
	if key.Ctrl {
		return e.pressEnteringCtrl(key.Rune)
	}
	if key.Shift && key.Rune == ' ' {
		if e.opts.FullwidthToggleEnabled {
			e.fullwidth = !e.fullwidth
		}
		return nil
	}
	if !e.english && key.Rune == '`' {
		return e.openSymbolSelector()
	}
	if key.Rune == ' ' && e.assembler.IsEmpty() {
		return e.pressEnteringSpace()
	}
	if e.english {
		return e.pressEnteringEnglish(key.Rune)
	}
	if e.tryEasySymbol(key.Rune) {
		return nil
	}

	var behavior layout.Behavior
	if e.opts.FuzzyKeyboard {
		behavior = layout.FuzzyKeyPress(e.assembler, layout.KeyEvent{Rune: key.Rune})
	} else {
		behavior = e.assembler.KeyPress(layout.KeyEvent{Rune: key.Rune})
	}

	switch behavior.Kind {
	case layout.Absorb:
		return nil
	case layout.Commit:
		e.insertSyllable(e.assembler.Read())
		e.assembler.Clear()
		e.enforceAutoCommit()
		return nil
	case layout.FuzzyCommitted:
		e.insertSyllable(behavior.Fuzzy)
		e.enforceAutoCommit()
		return nil
	case layout.KeyError:
		return errKeyError
	default: // NoWord: literal passthrough character
		if key.Rune == 0 {
			return errKeyError
		}
		e.com.Insert(e.cursor, composition.FromChar(key.Rune))
		e.cursor++
		return nil
	}
}

// pressEnteringCtrl handles Ctrl+digit: 2..9 learns a phrase spanning n
// symbols around the cursor, 0/1 opens the general symbol selector.
func (e *Editor) pressEnteringCtrl(r rune) error {
	switch {
	case r >= '2' && r <= '9':
		return e.learnNSymbols(int(r - '0'))
	case r == '0' || r == '1':
		return e.openSymbolSelector()
	default:
		return errKeyError
	}
}

func (e *Editor) learnNSymbols(n int) error {
	var start, end int
	if e.opts.LearnBackward {
		if e.cursor < n {
			return errKeyError
		}
		start, end = e.cursor-n, e.cursor
	} else {
		if e.cursor+n > e.com.Len() {
			return errKeyError
		}
		start, end = e.cursor, e.cursor+n
	}
	syls, ok := extractSyllables(e.com, start, end)
	if !ok {
		return errKeyError
	}
	e.learnInterval(syls, e.rangeText(start, end))
	return nil
}

func (e *Editor) openSymbolSelector() error {
	table := e.opts.SymbolTable
	if table == "" {
		table = selection.DefaultSymbolTable
	}
	e.symSel = selection.NewSymbolSelector(table)
	e.selKind = selSymbol
	e.page = 0
	e.mode = Selecting
	return nil
}

func (e *Editor) pressEnteringSpace() error {
	if e.opts.SpaceIsSelectKey && e.cursor < e.com.Len() {
		return e.enterSelecting()
	}
	r := rune(' ')
	if e.fullwidth {
		r = '　'
	}
	if e.com.IsEmpty() {
		e.committed.WriteRune(r)
		return nil
	}
	e.com.Insert(e.cursor, composition.FromChar(r))
	e.cursor++
	e.enforceAutoCommit()
	return nil
}

func (e *Editor) pressEnteringEnglish(r rune) error {
	if r == 0 {
		return errKeyError
	}
	if e.fullwidth {
		r = toFullwidth(r)
	}
	if e.com.IsEmpty() {
		e.committed.WriteRune(r)
		return nil
	}
	e.com.Insert(e.cursor, composition.FromChar(r))
	e.cursor++
	e.enforceAutoCommit()
	return nil
}

// toFullwidth maps a halfwidth ASCII printable to its fullwidth Unicode
// form, the way a Japanese/Chinese IME's fullwidth toggle renders Latin
// text.
func toFullwidth(r rune) rune {
	if r == ' ' {
		return '　'
	}
	if r >= '!' && r <= '~' {
		return r - '!' + '！'
	}
	return r
}

// easySymbols is a small abbreviation table for EasySymbolInput: typing
// one of these ASCII punctuation keys in Chinese mode directly inserts
// the mapped full-width punctuation instead of being rejected by the
// syllable assembler.
var easySymbols = map[rune]string{
	'\'': "、",
	'<':  "《",
	'>':  "》",
	'[':  "「",
	']':  "」",
}

func (e *Editor) tryEasySymbol(r rune) bool {
	if !e.opts.EasySymbolInput {
		return false
	}
	expansion, ok := easySymbols[r]
	if !ok {
		return false
	}
	for _, ch := range expansion {
		e.com.Insert(e.cursor, composition.FromChar(ch))
		e.cursor++
	}
	e.enforceAutoCommit()
	return true
}

func (e *Editor) insertSyllable(s zhuyin.Syllable) {
	e.com.Insert(e.cursor, composition.FromSyllable(s))
	e.cursor++
}

func (e *Editor) enforceAutoCommit() {
	if e.opts.AutoCommitThreshold <= 0 {
		return
	}
	for e.com.Len() > e.opts.AutoCommitThreshold {
		e.commitFront(1)
	}
}

func (e *Editor) pressEnteringSpecial(key KeyEvent) error {
	if key.Shift && (key.Special == KeyLeft || key.Special == KeyRight) {
		dir := -1
		if key.Special == KeyRight {
			dir = 1
		}
		return e.enterHighlighting(dir)
	}
	switch key.Special {
	case KeyCapsLock:
		if !e.assembler.IsEmpty() {
			e.assembler.Clear()
		}
		e.english = !e.english
		return nil
	case KeyBackspace:
		if !e.assembler.IsEmpty() {
			e.assembler.RemoveLast()
			return nil
		}
		if e.cursor == 0 {
			return errAtBoundary
		}
		e.com.Remove(e.cursor - 1)
		e.cursor--
		return nil
	case KeyDelete:
		if e.cursor >= e.com.Len() {
			return errAtBoundary
		}
		e.com.Remove(e.cursor)
		return nil
	case KeyTab:
		return e.pressTab()
	case KeyLeft:
		if e.cursor == 0 {
			return errAtBoundary
		}
		e.cursor--
		return nil
	case KeyRight:
		if e.cursor >= e.com.Len() {
			return errAtBoundary
		}
		e.cursor++
		return nil
	case KeyHome:
		e.cursor = 0
		return nil
	case KeyEnd:
		e.cursor = e.com.Len()
		return nil
	case KeyEsc:
		if !e.assembler.IsEmpty() {
			e.assembler.Clear()
			return nil
		}
		if e.com.IsEmpty() {
			return errAtBoundary
		}
		if !e.opts.EscClearAllBuffer {
			return errKeyError
		}
		e.com.Clear()
		e.cursor = 0
		return nil
	case KeyEnter:
		e.commitAll()
		return nil
	case KeyDown:
		return e.enterSelecting()
	default:
		return errKeyError
	}
}

// pressTab implements nth_conversion cycling at end-of-buffer, and the
// Glue/Break insertion used to manually steer a reconversion otherwise.
func (e *Editor) pressTab() error {
	if e.cursor >= e.com.Len() {
		if paths := e.Paths(); len(paths) > 0 {
			e.convIndex = (e.convIndex + 1) % len(paths)
		}
		return nil
	}
	if e.atIntervalBoundary(e.cursor) {
		e.com.SetGap(e.cursor, composition.GapGlue)
	} else {
		e.com.SetGap(e.cursor, composition.GapBreak)
	}
	return nil
}

func (e *Editor) atIntervalBoundary(cursor int) bool {
	for _, iv := range e.currentPath().Intervals {
		if iv.Start == cursor || iv.End == cursor {
			return true
		}
	}
	return false
}

func (e *Editor) enterSelecting() error {
	if e.com.IsEmpty() || e.cursor >= e.com.Len() {
		return errNoSelection
	}
	if !e.assembler.IsEmpty() {
		return errKeyError
	}
	e.selAnchor = e.cursor
	sym, _ := e.com.Symbol(e.cursor)
	if sym.IsChar() {
		r, _ := sym.Char()
		if sel := selection.NewSpecialSymbolSelector(r); sel != nil {
			e.specialSel = sel
			e.selKind = selSpecialSymbol
			e.mode = Selecting
			return nil
		}
		return e.openSymbolSelector()
	}
	e.selector = selection.NewPhraseSelector(e.opts.LookupStrategy)
	if !e.selector.Init(e.com, e.cursor, e.dict, !e.opts.PhraseChoiceRearward) {
		return errNoSelection
	}
	e.selKind = selPhrase
	e.mode = Selecting
	return nil
}

// enterHighlighting begins manual phrase-boundary adjustment at the
// symbol Shift+Left/Right just moved over.
func (e *Editor) enterHighlighting(dir int) error {
	if e.com.IsEmpty() {
		return errNoSelection
	}
	if dir < 0 {
		if e.cursor == 0 {
			return errAtBoundary
		}
		e.highlight = composition.Interval{Start: e.cursor - 1, End: e.cursor}
	} else {
		if e.cursor >= e.com.Len() {
			return errAtBoundary
		}
		e.highlight = composition.Interval{Start: e.cursor, End: e.cursor + 1}
	}
	e.mode = Highlighting
	return nil
}

func (e *Editor) pressHighlighting(key KeyEvent) error {
	if key.Shift && key.Special == KeyLeft {
		if e.highlight.Start == 0 {
			return errAtBoundary
		}
		e.highlight.Start--
		return nil
	}
	if key.Shift && key.Special == KeyRight {
		if e.highlight.End >= e.com.Len() {
			return errAtBoundary
		}
		e.highlight.End++
		return nil
	}
	if key.Special == KeyEnter {
		start, end := e.highlight.Start, e.highlight.End
		if syls, ok := extractSyllables(e.com, start, end); ok {
			e.learnInterval(syls, e.rangeText(start, end))
		}
		e.mode = Entering
		return nil
	}
	// Any other key leaves Highlighting without further side effects.
	e.mode = Entering
	return nil
}

// selectionKeys returns the 10 keys (in order) that pick a candidate at
// its position on the current page.
func (e *Editor) selectionKeys() string {
	if e.opts.SelectionKeys != "" {
		return e.opts.SelectionKeys
	}
	return "1234567890"
}

func (e *Editor) selectionIndex(r rune) (int, bool) {
	idx := strings.IndexRune(e.selectionKeys(), r)
	if idx < 0 {
		return 0, false
	}
	return idx, true
}

func (e *Editor) perPage() int {
	if e.opts.CandidatesPerPage <= 0 {
		return 10
	}
	return e.opts.CandidatesPerPage
}

func totalPages(total, perPage int) int {
	if perPage <= 0 || total == 0 {
		return 0
	}
	return (total + perPage - 1) / perPage
}

// advancePage moves to the next page, wrapping to page 0; if
// wrapByWidening, wrapping additionally widens the phrase selector's
// range (the "wrapping by widening range" described for Space paging).
func (e *Editor) advancePage(total int, wrapByWidening bool) {
	perPage := e.perPage()
	pages := totalPages(total, perPage)
	if pages <= 1 {
		if wrapByWidening && e.selector != nil {
			e.selector.Next(e.com, e.dict)
		}
		e.page = 0
		return
	}
	e.page++
	if e.page >= pages {
		if wrapByWidening && e.selector != nil {
			e.selector.Next(e.com, e.dict)
		}
		e.page = 0
	}
}

func (e *Editor) retreatPage(total int) {
	if e.page <= 0 {
		if pages := totalPages(total, e.perPage()); pages > 0 {
			e.page = pages - 1
		}
		return
	}
	e.page--
}

func (e *Editor) cancelSelecting() {
	e.mode = Entering
	e.selector = nil
	e.symSel = nil
	e.specialSel = nil
	e.selKind = selNone
	e.page = 0
}

func (e *Editor) pressSelecting(key KeyEvent) error {
	switch e.selKind {
	case selSymbol:
		return e.pressSelectingSymbol(key)
	case selSpecialSymbol:
		return e.pressSelectingSpecialSymbol(key)
	default:
		return e.pressSelectingPhrase(key)
	}
}

func (e *Editor) pressSelectingPhrase(key KeyEvent) error {
	if key.Special == KeyCapsLock {
		e.english = !e.english
		e.cancelSelecting()
		return nil
	}
	if key.Special == KeyEsc || key.Special == KeyBackspace || key.Special == KeyUp {
		e.cancelSelecting()
		return nil
	}
	candidates := e.selector.Candidates(e.com, e.assembler, e.dict, e.opts.SortCandidatesByFrequency)
	switch {
	case key.Special == KeyEnter:
		if len(candidates) == 0 {
			return errNoSelection
		}
		return e.confirmPhrase(candidates[0].Text)
	case key.Special == KeyDown:
		e.selector.Next(e.com, e.dict)
		e.page = 0
		return nil
	case key.Rune == ' ' && e.opts.SpaceIsSelectKey:
		e.advancePage(len(candidates), true)
		return nil
	case key.Special == KeyRight || key.Special == KeyPageDown:
		e.advancePage(len(candidates), false)
		return nil
	case key.Special == KeyLeft || key.Special == KeyPageUp:
		e.retreatPage(len(candidates))
		return nil
	case key.Rune == 'j' || key.Rune == 'J':
		e.moveAnchor(-1)
		return nil
	case key.Rune == 'k' || key.Rune == 'K':
		e.moveAnchor(1)
		return nil
	default:
		if idx, ok := e.selectionIndex(key.Rune); ok {
			pos := e.page*e.perPage() + idx
			if pos >= len(candidates) {
				return errKeyError
			}
			return e.confirmPhrase(candidates[pos].Text)
		}
		return errKeyError
	}
}

func (e *Editor) moveAnchor(dir int) {
	anchor := e.selAnchor + dir
	if anchor < 0 || anchor >= e.com.Len() {
		return
	}
	e.selAnchor = anchor
	e.selector.Init(e.com, anchor, e.dict, !e.opts.PhraseChoiceRearward)
	e.page = 0
}

func (e *Editor) confirmPhrase(text string) error {
	iv := e.selector.Interval(text)
	e.com.PushSelection(iv)
	if e.opts.AutoShiftCursor {
		e.cursor = iv.End
	}
	e.cancelSelecting()
	return nil
}

func (e *Editor) pressSelectingSymbol(key KeyEvent) error {
	if key.Special == KeyEsc || key.Special == KeyBackspace {
		e.cancelSelecting()
		return nil
	}
	idx, ok := e.selectionIndex(key.Rune)
	if !ok {
		return errKeyError
	}
	menu := e.symSel.Menu()
	if idx >= len(menu) {
		return errKeyError
	}
	r, chosen := e.symSel.Choose(idx)
	if !chosen {
		return nil // descended into a category; stay in Selecting
	}
	e.com.Insert(e.cursor, composition.FromChar(r))
	e.cursor++
	e.enforceAutoCommit()
	e.cancelSelecting()
	return nil
}

func (e *Editor) pressSelectingSpecialSymbol(key KeyEvent) error {
	if key.Special == KeyEsc || key.Special == KeyBackspace {
		e.cancelSelecting()
		return nil
	}
	idx, ok := e.selectionIndex(key.Rune)
	if !ok {
		return errKeyError
	}
	r, chosen := e.specialSel.Choose(idx)
	if !chosen {
		return errKeyError
	}
	e.com.Replace(e.selAnchor, composition.FromChar(r))
	e.cancelSelecting()
	return nil
}

func (e *Editor) commitFront(n int) {
	var sb strings.Builder
	for i := 0; i < n; i++ {
		sym, ok := e.com.Symbol(0)
		if !ok {
			break
		}
		writeSymbol(&sb, sym)
		e.com.RemoveFront(1)
		if e.cursor > 0 {
			e.cursor--
		}
	}
	e.committed.WriteString(sb.String())
}

// commitAll flushes the whole buffer using the segmentation nth_conversion
// currently selects. Unless auto-learn is disabled, committed intervals
// are first glued into auto-learn runs (single-syllable, non-break-word
// commits concatenated into one new phrase) before being learned.
func (e *Editor) commitAll() {
	path := e.currentPath()
	commits := make([]estimate.Committed, 0, len(path.Intervals))
	for _, iv := range path.Intervals {
		e.committed.WriteString(iv.Text)
		syls, _ := extractSyllables(e.com, iv.Start, iv.End)
		commits = append(commits, estimate.Committed{Text: iv.Text, Syllables: syls})
	}
	if e.est != nil && !e.opts.DisableAutoLearnPhrase {
		for _, run := range estimate.AutoLearnRuns(commits) {
			if len(run.Syllables) == 0 {
				continue
			}
			e.learnInterval(run.Syllables, run.Text)
		}
	}
	e.com.Clear()
	e.cursor = 0
	e.convIndex = 0
}

func extractSyllables(com *composition.Composition, start, end int) ([]zhuyin.Syllable, bool) {
	syls := make([]zhuyin.Syllable, 0, end-start)
	for i := start; i < end; i++ {
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

func (e *Editor) learnInterval(syls []zhuyin.Syllable, text string) {
	if e.est == nil {
		return
	}
	candidates := e.dict.Lookup(syls, e.opts.LookupStrategy)
	var origFreq, maxFreq uint32
	for _, c := range candidates {
		if c.Text == text {
			origFreq = c.Freq
		}
		if c.Freq > maxFreq {
			maxFreq = c.Freq
		}
	}
	if maxFreq == 0 {
		maxFreq = origFreq
	}
	e.LearnPhrase(syls, text, origFreq, maxFreq)
}

// LearnPhrase reinforces phrase's frequency for syllables in the user
// dictionary, using the configured estimator.
func (e *Editor) LearnPhrase(syllables []zhuyin.Syllable, text string, origFreq, maxFreq uint32) error {
	if e.est == nil {
		return errors.New("editor: no estimator configured")
	}
	existing := e.dict.Lookup(syllables, dictionary.Standard)
	var current dictionary.Phrase
	found := false
	for _, p := range existing {
		if p.Text == text {
			current, found = p, true
			break
		}
	}
	if !found {
		current = dictionary.Phrase{Text: text, Freq: origFreq}
	}
	e.est.Tick()
	next := e.est.Estimate(current, origFreq, maxFreq)
	current.Freq = next
	current.LastUsed = e.est.Now()
	return e.dict.UpdatePhrase(syllables, current)
}
