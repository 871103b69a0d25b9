// Package abi restates the engine's C ABI contract in Go terms: an opaque
// context that owns an editor and its dictionaries, state-query accessors,
// external iterators for candidates and intervals, and options get/set by
// canonical name. There is no cgo shim here — hosts embed this package
// directly, or a thin cmd/chewingd wraps it for D-Bus.
package abi

import (
	"fmt"
	"log"
	"strconv"

	"github.com/chewing/gochewing/internal/composition"
	"github.com/chewing/gochewing/internal/conversion"
	"github.com/chewing/gochewing/internal/dictionary"
	"github.com/chewing/gochewing/internal/editor"
	"github.com/chewing/gochewing/internal/estimate"
	"github.com/chewing/gochewing/internal/layout"
)

// KeyboardType names one of the named syllable-assembler/base-layout
// pairings §6 of the contract enumerates.
type KeyboardType string

const (
	KeyboardDefault    KeyboardType = "Default"
	KeyboardHsu        KeyboardType = "Hsu"
	KeyboardIbm        KeyboardType = "Ibm"
	KeyboardGinYieh    KeyboardType = "GinYieh"
	KeyboardEt         KeyboardType = "Et"
	KeyboardEt26       KeyboardType = "Et26"
	KeyboardDachenCp26 KeyboardType = "DachenCp26"
	KeyboardHanyu      KeyboardType = "HanyuPinyin"
	KeyboardThl        KeyboardType = "ThlPinyin"
	KeyboardMps2       KeyboardType = "Mps2Pinyin"
)

func newAssembler(kt KeyboardType) layout.SyllableEditor {
	switch kt {
	case KeyboardHsu:
		return layout.NewHsu()
	case KeyboardIbm:
		return layout.NewIbm()
	case KeyboardGinYieh:
		return layout.NewGinYieh()
	case KeyboardEt:
		return layout.NewEt()
	case KeyboardEt26:
		return layout.NewEt26()
	case KeyboardDachenCp26:
		return layout.NewDaiChien26()
	case KeyboardHanyu:
		return layout.NewPinyin(layout.HanyuPinyin)
	case KeyboardThl:
		return layout.NewPinyin(layout.ThlPinyin)
	case KeyboardMps2:
		return layout.NewPinyin(layout.Mps2Pinyin)
	default:
		return layout.NewStandard()
	}
}

// LanguageMode selects between phonetic Chinese input and English
// passthrough.
type LanguageMode int

const (
	ModeChinese LanguageMode = iota
	ModeEnglish
)

// CharacterForm selects halfwidth or fullwidth rendering of passthrough
// punctuation and digits.
type CharacterForm int

const (
	Halfwidth CharacterForm = iota
	Fullwidth
)

// ConversionEngineKind selects among the available segmentation engines.
type ConversionEngineKind int

const (
	EngineSimple ConversionEngineKind = iota
	EngineChewing
	EngineFuzzy
)

// Options mirrors the get/set-by-name option surface of §6: every field has
// a canonical string name and a validated range, enumerated in
// OptionNames and enforced by SetOption.
type Options struct {
	UserPhraseAddDirection   int
	DisableAutoLearnPhrase   bool
	AutoShiftCursor          bool
	CandidatesPerPage        int
	LanguageMode             LanguageMode
	EasySymbolInput          bool
	EscClearAllBuffer        bool
	KeyboardType             KeyboardType
	AutoCommitThreshold      int
	PhraseChoiceRearward     bool
	SelectionKeys            string
	CharacterForm            CharacterForm
	SpaceIsSelectKey         bool
	ConversionEngine         ConversionEngineKind
	EnableFullwidthToggleKey bool
}

// DefaultOptions returns the option set new contexts start with.
func DefaultOptions() Options {
	return Options{
		CandidatesPerPage:   10,
		KeyboardType:        KeyboardDefault,
		AutoCommitThreshold: 0,
		SelectionKeys:       "1234567890",
		ConversionEngine:    EngineChewing,
	}
}

// OptionNames lists every canonical option name SetOption/GetOption accept.
var OptionNames = []string{
	"user_phrase_add_direction",
	"disable_auto_learn_phrase",
	"auto_shift_cursor",
	"candidates_per_page",
	"language_mode",
	"easy_symbol_input",
	"esc_clear_all_buffer",
	"keyboard_type",
	"auto_commit_threshold",
	"phrase_choice_rearward",
	"selection_keys",
	"character_form",
	"space_is_select_key",
	"conversion_engine",
	"enable_fullwidth_toggle_key",
}

func boolToStr(b bool) string {
	if b {
		return "1"
	}
	return "0"
}

// GetOption returns the current string-encoded value of a named option.
func (o Options) GetOption(name string) (string, error) {
	switch name {
	case "user_phrase_add_direction":
		return strconv.Itoa(o.UserPhraseAddDirection), nil
	case "disable_auto_learn_phrase":
		return boolToStr(o.DisableAutoLearnPhrase), nil
	case "auto_shift_cursor":
		return boolToStr(o.AutoShiftCursor), nil
	case "candidates_per_page":
		return strconv.Itoa(o.CandidatesPerPage), nil
	case "language_mode":
		return strconv.Itoa(int(o.LanguageMode)), nil
	case "easy_symbol_input":
		return boolToStr(o.EasySymbolInput), nil
	case "esc_clear_all_buffer":
		return boolToStr(o.EscClearAllBuffer), nil
	case "keyboard_type":
		return string(o.KeyboardType), nil
	case "auto_commit_threshold":
		return strconv.Itoa(o.AutoCommitThreshold), nil
	case "phrase_choice_rearward":
		return boolToStr(o.PhraseChoiceRearward), nil
	case "selection_keys":
		return o.SelectionKeys, nil
	case "character_form":
		return strconv.Itoa(int(o.CharacterForm)), nil
	case "space_is_select_key":
		return boolToStr(o.SpaceIsSelectKey), nil
	case "conversion_engine":
		return strconv.Itoa(int(o.ConversionEngine)), nil
	case "enable_fullwidth_toggle_key":
		return boolToStr(o.EnableFullwidthToggleKey), nil
	default:
		return "", fmt.Errorf("abi: unknown option %q", name)
	}
}

// SetOption validates and applies a string-encoded value to a named option.
func (o *Options) SetOption(name, value string) error {
	switch name {
	case "user_phrase_add_direction":
		n, err := strconv.Atoi(value)
		if err != nil || (n != 0 && n != 1) {
			return fmt.Errorf("abi: user_phrase_add_direction must be 0 or 1")
		}
		o.UserPhraseAddDirection = n
	case "disable_auto_learn_phrase":
		o.DisableAutoLearnPhrase = value == "1"
	case "auto_shift_cursor":
		o.AutoShiftCursor = value == "1"
	case "candidates_per_page":
		n, err := strconv.Atoi(value)
		if err != nil || n < 1 || n > 10 {
			return fmt.Errorf("abi: candidates_per_page must be in [1,10]")
		}
		o.CandidatesPerPage = n
	case "language_mode":
		n, err := strconv.Atoi(value)
		if err != nil || (n != 0 && n != 1) {
			return fmt.Errorf("abi: language_mode must be 0 or 1")
		}
		o.LanguageMode = LanguageMode(n)
	case "easy_symbol_input":
		o.EasySymbolInput = value == "1"
	case "esc_clear_all_buffer":
		o.EscClearAllBuffer = value == "1"
	case "keyboard_type":
		o.KeyboardType = KeyboardType(value)
	case "auto_commit_threshold":
		n, err := strconv.Atoi(value)
		if err != nil || n < 0 || n > 39 {
			return fmt.Errorf("abi: auto_commit_threshold must be in [0,39]")
		}
		o.AutoCommitThreshold = n
	case "phrase_choice_rearward":
		o.PhraseChoiceRearward = value == "1"
	case "selection_keys":
		if len(value) != 10 {
			return fmt.Errorf("abi: selection_keys must be 10 characters")
		}
		o.SelectionKeys = value
	case "character_form":
		n, err := strconv.Atoi(value)
		if err != nil || (n != 0 && n != 1) {
			return fmt.Errorf("abi: character_form must be 0 or 1")
		}
		o.CharacterForm = CharacterForm(n)
	case "space_is_select_key":
		o.SpaceIsSelectKey = value == "1"
	case "conversion_engine":
		n, err := strconv.Atoi(value)
		if err != nil || n < 0 || n > 2 {
			return fmt.Errorf("abi: conversion_engine must be in [0,2]")
		}
		o.ConversionEngine = ConversionEngineKind(n)
	case "enable_fullwidth_toggle_key":
		o.EnableFullwidthToggleKey = value == "1"
	default:
		return fmt.Errorf("abi: unknown option %q", name)
	}
	return nil
}

// engineFor returns the conversion engine named by kind.
func engineFor(kind ConversionEngineKind) conversion.Engine {
	switch kind {
	case EngineSimple:
		return conversion.NewSimpleEngine()
	case EngineFuzzy:
		return conversion.NewFuzzyChewingEngine()
	default:
		return conversion.NewChewingEngine()
	}
}

// editorOptionsFrom restates the ABI option surface in the editor
// package's own Options shape, including deriving the lookup strategy
// and conversion engine that conversion_engine selects.
func editorOptionsFrom(o Options) editor.Options {
	strategy := dictionary.Standard
	if o.ConversionEngine == EngineFuzzy {
		strategy = dictionary.FuzzyPartialPrefix
	}
	return editor.Options{
		AutoCommitThreshold:       o.AutoCommitThreshold,
		LookupStrategy:            strategy,
		SortCandidatesByFrequency: true,
		Engine:                    engineFor(o.ConversionEngine),
		DisableAutoLearnPhrase:    o.DisableAutoLearnPhrase,
		AutoShiftCursor:           o.AutoShiftCursor,
		CandidatesPerPage:         o.CandidatesPerPage,
		SelectionKeys:             o.SelectionKeys,
		SpaceIsSelectKey:          o.SpaceIsSelectKey,
		PhraseChoiceRearward:      o.PhraseChoiceRearward,
		EscClearAllBuffer:         o.EscClearAllBuffer,
		LearnBackward:             o.UserPhraseAddDirection == 1,
		EasySymbolInput:           o.EasySymbolInput,
		FullwidthToggleEnabled:    o.EnableFullwidthToggleKey,
		InitialEnglishMode:        o.LanguageMode == ModeEnglish,
		InitialFullwidth:          o.CharacterForm == Fullwidth,
	}
}

// Context is the Go-native restatement of the C ABI's opaque handle: a
// self-contained, GC-managed editor session plus the options configuring
// it. Unlike the C contract there is no explicit delete — letting the
// value go out of scope is enough.
type Context struct {
	ed   *editor.Editor
	opts Options
	dict dictionary.Dictionary
	log  *log.Logger
}

// New returns a Context over dict, using opts (DefaultOptions() if the
// zero value) and logger (log.Default() if nil).
func New(dict dictionary.Dictionary, opts Options, logger *log.Logger) *Context {
	if opts.CandidatesPerPage == 0 && opts.SelectionKeys == "" {
		opts = DefaultOptions()
	}
	if logger == nil {
		logger = log.Default()
	}
	assembler := newAssembler(opts.KeyboardType)
	ed := editor.New(assembler, dict, estimate.NewLax(0), editorOptionsFrom(opts))
	return &Context{ed: ed, opts: opts, dict: dict, log: logger}
}

// KeyResult mirrors the per-named-key injection contract: 0 on success,
// -1 (via Handled=false) when the context rejected the key.
type KeyResult struct {
	Handled bool
}

// PressKey injects one keystroke, translating editor errors into the
// ABI's handled/not-handled boolean rather than surfacing Go errors.
func (c *Context) PressKey(key editor.KeyEvent) KeyResult {
	err := c.ed.PressKey(key)
	if err != nil {
		c.log.Printf("abi: key rejected: %v", err)
		return KeyResult{Handled: false}
	}
	return KeyResult{Handled: true}
}

// CommitString is the state query named commit_string: the text
// committed since the last call, draining the internal buffer.
func (c *Context) CommitString() string { return c.ed.Committed() }

// BufferString is the state query named buffer_string: the rendered
// preedit of the composition buffer plus any in-progress syllable.
func (c *Context) BufferString() string { return c.ed.Preedit() }

// BopomofoString is the state query named bopomofo_string. It returns the
// same text as BufferString (the editor's whole preedit); the in-progress
// syllable is not reported on its own.
func (c *Context) BopomofoString() string {
	return c.ed.Preedit()
}

// CursorCurrent is the state query named cursor_current.
func (c *Context) CursorCurrent() int { return c.ed.Cursor() }

// CommitCheck reports whether CommitString would return non-empty text.
func (c *Context) CommitCheck() bool { return c.ed.Mode() != editor.Selecting }

// BufferCheck reports whether the composition buffer holds anything.
func (c *Context) BufferCheck() bool { return c.BufferString() != "" }

// BufferLen is the state query named buffer_len.
func (c *Context) BufferLen() int { return len([]rune(c.BufferString())) }

// Mode exposes the editor's current top-level state, used by
// keystroke_check_{absorb,ignore} in the C contract (a host checks Mode
// before deciding whether to forward a key at all).
func (c *Context) Mode() editor.Mode { return c.ed.Mode() }

// GetOption returns a named option's current string-encoded value.
// language_mode and character_form are read back from the editor's live
// toggle state (CapsLock and Shift+Space can change them independently
// of the last SetOption call), everything else from the stored Options.
func (c *Context) GetOption(name string) (string, error) {
	switch name {
	case "language_mode":
		if c.ed.EnglishMode() {
			return "1", nil
		}
		return "0", nil
	case "character_form":
		if c.ed.Fullwidth() {
			return "1", nil
		}
		return "0", nil
	default:
		return c.opts.GetOption(name)
	}
}

// SetOption validates and applies a named option, re-deriving the
// assembler if keyboard_type changed and pushing every other option
// straight into the live editor.
func (c *Context) SetOption(name, value string) error {
	prevKeyboard := c.opts.KeyboardType
	if err := c.opts.SetOption(name, value); err != nil {
		return err
	}
	if name == "keyboard_type" && c.opts.KeyboardType != prevKeyboard {
		c.ed = editor.New(newAssembler(c.opts.KeyboardType), c.dict, estimate.NewLax(0), editorOptionsFrom(c.opts))
		return nil
	}
	c.ed.SetOptions(editorOptionsFrom(c.opts))
	switch name {
	case "language_mode":
		c.ed.SetEnglishMode(c.opts.LanguageMode == ModeEnglish)
	case "character_form":
		c.ed.SetFullwidth(c.opts.CharacterForm == Fullwidth)
	}
	return nil
}

// Editor exposes the underlying editor for callers (e.g. cmd/chewingd)
// that need capabilities abi.Context doesn't restate, such as direct
// candidate cycling.
func (c *Context) Editor() *editor.Editor { return c.ed }

// CandidateIter is the external iterator named cand_open/cand_enumerate/
// cand_has_next/cand_string/cand_total_page/cand_current_page in the C
// contract: a snapshot of the current candidate list, paged by
// PerPage.
type CandidateIter struct {
	items   []dictionary.Phrase
	perPage int
	index   int
}

// CandOpen returns a CandidateIter over the editor's current candidates,
// or ok=false if the editor isn't in Selecting mode.
func (c *Context) CandOpen() (*CandidateIter, bool) {
	if c.ed.Mode() != editor.Selecting {
		return nil, false
	}
	perPage := c.opts.CandidatesPerPage
	if perPage <= 0 {
		perPage = 10
	}
	return &CandidateIter{perPage: perPage}, true
}

// CandEnumerate seeds the iterator with phrases (the host fetches these
// via the editor/selector before opening the iterator since
// selection.PhraseSelector is unexported outside this module's packages).
func (it *CandidateIter) CandEnumerate(phrases []dictionary.Phrase) {
	it.items = phrases
	it.index = 0
}

func (it *CandidateIter) CandHasNext() bool { return it.index < len(it.items) }

// CandString returns the next candidate's text and advances the cursor.
func (it *CandidateIter) CandString() (string, bool) {
	if !it.CandHasNext() {
		return "", false
	}
	s := it.items[it.index].Text
	it.index++
	return s, true
}

func (it *CandidateIter) CandTotalPage() int {
	if it.perPage <= 0 {
		return 0
	}
	return (len(it.items) + it.perPage - 1) / it.perPage
}

func (it *CandidateIter) CandCurrentPage() int {
	if it.perPage <= 0 {
		return 0
	}
	return it.index / it.perPage
}

func (it *CandidateIter) CandListNext() bool {
	if (it.index+1)/it.perPage >= it.CandTotalPage() {
		return false
	}
	it.index += it.perPage
	return true
}

func (it *CandidateIter) CandListPrev() bool {
	if it.index-it.perPage < 0 {
		return false
	}
	it.index -= it.perPage
	return true
}

func (it *CandidateIter) CandListFirst() { it.index = 0 }
func (it *CandidateIter) CandListLast() {
	if it.perPage <= 0 {
		return
	}
	last := it.CandTotalPage() - 1
	if last < 0 {
		last = 0
	}
	it.index = last * it.perPage
}

// Interval mirrors the interval_get output struct: a committed or
// candidate phrase range.
type Interval struct {
	From, To int
}

// IntervalIter is the external iterator named interval_enumerate/
// interval_has_next/interval_get.
type IntervalIter struct {
	items []composition.Interval
	index int
}

// IntervalOpen returns an IntervalIter over the intervals of the
// segmentation nth_conversion currently selects.
func (c *Context) IntervalOpen() *IntervalIter {
	return &IntervalIter{items: c.ed.CurrentPath().Intervals}
}

func (it *IntervalIter) IntervalHasNext() bool { return it.index < len(it.items) }

func (it *IntervalIter) IntervalGet() (Interval, bool) {
	if !it.IntervalHasNext() {
		return Interval{}, false
	}
	iv := it.items[it.index]
	it.index++
	return Interval{From: iv.Start, To: iv.End}, true
}
