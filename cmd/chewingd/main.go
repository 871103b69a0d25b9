package main

import (
	"fmt"
	"log"
	"os"
	"os/signal"

	"github.com/godbus/dbus/v5"
	"golang.org/x/sys/unix"

	"github.com/chewing/gochewing/internal/abi"
	"github.com/chewing/gochewing/internal/dictionary"
	"github.com/chewing/gochewing/internal/editor"
	"github.com/chewing/gochewing/internal/layout"
)

const (
	serviceName = "org.chewing.Engine"
	objectPath  = "/Engine"
)

// InputEngine is the D-Bus object that receives key events from an
// ibus/fcitx-style frontend.
type InputEngine struct {
	ctx    *abi.Context
	logger *log.Logger
}

// NewInputEngine creates a new InputEngine over a layered dictionary
// seeded from the embedded seed dictionary.
func NewInputEngine(logger *log.Logger) *InputEngine {
	seed := dictionary.LoadSeed()
	sys := dictionary.NewReadOnlyMapDict("seed", seed)
	user := dictionary.NewMapDict("user")
	dict := dictionary.NewLayered(user, sys)
	return &InputEngine{
		ctx:    abi.New(dict, abi.DefaultOptions(), logger),
		logger: logger,
	}
}

// ProcessKey handles key events from the frontend.
// Input: keysym (X11 keycode), modifiers (Shift/Ctrl/Alt state)
// Output: handled (was key consumed), commitText (text to commit), preeditText (composition)
func (e *InputEngine) ProcessKey(keysym uint32, modifiers uint32) (bool, string, string, *dbus.Error) {
	key := keyEventFromKeysym(keysym)
	res := e.ctx.PressKey(key)

	if e.logger != nil {
		e.logger.Printf("Type: 0x%x | Preedit: %-15q | Commit: %-15q | Handled: %v",
			keysym, e.ctx.BufferString(), e.ctx.CommitString(), res.Handled)
	}

	return res.Handled, e.ctx.CommitString(), e.ctx.BufferString(), nil
}

func keyEventFromKeysym(keysym uint32) editor.KeyEvent {
	switch keysym {
	case layout.KeysymBackspace:
		return editor.KeyEvent{Special: editor.KeyBackspace}
	case layout.KeysymDelete:
		return editor.KeyEvent{Special: editor.KeyDelete}
	case layout.KeysymReturn:
		return editor.KeyEvent{Special: editor.KeyEnter}
	case layout.KeysymEscape:
		return editor.KeyEvent{Special: editor.KeyEsc}
	case layout.KeysymTab:
		return editor.KeyEvent{Special: editor.KeyTab}
	case layout.KeysymLeft:
		return editor.KeyEvent{Special: editor.KeyLeft}
	case layout.KeysymRight:
		return editor.KeyEvent{Special: editor.KeyRight}
	case layout.KeysymUp:
		return editor.KeyEvent{Special: editor.KeyUp}
	case layout.KeysymDown:
		return editor.KeyEvent{Special: editor.KeyDown}
	case layout.KeysymHome:
		return editor.KeyEvent{Special: editor.KeyHome}
	case layout.KeysymEnd:
		return editor.KeyEvent{Special: editor.KeyEnd}
	default:
		if r, ok := layout.RuneForKeysym(keysym); ok {
			return editor.KeyEvent{Rune: r}
		}
		return editor.KeyEvent{}
	}
}

// Reset clears the current composition state.
func (e *InputEngine) Reset() *dbus.Error {
	e.ctx = NewInputEngine(e.logger).ctx
	fmt.Println(">>> [chewingd] Engine reset")
	return nil
}

// SetOption sets a named option to value, per the ABI's get/set-by-name
// option surface.
func (e *InputEngine) SetOption(name, value string) *dbus.Error {
	if err := e.ctx.SetOption(name, value); err != nil {
		return dbus.MakeFailedError(err)
	}
	return nil
}

// GetOption returns a named option's current value.
func (e *InputEngine) GetOption(name string) (string, *dbus.Error) {
	value, err := e.ctx.GetOption(name)
	if err != nil {
		return "", dbus.MakeFailedError(err)
	}
	return value, nil
}

// GetPreedit returns the current preedit string.
func (e *InputEngine) GetPreedit() (string, *dbus.Error) {
	return e.ctx.BufferString(), nil
}

// GetCandidates returns nil outside Selecting mode. In Selecting mode it
// returns the interval texts of the best conversion path (Paths()[0]);
// the selector's candidate list is not returned.
func (e *InputEngine) GetCandidates() ([]string, *dbus.Error) {
	ed := e.ctx.Editor()
	if ed.Mode() != editor.Selecting {
		return nil, nil
	}
	var texts []string
	for _, p := range ed.Paths() {
		for _, iv := range p.Intervals {
			texts = append(texts, iv.Text)
		}
		break
	}
	return texts, nil
}

func main() {
	conn, err := dbus.SessionBus()
	if err != nil {
		fmt.Fprintln(os.Stderr, "Failed to connect to session bus:", err)
		os.Exit(1)
	}
	defer conn.Close()

	reply, err := conn.RequestName(serviceName, dbus.NameFlagDoNotQueue)
	if err != nil {
		fmt.Fprintln(os.Stderr, "Failed to request name:", err)
		os.Exit(1)
	}
	if reply != dbus.RequestNameReplyPrimaryOwner {
		fmt.Fprintln(os.Stderr, "Name already taken - another instance may be running")
		os.Exit(1)
	}

	logFile, err := os.OpenFile("chewingd.log", os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0644)
	var logger *log.Logger
	if err == nil {
		logger = log.New(logFile, "", log.LstdFlags)
		fmt.Println(">>> [chewingd] Logging to chewingd.log")
	} else {
		fmt.Fprintf(os.Stderr, ">>> [chewingd] Failed to open log file: %v\n", err)
	}
	defer logFile.Close()

	inputEngine := NewInputEngine(logger)

	if err := conn.Export(inputEngine, dbus.ObjectPath(objectPath), serviceName); err != nil {
		fmt.Fprintln(os.Stderr, "Failed to export object:", err)
		os.Exit(1)
	}

	fmt.Println("================================================")
	fmt.Println("chewingd is running")
	fmt.Println("================================================")
	fmt.Printf("  Service:     %s\n", serviceName)
	fmt.Printf("  Object Path: %s\n", objectPath)
	fmt.Printf("  Keyboard:    Default\n")
	fmt.Println("------------------------------------------------")
	fmt.Println("Waiting for key events...")
	fmt.Println()

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, unix.SIGINT, unix.SIGTERM)

	<-sigChan
	fmt.Println("\n>>> [chewingd] Shutting down...")
}
