package main

import (
	"bufio"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/chewing/gochewing/internal/abi"
	"github.com/chewing/gochewing/internal/dictionary"
	"github.com/chewing/gochewing/internal/editor"
)

func newTypeCmd() *cobra.Command {
	var keyboard string
	cmd := &cobra.Command{
		Use:   "type",
		Short: "Start an interactive typing session against stdin/stdout",
		RunE: func(cmd *cobra.Command, args []string) error {
			return runType(keyboard)
		},
	}
	cmd.Flags().StringVar(&keyboard, "keyboard", "Default", "keyboard type (Default, Hsu, Et26, HanyuPinyin, ...)")
	return cmd
}

// runType drives a line-oriented REPL: each rune of an input line is
// offered to the engine as a keystroke, then Enter is pressed and any
// committed text is printed. A "\b" in the line is passed on as an
// ordinary rune, not as Backspace. It is a hand-written bufio.Scanner REPL
// rather than a full TUI.
func runType(keyboard string) error {
	seed := dictionary.LoadSeed()
	sys := dictionary.NewReadOnlyMapDict("seed", seed)
	user := dictionary.NewMapDict("user")
	dict := dictionary.NewLayered(user, sys)

	opts := abi.DefaultOptions()
	opts.KeyboardType = abi.KeyboardType(keyboard)
	ctx := abi.New(dict, opts, nil)

	fmt.Println("chewing-cli type: enter Bopomofo keystrokes, Enter to commit a line, Ctrl-D to quit")
	sc := bufio.NewScanner(os.Stdin)
	for sc.Scan() {
		line := sc.Text()
		for _, r := range line {
			ctx.PressKey(editor.KeyEvent{Rune: r})
		}
		ctx.PressKey(editor.KeyEvent{Special: editor.KeyEnter})
		if commit := ctx.CommitString(); commit != "" {
			fmt.Println(commit)
		}
	}
	return sc.Err()
}
