// Command chewing-cli is a line-oriented frontend for manual testing and
// scripting of the Bopomofo engine.
package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

func main() {
	if err := newRootCmd().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	root := &cobra.Command{
		Use:   "chewing-cli",
		Short: "Bopomofo input method engine, driven from the command line",
	}
	root.AddCommand(newTypeCmd())
	root.AddCommand(newDictCmd())
	return root
}
