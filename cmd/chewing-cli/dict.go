package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/chewing/gochewing/internal/dictionary"
)

func newDictCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "dict",
		Short: "Inspect or populate a user dictionary",
	}
	cmd.AddCommand(newDictImportCmd())
	return cmd
}

func newDictImportCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "import <file>",
		Short: "Load a phrase file (phrase freq zhuyin1,zhuyin2,...) and print its entry count",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			data, err := os.ReadFile(args[0])
			if err != nil {
				return err
			}
			entries := dictionary.ParseSeedText(string(data))
			count := 0
			for _, phrases := range entries {
				count += len(phrases)
			}
			fmt.Printf("imported %d phrase entries across %d syllable keys\n", count, len(entries))
			return nil
		},
	}
}
