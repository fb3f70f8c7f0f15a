// Package main implements the mirdata CLI.
package main

import (
	"os"

	"github.com/spf13/cobra"
	"golang.org/x/term"

	"mirdata/internal/version"
)

var rootCmd = &cobra.Command{
	Use:   "mirdata",
	Short: "Machine-IR training dataset importer",
	Long:  `mirdata converts directories of machine-IR dumps paired with throughput measurements into serialized training datasets`,
}

func main() {
	rootCmd.Version = version.Version

	rootCmd.AddCommand(importCmd)
	rootCmd.AddCommand(statsCmd)
	rootCmd.AddCommand(versionCmd)

	rootCmd.PersistentFlags().String("color", "auto", "colorize output (auto|on|off)")
	rootCmd.PersistentFlags().Bool("quiet", false, "suppress non-essential output")
	rootCmd.PersistentFlags().Bool("timings", false, "show timing information")
	rootCmd.PersistentFlags().String("trace", "", "trace output path (- for stderr)")
	rootCmd.PersistentFlags().String("trace-level", "off", "trace verbosity (off|phase|detail|debug)")
	rootCmd.PersistentFlags().String("trace-format", "text", "trace format (text|ndjson)")

	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

// isTerminal checks whether the file is attached to a terminal.
func isTerminal(f *os.File) bool {
	return term.IsTerminal(int(f.Fd()))
}
