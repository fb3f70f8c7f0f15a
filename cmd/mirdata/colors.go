package main

import (
	"fmt"
	"os"
	"strings"

	"github.com/fatih/color"
)

// applyColorMode configures global color output from the --color flag.
func applyColorMode(mode string) error {
	switch strings.TrimSpace(strings.ToLower(mode)) {
	case "", "auto":
		color.NoColor = !isTerminal(os.Stdout)
	case "on":
		color.NoColor = false
	case "off":
		color.NoColor = true
	default:
		return fmt.Errorf("invalid --color value %q (expected auto|on|off)", mode)
	}
	return nil
}
