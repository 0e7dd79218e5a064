// Package cliout provides styled terminal output for CLI commands,
// with consistent ANSI colors and Unicode symbols. Styling is disabled
// automatically when stdout is not a terminal or NO_COLOR is set.
package cliout

import (
	"fmt"
	"os"
	"strings"
	"sync"

	"golang.org/x/term"
)

// ANSI color codes for consistent styling
const (
	Reset = "\033[0m"
	Bold  = "\033[1m"
	Dim   = "\033[2m"

	Red    = "\033[31m"
	Green  = "\033[32m"
	Yellow = "\033[33m"
	Cyan   = "\033[36m"
	Gray   = "\033[90m"
)

// Unicode symbols for CLI output
const (
	SymbolCheck   = "✓"
	SymbolCross   = "✗"
	SymbolWarning = "⚠"
	SymbolInfo    = "ℹ"
	SymbolDot     = "•"
)

var (
	colorOnce    sync.Once
	colorEnabled bool
)

// ColorEnabled reports whether styled output is active. Colors are
// disabled when NO_COLOR is set or stdout is not a terminal.
func ColorEnabled() bool {
	colorOnce.Do(func() {
		if os.Getenv("NO_COLOR") != "" {
			return
		}
		colorEnabled = term.IsTerminal(int(os.Stdout.Fd()))
	})
	return colorEnabled
}

func colorize(color, s string) string {
	if !ColorEnabled() {
		return s
	}
	return color + s + Reset
}

// Header prints a bold section header followed by a dim underline.
func Header(title string) {
	fmt.Println(colorize(Bold, title))
	fmt.Println(colorize(Dim, strings.Repeat("─", len([]rune(title)))))
}

// Label prints an aligned "name: value" line.
func Label(name, value string) {
	fmt.Printf("  %s %s\n", colorize(Gray, name+":"), value)
}

// Success prints a green check line.
func Success(format string, args ...any) {
	fmt.Printf("%s %s\n", colorize(Green, SymbolCheck), fmt.Sprintf(format, args...))
}

// Warning prints a yellow warning line.
func Warning(format string, args ...any) {
	fmt.Printf("%s %s\n", colorize(Yellow, SymbolWarning), fmt.Sprintf(format, args...))
}

// Error prints a red cross line to stderr.
func Error(format string, args ...any) {
	fmt.Fprintf(os.Stderr, "%s %s\n", colorize(Red, SymbolCross), fmt.Sprintf(format, args...))
}

// Info prints a cyan informational line.
func Info(format string, args ...any) {
	fmt.Printf("%s %s\n", colorize(Cyan, SymbolInfo), fmt.Sprintf(format, args...))
}

// Item prints a bulleted list item.
func Item(format string, args ...any) {
	fmt.Printf("  %s %s\n", colorize(Gray, SymbolDot), fmt.Sprintf(format, args...))
}
