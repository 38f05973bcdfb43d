// Package log provides colored terminal output for retemplate.
// All output uses ANSI escape codes and goes to Out, which tests may replace.
package log

import (
	"fmt"
	"io"
	"os"
)

// ANSI escape codes for terminal colors.
const (
	colorReset  = "\033[0m"
	colorRed    = "\033[0;31m"
	colorGreen  = "\033[0;32m"
	colorYellow = "\033[1;33m"
	colorCyan   = "\033[0;36m"
	colorWhite  = "\033[1;37m"
)

// SectionLine is the unicode box-draw separator used by Section and the run summary.
const SectionLine = "━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━"

// Out is the destination for every message. Defaults to stdout.
var Out io.Writer = os.Stdout

func emit(color, tag, msg string) {
	fmt.Fprintf(Out, "%s%s%s %s\n", color, tag, colorReset, msg)
}

// Info prints a white [INFO] message.
func Info(msg string) {
	emit(colorWhite, "[INFO]", msg)
}

// Success prints a green [SUCCESS] message.
func Success(msg string) {
	emit(colorGreen, "[SUCCESS]", msg)
}

// Warning prints a yellow [WARNING] message.
func Warning(msg string) {
	emit(colorYellow, "[WARNING]", msg)
}

// Error prints a red [ERROR] message.
func Error(msg string) {
	emit(colorRed, "[ERROR]", msg)
}

// Section prints a cyan separator, the title, and a closing separator.
func Section(title string) {
	fmt.Fprintf(Out, "\n%s%s%s\n", colorCyan, SectionLine, colorReset)
	fmt.Fprintf(Out, "%s%s%s\n", colorCyan, title, colorReset)
	fmt.Fprintf(Out, "%s%s%s\n\n", colorCyan, SectionLine, colorReset)
}

// Item prints an indented bullet line, used for lists inside a section.
func Item(msg string) {
	fmt.Fprintf(Out, "  - %s\n", msg)
}
