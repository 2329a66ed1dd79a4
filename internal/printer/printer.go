// Package printer writes the human-facing console output of the CLI.
// Structured logs go through zap; this is the coloured summary on top.
package printer

import (
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/fatih/color"
)

var (
	// Out and Err are where messages go. Tests swap them.
	Out io.Writer = os.Stdout
	Err io.Writer = os.Stderr
)

var (
	green  = color.New(color.FgGreen)
	yellow = color.New(color.FgYellow)
	red    = color.New(color.FgRed, color.Bold)
	cyan   = color.New(color.FgCyan)
)

// Success prints a line in green with a checkmark.
func Success(format string, a ...any) {
	green.Fprintf(Out, "✓ %s\n", fmt.Sprintf(format, a...))
}

// Info prints a plain line.
func Info(format string, a ...any) {
	fmt.Fprintf(Out, format+"\n", a...)
}

// Step prints an emphasised line, used before a multi-file operation starts.
func Step(format string, a ...any) {
	cyan.Fprintf(Out, "→ %s\n", fmt.Sprintf(format, a...))
}

// Warning prints a line in yellow with a warning sign.
func Warning(format string, a ...any) {
	yellow.Fprintf(Out, "⚠ %s\n", fmt.Sprintf(format, a...))
}

// Failure prints a per-item failure in red to Err.
func Failure(format string, a ...any) {
	red.Fprintf(Err, "✗ %s\n", fmt.Sprintf(format, a...))
}

// Error prints a titled error with an explanation and suggestions to Err, and
// returns an error carrying only the title.
func Error(title string, explanation string, suggestions []string) error {
	red.Fprintf(Err, "%s\n\n", title)
	if explanation != "" {
		fmt.Fprintf(Err, "%s\n", explanation)
	}

	switch len(suggestions) {
	case 0:
	case 1:
		fmt.Fprintf(Err, "\n%s\n", suggestions[0])
	default:
		fmt.Fprintf(Err, "\nEither:\n")
		for i, s := range suggestions {
			fmt.Fprintf(Err, "  %d. %s\n", i+1, s)
		}
	}
	return &reportedError{title: title}
}

type reportedError struct{ title string }

func (e *reportedError) Error() string { return e.title }

// IsReported reports whether err was already printed by Error.
func IsReported(err error) bool {
	var r *reportedError
	return errors.As(err, &r)
}

// Summary prints the closing counts line, green when nothing failed.
func Summary(verb string, done, total, failed int) {
	msg := fmt.Sprintf("%s %d of %d file(s)", verb, done, total)
	if failed == 0 {
		Success("%s", msg)
		return
	}
	red.Fprintf(Err, "✗ %s, %d failed\n", msg, failed)
}
