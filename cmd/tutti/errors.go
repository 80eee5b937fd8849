package main

import (
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/opal-lang/tutti/core/catalog"
	"github.com/opal-lang/tutti/core/seating"
)

// CLIError represents a formatted CLI error with context
type CLIError struct {
	Type    string // "config", "catalog", "notation"
	Message string
	Details string // Additional context
	Hint    string // How to fix it
}

// Error implements the error interface
func (e *CLIError) Error() string {
	var b strings.Builder
	b.WriteString(e.Message)
	if e.Details != "" {
		b.WriteString("\n")
		b.WriteString(e.Details)
	}
	if e.Hint != "" {
		b.WriteString("\n")
		b.WriteString(e.Hint)
	}
	return b.String()
}

// FormatError formats an error for CLI output with colors
func FormatError(w io.Writer, err error, useColor bool) {
	if err == nil {
		return
	}

	var cliErr *CLIError
	var notFound *catalog.NotFoundError
	switch {
	case errors.As(err, &cliErr):
		formatCLIError(w, cliErr, useColor)
	case errors.As(err, &notFound):
		formatNotFound(w, notFound, useColor)
	default:
		_, _ = fmt.Fprintf(w, "%s%s\n", Colorize("Error: ", ColorRed, useColor), err.Error())
	}
}

func formatNotFound(w io.Writer, err *catalog.NotFoundError, useColor bool) {
	_, _ = fmt.Fprintf(w, "%sunknown instrument %q\n", Colorize("Error: ", ColorRed, useColor), err.Text)
	if err.Suggestion != "" {
		_, _ = fmt.Fprintf(w, "%sdid you mean %q?\n", Colorize("Hint: ", ColorYellow, useColor), err.Suggestion)
	}
}

// formatCLIError formats CLI errors
func formatCLIError(w io.Writer, err *CLIError, useColor bool) {
	_, _ = fmt.Fprintf(w, "%s%s\n", Colorize("Error: ", ColorRed, useColor), err.Message)

	if err.Details != "" {
		_, _ = fmt.Fprintf(w, "\n%s\n", err.Details)
	}

	if err.Hint != "" {
		_, _ = fmt.Fprintf(w, "%s%s\n", Colorize("Hint: ", ColorYellow, useColor), err.Hint)
	}
}

// FormatDiagnostics writes one warning line per diagnostic. A non-empty
// prefix such as "line 3" is put in front of each.
func FormatDiagnostics(w io.Writer, prefix string, diags []seating.Diagnostic, useColor bool) {
	for _, d := range diags {
		label := "warning: "
		if prefix != "" {
			label = prefix + ": " + label
		}
		_, _ = fmt.Fprintf(w, "%s%s\n", Colorize(label, ColorYellow, useColor), d.Error())
	}
}
