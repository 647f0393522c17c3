// Copyright (C) 2025 Aleutian AI (jinterlante@aleutian.ai)
// This program is free software: you can redistribute it and/or modify
// it under the terms of the GNU Affero General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
// See the LICENSE.txt file for the full license text.

// Package ux provides terminal output styling for the StackForge CLI.
//
// All user-facing status lines go through the four prefix helpers (Info,
// Success, Warning, Error) so output keeps a consistent colored-prefix
// convention: [INFO], [SUCCESS], [WARNING], [ERROR]. Colors are disabled
// automatically when stdout is not a terminal, and machine mode strips
// styling entirely for scripting.
package ux

import (
	"fmt"
	"io"
	"os"
	"sync"

	"github.com/charmbracelet/lipgloss"
	"github.com/mattn/go-isatty"
)

// StackForge color palette - deep ocean teals and arctic waters, shared with
// the wider Aleutian tooling.
var (
	ColorTealBright  = lipgloss.Color("#2CD7C7") // Bright teal - success
	ColorTealPrimary = lipgloss.Color("#20B9B4") // Primary teal - info, brand
	ColorWarning     = lipgloss.Color("#F4D03F") // Gold/amber for warnings
	ColorError       = lipgloss.Color("#E74C3C") // Red for errors
	ColorMuted       = lipgloss.Color("#2C4A54") // Slate for muted text
)

// Styles provides the pre-configured lipgloss styles used by the helpers.
var Styles = struct {
	Info    lipgloss.Style
	Success lipgloss.Style
	Warning lipgloss.Style
	Error   lipgloss.Style
	Bold    lipgloss.Style
	Muted   lipgloss.Style
	Title   lipgloss.Style
}{
	Info:    lipgloss.NewStyle().Foreground(ColorTealPrimary).Bold(true),
	Success: lipgloss.NewStyle().Foreground(ColorTealBright).Bold(true),
	Warning: lipgloss.NewStyle().Foreground(ColorWarning).Bold(true),
	Error:   lipgloss.NewStyle().Foreground(ColorError).Bold(true),
	Bold:    lipgloss.NewStyle().Bold(true),
	Muted:   lipgloss.NewStyle().Foreground(ColorMuted),
	Title:   lipgloss.NewStyle().Bold(true).Foreground(ColorTealBright),
}

var (
	mu      sync.Mutex
	out     io.Writer = os.Stdout
	errOut  io.Writer = os.Stderr
	machine bool
	noColor bool
)

func init() {
	// Piped output gets plain prefixes; NO_COLOR is honored by convention.
	if os.Getenv("NO_COLOR") != "" || !isatty.IsTerminal(os.Stdout.Fd()) {
		noColor = true
	}
}

// SetMachineMode toggles machine-readable output (no styling, stable
// prefixes, warnings and errors on stderr).
func SetMachineMode(enabled bool) {
	mu.Lock()
	defer mu.Unlock()
	machine = enabled
}

// SetWriters redirects output, primarily for tests.
func SetWriters(stdout, stderr io.Writer) {
	mu.Lock()
	defer mu.Unlock()
	out = stdout
	errOut = stderr
}

// prefix renders a status prefix with its style unless color is off.
func prefix(style lipgloss.Style, tag string) string {
	if noColor || machine {
		return tag
	}
	return style.Render(tag)
}

// Info prints an informational status line.
func Info(format string, args ...any) {
	mu.Lock()
	defer mu.Unlock()
	fmt.Fprintf(out, "%s %s\n", prefix(Styles.Info, "[INFO]"), fmt.Sprintf(format, args...))
}

// Success prints a success status line.
func Success(format string, args ...any) {
	mu.Lock()
	defer mu.Unlock()
	fmt.Fprintf(out, "%s %s\n", prefix(Styles.Success, "[SUCCESS]"), fmt.Sprintf(format, args...))
}

// Warning prints a warning status line. Machine mode routes it to stderr.
func Warning(format string, args ...any) {
	mu.Lock()
	defer mu.Unlock()
	w := out
	if machine {
		w = errOut
	}
	fmt.Fprintf(w, "%s %s\n", prefix(Styles.Warning, "[WARNING]"), fmt.Sprintf(format, args...))
}

// Error prints an error status line to stderr.
func Error(format string, args ...any) {
	mu.Lock()
	defer mu.Unlock()
	fmt.Fprintf(errOut, "%s %s\n", prefix(Styles.Error, "[ERROR]"), fmt.Sprintf(format, args...))
}

// Title prints a styled section title. Suppressed in machine mode.
func Title(text string) {
	mu.Lock()
	defer mu.Unlock()
	if machine {
		return
	}
	if noColor {
		fmt.Fprintln(out, text)
		return
	}
	fmt.Fprintln(out, Styles.Title.Render(text))
}

// Listing prints an aligned two-column listing (id + description), used for
// the live catalog listing in help output.
func Listing(rows [][2]string) {
	mu.Lock()
	defer mu.Unlock()

	width := 0
	for _, row := range rows {
		if len(row[0]) > width {
			width = len(row[0])
		}
	}
	for _, row := range rows {
		name := row[0]
		if !noColor && !machine {
			name = Styles.Bold.Render(name)
		}
		fmt.Fprintf(out, "  %s%s  %s\n", name, spaces(width-len(row[0])), row[1])
	}
}

func spaces(n int) string {
	if n <= 0 {
		return ""
	}
	b := make([]byte, n)
	for i := range b {
		b[i] = ' '
	}
	return string(b)
}
