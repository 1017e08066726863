// Package ux provides terminal output styling and the interactive prompts
// used at install/update decision points.
package ux

import (
	"fmt"
	"io"

	"github.com/charmbracelet/lipgloss"
)

var (
	colorSuccess = lipgloss.Color("#2CD7C7")
	colorWarning = lipgloss.Color("#F4D03F")
	colorError   = lipgloss.Color("#E74C3C")
	colorMuted   = lipgloss.Color("#6C7A89")
)

// Styles provides pre-configured lipgloss styles for launcher output.
var Styles = struct {
	Success lipgloss.Style
	Warning lipgloss.Style
	Error   lipgloss.Style
	Muted   lipgloss.Style
	Bold    lipgloss.Style
}{
	Success: lipgloss.NewStyle().Foreground(colorSuccess),
	Warning: lipgloss.NewStyle().Foreground(colorWarning),
	Error:   lipgloss.NewStyle().Foreground(colorError),
	Muted:   lipgloss.NewStyle().Foreground(colorMuted),
	Bold:    lipgloss.NewStyle().Bold(true),
}

// Successf writes a success line (check mark prefix) to w.
func Successf(w io.Writer, format string, args ...any) {
	fmt.Fprintln(w, Styles.Success.Render("✓ "+fmt.Sprintf(format, args...)))
}

// Warnf writes a warning line to w.
func Warnf(w io.Writer, format string, args ...any) {
	fmt.Fprintln(w, Styles.Warning.Render("⚠ "+fmt.Sprintf(format, args...)))
}

// Errorf writes an error line to w.
func Errorf(w io.Writer, format string, args ...any) {
	fmt.Fprintln(w, Styles.Error.Render("✗ "+fmt.Sprintf(format, args...)))
}

// Mutedf writes a de-emphasized line to w.
func Mutedf(w io.Writer, format string, args ...any) {
	fmt.Fprintln(w, Styles.Muted.Render(fmt.Sprintf(format, args...)))
}
