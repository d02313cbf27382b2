// Package ui renders the pipeline's terminal output: step banners, the final
// success notice and error lines. Everything goes through a Printer so tests
// can capture output in a buffer.
package ui

import (
	"fmt"
	"io"

	"github.com/charmbracelet/lipgloss"
)

var (
	// Colors
	primaryColor = lipgloss.Color("#A78BFA") // Purple
	successColor = lipgloss.Color("#10B981") // Green
	errorColor   = lipgloss.Color("#F87171") // Red
	mutedColor   = lipgloss.Color("#9CA3AF") // Gray

	stepStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(primaryColor)

	successStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(successColor)

	errorStyle = lipgloss.NewStyle().
			Foreground(errorColor)

	noticeStyle = lipgloss.NewStyle().
			Foreground(mutedColor).
			Italic(true)
)

// Printer writes styled pipeline output to a single destination.
type Printer struct {
	out io.Writer
}

// NewPrinter creates a Printer writing to out.
func NewPrinter(out io.Writer) *Printer {
	return &Printer{out: out}
}

// Step prints the banner for step n of total.
func (p *Printer) Step(n, total int, name string) {
	fmt.Fprintln(p.out, stepStyle.Render(fmt.Sprintf("[%d/%d] %s", n, total, name)))
}

// Success prints a completion line.
func (p *Printer) Success(msg string) {
	fmt.Fprintln(p.out, successStyle.Render(msg))
}

// Notice prints an informational line.
func (p *Printer) Notice(msg string) {
	fmt.Fprintln(p.out, noticeStyle.Render(msg))
}

// Error prints an error line.
func (p *Printer) Error(msg string) {
	fmt.Fprintln(p.out, errorStyle.Render(msg))
}

// Plain prints an unstyled line.
func (p *Printer) Plain(msg string) {
	fmt.Fprintln(p.out, msg)
}
