// Package output provides terminal output formatting utilities for the astroname CLI.
// This package is designed to have minimal dependencies to avoid import cycles.
package output

import (
	"fmt"
	"io"

	"github.com/fatih/color"
)

// Farewell is printed when the operator interrupts a session.
const Farewell = "You requested to exit. Bye!"

// Printer writes user-facing messages with optional styling.
type Printer struct {
	out     io.Writer
	symbols Symbols

	label   *color.Color
	name    *color.Color
	advise  *color.Color
	success *color.Color
	fail    *color.Color
}

// NewPrinter creates a Printer. Colors are used only when useColor is set.
func NewPrinter(out io.Writer, caps TerminalCapabilities, useColor bool) *Printer {
	p := &Printer{
		out:     out,
		symbols: SelectSymbols(caps),
		label:   color.New(color.Bold),
		name:    color.New(color.FgGreen, color.Bold),
		advise:  color.New(color.FgYellow),
		success: color.New(color.FgGreen, color.Bold),
		fail:    color.New(color.FgRed, color.Bold),
	}
	for _, c := range []*color.Color{p.label, p.name, p.advise, p.success, p.fail} {
		if useColor {
			c.EnableColor()
		} else {
			c.DisableColor()
		}
	}
	return p
}

// Name prints the composed name preceded by a blank line: "\nName: <name>".
func (p *Printer) Name(name string) {
	fmt.Fprintf(p.out, "\n%s %s\n", p.label.Sprint("Name:"), p.name.Sprint(name))
}

// Advisory prints a one-line notice, such as the answers-file fallback.
func (p *Printer) Advisory(message string) {
	fmt.Fprintln(p.out, p.advise.Sprint(message))
}

// Farewell prints the interrupt message preceded by a blank line.
func (p *Printer) Farewell() {
	fmt.Fprintf(p.out, "\n%s\n", Farewell)
}

// Success prints a checkmarked message.
func (p *Printer) Success(message string) {
	fmt.Fprintf(p.out, "%s %s\n", p.success.Sprint(p.symbols.Checkmark), message)
}

// Warning prints a warning-marked message.
func (p *Printer) Warning(message string) {
	fmt.Fprintf(p.out, "%s %s\n", p.advise.Sprint(p.symbols.Warning), message)
}

// Failure prints a failure-marked message.
func (p *Printer) Failure(message string) {
	fmt.Fprintf(p.out, "%s %s\n", p.fail.Sprint(p.symbols.Failure), message)
}
