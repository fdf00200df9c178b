// Package prompt provides the line-oriented channel used to ask questions.
package prompt

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/fatih/color"
)

// ErrCanceled is returned by NextLine when the operator interrupts the session.
var ErrCanceled = errors.New("input canceled")

// Prompt is a single question together with its pre-filled answer.
type Prompt struct {
	Question string
	Hint     string
}

// String renders the prompt as "Question [hint] ? ".
func (p Prompt) String() string {
	return fmt.Sprintf("%s [%s] ? ", p.Question, p.Hint)
}

// Transport is the interactive channel. At most one NextLine request is
// outstanding at any time.
type Transport interface {
	// Show emits a prompt.
	Show(p Prompt) error
	// NextLine waits for one line of input without its line terminator.
	// It returns io.EOF when input is exhausted and ErrCanceled when ctx is
	// done before a line arrives.
	NextLine(ctx context.Context) (string, error)
}

type lineResult struct {
	line string
	err  error
}

// LineTransport reads lines from an io.Reader and writes prompts to an io.Writer.
type LineTransport struct {
	in  *bufio.Reader
	out io.Writer

	question *color.Color
	hint     *color.Color

	// pending carries the result of an in-flight read. A read interrupted by
	// cancellation stays pending and is delivered to the next NextLine call.
	pending chan lineResult
}

// Option configures a LineTransport.
type Option func(*LineTransport)

// WithColor enables or disables prompt styling regardless of terminal detection.
func WithColor(enabled bool) Option {
	return func(t *LineTransport) {
		for _, c := range []*color.Color{t.question, t.hint} {
			if enabled {
				c.EnableColor()
			} else {
				c.DisableColor()
			}
		}
	}
}

// NewLineTransport creates a transport over in/out. Prompts are plain text
// unless WithColor(true) is given.
func NewLineTransport(in io.Reader, out io.Writer, opts ...Option) *LineTransport {
	t := &LineTransport{
		in:       bufio.NewReader(in),
		out:      out,
		question: color.New(color.Bold),
		hint:     color.New(color.FgCyan),
	}
	WithColor(false)(t)
	for _, opt := range opts {
		opt(t)
	}
	return t
}

// Show writes the prompt without a trailing newline.
func (t *LineTransport) Show(p Prompt) error {
	_, err := fmt.Fprintf(t.out, "%s [%s] ? ", t.question.Sprint(p.Question), t.hint.Sprint(p.Hint))
	return err
}

// NextLine implements Transport.
func (t *LineTransport) NextLine(ctx context.Context) (string, error) {
	if t.pending == nil {
		t.pending = make(chan lineResult, 1)
		go t.readLine(t.pending)
	}

	select {
	case <-ctx.Done():
		return "", ErrCanceled
	case r := <-t.pending:
		t.pending = nil
		return r.line, r.err
	}
}

func (t *LineTransport) readLine(ch chan<- lineResult) {
	line, err := t.in.ReadString('\n')
	if errors.Is(err, io.EOF) && line != "" {
		// Deliver the unterminated last line; the next read reports EOF.
		err = nil
	}
	ch <- lineResult{line: strings.TrimRight(line, "\r\n"), err: err}
}
