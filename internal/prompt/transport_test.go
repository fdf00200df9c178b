package prompt

import (
	"bytes"
	"context"
	"io"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/goleak"
)

func TestMain(m *testing.M) {
	goleak.VerifyTestMain(m)
}

func TestPrompt_String(t *testing.T) {
	t.Parallel()

	assert.Equal(t, "Animal [cat] ? ", Prompt{Question: "Animal", Hint: "cat"}.String())
	assert.Equal(t, "Color [] ? ", Prompt{Question: "Color"}.String())
}

func TestLineTransport_Show(t *testing.T) {
	t.Parallel()

	var out bytes.Buffer
	tr := NewLineTransport(strings.NewReader(""), &out)

	require.NoError(t, tr.Show(Prompt{Question: "Animal", Hint: "cat"}))
	assert.Equal(t, "Animal [cat] ? ", out.String())
}

func TestLineTransport_ShowColored(t *testing.T) {
	t.Parallel()

	var out bytes.Buffer
	tr := NewLineTransport(strings.NewReader(""), &out, WithColor(true))

	require.NoError(t, tr.Show(Prompt{Question: "Animal", Hint: "cat"}))
	assert.Contains(t, out.String(), "\x1b[")
	assert.Contains(t, out.String(), "Animal")
	assert.Contains(t, out.String(), "cat")
}

func TestLineTransport_NextLine(t *testing.T) {
	t.Parallel()

	tests := map[string]struct {
		input string
		want  []string
	}{
		"unix newlines": {
			input: "cat\nred\n",
			want:  []string{"cat", "red"},
		},
		"windows newlines": {
			input: "cat\r\nred\r\n",
			want:  []string{"cat", "red"},
		},
		"empty lines are preserved": {
			input: "\n-\n",
			want:  []string{"", "-"},
		},
		"unterminated last line": {
			input: "cat\nred",
			want:  []string{"cat", "red"},
		},
		"surrounding spaces untouched": {
			input: "  big cat  \n",
			want:  []string{"  big cat  "},
		},
	}

	for name, tt := range tests {
		tt := tt
		t.Run(name, func(t *testing.T) {
			t.Parallel()

			tr := NewLineTransport(strings.NewReader(tt.input), io.Discard)
			ctx := context.Background()

			for _, want := range tt.want {
				got, err := tr.NextLine(ctx)
				require.NoError(t, err)
				assert.Equal(t, want, got)
			}

			_, err := tr.NextLine(ctx)
			assert.ErrorIs(t, err, io.EOF)
		})
	}
}

func TestLineTransport_CancelWhileWaiting(t *testing.T) {
	t.Parallel()

	pr, pw := io.Pipe()
	t.Cleanup(func() { pw.Close() })

	tr := NewLineTransport(pr, io.Discard)
	ctx, cancel := context.WithCancel(context.Background())

	done := make(chan error, 1)
	go func() {
		_, err := tr.NextLine(ctx)
		done <- err
	}()

	cancel()
	select {
	case err := <-done:
		assert.ErrorIs(t, err, ErrCanceled)
	case <-time.After(5 * time.Second):
		t.Fatal("NextLine did not return after cancellation")
	}
}

func TestLineTransport_PendingLineSurvivesCancel(t *testing.T) {
	t.Parallel()

	pr, pw := io.Pipe()
	t.Cleanup(func() { pw.Close() })

	tr := NewLineTransport(pr, io.Discard)

	canceled, cancel := context.WithCancel(context.Background())
	cancel()
	_, err := tr.NextLine(canceled)
	require.ErrorIs(t, err, ErrCanceled)

	go func() {
		_, _ = pw.Write([]byte("late\n"))
	}()

	got, err := tr.NextLine(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "late", got)
}
