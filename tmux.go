package rice

import (
	"context"
	"os/exec"
	"strings"

	"github.com/charmbracelet/x/ansi"
)

const (
	passthroughStart = "\x1bPtmux;"
	passthroughEnd   = "\x1b\\"
)

// WrapPassthrough wraps an escape sequence in the tmux passthrough envelope:
//
//	ESC P tmux ; <sequence with every ESC doubled> ESC \
//
// Sequences that do not start with ESC are returned unchanged.
func WrapPassthrough(seq string) string {
	if !strings.HasPrefix(seq, "\x1b") {
		return seq
	}
	return ansi.TmuxPassthrough(seq)
}

// UnwrapPassthrough reverses WrapPassthrough. ok is false when s is not a
// single well formed envelope.
func UnwrapPassthrough(s string) (seq string, ok bool) {
	if !strings.HasPrefix(s, passthroughStart) || !strings.HasSuffix(s, passthroughEnd) {
		return "", false
	}
	inner := s[len(passthroughStart) : len(s)-len(passthroughEnd)]

	var b strings.Builder
	b.Grow(len(inner))
	for i := 0; i < len(inner); i++ {
		if inner[i] != '\x1b' {
			b.WriteByte(inner[i])
			continue
		}
		if i+1 >= len(inner) || inner[i+1] != '\x1b' {
			return "", false
		}
		b.WriteByte('\x1b')
		i++
	}
	return b.String(), true
}

// Wrap applies the passthrough envelope when running inside tmux.
func (e Environment) Wrap(seq string) string {
	if e.Multiplexed {
		return WrapPassthrough(seq)
	}
	return seq
}

// EnableTmuxPassthrough turns on allow-passthrough for the current pane.
// Graphics sequences are silently dropped by tmux without it.
func EnableTmuxPassthrough(ctx context.Context) error {
	// -p sets the option for the current pane only
	return exec.CommandContext(ctx, "tmux", "set", "-p", "allow-passthrough", "on").Run()
}
