package rice

import (
	"bytes"
	"strings"
	"testing"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/x/ansi"
	"github.com/muesli/termenv"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func plainRenderer() *lipgloss.Renderer {
	p := termenv.Ascii
	return NewRenderer(&bytes.Buffer{}, &p)
}

func colorRenderer() *lipgloss.Renderer {
	p := termenv.ANSI
	return NewRenderer(&bytes.Buffer{}, &p)
}

func TestInfoStyleLines(t *testing.T) {
	fields := []InfoField{
		{Key: "userhost", Label: "Userhost", Value: "ana@box"},
		{Key: "os", Label: "OS", Value: "Fedora Linux 40"},
		{Key: "cpu", Label: "CPU", Value: "Ryzen 7\nRadeon"},
		{Key: "colors", Label: "Colors"},
	}
	lines := InfoStyle{Renderer: plainRenderer()}.Lines(fields)

	require.Len(t, lines, 7)
	assert.Equal(t, "ana@box", lines[0])
	assert.Equal(t, "-------", lines[1])
	assert.Equal(t, "OS: Fedora Linux 40", lines[2])
	assert.Equal(t, "CPU: Ryzen 7", lines[3])
	assert.Equal(t, "     Radeon", lines[4])
	assert.Equal(t, strings.Repeat("███", 8), lines[5])
	assert.Equal(t, strings.Repeat("███", 8), lines[6])
}

func TestInfoStyleUserHostFirst(t *testing.T) {
	fields := []InfoField{
		{Key: "os", Label: "OS", Value: "Arch Linux"},
		{Key: "kernel", Label: "Kernel", Value: "6.9.1"},
		{Key: "userhost", Label: "Userhost", Value: "a@b"},
	}
	lines := InfoStyle{Renderer: plainRenderer()}.Lines(fields)

	assert.Equal(t, []string{"a@b", "---", "OS: Arch Linux", "Kernel: 6.9.1"}, lines)
}

func TestInfoStyleColorsLabel(t *testing.T) {
	lines := InfoStyle{Renderer: plainRenderer(), ShowColorsLabel: true}.Lines([]InfoField{{Key: "colors", Label: "Colors"}})
	require.Len(t, lines, 2)
	assert.True(t, strings.HasPrefix(lines[0], "Colors: ███"))
	assert.True(t, strings.HasPrefix(lines[1], "        ███"))
}

func TestInfoStyleColorValues(t *testing.T) {
	fields := []InfoField{{Key: "kernel", Label: "Kernel", Value: "6.9.1", Color: "magenta"}}

	colored := InfoStyle{Renderer: colorRenderer(), ColorValues: true}.Lines(fields)
	require.Len(t, colored, 1)
	assert.Contains(t, colored[0], "\x1b[")
	assert.Contains(t, colored[0], "35")
	assert.Equal(t, "Kernel: 6.9.1", ansi.Strip(colored[0]))

	plain := InfoStyle{Renderer: colorRenderer()}.Lines(fields)
	assert.Equal(t, "Kernel: 6.9.1", ansi.Strip(plain[0]))
	assert.True(t, strings.HasSuffix(plain[0], " 6.9.1"), "value should be unstyled: %q", plain[0])
}

func TestColorByName(t *testing.T) {
	assert.Equal(t, lipgloss.ANSIColor(2), ColorByName("green"))
	assert.Equal(t, lipgloss.ANSIColor(12), ColorByName("Bright_Blue"))
	assert.Equal(t, lipgloss.ANSIColor(7), ColorByName("chartreuse"))
	assert.True(t, IsColorName("bright_black"))
	assert.False(t, IsColorName("orange"))
}

func TestColorizeArt(t *testing.T) {
	art := AsciiArt{Lines: []string{"/\\", "\\/"}}
	colored := ColorizeArt(colorRenderer(), art)
	for i, line := range colored.Lines {
		assert.Contains(t, line, "\x1b[")
		assert.Equal(t, art.Lines[i], ansi.Strip(line))
	}

	pre := AsciiArt{Lines: []string{"\x1b[31m/\\\x1b[0m", "\\/"}}
	assert.Equal(t, pre, ColorizeArt(colorRenderer(), pre))

	assert.Equal(t, art, ColorizeArt(plainRenderer(), art))
	assert.Equal(t, PlanFootprint(art), PlanFootprint(colored))
}
