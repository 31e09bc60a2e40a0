package rice

import (
	"io"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/x/ansi"
	"github.com/muesli/termenv"
)

var colorNames = map[string]lipgloss.ANSIColor{
	"black":          0,
	"red":            1,
	"green":          2,
	"yellow":         3,
	"blue":           4,
	"magenta":        5,
	"cyan":           6,
	"white":          7,
	"bright_black":   8,
	"bright_red":     9,
	"bright_green":   10,
	"bright_yellow":  11,
	"bright_blue":    12,
	"bright_magenta": 13,
	"bright_cyan":    14,
	"bright_white":   15,
}

// ColorByName maps a color name to its ANSI color. Unknown names are white.
func ColorByName(name string) lipgloss.ANSIColor {
	if c, ok := colorNames[strings.ToLower(strings.TrimSpace(name))]; ok {
		return c
	}
	return colorNames["white"]
}

// IsColorName reports whether name is one of the 16 supported color names.
func IsColorName(name string) bool {
	_, ok := colorNames[strings.ToLower(strings.TrimSpace(name))]
	return ok
}

// NewRenderer returns a lipgloss renderer for w. A non-nil profile forces
// the color profile instead of probing w.
func NewRenderer(w io.Writer, profile *termenv.Profile) *lipgloss.Renderer {
	r := lipgloss.NewRenderer(w)
	if profile != nil {
		r.SetColorProfile(*profile)
	}
	return r
}

// InfoStyle turns fields into styled info lines.
type InfoStyle struct {
	Renderer *lipgloss.Renderer
	// ColorValues colors each value with its field color.
	ColorValues bool
	// ShowColorsLabel prints "Colors:" in front of the color blocks.
	ShowColorsLabel bool
}

// Lines renders fields in order. The userhost field becomes a bold header
// followed by a dashed separator of the same width, placed before every other
// field; multi-line values give one line per row.
func (s InfoStyle) Lines(fields []InfoField) []string {
	r := s.Renderer
	if r == nil {
		r = lipgloss.DefaultRenderer()
	}
	labelStyle := r.NewStyle().Foreground(lipgloss.ANSIColor(6)).Bold(true)
	dim := r.NewStyle().Faint(true)

	var lines []string
	// the userhost header always comes first, wherever it was configured
	for _, f := range fields {
		if f.Key == FieldUserHost {
			header := r.NewStyle().Foreground(ColorByName("bright_green")).Bold(true)
			lines = append(lines,
				header.Render(f.Value),
				dim.Render(strings.Repeat("-", ansi.StringWidth(f.Value))))
			break
		}
	}

	for _, f := range fields {
		switch {
		case f.Key == FieldUserHost:
			continue
		case f.Key == FieldColors && f.Value == "":
			blocks := ColorBlocks(r)
			if !s.ShowColorsLabel {
				lines = append(lines, blocks...)
				continue
			}
			lines = append(lines, labelled(labelStyle, dim, f.Label, blocks)...)
			continue
		}

		rows := strings.Split(f.Value, "\n")
		if s.ColorValues {
			value := r.NewStyle().Foreground(ColorByName(f.Color))
			for i, row := range rows {
				rows[i] = value.Render(row)
			}
		}
		lines = append(lines, labelled(labelStyle, dim, f.Label, rows)...)
	}
	return lines
}

// labelled prefixes the first row with "Label:" and indents the rest to
// line up with it.
func labelled(labelStyle, dim lipgloss.Style, label string, rows []string) []string {
	prefix := labelStyle.Render(label) + dim.Render(":") + " "
	indent := strings.Repeat(" ", ansi.StringWidth(label)+2)

	out := make([]string, len(rows))
	for i, row := range rows {
		if i == 0 {
			out[i] = prefix + row
		} else {
			out[i] = indent + row
		}
	}
	return out
}

// ColorBlocks renders the 8 normal and 8 bright colors as two rows of
// 3-cell blocks.
func ColorBlocks(r *lipgloss.Renderer) []string {
	var normal, bright strings.Builder
	for i := 0; i < 8; i++ {
		n := lipgloss.ANSIColor(i)
		b := lipgloss.ANSIColor(i + 8)
		normal.WriteString(r.NewStyle().Foreground(n).Background(n).Render("███"))
		bright.WriteString(r.NewStyle().Foreground(b).Background(b).Render("███"))
	}
	return []string{normal.String(), bright.String()}
}

// ColorizeArt paints ASCII art bright blue unless it already carries SGR
// sequences.
func ColorizeArt(r *lipgloss.Renderer, art AsciiArt) AsciiArt {
	for _, line := range art.Lines {
		if strings.Contains(line, "\x1b[") {
			return art
		}
	}
	if r == nil {
		r = lipgloss.DefaultRenderer()
	}
	style := r.NewStyle().Foreground(ColorByName("bright_blue"))
	lines := make([]string, len(art.Lines))
	for i, line := range art.Lines {
		lines[i] = style.Render(line)
	}
	return AsciiArt{Lines: lines}
}
