package rice

import (
	"bufio"
	"fmt"
	"io"
	"strings"

	"github.com/charmbracelet/x/ansi"
)

// RenderPlan is assembled once per render and consumed by Composite.
type RenderPlan struct {
	// Art is AsciiArt, RasterImage or nil for info-only output.
	Art      ArtBlock
	Layout   Layout
	Protocol Protocol
	// Placement draws a RasterImage. The sequences are written as is, so
	// they must already be wrapped for tmux.
	Placement []string
	// Lines are the styled info lines.
	Lines []string
}

// Composite writes the art with the info lines beside it.
//
// The art rows are reserved first (printed for ASCII art, blank for images)
// so scrolling happens before any cursor movement. The cursor then returns to
// the top of the art and every info line is placed with an absolute column at
// Layout.Column; lines past the art's last row continue below it at the same
// column. The cursor finally rests at column 0 below the taller block.
//
// Only write errors are returned.
func Composite(w io.Writer, plan RenderPlan) error {
	bw := bufio.NewWriter(w)
	height := 0

	switch art := plan.Art.(type) {
	case nil:
	case AsciiArt:
		height = len(art.Lines)
		for _, line := range art.Lines {
			writeStyled(bw, line)
			bw.WriteString("\n")
		}
		if height > 0 {
			bw.WriteString(ansi.CursorUp(height))
			bw.WriteString("\r")
		}
	case RasterImage:
		height = plan.Layout.Footprint.Height
		bw.WriteString(strings.Repeat("\n", height))
		if height > 0 {
			bw.WriteString(ansi.CursorUp(height))
			bw.WriteString("\r")
		}
		bw.WriteString(ansi.SaveCursor)
		for _, seq := range plan.Placement {
			bw.WriteString(seq)
		}
		bw.WriteString(ansi.RestoreCursor)
	default:
		return fmt.Errorf("unsupported art block %T", art)
	}

	column := 0
	if height > 0 {
		column = plan.Layout.Column
	}
	for i, line := range plan.Lines {
		if i > 0 {
			bw.WriteString("\n")
		}
		if column > 0 {
			bw.WriteString(ansi.CursorHorizontalAbsolute(column + 1))
		}
		writeStyled(bw, line)
	}

	// park below the taller of the two blocks
	switch n := len(plan.Lines); {
	case n > 0:
		bw.WriteString("\n")
		if height > n {
			bw.WriteString(ansi.CursorDown(height - n))
		}
	case height > 0:
		bw.WriteString(ansi.CursorDown(height))
	}
	bw.WriteString("\r")

	return bw.Flush()
}

// writeStyled resets SGR state after lines that set it so colors never leak
// into the next block.
func writeStyled(bw *bufio.Writer, s string) {
	bw.WriteString(s)
	if strings.Contains(s, "\x1b[") {
		bw.WriteString(ansi.ResetStyle)
	}
}
