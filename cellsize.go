package rice

import (
	"strings"

	"github.com/jorgegonzalez/rice/pkg/csi"
)

// CellMetrics is the approximate pixel size of one terminal character cell.
type CellMetrics struct {
	Width  int
	Height int
}

// DefaultCellMetrics is used when nothing better is known.
var DefaultCellMetrics = CellMetrics{Width: 8, Height: 16}

// Valid reports whether both dimensions are positive.
func (m CellMetrics) Valid() bool {
	return m.Width > 0 && m.Height > 0
}

// cellMetricSource reports the cell size, or ok=false when it cannot tell.
type cellMetricSource func(env Environment) (CellMetrics, bool)

// cellMetricSources are tried in order before the fallback table.
var cellMetricSources = []cellMetricSource{
	func(Environment) (CellMetrics, bool) { return winsizeCellMetrics() },
	cellSizeQuery,
	fontSizeQuery,
}

// DetectCellMetrics never fails. It tries, in order, the TIOCGWINSZ pixel to
// cell ratio of stdout, a CSI 16t query, a CSI 14t query divided by the
// window size in cells, and the per-terminal fallback table.
func DetectCellMetrics(env Environment) CellMetrics {
	return firstCellMetrics(env, cellMetricSources)
}

func firstCellMetrics(env Environment, sources []cellMetricSource) CellMetrics {
	for _, src := range sources {
		if m, ok := src(env); ok && m.Valid() {
			return m
		}
	}
	return FallbackCellMetrics(env.TermProgram)
}

func cellSizeQuery(env Environment) (CellMetrics, bool) {
	if !csi.QuerySupported(env.TermProgram) {
		return CellMetrics{}, false
	}
	w, h, ok := csi.QueryCharacterCellSizeInPixels(env.Multiplexed)
	return CellMetrics{Width: w, Height: h}, ok
}

func fontSizeQuery(env Environment) (CellMetrics, bool) {
	if !csi.QuerySupported(env.TermProgram) {
		return CellMetrics{}, false
	}
	w, h, ok := csi.QueryFontSize(env.Multiplexed)
	return CellMetrics{Width: w, Height: h}, ok
}

// FallbackCellMetrics returns typical default font metrics for a terminal.
func FallbackCellMetrics(termProgram string) CellMetrics {
	switch {
	case termProgram == "vscode":
		// VS Code typically uses smaller fonts
		return CellMetrics{7, 14}
	case termProgram == "iTerm.app", strings.EqualFold(termProgram, "iTerm2"):
		return CellMetrics{8, 16}
	case termProgram == "WezTerm":
		return CellMetrics{8, 18}
	case termProgram == "Alacritty":
		return CellMetrics{7, 15}
	case strings.Contains(termProgram, "kitty"):
		return CellMetrics{8, 16}
	case strings.Contains(termProgram, "xterm"):
		return CellMetrics{7, 14}
	default:
		return DefaultCellMetrics
	}
}
