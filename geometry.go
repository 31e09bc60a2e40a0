package rice

import "github.com/charmbracelet/x/ansi"

const (
	// ImageWidthCells and ImageHeightCells are the fixed footprint of raster
	// art, independent of the image's aspect ratio or the window size.
	ImageWidthCells  = 30
	ImageHeightCells = 15

	// DefaultGap is the number of blank columns between art and info.
	DefaultGap = 2
)

// Footprint is the area reserved for the art block, in character cells.
type Footprint struct {
	Width  int
	Height int
}

// Layout is the planned geometry of one render.
type Layout struct {
	Footprint Footprint
	// Column is the 0-based column where info lines start.
	Column int
	// PixelWidth and PixelHeight are the raster target box; zero for ASCII.
	PixelWidth  int
	PixelHeight int
}

// PlanFootprint computes the art footprint. Raster art is always 30x15; ASCII
// art is its widest visible line by its line count. No art has no footprint.
func PlanFootprint(art ArtBlock) Footprint {
	switch a := art.(type) {
	case RasterImage:
		return Footprint{Width: ImageWidthCells, Height: ImageHeightCells}
	case AsciiArt:
		fp := Footprint{Height: len(a.Lines)}
		for _, line := range a.Lines {
			fp.Width = max(fp.Width, ansi.StringWidth(line))
		}
		return fp
	default:
		return Footprint{}
	}
}

// Plan lays out art next to info text. gap values below 1 use DefaultGap.
// Without art the info lines start at column 0.
func Plan(art ArtBlock, metrics CellMetrics, gap int) Layout {
	if gap < 1 {
		gap = DefaultGap
	}
	fp := PlanFootprint(art)
	l := Layout{Footprint: fp}
	if fp.Height > 0 {
		l.Column = fp.Width + gap
	}
	if _, ok := art.(RasterImage); ok {
		if !metrics.Valid() {
			metrics = DefaultCellMetrics
		}
		l.PixelWidth = fp.Width * metrics.Width
		l.PixelHeight = fp.Height * metrics.Height
	}
	return l
}
