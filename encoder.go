package rice

import (
	"bytes"
	"fmt"
	"image/png"
)

// Encoder turns raster art into protocol escape sequences.
type Encoder struct {
	Metrics CellMetrics
	Filter  Filter
}

// Encode scales img to fp times the cell size and returns the escape
// sequences that draw it, in emission order. The sequences are not wrapped
// for tmux. Every failure wraps ErrNoProtocol or ErrImageEncode.
func (e Encoder) Encode(img RasterImage, p Protocol, fp Footprint) ([]string, error) {
	switch p {
	case Kitty:
		data, err := e.pngPayload(img, fp)
		if err != nil {
			return nil, err
		}
		return KittySequences(data, fp), nil
	case ITerm2:
		data, err := e.pngPayload(img, fp)
		if err != nil {
			return nil, err
		}
		return []string{ITerm2Sequence(data, fp)}, nil
	case None:
		return nil, ErrNoProtocol
	default:
		return nil, fmt.Errorf("%w: %v", ErrNoProtocol, p)
	}
}

// PixelSize is the target box for fp.
func (e Encoder) PixelSize(fp Footprint) (width, height int) {
	m := e.Metrics
	if !m.Valid() {
		m = DefaultCellMetrics
	}
	return fp.Width * m.Width, fp.Height * m.Height
}

func (e Encoder) pngPayload(img RasterImage, fp Footprint) ([]byte, error) {
	if img.Image == nil {
		return nil, fmt.Errorf("%w: no pixel data", ErrImageEncode)
	}
	w, h := e.PixelSize(fp)
	resized, err := ResizeImage(img.Image, w, h, e.Filter)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrImageEncode, err)
	}

	var buf bytes.Buffer
	if err := png.Encode(&buf, resized); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrImageEncode, err)
	}
	return buf.Bytes(), nil
}
