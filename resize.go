package rice

import (
	"fmt"
	"image"
	"strings"

	"github.com/nfnt/resize"
	"golang.org/x/image/draw"
)

// Filter is the interpolation used when scaling raster art.
type Filter int

const (
	Lanczos Filter = iota
	Bilinear
	Nearest
)

func (f Filter) String() string {
	switch f {
	case Lanczos:
		return "lanczos"
	case Bilinear:
		return "bilinear"
	case Nearest:
		return "nearest"
	default:
		return fmt.Sprintf("Filter(%d)", int(f))
	}
}

// ParseFilter parses "lanczos", "bilinear" or "nearest".
func ParseFilter(s string) (Filter, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "lanczos":
		return Lanczos, nil
	case "bilinear":
		return Bilinear, nil
	case "nearest":
		return Nearest, nil
	default:
		return Lanczos, fmt.Errorf("unknown resize filter %q", s)
	}
}

// ResizeImage scales img to exactly width x height pixels, ignoring the
// source aspect ratio.
func ResizeImage(img image.Image, width, height int, filter Filter) (image.Image, error) {
	if width <= 0 || height <= 0 {
		return nil, fmt.Errorf("invalid target size %dx%d", width, height)
	}
	bounds := img.Bounds()

	// Skip resize if already correct size
	if bounds.Dx() == width && bounds.Dy() == height {
		return img, nil
	}

	switch filter {
	case Lanczos:
		return resize.Resize(uint(width), uint(height), img, resize.Lanczos3), nil
	case Bilinear:
		return scale(img, width, height, draw.BiLinear), nil
	case Nearest:
		return scale(img, width, height, draw.NearestNeighbor), nil
	default:
		return nil, fmt.Errorf("unknown resize filter %v", filter)
	}
}

func scale(img image.Image, width, height int, s draw.Scaler) image.Image {
	dst := image.NewRGBA(image.Rect(0, 0, width, height))
	s.Scale(dst, dst.Bounds(), img, img.Bounds(), draw.Src, nil)
	return dst
}
