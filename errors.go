package rice

import (
	"errors"
	"fmt"
)

var (
	// ErrNoProtocol is returned when encoding is requested for None.
	ErrNoProtocol = errors.New("no graphics protocol")
	// ErrImageDecode wraps failures to open or decode an image file.
	ErrImageDecode = errors.New("image decode failed")
	// ErrImageEncode wraps failures to resize or re-encode an image.
	ErrImageEncode = errors.New("image encode failed")
)

// Stage is the render step an image failure happened in.
type Stage int

const (
	StageResolve Stage = iota
	StageEncode
)

func (s Stage) String() string {
	switch s {
	case StageResolve:
		return "resolve"
	case StageEncode:
		return "encode"
	default:
		return fmt.Sprintf("Stage(%d)", int(s))
	}
}

// FallbackError records why a raster render degraded to ASCII art.
// It never aborts a render.
type FallbackError struct {
	Stage Stage
	Err   error
}

func (e *FallbackError) Error() string {
	return fmt.Sprintf("image %s: %v", e.Stage, e.Err)
}

func (e *FallbackError) Unwrap() error {
	return e.Err
}
