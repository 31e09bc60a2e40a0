package rice

import (
	"bytes"
	"encoding/base64"
	"errors"
	"fmt"
	"image/png"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// decodePlacement reassembles the PNG carried by Kitty or iTerm2 sequences.
func decodePlacement(t *testing.T, p Protocol, seqs []string) []byte {
	t.Helper()
	var b64 strings.Builder
	switch p {
	case Kitty:
		for _, seq := range seqs {
			_, payload := kittyPayload(t, seq)
			b64.WriteString(payload)
		}
	case ITerm2:
		require.Len(t, seqs, 1)
		_, payload, ok := strings.Cut(seqs[0], ":")
		require.True(t, ok)
		b64.WriteString(strings.TrimSuffix(payload, "\a"))
	default:
		t.Fatalf("no payload for %v", p)
	}
	raw, err := base64.StdEncoding.DecodeString(b64.String())
	require.NoError(t, err)
	return raw
}

func TestEncodeDimensions(t *testing.T) {
	metrics := []CellMetrics{{8, 16}, {7, 14}, {10, 21}, {9, 18}}
	sources := [][2]int{{1, 1}, {64, 64}, {300, 120}, {50, 400}}

	for _, p := range []Protocol{Kitty, ITerm2} {
		for _, m := range metrics {
			for _, src := range sources {
				name := fmt.Sprintf("%v/%dx%d/%dx%d", p, m.Width, m.Height, src[0], src[1])
				t.Run(name, func(t *testing.T) {
					img := RasterImage{Image: createTestImage(src[0], src[1]), Width: src[0], Height: src[1]}
					fp := PlanFootprint(img)
					enc := Encoder{Metrics: m, Filter: Bilinear}

					seqs, err := enc.Encode(img, p, fp)
					require.NoError(t, err)

					cfg, err := png.DecodeConfig(bytes.NewReader(decodePlacement(t, p, seqs)))
					require.NoError(t, err)
					assert.Equal(t, fp.Width*m.Width, cfg.Width)
					assert.Equal(t, fp.Height*m.Height, cfg.Height)
				})
			}
		}
	}
}

func TestITerm2Sequence(t *testing.T) {
	seq := ITerm2Sequence([]byte("png"), Footprint{Width: 30, Height: 15})
	assert.Equal(t, "\x1b]1337;File=inline=1;width=30;height=15;preserveAspectRatio=0:cG5n\a", seq)
}

func TestEncodeErrors(t *testing.T) {
	img := RasterImage{Image: createTestImage(4, 4), Width: 4, Height: 4}
	fp := PlanFootprint(img)

	_, err := Encoder{}.Encode(img, None, fp)
	assert.ErrorIs(t, err, ErrNoProtocol)

	_, err = Encoder{}.Encode(img, Protocol(9), fp)
	assert.ErrorIs(t, err, ErrNoProtocol)

	_, err = Encoder{}.Encode(RasterImage{}, Kitty, fp)
	assert.ErrorIs(t, err, ErrImageEncode)

	_, err = Encoder{Filter: Filter(7)}.Encode(img, ITerm2, fp)
	assert.ErrorIs(t, err, ErrImageEncode)
	assert.False(t, errors.Is(err, ErrImageDecode))
}

func TestEncoderPixelSizeDefaults(t *testing.T) {
	w, h := Encoder{}.PixelSize(Footprint{Width: 30, Height: 15})
	assert.Equal(t, 240, w)
	assert.Equal(t, 240, h)
}
