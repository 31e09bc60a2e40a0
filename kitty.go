package rice

import (
	"fmt"

	"github.com/charmbracelet/x/ansi"
)

// KittySequences frames PNG data as Kitty graphics transmissions.
//
// The first chunk carries the full control data (transmit and display a PNG
// over fp cells without moving the cursor, quietly); later chunks only carry
// m. Every chunk but the last has m=1.
func KittySequences(pngData []byte, fp Footprint) []string {
	chunks := ChunkedBase64Encode(pngData, base64ChunkSize)
	seqs := make([]string, 0, len(chunks))

	for i, chunk := range chunks {
		more := "m=1"
		if i == len(chunks)-1 {
			more = "m=0"
		}
		var opts []string
		if i == 0 {
			opts = []string{
				"a=T",
				"f=100",
				fmt.Sprintf("c=%d", fp.Width),
				fmt.Sprintf("r=%d", fp.Height),
				"C=1",
				"q=2",
			}
		}
		opts = append(opts, more)
		seqs = append(seqs, ansi.KittyGraphics([]byte(chunk), opts...))
	}
	return seqs
}
