package rice

import "fmt"

// ITerm2Sequence frames image data as an OSC 1337 inline image sized in
// cells, so the terminal performs no scaling of its own:
//
//	ESC ] 1337 ; File=inline=1;width=W;height=H;preserveAspectRatio=0:<base64> BEL
func ITerm2Sequence(data []byte, fp Footprint) string {
	return fmt.Sprintf("\x1b]1337;File=inline=1;width=%d;height=%d;preserveAspectRatio=0:%s\a",
		fp.Width, fp.Height, Base64Encode(data))
}
