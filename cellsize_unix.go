//go:build unix

package rice

import (
	"os"

	"golang.org/x/sys/unix"
)

// winsizeCellMetrics derives the cell size from TIOCGWINSZ on stdout.
// Many terminals report zero pixel sizes; those are treated as unknown.
func winsizeCellMetrics() (CellMetrics, bool) {
	ws, err := unix.IoctlGetWinsize(int(os.Stdout.Fd()), unix.TIOCGWINSZ)
	if err != nil || ws.Col == 0 || ws.Row == 0 || ws.Xpixel == 0 || ws.Ypixel == 0 {
		return CellMetrics{}, false
	}
	m := CellMetrics{
		Width:  int(ws.Xpixel) / int(ws.Col),
		Height: int(ws.Ypixel) / int(ws.Row),
	}
	return m, m.Valid()
}
