/*
Package csi provides CSI (Control Sequence Introducer) queries for terminal
font metrics.
*/
package csi

import (
	"errors"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/charmbracelet/x/ansi"
	"golang.org/x/term"
)

// QueryTimeout is the default timeout for CSI queries
const QueryTimeout = 100 * time.Millisecond

// ErrNoResponse is returned when the terminal does not answer a query in time.
var ErrNoResponse = errors.New("csi: no response from terminal")

// Query writes seq to the controlling terminal in raw mode and returns the
// first chunk of the reply. multiplexed wraps the query for tmux.
func Query(seq string, multiplexed bool, timeout time.Duration) (string, error) {
	if multiplexed {
		seq = ansi.TmuxPassthrough(seq)
	}

	tty, err := os.OpenFile("/dev/tty", os.O_RDWR, 0)
	if err != nil {
		return "", err
	}
	defer tty.Close()

	oldState, err := term.MakeRaw(int(tty.Fd()))
	if err != nil {
		return "", err
	}
	defer term.Restore(int(tty.Fd()), oldState)

	if _, err := tty.WriteString(seq); err != nil {
		return "", err
	}

	responseChan := make(chan string, 1)
	go func() {
		buf := make([]byte, 64)
		n, err := tty.Read(buf)
		if err != nil || n == 0 {
			responseChan <- ""
			return
		}
		responseChan <- string(buf[:n])
	}()

	select {
	case resp := <-responseChan:
		if resp == "" {
			return "", ErrNoResponse
		}
		return resp, nil
	case <-time.After(timeout):
		return "", ErrNoResponse
	}
}

// QueryCharacterCellSizeInPixels queries character cell size in pixels using CSI 16t
// returns: width and height in pixels per character, or 0,0,false if query fails
func QueryCharacterCellSizeInPixels(multiplexed bool) (width, height int, ok bool) {
	resp, err := Query(ansi.WindowOp(ansi.RequestCellSizeWinOp), multiplexed, QueryTimeout)
	if err != nil {
		return 0, 0, false
	}
	return ParseCellSizeResponse(resp)
}

// QueryTextAreaSizeInPixels queries text area size in pixels using CSI 14t
func QueryTextAreaSizeInPixels(multiplexed bool) (width, height int, ok bool) {
	resp, err := Query(ansi.WindowOp(ansi.RequestWindowSizeWinOp), multiplexed, QueryTimeout)
	if err != nil {
		return 0, 0, false
	}
	return ParseTextAreaResponse(resp)
}

// QueryFontSize derives the cell size from the text area size in pixels
// (CSI 14t) and the window size in cells.
func QueryFontSize(multiplexed bool) (fontWidth, fontHeight int, ok bool) {
	pixelWidth, pixelHeight, ok := QueryTextAreaSizeInPixels(multiplexed)
	if !ok {
		return 0, 0, false
	}
	cols, rows, err := term.GetSize(int(os.Stdout.Fd()))
	if err != nil || cols <= 0 || rows <= 0 {
		return 0, 0, false
	}

	fontWidth = pixelWidth / cols
	fontHeight = pixelHeight / rows

	// font sizes should be reasonable (between 4 and 50 pixels)
	if fontWidth < 4 || fontWidth > 50 || fontHeight < 4 || fontHeight > 50 {
		return 0, 0, false
	}
	return fontWidth, fontHeight, true
}

// ParseCellSizeResponse parses a CSI 16t reply: CSI 6 ; height ; width t
func ParseCellSizeResponse(response string) (width, height int, ok bool) {
	h, w, ok := parseWinOpReport(response, "6")
	return w, h, ok
}

// ParseTextAreaResponse parses a CSI 14t reply: CSI 4 ; height ; width t
func ParseTextAreaResponse(response string) (width, height int, ok bool) {
	h, w, ok := parseWinOpReport(response, "4")
	return w, h, ok
}

func parseWinOpReport(response, kind string) (first, second int, ok bool) {
	marker := "[" + kind + ";"
	start := strings.Index(response, marker)
	if start == -1 {
		return 0, 0, false
	}
	remaining := response[start+len(marker):]

	end := strings.IndexByte(remaining, 't')
	if end == -1 {
		return 0, 0, false
	}

	parts := strings.Split(remaining[:end], ";")
	if len(parts) < 2 {
		return 0, 0, false
	}
	a, err := strconv.Atoi(parts[0])
	if err != nil || a <= 0 {
		return 0, 0, false
	}
	b, err := strconv.Atoi(parts[1])
	if err != nil || b <= 0 {
		return 0, 0, false
	}
	return a, b, true
}

// QuerySupported checks if a terminal likely supports CSI queries
// This is a heuristic based on terminal type and environment
func QuerySupported(termProgram string) bool {
	if !term.IsTerminal(int(os.Stdin.Fd())) || !term.IsTerminal(int(os.Stdout.Fd())) {
		return false
	}
	switch termProgram {
	case "Apple_Terminal":
		// Apple Terminal often has CSI queries disabled for security
		return false
	case "vscode":
		// VS Code integrated terminal may not support all CSI queries
		return false
	}
	if os.Getenv("TERM") == "dumb" {
		return false
	}
	return true
}
