package rice

import (
	"fmt"
	"strings"
)

// Protocol is the inline graphics protocol understood by the attached terminal.
type Protocol int

const (
	// None means no graphics protocol: art is always rendered as ASCII.
	None Protocol = iota
	// ITerm2 is the OSC 1337 inline image protocol.
	ITerm2
	// Kitty is the APC based Kitty graphics protocol.
	Kitty
)

func (p Protocol) String() string {
	switch p {
	case None:
		return "None"
	case ITerm2:
		return "iTerm2"
	case Kitty:
		return "Kitty"
	default:
		return fmt.Sprintf("Protocol(%d)", int(p))
	}
}

// Supported reports whether p can display raster images.
func (p Protocol) Supported() bool {
	switch p {
	case ITerm2, Kitty:
		return true
	case None:
		return false
	default:
		return false
	}
}

// ParseProtocol parses a protocol name as used in the configuration file
// and the RICE_IMAGE_PROTOCOL environment variable. "auto" is not a protocol
// and is rejected; callers handle it before parsing.
func ParseProtocol(s string) (Protocol, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "none", "ascii", "off":
		return None, nil
	case "iterm2", "iterm":
		return ITerm2, nil
	case "kitty":
		return Kitty, nil
	default:
		return None, fmt.Errorf("unknown image protocol %q", s)
	}
}
