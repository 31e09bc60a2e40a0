package rice

import (
	"os"
	"strings"
)

// EnvProtocolOverride forces a protocol ("kitty", "iterm2" or "none") and
// takes precedence over both the configuration and the terminal indicators.
const EnvProtocolOverride = "RICE_IMAGE_PROTOCOL"

// LookupFunc resolves an environment variable, like os.LookupEnv.
type LookupFunc func(key string) (string, bool)

// Environment is the terminal capability snapshot taken once per render.
type Environment struct {
	// Protocol is the graphics protocol of the (outer) terminal.
	Protocol Protocol
	// Multiplexed is set inside tmux: every graphics sequence must then be
	// wrapped in the passthrough envelope.
	Multiplexed bool
	// TermProgram names the terminal emulator when known, used to pick
	// fallback cell metrics.
	TermProgram string
}

// DetectEnvironment inspects environment variables only; it never writes to
// or reads from the terminal. override is the configured protocol name
// ("auto" or empty to detect). An unrecognized environment resolves to None.
func DetectEnvironment(lookup LookupFunc, override string) Environment {
	if lookup == nil {
		lookup = os.LookupEnv
	}
	get := func(key string) string {
		v, _ := lookup(key)
		return v
	}

	env := Environment{
		Multiplexed: get("TMUX") != "" || get("TERM_PROGRAM") == "tmux",
		TermProgram: termProgram(get),
	}

	if p, ok := forcedProtocol(get(EnvProtocolOverride)); ok {
		env.Protocol = p
		return env
	}
	if p, ok := forcedProtocol(override); ok {
		env.Protocol = p
		return env
	}

	switch {
	case kittyIndicated(get):
		env.Protocol = Kitty
	case iterm2Indicated(get):
		env.Protocol = ITerm2
	default:
		env.Protocol = None
	}
	return env
}

// DetectProtocol is DetectEnvironment(os.LookupEnv, "").Protocol.
func DetectProtocol() Protocol {
	return DetectEnvironment(os.LookupEnv, "").Protocol
}

func forcedProtocol(name string) (Protocol, bool) {
	if name == "" || strings.EqualFold(name, "auto") {
		return None, false
	}
	p, err := ParseProtocol(name)
	if err != nil {
		return None, false
	}
	return p, true
}

func kittyIndicated(get func(string) string) bool {
	switch {
	case get("KITTY_WINDOW_ID") != "":
		return true
	case strings.Contains(strings.ToLower(get("TERM")), "kitty"):
		return true
	case get("TERM_PROGRAM") == "ghostty":
		return true
	case get("GHOSTTY_RESOURCES_DIR") != "":
		return true
	case get("TERM_PROGRAM") == "WezTerm":
		return true
	default:
		return false
	}
}

func iterm2Indicated(get func(string) string) bool {
	switch {
	case get("TERM_PROGRAM") == "iTerm.app":
		return true
	case strings.Contains(strings.ToLower(get("LC_TERMINAL")), "iterm"):
		return true
	case get("ITERM_SESSION_ID") != "":
		return true
	default:
		return false
	}
}

// termProgram names the outer terminal. Inside tmux TERM_PROGRAM says "tmux",
// so LC_TERMINAL and the terminal specific variables are consulted instead.
func termProgram(get func(string) string) string {
	if tp := get("TERM_PROGRAM"); tp != "" && tp != "tmux" && tp != "screen" {
		return tp
	}
	switch {
	case get("LC_TERMINAL") != "":
		return get("LC_TERMINAL")
	case get("KITTY_WINDOW_ID") != "":
		return "kitty"
	case get("GHOSTTY_RESOURCES_DIR") != "":
		return "ghostty"
	case get("ITERM_SESSION_ID") != "":
		return "iTerm.app"
	}
	return get("TERM")
}
