package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/adrg/xdg"
	"github.com/jorgegonzalez/rice"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseDefaults(t *testing.T) {
	cfg, err := Parse(nil)
	require.NoError(t, err)

	assert.True(t, cfg.Display.ShowLogo)
	assert.True(t, cfg.Display.ColorValues)
	assert.False(t, cfg.Display.ShowColorsLabel)
	assert.Equal(t, 2, cfg.Display.Gap)
	assert.Equal(t, "bright_green", cfg.Display.FieldColors["userhost"])
	assert.Equal(t, "userhost", cfg.Info.Fields[0])
	assert.Equal(t, "colors", cfg.Info.Fields[len(cfg.Info.Fields)-1])
	assert.Empty(t, cfg.Info.CustomCommands)
	assert.Equal(t, rice.SourceAuto, cfg.ASCIIArt.Source)
	assert.True(t, cfg.ASCIIArt.AutoDetect)
	assert.Equal(t, rice.Lanczos, cfg.Filter())
	assert.Equal(t, "auto", cfg.Image.Protocol)

	d, err := cfg.Timeout()
	require.NoError(t, err)
	assert.Equal(t, 2*time.Second, d)
}

func TestParseOverrides(t *testing.T) {
	cfg, err := Parse([]byte(`
[display]
gap = 4
show_colors_label = true

[display.field_colors]
os = "red"

[info]
fields = ["os", "git_branch"]
command_timeout = "500ms"

[info.custom_commands]
git_branch = "git branch --show-current"

[ascii_art]
source = "Builtin"
builtin = "arch"

[image]
filter = "nearest"
protocol = "kitty"
`))
	require.NoError(t, err)

	assert.Equal(t, 4, cfg.Display.Gap)
	assert.True(t, cfg.Display.ShowColorsLabel)
	assert.Equal(t, "red", cfg.Display.FieldColors["os"])
	// untouched keys keep their defaults
	assert.Equal(t, "magenta", cfg.Display.FieldColors["kernel"])
	assert.Equal(t, []string{"os", "git_branch"}, cfg.Info.Fields)
	assert.Equal(t, "git branch --show-current", cfg.Info.CustomCommands["git_branch"])
	assert.Equal(t, rice.SourceBuiltin, cfg.ASCIIArt.Source)
	assert.Equal(t, rice.Nearest, cfg.Filter())
	assert.Equal(t, "kitty", cfg.Image.Protocol)

	art := cfg.ArtConfig()
	assert.Equal(t, "arch", art.Builtin)
	assert.True(t, art.AutoDetect)

	d, err := cfg.Timeout()
	require.NoError(t, err)
	assert.Equal(t, 500*time.Millisecond, d)
}

func TestParseInvalid(t *testing.T) {
	tests := []struct {
		name string
		toml string
	}{
		{"syntax", "[display\nshow_logo = true"},
		{"source", "[ascii_art]\nsource = \"sixel\""},
		{"filter", "[image]\nfilter = \"cubic\""},
		{"protocol", "[image]\nprotocol = \"sixel\""},
		{"gap", "[display]\ngap = 0"},
		{"timeout", "[info]\ncommand_timeout = \"soon\""},
		{"negative timeout", "[info]\ncommand_timeout = \"-1s\""},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Parse([]byte(tt.toml))
			assert.Error(t, err)
		})
	}
}

func TestParseExpandsHome(t *testing.T) {
	home, err := os.UserHomeDir()
	require.NoError(t, err)

	cfg, err := Parse([]byte("[ascii_art]\nsource = \"image\"\npath = \"~/pics/logo.png\""))
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(home, "pics/logo.png"), cfg.ASCIIArt.Path)
}

func TestLoadCustomPath(t *testing.T) {
	dir := t.TempDir()

	_, err := Load(filepath.Join(dir, "missing.toml"))
	assert.ErrorIs(t, err, ErrNotFound)

	path := filepath.Join(dir, "rice.toml")
	require.NoError(t, os.WriteFile(path, []byte("[display]\nshow_logo = false\n"), 0o644))

	cfg, err := Load(path)
	require.NoError(t, err)
	assert.False(t, cfg.Display.ShowLogo)
	assert.True(t, cfg.Display.ColorValues)
}

func TestLoadCreatesDefault(t *testing.T) {
	dir := t.TempDir()
	// registered first so it runs after the environment is restored
	t.Cleanup(xdg.Reload)
	t.Setenv("XDG_CONFIG_HOME", dir)
	xdg.Reload()

	cfg, err := Load("")
	require.NoError(t, err)
	assert.True(t, cfg.Display.ShowLogo)

	path := filepath.Join(dir, "rice", "config.toml")
	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, DefaultTOML, data)

	// a second load reads the user's edits
	require.NoError(t, os.WriteFile(path, []byte("[display]\ngap = 3\n"), 0o644))
	cfg, err = Load("")
	require.NoError(t, err)
	assert.Equal(t, 3, cfg.Display.Gap)
}

func TestUnknownFieldColors(t *testing.T) {
	cfg, err := Parse([]byte(`
[display.field_colors]
os = "purple"
kernel = "Bright_Red"
cpu = "teal"
`))
	require.NoError(t, err)
	assert.Equal(t, []string{"cpu", "os"}, cfg.UnknownFieldColors())

	cfg, err = Parse(nil)
	require.NoError(t, err)
	assert.Empty(t, cfg.UnknownFieldColors())
}

func TestUnknownFields(t *testing.T) {
	cfg, err := Parse([]byte(`
[info]
fields = ["userhost", "weather", "os", "gpu", "colors"]

[info.custom_commands]
weather = "curl -s wttr.in"
`))
	require.NoError(t, err)
	assert.Equal(t, []string{"gpu"}, cfg.UnknownFields())

	cfg, err = Parse(nil)
	require.NoError(t, err)
	assert.Empty(t, cfg.UnknownFields())
}
