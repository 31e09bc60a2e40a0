package rice

import (
	"errors"
	"image/png"
	"os"
	"path/filepath"
	"runtime"
	"testing"

	"github.com/apex/log"
	"github.com/apex/log/handlers/discard"
	"github.com/jorgegonzalez/rice/pkg/osrelease"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var quiet = &log.Logger{Handler: discard.Default, Level: log.DebugLevel}

func writeTestPNG(t *testing.T, width, height int) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "logo.png")
	f, err := os.Create(path)
	require.NoError(t, err)
	defer f.Close()
	require.NoError(t, png.Encode(f, createTestImage(width, height)))
	return path
}

func TestLogos(t *testing.T) {
	assert.Equal(t, []string{"arch", "debian", "default", "fedora", "linux", "macos", "ubuntu"}, Logos())
	for _, name := range Logos() {
		art, ok := Logo(name)
		require.True(t, ok, name)
		assert.NotEmpty(t, art.Lines, name)
		for _, line := range art.Lines {
			assert.NotContains(t, line, "\r")
		}
	}
	_, ok := Logo("beos")
	assert.False(t, ok)
}

func TestLogoForOS(t *testing.T) {
	tests := map[string]string{
		"darwin":                    "macos",
		"macOS 14.2":                "macos",
		"ubuntu Ubuntu linux":       "ubuntu",
		"arch Arch Linux linux":     "arch",
		"debian Debian GNU/Linux":   "debian",
		"fedora Fedora Linux linux": "fedora",
		"alpine Alpine Linux linux": "linux",
		"freebsd":                   "default",
		"":                          "default",
	}
	for osName, want := range tests {
		t.Run(osName, func(t *testing.T) {
			assert.Equal(t, want, LogoForOS(osName))
		})
	}
}

func TestFallbackArt(t *testing.T) {
	arch, _ := Logo("arch")
	def, _ := Logo(DefaultLogo)
	mac, _ := Logo("macos")

	assert.Equal(t, arch, FallbackArt(ArtConfig{Source: SourceBuiltin, Builtin: "arch"}))
	assert.Equal(t, def, FallbackArt(ArtConfig{Source: SourceBuiltin, Builtin: "nonexistent"}))
	assert.Equal(t, mac, FallbackArt(ArtConfig{Source: SourceAuto, AutoDetect: true, OSName: "darwin"}))
	assert.Equal(t, def, FallbackArt(ArtConfig{Source: SourceAuto}))
}

func TestResolveArt(t *testing.T) {
	kitty := Environment{Protocol: Kitty}
	none := Environment{Protocol: None}
	imgPath := writeTestPNG(t, 64, 32)

	artFile := filepath.Join(t.TempDir(), "art.txt")
	require.NoError(t, os.WriteFile(artFile, []byte(" /\\\n/  \\\r\n----\n"), 0o644))

	t.Run("image with protocol", func(t *testing.T) {
		art, err := ResolveArt(ArtConfig{Source: SourceAuto}, imgPath, kitty, quiet)
		require.NoError(t, err)
		img, ok := art.(RasterImage)
		require.True(t, ok)
		assert.Equal(t, 64, img.Width)
		assert.Equal(t, 32, img.Height)
	})

	t.Run("image source from config", func(t *testing.T) {
		art, err := ResolveArt(ArtConfig{Source: SourceImage, Path: imgPath}, "", kitty, quiet)
		require.NoError(t, err)
		assert.IsType(t, RasterImage{}, art)
	})

	t.Run("image without protocol uses ASCII", func(t *testing.T) {
		art, err := ResolveArt(ArtConfig{Source: SourceBuiltin, Builtin: "debian"}, imgPath, none, quiet)
		require.NoError(t, err)
		debian, _ := Logo("debian")
		assert.Equal(t, debian, art)
	})

	t.Run("missing image", func(t *testing.T) {
		art, err := ResolveArt(ArtConfig{}, filepath.Join(t.TempDir(), "nope.png"), kitty, quiet)
		assert.Nil(t, art)
		var fe *FallbackError
		require.True(t, errors.As(err, &fe))
		assert.Equal(t, StageResolve, fe.Stage)
		assert.ErrorIs(t, err, ErrImageDecode)
		assert.ErrorIs(t, err, os.ErrNotExist)
	})

	t.Run("corrupt image", func(t *testing.T) {
		bad := filepath.Join(t.TempDir(), "bad.png")
		require.NoError(t, os.WriteFile(bad, []byte("not an image"), 0o644))
		_, err := ResolveArt(ArtConfig{}, bad, kitty, quiet)
		assert.ErrorIs(t, err, ErrImageDecode)
	})

	t.Run("none source", func(t *testing.T) {
		art, err := ResolveArt(ArtConfig{Source: SourceNone}, "", kitty, quiet)
		require.NoError(t, err)
		assert.Nil(t, art)
	})

	t.Run("file source", func(t *testing.T) {
		art, err := ResolveArt(ArtConfig{Source: SourceFile, Path: artFile}, "", none, quiet)
		require.NoError(t, err)
		assert.Equal(t, AsciiArt{Lines: []string{" /\\", "/  \\", "----"}}, art)
	})

	t.Run("unreadable file source falls back to builtin", func(t *testing.T) {
		art, err := ResolveArt(ArtConfig{Source: SourceFile, Path: "/does/not/exist"}, "", none, quiet)
		require.NoError(t, err)
		def, _ := Logo(DefaultLogo)
		assert.Equal(t, def, art)
	})

	t.Run("builtin lines are returned unmodified", func(t *testing.T) {
		art, err := ResolveArt(ArtConfig{Source: SourceBuiltin, Builtin: "ubuntu"}, "", kitty, quiet)
		require.NoError(t, err)
		ubuntu, _ := Logo("ubuntu")
		assert.Equal(t, ubuntu, art)
	})
}

func TestExpandHome(t *testing.T) {
	home, err := os.UserHomeDir()
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(home, "logo.png"), ExpandHome("~/logo.png"))
	assert.Equal(t, home, ExpandHome("~"))
	assert.Equal(t, "/abs/logo.png", ExpandHome("/abs/logo.png"))
	assert.Equal(t, "~user/x", ExpandHome("~user/x"))
}

func TestDetectOSName(t *testing.T) {
	if runtime.GOOS != "linux" {
		assert.Equal(t, runtime.GOOS, DetectOSName())
		return
	}
	path := filepath.Join(t.TempDir(), "os-release")
	require.NoError(t, os.WriteFile(path, []byte("PRETTY_NAME=\"Ubuntu 24.04 LTS\"\nNAME=\"Ubuntu\"\nID=ubuntu\n"), 0o644))

	saved := osrelease.Paths
	t.Cleanup(func() { osrelease.Paths = saved })

	osrelease.Paths = []string{path}
	assert.Equal(t, "ubuntu Ubuntu linux", DetectOSName())
	assert.Equal(t, "ubuntu", LogoForOS(DetectOSName()))

	osrelease.Paths = []string{filepath.Join(t.TempDir(), "missing")}
	assert.Equal(t, "linux", DetectOSName())
}
