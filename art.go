package rice

import (
	"embed"
	"errors"
	"fmt"
	"image"
	_ "image/gif"
	_ "image/jpeg"
	_ "image/png"
	"os"
	"path"
	"runtime"
	"sort"
	"strings"

	"github.com/apex/log"
	"github.com/jorgegonzalez/rice/pkg/osrelease"
	_ "golang.org/x/image/bmp"
	_ "golang.org/x/image/tiff"
	_ "golang.org/x/image/webp"
)

//go:embed logos/*.txt
var logoFS embed.FS

// DefaultLogo is the builtin used when nothing more specific applies.
const DefaultLogo = "default"

// ArtBlock is the art printed left of the info lines: AsciiArt or RasterImage.
type ArtBlock interface {
	artBlock()
}

// AsciiArt is a block of text lines that may carry SGR color sequences.
type AsciiArt struct {
	Lines []string
}

// RasterImage is a decoded image with its natural pixel size.
type RasterImage struct {
	Image  image.Image
	Width  int
	Height int
	Path   string
}

func (AsciiArt) artBlock()    {}
func (RasterImage) artBlock() {}

// Art sources accepted in ArtConfig.Source.
const (
	SourceAuto    = "auto"
	SourceBuiltin = "builtin"
	SourceFile    = "file"
	SourceImage   = "image"
	SourceNone    = "none"
)

// ArtConfig selects the art block.
type ArtConfig struct {
	Source     string
	Path       string
	Builtin    string
	AutoDetect bool
	// OSName overrides OS auto-detection; empty means detect.
	OSName string
}

// ResolveArt picks the art for one render. A nil block means no art at all.
//
// A raster image is only loaded when imagePath is set (or the source is
// "image") and env supports a graphics protocol; otherwise the builtin
// ASCII art is used. Image load failures are returned as a *FallbackError
// together with nil art so the caller can take the ASCII path.
func ResolveArt(cfg ArtConfig, imagePath string, env Environment, logger log.Interface) (ArtBlock, error) {
	if logger == nil {
		logger = log.Log
	}
	if imagePath == "" && cfg.Source == SourceImage {
		imagePath = cfg.Path
	}

	if imagePath != "" {
		if !env.Protocol.Supported() {
			logger.WithField("path", imagePath).Debug("no graphics protocol, using ASCII art")
			return FallbackArt(cfg), nil
		}
		img, err := LoadImage(imagePath)
		if err != nil {
			return nil, &FallbackError{Stage: StageResolve, Err: err}
		}
		return img, nil
	}

	switch cfg.Source {
	case SourceNone:
		return nil, nil
	case SourceFile:
		if cfg.Path == "" {
			return builtinArt(DefaultLogo), nil
		}
		lines, err := readArtFile(cfg.Path)
		if err != nil {
			logger.WithError(err).WithField("path", cfg.Path).Warn("could not read ASCII art file, using builtin")
			return FallbackArt(cfg), nil
		}
		return AsciiArt{Lines: lines}, nil
	default:
		return FallbackArt(cfg), nil
	}
}

// FallbackArt is the builtin ASCII art selected by cfg: the named builtin for
// the "builtin" source, the OS logo when auto-detection is on, else default.
func FallbackArt(cfg ArtConfig) AsciiArt {
	if cfg.Source == SourceBuiltin && cfg.Builtin != "" {
		return builtinArt(cfg.Builtin)
	}
	if cfg.AutoDetect {
		osName := cfg.OSName
		if osName == "" {
			osName = DetectOSName()
		}
		return builtinArt(LogoForOS(osName))
	}
	return builtinArt(DefaultLogo)
}

// LoadImage reads and decodes an image file (PNG, JPEG, GIF, WebP, BMP, TIFF).
func LoadImage(path string) (RasterImage, error) {
	f, err := os.Open(ExpandHome(path))
	if err != nil {
		return RasterImage{}, fmt.Errorf("%w: %w", ErrImageDecode, err)
	}
	defer f.Close()

	img, _, err := image.Decode(f)
	if err != nil {
		return RasterImage{}, fmt.Errorf("%w: %s: %w", ErrImageDecode, path, err)
	}
	b := img.Bounds()
	if b.Dx() <= 0 || b.Dy() <= 0 {
		return RasterImage{}, fmt.Errorf("%w: %s: empty image", ErrImageDecode, path)
	}
	return RasterImage{Image: img, Width: b.Dx(), Height: b.Dy(), Path: path}, nil
}

// Logos lists the builtin logo names.
func Logos() []string {
	entries, _ := logoFS.ReadDir("logos")
	names := make([]string, 0, len(entries))
	for _, e := range entries {
		names = append(names, strings.TrimSuffix(e.Name(), ".txt"))
	}
	sort.Strings(names)
	return names
}

// Logo returns a builtin logo by name.
func Logo(name string) (AsciiArt, bool) {
	data, err := logoFS.ReadFile(path.Join("logos", name+".txt"))
	if err != nil {
		return AsciiArt{}, false
	}
	return AsciiArt{Lines: splitLines(string(data))}, true
}

// builtinArt falls back to the default logo for unknown names.
func builtinArt(name string) AsciiArt {
	if art, ok := Logo(strings.ToLower(name)); ok {
		return art
	}
	art, _ := Logo(DefaultLogo)
	return art
}

// LogoForOS maps an OS name onto a builtin logo by substring.
func LogoForOS(osName string) string {
	name := strings.ToLower(osName)
	switch {
	case strings.Contains(name, "mac"), strings.Contains(name, "darwin"):
		return "macos"
	case strings.Contains(name, "ubuntu"):
		return "ubuntu"
	case strings.Contains(name, "arch"):
		return "arch"
	case strings.Contains(name, "debian"):
		return "debian"
	case strings.Contains(name, "fedora"):
		return "fedora"
	case strings.Contains(name, "linux"):
		return "linux"
	default:
		return DefaultLogo
	}
}

// DetectOSName returns the os-release ID (and NAME) on Linux, else GOOS.
func DetectOSName() string {
	if runtime.GOOS != "linux" {
		return runtime.GOOS
	}
	kv, err := osrelease.Read()
	if err != nil {
		return runtime.GOOS
	}
	id, name := kv["ID"], kv["NAME"]
	if id == "" && name == "" {
		return runtime.GOOS
	}
	return strings.TrimSpace(id + " " + name + " linux")
}

func readArtFile(p string) ([]string, error) {
	data, err := os.ReadFile(ExpandHome(p))
	if err != nil {
		return nil, err
	}
	lines := splitLines(string(data))
	if len(lines) == 0 {
		return nil, errors.New("empty ASCII art file")
	}
	return lines, nil
}

func splitLines(s string) []string {
	s = strings.ReplaceAll(s, "\r\n", "\n")
	s = strings.TrimRight(s, "\n")
	if s == "" {
		return nil
	}
	return strings.Split(s, "\n")
}

// ExpandHome expands a leading "~" to the user's home directory.
func ExpandHome(p string) string {
	if p == "~" || strings.HasPrefix(p, "~/") {
		home, err := os.UserHomeDir()
		if err != nil {
			return p
		}
		return home + p[1:]
	}
	return p
}
