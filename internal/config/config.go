// Package config holds runtime configuration: defaults, the fixed encoding
// profile, environment overrides, CLI flags, and validation.
package config

import (
	"errors"
	"path/filepath"
	"runtime"
	"strings"
)

// ColorMode controls ANSI color output.
type ColorMode string

const (
	ColorAuto   ColorMode = "auto"   // Enable colors when stdout is a TTY (default).
	ColorAlways ColorMode = "always" // Force colors on.
	ColorNever  ColorMode = "never"  // Disable colors entirely.
)

// Profile is the fixed Opus encoding profile. The device decodes mono 24 kHz
// Opus only, so none of these values are exposed as flags.
type Profile struct {
	Codec            string // ffmpeg audio encoder name.
	Bitrate          string // Target bitrate in ffmpeg notation.
	Channels         int
	SampleRate       int
	VBR              string // libopus -vbr mode.
	CompressionLevel int    // 0 (fast) .. 10 (smallest).
	Overwrite        bool   // Pass -y to ffmpeg.
}

// DeviceProfile returns the profile the SD music player expects.
func DeviceProfile() Profile {
	return Profile{
		Codec:            "libopus",
		Bitrate:          "32k",
		Channels:         1,
		SampleRate:       24000,
		VBR:              "on",
		CompressionLevel: 10,
		Overwrite:        true,
	}
}

// Config holds all runtime settings. It is populated by [DefaultConfig],
// overlaid by [LoadEnv] and the CLI flags, and then passed by pointer to the
// packages that need it.
type Config struct {
	// Paths (relative to the working directory unless absolute).
	InputDir  string // Default: "music".
	OutputDir string // Default: "output".

	// Encoder location.
	Encoder        string // Explicit ffmpeg path; empty means auto-locate.
	BundledEncoder string // Portable copy preferred over PATH when present.

	// Files.
	Extensions []string // Recognized input extensions, lowercase with leading dot.
	OutputExt  string   // Fixed: ".ogg".

	// Encoding.
	Profile           Profile
	DeviceMaxFileSize int64 // Largest file the player will load (5 MiB).
	KeepPartial       bool  // Leave the output of a failed conversion in place.

	// Display and logging.
	Verbose   bool
	ColorMode ColorMode // Default: "auto".
	LogFile   string    // Optional log file path.
	CheckOnly bool      // Run --check diagnostics and exit.
}

// DefaultConfig returns a Config with the stock layout: music/ in, output/
// out, bundled ffmpeg under ffmpeg/bin.
func DefaultConfig() Config {
	return Config{
		InputDir:          "music",
		OutputDir:         "output",
		BundledEncoder:    bundledEncoderPath(runtime.GOOS),
		Extensions:        []string{".mp3", ".wav", ".flac", ".m4a", ".aac", ".wma", ".ogg"},
		OutputExt:         ".ogg",
		Profile:           DeviceProfile(),
		DeviceMaxFileSize: 5 * 1024 * 1024,
		ColorMode:         ColorAuto,
	}
}

func bundledEncoderPath(goos string) string {
	p := filepath.Join("ffmpeg", "bin", "ffmpeg")
	if goos == "windows" {
		p += ".exe"
	}
	return p
}

// NormalizeDirArg strips trailing slashes from a directory path.
// The filesystem root "/" is returned unchanged so we don't produce an empty string.
func NormalizeDirArg(path string) string {
	if path == "/" {
		return "/"
	}
	return strings.TrimRight(path, "/")
}

// IsRecognized reports whether name has one of the configured input
// extensions, compared case-insensitively.
func (c *Config) IsRecognized(name string) bool {
	ext := strings.ToLower(filepath.Ext(name))
	for _, e := range c.Extensions {
		if ext == e {
			return true
		}
	}
	return false
}

// Validate checks the color mode and, outside CheckOnly mode, that both
// directories are set and distinct.
func (c *Config) Validate() error {
	switch c.ColorMode {
	case ColorAuto, ColorAlways, ColorNever:
		// valid
	default:
		return errors.New("invalid color mode (use 'auto', 'always' or 'never')")
	}

	if len(c.Extensions) == 0 {
		return errors.New("no input extensions configured")
	}

	if c.CheckOnly {
		return nil
	}
	if c.InputDir == "" || c.OutputDir == "" {
		return errors.New("input and output directories must not be empty")
	}
	if filepath.Clean(c.InputDir) == filepath.Clean(c.OutputDir) {
		return errors.New("output directory must differ from input directory")
	}
	return nil
}

// ValidatePaths ensures the resolved output directory is not the resolved
// input directory; converting .ogg inputs in place would make ffmpeg read and
// write the same file. Discovery is not recursive, so a nested output
// directory is fine. Both arguments must be absolute, symlink-resolved paths.
func (c *Config) ValidatePaths(inputAbs, outputAbs string) error {
	if inputAbs == outputAbs {
		return errors.New("output directory resolves to the input directory")
	}
	return nil
}
