// Package check locates ffmpeg, gates a run on it being usable (VerifyEncoder),
// and provides the --check diagnostics (RunCheck).
package check

import (
	"context"
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/backmassage/opuspack/internal/config"
	"github.com/backmassage/opuspack/internal/ffmpeg"
)

// Sentinel errors returned by VerifyEncoder and RunCheck.
var (
	ErrEncoderNotFound = errors.New("ffmpeg not found")
	ErrEncoderUnusable = errors.New("ffmpeg found but -version failed")
	ErrNoOpusEncoder   = errors.New("ffmpeg has no libopus encoder")
)

// Logger is the minimal logging interface needed by this package.
// Defined here (rather than importing the logging package) so that check
// remains dependency-light and testable with a mock logger.
type Logger interface {
	Info(string, ...interface{})
	Success(string, ...interface{})
	Warn(string, ...interface{})
	Error(string, ...interface{})
	Debug(bool, string, ...interface{})
}

// Commander runs a program and returns its standard output.
// [ffmpeg.ExecRunner] implements it.
type Commander interface {
	Output(ctx context.Context, name string, args ...string) ([]byte, error)
}

// Source says where the encoder came from.
type Source int

const (
	SourceSystem   Source = iota // Resolved from PATH.
	SourceBundled                // Portable copy under the working directory.
	SourceExplicit               // --ffmpeg flag or OPUSPACK_FFMPEG.
)

func (s Source) String() string {
	switch s {
	case SourceBundled:
		return "local FFmpeg (portable)"
	case SourceExplicit:
		return "configured FFmpeg"
	default:
		return "system FFmpeg"
	}
}

// Encoder identifies the ffmpeg executable to run.
type Encoder struct {
	Path   string
	Source Source
}

// LocateEncoder picks the encoder: an explicitly configured path first, then
// the bundled copy if it exists as a regular file, then plain "ffmpeg" for
// the OS to resolve from PATH. It never fails; a missing encoder is detected
// by VerifyEncoder.
func LocateEncoder(cfg *config.Config) Encoder {
	if cfg.Encoder != "" {
		return Encoder{Path: cfg.Encoder, Source: SourceExplicit}
	}
	if cfg.BundledEncoder != "" {
		if fi, err := os.Stat(cfg.BundledEncoder); err == nil && fi.Mode().IsRegular() {
			return Encoder{Path: cfg.BundledEncoder, Source: SourceBundled}
		}
	}
	return Encoder{Path: "ffmpeg", Source: SourceSystem}
}

// VerifyEncoder runs "<encoder> -version" and reports whether it exited 0.
// The returned error wraps ErrEncoderNotFound when the executable could not
// be started and ErrEncoderUnusable when it exited non-zero. A cancelled ctx
// is returned as is.
func VerifyEncoder(ctx context.Context, r ffmpeg.Runner, enc Encoder) error {
	err := r.Run(ctx, enc.Path, ffmpeg.VersionArgs()...)
	if err == nil {
		return nil
	}
	if ctx.Err() != nil {
		return ctx.Err()
	}
	if ffmpeg.IsNotFound(err) {
		return fmt.Errorf("%w: %s: %v", ErrEncoderNotFound, enc.Path, err)
	}
	return fmt.Errorf("%w: %s: %v", ErrEncoderUnusable, enc.Path, err)
}

// Remediation returns the lines telling the user how to obtain ffmpeg.
func Remediation(cfg *config.Config) []string {
	return []string{
		"Solution:",
		"  1. Put a portable FFmpeg build at " + cfg.BundledEncoder + " (preferred)",
		"  2. Or install FFmpeg system-wide (apt install ffmpeg, brew install ffmpeg, winget install ffmpeg)",
		"  3. Or point to an existing binary with --ffmpeg or OPUSPACK_FFMPEG",
	}
}

// RunCheck runs the --check flow: shows which encoder would be used, its
// version line, whether it can encode Opus, and the fixed output profile.
// Returns false if the encoder is missing or lacks libopus.
func RunCheck(ctx context.Context, cfg *config.Config, c Commander, log Logger) bool {
	log.Info("=== System Check ===")

	enc := LocateEncoder(cfg)
	log.Info("Encoder: %s (%s)", enc.Path, enc.Source)

	version, err := encoderVersion(ctx, c, enc)
	if err != nil {
		log.Error("%v", err)
		for _, l := range Remediation(cfg) {
			log.Info("%s", l)
		}
		return false
	}
	log.Success("%s", version)

	ok := true
	if err := checkOpusEncoder(ctx, c, enc); err != nil {
		log.Error("%v", err)
		log.Info("Use an FFmpeg build configured with --enable-libopus")
		ok = false
	} else {
		log.Success("libopus encoder available")
	}

	p := cfg.Profile
	log.Info("Profile: %s %s, %d ch, %d Hz, vbr %s, compression %d",
		p.Codec, p.Bitrate, p.Channels, p.SampleRate, p.VBR, p.CompressionLevel)
	logDir(log, "Input", cfg.InputDir)
	logDir(log, "Output", cfg.OutputDir)
	return ok
}

// encoderVersion returns the first line of "<encoder> -version".
func encoderVersion(ctx context.Context, c Commander, enc Encoder) (string, error) {
	out, err := c.Output(ctx, enc.Path, ffmpeg.VersionArgs()...)
	if err != nil {
		if ffmpeg.IsNotFound(err) {
			return "", fmt.Errorf("%w: %s", ErrEncoderNotFound, enc.Path)
		}
		return "", fmt.Errorf("%w: %v", ErrEncoderUnusable, err)
	}
	first := strings.TrimSpace(string(out))
	if idx := strings.Index(first, "\n"); idx > 0 {
		first = strings.TrimSpace(first[:idx])
	}
	return first, nil
}

// checkOpusEncoder looks for libopus in the "-encoders" listing.
func checkOpusEncoder(ctx context.Context, c Commander, enc Encoder) error {
	out, err := c.Output(ctx, enc.Path, "-hide_banner", "-encoders")
	if err != nil {
		return fmt.Errorf("could not list encoders: %w", err)
	}
	for _, line := range strings.Split(string(out), "\n") {
		fields := strings.Fields(line)
		if len(fields) >= 2 && fields[1] == "libopus" {
			return nil
		}
	}
	return ErrNoOpusEncoder
}

func logDir(log Logger, label, dir string) {
	if fi, err := os.Stat(dir); err == nil && fi.IsDir() {
		log.Info("%s directory: %s", label, dir)
		return
	}
	log.Info("%s directory: %s (will be created)", label, dir)
}
