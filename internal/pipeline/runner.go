package pipeline

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"github.com/backmassage/opuspack/internal/check"
	"github.com/backmassage/opuspack/internal/config"
	"github.com/backmassage/opuspack/internal/display"
	"github.com/backmassage/opuspack/internal/ffmpeg"
	"github.com/backmassage/opuspack/internal/logging"
	"github.com/backmassage/opuspack/internal/naming"
	"github.com/backmassage/opuspack/internal/probe"
)

// ErrMissingOutput is recorded when ffmpeg exits 0 but no output file exists.
var ErrMissingOutput = errors.New("ffmpeg succeeded but wrote no output")

const rule = "============================================================"

// Run is the top-level batch entry point. It verifies the encoder, prepares
// the directories, discovers input files and converts them one at a time.
// Per-file failures are recorded and the loop continues; a missing encoder,
// an empty input directory, an unexpected error or cancellation of ctx end
// the run early.
func Run(ctx context.Context, cfg *config.Config, r ffmpeg.Runner, log *logging.Logger) Result {
	// --- Dependency gate ---
	enc := check.LocateEncoder(cfg)
	if err := check.VerifyEncoder(ctx, r, enc); err != nil {
		if ctx.Err() != nil {
			return interrupted(log, Result{})
		}
		log.Error("FFmpeg not found or not working: %v", err)
		for _, l := range check.Remediation(cfg) {
			log.Info("%s", l)
		}
		return Result{Outcome: OutcomeMissingDependency, Err: err}
	}
	log.Success("Using %s: %s", enc.Source, enc.Path)

	// --- Directories ---
	created, err := PrepareDirs(cfg.InputDir, cfg.OutputDir)
	for _, d := range created {
		log.Success("Created directory: %s", d)
	}
	if err != nil {
		return fault(log, err)
	}
	if err := checkResolvedPaths(cfg); err != nil {
		return fault(log, err)
	}

	// --- Discover ---
	files, err := Discover(cfg.InputDir, cfg.Extensions)
	if err != nil {
		return fault(log, fmt.Errorf("file discovery failed: %w", err))
	}
	if len(files) == 0 {
		logNoInput(cfg, log)
		return Result{Outcome: OutcomeNoInput}
	}

	res := Result{Summary: RunSummary{Found: len(files)}}
	log.Blank()
	log.Info("Found %d audio file(s)", len(files))
	warnCollisions(cfg, log, files)

	// --- Convert ---
	for i, f := range files {
		if ctx.Err() != nil {
			return interrupted(log, res)
		}
		log.Blank()
		log.Info("[%d/%d] %s", i+1, len(files), f.Name)

		cr := convertFile(ctx, cfg, r, log, enc, f, res.Results)
		if ctx.Err() != nil {
			// The in-flight output is left as ffmpeg left it.
			return interrupted(log, res)
		}
		res.Results = append(res.Results, cr)
		res.Summary.Add(cr)
	}

	logSummary(cfg, log, &res.Summary)
	if res.Summary.Failed > 0 {
		res.Outcome = OutcomeFailures
	}
	return res
}

// convertFile runs ffmpeg for one file and reports the result. A failed
// conversion's output is removed unless cfg.KeepPartial is set; see
// removePartial for what counts as this attempt's output.
func convertFile(
	ctx context.Context,
	cfg *config.Config,
	r ffmpeg.Runner,
	log *logging.Logger,
	enc check.Encoder,
	f AudioFile,
	earlier []ConversionResult,
) ConversionResult {
	out := naming.OutputPath(cfg.OutputDir, f.Stem, cfg.OutputExt)
	cr := ConversionResult{Input: f, OutputPath: out, InputSize: f.Size}
	before, _ := os.Stat(out)

	log.Info("  Input:  %s", display.FormatBytes(f.Size))
	log.Debug(cfg.Verbose, "  %s %s", enc.Path, strings.Join(ffmpeg.Build(cfg.Profile, f.Path, out), " "))

	if err := ffmpeg.Convert(ctx, r, enc.Path, cfg.Profile, f.Path, out); err != nil {
		cr.Err = err
		if ctx.Err() != nil {
			return cr
		}
		log.Error("  Conversion failed: %v", err)
		if !cfg.KeepPartial {
			removePartial(log, out, before, convertedEarlier(earlier, out))
		}
		return cr
	}

	fi, err := os.Stat(out)
	if err != nil {
		cr.Err = fmt.Errorf("%w: %v", ErrMissingOutput, err)
		log.Error("  Conversion failed: %v", cr.Err)
		return cr
	}
	cr.Success = true
	cr.OutputSize = fi.Size()

	log.Success("  Output: %s -> %s", display.FormatBytes(cr.OutputSize), filepath.Base(out))
	inspectOutput(cfg, log, &cr)

	if cfg.DeviceMaxFileSize > 0 && cr.OutputSize > cfg.DeviceMaxFileSize {
		cr.Oversize = true
		log.Warn("  Output is larger than the player's %s limit and will not play",
			display.FormatBytes(cfg.DeviceMaxFileSize))
	}
	return cr
}

// inspectOutput reads the OpusHead of a converted file. Problems are
// reported but never turn a success into a failure.
func inspectOutput(cfg *config.Config, log *logging.Logger, cr *ConversionResult) {
	h, err := probe.Inspect(cr.OutputPath)
	if err != nil {
		log.Warn("  Could not read Opus header: %v", err)
		return
	}
	cr.Header = &h
	if !h.Matches(cfg.Profile) {
		log.Warn("  Opus header reports %d ch @ %d Hz, expected %d ch @ %d Hz",
			h.Channels, h.SampleRate, cfg.Profile.Channels, cfg.Profile.SampleRate)
		return
	}
	log.Debug(cfg.Verbose, "  Opus: %d ch @ %d Hz, pre-skip %d", h.Channels, h.SampleRate, h.PreSkip)
}

// removePartial deletes the output of a failed attempt. A file that existed
// before the attempt and was not touched by it is kept, and so is the output
// of an earlier success in this run.
func removePartial(log *logging.Logger, path string, before os.FileInfo, owned bool) {
	after, err := os.Stat(path)
	if err != nil {
		return
	}
	if before != nil && unchanged(before, after) {
		return
	}
	if owned {
		log.Warn("  Kept %s from an earlier file; it may have been overwritten", filepath.Base(path))
		return
	}

	err = os.Remove(path)
	if err == nil {
		log.Warn("  Removed partial output: %s", filepath.Base(path))
		return
	}
	if !errors.Is(err, fs.ErrNotExist) {
		log.Warn("  Could not remove partial output: %v", err)
	}
}

func unchanged(before, after os.FileInfo) bool {
	return os.SameFile(before, after) &&
		before.Size() == after.Size() &&
		before.ModTime().Equal(after.ModTime())
}

// convertedEarlier reports whether a successful result already owns path.
func convertedEarlier(results []ConversionResult, path string) bool {
	for _, r := range results {
		if r.Success && r.OutputPath == path {
			return true
		}
	}
	return false
}

// checkResolvedPaths rejects an output directory that resolves to the input
// directory (e.g. through a symlink).
func checkResolvedPaths(cfg *config.Config) error {
	inputAbs, err := absPath(cfg.InputDir)
	if err != nil {
		return fmt.Errorf("cannot resolve input path %s: %w", cfg.InputDir, err)
	}
	outputAbs, err := absPath(cfg.OutputDir)
	if err != nil {
		return fmt.Errorf("cannot resolve output path %s: %w", cfg.OutputDir, err)
	}
	return cfg.ValidatePaths(inputAbs, outputAbs)
}

// warnCollisions reports inputs that will overwrite each other's output.
func warnCollisions(cfg *config.Config, log *logging.Logger, files []AudioFile) {
	tracker := naming.NewCollisionTracker()
	for _, f := range files {
		out := naming.OutputPath(cfg.OutputDir, f.Stem, cfg.OutputExt)
		if prev, ok := tracker.Claim(f.Path, out); ok {
			log.Warn("%s and %s both map to %s; the later file wins",
				filepath.Base(prev), f.Name, filepath.Base(out))
		}
	}
}

func interrupted(log *logging.Logger, res Result) Result {
	log.Blank()
	log.Warn("Interrupted by user")
	if res.Summary.Found > 0 {
		log.Info("Completed before interrupt: %d succeeded, %d failed, %d not started",
			res.Summary.Succeeded, res.Summary.Failed,
			res.Summary.Found-res.Summary.Succeeded-res.Summary.Failed)
	}
	res.Outcome = OutcomeInterrupted
	res.Err = context.Canceled
	return res
}

func fault(log *logging.Logger, err error) Result {
	log.Error("%v", err)
	return Result{Outcome: OutcomeFault, Err: err}
}

// --- Logging helpers ---

func logNoInput(cfg *config.Config, log *logging.Logger) {
	log.Blank()
	log.Error("No audio files found in '%s'", cfg.InputDir)
	log.Info("Supported formats: %s", strings.Join(cfg.Extensions, ", "))
	log.Info("Usage:")
	log.Info("  1. Put audio files into the '%s' folder", cfg.InputDir)
	log.Info("  2. Run opuspack again")
}

func logSummary(cfg *config.Config, log *logging.Logger, s *RunSummary) {
	log.Blank()
	log.Info(rule)
	log.Info("Conversion complete")
	log.Info(rule)
	log.Info("Success: %d file(s)", s.Succeeded)
	if s.Failed > 0 {
		log.Warn("Failed:  %d file(s)", s.Failed)
	}

	ratio, ok := s.CompressionRatio()
	if !ok {
		return
	}
	log.Info("Total input size:  %s", display.FormatBytes(s.TotalInputBytes))
	log.Info("Total output size: %s", display.FormatBytes(s.TotalOutputBytes))
	log.Info("Compression ratio: %s", display.FormatRatio(ratio))
	if s.Oversize > 0 {
		log.Warn("%d file(s) exceed the player's %s limit", s.Oversize, display.FormatBytes(cfg.DeviceMaxFileSize))
	}

	log.Blank()
	log.Success("Converted files are in: %s/", cfg.OutputDir)
	log.Info("Next steps:")
	log.Info("  1. Copy the .ogg files from '%s'", cfg.OutputDir)
	log.Info("  2. Into the music folder on the SD card")
	log.Info("  3. Insert the SD card into the device")
	log.Info("  4. Ask it to list, play or stop music")
}
