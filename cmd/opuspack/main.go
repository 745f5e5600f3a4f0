// Command opuspack converts the audio files in a folder to mono 24 kHz
// OGG/Opus files sized for the SD card music player.
//
// It loads defaults, OPUSPACK_* environment variables and flags, then either
// runs the encoder diagnostics (--check) or the conversion pipeline.
package main

import (
	"context"
	"fmt"
	"io"
	"os"
	"os/signal"
	"syscall"

	"github.com/urfave/cli/v2"

	"github.com/backmassage/opuspack/internal/check"
	"github.com/backmassage/opuspack/internal/config"
	"github.com/backmassage/opuspack/internal/display"
	"github.com/backmassage/opuspack/internal/ffmpeg"
	"github.com/backmassage/opuspack/internal/logging"
	"github.com/backmassage/opuspack/internal/pipeline"
)

// version and commit are injected at build time via -ldflags.
var (
	version = "1.0.0"
	commit  = "unknown"
)

// runPipeline is swapped in tests.
var runPipeline = pipeline.Run

func main() {
	// SIGINT/SIGTERM cancel the context; the running ffmpeg is killed and
	// the pipeline stops before the next file.
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	code := run(ctx, os.Args, os.Stdout, os.Stderr)
	stop()
	os.Exit(code)
}

func run(ctx context.Context, args []string, stdout, stderr io.Writer) (code int) {
	defer func() {
		if p := recover(); p != nil {
			fmt.Fprintf(stderr, "opuspack: unexpected error: %v\n", p)
			code = 1
		}
	}()

	// Bootstrap: the logger doesn't exist yet, so errors go straight to stderr.
	cfg := config.DefaultConfig()
	if err := config.LoadEnv(ctx, &cfg); err != nil {
		fmt.Fprintf(stderr, "opuspack: %v\n", err)
		return 1
	}

	app := &cli.App{
		Name:            "opuspack",
		Usage:           "convert audio files to OGG/Opus for the SD card music player",
		Version:         fmt.Sprintf("%s (%s)", version, commit),
		Flags:           config.Flags(&cfg),
		HideHelpCommand: true,
		Writer:          stdout,
		ErrWriter:       stderr,
		Action: func(c *cli.Context) error {
			if c.NArg() > 0 {
				return fmt.Errorf("unexpected argument %q", c.Args().First())
			}
			code = execute(c.Context, &cfg, stdout, stderr)
			return nil
		},
	}

	if err := app.RunContext(ctx, args); err != nil {
		fmt.Fprintf(stderr, "opuspack: %v\n", err)
		return 1
	}
	return code
}

// execute runs after flags are parsed: diagnostics or the full pipeline.
func execute(ctx context.Context, cfg *config.Config, stdout, stderr io.Writer) int {
	cfg.Normalize()
	if err := cfg.Validate(); err != nil {
		fmt.Fprintf(stderr, "opuspack: %v\n", err)
		return 1
	}

	log, err := logging.NewLoggerTo(cfg, stdout, stderr)
	if err != nil {
		fmt.Fprintf(stderr, "opuspack: %v\n", err)
		return 1
	}
	defer log.Close()

	// From here on all output goes through log.
	display.PrintBanner(stdout, version)

	runner := ffmpeg.ExecRunner{}
	if cfg.Verbose {
		runner.Stderr = stderr
	}

	if cfg.CheckOnly {
		if !check.RunCheck(ctx, cfg, runner, log) {
			return 1
		}
		return 0
	}

	log.Info("Input:  %s", cfg.InputDir)
	log.Info("Output: %s", cfg.OutputDir)
	log.Blank()

	res := runPipeline(ctx, cfg, runner, log)
	log.Debug(cfg.Verbose, "Run finished: %s", res.Outcome)
	return res.Outcome.ExitCode()
}
