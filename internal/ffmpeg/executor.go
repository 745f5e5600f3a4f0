package ffmpeg

import (
	"context"
	"fmt"
	"io"
	"os/exec"

	"github.com/backmassage/opuspack/internal/config"
)

// Runner starts an external program and waits for it. A nil error means the
// process exited with status 0.
type Runner interface {
	Run(ctx context.Context, name string, args ...string) error
}

// ExecRunner runs programs with os/exec. Stdout is always discarded; stderr
// is discarded unless Stderr is set (verbose mode tees it to the terminal).
// The process is killed when ctx is cancelled. There is no timeout: a hung
// ffmpeg hangs the run.
type ExecRunner struct {
	Stderr io.Writer
}

// Run implements [Runner].
func (r ExecRunner) Run(ctx context.Context, name string, args ...string) error {
	cmd := exec.CommandContext(ctx, name, args...)
	cmd.Stdout = nil
	cmd.Stderr = r.Stderr
	return cmd.Run()
}

// Output runs a program and returns its standard output. Used by the
// diagnostics, which need the version line and encoder list.
func (r ExecRunner) Output(ctx context.Context, name string, args ...string) ([]byte, error) {
	cmd := exec.CommandContext(ctx, name, args...)
	cmd.Stderr = r.Stderr
	return cmd.Output()
}

// Convert encodes input into output with the fixed profile. It returns nil
// only when ffmpeg exits 0. A non-zero exit is reported as ErrEncodeFailed;
// a failure to start the process or a cancelled ctx is returned as is.
func Convert(ctx context.Context, r Runner, encoder string, p config.Profile, input, output string) error {
	err := r.Run(ctx, encoder, Build(p, input, output)...)
	if err == nil {
		return nil
	}
	if ctx.Err() != nil {
		return ctx.Err()
	}
	if code := ExitCode(err); code > 0 {
		return fmt.Errorf("%w (exit status %d)", ErrEncodeFailed, code)
	}
	return err
}
