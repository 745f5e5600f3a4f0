package ffmpeg

import (
	"errors"
	"io/fs"
	"os/exec"
)

// ErrEncodeFailed is returned by [Convert] when ffmpeg exits non-zero. All
// causes (corrupt input, unsupported codec, full disk) collapse into it.
var ErrEncodeFailed = errors.New("ffmpeg exited with non-zero status")

// ExitCode returns the process exit status carried by err, 0 for nil, and
// -1 when err did not come from a finished process (e.g. not found, killed).
func ExitCode(err error) int {
	if err == nil {
		return 0
	}
	var exitErr *exec.ExitError
	if errors.As(err, &exitErr) {
		return exitErr.ExitCode()
	}
	return -1
}

// IsNotFound reports whether err means the executable could not be started:
// missing from PATH, missing at the given path, or not executable.
func IsNotFound(err error) bool {
	return errors.Is(err, exec.ErrNotFound) ||
		errors.Is(err, fs.ErrNotExist) ||
		errors.Is(err, fs.ErrPermission)
}
