package ffmpeg

import (
	"context"
	"errors"
	"os/exec"
	"path/filepath"
	"runtime"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/backmassage/opuspack/internal/config"
)

type call struct {
	name string
	args []string
}

type recordingRunner struct {
	calls []call
	err   error
}

func (r *recordingRunner) Run(_ context.Context, name string, args ...string) error {
	r.calls = append(r.calls, call{name, args})
	return r.err
}

func TestBuild_DeviceProfile(t *testing.T) {
	got := Build(config.DeviceProfile(), "music/Song One.mp3", "output/Song One.ogg")
	want := []string{
		"-hide_banner", "-nostdin", "-loglevel", "error",
		"-i", "music/Song One.mp3",
		"-vn",
		"-c:a", "libopus",
		"-b:a", "32k",
		"-ac", "1",
		"-ar", "24000",
		"-vbr", "on",
		"-compression_level", "10",
		"-y",
		"output/Song One.ogg",
	}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("Build() mismatch (-want +got):\n%s", diff)
	}
}

func TestBuild_NoOverwrite(t *testing.T) {
	p := config.DeviceProfile()
	p.Overwrite = false
	args := Build(p, "in.wav", "out.ogg")
	assert.NotContains(t, args, "-y")
	assert.Equal(t, "out.ogg", args[len(args)-1])
}

func TestConvert_Success(t *testing.T) {
	r := &recordingRunner{}
	err := Convert(context.Background(), r, "ffmpeg", config.DeviceProfile(), "a.flac", "a.ogg")
	require.NoError(t, err)
	require.Len(t, r.calls, 1)
	assert.Equal(t, "ffmpeg", r.calls[0].name)
	assert.Equal(t, "a.ogg", r.calls[0].args[len(r.calls[0].args)-1])
}

func TestConvert_RunnerError(t *testing.T) {
	boom := errors.New("boom")
	r := &recordingRunner{err: boom}
	err := Convert(context.Background(), r, "ffmpeg", config.DeviceProfile(), "a.flac", "a.ogg")
	assert.ErrorIs(t, err, boom)
}

func TestConvert_Cancelled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	r := &recordingRunner{err: errors.New("signal: killed")}
	err := Convert(ctx, r, "ffmpeg", config.DeviceProfile(), "a.flac", "a.ogg")
	assert.ErrorIs(t, err, context.Canceled)
}

func TestExecRunner_ExitStatus(t *testing.T) {
	if runtime.GOOS == "windows" {
		t.Skip("needs a POSIX shell")
	}
	if _, err := exec.LookPath("sh"); err != nil {
		t.Skip("sh not available")
	}
	r := ExecRunner{}

	require.NoError(t, r.Run(context.Background(), "sh", "-c", "exit 0"))

	err := r.Run(context.Background(), "sh", "-c", "exit 3")
	require.Error(t, err)
	assert.Equal(t, 3, ExitCode(err))
	assert.False(t, IsNotFound(err))

	out, err := r.Output(context.Background(), "sh", "-c", "echo ffmpeg version 7.1")
	require.NoError(t, err)
	assert.Equal(t, "ffmpeg version 7.1\n", string(out))
}

func TestConvert_ExitStatusWrapped(t *testing.T) {
	if runtime.GOOS == "windows" {
		t.Skip("needs a POSIX shell")
	}
	if _, err := exec.LookPath("sh"); err != nil {
		t.Skip("sh not available")
	}
	// "sh -c 'exit 1' <ffmpeg args...>" ignores the extra arguments.
	err := Convert(context.Background(), shRunner{}, "exit 1", config.DeviceProfile(), "a.mp3", "a.ogg")
	assert.ErrorIs(t, err, ErrEncodeFailed)
	assert.Contains(t, err.Error(), "exit status 1")
}

type shRunner struct{}

func (shRunner) Run(ctx context.Context, script string, args ...string) error {
	return ExecRunner{}.Run(ctx, "sh", append([]string{"-c", script, "sh"}, args...)...)
}

func TestExecRunner_NotFound(t *testing.T) {
	r := ExecRunner{}

	err := r.Run(context.Background(), "opuspack-no-such-encoder")
	assert.True(t, IsNotFound(err), "PATH lookup: %v", err)

	err = r.Run(context.Background(), filepath.Join(t.TempDir(), "ffmpeg", "bin", "ffmpeg"))
	assert.True(t, IsNotFound(err), "explicit path: %v", err)
	assert.Equal(t, -1, ExitCode(err))
}

func TestExitCode_Nil(t *testing.T) {
	assert.Equal(t, 0, ExitCode(nil))
	assert.Equal(t, -1, ExitCode(errors.New("other")))
}
