package check

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/exec"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/backmassage/opuspack/internal/config"
)

type fakeLogger struct{ lines []string }

func (l *fakeLogger) add(level, format string, args ...interface{}) {
	l.lines = append(l.lines, level+" "+fmt.Sprintf(format, args...))
}
func (l *fakeLogger) Info(f string, a ...interface{})    { l.add("INFO", f, a...) }
func (l *fakeLogger) Success(f string, a ...interface{}) { l.add("SUCCESS", f, a...) }
func (l *fakeLogger) Warn(f string, a ...interface{})    { l.add("WARN", f, a...) }
func (l *fakeLogger) Error(f string, a ...interface{})   { l.add("ERROR", f, a...) }
func (l *fakeLogger) Debug(v bool, f string, a ...interface{}) {
	if v {
		l.add("DEBUG", f, a...)
	}
}
func (l *fakeLogger) text() string { return strings.Join(l.lines, "\n") }

type runFunc func(ctx context.Context, name string, args ...string) error

func (f runFunc) Run(ctx context.Context, name string, args ...string) error {
	return f(ctx, name, args...)
}

type fakeCommander map[string]struct {
	out string
	err error
}

func (c fakeCommander) Output(_ context.Context, _ string, args ...string) ([]byte, error) {
	r := c[strings.Join(args, " ")]
	return []byte(r.out), r.err
}

func TestLocateEncoder(t *testing.T) {
	dir := t.TempDir()
	bundled := filepath.Join(dir, "ffmpeg", "bin", "ffmpeg")

	cfg := config.DefaultConfig()
	cfg.BundledEncoder = bundled

	assert.Equal(t, Encoder{Path: "ffmpeg", Source: SourceSystem}, LocateEncoder(&cfg),
		"falls back to PATH when no bundled copy exists")

	require.NoError(t, os.MkdirAll(bundled, 0o755))
	assert.Equal(t, SourceSystem, LocateEncoder(&cfg).Source, "a directory is not an encoder")
	require.NoError(t, os.Remove(bundled))

	require.NoError(t, os.WriteFile(bundled, []byte("#!/bin/sh\n"), 0o755))
	assert.Equal(t, Encoder{Path: bundled, Source: SourceBundled}, LocateEncoder(&cfg))

	cfg.Encoder = "/opt/ffmpeg/ffmpeg"
	assert.Equal(t, Encoder{Path: "/opt/ffmpeg/ffmpeg", Source: SourceExplicit}, LocateEncoder(&cfg))
}

func TestVerifyEncoder(t *testing.T) {
	enc := Encoder{Path: "ffmpeg"}
	var gotArgs []string
	ok := runFunc(func(_ context.Context, name string, args ...string) error {
		gotArgs = args
		return nil
	})
	require.NoError(t, VerifyEncoder(context.Background(), ok, enc))
	assert.Equal(t, []string{"-version"}, gotArgs)

	missing := runFunc(func(context.Context, string, ...string) error {
		return &exec.Error{Name: "ffmpeg", Err: exec.ErrNotFound}
	})
	err := VerifyEncoder(context.Background(), missing, enc)
	assert.ErrorIs(t, err, ErrEncoderNotFound)

	broken := runFunc(func(context.Context, string, ...string) error {
		return errors.New("exit status 1")
	})
	err = VerifyEncoder(context.Background(), broken, enc)
	assert.ErrorIs(t, err, ErrEncoderUnusable)
}

func TestVerifyEncoder_Cancelled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	killed := runFunc(func(context.Context, string, ...string) error {
		return errors.New("signal: killed")
	})
	assert.ErrorIs(t, VerifyEncoder(ctx, killed, Encoder{Path: "ffmpeg"}), context.Canceled)
}

const encodersListing = `Encoders:
 V..... = Video
 ------
 A....D aac                  AAC (Advanced Audio Coding)
 A..... libopus              libopus Opus (codec opus)
 A..... opus                 Opus (Opus Interactive Audio Codec)
`

func TestRunCheck_OK(t *testing.T) {
	cfg := config.DefaultConfig()
	cfg.BundledEncoder = filepath.Join(t.TempDir(), "none")
	c := fakeCommander{
		"-version":               {out: "ffmpeg version 7.1 Copyright (c) 2000-2024\nbuilt with gcc\n"},
		"-hide_banner -encoders": {out: encodersListing},
	}
	log := &fakeLogger{}

	assert.True(t, RunCheck(context.Background(), &cfg, c, log))
	assert.Contains(t, log.text(), "SUCCESS ffmpeg version 7.1 Copyright (c) 2000-2024")
	assert.Contains(t, log.text(), "SUCCESS libopus encoder available")
	assert.Contains(t, log.text(), "Profile: libopus 32k, 1 ch, 24000 Hz, vbr on, compression 10")
}

func TestRunCheck_NoLibopus(t *testing.T) {
	cfg := config.DefaultConfig()
	c := fakeCommander{
		"-version":               {out: "ffmpeg version 4.4\n"},
		"-hide_banner -encoders": {out: " A..... opus  Opus (Opus Interactive Audio Codec)\n"},
	}
	log := &fakeLogger{}

	assert.False(t, RunCheck(context.Background(), &cfg, c, log))
	assert.Contains(t, log.text(), ErrNoOpusEncoder.Error())
}

func TestRunCheck_Missing(t *testing.T) {
	cfg := config.DefaultConfig()
	c := fakeCommander{
		"-version": {err: &exec.Error{Name: "ffmpeg", Err: exec.ErrNotFound}},
	}
	log := &fakeLogger{}

	assert.False(t, RunCheck(context.Background(), &cfg, c, log))
	assert.Contains(t, log.text(), "ERROR ffmpeg not found")
	assert.Contains(t, log.text(), "Solution:")
}
