package config

// This file defines the CLI flags. Flags write straight into Config through
// Destination pointers, so whatever DefaultConfig and LoadEnv put there stays
// unless the user passes the flag. The encoding profile has no flags.

import (
	"fmt"
	"strings"

	"github.com/urfave/cli/v2"
)

// -v belongs to --verbose, so the built-in version flag moves to -V.
func init() {
	cli.VersionFlag = &cli.BoolFlag{
		Name:    "version",
		Aliases: []string{"V"},
		Usage:   "print the version",
	}
}

// Flags returns the CLI flag set bound to cfg. Call after LoadEnv so the
// shown defaults reflect the environment.
func Flags(cfg *Config) []cli.Flag {
	return []cli.Flag{
		&cli.StringFlag{
			Name:        "input",
			Aliases:     []string{"i"},
			Usage:       "directory with source audio files",
			Value:       cfg.InputDir,
			Destination: &cfg.InputDir,
		},
		&cli.StringFlag{
			Name:        "output",
			Aliases:     []string{"o"},
			Usage:       "directory for converted .ogg files",
			Value:       cfg.OutputDir,
			Destination: &cfg.OutputDir,
		},
		&cli.StringFlag{
			Name:        "ffmpeg",
			Usage:       "path to ffmpeg (default: bundled " + cfg.BundledEncoder + ", then PATH)",
			Value:       cfg.Encoder,
			Destination: &cfg.Encoder,
		},
		&cli.BoolFlag{
			Name:        "keep-partial",
			Usage:       "keep the output file of a failed conversion",
			Destination: &cfg.KeepPartial,
		},
		&cli.BoolFlag{
			Name:        "verbose",
			Aliases:     []string{"v"},
			Usage:       "show ffmpeg errors and debug output",
			Destination: &cfg.Verbose,
		},
		&cli.GenericFlag{
			Name:  "color",
			Usage: "colored logs: auto | always | never",
			Value: &colorModeValue{&cfg.ColorMode},
		},
		&cli.BoolFlag{
			Name:  "no-color",
			Usage: "same as --color never",
			Action: func(_ *cli.Context, set bool) error {
				if set {
					cfg.ColorMode = ColorNever
				}
				return nil
			},
		},
		&cli.StringFlag{
			Name:        "log",
			Aliases:     []string{"l"},
			Usage:       "append logs to `FILE`",
			Value:       cfg.LogFile,
			Destination: &cfg.LogFile,
		},
		&cli.BoolFlag{
			Name:        "check",
			Aliases:     []string{"c"},
			Usage:       "run encoder diagnostics and exit",
			Destination: &cfg.CheckOnly,
		},
	}
}

// Normalize cleans up path fields after flag parsing.
func (c *Config) Normalize() {
	c.InputDir = NormalizeDirArg(c.InputDir)
	c.OutputDir = NormalizeDirArg(c.OutputDir)
}

// colorModeValue adapts ColorMode to cli.Generic.
type colorModeValue struct{ p *ColorMode }

func (v *colorModeValue) String() string {
	if v.p == nil {
		return ""
	}
	return string(*v.p)
}

func (v *colorModeValue) Set(s string) error {
	switch strings.ToLower(s) {
	case "auto":
		*v.p = ColorAuto
	case "always":
		*v.p = ColorAlways
	case "never":
		*v.p = ColorNever
	default:
		return fmt.Errorf("invalid color mode %q (use 'auto', 'always' or 'never')", s)
	}
	return nil
}
