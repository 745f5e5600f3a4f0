package config

import (
	"context"
	"fmt"

	"github.com/sethvargo/go-envconfig"
)

// envOverrides mirrors the Config fields that may be set from the
// environment. Empty values leave the defaults alone.
type envOverrides struct {
	InputDir  string `env:"OPUSPACK_INPUT_DIR"`
	OutputDir string `env:"OPUSPACK_OUTPUT_DIR"`
	Encoder   string `env:"OPUSPACK_FFMPEG"`
	LogFile   string `env:"OPUSPACK_LOG"`
}

// LoadEnv overlays OPUSPACK_* environment variables onto cfg.
func LoadEnv(ctx context.Context, cfg *Config) error {
	return loadEnvWith(ctx, cfg, envconfig.OsLookuper())
}

func loadEnvWith(ctx context.Context, cfg *Config, l envconfig.Lookuper) error {
	var env envOverrides
	if err := envconfig.ProcessWith(ctx, &envconfig.Config{
		Target:   &env,
		Lookuper: l,
	}); err != nil {
		return fmt.Errorf("environment: %w", err)
	}

	if env.InputDir != "" {
		cfg.InputDir = NormalizeDirArg(env.InputDir)
	}
	if env.OutputDir != "" {
		cfg.OutputDir = NormalizeDirArg(env.OutputDir)
	}
	if env.Encoder != "" {
		cfg.Encoder = env.Encoder
	}
	if env.LogFile != "" {
		cfg.LogFile = env.LogFile
	}
	return nil
}
