package config

import (
	"context"
	"fmt"
	"os"
	"strings"

	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/v2"
)

const envPrefix = "SHOTCHART_"

// Load builds a Config by layering defaults, optional file, and env vars.
// Order of precedence (low -> high):
//  1. defaults (New(ctx))
//  2. file (YAML) if SHOTCHART_CONFIG is set
//  3. env (prefix SHOTCHART_)
func Load(ctx context.Context) (*Config, error) {
	base := New(ctx)

	k := koanf.New(".")

	if path := os.Getenv(envPrefix + "CONFIG"); path != "" {
		if err := k.Load(file.Provider(path), yaml.Parser()); err != nil {
			return nil, fmt.Errorf("%w: %s: %w", ErrLoadConfig, path, err)
		}
	}

	// SHOTCHART_GAME_ID -> game_id. Underscores are kept to match the
	// flat koanf tags.
	envProvider := env.Provider(envPrefix, ".", func(s string) string {
		return strings.TrimPrefix(strings.ToLower(s), strings.ToLower(envPrefix))
	})
	if err := k.Load(envProvider, nil); err != nil {
		return nil, fmt.Errorf("%w: env: %w", ErrLoadConfig, err)
	}

	cfg := *base
	if err := k.UnmarshalWithConf("", &cfg, koanf.UnmarshalConf{Tag: "koanf"}); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrLoadConfig, err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// Validate reports the first setting that cannot produce a run.
func (c *Config) Validate() error {
	switch {
	case strings.TrimSpace(c.PlayerID) == "":
		return fmt.Errorf("%w: player_id must not be empty", ErrInvalidConfig)
	case strings.TrimSpace(c.GameID) == "":
		return fmt.Errorf("%w: game_id must not be empty", ErrInvalidConfig)
	case strings.TrimSpace(c.OutputPath) == "":
		return fmt.Errorf("%w: output_path must not be empty", ErrInvalidConfig)
	case c.SourceFile == "" && strings.TrimSpace(c.StatsBaseURL) == "":
		return fmt.Errorf("%w: stats_base_url must not be empty", ErrInvalidConfig)
	case c.FPS <= 0:
		return fmt.Errorf("%w: fps must be positive, got %d", ErrInvalidConfig, c.FPS)
	case c.FrameIntervalMS <= 0:
		return fmt.Errorf("%w: frame_interval_ms must be positive, got %d", ErrInvalidConfig, c.FrameIntervalMS)
	case c.Width <= 0 || c.Height <= 0:
		return fmt.Errorf("%w: figure size must be positive, got %dx%d", ErrInvalidConfig, c.Width, c.Height)
	case c.DPI <= 0:
		return fmt.Errorf("%w: dpi must be positive", ErrInvalidConfig)
	}
	return nil
}
