// Package config defines the shotchart run configuration and its loading.
//
// Defaults render Klay Thompson's 2018-19 fourteen-three game against
// Chicago in Warriors colours, as a GIF at five frames per second with one
// new shot every half second.
package config

import (
	"context"
	"time"
)

// Config contains process configuration.
type Config struct {
	// LogLevel controls verbosity: debug, info, warn, error.
	LogLevel string `koanf:"log_level"`

	// Stats query identifiers.
	LeagueID   string `koanf:"league_id"`
	PlayerID   string `koanf:"player_id"`
	GameID     string `koanf:"game_id"`
	Season     string `koanf:"season"`
	SeasonType string `koanf:"season_type"`

	// Team selects the colour palette (GS, LAL, ATL).
	Team string `koanf:"team"`

	// StatsBaseURL is the stats API root, without the endpoint name.
	StatsBaseURL string `koanf:"stats_base_url"`
	// RequestTimeoutMS bounds the single fetch.
	RequestTimeoutMS int `koanf:"request_timeout_ms"`
	// SourceFile, when set, reads a saved shotchartdetail response instead
	// of calling the API.
	SourceFile string `koanf:"source_file"`

	// OutputPath is where the animated GIF is written.
	OutputPath string `koanf:"output_path"`
	// FrameIntervalMS is the delay between ticks of the live pass.
	FrameIntervalMS int `koanf:"frame_interval_ms"`
	// FPS is the encoded frame rate.
	FPS int `koanf:"fps"`
	// Live enables the timer-driven pass before encoding.
	Live bool `koanf:"live"`

	// Figure geometry.
	Width      int     `koanf:"width"`
	Height     int     `koanf:"height"`
	DPI        float64 `koanf:"dpi"`
	MarkerSize float64 `koanf:"marker_size"`

	// Court styling.
	LineColor  string  `koanf:"line_color"`
	LineWidth  float64 `koanf:"line_width"`
	OuterLines bool    `koanf:"outer_lines"`

	// Captions; empty titles are derived from the fetched shots.
	TitleLeft  string `koanf:"title_left"`
	TitleRight string `koanf:"title_right"`
	Footer     string `koanf:"footer"`

	// PreviewAddr enables the live preview server, e.g. "127.0.0.1:9090".
	PreviewAddr string `koanf:"preview_addr"`

	// MetricsFile, when set, receives a Prometheus textfile after the run.
	MetricsFile string `koanf:"metrics_file"`
}

// New returns a Config populated with defaults. The context is accepted to
// keep constructors uniform with Load.
func New(_ context.Context) *Config {
	return &Config{
		LogLevel:         "info",
		LeagueID:         "00",
		PlayerID:         "202691",
		GameID:           "0021800091",
		Season:           "2018-19",
		SeasonType:       "Regular Season",
		Team:             "GS",
		StatsBaseURL:     "https://stats.nba.com/stats",
		RequestTimeoutMS: 30_000,
		OutputPath:       "KLAY.gif",
		FrameIntervalMS:  500,
		FPS:              5,
		Live:             true,
		Width:            1100,
		Height:           800,
		DPI:              100,
		MarkerSize:       100,
		LineColor:        "#000000",
		LineWidth:        2,
		OuterLines:       true,
		Footer:           "Data: stats.nba.com",
	}
}

// FrameInterval returns the live tick interval.
func (c *Config) FrameInterval() time.Duration {
	return time.Duration(c.FrameIntervalMS) * time.Millisecond
}

// RequestTimeout returns the fetch timeout.
func (c *Config) RequestTimeout() time.Duration {
	return time.Duration(c.RequestTimeoutMS) * time.Millisecond
}
