// Package nbastats fetches shot chart data from the stats.nba.com API.
package nbastats

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/okian/shotchart/internal/domain/shot"
	"github.com/okian/shotchart/pkg/logger"
)

const (
	// DefaultBaseURL is the public stats API root.
	DefaultBaseURL = "https://stats.nba.com/stats"

	shotChartEndpoint = "shotchartdetail"
	defaultTimeout    = 30 * time.Second
	maxBodyBytes      = 32 << 20
)

// Query identifies one player's shots in one game.
type Query struct {
	LeagueID   string
	PlayerID   string
	GameID     string
	Season     string
	SeasonType string
}

// Source yields the shot records for a query.
type Source interface {
	ShotChart(ctx context.Context, q Query) ([]shot.Record, error)
}

// DefaultHeaders returns the request headers the stats API expects from a
// browser. Requests without them are commonly stalled or rejected. Host is
// not listed; net/http derives it from the request URL.
func DefaultHeaders() http.Header {
	h := http.Header{}
	h.Set("Accept", "application/json, text/plain, */*")
	h.Set("Connection", "keep-alive")
	h.Set("Accept-Language", "en-US,en;q=0.9")
	h.Set("Origin", "http://stats.nba.com")
	h.Set("Referer", "stats.nba.com")
	h.Set("Upgrade-Insecure-Requests", "1")
	h.Set("x-nba-stats-origin", "stats")
	h.Set("x-nba-stats-token", "true")
	h.Set("X-NewRelic-ID", "VQECWF5UChAHUlNTBwgBVw==")
	h.Set("User-Agent", "Mozilla/5.0 (Windows NT 10.0; Win64; x64; rv:61.0) Gecko/20100101 Firefox/61.0")
	return h
}

// Option applies a configuration option to the Client.
type Option func(*Client)

// WithBaseURL points the client at another API root, e.g. a test server.
func WithBaseURL(base string) Option {
	return func(c *Client) {
		if base != "" {
			c.baseURL = strings.TrimRight(base, "/")
		}
	}
}

// WithHTTPClient replaces the underlying HTTP client.
func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) {
		if hc != nil {
			c.http = hc
		}
	}
}

// WithTimeout bounds each request.
func WithTimeout(d time.Duration) Option {
	return func(c *Client) {
		if d > 0 {
			c.timeout = d
		}
	}
}

// WithHeader sets or overrides a request header.
func WithHeader(key, value string) Option {
	return func(c *Client) {
		c.headers.Set(key, value)
	}
}

// WithLogger sets the client logger.
func WithLogger(l logger.Logger) Option {
	return func(c *Client) {
		if l != nil {
			c.logger = l
		}
	}
}

// Client calls the stats API.
type Client struct {
	baseURL string
	http    *http.Client
	timeout time.Duration
	headers http.Header
	logger  logger.Logger
}

// NewClient creates a stats API client.
func NewClient(opts ...Option) *Client {
	c := &Client{
		baseURL: DefaultBaseURL,
		http:    &http.Client{},
		timeout: defaultTimeout,
		headers: DefaultHeaders(),
		logger:  logger.Nop(),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// ShotChart fetches every field goal attempt for the query, in game order.
func (c *Client) ShotChart(ctx context.Context, q Query) ([]shot.Record, error) {
	ctx, cancel := context.WithTimeout(ctx, c.timeout)
	defer cancel()

	endpoint := c.baseURL + "/" + shotChartEndpoint + "?" + shotChartParams(q).Encode()
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return nil, fmt.Errorf("%w: build request: %w", ErrRequest, err)
	}
	for k, vs := range c.headers {
		for _, v := range vs {
			req.Header.Add(k, v)
		}
	}

	c.logger.Debug(ctx, "requesting shot chart",
		logger.String("url", endpoint),
		logger.String("player_id", q.PlayerID),
		logger.String("game_id", q.GameID),
	)

	resp, err := c.http.Do(req)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrRequest, err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(io.LimitReader(resp.Body, maxBodyBytes))
	if err != nil {
		return nil, fmt.Errorf("%w: read body: %w", ErrRequest, err)
	}
	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, fmt.Errorf("%w: %s", ErrStatus, resp.Status)
	}

	records, err := Decode(body)
	if err != nil {
		return nil, err
	}
	c.logger.Debug(ctx, "decoded shot chart", logger.Int("shots", len(records)))
	return records, nil
}

// shotChartParams builds the full parameter set; the endpoint rejects
// requests that omit any of its filters, even empty ones.
func shotChartParams(q Query) url.Values {
	seasonType := q.SeasonType
	if seasonType == "" {
		seasonType = "Regular Season"
	}
	v := url.Values{}
	v.Set("LeagueID", q.LeagueID)
	v.Set("PlayerID", q.PlayerID)
	v.Set("GameID", q.GameID)
	v.Set("Season", q.Season)
	v.Set("SeasonType", seasonType)
	v.Set("TeamID", "0")
	v.Set("ContextMeasure", "FGA")
	v.Set("PlayerPosition", "")
	v.Set("DateFrom", "")
	v.Set("DateTo", "")
	v.Set("GameSegment", "")
	v.Set("LastNGames", "0")
	v.Set("Location", "")
	v.Set("Month", "0")
	v.Set("OpponentTeamID", "0")
	v.Set("Outcome", "")
	v.Set("Period", "0")
	v.Set("RookieYear", "")
	v.Set("SeasonSegment", "")
	v.Set("VsConference", "")
	v.Set("VsDivision", "")
	return v
}
