// Package service runs one shot chart animation end to end: fetch, draw,
// animate, encode.
package service

import (
	"context"
	"errors"
	"fmt"
	"image"
	"time"

	"github.com/google/uuid"

	"github.com/okian/shotchart/internal/adapters/encoder"
	"github.com/okian/shotchart/internal/adapters/http/preview"
	"github.com/okian/shotchart/internal/adapters/nbastats"
	"github.com/okian/shotchart/internal/adapters/render"
	"github.com/okian/shotchart/internal/domain/animation"
	"github.com/okian/shotchart/internal/domain/court"
	"github.com/okian/shotchart/internal/domain/plot"
	"github.com/okian/shotchart/internal/domain/shot"
	"github.com/okian/shotchart/pkg/logger"
	"github.com/okian/shotchart/pkg/metrics"
)

// Caption placement, in data units for the titles and figure fractions for
// the footer.
var (
	titleLeftAt  = plot.Point{X: -240, Y: 385}
	titleRightAt = plot.Point{X: 240, Y: 385}
	footerAt     = plot.Point{X: 0.8, Y: 0.09}
)

const (
	titleSize  = 9
	footerSize = 8
)

// Renderer rasterises a surface.
type Renderer interface {
	Render(s *plot.Surface) (image.Image, error)
}

// Encoder accumulates frames and writes the animation file.
type Encoder interface {
	Add(img image.Image) error
	WriteFile(path string) (int64, error)
}

// Publisher receives live frames, e.g. the preview server.
type Publisher interface {
	Publish(img image.Image, p preview.Progress) error
	Finish()
}

// Service renders the animation for one player and game.
type Service struct {
	source    nbastats.Source
	query     nbastats.Query
	team      string
	renderer  Renderer
	encoder   Encoder
	publisher Publisher

	outputPath  string
	metricsFile string
	interval    time.Duration
	markerSize  float64
	live        bool
	courtStyle  court.Style

	titleLeft  string
	titleRight string
	footer     string

	logger logger.Logger
}

// Option applies a configuration option to the Service.
type Option func(*Service)

// WithLogger sets a custom logger for the service.
func WithLogger(l logger.Logger) Option {
	return func(s *Service) {
		if l != nil {
			s.logger = l
		}
	}
}

// WithSource sets where shots are read from.
func WithSource(src nbastats.Source) Option {
	return func(s *Service) {
		s.source = src
	}
}

// WithQuery sets the player and game to fetch.
func WithQuery(q nbastats.Query) Option {
	return func(s *Service) {
		s.query = q
	}
}

// WithTeam selects the colour palette.
func WithTeam(team string) Option {
	return func(s *Service) {
		if team != "" {
			s.team = team
		}
	}
}

// WithRenderer replaces the default go-chart rasterizer.
func WithRenderer(r Renderer) Option {
	return func(s *Service) {
		if r != nil {
			s.renderer = r
		}
	}
}

// WithEncoder replaces the default GIF encoder.
func WithEncoder(e Encoder) Option {
	return func(s *Service) {
		if e != nil {
			s.encoder = e
		}
	}
}

// WithPublisher forwards live frames to p and, once the live pass is over,
// keeps the run open until the context is cancelled.
func WithPublisher(p Publisher) Option {
	return func(s *Service) {
		s.publisher = p
	}
}

// WithOutputPath sets the animation file path.
func WithOutputPath(path string) Option {
	return func(s *Service) {
		if path != "" {
			s.outputPath = path
		}
	}
}

// WithMetricsFile writes a Prometheus textfile after a successful run.
func WithMetricsFile(path string) Option {
	return func(s *Service) {
		s.metricsFile = path
	}
}

// WithInterval sets the live tick interval.
func WithInterval(d time.Duration) Option {
	return func(s *Service) {
		if d > 0 {
			s.interval = d
		}
	}
}

// WithMarkerSize sets the marker area in points squared.
func WithMarkerSize(size float64) Option {
	return func(s *Service) {
		if size > 0 {
			s.markerSize = size
		}
	}
}

// WithLive enables or disables the timed pass.
func WithLive(live bool) Option {
	return func(s *Service) {
		s.live = live
	}
}

// WithCourtStyle sets line colour, width and outer lines.
func WithCourtStyle(style court.Style) Option {
	return func(s *Service) {
		s.courtStyle = style
	}
}

// WithCaptions overrides the titles and footer. Empty titles are derived
// from the fetched shots; an empty footer is omitted.
func WithCaptions(left, right, footer string) Option {
	return func(s *Service) {
		s.titleLeft, s.titleRight, s.footer = left, right, footer
	}
}

// New constructs a Service with default configuration.
func New(opts ...Option) *Service {
	style := court.DefaultStyle()
	style.OuterLines = true

	s := &Service{
		team:       "GS",
		outputPath: "KLAY.gif",
		interval:   500 * time.Millisecond,
		markerSize: 100,
		live:       true,
		courtStyle: style,
		logger:     nil, // resolved in Run
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Run executes the whole pipeline once. Cancelling ctx cuts the live pass
// short (or ends the preview wait); the animation is still encoded.
func (s *Service) Run(ctx context.Context) error {
	if s.logger == nil {
		s.logger = logger.Get()
	}
	log := s.logger.With(logger.String("run_id", uuid.NewString()))

	if s.source == nil {
		return ErrNoSource
	}
	palette, err := shot.PaletteFor(s.team)
	if err != nil {
		return err
	}
	if err := s.defaults(); err != nil {
		return err
	}

	records, err := s.fetch(ctx, log)
	if err != nil {
		return err
	}
	summary := shot.Summarize(records)
	metrics.UpdateShots(summary.Attempts, summary.Made)
	log.Info(ctx, "fetched shots",
		logger.String("player", summary.PlayerName),
		logger.Int("attempts", summary.Attempts),
		logger.Int("made", summary.Made),
		logger.Int("threes_made", summary.ThreesMade),
		logger.Float64("mean_distance_ft", summary.MeanDistance),
	)

	points, colors := shot.Reshape(records, palette)
	surface := s.surface(summary)
	driver, err := animation.New(points, colors,
		animation.WithInterval(s.interval),
		animation.WithMarkerSize(s.markerSize),
	)
	if err != nil {
		return err
	}

	if s.live {
		if err := s.livePass(ctx, log, driver, surface); err != nil {
			return err
		}
	}
	if s.publisher != nil {
		s.publisher.Finish()
		if ctx.Err() == nil {
			log.Info(ctx, "live pass finished; interrupt to write the animation")
			<-ctx.Done()
		}
	}

	// Encoding always completes, even after an interrupt.
	return s.encodePass(context.WithoutCancel(ctx), log, driver, surface)
}

func (s *Service) defaults() error {
	if s.renderer == nil {
		r, err := render.New()
		if err != nil {
			return err
		}
		s.renderer = r
	}
	if s.encoder == nil {
		s.encoder = encoder.NewGIF()
	}
	return nil
}

func (s *Service) fetch(ctx context.Context, log logger.Logger) ([]shot.Record, error) {
	start := time.Now()
	records, err := s.source.ShotChart(ctx, s.query)
	metrics.RecordFetchDuration(float64(time.Since(start).Milliseconds()))
	if err != nil {
		metrics.RecordFetchError(sourceName(s.source))
		log.Error(ctx, "fetch failed", logger.Error(err))
		return nil, fmt.Errorf("fetch shot chart: %w", err)
	}
	if len(records) == 0 {
		return nil, fmt.Errorf("%w: player %s game %s", ErrNoShots, s.query.PlayerID, s.query.GameID)
	}
	return records, nil
}

// surface builds the court with its captions. The scatter starts empty.
func (s *Service) surface(summary shot.Summary) *plot.Surface {
	surface := court.Draw(plot.NewSurface(), s.courtStyle)

	left, right := s.titleLeft, s.titleRight
	if left == "" {
		left = summary.Headline()
	}
	if right == "" {
		right = summary.Matchup()
	}
	surface.AddText(plot.Text{At: titleLeftAt, Body: left, Size: titleSize, Bold: true})
	surface.AddText(plot.Text{At: titleRightAt, Body: right, Size: titleSize, Bold: true, Align: plot.AlignRight})
	if s.footer != "" {
		surface.AddText(plot.Text{
			At:     footerAt,
			Body:   s.footer,
			Size:   footerSize,
			Align:  plot.AlignRight,
			VAlign: plot.AlignTop,
			Figure: true,
		})
	}
	return surface
}

func (s *Service) livePass(ctx context.Context, log logger.Logger, d *animation.Driver, surface *plot.Surface) error {
	log.Info(ctx, "starting live pass",
		logger.Int("frames", d.Len()),
		logger.Duration("interval", d.Interval()),
	)
	sink := animation.SinkFunc(func(ctx context.Context, f animation.Frame) error {
		img, err := s.draw(surface, f, metrics.PassLive)
		if err != nil {
			return err
		}
		if s.publisher != nil {
			if err := s.publisher.Publish(img, preview.Progress{Tick: f.Tick, Total: f.Total}); err != nil {
				log.Warn(ctx, "preview publish failed", logger.Int("tick", f.Tick), logger.Error(err))
			}
		}
		log.Debug(ctx, "frame drawn", logger.Int("tick", f.Tick), logger.Int("total", f.Total))
		return nil
	})

	err := d.Run(ctx, sink)
	if errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
		log.Info(ctx, "live pass interrupted", logger.Int("tick", d.Tick()))
		return nil
	}
	if err != nil {
		return fmt.Errorf("live pass: %w", err)
	}
	return nil
}

func (s *Service) encodePass(ctx context.Context, log logger.Logger, d *animation.Driver, surface *plot.Surface) error {
	start := time.Now()
	sink := animation.SinkFunc(func(_ context.Context, f animation.Frame) error {
		img, err := s.draw(surface, f, metrics.PassEncode)
		if err != nil {
			return err
		}
		return s.encoder.Add(img)
	})
	if err := d.Replay(ctx, sink); err != nil {
		return fmt.Errorf("encode pass: %w", err)
	}

	n, err := s.encoder.WriteFile(s.outputPath)
	if err != nil {
		return fmt.Errorf("write %s: %w", s.outputPath, err)
	}
	metrics.RecordEncode(float64(time.Since(start).Milliseconds()), n)
	log.Info(ctx, "animation written",
		logger.String("path", s.outputPath),
		logger.Int("frames", d.Len()),
		logger.Any("bytes", n),
	)

	if s.metricsFile != "" {
		if err := metrics.WriteTextfile(s.metricsFile); err != nil {
			return err
		}
	}
	return nil
}

// draw pushes the frame into the scatter and rasterises the surface.
func (s *Service) draw(surface *plot.Surface, f animation.Frame, pass string) (image.Image, error) {
	start := time.Now()
	animation.Apply(&surface.Scatter, f)
	img, err := s.renderer.Render(surface)
	if err != nil {
		return nil, err
	}
	metrics.RecordFrameRendered(pass, float64(time.Since(start).Milliseconds()))
	return img, nil
}

func sourceName(src nbastats.Source) string {
	switch src.(type) {
	case nbastats.FileSource, *nbastats.FileSource:
		return "file"
	case *nbastats.Client:
		return "api"
	default:
		return "custom"
	}
}
