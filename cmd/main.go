package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/okian/shotchart/internal/adapters/encoder"
	"github.com/okian/shotchart/internal/adapters/http/preview"
	"github.com/okian/shotchart/internal/adapters/nbastats"
	"github.com/okian/shotchart/internal/adapters/render"
	app "github.com/okian/shotchart/internal/app"
	"github.com/okian/shotchart/internal/config"
	"github.com/okian/shotchart/internal/domain/court"
	"github.com/okian/shotchart/pkg/logger"
)

const shutdownTimeout = 5 * time.Second

func main() {
	os.Exit(run())
}

func run() int {
	// Initialize logging
	if err := logger.Init(); err != nil {
		// Use fmt for initialization errors since logger isn't available yet
		os.Stderr.WriteString("failed to initialize logging: " + err.Error() + "\n")
		return 1
	}
	defer func() { _ = logger.Sync() }()

	loggerInstance := logger.Get()

	// Root context with cancel on SIGINT/SIGTERM.
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()
	// The first signal ends the live pass; a second one kills the process
	// even while the animation is being encoded.
	go releaseOnDone(ctx, stop)

	// Load configuration (defaults -> optional file -> env)
	cfg, err := config.Load(ctx)
	if err != nil {
		os.Stderr.WriteString("failed to load config: " + err.Error() + "\n")
		return 1
	}

	// Apply configured log level (fallback to info on invalid input)
	if err := logger.SetLevelString(cfg.LogLevel); err != nil {
		loggerInstance.Warn(ctx, "invalid log_level; falling back to info", logger.String("log_level", cfg.LogLevel), logger.Error(err))
		_ = logger.SetLevelString("info")
	}

	var srv *preview.Server
	if cfg.PreviewAddr != "" {
		srv = preview.New(cfg.PreviewAddr, preview.WithLogger(loggerInstance.Named("preview")))
		if err := srv.Start(ctx); err != nil {
			loggerInstance.Error(ctx, "failed to start preview server", logger.Error(err))
			return 1
		}
		defer func() {
			shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
			defer cancel()
			if err := srv.Shutdown(shutdownCtx); err != nil {
				loggerInstance.Error(ctx, "preview shutdown failed", logger.Error(err))
			}
		}()
	}

	svc, err := newService(cfg, loggerInstance, srv)
	if err != nil {
		loggerInstance.Error(ctx, "failed to build service", logger.Error(err))
		return 1
	}
	if err := svc.Run(ctx); err != nil {
		loggerInstance.Error(ctx, "run failed", logger.Error(err))
		return 1
	}
	return 0
}

// releaseOnDone calls stop once ctx is done, restoring default signal
// handling.
func releaseOnDone(ctx context.Context, stop context.CancelFunc) {
	<-ctx.Done()
	stop()
}

// newService wires the configured source, rasterizer, encoder and optional
// preview into an app.Service.
func newService(cfg *config.Config, l logger.Logger, srv *preview.Server) (*app.Service, error) {
	rasterizer, err := render.New(
		render.WithSize(cfg.Width, cfg.Height),
		render.WithDPI(cfg.DPI),
	)
	if err != nil {
		return nil, err
	}

	opts := []app.Option{
		app.WithLogger(l),
		app.WithSource(newSource(cfg, l)),
		app.WithQuery(nbastats.Query{
			LeagueID:   cfg.LeagueID,
			PlayerID:   cfg.PlayerID,
			GameID:     cfg.GameID,
			Season:     cfg.Season,
			SeasonType: cfg.SeasonType,
		}),
		app.WithTeam(cfg.Team),
		app.WithRenderer(rasterizer),
		app.WithEncoder(encoder.NewGIF(encoder.WithFPS(cfg.FPS))),
		app.WithOutputPath(cfg.OutputPath),
		app.WithMetricsFile(cfg.MetricsFile),
		app.WithInterval(cfg.FrameInterval()),
		app.WithMarkerSize(cfg.MarkerSize),
		app.WithLive(cfg.Live),
		app.WithCourtStyle(court.Style{
			Color:      cfg.LineColor,
			LineWidth:  cfg.LineWidth,
			OuterLines: cfg.OuterLines,
		}),
		app.WithCaptions(cfg.TitleLeft, cfg.TitleRight, cfg.Footer),
	}
	if srv != nil {
		opts = append(opts, app.WithPublisher(srv))
	}
	return app.New(opts...), nil
}

func newSource(cfg *config.Config, l logger.Logger) nbastats.Source {
	if cfg.SourceFile != "" {
		return nbastats.FileSource{Path: cfg.SourceFile}
	}
	return nbastats.NewClient(
		nbastats.WithBaseURL(cfg.StatsBaseURL),
		nbastats.WithTimeout(cfg.RequestTimeout()),
		nbastats.WithLogger(l.Named("nbastats")),
	)
}
