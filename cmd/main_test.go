package main

import (
	"context"
	"image/gif"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/okian/shotchart/internal/adapters/http/preview"
	"github.com/okian/shotchart/internal/adapters/nbastats"
	"github.com/okian/shotchart/internal/config"
	"github.com/okian/shotchart/pkg/logger"
	"github.com/smartystreets/goconvey/convey"
)

const fixture = "../internal/adapters/nbastats/testdata/shotchartdetail.json"

func TestMainFunction(t *testing.T) {
	convey.Convey("Given the main application", t, func() {
		convey.Convey("When testing configuration loading", func() {
			t.Setenv("SHOTCHART_PLAYER_ID", "201939")
			t.Setenv("SHOTCHART_FPS", "10")

			convey.Convey("Then configuration should be loadable", func() {
				cfg, err := config.Load(context.Background())
				convey.So(err, convey.ShouldBeNil)
				convey.So(cfg.PlayerID, convey.ShouldEqual, "201939")
				convey.So(cfg.FPS, convey.ShouldEqual, 10)
			})
		})

		convey.Convey("When choosing a source", func() {
			cfg := config.New(context.Background())

			convey.Convey("Then the API client is the default", func() {
				_, ok := newSource(cfg, logger.Nop()).(*nbastats.Client)
				convey.So(ok, convey.ShouldBeTrue)
			})

			convey.Convey("And a source file switches to offline mode", func() {
				cfg.SourceFile = fixture
				src, ok := newSource(cfg, logger.Nop()).(nbastats.FileSource)
				convey.So(ok, convey.ShouldBeTrue)
				convey.So(src.Path, convey.ShouldEqual, fixture)
			})
		})

		convey.Convey("When testing service creation", func() {
			cfg := config.New(context.Background())
			svc, err := newService(cfg, logger.Nop(), preview.New(":0"))

			convey.Convey("Then the service should be creatable", func() {
				convey.So(err, convey.ShouldBeNil)
				convey.So(svc, convey.ShouldNotBeNil)
			})
		})
	})
}

func TestReleaseOnDone(t *testing.T) {
	convey.Convey("Given a signal context", t, func() {
		ctx, cancel := context.WithCancel(context.Background())
		released := make(chan struct{})
		go releaseOnDone(ctx, func() { close(released) })

		convey.Convey("When the first signal cancels it", func() {
			cancel()

			convey.Convey("Then signal handling is released", func() {
				stopped := false
				select {
				case <-released:
					stopped = true
				case <-time.After(time.Second):
				}
				convey.So(stopped, convey.ShouldBeTrue)
			})
		})
	})
}

func TestOfflineRun(t *testing.T) {
	convey.Convey("Given a saved response and a small figure", t, func() {
		cfg := config.New(context.Background())
		cfg.SourceFile = fixture
		cfg.Live = false
		cfg.Width, cfg.Height = 330, 240
		cfg.OutputPath = filepath.Join(t.TempDir(), "KLAY.gif")

		convey.Convey("When the service runs end to end", func() {
			svc, err := newService(cfg, logger.Nop(), nil)
			convey.So(err, convey.ShouldBeNil)
			err = svc.Run(context.Background())

			convey.Convey("Then a GIF with one frame per shot is written", func() {
				convey.So(err, convey.ShouldBeNil)
				f, openErr := os.Open(cfg.OutputPath)
				convey.So(openErr, convey.ShouldBeNil)
				defer f.Close()
				anim, decErr := gif.DecodeAll(f)
				convey.So(decErr, convey.ShouldBeNil)
				convey.So(anim.Image, convey.ShouldHaveLength, 3)
				convey.So(anim.Image[0].Bounds().Dx(), convey.ShouldEqual, 330)
			})
		})
	})
}
