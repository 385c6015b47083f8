package animation_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/okian/shotchart/internal/domain/animation"
	"github.com/okian/shotchart/internal/domain/plot"
	"github.com/okian/shotchart/internal/domain/shot"
	. "github.com/smartystreets/goconvey/convey"
)

const (
	primary   = "#006BB6"
	secondary = "#FDB927"
)

func scenario() ([]plot.Point, []string) {
	records := []shot.Record{
		{LocX: -10, LocY: 20, MadeFlag: 1},
		{LocX: 5, LocY: 15, MadeFlag: 0},
		{LocX: 0, LocY: 30, MadeFlag: 1},
	}
	return shot.Reshape(records, shot.Palette{Primary: primary, Secondary: secondary})
}

type recorder struct {
	frames []animation.Frame
	at     []time.Time
	failAt int
}

func (r *recorder) DrawFrame(_ context.Context, f animation.Frame) error {
	if r.failAt > 0 && f.Tick == r.failAt {
		return errors.New("disk full")
	}
	r.frames = append(r.frames, f)
	r.at = append(r.at, time.Now())
	return nil
}

func TestNew(t *testing.T) {
	Convey("Given misaligned inputs", t, func() {
		_, err := animation.New([]plot.Point{{}, {}}, []string{primary})

		Convey("Then ErrMisaligned is returned", func() {
			So(errors.Is(err, animation.ErrMisaligned), ShouldBeTrue)
		})
	})

	Convey("Given options", t, func() {
		d, err := animation.New(nil, nil, animation.WithInterval(0), animation.WithMarkerSize(-1))

		Convey("Then invalid values keep the defaults", func() {
			So(err, ShouldBeNil)
			So(d.Interval(), ShouldEqual, 500*time.Millisecond)
			So(d.Tick(), ShouldEqual, -1)
		})
	})
}

func TestFramePrefix(t *testing.T) {
	Convey("Given the three shot scenario", t, func() {
		points, colors := scenario()
		d, err := animation.New(points, colors)
		So(err, ShouldBeNil)

		Convey("Then tick 0 reveals only the first shot", func() {
			f := d.Frame(0)
			So(f.Points, ShouldResemble, []plot.Point{{X: 10, Y: 20}})
			So(f.Colors, ShouldResemble, []string{primary})
			So(f.Sizes, ShouldResemble, []float64{100})
			So(f.Last(), ShouldBeFalse)
		})

		Convey("Then tick 2 reveals all three shots", func() {
			f := d.Frame(2)
			So(f.Points, ShouldResemble, []plot.Point{{X: 10, Y: 20}, {X: -5, Y: 15}, {X: 0, Y: 30}})
			So(f.Colors, ShouldResemble, []string{primary, secondary, primary})
			So(f.Last(), ShouldBeTrue)
		})

		Convey("Then every tick N has N+1 entries and earlier entries never change", func() {
			prev := d.Frame(0)
			for n := 0; n < d.Len(); n++ {
				f := d.Frame(n)
				So(f.Points, ShouldHaveLength, n+1)
				So(f.Colors, ShouldHaveLength, n+1)
				So(f.Points[:len(prev.Points)], ShouldResemble, prev.Points)
				So(f.Colors[:len(prev.Colors)], ShouldResemble, prev.Colors)
				prev = f
			}
		})

		Convey("Then out of range ticks are clamped", func() {
			So(d.Frame(-3).Tick, ShouldEqual, 0)
			So(d.Frame(99).Tick, ShouldEqual, 2)
		})

		Convey("Then appending to a frame does not disturb later frames", func() {
			f := d.Frame(0)
			_ = append(f.Points, plot.Point{X: 999})
			So(d.Frame(1).Points[1], ShouldResemble, plot.Point{X: -5, Y: 15})
		})
	})
}

func TestStep(t *testing.T) {
	Convey("Given a fresh driver", t, func() {
		points, colors := scenario()
		d, _ := animation.New(points, colors)

		Convey("When stepping past the end", func() {
			var ticks []int
			for {
				f, ok := d.Step()
				if !ok {
					break
				}
				ticks = append(ticks, f.Tick)
			}

			Convey("Then ticks increase by one and stop at Len-1", func() {
				So(ticks, ShouldResemble, []int{0, 1, 2})
				So(d.Tick(), ShouldEqual, 2)
			})

			Convey("And Reset rewinds before the first tick", func() {
				d.Reset()
				So(d.Tick(), ShouldEqual, -1)
				f, ok := d.Step()
				So(ok, ShouldBeTrue)
				So(f.Tick, ShouldEqual, 0)
			})
		})
	})
}

func TestApply(t *testing.T) {
	Convey("Given a surface scatter", t, func() {
		points, colors := scenario()
		d, _ := animation.New(points, colors, animation.WithMarkerSize(64))
		s := plot.NewSurface()

		Convey("When applying successive frames", func() {
			animation.Apply(&s.Scatter, d.Frame(0))
			So(s.Scatter.Len(), ShouldEqual, 1)
			animation.Apply(&s.Scatter, d.Frame(2))

			Convey("Then the scatter holds the latest prefix", func() {
				So(s.Scatter.Len(), ShouldEqual, 3)
				So(s.Scatter.Sizes, ShouldResemble, []float64{64, 64, 64})
				So(s.Scatter.FaceColors, ShouldResemble, colors)
			})
		})
	})
}

func TestRun(t *testing.T) {
	Convey("Given a timed pass", t, func() {
		points, colors := scenario()
		interval := 20 * time.Millisecond
		d, _ := animation.New(points, colors, animation.WithInterval(interval))
		rec := &recorder{}

		Convey("When it runs to completion", func() {
			start := time.Now()
			err := d.Run(context.Background(), rec)

			Convey("Then every tick is drawn once, in order, spaced by the interval", func() {
				So(err, ShouldBeNil)
				So(rec.frames, ShouldHaveLength, 3)
				for i, f := range rec.frames {
					So(f.Tick, ShouldEqual, i)
				}
				So(rec.at[0].Sub(start), ShouldBeLessThan, interval)
				So(rec.at[2].Sub(start), ShouldBeGreaterThanOrEqualTo, 2*interval-5*time.Millisecond)
			})
		})

		Convey("When the context is cancelled mid-pass", func() {
			ctx, cancel := context.WithCancel(context.Background())
			sink := animation.SinkFunc(func(_ context.Context, f animation.Frame) error {
				rec.frames = append(rec.frames, f)
				cancel()
				return nil
			})
			err := d.Run(ctx, sink)

			Convey("Then the pass stops with the context error", func() {
				So(errors.Is(err, context.Canceled), ShouldBeTrue)
				So(rec.frames, ShouldHaveLength, 1)
			})
		})

		Convey("When the sink fails", func() {
			rec.failAt = 1
			err := d.Run(context.Background(), rec)

			Convey("Then the error is returned with the tick", func() {
				So(err, ShouldNotBeNil)
				So(err.Error(), ShouldContainSubstring, "tick 1")
				So(rec.frames, ShouldHaveLength, 1)
			})
		})
	})

	Convey("Given an empty driver", t, func() {
		d, _ := animation.New(nil, nil)
		rec := &recorder{}

		Convey("Then both passes draw nothing", func() {
			So(d.Run(context.Background(), rec), ShouldBeNil)
			So(d.Replay(context.Background(), rec), ShouldBeNil)
			So(rec.frames, ShouldBeEmpty)
		})
	})
}

func TestReplay(t *testing.T) {
	Convey("Given a driver with a long interval", t, func() {
		points, colors := scenario()
		d, _ := animation.New(points, colors, animation.WithInterval(time.Hour))
		rec := &recorder{}

		Convey("When replaying", func() {
			start := time.Now()
			err := d.Replay(context.Background(), rec)

			Convey("Then all ticks are drawn without waiting", func() {
				So(err, ShouldBeNil)
				So(rec.frames, ShouldHaveLength, 3)
				So(rec.frames[2].Last(), ShouldBeTrue)
				So(time.Since(start), ShouldBeLessThan, time.Second)
			})
		})

		Convey("When replaying after a timed pass consumed the ticks", func() {
			for {
				if _, ok := d.Step(); !ok {
					break
				}
			}
			So(d.Replay(context.Background(), rec), ShouldBeNil)

			Convey("Then the sequence starts again from tick 0", func() {
				So(rec.frames[0].Tick, ShouldEqual, 0)
				So(rec.frames, ShouldHaveLength, 3)
			})
		})

		Convey("When the context is already cancelled", func() {
			ctx, cancel := context.WithCancel(context.Background())
			cancel()

			Convey("Then nothing is drawn", func() {
				So(errors.Is(d.Replay(ctx, rec), context.Canceled), ShouldBeTrue)
				So(rec.frames, ShouldBeEmpty)
			})
		})
	})
}
