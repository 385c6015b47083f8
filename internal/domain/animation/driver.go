// Package animation reveals a shot sequence one prefix at a time.
//
// Tick N shows shots [0..N]: the first tick already shows one shot, and the
// last tick, Len()-1, shows all of them. Passes do not loop.
package animation

import (
	"context"
	"fmt"
	"time"

	"github.com/okian/shotchart/internal/domain/plot"
)

const (
	defaultInterval   = 500 * time.Millisecond
	defaultMarkerSize = 100.0
)

// Frame is the visible state for one tick. Slices alias the driver's
// sequences and must be treated as read-only.
type Frame struct {
	Tick   int
	Total  int
	Points []plot.Point
	Sizes  []float64
	Colors []string
}

// Last reports whether this is the terminal tick.
func (f Frame) Last() bool { return f.Tick == f.Total-1 }

// Sink receives frames in tick order.
type Sink interface {
	DrawFrame(ctx context.Context, f Frame) error
}

// SinkFunc adapts a function to Sink.
type SinkFunc func(ctx context.Context, f Frame) error

// DrawFrame calls fn.
func (fn SinkFunc) DrawFrame(ctx context.Context, f Frame) error { return fn(ctx, f) }

// Option applies a configuration option to the Driver.
type Option func(*Driver)

// WithInterval sets the delay between ticks of the timed pass.
func WithInterval(d time.Duration) Option {
	return func(dr *Driver) {
		if d > 0 {
			dr.interval = d
		}
	}
}

// WithMarkerSize sets the marker area, in points squared.
func WithMarkerSize(size float64) Option {
	return func(dr *Driver) {
		if size > 0 {
			dr.markerSize = size
		}
	}
}

// Driver owns the shot sequence and the current tick.
type Driver struct {
	points     []plot.Point
	colors     []string
	sizes      []float64
	interval   time.Duration
	markerSize float64

	// tick is the last tick handed out by Step; -1 before the first.
	tick int
}

// New creates a driver over index-aligned points and colours.
func New(points []plot.Point, colors []string, opts ...Option) (*Driver, error) {
	if len(points) != len(colors) {
		return nil, fmt.Errorf("%w: %d points, %d colors", ErrMisaligned, len(points), len(colors))
	}
	d := &Driver{
		points:     points,
		colors:     colors,
		interval:   defaultInterval,
		markerSize: defaultMarkerSize,
		tick:       -1,
	}
	for _, opt := range opts {
		opt(d)
	}
	d.sizes = make([]float64, len(points))
	for i := range d.sizes {
		d.sizes[i] = d.markerSize
	}
	return d, nil
}

// Len returns the number of ticks in a pass.
func (d *Driver) Len() int { return len(d.points) }

// Interval returns the delay between ticks of the timed pass.
func (d *Driver) Interval() time.Duration { return d.interval }

// Tick returns the last tick handed out, or -1 before the first.
func (d *Driver) Tick() int { return d.tick }

// Frame returns the visible prefix for tick n. n is clamped to the valid
// range; an empty driver yields an empty frame.
func (d *Driver) Frame(n int) Frame {
	total := d.Len()
	if total == 0 {
		return Frame{Tick: -1}
	}
	if n < 0 {
		n = 0
	}
	if n > total-1 {
		n = total - 1
	}
	end := n + 1
	return Frame{
		Tick:   n,
		Total:  total,
		Points: d.points[:end:end],
		Sizes:  d.sizes[:end:end],
		Colors: d.colors[:end:end],
	}
}

// Step advances to the next tick and returns its frame. It reports false
// once the terminal tick has been handed out.
func (d *Driver) Step() (Frame, bool) {
	if d.tick+1 >= d.Len() {
		return Frame{}, false
	}
	d.tick++
	return d.Frame(d.tick), true
}

// Reset rewinds the driver before the first tick.
func (d *Driver) Reset() { d.tick = -1 }

// Apply pushes a frame into the surface's scatter collection.
func Apply(s *plot.Scatter, f Frame) {
	s.Set(f.Points, f.Sizes, f.Colors)
}

// Run performs the timed pass: tick 0 is drawn immediately and each later
// tick one interval after the previous. It returns after the terminal tick,
// on the first sink error, or when ctx is done.
func (d *Driver) Run(ctx context.Context, sink Sink) error {
	d.Reset()
	if d.Len() == 0 {
		return nil
	}

	ticker := time.NewTicker(d.interval)
	defer ticker.Stop()

	for {
		f, ok := d.Step()
		if !ok {
			return nil
		}
		if err := sink.DrawFrame(ctx, f); err != nil {
			return fmt.Errorf("tick %d: %w", f.Tick, err)
		}
		if f.Last() {
			return nil
		}
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-ticker.C:
		}
	}
}

// Replay performs the same tick sequence as Run without waiting between
// ticks.
func (d *Driver) Replay(ctx context.Context, sink Sink) error {
	d.Reset()
	for {
		if err := ctx.Err(); err != nil {
			return err
		}
		f, ok := d.Step()
		if !ok {
			return nil
		}
		if err := sink.DrawFrame(ctx, f); err != nil {
			return fmt.Errorf("tick %d: %w", f.Tick, err)
		}
	}
}
