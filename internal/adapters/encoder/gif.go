// Package encoder assembles rendered frames into an animated image file.
package encoder

import (
	"bufio"
	"fmt"
	"image"
	"image/color/palette"
	"image/draw"
	"image/gif"
	"io"
	"os"
	"sync"
)

const defaultFPS = 5

// Loop counts understood by image/gif.
const (
	LoopForever = 0
	PlayOnce    = -1
)

// Option applies a configuration option to the GIF encoder.
type Option func(*GIF)

// WithFPS sets the playback rate. The per-frame delay is 100/fps
// hundredths of a second.
func WithFPS(fps int) Option {
	return func(g *GIF) {
		if fps > 0 {
			g.fps = fps
		}
	}
}

// WithLoopCount sets how often the animation repeats; see LoopForever and
// PlayOnce.
func WithLoopCount(n int) Option {
	return func(g *GIF) {
		g.loop = n
	}
}

// GIF collects frames in memory and writes them as one animated GIF.
// It is safe for concurrent use.
type GIF struct {
	mu     sync.Mutex
	fps    int
	loop   int
	frames []*image.Paletted
}

// NewGIF creates an empty encoder. By default the animation plays once.
func NewGIF(opts ...Option) *GIF {
	g := &GIF{fps: defaultFPS, loop: PlayOnce}
	for _, opt := range opts {
		opt(g)
	}
	return g
}

// Delay returns the per-frame delay in hundredths of a second.
func (g *GIF) Delay() int {
	d := 100 / g.fps
	if d < 1 {
		d = 1
	}
	return d
}

// Len returns the number of frames added so far.
func (g *GIF) Len() int {
	g.mu.Lock()
	defer g.mu.Unlock()
	return len(g.frames)
}

// Add palettises img and appends it as the next frame.
func (g *GIF) Add(img image.Image) error {
	if img == nil {
		return fmt.Errorf("%w: nil frame", ErrEncode)
	}
	p := image.NewPaletted(img.Bounds(), palette.Plan9)
	draw.FloydSteinberg.Draw(p, img.Bounds(), img, img.Bounds().Min)

	g.mu.Lock()
	defer g.mu.Unlock()
	g.frames = append(g.frames, p)
	return nil
}

// Encode writes the animation to w.
func (g *GIF) Encode(w io.Writer) error {
	g.mu.Lock()
	defer g.mu.Unlock()

	if len(g.frames) == 0 {
		return ErrNoFrames
	}
	anim := &gif.GIF{
		Image:     g.frames,
		Delay:     make([]int, len(g.frames)),
		LoopCount: g.loop,
	}
	delay := g.Delay()
	for i := range anim.Delay {
		anim.Delay[i] = delay
	}
	if err := gif.EncodeAll(w, anim); err != nil {
		return fmt.Errorf("%w: %w", ErrEncode, err)
	}
	return nil
}

// WriteFile encodes to path and returns the number of bytes written. The
// parent directory must exist. A partially written file is removed.
func (g *GIF) WriteFile(path string) (int64, error) {
	if g.Len() == 0 {
		return 0, ErrNoFrames
	}
	f, err := os.Create(path)
	if err != nil {
		return 0, fmt.Errorf("%w: %w", ErrEncode, err)
	}
	cw := &countingWriter{w: f}
	bw := bufio.NewWriter(cw)
	if err := g.Encode(bw); err != nil {
		discard(f, path)
		return 0, err
	}
	if err := bw.Flush(); err != nil {
		discard(f, path)
		return 0, fmt.Errorf("%w: %w", ErrEncode, err)
	}
	if err := f.Close(); err != nil {
		_ = os.Remove(path)
		return 0, fmt.Errorf("%w: %w", ErrEncode, err)
	}
	return cw.n, nil
}

func discard(f *os.File, path string) {
	_ = f.Close()
	_ = os.Remove(path)
}

type countingWriter struct {
	w io.Writer
	n int64
}

func (c *countingWriter) Write(p []byte) (int, error) {
	n, err := c.w.Write(p)
	c.n += int64(n)
	return n, err
}
