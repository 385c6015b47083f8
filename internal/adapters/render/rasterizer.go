package render

import (
	"bytes"
	"fmt"
	"image"
	"image/png"
	"math"
	"strings"

	"github.com/golang/freetype/truetype"
	"github.com/wcharczuk/go-chart/v2"
	"github.com/wcharczuk/go-chart/v2/drawing"

	"github.com/okian/shotchart/internal/domain/plot"
)

const (
	defaultWidth  = 1100
	defaultHeight = 800
	defaultDPI    = 100

	defaultFontSize = 10.0

	// Fraction of each canvas side left empty around the axes.
	axesPad = 0.03

	// Line spacing as a multiple of the measured glyph height.
	lineSpacing = 1.4
)

// Option applies a configuration option to the Rasterizer.
type Option func(*Rasterizer)

// WithSize sets the output size in pixels.
func WithSize(width, height int) Option {
	return func(r *Rasterizer) {
		if width > 0 && height > 0 {
			r.width, r.height = width, height
		}
	}
}

// WithDPI sets the resolution used to turn points into pixels.
func WithDPI(dpi float64) Option {
	return func(r *Rasterizer) {
		if dpi > 0 {
			r.dpi = dpi
		}
	}
}

// WithCanvasProvider replaces the PNG canvas, mainly for tests.
func WithCanvasProvider(p CanvasProvider) Option {
	return func(r *Rasterizer) {
		if p != nil {
			r.newCanvas = p
		}
	}
}

// WithFont sets the annotation font instead of the go-chart default.
func WithFont(f *truetype.Font) Option {
	return func(r *Rasterizer) {
		if f != nil {
			r.font = f
		}
	}
}

// Rasterizer turns a plot.Surface into an image.
type Rasterizer struct {
	width     int
	height    int
	dpi       float64
	newCanvas CanvasProvider
	font      *truetype.Font
}

// New creates a Rasterizer. The go-chart default font is loaded unless one
// is supplied.
func New(opts ...Option) (*Rasterizer, error) {
	r := &Rasterizer{
		width:     defaultWidth,
		height:    defaultHeight,
		dpi:       defaultDPI,
		newCanvas: PNGCanvas,
	}
	for _, opt := range opts {
		opt(r)
	}
	if r.font == nil {
		f, err := chart.GetDefaultFont()
		if err != nil {
			return nil, fmt.Errorf("%w: %w", ErrFont, err)
		}
		r.font = f
	}
	return r, nil
}

// Size returns the output size in pixels.
func (r *Rasterizer) Size() (int, int) { return r.width, r.height }

// Render draws the surface on a fresh canvas and decodes the result.
func (r *Rasterizer) Render(s *plot.Surface) (image.Image, error) {
	if s == nil {
		return nil, fmt.Errorf("%w: nil surface", ErrRender)
	}
	c, err := r.newCanvas(r.width, r.height)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrRender, err)
	}
	c.SetDPI(r.dpi)
	r.Draw(c, s)

	var buf bytes.Buffer
	if err := c.Save(&buf); err != nil {
		return nil, fmt.Errorf("%w: save: %w", ErrRender, err)
	}
	img, err := png.Decode(&buf)
	if err != nil {
		return nil, fmt.Errorf("%w: decode: %w", ErrRender, err)
	}
	return img, nil
}

// Draw paints the surface onto c: background, shapes in insertion order,
// scatter markers, then text.
func (r *Rasterizer) Draw(c Canvas, s *plot.Surface) {
	w, h := float64(r.width), float64(r.height)
	t := newTransform(s.Limits, w*axesPad, h*axesPad, w*(1-2*axesPad), h*(1-2*axesPad), s.EqualAspect)

	r.background(c)
	for _, shape := range s.Shapes {
		r.shape(c, t, shape)
	}
	r.scatter(c, t, &s.Scatter)
	for _, text := range s.Texts {
		r.text(c, t, text)
	}
}

// px converts a length in points to pixels.
func (r *Rasterizer) px(pt float64) float64 { return pt * r.dpi / 72 }

func (r *Rasterizer) background(c Canvas) {
	c.SetFillColor(drawing.ColorWhite)
	c.MoveTo(0, 0)
	c.LineTo(r.width, 0)
	c.LineTo(r.width, r.height)
	c.LineTo(0, r.height)
	c.Close()
	c.Fill()
}

func (r *Rasterizer) shape(c Canvas, t transform, shape plot.Shape) {
	style := shape.Style()
	if style.Width <= 0 && !style.Fill {
		return
	}

	switch s := shape.(type) {
	case plot.Circle:
		cx, cy := t.point(s.Center)
		c.ArcTo(cx, cy, s.Radius*t.sx, s.Radius*t.sy, 0, 2*math.Pi)
		c.Close()
	case plot.Rectangle:
		x0, y0 := t.point(s.Origin)
		x1, y1 := t.point(plot.Point{X: s.Origin.X + s.Width, Y: s.Origin.Y + s.Height})
		c.MoveTo(x0, y0)
		c.LineTo(x1, y0)
		c.LineTo(x1, y1)
		c.LineTo(x0, y1)
		c.Close()
	case plot.Arc:
		cx, cy := t.point(s.Center)
		// Pixel y points down, so counter-clockwise data angles are negated.
		c.ArcTo(cx, cy, s.Width/2*t.sx, s.Height/2*t.sy, -radians(s.Theta1), -radians(s.Sweep()))
	default:
		return
	}

	color := parseColor(style.Color)
	width := r.px(style.Width)
	c.SetStrokeColor(color)
	c.SetStrokeWidth(width)
	if style.Dashed {
		c.SetStrokeDashArray([]float64{3.7 * width, 1.6 * width})
	} else {
		c.SetStrokeDashArray(nil)
	}

	switch {
	case style.Fill && style.Width > 0:
		c.SetFillColor(color)
		c.FillStroke()
	case style.Fill:
		c.SetFillColor(color)
		c.Fill()
	default:
		c.Stroke()
	}
}

// scatter draws one filled disc per marker. Sizes are areas in points
// squared.
func (r *Rasterizer) scatter(c Canvas, t transform, s *plot.Scatter) {
	for i, p := range s.Offsets {
		size := 0.0
		if i < len(s.Sizes) {
			size = s.Sizes[i]
		}
		color := drawing.ColorBlack
		if i < len(s.FaceColors) {
			color = parseColor(s.FaceColors[i])
		}
		x, y := t.point(p)
		c.SetFillColor(color)
		c.Circle(MarkerRadius(size, r.dpi), x, y)
		c.Fill()
	}
}

// MarkerRadius returns the pixel radius of a marker whose area is size
// points squared.
func MarkerRadius(size, dpi float64) float64 {
	if size <= 0 {
		return 0
	}
	return math.Sqrt(size) / 2 * dpi / 72
}

func (r *Rasterizer) text(c Canvas, t transform, text plot.Text) {
	if text.Body == "" {
		return
	}
	var x, y float64
	if text.Figure {
		x = text.At.X * float64(r.width)
		y = (1 - text.At.Y) * float64(r.height)
	} else {
		x, y = t.xf(text.At.X), t.yf(text.At.Y)
	}

	c.SetFont(r.font)
	c.SetFontColor(drawing.ColorBlack)
	size := text.Size
	if size <= 0 {
		size = defaultFontSize
	}
	c.SetFontSize(size)

	lines := strings.Split(text.Body, "\n")
	lineHeight := float64(c.MeasureText("Ag").Height()) * lineSpacing
	for i, line := range lines {
		var baseline float64
		if text.VAlign == plot.AlignTop {
			baseline = y + float64(i+1)*lineHeight
		} else {
			baseline = y - float64(len(lines)-1-i)*lineHeight
		}
		lx := x
		if text.Align == plot.AlignRight {
			lx -= float64(c.MeasureText(line).Width())
		}
		c.Text(line, round(lx), round(baseline))
		if text.Bold {
			c.Text(line, round(lx)+1, round(baseline))
		}
	}
}
