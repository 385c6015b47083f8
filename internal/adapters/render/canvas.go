// Package render rasterises plot surfaces with the go-chart drawing backend.
package render

import (
	"io"
	"math"
	"strings"

	"github.com/golang/freetype/truetype"
	"github.com/wcharczuk/go-chart/v2"
	"github.com/wcharczuk/go-chart/v2/drawing"

	"github.com/okian/shotchart/internal/domain/plot"
)

// Canvas is the part of chart.Renderer the rasterizer draws with.
type Canvas interface {
	SetDPI(dpi float64)
	SetStrokeColor(c drawing.Color)
	SetFillColor(c drawing.Color)
	SetStrokeWidth(width float64)
	SetStrokeDashArray(dashArray []float64)
	MoveTo(x, y int)
	LineTo(x, y int)
	ArcTo(cx, cy int, rx, ry, startAngle, delta float64)
	Close()
	Stroke()
	Fill()
	FillStroke()
	Circle(radius float64, x, y int)
	SetFont(f *truetype.Font)
	SetFontColor(c drawing.Color)
	SetFontSize(size float64)
	Text(body string, x, y int)
	MeasureText(body string) chart.Box
	Save(w io.Writer) error
}

// CanvasProvider creates a blank canvas of the given pixel size.
type CanvasProvider func(width, height int) (Canvas, error)

// PNGCanvas is the default provider backed by chart.PNG.
func PNGCanvas(width, height int) (Canvas, error) {
	r, err := chart.PNG(width, height)
	if err != nil {
		return nil, err
	}
	return r, nil
}

// parseColor accepts "#rrggbb" or "rrggbb"; empty means black.
func parseColor(hex string) drawing.Color {
	hex = strings.TrimPrefix(strings.TrimSpace(hex), "#")
	if hex == "" {
		return drawing.ColorBlack
	}
	return drawing.ColorFromHex(hex)
}

// transform maps data coordinates (y up) into pixels (y down).
type transform struct {
	limits plot.Limits
	ox, oy float64
	sx, sy float64
}

// newTransform fits limits into the box at (left, top) of size w x h. With
// equal aspect one data unit has the same length on both axes and the
// window is centred in the box.
func newTransform(limits plot.Limits, left, top, w, h float64, equal bool) transform {
	sx := w / limits.Width()
	sy := h / limits.Height()
	if equal {
		s := math.Min(sx, sy)
		left += (w - s*limits.Width()) / 2
		top += (h - s*limits.Height()) / 2
		sx, sy = s, s
	}
	return transform{limits: limits, ox: left, oy: top, sx: sx, sy: sy}
}

func (t transform) xf(x float64) float64 { return t.ox + (x-t.limits.XMin)*t.sx }
func (t transform) yf(y float64) float64 { return t.oy + (t.limits.YMax-y)*t.sy }

func (t transform) point(p plot.Point) (int, int) {
	return round(t.xf(p.X)), round(t.yf(p.Y))
}

func round(v float64) int { return int(math.Round(v)) }

func radians(deg float64) float64 { return deg * math.Pi / 180 }
