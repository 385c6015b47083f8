package render

import (
	"errors"
	"fmt"
	"image"
	"image/color"
	"image/png"
	"io"
	"testing"

	"github.com/golang/freetype/truetype"
	"github.com/wcharczuk/go-chart/v2"
	"github.com/wcharczuk/go-chart/v2/drawing"

	"github.com/okian/shotchart/internal/domain/court"
	"github.com/okian/shotchart/internal/domain/plot"
	. "github.com/smartystreets/goconvey/convey"
)

// fakeCanvas records drawing calls as strings.
type fakeCanvas struct {
	calls   []string
	saveErr error
}

func (f *fakeCanvas) rec(format string, a ...any) {
	f.calls = append(f.calls, fmt.Sprintf(format, a...))
}

func hex(c drawing.Color) string { return fmt.Sprintf("%02x%02x%02x", c.R, c.G, c.B) }

func (f *fakeCanvas) SetDPI(dpi float64)             { f.rec("SetDPI %.0f", dpi) }
func (f *fakeCanvas) SetStrokeColor(c drawing.Color) { f.rec("SetStrokeColor %s", hex(c)) }
func (f *fakeCanvas) SetFillColor(c drawing.Color)   { f.rec("SetFillColor %s", hex(c)) }
func (f *fakeCanvas) SetStrokeWidth(w float64)       { f.rec("SetStrokeWidth %.4f", w) }
func (f *fakeCanvas) SetStrokeDashArray(d []float64) { f.rec("SetStrokeDashArray %d", len(d)) }
func (f *fakeCanvas) MoveTo(x, y int)                { f.rec("MoveTo %d %d", x, y) }
func (f *fakeCanvas) LineTo(x, y int)                { f.rec("LineTo %d %d", x, y) }
func (f *fakeCanvas) ArcTo(cx, cy int, rx, ry, start, delta float64) {
	f.rec("ArcTo %d %d %.2f %.2f %.4f %.4f", cx, cy, rx, ry, start, delta)
}
func (f *fakeCanvas) Close()                          { f.rec("Close") }
func (f *fakeCanvas) Stroke()                         { f.rec("Stroke") }
func (f *fakeCanvas) Fill()                           { f.rec("Fill") }
func (f *fakeCanvas) FillStroke()                     { f.rec("FillStroke") }
func (f *fakeCanvas) Circle(radius float64, x, y int) { f.rec("Circle %.4f %d %d", radius, x, y) }
func (f *fakeCanvas) SetFont(*truetype.Font)          { f.rec("SetFont") }
func (f *fakeCanvas) SetFontColor(c drawing.Color)    { f.rec("SetFontColor %s", hex(c)) }
func (f *fakeCanvas) SetFontSize(size float64)        { f.rec("SetFontSize %.0f", size) }
func (f *fakeCanvas) Text(body string, x, y int)      { f.rec("Text %s %d %d", body, x, y) }

// MeasureText pretends every glyph is 6x10 pixels.
func (f *fakeCanvas) MeasureText(body string) chart.Box {
	return chart.Box{Right: 6 * len(body), Bottom: 10}
}

func (f *fakeCanvas) Save(w io.Writer) error {
	if f.saveErr != nil {
		return f.saveErr
	}
	return png.Encode(w, image.NewRGBA(image.Rect(0, 0, 2, 2)))
}

// On a 600x600 canvas the half-court window maps at 0.94 px per unit with
// an 18 px pad, so the hoop lands on (300, 488).
func newFakeRasterizer(c *fakeCanvas) *Rasterizer {
	r, err := New(
		WithSize(600, 600),
		WithCanvasProvider(func(int, int) (Canvas, error) { return c, nil }),
	)
	So(err, ShouldBeNil)
	return r
}

func drawOnly(shapes ...plot.Shape) []string {
	c := &fakeCanvas{}
	r := newFakeRasterizer(c)
	s := plot.NewSurface()
	for _, shape := range shapes {
		s.AddShape(shape)
	}
	r.Draw(c, s)
	// Skip the background fill.
	return c.calls[7:]
}

func TestDrawShapes(t *testing.T) {
	black := plot.LineStyle{Color: "#000000", Width: 2}

	Convey("Given the background", t, func() {
		c := &fakeCanvas{}
		newFakeRasterizer(c).Draw(c, plot.NewSurface())

		Convey("Then the whole canvas is filled white first", func() {
			So(c.calls, ShouldResemble, []string{
				"SetFillColor ffffff",
				"MoveTo 0 0", "LineTo 600 0", "LineTo 600 600", "LineTo 0 600",
				"Close", "Fill",
			})
		})
	})

	Convey("Given the hoop circle", t, func() {
		calls := drawOnly(plot.Circle{Radius: court.HoopRadius, Line: black})

		Convey("Then it is stroked around the mapped centre", func() {
			So(calls[0], ShouldEqual, "ArcTo 300 488 7.05 7.05 0.0000 6.2832")
			So(calls, ShouldContain, "SetStrokeWidth 2.7778")
			So(calls, ShouldContain, "SetStrokeDashArray 0")
			So(calls[len(calls)-1], ShouldEqual, "Stroke")
		})
	})

	Convey("Given the three point arc", t, func() {
		calls := drawOnly(plot.Arc{Width: 475, Height: 475, Theta1: 22, Theta2: 158, Line: black})

		Convey("Then angles are flipped for the y-down canvas", func() {
			So(calls[0], ShouldEqual, "ArcTo 300 488 223.25 223.25 -0.3840 -2.3736")
		})
	})

	Convey("Given a dashed arc", t, func() {
		dashed := black
		dashed.Dashed = true
		calls := drawOnly(plot.Arc{Center: plot.Point{Y: 142.5}, Width: 120, Height: 120, Theta1: 180, Theta2: 0, Line: dashed})

		Convey("Then a dash pattern is set", func() {
			So(calls, ShouldContain, "SetStrokeDashArray 2")
			So(calls[0], ShouldEqual, "ArcTo 300 354 56.40 56.40 -3.1416 -3.1416")
		})
	})

	Convey("Given a filled rectangle without an outline", t, func() {
		filled := plot.LineStyle{Color: "#006BB6", Fill: true}
		calls := drawOnly(plot.Rectangle{Origin: plot.Point{X: -220, Y: -47.5}, Width: 0, Height: 140, Line: filled})

		Convey("Then it is filled and not stroked", func() {
			So(calls[:5], ShouldResemble, []string{
				"MoveTo 93 533", "LineTo 93 533", "LineTo 93 401", "LineTo 93 401", "Close",
			})
			So(calls, ShouldContain, "SetFillColor 006bb6")
			So(calls[len(calls)-1], ShouldEqual, "Fill")
			So(calls, ShouldNotContain, "Stroke")
		})
	})

	Convey("Given a filled rectangle with an outline", t, func() {
		filled := black
		filled.Fill = true
		calls := drawOnly(plot.Rectangle{Origin: plot.Point{X: -30, Y: -7.5}, Width: 60, Height: -1, Line: filled})

		Convey("Then it is filled and stroked together", func() {
			So(calls[len(calls)-1], ShouldEqual, "FillStroke")
		})
	})

	Convey("Given an invisible shape", t, func() {
		calls := drawOnly(plot.Circle{Radius: 10, Line: plot.LineStyle{Color: "#000000"}})

		Convey("Then nothing is drawn", func() {
			So(calls, ShouldBeEmpty)
		})
	})
}

func TestDrawScatter(t *testing.T) {
	Convey("Given a scatter with two markers", t, func() {
		c := &fakeCanvas{}
		r := newFakeRasterizer(c)
		s := plot.NewSurface()
		s.Scatter.Set(
			[]plot.Point{{X: 0, Y: 0}, {X: -100, Y: 200}},
			[]float64{100, 100},
			[]string{"#006BB6", "#FDB927"},
		)
		r.Draw(c, s)

		Convey("Then each marker is a filled disc in its own colour", func() {
			So(c.calls, ShouldContain, "Circle 6.9444 300 488")
			So(c.calls, ShouldContain, "Circle 6.9444 206 300")
			So(c.calls, ShouldContain, "SetFillColor 006bb6")
			So(c.calls, ShouldContain, "SetFillColor fdb927")
		})
	})

	Convey("Given marker sizes", t, func() {
		Convey("Then the radius follows the area in points squared", func() {
			So(MarkerRadius(100, 72), ShouldEqual, 5)
			So(MarkerRadius(400, 144), ShouldEqual, 20)
			So(MarkerRadius(0, 100), ShouldEqual, 0)
		})
	})
}

func TestDrawText(t *testing.T) {
	Convey("Given a bold right aligned caption in data space", t, func() {
		c := &fakeCanvas{}
		r := newFakeRasterizer(c)
		s := plot.NewSurface()
		s.AddText(plot.Text{At: plot.Point{X: 240, Y: 385}, Body: "GSW @ CHI\n10/29/18", Size: 9, Bold: true, Align: plot.AlignRight})
		r.Draw(c, s)

		Convey("Then lines stack upward from the anchor baseline", func() {
			So(c.calls, ShouldContain, "SetFontSize 9")
			So(c.calls, ShouldContain, "Text GSW @ CHI 472 112")
			So(c.calls, ShouldContain, "Text 10/29/18 478 126")
		})

		Convey("Then bold text is drawn twice", func() {
			So(c.calls, ShouldContain, "Text GSW @ CHI 473 112")
		})
	})

	Convey("Given a top aligned figure caption", t, func() {
		c := &fakeCanvas{}
		r := newFakeRasterizer(c)
		s := plot.NewSurface()
		s.AddText(plot.Text{At: plot.Point{X: 0.8, Y: 0.09}, Body: "Data", Align: plot.AlignRight, VAlign: plot.AlignTop, Figure: true})
		r.Draw(c, s)

		Convey("Then it is placed relative to the figure with the default size", func() {
			So(c.calls, ShouldContain, "SetFontSize 10")
			So(c.calls, ShouldContain, "Text Data 456 560")
		})
	})
}

func TestTransform(t *testing.T) {
	Convey("Given a window that is not square", t, func() {
		lim := plot.Limits{XMin: 0, XMax: 100, YMin: 0, YMax: 50}

		Convey("Then equal aspect centres the window with one scale", func() {
			tr := newTransform(lim, 0, 0, 400, 400, true)
			So(tr.sx, ShouldEqual, tr.sy)
			x, y := tr.point(plot.Point{X: 0, Y: 50})
			So(x, ShouldEqual, 0)
			So(y, ShouldEqual, 100)
		})

		Convey("Then free aspect stretches each axis", func() {
			tr := newTransform(lim, 0, 0, 400, 400, false)
			x, y := tr.point(plot.Point{X: 100, Y: 0})
			So(x, ShouldEqual, 400)
			So(y, ShouldEqual, 400)
		})
	})

	Convey("Given hex colours", t, func() {
		So(parseColor("#006BB6"), ShouldResemble, parseColor("006bb6"))
		So(parseColor(""), ShouldResemble, drawing.ColorBlack)
	})
}

func TestRender(t *testing.T) {
	Convey("Given a failing canvas", t, func() {
		c := &fakeCanvas{saveErr: errors.New("boom")}
		r := newFakeRasterizer(c)

		Convey("Then Render wraps the error", func() {
			_, err := r.Render(plot.NewSurface())
			So(errors.Is(err, ErrRender), ShouldBeTrue)
		})
	})

	Convey("Given a nil surface", t, func() {
		r := newFakeRasterizer(&fakeCanvas{})
		_, err := r.Render(nil)
		So(errors.Is(err, ErrRender), ShouldBeTrue)
	})

	Convey("Given the go-chart PNG canvas", t, func() {
		r, err := New(WithSize(220, 160))
		So(err, ShouldBeNil)

		s := court.Draw(nil, court.DefaultStyle())
		s.Scatter.Set([]plot.Point{{X: 0, Y: 300}}, []float64{400}, []string{"#006BB6"})
		s.AddText(plot.Text{At: plot.Point{X: -240, Y: 385}, Body: "KLAY THOMPSON", Size: 6})

		Convey("When rendering a court with one marker", func() {
			img, err := r.Render(s)
			So(err, ShouldBeNil)

			Convey("Then the image has the configured size", func() {
				So(img.Bounds().Dx(), ShouldEqual, 220)
				So(img.Bounds().Dy(), ShouldEqual, 160)
			})

			Convey("Then the background is white and the marker is coloured", func() {
				bg := color.NRGBAModel.Convert(img.At(1, 1)).(color.NRGBA)
				So(bg, ShouldResemble, color.NRGBA{R: 255, G: 255, B: 255, A: 255})

				// (0, 300) maps to (110, 55).
				m := color.NRGBAModel.Convert(img.At(110, 55)).(color.NRGBA)
				So(m.R, ShouldBeLessThan, 40)
				So(m.B, ShouldBeGreaterThan, 150)
			})
		})
	})
}
