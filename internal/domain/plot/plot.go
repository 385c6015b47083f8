// Package plot models a drawing surface in court coordinates: shapes,
// text annotations and a single scatter collection, with fixed axis limits.
//
// The surface only holds geometry. Rasterising it is the render adapter's job.
package plot

// Point is a position in court units (1 unit is about 1/10 ft).
type Point struct {
	X float64
	Y float64
}

// LineStyle describes how a shape outline is stroked.
type LineStyle struct {
	Color  string  // hex colour, e.g. "#000000"
	Width  float64 // points
	Fill   bool    // fill the interior with Color
	Dashed bool
}

// Shape is one court primitive. The set of implementations is closed.
type Shape interface {
	Style() LineStyle
	isShape()
}

// Circle is a full circle.
type Circle struct {
	Center Point
	Radius float64
	Line   LineStyle
}

// Rectangle is anchored at Origin and extends by Width and Height, either of
// which may be zero or negative.
type Rectangle struct {
	Origin Point
	Width  float64
	Height float64
	Line   LineStyle
}

// Arc is an elliptical arc swept counter-clockwise from Theta1 to Theta2,
// in degrees, in a y-up frame. Width and Height are the full diameters.
type Arc struct {
	Center Point
	Width  float64
	Height float64
	Theta1 float64
	Theta2 float64
	Line   LineStyle
}

func (c Circle) Style() LineStyle    { return c.Line }
func (r Rectangle) Style() LineStyle { return r.Line }
func (a Arc) Style() LineStyle       { return a.Line }

func (Circle) isShape()    {}
func (Rectangle) isShape() {}
func (Arc) isShape()       {}

// Sweep returns the counter-clockwise extent of the arc in degrees, in
// (0, 360]. Equal angles sweep a full turn.
func (a Arc) Sweep() float64 {
	d := a.Theta2 - a.Theta1
	for d <= 0 {
		d += 360
	}
	for d > 360 {
		d -= 360
	}
	return d
}

// HAlign is the horizontal anchor of a text annotation.
type HAlign int

const (
	AlignLeft HAlign = iota
	AlignRight
)

// VAlign is the vertical anchor of a text annotation.
type VAlign int

const (
	// AlignBaseline anchors the baseline of the last line.
	AlignBaseline VAlign = iota
	// AlignTop anchors the top of the first line.
	AlignTop
)

// Text is a possibly multi-line annotation.
type Text struct {
	At     Point // data coordinates; for figure text, fractions of the figure
	Body   string
	Size   float64
	Bold   bool
	Align  HAlign
	VAlign VAlign
	Figure bool // At is relative to the whole figure, not the axes
}

// Limits is the visible data window.
type Limits struct {
	XMin, XMax float64
	YMin, YMax float64
}

// Width returns the horizontal data extent.
func (l Limits) Width() float64 { return l.XMax - l.XMin }

// Height returns the vertical data extent.
func (l Limits) Height() float64 { return l.YMax - l.YMin }

// DefaultLimits is the half-court window used by the shot chart.
var DefaultLimits = Limits{XMin: -300, XMax: 300, YMin: -100, YMax: 500}
