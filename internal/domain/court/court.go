// Package court draws regulation NBA half-court markings onto a plot surface.
//
// Geometry is fixed: the hoop sits at the origin and one unit is a tenth of
// a foot, matching the stats API shot locations. Only styling is
// configurable.
package court

import (
	"github.com/okian/shotchart/internal/domain/plot"
)

// Court geometry in stats units.
const (
	HoopRadius = 7.5 // 18" rim diameter

	BackboardX      = -30.0
	BackboardY      = -7.5
	BackboardWidth  = 60.0
	BackboardHeight = -1.0

	Baseline = -47.5

	PaintOuterWidth = 160.0 // 16 ft
	PaintInnerWidth = 120.0 // 12 ft
	PaintHeight     = 190.0 // 19 ft

	FreeThrowY        = 142.5
	FreeThrowDiameter = 120.0

	RestrictedDiameter = 80.0 // 4 ft radius

	CornerThreeX      = 220.0
	CornerThreeLength = 140.0 // 14 ft before the arc starts
	ThreeDiameter     = 475.0 // 23'9" radius
	ThreeTheta1       = 22.0
	ThreeTheta2       = 158.0

	CenterCourtY     = 422.5
	CenterOuterDiam  = 120.0
	CenterInnerDiam  = 40.0
	OuterLinesX      = -250.0
	OuterLinesWidth  = 500.0
	OuterLinesHeight = 470.0
)

// Number of primitives added by Draw.
const (
	ElementCount           = 12
	ElementCountWithBounds = 13
)

// Style controls how markings are stroked.
type Style struct {
	Color      string
	LineWidth  float64
	OuterLines bool // add half court line, baseline and sidelines
}

// DefaultStyle is black two-point lines without outer boundaries.
func DefaultStyle() Style {
	return Style{Color: "#000000", LineWidth: 2}
}

// Draw adds the court markings to s and returns it. A nil surface is
// replaced by a fresh default one. Every call builds new primitives.
func Draw(s *plot.Surface, style Style) *plot.Surface {
	if s == nil {
		s = plot.NewSurface()
	}
	for _, shape := range Elements(style) {
		s.AddShape(shape)
	}
	return s
}

// Elements returns the court primitives for style in drawing order.
func Elements(style Style) []plot.Shape {
	line := plot.LineStyle{Color: style.Color, Width: style.LineWidth}
	filled := line
	filled.Fill = true
	dashed := line
	dashed.Dashed = true

	shapes := []plot.Shape{
		// hoop
		plot.Circle{Center: plot.Point{}, Radius: HoopRadius, Line: line},
		// backboard
		plot.Rectangle{
			Origin: plot.Point{X: BackboardX, Y: BackboardY},
			Width:  BackboardWidth,
			Height: BackboardHeight,
			Line:   filled,
		},
		// the paint, outer and inner boxes
		plot.Rectangle{
			Origin: plot.Point{X: -PaintOuterWidth / 2, Y: Baseline},
			Width:  PaintOuterWidth,
			Height: PaintHeight,
			Line:   line,
		},
		plot.Rectangle{
			Origin: plot.Point{X: -PaintInnerWidth / 2, Y: Baseline},
			Width:  PaintInnerWidth,
			Height: PaintHeight,
			Line:   line,
		},
		// free throw top and bottom arcs
		plot.Arc{
			Center: plot.Point{Y: FreeThrowY},
			Width:  FreeThrowDiameter,
			Height: FreeThrowDiameter,
			Theta1: 0,
			Theta2: 180,
			Line:   line,
		},
		plot.Arc{
			Center: plot.Point{Y: FreeThrowY},
			Width:  FreeThrowDiameter,
			Height: FreeThrowDiameter,
			Theta1: 180,
			Theta2: 0,
			Line:   dashed,
		},
		// restricted area
		plot.Arc{
			Width:  RestrictedDiameter,
			Height: RestrictedDiameter,
			Theta1: 0,
			Theta2: 180,
			Line:   line,
		},
		// corner threes are zero-width rectangles
		plot.Rectangle{
			Origin: plot.Point{X: -CornerThreeX, Y: Baseline},
			Width:  0,
			Height: CornerThreeLength,
			Line:   filled,
		},
		plot.Rectangle{
			Origin: plot.Point{X: CornerThreeX, Y: Baseline},
			Width:  0,
			Height: CornerThreeLength,
			Line:   filled,
		},
		// three point arc
		plot.Arc{
			Width:  ThreeDiameter,
			Height: ThreeDiameter,
			Theta1: ThreeTheta1,
			Theta2: ThreeTheta2,
			Line:   line,
		},
		// center court
		plot.Arc{
			Center: plot.Point{Y: CenterCourtY},
			Width:  CenterOuterDiam,
			Height: CenterOuterDiam,
			Theta1: 180,
			Theta2: 0,
			Line:   line,
		},
		plot.Arc{
			Center: plot.Point{Y: CenterCourtY},
			Width:  CenterInnerDiam,
			Height: CenterInnerDiam,
			Theta1: 180,
			Theta2: 0,
			Line:   line,
		},
	}

	if style.OuterLines {
		shapes = append(shapes, plot.Rectangle{
			Origin: plot.Point{X: OuterLinesX, Y: Baseline},
			Width:  OuterLinesWidth,
			Height: OuterLinesHeight,
			Line:   line,
		})
	}
	return shapes
}
