package shot

import (
	"github.com/samber/lo"

	"github.com/okian/shotchart/internal/domain/plot"
)

// Reshape converts records into index-aligned points and colours, in record
// order. The x axis is mirrored so shots appear from the viewer's side of the
// basket, as the stats API reports them from the opposite side.
func Reshape(records []Record, palette Palette) ([]plot.Point, []string) {
	points := lo.Map(records, func(r Record, _ int) plot.Point {
		return plot.Point{X: -r.LocX, Y: r.LocY}
	})
	colors := lo.Map(records, func(r Record, _ int) string {
		return palette.Color(r.MadeFlag)
	})
	return points, colors
}
