package plot

// Scatter is the mutable marker collection the animation pushes into.
// Offsets, Sizes and FaceColors are index-aligned.
type Scatter struct {
	Offsets    []Point
	Sizes      []float64
	FaceColors []string
}

// Len returns the number of visible markers.
func (s *Scatter) Len() int { return len(s.Offsets) }

// Set replaces the collection contents. Slices are copied so later changes
// by the caller do not leak into the surface.
func (s *Scatter) Set(offsets []Point, sizes []float64, colors []string) {
	s.Offsets = append(s.Offsets[:0], offsets...)
	s.Sizes = append(s.Sizes[:0], sizes...)
	s.FaceColors = append(s.FaceColors[:0], colors...)
}

// Surface is the shared drawing surface: an axes-like container.
type Surface struct {
	Limits      Limits
	EqualAspect bool
	Shapes      []Shape
	Texts       []Text
	Scatter     Scatter
}

// NewSurface returns an empty surface over the default half-court window.
func NewSurface() *Surface {
	return &Surface{Limits: DefaultLimits, EqualAspect: true}
}

// AddShape appends a shape and returns the surface.
func (s *Surface) AddShape(shape Shape) *Surface {
	s.Shapes = append(s.Shapes, shape)
	return s
}

// AddText appends an annotation and returns the surface.
func (s *Surface) AddText(t Text) *Surface {
	s.Texts = append(s.Texts, t)
	return s
}
