package dropdown

// FlipThreshold is the space below the widget, in pixels, under which the
// dropdown opens upwards.
const FlipThreshold = 80

// Geometry is the layout the placement reads, in pixels.
type Geometry struct {
	ViewportTop    float64
	ViewportBottom float64
	Top            float64
	Bottom         float64
	Width          float64
}

// Placement is where and how large the dropdown is drawn.
type Placement struct {
	Above     bool
	MaxHeight float64
	Width     float64
}

// Place opens below unless less than FlipThreshold pixels remain, capping
// the height at maxHeight.
func Place(g Geometry, maxHeight int) Placement {
	limit := float64(maxHeight)
	below := g.ViewportBottom - g.Bottom
	if below < FlipThreshold {
		return Placement{Above: true, MaxHeight: min(g.Top-g.ViewportTop, limit), Width: g.Width}
	}
	return Placement{MaxHeight: min(below, limit), Width: g.Width}
}
