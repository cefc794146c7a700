package arena

// WallThickness is the fixed depth of every interior wall.
const WallThickness = 10.0

type Orientation int

const (
	Horizontal Orientation = iota
	Vertical
)

func (o Orientation) String() string {
	if o == Vertical {
		return "vertical"
	}
	return "horizontal"
}

// Boundary is an axis-aligned wall segment. Pos is its top-left corner; a
// horizontal wall spans Length along x and WallThickness along y.
type Boundary struct {
	Pos         Vec2
	Length      float64
	Orientation Orientation
}

func NewBoundary(x, y, length float64, o Orientation) Boundary {
	return Boundary{Pos: Vec2{x, y}, Length: length, Orientation: o}
}

// Size returns the rectangle extent (width, height) of the wall.
func (w Boundary) Size() (float64, float64) {
	if w.Orientation == Vertical {
		return WallThickness, w.Length
	}
	return w.Length, WallThickness
}

// Touches reports whether a circle at p with radius r lies within the wall's
// span and no farther than r from the wall slab.
func (w Boundary) Touches(p Vec2, r float64) bool {
	along, across, start := p.X, p.Y, w.Pos.Y
	lo := w.Pos.X
	if w.Orientation == Vertical {
		along, across, start = p.Y, p.X, w.Pos.X
		lo = w.Pos.Y
	}
	if along < lo || along > lo+w.Length {
		return false
	}
	return slabDistance(across, start) <= r
}

func slabDistance(v, start float64) float64 {
	switch {
	case v < start:
		return start - v
	case v > start+WallThickness:
		return v - (start + WallThickness)
	default:
		return 0
	}
}
