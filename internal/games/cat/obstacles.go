package cat

import "github.com/vovakirdan/retromorph/internal/core"

// Kind identifies an obstacle type.
type Kind int

const (
	KindCactus   Kind = iota // Ground obstacle, must be jumped
	KindLowBird              // Head height, must be ducked
	KindHighBird             // Above a standing cat, only hits while airborne
)

func (k Kind) String() string {
	switch k {
	case KindCactus:
		return "cactus"
	case KindLowBird:
		return "low-bird"
	case KindHighBird:
		return "high-bird"
	default:
		return "unknown"
	}
}

// IsBird reports whether the obstacle flies.
func (k Kind) IsBird() bool {
	return k == KindLowBird || k == KindHighBird
}

// Obstacle is a scrolling hazard.
type Obstacle struct {
	Kind   Kind
	X      float64 // Left edge in canvas pixels
	Passed bool
}

// shape returns width, height and bottom offset above the ground line, in
// grid cells.
func (k Kind) shape() (w, h, lift float64) {
	switch k {
	case KindLowBird:
		return 0.9, 0.45, 0.55
	case KindHighBird:
		return 0.9, 0.5, 1.5
	default:
		return 0.7, 1.1, 0
	}
}

// Width returns the obstacle width in pixels for a grid size.
func (o Obstacle) Width(grid float64) float64 {
	w, _, _ := o.Kind.shape()
	return w * grid
}

// Rect returns the obstacle hitbox for a grid size and ground line.
func (o Obstacle) Rect(grid, groundY float64) core.RectF {
	w, h, lift := o.Kind.shape()
	return core.NewRectF(o.X, groundY-(lift+h)*grid, w*grid, h*grid)
}
