package arena

import "github.com/lucasb-eyer/go-colorful"

// RandSource is the only source of nondeterminism in a world. *rand.Rand
// satisfies it.
type RandSource interface {
	Float64() float64
}

// RandomColor picks a saturated, reasonably bright display color so bodies
// stay visible on both light and dark backgrounds.
func RandomColor(rng RandSource) colorful.Color {
	h := rng.Float64() * 360
	s := 0.55 + 0.45*rng.Float64()
	v := 0.65 + 0.35*rng.Float64()
	return colorful.Hsv(h, s, v)
}
