package loc

import (
	"math"

	"github.com/golang/geo/r3"
)

// Constants required to be reproduced bit-for-bit, see original_source/globals.h and mic.c.
const (
	SoundSpeed     = 343.0 // m/s
	BaselineDist   = 5.0   // m, D0 in the amplitude law
	SincHalfWidth  = 31    // W, samples on each side of the fractional position
	DefaultXRes    = 1200
	DefaultYRes    = 1200
	Sqrt1Over3     = 0.57735026918962576451
	DefaultWindowL = 512
	HiResWindowL   = 4096
	DefaultUpres   = 4
)

// DefaultMics returns the three-microphone equilateral triangle of unit side
// centred on the origin (circumradius 1/sqrt(3)), per spec section 6's
// default layout and original_source/mic.c.
func DefaultMics() []r3.Vector {
	return []r3.Vector{
		{X: -0.5, Y: -Sqrt1Over3 / 2.0, Z: 0.0},
		{X: 0.5, Y: -Sqrt1Over3 / 2.0, Z: 0.0},
		{X: 0.0, Y: Sqrt1Over3, Z: 0.0},
	}
}

// Pairs returns the N ordered pairs (i, (i+1) mod n) forming the closed ring
// that XCOR and FIELD both index by. Changing this ordering changes the
// physical meaning of every downstream pair index, so it is defined once here.
func Pairs(n int) [][2]int {
	pairs := make([][2]int, n)
	for i := 0; i < n; i++ {
		pairs[i] = [2]int{i, (i + 1) % n}
	}
	return pairs
}

// Dist is the Euclidean distance between two positions, in meters.
func Dist(a, b r3.Vector) Real {
	return Real(a.Sub(b).Norm())
}

// DistOrigin is the distance from a position to the origin.
func DistOrigin(a r3.Vector) Real {
	return Real(math.Sqrt(a.Dot(a)))
}
