//go:build double

package loc

// Real is the working sample precision, double here under -tags double.
type Real = float64
