//go:build !double

package loc

// Real is the working sample precision. Single-precision by default; build
// with -tags double for float64 throughout, mirroring the original's
// USE_DOUBLE preprocessor switch as a Go build constraint instead.
type Real = float32
