package loc

/*------------------------------------------------------------------
 *
 * Purpose:	Precompute, per pixel and per microphone pair, the
 *		integer correlation-lag index that a point source at
 *		that pixel would produce, then combine the current
 *		cross-correlation frame across all pairs into a single
 *		likelihood field.
 *
 * Ported from original_source/locate.c's delay-table precompute and
 * the per-pixel accumulation loop in its render/update step.
 *
 *----------------------------------------------------------------*/

import (
	"fmt"
	"math"

	"github.com/golang/geo/r3"
)

// Table holds, for every pixel and every microphone pair, the precomputed
// correlation-lag index into that pair's upsampled XCOR output.
type Table struct {
	XRes, YRes int
	Pairs      [][2]int
	L, U       int

	// delays[pairIdx][y*XRes+x] is the lag index, already centered (+L*U/2)
	// and clamped into [0, L*U), matching the layout Engine.Correlate
	// produces and the column range its output buffers are sized to.
	delays [][]int32
}

// NewTable precomputes the delay table for the given microphone ring and
// image plane. pixelScale converts a pixel offset from the image center to
// meters; rate is the sample rate in Hz.
func NewTable(mics []r3.Vector, xres, yres int, pixelScale, rate Real, L, U int) (*Table, error) {
	if xres <= 0 || yres <= 0 {
		return nil, newError(BadInput, "NewTable", fmt.Errorf("invalid image size %dx%d", xres, yres))
	}

	pairs := Pairs(len(mics))
	n := xres * yres

	t := &Table{
		XRes:   xres,
		YRes:   yres,
		Pairs:  pairs,
		L:      L,
		U:      U,
		delays: make([][]int32, len(pairs)),
	}

	lu := L * U
	half := Real(lu / 2)

	for pi, pair := range pairs {
		row := make([]int32, n)
		a, b := mics[pair[0]], mics[pair[1]]

		for y := 0; y < yres; y++ {
			py := (Real(yres)/2.0 - Real(y)) * pixelScale
			for x := 0; x < xres; x++ {
				px := (Real(x) - Real(xres)/2.0) * pixelScale
				pos := r3.Vector{X: float64(px), Y: float64(py), Z: 0}

				dl := Dist(pos, a) - Dist(pos, b)
				lag := Real(math.Round(float64(dl/SoundSpeed*rate*Real(U)))) + half

				idx := int32(Clamp(lag, 0, Real(lu-1)))

				row[y*xres+x] = idx
			}
		}

		t.delays[pi] = row
	}

	return t, nil
}

// Accumulate multiplies, at every pixel, the correlation values (from frame,
// one slice per pair as produced by Engine.Correlate) read at that pixel's
// precomputed lag for each pair, writing the product into out (length
// XRes*YRes). A pair whose indexed correlation value is negative makes the
// whole pixel's product zero rather than flipping sign, per spec section
// 4.3's "negative partial products are clamped to zero, not multiplied
// through" rule - a real source should raise every pair's correlation
// simultaneously, so a negative contribution is evidence against, not a
// sign to be combined away.
func (t *Table) Accumulate(frame [][]Real, out []Real) error {
	if len(frame) != len(t.Pairs) {
		return newError(BadInput, "Accumulate", fmt.Errorf("expected %d pair frames, got %d", len(t.Pairs), len(frame)))
	}
	n := t.XRes * t.YRes
	if len(out) != n {
		return newError(BadInput, "Accumulate", fmt.Errorf("output buffer has wrong length %d, want %d", len(out), n))
	}

	for i := range out {
		out[i] = 1
	}

	for pi, delays := range t.delays {
		corr := frame[pi]
		for i := 0; i < n; i++ {
			v := corr[delays[i]]
			if v <= 0 {
				out[i] = 0
				continue
			}
			out[i] *= v
		}
	}

	return nil
}

// Peak returns the index and value of the largest entry in field.
func Peak(field []Real) (idx int, val Real) {
	val = field[0]
	for i, v := range field {
		if v > val {
			val = v
			idx = i
		}
	}
	return idx, val
}
