package loc

/*------------------------------------------------------------------
 *
 * Purpose:	GCC-PHAT batched cross-correlation with band-limited
 *		super-resolution upsampling, for every microphone pair
 *		in a closed ring.
 *
 * Ported from original_source/locate.c's XCOR routines. The C code
 * plans one FFTW batched transform up front and reuses it every frame;
 * here Engine plays the same role, holding reusable spectrum and scratch
 * slices; Correlate still allocates a zero-padded input row per
 * microphone, and the FFT calls return freshly allocated slices. github.com/mjibson/go-dsp/fft
 * stands in for FFTW (see other_examples for its call shape).
 *
 *----------------------------------------------------------------*/

import (
	"fmt"
	"math"

	"github.com/mjibson/go-dsp/fft"
)

// Engine holds the reusable state for one XCOR run: window length L,
// microphone count N (and its N ring pairs), and upsampling factor U.
type Engine struct {
	L, N, U int
	pairs   [][2]int

	fwd  [][]complex128 // one forward spectrum per microphone, zero-padded row length 2L
	prod []complex128   // scratch: conjugate product for one pair, length 2L
	up   []complex128   // scratch: band-limited upsampled spectrum, length 2L*U
}

// NewEngine allocates an Engine for N microphones, window length L and
// upsampling factor U. L must be a power of two for the underlying FFT to
// run at its best case, though go-dsp/fft accepts any length.
func NewEngine(L, N, U int) (*Engine, error) {
	if L <= 0 || N < 2 || U <= 0 {
		return nil, newError(BadInput, "NewEngine", fmt.Errorf("invalid dimensions L=%d N=%d U=%d", L, N, U))
	}

	fwd := make([][]complex128, N)
	for i := range fwd {
		fwd[i] = make([]complex128, 2*L)
	}

	return &Engine{
		L:     L,
		N:     N,
		U:     U,
		pairs: Pairs(N),
		fwd:   fwd,
		prod:  make([]complex128, 2*L),
		up:    make([]complex128, 2*L*U),
	}, nil
}

// Correlate computes, for every ring pair (i, i+1 mod N), the PHAT-weighted,
// band-limited-upsampled cross-correlation of frames[i] and frames[i+1 mod N]
// (each of length e.L), writing the result into out[pairIdx], each of length
// e.L*e.U. Column e.L*e.U/2 of out[pairIdx] is zero delay; columns below it
// are positive lags (pair[0] leads), columns above it are negative lags.
func (e *Engine) Correlate(frames [][]Real, out [][]Real) error {
	if len(frames) != e.N {
		return newError(BadInput, "Correlate", fmt.Errorf("expected %d frames, got %d", e.N, len(frames)))
	}
	if len(out) != len(e.pairs) {
		return newError(BadInput, "Correlate", fmt.Errorf("expected %d pair outputs, got %d", len(e.pairs), len(out)))
	}

	for i, frame := range frames {
		// Zero-padded to 2L so the circular correlation the FFT computes is
		// the linear correlation of the two L-sample windows.
		real := make([]float64, 2*e.L)
		for j, v := range frame {
			real[j] = float64(v)
		}
		copy(e.fwd[i], fft.FFTReal(real))
	}

	for pi, pair := range e.pairs {
		a, b := e.fwd[pair[0]], e.fwd[pair[1]]

		for k := range e.prod {
			prod := a[k] * complexConj(b[k])
			mag := complexAbs(prod)
			if mag == 0 {
				e.prod[k] = 0
				continue
			}
			// PHAT: normalize by magnitude, keeping only phase information.
			e.prod[k] = prod / complex(mag, 0)
		}

		placeBandLimited(e.prod, e.up)

		inv := fft.IFFT(e.up)

		if out[pi] == nil || len(out[pi]) != e.L*e.U {
			return newError(BadInput, "Correlate", fmt.Errorf("pair %d output buffer has wrong length", pi))
		}

		shiftAndBiasCorrect(inv, e.L, e.U, out[pi])
	}

	return nil
}

// placeBandLimited copies src (one pair's PHAT-normalized cross-spectrum, length 2L)
// into dst (length 2L*U) by band-limited zero-stuffing: the low-frequency
// half of src goes at the start of dst, the high-frequency (negative-
// frequency) half goes at the end, and everything in between is zero. This
// is the frequency-domain operation equivalent to sinc interpolation in
// time, giving U-times upsampling with no new spectral content.
func placeBandLimited(src, dst []complex128) {
	half := len(src) / 2
	for i := range dst {
		dst[i] = 0
	}
	copy(dst[:half], src[:half])
	copy(dst[len(dst)-half:], src[half:])
}

// shiftAndBiasCorrect takes the raw inverse-FFT output (wraparound order,
// length 2*L*U) and writes the centered output window (length L*U, zero
// delay at column L*U/2) into dst, dividing out the triangular overlap-bias
// envelope: a zero-padded linear correlation of two length-L windows has a
// number of overlapping samples at output column j proportional to
// L*U-|j-L*U/2|, so the raw correlation is scaled by that triangular
// envelope and is divided by it to recover a flat noise floor. scale is the
// constant U/2.
func shiftAndBiasCorrect(inv []complex128, L, U int, dst []Real) {
	rowLen := len(inv)
	lu := L * U
	half := lu / 2
	scale := Real(U) * 0.5

	for j := 0; j < lu; j++ {
		jSrc := ((j+rowLen-half)%rowLen + rowLen) % rowLen

		d := IfThenElse(j < half, half-j, j-half)
		denom := Real(lu - d)
		if denom <= 0 {
			dst[j] = 0
			continue
		}
		dst[j] = Real(real(inv[jSrc])) * scale / denom
	}
}

func complexConj(c complex128) complex128 { return complex(real(c), -imag(c)) }

func complexAbs(c complex128) float64 {
	re, im := real(c), imag(c)
	return math.Sqrt(re*re + im*im)
}
