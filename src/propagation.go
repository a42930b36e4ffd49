package loc

/*------------------------------------------------------------------
 *
 * Purpose:	Point-source propagation physics: for one microphone,
 *		accumulate the contribution of a moving source emitting
 *		a given input stream.
 *
 * Ported from original_source/gen.c's gen_delay(). Amplitude is
 * inverse-linear in the distance difference (BaselineDist / (dl +
 * BaselineDist)) rather than inverse-square - a deliberate, documented
 * departure from physical accuracy (spec.md section 4.1 and section
 * 9's "open question"): it keeps signal energy reasonable across the
 * whole trajectory and must match bit-for-bit, so do not "fix" it to
 * be inverse-square.
 *
 *----------------------------------------------------------------*/

import "github.com/golang/geo/r3"

// AccumulatePropagation adds, into res, the contribution of a point source
// emitting data (of length len(res)) and moving along presets[presetIndex]'s
// trajectory, as heard at micPos. rate is the sample rate in Hz.
func AccumulatePropagation(data []Real, rate Real, presets []Preset, presetIndex int, micPos r3.Vector, res []Real) {
	irate := 1.0 / rate

	for i := range res {
		sourcePos := AtPreset(presets, Real(i)*irate, presetIndex)

		d0 := DistOrigin(sourcePos)
		d1 := Dist(sourcePos, micPos)
		dl := d0 - d1

		amp := BaselineDist / (dl + BaselineDist)
		res[i] += amp * Resample(data, i, dl/SoundSpeed*rate)
	}
}
