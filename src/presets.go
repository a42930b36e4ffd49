package loc

/*------------------------------------------------------------------
 *
 * Purpose:	Lissajous trajectory presets: position as a function of
 *		time for a simulated moving source.
 *
 * Ported from original_source/liss.c's liss_param[] table as data,
 * with an optional YAML override file (see LoadPresets) replacing the
 * hard-coded-only C table - spec.md's "Design Notes" calls for
 * exactly this generalization.
 *
 *----------------------------------------------------------------*/

import (
	"fmt"
	"math"
	"os"

	"github.com/golang/geo/r3"
	"gopkg.in/yaml.v3"
)

// Preset is one named Lissajous parameter set.
//
//	v(t) = sin(period * 2*pi*t/duration + phase) * scale + translate
type Preset struct {
	Duration  Real `yaml:"duration"`
	Period    r3Triple
	Phase     r3Triple
	Scale     r3Triple
	Translate r3Triple
}

// r3Triple is a plain (x, y, z) triple used for YAML (de)serialization;
// r3.Vector itself has no yaml tags.
type r3Triple struct {
	X, Y, Z Real
}

func (t r3Triple) vec() r3.Vector { return r3.Vector{X: float64(t.X), Y: float64(t.Y), Z: float64(t.Z)} }

// At returns the source position at time t (seconds) for this preset.
func (p Preset) At(t Real) r3.Vector {
	nt := float64(t) * math.Pi * 2.0 / float64(p.Duration)

	period, phase, scale, trans := p.Period.vec(), p.Phase.vec(), p.Scale.vec(), p.Translate.vec()

	bv := r3.Vector{
		X: math.Sin(period.X*nt + phase.X),
		Y: math.Sin(period.Y*nt + phase.Y),
		Z: math.Sin(period.Z*nt + phase.Z),
	}

	return r3.Vector{
		X: bv.X*scale.X + trans.X,
		Y: bv.Y*scale.Y + trans.Y,
		Z: bv.Z*scale.Z + trans.Z,
	}
}

// DefaultPresets is the built-in two-preset table, ported verbatim (values
// unchanged) from original_source/liss.c.
func DefaultPresets() []Preset {
	piOver2 := Real(math.Pi / 2.0)
	return []Preset{
		{
			Duration: 30.0,
			Period:   r3Triple{1.0, 1.0, 0.0},
			Phase:    r3Triple{0.0, piOver2, 0.0},
			Scale:    r3Triple{5.0, 3.0, 0.0},
			Translate: r3Triple{0.0, 0.0, 0.0},
		},
		{
			Duration: 10.0,
			Period:   r3Triple{1.0, 1.0, 0.0},
			Phase:    r3Triple{piOver2, 0.0, 0.0},
			Scale:    r3Triple{0.3, 0.3, 0.0},
			Translate: r3Triple{0.0, 0.0, 0.0},
		},
	}
}

// AtPreset indexes into presets modulo len(presets), per spec section 4.1's
// "preset index modulo preset count" rule.
func AtPreset(presets []Preset, t Real, presetIndex int) r3.Vector {
	p := presets[presetIndex%len(presets)]
	return p.At(t)
}

// LoadPresets parses a YAML file of trajectory presets, overriding the
// built-in table. Returns BadInput on a missing or malformed file.
func LoadPresets(path string) ([]Preset, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, newError(BadInput, "LoadPresets", err)
	}

	var presets []Preset
	if err := yaml.Unmarshal(data, &presets); err != nil {
		return nil, newError(BadInput, "LoadPresets", fmt.Errorf("%s: %w", path, err))
	}
	if len(presets) == 0 {
		return nil, newError(BadInput, "LoadPresets", fmt.Errorf("%s: no presets defined", path))
	}

	return presets, nil
}
