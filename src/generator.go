package loc

/*------------------------------------------------------------------
 *
 * Purpose:	Load input streams, extend them to equal length, and
 *		drive the worker pool that synthesizes one output WAV
 *		per microphone.
 *
 * Ported from original_source/gen.c's load_files/gen_thread/main.
 * Concurrency model: a fixed pool of goroutines (min(N, NumCPU))
 * claims microphone indices from a shared atomic counter via
 * fetch-and-add, generalizing the teacher's per-radio-channel
 * goroutine dispatch pattern (src/multi_modem.go) from "one goroutine
 * per channel" to "one goroutine claims indices from a counter".
 *
 *----------------------------------------------------------------*/

import (
	"fmt"
	"runtime"
	"sync/atomic"

	"github.com/golang/geo/r3"
)

// LoadStreams reads n WAV files and cyclically extends every stream shorter
// than the longest one so all streams share a common length. All input files
// must share a sample rate.
func LoadStreams(filenames []string) ([]*Stream, error) {
	streams := make([]*Stream, len(filenames))
	var maxLen int
	var rate int32

	for i, fn := range filenames {
		s, err := ReadWAV(fn)
		if err != nil {
			return nil, err
		}

		Logger.Info("loaded input stream", "file", fn, "rate", s.Rate, "samples", s.Len())

		if rate != 0 && rate != s.Rate {
			return nil, newError(BadInput, "LoadStreams", fmt.Errorf("sample rate mismatch: %s has %d, previous streams have %d", fn, s.Rate, rate))
		}
		rate = s.Rate

		streams[i] = s
		if s.Len() > maxLen {
			maxLen = s.Len()
		}
	}

	for _, s := range streams {
		if s.Len() < maxLen {
			s.Samples = extendCyclic(s.Samples, maxLen)
		}
	}

	return streams, nil
}

// extendCyclic wrap-pads samples to length n by repeating it from the start,
// so a short stream becomes seamlessly looping.
func extendCyclic(samples []Real, n int) []Real {
	out := make([]Real, n)
	origLen := len(samples)
	for pos := 0; pos < n; pos += origLen {
		toCopy := origLen
		if toCopy > n-pos {
			toCopy = n - pos
		}
		copy(out[pos:pos+toCopy], samples[:toCopy])
	}
	return out
}

// GenerateConfig configures a Generate run.
type GenerateConfig struct {
	OutPrefix string
	Mics      []r3.Vector
	Presets   []Preset
}

// Generate synthesizes one output WAV per microphone in cfg.Mics from the
// given input streams (already extended to equal length, sharing rate),
// writing "<prefix>.<k>.wav" for k in [0, len(Mics)). Per microphone, output
// samples are produced in strict index order; there is no ordering across
// microphones, and any interleaving of the file writes is acceptable.
func Generate(cfg GenerateConfig, streams []*Stream) error {
	n := len(cfg.Mics)
	if n == 0 {
		return newError(BadInput, "Generate", fmt.Errorf("no microphones configured"))
	}

	nSamples := streams[0].Len()
	rate := streams[0].Rate

	nThreads := IfThenElse(runtime.NumCPU() < 1, 1, runtime.NumCPU())
	nThreads = IfThenElse(nThreads > n, n, nThreads)

	Logger.Info("generating", "rate", rate, "samples", nSamples, "mics", n, "threads", nThreads)

	var index atomic.Int64
	errs := make(chan error, nThreads)

	for t := 0; t < nThreads; t++ {
		go func() {
			acc := make([]Real, nSamples)

			for {
				i := int(index.Add(1)) - 1
				if i >= n {
					errs <- nil
					return
				}

				Logger.Debug("starting mic", "index", i)

				for j := range acc {
					acc[j] = 0
				}
				for s, stream := range streams {
					AccumulatePropagation(stream.Samples, Real(rate), cfg.Presets, s, cfg.Mics[i], acc)
				}

				samples := make([]int16, nSamples)
				invN := Real(1.0 / float64(len(streams)))
				for j, v := range acc {
					samples[j] = QuantizeClamp(v * invN)
				}

				outName := fmt.Sprintf("%s.%d.wav", cfg.OutPrefix, i)
				if err := WriteWAV(outName, rate, samples); err != nil {
					if werr, ok := err.(*Error); ok && werr.Kind == ShortWrite {
						Logger.Warn("short write, output may be corrupt", "file", outName, "err", err)
						continue
					}
					errs <- err
					return
				}

				Logger.Info("wrote output stream", "file", outName)
			}
		}()
	}

	for t := 0; t < nThreads; t++ {
		if err := <-errs; err != nil {
			return err
		}
	}

	return nil
}
