package loc

/*------------------------------------------------------------------
 *
 * Purpose:	Read and write 16-bit mono PCM WAV files.
 *
 * This is a chunk-walking reader/writer: it does not assume a fixed
 * header size, because not all WAV files agree on one (some pad the
 * 'fmt ' chunk to 18 bytes). See original_source/wav.c for the C
 * version this is grounded on.
 *
 *----------------------------------------------------------------*/

import (
	"encoding/binary"
	"fmt"
	"io"
	"math"
	"os"
)

// Stream is an immutable (once loaded) sequence of samples at a known rate.
type Stream struct {
	Samples []Real
	Rate    int32
}

// Len returns the number of samples in the stream.
func (s *Stream) Len() int { return len(s.Samples) }

type riffHeader struct {
	Riff [4]byte
	Size uint32
	Wave [4]byte
}

type fmtChunk struct {
	Tag        uint16
	Channels   uint16
	Rate       uint32
	ByteRate   uint32
	BlockAlign uint16
	Bits       uint16
}

// ReadWAV reads a 16-bit signed little-endian mono PCM WAV file. The 'fmt '
// chunk may be 16 or 18 bytes; the data chunk is located by magic, not a
// fixed offset. If the declared data size exceeds what's actually in the
// file, min(declared, actual) is used.
func ReadWAV(filename string) (*Stream, error) {
	f, err := os.Open(filename)
	if err != nil {
		return nil, newError(BadInput, "ReadWAV", err)
	}
	defer f.Close()

	var hdr riffHeader
	if err := binary.Read(f, binary.LittleEndian, &hdr); err != nil {
		return nil, newError(BadInput, "ReadWAV", fmt.Errorf("reading RIFF header: %w", err))
	}
	if string(hdr.Riff[:]) != "RIFF" || string(hdr.Wave[:]) != "WAVE" {
		return nil, newError(BadInput, "ReadWAV", fmt.Errorf("%s: not a RIFF/WAVE file", filename))
	}

	var fc fmtChunk
	var haveFmt, haveData bool
	var dataSize uint32

	for !haveData {
		var magic [4]byte
		var size uint32
		if err := binary.Read(f, binary.LittleEndian, &magic); err != nil {
			return nil, newError(BadInput, "ReadWAV", fmt.Errorf("%s: truncated before data chunk: %w", filename, err))
		}
		if err := binary.Read(f, binary.LittleEndian, &size); err != nil {
			return nil, newError(BadInput, "ReadWAV", fmt.Errorf("%s: truncated chunk size: %w", filename, err))
		}

		switch string(magic[:]) {
		case "fmt ":
			if size < 16 {
				return nil, newError(BadInput, "ReadWAV", fmt.Errorf("%s: bad 'fmt ' chunk size %d", filename, size))
			}
			if err := binary.Read(f, binary.LittleEndian, &fc); err != nil {
				return nil, newError(BadInput, "ReadWAV", fmt.Errorf("%s: reading fmt chunk: %w", filename, err))
			}
			// Some writers pad the fmt chunk to 18 bytes; skip the remainder.
			if rem := int64(size) - 16; rem > 0 {
				if _, err := f.Seek(rem, io.SeekCurrent); err != nil {
					return nil, newError(BadInput, "ReadWAV", err)
				}
			}
			if fc.Channels != 1 || fc.Bits != 16 {
				return nil, newError(BadInput, "ReadWAV", fmt.Errorf("%s: unsupported format - %d channels, %d bit", filename, fc.Channels, fc.Bits))
			}
			haveFmt = true
		case "data":
			if !haveFmt {
				return nil, newError(BadInput, "ReadWAV", fmt.Errorf("%s: data chunk before fmt chunk", filename))
			}
			dataSize = size
			haveData = true
		default:
			if _, err := f.Seek(int64(size), io.SeekCurrent); err != nil {
				return nil, newError(BadInput, "ReadWAV", fmt.Errorf("%s: skipping unknown chunk %q: %w", filename, magic, err))
			}
		}
	}

	remaining, err := remainingBytes(f)
	if err != nil {
		return nil, newError(BadInput, "ReadWAV", err)
	}

	declaredSamples := int64(dataSize) / 2
	actualSamples := remaining / 2
	n := declaredSamples
	if actualSamples < n {
		n = actualSamples
	}

	raw := make([]int16, n)
	if err := binary.Read(f, binary.LittleEndian, raw); err != nil {
		return nil, newError(BadInput, "ReadWAV", fmt.Errorf("%s: reading samples: %w", filename, err))
	}

	const scale = 1.0 / 32768.0
	samples := make([]Real, n)
	for i, v := range raw {
		samples[i] = Real(v) * scale
	}

	return &Stream{Samples: samples, Rate: int32(fc.Rate)}, nil
}

func remainingBytes(f *os.File) (int64, error) {
	cur, err := f.Seek(0, io.SeekCurrent)
	if err != nil {
		return 0, err
	}
	info, err := f.Stat()
	if err != nil {
		return 0, err
	}
	return info.Size() - cur, nil
}

// WriteWAV writes samples (already quantized int16) as a canonical 44-byte
// header followed by raw PCM. A partial write is reported as a ShortWrite
// error but is not retried - the caller may choose to warn and continue.
func WriteWAV(filename string, rate int32, samples []int16) error {
	f, err := os.Create(filename)
	if err != nil {
		return newError(BadInput, "WriteWAV", err)
	}
	defer f.Close()

	dataSize := uint32(len(samples)) * 2
	riffSize := dataSize + 36

	hdr := riffHeader{Riff: [4]byte{'R', 'I', 'F', 'F'}, Size: riffSize, Wave: [4]byte{'W', 'A', 'V', 'E'}}
	if err := binary.Write(f, binary.LittleEndian, &hdr); err != nil {
		return newError(ShortWrite, "WriteWAV", err)
	}

	if _, err := f.Write([]byte("fmt ")); err != nil {
		return newError(ShortWrite, "WriteWAV", err)
	}
	fc := fmtChunk{
		Tag:        1, // PCM
		Channels:   1,
		Rate:       uint32(rate),
		ByteRate:   uint32(rate) * 2,
		BlockAlign: 2,
		Bits:       16,
	}
	if err := binary.Write(f, binary.LittleEndian, uint32(16)); err != nil {
		return newError(ShortWrite, "WriteWAV", err)
	}
	if err := binary.Write(f, binary.LittleEndian, &fc); err != nil {
		return newError(ShortWrite, "WriteWAV", err)
	}

	if _, err := f.Write([]byte("data")); err != nil {
		return newError(ShortWrite, "WriteWAV", err)
	}
	if err := binary.Write(f, binary.LittleEndian, dataSize); err != nil {
		return newError(ShortWrite, "WriteWAV", err)
	}
	if err := binary.Write(f, binary.LittleEndian, samples); err != nil {
		return newError(ShortWrite, "WriteWAV", fmt.Errorf("partial write: %w", err))
	}

	return nil
}

// QuantizeClamp scales a unit-range accumulator sample to int16, rounding to
// nearest and clamping to [-32768, 32767], per spec section 4.1.
func QuantizeClamp(acc Real) int16 {
	scaled := math.Round(float64(acc) * 32768.0)
	if scaled > math.MaxInt16 {
		return math.MaxInt16
	}
	if scaled < math.MinInt16 {
		return math.MinInt16
	}
	return int16(scaled)
}
