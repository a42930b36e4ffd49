package loc

import (
	"encoding/binary"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"pgregory.net/rapid"
)

func TestWAVRoundTrip(t *testing.T) {
	rapid.Check(t, func(t *rapid.T) {
		dir := t.TempDir()
		path := filepath.Join(dir, "roundtrip.wav")

		samples := rapid.SliceOfN(rapid.Int16(), 1, 256).Draw(t, "samples")
		rate := rapid.Int32Range(8000, 96000).Draw(t, "rate")

		require.NoError(t, WriteWAV(path, rate, samples))

		stream, err := ReadWAV(path)
		require.NoError(t, err)

		require.Equal(t, rate, stream.Rate)
		require.Len(t, stream.Samples, len(samples))

		for i, want := range samples {
			got := QuantizeClamp(stream.Samples[i])
			assert.InDelta(t, want, got, 1, "sample %d", i)
		}
	})
}

func TestReadWAVTolerates18ByteFmtChunk(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "padded.wav")

	samples := []int16{1, -1, 100, -100}
	dataSize := uint32(len(samples)) * 2

	f, err := os.Create(path)
	require.NoError(t, err)

	write := func(v interface{}) {
		require.NoError(t, binary.Write(f, binary.LittleEndian, v))
	}

	write([4]byte{'R', 'I', 'F', 'F'})
	write(uint32(4 + (8 + 18) + (8 + dataSize)))
	write([4]byte{'W', 'A', 'V', 'E'})

	write([4]byte{'f', 'm', 't', ' '})
	write(uint32(18))
	write(fmtChunk{Tag: 1, Channels: 1, Rate: 44100, ByteRate: 44100 * 2, BlockAlign: 2, Bits: 16})
	write(uint16(0)) // cbSize field: the 2 padding bytes

	write([4]byte{'d', 'a', 't', 'a'})
	write(dataSize)
	write(samples)

	require.NoError(t, f.Close())

	stream, err := ReadWAV(path)
	require.NoError(t, err)
	assert.Equal(t, int32(44100), stream.Rate)
	assert.Len(t, stream.Samples, len(samples))
}

func TestReadWAVTruncatedDataClampsToActual(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "truncated.wav")

	samples := []int16{1, 2, 3, 4, 5, 6}
	require.NoError(t, WriteWAV(path, 44100, samples))

	// Lie about the data chunk size being bigger than what's actually present.
	f, err := os.OpenFile(path, os.O_RDWR, 0o644)
	require.NoError(t, err)
	_, err = f.WriteAt([]byte{0xff, 0xff, 0xff, 0x7f}, 40)
	require.NoError(t, err)
	require.NoError(t, f.Close())

	stream, err := ReadWAV(path)
	require.NoError(t, err)
	assert.Len(t, stream.Samples, len(samples))
}

func TestQuantizeClampSaturates(t *testing.T) {
	assert.Equal(t, int16(32767), QuantizeClamp(10.0))
	assert.Equal(t, int16(-32768), QuantizeClamp(-10.0))
	assert.Equal(t, int16(0), QuantizeClamp(0.0))
}
