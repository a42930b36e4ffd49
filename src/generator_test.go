package loc

import (
	"path/filepath"
	"strconv"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestExtendCyclicRepeatsFromStart(t *testing.T) {
	samples := []Real{1, 2, 3}
	out := extendCyclic(samples, 8)
	assert.Equal(t, []Real{1, 2, 3, 1, 2, 3, 1, 2}, out)
}

func TestExtendCyclicNoOpWhenAlreadyLongEnough(t *testing.T) {
	samples := []Real{1, 2, 3}
	out := extendCyclic(samples, 3)
	assert.Equal(t, samples, out)
}

func TestLoadStreamsRejectsRateMismatch(t *testing.T) {
	dir := t.TempDir()
	a := filepath.Join(dir, "a.wav")
	b := filepath.Join(dir, "b.wav")

	require.NoError(t, WriteWAV(a, 44100, []int16{1, 2, 3}))
	require.NoError(t, WriteWAV(b, 48000, []int16{1, 2, 3}))

	_, err := LoadStreams([]string{a, b})
	require.Error(t, err)
}

func TestLoadStreamsExtendsShorterStreams(t *testing.T) {
	dir := t.TempDir()
	a := filepath.Join(dir, "a.wav")
	b := filepath.Join(dir, "b.wav")

	require.NoError(t, WriteWAV(a, 44100, []int16{1, 2, 3, 4, 5, 6}))
	require.NoError(t, WriteWAV(b, 44100, []int16{1, 2}))

	streams, err := LoadStreams([]string{a, b})
	require.NoError(t, err)

	assert.Equal(t, streams[0].Len(), streams[1].Len())
}

func TestGenerateWritesOneFilePerMicrophone(t *testing.T) {
	dir := t.TempDir()
	in := filepath.Join(dir, "in.wav")
	require.NoError(t, WriteWAV(in, 8000, make([]int16, 256)))

	streams, err := LoadStreams([]string{in})
	require.NoError(t, err)

	cfg := GenerateConfig{
		OutPrefix: filepath.Join(dir, "out"),
		Mics:      DefaultMics(),
		Presets:   DefaultPresets(),
	}

	require.NoError(t, Generate(cfg, streams))

	for i := range cfg.Mics {
		out, err := ReadWAV(filepath.Join(dir, "out."+strconv.Itoa(i)+".wav"))
		require.NoError(t, err)
		assert.Equal(t, 256, out.Len())
	}
}
