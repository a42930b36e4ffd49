package loc

import (
	"testing"

	"github.com/golang/geo/r3"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewTableRejectsBadImageSize(t *testing.T) {
	mics := DefaultMics()
	_, err := NewTable(mics, 0, 10, 0.01, 44100, DefaultWindowL, DefaultUpres)
	require.Error(t, err)
}

func TestNewTableDelaysAreInRange(t *testing.T) {
	mics := DefaultMics()
	const L, U = 64, 2
	table, err := NewTable(mics, 20, 20, 0.5, 8000, L, U)
	require.NoError(t, err)

	period := int32(L * U)
	for _, row := range table.delays {
		for _, d := range row {
			assert.GreaterOrEqual(t, d, int32(0))
			assert.Less(t, d, period)
		}
	}
}

func TestAccumulateRejectsWrongFrameCount(t *testing.T) {
	mics := DefaultMics()
	const L, U = 32, 1
	table, err := NewTable(mics, 8, 8, 1.0, 8000, L, U)
	require.NoError(t, err)

	out := make([]Real, 8*8)
	err = table.Accumulate(nil, out)
	require.Error(t, err)
}

func TestAccumulateNegativeCorrelationZerosPixel(t *testing.T) {
	mics := DefaultMics()
	const L, U = 16, 1
	table, err := NewTable(mics, 4, 4, 1.0, 8000, L, U)
	require.NoError(t, err)

	frame := make([][]Real, len(table.Pairs))
	for i := range frame {
		frame[i] = make([]Real, L*U)
		for j := range frame[i] {
			frame[i][j] = -1
		}
	}

	out := make([]Real, 4*4)
	require.NoError(t, table.Accumulate(frame, out))

	for _, v := range out {
		assert.Equal(t, Real(0), v)
	}
}

func TestAccumulateAllPositiveMultipliesThroughPairs(t *testing.T) {
	mics := DefaultMics()
	const L, U = 16, 1
	table, err := NewTable(mics, 2, 2, 1.0, 8000, L, U)
	require.NoError(t, err)

	frame := make([][]Real, len(table.Pairs))
	for i := range frame {
		frame[i] = make([]Real, L*U)
		for j := range frame[i] {
			frame[i][j] = 2
		}
	}

	out := make([]Real, 2*2)
	require.NoError(t, table.Accumulate(frame, out))

	expected := Real(1)
	for range table.Pairs {
		expected *= 2
	}

	for _, v := range out {
		assert.Equal(t, expected, v)
	}
}

func TestPeakFindsLargestEntry(t *testing.T) {
	field := []Real{1, 5, 3, -2, 4}
	idx, val := Peak(field)
	assert.Equal(t, 1, idx)
	assert.Equal(t, Real(5), val)
}

func TestDistOriginAndDistAgreeAtOrigin(t *testing.T) {
	origin := r3.Vector{X: 0, Y: 0, Z: 0}
	p := r3.Vector{X: 3, Y: 4, Z: 0}
	assert.Equal(t, Real(5), DistOrigin(p))
	assert.Equal(t, Real(5), Dist(p, origin))
}
