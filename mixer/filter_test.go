package mixer

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewHighPassFilterRejectsOutOfBoundsCutoff(t *testing.T) {
	_, err := NewHighPassFilter(0, 48000)
	assert.Error(t, err)

	_, err = NewHighPassFilter(30000, 48000)
	assert.Error(t, err)
}

func TestHighPassFilterAttenuatesDCOffset(t *testing.T) {
	f, err := NewHighPassFilter(100, 48000)
	require.NoError(t, err)

	// A constant (DC) signal should be heavily attenuated by a high-pass
	// filter; its output RMS should be far below the input's.
	const n = 4096
	samples := make([]float32, n)
	for i := range samples {
		samples[i] = 0.5
	}

	out, err := f.Apply(samples)
	require.NoError(t, err)
	require.Len(t, out, n)

	assert.Less(t, RMSLevel(out[n/2:]), RMSLevel(samples))
}

func TestHighPassFilterEmptyInput(t *testing.T) {
	f, err := NewHighPassFilter(100, 48000)
	require.NoError(t, err)

	out, err := f.Apply(nil)
	require.NoError(t, err)
	assert.Empty(t, out)
}
