package mixer

import (
	"encoding/binary"
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestMixMicWithStereoSystemBasic(t *testing.T) {
	mic := []float32{0.5, 0.3}
	system := []float32{0.1, 0.2, 0.3, 0.4}

	result := MixMicWithStereoSystem(mic, system)

	assert.Len(t, result, 4)
	assert.InDelta(t, 0.6, result[0], 1e-6) // L: 0.5 + 0.1
	assert.InDelta(t, 0.7, result[1], 1e-6) // R: 0.5 + 0.2
	assert.InDelta(t, 0.6, result[2], 1e-6) // L: 0.3 + 0.3
	assert.InDelta(t, 0.7, result[3], 1e-6) // R: 0.3 + 0.4
}

func TestMixMicLongerThanSystem(t *testing.T) {
	mic := []float32{0.5, 0.3, 0.1}
	system := []float32{0.1, 0.2} // 1 stereo frame

	result := MixMicWithStereoSystem(mic, system)

	assert.Len(t, result, 6) // 3 frames
	assert.InDelta(t, 0.1, result[4], 1e-6)
	assert.InDelta(t, 0.1, result[5], 1e-6)
}

func TestMixEmptyInputs(t *testing.T) {
	assert.Empty(t, MixMicWithStereoSystem(nil, nil))
}

func TestInterleaveBasic(t *testing.T) {
	left := []float32{1, 2, 3}
	right := []float32{4, 5, 6}

	assert.Equal(t, []float32{1, 4, 2, 5, 3, 6}, Interleave(left, right))
}

func TestInterleaveUnequalLengths(t *testing.T) {
	left := []float32{1, 2}
	right := []float32{4, 5, 6}

	result := Interleave(left, right)

	assert.Len(t, result, 6)
	assert.Equal(t, float32(0), result[4]) // left zero-padded
	assert.Equal(t, float32(6), result[5])
}

func TestConvertToInt16PCM(t *testing.T) {
	samples := []float32{0.0, 1.0, -1.0, 0.5}

	pcm := ConvertToInt16PCM(samples)

	assert.Len(t, pcm, 8)
	assert.Equal(t, int16(0), readI16(pcm, 0))
	assert.Equal(t, int16(math.MaxInt16), readI16(pcm, 1))
	assert.Equal(t, int16(-math.MaxInt16), readI16(pcm, 2))
}

func TestConvertClampsOutOfRange(t *testing.T) {
	samples := []float32{2.0, -3.0}

	pcm := ConvertToInt16PCM(samples)

	assert.Equal(t, int16(math.MaxInt16), readI16(pcm, 0))
	assert.Equal(t, int16(-math.MaxInt16), readI16(pcm, 1))
}

func TestResampleSameRateIsPassthrough(t *testing.T) {
	samples := []float32{1, 2, 3}
	assert.Equal(t, samples, Resample(samples, 48000, 48000))
}

func TestResampleUpsample2x(t *testing.T) {
	samples := []float32{0, 1}

	result := Resample(samples, 24000, 48000)

	assert.Len(t, result, 4)
	assert.InDelta(t, 0.0, result[0], 0.01)
	assert.InDelta(t, 0.5, result[1], 0.1)
}

func TestResampleDownsample(t *testing.T) {
	samples := make([]float32, 100)
	for i := range samples {
		samples[i] = float32(i) / 100
	}

	result := Resample(samples, 48000, 24000)

	assert.Len(t, result, 50)
}

func TestResampleStereoSameRate(t *testing.T) {
	samples := []float32{1, 2, 3, 4}
	assert.Equal(t, samples, ResampleStereo(samples, 48000, 48000))
}

func TestRMSLevelSilence(t *testing.T) {
	assert.Equal(t, float32(0), RMSLevel([]float32{0, 0, 0}))
}

func TestRMSLevelFullScale(t *testing.T) {
	assert.InDelta(t, 1.0, RMSLevel([]float32{1, 1, 1}), 1e-6)
}

func TestPeakLevelBasic(t *testing.T) {
	assert.InDelta(t, 0.5, PeakLevel([]float32{0.1, -0.5, 0.3}), 1e-6)
}

func readI16(b []byte, sampleIndex int) int16 {
	return int16(binary.LittleEndian.Uint16(b[sampleIndex*2:]))
}
