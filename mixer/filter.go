/*
NAME
  filter.go

DESCRIPTION
  filter.go implements an optional high-pass pre-filter for the mic signal,
  adapted from codec/pcm/filters.go's SelectiveFrequencyFilter (a windowed
  FIR filter built via go-dsp) to operate directly on []float32 rather than
  []byte, since mixer works on the float domain throughout.

AUTHOR
  David Sutton <davidsutton@ausocean.org>

LICENSE
  Copyright (C) 2024 the Australian Ocean Lab (AusOcean). All Rights Reserved.

  The Software and all intellectual property rights associated
  therewith, including but not limited to copyrights, trademarks,
  patents, and trade secrets, are and will remain the exclusive
  property of the Australian Ocean Lab (AusOcean).
*/

package mixer

import (
	"errors"
	"fmt"
	"math"

	"github.com/mjibson/go-dsp/fft"
	"github.com/mjibson/go-dsp/window"
)

// defaultTaps is the FIR filter length used for the mic high-pass
// pre-filter. 127 taps gives a reasonably sharp rolloff at typical speech
// sample rates without meaningfully adding latency at 100ms chunk sizes.
const defaultTaps = 127

// HighPassFilter is a windowed-sinc FIR high-pass filter for removing DC
// rumble and low-frequency noise from a mono signal before it is mixed.
type HighPassFilter struct {
	coeffs []float64
}

// NewHighPassFilter builds a high-pass filter with cutoff cutoffHz for a
// signal sampled at sampleRate Hz.
func NewHighPassFilter(cutoffHz, sampleRate float64) (*HighPassFilter, error) {
	if cutoffHz <= 0 || cutoffHz >= sampleRate/2 {
		return nil, errors.New("mixer: highpass cutoff frequency out of bounds")
	}

	taps := defaultTaps
	size := taps + 1
	fd := cutoffHz / sampleRate
	b := 2 * math.Pi * fd

	coeffs := make([]float64, size)
	winData := window.FlatTop(size)
	for n := 0; n < taps/2; n++ {
		c := float64(n) - float64(taps)/2
		y := math.Sin(c*b) / (math.Pi * c)
		coeffs[n] = -y * winData[n]
		coeffs[size-1-n] = coeffs[n]
	}
	coeffs[taps/2] = (1 - 2*fd) * winData[taps/2]

	return &HighPassFilter{coeffs: coeffs}, nil
}

// Apply convolves samples with the filter's coefficients and returns the
// filtered signal, clipped to [-1, 1].
func (f *HighPassFilter) Apply(samples []float32) ([]float32, error) {
	if len(samples) == 0 {
		return samples, nil
	}

	in := make([]float64, len(samples))
	for i, s := range samples {
		in[i] = float64(s)
	}

	out, err := fastConvolve(in, f.coeffs)
	if err != nil {
		return nil, fmt.Errorf("mixer: highpass convolution failed: %w", err)
	}

	// fastConvolve's output is longer than the input by len(coeffs)-1; keep
	// only the samples aligned with the original signal.
	result := make([]float32, len(samples))
	for i := range result {
		v := out[i]
		if v > 1 {
			v = 1
		} else if v < -1 {
			v = -1
		}
		result[i] = float32(v)
	}
	return result, nil
}

// fastConvolve convolves x with FIR filter h in O(n log n) via FFT.
func fastConvolve(x, h []float64) ([]float64, error) {
	if len(x) == 0 || len(h) == 0 {
		return nil, errors.New("mixer: convolution requires non-empty slices")
	}

	convLen := len(x) + len(h) - 1
	padLen := int(math.Pow(2, math.Ceil(math.Log2(float64(convLen)))))

	xPad := make([]float64, padLen)
	copy(xPad, x)
	hPad := make([]float64, padLen)
	copy(hPad, h)

	xFFT, hFFT := fft.FFTReal(xPad), fft.FFTReal(hPad)

	yFFT := make([]complex128, padLen)
	for i := range xFFT {
		yFFT[i] = xFFT[i] * hFFT[i]
	}

	iy := fft.IFFT(yFFT)
	y := make([]float64, padLen)
	for i := range iy {
		y[i] = real(iy[i])
	}

	return y[:convLen], nil
}
