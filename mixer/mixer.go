/*
NAME
  mixer.go

DESCRIPTION
  mixer.go contains functions for resampling, mixing, and converting PCM
  audio, ported from original_source/processing/stereo_mixer.rs into the
  teacher's codec/pcm function-per-operation style.

AUTHOR
  Trek Hopton <trek@ausocean.org>

LICENSE
  Copyright (C) 2024 the Australian Ocean Lab (AusOcean). All Rights Reserved.

  The Software and all intellectual property rights associated
  therewith, including but not limited to copyrights, trademarks,
  patents, and trade secrets, are and will remain the exclusive
  property of the Australian Ocean Lab (AusOcean).
*/

// Package mixer provides pure-math stereo audio mixing and resampling over
// []float32 buffers, with no platform dependencies.
//
// Stereo output format: Left = mic + system_L, Right = mic + system_R. Mic
// is mono, mixed into the center of the stereo field; system audio
// preserves its natural stereo image.
package mixer

import (
	"encoding/binary"
	"math"

	"gonum.org/v1/gonum/floats"
)

// sameRate reports whether two sample rates are close enough to treat as
// identical, matching the original's passthrough threshold.
func sameRate(a, b float64) bool {
	return math.Abs(a-b) < 0.01
}

// Resample performs linear-interpolation resampling of mono samples from
// sourceRate to targetRate. Returns the input unchanged if the rates match.
func Resample(samples []float32, sourceRate, targetRate float64) []float32 {
	if sameRate(sourceRate, targetRate) || len(samples) == 0 {
		return append([]float32(nil), samples...)
	}

	ratio := targetRate / sourceRate
	outCount := int(float64(len(samples)) * ratio)
	if outCount == 0 {
		return nil
	}

	out := make([]float32, outCount)
	for i := range out {
		srcIndex := float64(i) / ratio
		index := int(srcIndex)
		fraction := float32(srcIndex - float64(index))

		switch {
		case index+1 < len(samples):
			out[i] = samples[index]*(1-fraction) + samples[index+1]*fraction
		case index < len(samples):
			out[i] = samples[index]
		}
	}
	return out
}

// ResampleStereo performs linear-interpolation resampling of interleaved
// stereo samples ([L0, R0, L1, R1, ...]) from sourceRate to targetRate.
func ResampleStereo(samples []float32, sourceRate, targetRate float64) []float32 {
	if sameRate(sourceRate, targetRate) || len(samples) == 0 {
		return append([]float32(nil), samples...)
	}

	frameCount := len(samples) / 2
	ratio := targetRate / sourceRate
	outFrames := int(float64(frameCount) * ratio)
	if outFrames == 0 {
		return nil
	}

	out := make([]float32, outFrames*2)
	for i := 0; i < outFrames; i++ {
		srcIndex := float64(i) / ratio
		index := int(srcIndex)
		fraction := float32(srcIndex - float64(index))

		for ch := 0; ch < 2; ch++ {
			switch {
			case index+1 < frameCount:
				out[i*2+ch] = samples[index*2+ch]*(1-fraction) + samples[(index+1)*2+ch]*fraction
			case index < frameCount:
				out[i*2+ch] = samples[index*2+ch]
			}
		}
	}
	return out
}

// MixMicWithStereoSystem mixes mono mic audio with interleaved stereo
// system audio. mic is mono (one sample per frame); system is interleaved
// stereo ([L0, R0, L1, R1, ...]). Returns interleaved stereo where
// Left[i] = mic[i] + sysL[i] and Right[i] = mic[i] + sysR[i]. Missing
// samples on either side are treated as silence; the output frame count is
// max(len(mic), len(system)/2).
func MixMicWithStereoSystem(mic, system []float32) []float32 {
	micFrames := len(mic)
	sysFrames := len(system) / 2
	frameCount := micFrames
	if sysFrames > frameCount {
		frameCount = sysFrames
	}
	if frameCount == 0 {
		return nil
	}

	out := make([]float32, frameCount*2)
	for i := 0; i < frameCount; i++ {
		var micSample, sysL, sysR float32
		if i < micFrames {
			micSample = mic[i]
		}
		if i*2 < len(system) {
			sysL = system[i*2]
		}
		if i*2+1 < len(system) {
			sysR = system[i*2+1]
		}
		out[i*2] = micSample + sysL
		out[i*2+1] = micSample + sysR
	}
	return out
}

// Interleave combines two mono channels into stereo [L0, R0, L1, R1, ...].
// Missing samples on the shorter channel are treated as silence.
func Interleave(left, right []float32) []float32 {
	frameCount := len(left)
	if len(right) > frameCount {
		frameCount = len(right)
	}
	if frameCount == 0 {
		return nil
	}

	out := make([]float32, frameCount*2)
	for i := 0; i < frameCount; i++ {
		if i < len(left) {
			out[i*2] = left[i]
		}
		if i < len(right) {
			out[i*2+1] = right[i]
		}
	}
	return out
}

// ConvertToInt16PCM converts f32 samples in [-1.0, 1.0] to little-endian
// 16-bit PCM bytes, clamping out-of-range values. Output length is
// len(samples) * 2.
func ConvertToInt16PCM(samples []float32) []byte {
	out := make([]byte, len(samples)*2)
	for i, s := range samples {
		if s > 1 {
			s = 1
		} else if s < -1 {
			s = -1
		}
		v := int16(s * math.MaxInt16)
		binary.LittleEndian.PutUint16(out[i*2:], uint16(v))
	}
	return out
}

// RMSLevel computes the root-mean-square level of samples in the
// normalized 0.0-1.0 range, using gonum's Dot for the sum of squares.
func RMSLevel(samples []float32) float32 {
	if len(samples) == 0 {
		return 0
	}
	samples64 := make([]float64, len(samples))
	for i, s := range samples {
		samples64[i] = float64(s)
	}
	sumSq := floats.Dot(samples64, samples64)
	return float32(math.Sqrt(sumSq / float64(len(samples))))
}

// PeakLevel computes the maximum absolute sample value.
func PeakLevel(samples []float32) float32 {
	var peak float32
	for _, s := range samples {
		abs := s
		if abs < 0 {
			abs = -abs
		}
		if abs > peak {
			peak = abs
		}
	}
	return peak
}
