/*
NAME
  wav.go

DESCRIPTION
  wav.go generates and patches 44-byte RIFF/WAVE PCM headers, rewritten from
  codec/wav/wav.go's one-shot Write into the generate-then-patch-in-place
  shape a streaming writer needs (storage.Writer writes a zero-size header
  up front and patches it once the file is finalized). Byte layout ported
  from original_source/processing/wav_format.rs.

AUTHOR
  David Sutton <davidsutton@ausocean.org>

LICENSE
  Copyright (C) 2024 the Australian Ocean Lab (AusOcean). All Rights Reserved.

  The Software and all intellectual property rights associated
  therewith, including but not limited to copyrights, trademarks,
  patents, and trade secrets, are and will remain the exclusive
  property of the Australian Ocean Lab (AusOcean).
*/

// Package wav provides the 44-byte RIFF/WAVE PCM header codec used by
// storage.Writer.
package wav

import "encoding/binary"

// HeaderSize is the size in bytes of the standard WAV RIFF header.
const HeaderSize = 44

// pcmFormatCode is the WAV format code for uncompressed PCM.
const pcmFormatCode = 1

// Generate returns a 44-byte little-endian PCM WAV header.
//
// Layout:
//
//	[0-3]    "RIFF"
//	[4-7]    file size - 8  (36 + dataSize)
//	[8-11]   "WAVE"
//	[12-15]  "fmt "
//	[16-19]  16 (PCM format chunk size)
//	[20-21]  1  (PCM format code)
//	[22-23]  channels
//	[24-27]  sampleRate
//	[28-31]  byteRate = sampleRate * channels * bitDepth / 8
//	[32-33]  blockAlign = channels * bitDepth / 8
//	[34-35]  bitDepth
//	[36-39]  "data"
//	[40-43]  dataSize
func Generate(sampleRate uint32, bitDepth, channels uint16, dataSize uint32) [HeaderSize]byte {
	byteRate := sampleRate * uint32(channels) * uint32(bitDepth) / 8
	blockAlign := channels * bitDepth / 8
	chunkSize := 36 + dataSize

	var h [HeaderSize]byte
	copy(h[0:4], "RIFF")
	binary.LittleEndian.PutUint32(h[4:8], chunkSize)
	copy(h[8:12], "WAVE")

	copy(h[12:16], "fmt ")
	binary.LittleEndian.PutUint32(h[16:20], 16)
	binary.LittleEndian.PutUint16(h[20:22], pcmFormatCode)
	binary.LittleEndian.PutUint16(h[22:24], channels)
	binary.LittleEndian.PutUint32(h[24:28], sampleRate)
	binary.LittleEndian.PutUint32(h[28:32], byteRate)
	binary.LittleEndian.PutUint16(h[32:34], blockAlign)
	binary.LittleEndian.PutUint16(h[34:36], bitDepth)

	copy(h[36:40], "data")
	binary.LittleEndian.PutUint32(h[40:44], dataSize)

	return h
}

// PatchFileSize patches the RIFF chunk-size field (offset 4) given the
// total file size on disk.
func PatchFileSize(header []byte, totalFileSize uint64) {
	binary.LittleEndian.PutUint32(header[4:8], uint32(totalFileSize-8))
}

// PatchDataSize patches the data-size field (offset 40).
func PatchDataSize(header []byte, dataSize uint64) {
	binary.LittleEndian.PutUint32(header[40:44], uint32(dataSize))
}

// PatchSampleRate patches the sample-rate (offset 24), byte-rate (offset
// 28), and block-align (offset 32) fields — used when the actual delivered
// sample rate differs from the one a header was first generated with.
func PatchSampleRate(header []byte, sampleRate uint32, channels, bitDepth uint16) {
	byteRate := sampleRate * uint32(channels) * uint32(bitDepth) / 8
	blockAlign := channels * bitDepth / 8

	binary.LittleEndian.PutUint32(header[24:28], sampleRate)
	binary.LittleEndian.PutUint32(header[28:32], byteRate)
	binary.LittleEndian.PutUint16(header[32:34], blockAlign)
}

// DownmixToMono averages interleaved multi-channel audio down to mono.
// Passes mono input through unchanged.
func DownmixToMono(samples []float32, channels int) []float32 {
	if channels <= 1 {
		return samples
	}

	frameCount := len(samples) / channels
	scale := float32(1) / float32(channels)
	mono := make([]float32, frameCount)
	for frame := 0; frame < frameCount; frame++ {
		var sum float32
		for ch := 0; ch < channels; ch++ {
			sum += samples[frame*channels+ch]
		}
		mono[frame] = sum * scale
	}
	return mono
}
