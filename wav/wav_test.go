package wav

import (
	"bytes"
	"encoding/binary"
	"testing"

	gowav "github.com/go-audio/wav"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestHeaderSizeIs44Bytes(t *testing.T) {
	h := Generate(48000, 16, 2, 0)
	assert.Len(t, h, 44)
}

func TestHeaderRIFFMagic(t *testing.T) {
	h := Generate(48000, 16, 2, 0)
	assert.Equal(t, "RIFF", string(h[0:4]))
	assert.Equal(t, "WAVE", string(h[8:12]))
	assert.Equal(t, "fmt ", string(h[12:16]))
	assert.Equal(t, "data", string(h[36:40]))
}

func TestHeaderPCMFormat(t *testing.T) {
	h := Generate(48000, 16, 2, 0)
	assert.Equal(t, uint16(1), binary.LittleEndian.Uint16(h[20:22]))
	assert.Equal(t, uint32(16), binary.LittleEndian.Uint32(h[16:20]))
}

func TestHeader48kHzStereo16Bit(t *testing.T) {
	h := Generate(48000, 16, 2, 9600)

	assert.Equal(t, uint16(2), binary.LittleEndian.Uint16(h[22:24]))
	assert.Equal(t, uint32(48000), binary.LittleEndian.Uint32(h[24:28]))
	assert.Equal(t, uint32(192000), binary.LittleEndian.Uint32(h[28:32])) // 48000*2*16/8
	assert.Equal(t, uint16(4), binary.LittleEndian.Uint16(h[32:34]))     // 2*16/8
	assert.Equal(t, uint16(16), binary.LittleEndian.Uint16(h[34:36]))
	assert.Equal(t, uint32(9600), binary.LittleEndian.Uint32(h[40:44]))
	assert.Equal(t, uint32(36+9600), binary.LittleEndian.Uint32(h[4:8]))
}

func TestPatchSizes(t *testing.T) {
	h := Generate(48000, 16, 2, 0)
	header := h[:]

	PatchDataSize(header, 19200)
	assert.Equal(t, uint32(19200), binary.LittleEndian.Uint32(header[40:44]))

	PatchFileSize(header, 19200+44)
	assert.Equal(t, uint32(19200+36), binary.LittleEndian.Uint32(header[4:8]))
}

func TestPatchSampleRateUpdatesDerivedFields(t *testing.T) {
	h := Generate(48000, 16, 2, 0)
	header := h[:]

	PatchSampleRate(header, 16000, 2, 16)

	assert.Equal(t, uint32(16000), binary.LittleEndian.Uint32(header[24:28]))
	assert.Equal(t, uint32(64000), binary.LittleEndian.Uint32(header[28:32])) // 16000*2*2
}

func TestDownmixStereoToMono(t *testing.T) {
	stereo := []float32{0.2, 0.8, 0.4, 0.6}
	mono := DownmixToMono(stereo, 2)

	require.Len(t, mono, 2)
	assert.InDelta(t, 0.5, mono[0], 1e-6)
	assert.InDelta(t, 0.5, mono[1], 1e-6)
}

func TestDownmixMonoPassthrough(t *testing.T) {
	samples := []float32{0.1, 0.2, 0.3}
	assert.Equal(t, samples, DownmixToMono(samples, 1))
}

// TestGeneratedHeaderIsValidWAVFile builds a full header+PCM file and
// verifies it round-trips through go-audio/wav's decoder, confirming the
// header this package produces is a file any standard WAV reader accepts.
func TestGeneratedHeaderIsValidWAVFile(t *testing.T) {
	pcm := []byte{1, 0, 2, 0, 3, 0, 4, 0} // 4 little-endian int16 samples
	header := Generate(8000, 16, 1, uint32(len(pcm)))

	var buf bytes.Buffer
	buf.Write(header[:])
	buf.Write(pcm)

	dec := gowav.NewDecoder(bytes.NewReader(buf.Bytes()))
	require.True(t, dec.IsValidFile())

	pcmBuf, err := dec.FullPCMBuffer()
	require.NoError(t, err)
	assert.Equal(t, 8000, int(dec.SampleRate))
	assert.Equal(t, []int{1, 2, 3, 4}, pcmBuf.Data)
}
