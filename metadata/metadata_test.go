package metadata

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pablohealth/audiocapturekit/capture"
)

func sampleMetadata() capture.RecordingMetadata {
	return capture.RecordingMetadata{
		ID:           "a1b2c3",
		DurationSecs: 12.5,
		FilePath:     "/recordings/session.wav",
		Checksum:     "deadbeef",
		IsEncrypted:  true,
		CreatedAt:    "2026-07-31T00:00:00Z",
		Tracks: []capture.AudioTrack{
			{Kind: capture.SourceMic, Channel: capture.ChannelCenter},
			{Kind: capture.SourceSystem, Channel: capture.ChannelStereo},
		},
		EncryptionAlgorithm: "AES-256-GCM",
		EncryptionKeyID:     "demo-key-v1",
	}
}

func TestWriteThenReadRoundTrips(t *testing.T) {
	recordingPath := filepath.Join(t.TempDir(), "session.wav")
	original := sampleMetadata()
	original.FilePath = recordingPath

	require.NoError(t, Write(original, recordingPath))

	read, err := Read(recordingPath)
	require.NoError(t, err)
	assert.Equal(t, original, read)
}

func TestSidecarPathReplacesExtension(t *testing.T) {
	assert.Equal(t, "/tmp/session.metadata.json", sidecarPath("/tmp/session.wav"))
	assert.Equal(t, "/tmp/session.metadata.json", sidecarPath("/tmp/session.enc.wav"))
}

func TestSidecarPathNoExtension(t *testing.T) {
	assert.Equal(t, "/tmp/session.metadata.json", sidecarPath("/tmp/session"))
}

func TestReadMissingSidecarFails(t *testing.T) {
	_, err := Read(filepath.Join(t.TempDir(), "missing.wav"))
	assert.Error(t, err)
}

func TestWrittenFileIsHumanReadableJSON(t *testing.T) {
	recordingPath := filepath.Join(t.TempDir(), "session.wav")
	require.NoError(t, Write(sampleMetadata(), recordingPath))

	data, err := os.ReadFile(sidecarPath(recordingPath))
	require.NoError(t, err)

	s := string(data)
	assert.Contains(t, s, `"duration_secs": 12.5`)
	assert.Contains(t, s, `"type": "mic"`)
	assert.Contains(t, s, `"channel": "LR"`)
}
