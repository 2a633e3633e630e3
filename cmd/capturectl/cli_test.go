package main

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pablohealth/audiocapturekit/capture"
	"github.com/pablohealth/audiocapturekit/metadata"
)

func TestDeleteSidecarPathMatchesMetadataConvention(t *testing.T) {
	dir := t.TempDir()
	recording := filepath.Join(dir, "recording_abc.wav")

	m := capture.RecordingMetadata{ID: "abc", FilePath: recording, CreatedAt: "2026-07-31T00:00:00Z"}
	require.NoError(t, metadata.Write(m, recording))

	ext := filepath.Ext(recording)
	sidecar := recording[:len(recording)-len(ext)] + ".metadata.json"

	_, err := os.Stat(sidecar)
	assert.NoError(t, err)
}

func TestLoggingDelegateSignalsDoneOnFinish(t *testing.T) {
	done := make(chan struct{})
	d := &loggingDelegate{logger: capture.NopLogger{}, done: done}

	go d.OnCaptureFinished(capture.RecordingResult{FilePath: "x.wav"})

	select {
	case <-done:
	case <-time.After(time.Second):
		t.Fatal("OnCaptureFinished did not close done channel")
	}
}
