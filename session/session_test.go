package session

import (
	"os"
	"path/filepath"
	"sync"
	"testing"

	gowav "github.com/go-audio/wav"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pablohealth/audiocapturekit/capture"
)

// fakeProvider is a capture.Provider test double: Start stores the
// callback so a test can drive it synchronously instead of waiting on a
// real audio backend.
type fakeProvider struct {
	mu        sync.Mutex
	available bool
	info      capture.AudioSource
	cb        capture.AudioBufferCallback
	started   bool
	stopped   bool
}

func (p *fakeProvider) IsAvailable() bool          { return p.available }
func (p *fakeProvider) DeviceInfo() capture.AudioSource { return p.info }

func (p *fakeProvider) Start(cb capture.AudioBufferCallback) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.cb = cb
	p.started = true
	return nil
}

func (p *fakeProvider) Stop() error {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.stopped = true
	return nil
}

func (p *fakeProvider) feed(samples []float32, sampleRate float64, channels uint16) {
	p.mu.Lock()
	cb := p.cb
	p.mu.Unlock()
	if cb != nil {
		cb(samples, sampleRate, channels)
	}
}

// fakeDelegate records every notification it receives.
type fakeDelegate struct {
	mu         sync.Mutex
	states     []capture.State
	levels     []capture.Levels
	errors     []*capture.Error
	finishedAt []capture.RecordingResult
}

func (d *fakeDelegate) OnStateChanged(state capture.State) {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.states = append(d.states, state)
}

func (d *fakeDelegate) OnLevelsUpdated(levels capture.Levels) {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.levels = append(d.levels, levels)
}

func (d *fakeDelegate) OnError(err *capture.Error) {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.errors = append(d.errors, err)
}

func (d *fakeDelegate) OnCaptureFinished(result capture.RecordingResult) {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.finishedAt = append(d.finishedAt, result)
}

func newTestSession(t *testing.T, enableMic, enableSystem bool) (*Session, *fakeProvider, *fakeProvider, *fakeDelegate, capture.Config) {
	t.Helper()

	mic := &fakeProvider{available: true, info: capture.AudioSource{ID: "mic0", Name: "Test Mic", Kind: capture.SourceMic}}
	system := &fakeProvider{available: true, info: capture.AudioSource{ID: "sys0", Name: "Test Loopback", Kind: capture.SourceSystem}}

	s := New(mic, system)
	delegate := &fakeDelegate{}
	s.SetDelegate(delegate)

	config := capture.DefaultConfig()
	config.SampleRate = 8000
	config.OutputDirectory = t.TempDir()
	config.EnableMicCapture = enableMic
	config.EnableSystemCapture = enableSystem

	return s, mic, system, delegate, config
}

func TestConfigureTransitionsIdleToReady(t *testing.T) {
	s, _, _, _, config := newTestSession(t, true, true)

	require.NoError(t, s.Configure(config))
	assert.Equal(t, capture.StateReady, s.State().Kind)
}

func TestConfigureRejectsInvalidConfig(t *testing.T) {
	s, _, _, _, config := newTestSession(t, false, false)

	err := s.Configure(config)
	assert.Error(t, err)
	assert.Equal(t, capture.StateIdle, s.State().Kind)
}

func TestConfigureFromNonIdleFails(t *testing.T) {
	s, _, _, _, config := newTestSession(t, true, true)
	require.NoError(t, s.Configure(config))

	err := s.Configure(config)
	assert.Error(t, err)
}

func TestStartCaptureRequiresReadyState(t *testing.T) {
	s, _, _, _, _ := newTestSession(t, true, true)

	err := s.StartCapture()
	assert.Error(t, err)
}

func TestStopCaptureRequiresCapturingOrPaused(t *testing.T) {
	s, _, _, _, config := newTestSession(t, true, true)
	require.NoError(t, s.Configure(config))

	_, err := s.StopCapture()
	assert.Error(t, err)
}

func TestFullLifecycleMicOnlyProducesValidWAVFile(t *testing.T) {
	s, mic, _, delegate, config := newTestSession(t, true, false)
	require.NoError(t, s.Configure(config))
	require.NoError(t, s.StartCapture())
	assert.Equal(t, capture.StateCapturing, s.State().Kind)

	samples := make([]float32, 800) // 100ms at 8000Hz mono
	for i := range samples {
		samples[i] = 0.1
	}
	mic.feed(samples, 8000, 1)

	result, err := s.StopCapture()
	require.NoError(t, err)

	assert.Equal(t, capture.StateIdle, s.State().Kind)
	assert.NotEmpty(t, result.Checksum)
	assert.GreaterOrEqual(t, result.DurationSecs, 0.0)

	_, statErr := os.Stat(result.FilePath)
	require.NoError(t, statErr)

	f, err := os.Open(result.FilePath)
	require.NoError(t, err)
	defer f.Close()

	dec := gowav.NewDecoder(f)
	require.True(t, dec.IsValidFile())
	assert.Equal(t, 8000, int(dec.SampleRate))

	_, metaErr := os.Stat(sidecarPathFor(result.FilePath))
	assert.NoError(t, metaErr)

	require.Len(t, delegate.finishedAt, 1)
	assert.Equal(t, result.Checksum, delegate.finishedAt[0].Checksum)
}

func TestPauseThenResumeRequiresCorrectState(t *testing.T) {
	s, _, _, _, config := newTestSession(t, true, false)
	require.NoError(t, s.Configure(config))

	assert.Error(t, s.PauseCapture()) // not capturing yet

	require.NoError(t, s.StartCapture())
	require.NoError(t, s.PauseCapture())
	assert.Equal(t, capture.StatePaused, s.State().Kind)

	assert.Error(t, s.StartCapture()) // already past ready

	require.NoError(t, s.ResumeCapture())
	assert.Equal(t, capture.StateCapturing, s.State().Kind)

	_, err := s.StopCapture()
	require.NoError(t, err)
}

func TestAvailableSourcesReflectsProviderAvailability(t *testing.T) {
	s, mic, system, _, _ := newTestSession(t, true, true)
	mic.available = true
	system.available = false

	sources, err := s.AvailableSources()
	require.NoError(t, err)
	require.Len(t, sources, 1)
	assert.Equal(t, capture.SourceMic, sources[0].Kind)
}

func TestUnwritableOutputDirectoryIsRejectedAtConfigure(t *testing.T) {
	// An output directory that cannot be created (a file in place of a
	// directory) fails Configure's writability check, leaving the session
	// Idle, so a following StartCapture fails too.
	s, _, _, _, config := newTestSession(t, true, false)

	blocker := filepath.Join(config.OutputDirectory, "blocker")
	require.NoError(t, os.WriteFile(blocker, []byte("x"), 0o644))
	config.OutputDirectory = filepath.Join(blocker, "nested")

	assert.Error(t, s.Configure(config))
	assert.Equal(t, capture.StateIdle, s.State().Kind)
	err := s.StartCapture()
	assert.Error(t, err)
}

func sidecarPathFor(recordingPath string) string {
	ext := filepath.Ext(recordingPath)
	return recordingPath[:len(recordingPath)-len(ext)] + ".metadata.json"
}
