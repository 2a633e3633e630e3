/*
NAME
  session.go

DESCRIPTION
  session.go implements Session, the platform-agnostic capture orchestrator
  that wires together two capture.Provider instances, the ring buffers, the
  mixer, and storage.Writer into a runnable recording session. Ported from
  original_source/session/composite.rs's CompositeSession, generalized from
  parking_lot::Mutex + thread::spawn into sync.Mutex + goroutines/channels
  the way revid.Revid manages its own worker goroutine with a stop channel
  and sync.WaitGroup.

AUTHOR
  David Sutton <davidsutton@ausocean.org>

LICENSE
  Copyright (C) 2024 the Australian Ocean Lab (AusOcean). All Rights Reserved.

  The Software and all intellectual property rights associated
  therewith, including but not limited to copyrights, trademarks,
  patents, and trade secrets, are and will remain the exclusive
  property of the Australian Ocean Lab (AusOcean).
*/

// Package session orchestrates a two-track (mic + system) audio capture
// session: buffering, mixing, optional encryption, and WAV file output.
package session

import (
	"fmt"
	"path/filepath"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/pablohealth/audiocapturekit/capture"
	"github.com/pablohealth/audiocapturekit/metadata"
	"github.com/pablohealth/audiocapturekit/mixer"
	"github.com/pablohealth/audiocapturekit/ringbuffer"
	"github.com/pablohealth/audiocapturekit/storage"
	"github.com/pablohealth/audiocapturekit/wav"
)

// processingInterval is how often the mix/write loop runs while capturing.
const processingInterval = 100 * time.Millisecond

// timerInterval is how often the duration/levels timer fires while capturing.
const timerInterval = 250 * time.Millisecond

// sessionState is the mutable state protected by Session.stateMu. Lock
// ordering: a caller must never hold writerMu while acquiring stateMu, and
// never hold micBufMu or sysBufMu while acquiring any other lock — the ring
// buffer locks are always the innermost.
type sessionState struct {
	state           capture.State
	levels          capture.Levels
	diagnostics     capture.Diagnostics
	captureStart    time.Time
	pausedDuration  time.Duration
	lastPauseTime   time.Time
	detectedMicRate float64 // 0 means "not yet observed"
}

func newSessionState() sessionState {
	return sessionState{state: capture.Idle()}
}

// elapsedDuration returns the active (non-paused) duration of the current
// capture, or 0 if capture has not started.
func (s *sessionState) elapsedDuration() float64 {
	if s.captureStart.IsZero() {
		return 0
	}
	total := time.Since(s.captureStart)
	active := total - s.pausedDuration
	return active.Seconds()
}

// Session is a platform-agnostic capture session orchestrator, generic over
// its mic and system-loopback capture.Provider backends.
//
// Data flow:
//
//	[mic Provider]    -> [mic ring buffer]    --\
//	                                              +-> mix -> PCM -> storage.Writer
//	[system Provider] -> [system ring buffer] --/
type Session struct {
	mic      capture.Provider
	system   capture.Provider
	delegate capture.Delegate
	logger   capture.Logger

	config      capture.Config
	configured  bool
	outputRate  float64
	micHighpass *mixer.HighPassFilter

	stateMu sync.Mutex
	state   sessionState

	micBufMu sync.Mutex
	micBuf   *ringbuffer.RingBuffer

	sysBufMu sync.Mutex
	sysBuf   *ringbuffer.RingBuffer

	writerMu sync.Mutex
	writer   *storage.Writer

	filePath string

	wg             sync.WaitGroup
	processingStop chan struct{}
	timerStop      chan struct{}
}

// New returns a Session orchestrating the given mic and system-loopback
// providers. The session starts in the Idle state and must be configured
// with Configure before StartCapture.
func New(mic, system capture.Provider) *Session {
	return &Session{
		mic:      mic,
		system:   system,
		logger:   capture.NopLogger{},
		state:    newSessionState(),
		micBuf:   ringbuffer.New(1), // resized by Configure
		sysBuf:   ringbuffer.New(1),
	}
}

// SetDelegate registers d to receive state, level, error, and completion
// notifications. State changes and completion fire on the goroutine of the
// call that caused them; level updates and mix-loop errors fire from
// internal worker goroutines.
func (s *Session) SetDelegate(d capture.Delegate) { s.delegate = d }

// SetLogger registers l for diagnostic logging. Defaults to a no-op logger.
func (s *Session) SetLogger(l capture.Logger) {
	if l == nil {
		l = capture.NopLogger{}
	}
	s.logger = l
}

// State returns the session's current lifecycle state.
func (s *Session) State() capture.State {
	s.stateMu.Lock()
	defer s.stateMu.Unlock()
	return s.state.state
}

// CurrentLevels returns the most recently measured mic and system levels.
func (s *Session) CurrentLevels() capture.Levels {
	s.stateMu.Lock()
	defer s.stateMu.Unlock()
	return s.state.levels
}

// Diagnostics returns a snapshot of the session's running counters.
func (s *Session) Diagnostics() capture.Diagnostics {
	s.stateMu.Lock()
	defer s.stateMu.Unlock()
	return s.state.diagnostics
}

// AvailableSources lists the mic and/or system sources currently available
// for capture.
func (s *Session) AvailableSources() ([]capture.AudioSource, error) {
	var sources []capture.AudioSource
	if s.mic.IsAvailable() {
		sources = append(sources, s.mic.DeviceInfo())
	}
	if s.system.IsAvailable() {
		sources = append(sources, s.system.DeviceInfo())
	}
	return sources, nil
}

// Configure validates config and prepares the session for capture.
// Transitions: Idle -> Configuring -> Ready.
func (s *Session) Configure(config capture.Config) error {
	if !s.State().IsIdle() {
		return capture.NewConfigurationFailed("can only configure from idle state")
	}

	if err := config.Validate(); err != nil {
		return capture.NewConfigurationFailed(err.Error())
	}

	s.setState(capture.Configuring())

	s.outputRate = config.SampleRate
	s.micHighpass = nil
	if config.MicHighpassHz > 0 {
		filter, err := mixer.NewHighPassFilter(config.MicHighpassHz, config.SampleRate)
		if err != nil {
			return capture.NewConfigurationFailed(fmt.Sprintf("failed to build mic highpass filter: %v", err))
		}
		s.micHighpass = filter
	}

	// Size ring buffers for 5 seconds of audio; system is stereo so doubles.
	bufferCapacity := int(config.SampleRate * 5)
	s.micBufMu.Lock()
	s.micBuf = ringbuffer.New(bufferCapacity)
	s.micBufMu.Unlock()

	s.sysBufMu.Lock()
	s.sysBuf = ringbuffer.New(bufferCapacity * 2)
	s.sysBufMu.Unlock()

	s.config = config
	s.configured = true
	s.setState(capture.Ready())
	return nil
}

// StartCapture opens the output file and begins capturing from both
// configured providers. Transitions: Ready -> Capturing.
func (s *Session) StartCapture() error {
	if !s.configured {
		return capture.NewConfigurationFailed("not configured")
	}
	if s.State().Kind != capture.StateReady {
		return capture.NewConfigurationFailed("can only start from ready state")
	}

	config := s.config

	ext := "wav"
	if config.Encryptor != nil {
		ext = "enc.wav"
	}
	fileName := fmt.Sprintf("recording_%s.%s", uuid.New().String(), ext)
	filePath := filepath.Join(config.OutputDirectory, fileName)
	s.filePath = filePath

	w := storage.New(filePath, config.Encryptor)
	if err := w.Open(config); err != nil {
		return err
	}
	s.writerMu.Lock()
	s.writer = w
	s.writerMu.Unlock()

	if config.EnableMicCapture && s.mic.IsAvailable() {
		if err := s.mic.Start(s.micCallback()); err != nil {
			return err
		}
	}
	if config.EnableSystemCapture && s.system.IsAvailable() {
		if err := s.system.Start(s.systemCallback()); err != nil {
			return err
		}
	}

	s.stateMu.Lock()
	s.state.captureStart = time.Now()
	s.state.pausedDuration = 0
	s.stateMu.Unlock()

	s.setState(capture.Capturing(0))

	s.startProcessingLoop()
	s.startDurationTimer()

	return nil
}

// PauseCapture pauses an in-progress capture. Transitions:
// Capturing -> Paused.
func (s *Session) PauseCapture() error {
	current := s.State()
	if current.Kind != capture.StateCapturing {
		return capture.NewConfigurationFailed("can only pause from capturing state")
	}

	s.stateMu.Lock()
	s.state.lastPauseTime = time.Now()
	s.stateMu.Unlock()

	s.setState(capture.Paused(current.DurationSecs))
	return nil
}

// ResumeCapture resumes a paused capture. Transitions: Paused -> Capturing.
func (s *Session) ResumeCapture() error {
	current := s.State()
	if current.Kind != capture.StatePaused {
		return capture.NewConfigurationFailed("can only resume from paused state")
	}

	s.stateMu.Lock()
	if !s.state.lastPauseTime.IsZero() {
		s.state.pausedDuration += time.Since(s.state.lastPauseTime)
		s.state.lastPauseTime = time.Time{}
	}
	s.stateMu.Unlock()

	s.setState(capture.Capturing(current.DurationSecs))
	return nil
}

// StopCapture stops capture, finalizes the output file, writes the
// metadata sidecar, and returns the recording result. Transitions:
// Capturing/Paused -> Stopping -> Completed.
func (s *Session) StopCapture() (capture.RecordingResult, error) {
	current := s.State()
	if current.Kind != capture.StateCapturing && current.Kind != capture.StatePaused {
		return capture.RecordingResult{}, capture.NewConfigurationFailed("can only stop from capturing or paused state")
	}

	s.setState(capture.Stopping())

	if err := s.mic.Stop(); err != nil {
		s.logger.Log(capture.WarningLevel, "mic provider stop failed", "error", err.Error())
	}
	if err := s.system.Stop(); err != nil {
		s.logger.Log(capture.WarningLevel, "system provider stop failed", "error", err.Error())
	}

	if s.processingStop != nil {
		close(s.processingStop)
	}
	if s.timerStop != nil {
		close(s.timerStop)
	}
	s.wg.Wait()

	// Flush whatever remains in the ring buffers.
	s.processBuffersOnce()

	config := s.config

	s.stateMu.Lock()
	detectedRate := s.state.detectedMicRate
	duration := s.state.elapsedDuration()
	s.stateMu.Unlock()

	var actualRate *float64
	if detectedRate > 0 {
		r := detectedRate
		if r > config.SampleRate {
			r = config.SampleRate
		}
		actualRate = &r
	}

	s.writerMu.Lock()
	w := s.writer
	s.writer = nil
	s.writerMu.Unlock()

	if w == nil {
		err := capture.NewStorageError("file writer not available")
		s.failAndReset(err)
		return capture.RecordingResult{}, err
	}

	checksum, err := w.Close(actualRate, config.Channels, config.BitDepth)
	if err != nil {
		captureErr, ok := err.(*capture.Error)
		if !ok {
			captureErr = capture.NewStorageError(err.Error())
		}
		s.failAndReset(captureErr)
		return capture.RecordingResult{}, captureErr
	}

	recordingMetadata := capture.RecordingMetadata{
		ID:           uuid.New().String(),
		DurationSecs: duration,
		FilePath:     s.filePath,
		Checksum:     checksum,
		IsEncrypted:  config.Encryptor != nil,
		CreatedAt:    time.Now().UTC().Format(time.RFC3339),
		Tracks: []capture.AudioTrack{
			{Kind: capture.SourceMic, Channel: capture.ChannelCenter},
			{Kind: capture.SourceSystem, Channel: capture.ChannelStereo},
		},
	}
	if config.Encryptor != nil {
		recordingMetadata.EncryptionAlgorithm = config.Encryptor.Algorithm()
		recordingMetadata.EncryptionKeyID = config.Encryptor.KeyMetadata()["keyId"]
	}

	if err := metadata.Write(recordingMetadata, s.filePath); err != nil {
		s.logger.Log(capture.WarningLevel, "failed to write metadata sidecar", "error", err.Error())
	}

	result := capture.RecordingResult{
		FilePath:     s.filePath,
		DurationSecs: duration,
		Metadata:     recordingMetadata,
		Checksum:     checksum,
	}

	s.setState(capture.Completed(result))

	if s.delegate != nil {
		s.delegate.OnCaptureFinished(result)
	}

	// Reset for the next session.
	s.stateMu.Lock()
	s.state = newSessionState()
	s.stateMu.Unlock()
	s.configured = false

	return result, nil
}

func (s *Session) setState(newState capture.State) {
	s.stateMu.Lock()
	s.state.state = newState
	s.stateMu.Unlock()

	if s.delegate != nil {
		s.delegate.OnStateChanged(newState)
	}
}

// failAndReset transitions to Failed, notifies the delegate of both the
// state change and the error, then resets the session so it can be
// reconfigured, mirroring the happy path's end-of-StopCapture reset.
func (s *Session) failAndReset(err *capture.Error) {
	s.setState(capture.Failed(err))

	if s.delegate != nil {
		s.delegate.OnError(err)
	}

	s.stateMu.Lock()
	s.state = newSessionState()
	s.stateMu.Unlock()
	s.configured = false
}

// micCallback returns the capture.AudioBufferCallback passed to the mic
// provider: downmix to mono, optionally high-pass filter, resample to the
// output rate, update levels/diagnostics, then write to the mic ring
// buffer.
func (s *Session) micCallback() capture.AudioBufferCallback {
	return func(samples []float32, sampleRate float64, channels uint16) {
		mono := samples
		if channels > 1 {
			mono = wav.DownmixToMono(samples, int(channels))
		}

		resampled := mixer.Resample(mono, sampleRate, s.outputRate)

		if s.micHighpass != nil {
			filtered, err := s.micHighpass.Apply(resampled)
			if err != nil {
				s.logger.Log(capture.WarningLevel, "mic highpass filter failed", "error", err.Error())
			} else {
				resampled = filtered
			}
		}

		rms := mixer.RMSLevel(resampled)
		peak := mixer.PeakLevel(resampled)

		s.stateMu.Lock()
		s.state.levels.MicLevel = rms
		s.state.levels.PeakMicLevel = peak
		s.state.diagnostics.MicCallbackCount++
		s.state.diagnostics.MicSamplesTotal += uint64(len(resampled))
		s.state.diagnostics.MicFormat = fmt.Sprintf("%.0fHz/%dch", sampleRate, channels)
		s.state.detectedMicRate = sampleRate
		s.stateMu.Unlock()

		s.micBufMu.Lock()
		s.micBuf.Write(resampled)
		s.micBufMu.Unlock()
	}
}

// systemCallback returns the capture.AudioBufferCallback passed to the
// system-loopback provider: resample to stereo at the output rate (mono
// inputs are duplicated to both channels), update levels/diagnostics using
// the left channel, then write to the system ring buffer.
func (s *Session) systemCallback() capture.AudioBufferCallback {
	return func(samples []float32, sampleRate float64, channels uint16) {
		var resampled []float32
		if channels >= 2 {
			resampled = mixer.ResampleStereo(samples, sampleRate, s.outputRate)
		} else {
			mono := mixer.Resample(samples, sampleRate, s.outputRate)
			resampled = mixer.Interleave(mono, mono)
		}

		left := make([]float32, 0, len(resampled)/2)
		for i := 0; i < len(resampled); i += 2 {
			left = append(left, resampled[i])
		}
		rms := mixer.RMSLevel(left)
		peak := mixer.PeakLevel(left)

		s.stateMu.Lock()
		s.state.levels.SystemLevel = rms
		s.state.levels.PeakSystemLevel = peak
		s.state.diagnostics.SystemCallbackCount++
		s.state.diagnostics.SystemSamplesTotal += uint64(len(resampled))
		s.state.diagnostics.SystemFormat = fmt.Sprintf("%.0fHz/%dch", sampleRate, channels)
		s.stateMu.Unlock()

		s.sysBufMu.Lock()
		s.sysBuf.Write(resampled)
		s.sysBufMu.Unlock()
	}
}

// startProcessingLoop launches the worker goroutine that reads the ring
// buffers, mixes, converts to PCM, and writes to the output file every
// processingInterval while the session is capturing.
func (s *Session) startProcessingLoop() {
	s.processingStop = make(chan struct{})
	chunkSize := int(s.outputRate * 0.1) // 100ms of frames
	enableSystem := s.config.EnableSystemCapture

	s.wg.Add(1)
	go func() {
		defer s.wg.Done()
		ticker := time.NewTicker(processingInterval)
		defer ticker.Stop()

		for {
			select {
			case <-s.processingStop:
				return
			case <-ticker.C:
				if s.State().Kind != capture.StateCapturing {
					continue
				}
				s.processBuffersInner(enableSystem, chunkSize)
			}
		}
	}()
}

// startDurationTimer launches the worker goroutine that refreshes the
// session's elapsed duration and notifies the delegate of level updates
// every timerInterval while the session is capturing.
func (s *Session) startDurationTimer() {
	s.timerStop = make(chan struct{})
	maxDuration := s.config.MaxDurationSecs
	stopTriggered := false

	s.wg.Add(1)
	go func() {
		defer s.wg.Done()
		ticker := time.NewTicker(timerInterval)
		defer ticker.Stop()

		for {
			select {
			case <-s.timerStop:
				return
			case <-ticker.C:
				s.stateMu.Lock()
				if s.state.state.Kind != capture.StateCapturing {
					s.stateMu.Unlock()
					continue
				}
				duration := s.state.elapsedDuration()
				s.state.state = capture.Capturing(duration)
				levels := s.state.levels
				s.stateMu.Unlock()

				if s.delegate != nil {
					s.delegate.OnLevelsUpdated(levels)
				}

				if !stopTriggered && maxDuration > 0 && duration >= maxDuration {
					stopTriggered = true
					// Run asynchronously: StopCapture waits on s.wg, which this
					// goroutine is itself a member of.
					go func() {
						if _, err := s.StopCapture(); err != nil {
							s.logger.Log(capture.WarningLevel, "auto-stop at max duration failed", "error", err.Error())
						}
					}()
				}
			}
		}
	}()
}

// processBuffersOnce performs a single final flush of whatever remains in
// the ring buffers once capture has stopped.
func (s *Session) processBuffersOnce() {
	if s.config.SampleRate == 0 {
		return
	}
	chunkSize := int(s.config.SampleRate * 0.1)
	s.processBuffersInner(s.config.EnableSystemCapture, chunkSize)
}

// processBuffersInner reads available frames from the ring buffers, mixes
// them into interleaved stereo, converts to 16-bit PCM, and writes the
// result to the output file.
func (s *Session) processBuffersInner(enableSystem bool, chunkSize int) {
	var micSamples, systemSamples []float32

	if enableSystem {
		s.sysBufMu.Lock()
		systemFramesAvailable := s.sysBuf.Count() / 2
		framesToProcess := systemFramesAvailable
		if framesToProcess > chunkSize {
			framesToProcess = chunkSize
		}
		if framesToProcess == 0 {
			s.sysBufMu.Unlock()
			return
		}
		systemSamples = s.sysBuf.Read(framesToProcess * 2)
		s.sysBufMu.Unlock()

		s.micBufMu.Lock()
		micSamples = s.micBuf.Read(framesToProcess)
		s.micBufMu.Unlock()
	} else {
		s.micBufMu.Lock()
		micSamples = s.micBuf.Read(chunkSize)
		s.micBufMu.Unlock()
		if len(micSamples) == 0 {
			return
		}
	}

	stereo := mixer.MixMicWithStereoSystem(micSamples, systemSamples)
	pcm := mixer.ConvertToInt16PCM(stereo)

	s.stateMu.Lock()
	s.state.diagnostics.MixCycles++
	s.state.diagnostics.BytesWritten += uint64(len(pcm))
	s.stateMu.Unlock()

	s.writerMu.Lock()
	w := s.writer
	s.writerMu.Unlock()

	if w == nil {
		return
	}
	if err := w.Write(pcm); err != nil {
		s.logger.Log(capture.ErrorLevel, "failed to write audio data", "error", err.Error())
		if s.delegate != nil {
			if captureErr, ok := err.(*capture.Error); ok {
				s.delegate.OnError(captureErr)
			} else {
				s.delegate.OnError(capture.NewStorageError(err.Error()))
			}
		}
	}
}

