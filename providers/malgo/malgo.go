/*
NAME
  malgo.go

DESCRIPTION
  malgo.go implements a cross-platform capture.Provider for both microphone
  capture and system-audio loopback, built on github.com/gen2brain/malgo
  (a cgo-free miniaudio binding). API usage (InitContext, DeviceConfig,
  InitDevice, DeviceCallbacks, Start/Stop/Uninit, SampleRate) grounded on
  agalue-sherpa-voice-assistant/internal/audio/capture.go's Capturer.

AUTHOR
  David Sutton <davidsutton@ausocean.org>

LICENSE
  Copyright (C) 2024 the Australian Ocean Lab (AusOcean). All Rights Reserved.

  The Software and all intellectual property rights associated
  therewith, including but not limited to copyrights, trademarks,
  patents, and trade secrets, are and will remain the exclusive
  property of the Australian Ocean Lab (AusOcean).
*/

// Package malgo provides cross-platform microphone and system-loopback
// capture.Provider implementations backed by github.com/gen2brain/malgo.
package malgo

import (
	"fmt"
	"math"
	"sync"

	"github.com/gen2brain/malgo"

	"github.com/pablohealth/audiocapturekit/capture"
)

// periodMilliseconds is the requested audio callback period. 32ms keeps
// latency low without making the processing loop's 100ms chunking starve.
const periodMilliseconds = 32

// Provider is a capture.Provider backed by a miniaudio device, configured
// either as a microphone capture source or a system-audio loopback source.
type Provider struct {
	deviceType malgo.DeviceType
	channels   uint16
	deviceID   string
	name       string
	kind       capture.SourceKind

	mu      sync.Mutex
	ctx     *malgo.AllocatedContext
	device  *malgo.Device
	running bool
}

// NewMic returns a Provider that captures mono audio from the default
// microphone. deviceID is reported by DeviceInfo only; Start does not use it
// to select a device.
func NewMic(deviceID string) *Provider {
	return &Provider{
		deviceType: malgo.Capture,
		channels:   1,
		deviceID:   deviceID,
		name:       "Microphone",
		kind:       capture.SourceMic,
	}
}

// NewSystemLoopback returns a Provider that captures stereo system-audio
// playback via the platform's loopback backend.
func NewSystemLoopback() *Provider {
	return &Provider{
		deviceType: malgo.Loopback,
		channels:   2,
		name:       "System Audio",
		kind:       capture.SourceSystem,
	}
}

// IsAvailable reports whether a miniaudio context can be initialized; it
// does not check for a device of this provider's type. A successful probe
// context is immediately released.
func (p *Provider) IsAvailable() bool {
	ctx, err := malgo.InitContext(nil, malgo.ContextConfig{}, nil)
	if err != nil {
		return false
	}
	ctx.Uninit()
	ctx.Free()
	return true
}

// DeviceInfo describes the backing device.
func (p *Provider) DeviceInfo() capture.AudioSource {
	return capture.AudioSource{
		ID:        p.deviceID,
		Name:      p.name,
		Kind:      p.kind,
		IsDefault: p.deviceID == "",
		Transport: capture.TransportUnknown,
	}
}

// Start begins capturing, invoking cb on the audio callback thread for
// every buffer miniaudio delivers.
func (p *Provider) Start(cb capture.AudioBufferCallback) error {
	p.mu.Lock()
	defer p.mu.Unlock()

	if p.running {
		return nil
	}

	ctx, err := malgo.InitContext(nil, malgo.ContextConfig{}, nil)
	if err != nil {
		return capture.NewDeviceNotAvailable()
	}

	deviceConfig := malgo.DefaultDeviceConfig(p.deviceType)
	deviceConfig.Capture.Format = malgo.FormatF32
	deviceConfig.Capture.Channels = uint32(p.channels)
	deviceConfig.PeriodSizeInMilliseconds = periodMilliseconds

	channels := p.channels

	// actualSampleRate is filled in below once the device is initialized and
	// miniaudio has settled on its real negotiated rate, which can differ
	// from deviceConfig.SampleRate (0, meaning "default") — callbacks only
	// start arriving after device.Start(), so this closure never observes
	// the zero value.
	var actualSampleRate uint32

	onRecvFrames := func(_, inputSamples []byte, frameCount uint32) {
		samples := bytesToFloat32(inputSamples)
		if len(samples) == 0 {
			return
		}
		cb(samples, float64(actualSampleRate), channels)
	}

	device, err := malgo.InitDevice(ctx.Context, deviceConfig, malgo.DeviceCallbacks{Data: onRecvFrames})
	if err != nil {
		ctx.Uninit()
		ctx.Free()
		return capture.NewDeviceNotAvailable()
	}
	actualSampleRate = device.SampleRate()

	if err := device.Start(); err != nil {
		device.Uninit()
		ctx.Uninit()
		ctx.Free()
		return capture.NewConfigurationFailed(fmt.Sprintf("failed to start device: %v", err))
	}

	p.ctx = ctx
	p.device = device
	p.running = true
	return nil
}

// Stop halts capture and releases the underlying device and context.
func (p *Provider) Stop() error {
	p.mu.Lock()
	defer p.mu.Unlock()

	if !p.running {
		return nil
	}

	if p.device != nil {
		p.device.Uninit()
		p.device = nil
	}
	if p.ctx != nil {
		p.ctx.Uninit()
		p.ctx.Free()
		p.ctx = nil
	}
	p.running = false
	return nil
}

// bytesToFloat32 reinterprets a little-endian float32 PCM byte buffer
// (the format requested via deviceConfig.Capture.Format) as []float32.
func bytesToFloat32(b []byte) []float32 {
	const bytesPerSample = 4
	count := len(b) / bytesPerSample
	out := make([]float32, count)
	for i := 0; i < count; i++ {
		bits := uint32(b[i*4]) | uint32(b[i*4+1])<<8 | uint32(b[i*4+2])<<16 | uint32(b[i*4+3])<<24
		out[i] = math.Float32frombits(bits)
	}
	return out
}
