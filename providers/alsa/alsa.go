/*
NAME
  alsa.go

DESCRIPTION
  alsa.go implements a Linux-only microphone capture.Provider on top of
  github.com/yobert/alsa, adapted from device/alsa/alsa.go's device
  negotiation (channels, sample rate, bit depth, period/buffer size) and
  run-mode state machine. Narrows the io.Reader + pool.Buffer + pcm.Buffer
  contract down to capture.Provider's callback shape: this package delivers
  raw samples at whatever rate/format ALSA negotiated and lets
  session.Session's mixer do the downmixing and resampling, rather than
  converting in the device driver itself. ausocean/utils/pool and
  ausocean/utils/logging are not part of this module's dependency surface,
  so the ring buffer is dropped in favor of direct callback delivery and
  capture.Logger replaces logging.Logger.

AUTHOR
  David Sutton <davidsutton@ausocean.org>

LICENSE
  Copyright (C) 2024 the Australian Ocean Lab (AusOcean). All Rights Reserved.

  The Software and all intellectual property rights associated
  therewith, including but not limited to copyrights, trademarks,
  patents, and trade secrets, are and will remain the exclusive
  property of the Australian Ocean Lab (AusOcean).
*/

// Package alsa provides a Linux microphone capture.Provider backed by ALSA.
package alsa

import (
	"errors"
	"fmt"
	"math"
	"sync"
	"time"

	yalsa "github.com/yobert/alsa"

	"github.com/pablohealth/audiocapturekit/capture"
)

// mode tracks the device run state, mirroring device/alsa/alsa.go's
// running/paused/stopped state machine, minus the "paused" state this
// provider has no use for (session.Session models pause at the mixer
// level, not the device level).
type mode uint8

const (
	modeIdle mode = iota
	modeRunning
	modeStopped
)

const (
	defaultSampleRate = 48000
	defaultChannels   = 1
	defaultBitDepth   = 16
	wantPeriodSecs    = 0.05
)

// Provider is a capture.Provider backed by an ALSA PCM capture device.
type Provider struct {
	logger capture.Logger
	title  string // empty selects the first recording-capable device

	mu       sync.Mutex
	dev      *yalsa.Device
	mode     mode
	stop     chan struct{}
	wg       sync.WaitGroup

	rate     int
	channels int
	bitDepth int
}

// New returns a Provider for the ALSA device named title, or the first
// available recording device if title is empty.
func New(title string, logger capture.Logger) *Provider {
	if logger == nil {
		logger = capture.NopLogger{}
	}
	return &Provider{title: title, logger: logger}
}

// IsAvailable reports whether at least one ALSA recording device exists.
func (p *Provider) IsAvailable() bool {
	cards, err := yalsa.OpenCards()
	if err != nil {
		return false
	}
	defer yalsa.CloseCards(cards)

	for _, card := range cards {
		devices, err := card.Devices()
		if err != nil {
			continue
		}
		for _, d := range devices {
			if d.Type == yalsa.PCM && d.Record {
				return true
			}
		}
	}
	return false
}

// DeviceInfo describes the backing device.
func (p *Provider) DeviceInfo() capture.AudioSource {
	return capture.AudioSource{
		ID:        p.title,
		Name:      "ALSA Microphone",
		Kind:      capture.SourceMic,
		IsDefault: p.title == "",
		Transport: capture.TransportUnknown,
	}
}

// Start opens and negotiates the ALSA device, then begins delivering
// buffers to cb from a dedicated read goroutine until Stop is called.
func (p *Provider) Start(cb capture.AudioBufferCallback) error {
	p.mu.Lock()
	defer p.mu.Unlock()

	if p.mode == modeRunning {
		return nil
	}

	if err := p.open(); err != nil {
		return capture.NewDeviceNotAvailable()
	}

	p.stop = make(chan struct{})
	p.mode = modeRunning

	p.wg.Add(1)
	go p.readLoop(cb)

	return nil
}

// Stop halts the read goroutine and closes the device.
func (p *Provider) Stop() error {
	p.mu.Lock()
	if p.mode != modeRunning {
		p.mu.Unlock()
		return nil
	}
	p.mode = modeStopped
	close(p.stop)
	p.mu.Unlock()

	p.wg.Wait()

	p.mu.Lock()
	if p.dev != nil {
		p.dev.Close()
		p.dev = nil
	}
	p.mu.Unlock()
	return nil
}

// open finds, opens, and negotiates parameters on the target ALSA device.
func (p *Provider) open() error {
	cards, err := yalsa.OpenCards()
	if err != nil {
		return fmt.Errorf("alsa: failed to open cards: %w", err)
	}
	defer yalsa.CloseCards(cards)

	var dev *yalsa.Device
	for _, card := range cards {
		devices, err := card.Devices()
		if err != nil {
			continue
		}
		for _, d := range devices {
			if d.Type != yalsa.PCM || !d.Record {
				continue
			}
			if d.Title == p.title || p.title == "" {
				dev = d
				break
			}
		}
	}
	if dev == nil {
		return errors.New("alsa: no recording device found")
	}

	if err := dev.Open(); err != nil {
		return fmt.Errorf("alsa: failed to open device: %w", err)
	}

	channels, err := dev.NegotiateChannels(defaultChannels)
	if err != nil {
		channels, err = dev.NegotiateChannels(2)
		if err != nil {
			dev.Close()
			return fmt.Errorf("alsa: unable to negotiate channels: %w", err)
		}
	}

	rate, err := dev.NegotiateRate(defaultSampleRate)
	if err != nil {
		dev.Close()
		return fmt.Errorf("alsa: unable to negotiate rate: %w", err)
	}

	devFmt, err := dev.NegotiateFormat(yalsa.S16_LE)
	if err != nil {
		dev.Close()
		return fmt.Errorf("alsa: unable to negotiate format: %w", err)
	}
	bitDepth := 16
	if devFmt == yalsa.S32_LE {
		bitDepth = 32
	}

	bytesPerSecond := rate * channels * (bitDepth / 8)
	wantPeriodSize := int(float64(bytesPerSecond) * wantPeriodSecs)
	periodSize, err := dev.NegotiatePeriodSize(nearestPowerOfTwo(wantPeriodSize))
	if err != nil {
		dev.Close()
		return fmt.Errorf("alsa: unable to negotiate period size: %w", err)
	}

	if _, err := dev.NegotiateBufferSize(periodSize * 4); err != nil {
		dev.Close()
		return fmt.Errorf("alsa: unable to negotiate buffer size: %w", err)
	}

	if err := dev.Prepare(); err != nil {
		dev.Close()
		return fmt.Errorf("alsa: prepare failed: %w", err)
	}

	p.dev = dev
	p.rate = rate
	p.channels = channels
	p.bitDepth = bitDepth
	return nil
}

// readLoop continuously reads PCM frames from the device and delivers them
// as float32 samples via cb, until stop is closed.
func (p *Provider) readLoop(cb capture.AudioBufferCallback) {
	defer p.wg.Done()

	frameBytes := p.bitDepth / 8 * p.channels
	buf := make([]byte, frameBytes*p.rate/20) // ~50ms per read

	for {
		select {
		case <-p.stop:
			return
		default:
		}

		if err := p.dev.Read(buf); err != nil {
			p.logger.Log(capture.WarningLevel, "alsa read failed", "error", err.Error())
			time.Sleep(10 * time.Millisecond)
			continue
		}

		samples := bytesToFloat32(buf, p.bitDepth)
		if len(samples) > 0 {
			cb(samples, float64(p.rate), uint16(p.channels))
		}
	}
}

// bytesToFloat32 converts little-endian signed PCM bytes at the given bit
// depth (16 or 32) into normalized [-1.0, 1.0] float32 samples.
func bytesToFloat32(b []byte, bitDepth int) []float32 {
	switch bitDepth {
	case 16:
		count := len(b) / 2
		out := make([]float32, count)
		for i := 0; i < count; i++ {
			v := int16(uint16(b[i*2]) | uint16(b[i*2+1])<<8)
			out[i] = float32(v) / float32(math.MaxInt16)
		}
		return out
	case 32:
		count := len(b) / 4
		out := make([]float32, count)
		for i := 0; i < count; i++ {
			v := int32(uint32(b[i*4]) | uint32(b[i*4+1])<<8 | uint32(b[i*4+2])<<16 | uint32(b[i*4+3])<<24)
			out[i] = float32(v) / float32(math.MaxInt32)
		}
		return out
	default:
		return nil
	}
}

// nearestPowerOfTwo finds and returns the nearest power of two to the given
// integer. If the lower and higher power of two are the same distance, it
// returns the higher power. For non-positive values, 1 is returned; for 1,
// 2 is returned.
func nearestPowerOfTwo(n int) int {
	if n <= 0 {
		return 1
	}
	if n == 1 {
		return 2
	}
	v := n
	v--
	v |= v >> 1
	v |= v >> 2
	v |= v >> 4
	v |= v >> 8
	v |= v >> 16
	v++
	x := v >> 1
	if (v - n) > (n - x) {
		return x
	}
	return v
}
