/*
NAME
  provider.go

DESCRIPTION
  provider.go defines the Provider contract implemented by platform-specific
  audio capture backends (providers/malgo, providers/alsa), generalized from
  device.AVDevice's io.Reader shape into a callback-driven one, since audio
  capture backends deliver data on their own thread rather than on demand.

LICENSE
  Copyright (C) 2024 the Australian Ocean Lab (AusOcean). All Rights Reserved.

  The Software and all intellectual property rights associated
  therewith, including but not limited to copyrights, trademarks,
  patents, and trade secrets, are and will remain the exclusive
  property of the Australian Ocean Lab (AusOcean).
*/

package capture

// AudioBufferCallback is invoked by a Provider whenever a buffer of audio
// samples is available.
//
//   - samples: interleaved f32 samples (mono for a mic source, stereo for a
//     system-loopback source).
//   - sampleRate: the actual delivered sample rate of this buffer.
//   - channels: 1 (mono) or 2 (interleaved stereo).
//
// The callback fires on the provider's own capture thread; implementations
// must keep processing minimal and non-blocking.
type AudioBufferCallback func(samples []float32, sampleRate float64, channels uint16)

// Provider is a platform-specific audio capture source: a microphone or a
// system-loopback endpoint.
type Provider interface {
	// IsAvailable reports whether this source can currently be captured.
	IsAvailable() bool

	// DeviceInfo describes the device backing this provider.
	DeviceInfo() AudioSource

	// Start begins capturing, delivering buffers via cb until Stop is called.
	Start(cb AudioBufferCallback) error

	// Stop halts capture and releases device resources.
	Stop() error
}
