/*
NAME
  ringbuffer.go

DESCRIPTION
  ringbuffer.go implements a fixed-capacity circular buffer of float32 audio
  samples with drop-oldest overflow, ported from
  original_source/processing/ring_buffer.rs. Generalizes the teacher's
  pool.Buffer role in device/alsa/alsa.go from pooled byte chunks to raw
  float samples, since ausocean/utils/pool is not part of this module's
  dependency surface.

  Not internally synchronized: a single producer and single consumer must
  coordinate externally (session.Session guards each buffer with its own
  mutex), matching spec for this component.

LICENSE
  Copyright (C) 2024 the Australian Ocean Lab (AusOcean). All Rights Reserved.

  The Software and all intellectual property rights associated
  therewith, including but not limited to copyrights, trademarks,
  patents, and trade secrets, are and will remain the exclusive
  property of the Australian Ocean Lab (AusOcean).
*/

// Package ringbuffer provides a bounded, drop-oldest circular buffer of
// float32 audio samples.
package ringbuffer

// RingBuffer is a fixed-capacity circular buffer of float32 samples.
type RingBuffer struct {
	buf        []float32
	writeIndex int
	readIndex  int
	available  int
}

// New returns a RingBuffer with the given capacity (in samples).
func New(capacity int) *RingBuffer {
	return &RingBuffer{buf: make([]float32, capacity)}
}

// Capacity returns the total capacity of the buffer, in samples.
func (r *RingBuffer) Capacity() int { return len(r.buf) }

// Count returns the number of samples currently available for reading.
func (r *RingBuffer) Count() int { return r.available }

// IsEmpty reports whether the buffer holds no samples.
func (r *RingBuffer) IsEmpty() bool { return r.available == 0 }

// Reset clears the buffer to the empty state without reallocating.
func (r *RingBuffer) Reset() {
	r.writeIndex = 0
	r.readIndex = 0
	r.available = 0
}

// Write appends samples to the buffer. If the buffer would overflow, the
// oldest samples are dropped to make room. If samples is longer than the
// buffer's capacity, only the trailing capacity() samples are kept.
func (r *RingBuffer) Write(samples []float32) {
	if len(samples) == 0 || len(r.buf) == 0 {
		return
	}

	cap := len(r.buf)
	if len(samples) > cap {
		samples = samples[len(samples)-cap:]
	}

	overflow := r.available + len(samples) - cap
	if overflow > 0 {
		r.readIndex = (r.readIndex + overflow) % cap
		r.available -= overflow
	}

	for _, s := range samples {
		r.buf[r.writeIndex] = s
		r.writeIndex = (r.writeIndex + 1) % cap
	}
	r.available += len(samples)
}

// Read removes and returns up to count samples from the buffer. Fewer are
// returned if fewer are available.
func (r *RingBuffer) Read(count int) []float32 {
	toRead := count
	if toRead > r.available {
		toRead = r.available
	}
	if toRead <= 0 {
		return nil
	}

	cap := len(r.buf)
	result := make([]float32, toRead)
	for i := 0; i < toRead; i++ {
		result[i] = r.buf[(r.readIndex+i)%cap]
	}
	r.readIndex = (r.readIndex + toRead) % cap
	r.available -= toRead
	return result
}
