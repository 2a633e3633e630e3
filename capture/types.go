/*
NAME
  types.go

DESCRIPTION
  types.go defines the data types shared across a capture session: audio
  source/track descriptions, live level metering, session diagnostics, and
  the result and metadata produced when a recording finishes.

LICENSE
  Copyright (C) 2024 the Australian Ocean Lab (AusOcean). All Rights Reserved.

  The Software and all intellectual property rights associated
  therewith, including but not limited to copyrights, trademarks,
  patents, and trade secrets, are and will remain the exclusive
  property of the Australian Ocean Lab (AusOcean).
*/

// Package capture defines the data types, error taxonomy, and collaborator
// contracts (Provider, Encryptor, Delegate) shared by every other package in
// this module. It holds no orchestration logic of its own.
package capture

// SourceKind identifies whether an AudioSource is a microphone or a
// system-loopback endpoint.
type SourceKind int

const (
	// SourceMic is a microphone input device.
	SourceMic SourceKind = iota
	// SourceSystem is a system audio loopback (playback) device.
	SourceSystem
)

// String returns the lower-case name of a SourceKind.
func (k SourceKind) String() string {
	switch k {
	case SourceMic:
		return "mic"
	case SourceSystem:
		return "system"
	default:
		return "unknown"
	}
}

// Transport describes the physical/logical connection of an audio device.
type Transport int

const (
	TransportUnknown Transport = iota
	TransportBuiltIn
	TransportBluetooth
	TransportBluetoothLE
	TransportUSB
	TransportVirtual
)

// Channel identifies which channel(s) of the final mix a track occupies.
type Channel int

const (
	ChannelLeft Channel = iota
	ChannelRight
	ChannelCenter
	ChannelStereo
)

func (c Channel) String() string {
	switch c {
	case ChannelLeft:
		return "L"
	case ChannelRight:
		return "R"
	case ChannelCenter:
		return "C"
	case ChannelStereo:
		return "LR"
	default:
		return "?"
	}
}

// AudioSource describes a device available for capture.
type AudioSource struct {
	ID         string
	Name       string
	Kind       SourceKind
	IsDefault  bool
	Transport  Transport
}

// AudioTrack identifies one track (mic or system) and the channel(s) it
// occupies in a finished recording's mix.
type AudioTrack struct {
	Kind    SourceKind `json:"type"`
	Channel Channel    `json:"channel"`
}

// MarshalJSON/UnmarshalJSON for Channel and SourceKind are intentionally not
// hand-rolled here: metadata.go owns the wire representation of AudioTrack,
// since it is the only package that serializes these types.

// Levels carries real-time RMS and peak metering for both tracks, all in
// the normalized 0.0-1.0 range.
type Levels struct {
	MicLevel      float32
	SystemLevel   float32
	PeakMicLevel  float32
	PeakSystemLevel float32
}

// Diagnostics holds counters useful for debugging a running or finished
// capture session.
type Diagnostics struct {
	MicCallbackCount    uint64
	SystemCallbackCount uint64
	MicSamplesTotal     uint64
	SystemSamplesTotal  uint64
	MicFormat           string
	SystemFormat        string
	BytesWritten        uint64
	MixCycles           uint64
}

// RecordingResult is returned by StopCapture once a session finishes
// successfully.
type RecordingResult struct {
	FilePath    string
	DurationSecs float64
	Metadata    RecordingMetadata
	Checksum    string
}

// RecordingMetadata is the JSON-serializable sidecar payload written
// alongside a finished recording.
type RecordingMetadata struct {
	ID                  string       `json:"id"`
	DurationSecs        float64      `json:"duration_secs"`
	FilePath            string       `json:"file_path"`
	Checksum            string       `json:"checksum"`
	IsEncrypted         bool         `json:"is_encrypted"`
	CreatedAt           string       `json:"created_at"`
	Tracks              []AudioTrack `json:"tracks"`
	EncryptionAlgorithm string       `json:"encryption_algorithm,omitempty"`
	EncryptionKeyID     string       `json:"encryption_key_id,omitempty"`
}
