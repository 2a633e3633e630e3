/*
NAME
  config.go

DESCRIPTION
  config.go defines Config, the parameters a session.Session is configured
  with, and its validation, mirroring the field-doc density of
  revid/config/config.go scoped down to the fields this module actually
  needs.

LICENSE
  Copyright (C) 2024 the Australian Ocean Lab (AusOcean). All Rights Reserved.

  The Software and all intellectual property rights associated
  therewith, including but not limited to copyrights, trademarks,
  patents, and trade secrets, are and will remain the exclusive
  property of the Australian Ocean Lab (AusOcean).
*/

package capture

import (
	"fmt"
	"os"
)

// Config configures a capture session. Maps 1:1 to the Rust
// CaptureConfiguration this module was distilled from, plus MicHighpassHz,
// which that type does not have.
type Config struct {
	// SampleRate is the target output sample rate in Hz. Default 48000.
	SampleRate float64

	// BitDepth is the PCM bit depth of the output file. Valid values: 16, 24, 32.
	BitDepth uint16

	// Channels is the number of output channels. Valid values: 1, 2.
	Channels uint16

	// Encryptor, if non-nil, seals each chunk before it is written to disk.
	Encryptor Encryptor

	// OutputDirectory is the directory recordings and their metadata
	// sidecars are written into.
	OutputDirectory string

	// MaxDurationSecs, if non-zero, triggers an automatic StopCapture once
	// the session's elapsed active duration reaches this many seconds.
	MaxDurationSecs float64

	// MicDeviceID names the requested microphone, or "" for the system
	// default. session.Session does not read it: the microphone is the one
	// the mic Provider passed to session.New was built for.
	MicDeviceID string

	// EnableMicCapture enables the microphone track. Default true.
	EnableMicCapture bool

	// EnableSystemCapture enables the system-loopback track. Default true.
	EnableSystemCapture bool

	// MicHighpassHz, if non-zero, applies a high-pass pre-filter at this
	// cutoff frequency to the mic signal before it reaches the ring buffer,
	// removing DC rumble and low-frequency HVAC noise from the mix. 0 disables
	// filtering.
	MicHighpassHz float64
}

// DefaultConfig returns a Config with the same defaults as the Rust
// original's CaptureConfiguration::default().
func DefaultConfig() Config {
	return Config{
		SampleRate:          48000,
		BitDepth:            16,
		Channels:            2,
		OutputDirectory:     ".",
		EnableMicCapture:    true,
		EnableSystemCapture: true,
	}
}

// Validate checks c for internal consistency, returning a MultiError
// collecting every problem found.
func (c Config) Validate() error {
	var errs MultiError

	if c.SampleRate <= 0 {
		errs = append(errs, NewConfigurationFailed("sample rate must be positive"))
	}
	switch c.BitDepth {
	case 16, 24, 32:
	default:
		errs = append(errs, NewConfigurationFailed("unsupported bit depth"))
	}
	switch c.Channels {
	case 1, 2:
	default:
		errs = append(errs, NewConfigurationFailed("unsupported channel count"))
	}
	if !c.EnableMicCapture && !c.EnableSystemCapture {
		errs = append(errs, NewConfigurationFailed("at least one of mic or system capture must be enabled"))
	}
	if c.MaxDurationSecs < 0 {
		errs = append(errs, NewConfigurationFailed("max duration must not be negative"))
	}
	if c.MicHighpassHz < 0 {
		errs = append(errs, NewConfigurationFailed("mic highpass cutoff must not be negative"))
	}
	if err := checkDirectoryWritable(c.OutputDirectory); err != nil {
		errs = append(errs, NewConfigurationFailed(fmt.Sprintf("output directory is not writable: %v", err)))
	}

	if len(errs) == 0 {
		return nil
	}
	return errs
}

// checkDirectoryWritable ensures dir exists (creating it if necessary) and
// that a file can actually be created inside it, then removes the probe
// file. storage.Writer performs the same os.MkdirAll/os.Create sequence
// when it opens the output file, so this surfaces the same failure here,
// at configure time, rather than one state transition later.
func checkDirectoryWritable(dir string) error {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return err
	}

	probe, err := os.CreateTemp(dir, ".write-probe-*")
	if err != nil {
		return err
	}
	path := probe.Name()
	probe.Close()
	return os.Remove(path)
}
