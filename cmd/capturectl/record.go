/*
NAME
  record.go

DESCRIPTION
  record.go implements the "record" subcommand: configures a
  session.Session from CLI flags, starts capture, and waits for either the
  configured max duration to elapse or an interrupt signal, then stops and
  reports the result. Signal handling follows breeze-agent/main.go's
  sigChan := make(chan os.Signal, 1); signal.Notify(...); <-sigChan idiom.

LICENSE
  Copyright (C) 2024 the Australian Ocean Lab (AusOcean). All Rights Reserved.

  The Software and all intellectual property rights associated
  therewith, including but not limited to copyrights, trademarks,
  patents, and trade secrets, are and will remain the exclusive
  property of the Australian Ocean Lab (AusOcean).
*/

package main

import (
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/pablohealth/audiocapturekit/aesgcm"
	"github.com/pablohealth/audiocapturekit/capture"
	"github.com/pablohealth/audiocapturekit/providers/malgo"
	"github.com/pablohealth/audiocapturekit/session"
)

var (
	recSampleRate   float64
	recBitDepth     uint16
	recChannels     uint16
	recMaxDuration  float64
	recMicDeviceID  string
	recNoMic        bool
	recNoSystem     bool
	recHighpassHz   float64
	recEncrypt      bool
)

var recordCmd = &cobra.Command{
	Use:   "record",
	Short: "Record a mic + system audio session to a WAV file",
	RunE:  runRecord,
}

func init() {
	recordCmd.Flags().Float64Var(&recSampleRate, "sample-rate", 48000, "output sample rate in Hz")
	recordCmd.Flags().Uint16Var(&recBitDepth, "bit-depth", 16, "output bit depth (16, 24, or 32)")
	recordCmd.Flags().Uint16Var(&recChannels, "channels", 2, "output channel count (1 or 2)")
	recordCmd.Flags().Float64Var(&recMaxDuration, "max-duration", 0, "automatically stop after this many seconds (0 disables)")
	recordCmd.Flags().StringVar(&recMicDeviceID, "mic-device", "", "microphone device ID (empty selects the system default)")
	recordCmd.Flags().BoolVar(&recNoMic, "no-mic", false, "disable the microphone track")
	recordCmd.Flags().BoolVar(&recNoSystem, "no-system", false, "disable the system-loopback track")
	recordCmd.Flags().Float64Var(&recHighpassHz, "highpass-hz", 0, "mic high-pass filter cutoff in Hz (0 disables)")
	recordCmd.Flags().BoolVar(&recEncrypt, "encrypt", false, "seal the recording with the built-in demo AES-256-GCM encryptor")
}

// loggingDelegate logs session notifications, prints a final summary, and
// signals done once capture completes (whether from a manual StopCapture or
// the session's own MaxDurationSecs auto-stop).
type loggingDelegate struct {
	logger capture.Logger
	done   chan struct{}
}

func (d *loggingDelegate) OnStateChanged(state capture.State) {
	d.logger.Log(capture.InfoLevel, "state changed", "kind", state.Kind)
}

func (d *loggingDelegate) OnLevelsUpdated(levels capture.Levels) {
	d.logger.Log(capture.DebugLevel, "levels", "mic", levels.MicLevel, "system", levels.SystemLevel)
}

func (d *loggingDelegate) OnError(err *capture.Error) {
	d.logger.Log(capture.ErrorLevel, "session error", "kind", err.Kind, "message", err.Message)
}

func (d *loggingDelegate) OnCaptureFinished(result capture.RecordingResult) {
	fmt.Printf("recording complete: %s (%.1fs, checksum %s)\n", result.FilePath, result.DurationSecs, result.Checksum)
	close(d.done)
}

func runRecord(cmd *cobra.Command, args []string) error {
	zl := newZapLogger(logFile)
	defer zl.sync()

	config := capture.DefaultConfig()
	config.SampleRate = recSampleRate
	config.BitDepth = recBitDepth
	config.Channels = recChannels
	config.OutputDirectory = outputDir
	config.MaxDurationSecs = recMaxDuration
	config.MicDeviceID = recMicDeviceID
	config.EnableMicCapture = !recNoMic
	config.EnableSystemCapture = !recNoSystem
	config.MicHighpassHz = recHighpassHz

	if recEncrypt {
		enc, err := aesgcm.NewDemo()
		if err != nil {
			return fmt.Errorf("failed to initialize encryptor: %w", err)
		}
		config.Encryptor = enc
	}

	mic := newMicProvider(recMicDeviceID, zl)
	system := malgo.NewSystemLoopback()

	done := make(chan struct{})
	s := session.New(mic, system)
	s.SetLogger(zl)
	s.SetDelegate(&loggingDelegate{logger: zl, done: done})

	if err := s.Configure(config); err != nil {
		return fmt.Errorf("configuration failed: %w", err)
	}
	if err := s.StartCapture(); err != nil {
		return fmt.Errorf("failed to start capture: %w", err)
	}

	if recMaxDuration > 0 {
		fmt.Printf("recording... will stop automatically after %.0fs (or press Ctrl+C)\n", recMaxDuration)
	} else {
		fmt.Println("recording... press Ctrl+C to stop")
	}

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)

	select {
	case <-sigChan:
		if s.State().Kind == capture.StateCapturing || s.State().Kind == capture.StatePaused {
			if _, err := s.StopCapture(); err != nil {
				return fmt.Errorf("failed to stop capture: %w", err)
			}
		}
	case <-done:
		// The session's own MaxDurationSecs auto-stop already finished it.
	}

	return nil
}
