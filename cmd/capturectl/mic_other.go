//go:build !linux

/*
NAME
  mic_other.go

DESCRIPTION
  mic_other.go selects the cross-platform malgo microphone provider on
  non-Linux platforms, mirroring revid/audio_windows.go's GOOS-suffixed
  device selection (there, Windows falls back to an error; here it falls
  back to a working cross-platform backend since one is available).

LICENSE
  Copyright (C) 2024 the Australian Ocean Lab (AusOcean). All Rights Reserved.

  The Software and all intellectual property rights associated
  therewith, including but not limited to copyrights, trademarks,
  patents, and trade secrets, are and will remain the exclusive
  property of the Australian Ocean Lab (AusOcean).
*/

package main

import (
	"github.com/pablohealth/audiocapturekit/capture"
	"github.com/pablohealth/audiocapturekit/providers/malgo"
)

// newMicProvider returns the platform microphone provider: malgo elsewhere.
func newMicProvider(deviceID string, _ capture.Logger) capture.Provider {
	return malgo.NewMic(deviceID)
}
