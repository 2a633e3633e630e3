/*
NAME
  mic_linux.go

DESCRIPTION
  mic_linux.go selects the ALSA microphone provider on Linux, mirroring
  revid/audio_linux.go's GOOS-suffixed device selection.

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
	"github.com/pablohealth/audiocapturekit/providers/alsa"
)

// newMicProvider returns the platform microphone provider: ALSA on Linux.
func newMicProvider(deviceID string, logger capture.Logger) capture.Provider {
	return alsa.New(deviceID, logger)
}
