/*
NAME
  devices.go

DESCRIPTION
  devices.go implements the "devices" subcommand: reports availability and
  identity of the platform mic provider and the cross-platform system-
  loopback provider, without starting a capture session.

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

	"github.com/spf13/cobra"

	"github.com/pablohealth/audiocapturekit/capture"
	"github.com/pablohealth/audiocapturekit/providers/malgo"
)

var devicesCmd = &cobra.Command{
	Use:   "devices",
	Short: "List available mic and system-loopback capture sources",
	RunE:  runDevices,
}

func runDevices(cmd *cobra.Command, args []string) error {
	mic := newMicProvider("", capture.NopLogger{})
	system := malgo.NewSystemLoopback()

	printSource("microphone", mic)
	printSource("system loopback", system)
	return nil
}

func printSource(label string, p capture.Provider) {
	info := p.DeviceInfo()
	status := "unavailable"
	if p.IsAvailable() {
		status = "available"
	}
	fmt.Printf("%-16s %-10s id=%q name=%q\n", label, status, info.ID, info.Name)
}
