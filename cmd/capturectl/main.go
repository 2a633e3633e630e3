/*
NAME
  main.go

DESCRIPTION
  capturectl is a command-line client for the audio capture session
  orchestrator: it can run a recording session to completion, list and
  inspect previously recorded files via their metadata sidecars, delete a
  recording, and report which mic/system-loopback devices are available.
  Root/subcommand wiring follows breeze-agent/cmd/breeze-agent/main.go's
  cobra layout (package-level *cobra.Command vars, an init() that attaches
  persistent flags and adds subcommands, main() calling rootCmd.Execute()).

AUTHOR
  David Sutton <davidsutton@ausocean.org>

LICENSE
  Copyright (C) 2024 the Australian Ocean Lab (AusOcean). All Rights Reserved.

  The Software and all intellectual property rights associated
  therewith, including but not limited to copyrights, trademarks,
  patents, and trade secrets, are and will remain the exclusive
  property of the Australian Ocean Lab (AusOcean).
*/

// Package main implements capturectl, the audio capture session CLI.
package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

var (
	outputDir string
	logFile   string
)

var rootCmd = &cobra.Command{
	Use:   "capturectl",
	Short: "Audio capture session control",
	Long:  `capturectl drives an audio capture session: record mic + system audio to an encrypted or plaintext WAV file, and inspect previously recorded sessions.`,
}

func init() {
	rootCmd.PersistentFlags().StringVar(&outputDir, "output-dir", ".", "directory recordings and metadata sidecars are written to or read from")
	rootCmd.PersistentFlags().StringVar(&logFile, "log-file", "", "path to a rotated log file (logs to stdout only if empty)")

	rootCmd.AddCommand(recordCmd)
	rootCmd.AddCommand(listCmd)
	rootCmd.AddCommand(deleteCmd)
	rootCmd.AddCommand(devicesCmd)
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
