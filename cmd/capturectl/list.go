/*
NAME
  list.go

DESCRIPTION
  list.go implements the "list" subcommand: scans output-dir for recording
  files with a metadata sidecar and prints a summary table, reading each
  sidecar back via metadata.Read (SPEC_FULL.md's supplement to spec.md,
  which only specified the write path).

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
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"github.com/pablohealth/audiocapturekit/metadata"
)

var listCmd = &cobra.Command{
	Use:   "list",
	Short: "List recordings in the output directory",
	RunE:  runList,
}

func runList(cmd *cobra.Command, args []string) error {
	entries, err := os.ReadDir(outputDir)
	if err != nil {
		return fmt.Errorf("failed to read output directory: %w", err)
	}

	found := 0
	for _, entry := range entries {
		if entry.IsDir() {
			continue
		}
		name := entry.Name()
		if !strings.HasSuffix(name, ".wav") {
			continue
		}

		path := filepath.Join(outputDir, name)
		m, err := metadata.Read(path)
		if err != nil {
			continue // no sidecar, or unreadable; not one of ours
		}

		found++
		encrypted := ""
		if m.IsEncrypted {
			encrypted = " [encrypted]"
		}
		fmt.Printf("%s  %6.1fs  %s%s\n", m.ID, m.DurationSecs, name, encrypted)
	}

	if found == 0 {
		fmt.Println("no recordings found")
	}
	return nil
}
