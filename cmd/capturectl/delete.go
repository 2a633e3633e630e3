/*
NAME
  delete.go

DESCRIPTION
  delete.go implements the "delete" subcommand: removes a recording file
  and its metadata sidecar together, so the two never go out of sync.

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

	"github.com/spf13/cobra"
)

var deleteCmd = &cobra.Command{
	Use:   "delete [recording file]",
	Short: "Delete a recording and its metadata sidecar",
	Args:  cobra.ExactArgs(1),
	RunE:  runDelete,
}

func runDelete(cmd *cobra.Command, args []string) error {
	name := args[0]
	path := name
	if !filepath.IsAbs(path) {
		path = filepath.Join(outputDir, name)
	}

	ext := filepath.Ext(path)
	sidecar := path[:len(path)-len(ext)] + ".metadata.json"

	if err := os.Remove(path); err != nil && !os.IsNotExist(err) {
		return fmt.Errorf("failed to delete recording: %w", err)
	}
	if err := os.Remove(sidecar); err != nil && !os.IsNotExist(err) {
		return fmt.Errorf("failed to delete metadata sidecar: %w", err)
	}

	fmt.Printf("deleted %s\n", path)
	return nil
}
