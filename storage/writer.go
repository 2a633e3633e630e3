/*
NAME
  writer.go

DESCRIPTION
  writer.go implements Writer, a streaming WAV file writer with optional
  per-chunk AES-256-GCM sealing, ported from
  original_source/storage/encrypted_writer.rs.

AUTHOR
  David Sutton <davidsutton@ausocean.org>

LICENSE
  Copyright (C) 2024 the Australian Ocean Lab (AusOcean). All Rights Reserved.

  The Software and all intellectual property rights associated
  therewith, including but not limited to copyrights, trademarks,
  patents, and trade secrets, are and will remain the exclusive
  property of the Australian Ocean Lab (AusOcean).
*/

// Package storage writes captured PCM audio to a streaming WAV file,
// sealing chunks with a capture.Encryptor when one is configured.
package storage

import (
	"crypto/sha256"
	"encoding/binary"
	"encoding/hex"
	"fmt"
	"os"
	"path/filepath"

	"github.com/pkg/errors"

	"github.com/pablohealth/audiocapturekit/capture"
	"github.com/pablohealth/audiocapturekit/wav"
)

// Writer is a streaming WAV file writer. It writes a zero-size header
// first, streams PCM (optionally sealed per chunk) as it arrives, then
// patches the header's size fields in place on Close.
//
// Writer is not safe for concurrent use; callers serialize access with
// their own mutex (session.Session does this).
type Writer struct {
	filePath          string
	encryptor         capture.Encryptor
	file              *os.File
	totalBytesWritten uint64
	isOpen            bool
}

// New returns a Writer for filePath. If encryptor is non-nil, every chunk
// passed to Write is sealed before being appended to the file.
func New(filePath string, encryptor capture.Encryptor) *Writer {
	return &Writer{filePath: filePath, encryptor: encryptor}
}

// Open creates the output file (and its parent directory, if necessary)
// and writes the initial 44-byte WAV header. Open is a no-op if the
// writer is already open.
func (w *Writer) Open(config capture.Config) error {
	if w.isOpen {
		return nil
	}

	if dir := filepath.Dir(w.filePath); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return capture.NewStorageError(fmt.Sprintf("failed to create directory: %v", err))
		}
	}

	file, err := os.Create(w.filePath)
	if err != nil {
		return capture.NewStorageError(fmt.Sprintf("failed to create file: %v", err))
	}
	w.file = file

	header := wav.Generate(uint32(config.SampleRate), config.BitDepth, config.Channels, 0)
	if err := w.writeRaw(header[:]); err != nil {
		return err
	}
	w.isOpen = true
	return nil
}

// Write appends data to the file, sealing it first if an Encryptor is
// configured. Encrypted chunks are framed as a 4-byte little-endian
// length prefix followed by the sealed bytes.
func (w *Writer) Write(data []byte) error {
	if !w.isOpen {
		return capture.NewStorageError("file is not open for writing")
	}

	if w.encryptor == nil {
		return w.writeRaw(data)
	}

	sealed, err := w.encryptor.Encrypt(data)
	if err != nil {
		return capture.NewEncryptionFailed(fmt.Sprintf("chunk encryption failed: %v", err))
	}

	var lenPrefix [4]byte
	binary.LittleEndian.PutUint32(lenPrefix[:], uint32(len(sealed)))
	if err := w.writeRaw(lenPrefix[:]); err != nil {
		return err
	}
	return w.writeRaw(sealed)
}

// Close patches the WAV header's derived size fields, optionally patches
// the sample rate if actualSampleRate differs from the one the header was
// opened with (e.g. a device renegotiated its rate mid-capture), flushes
// and closes the file, and returns the SHA-256 hex digest of the
// finalized file.
func (w *Writer) Close(actualSampleRate *float64, channels, bitDepth uint16) (string, error) {
	if !w.isOpen {
		return "", capture.NewStorageError("file is not open")
	}

	dataSize := w.totalBytesWritten - wav.HeaderSize

	header := make([]byte, wav.HeaderSize)
	if _, err := w.file.ReadAt(header, 0); err != nil {
		return "", capture.NewStorageError(fmt.Sprintf("failed to read header for patching: %v", err))
	}

	wav.PatchFileSize(header, w.totalBytesWritten)
	if actualSampleRate != nil {
		wav.PatchSampleRate(header, uint32(*actualSampleRate), channels, bitDepth)
	}
	wav.PatchDataSize(header, dataSize)

	if err := w.patchAt(0, header); err != nil {
		return "", err
	}

	if err := w.file.Sync(); err != nil {
		return "", capture.NewStorageError(err.Error())
	}
	if err := w.file.Close(); err != nil {
		return "", capture.NewStorageError(err.Error())
	}
	w.file = nil
	w.isOpen = false

	checksum, err := sha256File(w.filePath)
	if err != nil {
		return "", err
	}
	return checksum, nil
}

// BytesWritten returns the total number of bytes written so far,
// including the WAV header.
func (w *Writer) BytesWritten() uint64 { return w.totalBytesWritten }

// FilePath returns the path of the output file.
func (w *Writer) FilePath() string { return w.filePath }

func (w *Writer) writeRaw(data []byte) error {
	if w.file == nil {
		return capture.NewStorageError("file is not open")
	}
	if _, err := w.file.Write(data); err != nil {
		return capture.NewStorageError(fmt.Sprintf("write failed: %v", err))
	}
	w.totalBytesWritten += uint64(len(data))
	return nil
}

func (w *Writer) patchAt(offset int64, data []byte) error {
	if _, err := w.file.Seek(offset, 0); err != nil {
		return capture.NewStorageError(err.Error())
	}
	if _, err := w.file.Write(data); err != nil {
		return capture.NewStorageError(err.Error())
	}
	return nil
}

// sha256File returns the hex-encoded SHA-256 digest of the file at path.
func sha256File(path string) (string, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return "", capture.NewStorageError(errors.Wrap(err, "failed to read file for checksum").Error())
	}
	digest := sha256.Sum256(data)
	return hex.EncodeToString(digest[:]), nil
}
