/*
NAME
  encryptor.go

DESCRIPTION
  encryptor.go implements a demo AES-256-GCM capture.Encryptor with a
  hardcoded key, ported from
  original_source/Examples/windows/SampleApp/src-tauri/src/demo_encryptor.rs,
  using only crypto/aes, crypto/cipher, and crypto/rand: AES-GCM is a
  standard-library primitive across the retrieval pack (none of the example
  repos import a third-party AEAD implementation), so there is no ecosystem
  library to prefer here.

AUTHOR
  David Sutton <davidsutton@ausocean.org>

LICENSE
  Copyright (C) 2024 the Australian Ocean Lab (AusOcean). All Rights Reserved.

  The Software and all intellectual property rights associated
  therewith, including but not limited to copyrights, trademarks,
  patents, and trade secrets, are and will remain the exclusive
  property of the Australian Ocean Lab (AusOcean).
*/

// Package aesgcm provides a demo capture.Encryptor implementation for
// exercising the encrypted recording path end to end. It is NOT FOR
// PRODUCTION: its key is a hardcoded constant.
package aesgcm

import (
	"crypto/aes"
	"crypto/cipher"
	"crypto/rand"
	"fmt"
	"io"

	"github.com/pablohealth/audiocapturekit/capture"
)

// demoKey is a hardcoded 32-byte AES-256 key, identical across every
// reference implementation of this demo encryptor, so that recordings from
// one platform can be decrypted by another during interop testing.
var demoKey = [32]byte{
	0x01, 0x02, 0x03, 0x04, 0x05, 0x06, 0x07, 0x08,
	0x09, 0x0A, 0x0B, 0x0C, 0x0D, 0x0E, 0x0F, 0x10,
	0x11, 0x12, 0x13, 0x14, 0x15, 0x16, 0x17, 0x18,
	0x19, 0x1A, 0x1B, 0x1C, 0x1D, 0x1E, 0x1F, 0x20,
}

const nonceSize = 12

// demoEncryptor seals chunks with AES-256-GCM under a hardcoded key.
//
// NOT FOR PRODUCTION — for interop testing between reference
// implementations of the encrypted recording path only.
type demoEncryptor struct {
	gcm cipher.AEAD
}

// NewDemo returns a capture.Encryptor backed by AES-256-GCM and a
// hardcoded demo key.
//
// NOT FOR PRODUCTION.
func NewDemo() (capture.Encryptor, error) {
	block, err := aes.NewCipher(demoKey[:])
	if err != nil {
		return nil, fmt.Errorf("aesgcm: failed to init cipher: %w", err)
	}
	gcm, err := cipher.NewGCM(block)
	if err != nil {
		return nil, fmt.Errorf("aesgcm: failed to init GCM: %w", err)
	}
	return &demoEncryptor{gcm: gcm}, nil
}

// Encrypt seals data, returning nonce(12) || ciphertext || tag(16).
// cipher.AEAD.Seal appends the tag to the ciphertext, so the sealed chunk
// only needs the nonce prepended.
func (e *demoEncryptor) Encrypt(data []byte) ([]byte, error) {
	nonce := make([]byte, nonceSize)
	if _, err := io.ReadFull(rand.Reader, nonce); err != nil {
		return nil, fmt.Errorf("AES-GCM encryption failed: %w", err)
	}

	sealed := e.gcm.Seal(nil, nonce, data, nil)

	combined := make([]byte, 0, len(nonce)+len(sealed))
	combined = append(combined, nonce...)
	combined = append(combined, sealed...)
	return combined, nil
}

// KeyMetadata returns informational metadata, including an explicit
// warning that this key is not suitable for production use.
func (e *demoEncryptor) KeyMetadata() map[string]string {
	return map[string]string{
		"keyId":     "demo-key-v1",
		"algorithm": e.Algorithm(),
		"warning":   "DEMO KEY — NOT FOR PRODUCTION",
	}
}

// Algorithm returns "AES-256-GCM".
func (e *demoEncryptor) Algorithm() string { return "AES-256-GCM" }
