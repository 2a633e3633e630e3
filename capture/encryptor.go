/*
NAME
  encryptor.go

DESCRIPTION
  encryptor.go defines the Encryptor contract used to optionally seal each
  audio chunk before it reaches storage.Writer.

LICENSE
  Copyright (C) 2024 the Australian Ocean Lab (AusOcean). All Rights Reserved.

  The Software and all intellectual property rights associated
  therewith, including but not limited to copyrights, trademarks,
  patents, and trade secrets, are and will remain the exclusive
  property of the Australian Ocean Lab (AusOcean).
*/

package capture

// Encryptor seals chunks of raw PCM data before they are written to disk.
//
// Sealed chunk format: nonce (12 bytes) || ciphertext || tag (16 bytes).
type Encryptor interface {
	// Encrypt seals data, returning nonce||ciphertext||tag.
	Encrypt(data []byte) ([]byte, error)

	// KeyMetadata returns informational key metadata (e.g. "keyId",
	// "algorithm") for inclusion in the recording's metadata sidecar.
	KeyMetadata() map[string]string

	// Algorithm returns an identifier such as "AES-256-GCM".
	Algorithm() string
}
