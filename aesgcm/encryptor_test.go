package aesgcm

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewDemoAlgorithmAndMetadata(t *testing.T) {
	enc, err := NewDemo()
	require.NoError(t, err)

	assert.Equal(t, "AES-256-GCM", enc.Algorithm())

	meta := enc.KeyMetadata()
	assert.Equal(t, "demo-key-v1", meta["keyId"])
	assert.Contains(t, meta["warning"], "NOT FOR PRODUCTION")
}

func TestEncryptProducesDistinctNoncesPerCall(t *testing.T) {
	enc, err := NewDemo()
	require.NoError(t, err)

	plaintext := []byte("hello, recording")

	a, err := enc.Encrypt(plaintext)
	require.NoError(t, err)
	b, err := enc.Encrypt(plaintext)
	require.NoError(t, err)

	assert.NotEqual(t, a, b, "two encryptions of the same plaintext must use different nonces")
	assert.False(t, bytes.Equal(a[:12], b[:12]), "nonce prefixes should differ")
}

func TestEncryptOutputLayout(t *testing.T) {
	enc, err := NewDemo()
	require.NoError(t, err)

	plaintext := make([]byte, 32)
	sealed, err := enc.Encrypt(plaintext)
	require.NoError(t, err)

	// nonce(12) || ciphertext(32) || tag(16)
	assert.Len(t, sealed, 12+32+16)
}

func TestEncryptDecryptsBackWithStdlibGCM(t *testing.T) {
	enc, err := NewDemo()
	require.NoError(t, err)

	plaintext := []byte("round trip check")
	sealed, err := enc.Encrypt(plaintext)
	require.NoError(t, err)

	nonce := sealed[:12]
	ciphertextAndTag := sealed[12:]

	impl := enc.(*demoEncryptor)
	decrypted, err := impl.gcm.Open(nil, nonce, ciphertextAndTag, nil)
	require.NoError(t, err)
	assert.Equal(t, plaintext, decrypted)
}
