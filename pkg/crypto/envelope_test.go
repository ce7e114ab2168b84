package crypto

import (
	"crypto/aes"
	"crypto/cipher"
	"crypto/sha256"
	"encoding/base64"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestEnvelopeRoundTrip(t *testing.T) {
	env := NewEnvelope("key-secret", "iv-secret")

	for _, plain := range []string{
		`{"productId":"app-1","method":"productRtPaypal","productName":"Builder"}`,
		"",
		"exactly16bytes!!",
	} {
		enc, err := env.Encrypt([]byte(plain))
		require.NoError(t, err)

		dec, err := env.Decrypt(enc)
		require.NoError(t, err)
		assert.Equal(t, plain, string(dec))
	}
}

func TestEnvelopeDerivation(t *testing.T) {
	env := NewEnvelope("key-secret", "iv-secret")
	plain := []byte(`{"status":"success"}`)

	key := sha256.Sum256([]byte("key-secret"))
	iv := sha256.Sum256([]byte("iv-secret"))
	block, err := aes.NewCipher(key[:])
	require.NoError(t, err)

	padded := pkcs7Pad(plain, aes.BlockSize)
	want := make([]byte, len(padded))
	cipher.NewCBCEncrypter(block, iv[:16]).CryptBlocks(want, padded)

	got, err := env.Encrypt(plain)
	require.NoError(t, err)
	assert.Equal(t, base64.StdEncoding.EncodeToString(want), got)
}

func TestEnvelopeDecryptErrors(t *testing.T) {
	env := NewEnvelope("key-secret", "iv-secret")

	_, err := env.Decrypt("%%%not-base64")
	assert.ErrorIs(t, err, ErrInvalidCiphertext)

	_, err = env.Decrypt(base64.StdEncoding.EncodeToString([]byte("short")))
	assert.ErrorIs(t, err, ErrInvalidCiphertext)

	enc, err := env.Encrypt([]byte("payload"))
	require.NoError(t, err)
	dec, err := NewEnvelope("other-key", "iv-secret").Decrypt(enc)
	if err == nil {
		assert.NotEqual(t, "payload", string(dec))
	}
}
