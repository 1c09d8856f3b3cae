package cipher

import (
	"bytes"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestEncryptDecryptRoundTrip(t *testing.T) {
	key, iv, err := Keys(KDFSHA256, "mykey", "email")
	require.NoError(t, err)

	tests := []struct {
		name  string
		plain string
	}{
		{"empty", ""},
		{"short", "x"},
		{"block aligned", strings.Repeat("a", 32)},
		{"ragged", strings.Repeat("b", 45)},
		{"padded blob", strings.Repeat("f", 160) + "s3cr3t" + strings.Repeat("b", 34)},
		{"multibyte", "pässwörd"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			enc, err := Encrypt([]byte(tt.plain), key, iv)
			require.NoError(t, err)
			assert.Zero(t, len(enc)%16, "ciphertext not block aligned")
			if len(tt.plain) >= 8 {
				assert.NotContains(t, string(enc), tt.plain[:8])
			}

			dec, err := Decrypt(enc, key, iv)
			require.NoError(t, err)
			assert.Equal(t, tt.plain, string(dec))
		})
	}
}

func TestDecryptWrongKeyYieldsGarbage(t *testing.T) {
	key, iv, err := Keys(KDFSHA256, "rightkey", "email")
	require.NoError(t, err)
	wrongKey, wrongIV, err := Keys(KDFSHA256, "wrongkey", "email")
	require.NoError(t, err)

	plain := []byte("front-padding-here-the-secret-back-padding")
	enc, err := Encrypt(plain, key, iv)
	require.NoError(t, err)

	dec, err := Decrypt(enc, wrongKey, wrongIV)
	// No authentication in CBC: decryption "succeeds" but never yields the
	// plaintext.
	if err == nil {
		assert.NotEqual(t, plain, dec)
	}
}

func TestDecryptRejectsRaggedCiphertext(t *testing.T) {
	key, iv, err := Keys(KDFSHA256, "k", "l")
	require.NoError(t, err)

	_, err = Decrypt([]byte("12345"), key, iv)
	assert.Error(t, err)

	_, err = Decrypt(nil, key, iv)
	assert.Error(t, err)
}

func TestEncryptRejectsBadKey(t *testing.T) {
	_, err := Encrypt([]byte("data"), []byte("short"), bytes.Repeat([]byte{0}, 16))
	assert.Error(t, err)
}

func TestPKCS7(t *testing.T) {
	tests := []struct {
		name string
		in   []byte
	}{
		{"empty", []byte{}},
		{"one byte", []byte{1}},
		{"block aligned", bytes.Repeat([]byte{7}, 16)},
		{"ragged", bytes.Repeat([]byte{9}, 21)},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			padded := pkcs7Pad(tt.in, 16)
			require.Zero(t, len(padded)%16)
			assert.Equal(t, tt.in, pkcs7Strip(padded, 16))
		})
	}
}

func TestPKCS7StripToleratesLegacyTail(t *testing.T) {
	// A legacy truncate-mode file has no padding; the last byte is whatever
	// the back pad happened to end on. Values outside [1,16] pass through.
	data := []byte("legacy-blob-ending-in-letter-Z")
	assert.Equal(t, data, pkcs7Strip(data, 16))

	// A tail that looks numeric but does not repeat is also left alone.
	data = append([]byte("blob"), 0x03, 0x01, 0x02)
	assert.Equal(t, data, pkcs7Strip(data, 16))
}
