package cipher

import (
	"crypto/sha256"
	"encoding/hex"
	"fmt"

	"golang.org/x/crypto/argon2"

	"github.com/roach88/pinstash/internal/derive"
)

// KDF selects how the AES key is derived from the user key.
type KDF string

const (
	// KDFSHA256 is the legacy derivation: the AES key is the first 32 hex
	// characters of SHA256(key). Files written this way round-trip with the
	// historical format.
	KDFSHA256 KDF = "sha256"

	// KDFArgon2 derives the AES key with argon2id over a label-bound salt.
	KDFArgon2 KDF = "argon2"
)

// Argon2id parameters: 1 pass over 64 MiB with 4 lanes, 32-byte key.
const (
	argonTime    = 1
	argonMemory  = 64 * 1024
	argonThreads = 4
	argonKeyLen  = 32
)

// ParseKDF validates a KDF name.
func ParseKDF(name string) (KDF, error) {
	switch KDF(name) {
	case KDFSHA256, KDFArgon2:
		return KDF(name), nil
	}
	return "", fmt.Errorf("unknown kdf %q: must be %q or %q", name, KDFSHA256, KDFArgon2)
}

// LegacyKeyHex returns the 32-character hex prefix of SHA256(key). It doubles
// as the AES key under KDFSHA256 and as the seed for the back pad length
// under every KDF.
func LegacyKeyHex(key string) string {
	sum := sha256.Sum256([]byte(derive.Normalize(key)))
	return hex.EncodeToString(sum[:])[:32]
}

// Keys derives the AES key and IV for a (key, label) pair under the given
// KDF. The IV is bound to both the derived key material and the label, so
// two labels stored under the same key never share an IV.
func Keys(kdf KDF, key, label string) (aesKey, iv []byte, err error) {
	key = derive.Normalize(key)
	label = derive.Normalize(label)

	var keyMaterial string
	switch kdf {
	case KDFSHA256:
		keyMaterial = LegacyKeyHex(key)
		aesKey = []byte(keyMaterial)
	case KDFArgon2:
		labelSum := sha256.Sum256([]byte(label))
		raw := argon2.IDKey([]byte(key), labelSum[:16], argonTime, argonMemory, argonThreads, argonKeyLen)
		keyMaterial = hex.EncodeToString(raw)
		aesKey = raw
	default:
		return nil, nil, fmt.Errorf("unknown kdf %q", kdf)
	}

	ivSum := sha256.Sum256([]byte(keyMaterial + label))
	iv = []byte(hex.EncodeToString(ivSum[:])[:16])
	return aesKey, iv, nil
}
