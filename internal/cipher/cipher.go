// Package cipher encrypts and decrypts stored secret blobs with AES-CBC.
//
// Key and IV derivation live here too (kdf.go) so the whole file format
// contract - what bytes a .enc file contains for a given key and label -
// has a single owner.
package cipher

import (
	"bytes"
	"crypto/aes"
	cbc "crypto/cipher"
	"fmt"
)

// Encrypt AES-CBC encrypts plain with PKCS#7 padding.
func Encrypt(plain, key, iv []byte) ([]byte, error) {
	block, err := aes.NewCipher(key)
	if err != nil {
		return nil, fmt.Errorf("cipher: bad key: %w", err)
	}
	padded := pkcs7Pad(plain, block.BlockSize())
	out := make([]byte, len(padded))
	cbc.NewCBCEncrypter(block, iv).CryptBlocks(out, padded)
	return out, nil
}

// Decrypt reverses Encrypt. A wrong key is not detectable here: the result
// is garbage and any PKCS#7 tail that happens to parse is stripped. Callers
// slice the secret from the front of the plaintext, so trailing junk from a
// legacy truncate-mode file is harmless.
func Decrypt(enc, key, iv []byte) ([]byte, error) {
	block, err := aes.NewCipher(key)
	if err != nil {
		return nil, fmt.Errorf("cipher: bad key: %w", err)
	}
	if len(enc) == 0 || len(enc)%block.BlockSize() != 0 {
		return nil, fmt.Errorf("cipher: ciphertext length %d is not a multiple of the block size", len(enc))
	}
	out := make([]byte, len(enc))
	cbc.NewCBCDecrypter(block, iv).CryptBlocks(out, enc)
	return pkcs7Strip(out, block.BlockSize()), nil
}

func pkcs7Pad(data []byte, blockSize int) []byte {
	n := blockSize - len(data)%blockSize
	return append(data, bytes.Repeat([]byte{byte(n)}, n)...)
}

// pkcs7Strip removes a valid PKCS#7 tail and returns the input unchanged
// otherwise. Legacy files were truncated to a block multiple instead of
// padded, so an invalid tail is not an error.
func pkcs7Strip(data []byte, blockSize int) []byte {
	if len(data) == 0 {
		return data
	}
	n := int(data[len(data)-1])
	if n == 0 || n > blockSize || n > len(data) {
		return data
	}
	for _, b := range data[len(data)-n:] {
		if int(b) != n {
			return data
		}
	}
	return data[:len(data)-n]
}
