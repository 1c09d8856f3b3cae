// Package derive turns a (key, label) pair into an obfuscated secret.
//
// The pipeline is deterministic up to the scramble step:
//
//  1. Inputs are NFC-normalized.
//  2. The working secret is hex(SHA256(label + key)) - 64 lowercase hex runes.
//  3. The scramble walks the secret once, conditionally rotating letters and
//     digits out for random replacements, and growing or shrinking the tail
//     under control of the growth factor.
//
// All randomness flows through the Source interface. The production Source
// reads crypto/rand; tests inject a deterministic one. There is no way to
// seed the production source.
package derive
