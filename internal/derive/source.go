package derive

import (
	"crypto/rand"
	"fmt"
	"math/big"
)

// Source yields uniform random integers for the scramble and pad steps.
//
// Injecting the source keeps the pipeline testable: production code uses
// NewSource (crypto/rand), tests use a fixed sequence.
type Source interface {
	// Intn returns a uniform value in [0, n). n must be > 0.
	Intn(n int) int
}

// cryptoSource reads from crypto/rand.
type cryptoSource struct{}

// NewSource returns a Source backed by the platform CSPRNG.
func NewSource() Source {
	return cryptoSource{}
}

func (cryptoSource) Intn(n int) int {
	v, err := rand.Int(rand.Reader, big.NewInt(int64(n)))
	if err != nil {
		// crypto/rand only fails when the platform entropy source is broken;
		// there is no sane way to continue generating secrets without it.
		panic(fmt.Sprintf("derive: crypto/rand unavailable: %v", err))
	}
	return int(v.Int64())
}

// roll returns a die roll in [1, 6], matching the probability steps the
// scramble decisions are expressed in.
func roll(src Source) int {
	return src.Intn(6) + 1
}
