package stealthaddr

import (
	"crypto/rand"
	"crypto/sha256"
	"fmt"
	"math/big"
)

// randomScalarMinBound is an arbitrary sanity floor, not a cryptographic
// threshold: it only guards against a catastrophically broken RNG handing
// back a near-zero secret.
const randomScalarMinBound = 16000

// maxRandomScalarAttempts bounds the rejection-sampling loop in RandomScalar.
const maxRandomScalarAttempts = 32

// Sha256 returns SHA-256(b).
func Sha256(b []byte) [32]byte {
	return sha256.Sum256(b)
}

// DoubleSha256 returns SHA-256(SHA-256(b)).
func DoubleSha256(b []byte) [32]byte {
	first := sha256.Sum256(b)
	return sha256.Sum256(first[:])
}

// RandomScalar draws 32 uniform random bytes and rejects samples outside
// (randomScalarMinBound, n), retrying up to maxRandomScalarAttempts times.
// Exhausting the budget means the entropy source is broken and is reported
// as ErrRNGExhausted.
func RandomScalar() (Scalar, error) {
	min := big.NewInt(randomScalarMinBound)
	var buf [ScalarSize]byte
	for i := 0; i < maxRandomScalarAttempts; i++ {
		if _, err := rand.Read(buf[:]); err != nil {
			return Scalar{}, fmt.Errorf("stealthaddr: reading random bytes: %w", err)
		}
		v := new(big.Int).SetBytes(buf[:])
		if v.Cmp(min) > 0 && v.Cmp(curveOrder) < 0 {
			return Scalar(buf), nil
		}
	}
	return Scalar{}, ErrRNGExhausted
}
