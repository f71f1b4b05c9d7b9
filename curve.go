// Package stealthaddr implements the cryptographic core of a dark-wallet
// style stealth address scheme over secp256k1: key generation, sender-side
// one-time-key derivation, receiver-side scanning and spend-key recovery,
// and the Base58Check address/export formats around them.
package stealthaddr

import (
	"errors"
	"fmt"
	"math/big"

	"github.com/decred/dcrd/dcrec/secp256k1/v4"
)

// ScalarSize is the length in bytes of a big-endian scalar.
const ScalarSize = 32

// PointSize is the length in bytes of a compressed secp256k1 point.
const PointSize = 33

// curveOrderHex is n, the order of the secp256k1 group.
const curveOrderHex = "FFFFFFFFFFFFFFFFFFFFFFFFFFFFFFFEBAAEDCE6AF48A03BBFD25E8CD0364141"

var curveOrder = mustHexBig(curveOrderHex)

func mustHexBig(h string) *big.Int {
	n, ok := new(big.Int).SetString(h, 16)
	if !ok {
		panic("stealthaddr: bad curve order constant")
	}
	return n
}

// Cryptographic failure sentinels (component A/B failure taxonomy).
var (
	ErrInfinity     = errors.New("stealthaddr: curve operation yielded point at infinity")
	ErrZeroScalar   = errors.New("stealthaddr: scalar operation yielded zero")
	ErrRNGExhausted = errors.New("stealthaddr: exhausted random scalar attempts")
)

// Scalar is a 32-byte big-endian integer, interpreted modulo the curve
// order wherever the protocol consumes it. Callers holding a secret in a
// Scalar must call Zero once it is no longer needed.
type Scalar [ScalarSize]byte

// Zero overwrites the scalar's backing array, as required for any Scalar
// holding secret material before its memory is released.
func (s *Scalar) Zero() {
	for i := range s {
		s[i] = 0
	}
}

func (s Scalar) modN() secp256k1.ModNScalar {
	var m secp256k1.ModNScalar
	m.SetByteSlice(s[:])
	return m
}

func scalarFromModN(m *secp256k1.ModNScalar) Scalar {
	return Scalar(m.Bytes())
}

// Point is a secp256k1 group element in its 33-byte compressed SEC1 form.
type Point [PointSize]byte

func (p Point) jacobian() (secp256k1.JacobianPoint, error) {
	pub, err := secp256k1.ParsePubKey(p[:])
	if err != nil {
		return secp256k1.JacobianPoint{}, fmt.Errorf("stealthaddr: parse point: %w", err)
	}
	var j secp256k1.JacobianPoint
	pub.AsJacobian(&j)
	return j, nil
}

func pointFromJacobian(j *secp256k1.JacobianPoint) (Point, error) {
	if j.Z.IsZero() {
		return Point{}, ErrInfinity
	}
	j.ToAffine()
	pub := secp256k1.NewPublicKey(&j.X, &j.Y)
	var out Point
	copy(out[:], pub.SerializeCompressed())
	return out, nil
}

// BaseMul computes s*G. It fails if s is zero.
func BaseMul(s Scalar) (Point, error) {
	k := s.modN()
	if k.IsZero() {
		return Point{}, ErrZeroScalar
	}
	var j secp256k1.JacobianPoint
	secp256k1.ScalarBaseMultNonConst(&k, &j)
	return pointFromJacobian(&j)
}

// PointMul computes s*P. It fails if P does not decode to a valid curve
// point or if the result is the point at infinity.
func PointMul(p Point, s Scalar) (Point, error) {
	pj, err := p.jacobian()
	if err != nil {
		return Point{}, err
	}
	k := s.modN()
	var out secp256k1.JacobianPoint
	secp256k1.ScalarMultNonConst(&k, &pj, &out)
	return pointFromJacobian(&out)
}

// PointAdd computes a+b. It fails if either input does not decode to a
// valid curve point or if the sum is the point at infinity.
func PointAdd(a, b Point) (Point, error) {
	aj, err := a.jacobian()
	if err != nil {
		return Point{}, err
	}
	bj, err := b.jacobian()
	if err != nil {
		return Point{}, err
	}
	var out secp256k1.JacobianPoint
	secp256k1.AddNonConst(&aj, &bj, &out)
	return pointFromJacobian(&out)
}

// ScalarAddModN computes (a+b) mod n. It fails if the sum is zero.
func ScalarAddModN(a, b Scalar) (Scalar, error) {
	x := a.modN()
	y := b.modN()
	x.Add(&y)
	if x.IsZero() {
		return Scalar{}, ErrZeroScalar
	}
	return scalarFromModN(&x), nil
}

// EncodeCompressed returns the 33-byte compressed SEC1 encoding of p. Since
// Point already carries that encoding, this is a defensive copy.
func EncodeCompressed(p Point) [PointSize]byte {
	return p
}

// DecodeCompressed parses a 33-byte compressed SEC1 point, rejecting
// anything not on the curve (including the point at infinity, which has no
// valid compressed encoding).
func DecodeCompressed(b [PointSize]byte) (Point, error) {
	if _, err := secp256k1.ParsePubKey(b[:]); err != nil {
		return Point{}, fmt.Errorf("stealthaddr: decode point: %w", err)
	}
	return Point(b), nil
}
