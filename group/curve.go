// Package group wraps a prime-order elliptic-curve group (secp256k1) with
// two independent generators and the scalar/point arithmetic the
// commitment engine is built on.
//
// [PEDERSEN]
//
//	Pedersen, T.P., "Non-Interactive and Information-Theoretic Secure
//	Verifiable Secret Sharing", CRYPTO '91.
//
// [HASH-TO-CURVE]
//
//	Faz-Hernandez, A., Scott, S., Sullivan, N., Wahby, R. S., and C. A. Wood,
//	"Hashing to Elliptic Curves", Work in Progress, Internet-Draft,
//	draft-irtf-cfrg-hash-to-curve-16, 15 June 2022,
//	<https://datatracker.ietf.org/doc/html/draft-irtf-cfrg-hash-to-curve-16>.
package group

import (
	"crypto/subtle"
	"fmt"
	"math/big"

	"github.com/btcsuite/btcd/btcec"
)

// Scalar is an integer modulo the group order q. It is a distinct type
// from Point so the two can never be mixed by accident.
type Scalar struct {
	v *big.Int
}

// Point is an element of the secp256k1 group.
type Point struct {
	X *big.Int
	Y *big.Int
}

var curve = btcec.S256()

// Order returns the group order q.
func Order() *big.Int {
	return new(big.Int).Set(curve.N)
}

// ScalarFromBigInt reduces x modulo q and wraps it as a Scalar.
func ScalarFromBigInt(x *big.Int) Scalar {
	return Scalar{v: new(big.Int).Mod(x, curve.N)}
}

// ScalarFromBytes interprets b as a big-endian integer and reduces it mod q.
func ScalarFromBytes(b []byte) Scalar {
	return ScalarFromBigInt(new(big.Int).SetBytes(b))
}

// Bytes returns s as a 32-byte big-endian, fixed-width encoding.
func (s Scalar) Bytes() []byte {
	b := make([]byte, 32)
	s.v.FillBytes(b)
	return b
}

// BigInt exposes the underlying value; callers must not mutate it.
func (s Scalar) BigInt() *big.Int {
	return s.v
}

// IsZero reports whether s is the zero scalar.
func (s Scalar) IsZero() bool {
	return s.v.Sign() == 0
}

// Add returns s + t mod q.
func (s Scalar) Add(t Scalar) Scalar {
	return ScalarFromBigInt(new(big.Int).Add(s.v, t.v))
}

// Zeroize sets the scalar's value to 0 in place, so every Scalar that
// shares the same *big.Int also reads as 0 afterwards. The old limbs in
// the big.Int's backing array are not overwritten: math/big shortens the
// slice to length zero rather than clearing it.
func (s *Scalar) Zeroize() {
	s.v.SetInt64(0)
}

// G returns the standard secp256k1 base point.
func G() Point {
	return Point{X: new(big.Int).Set(curve.Gx), Y: new(big.Int).Set(curve.Gy)}
}

// Identity returns the group identity element. secp256k1 has no affine
// point at (0,0), so that pair is used as the conventional representation
// of the point at infinity throughout this package.
func Identity() Point {
	return Point{X: big.NewInt(0), Y: big.NewInt(0)}
}

// IsIdentity reports whether P is the identity element.
func (p Point) IsIdentity() bool {
	return p.X.Sign() == 0 && p.Y.Sign() == 0
}

// Add returns p + q on the curve.
func Add(p, q Point) Point {
	if p.IsIdentity() {
		return q
	}
	if q.IsIdentity() {
		return p
	}
	x, y := curve.Add(p.X, p.Y, q.X, q.Y)
	return Point{X: x, Y: y}
}

// ScalarMul returns s*P.
func ScalarMul(p Point, s Scalar) Point {
	if p.IsIdentity() || s.IsZero() {
		return Identity()
	}
	x, y := curve.ScalarMult(p.X, p.Y, s.v.Bytes())
	return Point{X: x, Y: y}
}

// ScalarBaseMul returns s*G.
func ScalarBaseMul(s Scalar) Point {
	if s.IsZero() {
		return Identity()
	}
	x, y := curve.ScalarBaseMult(s.v.Bytes())
	return Point{X: x, Y: y}
}

// Eq reports whether p and q are the same point, in constant time with
// respect to the encoded coordinates.
func Eq(p, q Point) bool {
	return subtle.ConstantTimeCompare(Encode(p), Encode(q)) == 1
}

// Encode serializes p in SEC1 compressed form (33 bytes). The identity
// element encodes to a single 0x00 byte, matching the convention used by
// point-at-infinity aware compressed encodings.
func Encode(p Point) []byte {
	if p.IsIdentity() {
		return []byte{0x00}
	}
	pk := btcec.PublicKey{Curve: curve, X: p.X, Y: p.Y}
	return pk.SerializeCompressed()
}

// Decode parses a compressed point produced by Encode.
func Decode(b []byte) (Point, error) {
	if len(b) == 1 && b[0] == 0x00 {
		return Identity(), nil
	}
	pk, err := btcec.ParsePubKey(b, curve)
	if err != nil {
		return Point{}, fmt.Errorf("group: decode point: %w", err)
	}
	return Point{X: pk.X, Y: pk.Y}, nil
}

// IsOnCurve reports whether p lies on the curve. The identity element is
// not considered on-curve for the purposes of commitment validation.
func IsOnCurve(p Point) bool {
	if p.IsIdentity() {
		return false
	}
	return curve.IsOnCurve(p.X, p.Y)
}
