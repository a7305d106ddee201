package group

import (
	"crypto/rand"
	"crypto/sha256"
	"encoding/binary"
	"io"
	"math/big"

	"golang.org/x/crypto/sha3"
)

// hSeed is the domain-separation seed for deriving the second generator H.
// See deriveH for the nothing-up-my-sleeve construction.
const hSeed = "VSDL_GENERATOR_H_SEED_V1"

// RandomScalar samples a uniform scalar in [0, q) from rng. Callers in
// production code should pass crypto/rand.Reader; tests may inject a
// deterministic reader.
func RandomScalar(rng io.Reader) (Scalar, error) {
	b := make([]byte, 32)
	for {
		if _, err := io.ReadFull(rng, b); err != nil {
			return Scalar{}, err
		}
		x := new(big.Int).SetBytes(b)
		if x.Cmp(curve.N) < 0 {
			return Scalar{v: x}, nil
		}
	}
}

// MustRandomScalar samples a scalar from crypto/rand.Reader and panics on
// failure, which can only happen if the OS RNG is broken.
func MustRandomScalar() Scalar {
	s, err := RandomScalar(rand.Reader)
	if err != nil {
		panic(err)
	}
	return s
}

// HashToScalar computes SHA-256(domain || msg) and reduces the result
// modulo q, the same tagged-hash-then-reduce shape as a BIP-340 tagged
// hash, but with a plain domain prefix rather than a double-hashed tag
// since the commitment engine only needs domain separation, not a public
// specification-fixed tag.
func HashToScalar(domain, msg []byte) Scalar {
	h := sha256.New()
	h.Write(domain)
	h.Write(msg)
	sum := h.Sum(nil)
	return ScalarFromBytes(sum)
}

// deriveH derives the second Pedersen generator by hash-to-curve
// try-and-increment: hash an incrementing counter appended to the domain
// seed with SHA3-256 (a distinct hash family from the SHA-256 used
// elsewhere, so the two generators' derivations can never collide by
// construction), interpret the digest as a candidate x-coordinate, and
// accept the first candidate that lies on the curve. No party ever
// computes a scalar s such that H = s*G, which is what a Pedersen
// commitment's binding property depends on (see [PEDERSEN] in curve.go).
func deriveH() Point {
	for counter := uint32(0); ; counter++ {
		var ctr [4]byte
		binary.BigEndian.PutUint32(ctr[:], counter)

		h := sha3.Sum256(append([]byte(hSeed), ctr[:]...))
		x := new(big.Int).SetBytes(h[:])
		x.Mod(x, curve.P)

		y, ok := liftX(x)
		if !ok {
			continue
		}
		p := Point{X: x, Y: y}
		if IsOnCurve(p) {
			return p
		}
	}
}

// liftX computes a y-coordinate for the given x on the secp256k1 curve
// (y^2 = x^3 + 7 mod p), returning ok=false if x is not a valid
// x-coordinate for any point on the curve.
func liftX(x *big.Int) (*big.Int, bool) {
	p := curve.P
	ySq := new(big.Int).Exp(x, big.NewInt(3), p)
	ySq.Add(ySq, curve.B)
	ySq.Mod(ySq, p)

	y := new(big.Int).ModSqrt(ySq, p)
	if y == nil {
		return nil, false
	}
	check := new(big.Int).Mul(y, y)
	check.Mod(check, p)
	if check.Cmp(ySq) != 0 {
		return nil, false
	}
	return y, true
}

// H is the second Pedersen generator, computed once at package
// initialization via deriveH.
var H = deriveH()
