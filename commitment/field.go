// Package commitment builds Pedersen field commitments and composes them
// into homomorphic record commitments, following the shape of a record as
// an ordered name-to-value mapping.
package commitment

import (
	"encoding/binary"
	"io"

	"github.com/vsdl-gov/delegation-engine/group"
)

// fieldDST domain-separates the field-commitment message hash from every
// other hash computed by this engine (the policy hash, the token
// signature, the generator derivation).
var fieldDST = []byte("VSDL_FIELD_COMMITMENT_V1")

// FieldCommitment is a single Pedersen commitment to one (name, value)
// pair of a record, together with the opening material the server holds
// until a Dispense call decides to reveal it.
type FieldCommitment struct {
	Name  string
	Value string
	R     group.Scalar
	C     group.Point
}

// CommitField computes a Pedersen commitment to (name, value). If r is
// nil a fresh random scalar is sampled. The message hashed into the
// commitment uses a length-prefixed encoding of name and value rather
// than a literal separator, so a value containing the byte sequence of
// any separator can never collide with a different (name, value) pair.
func CommitField(name, value string, r *group.Scalar, rng io.Reader) (FieldCommitment, error) {
	var rs group.Scalar
	if r != nil {
		rs = *r
	} else {
		sampled, err := group.RandomScalar(rng)
		if err != nil {
			return FieldCommitment{}, err
		}
		rs = sampled
	}

	m := group.HashToScalar(fieldDST, encodeFieldInput(name, value))
	c := group.Add(group.ScalarBaseMul(m), group.ScalarMul(group.H, rs))

	return FieldCommitment{Name: name, Value: value, R: rs, C: c}, nil
}

// encodeFieldInput builds the length-prefixed message
// len(name) || name || len(value) || value hashed into a field
// commitment. Lengths are encoded as 8-byte big-endian integers so the
// boundary between name and value is unambiguous regardless of their
// contents, unlike a literal "||" separator, which stops being injective
// the moment a field legitimately contains that substring.
func encodeFieldInput(name, value string) []byte {
	buf := make([]byte, 0, 16+len(name)+len(value))
	var lenBuf [8]byte

	binary.BigEndian.PutUint64(lenBuf[:], uint64(len(name)))
	buf = append(buf, lenBuf[:]...)
	buf = append(buf, name...)

	binary.BigEndian.PutUint64(lenBuf[:], uint64(len(value)))
	buf = append(buf, lenBuf[:]...)
	buf = append(buf, value...)

	return buf
}

// Reproduces reports whether the commitment's C matches what
// CommitField would compute from (Name, Value, R).
func (fc FieldCommitment) Reproduces() bool {
	m := group.HashToScalar(fieldDST, encodeFieldInput(fc.Name, fc.Value))
	want := group.Add(group.ScalarBaseMul(m), group.ScalarMul(group.H, fc.R))
	return group.Eq(want, fc.C)
}
