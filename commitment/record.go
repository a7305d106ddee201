package commitment

import (
	"io"

	"github.com/vsdl-gov/delegation-engine/group"
	"github.com/vsdl-gov/delegation-engine/proof"
)

// Record is an ordered name-to-value mapping. Names is the insertion
// order; Values holds the same keys as a lookup map. A Record never
// repeats a name in Names.
type Record struct {
	Names  []string
	Values map[string]string
}

// NewRecord builds a Record from an ordered list of (name, value) pairs.
// It panics if a name is empty or repeated, which indicates a
// programming error in the caller (record construction happens only in
// the record store's seed data and tests, never from untrusted input).
func NewRecord(pairs ...[2]string) Record {
	r := Record{Values: make(map[string]string, len(pairs))}
	for _, pair := range pairs {
		name, value := pair[0], pair[1]
		if name == "" {
			panic("commitment: field name must not be empty")
		}
		if _, exists := r.Values[name]; exists {
			panic("commitment: duplicate field name " + name)
		}
		r.Names = append(r.Names, name)
		r.Values[name] = value
	}
	return r
}

// Names of a field-commitment map, used where a Record itself isn't
// available (e.g. when the server only holds the commitments).
func FieldNames(fcs map[string]FieldCommitment) []string {
	names := make([]string, 0, len(fcs))
	for name := range fcs {
		names = append(names, name)
	}
	return names
}

// CommitRecord computes a Pedersen commitment to every field of record,
// each with freshly sampled randomness, and sums them into the record
// commitment C_D = Sum(C_i).
func CommitRecord(record Record, rng io.Reader) (group.Point, map[string]FieldCommitment, error) {
	fcs := make(map[string]FieldCommitment, len(record.Names))
	cd := group.Identity()

	for _, name := range record.Names {
		fc, err := CommitField(name, record.Values[name], nil, rng)
		if err != nil {
			return group.Point{}, nil, err
		}
		fcs[name] = fc
		cd = group.Add(cd, fc.C)
	}

	return cd, fcs, nil
}

// SubsetCommitment sums the field commitments for the given names. Names
// absent from fcs are skipped silently — the caller is responsible for
// checking coverage (see server.Dispense's PolicyRecordMismatch check).
// An empty name list returns the group identity.
func SubsetCommitment(fcs map[string]FieldCommitment, names []string) group.Point {
	sum := group.Identity()
	for _, name := range names {
		fc, ok := fcs[name]
		if !ok {
			continue
		}
		sum = group.Add(sum, fc.C)
	}
	return sum
}

// VerifyPartition reports whether cd == ch + cf, in constant time.
func VerifyPartition(cd, ch, cf group.Point) bool {
	return group.Eq(cd, group.Add(ch, cf))
}

// RecomputeFromOpenings sums g*H(name,value) + h*r over every opening.
// An empty slice returns the group identity.
func RecomputeFromOpenings(openings []proof.Opening) group.Point {
	sum := group.Identity()
	for _, o := range openings {
		m := group.HashToScalar(fieldDST, encodeFieldInput(o.Name, o.Value))
		c := group.Add(group.ScalarBaseMul(m), group.ScalarMul(group.H, o.R))
		sum = group.Add(sum, c)
	}
	return sum
}
