// Package proof defines the delegate-visible objects exchanged at the end
// of the delegation protocol: per-field openings and the partition proof
// that ties a claimed visible subset back to the full record commitment.
package proof

import "github.com/vsdl-gov/delegation-engine/group"

// Opening discloses the (name, value, randomness) triple for one visible
// field, letting the verifier recompute that field's commitment and
// check it against what the server claims.
type Opening struct {
	Name  string
	Value string
	R     group.Scalar
}

// PartitionProof is the payload handed to the delegate at Dispense time.
// HiddenFieldCount is advisory only; a verifier MUST NOT rely on it for
// correctness, since nothing prevents a dishonest server from reporting a
// count inconsistent with HiddenCommitment short of recomputing the sum
// itself, which is exactly what Verify does instead.
type PartitionProof struct {
	RecordCommitment group.Point
	HiddenCommitment group.Point
	Openings         []Opening
	HiddenFieldCount int
}

// VisibleNames returns the set of field names disclosed by p's openings,
// used by a verifier to check coverage against a policy's visible set.
func (p PartitionProof) VisibleNames() map[string]struct{} {
	names := make(map[string]struct{}, len(p.Openings))
	for _, o := range p.Openings {
		names[o.Name] = struct{}{}
	}
	return names
}
