package server

import (
	"context"
	"fmt"

	"github.com/vsdl-gov/delegation-engine/commitment"
	"github.com/vsdl-gov/delegation-engine/group"
	"github.com/vsdl-gov/delegation-engine/proof"
)

// VerifyResult carries both the boolean outcome and the recomputed
// visible-field sum C_F (the hidden commitment is not added in), for
// display purposes.
type VerifyResult struct {
	Valid             bool
	RecomputedVisible group.Point
}

// Verify recomputes C_F from a proof's openings and checks the partition
// equation against the record commitment the caller asserts. This is the
// same check a delegate runs locally; the server exposes it only as a
// convenience.
//
// Verify does not consult any token state: a PartitionProof is
// self-contained once the caller supplies the record commitment to check
// it against (server.Dispense is responsible for always sourcing that
// commitment from the signed token, never an echoed value — Verify
// itself has no token to consult).
func Verify(ctx context.Context, recordCommitment group.Point, p proof.PartitionProof) (VerifyResult, error) {
	if !group.IsOnCurve(recordCommitment) && !recordCommitment.IsIdentity() {
		return VerifyResult{}, fmt.Errorf("%w: record commitment not on curve", ErrMalformed)
	}

	cf := commitment.RecomputeFromOpenings(p.Openings)
	valid := commitment.VerifyPartition(recordCommitment, p.HiddenCommitment, cf)

	return VerifyResult{Valid: valid, RecomputedVisible: cf}, nil
}

// VerifyAgainstPolicy runs Verify and additionally enforces that the set
// of names disclosed by the proof's openings equals the policy's
// visible set. A server or delegate that skips this check would accept
// a proof omitting a visible opening or smuggling in an extra one, as
// long as the partition equation still happened to balance.
func VerifyAgainstPolicy(ctx context.Context, recordCommitment group.Point, p proof.PartitionProof, visibleNames []string) (VerifyResult, error) {
	result, err := Verify(ctx, recordCommitment, p)
	if err != nil {
		return VerifyResult{}, err
	}

	want := make(map[string]struct{}, len(visibleNames))
	for _, n := range visibleNames {
		want[n] = struct{}{}
	}
	got := p.VisibleNames()
	if len(want) != len(got) {
		return VerifyResult{Valid: false, RecomputedVisible: result.RecomputedVisible}, nil
	}
	for n := range want {
		if _, ok := got[n]; !ok {
			return VerifyResult{Valid: false, RecomputedVisible: result.RecomputedVisible}, nil
		}
	}

	return result, nil
}
