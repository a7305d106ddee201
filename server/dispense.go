package server

import (
	"context"
	"fmt"
	"time"

	"github.com/vsdl-gov/delegation-engine/commitment"
	"github.com/vsdl-gov/delegation-engine/proof"
	"github.com/vsdl-gov/delegation-engine/token"
)

// DispenseResult is what Dispense hands back to the delegate: the
// filtered record (visible fields only), the capabilities the policy
// grants, and the partition proof the delegate (or server.Verify) checks
// against the commitment bound into the token.
type DispenseResult struct {
	FilteredRecord map[string]string
	Actions        []string
	Proof          proof.PartitionProof
}

// Dispense verifies the token, requires the policy's visible/hidden
// sets to exactly cover the record, and builds the partition proof a
// delegate (or Verify) checks against the commitment bound into the
// token.
func (s *State) Dispense(ctx context.Context, tokenString string) (DispenseResult, error) {
	claims, err := token.Verify(s.secret, tokenString)
	if err != nil {
		s.log.Debug().Err(err).Msg("dispense: token verification failed")
		return DispenseResult{}, ErrInvalidToken
	}

	s.mu.RLock()
	st, ok := s.tokens[claims.ID]
	s.mu.RUnlock()
	if !ok {
		return DispenseResult{}, fmt.Errorf("%w: token %q", ErrNotFound, claims.ID)
	}

	if time.Now().After(st.expiresAt) {
		s.mu.Lock()
		delete(s.tokens, claims.ID)
		s.mu.Unlock()
		return DispenseResult{}, ErrInvalidToken
	}

	record, ok := s.records.Lookup(st.recordID)
	if !ok {
		return DispenseResult{}, fmt.Errorf("%w: record %q", ErrNotFound, st.recordID)
	}

	if !st.policy.Covers(record.Names) {
		return DispenseResult{}, fmt.Errorf("%w: policy %q over record %q", ErrPolicyRecordMismatch, st.policy.ID, st.recordID)
	}

	visible := intersect(st.policy.Visible, record.Names)
	hidden := intersect(st.policy.Hidden, record.Names)

	ch := commitment.SubsetCommitment(st.fieldCommitments, hidden)

	openings := make([]proof.Opening, 0, len(visible))
	filtered := make(map[string]string, len(visible))
	for _, name := range visible {
		fc := st.fieldCommitments[name]
		openings = append(openings, proof.Opening{Name: fc.Name, Value: fc.Value, R: fc.R})
		filtered[name] = fc.Value
	}

	// The proof is built against the commitment bound into the signed
	// token, never a value the caller supplied or the server could
	// substitute independently.
	tokenCommitment, err := claims.CommitmentPoint()
	if err != nil {
		return DispenseResult{}, fmt.Errorf("%w: %v", ErrMalformed, err)
	}

	result := DispenseResult{
		FilteredRecord: filtered,
		Actions:        st.policy.Actions,
		Proof: proof.PartitionProof{
			RecordCommitment: tokenCommitment,
			HiddenCommitment: ch,
			Openings:         openings,
			HiddenFieldCount: len(hidden),
		},
	}

	// No opening is ever constructed for a hidden field (only the sum
	// ch), so there is no hidden-field randomness buffer on this
	// response path left to zero.

	return result, nil
}

// intersect returns the names in policyNames that are also present in
// recordNames, preserving recordNames' order.
func intersect(policyNames []string, recordNames []string) []string {
	want := make(map[string]struct{}, len(policyNames))
	for _, n := range policyNames {
		want[n] = struct{}{}
	}
	out := make([]string, 0, len(recordNames))
	for _, n := range recordNames {
		if _, ok := want[n]; ok {
			out = append(out, n)
		}
	}
	return out
}
