package server

import (
	"context"
	"crypto/rand"
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"time"

	"github.com/vsdl-gov/delegation-engine/commitment"
	"github.com/vsdl-gov/delegation-engine/group"
	"github.com/vsdl-gov/delegation-engine/policy"
	"github.com/vsdl-gov/delegation-engine/token"
)

// IssueResult is what Issue hands back to the owner: the signed token,
// its id and expiry, the delegation URL's token component, and the
// public cryptographic material worth displaying (the record commitment
// and the policy hash it is bound to).
type IssueResult struct {
	TokenID    string
	Token      string
	ExpiresAt  time.Time
	Commitment string
	PolicyHash string
}

// Issue looks up the record and policy, commits the record, hashes the
// policy, mints a token id, persists the server-side state, and signs
// a token binding all of it together.
func (s *State) Issue(ctx context.Context, recordID, policyID string, ttl time.Duration) (IssueResult, error) {
	record, ok := s.records.Lookup(recordID)
	if !ok {
		return IssueResult{}, fmt.Errorf("%w: record %q", ErrNotFound, recordID)
	}

	pol, ok := s.catalog.Lookup(policyID)
	if !ok {
		return IssueResult{}, fmt.Errorf("%w: policy %q", ErrInvalidPolicy, policyID)
	}

	if !pol.Covers(record.Names) {
		return IssueResult{}, fmt.Errorf("%w: policy %q over record %q", ErrPolicyRecordMismatch, policyID, recordID)
	}

	cd, fieldCommitments, err := commitment.CommitRecord(record, rand.Reader)
	if err != nil {
		return IssueResult{}, fmt.Errorf("%w: %v", ErrInternal, err)
	}

	policyHash, err := policy.Hash(pol)
	if err != nil {
		return IssueResult{}, fmt.Errorf("%w: %v", ErrInternal, err)
	}

	tokenID, err := randomHex(16)
	if err != nil {
		return IssueResult{}, fmt.Errorf("%w: %v", ErrInternal, err)
	}

	now := time.Now()
	expiresAt := now.Add(ttl)

	s.mu.Lock()
	s.tokens[tokenID] = tokenState{
		recordID:         recordID,
		policy:           pol,
		fieldCommitments: fieldCommitments,
		recordCommitment: cd,
		createdAt:        now,
		expiresAt:        expiresAt,
	}
	s.mu.Unlock()

	subjectFingerprint := subjectFingerprintFor(recordID)
	signed, err := token.Sign(
		s.secret,
		tokenID,
		subjectFingerprint,
		pol.ID,
		policyHash,
		cd,
		pol.Actions,
		expiresAt,
	)
	if err != nil {
		return IssueResult{}, fmt.Errorf("%w: %v", ErrInternal, err)
	}

	return IssueResult{
		TokenID:    tokenID,
		Token:      signed,
		ExpiresAt:  expiresAt,
		Commitment: hex.EncodeToString(group.Encode(cd)),
		PolicyHash: policyHash,
	}, nil
}

// subjectFingerprintFor derives the opaque "sub" claim from a record id:
// the first 16 hex characters of its sha256 digest, so a token names its
// subject without embedding the record id itself.
func subjectFingerprintFor(recordID string) string {
	sum := sha256.Sum256([]byte(recordID))
	return hex.EncodeToString(sum[:])[:16]
}

func randomHex(n int) (string, error) {
	b := make([]byte, n)
	if _, err := rand.Read(b); err != nil {
		return "", err
	}
	return hex.EncodeToString(b), nil
}
