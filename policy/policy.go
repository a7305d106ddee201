// Package policy defines the named visible/hidden partitions a record
// owner authorizes, and the deterministic hash that binds a policy's
// shape into a delegation token.
package policy

import (
	"crypto/sha256"
	"encoding/json"
	"fmt"
	"sort"
)

// Policy names a partition of a record's fields into a visible set the
// delegate may see and a hidden set it may not, plus the capabilities
// the delegate is granted over the visible subset.
type Policy struct {
	ID      string
	Visible []string
	Hidden  []string
	Actions []string
}

// canonicalForm is the JSON shape hashed by Hash: sorted name lists so
// that policy authoring order never affects the resulting digest.
type canonicalForm struct {
	Visible []string `json:"visible"`
	Hidden  []string `json:"hidden"`
}

// Hash computes the full 64-hex-character SHA-256 digest of p's
// canonical JSON form. It is never truncated before being stored in a
// token: truncating a digest only shortens the token, it never helps
// correctness, and it weakens the binding between a token and the
// policy it names.
func Hash(p Policy) (string, error) {
	visible := append([]string(nil), p.Visible...)
	hidden := append([]string(nil), p.Hidden...)
	sort.Strings(visible)
	sort.Strings(hidden)

	canon, err := json.Marshal(canonicalForm{Visible: visible, Hidden: hidden})
	if err != nil {
		return "", fmt.Errorf("policy: canonicalize: %w", err)
	}

	sum := sha256.Sum256(canon)
	return fmt.Sprintf("%x", sum), nil
}

// Covers reports whether p's visible and hidden sets are disjoint and
// together cover exactly fieldNames — no more, no fewer. A policy that
// fails this check against a specific record is a PolicyRecordMismatch:
// the server must not silently tolerate a gap between a policy's field
// sets and a record's actual fields.
func (p Policy) Covers(fieldNames []string) bool {
	visible := toSet(p.Visible)
	hidden := toSet(p.Hidden)

	for name := range visible {
		if _, overlap := hidden[name]; overlap {
			return false
		}
	}

	fields := toSet(fieldNames)
	if len(visible)+len(hidden) != len(fields) {
		return false
	}
	for name := range fields {
		_, v := visible[name]
		_, h := hidden[name]
		if !v && !h {
			return false
		}
	}
	for name := range visible {
		if _, ok := fields[name]; !ok {
			return false
		}
	}
	for name := range hidden {
		if _, ok := fields[name]; !ok {
			return false
		}
	}
	return true
}

func toSet(names []string) map[string]struct{} {
	s := make(map[string]struct{}, len(names))
	for _, n := range names {
		s[n] = struct{}{}
	}
	return s
}
