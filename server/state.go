// Package server implements the three-operation orchestration layer —
// Issue, Dispense, Verify — holding the server's token state behind a
// single mutex, the way a round coordinator guards its commit and
// response maps.
package server

import (
	"context"
	"crypto/rand"
	"sync"
	"time"

	"github.com/rs/zerolog"

	"github.com/vsdl-gov/delegation-engine/catalog"
	"github.com/vsdl-gov/delegation-engine/commitment"
	"github.com/vsdl-gov/delegation-engine/group"
	"github.com/vsdl-gov/delegation-engine/policy"
	"github.com/vsdl-gov/delegation-engine/recordstore"
)

// tokenState is everything the server retains about one issued token.
// Were this ever backed by durable storage, its persisted schema would
// map onto these fields one-to-one.
type tokenState struct {
	recordID         string
	policy           policy.Policy
	fieldCommitments map[string]commitment.FieldCommitment
	recordCommitment group.Point
	createdAt        time.Time
	expiresAt        time.Time
}

// State is the server's process-owned view of the world: the HMAC
// secret it signs tokens with, its in-flight token map, the policy
// catalog, and the record store. Everything the server needs lives on
// this value and is passed in explicitly, rather than as package-level
// globals.
type State struct {
	secret []byte

	mu     sync.RWMutex
	tokens map[string]tokenState

	catalog *catalog.Catalog
	records *recordstore.Store

	log zerolog.Logger
}

// New builds a State with a freshly generated 256-bit signing secret.
// Key rotation is out of scope; the secret lives for the process
// lifetime.
func New(catalog *catalog.Catalog, records *recordstore.Store, log zerolog.Logger) (*State, error) {
	secret := make([]byte, 32)
	if _, err := rand.Read(secret); err != nil {
		return nil, ErrInternal
	}
	return &State{
		secret:  secret,
		tokens:  make(map[string]tokenState),
		catalog: catalog,
		records: records,
		log:     log,
	}, nil
}

// Catalog exposes the policy catalog for read-only diagnostic endpoints.
func (s *State) Catalog() *catalog.Catalog {
	return s.catalog
}

// SweepExpired removes every token entry whose expiry has passed. It is
// intended to run periodically from a background goroutine started by
// cmd/vsdld; Dispense also evicts opportunistically when it notices an
// expired entry, so this sweep is a hygiene backstop rather than the
// only path to eviction.
func (s *State) SweepExpired(now time.Time) int {
	s.mu.Lock()
	defer s.mu.Unlock()

	removed := 0
	for jti, st := range s.tokens {
		if now.After(st.expiresAt) {
			delete(s.tokens, jti)
			removed++
		}
	}
	return removed
}

// Run starts a ticker loop that calls SweepExpired until ctx is
// cancelled. Callers typically run this in its own goroutine.
func (s *State) Run(ctx context.Context, interval time.Duration) {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case now := <-ticker.C:
			if n := s.SweepExpired(now); n > 0 {
				s.log.Debug().Int("removed", n).Msg("swept expired delegation tokens")
			}
		}
	}
}
