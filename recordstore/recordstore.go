// Package recordstore is the in-memory stand-in for the citizen-record
// storage system this service treats as an external collaborator. It
// holds records under a record id, unmutated for the lifetime of the
// process.
package recordstore

import "github.com/vsdl-gov/delegation-engine/commitment"

// Store is a read-mostly lookup of records by id.
type Store struct {
	records map[string]commitment.Record
}

// New builds a Store from the given id-to-record pairs.
func New(records map[string]commitment.Record) *Store {
	s := &Store{records: make(map[string]commitment.Record, len(records))}
	for id, r := range records {
		s.records[id] = r
	}
	return s
}

// Lookup returns the record stored under id, or ok=false if unknown.
func (s *Store) Lookup(id string) (commitment.Record, bool) {
	r, ok := s.records[id]
	return r, ok
}

// Reference builds the single-citizen store used by this service's
// end-to-end tests and default deployment: the ten-field "citizen-001"
// record.
func Reference() *Store {
	return New(map[string]commitment.Record{
		"citizen-001": commitment.NewRecord(
			[2]string{"name", "Alex Rivera"},
			[2]string{"nationalId", "N-0012345"},
			[2]string{"dateOfBirth", "1990-04-12"},
			[2]string{"address", "12 Canal St, Riverside"},
			[2]string{"phoneNumber", "+1-555-0100"},
			[2]string{"email", "alex.rivera@example.org"},
			[2]string{"maritalStatus", "single"},
			[2]string{"occupation", "civil engineer"},
			[2]string{"emergencyContact", "Sam Rivera, +1-555-0101"},
			[2]string{"bloodType", "O+"},
		),
	})
}
