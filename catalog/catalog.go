// Package catalog holds the named policies a delegation token can be
// issued against. Policy authoring and storage are out of scope for the
// commitment engine; this package is the in-memory stand-in a real
// deployment would back with a policy administration service.
package catalog

import "github.com/vsdl-gov/delegation-engine/policy"

// Catalog is a read-mostly lookup of policies by id. It is safe for
// concurrent reads; policies are seeded once at construction and never
// mutated afterward, so no locking is needed (unlike server.State's
// token map, which is actively written during request handling).
type Catalog struct {
	policies map[string]policy.Policy
}

// New builds a Catalog from the given policies, keyed by their ID.
func New(policies ...policy.Policy) *Catalog {
	c := &Catalog{policies: make(map[string]policy.Policy, len(policies))}
	for _, p := range policies {
		c.policies[p.ID] = p
	}
	return c
}

// Lookup returns the policy with the given id, or ok=false if unknown.
func (c *Catalog) Lookup(id string) (policy.Policy, bool) {
	p, ok := c.policies[id]
	return p, ok
}

// List returns every policy in the catalog, in no particular order.
func (c *Catalog) List() []policy.Policy {
	out := make([]policy.Policy, 0, len(c.policies))
	for _, p := range c.policies {
		out = append(out, p)
	}
	return out
}

// Reference builds the four-policy catalog used by this service's
// end-to-end tests and default deployment. The ten-field citizen-001
// record itself lives in package recordstore; the policies below
// partition it four different ways, each covering all ten fields
// exactly.
func Reference() *Catalog {
	return New(
		policy.Policy{
			ID:      "id-renewal",
			Visible: []string{"name", "nationalId", "dateOfBirth", "address"},
			Hidden:  []string{"phoneNumber", "email", "maritalStatus", "occupation", "emergencyContact", "bloodType"},
			Actions: []string{"view"},
		},
		policy.Policy{
			ID:      "tax-filing",
			Visible: []string{"name", "nationalId", "address", "occupation"},
			Hidden:  []string{"dateOfBirth", "phoneNumber", "email", "maritalStatus", "emergencyContact", "bloodType"},
			Actions: []string{"view", "download"},
		},
		policy.Policy{
			ID:      "medical-proxy",
			Visible: []string{"name", "dateOfBirth", "bloodType", "emergencyContact"},
			Hidden:  []string{"nationalId", "address", "phoneNumber", "email", "maritalStatus", "occupation"},
			Actions: []string{"view"},
		},
		policy.Policy{
			ID: "full-disclosure",
			Visible: []string{
				"name", "nationalId", "dateOfBirth", "address", "phoneNumber",
				"email", "maritalStatus", "occupation", "emergencyContact", "bloodType",
			},
			Hidden:  []string{},
			Actions: []string{"view", "download", "audit"},
		},
	)
}
