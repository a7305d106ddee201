package server

import "errors"

// Error kinds covering every failure the engine produces. Each is a
// sentinel checkable with errors.Is. A failed Verify is not one of
// these: it returns a normal false result, not an error.
var (
	// ErrNotFound covers an unknown record id or token jti.
	ErrNotFound = errors.New("server: not found")

	// ErrInvalidPolicy covers a policy id that does not resolve in the catalog.
	ErrInvalidPolicy = errors.New("server: invalid policy")

	// ErrInvalidToken covers a signature or expiry failure. The detailed
	// reason is logged, never returned, to avoid oracle behavior.
	ErrInvalidToken = errors.New("server: invalid token")

	// ErrMalformed covers an undecodable point or scalar in a proof.
	ErrMalformed = errors.New("server: malformed proof")

	// ErrPolicyRecordMismatch covers a policy whose visible/hidden sets do
	// not exactly cover a record's fields.
	ErrPolicyRecordMismatch = errors.New("server: policy does not cover record")

	// ErrInternal covers randomness-source failure and other faults that
	// are not the caller's doing.
	ErrInternal = errors.New("server: internal error")
)
