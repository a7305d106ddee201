// Package token signs and verifies the compact delegation tokens handed
// to delegates, using HMAC-SHA256 via golang-jwt/jwt.
package token

import (
	"encoding/hex"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"github.com/vsdl-gov/delegation-engine/group"
)

// issuer is the fixed "iss" claim of every token this service signs.
const issuer = "vsdl-gov-portal"

// Claims is the delegation token's payload. It embeds jwt.RegisteredClaims
// for jti/sub/exp/iss handling and adds the policy this token
// authorizes, the full policy hash, the record commitment it is bound
// to, and the capability list it grants.
type Claims struct {
	jwt.RegisteredClaims
	PolicyID   string   `json:"policy"`
	PolicyHash string   `json:"policyHash"`
	Commitment string   `json:"commitment"`
	Actions    []string `json:"actions"`
}

// Sign builds and signs a token for the given claim values. tokenID
// becomes the "jti" claim and subjectFingerprint becomes the opaque
// "sub" claim, so a caller that passes a fingerprint rather than the
// record id keeps the record identity out of the token.
func Sign(
	secret []byte,
	tokenID string,
	subjectFingerprint string,
	policyID string,
	policyHash string,
	commitment group.Point,
	actions []string,
	expiry time.Time,
) (string, error) {
	claims := Claims{
		RegisteredClaims: jwt.RegisteredClaims{
			ID:        tokenID,
			Subject:   subjectFingerprint,
			Issuer:    issuer,
			ExpiresAt: jwt.NewNumericDate(expiry),
			IssuedAt:  jwt.NewNumericDate(time.Now()),
		},
		PolicyID:   policyID,
		PolicyHash: policyHash,
		Commitment: hex.EncodeToString(group.Encode(commitment)),
		Actions:    actions,
	}

	t := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := t.SignedString(secret)
	if err != nil {
		return "", fmt.Errorf("token: sign: %w", err)
	}
	return signed, nil
}

// Verify parses and validates tokenString, checking the HMAC signature,
// the "iss" claim, and expiry. Any failure is reported as a single
// generic error regardless of cause (bad signature, wrong issuer,
// expired) so the caller cannot use error content as an oracle — the
// underlying jwt error is wrapped, not discarded, so callers that want
// to log it for diagnostics still can.
func Verify(secret []byte, tokenString string) (Claims, error) {
	var claims Claims
	parsed, err := jwt.ParseWithClaims(
		tokenString,
		&claims,
		func(t *jwt.Token) (interface{}, error) { return secret, nil },
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithIssuer(issuer),
	)
	if err != nil {
		return Claims{}, fmt.Errorf("token: invalid: %w", err)
	}
	if !parsed.Valid {
		return Claims{}, fmt.Errorf("token: invalid")
	}
	return claims, nil
}

// CommitmentPoint decodes the "commitment" claim back into a group.Point.
func (c Claims) CommitmentPoint() (group.Point, error) {
	b, err := hex.DecodeString(c.Commitment)
	if err != nil {
		return group.Point{}, fmt.Errorf("token: commitment claim: %w", err)
	}
	return group.Decode(b)
}
