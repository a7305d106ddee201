package token

import (
	"encoding/base64"
	"encoding/json"
	"strings"
	"testing"
	"time"

	"github.com/vsdl-gov/delegation-engine/group"
)

// tamperPolicyClaim rewrites the "policy" field inside a signed token's
// payload segment without re-signing it, simulating an attacker who
// captures a token and edits its claims in transit.
func tamperPolicyClaim(t *testing.T, tokenString string, newPolicy string) string {
	t.Helper()
	parts := strings.Split(tokenString, ".")
	if len(parts) != 3 {
		t.Fatalf("unexpected token shape: %d segments", len(parts))
	}

	payload, err := base64.RawURLEncoding.DecodeString(parts[1])
	if err != nil {
		t.Fatalf("decode payload: %v", err)
	}

	var generic map[string]interface{}
	if err := json.Unmarshal(payload, &generic); err != nil {
		t.Fatalf("unmarshal payload: %v", err)
	}
	generic["policy"] = newPolicy

	newPayload, err := json.Marshal(generic)
	if err != nil {
		t.Fatalf("marshal payload: %v", err)
	}

	parts[1] = base64.RawURLEncoding.EncodeToString(newPayload)
	return strings.Join(parts, ".")
}

func TestSignVerifyRoundTrip(t *testing.T) {
	secret := []byte("test-secret-0123456789")
	commitment := group.ScalarBaseMul(group.MustRandomScalar())

	signed, err := Sign(
		secret,
		"tok-1",
		"sub-fingerprint",
		"id-renewal",
		"deadbeef",
		commitment,
		[]string{"view"},
		time.Now().Add(time.Hour),
	)
	if err != nil {
		t.Fatalf("Sign failed: %v", err)
	}

	claims, err := Verify(secret, signed)
	if err != nil {
		t.Fatalf("Verify failed: %v", err)
	}
	if claims.ID != "tok-1" || claims.PolicyID != "id-renewal" {
		t.Fatalf("unexpected claims: %+v", claims)
	}

	got, err := claims.CommitmentPoint()
	if err != nil {
		t.Fatalf("CommitmentPoint failed: %v", err)
	}
	if !group.Eq(got, commitment) {
		t.Fatalf("round-tripped commitment does not match")
	}
}

func TestVerifyRejectsWrongSecret(t *testing.T) {
	commitment := group.ScalarBaseMul(group.MustRandomScalar())
	signed, err := Sign([]byte("secret-a"), "tok-1", "sub", "p", "h", commitment, nil, time.Now().Add(time.Hour))
	if err != nil {
		t.Fatalf("Sign failed: %v", err)
	}

	if _, err := Verify([]byte("secret-b"), signed); err == nil {
		t.Fatalf("expected verification with the wrong secret to fail")
	}
}

func TestVerifyRejectsExpiredToken(t *testing.T) {
	commitment := group.ScalarBaseMul(group.MustRandomScalar())
	secret := []byte("test-secret")
	signed, err := Sign(secret, "tok-1", "sub", "p", "h", commitment, nil, time.Now().Add(-time.Second))
	if err != nil {
		t.Fatalf("Sign failed: %v", err)
	}

	if _, err := Verify(secret, signed); err == nil {
		t.Fatalf("expected expired token to fail verification")
	}
}

func TestVerifyRejectsSubstitutedPolicyClaim(t *testing.T) {
	// A delegate captures a token for one policy and tries to alter the
	// "policy" claim to a different one without re-signing. The
	// signature must fail.
	commitment := group.ScalarBaseMul(group.MustRandomScalar())
	secret := []byte("test-secret")
	signed, err := Sign(secret, "tok-1", "sub", "tax-filing", "h", commitment, []string{"view"}, time.Now().Add(time.Hour))
	if err != nil {
		t.Fatalf("Sign failed: %v", err)
	}

	tampered := tamperPolicyClaim(t, signed, "medical-proxy")
	if _, err := Verify(secret, tampered); err == nil {
		t.Fatalf("expected tampered policy claim to fail signature verification")
	}
}
