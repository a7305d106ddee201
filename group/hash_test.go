package group

import (
	"math/big"
	"testing"
)

func TestDeriveHIsStable(t *testing.T) {
	a := deriveH()
	b := deriveH()
	if !Eq(a, b) {
		t.Fatalf("deriveH is not deterministic across calls")
	}
}

func TestLiftXSelfConsistent(t *testing.T) {
	// Whatever liftX decides for G's own x-coordinate, the y it returns
	// (if any) must satisfy the curve equation and match the known
	// generator up to sign.
	g := G()
	y, ok := liftX(g.X)
	if !ok {
		t.Fatalf("liftX(G.X) unexpectedly failed")
	}
	negY := new(big.Int).Sub(curve.P, y)
	if y.Cmp(g.Y) != 0 && negY.Cmp(g.Y) != 0 {
		t.Fatalf("liftX(G.X) returned a y inconsistent with the known generator")
	}
}
