package policy

import (
	"testing"

	"github.com/vsdl-gov/delegation-engine/internal/testutils"
)

func TestHashStableUnderReordering(t *testing.T) {
	a := Policy{ID: "x", Visible: []string{"b", "a"}, Hidden: []string{"d", "c"}}
	b := Policy{ID: "x", Visible: []string{"a", "b"}, Hidden: []string{"c", "d"}}

	ha, err := Hash(a)
	if err != nil {
		t.Fatalf("Hash failed: %v", err)
	}
	hb, err := Hash(b)
	if err != nil {
		t.Fatalf("Hash failed: %v", err)
	}
	testutils.AssertStringsEqual(t, "policy hash under field reordering", ha, hb)
	testutils.AssertIntsEqual(t, "policy hash digest length", 64, len(ha))
}

func TestHashDiffersOnDifferentPartition(t *testing.T) {
	a := Policy{Visible: []string{"a"}, Hidden: []string{"b"}}
	b := Policy{Visible: []string{"b"}, Hidden: []string{"a"}}

	ha, _ := Hash(a)
	hb, _ := Hash(b)
	if ha == hb {
		t.Fatalf("distinct partitions must hash differently")
	}
}

func TestCoversExactPartition(t *testing.T) {
	p := Policy{Visible: []string{"a", "b"}, Hidden: []string{"c"}}
	testutils.AssertBoolsEqual(t, "exact coverage", true, p.Covers([]string{"a", "b", "c"}))
}

func TestCoversRejectsGap(t *testing.T) {
	p := Policy{Visible: []string{"a"}, Hidden: []string{"b"}}
	testutils.AssertBoolsEqual(t, "coverage with an unassigned field", false, p.Covers([]string{"a", "b", "c"}))
}

func TestCoversRejectsOverlap(t *testing.T) {
	p := Policy{Visible: []string{"a", "b"}, Hidden: []string{"b"}}
	testutils.AssertBoolsEqual(t, "coverage with a visible/hidden overlap", false, p.Covers([]string{"a", "b"}))
}

func TestCoversRejectsExtraDeclaredField(t *testing.T) {
	p := Policy{Visible: []string{"a", "z"}, Hidden: []string{"b"}}
	testutils.AssertBoolsEqual(t, "coverage with a policy field absent from the record", false, p.Covers([]string{"a", "b"}))
}
