package commitment

import (
	"crypto/rand"
	"testing"

	"github.com/vsdl-gov/delegation-engine/group"
	"github.com/vsdl-gov/delegation-engine/proof"
)

func referenceRecord() Record {
	return NewRecord(
		[2]string{"name", "Alex Rivera"},
		[2]string{"nationalId", "N-0012345"},
		[2]string{"dateOfBirth", "1990-04-12"},
		[2]string{"address", "12 Canal St"},
		[2]string{"phoneNumber", "+1-555-0100"},
		[2]string{"email", "alex@example.org"},
		[2]string{"maritalStatus", "single"},
		[2]string{"occupation", "engineer"},
		[2]string{"emergencyContact", "Sam Rivera"},
		[2]string{"bloodType", "O+"},
	)
}

func TestCommitFieldReproducible(t *testing.T) {
	fc, err := CommitField("name", "Alex Rivera", nil, rand.Reader)
	if err != nil {
		t.Fatalf("CommitField failed: %v", err)
	}
	if !fc.Reproduces() {
		t.Fatalf("commitment does not reproduce from its own (name, value, r)")
	}
}

func TestCommitRecordHomomorphism(t *testing.T) {
	record := referenceRecord()
	cd, fcs, err := CommitRecord(record, rand.Reader)
	if err != nil {
		t.Fatalf("CommitRecord failed: %v", err)
	}

	visible := []string{"name", "nationalId", "dateOfBirth", "address"}
	hidden := []string{"phoneNumber", "email", "maritalStatus", "occupation", "emergencyContact", "bloodType"}

	cv := SubsetCommitment(fcs, visible)
	ch := SubsetCommitment(fcs, hidden)

	sum := group.Add(cv, ch)
	if !group.Eq(sum, cd) {
		t.Fatalf("subset_commitment(V) + subset_commitment(H) != C_D")
	}
}

func TestCommitRecordEqualsSumOfFieldCommitments(t *testing.T) {
	record := referenceRecord()
	cd, fcs, err := CommitRecord(record, rand.Reader)
	if err != nil {
		t.Fatalf("CommitRecord failed: %v", err)
	}

	sum := group.Identity()
	for _, name := range record.Names {
		sum = group.Add(sum, fcs[name].C)
	}
	if !group.Eq(sum, cd) {
		t.Fatalf("C_D != sum of individual field commitments")
	}
}

func TestSubsetCommitmentSkipsUnknownNames(t *testing.T) {
	record := referenceRecord()
	_, fcs, err := CommitRecord(record, rand.Reader)
	if err != nil {
		t.Fatalf("CommitRecord failed: %v", err)
	}

	known := SubsetCommitment(fcs, []string{"name"})
	withUnknown := SubsetCommitment(fcs, []string{"name", "does-not-exist"})

	if !group.Eq(known, withUnknown) {
		t.Fatalf("unknown names should be skipped silently, not change the sum")
	}
}

func TestSubsetCommitmentEmptyIsIdentity(t *testing.T) {
	fcs := map[string]FieldCommitment{}
	sum := SubsetCommitment(fcs, nil)
	if !sum.IsIdentity() {
		t.Fatalf("empty subset commitment must be the group identity")
	}
}

func TestVerifyPartitionHonestDispense(t *testing.T) {
	record := referenceRecord()
	cd, fcs, err := CommitRecord(record, rand.Reader)
	if err != nil {
		t.Fatalf("CommitRecord failed: %v", err)
	}

	visible := []string{"name", "nationalId", "dateOfBirth", "address"}
	hidden := []string{"phoneNumber", "email", "maritalStatus", "occupation", "emergencyContact", "bloodType"}

	ch := SubsetCommitment(fcs, hidden)
	openings := make([]proof.Opening, 0, len(visible))
	for _, name := range visible {
		fc := fcs[name]
		openings = append(openings, proof.Opening{Name: fc.Name, Value: fc.Value, R: fc.R})
	}

	cf := RecomputeFromOpenings(openings)
	if !VerifyPartition(cd, ch, cf) {
		t.Fatalf("honest dispense must verify")
	}
}

func TestVerifyPartitionRejectsTamperedValue(t *testing.T) {
	record := referenceRecord()
	cd, fcs, err := CommitRecord(record, rand.Reader)
	if err != nil {
		t.Fatalf("CommitRecord failed: %v", err)
	}

	visible := []string{"name", "nationalId", "dateOfBirth", "address"}
	hidden := []string{"phoneNumber", "email", "maritalStatus", "occupation", "emergencyContact", "bloodType"}
	ch := SubsetCommitment(fcs, hidden)

	openings := make([]proof.Opening, 0, len(visible))
	for _, name := range visible {
		fc := fcs[name]
		value := fc.Value
		if name == "address" {
			value = "Elsewhere"
		}
		openings = append(openings, proof.Opening{Name: fc.Name, Value: value, R: fc.R})
	}

	cf := RecomputeFromOpenings(openings)
	if VerifyPartition(cd, ch, cf) {
		t.Fatalf("tampered value must not verify")
	}
}

func TestVerifyPartitionRejectsWrongRandomness(t *testing.T) {
	record := referenceRecord()
	cd, fcs, err := CommitRecord(record, rand.Reader)
	if err != nil {
		t.Fatalf("CommitRecord failed: %v", err)
	}

	visible := []string{"name", "nationalId", "dateOfBirth", "address"}
	hidden := []string{"phoneNumber", "email", "maritalStatus", "occupation", "emergencyContact", "bloodType"}
	ch := SubsetCommitment(fcs, hidden)

	openings := make([]proof.Opening, 0, len(visible))
	for _, name := range visible {
		fc := fcs[name]
		r := fc.R
		if name == "nationalId" {
			r = group.MustRandomScalar()
		}
		openings = append(openings, proof.Opening{Name: fc.Name, Value: fc.Value, R: r})
	}

	cf := RecomputeFromOpenings(openings)
	if VerifyPartition(cd, ch, cf) {
		t.Fatalf("substituted randomness must not verify")
	}
}

func TestEmptyRecordCommitmentIsIdentity(t *testing.T) {
	cd, fcs, err := CommitRecord(Record{Values: map[string]string{}}, rand.Reader)
	if err != nil {
		t.Fatalf("CommitRecord failed: %v", err)
	}
	if !cd.IsIdentity() {
		t.Fatalf("empty record must commit to the identity")
	}
	if len(fcs) != 0 {
		t.Fatalf("empty record must produce no field commitments")
	}

	proofForEmpty := RecomputeFromOpenings(nil)
	if !VerifyPartition(cd, group.Identity(), proofForEmpty) {
		t.Fatalf("empty proof over empty record must verify")
	}
}

func TestSingleVisibleFieldRecord(t *testing.T) {
	record := NewRecord([2]string{"onlyField", "onlyValue"})
	cd, fcs, err := CommitRecord(record, rand.Reader)
	if err != nil {
		t.Fatalf("CommitRecord failed: %v", err)
	}

	ch := SubsetCommitment(fcs, nil)
	if !ch.IsIdentity() {
		t.Fatalf("hidden commitment with no hidden fields must be the identity")
	}

	fc := fcs["onlyField"]
	openings := []proof.Opening{{Name: fc.Name, Value: fc.Value, R: fc.R}}
	cf := RecomputeFromOpenings(openings)
	if !VerifyPartition(cd, ch, cf) {
		t.Fatalf("single-field record must verify with one opening")
	}
}

func TestFieldValueContainingSeparatorDoesNotCollide(t *testing.T) {
	// Under a literal "name || value" encoding these two pairs would
	// hash identically; the length-prefixed encoding must distinguish
	// them.
	a, err := CommitField("a", "b||c", nil, rand.Reader)
	if err != nil {
		t.Fatalf("CommitField failed: %v", err)
	}
	b, err := CommitField("a||b", "c", nil, rand.Reader)
	if err != nil {
		t.Fatalf("CommitField failed: %v", err)
	}

	mA := group.HashToScalar(fieldDST, encodeFieldInput(a.Name, a.Value))
	mB := group.HashToScalar(fieldDST, encodeFieldInput(b.Name, b.Value))
	if mA.BigInt().Cmp(mB.BigInt()) == 0 {
		t.Fatalf("length-prefixed encoding must not collide on separator-ambiguous inputs")
	}
}
