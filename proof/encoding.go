package proof

import (
	"encoding/hex"
	"fmt"

	"github.com/vsdl-gov/delegation-engine/group"
)

// WireOpening is the JSON transport form of an Opening: the point math
// types are hex-encoded so the proof can cross an HTTP boundary.
type WireOpening struct {
	Name  string `json:"name"`
	Value string `json:"value"`
	R     string `json:"r"`
}

// WirePartitionProof is the JSON transport form of a PartitionProof.
type WirePartitionProof struct {
	RecordCommitment string        `json:"recordCommitment"`
	HiddenCommitment string        `json:"hiddenCommitment"`
	Openings         []WireOpening `json:"openings"`
	HiddenFieldCount int           `json:"hiddenFieldCount"`
}

// ToWire converts p to its JSON transport form.
func (p PartitionProof) ToWire() WirePartitionProof {
	wire := WirePartitionProof{
		RecordCommitment: hex.EncodeToString(group.Encode(p.RecordCommitment)),
		HiddenCommitment: hex.EncodeToString(group.Encode(p.HiddenCommitment)),
		Openings:         make([]WireOpening, len(p.Openings)),
		HiddenFieldCount: p.HiddenFieldCount,
	}
	for i, o := range p.Openings {
		wire.Openings[i] = WireOpening{
			Name:  o.Name,
			Value: o.Value,
			R:     hex.EncodeToString(o.R.Bytes()),
		}
	}
	return wire
}

// FromWire parses a WirePartitionProof back into a PartitionProof,
// failing with a wrapped error on any malformed hex or curve point —
// this is the Malformed failure case of the server's error taxonomy.
func FromWire(w WirePartitionProof) (PartitionProof, error) {
	cd, err := decodePoint(w.RecordCommitment)
	if err != nil {
		return PartitionProof{}, fmt.Errorf("proof: record commitment: %w", err)
	}
	ch, err := decodePoint(w.HiddenCommitment)
	if err != nil {
		return PartitionProof{}, fmt.Errorf("proof: hidden commitment: %w", err)
	}

	openings := make([]Opening, len(w.Openings))
	for i, wo := range w.Openings {
		rBytes, err := hex.DecodeString(wo.R)
		if err != nil {
			return PartitionProof{}, fmt.Errorf("proof: opening %d randomness: %w", i, err)
		}
		openings[i] = Opening{
			Name:  wo.Name,
			Value: wo.Value,
			R:     group.ScalarFromBytes(rBytes),
		}
	}

	return PartitionProof{
		RecordCommitment: cd,
		HiddenCommitment: ch,
		Openings:         openings,
		HiddenFieldCount: w.HiddenFieldCount,
	}, nil
}

func decodePoint(s string) (group.Point, error) {
	b, err := hex.DecodeString(s)
	if err != nil {
		return group.Point{}, err
	}
	return group.Decode(b)
}
