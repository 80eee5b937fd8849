package instfmt

import (
	"fmt"

	"github.com/fxamacker/cbor/v2"
	"golang.org/x/crypto/blake2b"

	"github.com/opal-lang/tutti/core/catalog"
	"github.com/opal-lang/tutti/core/seating"
)

// SnapshotVersion is bumped whenever the snapshot layout changes.
const SnapshotVersion = 1

// Snapshot is the content of a seat list in canonical form. Seat ids and
// player references are identity, not content, and are left out.
type Snapshot struct {
	Version uint8
	Seats   []SnapshotSeat
}

// SnapshotSeat is one seat in canonical form.
type SnapshotSeat struct {
	Instrument int64
	Position   int
	Principal  bool
	Comment    string
	Doublings  []SnapshotDoubling // catalog order
}

// SnapshotDoubling is one doubling in canonical form.
type SnapshotDoubling struct {
	Instrument int64
	Separate   bool
}

// NewSnapshot builds the canonical form of seats. Seats and doublings
// naming instruments unknown to lookup are left out.
func NewSnapshot(seats []*seating.Seat, lookup catalog.Lookup) *Snapshot {
	sorted, _ := order(seats, lookup)
	snap := &Snapshot{Version: SnapshotVersion, Seats: make([]SnapshotSeat, len(sorted))}

	for i, p := range sorted {
		ss := SnapshotSeat{
			Instrument: p.inst.ID,
			Position:   p.seat.Position,
			Principal:  p.seat.Principal,
			Comment:    p.seat.Comment,
		}
		insts, _ := doublingOrder([]*seating.Seat{p.seat}, lookup, nil)
		for _, inst := range insts {
			ss.Doublings = append(ss.Doublings, SnapshotDoubling{
				Instrument: inst.ID,
				Separate:   separateFlag(p.seat, inst.ID),
			})
		}
		snap.Seats[i] = ss
	}
	return snap
}

func separateFlag(s *seating.Seat, instrumentID int64) bool {
	for _, d := range s.Doublings {
		if d.InstrumentID == instrumentID {
			return d.Separate
		}
	}
	return false
}

// MarshalBinary produces deterministic CBOR encoding of the snapshot.
func (s *Snapshot) MarshalBinary() ([]byte, error) {
	encMode, err := cbor.CanonicalEncOptions().EncMode()
	if err != nil {
		return nil, fmt.Errorf("failed to create CBOR encoder: %w", err)
	}

	// Alias drops the method set; encoding s directly would recurse.
	type snapshotAlias Snapshot
	data, err := encMode.Marshal((*snapshotAlias)(s))
	if err != nil {
		return nil, fmt.Errorf("CBOR encoding failed: %w", err)
	}
	return data, nil
}

// UnmarshalBinary decodes a snapshot produced by MarshalBinary.
func (s *Snapshot) UnmarshalBinary(data []byte) error {
	type snapshotAlias Snapshot
	var alias snapshotAlias
	if err := cbor.Unmarshal(data, &alias); err != nil {
		return fmt.Errorf("CBOR decoding failed: %w", err)
	}
	if alias.Version != SnapshotVersion {
		return fmt.Errorf("unsupported snapshot version %d", alias.Version)
	}
	*s = Snapshot(alias)
	return nil
}

// Digest returns the BLAKE2b-256 fingerprint of the snapshot:
// "blake2b:a3f8b2c1...".
func (s *Snapshot) Digest() (string, error) {
	data, err := s.MarshalBinary()
	if err != nil {
		return "", fmt.Errorf("failed to serialize snapshot for digest: %w", err)
	}
	sum := blake2b.Sum256(data)
	return fmt.Sprintf("blake2b:%x", sum), nil
}

// Digest fingerprints the content of seats.
func Digest(seats []*seating.Seat, lookup catalog.Lookup) (string, error) {
	return NewSnapshot(seats, lookup).Digest()
}
