package xxh3

import (
	"fmt"

	"github.com/fxamacker/cbor/v2"
)

// snapshotVersion is bumped whenever the session layout changes shape.
const snapshotVersion = 1

// digestSnapshot is the wire-friendly form of a streaming session. Unlike
// MarshalBinary's fixed layout it is self-describing, so snapshots can be
// stored alongside other CBOR state and inspected by generic tooling.
type digestSnapshot struct {
	Version int           `cbor:"v"`
	Seed    uint64        `cbor:"seed"`
	Secret  []byte        `cbor:"secret,omitempty"` // caller-supplied key, absent for seed-derived
	Acc     [accNB]uint64 `cbor:"acc"`
	Stripes int           `cbor:"stripes"`
	Total   uint64        `cbor:"total"`
	Residue int           `cbor:"residue"`
	Buf     []byte        `cbor:"buf"` // full buffer, tail bytes included
}

// Snapshot serializes the session so it can be persisted and resumed later
// (or on another machine) with RestoreSnapshot. The snapshot captures the
// exact mid-stream state: resuming and writing the remaining input yields
// the same digest as an uninterrupted session.
func (d *Digest) Snapshot() ([]byte, error) {
	snap := digestSnapshot{
		Version: snapshotVersion,
		Seed:    d.secret.seed,
		Acc:     d.acc,
		Stripes: d.stripes,
		Total:   d.total,
		Residue: d.n,
		Buf:     d.buf[:],
	}
	if d.secret.custom {
		snap.Secret = d.secret.key
	}
	out, err := cbor.Marshal(snap)
	if err != nil {
		return nil, fmt.Errorf("xxh3: snapshot encode: %w", err)
	}
	return out, nil
}

// RestoreSnapshot replaces the session's state with a snapshot produced by
// Snapshot. Any in-flight state is discarded, as with Reset.
func (d *Digest) RestoreSnapshot(data []byte) error {
	var snap digestSnapshot
	if err := cbor.Unmarshal(data, &snap); err != nil {
		return fmt.Errorf("%w: %v", ErrInvalidSnapshot, err)
	}
	if snap.Version != snapshotVersion {
		return fmt.Errorf("%w: got version %d", ErrSnapshotVersion, snap.Version)
	}
	if len(snap.Buf) != internalBufferSize {
		return fmt.Errorf("%w: bad buffer length %d", ErrInvalidSnapshot, len(snap.Buf))
	}

	var secret *Secret
	if snap.Secret != nil {
		var err error
		if secret, err = SecretFromBytes(snap.Secret); err != nil {
			return err
		}
	} else {
		secret = DeriveSecret(snap.Seed)
	}

	stripesPerBlock := (len(secret.key) - stripeLen) / secretConsumeRate
	if snap.Residue < 0 || snap.Residue > internalBufferSize ||
		snap.Stripes < 0 || snap.Stripes >= stripesPerBlock ||
		uint64(snap.Residue) > snap.Total {
		return fmt.Errorf("%w: inconsistent counters", ErrInvalidSnapshot)
	}

	d.secret = secret
	d.acc = snap.Acc
	d.stripes = snap.Stripes
	d.total = snap.Total
	d.n = snap.Residue
	copy(d.buf[:], snap.Buf)
	return nil
}
