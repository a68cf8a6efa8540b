package xxh3

import "errors"

var (
	// ErrSecretTooShort is returned by SecretFromBytes when the supplied
	// key material is shorter than SecretSizeMin bytes.
	ErrSecretTooShort = errors.New("xxh3: secret shorter than minimum size")

	// ErrInvalidSnapshot is returned when restoring digest state that is
	// structurally broken (bad magic, truncated, or inconsistent fields).
	ErrInvalidSnapshot = errors.New("xxh3: invalid digest snapshot")

	// ErrSnapshotVersion is returned when a snapshot was produced by an
	// incompatible version of this package.
	ErrSnapshotVersion = errors.New("xxh3: unsupported snapshot version")
)
