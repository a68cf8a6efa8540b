// Package xxh3 implements the 64-bit variant of the XXH3 hash as specified
// at https://xxhash.com, in pure scalar Go.
//
// XXH3 is a fast non-cryptographic hash. This package reproduces the
// reference algorithm bit-for-bit: the default secret table, the seeded
// secret derivation, the per-length mixing strategies and the streaming
// state machine all match the upstream specification, so digests are
// interchangeable with any conforming implementation.
//
// One-shot hashing:
//
//	h := xxh3.Sum64(data)
//	h = xxh3.Sum64Seed(data, seed)
//
// Streaming, for input that arrives in chunks:
//
//	d := xxh3.NewSeed(seed)
//	io.Copy(d, r)
//	h := d.Sum64()
//
// A Digest implements hash.Hash64. Writes may be fragmented arbitrarily; the
// result only depends on the concatenated bytes and the seed. For many
// computations with the same non-zero seed, derive the secret once:
//
//	s := xxh3.DeriveSecret(seed)
//	h1 := s.Sum64(a)
//	h2 := s.Sum64(b)
//
// Sum64 and DeriveSecret are pure functions and safe for concurrent use. A
// Digest holds mutable session state and is not; give each goroutine its
// own, or guard it externally.
package xxh3
