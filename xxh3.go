package xxh3

import (
	"encoding/binary"
	"math/bits"
)

// XXH3 algorithm constants
const (
	prime32_1 = 0x9E3779B1
	prime32_2 = 0x85EBCA77
	prime32_3 = 0xC2B2AE3D

	prime64_1 = 0x9E3779B185EBCA87
	prime64_2 = 0xC2B2AE3D27D4EB4F
	prime64_3 = 0x165667B19E3779F9
	prime64_4 = 0x85EBCA77C2B2AE63
	prime64_5 = 0x27D4EB2F165667C5

	// multipliers of the XXH3 avalanche and the rrmxmx finalizer
	primeMX1 = 0x165667919E3779F9
	primeMX2 = 0x9FB21C651E98DF25

	// midSizeMax is the largest input handled by the mid-range path;
	// anything longer goes through stripe accumulation.
	midSizeMax = 240

	// mid-range secret offsets
	midSizeStartOffset = 3
	midSizeLastOffset  = 17
)

// Sum64 computes the 64-bit XXH3 digest of b with seed zero.
func Sum64(b []byte) uint64 {
	return Sum64Seed(b, 0)
}

// Sum64Seed computes the 64-bit XXH3 digest of b with the given seed.
// Every byte sequence, including the empty one, has a defined result.
func Sum64Seed(b []byte, seed uint64) uint64 {
	switch {
	case len(b) <= 16:
		return hash0to16(b, defaultSecret[:], seed)
	case len(b) <= 128:
		return hash17to128(b, defaultSecret[:], seed)
	case len(b) <= midSizeMax:
		return hash129to240(b, defaultSecret[:], seed)
	}
	if seed == 0 {
		return hashLong(b, defaultSecret[:])
	}
	return hashLong(b, DeriveSecret(seed).key)
}

// Sum64String computes the digest of s with seed zero.
func Sum64String(s string) uint64 {
	return Sum64Seed([]byte(s), 0)
}

// Sum64StringSeed computes the digest of s with the given seed.
func Sum64StringSeed(s string, seed uint64) uint64 {
	return Sum64Seed([]byte(s), seed)
}

// hash0to16 dispatches inputs of at most 16 bytes. Each sub-path keys the
// input against bitflip constants read from fixed secret offsets, so the
// buckets stay distinguishable even for equal byte content.
func hash0to16(b []byte, key []byte, seed uint64) uint64 {
	switch {
	case len(b) > 8:
		return hash9to16(b, key, seed)
	case len(b) >= 4:
		return hash4to8(b, key, seed)
	case len(b) > 0:
		return hash1to3(b, key, seed)
	}
	return avalanche64(seed ^ binary.LittleEndian.Uint64(key[56:]) ^ binary.LittleEndian.Uint64(key[64:]))
}

// hash1to3 packs the first, middle and last byte plus the length into one
// 32-bit word, so all three lengths use a single keyed mix.
func hash1to3(b []byte, key []byte, seed uint64) uint64 {
	c1 := b[0]
	c2 := b[len(b)>>1]
	c3 := b[len(b)-1]
	combined := uint32(c1)<<16 | uint32(c2)<<24 | uint32(c3) | uint32(len(b))<<8
	bitflip := uint64(binary.LittleEndian.Uint32(key)^binary.LittleEndian.Uint32(key[4:])) + seed
	return avalanche64(uint64(combined) ^ bitflip)
}

func hash4to8(b []byte, key []byte, seed uint64) uint64 {
	// The seed's low half is byte-swapped into its high half before use.
	seed ^= uint64(bits.ReverseBytes32(uint32(seed))) << 32
	in1 := binary.LittleEndian.Uint32(b)
	in2 := binary.LittleEndian.Uint32(b[len(b)-4:])
	bitflip := (binary.LittleEndian.Uint64(key[8:]) ^ binary.LittleEndian.Uint64(key[16:])) - seed
	in64 := uint64(in2) + uint64(in1)<<32
	return rrmxmx(in64^bitflip, uint64(len(b)))
}

func hash9to16(b []byte, key []byte, seed uint64) uint64 {
	bitflip1 := (binary.LittleEndian.Uint64(key[24:]) ^ binary.LittleEndian.Uint64(key[32:])) + seed
	bitflip2 := (binary.LittleEndian.Uint64(key[40:]) ^ binary.LittleEndian.Uint64(key[48:])) - seed
	lo := binary.LittleEndian.Uint64(b) ^ bitflip1
	hi := binary.LittleEndian.Uint64(b[len(b)-8:]) ^ bitflip2
	acc := uint64(len(b)) + bits.ReverseBytes64(lo) + hi + mulFold64(lo, hi)
	return avalanche(acc)
}
