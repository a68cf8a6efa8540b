package xxh3

import (
	"encoding/binary"
	"math/bits"
)

// mulFold64 multiplies a and b into a 128-bit product and folds the halves
// together. This is the workhorse mixing primitive of the mid and long paths.
func mulFold64(a, b uint64) uint64 {
	hi, lo := bits.Mul64(a, b)
	return lo ^ hi
}

// avalanche is the XXH3 finalizer: a short xorshift-multiply chain that
// spreads single-bit differences across all 64 output bits. Every code path
// ends here (or in one of the two variants below).
func avalanche(h uint64) uint64 {
	h ^= h >> 37
	h *= primeMX1
	h ^= h >> 32
	return h
}

// avalanche64 is the classic XXH64 finalizer, kept for the 0-byte and
// 1-to-3-byte paths which the algorithm defines in terms of it.
func avalanche64(h uint64) uint64 {
	h ^= h >> 33
	h *= prime64_2
	h ^= h >> 29
	h *= prime64_3
	h ^= h >> 32
	return h
}

// rrmxmx finalizes the 4-to-8-byte path. The input length is folded into the
// middle shift, so equal words at different lengths diverge.
func rrmxmx(h, n uint64) uint64 {
	h ^= bits.RotateLeft64(h, 49) ^ bits.RotateLeft64(h, 24)
	h *= primeMX2
	h ^= (h >> 35) + n
	h *= primeMX2
	h ^= h >> 28
	return h
}

// mix16B folds one 16-byte input group against a 16-byte secret group.
// The seed is added to the first secret word and subtracted from the second,
// which is how seeding reaches the mid-range path.
func mix16B(b []byte, key []byte, seed uint64) uint64 {
	lo := binary.LittleEndian.Uint64(b)
	hi := binary.LittleEndian.Uint64(b[8:])
	return mulFold64(
		lo^(binary.LittleEndian.Uint64(key)+seed),
		hi^(binary.LittleEndian.Uint64(key[8:])-seed),
	)
}

// hash17to128 mixes overlapping 16-byte groups from both ends inward. The
// group count depends on the length bucket (>32, >64, >96); the secret
// offsets per group are fixed by the algorithm.
func hash17to128(b []byte, key []byte, seed uint64) uint64 {
	n := len(b)
	acc := uint64(n) * prime64_1
	if n > 32 {
		if n > 64 {
			if n > 96 {
				acc += mix16B(b[48:], key[96:], seed)
				acc += mix16B(b[n-64:], key[112:], seed)
			}
			acc += mix16B(b[32:], key[64:], seed)
			acc += mix16B(b[n-48:], key[80:], seed)
		}
		acc += mix16B(b[16:], key[32:], seed)
		acc += mix16B(b[n-32:], key[48:], seed)
	}
	acc += mix16B(b, key, seed)
	acc += mix16B(b[n-16:], key[16:], seed)
	return avalanche(acc)
}

// hash129to240 runs eight fixed groups, avalanches the partial result, then
// continues with the remaining 16-byte groups at a 3-byte secret stagger and
// a final group keyed near the end of the minimum secret region.
func hash129to240(b []byte, key []byte, seed uint64) uint64 {
	n := len(b)
	acc := uint64(n) * prime64_1
	for i := 0; i < 8; i++ {
		acc += mix16B(b[16*i:], key[16*i:], seed)
	}
	acc = avalanche(acc)
	for i := 8; i < n/16; i++ {
		acc += mix16B(b[16*i:], key[16*(i-8)+midSizeStartOffset:], seed)
	}
	acc += mix16B(b[n-16:], key[SecretSizeMin-midSizeLastOffset:], seed)
	return avalanche(acc)
}
