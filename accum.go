package xxh3

import "encoding/binary"

// long-input layout constants
const (
	stripeLen = 64
	accNB     = 8

	// the secret offset advances this many bytes per stripe
	secretConsumeRate = 8

	// fixed secret offsets of the last stripe and the lane merge,
	// measured back from (or forward into) the usable secret region
	secretLastAccStart   = 7
	secretMergeAccsStart = 11
)

// accInit holds the lane start values for any long-input computation.
var accInit = [accNB]uint64{
	prime32_3, prime64_1, prime64_2, prime64_3,
	prime64_4, prime32_2, prime64_5, prime32_1,
}

// accumulate512 folds one 64-byte stripe into the lanes. Each lane mixes its
// keyed input word multiplicatively into itself while the raw word feeds the
// neighboring lane, which is what keeps lanes from cancelling pairwise.
func accumulate512(acc *[accNB]uint64, b []byte, key []byte) {
	for i := 0; i < accNB; i++ {
		dataVal := binary.LittleEndian.Uint64(b[8*i:])
		dataKey := dataVal ^ binary.LittleEndian.Uint64(key[8*i:])
		acc[i^1] += dataVal
		acc[i] += uint64(uint32(dataKey)) * (dataKey >> 32)
	}
}

// accumulate folds nbStripes consecutive stripes, advancing the secret
// offset by secretConsumeRate per stripe.
func accumulate(acc *[accNB]uint64, b []byte, key []byte, nbStripes int) {
	for i := 0; i < nbStripes; i++ {
		accumulate512(acc, b[i*stripeLen:], key[i*secretConsumeRate:])
	}
}

// scramble re-mixes the lanes against the tail of the secret. Applied once
// per block so long runs of structured input cannot cancel linearly.
func scramble(acc *[accNB]uint64, key []byte) {
	for i := 0; i < accNB; i++ {
		k := binary.LittleEndian.Uint64(key[8*i:])
		a := acc[i]
		a ^= a >> 47
		a ^= k
		a *= prime32_1
		acc[i] = a
	}
}

// mix2Accs converges one lane pair against 16 bytes of secret.
func mix2Accs(lo, hi uint64, key []byte) uint64 {
	return mulFold64(
		lo^binary.LittleEndian.Uint64(key),
		hi^binary.LittleEndian.Uint64(key[8:]),
	)
}

// mergeAccs converges the eight lanes into one 64-bit value, seeds it with
// start (the total length times prime64_1), and avalanches.
func mergeAccs(acc *[accNB]uint64, key []byte, start uint64) uint64 {
	result := start
	for i := 0; i < 4; i++ {
		result += mix2Accs(acc[2*i], acc[2*i+1], key[16*i:])
	}
	return avalanche(result)
}

// hashLong is the >240-byte path: full blocks of stripes with a scramble
// after each, the leftover full stripes of the last block, then the final
// (possibly overlapping) stripe keyed near the secret's end. The block size
// scales with the secret length, so caller-supplied secrets longer than the
// default simply consume more stripes per scramble.
func hashLong(b []byte, key []byte) uint64 {
	n := len(b)
	secretLimit := len(key) - stripeLen
	stripesPerBlock := secretLimit / secretConsumeRate
	blockLen := stripeLen * stripesPerBlock

	acc := accInit
	nbBlocks := (n - 1) / blockLen
	for blk := 0; blk < nbBlocks; blk++ {
		accumulate(&acc, b[blk*blockLen:], key, stripesPerBlock)
		scramble(&acc, key[secretLimit:])
	}

	nbStripes := (n - 1 - blockLen*nbBlocks) / stripeLen
	accumulate(&acc, b[nbBlocks*blockLen:], key, nbStripes)

	// last stripe: always the final 64 bytes, even when that overlaps
	// bytes already consumed above
	accumulate512(&acc, b[n-stripeLen:], key[secretLimit-secretLastAccStart:])

	return mergeAccs(&acc, key[secretMergeAccsStart:], uint64(n)*prime64_1)
}

// consumeStripes is the streaming counterpart of the block loop in hashLong:
// it tracks how far into the current block the stream is and scrambles when
// a block boundary is crossed. stripesSoFar stays < stripesPerBlock.
func consumeStripes(acc *[accNB]uint64, stripesSoFar *int, stripesPerBlock int, b []byte, nbStripes int, key []byte, secretLimit int) {
	so := *stripesSoFar
	if so+nbStripes >= stripesPerBlock {
		stripesToEnd := stripesPerBlock - so
		accumulate(acc, b, key[secretConsumeRate*so:], stripesToEnd)
		scramble(acc, key[secretLimit:])
		accumulate(acc, b[stripesToEnd*stripeLen:], key, nbStripes-stripesToEnd)
		*stripesSoFar = nbStripes - stripesToEnd
	} else {
		accumulate(acc, b, key[secretConsumeRate*so:], nbStripes)
		*stripesSoFar = so + nbStripes
	}
}
