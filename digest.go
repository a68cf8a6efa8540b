package xxh3

import "encoding/binary"

// internalBufferSize is the residual buffer of a Digest: four stripes, and
// comfortably above midSizeMax so small totals can be re-hashed from it.
const (
	internalBufferSize    = 256
	internalBufferStripes = internalBufferSize / stripeLen
)

// Digest is a streaming XXH3-64 computation. It implements hash.Hash64.
//
// Feeding a Digest any partitioning of an input through Write yields the
// same value Sum64 yields for the whole input with the same seed. A Digest
// is not safe for concurrent use; each goroutine needs its own, or external
// locking.
//
// The zero value is not ready for use. Construct one with New, NewSeed or
// NewSecret, or call Reset before the first Write.
type Digest struct {
	acc     [accNB]uint64
	secret  *Secret
	buf     [internalBufferSize]byte
	n       int // bytes buffered in buf
	stripes int // stripes consumed in the current block
	total   uint64
}

// New creates a Digest with seed zero.
func New() *Digest {
	return NewSeed(0)
}

// NewSeed creates a Digest with the given seed.
func NewSeed(seed uint64) *Digest {
	var d Digest
	d.ResetSeed(seed)
	return &d
}

// NewSecret creates a Digest bound to a prebuilt Secret. Useful when many
// sessions share one non-zero seed or a caller-supplied secret.
func NewSecret(s *Secret) *Digest {
	var d Digest
	d.resetSecret(s)
	return &d
}

// Reset discards all in-flight state and starts a new session with seed zero.
func (d *Digest) Reset() {
	d.ResetSeed(0)
}

// ResetSeed discards all in-flight state and starts a new session with the
// given seed. Callable at any point in a session's life.
func (d *Digest) ResetSeed(seed uint64) {
	if d.secret != nil && !d.secret.custom && d.secret.seed == seed {
		d.resetSecret(d.secret) // keep the derived table
		return
	}
	d.resetSecret(DeriveSecret(seed))
}

func (d *Digest) resetSecret(s *Secret) {
	d.acc = accInit
	d.secret = s
	d.n = 0
	d.stripes = 0
	d.total = 0
}

// Size returns the digest length in bytes.
func (d *Digest) Size() int { return 8 }

// BlockSize returns the stripe length.
func (d *Digest) BlockSize() int { return stripeLen }

// Write feeds p into the session. It always returns len(p), nil; chunks of
// any size, including empty, are fine.
func (d *Digest) Write(p []byte) (int, error) {
	n := len(p)
	d.total += uint64(n)

	if d.n+n <= internalBufferSize {
		copy(d.buf[d.n:], p)
		d.n += n
		return n, nil
	}

	key := d.secret.key
	secretLimit := len(key) - stripeLen
	stripesPerBlock := secretLimit / secretConsumeRate

	if d.n > 0 {
		// Top up and consume the whole buffer. Its tail bytes survive
		// below the new residue and serve as catch-up for Sum64.
		load := internalBufferSize - d.n
		copy(d.buf[d.n:], p[:load])
		p = p[load:]
		consumeStripes(&d.acc, &d.stripes, stripesPerBlock, d.buf[:], internalBufferStripes, key, secretLimit)
		d.n = 0
	}

	if len(p) > internalBufferSize {
		// Consume buffer-sized runs straight from the input, keeping
		// at least one byte so the last stripe always exists.
		q := p
		for len(q) > internalBufferSize {
			consumeStripes(&d.acc, &d.stripes, stripesPerBlock, q, internalBufferStripes, key, secretLimit)
			q = q[internalBufferSize:]
		}
		// Preserve the stripe just consumed for catch-up.
		copy(d.buf[internalBufferSize-stripeLen:], p[len(p)-len(q)-stripeLen:])
		p = q
	}

	copy(d.buf[:], p)
	d.n = len(p)
	return n, nil
}

// Sum64 returns the digest of everything written so far. It does not mutate
// the session: calling it repeatedly without intervening writes returns the
// same value, and a Reset (or ResetSeed) starts the next session.
func (d *Digest) Sum64() uint64 {
	if d.total > midSizeMax {
		return d.digestLong()
	}
	// Small totals never overflow the buffer, so the whole input is
	// still in buf and the cheaper short paths apply, exactly as in
	// one-shot mode.
	if d.secret.custom {
		return d.secret.Sum64(d.buf[:d.total])
	}
	return Sum64Seed(d.buf[:d.total], d.secret.seed)
}

// digestLong finishes the stripe-accumulation path on copies of the lane
// and block-position state, so the session itself stays readable.
func (d *Digest) digestLong() uint64 {
	acc := d.acc
	stripes := d.stripes
	key := d.secret.key
	secretLimit := len(key) - stripeLen
	stripesPerBlock := secretLimit / secretConsumeRate

	if d.n >= stripeLen {
		nbStripes := (d.n - 1) / stripeLen
		consumeStripes(&acc, &stripes, stripesPerBlock, d.buf[:], nbStripes, key, secretLimit)
		accumulate512(&acc, d.buf[d.n-stripeLen:], key[secretLimit-secretLastAccStart:])
	} else {
		// Fewer residual bytes than a stripe: borrow the tail of the
		// previously consumed bytes, which Write parked at the end of
		// the buffer.
		var lastStripe [stripeLen]byte
		catchup := stripeLen - d.n
		copy(lastStripe[:], d.buf[internalBufferSize-catchup:])
		copy(lastStripe[catchup:], d.buf[:d.n])
		accumulate512(&acc, lastStripe[:], key[secretLimit-secretLastAccStart:])
	}
	return mergeAccs(&acc, key[secretMergeAccsStart:], d.total*prime64_1)
}

// Sum appends the big-endian digest to b and returns the result.
func (d *Digest) Sum(b []byte) []byte {
	var out [8]byte
	binary.BigEndian.PutUint64(out[:], d.Sum64())
	return append(b, out[:]...)
}
