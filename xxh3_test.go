package xxh3

import (
	"fmt"
	"math/rand"
	"testing"

	"github.com/cespare/xxhash/v2"
	ref "github.com/zeebo/xxh3"
)

// bucket boundaries plus stripe/block multiples and their neighbors
var testLengths = []int{
	0, 1, 2, 3, 4, 7, 8, 9, 15, 16, 17, 31, 32, 33, 63, 64, 65,
	96, 97, 127, 128, 129, 160, 192, 193, 239, 240, 241, 255, 256, 257,
	511, 512, 513, 1000, 1023, 1024, 1025, 2047, 2048, 2049, 10000, 100001,
}

var testSeeds = []uint64{0, 1, 42, 0xDEADBEEF, 0x0123456789ABCDEF, ^uint64(0)}

// testBuf returns deterministic pseudo-random content so failures reproduce.
func testBuf(n int) []byte {
	b := make([]byte, n)
	r := rand.New(rand.NewSource(int64(n) + 1))
	r.Read(b)
	return b
}

// The empty input with seed zero has a fixed, documented value.
func TestEmptyInputReference(t *testing.T) {
	const want = 0x2d06800538d394c2
	if got := Sum64(nil); got != want {
		t.Errorf("Sum64(nil) = %#016x, want %#016x", got, want)
	}
	if got := Sum64([]byte{}); got != want {
		t.Errorf("Sum64([]byte{}) = %#016x, want %#016x", got, want)
	}
}

// Every length bucket and seed must match the reference implementation
// bit-for-bit.
func TestSum64AgainstReference(t *testing.T) {
	for _, n := range testLengths {
		b := testBuf(n)
		for _, seed := range testSeeds {
			want := ref.HashSeed(b, seed)
			if got := Sum64Seed(b, seed); got != want {
				t.Errorf("Sum64Seed(len=%d, seed=%#x) = %#016x, want %#016x", n, seed, got, want)
			}
		}
		if got, want := Sum64(b), ref.Hash(b); got != want {
			t.Errorf("Sum64(len=%d) = %#016x, want %#016x", n, got, want)
		}
	}
}

func TestSum64String(t *testing.T) {
	for _, s := range []string{"", "a", "hello, xxh3", string(testBuf(300))} {
		if got, want := Sum64String(s), Sum64([]byte(s)); got != want {
			t.Errorf("Sum64String(%q) = %#016x, want %#016x", s, got, want)
		}
		if got, want := Sum64StringSeed(s, 99), Sum64Seed([]byte(s), 99); got != want {
			t.Errorf("Sum64StringSeed(%q, 99) = %#016x, want %#016x", s, got, want)
		}
	}
}

func TestSum64Deterministic(t *testing.T) {
	for _, n := range []int{0, 5, 40, 200, 5000} {
		b := testBuf(n)
		first := Sum64Seed(b, 7)
		for i := 0; i < 10; i++ {
			if got := Sum64Seed(b, 7); got != first {
				t.Fatalf("len=%d: call %d returned %#016x, first call %#016x", n, i, got, first)
			}
		}
	}
}

func TestSeedSensitivity(t *testing.T) {
	b := testBuf(128)
	pairs := [][2]uint64{{0, 1}, {1, 2}, {42, 43}, {0, ^uint64(0)}, {0xCAFE, 0xBABE}}
	for _, p := range pairs {
		if Sum64Seed(b, p[0]) == Sum64Seed(b, p[1]) {
			t.Errorf("seeds %#x and %#x produced identical digests", p[0], p[1])
		}
	}
}

// A derived Secret must reproduce Sum64Seed for every bucket, since it is a
// precomputation hook and not a semantic variant.
func TestDeriveSecretEquivalence(t *testing.T) {
	for _, seed := range testSeeds {
		s := DeriveSecret(seed)
		for _, n := range testLengths {
			b := testBuf(n)
			if got, want := s.Sum64(b), Sum64Seed(b, seed); got != want {
				t.Errorf("Secret(seed=%#x).Sum64(len=%d) = %#016x, want %#016x", seed, n, got, want)
			}
		}
	}
}

func TestSecretFromBytes(t *testing.T) {
	// The default table as a caller-supplied secret must equal the
	// seed-zero hash on every path.
	s, err := SecretFromBytes(defaultSecret[:])
	if err != nil {
		t.Fatalf("SecretFromBytes(default) failed: %v", err)
	}
	for _, n := range testLengths {
		b := testBuf(n)
		if got, want := s.Sum64(b), Sum64(b); got != want {
			t.Errorf("custom default secret, len=%d: got %#016x, want %#016x", n, got, want)
		}
	}

	// A different secret must change the output.
	other := make([]byte, secretSize)
	copy(other, defaultSecret[:])
	other[0] ^= 0xFF
	s2, err := SecretFromBytes(other)
	if err != nil {
		t.Fatalf("SecretFromBytes failed: %v", err)
	}
	b := testBuf(50)
	if s2.Sum64(b) == Sum64(b) {
		t.Error("flipped secret produced the seed-zero digest")
	}

	// Oversized secrets are allowed; the block length scales with them.
	big := make([]byte, 300)
	r := rand.New(rand.NewSource(3))
	r.Read(big)
	s3, err := SecretFromBytes(big)
	if err != nil {
		t.Fatalf("SecretFromBytes(300 bytes) failed: %v", err)
	}
	long := testBuf(10000)
	d := NewSecret(s3)
	d.Write(long)
	if got, want := d.Sum64(), s3.Sum64(long); got != want {
		t.Errorf("oversized secret: streaming %#016x, one-shot %#016x", got, want)
	}
}

func TestSecretTooShort(t *testing.T) {
	if _, err := SecretFromBytes(make([]byte, SecretSizeMin-1)); err != ErrSecretTooShort {
		t.Errorf("got %v, want ErrSecretTooShort", err)
	}
	if _, err := SecretFromBytes(nil); err != ErrSecretTooShort {
		t.Errorf("got %v, want ErrSecretTooShort", err)
	}
}

// SecretFromBytes copies its input; mutating the caller's slice afterwards
// must not change digests.
func TestSecretCopiesKey(t *testing.T) {
	key := make([]byte, SecretSizeMin)
	r := rand.New(rand.NewSource(9))
	r.Read(key)
	s, err := SecretFromBytes(key)
	if err != nil {
		t.Fatal(err)
	}
	b := testBuf(77)
	before := s.Sum64(b)
	for i := range key {
		key[i] = 0
	}
	if got := s.Sum64(b); got != before {
		t.Errorf("digest changed after caller mutated key: %#016x != %#016x", got, before)
	}
}

func BenchmarkSum64(b *testing.B) {
	for _, n := range []int{4, 16, 100, 240, 1024, 64 * 1024, 1024 * 1024} {
		buf := testBuf(n)
		b.Run(fmt.Sprintf("len_%d", n), func(b *testing.B) {
			b.SetBytes(int64(n))
			for i := 0; i < b.N; i++ {
				_ = Sum64(buf)
			}
		})
	}
}

// Head-to-head with xxHash64 on the same inputs, as a throughput baseline.
func BenchmarkXXHash64Baseline(b *testing.B) {
	for _, n := range []int{4, 16, 100, 240, 1024, 64 * 1024, 1024 * 1024} {
		buf := testBuf(n)
		b.Run(fmt.Sprintf("len_%d", n), func(b *testing.B) {
			b.SetBytes(int64(n))
			for i := 0; i < b.N; i++ {
				_ = xxhash.Sum64(buf)
			}
		})
	}
}
