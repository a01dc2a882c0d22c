package hmac

import (
	"bytes"
	"crypto/sha1" //nolint:gosec
	"crypto/sha256"
	"fmt"
	"hash"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/netwrx/stunice/internal/testutil"
)

type hmacTest struct {
	hash      func() hash.Hash
	key, in   []byte
	out       string
	size      int
	blocksize int
}

// hmacTests returns RFC 2202 / RFC 4231 HMAC-SHA1 and HMAC-SHA256 test
// vectors for the "Hi There" case under each algorithm.
func hmacTests() []hmacTest {
	key := bytes.Repeat([]byte{0x0b}, 20)
	in := []byte("Hi There")
	return []hmacTest{
		{
			hash:      sha1.New,
			key:       key,
			in:        in,
			out:       "b617318655057264e28bc0b6fb378c8ef146be00",
			size:      sha1.Size,
			blocksize: sha1.BlockSize,
		},
		{
			hash:      sha256.New,
			key:       key,
			in:        in,
			out:       "b0344c61d8db38535ca8afceaf0bf12b881dc200c9833da726e9376c2e32cff7",
			size:      sha256.Size,
			blocksize: sha256.BlockSize,
		},
	}
}

func assertHMACSize(h *hmac, size, blocksize int) {
	if h.Size() != size || h.BlockSize() != blocksize {
		panic(fmt.Sprintf("hmac size mismatch: got (%d,%d) want (%d,%d)", h.Size(), h.BlockSize(), size, blocksize))
	}
}

func TestHMACReset(t *testing.T) {
	for i, tt := range hmacTests() {
		hsh := New(tt.hash, make([]byte, tt.blocksize))
		hsh.resetTo(tt.key)
		assert.Equal(t, tt.size, hsh.Size(), "Size mismatch")
		assert.Equal(t, tt.blocksize, hsh.BlockSize(), "BlockSize mismatch")
		for j := 0; j < 2; j++ {
			n, err := hsh.Write(tt.in)
			assert.Equal(t, len(tt.in), n, "test %d.%d: Write(%d) = %d", i, j, len(tt.in), n)
			assert.NoError(t, err, "test %d.%d: Write error", i, j)

			for k := 0; k < 2; k++ {
				sum := fmt.Sprintf("%x", hsh.Sum(nil))
				assert.Equal(t, tt.out, sum, "test %d.%d.%d: have %s want %s", i, j, k, sum, tt.out)
			}
			hsh.Reset()
		}
	}
}

func TestHMACPool_SHA1(t *testing.T) {
	for i, tt := range hmacTests() {
		if tt.blocksize != sha1.BlockSize || tt.size != sha1.Size {
			continue
		}
		hsh := AcquireSHA1(tt.key)
		assert.Equal(t, tt.size, hsh.Size(), "Size mismatch")
		assert.Equal(t, tt.blocksize, hsh.BlockSize(), "BlockSize mismatch")
		for j := 0; j < 2; j++ {
			n, err := hsh.Write(tt.in)
			assert.Equal(t, len(tt.in), n, "test %d.%d: Write(%d) = %d", i, j, len(tt.in), n)
			assert.NoError(t, err, "test %d.%d: Write error", i, j)

			for k := 0; k < 2; k++ {
				sum := fmt.Sprintf("%x", hsh.Sum(nil))
				assert.Equal(t, tt.out, sum, "test %d.%d.%d: have %s want %s", i, j, k, sum, tt.out)
			}
			hsh.Reset()
		}
		PutSHA1(hsh)
	}
}

func TestHMACPool_SHA256(t *testing.T) {
	for i, tt := range hmacTests() {
		if tt.blocksize != sha256.BlockSize || tt.size != sha256.Size {
			continue
		}
		hsh := AcquireSHA256(tt.key)
		assert.Equal(t, tt.size, hsh.Size(), "Size mismatch")
		assert.Equal(t, tt.blocksize, hsh.BlockSize(), "BlockSize mismatch")
		for j := 0; j < 2; j++ {
			n, err := hsh.Write(tt.in)
			assert.Equal(t, len(tt.in), n, "test %d.%d: Write(%d) = %d", i, j, len(tt.in), n)
			assert.NoError(t, err, "test %d.%d: Write error", i, j)

			for k := 0; k < 2; k++ {
				sum := fmt.Sprintf("%x", hsh.Sum(nil))
				assert.Equal(t, tt.out, sum, "test %d.%d.%d: have %s want %s", i, j, k, sum, tt.out)
			}
			hsh.Reset()
		}
		PutSHA256(hsh)
	}
}

func TestAcquirePutRoundTrip(t *testing.T) {
	key := []byte("a reasonably long shared secret")
	h := AcquireSHA1(key)
	h.Write([]byte("payload")) //nolint:errcheck,gosec
	first := h.Sum(nil)
	PutSHA1(h)

	h2 := AcquireSHA1(key)
	h2.Write([]byte("payload")) //nolint:errcheck,gosec
	second := h2.Sum(nil)
	PutSHA1(h2)

	assert.Equal(t, first, second, "pooled HMAC must not leak state between acquisitions")
}

// TestAcquirePutDoesNotAllocate proves out the pool's reason for
// existing: a steady-state acquire/write/sum/put cycle on an
// already-warm pool must not allocate a fresh hash.Hash per call.
func TestAcquirePutDoesNotAllocate(t *testing.T) {
	key := []byte("a reasonably long shared secret")
	buf := []byte("payload")
	sumBuf := make([]byte, 0, sha1.Size)

	// Warm the pool so the first Acquire in ShouldNotAllocate's
	// AllocsPerRun loop doesn't pay for the initial New.
	warm := AcquireSHA1(key)
	PutSHA1(warm)

	testutil.ShouldNotAllocate(t, func() {
		h := AcquireSHA1(key)
		h.Write(buf) //nolint:errcheck,gosec
		h.Sum(sumBuf[:0])
		PutSHA1(h)
	})
}

func BenchmarkHMACSHA1_512(b *testing.B) {
	key := make([]byte, 32)
	buf := make([]byte, 512)
	b.ReportAllocs()
	h := AcquireSHA1(key)
	b.SetBytes(int64(len(buf)))
	for i := 0; i < b.N; i++ {
		h.Write(buf) //nolint:errcheck,gosec
		h.Reset()
		mac := h.Sum(nil)
		buf[0] = mac[0]
	}
}

func BenchmarkHMACSHA1_512_Pool(b *testing.B) {
	key := make([]byte, 32)
	buf := make([]byte, 512)
	tBuf := make([]byte, 0, 512)
	b.ReportAllocs()
	b.SetBytes(int64(len(buf)))
	for i := 0; i < b.N; i++ {
		h := AcquireSHA1(key)
		h.Write(buf) //nolint:errcheck,gosec
		h.Reset()
		mac := h.Sum(tBuf)
		buf[0] = mac[0]
		PutSHA1(h)
	}
}
