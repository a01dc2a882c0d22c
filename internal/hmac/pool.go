// Package hmac provides a sync.Pool-backed HMAC implementation so the
// message codec can compute MESSAGE-INTEGRITY without allocating a new
// hash.Hash per message.
package hmac

import (
	"crypto/sha1"
	"crypto/sha256"
	"hash"
	"sync"
)

// hmac implements hash.Hash directly (rather than wrapping crypto/hmac.New,
// which allocates its own inner/outer state on every call) so resetTo can
// rekey an already-allocated instance pulled from a sync.Pool.
type hmac struct {
	size      int
	blocksize int

	inner, outer hash.Hash
	newHash      func() hash.Hash

	ipad, opad []byte
}

// New returns an *hmac ready for resetTo. newHash must return a fresh
// instance of the underlying hash function (sha1.New or sha256.New);
// len(padBuf) is taken as the block size and must match that function's.
func New(newHash func() hash.Hash, padBuf []byte) *hmac {
	h := &hmac{
		newHash:   newHash,
		inner:     newHash(),
		outer:     newHash(),
		blocksize: len(padBuf),
	}
	h.size = h.outer.Size()
	h.ipad = make([]byte, h.blocksize)
	h.opad = make([]byte, h.blocksize)
	return h
}

// setZeroes sets all bytes from b to zeroes.
//
// See https://github.com/golang/go/issues/5373
func setZeroes(b []byte) {
	for i := range b {
		b[i] = 0
	}
}

func (h *hmac) resetTo(key []byte) {
	h.outer.Reset()
	h.inner.Reset()
	setZeroes(h.ipad)
	setZeroes(h.opad)
	if len(key) > h.blocksize {
		// If key is too big, hash it.
		h.outer.Write(key) //nolint:errcheck
		key = h.outer.Sum(nil)
		h.outer.Reset()
	}
	copy(h.ipad, key)
	copy(h.opad, key)
	for i := range h.ipad {
		h.ipad[i] ^= 0x36
	}
	for i := range h.opad {
		h.opad[i] ^= 0x5c
	}
	h.inner.Write(h.ipad) //nolint:errcheck
}

// Write feeds message bytes into the inner hash.
func (h *hmac) Write(p []byte) (int, error) {
	return h.inner.Write(p)
}

// Sum appends the HMAC of the bytes written so far to b.
func (h *hmac) Sum(b []byte) []byte {
	origLen := len(b)
	b = h.inner.Sum(b)
	h.outer.Reset()
	h.outer.Write(h.opad)       //nolint:errcheck
	h.outer.Write(b[origLen:])  //nolint:errcheck
	return h.outer.Sum(b[:origLen])
}

// Reset restores the inner hash to the state right after the last resetTo,
// i.e. having already consumed ipad.
func (h *hmac) Reset() {
	h.inner.Reset()
	h.inner.Write(h.ipad) //nolint:errcheck
}

// Size returns the number of bytes Sum will append.
func (h *hmac) Size() int { return h.size }

// BlockSize returns the underlying hash function's block size.
func (h *hmac) BlockSize() int { return h.blocksize }

var hmacSHA1Pool = &sync.Pool{
	New: func() interface{} {
		return New(sha1.New, make([]byte, sha1.BlockSize))
	},
}

// AcquireSHA1 returns a rekeyed HMAC-SHA1 hash.Hash from the pool.
func AcquireSHA1(key []byte) hash.Hash {
	h, _ := hmacSHA1Pool.Get().(*hmac)
	h.resetTo(key)
	return h
}

// PutSHA1 returns h, which must have come from AcquireSHA1, to the pool.
func PutSHA1(h hash.Hash) {
	hm, ok := h.(*hmac)
	if !ok {
		return
	}
	hmacSHA1Pool.Put(hm)
}

var hmacSHA256Pool = &sync.Pool{
	New: func() interface{} {
		return New(sha256.New, make([]byte, sha256.BlockSize))
	},
}

// AcquireSHA256 returns a rekeyed HMAC-SHA256 hash.Hash from the pool.
func AcquireSHA256(key []byte) hash.Hash {
	h, _ := hmacSHA256Pool.Get().(*hmac)
	h.resetTo(key)
	return h
}

// PutSHA256 returns h, which must have come from AcquireSHA256, to the pool.
func PutSHA256(h hash.Hash) {
	hm, ok := h.(*hmac)
	if !ok {
		return
	}
	hmacSHA256Pool.Put(hm)
}
