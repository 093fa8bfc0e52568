package unsaferand

import (
	crand "crypto/rand"
	"encoding/binary"
	"fmt"
	"hash/fnv"
	"io"
	mrand "math/rand"
	"time"
)

// UnsafeRand is a test implementation of io.Reader based on math/rand.Rand, used to derive reproducible key
// material in tests and benchmarks. The generated sequence is not cryptographically secure. The underlying
// math/rand.Rand is not safe for concurrent use, use one instance per goroutine.
type UnsafeRand struct {
	*mrand.Rand
}

var _ io.Reader = &UnsafeRand{}

// Initializes a new UnsafeRand that produces a deterministic byte stream based on the given seed argument(s).
// Deterministic behavior depends on the fmt.Sprintf("%#v", seedArgs...) representation of the passed arguments.
func New(seedArgs ...any) *UnsafeRand {
	h := fnv.New64a()
	_, _ = fmt.Fprintf(h, "%#v", seedArgs)

	seed := int64(h.Sum64())
	return &UnsafeRand{mrand.New(mrand.NewSource(seed))}
}

// Initializes a new UnsafeRand that produces non-deterministic randomness.
func NewNondeterministic() *UnsafeRand {
	var b [8]byte
	if _, err := crand.Read(b[:]); err != nil {
		return &UnsafeRand{mrand.New(mrand.NewSource(time.Now().UnixNano()))}
	}
	seed := int64(binary.LittleEndian.Uint64(b[:]))
	return &UnsafeRand{mrand.New(mrand.NewSource(seed))}
}

// Bytes returns the next n bytes of the stream.
func (r *UnsafeRand) Bytes(n int) []byte {
	b := make([]byte, n)
	_, _ = r.Read(b) // rand.Read never returns an error
	return b
}

// Fill overwrites b with the next len(b) bytes of the stream.
func (r *UnsafeRand) Fill(b []byte) {
	_, _ = r.Read(b)
}
