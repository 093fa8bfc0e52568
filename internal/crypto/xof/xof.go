package xof

import (
	"crypto/sha3"
	"encoding/binary"
	"io"
)

// SHAKE256 based hash with an enforced domain separation tag and a unique encoding of its inputs. Used to derive the
// one-time pad, authentication key and nonce of sealed boxes from an ECDH shared secret.

var _ io.Reader = &XOF{}

type argType byte

const (
	_ argType = iota
	argTypeNil
	argTypeInt
	argTypeBytes
	argTypeString
)

type XOF struct {
	shake      *sha3.SHAKE
	readCalled bool
}

// New returns a XOF instance with the given domain separation tag already absorbed.
func New(dst string) *XOF {
	h := &XOF{shake: sha3.NewSHAKE256()}
	h.WriteString(dst)
	return h
}

func (h *XOF) absorb(t argType, data []byte) {
	if h.readCalled {
		panic("cannot write to XOF after Read")
	}
	_, _ = h.shake.Write([]byte{byte(t)})
	if data != nil {
		_, _ = h.shake.Write(binary.BigEndian.AppendUint64(nil, uint64(len(data))))
		_, _ = h.shake.Write(data)
	}
}

func (h *XOF) WriteInt(value int) {
	h.absorb(argTypeInt, binary.BigEndian.AppendUint64(nil, uint64(value)))
}

// WriteBytes absorbs data with its length. A nil slice is encoded differently from an empty one.
func (h *XOF) WriteBytes(data []byte) {
	if data == nil {
		h.absorb(argTypeNil, nil)
		return
	}
	h.absorb(argTypeBytes, data)
}

func (h *XOF) WriteString(str string) {
	h.absorb(argTypeString, []byte(str))
}

// Read squeezes output from the underlying SHAKE256 instance. Consecutive calls continue the stream.
// Calling any write function afterwards panics.
func (h *XOF) Read(out []byte) (n int, err error) {
	h.readCalled = true
	return h.shake.Read(out)
}
