package codec

import (
	"encoding/binary"
	"fmt"
)

// Internal representation for a source of bytes to be unmarshaled. The buffer slice is advanced during reading.
type source struct {
	buffer []byte
}

// Available returns the number of bytes that are still available for reading from the source.
func (s *source) Available() int {
	return len(s.buffer)
}

// ReadInt reads a 32-bit signed integer in big-endian byte order.
// It panics if not enough bytes are available in the source.
func (s *source) ReadInt() int {
	if len(s.buffer) < IntSize {
		panic(fmt.Sprintf("ReadInt called, %d bytes required, but only %d bytes available", IntSize, len(s.buffer)))
	}
	value := int(int32(binary.BigEndian.Uint32(s.buffer)))
	s.buffer = s.buffer[IntSize:]
	return value
}

// ReadBytes reads length bytes from the source, returning a copy.
// It panics if not enough bytes are available in the source.
func (s *source) ReadBytes(length int) []byte {
	if len(s.buffer) < length {
		panic(fmt.Sprintf("ReadBytes called with length %d, but only %d bytes available", length, len(s.buffer)))
	}
	value := make([]byte, length)
	s.ReadBytesInto(value)
	return value
}

// ReadBytesInto fills the provided buffer from the source.
// It panics if not enough bytes are available in the source.
func (s *source) ReadBytesInto(buffer []byte) {
	if len(s.buffer) < len(buffer) {
		panic(fmt.Sprintf("ReadBytesInto called with buffer length %d, but only %d bytes available", len(buffer), len(s.buffer)))
	}
	copy(buffer, s.buffer[:len(buffer)])
	s.buffer = s.buffer[len(buffer):]
}

// ReadLengthPrefixedBytes reads a byte slice prefixed with its length (see ReadInt).
// It panics if not enough bytes are available in the source or if the length is negative.
func (s *source) ReadLengthPrefixedBytes() []byte {
	length := s.ReadInt()
	if length < 0 {
		panic(fmt.Sprintf("ReadLengthPrefixedBytes call failed, negative length field %d", length))
	}
	return s.ReadBytes(length)
}
