package codec

import (
	"encoding/binary"
	"fmt"
	"math"
)

type target struct {
	buffer []byte
}

func (t *target) Written() int {
	return len(t.buffer)
}

// Marshals the given object into this target. Panics raised while marshaling are recovered and returned as errors.
// To propagate the panic use target.Write(...) instead.
func (t *target) Marshal(object Marshaler) (err error) {
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("recovered panic during marshaling: %v", r)
		}
	}()

	t.Write(object)
	return nil
}

// Write the given (non-nil) object into this target.
func (t *target) Write(object Marshaler) {
	if object == nil {
		panic("Write called with nil object")
	}
	object.MarshalTo(t)
}

// WriteInt writes value as a 32-bit signed integer in big-endian byte order.
func (t *target) WriteInt(value int) {
	if value > math.MaxInt32 || value < math.MinInt32 {
		panic(fmt.Sprintf("WriteInt called with value %d, which is out of range of int32", value))
	}
	t.buffer = binary.BigEndian.AppendUint32(t.buffer, uint32(value))
}

func (t *target) WriteBytes(value []byte) {
	t.buffer = append(t.buffer, value...)
}

func (t *target) WriteLengthPrefixedBytes(value []byte) {
	t.WriteInt(len(value))
	t.WriteBytes(value)
}
