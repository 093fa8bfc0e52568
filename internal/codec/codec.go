package codec

import "fmt"

// Binary codec used for exchanging key material and sealed boxes.
// Use codec.Marshal(...) and codec.Unmarshal(...) for marshaling and unmarshaling; both recover from panics raised by
// the (un)marshaling code of individual objects and return them as errors.

// IntSize is the size in bytes of an encoded integer (length prefixes included).
const IntSize = 4

type Marshaler interface {
	MarshalTo(target Target)
}

type Unmarshaler[T any] interface {
	UnmarshalFrom(source Source) T
}

type Codec[T any] interface {
	Marshaler
	Unmarshaler[T]
}

type Target = *target
type Source = *source

// Marshals the given (non-nil) object into a byte slice.
func Marshal(object Marshaler) ([]byte, error) {
	target := &target{}
	if err := target.Marshal(object); err != nil {
		return nil, err
	}
	return target.buffer, nil
}

// Unmarshal the given byte slice using the given unmarshaler. Panics during unmarshaling are recovered and returned
// as errors. All input bytes must be consumed, otherwise an error is returned.
func Unmarshal[T any](data []byte, unmarshaler Unmarshaler[T]) (result T, err error) {
	src := &source{data}
	result, err = UnmarshalFromSource(src, unmarshaler)
	if err != nil {
		return result, err
	}
	if src.Available() > 0 {
		var zero T
		return zero, fmt.Errorf("unmarshaling did not consume all bytes, %d bytes remaining", src.Available())
	}
	return result, nil
}

// Read the next object of type T from the given source using the provided unmarshaler. Panics during unmarshaling are
// recovered and returned as errors. Data remaining in the source afterwards is not considered an error.
func UnmarshalFromSource[T any](source Source, obj Unmarshaler[T]) (result T, err error) {
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("recovered panic while unmarshaling: %v", r)
		}
	}()
	return obj.UnmarshalFrom(source), nil
}

// Wrapper to read an object of type T from the given source using the provided unmarshaler.
func ReadObject[T any](s Source, u Unmarshaler[T]) T {
	return u.UnmarshalFrom(s)
}
