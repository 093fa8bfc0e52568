package codec

import (
	"testing"

	"github.com/stretchr/testify/require"
)

type record struct {
	kind    int
	fixed   [4]byte
	payload []byte
}

func (r *record) MarshalTo(t Target) {
	t.WriteInt(r.kind)
	t.WriteBytes(r.fixed[:])
	t.WriteLengthPrefixedBytes(r.payload)
}

func (r *record) UnmarshalFrom(s Source) *record {
	r.kind = s.ReadInt()
	s.ReadBytesInto(r.fixed[:])
	r.payload = s.ReadLengthPrefixedBytes()
	return r
}

func TestRecordEncoding(t *testing.T) {
	in := &record{7, [4]byte{1, 2, 3, 4}, []byte("hello")}
	data, err := Marshal(in)
	require.NoError(t, err)
	require.Equal(t, []byte{0, 0, 0, 7, 1, 2, 3, 4, 0, 0, 0, 5, 'h', 'e', 'l', 'l', 'o'}, data)

	out, err := Unmarshal(data, &record{})
	require.NoError(t, err)
	require.Equal(t, in, out)
}

func TestUnmarshalRejectsTrailingBytes(t *testing.T) {
	data, err := Marshal(&record{payload: []byte{}})
	require.NoError(t, err)

	_, err = Unmarshal(append(data, 0), &record{})
	require.ErrorContains(t, err, "1 bytes remaining")
}

func TestUnmarshalRecoversFromShortInput(t *testing.T) {
	data, err := Marshal(&record{payload: []byte("abc")})
	require.NoError(t, err)

	for i := 0; i < len(data); i++ {
		_, err := Unmarshal(data[:i], &record{})
		require.ErrorContains(t, err, "recovered panic while unmarshaling")
	}
}

func TestNegativeLengthPrefix(t *testing.T) {
	_, err := Unmarshal([]byte{0, 0, 0, 0, 0, 0, 0, 0, 0xFF, 0xFF, 0xFF, 0xFF}, &record{})
	require.ErrorContains(t, err, "negative length field")
}

func TestReadBytesReturnsCopy(t *testing.T) {
	data := []byte{1, 2, 3}
	s := &source{data}
	b := s.ReadBytes(2)
	b[0] = 9
	require.Equal(t, byte(1), data[0])
	require.Equal(t, 1, s.Available())
}

func TestWriteIntRange(t *testing.T) {
	_, err := Marshal(marshalFunc(func(tg Target) { tg.WriteInt(1 << 40) }))
	require.ErrorContains(t, err, "out of range of int32")
}

type marshalFunc func(Target)

func (f marshalFunc) MarshalTo(t Target) { f(t) }
