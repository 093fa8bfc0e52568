package bench

import (
	"bytes"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func TestCSVRoundTrip(t *testing.T) {
	var buf bytes.Buffer
	w := NewCSVWriter(&buf)
	require.NoError(t, w.Write(Sample{"sha256", 0, 120 * time.Nanosecond}))
	require.NoError(t, w.Write(Sample{"aes128", 0, 300 * time.Nanosecond}))
	require.NoError(t, w.Write(Sample{"sha256", 1, 80 * time.Nanosecond}))
	require.NoError(t, w.Flush())

	require.Equal(t, "primitive,iteration,ns\nsha256,0,120\naes128,0,300\nsha256,1,80\n", buf.String())

	latencies, err := ReadCSV(&buf)
	require.NoError(t, err)
	require.Equal(t, Latencies{"sha256": {120, 80}, "aes128": {300}}, latencies)
	require.Equal(t, []string{"aes128", "sha256"}, latencies.Names())
}

func TestCSVHeaderOnly(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, NewCSVWriter(&buf).Flush())
	require.Equal(t, "primitive,iteration,ns\n", buf.String())

	latencies, err := ReadCSV(&buf)
	require.NoError(t, err)
	require.Empty(t, latencies)

	latencies, err = ReadCSV(strings.NewReader(""))
	require.NoError(t, err)
	require.Empty(t, latencies)
}

func TestReadCSVErrors(t *testing.T) {
	_, err := ReadCSV(strings.NewReader("primitive,iteration,ns\nsha256,0,abc\n"))
	require.ErrorContains(t, err, `line 2: invalid latency "abc"`)

	_, err = ReadCSV(strings.NewReader("primitive,iteration,ns\nsha256,0\n"))
	require.Error(t, err)

	_, err = ReadCSV(strings.NewReader("primitive,iteration,ns\nsha256,0,-5\n"))
	require.Error(t, err)
}
