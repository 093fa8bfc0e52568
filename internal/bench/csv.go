package bench

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"slices"
	"strconv"
)

var csvHeader = []string{"primitive", "iteration", "ns"}

// CSVWriter writes samples in the primitive,iteration,ns format.
type CSVWriter struct {
	w             *csv.Writer
	headerWritten bool
}

func NewCSVWriter(w io.Writer) *CSVWriter {
	return &CSVWriter{w: csv.NewWriter(w)}
}

func (c *CSVWriter) writeHeader() error {
	if c.headerWritten {
		return nil
	}
	c.headerWritten = true
	return c.w.Write(csvHeader)
}

func (c *CSVWriter) Write(s Sample) error {
	if err := c.writeHeader(); err != nil {
		return err
	}
	return c.w.Write([]string{s.Primitive, strconv.Itoa(s.Iteration), strconv.FormatInt(s.Latency.Nanoseconds(), 10)})
}

// Flush writes any buffered rows. The header is written even if no sample was recorded.
func (c *CSVWriter) Flush() error {
	if err := c.writeHeader(); err != nil {
		return err
	}
	c.w.Flush()
	return c.w.Error()
}

// Latencies maps a primitive name to its latency samples in nanoseconds, in file order.
type Latencies map[string][]uint64

// Names returns the primitive names in sorted order.
func (l Latencies) Names() []string {
	names := make([]string, 0, len(l))
	for name := range l {
		names = append(names, name)
	}
	slices.Sort(names)
	return names
}

// ReadCSV reads a latency CSV, grouping the samples by primitive. The first line is the header and is skipped.
func ReadCSV(r io.Reader) (Latencies, error) {
	reader := csv.NewReader(r)
	reader.FieldsPerRecord = len(csvHeader)

	result := Latencies{}
	if _, err := reader.Read(); err != nil {
		if errors.Is(err, io.EOF) {
			return result, nil
		}
		return nil, fmt.Errorf("failed to read header: %w", err)
	}
	for {
		record, err := reader.Read()
		if errors.Is(err, io.EOF) {
			return result, nil
		}
		if err != nil {
			return nil, err
		}
		ns, err := strconv.ParseUint(record[2], 10, 64)
		if err != nil {
			line, _ := reader.FieldPos(2)
			return nil, fmt.Errorf("line %d: invalid latency %q: %w", line, record[2], err)
		}
		result[record[0]] = append(result[record[0]], ns)
	}
}
