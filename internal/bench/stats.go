package bench

import (
	"fmt"
	"io"
	"math"
	"slices"

	"github.com/dustin/go-humanize"
)

// Stats summarizes the latency samples of one primitive, all values in nanoseconds. The standard deviation is the
// population standard deviation.
type Stats struct {
	Name       string
	Iterations int
	Total      uint64
	Average    float64
	Median     float64
	Min        uint64
	Max        uint64
	StdDev     float64

	latencies []uint64
}

func CalculateStats(name string, latencies []uint64) Stats {
	stats := Stats{Name: name, Iterations: len(latencies), latencies: latencies}
	if len(latencies) == 0 {
		return stats
	}

	for _, ns := range latencies {
		stats.Total += ns
	}
	stats.Average = float64(stats.Total) / float64(len(latencies))
	stats.Min = slices.Min(latencies)
	stats.Max = slices.Max(latencies)

	samples := make([]float64, len(latencies))
	for i, ns := range latencies {
		samples[i] = float64(ns)
	}
	stats.Median = median(samples)
	stats.StdDev = stdDev(samples, stats.Average)
	return stats
}

func (s Stats) Print(w io.Writer) {
	fmt.Fprintf(w, "\n=== %s Statistics ===\n", s.Name)
	fmt.Fprintf(w, "Iterations: %d\n", s.Iterations)
	fmt.Fprintf(w, "Total time: %d ns\n", s.Total)
	fmt.Fprintf(w, "Average: %.2f ns\n", s.Average)
	fmt.Fprintf(w, "Median: %.2f ns\n", s.Median)
	fmt.Fprintf(w, "Min: %d ns\n", s.Min)
	fmt.Fprintf(w, "Max: %d ns\n", s.Max)
	fmt.Fprintf(w, "Std Dev: %.2f ns\n", s.StdDev)
	fmt.Fprintln(w, "=========================================")
}

// Throughput summarizes per-sample throughput in bytes per second. Each latency sample is converted individually;
// a sample of 0 ns is counted as 1 ns.
type Throughput struct {
	Name              string
	BytesPerIteration int
	Iterations        int
	Average           float64
	Median            float64
	Min               float64
	Max               float64
	StdDev            float64
}

func CalculateThroughput(stats Stats, bytesPerIteration int) Throughput {
	t := Throughput{Name: stats.Name, BytesPerIteration: bytesPerIteration, Iterations: stats.Iterations}
	if len(stats.latencies) == 0 {
		return t
	}

	bps := make([]float64, len(stats.latencies))
	total := 0.0
	for i, ns := range stats.latencies {
		bps[i] = float64(bytesPerIteration) * 1e9 / float64(max(ns, 1))
		total += bps[i]
	}
	t.Average = total / float64(len(bps))
	t.Min = slices.Min(bps)
	t.Max = slices.Max(bps)
	t.Median = median(bps)
	t.StdDev = stdDev(bps, t.Average)
	return t
}

func (t Throughput) Print(w io.Writer) {
	fmt.Fprintf(w, "\n=== %s Throughput ===\n", t.Name)
	fmt.Fprintf(w, "Bytes/iteration: %d\n", t.BytesPerIteration)
	fmt.Fprintf(w, "Iterations: %s\n", humanize.Comma(int64(t.Iterations)))
	fmt.Fprintf(w, "Average: %.2f B/s (%s/s)\n", t.Average, humanize.Bytes(uint64(t.Average)))
	fmt.Fprintf(w, "Median:  %.2f B/s (%s/s)\n", t.Median, humanize.Bytes(uint64(t.Median)))
	fmt.Fprintf(w, "Min:     %.2f B/s (%s/s)\n", t.Min, humanize.Bytes(uint64(t.Min)))
	fmt.Fprintf(w, "Max:     %.2f B/s (%s/s)\n", t.Max, humanize.Bytes(uint64(t.Max)))
	fmt.Fprintf(w, "Std Dev: %.2f B/s\n", t.StdDev)
	fmt.Fprintln(w, "=========================================")
}

// Report prints latency statistics for every primitive in latencies, followed by throughput statistics for the
// primitives that process a known amount of data per iteration.
func Report(w io.Writer, latencies Latencies) {
	for _, name := range latencies.Names() {
		CalculateStats(name, latencies[name]).Print(w)
	}
	for _, name := range latencies.Names() {
		p, err := Lookup(name)
		if err != nil || p.BytesPerIteration == 0 {
			continue
		}
		CalculateThroughput(CalculateStats(name, latencies[name]), p.BytesPerIteration).Print(w)
	}
}

func median(samples []float64) float64 {
	sorted := slices.Clone(samples)
	slices.Sort(sorted)
	n := len(sorted)
	if n%2 == 0 {
		return (sorted[n/2-1] + sorted[n/2]) / 2
	}
	return sorted[n/2]
}

func stdDev(samples []float64, mean float64) float64 {
	variance := 0.0
	for _, v := range samples {
		variance += (v - mean) * (v - mean)
	}
	return math.Sqrt(variance / float64(len(samples)))
}
