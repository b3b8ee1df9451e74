//Package stats implements single-pass, constant-memory moment estimates for
//profile averaging. An Accumulator keeps, for every column key, a running
//count, mean vector and sum of squared deviations, updated with Welford's
//online algorithm. Memory per key stays proportional to the number of bins,
//independent of how many observations arrive.
package stats

import (
	"fmt"
	"io"
	"math"
	"strings"

	"gonum.org/v1/gonum/floats"
)

type moments struct {
	n    float64
	mean []float64
	m2   []float64
}

// Accumulator holds the running moments for a set of column keys. Keys are
// created on first update and remembered in insertion order. The zero value
// is not usable; call New.
type Accumulator struct {
	keys []string
	data map[string]*moments
}

// New returns an empty Accumulator.
func New() *Accumulator {
	return &Accumulator{data: make(map[string]*moments)}
}

// Update folds one observation vector into the running moments for key,
// using Welford's update: the count grows by one, the mean moves by
// delta/count and the squared-deviation sum by delta*(x-mean'). This form
// avoids the catastrophic cancellation of a naive sum-of-squares.
//
// The first vector seen for a key fixes its bin count. A later vector of a
// different length is a length-mismatch: Update reports it as an error and
// leaves the key's state untouched, it never truncates or pads.
func (a *Accumulator) Update(key string, x []float64) error {
	m, ok := a.data[key]
	if !ok {
		m = &moments{
			mean: make([]float64, len(x)),
			m2:   make([]float64, len(x)),
		}
		a.data[key] = m
		a.keys = append(a.keys, key)
	}
	if len(x) != len(m.mean) {
		return fmt.Errorf("stats: length mismatch for key %q: got %d values, have %d bins", key, len(x), len(m.mean))
	}
	m.n++
	for i, v := range x {
		delta := v - m.mean[i]
		m.mean[i] += delta / m.n
		m.m2[i] += delta * (v - m.mean[i])
	}
	return nil
}

// Keys returns the column keys in the order they were first seen.
func (a *Accumulator) Keys() []string {
	return append([]string(nil), a.keys...)
}

// Count returns the number of observations folded in for key, 0 for an
// unknown key.
func (a *Accumulator) Count(key string) int {
	m, ok := a.data[key]
	if !ok {
		return 0
	}
	return int(m.n)
}

// Bins returns the vector length fixed by the first observation for key,
// 0 for an unknown key.
func (a *Accumulator) Bins(key string) int {
	m, ok := a.data[key]
	if !ok {
		return 0
	}
	return len(m.mean)
}

// Mean returns a copy of the running mean vector for key, or nil for an
// unknown key. The mean is only meaningful once Count(key) >= 1.
func (a *Accumulator) Mean(key string) []float64 {
	m, ok := a.data[key]
	if !ok {
		return nil
	}
	return floats.ScaleTo(make([]float64, len(m.mean)), 1, m.mean)
}

// Variance returns the unbiased sample variance per bin, M2/(count-1), or
// nil for an unknown key. With fewer than two observations every bin is
// +Inf.
func (a *Accumulator) Variance(key string) []float64 {
	m, ok := a.data[key]
	if !ok {
		return nil
	}
	v := make([]float64, len(m.m2))
	if m.n < 2 {
		for i := range v {
			v[i] = math.Inf(1)
		}
		return v
	}
	return floats.ScaleTo(v, 1/(m.n-1), m.m2)
}

// Std returns the per-bin sample standard deviation, sqrt of Variance.
func (a *Accumulator) Std(key string) []float64 {
	v := a.Variance(key)
	for i, x := range v {
		v[i] = math.Sqrt(x)
	}
	return v
}

// WriteTable writes the mean vectors for the given keys as a
// whitespace-delimited table, one key per column, with a comment-prefixed
// header row. All keys must have the same bin count.
func (a *Accumulator) WriteTable(w io.Writer, keys []string) error {
	cols := make([][]float64, 0, len(keys))
	for _, k := range keys {
		cols = append(cols, a.Mean(k))
	}
	return writeColumns(w, keys, cols)
}

// WriteTableWithError is WriteTable with an extra std_<key> column holding
// the sample standard deviation next to every mean column.
func (a *Accumulator) WriteTableWithError(w io.Writer, keys []string) error {
	header := make([]string, 0, 2*len(keys))
	cols := make([][]float64, 0, 2*len(keys))
	for _, k := range keys {
		header = append(header, k, "std_"+k)
		cols = append(cols, a.Mean(k), a.Std(k))
	}
	return writeColumns(w, header, cols)
}

func writeColumns(w io.Writer, header []string, cols [][]float64) error {
	if len(cols) == 0 {
		return fmt.Errorf("stats: no columns to write")
	}
	rows := -1
	for i, c := range cols {
		if c == nil {
			return fmt.Errorf("stats: unknown key %q", header[i])
		}
		if rows == -1 {
			rows = len(c)
		} else if len(c) != rows {
			return fmt.Errorf("stats: column %q has %d bins, expected %d", header[i], len(c), rows)
		}
	}
	if _, err := fmt.Fprintf(w, "# %s\n", strings.Join(header, " ")); err != nil {
		return err
	}
	for r := 0; r < rows; r++ {
		for i, c := range cols {
			sep := " "
			if i == 0 {
				sep = ""
			}
			if _, err := fmt.Fprintf(w, "%s%.18e", sep, c[r]); err != nil {
				return err
			}
		}
		if _, err := fmt.Fprintln(w); err != nil {
			return err
		}
	}
	return nil
}
