package dump

import (
	"strconv"

	lammps "github.com/andersle/lammps-tools"
)

// Column holds the values of one per-atom field over a frame. Its kind is
// inferred from the first value and memoized; a later value that fails the
// inferred type widens the whole column (int to float to string), it never
// narrows. Values already stored are converted when the column widens.
type Column struct {
	kind   lammps.Kind
	ints   []int64
	floats []float64
	strs   []string
}

// Kind returns the column's current inferred kind.
func (c *Column) Kind() lammps.Kind {
	return c.kind
}

// Len returns the number of values collected so far.
func (c *Column) Len() int {
	switch c.kind {
	case lammps.Int:
		return len(c.ints)
	case lammps.Float:
		return len(c.floats)
	default:
		return len(c.strs)
	}
}

// Int returns value i. Only valid for an Int column.
func (c *Column) Int(i int) int64 {
	return c.ints[i]
}

// Float returns value i as a float64. Valid for Int and Float columns; a
// String column has no numeric view and Float panics on it.
func (c *Column) Float(i int) float64 {
	if c.kind == lammps.Int {
		return float64(c.ints[i])
	}
	return c.floats[i]
}

// Str returns value i rendered as a string, whatever the kind.
func (c *Column) Str(i int) string {
	switch c.kind {
	case lammps.Int:
		return strconv.FormatInt(c.ints[i], 10)
	case lammps.Float:
		return strconv.FormatFloat(c.floats[i], 'g', -1, 64)
	default:
		return c.strs[i]
	}
}

// Floats returns the whole column as a float64 slice. For a String column
// it returns nil.
func (c *Column) Floats() []float64 {
	switch c.kind {
	case lammps.Int:
		out := make([]float64, len(c.ints))
		for i, v := range c.ints {
			out[i] = float64(v)
		}
		return out
	case lammps.Float:
		return append([]float64(nil), c.floats...)
	default:
		return nil
	}
}

// add parses one token under the memoized kind, widening the column first
// if the token no longer fits.
func (c *Column) add(tok string) {
	for {
		switch c.kind {
		case lammps.Int:
			if v, err := strconv.ParseInt(tok, 10, 64); err == nil {
				c.ints = append(c.ints, v)
				return
			}
		case lammps.Float:
			if v, err := strconv.ParseFloat(tok, 64); err == nil {
				c.floats = append(c.floats, v)
				return
			}
		default:
			c.strs = append(c.strs, tok)
			return
		}
		c.widen(lammps.GuessKind(tok))
	}
}

// widen converts the stored values to the wider kind. The parse that
// triggered the widening is guaranteed to have failed the current kind, so
// the guess is always at least one step wider.
func (c *Column) widen(k lammps.Kind) {
	k = c.kind.Widen(k)
	if k == c.kind {
		k++ //should not happen; force progress so add cannot loop
	}
	switch {
	case c.kind == lammps.Int && k == lammps.Float:
		c.floats = make([]float64, len(c.ints))
		for i, v := range c.ints {
			c.floats[i] = float64(v)
		}
		c.ints = nil
	case k == lammps.String:
		n := c.Len()
		strs := make([]string, n)
		for i := 0; i < n; i++ {
			strs[i] = c.Str(i)
		}
		c.strs = strs
		c.ints = nil
		c.floats = nil
	}
	c.kind = k
}
