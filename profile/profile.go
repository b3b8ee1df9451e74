//Package profile reads chunk-averaged profile output, the files produced by
//LAMMPS "fix ave/chunk". The file is a stream of records: a comment line
//holding the column names ("# Chunk Coord1 Ncount ..."), then for every
//dump interval one "timestep number-of-rows" line followed by that many
//whitespace-separated data rows. The Reader walks the stream one record at
//a time and never holds more than the record currently being filled.
package profile

import (
	"bufio"
	"fmt"
	"io"
	"log"
	"strconv"
	"strings"

	lammps "github.com/andersle/lammps-tools"
)

//the sentinel re-establishing the active header
const chunkSentinel = "# Chunk"

// Chunk is one complete record from a profile file: the column names active
// when it was read (case-lowered), the timestep it was written at, and its
// data rows. A Chunk owns its rows; the Reader never touches them again
// after handing one out.
type Chunk struct {
	Fields []string
	Step   int
	Rows   [][]float64
}

// Column returns the per-bin vector for the named field, or nil if the
// field is not part of this chunk's header.
func (c *Chunk) Column(key string) []float64 {
	for i, f := range c.Fields {
		if f == key {
			col := make([]float64, len(c.Rows))
			for r, row := range c.Rows {
				col[r] = row[i]
			}
			return col
		}
	}
	return nil
}

// Columns returns every field of the chunk as a per-bin vector, keyed by
// field name.
func (c *Chunk) Columns() map[string][]float64 {
	m := make(map[string][]float64, len(c.Fields))
	for _, f := range c.Fields {
		m[f] = c.Column(f)
	}
	return m
}

// Reader segments a profile stream into Chunks.
type Reader struct {
	h        *bufio.Reader
	src      io.Closer
	filename string
	readable bool

	//active header
	fields []string
	cols   int

	//the record being filled
	inRecord bool
	step     int
	toRead   int
	rows     [][]float64
}

// NewReader returns a Reader segmenting r. The name is only used in
// diagnostics and errors.
func NewReader(r io.Reader, name string) *Reader {
	return &Reader{
		h:        bufio.NewReader(r),
		filename: name,
		readable: true,
	}
}

// Open opens the named profile file for reading. Files ending in .gz or
// .zst are decompressed transparently.
func Open(name string) (*Reader, error) {
	src, err := lammps.OpenDecompress(name)
	if err != nil {
		return nil, Error{UnableToOpen + ": " + err.Error(), name, []string{"Open"}, true}
	}
	r := NewReader(src, name)
	r.src = src
	return r, nil
}

// Readable returns true if the Reader can still be read from. It does not
// guarantee that another chunk is actually present.
func (r *Reader) Readable() bool {
	return r.readable
}

// Next returns the next complete chunk. A chunk is emitted when the opening
// line of the following record is seen, or at end of input, so the stream
// is always exactly one record ahead of what the caller got. Once the input
// is exhausted Next returns an error implementing lammps.LastFrameError,
// which callers should filter as a normal termination.
func (r *Reader) Next() (*Chunk, error) {
	if !r.readable {
		return nil, Error{StreamUnIni, r.filename, []string{"Next"}, true}
	}
	for {
		line, err := r.h.ReadString('\n')
		if len(line) > 0 {
			if c := r.consume(line); c != nil {
				return c, nil
			}
		}
		if err != nil {
			//yield whatever accumulated first; the next call hits the
			//end again and reports the normal termination
			if c := r.finish(); c != nil {
				return c, nil
			}
			r.Close()
			return nil, newlastFrameError(r.filename, "Next")
		}
	}
}

// consume feeds one line to the segmenter and returns a finished chunk when
// the line opened the next record.
func (r *Reader) consume(line string) *Chunk {
	if strings.Contains(line, chunkSentinel) {
		//a new header means the previous record, if any, is over
		done := r.finish()
		f := strings.Fields(line)
		r.cols = len(f) - 1
		r.fields = r.fields[:0]
		for _, v := range f[1:] {
			r.fields = append(r.fields, strings.ToLower(v))
		}
		return done
	}
	if r.cols <= 0 {
		return nil //no header seen yet, not in a profile section
	}
	f := strings.Fields(line)
	if r.inRecord && r.toRead > 0 {
		if len(f) != r.cols {
			log.Printf("profile: dropping row with %d fields, expected %d (%s)", len(f), r.cols, r.filename)
			return nil
		}
		row := make([]float64, r.cols)
		for i, v := range f {
			x, err := strconv.ParseFloat(v, 64)
			if err != nil {
				log.Printf("profile: dropping unparseable row %q (%s)", strings.TrimSpace(line), r.filename)
				return nil
			}
			row[i] = x
		}
		r.rows = append(r.rows, row)
		r.toRead--
		return nil
	}
	//between records: a line with two leading integers opens the next one
	if len(f) < 2 {
		return nil
	}
	step, err1 := strconv.Atoi(f[0])
	n, err2 := strconv.Atoi(f[1])
	if err1 != nil || err2 != nil {
		return nil
	}
	done := r.finish()
	r.inRecord = true
	r.step = step
	r.toRead = n
	return done
}

// finish closes the record in progress and returns it, or nil if it never
// got any rows. Records that ended short of their declared row count are
// still returned, with a diagnostic.
func (r *Reader) finish() *Chunk {
	defer func() {
		r.inRecord = false
		r.toRead = 0
		r.rows = nil
	}()
	if len(r.rows) == 0 {
		return nil
	}
	if r.toRead > 0 {
		log.Printf("profile: chunk at step %d ended %d rows short of its declared count (%s)", r.step, r.toRead, r.filename)
	}
	return &Chunk{
		Fields: append([]string(nil), r.fields...),
		Step:   r.step,
		Rows:   r.rows,
	}
}

// Close marks the Reader unreadable and closes the underlying file, if the
// Reader owns one. It is safe to call more than once.
func (r *Reader) Close() {
	if !r.readable {
		return
	}
	r.readable = false
	if r.src != nil {
		r.src.Close()
	}
}

//Errors

//Error is the general structure for profile reading errors. It fulfills
//lammps.Error and lammps.FileError.
type Error struct {
	message  string
	filename string
	deco     []string
	critical bool
}

func (err Error) Error() string {
	return fmt.Sprintf("LAMMPS profile file %s error: %s", err.filename, err.message)
}

//Decorate adds new information to the error
func (E Error) Decorate(deco string) []string {
	//Even though this method does not use a pointer receiver, appending
	//works because E.deco is a slice, hence a pointer itself.
	if deco != "" {
		E.deco = append(E.deco, deco)
	}
	return E.deco
}

func (err Error) FileName() string { return err.filename }

func (err Error) Format() string { return "LAMMPS profile" }

func (err Error) Critical() bool { return err.critical }

const (
	StreamUnIni  = "Reader uninitialized or already closed"
	UnableToOpen = "Unable to open file"
)

//lastFrameError implements lammps.LastFrameError
type lastFrameError struct {
	deco     []string
	fileName string
}

//NormalLastFrameTermination does nothing
func (E lastFrameError) NormalLastFrameTermination() {}

func (E lastFrameError) FileName() string { return E.fileName }

func (E lastFrameError) Error() string { return "EOF" }

func (E lastFrameError) Critical() bool { return false }

func (E lastFrameError) Format() string { return "LAMMPS profile" }

func (E lastFrameError) Decorate(deco string) []string {
	if deco != "" {
		E.deco = append(E.deco, deco)
	}
	return E.deco
}

func newlastFrameError(filename string, caller string) *lastFrameError {
	e := new(lastFrameError)
	e.fileName = filename
	e.deco = []string{caller}
	return e
}
