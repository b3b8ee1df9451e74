//Package thermo reads the thermodynamic output blocks of a LAMMPS log file.
//A block opens with a line starting with "Step", which also names the
//columns, and closes with the "Loop time" line printed when the run ends.
//Everything in between is one numeric row per timestep. Logs from killed
//runs miss the closing line, so a new "Step" line (or the end of the file)
//also terminates the block in progress.
package thermo

import (
	"bufio"
	"fmt"
	"io"
	"log"
	"strconv"
	"strings"

	lammps "github.com/andersle/lammps-tools"
)

const (
	openSentinel  = "Step"
	closeSentinel = "Loop time"
)

// Run is one thermo block: the column keys (case-lowered) and one row per
// step.
type Run struct {
	Keys []string
	Data [][]float64
}

// Len returns the number of rows in the block.
func (r *Run) Len() int {
	return len(r.Data)
}

// Column returns the time series for the named key, or nil if the key is
// not part of this block.
func (r *Run) Column(key string) []float64 {
	for i, k := range r.Keys {
		if k == key {
			col := make([]float64, len(r.Data))
			for s, row := range r.Data {
				col[s] = row[i]
			}
			return col
		}
	}
	return nil
}

// Columns returns the whole block keyed by column name.
func (r *Run) Columns() map[string][]float64 {
	m := make(map[string][]float64, len(r.Keys))
	for _, k := range r.Keys {
		m[k] = r.Column(k)
	}
	return m
}

// Reader segments a log stream into Runs.
type Reader struct {
	h        *bufio.Reader
	src      io.Closer
	filename string
	readable bool

	reading bool
	keys    []string
	data    [][]float64
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

// Open opens the named log file, decompressing .gz and .zst transparently.
func Open(name string) (*Reader, error) {
	src, err := lammps.OpenDecompress(name)
	if err != nil {
		return nil, Error{UnableToOpen + ": " + err.Error(), name, []string{"Open"}, true}
	}
	r := NewReader(src, name)
	r.src = src
	return r, nil
}

// Readable returns true if the Reader can still be read from.
func (r *Reader) Readable() bool {
	return r.readable
}

// Next returns the next thermo block. After the last block it returns an
// error implementing lammps.LastFrameError.
func (r *Reader) Next() (*Run, error) {
	if !r.readable {
		return nil, Error{StreamUnIni, r.filename, []string{"Next"}, true}
	}
	for {
		line, err := r.h.ReadString('\n')
		if len(line) > 0 {
			if run := r.consume(line); run != nil {
				return run, nil
			}
		}
		if err != nil {
			//yield whatever accumulated first; the next call hits the
			//end again and reports the normal termination
			if run := r.finish(); run != nil {
				return run, nil
			}
			r.Close()
			return nil, newlastFrameError(r.filename, "Next")
		}
	}
}

func (r *Reader) consume(line string) *Run {
	if strings.HasPrefix(line, openSentinel) {
		done := r.finish()
		f := strings.Fields(line)
		r.keys = make([]string, 0, len(f))
		for _, v := range f {
			r.keys = append(r.keys, strings.ToLower(v))
		}
		r.reading = true
		return done
	}
	if !r.reading {
		return nil
	}
	if strings.HasPrefix(line, closeSentinel) {
		done := r.finish()
		r.keys = nil
		r.reading = false
		return done
	}
	f := strings.Fields(line)
	if len(f) == 0 {
		return nil
	}
	row := make([]float64, len(f))
	for i, v := range f {
		x, err := strconv.ParseFloat(v, 64)
		if err != nil {
			log.Printf("thermo: dropping non-numeric row %q (%s)", strings.TrimSpace(line), r.filename)
			return nil
		}
		row[i] = x
	}
	if len(r.data) > 0 && len(row) != len(r.data[0]) {
		log.Printf("thermo: inconsistent length of data, skipping row (%s)", r.filename)
		return nil
	}
	r.data = append(r.data, row)
	return nil
}

func (r *Reader) finish() *Run {
	if len(r.data) == 0 {
		return nil
	}
	run := &Run{
		Keys: append([]string(nil), r.keys...),
		Data: r.data,
	}
	r.data = nil
	return run
}

// Close marks the Reader unreadable and closes the underlying file, if the
// Reader owns one.
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

//Error is the general structure for thermo reading errors. It fulfills
//lammps.Error and lammps.FileError.
type Error struct {
	message  string
	filename string
	deco     []string
	critical bool
}

func (err Error) Error() string {
	return fmt.Sprintf("LAMMPS log file %s error: %s", err.filename, err.message)
}

func (E Error) Decorate(deco string) []string {
	if deco != "" {
		E.deco = append(E.deco, deco)
	}
	return E.deco
}

func (err Error) FileName() string { return err.filename }

func (err Error) Format() string { return "LAMMPS log" }

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

func (E lastFrameError) NormalLastFrameTermination() {}

func (E lastFrameError) FileName() string { return E.fileName }

func (E lastFrameError) Error() string { return "EOF" }

func (E lastFrameError) Critical() bool { return false }

func (E lastFrameError) Format() string { return "LAMMPS log" }

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
