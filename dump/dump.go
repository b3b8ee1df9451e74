//Package dump reads LAMMPS dump trajectories (lammpstrj). A frame opens at
//an "ITEM: TIMESTEP" sentinel and runs to the next one; inside a frame,
//further ITEM lines mark the sub-sections: the timestep and atom count are
//single integers, the box section carries one bounds line per dimension,
//and the atoms section names its per-atom fields on the sentinel line and
//holds one row per atom. Per-atom field types are inferred from the data
//and only ever widen (see Column).
//
//The package also counts and stride-reduces dump files without parsing
//them, for the common "this trajectory is far too big" workflow.
package dump

import (
	"bufio"
	"fmt"
	"io"
	"log"
	"os"
	"strconv"
	"strings"

	lammps "github.com/andersle/lammps-tools"
)

const (
	frameSentinel = "ITEM: TIMESTEP"
	itemPrefix    = "ITEM:"
)

// Frame is one parsed dump frame.
type Frame struct {
	Timestep int
	NAtoms   int
	Box      *lammps.Box
	BoxFlags []string //boundary tokens from the BOX BOUNDS sentinel, e.g. "pp pp pp"
	Fields   []string //per-atom field names, in file order
	Atoms    map[string]*Column
	Extra    map[string][]string //unrecognized ITEM sections, raw trimmed lines
}

// Column returns the per-atom column for the named field, nil if absent.
func (f *Frame) Column(key string) *Column {
	return f.Atoms[key]
}

// CheckLengths compares every atom column against the declared atom count
// and returns one message per field that disagrees. An empty result means
// the frame is consistent.
func (f *Frame) CheckLengths() []string {
	var msgs []string
	for _, key := range f.Fields {
		if n := f.Atoms[key].Len(); n != f.NAtoms {
			msgs = append(msgs, fmt.Sprintf("inconsistent data length for %q: %d values, %d atoms declared", key, n, f.NAtoms))
		}
	}
	return msgs
}

// Reader walks a dump file one frame at a time. Only the frame being built
// is held in memory.
type Reader struct {
	f        *os.File
	h        *bufio.Reader
	filename string
	readable bool
	pending  string //the sentinel line that closed the previous frame
}

// Open opens the named dump file for reading.
func Open(name string) (*Reader, error) {
	f, err := os.Open(name)
	if err != nil {
		return nil, Error{UnableToOpen + ": " + err.Error(), name, []string{"Open"}, true}
	}
	r := &Reader{
		f:        f,
		h:        bufio.NewReader(f),
		filename: name,
		readable: true,
	}
	return r, nil
}

// NewReader returns a Reader segmenting an arbitrary stream. The name is
// only used in diagnostics and errors.
func NewReader(src io.Reader, name string) *Reader {
	return &Reader{
		h:        bufio.NewReader(src),
		filename: name,
		readable: true,
	}
}

// Readable returns true if the Reader can still be read from.
func (r *Reader) Readable() bool {
	return r.readable
}

// Next returns the next frame. The frame is emitted when the sentinel of
// the following frame (or the end of the file) is reached. Once the input
// is exhausted Next returns an error implementing lammps.LastFrameError.
// In-frame anomalies (malformed box or scalar lines, columns shorter than
// the declared atom count) are reported through the log and never abort
// the walk.
func (r *Reader) Next() (*Frame, error) {
	if !r.readable {
		return nil, Error{StreamUnIni, r.filename, []string{"Next"}, true}
	}
	var fr *Frame
	var item string
	for {
		var line string
		var err error
		if r.pending != "" {
			line, r.pending = r.pending, ""
		} else {
			line, err = r.h.ReadString('\n')
		}
		if len(line) > 0 {
			if strings.HasPrefix(line, frameSentinel) && fr != nil {
				r.pending = line
				return r.finalize(fr), nil
			}
			if fr == nil && !strings.HasPrefix(line, frameSentinel) {
				continue //junk before the first frame
			}
			if fr == nil {
				fr = &Frame{Extra: make(map[string][]string)}
			}
			item = r.consume(fr, item, line)
		}
		if err != nil {
			//yield the frame in progress first; the next call hits the
			//end again and reports the normal termination
			if fr != nil {
				return r.finalize(fr), nil
			}
			r.Close()
			return nil, newlastFrameError(r.filename, "Next")
		}
	}
}

// consume routes one line of the frame to the section named by the last
// ITEM sentinel, returning the (possibly updated) section name.
func (r *Reader) consume(fr *Frame, item, line string) string {
	trimmed := strings.TrimSpace(line)
	if strings.HasPrefix(line, itemPrefix) {
		rest := strings.ToLower(strings.TrimSpace(strings.TrimPrefix(trimmed, itemPrefix)))
		fields := strings.Fields(rest)
		if len(fields) == 0 {
			return ""
		}
		switch fields[0] {
		case "box":
			fr.Box = new(lammps.Box)
			if len(fields) > 2 {
				fr.BoxFlags = fields[2:]
			}
			return "box"
		case "atoms":
			fr.Fields = fields[1:]
			fr.Atoms = make(map[string]*Column, len(fr.Fields))
			for _, f := range fr.Fields {
				fr.Atoms[f] = new(Column)
			}
			return "atoms"
		}
		return rest
	}
	switch item {
	case "timestep":
		n, err := strconv.Atoi(trimmed)
		if err != nil {
			log.Printf("dump: bad timestep line %q (%s)", trimmed, r.filename)
			return item
		}
		fr.Timestep = n
	case "number of atoms":
		n, err := strconv.Atoi(trimmed)
		if err != nil {
			log.Printf("dump: bad atom count line %q (%s)", trimmed, r.filename)
			return item
		}
		fr.NAtoms = n
	case "box":
		if err := fr.Box.AddBounds(trimmed); err != nil {
			log.Printf("dump: %v (%s)", err, r.filename)
		}
	case "atoms":
		toks := strings.Fields(line)
		for i, name := range fr.Fields {
			if i >= len(toks) {
				break
			}
			fr.Atoms[name].add(toks[i])
		}
	case "":
		//line before any sub-sentinel, nothing to attach it to
	default:
		fr.Extra[item] = append(fr.Extra[item], trimmed)
	}
	return item
}

// finalize runs the length check on a completed frame, reporting every
// mismatch without failing.
func (r *Reader) finalize(fr *Frame) *Frame {
	for _, msg := range fr.CheckLengths() {
		log.Printf("dump: %s (%s)", msg, r.filename)
	}
	return fr
}

// Close marks the Reader unreadable and closes the underlying file, if the
// Reader owns one.
func (r *Reader) Close() {
	if !r.readable {
		return
	}
	r.readable = false
	if r.f != nil {
		r.f.Close()
	}
}

//Errors

//Error is the general structure for dump reading errors. It fulfills
//lammps.Error and lammps.FileError.
type Error struct {
	message  string
	filename string
	deco     []string
	critical bool
}

func (err Error) Error() string {
	return fmt.Sprintf("LAMMPS dump file %s error: %s", err.filename, err.message)
}

func (E Error) Decorate(deco string) []string {
	if deco != "" {
		E.deco = append(E.deco, deco)
	}
	return E.deco
}

func (err Error) FileName() string { return err.filename }

func (err Error) Format() string { return "lammpstrj" }

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

func (E lastFrameError) Format() string { return "lammpstrj" }

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
