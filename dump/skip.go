package dump

import (
	"bufio"
	"bytes"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/edsrzf/mmap-go"
)

// CountFrames counts the frames of a dump file without parsing it: the
// whole file is memory-mapped and scanned for the frame sentinel with a
// plain substring count. This is the cheap first pass that makes progress
// reporting possible before a full read.
func CountFrames(name string) (int, error) {
	f, err := os.Open(name)
	if err != nil {
		return 0, err
	}
	defer f.Close()
	fi, err := f.Stat()
	if err != nil {
		return 0, err
	}
	if fi.Size() == 0 {
		return 0, nil
	}
	m, err := mmap.Map(f, mmap.RDONLY, 0)
	if err != nil {
		return 0, fmt.Errorf("mmap %s: %w", name, err)
	}
	defer m.Unmap()
	return bytes.Count(m, []byte(frameSentinel)), nil
}

// Reduce writes every stride-th frame of the input dump to outname,
// byte-for-byte: frame i is kept iff i%stride == 0, so frame 0 is always
// included and stride 1 reproduces the input exactly. Text before the first
// frame sentinel is copied through unchanged. It returns the number of
// frames written. No parsing happens; the pass only watches for the frame
// sentinel.
func Reduce(name, outname string, stride int) (int, error) {
	if stride < 1 {
		return 0, fmt.Errorf("dump: stride must be positive, got %d", stride)
	}
	in, err := os.Open(name)
	if err != nil {
		return 0, err
	}
	defer in.Close()
	out, err := os.Create(outname)
	if err != nil {
		return 0, err
	}
	h := bufio.NewReader(in)
	w := bufio.NewWriter(out)
	idx := -1 //frame index; -1 until the first sentinel
	written := 0
	for {
		line, err := h.ReadString('\n')
		if len(line) > 0 {
			if strings.HasPrefix(line, frameSentinel) {
				idx++
				if idx%stride == 0 {
					written++
				}
			}
			if idx < 0 || idx%stride == 0 {
				if _, werr := w.WriteString(line); werr != nil {
					out.Close()
					return written, werr
				}
			}
		}
		if err != nil {
			if err != io.EOF {
				out.Close()
				return written, err
			}
			break
		}
	}
	if err := w.Flush(); err != nil {
		out.Close()
		return written, err
	}
	return written, out.Close()
}
