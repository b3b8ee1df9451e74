/*
 * open.go, part of lammps-tools.
 *
 * This program is free software; you can redistribute it and/or modify
 * it under the terms of the GNU Lesser General Public License as
 * published by the Free Software Foundation; either version 2.1 of the
 * License, or (at your option) any later version.
 *
 * This program is distributed in the hope that it will be useful,
 * but WITHOUT ANY WARRANTY; without even the implied warranty of
 * MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE.  See the
 * GNU General Public License for more details.
 *
 * You should have received a copy of the GNU Lesser General
 * Public License along with this program.  If not, see
 * <http://www.gnu.org/licenses/>.
 *
 */

package lammps

import (
	"bufio"
	"compress/gzip"
	"io"
	"os"
	"strings"

	"github.com/klauspost/compress/zstd"
)

// OpenDecompress opens name for reading, transparently decompressing it if
// the filename ends in .gz or .zst. Long profile and log files are often
// kept compressed next to the simulation output, so the readers for those
// formats open their inputs through here. Closing the returned handle also
// closes the underlying file.
func OpenDecompress(name string) (io.ReadCloser, error) {
	f, err := os.Open(name)
	if err != nil {
		return nil, err
	}
	switch {
	case strings.HasSuffix(name, ".gz"):
		g, err := gzip.NewReader(bufio.NewReader(f))
		if err != nil {
			f.Close()
			return nil, err
		}
		return &gzHandle{f: f, Reader: g}, nil
	case strings.HasSuffix(name, ".zst"):
		d, err := zstd.NewReader(bufio.NewReader(f))
		if err != nil {
			f.Close()
			return nil, err
		}
		return &zstdHandle{f: f, Decoder: d}, nil
	}
	return f, nil
}

type gzHandle struct {
	f *os.File
	*gzip.Reader
}

func (g *gzHandle) Close() error {
	g.Reader.Close()
	return g.f.Close()
}

//zstd.Decoder.Close returns nothing, so it does not satisfy io.ReadCloser
//on its own.
type zstdHandle struct {
	f *os.File
	*zstd.Decoder
}

func (z *zstdHandle) Close() error {
	z.Decoder.Close()
	return z.f.Close()
}
