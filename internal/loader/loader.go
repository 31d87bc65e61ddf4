// Copyright (c) 2024 The classpatch authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package loader provides panicking big-endian decoding of class file data.
package loader

import (
	"encoding/binary"
	"io"
	"unicode/utf8"

	"github.com/classpatch/classpatch/internal/cerr"
)

// L consumes a byte slice from the front.  Running out of data panics with
// io.ErrUnexpectedEOF; the API boundary converts it to a class error.
type L struct {
	buf []byte
}

func New(data []byte) *L {
	return &L{data}
}

// Len of the remaining data.
func (load *L) Len() int {
	return len(load.buf)
}

func (load *L) Bytes(n int) (data []byte) {
	if n < 0 || len(load.buf) < n {
		panic(io.ErrUnexpectedEOF)
	}
	data = load.buf[:n:n]
	load.buf = load.buf[n:]
	return
}

func (load *L) Byte() byte {
	if len(load.buf) < 1 {
		panic(io.ErrUnexpectedEOF)
	}
	x := load.buf[0]
	load.buf = load.buf[1:]
	return x
}

func (load *L) Uint16() uint16 {
	if len(load.buf) < 2 {
		panic(io.ErrUnexpectedEOF)
	}
	x := binary.BigEndian.Uint16(load.buf[:2])
	load.buf = load.buf[2:]
	return x
}

func (load *L) Uint32() uint32 {
	if len(load.buf) < 4 {
		panic(io.ErrUnexpectedEOF)
	}
	x := binary.BigEndian.Uint32(load.buf[:4])
	load.buf = load.buf[4:]
	return x
}

func (load *L) Uint64() uint64 {
	if len(load.buf) < 8 {
		panic(io.ErrUnexpectedEOF)
	}
	x := binary.BigEndian.Uint64(load.buf[:8])
	load.buf = load.buf[8:]
	return x
}

// String reads a length-prefixed modified-UTF-8 string.  The bytes are kept
// as-is; only gross invalidity is rejected.
func (load *L) String(name string) string {
	b := load.Bytes(int(load.Uint16()))
	if !utf8.Valid(b) && !modifiedUTF8(b) {
		panic(cerr.Errorf("%s is not a valid UTF-8 string", name))
	}
	return string(b)
}

// modifiedUTF8 accepts the JVM's CESU-8-style encodings which plain UTF-8
// validation rejects (encoded NUL and surrogate pairs).
func modifiedUTF8(b []byte) bool {
	for i := 0; i < len(b); {
		c := b[i]
		switch {
		case c&0x80 == 0:
			if c == 0 {
				return false
			}
			i++

		case c&0xe0 == 0xc0:
			if i+1 >= len(b) || b[i+1]&0xc0 != 0x80 {
				return false
			}
			i += 2

		case c&0xf0 == 0xe0:
			if i+2 >= len(b) || b[i+1]&0xc0 != 0x80 || b[i+2]&0xc0 != 0x80 {
				return false
			}
			i += 3

		default:
			return false
		}
	}
	return true
}
