// Copyright (c) 2024 The classpatch authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package buffer implements the dynamically sized output buffer which class
// file encoding appends to.
package buffer

import (
	"encoding/binary"
	"errors"
)

// Dynamic is a variable-capacity big-endian buffer.  The default value is a
// valid buffer.
type Dynamic struct {
	buf []byte
}

// NewDynamicHint avoids making excessive allocations if the output size can
// be estimated in advance.
func NewDynamicHint(sizeHint int) *Dynamic {
	return &Dynamic{make([]byte, 0, sizeHint)}
}

// Len doesn't panic.
func (d *Dynamic) Len() int {
	return len(d.buf)
}

// Bytes doesn't panic.
func (d *Dynamic) Bytes() []byte {
	return d.buf
}

// PutByte doesn't panic unless out of memory.
func (d *Dynamic) PutByte(value byte) {
	d.Extend(1)[0] = value
}

// PutUint16 doesn't panic unless out of memory.
func (d *Dynamic) PutUint16(i uint16) {
	binary.BigEndian.PutUint16(d.Extend(2), i)
}

// PutUint32 doesn't panic unless out of memory.
func (d *Dynamic) PutUint32(i uint32) {
	binary.BigEndian.PutUint32(d.Extend(4), i)
}

// PutUint64 doesn't panic unless out of memory.
func (d *Dynamic) PutUint64(i uint64) {
	binary.BigEndian.PutUint64(d.Extend(8), i)
}

// PutBytes doesn't panic unless out of memory.
func (d *Dynamic) PutBytes(b []byte) {
	copy(d.Extend(len(b)), b)
}

// Extend doesn't panic unless out of memory.
func (d *Dynamic) Extend(addLen int) []byte {
	offset := len(d.buf)

	if size := offset + addLen; size <= cap(d.buf) {
		if size < offset { // Check for overflow
			panic(errors.New("buffer size out of range"))
		}

		d.buf = d.buf[:size]
	} else {
		d.grow(addLen)
	}

	return d.buf[offset:]
}

func (d *Dynamic) grow(addLen int) {
	newLen := len(d.buf) + addLen
	if newLen < 0 {
		panic(errors.New("buffer size out of range"))
	}

	newCap := cap(d.buf)*2 + 64
	if newCap < newLen {
		newCap = newLen
	}

	newBuf := make([]byte, newLen, newCap)
	copy(newBuf, d.buf)
	d.buf = newBuf
}
