// Copyright (c) 2024 The classpatch authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package classfile

import (
	"github.com/classpatch/classpatch/internal/buffer"
)

// Encode the class back to class file bytes.  Encoding an unmodified parsed
// class reproduces the input exactly.
func (c *Class) Encode() []byte {
	b := buffer.NewDynamicHint(1024)

	b.PutUint32(Magic)
	b.PutUint16(c.Minor)
	b.PutUint16(c.Major)
	c.Pool.put(b)
	b.PutUint16(c.Access)
	b.PutUint16(c.This)
	b.PutUint16(c.Super)

	b.PutUint16(uint16(len(c.Interfaces)))
	for _, i := range c.Interfaces {
		b.PutUint16(i)
	}

	b.PutUint16(uint16(len(c.Fields)))
	for i := range c.Fields {
		f := &c.Fields[i]
		b.PutUint16(f.Access)
		b.PutUint16(f.NameIndex)
		b.PutUint16(f.DescIndex)
		putAttrs(b, f.Attrs)
	}

	b.PutUint16(uint16(len(c.Methods)))
	for i := range c.Methods {
		m := &c.Methods[i]
		b.PutUint16(m.Access)
		b.PutUint16(m.NameIndex)
		b.PutUint16(m.DescIndex)
		putAttrs(b, m.Attrs)
	}

	putAttrs(b, c.Attrs)

	return b.Bytes()
}

func putAttrs(b *buffer.Dynamic, attrs []Attribute) {
	b.PutUint16(uint16(len(attrs)))

	for i := range attrs {
		a := &attrs[i]
		b.PutUint16(a.NameIndex)

		data := a.Data
		if a.Code != nil {
			data = encodeCode(a.Code)
		}

		b.PutUint32(uint32(len(data)))
		b.PutBytes(data)
	}
}

func encodeCode(code *Code) []byte {
	b := buffer.NewDynamicHint(16 + len(code.Insns))

	b.PutUint16(code.MaxStack)
	b.PutUint16(code.MaxLocals)
	b.PutUint32(uint32(len(code.Insns)))
	b.PutBytes(code.Insns)

	b.PutUint16(uint16(len(code.Handlers)))
	for _, h := range code.Handlers {
		b.PutUint16(h.Start)
		b.PutUint16(h.End)
		b.PutUint16(h.Handler)
		b.PutUint16(h.CatchType)
	}

	putAttrs(b, code.Attrs)

	return b.Bytes()
}
