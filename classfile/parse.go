// Copyright (c) 2024 The classpatch authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package classfile

import (
	"github.com/classpatch/classpatch/internal/cerr"
	"github.com/classpatch/classpatch/internal/errorpanic"
	"github.com/classpatch/classpatch/internal/loader"
)

// Parse a class file.  The returned Class shares memory with data; neither
// is mutated by transformation.
func Parse(data []byte) (c *Class, err error) {
	defer func() {
		err = errorpanic.Handle(recover())
	}()

	c = parse(loader.New(data))
	return
}

func parse(load *loader.L) *Class {
	if magic := load.Uint32(); magic != Magic {
		panic(cerr.Errorf("invalid magic number: 0x%08x", magic))
	}

	c := new(Class)
	c.Minor = load.Uint16()
	c.Major = load.Uint16()
	c.Pool = parsePool(load)
	c.Access = load.Uint16()
	c.This = load.Uint16()
	c.Super = load.Uint16()

	c.thisName = c.Pool.ClassNameAt(c.This)
	if c.Super != 0 {
		c.superName = c.Pool.ClassNameAt(c.Super)
	}

	c.Interfaces = make([]uint16, load.Uint16())
	for i := range c.Interfaces {
		c.Interfaces[i] = load.Uint16()
	}

	c.Fields = make([]Field, load.Uint16())
	for i := range c.Fields {
		access, nameIndex, descIndex, name, desc := parseMember(load, c.Pool)
		c.Fields[i] = Field{
			Access:    access,
			NameIndex: nameIndex,
			DescIndex: descIndex,
			Name:      name,
			Desc:      desc,
			Attrs:     parseAttrs(load, c.Pool, false),
		}
	}

	c.Methods = make([]Method, load.Uint16())
	for i := range c.Methods {
		access, nameIndex, descIndex, name, desc := parseMember(load, c.Pool)
		c.Methods[i] = Method{
			Access:    access,
			NameIndex: nameIndex,
			DescIndex: descIndex,
			Name:      name,
			Desc:      desc,
			Attrs:     parseAttrs(load, c.Pool, true),
		}
	}

	c.Attrs = parseAttrs(load, c.Pool, false)

	if load.Len() != 0 {
		panic(cerr.Errorf("%d bytes of trailing data after class file", load.Len()))
	}

	return c
}

func parseMember(load *loader.L, pool *Pool) (access, nameIndex, descIndex uint16, name, desc string) {
	access = load.Uint16()
	nameIndex = load.Uint16()
	descIndex = load.Uint16()
	name = pool.Utf8At(nameIndex)
	desc = pool.Utf8At(descIndex)
	return
}

// parseAttrs reads an attribute list.  The Code attribute is decoded only at
// method level; anywhere else the name has no special meaning.
func parseAttrs(load *loader.L, pool *Pool, method bool) []Attribute {
	attrs := make([]Attribute, load.Uint16())

	for i := range attrs {
		nameIndex := load.Uint16()
		name := pool.Utf8At(nameIndex)
		data := load.Bytes(int(load.Uint32()))

		a := Attribute{
			NameIndex: nameIndex,
			Name:      name,
		}

		if method && name == AttrCode {
			a.Code = parseCode(loader.New(data), pool)
		} else {
			a.Data = data
		}

		attrs[i] = a
	}

	return attrs
}

func parseCode(load *loader.L, pool *Pool) *Code {
	code := new(Code)
	code.MaxStack = load.Uint16()
	code.MaxLocals = load.Uint16()
	code.Insns = load.Bytes(int(load.Uint32()))

	code.Handlers = make([]ExceptionHandler, load.Uint16())
	for i := range code.Handlers {
		code.Handlers[i] = ExceptionHandler{
			Start:     load.Uint16(),
			End:       load.Uint16(),
			Handler:   load.Uint16(),
			CatchType: load.Uint16(),
		}
	}

	code.Attrs = parseAttrs(load, pool, false)

	if load.Len() != 0 {
		panic(cerr.Errorf("%d bytes of trailing data after Code attribute", load.Len()))
	}

	return code
}
