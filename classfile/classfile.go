// Copyright (c) 2024 The classpatch authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package classfile implements a round-tripping codec for the JVM class file
// format.  A parsed Class keeps constant pool indices and raw attribute
// payloads so that re-encoding an untouched class yields the input bytes.
package classfile

// Magic number at the start of every class file.
const Magic = uint32(0xCAFEBABE)

// Access flags of classes, fields and methods.
const (
	AccPublic    = uint16(0x0001)
	AccPrivate   = uint16(0x0002)
	AccProtected = uint16(0x0004)
	AccStatic    = uint16(0x0008)
	AccFinal     = uint16(0x0010)
	AccSuper     = uint16(0x0020)
	AccAbstract  = uint16(0x0400)
	AccSynthetic = uint16(0x1000)
)

// AttrCode is the name of the method attribute holding an instruction body.
const AttrCode = "Code"

// Class is the parsed form of one class file.  The engine reads it during a
// rewrite pass and writes to a separate sink; it is not mutated.
type Class struct {
	Minor, Major uint16
	Pool         *Pool
	Access       uint16
	This, Super  uint16 // constant pool indices
	Interfaces   []uint16
	Fields       []Field
	Methods      []Method
	Attrs        []Attribute

	thisName, superName string
}

// Name of the class in internal (slash-separated) form.
func (c *Class) Name() string {
	return c.thisName
}

// SuperName is the internal name of the superclass, or "" for
// java/lang/Object itself.
func (c *Class) SuperName() string {
	return c.superName
}

// Field of a class.  Attributes are kept raw.
type Field struct {
	Access    uint16
	NameIndex uint16
	DescIndex uint16
	Name      string
	Desc      string
	Attrs     []Attribute
}

// Method of a class.  The Code attribute (if any) appears in Attrs in its
// original position with the decoded form attached.
type Method struct {
	Access    uint16
	NameIndex uint16
	DescIndex uint16
	Name      string
	Desc      string
	Attrs     []Attribute
}

// Code returns the method's decoded Code attribute, or nil if the method is
// abstract or native.
func (m *Method) Code() *Code {
	for i := range m.Attrs {
		if m.Attrs[i].Code != nil {
			return m.Attrs[i].Code
		}
	}
	return nil
}

// Attribute of a class, field, method or Code attribute.  Data holds the raw
// payload, except that a method's Code attribute is decoded into Code and
// Data is nil.
type Attribute struct {
	NameIndex uint16
	Name      string
	Data      []byte
	Code      *Code
}

// Code is a decoded Code attribute.  Insns is the raw instruction stream;
// the rewriter never decodes it, only discards or replaces it wholesale.
type Code struct {
	MaxStack  uint16
	MaxLocals uint16
	Insns     []byte
	Handlers  []ExceptionHandler
	Attrs     []Attribute
}

// ExceptionHandler is an exception table entry.
type ExceptionHandler struct {
	Start     uint16
	End       uint16
	Handler   uint16
	CatchType uint16
}
