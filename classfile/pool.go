// Copyright (c) 2024 The classpatch authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package classfile

import (
	"github.com/classpatch/classpatch/internal/buffer"
	"github.com/classpatch/classpatch/internal/cerr"
	"github.com/classpatch/classpatch/internal/loader"
)

// Constant pool tags.
const (
	tagUtf8               = 1
	tagInteger            = 3
	tagFloat              = 4
	tagLong               = 5
	tagDouble             = 6
	tagClass              = 7
	tagString             = 8
	tagFieldref           = 9
	tagMethodref          = 10
	tagInterfaceMethodref = 11
	tagNameAndType        = 12
	tagMethodHandle       = 15
	tagMethodType         = 16
	tagDynamic            = 17
	tagInvokeDynamic      = 18
	tagModule             = 19
	tagPackage            = 20
)

// Const is a constant pool entry.
type Const interface {
	tag() uint8
	put(b *buffer.Dynamic)
}

// Utf8 entry.  The value preserves the original modified-UTF-8 bytes.
type Utf8 struct{ Value string }

// IntegerConst entry.  Bits are kept raw to round-trip exactly.
type IntegerConst struct{ Bits uint32 }

// FloatConst entry.
type FloatConst struct{ Bits uint32 }

// LongConst entry.  Occupies two pool slots.
type LongConst struct{ Bits uint64 }

// DoubleConst entry.  Occupies two pool slots.
type DoubleConst struct{ Bits uint64 }

// ClassConst entry referencing an internal class name.
type ClassConst struct{ Name uint16 }

// StringConst entry.
type StringConst struct{ Index uint16 }

// FieldrefConst entry.
type FieldrefConst struct{ Class, NameAndType uint16 }

// MethodrefConst entry.
type MethodrefConst struct{ Class, NameAndType uint16 }

// InterfaceMethodrefConst entry.
type InterfaceMethodrefConst struct{ Class, NameAndType uint16 }

// NameAndTypeConst entry.
type NameAndTypeConst struct{ Name, Desc uint16 }

// MethodHandleConst entry.
type MethodHandleConst struct {
	Kind uint8
	Ref  uint16
}

// MethodTypeConst entry.
type MethodTypeConst struct{ Desc uint16 }

// DynamicConst entry.
type DynamicConst struct{ Bootstrap, NameAndType uint16 }

// InvokeDynamicConst entry.
type InvokeDynamicConst struct{ Bootstrap, NameAndType uint16 }

// ModuleConst entry.
type ModuleConst struct{ Name uint16 }

// PackageConst entry.
type PackageConst struct{ Name uint16 }

func (Utf8) tag() uint8                    { return tagUtf8 }
func (IntegerConst) tag() uint8            { return tagInteger }
func (FloatConst) tag() uint8              { return tagFloat }
func (LongConst) tag() uint8               { return tagLong }
func (DoubleConst) tag() uint8             { return tagDouble }
func (ClassConst) tag() uint8              { return tagClass }
func (StringConst) tag() uint8             { return tagString }
func (FieldrefConst) tag() uint8           { return tagFieldref }
func (MethodrefConst) tag() uint8          { return tagMethodref }
func (InterfaceMethodrefConst) tag() uint8 { return tagInterfaceMethodref }
func (NameAndTypeConst) tag() uint8        { return tagNameAndType }
func (MethodHandleConst) tag() uint8       { return tagMethodHandle }
func (MethodTypeConst) tag() uint8         { return tagMethodType }
func (DynamicConst) tag() uint8            { return tagDynamic }
func (InvokeDynamicConst) tag() uint8      { return tagInvokeDynamic }
func (ModuleConst) tag() uint8             { return tagModule }
func (PackageConst) tag() uint8            { return tagPackage }

func (c Utf8) put(b *buffer.Dynamic) {
	b.PutUint16(uint16(len(c.Value)))
	b.PutBytes([]byte(c.Value))
}

func (c IntegerConst) put(b *buffer.Dynamic) { b.PutUint32(c.Bits) }
func (c FloatConst) put(b *buffer.Dynamic)   { b.PutUint32(c.Bits) }
func (c LongConst) put(b *buffer.Dynamic)    { b.PutUint64(c.Bits) }
func (c DoubleConst) put(b *buffer.Dynamic)  { b.PutUint64(c.Bits) }
func (c ClassConst) put(b *buffer.Dynamic)   { b.PutUint16(c.Name) }
func (c StringConst) put(b *buffer.Dynamic)  { b.PutUint16(c.Index) }

func (c FieldrefConst) put(b *buffer.Dynamic) {
	b.PutUint16(c.Class)
	b.PutUint16(c.NameAndType)
}

func (c MethodrefConst) put(b *buffer.Dynamic) {
	b.PutUint16(c.Class)
	b.PutUint16(c.NameAndType)
}

func (c InterfaceMethodrefConst) put(b *buffer.Dynamic) {
	b.PutUint16(c.Class)
	b.PutUint16(c.NameAndType)
}

func (c NameAndTypeConst) put(b *buffer.Dynamic) {
	b.PutUint16(c.Name)
	b.PutUint16(c.Desc)
}

func (c MethodHandleConst) put(b *buffer.Dynamic) {
	b.PutByte(c.Kind)
	b.PutUint16(c.Ref)
}

func (c MethodTypeConst) put(b *buffer.Dynamic) { b.PutUint16(c.Desc) }

func (c DynamicConst) put(b *buffer.Dynamic) {
	b.PutUint16(c.Bootstrap)
	b.PutUint16(c.NameAndType)
}

func (c InvokeDynamicConst) put(b *buffer.Dynamic) {
	b.PutUint16(c.Bootstrap)
	b.PutUint16(c.NameAndType)
}

func (c ModuleConst) put(b *buffer.Dynamic)  { b.PutUint16(c.Name) }
func (c PackageConst) put(b *buffer.Dynamic) { b.PutUint16(c.Name) }

// Pool is a constant pool.  Slot 0 is unused, and the slot after a long or
// double entry is nil, as per the class file format.  Entries are appended
// but never modified, so a cloned pool can share them with its source.
type Pool struct {
	consts []Const

	// Lookup indexes, built on first interning.
	utf8Index  map[string]uint16
	classIndex map[string]uint16
	natIndex   map[natKey]uint16
	mrefIndex  map[refKey]uint16
}

type natKey struct{ name, desc uint16 }
type refKey struct{ class, nat uint16 }

// NewPool returns an empty constant pool.
func NewPool() *Pool {
	return &Pool{consts: make([]Const, 1, 16)}
}

func parsePool(load *loader.L) *Pool {
	count := int(load.Uint16())
	if count == 0 {
		panic(cerr.Error("constant pool count is zero"))
	}

	p := &Pool{consts: make([]Const, 1, count)}

	for i := 1; i < count; i++ {
		var c Const

		tag := load.Byte()
		switch tag {
		case tagUtf8:
			c = Utf8{load.String("constant pool entry")}

		case tagInteger:
			c = IntegerConst{load.Uint32()}

		case tagFloat:
			c = FloatConst{load.Uint32()}

		case tagLong:
			c = LongConst{load.Uint64()}

		case tagDouble:
			c = DoubleConst{load.Uint64()}

		case tagClass:
			c = ClassConst{load.Uint16()}

		case tagString:
			c = StringConst{load.Uint16()}

		case tagFieldref:
			c = FieldrefConst{load.Uint16(), load.Uint16()}

		case tagMethodref:
			c = MethodrefConst{load.Uint16(), load.Uint16()}

		case tagInterfaceMethodref:
			c = InterfaceMethodrefConst{load.Uint16(), load.Uint16()}

		case tagNameAndType:
			c = NameAndTypeConst{load.Uint16(), load.Uint16()}

		case tagMethodHandle:
			c = MethodHandleConst{load.Byte(), load.Uint16()}

		case tagMethodType:
			c = MethodTypeConst{load.Uint16()}

		case tagDynamic:
			c = DynamicConst{load.Uint16(), load.Uint16()}

		case tagInvokeDynamic:
			c = InvokeDynamicConst{load.Uint16(), load.Uint16()}

		case tagModule:
			c = ModuleConst{load.Uint16()}

		case tagPackage:
			c = PackageConst{load.Uint16()}

		default:
			panic(cerr.Errorf("unknown constant pool tag %d at index %d", tag, i))
		}

		p.consts = append(p.consts, c)

		if tag == tagLong || tag == tagDouble {
			p.consts = append(p.consts, nil)
			i++
		}
	}

	return p
}

// Clone makes a pool which can be extended without affecting the source.
func (p *Pool) Clone() *Pool {
	consts := make([]Const, len(p.consts), len(p.consts)+8)
	copy(consts, p.consts)
	return &Pool{consts: consts}
}

// Count is the constant_pool_count value of the class file (number of slots
// plus one).
func (p *Pool) Count() int {
	return len(p.consts)
}

// At returns the entry at an index.  Panics with a class error if the index
// is zero, out of range, or the second slot of a long or double entry.
func (p *Pool) At(i uint16) Const {
	if i == 0 || int(i) >= len(p.consts) || p.consts[i] == nil {
		panic(cerr.Errorf("constant pool index %d out of range", i))
	}
	return p.consts[i]
}

// Utf8At resolves a Utf8 entry.  Panics with a class error on kind or index
// mismatch; callers run under an API boundary which recovers.
func (p *Pool) Utf8At(i uint16) string {
	c, ok := p.At(i).(Utf8)
	if !ok {
		panic(cerr.Errorf("constant pool index %d is not a Utf8 entry", i))
	}
	return c.Value
}

// ClassNameAt resolves a Class entry to its internal name.
func (p *Pool) ClassNameAt(i uint16) string {
	c, ok := p.At(i).(ClassConst)
	if !ok {
		panic(cerr.Errorf("constant pool index %d is not a Class entry", i))
	}
	return p.Utf8At(c.Name)
}

func (p *Pool) index() {
	if p.utf8Index != nil {
		return
	}

	p.utf8Index = make(map[string]uint16)
	p.classIndex = make(map[string]uint16)
	p.natIndex = make(map[natKey]uint16)
	p.mrefIndex = make(map[refKey]uint16)

	for i, c := range p.consts {
		switch c := c.(type) {
		case Utf8:
			if _, exist := p.utf8Index[c.Value]; !exist {
				p.utf8Index[c.Value] = uint16(i)
			}

		case ClassConst:
			if int(c.Name) >= len(p.consts) {
				continue
			}
			if name, ok := p.consts[c.Name].(Utf8); ok {
				if _, exist := p.classIndex[name.Value]; !exist {
					p.classIndex[name.Value] = uint16(i)
				}
			}

		case NameAndTypeConst:
			key := natKey{c.Name, c.Desc}
			if _, exist := p.natIndex[key]; !exist {
				p.natIndex[key] = uint16(i)
			}

		case MethodrefConst:
			key := refKey{c.Class, c.NameAndType}
			if _, exist := p.mrefIndex[key]; !exist {
				p.mrefIndex[key] = uint16(i)
			}
		}
	}
}

func (p *Pool) append(c Const) uint16 {
	if len(p.consts) >= 0xffff {
		panic(cerr.Error("constant pool overflow"))
	}
	p.consts = append(p.consts, c)
	return uint16(len(p.consts) - 1)
}

// InternUtf8 finds or appends a Utf8 entry.
func (p *Pool) InternUtf8(s string) uint16 {
	p.index()

	if i, found := p.utf8Index[s]; found {
		return i
	}

	i := p.append(Utf8{s})
	p.utf8Index[s] = i
	return i
}

// InternClass finds or appends a Class entry for an internal class name.
func (p *Pool) InternClass(name string) uint16 {
	p.index()

	if i, found := p.classIndex[name]; found {
		return i
	}

	nameIndex := p.InternUtf8(name)
	i := p.append(ClassConst{nameIndex})
	p.classIndex[name] = i
	return i
}

// InternNameAndType finds or appends a NameAndType entry.
func (p *Pool) InternNameAndType(name, desc string) uint16 {
	p.index()

	key := natKey{p.InternUtf8(name), p.InternUtf8(desc)}
	if i, found := p.natIndex[key]; found {
		return i
	}

	i := p.append(NameAndTypeConst{key.name, key.desc})
	p.natIndex[key] = i
	return i
}

// InternMethodref finds or appends a Methodref entry.
func (p *Pool) InternMethodref(owner, name, desc string) uint16 {
	p.index()

	key := refKey{p.InternClass(owner), p.InternNameAndType(name, desc)}
	if i, found := p.mrefIndex[key]; found {
		return i
	}

	i := p.append(MethodrefConst{key.class, key.nat})
	p.mrefIndex[key] = i
	return i
}

func (p *Pool) put(b *buffer.Dynamic) {
	b.PutUint16(uint16(len(p.consts)))

	for _, c := range p.consts[1:] {
		if c == nil { // second slot of a long or double entry
			continue
		}
		b.PutByte(c.tag())
		c.put(b)
	}
}
