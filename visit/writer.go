// Copyright (c) 2024 The classpatch authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package visit

import (
	"fmt"

	"github.com/classpatch/classpatch/classfile"
	"github.com/classpatch/classpatch/internal/cerr"
	"github.com/classpatch/classpatch/jvm"
)

// Writer is the terminal sink of a visitor chain.  It assembles a new class
// from the events it receives, reusing the source class's constant pool (a
// clone, extended by interning) so that untouched members re-encode exactly
// as they were read.
//
// Writer is not a general-purpose class assembler: class identity (name,
// superclass, interfaces, version) is taken from the source class, and only
// the instruction subset emitted by body synthesis is supported.
type Writer struct {
	out  classfile.Class
	pool *classfile.Pool
}

// NewWriter for transforming src.  src is not mutated.
func NewWriter(src *classfile.Class) *Writer {
	pool := src.Pool.Clone()

	return &Writer{
		out: classfile.Class{
			Minor:      src.Minor,
			Major:      src.Major,
			Pool:       pool,
			Access:     src.Access,
			This:       src.This,
			Super:      src.Super,
			Interfaces: src.Interfaces,
		},
		pool: pool,
	}
}

func (w *Writer) Begin(access uint16, name, superName string) {
	w.out.Access = access
}

func (w *Writer) Field(f *classfile.Field) {
	w.out.Fields = append(w.out.Fields, *f)
}

func (w *Writer) Method(access uint16, name, desc string) MethodVisitor {
	return &methodWriter{
		w: w,
		m: classfile.Method{
			Access:    access,
			NameIndex: w.pool.InternUtf8(name),
			DescIndex: w.pool.InternUtf8(desc),
			Name:      name,
			Desc:      desc,
		},
		codeAt: -1,
	}
}

func (w *Writer) Attr(a *classfile.Attribute) {
	w.out.Attrs = append(w.out.Attrs, *a)
}

func (w *Writer) End() {}

// Class returns the assembled class.  Valid after End.
func (w *Writer) Class() *classfile.Class {
	return &w.out
}

// Bytes encodes the assembled class.  Valid after End.
func (w *Writer) Bytes() []byte {
	return w.out.Encode()
}

type methodWriter struct {
	w *Writer
	m classfile.Method

	codeAt int // attribute position of the Code attribute, or -1
	raw    *classfile.Code
	insns  []byte
	synth  bool
	stack  int
	locals int

	curStack, maxStack int
}

func (mw *methodWriter) Code() {
	if mw.codeAt < 0 {
		mw.codeAt = len(mw.m.Attrs)
		mw.m.Attrs = append(mw.m.Attrs, classfile.Attribute{})
	}
}

func (mw *methodWriter) VarInsn(op jvm.Opcode, slot int) {
	switch op {
	case jvm.OpILoad, jvm.OpLLoad, jvm.OpFLoad, jvm.OpDLoad, jvm.OpALoad:
	default:
		panic(fmt.Sprintf("unsupported local-variable instruction: %s", op))
	}

	switch {
	case slot >= 0 && slot <= 3:
		// Short form: iload_0 etc.
		base := 0x1a + (int(op)-int(jvm.OpILoad))*4
		mw.insns = append(mw.insns, byte(base+slot))

	case slot <= 0xff:
		mw.insns = append(mw.insns, byte(op), byte(slot))

	case slot <= 0xffff:
		mw.insns = append(mw.insns, 0xc4, byte(op), byte(slot>>8), byte(slot)) // wide

	default:
		panic(cerr.Errorf("local variable slot out of range: %d", slot))
	}

	mw.synth = true
	mw.push(jvm.LoadedType(op).Slots())
}

func (mw *methodWriter) MethodInsn(op jvm.Opcode, owner, name, desc string) {
	if op != jvm.OpInvokeStatic {
		panic(fmt.Sprintf("unsupported invocation instruction: %s", op))
	}

	d, err := jvm.ParseMethodDesc(desc)
	if err != nil {
		panic(err)
	}

	index := mw.w.pool.InternMethodref(owner, name, desc)
	mw.insns = append(mw.insns, byte(op), byte(index>>8), byte(index))

	mw.synth = true
	mw.curStack -= d.ArgSlots()
	mw.push(d.Result.Slots())
}

func (mw *methodWriter) Insn(op jvm.Opcode) {
	mw.insns = append(mw.insns, byte(op))
	mw.synth = true
}

func (mw *methodWriter) push(slots int) {
	mw.curStack += slots
	if mw.curStack > mw.maxStack {
		mw.maxStack = mw.curStack
	}
}

func (mw *methodWriter) Body(body *classfile.Code) {
	mw.raw = body
}

func (mw *methodWriter) Maxs(stack, locals int) {
	mw.stack = stack
	mw.locals = locals
}

func (mw *methodWriter) Attr(a *classfile.Attribute) {
	mw.m.Attrs = append(mw.m.Attrs, *a)
}

func (mw *methodWriter) End() {
	if mw.codeAt >= 0 {
		var code *classfile.Code

		if mw.synth {
			stack := mw.stack
			if stack == 0 {
				stack = mw.maxStack
			}
			code = &classfile.Code{
				MaxStack:  uint16(stack),
				MaxLocals: uint16(mw.locals),
				Insns:     mw.insns,
			}
		} else {
			// Pass-through body with the declared sizing.
			code = &classfile.Code{
				MaxStack:  uint16(mw.stack),
				MaxLocals: uint16(mw.locals),
			}
			if mw.raw != nil {
				code.Insns = mw.raw.Insns
				code.Handlers = mw.raw.Handlers
				code.Attrs = mw.raw.Attrs
			}
		}

		mw.m.Attrs[mw.codeAt] = classfile.Attribute{
			NameIndex: mw.w.pool.InternUtf8(classfile.AttrCode),
			Name:      classfile.AttrCode,
			Code:      code,
		}
	}

	mw.w.out.Methods = append(mw.w.out.Methods, mw.m)
}
