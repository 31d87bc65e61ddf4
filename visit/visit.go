// Copyright (c) 2024 The classpatch authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package visit implements the class visitation chain: a parsed class is
// driven through a stack of decorating visitors, terminated by a Writer
// which assembles the output class.  Decorators forward most events and
// intercept a few.
package visit

import (
	"github.com/classpatch/classpatch/classfile"
	"github.com/classpatch/classpatch/internal/errorpanic"
	"github.com/classpatch/classpatch/jvm"
)

// ClassVisitor receives the members of one class definition, in file order.
type ClassVisitor interface {
	// Begin of the class.  The name is in internal (slash-separated) form.
	Begin(access uint16, name, superName string)

	// Field passes a field definition through.  Fields are never modified.
	Field(f *classfile.Field)

	// Method starts the visitation of one method.  Returning nil drops the
	// method from the output.
	Method(access uint16, name, desc string) MethodVisitor

	// Attr passes a class-level attribute through.
	Attr(a *classfile.Attribute)

	// End of the class.
	End()
}

// MethodVisitor receives the events of one method definition.  For a method
// with a body the sequence is: Code, Body, Maxs, interleaved with Attr for
// the other attributes, then End.  Synthesized bodies arrive as VarInsn,
// MethodInsn and Insn events between Code and Maxs instead of a Body event.
type MethodVisitor interface {
	// Code signals the start of the instruction body.
	Code()

	// VarInsn is a local-variable instruction with a slot operand.
	VarInsn(op jvm.Opcode, slot int)

	// MethodInsn is a method invocation instruction.
	MethodInsn(op jvm.Opcode, owner, name, desc string)

	// Insn is an instruction without operands.
	Insn(op jvm.Opcode)

	// Body is the original instruction stream, exception table and code
	// attributes, passed through as parsed.
	Body(body *classfile.Code)

	// Maxs declares the operand stack and local variable slot requirements.
	// A stack value of zero asks the sink to derive the true value from the
	// synthesized instructions.
	Maxs(stack, locals int)

	// Attr passes a method attribute (annotations, parameter metadata,
	// exceptions, ...) through unchanged.
	Attr(a *classfile.Attribute)

	// End of the method.
	End()
}

// ForwardClass forwards all class events to CV.  Decorators embed it and
// override the events they intercept.
type ForwardClass struct {
	CV ClassVisitor
}

func (f ForwardClass) Begin(access uint16, name, superName string) {
	if f.CV != nil {
		f.CV.Begin(access, name, superName)
	}
}

func (f ForwardClass) Field(a *classfile.Field) {
	if f.CV != nil {
		f.CV.Field(a)
	}
}

func (f ForwardClass) Method(access uint16, name, desc string) MethodVisitor {
	if f.CV != nil {
		return f.CV.Method(access, name, desc)
	}
	return nil
}

func (f ForwardClass) Attr(a *classfile.Attribute) {
	if f.CV != nil {
		f.CV.Attr(a)
	}
}

func (f ForwardClass) End() {
	if f.CV != nil {
		f.CV.End()
	}
}

// ForwardMethod forwards all method events to MV.
type ForwardMethod struct {
	MV MethodVisitor
}

func (f ForwardMethod) Code() {
	if f.MV != nil {
		f.MV.Code()
	}
}

func (f ForwardMethod) VarInsn(op jvm.Opcode, slot int) {
	if f.MV != nil {
		f.MV.VarInsn(op, slot)
	}
}

func (f ForwardMethod) MethodInsn(op jvm.Opcode, owner, name, desc string) {
	if f.MV != nil {
		f.MV.MethodInsn(op, owner, name, desc)
	}
}

func (f ForwardMethod) Insn(op jvm.Opcode) {
	if f.MV != nil {
		f.MV.Insn(op)
	}
}

func (f ForwardMethod) Body(body *classfile.Code) {
	if f.MV != nil {
		f.MV.Body(body)
	}
}

func (f ForwardMethod) Maxs(stack, locals int) {
	if f.MV != nil {
		f.MV.Maxs(stack, locals)
	}
}

func (f ForwardMethod) Attr(a *classfile.Attribute) {
	if f.MV != nil {
		f.MV.Attr(a)
	}
}

func (f ForwardMethod) End() {
	if f.MV != nil {
		f.MV.End()
	}
}

// Accept drives a parsed class through a visitor chain.  The pass is
// synchronous and holds no state of its own; concurrent passes over
// different Writer sinks need no coordination.
func Accept(c *classfile.Class, cv ClassVisitor) (err error) {
	defer func() {
		err = errorpanic.Handle(recover())
	}()

	accept(c, cv)
	return
}

func accept(c *classfile.Class, cv ClassVisitor) {
	cv.Begin(c.Access, c.Name(), c.SuperName())

	for i := range c.Fields {
		cv.Field(&c.Fields[i])
	}

	for i := range c.Methods {
		m := &c.Methods[i]

		mv := cv.Method(m.Access, m.Name, m.Desc)
		if mv == nil {
			continue
		}

		for j := range m.Attrs {
			a := &m.Attrs[j]
			if a.Code != nil {
				mv.Code()
				mv.Body(a.Code)
				mv.Maxs(int(a.Code.MaxStack), int(a.Code.MaxLocals))
			} else {
				mv.Attr(a)
			}
		}

		mv.End()
	}

	for i := range c.Attrs {
		cv.Attr(&c.Attrs[i])
	}

	cv.End()
}
