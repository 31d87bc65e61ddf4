// Copyright (c) 2024 The classpatch authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package rewrite

import (
	"github.com/classpatch/classpatch/classfile"
	"github.com/classpatch/classpatch/jvm"
	"github.com/classpatch/classpatch/visit"
)

// BodyReplacer is a method visitor which discards the original instruction
// body and emits a supplied one instead.  The start-of-body event triggers
// the emit callback against the downstream visitor; the original body and
// its stack/locals sizing are dropped, with the locals count replaced by a
// precomputed value and the stack size left for the sink to derive.  All
// other events (annotations, parameter metadata, end) pass through
// unchanged.
//
// The replacer doesn't know why a body is being replaced; it is reusable for
// any fixed-shape forwarding rewrite.
type BodyReplacer struct {
	next   visit.MethodVisitor
	locals int
	emit   func(visit.MethodVisitor)
}

// NewBodyReplacer wraps the downstream visitor.  The emit callback is
// invoked once, when the replaced method's body starts.
func NewBodyReplacer(next visit.MethodVisitor, locals int, emit func(visit.MethodVisitor)) *BodyReplacer {
	return &BodyReplacer{next, locals, emit}
}

func (r *BodyReplacer) Code() {
	r.emit(r.next)
}

// Original instructions are discarded.
func (r *BodyReplacer) VarInsn(op jvm.Opcode, slot int)                    {}
func (r *BodyReplacer) MethodInsn(op jvm.Opcode, owner, name, desc string) {}
func (r *BodyReplacer) Insn(op jvm.Opcode)                                 {}
func (r *BodyReplacer) Body(body *classfile.Code)                          {}

func (r *BodyReplacer) Maxs(stack, locals int) {
	r.next.Maxs(0, r.locals)
}

func (r *BodyReplacer) Attr(a *classfile.Attribute) {
	r.next.Attr(a)
}

func (r *BodyReplacer) End() {
	r.next.End()
}
