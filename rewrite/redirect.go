// Copyright (c) 2024 The classpatch authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package rewrite

import (
	"github.com/classpatch/classpatch/jvm"
	"github.com/classpatch/classpatch/visit"
)

// Target names the type whose static methods the rewritten bodies forward
// to.  It must declare, for each Op, a static method with the operation's
// name and the rewritten method's exact descriptor, resolvable when the
// rewritten class is loaded.  Signatures are not cross-checked here; a
// mismatch surfaces as a linkage error at the call site.
type Target struct {
	// Owner is the internal (slash-separated) name of the declaring type.
	Owner string
}

// Redirector is a class visitor decorator which matches methods by name and
// replaces the bodies of the recognized accessor-factory operations with a
// redirect to the target's counterpart.  Everything else passes through
// untouched.
//
// A Redirector holds only the target reference; passes over different
// classes may run concurrently.
type Redirector struct {
	visit.ForwardClass
	target Target
}

// NewRedirector decorating next.
func NewRedirector(next visit.ClassVisitor, target Target) *Redirector {
	return &Redirector{visit.ForwardClass{CV: next}, target}
}

func (r *Redirector) Method(access uint16, name, desc string) visit.MethodVisitor {
	mv := r.ForwardClass.Method(access, name, desc)

	op, found := OpByName(name)
	if !found || mv == nil {
		return mv
	}

	d, err := jvm.ParseMethodDesc(desc)
	if err != nil {
		// Aborts the rewrite of this class; no partial output is emitted.
		panic(err)
	}

	owner := r.target.Owner

	return NewBodyReplacer(mv, d.ArgSlots(), func(w visit.MethodVisitor) {
		w.Code()
		for slot := 0; slot < op.ArgLoads(); slot++ {
			w.VarInsn(jvm.OpALoad, slot)
		}
		w.MethodInsn(jvm.OpInvokeStatic, owner, name, desc)
		w.Insn(jvm.ReturnOp(d.Result))
	})
}
