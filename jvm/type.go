// Copyright (c) 2024 The classpatch authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package jvm has miscellaneous types which describe JVM method signatures
// and the bytecode instructions emitted by the rewriter.
package jvm

// Type is the computational category of a value described by a field or
// method descriptor.  The integral kinds (boolean, byte, char, short, int)
// are collapsed into Int, and class and array references into Ref, as the
// distinction doesn't matter for slot accounting or return instruction
// selection.
type Type uint8

const (
	Void = Type(iota)
	Int
	Long
	Float
	Double
	Ref
)

// Slots occupied by a value of this type in the operand stack or the local
// variable array.
func (t Type) Slots() int {
	switch t {
	case Void:
		return 0

	case Long, Double:
		return 2

	default:
		return 1
	}
}

func (t Type) String() string {
	switch t {
	case Void:
		return "void"

	case Int:
		return "int"

	case Long:
		return "long"

	case Float:
		return "float"

	case Double:
		return "double"

	case Ref:
		return "reference"

	default:
		return "<invalid type>"
	}
}
