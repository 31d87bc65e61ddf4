// Copyright (c) 2024 The classpatch authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package jvm

// Opcode of a JVM bytecode instruction.  Only the opcodes which the rewriter
// can emit are enumerated; pass-through bodies are never decoded.
type Opcode uint8

const (
	OpILoad = Opcode(0x15)
	OpLLoad = Opcode(0x16)
	OpFLoad = Opcode(0x17)
	OpDLoad = Opcode(0x18)
	OpALoad = Opcode(0x19)

	OpIReturn = Opcode(0xac)
	OpLReturn = Opcode(0xad)
	OpFReturn = Opcode(0xae)
	OpDReturn = Opcode(0xaf)
	OpAReturn = Opcode(0xb0)
	OpReturn  = Opcode(0xb1)

	OpInvokeStatic = Opcode(0xb8)
)

var opcodeStrings = map[Opcode]string{
	OpILoad:        "iload",
	OpLLoad:        "lload",
	OpFLoad:        "fload",
	OpDLoad:        "dload",
	OpALoad:        "aload",
	OpIReturn:      "ireturn",
	OpLReturn:      "lreturn",
	OpFReturn:      "freturn",
	OpDReturn:      "dreturn",
	OpAReturn:      "areturn",
	OpReturn:       "return",
	OpInvokeStatic: "invokestatic",
}

func (op Opcode) String() (s string) {
	s = opcodeStrings[op]
	if s == "" {
		s = "<unsupported opcode>"
	}
	return
}

// LoadOp is the local-variable load instruction for a value type.
func LoadOp(t Type) Opcode {
	switch t {
	case Int:
		return OpILoad

	case Long:
		return OpLLoad

	case Float:
		return OpFLoad

	case Double:
		return OpDLoad

	default:
		return OpALoad
	}
}

// ReturnOp is the return instruction matching a method descriptor's return
// type.
func ReturnOp(t Type) Opcode {
	switch t {
	case Void:
		return OpReturn

	case Int:
		return OpIReturn

	case Long:
		return OpLReturn

	case Float:
		return OpFReturn

	case Double:
		return OpDReturn

	default:
		return OpAReturn
	}
}

// LoadedType is the value type pushed by a load instruction.
func LoadedType(op Opcode) Type {
	switch op {
	case OpILoad:
		return Int

	case OpLLoad:
		return Long

	case OpFLoad:
		return Float

	case OpDLoad:
		return Double

	default:
		return Ref
	}
}
