// Copyright (c) 2024 The classpatch authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package jvm

import (
	"reflect"
	"testing"
)

func TestParseMethodDesc(t *testing.T) {
	for _, test := range [...]struct {
		desc     string
		params   []Type
		result   Type
		argSlots int
	}{
		{"()V", nil, Void, 0},
		{"()I", nil, Int, 0},
		{"(I)V", []Type{Int}, Void, 1},
		{"(ZBCSI)I", []Type{Int, Int, Int, Int, Int}, Int, 5},
		{"(JD)J", []Type{Long, Double}, Long, 4},
		{"(F)D", []Type{Float}, Double, 1},
		{"(Ljava/lang/Class;)Ljava/util/function/Supplier;", []Type{Ref}, Ref, 1},
		{"(Ljava/lang/Object;Ljava/lang/String;)Ljava/lang/Object;", []Type{Ref, Ref}, Ref, 2},
		{"([I)V", []Type{Ref}, Void, 1},
		{"([[J[Ljava/lang/String;)[D", []Type{Ref, Ref}, Ref, 2},
		{"(IJ[Ljava/lang/Object;D)Ljava/lang/Object;", []Type{Int, Long, Ref, Double}, Ref, 6},
	} {
		d, err := ParseMethodDesc(test.desc)
		if err != nil {
			t.Errorf("%s: %v", test.desc, err)
			continue
		}

		if !reflect.DeepEqual(d.Params, test.params) {
			t.Errorf("%s: parameters: %v", test.desc, d.Params)
		}
		if d.Result != test.result {
			t.Errorf("%s: result: %s", test.desc, d.Result)
		}
		if n := d.ArgSlots(); n != test.argSlots {
			t.Errorf("%s: argument slots: %d", test.desc, n)
		}
		if d.String() != test.desc {
			t.Errorf("%s: string: %s", test.desc, d.String())
		}
	}
}

func TestParseMethodDescError(t *testing.T) {
	for _, desc := range [...]string{
		"",
		"V",
		"foo",
		"(",
		"()",
		"(I",
		"([",
		"(Ljava/lang/Object)V",
		"(Q)V",
		"()Q",
		"()VV",
		"()II",
		"()Ljava/lang/Object",
	} {
		if _, err := ParseMethodDesc(desc); err == nil {
			t.Errorf("%q: no error", desc)
		}
	}
}

func TestTypeSlots(t *testing.T) {
	for _, test := range [...]struct {
		t     Type
		slots int
	}{
		{Void, 0},
		{Int, 1},
		{Long, 2},
		{Float, 1},
		{Double, 2},
		{Ref, 1},
	} {
		if n := test.t.Slots(); n != test.slots {
			t.Errorf("%s: %d slots", test.t, n)
		}
	}
}

func TestReturnOp(t *testing.T) {
	for _, test := range [...]struct {
		t  Type
		op Opcode
	}{
		{Void, OpReturn},
		{Int, OpIReturn},
		{Long, OpLReturn},
		{Float, OpFReturn},
		{Double, OpDReturn},
		{Ref, OpAReturn},
	} {
		if op := ReturnOp(test.t); op != test.op {
			t.Errorf("%s: %s", test.t, op)
		}
	}
}

func TestLoadOp(t *testing.T) {
	for _, test := range [...]struct {
		t  Type
		op Opcode
	}{
		{Int, OpILoad},
		{Long, OpLLoad},
		{Float, OpFLoad},
		{Double, OpDLoad},
		{Ref, OpALoad},
	} {
		if op := LoadOp(test.t); op != test.op {
			t.Errorf("%s: %s", test.t, op)
		}
		if typ := LoadedType(test.op); typ != test.t {
			t.Errorf("%s: loaded type %s", test.op, typ)
		}
	}
}
