// Copyright (c) 2024 The classpatch authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package classfile_test

import (
	"bytes"
	"testing"

	"github.com/classpatch/classpatch/classfile"
	"github.com/classpatch/classpatch/errors"
	"github.com/classpatch/classpatch/internal/test/javatest"
)

func TestRoundTrip(t *testing.T) {
	for _, test := range [...]struct {
		name string
		data []byte
	}{
		{"Bean", javatest.BeanClass()},
		{"Plain", javatest.PlainClass()},
	} {
		c, err := classfile.Parse(test.data)
		if err != nil {
			t.Fatalf("%s: %v", test.name, err)
		}

		if out := c.Encode(); !bytes.Equal(out, test.data) {
			t.Errorf("%s: re-encoded class differs from input (%d bytes in, %d bytes out)", test.name, len(test.data), len(out))
		}
	}
}

func TestParseBean(t *testing.T) {
	c, err := classfile.Parse(javatest.BeanClass())
	if err != nil {
		t.Fatal(err)
	}

	if c.Name() != "software/amazon/awssdk/enhanced/dynamodb/mapper/BeanTableSchema" {
		t.Error("class name:", c.Name())
	}
	if c.SuperName() != "java/lang/Object" {
		t.Error("superclass name:", c.SuperName())
	}
	if c.Access&classfile.AccPublic == 0 {
		t.Errorf("access flags: %#x", c.Access)
	}

	if len(c.Fields) != 1 || c.Fields[0].Name != "delegate" || c.Fields[0].Desc != "Ljava/lang/Object;" {
		t.Errorf("fields: %v", c.Fields)
	}

	if len(c.Methods) != 4 {
		t.Fatalf("%d methods", len(c.Methods))
	}

	m := &c.Methods[1]
	if m.Name != "getterForProperty" || m.Desc != javatest.GetterDesc {
		t.Error("method:", m.Name, m.Desc)
	}
	if m.Access != classfile.AccPrivate|classfile.AccStatic {
		t.Errorf("method access flags: %#x", m.Access)
	}

	code := m.Code()
	if code == nil {
		t.Fatal("no Code attribute")
	}
	if code.MaxStack != 1 || code.MaxLocals != 2 {
		t.Error("code sizing:", code.MaxStack, code.MaxLocals)
	}
	if !bytes.Equal(code.Insns, []byte{0x01, 0xb0}) {
		t.Errorf("instructions: %#x", code.Insns)
	}

	if len(c.Attrs) != 1 || c.Attrs[0].Name != "SourceFile" {
		t.Errorf("class attributes: %v", c.Attrs)
	}
}

func TestAbstractMethodCode(t *testing.T) {
	c, err := classfile.Parse(javatest.PlainClass())
	if err != nil {
		t.Fatal(err)
	}

	for i := range c.Methods {
		m := &c.Methods[i]
		abstract := m.Access&classfile.AccAbstract != 0

		if code := m.Code(); (code == nil) != abstract {
			t.Errorf("%s: Code attribute presence doesn't match access flags %#x", m.Name, m.Access)
		}
	}
}

func TestParseError(t *testing.T) {
	data := javatest.PlainClass()

	bad := make([]byte, len(data))
	copy(bad, data)
	bad[0] = 0xde

	for _, test := range [...]struct {
		name string
		data []byte
	}{
		{"Empty", nil},
		{"Magic", bad},
		{"Truncated", data[:10]},
		{"TruncatedPool", data[:20]},
		{"Trailing", append(append([]byte{}, data...), 0)},
	} {
		_, err := classfile.Parse(test.data)
		if err == nil {
			t.Errorf("%s: no error", test.name)
			continue
		}
		if _, ok := errors.AsClassError(err); !ok {
			t.Errorf("%s: not a class error: %v", test.name, err)
		}
	}
}

func TestPoolIntern(t *testing.T) {
	c, err := classfile.Parse(javatest.BeanClass())
	if err != nil {
		t.Fatal(err)
	}

	pool := c.Pool.Clone()
	count := pool.Count()

	// Interning existing strings must not grow the pool.
	if i := pool.InternUtf8("getterForProperty"); int(i) >= count {
		t.Error("existing Utf8 entry was appended at", i)
	}
	if i := pool.InternClass("java/lang/Object"); int(i) >= count {
		t.Error("existing Class entry was appended at", i)
	}
	if pool.Count() != count {
		t.Error("pool grew:", count, "->", pool.Count())
	}

	// A new methodref chains new Utf8, Class and NameAndType entries.
	i := pool.InternMethodref(javatest.TargetOwner, "getterForProperty", javatest.GetterDesc)
	mref, ok := pool.At(i).(classfile.MethodrefConst)
	if !ok {
		t.Fatalf("entry %d: %T", i, pool.At(i))
	}
	if name := pool.ClassNameAt(mref.Class); name != javatest.TargetOwner {
		t.Error("owner:", name)
	}
	nat, ok := pool.At(mref.NameAndType).(classfile.NameAndTypeConst)
	if !ok {
		t.Fatalf("entry %d: %T", mref.NameAndType, pool.At(mref.NameAndType))
	}
	if pool.Utf8At(nat.Name) != "getterForProperty" || pool.Utf8At(nat.Desc) != javatest.GetterDesc {
		t.Error("name and type:", pool.Utf8At(nat.Name), pool.Utf8At(nat.Desc))
	}

	if j := pool.InternMethodref(javatest.TargetOwner, "getterForProperty", javatest.GetterDesc); j != i {
		t.Error("methodref interned twice:", i, j)
	}

	// The source pool is unaffected.
	if c.Pool.Count() != count {
		t.Error("source pool grew:", count, "->", c.Pool.Count())
	}
}
