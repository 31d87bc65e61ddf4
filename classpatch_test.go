// Copyright (c) 2024 The classpatch authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package classpatch_test

import (
	"bytes"
	"testing"

	"github.com/classpatch/classpatch"
	"github.com/classpatch/classpatch/classfile"
	"github.com/classpatch/classpatch/errors"
	"github.com/classpatch/classpatch/internal/test/javatest"
	"github.com/classpatch/classpatch/rewrite"
)

func makeConfig() *classpatch.Config {
	c := new(classpatch.Config)
	c.Register(classpatch.BeanTableSchema, classpatch.Redirect(rewrite.Target{
		Owner: javatest.TargetOwner,
	}))
	return c
}

func TestTransform(t *testing.T) {
	data := javatest.BeanClass()

	patched, err := makeConfig().Transform(classpatch.BeanTableSchema, data)
	if err != nil {
		t.Fatal(err)
	}
	if bytes.Equal(patched, data) {
		t.Fatal("class was not rewritten")
	}

	c, err := classfile.Parse(patched)
	if err != nil {
		t.Fatal(err)
	}

	for i := range c.Methods {
		m := &c.Methods[i]

		switch m.Name {
		case "newObjectSupplierForClass", "getterForProperty", "setterForProperty":
			code := m.Code()
			if code == nil {
				t.Fatalf("%s: no Code attribute", m.Name)
			}
			if code.Insns[len(code.Insns)-1] != 0xb0 { // areturn
				t.Errorf("%s: instructions: %#x", m.Name, code.Insns)
			}
			if code.Insns[len(code.Insns)-3] != 0xb8 { // invokestatic
				t.Errorf("%s: instructions: %#x", m.Name, code.Insns)
			}

		case "toString":
			if !bytes.Equal(m.Code().Insns, []byte{0x01, 0xb0}) {
				t.Errorf("%s: instructions: %#x", m.Name, m.Code().Insns)
			}
		}
	}
}

func TestTransformUnregistered(t *testing.T) {
	data := javatest.PlainClass()

	out, err := makeConfig().Transform("com.example.Plain", data)
	if err != nil {
		t.Fatal(err)
	}
	if !bytes.Equal(out, data) {
		t.Error("unregistered class was modified")
	}
}

func TestTransformMalformed(t *testing.T) {
	config := makeConfig()

	for _, test := range [...]struct {
		name string
		data []byte
	}{
		{"Garbage", []byte("hello, world\n")},
		{"Truncated", javatest.BeanClass()[:16]},
	} {
		_, err := config.Transform(classpatch.BeanTableSchema, test.data)
		if err == nil {
			t.Errorf("%s: no error", test.name)
			continue
		}
		if _, ok := errors.AsClassError(err); !ok {
			t.Errorf("%s: not a class error: %v", test.name, err)
		}
	}
}

func TestRegistered(t *testing.T) {
	config := makeConfig()

	if !config.Registered(classpatch.BeanTableSchema) {
		t.Error("registered class not reported")
	}
	if config.Registered("com.example.Plain") {
		t.Error("unregistered class reported")
	}
}
