// Copyright (c) 2024 The classpatch authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package visit_test

import (
	"bytes"
	"testing"

	"github.com/classpatch/classpatch/classfile"
	"github.com/classpatch/classpatch/internal/test/javatest"
	"github.com/classpatch/classpatch/visit"
)

// A pass with no decorators must reproduce the input bytes.
func TestWriterIdentity(t *testing.T) {
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

		w := visit.NewWriter(c)
		if err := visit.Accept(c, w); err != nil {
			t.Fatalf("%s: %v", test.name, err)
		}

		if out := w.Bytes(); !bytes.Equal(out, test.data) {
			t.Errorf("%s: output differs from input (%d bytes in, %d bytes out)", test.name, len(test.data), len(out))
		}
	}
}

type methodDropper struct {
	visit.ForwardClass
	name string
}

func (d *methodDropper) Method(access uint16, name, desc string) visit.MethodVisitor {
	if name == d.name {
		return nil
	}
	return d.ForwardClass.Method(access, name, desc)
}

func TestMethodDrop(t *testing.T) {
	data := javatest.BeanClass()

	c, err := classfile.Parse(data)
	if err != nil {
		t.Fatal(err)
	}

	w := visit.NewWriter(c)
	if err := visit.Accept(c, &methodDropper{visit.ForwardClass{CV: w}, "toString"}); err != nil {
		t.Fatal(err)
	}

	out, err := classfile.Parse(w.Bytes())
	if err != nil {
		t.Fatal(err)
	}

	if len(out.Methods) != len(c.Methods)-1 {
		t.Fatalf("%d methods", len(out.Methods))
	}
	for i := range out.Methods {
		if out.Methods[i].Name == "toString" {
			t.Error("dropped method is present")
		}
	}
}
