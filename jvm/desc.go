// Copyright (c) 2024 The classpatch authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package jvm

import (
	"github.com/classpatch/classpatch/internal/cerr"
)

// MethodDesc is the parsed form of a method descriptor string such as
// "(Ljava/lang/Object;Ljava/lang/String;)Ljava/lang/Object;".
type MethodDesc struct {
	Params []Type
	Result Type

	raw string
}

// ParseMethodDesc parses a method descriptor.  The error is a class error:
// the descriptor didn't come out of a well-formed class file.
func ParseMethodDesc(desc string) (d MethodDesc, err error) {
	d.raw = desc

	if len(desc) == 0 || desc[0] != '(' {
		err = cerr.Errorf("method descriptor doesn't start with a parameter list: %q", desc)
		return
	}

	s := desc[1:]

	for len(s) > 0 && s[0] != ')' {
		var t Type

		t, s, err = parseFieldType(desc, s)
		if err != nil {
			return
		}

		d.Params = append(d.Params, t)
	}

	if len(s) == 0 {
		err = cerr.Errorf("method descriptor has unterminated parameter list: %q", desc)
		return
	}

	s = s[1:] // ')'

	if len(s) == 0 {
		err = cerr.Errorf("method descriptor has no return type: %q", desc)
		return
	}

	if s[0] == 'V' {
		s = s[1:]
	} else {
		d.Result, s, err = parseFieldType(desc, s)
		if err != nil {
			return
		}
	}

	if len(s) != 0 {
		err = cerr.Errorf("method descriptor has trailing characters: %q", desc)
	}
	return
}

func parseFieldType(desc, s string) (t Type, tail string, err error) {
	dims := 0
	for len(s) > 0 && s[0] == '[' {
		dims++
		s = s[1:]
	}

	if len(s) == 0 {
		err = cerr.Errorf("method descriptor is truncated: %q", desc)
		return
	}

	switch s[0] {
	case 'Z', 'B', 'C', 'S', 'I':
		t = Int
		tail = s[1:]

	case 'J':
		t = Long
		tail = s[1:]

	case 'F':
		t = Float
		tail = s[1:]

	case 'D':
		t = Double
		tail = s[1:]

	case 'L':
		end := -1
		for i := 1; i < len(s); i++ {
			if s[i] == ';' {
				end = i
				break
			}
		}
		if end < 0 {
			err = cerr.Errorf("method descriptor has unterminated class type: %q", desc)
			return
		}
		t = Ref
		tail = s[end+1:]

	default:
		err = cerr.Errorf("method descriptor has unknown type %q: %q", s[0], desc)
	}

	// An array is a reference regardless of its element type.
	if err == nil && dims > 0 {
		t = Ref
	}
	return
}

// ArgSlots is the number of local variable slots taken by the parameters.
// It doesn't include a receiver slot: the methods being rewritten are
// static.
func (d MethodDesc) ArgSlots() (n int) {
	for _, t := range d.Params {
		n += t.Slots()
	}
	return
}

func (d MethodDesc) String() string {
	return d.raw
}
