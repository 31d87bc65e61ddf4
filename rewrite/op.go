// Copyright (c) 2024 The classpatch authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package rewrite replaces the bodies of selected methods with a redirect to
// an external static implementation.  It exists to work around a
// classloader-isolation defect: accessor lambdas created by the rewritten
// factory methods resolve their defining class in the wrong loader on
// invocation, so the factories are redirected to substitutions which don't
// go through the lambda metafactory.
package rewrite

// Op identifies one of the accessor-factory operations that get redirected.
type Op uint8

const (
	SupplierForClass = Op(iota)
	GetterForProperty
	SetterForProperty

	numOps
)

var opNames = [numOps]string{
	SupplierForClass:  "newObjectSupplierForClass",
	GetterForProperty: "getterForProperty",
	SetterForProperty: "setterForProperty",
}

// MethodName of the operation.  The redirect target declares its static
// counterpart under the same name.
func (op Op) MethodName() string {
	return opNames[op]
}

// ArgLoads is the number of leading argument slots a redirecting body loads:
// the receiver argument, plus the property identifier for the two
// property-based operations.
func (op Op) ArgLoads() int {
	if op == SupplierForClass {
		return 1
	}
	return 2
}

func (op Op) String() string {
	if op < numOps {
		return opNames[op]
	}
	return "<invalid op>"
}

// OpByName matches a method name against the recognized operations.
func OpByName(name string) (op Op, found bool) {
	for op = Op(0); op < numOps; op++ {
		if opNames[op] == name {
			found = true
			return
		}
	}
	return
}
