// Copyright (c) 2024 The classpatch authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package javatest assembles small class files for tests.
package javatest

import (
	"github.com/classpatch/classpatch/classfile"
)

// TargetOwner is the redirect target used throughout the tests.
const TargetOwner = "org/acme/dynamodb/fix/runtime/BeanTableSchemaSubstitutionImplementation"

// Descriptors of the accessor-factory methods.
const (
	SupplierDesc = "(Ljava/lang/Class;)Ljava/util/function/Supplier;"
	GetterDesc   = "(Ljava/lang/Object;Ljava/lang/String;)Ljava/lang/Object;"
	SetterDesc   = "(Ljava/lang/Object;Ljava/lang/String;)Ljava/lang/Object;"
)

// Builder accumulates class members and encodes them as a class file.
type Builder struct {
	c    classfile.Class
	pool *classfile.Pool
}

func NewBuilder(name, superName string) *Builder {
	pool := classfile.NewPool()

	b := &Builder{
		c: classfile.Class{
			Major:  52, // Java 8
			Pool:   pool,
			Access: classfile.AccPublic | classfile.AccSuper,
		},
		pool: pool,
	}

	b.c.This = pool.InternClass(name)
	b.c.Super = pool.InternClass(superName)
	return b
}

// Pool gives tests access to the constant pool being built.
func (b *Builder) Pool() *classfile.Pool {
	return b.pool
}

func (b *Builder) AddField(access uint16, name, desc string) {
	b.c.Fields = append(b.c.Fields, classfile.Field{
		Access:    access,
		NameIndex: b.pool.InternUtf8(name),
		DescIndex: b.pool.InternUtf8(desc),
		Name:      name,
		Desc:      desc,
	})
}

// AddMethod with an optional body and extra raw attributes.
func (b *Builder) AddMethod(access uint16, name, desc string, code *classfile.Code, attrs ...classfile.Attribute) {
	m := classfile.Method{
		Access:    access,
		NameIndex: b.pool.InternUtf8(name),
		DescIndex: b.pool.InternUtf8(desc),
		Name:      name,
		Desc:      desc,
	}

	if code != nil {
		m.Attrs = append(m.Attrs, classfile.Attribute{
			NameIndex: b.pool.InternUtf8(classfile.AttrCode),
			Name:      classfile.AttrCode,
			Code:      code,
		})
	}
	m.Attrs = append(m.Attrs, attrs...)

	b.c.Methods = append(b.c.Methods, m)
}

// RawAttr makes an attribute with an arbitrary payload.
func (b *Builder) RawAttr(name string, data []byte) classfile.Attribute {
	return classfile.Attribute{
		NameIndex: b.pool.InternUtf8(name),
		Name:      name,
		Data:      data,
	}
}

// AddSourceFile adds a class-level SourceFile attribute.
func (b *Builder) AddSourceFile(name string) {
	i := b.pool.InternUtf8(name)
	b.c.Attrs = append(b.c.Attrs, b.RawAttr("SourceFile", []byte{byte(i >> 8), byte(i)}))
}

// Annotation makes a RuntimeVisibleAnnotations payload with one
// parameterless annotation of the given type descriptor.
func (b *Builder) Annotation(typeDesc string) classfile.Attribute {
	i := b.pool.InternUtf8(typeDesc)
	data := []byte{
		0, 1, // num_annotations
		byte(i >> 8), byte(i), // type_index
		0, 0, // num_element_value_pairs
	}
	return b.RawAttr("RuntimeVisibleAnnotations", data)
}

func (b *Builder) Bytes() []byte {
	return b.c.Encode()
}

// NullBody is a minimal "return null" instruction body.
func NullBody(maxLocals int) *classfile.Code {
	return &classfile.Code{
		MaxStack:  1,
		MaxLocals: uint16(maxLocals),
		Insns:     []byte{0x01, 0xb0}, // aconst_null, areturn
	}
}

// BeanClass builds a stand-in for the targeted accessor-factory class: the
// three recognized static factory methods plus unrelated members.
func BeanClass() []byte {
	b := NewBuilder("software/amazon/awssdk/enhanced/dynamodb/mapper/BeanTableSchema", "java/lang/Object")

	b.AddField(classfile.AccPrivate|classfile.AccFinal, "delegate", "Ljava/lang/Object;")

	priv := classfile.AccPrivate | classfile.AccStatic
	b.AddMethod(priv, "newObjectSupplierForClass", SupplierDesc, NullBody(1))
	b.AddMethod(priv, "getterForProperty", GetterDesc, NullBody(2), b.Annotation("Lcom/example/Generated;"))
	b.AddMethod(priv, "setterForProperty", SetterDesc, NullBody(2))
	b.AddMethod(classfile.AccPublic, "toString", "()Ljava/lang/String;", NullBody(1))

	b.AddSourceFile("BeanTableSchema.java")

	return b.Bytes()
}

// PlainClass builds a class with no recognized method names.
func PlainClass() []byte {
	b := NewBuilder("com/example/Plain", "java/lang/Object")

	b.AddField(classfile.AccPrivate, "count", "I")
	b.AddMethod(classfile.AccPublic, "get", "()I", &classfile.Code{
		MaxStack:  1,
		MaxLocals: 1,
		Insns:     []byte{0x03, 0xac}, // iconst_0, ireturn
	})
	b.AddMethod(classfile.AccPublic|classfile.AccAbstract, "run", "()V", nil)

	b.AddSourceFile("Plain.java")

	return b.Bytes()
}
