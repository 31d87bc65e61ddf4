// Copyright (c) 2024 The classpatch authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package classpatch

import (
	"github.com/tliron/commonlog"

	"github.com/classpatch/classpatch/classfile"
	"github.com/classpatch/classpatch/rewrite"
	"github.com/classpatch/classpatch/visit"
)

var log = commonlog.GetLogger("classpatch")

// BeanTableSchema is the class whose accessor factories break under
// classloader isolation.  It is the default rewrite target.
const BeanTableSchema = "software.amazon.awssdk.enhanced.dynamodb.mapper.BeanTableSchema"

// Transformer decorates the output class visitor of one class's load.  It
// mirrors the registration contract of host class-loading pipelines: the
// host supplies the class name and the terminal visitor, the transformer
// returns the visitor the class should be driven through.
type Transformer func(className string, next visit.ClassVisitor) visit.ClassVisitor

// Redirect makes a transformer which rewrites the recognized
// accessor-factory methods to forward to the target's static counterparts.
func Redirect(target rewrite.Target) Transformer {
	return func(className string, next visit.ClassVisitor) visit.ClassVisitor {
		return rewrite.NewRedirector(next, target)
	}
}

// Config maps fully qualified (dot-separated) class names to transformers.
// Register all classes before the first Transform call; afterwards the
// configuration is read-only and safe for concurrent use.
type Config struct {
	transformers map[string]Transformer
}

// Register a transformer for one class name.  Exactly one transformer per
// class; a later registration replaces an earlier one.
func (c *Config) Register(className string, t Transformer) {
	if c.transformers == nil {
		c.transformers = make(map[string]Transformer)
	}
	c.transformers[className] = t
}

// Registered reports whether a class name has a transformer.
func (c *Config) Registered(className string) bool {
	_, found := c.transformers[className]
	return found
}

// Transform a class file.  Classes without a registered transformer are
// returned as-is.  On error no partial output is returned: the caller's
// class load fails instead of falling back to the broken original behavior.
func (c *Config) Transform(className string, data []byte) ([]byte, error) {
	t := c.transformers[className]
	if t == nil {
		return data, nil
	}

	cls, err := classfile.Parse(data)
	if err != nil {
		return nil, err
	}

	w := visit.NewWriter(cls)

	if err := visit.Accept(cls, t(className, w)); err != nil {
		return nil, err
	}

	log.Infof("rewrote class: %s", className)

	return w.Bytes(), nil
}
