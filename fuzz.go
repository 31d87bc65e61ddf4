// Copyright (c) 2024 The classpatch authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

//go:build gofuzz
// +build gofuzz

package classpatch

import (
	"github.com/classpatch/classpatch/errors"
	"github.com/classpatch/classpatch/rewrite"
)

var fuzzConfig = func() *Config {
	c := new(Config)
	c.Register(BeanTableSchema, Redirect(rewrite.Target{
		Owner: "org/acme/dynamodb/fix/runtime/BeanTableSchemaSubstitutionImplementation",
	}))
	return c
}()

func Fuzz(data []byte) int {
	_, err := fuzzConfig.Transform(BeanTableSchema, data)
	if err != nil {
		if _, ok := errors.AsClassError(err); ok {
			return 0
		}
		panic(err)
	}
	return 1
}
