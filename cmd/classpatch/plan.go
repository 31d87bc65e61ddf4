// Copyright (c) 2024 The classpatch authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package main

import (
	"fmt"
	"os"

	"github.com/BurntSushi/toml"

	"github.com/classpatch/classpatch"
	"github.com/classpatch/classpatch/rewrite"
)

// Plan is a TOML patch plan:
//
//	[[patch]]
//	class = "software.amazon.awssdk.enhanced.dynamodb.mapper.BeanTableSchema"
//	owner = "org/acme/dynamodb/fix/runtime/BeanTableSchemaSubstitutionImplementation"
type Plan struct {
	Patch []Patch `toml:"patch"`
}

// Patch maps one target class to a redirect target type.
type Patch struct {
	Class string `toml:"class"`
	Owner string `toml:"owner"`
}

func loadPlan(path string) (*Plan, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}

	var plan Plan
	if err := toml.Unmarshal(data, &plan); err != nil {
		return nil, fmt.Errorf("parse error in %s: %w", path, err)
	}

	return &plan, nil
}

func (p *Plan) configure(config *classpatch.Config) error {
	for i, patch := range p.Patch {
		if patch.Class == "" || patch.Owner == "" {
			return fmt.Errorf("patch %d needs both class and owner", i)
		}

		config.Register(patch.Class, classpatch.Redirect(rewrite.Target{
			Owner: internalName(patch.Owner),
		}))
	}
	return nil
}
