// Copyright (c) 2024 The classpatch authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package errorpanic converts recovered panic values back to errors at API
// boundaries.
package errorpanic

import (
	"io"
	"runtime"

	"golang.org/x/xerrors"

	"github.com/classpatch/classpatch/internal/cerr"
)

func Handle(x interface{}) (err error) {
	if x != nil {
		err, _ = x.(error)
		if err == nil {
			panic(x)
		}

		if _, ok := err.(runtime.Error); ok {
			panic(x)
		}

		switch {
		case xerrors.Is(err, io.EOF), xerrors.Is(err, io.ErrUnexpectedEOF):
			err = cerr.ErrUnexpectedEOF
		}
	}

	return
}
