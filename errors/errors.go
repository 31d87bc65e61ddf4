// Copyright (c) 2024 The classpatch authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package errors exports common error types without unnecessary dependencies.
package errors

import (
	"golang.org/x/xerrors"
)

// ClassError indicates that the error is caused by an unsupported or
// malformed class file.  It may wrap an underlying error.
type ClassError interface {
	error
	ClassError() string
}

// AsClassError returns the error as a ClassError if it is one.
func AsClassError(err error) (e ClassError, ok bool) {
	ok = xerrors.As(err, &e)
	return
}
