// Copyright (c) 2024 The classpatch authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package cerr implements the error values which indicate a malformed or
// unsupported class file.
package cerr

import (
	"fmt"
	"io"
)

type classError string

func Error(text string) error {
	return classError(text)
}

func Errorf(format string, args ...interface{}) error {
	return classError(fmt.Sprintf(format, args...))
}

func (s classError) Error() string      { return string(s) }
func (s classError) ClassError() string { return string(s) }

type wrappedError struct {
	text  string
	cause error
}

func WrapError(cause error, text string) error {
	return &wrappedError{text, cause}
}

func (e *wrappedError) Error() string      { return e.text }
func (e *wrappedError) ClassError() string { return e.text }
func (e *wrappedError) Unwrap() error      { return e.cause }

var ErrUnexpectedEOF unexpectedEOF

type unexpectedEOF struct{}

func (unexpectedEOF) Error() string      { return io.ErrUnexpectedEOF.Error() }
func (unexpectedEOF) ClassError() string { return io.ErrUnexpectedEOF.Error() }
func (unexpectedEOF) Unwrap() error      { return io.ErrUnexpectedEOF }
