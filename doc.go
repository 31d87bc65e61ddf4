// Copyright (c) 2024 The classpatch authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

/*
Package classpatch rewrites selected methods of JVM class files at load
time, replacing their bodies with a redirect to an external static
implementation.

See the Config.Transform function's source code for an example of how to use
the low-level APIs (implemented in subpackages).

# Errors

ClassError type is accessible via the errors subpackage.  Such errors may be
returned by parsing and transformation functions, and indicate a malformed
or unsupported class file.  Other types of errors indicate an internal
defect.  (Unexpected EOF is a ClassError which wraps io.ErrUnexpectedEOF.)
*/
package classpatch
