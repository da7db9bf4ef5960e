// Copyright 2015, Joe Tsai. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE.md file.

package conjecture

import (
	"log"
	"os"
)

// debug mirrors the teacher's own package-level boolean gate (there
// computed from a "debug" build tag in brotli/debug.go and
// internal/gofuzz.go; here from an environment variable, since a search
// engine's users want to toggle tracing without a recompile). It is read
// once at init and never again.
var debug = os.Getenv("CONJECTURE_DEBUG") == "true"

// debugf logs via the standard library logger, the same unstructured
// diagnostic idiom the teacher uses in its internal/tool command-line
// programs, only when debug is set.
func debugf(format string, args ...interface{}) {
	if debug {
		log.Printf(format, args...)
	}
}
