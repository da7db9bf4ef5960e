// Copyright 2016, Joe Tsai. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE.md file.

// Package bufgen implements a small token DSL for building literal test
// buffers, adapted from the teacher repository's BitGen format
// (internal/testutil/bitgen.go). Where BitGen describes a bit-stream for
// scripting compressed-format test vectors, bufgen describes a byte buffer
// for scripting TestData fixtures: the repeated runs and hex blobs that
// spec §8's literal scenarios ("b'\x00'*100", "b'\x00'*800 + b'\x01'*200")
// are easiest to write as tokens rather than bytes.Repeat calls scattered
// across every test file.
package bufgen

import (
	"encoding/hex"
	"errors"
	"strconv"
	"strings"
)

// Decode decodes a bufgen formatted string into a byte buffer.
//
// The format is a series of whitespace-separated tokens. The '#' character
// starts a line comment. Each token is one of:
//
//   - "H:<hex>"  a literal run of hexadecimal bytes, e.g. "H:deadbeef".
//   - "<hex>"    the same hexadecimal run without the prefix, most often a
//     single byte, e.g. "ff".
//
// Any token may carry a trailing "*N" quantifier, which repeats that
// token's bytes N times, e.g. "00*800 01*200" decodes to 800 zero bytes
// followed by 200 bytes of 0x01 — precisely spec §8 scenario 2's expected
// output.
func Decode(s string) ([]byte, error) {
	var out []byte
	for _, line := range strings.Split(s, "\n") {
		if i := strings.IndexByte(line, '#'); i >= 0 {
			line = line[:i]
		}
		for _, tok := range strings.Fields(line) {
			b, err := decodeToken(tok)
			if err != nil {
				return nil, err
			}
			out = append(out, b...)
		}
	}
	return out, nil
}

// MustDecode decodes s as Decode does, panicking on a malformed token. It
// is meant for use in test fixtures, where a malformed token is a bug in
// the test itself.
func MustDecode(s string) []byte {
	b, err := Decode(s)
	if err != nil {
		panic(err)
	}
	return b
}

func decodeToken(tok string) ([]byte, error) {
	rep := 1
	if i := strings.LastIndexByte(tok, '*'); i >= 0 {
		n, err := strconv.Atoi(tok[i+1:])
		if err != nil {
			return nil, errors.New("bufgen: invalid quantifier on token: " + tok)
		}
		tok, rep = tok[:i], n
	}

	hexPart := tok
	if strings.HasPrefix(tok, "H:") {
		hexPart = tok[2:]
	}
	b, err := hex.DecodeString(hexPart)
	if err != nil {
		return nil, errors.New("bufgen: invalid token: " + tok)
	}

	out := make([]byte, 0, len(b)*rep)
	for i := 0; i < rep; i++ {
		out = append(out, b...)
	}
	return out, nil
}
