// Copyright 2015, Joe Tsai. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE.md file.

// Package rng implements the TestRunner's seedable pseudo-random source.
// Runs must be reproducible given a seed (see the conjecture package's
// design notes), so this deliberately does not use math/rand's global
// source: it is a small AES-CTR-ish generator whose output is stable across
// Go versions, adapted from the teacher repository's own deterministic test
// RNG rather than built fresh.
package rng

import (
	"crypto/aes"
	"crypto/cipher"
	"encoding/binary"
)

// Source is a deterministic pseudo-random source. The zero value is not
// usable; construct with New.
type Source struct {
	cipher.Block
	blk [aes.BlockSize]byte
}

// New creates a Source seeded deterministically from seed: the same seed
// always produces the same sequence of draws.
func New(seed int64) *Source {
	var key [aes.BlockSize]byte
	binary.LittleEndian.PutUint64(key[:], uint64(seed))
	block, _ := aes.NewCipher(key[:])
	return &Source{Block: block}
}

// Int63 returns a non-negative pseudo-random 63-bit integer.
func (r *Source) Int63() (x int64) {
	r.Encrypt(r.blk[:], r.blk[:])
	x |= int64(r.blk[0]) << 0
	x |= int64(r.blk[1]) << 8
	x |= int64(r.blk[2]) << 16
	x |= int64(r.blk[3]) << 24
	x |= int64(r.blk[4]) << 32
	x |= int64(r.blk[5]) << 40
	x |= int64(r.blk[6]) << 48
	x |= int64(r.blk[7]&0x7f) << 56
	return x
}

// Intn returns a pseudo-random integer in [0, n). It panics if n <= 0.
func (r *Source) Intn(n int) int {
	if n <= 0 {
		panic("rng: argument to Intn must be positive")
	}
	return int(r.Int63() % int64(n))
}

// IntRange returns a pseudo-random integer in [lo, hi], inclusive. It
// panics if lo > hi, matching Python's random.randint contract that the
// mutation algorithm (spec §4.3) is written against.
func (r *Source) IntRange(lo, hi int) int {
	if lo > hi {
		panic("rng: IntRange requires lo <= hi")
	}
	return lo + r.Intn(hi-lo+1)
}

// Bool returns a pseudo-random coin flip.
func (r *Source) Bool() bool {
	return r.Intn(2) == 1
}

// Bytes returns n freshly drawn pseudo-random bytes.
func (r *Source) Bytes(n int) []byte {
	b := make([]byte, n)
	bb := b
	for len(bb) > 0 {
		r.Encrypt(r.blk[:], r.blk[:])
		cnt := copy(bb, r.blk[:])
		bb = bb[cnt:]
	}
	return b
}

// Byte returns a single pseudo-random byte.
func (r *Source) Byte() byte {
	return r.Bytes(1)[0]
}
