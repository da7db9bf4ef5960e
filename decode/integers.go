// Copyright 2015, Joe Tsai. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE.md file.

package decode

import "github.com/dsnet/conjecture/testdata"

// nByteUnsignedRaw reads n freshly drawn bytes and interprets them as a
// big-endian unsigned integer. n must be between 0 and 8 inclusive.
func nByteUnsignedRaw(d *testdata.TestData, n int) uint64 {
	b := d.DrawBytes(n)
	var v uint64
	for _, c := range b {
		v = v<<8 | uint64(c)
	}
	return v
}

// NByteUnsigned is the unsigned-draw primitive of the decoder contract: it
// returns the big-endian integer formed by n freshly drawn bytes.
func NByteUnsigned(n int) Strategy {
	return Define("n_byte_unsigned", func(d *testdata.TestData) any {
		return nByteUnsignedRaw(d, n)
	})
}

// nByteSignedRaw reads n freshly drawn bytes as two's-complement big-endian.
func nByteSignedRaw(d *testdata.TestData, n int) int64 {
	u := nByteUnsignedRaw(d, n)
	if n == 0 {
		return 0
	}
	signBit := uint64(1) << uint(n*8-1)
	if u&signBit != 0 {
		return int64(u) - int64(signBit<<1)
	}
	return int64(u)
}

// NByteSigned draws n bytes as a two's-complement big-endian signed integer.
func NByteSigned(n int) Strategy {
	return Define("n_byte_signed", func(d *testdata.TestData) any {
		return nByteSignedRaw(d, n)
	})
}

// integerRangeRaw performs the bounded integer draw of the decoder
// contract: rejection sampling over a bit-spread mask of the gap between
// lower and upper, repeatedly drawing ceil(bits/8) bytes until the masked
// probe falls within [0, gap].
func integerRangeRaw(d *testdata.TestData, lower, upper uint64) uint64 {
	if lower == upper {
		return lower
	}
	gap := upper - lower
	mask := saturate(gap)
	nbytes := ceilBytes(mask)
	for {
		probe := nByteUnsignedRaw(d, nbytes) & mask
		if probe <= gap {
			return lower + probe
		}
	}
}

// IntegerRange draws a uniformly-distributed integer in [lower, upper] via
// rejection sampling, per the decoder contract's bounded integer draw.
func IntegerRange(lower, upper uint64) Strategy {
	if lower > upper {
		panic("decode: IntegerRange requires lower <= upper")
	}
	return Define("integer_range", func(d *testdata.TestData) any {
		return integerRangeRaw(d, lower, upper)
	})
}

// Byte draws a single unsigned byte.
func Byte() Strategy {
	return Define("byte", func(d *testdata.TestData) any {
		return nByteUnsignedRaw(d, 1)
	})
}

// Bool draws a single byte and returns its parity, matching the original's
// booleans() == bool(byte() % 2).
func Bool() Strategy {
	return Define("booleans", func(d *testdata.TestData) any {
		return nByteUnsignedRaw(d, 1)%2 != 0
	})
}

// Bytes draws n freshly drawn bytes and returns them as a []byte, wrapped in
// their own example span like every other primitive in this package. n is
// fixed at construction; callers needing a variable-length draw should pair
// Bytes with a length prefix (e.g. NByteUnsigned) via FlatMap.
func Bytes(n int) Strategy {
	return Define("bytes", func(d *testdata.TestData) any {
		return d.DrawBytes(n)
	})
}

// Uint64 draws an unsigned 64-bit integer.
func Uint64() Strategy { return NByteUnsigned(8) }

// Integers is the union of signed n-byte draws for n in 1..8, matching the
// original's `integers = union(*[n_byte_signed(n) for n in range(1, 9)])`.
func Integers() Strategy {
	strategies := make([]Strategy, 8)
	for i := range strategies {
		strategies[i] = NByteSigned(i + 1)
	}
	return Union(strategies...)
}
