// Copyright 2015, Joe Tsai. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE.md file.

package decode

import (
	"math"

	"github.com/dsnet/conjecture/testdata"
)

// nastyFloats is the table of "nasty" float values the original's floats()
// decoder can select directly, bypassing the general bit-pattern branch —
// boundary and special values most likely to trip up a predicate that
// assumes well-behaved arithmetic. The table is mirrored (each value and
// its negation), giving 32 entries.
var nastyFloats = func() [32]float64 {
	half := []float64{
		0.0, 0.5, 1.0 / 3, 10e6, 10e-6, 1.175494351e-38, 2.2250738585072014e-308,
		1.7976931348623157e+308, 3.402823466e+38, 9007199254740992, 1 - 10e-6,
		1 + 10e-6, 1.192092896e-07, 2.2204460492503131e-016,
		math.Inf(1), math.NaN(),
	}
	var full [32]float64
	copy(full[:16], half)
	for i, f := range half {
		full[16+i] = -f
	}
	return full
}()

// Floats draws a float64 using the original's three-way branch: a nasty
// value from the table, a float formed directly from a drawn integer, or
// the bit reinterpretation of a drawn 64-bit pattern. It incurs cost for
// non-finite and small-but-nonzero results, which is what gives the
// shrinker a reason to prefer 0 or 1 over NaN or a subnormal.
func Floats() Strategy {
	return Define("floats", func(d *testdata.TestData) any {
		branch := 255 - nByteUnsignedRaw(d, 1)
		k := nByteSignedRaw(d, 8)
		var f float64
		switch {
		case branch < 32:
			f = nastyFloats[(31-branch)&31]
		case branch >= 200:
			f = float64(k)
		default:
			f = math.Float64frombits(uint64(k))
		}
		if !isFinite(f) {
			d.IncurCost(2)
		} else if a := math.Abs(f); 0 < a && a < 1 {
			d.IncurCost(1)
		}
		return f
	})
}

func isFinite(f float64) bool {
	return !math.IsInf(f, 0) && !math.IsNaN(f)
}
