// Copyright 2015, Joe Tsai. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE.md file.

package conjecture

import (
	"bytes"

	"github.com/dsnet/conjecture/testdata"
)

// mutateDataToNewBuffer produces one candidate buffer derived from
// lastData, per spec §4.3's mutation rule. It never mutates lastData's own
// buffer; every branch builds and returns a fresh slice.
func (r *TestRunner) mutateDataToNewBuffer() []byte {
	buffer := r.lastData.Buffer()
	index := r.lastData.Index()
	n := index
	if len(buffer) < n {
		n = len(buffer)
	}
	switch n {
	case 0:
		return nil
	case 1:
		return r.random.Bytes(1)
	}

	if r.lastData.Status() == testdata.Overrun {
		// Byte-wise "pull down" blend: every byte is independently zeroed,
		// replaced with a random value no larger than itself, or left
		// alone. The original source computes this blend and then falls
		// through to the splice logic below, discarding it — spec §9
		// documents this as a dead-computation artifact of the original
		// and specifies the blend itself as the intended result, which is
		// what this branch returns.
		result := make([]byte, len(buffer))
		for i, c := range buffer {
			switch r.random.IntRange(0, 2) {
			case 0:
				result[i] = 0
			case 1:
				result[i] = byte(r.random.IntRange(0, int(c)))
			default:
				result[i] = c
			}
		}
		return result
	}

	intervals := r.lastData.Intervals()
	probe := r.random.Byte()
	if probe <= 100 || len(intervals) <= 1 {
		return spliceRandomOrRecordedInterval(r, buffer, index, intervals)
	}
	return crossSpliceTwoIntervals(r, buffer, intervals)
}

// spliceRandomOrRecordedInterval picks a span — either an arbitrary
// [u, v) within the consumed prefix, or a recorded interval — and replaces
// it with zeros, 0xFF bytes, or fresh random bytes, each equiprobable.
func spliceRandomOrRecordedInterval(r *TestRunner, buffer []byte, index int, intervals []testdata.Interval) []byte {
	var u, v int
	if len(intervals) <= 1 || r.random.Bool() {
		u = r.random.IntRange(0, index-2)
		v = r.random.IntRange(u+1, index-1)
	} else {
		iv := intervals[r.random.Intn(len(intervals))]
		u, v = iv.Start, iv.End
	}

	var replace []byte
	switch r.random.IntRange(0, 2) {
	case 0:
		replace = make([]byte, v-u)
	case 1:
		replace = bytes.Repeat([]byte{0xff}, v-u)
	default:
		replace = r.random.Bytes(v - u)
	}
	return spliced(buffer, u, v, replace)
}

// crossSpliceTwoIntervals picks two distinct recorded intervals and
// replaces the first's span with the second's bytes, shifting the tail.
func crossSpliceTwoIntervals(r *TestRunner, buffer []byte, intervals []testdata.Interval) []byte {
	var i1, i2 testdata.Interval
	for i1 == i2 {
		i := r.random.IntRange(0, len(intervals)-2)
		i1 = intervals[i]
		i2 = intervals[r.random.IntRange(i+1, len(intervals)-1)]
	}
	return spliced(buffer, i1.Start, i1.End, buffer[i2.Start:i2.End])
}

// spliced returns buffer[:u] + replace + buffer[v:], always as a fresh
// slice so the caller's buffer is never aliased into the result.
func spliced(buffer []byte, u, v int, replace []byte) []byte {
	out := make([]byte, 0, u+len(replace)+len(buffer)-v)
	out = append(out, buffer[:u]...)
	out = append(out, replace...)
	out = append(out, buffer[v:]...)
	return out
}
