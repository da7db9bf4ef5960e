// Copyright 2015, Joe Tsai. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE.md file.

package conjecture

import "sort"

// shrink runs the shrink-pass battery of spec §4.3 to quiescence (a full
// outer sweep that makes no change) or until MaxShrinks accepted
// Interesting->Interesting transitions have been spent, whichever comes
// first. The latter is enforced by incorporateNewBuffer panicking
// stopShrinking, which Run's errRecover catches.
func (r *TestRunner) shrink() {
	initialChanges := r.changed
	changeCounter := -1
	for initialChanges+r.settings.MaxShrinks >= r.changed && r.changed > changeCounter {
		changeCounter = r.changed

		r.deleteIntervalsToFixpoint()
		r.sortIntervalBytes()
		r.zeroSlidingWindow()
		r.byteLevelReduce()
		r.adjacentSwapTowardSorted()
		if r.changed > changeCounter {
			continue
		}

		r.byteDeletionWithBorrow()
		if r.changed > changeCounter {
			continue
		}

		r.equalByteCoupledReduction()
		if r.changed > changeCounter {
			continue
		}

		r.lexicographicPairAdjustment()
	}
}

// deleteIntervalsToFixpoint attempts to delete each recorded interval's
// span, in the longest-first order Freeze established. An accepted
// deletion does not advance past the current position, since a new
// interval has now slid into it; the whole pass repeats until a complete
// scan makes no change, exploiting the fact that deleting a big chunk
// often exposes further structure to delete.
func (r *TestRunner) deleteIntervalsToFixpoint() {
	counter := -1
	for r.changed > counter {
		counter = r.changed
		i := 0
		for i < len(r.lastData.Intervals()) {
			iv := r.lastData.Intervals()[i]
			if !r.incorporateNewBuffer(spliced(r.lastData.Buffer(), iv.Start, iv.End, nil)) {
				i++
			}
		}
	}
}

// sortIntervalBytes replaces each recorded interval's span with its own
// bytes in ascending sorted order.
func (r *TestRunner) sortIntervalBytes() {
	for i := 0; i < len(r.lastData.Intervals()); i++ {
		iv := r.lastData.Intervals()[i]
		buf := r.lastData.Buffer()
		span := append([]byte(nil), buf[iv.Start:iv.End]...)
		sort.Slice(span, func(a, b int) bool { return span[a] < span[b] })
		r.incorporateNewBuffer(spliced(buf, iv.Start, iv.End, span))
	}
}

// zeroSlidingWindow tries replacing every 8-byte window with zeros,
// independent of interval structure — useful when a long run of
// non-interval-aligned bytes is irrelevant to the predicate.
func (r *TestRunner) zeroSlidingWindow() {
	const windowSize = 8
	for i := 0; i <= len(r.lastData.Buffer())-windowSize; i++ {
		buf := r.lastData.Buffer()
		if i+windowSize > len(buf) {
			break
		}
		r.incorporateNewBuffer(spliced(buf, i, i+windowSize, make([]byte, windowSize)))
	}
}

// byteLevelReduce tries, for each byte position, deleting the byte; if
// that fails, it tries substituting every value below the byte's current
// value in ascending order, either alone or followed by a fresh random
// tail (the latter lets the search escape a local minimum where a later
// byte's value constrains what this byte is allowed to be).
func (r *TestRunner) byteLevelReduce() {
	for i := 0; i < len(r.lastData.Buffer()); i++ {
		buf := r.lastData.Buffer()
		if r.incorporateNewBuffer(spliced(buf, i, i+1, nil)) {
			continue
		}
		for c := 0; c < int(buf[i]); c++ {
			if r.incorporateNewBuffer(spliced(buf, i, i+1, []byte{byte(c)})) {
				break
			}
			tail := append([]byte{byte(c)}, r.random.Bytes(len(buf)-i-1)...)
			if r.incorporateNewBuffer(spliced(buf, i, len(buf), tail)) {
				break
			}
		}
	}
}

// adjacentSwapTowardSorted tries swapping every out-of-order adjacent pair.
func (r *TestRunner) adjacentSwapTowardSorted() {
	for i := 0; i+1 < len(r.lastData.Buffer()); i++ {
		j := i + 1
		buf := r.lastData.Buffer()
		if buf[i] > buf[j] {
			r.incorporateNewBuffer(spliced(buf, i, j+1, []byte{buf[j], buf[i]}))
		}
	}
}

// byteDeletionWithBorrow tries deleting each byte; if that is rejected and
// the byte is zero, it walks left looking for a non-zero byte to decrement,
// wrapping every zero it passes over to 0xFF (the byte-buffer analogue of
// borrowing in subtraction).
func (r *TestRunner) byteDeletionWithBorrow() {
	for i := 0; i < len(r.lastData.Buffer()); i++ {
		buf := r.lastData.Buffer()
		if r.incorporateNewBuffer(spliced(buf, i, i+1, nil)) {
			continue
		}
		if buf[i] != 0 {
			continue
		}
		mutated := append([]byte(nil), buf...)
		for j := i; j >= 0; j-- {
			if mutated[j] > 0 {
				mutated[j]--
				r.incorporateNewBuffer(mutated)
				break
			}
			mutated[j] = 0xff
		}
	}
}

// midSlice returns buf[lo:hi], or nil if the range is empty or inverted —
// a small permissive-slicing helper so the coupled-reduction and
// lexicographic passes below can be transcribed without the bounds
// juggling Go's strict slice semantics would otherwise force on them.
func midSlice(buf []byte, lo, hi int) []byte {
	if lo >= hi {
		return nil
	}
	return buf[lo:hi]
}

// equalByteCoupledReduction buckets byte positions by value and, for every
// ordered pair of positions sharing a value, tries lowering both
// simultaneously (with a borrow-style wraparound when the shared value is
// zero) — pairs of equal bytes often encode the same logical quantity
// twice, and shrinking them independently gets stuck where shrinking them
// together does not.
func (r *TestRunner) equalByteCoupledReduction() {
	var buckets [256][]int
	for i, c := range r.lastData.Buffer() {
		buckets[c] = append(buckets[c], i)
	}
	type pair struct{ j, k int }
	var indices []pair
	for _, bucket := range buckets {
		if len(bucket) <= 1 {
			continue
		}
		for _, j := range bucket {
			for _, k := range bucket {
				if j < k {
					indices = append(indices, pair{j, k})
				}
			}
		}
	}

	for _, p := range indices {
		j, k := p.j, p.k
		buf := r.lastData.Buffer()
		if k >= len(buf) || buf[j] != buf[k] {
			continue
		}
		c := buf[j]
		if c == 0 {
			if j > 0 && buf[j-1] > 0 && buf[k-1] > 0 {
				candidate := append([]byte(nil), buf[:j-1]...)
				candidate = append(candidate, buf[j-1]-1, 0xff)
				candidate = append(candidate, midSlice(buf, j+1, k-1)...)
				candidate = append(candidate, buf[k-1]-1, 0xff)
				candidate = append(candidate, buf[k+1:]...)
				r.incorporateNewBuffer(candidate)
			}
		}

		buf = r.lastData.Buffer()
		if j >= len(buf) || k >= len(buf) {
			continue
		}
		c = buf[j]
		if c == 0 {
			continue
		}
		bd := c - 1
		candidate := append([]byte(nil), buf[:j]...)
		candidate = append(candidate, bd)
		candidate = append(candidate, midSlice(buf, j+1, k)...)
		candidate = append(candidate, bd)
		candidate = append(candidate, buf[k+1:]...)
		if !r.incorporateNewBuffer(candidate) {
			continue
		}
		for d := byte(0); d < bd; d++ {
			buf = r.lastData.Buffer()
			if j >= len(buf) || k >= len(buf) {
				break
			}
			candidate := append([]byte(nil), buf[:j]...)
			candidate = append(candidate, d)
			candidate = append(candidate, midSlice(buf, j+1, k)...)
			candidate = append(candidate, d)
			candidate = append(candidate, buf[k+1:]...)
			if r.incorporateNewBuffer(candidate) {
				break
			}
		}
	}
}

// lexicographicPairAdjustment scans forward pairs (j, k) and tries to make
// the buffer more lexicographically ordered: swapping an out-of-order pair,
// or decrementing both of a positive unequal pair together.
func (r *TestRunner) lexicographicPairAdjustment() {
	for j := 0; ; j++ {
		buf := r.lastData.Buffer()
		if j >= len(buf) {
			break
		}
		if buf[j] == 0 {
			continue
		}
		for k := j + 1; ; k++ {
			buf = r.lastData.Buffer()
			if k >= len(buf) {
				break
			}
			if buf[j] > buf[k] {
				candidate := append([]byte(nil), buf[:j]...)
				candidate = append(candidate, buf[k])
				candidate = append(candidate, midSlice(buf, j+1, k)...)
				candidate = append(candidate, buf[j])
				candidate = append(candidate, buf[k+1:]...)
				r.incorporateNewBuffer(candidate)
			}

			buf = r.lastData.Buffer()
			if k >= len(buf) {
				break
			}
			if buf[j] > 0 && buf[k] > 0 && buf[j] != buf[k] {
				candidate := append([]byte(nil), buf[:j]...)
				candidate = append(candidate, buf[j]-1)
				candidate = append(candidate, midSlice(buf, j+1, k)...)
				candidate = append(candidate, buf[k]-1)
				candidate = append(candidate, buf[k+1:]...)
				r.incorporateNewBuffer(candidate)
			}
		}
	}
}
