// Copyright 2015, Joe Tsai. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE.md file.

package decode

import "github.com/dsnet/conjecture/testdata"

// listStoppingValue is the byte threshold at or below which the list
// decoder stops drawing further elements, matching the original's
// `lists(data, draw_element)` stopping_value of 50.
const listStoppingValue = 50

// Lists draws a variable-length list of elements. Before each element, a
// stopping byte is drawn (wrapped in its own example, as in the original);
// a value <= listStoppingValue ends the list. Each element, and each
// stopping check, is wrapped in its own example so the shrinker sees a span
// per element plus a span per continuation decision.
func Lists(element Strategy) Strategy {
	return Define("lists(...)", func(d *testdata.TestData) any {
		var result []any
		for {
			stop := false
			func() {
				d.StartExample()
				defer d.StopExample()
				if nByteUnsignedRaw(d, 1) <= listStoppingValue {
					stop = true
				}
			}()
			if stop {
				break
			}
			result = append(result, element.Draw(d))
		}
		return result
	})
}

// Tuple2 draws two independently-typed values in sequence, each as its own
// example via Strategy.Draw (matching tuples(data, *args)). Drawn through
// its own Draw, the tuple as a whole is also recorded as one enclosing span.
func Tuple2(a, b Strategy) Strategy {
	return Define("tuple(...)", func(d *testdata.TestData) any {
		return [2]any{a.Draw(d), b.Draw(d)}
	})
}

// Tuple3 draws three independently-typed values in sequence.
func Tuple3(a, b, c Strategy) Strategy {
	return Define("tuple(...)", func(d *testdata.TestData) any {
		return [3]any{a.Draw(d), b.Draw(d), c.Draw(d)}
	})
}

// TupleN draws an arbitrary number of values in sequence, matching the
// original's variadic `tuples(data, *args)` for arities Tuple2/Tuple3 don't
// cover.
func TupleN(elements ...Strategy) Strategy {
	return Define("tuple(...)", func(d *testdata.TestData) any {
		result := make([]any, len(elements))
		for i, e := range elements {
			result[i] = e.Draw(d)
		}
		return result
	})
}
