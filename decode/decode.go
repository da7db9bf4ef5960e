// Copyright 2015, Joe Tsai. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE.md file.

// Package decode implements the minimal decoding combinators the search
// engine's shrinker depends on: deterministic functions that consume bytes
// from a testdata.TestData and produce a value. Composition is expressed at
// the byte level — a Strategy wraps its underlying decode function in
// testdata.StartExample/StopExample so the substrate records a coherent
// span for it, regardless of how many primitive draws it performs
// internally.
package decode

import "github.com/dsnet/conjecture/testdata"

// Raw is an undecorated decode function: it reads whatever bytes it needs
// from d and returns a value. Raw functions are composed directly (without
// their own example span) when one decoder's implementation is itself built
// out of other decoders' raw forms — exactly as integer_range's rejection
// loop draws raw unsigned integers without wrapping each probe in its own
// example.
type Raw func(d *testdata.TestData) any

// Strategy is a decoder that records its own span as a single Interval,
// wrapping Raw in StartExample/StopExample. Every public constructor in
// this package returns a Strategy; Raw is only used to compose a
// Strategy's own implementation internally.
type Strategy struct {
	raw     Raw
	name    string
	members []Strategy // non-nil only for a Strategy built by Union
}

// Define builds a Strategy from a raw decode function. name is used only
// for diagnostics (see String).
func Define(name string, raw Raw) Strategy {
	return Strategy{raw: raw, name: name}
}

// Draw runs the strategy against d, recording its consumed span as a single
// Interval (unless the span collapses to zero bytes, or duplicates the
// immediately preceding interval; see testdata.TestData.StopExample).
func (s Strategy) Draw(d *testdata.TestData) any {
	d.StartExample()
	v := s.raw(d)
	d.StopExample()
	return v
}

func (s Strategy) String() string {
	if s.name != "" {
		return s.name
	}
	return "strategy(?)"
}

// Map returns a Strategy that draws s and applies f to the result.
func (s Strategy) Map(f func(any) any) Strategy {
	return Define(s.name+".map(...)", func(d *testdata.TestData) any {
		return f(s.Draw(d))
	})
}

// Filter returns a Strategy that draws s repeatedly until f accepts the
// result. If an attempt consumes no further bytes (the draw made no
// progress), the draw is marked Invalid rather than looping forever —
// matching the original's "if data.index == ix: data.mark_invalid()".
func (s Strategy) Filter(f func(any) bool) Strategy {
	return Define(s.name+".filter(...)", func(d *testdata.TestData) any {
		for {
			ix := d.Index()
			v := s.Draw(d)
			if f(v) {
				return v
			}
			if d.Index() == ix {
				d.MarkInvalid()
			}
		}
	})
}

// FlatMap returns a Strategy that draws s, applies f to obtain a second
// Strategy, and draws that strategy in turn, each as its own example
// (matching flatmapped's "f(strategy.draw(data)).draw(data)", where the
// trailing ".draw(data)" is Strategy.draw, not the raw form — the produced
// strategy's span does not coincide with any enclosing one, so it is
// recorded as its own nested interval rather than elided).
func (s Strategy) FlatMap(f func(any) Strategy) Strategy {
	return Define(s.name+".flatmap(...)", func(d *testdata.TestData) any {
		return f(s.Draw(d)).Draw(d)
	})
}

// Just returns a Strategy that draws no bytes and always returns value.
func Just(value any) Strategy {
	return Define("just(...)", func(d *testdata.TestData) any {
		return value
	})
}

// Union returns a Strategy that selects uniformly among strategies (via
// IntegerRange over the index space) and draws the selected one. A
// strategy that is itself the result of Union contributes its members
// directly rather than being nested, matching the original's
// `union(*args)` flattening of UnionStrategy arguments.
func Union(strategies ...Strategy) Strategy {
	var members []Strategy
	for _, s := range strategies {
		if s.members != nil {
			members = append(members, s.members...)
		} else {
			members = append(members, s)
		}
	}
	if len(members) == 0 {
		panic("decode: union of zero strategies")
	}
	s := Define("union(...)", func(d *testdata.TestData) any {
		i := int(integerRangeRaw(d, 0, uint64(len(members)-1)))
		return members[i].Draw(d)
	})
	s.members = members
	return s
}
