// Copyright 2015, Joe Tsai. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE.md file.

package conjecture

// Settings configures a TestRunner. Any zero-valued field falls back to its
// DefaultSettings value (see withDefaults), so the zero value selects the
// defaults throughout and a literal need only set the fields that matter.
type Settings struct {
	// BufferSize is the size, in bytes, of a freshly generated seed buffer.
	BufferSize int
	// Mutations is the number of mutation attempts per generation before
	// the runner gives up on the current seed and generates a fresh one.
	Mutations int
	// Generations is the number of fresh seeds the runner will try before
	// giving up entirely.
	Generations int
	// MaxShrinks bounds the number of accepted Interesting->Interesting
	// transitions during the shrink phase.
	MaxShrinks int
}

// DefaultSettings returns the engine's default configuration.
func DefaultSettings() Settings {
	return Settings{
		BufferSize:  8 * 1024,
		Mutations:   50,
		Generations: 100,
		MaxShrinks:  2000,
	}
}

// withDefaults fills any zero-valued field of s with DefaultSettings,
// leaving explicitly chosen fields untouched — the same permissive
// defaulting a caller gets from the teacher's own small value-type
// configuration structs.
func (s Settings) withDefaults() Settings {
	d := DefaultSettings()
	if s.BufferSize == 0 {
		s.BufferSize = d.BufferSize
	}
	if s.Mutations == 0 {
		s.Mutations = d.Mutations
	}
	if s.Generations == 0 {
		s.Generations = d.Generations
	}
	if s.MaxShrinks == 0 {
		s.MaxShrinks = d.MaxShrinks
	}
	return s
}
