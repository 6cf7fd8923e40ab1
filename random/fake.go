// Copyright 2025 Sonic Labs
// This file is part of Radiant Monte Carlo Transport Library
//
// Radiant is free software: you can redistribute it and/or modify
// it under the terms of the GNU Lesser General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
//
// Radiant is distributed in the hope that it will be useful,
// but WITHOUT ANY WARRANTY; without even the implied warranty of
// MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE. See the
// GNU Lesser General Public License for more details.
//
// You should have received a copy of the GNU Lesser General Public License
// along with Radiant. If not, see <http://www.gnu.org/licenses/>.

package random

import (
	"github.com/cockroachdb/errors"
)

// FakeStream replays a fixed sequence of variates. Once the sequence is
// exhausted it starts over from the beginning. It replaces the true generator
// in tests that need exact, reproducible draws.
type FakeStream struct {
	values []float64
	next   int
	drawn  int
}

// NewFakeStream creates a replay stream. Every value must lie in [0,1].
func NewFakeStream(values ...float64) (*FakeStream, error) {
	if len(values) == 0 {
		return nil, errors.New("fake stream needs at least one value")
	}
	for i, v := range values {
		if !(v >= 0 && v <= 1) {
			return nil, errors.Newf("fake stream value %d (%v) is not in [0,1]", i, v)
		}
	}
	cp := make([]float64, len(values))
	copy(cp, values)
	return &FakeStream{values: cp}, nil
}

// MustFakeStream is like NewFakeStream but panics on invalid input.
func MustFakeStream(values ...float64) *FakeStream {
	s, err := NewFakeStream(values...)
	if err != nil {
		panic(err)
	}
	return s
}

// Float64 returns the next value of the sequence.
func (s *FakeStream) Float64() float64 {
	v := s.values[s.next]
	s.next = (s.next + 1) % len(s.values)
	s.drawn++
	return v
}

// Drawn returns how many values have been consumed.
func (s *FakeStream) Drawn() int {
	return s.drawn
}

// Reset restarts the sequence.
func (s *FakeStream) Reset() {
	s.next = 0
	s.drawn = 0
}
