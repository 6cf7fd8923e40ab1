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
	"golang.org/x/exp/rand"
)

//go:generate mockgen -source source.go -destination source_mock.go -package random

// Source supplies independent uniform variates on [0,1). Implementations are
// not required to be safe for concurrent use; each transport history owns its
// own Source.
type Source interface {
	// Float64 returns the next uniform variate in [0,1).
	Float64() float64
}

// Stream is a reproducible Source backed by a PCG generator.
type Stream struct {
	rg *rand.Rand
}

// NewStream creates a stream seeded with the given value.
func NewStream(seed uint64) *Stream {
	return &Stream{rg: rand.New(rand.NewSource(seed))}
}

// Float64 returns the next uniform variate in [0,1).
func (s *Stream) Float64() float64 {
	return s.rg.Float64()
}
