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

// Streams derives statistically independent, reproducible streams from a
// master seed. The stream of a history depends only on the master seed and the
// history index, never on the order in which histories are simulated.
type Streams struct {
	seed uint64
}

// NewStreams creates a stream factory for the given master seed.
func NewStreams(seed uint64) Streams {
	return Streams{seed: seed}
}

// Seed returns the master seed.
func (s Streams) Seed() uint64 {
	return s.seed
}

// ForHistory returns the stream of the given history.
func (s Streams) ForHistory(history uint64) *Stream {
	return NewStream(splitMix64(s.seed ^ splitMix64(history+1)))
}

// splitMix64 scrambles x so that nearby seeds yield unrelated generator states.
func splitMix64(x uint64) uint64 {
	x += 0x9e3779b97f4a7c15
	x = (x ^ (x >> 30)) * 0xbf58476d1ce4e5b9
	x = (x ^ (x >> 27)) * 0x94d049bb133111eb
	return x ^ (x >> 31)
}
