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

package twod

import (
	"math"
	"slices"
	"sort"
)

// maxIterations bounds every iterative search of this package.
const maxIterations = 200

// invertMonotone returns s in [lo, hi] with f(s) = target for a
// non-decreasing f, within the relative tolerance tol. Where f jumps over
// target the smallest s with f(s) >= target is returned. The search first
// narrows the interval to the segment between two kinks of f, then runs the
// Illinois variant of regula falsi with bisection steps whenever the bracket
// shrinks too slowly.
func invertMonotone(f func(float64) float64, kinks []float64, lo, hi, target, tol float64) float64 {
	pts := segmentPoints(kinks, lo, hi)
	k := sort.Search(len(pts), func(i int) bool { return f(pts[i]) > target }) - 1
	k = max(0, min(k, len(pts)-2))

	a, b := pts[k], pts[k+1]
	fa, fb := f(a)-target, f(b)-target
	if fa >= 0 {
		return a
	}
	if fb <= 0 {
		return b
	}
	// a step of f at the kink b
	if f(math.Nextafter(b, a)) < target {
		return b
	}

	side, bisect := 0, false
	for range maxIterations {
		s := 0.5 * (a + b)
		if !bisect {
			if r := b - fb*(b-a)/(fb-fa); r > a && r < b {
				s = r
			}
		}
		width := b - a
		fs := f(s) - target
		if math.Abs(fs) <= tol*target {
			return s
		}
		if s == a || s == b {
			return b
		}
		if fs < 0 {
			a, fa = s, fs
			if side == -1 {
				fb *= 0.5
			}
			side = -1
		} else {
			b, fb = s, fs
			if side == 1 {
				fa *= 0.5
			}
			side = 1
		}
		bisect = b-a > 0.5*width
	}
	return b
}

// segmentPoints returns lo, the kinks strictly inside (lo, hi) and hi in
// increasing order without duplicates.
func segmentPoints(kinks []float64, lo, hi float64) []float64 {
	pts := make([]float64, 0, len(kinks)+2)
	pts = append(pts, lo)
	for _, k := range kinks {
		if k > lo && k < hi {
			pts = append(pts, k)
		}
	}
	pts = append(pts, hi)
	slices.Sort(pts)
	return slices.Compact(pts)
}

// bisectRank returns the smallest u in [0,1] with value(u) >= y for a
// non-decreasing value.
func bisectRank(value func(float64) float64, y float64) float64 {
	a, b := 0.0, 1.0
	for range maxIterations {
		m := 0.5 * (a + b)
		if m == a || m == b {
			break
		}
		if value(m) < y {
			a = m
		} else {
			b = m
		}
	}
	return 0.5 * (a + b)
}
