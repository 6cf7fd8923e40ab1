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
)

// Direct and Stochastic tables evaluate both neighbors at the same raw
// secondary value. The CDF is the linear mixture of the neighbor CDFs and is
// inverted numerically, so densities are mixed linearly to stay its
// derivative.

func (p pair) directEvaluate(y float64, f evalFunc, mix mixFunc) float64 {
	return mix(f(p.lo, y), f(p.hi, y))
}

func (p pair) directCDF(y float64) float64 {
	return p.lerp(p.lo.EvaluateCDF(y), p.hi.EvaluateCDF(y))
}

func (p pair) directSample(u, cutoff float64, limited bool) float64 {
	lower, upper := p.unionBounds()
	target := u
	if limited {
		upper = cutoff
		target = u * p.directCDF(cutoff)
	}
	switch {
	case target <= 0:
		return lower
	case !limited && u >= 1:
		return upper
	}
	kinks := append(append([]float64(nil), p.lo.Breakpoints()...), p.hi.Breakpoints()...)
	y := invertMonotone(p.directCDF, kinks, lower, upper, target, p.tol)
	return math.Min(y, upper)
}

// stochasticPick selects a neighbor and rescales u onto [0,1] for it. The
// upper neighbor is selected with probability t, or with its share of the
// mixture mass below cutoff when limited.
func (p pair) stochasticPick(u, cutoff float64, limited bool) (bool, float64) {
	wlo, whi := 1-p.t, p.t
	if limited {
		wlo *= p.lo.EvaluateCDF(cutoff)
		whi *= p.hi.EvaluateCDF(cutoff)
	}
	total := wlo + whi
	if total <= 0 {
		return p.hi.LowerBound() < p.lo.LowerBound(), 0
	}
	split := wlo / total
	if u < split || whi <= 0 {
		return false, math.Min(u/split, 1)
	}
	return true, math.Min((u-split)/(1-split), 1)
}
