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

	"github.com/0xsoniclabs/radiant/distribution"
	"github.com/0xsoniclabs/radiant/interp"
)

// evalFunc selects the quantity evaluated on a distribution.
type evalFunc func(d distribution.Distribution, y float64) float64

// mixFunc combines a lower and an upper neighbor quantity.
type mixFunc func(a, b float64) float64

func value(d distribution.Distribution, y float64) float64 {
	return d.Evaluate(y)
}

func density(d distribution.Distribution, y float64) float64 {
	return d.EvaluatePDF(y)
}

// pair holds two neighboring distributions and the interpolation fraction
// t in (0,1) of a primary value between them.
type pair struct {
	lo, hi distribution.Distribution
	t      float64
	scheme interp.TwoD
	tol    float64
}

// lerp mixes linearly and returns equal end points exactly.
func (p pair) lerp(a, b float64) float64 {
	return interp.LinLin.Mix(p.t, a, b)
}

// mixValues mixes tabulated values along the primary axis.
func (p pair) mixValues(a, b float64) float64 {
	return p.scheme.Primary().Mix(p.t, a, b)
}

// mixSecondary mixes secondary values along the primary axis.
func (p pair) mixSecondary(a, b float64) float64 {
	return p.scheme.Conditional().Mix(p.t, a, b)
}

func (p pair) unionBounds() (float64, float64) {
	return math.Min(p.lo.LowerBound(), p.hi.LowerBound()),
		math.Max(p.lo.UpperBound(), p.hi.UpperBound())
}

func (p pair) interpolatedBounds() (float64, float64) {
	return p.mixSecondary(p.lo.LowerBound(), p.hi.LowerBound()),
		p.mixSecondary(p.lo.UpperBound(), p.hi.UpperBound())
}

// unitMaps returns the unit-base maps of the lower and upper neighbor and of
// the intermediate primary value.
func (p pair) unitMaps() (lo, hi, mid unitMap) {
	axis := p.scheme.Y
	lower, upper := p.interpolatedBounds()
	return newUnitMap(axis, p.lo.LowerBound(), p.lo.UpperBound()),
		newUnitMap(axis, p.hi.LowerBound(), p.hi.UpperBound()),
		newUnitMap(axis, lower, upper)
}

// neighborInSubrange inverts u in d restricted to values not above cutoff.
func neighborInSubrange(d distribution.Distribution, u, cutoff float64) float64 {
	if cutoff < d.LowerBound() {
		return d.LowerBound()
	}
	y, err := d.SampleWithRandomNumberInSubrange(u, cutoff)
	if err != nil {
		return d.LowerBound()
	}
	return y
}
