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

// Unit-base tables map both neighbors and the intermediate primary value
// onto a common unit interval. Values are interpolated at equal unit-base
// coordinates and scaled by the Jacobians of the maps.

func (p pair) unitBaseEvaluate(y float64, f evalFunc, mix mixFunc) float64 {
	lo, hi, mid := p.unitMaps()
	if y < mid.lower || y > mid.upper {
		return 0
	}
	eta := mid.eta(y)
	ylo, yhi := lo.value(eta), hi.value(eta)
	j := mid.jacobian(y)
	return mix(
		f(p.lo, ylo)*(lo.jacobian(ylo)/j),
		f(p.hi, yhi)*(hi.jacobian(yhi)/j),
	)
}

// unitBaseCDFAt returns the mixed CDF at the unit-base coordinate eta.
func (p pair) unitBaseCDFAt(lo, hi unitMap, eta float64) float64 {
	return p.lerp(p.lo.EvaluateCDF(lo.value(eta)), p.hi.EvaluateCDF(hi.value(eta)))
}

func (p pair) unitBaseCDF(y float64) float64 {
	lo, hi, mid := p.unitMaps()
	switch {
	case y <= mid.lower:
		return 0
	case y >= mid.upper:
		return 1
	}
	return p.unitBaseCDFAt(lo, hi, mid.eta(y))
}

// unitBaseSample returns the sampled value, its unit-base coordinate and the
// corresponding value in the lower neighbor.
func (p pair) unitBaseSample(u, cutoff float64, limited bool) (float64, float64, float64) {
	lo, hi, mid := p.unitMaps()
	cdf := func(eta float64) float64 { return p.unitBaseCDFAt(lo, hi, eta) }

	etaMax, target := 1.0, u
	if limited {
		etaMax = mid.eta(cutoff)
		target = u * cdf(etaMax)
	}
	var eta float64
	switch {
	case target <= 0:
		eta = 0
	case !limited && u >= 1:
		eta = 1
	default:
		kinks := make([]float64, 0, len(p.lo.Breakpoints())+len(p.hi.Breakpoints()))
		for _, y := range p.lo.Breakpoints() {
			kinks = append(kinks, lo.eta(y))
		}
		for _, y := range p.hi.Breakpoints() {
			kinks = append(kinks, hi.eta(y))
		}
		eta = invertMonotone(cdf, kinks, 0, etaMax, target, p.tol)
	}
	y := mid.value(eta)
	if limited {
		y = math.Min(y, cutoff)
	}
	return y, eta, lo.value(eta)
}
