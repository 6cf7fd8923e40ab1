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

	"github.com/0xsoniclabs/radiant/interp"
)

// Correlated tables invert one random number u in both neighbors. The CDF at
// a secondary value y is the u whose correlated sample is y; the density
// follows from the derivative of the sample with respect to u.

// correlatedSample returns the sample, the inverted value in the lower
// neighbor and its secondary bin.
func (p pair) correlatedSample(u float64) (float64, float64, int) {
	ylo, bin := p.lo.SampleAndRecordBinIndex(u)
	yhi := p.hi.SampleWithRandomNumber(u)
	return p.mixSecondary(ylo, yhi), ylo, bin
}

func (p pair) correlatedSampleInSubrange(u, cutoff float64) (float64, float64, int) {
	ylo := neighborInSubrange(p.lo, u, cutoff)
	yhi := neighborInSubrange(p.hi, u, cutoff)
	return math.Min(p.mixSecondary(ylo, yhi), cutoff), ylo, p.lo.BinIndex(ylo)
}

func (p pair) correlatedCDF(y float64) float64 {
	lower, upper := p.interpolatedBounds()
	switch {
	case y <= lower:
		return 0
	case y >= upper:
		return 1
	}
	return bisectRank(func(u float64) float64 {
		v, _, _ := p.correlatedSample(u)
		return v
	}, y)
}

func (p pair) correlatedEvaluate(y float64, f evalFunc) float64 {
	lower, upper := p.interpolatedBounds()
	if y < lower || y > upper {
		return 0
	}
	u := p.correlatedCDF(y)
	ylo := p.lo.SampleWithRandomNumber(u)
	yhi := p.hi.SampleWithRandomNumber(u)
	plo, phi := f(p.lo, ylo), f(p.hi, yhi)
	if p.scheme.Y == interp.Log && y > 0 && ylo > 0 && yhi > 0 {
		return 1 / (y * ((1-p.t)/(ylo*plo) + p.t/(yhi*phi)))
	}
	return 1 / ((1-p.t)/plo + p.t/phi)
}

// UnitBaseCorrelated tables mix the unit-base coordinates of the correlated
// samples instead of the samples themselves.

// unitBaseCorrelatedSample returns the sample, its unit-base coordinate and
// the secondary bin of the lower neighbor.
func (p pair) unitBaseCorrelatedSample(u float64) (float64, float64, int) {
	lo, hi, mid := p.unitMaps()
	ylo, bin := p.lo.SampleAndRecordBinIndex(u)
	yhi := p.hi.SampleWithRandomNumber(u)
	eta := p.lerp(lo.eta(ylo), hi.eta(yhi))
	return mid.value(eta), eta, bin
}

func (p pair) unitBaseCorrelatedSampleInSubrange(u, cutoff float64) (float64, float64, int) {
	lo, hi, mid := p.unitMaps()
	etaMax := mid.eta(cutoff)
	ylo := neighborInSubrange(p.lo, u, lo.value(etaMax))
	yhi := neighborInSubrange(p.hi, u, hi.value(etaMax))
	eta := math.Min(p.lerp(lo.eta(ylo), hi.eta(yhi)), etaMax)
	return math.Min(mid.value(eta), cutoff), eta, p.lo.BinIndex(ylo)
}

func (p pair) unitBaseCorrelatedCDF(y float64) float64 {
	_, _, mid := p.unitMaps()
	switch {
	case y <= mid.lower:
		return 0
	case y >= mid.upper:
		return 1
	}
	return bisectRank(func(u float64) float64 {
		v, _, _ := p.unitBaseCorrelatedSample(u)
		return v
	}, y)
}

func (p pair) unitBaseCorrelatedEvaluate(y float64, f evalFunc) float64 {
	lo, hi, mid := p.unitMaps()
	if y < mid.lower || y > mid.upper {
		return 0
	}
	u := p.unitBaseCorrelatedCDF(y)
	ylo := p.lo.SampleWithRandomNumber(u)
	yhi := p.hi.SampleWithRandomNumber(u)
	glo := f(p.lo, ylo) * lo.jacobian(ylo)
	ghi := f(p.hi, yhi) * hi.jacobian(yhi)
	return 1 / ((1-p.t)/glo + p.t/ghi) / mid.jacobian(y)
}
