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

// unitMap maps the secondary support [lower, upper] of a distribution onto
// the unit interval. The map is affine in the processed space of the
// secondary axis; bounds that cannot be processed fall back to Lin.
type unitMap struct {
	axis         interp.Axis
	lower, upper float64
	base, width  float64 // processed lower bound and processed width
}

func newUnitMap(axis interp.Axis, lower, upper float64) unitMap {
	if !axis.IsValid(lower) || !axis.IsValid(upper) {
		axis = interp.Lin
	}
	base := axis.Process(lower)
	return unitMap{
		axis:  axis,
		lower: lower,
		upper: upper,
		base:  base,
		width: axis.Process(upper) - base,
	}
}

// eta returns the unit-base coordinate of y.
func (m unitMap) eta(y float64) float64 {
	switch {
	case y <= m.lower || m.width == 0:
		return 0
	case y >= m.upper:
		return 1
	}
	return (m.axis.Process(y) - m.base) / m.width
}

// value returns the secondary value at the unit-base coordinate eta.
func (m unitMap) value(eta float64) float64 {
	switch {
	case eta <= 0:
		return m.lower
	case eta >= 1:
		return m.upper
	}
	y := m.axis.Recover(m.base + eta*m.width)
	return math.Max(m.lower, math.Min(y, m.upper))
}

// jacobian returns dy/deta at y.
func (m unitMap) jacobian(y float64) float64 {
	if m.axis == interp.Log {
		return y * m.width
	}
	return m.width
}
