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

package distribution

import (
	"math"

	"github.com/0xsoniclabs/radiant/interp"
	"github.com/cockroachdb/errors"
)

// Check validates a tabulated secondary grid ys with dependent values vals.
// The grid must hold at least two points, be non-decreasing with a non-empty
// range, and every value must be finite and non-negative. Log processed axes
// additionally require strictly positive grid points.
func Check(scheme interp.Scheme, ys, vals []float64) error {
	if len(ys) < 2 {
		return invalid("a tabulated distribution needs at least two points, got %d", len(ys))
	}
	if len(ys) != len(vals) {
		return invalid("number of grid points (%d) mismatches number of values (%d)", len(ys), len(vals))
	}
	for i := range ys {
		if math.IsNaN(ys[i]) || math.IsInf(ys[i], 0) {
			return invalid("grid point %d (%v) is not finite", i, ys[i])
		}
		if !scheme.IsIndepValid(ys[i]) {
			return invalid("grid point %d (%v) is invalid for %v interpolation", i, ys[i], scheme)
		}
		if math.IsNaN(vals[i]) || math.IsInf(vals[i], 0) || vals[i] < 0 {
			return invalid("value %d (%v) must be finite and non-negative", i, vals[i])
		}
		if i > 0 && ys[i] < ys[i-1] {
			return invalid("grid points must be non-decreasing, but point %d (%v) is smaller than point %d (%v)", i, ys[i], i-1, ys[i-1])
		}
	}
	if ys[0] == ys[len(ys)-1] {
		return invalid("grid range [%v,%v] is empty", ys[0], ys[len(ys)-1])
	}
	return nil
}

// CheckCDF validates tabulated CDF values. They must be non-decreasing and
// span a positive probability mass.
func CheckCDF(ys, cdf []float64) error {
	if err := Check(interp.LinLin, ys, cdf); err != nil {
		return err
	}
	for i := 1; i < len(cdf); i++ {
		if cdf[i] < cdf[i-1] {
			return invalid("CDF values must be non-decreasing, but value %d (%v) is smaller than value %d (%v)", i, cdf[i], i-1, cdf[i-1])
		}
	}
	if cdf[len(cdf)-1] <= cdf[0] {
		return invalid("CDF has no probability mass")
	}
	return nil
}

func invalid(format string, args ...interface{}) error {
	return errors.Mark(errors.Newf(format, args...), ErrInvalidDistribution)
}
