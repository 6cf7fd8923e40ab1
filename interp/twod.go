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

package interp

import (
	"github.com/cockroachdb/errors"
)

// TwoD describes the interpolation of a tabulated function z(x, y) where x is
// the primary (given) variable and y the secondary (sampled) variable. Names
// list the axes in the order Z, Y, X, so LogLinLin interpolates z
// logarithmically and both independent variables linearly.
type TwoD struct {
	Z Axis
	Y Axis
	X Axis
}

var (
	LinLinLin = TwoD{Z: Lin, Y: Lin, X: Lin}
	LinLinLog = TwoD{Z: Lin, Y: Lin, X: Log}
	LinLogLin = TwoD{Z: Lin, Y: Log, X: Lin}
	LinLogLog = TwoD{Z: Lin, Y: Log, X: Log}
	LogLinLin = TwoD{Z: Log, Y: Lin, X: Lin}
	LogLinLog = TwoD{Z: Log, Y: Lin, X: Log}
	LogLogLin = TwoD{Z: Log, Y: Log, X: Lin}
	LogLogLog = TwoD{Z: Log, Y: Log, X: Log}
)

// String returns the scheme name, e.g. "LogLogLog".
func (s TwoD) String() string {
	return s.Z.String() + s.Y.String() + s.X.String()
}

// ParseTwoD parses a two-dimensional scheme name such as "LinLinLog".
func ParseTwoD(name string) (TwoD, error) {
	z, rest, err := parseAxis(name)
	if err != nil {
		return TwoD{}, errors.Wrapf(err, "invalid two-dimensional scheme %q", name)
	}
	y, rest, err := parseAxis(rest)
	if err != nil {
		return TwoD{}, errors.Wrapf(err, "invalid two-dimensional scheme %q", name)
	}
	x, rest, err := parseAxis(rest)
	if err != nil || rest != "" {
		return TwoD{}, errors.Newf("invalid two-dimensional scheme %q", name)
	}
	return TwoD{Z: z, Y: y, X: x}, nil
}

// Secondary is the scheme of z over y inside a single primary bin.
func (s TwoD) Secondary() Scheme {
	return Scheme{Dep: s.Z, Indep: s.Y}
}

// Primary is the scheme of z over x between two primary bins.
func (s TwoD) Primary() Scheme {
	return Scheme{Dep: s.Z, Indep: s.X}
}

// Conditional is the scheme of y over x between two primary bins. It governs
// the interpolation of secondary values, e.g. bounds or correlated samples.
func (s TwoD) Conditional() Scheme {
	return Scheme{Dep: s.Y, Indep: s.X}
}
