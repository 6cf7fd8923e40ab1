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

// Scheme pairs the processing of a dependent axis with the processing of an
// independent axis. LinLog, for example, interpolates the dependent value
// linearly in the logarithm of the independent value.
type Scheme struct {
	Dep   Axis
	Indep Axis
}

var (
	LinLin = Scheme{Dep: Lin, Indep: Lin}
	LinLog = Scheme{Dep: Lin, Indep: Log}
	LogLin = Scheme{Dep: Log, Indep: Lin}
	LogLog = Scheme{Dep: Log, Indep: Log}
)

// Schemes lists all one-dimensional schemes.
var Schemes = []Scheme{LinLin, LinLog, LogLin, LogLog}

// String returns the scheme name, e.g. "LogLin".
func (s Scheme) String() string {
	return s.Dep.String() + s.Indep.String()
}

// ParseScheme parses a scheme name such as "LinLog".
func ParseScheme(name string) (Scheme, error) {
	dep, rest, err := parseAxis(name)
	if err != nil {
		return Scheme{}, errors.Wrapf(err, "invalid scheme %q", name)
	}
	indep, rest, err := parseAxis(rest)
	if err != nil || rest != "" {
		return Scheme{}, errors.Newf("invalid scheme %q", name)
	}
	return Scheme{Dep: dep, Indep: indep}, nil
}

// Inverse swaps the roles of the dependent and the independent axis. It is used
// to invert a tabulated monotone function, e.g. a CDF.
func (s Scheme) Inverse() Scheme {
	return Scheme{Dep: s.Indep, Indep: s.Dep}
}

// Fraction returns the position of x between x0 and x1 in the processed space
// of the independent axis. Values that cannot be processed (non-positive values
// on a Log axis) fall back to linear processing.
func (s Scheme) Fraction(x0, x1, x float64) float64 {
	if x0 == x1 {
		return 0
	}
	if s.Indep == Log && s.Indep.IsValid(x0) && s.Indep.IsValid(x1) && s.Indep.IsValid(x) {
		lx0 := s.Indep.Process(x0)
		return (s.Indep.Process(x) - lx0) / (s.Indep.Process(x1) - lx0)
	}
	return (x - x0) / (x1 - x0)
}

// Mix interpolates between y0 (t = 0) and y1 (t = 1) in the processed space of
// the dependent axis. The end points are returned exactly for t = 0 and t = 1.
func (s Scheme) Mix(t, y0, y1 float64) float64 {
	switch {
	case t == 0:
		return y0
	case t == 1:
		return y1
	case y0 == y1:
		return y0
	}
	if s.Dep == Log && s.Dep.IsValid(y0) && s.Dep.IsValid(y1) {
		p0 := s.Dep.Process(y0)
		return s.Dep.Recover(p0 + t*(s.Dep.Process(y1)-p0))
	}
	return y0 + t*(y1-y0)
}

// Interpolate returns the dependent value at x on the segment (x0,y0)-(x1,y1).
func (s Scheme) Interpolate(x0, x1, x, y0, y1 float64) float64 {
	if x == x0 {
		return y0
	}
	if x == x1 {
		return y1
	}
	return s.Mix(s.Fraction(x0, x1, x), y0, y1)
}

// IsIndepValid reports whether x can be used as an independent value.
func (s Scheme) IsIndepValid(x float64) bool {
	return s.Indep.IsValid(x)
}

// IsDepValid reports whether y can be used as a dependent value.
func (s Scheme) IsDepValid(y float64) bool {
	return s.Dep.IsValid(y)
}
