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
	"math"

	"github.com/cockroachdb/errors"
)

// Axis describes the functional form of a single tabulated axis. Interpolation
// is linear in the processed space of each axis.
type Axis int

const (
	Lin Axis = iota // identity processing
	Log             // natural logarithm processing
)

// String returns the short name used in scheme names.
func (a Axis) String() string {
	switch a {
	case Lin:
		return "Lin"
	case Log:
		return "Log"
	default:
		return "Unknown"
	}
}

// Process maps v into the space in which interpolation along this axis is linear.
func (a Axis) Process(v float64) float64 {
	if a == Log {
		return math.Log(v)
	}
	return v
}

// Recover is the inverse of Process.
func (a Axis) Recover(p float64) float64 {
	if a == Log {
		return math.Exp(p)
	}
	return p
}

// IsValid reports whether v lies in the domain of Process.
func (a Axis) IsValid(v float64) bool {
	if math.IsNaN(v) {
		return false
	}
	if a == Log {
		return v > 0 && !math.IsInf(v, 1)
	}
	return true
}

// parseAxis parses the prefix of name into an axis and returns the rest.
func parseAxis(name string) (Axis, string, error) {
	switch {
	case len(name) >= 3 && name[:3] == "Lin":
		return Lin, name[3:], nil
	case len(name) >= 3 && name[:3] == "Log":
		return Log, name[3:], nil
	default:
		return Lin, name, errors.Newf("unknown axis in %q", name)
	}
}
