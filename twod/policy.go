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
	"github.com/cockroachdb/errors"
)

// Policy selects how the distributions of two neighboring primary bins are
// combined into a distribution at a primary value between them.
type Policy int

const (
	// Direct interpolates the neighbors at the same raw secondary value and
	// samples by inverting the interpolated CDF numerically.
	Direct Policy = iota
	// UnitBase maps both neighbors onto a common unit interval, interpolates
	// there and scales the result back onto the interpolated bounds.
	UnitBase
	// Correlated inverts one random number in both neighbors and
	// interpolates the two results.
	Correlated
	// UnitBaseCorrelated inverts one random number in both neighbors and
	// interpolates the results in unit-base coordinates.
	UnitBaseCorrelated
	// Stochastic samples either the lower or the upper neighbor with
	// probabilities given by the interpolation fraction.
	Stochastic
)

var policyNames = map[Policy]string{
	Direct:             "Direct",
	UnitBase:           "UnitBase",
	Correlated:         "Correlated",
	UnitBaseCorrelated: "UnitBaseCorrelated",
	Stochastic:         "Stochastic",
}

// Policies lists all grid policies.
var Policies = []Policy{Direct, UnitBase, Correlated, UnitBaseCorrelated, Stochastic}

func (p Policy) String() string {
	if name, ok := policyNames[p]; ok {
		return name
	}
	return "Unknown"
}

// ParsePolicy parses a policy name such as "UnitBase".
func ParsePolicy(name string) (Policy, error) {
	for p, n := range policyNames {
		if n == name {
			return p, nil
		}
	}
	return Direct, errors.Newf("unknown grid policy %q", name)
}

// isUnitBase reports whether the policy samples in unit-base coordinates.
func (p Policy) isUnitBase() bool {
	return p == UnitBase || p == UnitBaseCorrelated
}

// interpolatesBounds reports whether the secondary bounds at an intermediate
// primary value are interpolated rather than the union of both neighbors.
func (p Policy) interpolatesBounds() bool {
	return p == UnitBase || p == UnitBaseCorrelated || p == Correlated
}
