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

// Evaluate returns the interpolated tabulated value at (x, y).
func (t *Table) Evaluate(x, y float64) (float64, error) {
	return t.evaluate(x, y, value, false)
}

// EvaluatePDF returns the interpolated normalized density at (x, y). It is
// the derivative of EvaluateCDF in y for every policy and scheme.
func (t *Table) EvaluatePDF(x, y float64) (float64, error) {
	return t.evaluate(x, y, density, true)
}

func (t *Table) evaluate(x, y float64, f evalFunc, normalized bool) (float64, error) {
	b, err := t.locate(x)
	if err != nil {
		return 0, err
	}
	if b.single {
		return f(t.bins[b.index].Dist, y), nil
	}
	p := t.pair(b)
	// Direct and unit-base CDFs are linear mixtures of the neighbor CDFs.
	mix := mixFunc(p.mixValues)
	if normalized {
		mix = p.lerp
	}
	switch t.policy {
	case UnitBase:
		return p.unitBaseEvaluate(y, f, mix), nil
	case Correlated:
		return p.correlatedEvaluate(y, f), nil
	case UnitBaseCorrelated:
		return p.unitBaseCorrelatedEvaluate(y, f), nil
	default:
		return p.directEvaluate(y, f, mix), nil
	}
}

// EvaluateCDF returns the probability of a secondary value not above y at
// the primary value x.
func (t *Table) EvaluateCDF(x, y float64) (float64, error) {
	b, err := t.locate(x)
	if err != nil {
		return 0, err
	}
	if b.single {
		return t.bins[b.index].Dist.EvaluateCDF(y), nil
	}
	p := t.pair(b)
	switch t.policy {
	case UnitBase:
		return p.unitBaseCDF(y), nil
	case Correlated:
		return p.correlatedCDF(y), nil
	case UnitBaseCorrelated:
		return p.unitBaseCorrelatedCDF(y), nil
	default:
		return p.directCDF(y), nil
	}
}
