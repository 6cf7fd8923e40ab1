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
	"github.com/0xsoniclabs/radiant/random"
	"github.com/cockroachdb/errors"
)

// Sample is the outcome of a sampling call together with the bins that
// produced it.
type Sample struct {
	// Value is the sampled secondary value.
	Value float64
	// Raw is the value before the final transform onto the secondary axis:
	// the unit-base coordinate for unit-base policies and the inverted value
	// in the lower neighbor for Correlated tables. Otherwise it equals Value.
	Raw float64
	// PrimaryBin is the index of the lower bracketing primary bin, or of the
	// bin that was sampled exclusively.
	PrimaryBin int
	// SecondaryBin is the index of the segment in the distribution of
	// PrimaryBin holding the sample.
	SecondaryBin int
}

// Sample draws one random number from src and returns a secondary value at
// the primary value x.
func (t *Table) Sample(x float64, src random.Source) (float64, error) {
	s, err := t.SampleAndRecordBinIndices(x, src)
	return s.Value, err
}

// SampleWithRandomNumber returns the secondary value at x for the random
// number u.
func (t *Table) SampleWithRandomNumber(x, u float64) (float64, error) {
	s, err := t.SampleDetailed(x, u)
	return s.Value, err
}

// SampleAndRecordBinIndices is Sample that also reports the bins producing
// the value.
func (t *Table) SampleAndRecordBinIndices(x float64, src random.Source) (Sample, error) {
	b, err := t.locate(x)
	if err != nil {
		return Sample{}, err
	}
	return t.sample(b, src.Float64(), 0, false)
}

// SampleDetailed is SampleWithRandomNumber that also reports the raw value
// and the bins producing the value.
func (t *Table) SampleDetailed(x, u float64) (Sample, error) {
	b, err := t.locate(x)
	if err != nil {
		return Sample{}, err
	}
	return t.sample(b, u, 0, false)
}

// SampleAndRecordTrials is Sample that increments trials for every drawn
// sample.
func (t *Table) SampleAndRecordTrials(x float64, src random.Source, trials *uint64) (float64, error) {
	b, err := t.locate(x)
	if err != nil {
		return 0, err
	}
	*trials++
	s, err := t.sample(b, src.Float64(), 0, false)
	return s.Value, err
}

// SampleInSubrange returns a secondary value at x not above cutoff.
func (t *Table) SampleInSubrange(x float64, src random.Source, cutoff float64) (float64, error) {
	b, err := t.locate(x)
	if err != nil {
		return 0, err
	}
	s, err := t.sample(b, src.Float64(), cutoff, true)
	return s.Value, err
}

// SampleWithRandomNumberInSubrange returns the secondary value at x not above
// cutoff for the random number u.
func (t *Table) SampleWithRandomNumberInSubrange(x, u, cutoff float64) (float64, error) {
	b, err := t.locate(x)
	if err != nil {
		return 0, err
	}
	s, err := t.sample(b, u, cutoff, true)
	return s.Value, err
}

func (t *Table) sample(b bracket, u, cutoff float64, limited bool) (Sample, error) {
	u = clampUnit(u)
	if b.single {
		return t.sampleBin(b.index, u, cutoff, limited)
	}
	lower, upper := t.bounds(b)
	if limited {
		if cutoff < lower {
			return Sample{}, domainError("subrange cutoff %v is below the secondary lower bound %v", cutoff, lower)
		}
		limited = cutoff < upper
	}

	p := t.pair(b)
	s := Sample{PrimaryBin: b.index}
	switch t.policy {
	case UnitBase:
		var ylo float64
		s.Value, s.Raw, ylo = p.unitBaseSample(u, cutoff, limited)
		s.SecondaryBin = p.lo.BinIndex(ylo)
	case Correlated:
		if limited {
			s.Value, s.Raw, s.SecondaryBin = p.correlatedSampleInSubrange(u, cutoff)
		} else {
			s.Value, s.Raw, s.SecondaryBin = p.correlatedSample(u)
		}
	case UnitBaseCorrelated:
		if limited {
			s.Value, s.Raw, s.SecondaryBin = p.unitBaseCorrelatedSampleInSubrange(u, cutoff)
		} else {
			s.Value, s.Raw, s.SecondaryBin = p.unitBaseCorrelatedSample(u)
		}
	case Stochastic:
		upperBin, v := p.stochasticPick(u, cutoff, limited)
		index := b.index
		if upperBin {
			index++
		}
		return t.sampleBin(index, v, cutoff, limited)
	default:
		s.Value = p.directSample(u, cutoff, limited)
		s.Raw = s.Value
		s.SecondaryBin = p.lo.BinIndex(s.Value)
	}
	return s, nil
}

// sampleBin samples the distribution of a single primary bin.
func (t *Table) sampleBin(index int, u, cutoff float64, limited bool) (Sample, error) {
	d := t.bins[index].Dist
	s := Sample{PrimaryBin: index}
	if limited {
		y, err := d.SampleWithRandomNumberInSubrange(u, cutoff)
		if err != nil {
			return Sample{}, errors.Mark(errors.Wrapf(err, "cannot sample primary bin %d", index), ErrDomain)
		}
		s.Value, s.SecondaryBin = y, d.BinIndex(y)
	} else {
		s.Value, s.SecondaryBin = d.SampleAndRecordBinIndex(u)
	}
	s.Raw = s.Value
	if t.policy.isUnitBase() {
		s.Raw = newUnitMap(t.scheme.Y, d.LowerBound(), d.UpperBound()).eta(s.Value)
	}
	return s, nil
}

func clampUnit(u float64) float64 {
	if u < 0 {
		return 0
	}
	if u > 1 {
		return 1
	}
	return u
}
