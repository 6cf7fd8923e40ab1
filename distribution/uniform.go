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

	"github.com/0xsoniclabs/radiant/random"
)

// Uniform is a constant density of the given value over [lower, upper].
type Uniform struct {
	lower, upper float64
	value        float64
}

// NewUniform creates a uniform distribution. The value only scales Evaluate.
func NewUniform(lower, upper, value float64) (*Uniform, error) {
	if math.IsNaN(lower) || math.IsNaN(upper) || math.IsInf(lower, 0) || math.IsInf(upper, 0) {
		return nil, invalid("uniform bounds [%v,%v] must be finite", lower, upper)
	}
	if !(lower < upper) {
		return nil, invalid("uniform range [%v,%v] is empty", lower, upper)
	}
	if !(value > 0) || math.IsInf(value, 0) {
		return nil, invalid("uniform value %v must be finite and positive", value)
	}
	return &Uniform{lower: lower, upper: upper, value: value}, nil
}

func (d *Uniform) Evaluate(y float64) float64 {
	if y < d.lower || y > d.upper {
		return 0
	}
	return d.value
}

func (d *Uniform) EvaluatePDF(y float64) float64 {
	if y < d.lower || y > d.upper {
		return 0
	}
	return 1 / (d.upper - d.lower)
}

func (d *Uniform) EvaluateCDF(y float64) float64 {
	switch {
	case y <= d.lower:
		return 0
	case y >= d.upper:
		return 1
	}
	return (y - d.lower) / (d.upper - d.lower)
}

func (d *Uniform) Sample(src random.Source) float64 {
	return d.SampleWithRandomNumber(src.Float64())
}

func (d *Uniform) SampleWithRandomNumber(u float64) float64 {
	return d.sampleTo(clampUnit(u), d.upper)
}

func (d *Uniform) sampleTo(u, upper float64) float64 {
	switch u {
	case 0:
		return d.lower
	case 1:
		return upper
	}
	return math.Min(d.lower+u*(upper-d.lower), upper)
}

func (d *Uniform) SampleAndRecordBinIndex(u float64) (float64, int) {
	return d.SampleWithRandomNumber(u), 0
}

func (d *Uniform) SampleInSubrange(src random.Source, max float64) (float64, error) {
	return d.SampleWithRandomNumberInSubrange(src.Float64(), max)
}

func (d *Uniform) SampleWithRandomNumberInSubrange(u, max float64) (float64, error) {
	if max < d.lower {
		return 0, subrangeError(max, d.lower)
	}
	return d.sampleTo(clampUnit(u), math.Min(max, d.upper)), nil
}

func (d *Uniform) BinIndex(float64) int {
	return 0
}

func (d *Uniform) Breakpoints() []float64 {
	return []float64{d.lower, d.upper}
}

func (d *Uniform) LowerBound() float64 {
	return d.lower
}

func (d *Uniform) UpperBound() float64 {
	return d.upper
}

func (d *Uniform) IsContinuous() bool {
	return true
}
