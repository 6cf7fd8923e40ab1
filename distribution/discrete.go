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
	"sort"

	"github.com/0xsoniclabs/radiant/random"
)

// Discrete is a distribution of point masses at strictly increasing points.
// Moment-preserving elastic tables use it for the large-angle remainder.
type Discrete struct {
	points  []float64
	weights []float64
	mass    float64
}

// NewDiscrete creates a discrete distribution. Weights are normalized on use.
func NewDiscrete(points, weights []float64) (*Discrete, error) {
	if len(points) == 0 {
		return nil, invalid("a discrete distribution needs at least one point")
	}
	if len(points) != len(weights) {
		return nil, invalid("number of points (%d) mismatches number of weights (%d)", len(points), len(weights))
	}
	mass := 0.0
	for i := range points {
		if math.IsNaN(points[i]) || math.IsInf(points[i], 0) {
			return nil, invalid("point %d (%v) is not finite", i, points[i])
		}
		if i > 0 && points[i] <= points[i-1] {
			return nil, invalid("points must be strictly increasing, but point %d (%v) follows %v", i, points[i], points[i-1])
		}
		if math.IsNaN(weights[i]) || math.IsInf(weights[i], 0) || weights[i] < 0 {
			return nil, invalid("weight %d (%v) must be finite and non-negative", i, weights[i])
		}
		mass += weights[i]
	}
	if !(mass > 0) {
		return nil, invalid("discrete distribution has no probability mass")
	}
	return &Discrete{
		points:  append([]float64(nil), points...),
		weights: append([]float64(nil), weights...),
		mass:    mass,
	}, nil
}

// quantile returns the index of the first point whose cumulative weight
// reaches target, considering only the first n points. Points without weight
// are never selected.
func (d *Discrete) quantile(target float64, n int) int {
	sum := 0.0 // Kahan summation of the weights
	c := 0.0
	lastPositive := 0
	for i := range n {
		w := d.weights[i]
		y := w - c
		t := sum + y
		c = (t - sum) - y
		sum = t
		if w > 0 {
			if target <= sum {
				return i
			}
			lastPositive = i
		}
	}
	return lastPositive
}

// count returns the number of points not above y.
func (d *Discrete) count(y float64) int {
	return sort.Search(len(d.points), func(i int) bool { return d.points[i] > y })
}

func (d *Discrete) cumulative(n int) float64 {
	sum := 0.0
	for i := range n {
		sum += d.weights[i]
	}
	return sum
}

// Evaluate returns the weight of the point at y, or 0 between points.
func (d *Discrete) Evaluate(y float64) float64 {
	i := d.count(y) - 1
	if i < 0 || d.points[i] != y {
		return 0
	}
	return d.weights[i]
}

// EvaluatePDF returns the probability of the point at y.
func (d *Discrete) EvaluatePDF(y float64) float64 {
	return d.Evaluate(y) / d.mass
}

func (d *Discrete) EvaluateCDF(y float64) float64 {
	return math.Min(d.cumulative(d.count(y))/d.mass, 1)
}

func (d *Discrete) Sample(src random.Source) float64 {
	return d.SampleWithRandomNumber(src.Float64())
}

func (d *Discrete) SampleWithRandomNumber(u float64) float64 {
	y, _ := d.SampleAndRecordBinIndex(u)
	return y
}

func (d *Discrete) SampleAndRecordBinIndex(u float64) (float64, int) {
	i := d.quantile(clampUnit(u)*d.mass, len(d.points))
	return d.points[i], i
}

func (d *Discrete) SampleInSubrange(src random.Source, max float64) (float64, error) {
	return d.SampleWithRandomNumberInSubrange(src.Float64(), max)
}

func (d *Discrete) SampleWithRandomNumberInSubrange(u, max float64) (float64, error) {
	n := d.count(max)
	mass := d.cumulative(n)
	if n == 0 || mass <= 0 {
		return 0, subrangeError(max, d.LowerBound())
	}
	return d.points[d.quantile(clampUnit(u)*mass, n)], nil
}

// BinIndex returns the index of the largest point not above y.
func (d *Discrete) BinIndex(y float64) int {
	return max(d.count(y)-1, 0)
}

func (d *Discrete) Breakpoints() []float64 {
	return d.points
}

func (d *Discrete) LowerBound() float64 {
	return d.points[0]
}

func (d *Discrete) UpperBound() float64 {
	return d.points[len(d.points)-1]
}

func (d *Discrete) IsContinuous() bool {
	return false
}
