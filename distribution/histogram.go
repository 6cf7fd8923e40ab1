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
	"github.com/0xsoniclabs/radiant/random"
)

// Histogram is a piecewise constant density. Bin i spans
// [bounds[i], bounds[i+1]] and carries the value vals[i].
type Histogram struct {
	bounds []float64
	vals   []float64
	cdf    []float64
}

// NewHistogram creates a histogram from n+1 bin boundaries and n bin values.
func NewHistogram(bounds, vals []float64) (*Histogram, error) {
	if len(bounds) != len(vals)+1 {
		return nil, invalid("a histogram needs one more boundary than values, got %d boundaries and %d values", len(bounds), len(vals))
	}
	// the trailing value only satisfies the shape requirements of Check
	if err := Check(interp.LinLin, bounds, append(append([]float64(nil), vals...), 0)); err != nil {
		return nil, err
	}
	h := &Histogram{
		bounds: append([]float64(nil), bounds...),
		vals:   append([]float64(nil), vals...),
		cdf:    make([]float64, len(bounds)),
	}
	for i, v := range vals {
		h.cdf[i+1] = h.cdf[i] + v*(bounds[i+1]-bounds[i])
	}
	if !(h.Mass() > 0) || math.IsInf(h.Mass(), 0) {
		return nil, invalid("histogram has no finite probability mass (%v)", h.Mass())
	}
	return h, nil
}

// Mass returns the unnormalized total probability mass.
func (h *Histogram) Mass() float64 {
	return h.cdf[len(h.cdf)-1]
}

func (h *Histogram) cumulative(y float64) float64 {
	n := len(h.bounds)
	if y <= h.bounds[0] {
		return 0
	}
	if y >= h.bounds[n-1] {
		return h.cdf[n-1]
	}
	i := segmentIndex(h.bounds, y)
	return h.cdf[i] + h.vals[i]*(y-h.bounds[i])
}

func (h *Histogram) Evaluate(y float64) float64 {
	if y < h.bounds[0] || y > h.bounds[len(h.bounds)-1] {
		return 0
	}
	return h.vals[segmentIndex(h.bounds, y)]
}

func (h *Histogram) EvaluatePDF(y float64) float64 {
	return h.Evaluate(y) / h.Mass()
}

func (h *Histogram) EvaluateCDF(y float64) float64 {
	return math.Min(h.cumulative(y)/h.Mass(), 1)
}

func (h *Histogram) sampleMass(target float64) (float64, int) {
	n := len(h.bounds)
	if target <= 0 {
		return h.bounds[0], 0
	}
	if target >= h.cdf[n-1] {
		return h.bounds[n-1], n - 2
	}
	i := segmentIndex(h.cdf, target)
	if h.vals[i] == 0 {
		return h.bounds[i], i
	}
	y := h.bounds[i] + (target-h.cdf[i])/h.vals[i]
	return math.Min(y, h.bounds[i+1]), i
}

func (h *Histogram) Sample(src random.Source) float64 {
	return h.SampleWithRandomNumber(src.Float64())
}

func (h *Histogram) SampleWithRandomNumber(u float64) float64 {
	y, _ := h.SampleAndRecordBinIndex(u)
	return y
}

func (h *Histogram) SampleAndRecordBinIndex(u float64) (float64, int) {
	return h.sampleMass(clampUnit(u) * h.Mass())
}

func (h *Histogram) SampleInSubrange(src random.Source, max float64) (float64, error) {
	return h.SampleWithRandomNumberInSubrange(src.Float64(), max)
}

func (h *Histogram) SampleWithRandomNumberInSubrange(u, max float64) (float64, error) {
	if max < h.LowerBound() {
		return 0, subrangeError(max, h.LowerBound())
	}
	if max >= h.UpperBound() {
		return h.SampleWithRandomNumber(u), nil
	}
	y, _ := h.sampleMass(clampUnit(u) * h.cumulative(max))
	return math.Min(y, max), nil
}

func (h *Histogram) BinIndex(y float64) int {
	return segmentIndex(h.bounds, y)
}

func (h *Histogram) Breakpoints() []float64 {
	return h.bounds
}

func (h *Histogram) LowerBound() float64 {
	return h.bounds[0]
}

func (h *Histogram) UpperBound() float64 {
	return h.bounds[len(h.bounds)-1]
}

func (h *Histogram) IsContinuous() bool {
	return true
}
