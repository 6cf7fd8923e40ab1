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

// TabularCDF is a distribution tabulated by cumulative values. The CDF is
// interpolated with the configured scheme and the density is its derivative.
// Segments whose values cannot be processed by the scheme, e.g. a zero CDF
// value on a Log axis, are interpolated linearly.
type TabularCDF struct {
	scheme  interp.Scheme
	ys      []float64
	cdf     []float64 // shifted so that cdf[0] == 0
	schemes []interp.Scheme
}

// NewTabularCDF creates a distribution from cumulative values cdf at the grid
// ys. The values need not be normalized nor start at zero.
func NewTabularCDF(scheme interp.Scheme, ys, cdf []float64) (*TabularCDF, error) {
	if err := CheckCDF(ys, cdf); err != nil {
		return nil, err
	}
	if err := Check(scheme, ys, cdf); err != nil {
		return nil, err
	}
	n := len(ys)
	d := &TabularCDF{
		scheme:  scheme,
		ys:      append([]float64(nil), ys...),
		cdf:     make([]float64, n),
		schemes: make([]interp.Scheme, n-1),
	}
	for i := range cdf {
		d.cdf[i] = cdf[i] - cdf[0]
	}
	for i := range n - 1 {
		d.schemes[i] = d.segmentScheme(i)
	}
	return d, nil
}

// NewTabularCDFFromPDF creates a distribution from density values. The CDF is
// accumulated with the trapezoidal rule.
func NewTabularCDFFromPDF(scheme interp.Scheme, ys, pdf []float64) (*TabularCDF, error) {
	if err := Check(scheme, ys, pdf); err != nil {
		return nil, err
	}
	return NewTabularCDF(scheme, ys, PDFtoCDF(ys, pdf))
}

// PDFtoCDF integrates tabulated density values with the trapezoidal rule
// using Kahan summation.
func PDFtoCDF(ys, pdf []float64) []float64 {
	cdf := make([]float64, len(ys))
	sum, c := 0.0, 0.0
	for i := 1; i < len(ys); i++ {
		f := 0.5 * (pdf[i] + pdf[i-1]) * (ys[i] - ys[i-1])
		y := f - c
		t := sum + y
		c = (t - sum) - y
		sum = t
		cdf[i] = sum
	}
	return cdf
}

func (d *TabularCDF) segmentScheme(i int) interp.Scheme {
	if d.scheme.IsDepValid(d.cdf[i]) && d.scheme.IsDepValid(d.cdf[i+1]) &&
		d.scheme.IsIndepValid(d.ys[i]) && d.scheme.IsIndepValid(d.ys[i+1]) {
		return d.scheme
	}
	return interp.LinLin
}

// Scheme returns the interpolation scheme of the CDF.
func (d *TabularCDF) Scheme() interp.Scheme {
	return d.scheme
}

// Values returns the tabulated cumulative values shifted to start at zero.
// The slice must not be modified.
func (d *TabularCDF) Values() []float64 {
	return d.cdf
}

// Mass returns the unnormalized total probability mass.
func (d *TabularCDF) Mass() float64 {
	return d.cdf[len(d.cdf)-1]
}

func (d *TabularCDF) cumulative(y float64) float64 {
	n := len(d.ys)
	if y <= d.ys[0] {
		return 0
	}
	if y >= d.ys[n-1] {
		return d.cdf[n-1]
	}
	i := segmentIndex(d.ys, y)
	return d.schemes[i].Interpolate(d.ys[i], d.ys[i+1], y, d.cdf[i], d.cdf[i+1])
}

// Evaluate returns the derivative of the unnormalized CDF at y. At a grid
// point the slope of the segment starting there is used.
func (d *TabularCDF) Evaluate(y float64) float64 {
	n := len(d.ys)
	if y < d.ys[0] || y > d.ys[n-1] {
		return 0
	}
	i := segmentIndex(d.ys, y)
	y0, y1 := d.ys[i], d.ys[i+1]
	c0, c1 := d.cdf[i], d.cdf[i+1]
	if y0 == y1 || c0 == c1 {
		return 0
	}
	s := d.schemes[i]
	switch s {
	case interp.LinLog:
		return (c1 - c0) / math.Log(y1/y0) / y
	case interp.LogLin:
		return d.cumulative(y) * math.Log(c1/c0) / (y1 - y0)
	case interp.LogLog:
		return s.Interpolate(y0, y1, y, c0, c1) * math.Log(c1/c0) / math.Log(y1/y0) / y
	default:
		return (c1 - c0) / (y1 - y0)
	}
}

func (d *TabularCDF) EvaluatePDF(y float64) float64 {
	return d.Evaluate(y) / d.Mass()
}

func (d *TabularCDF) EvaluateCDF(y float64) float64 {
	return math.Min(d.cumulative(y)/d.Mass(), 1)
}

func (d *TabularCDF) sampleMass(target float64) (float64, int) {
	n := len(d.ys)
	if target <= 0 {
		return d.ys[0], 0
	}
	if target >= d.cdf[n-1] {
		return d.ys[n-1], n - 2
	}
	i := segmentIndex(d.cdf, target)
	c0, c1 := d.cdf[i], d.cdf[i+1]
	if c0 == c1 {
		return d.ys[i], i
	}
	y := d.schemes[i].Inverse().Interpolate(c0, c1, target, d.ys[i], d.ys[i+1])
	return math.Max(d.ys[i], math.Min(y, d.ys[i+1])), i
}

func (d *TabularCDF) Sample(src random.Source) float64 {
	return d.SampleWithRandomNumber(src.Float64())
}

func (d *TabularCDF) SampleWithRandomNumber(u float64) float64 {
	y, _ := d.SampleAndRecordBinIndex(u)
	return y
}

func (d *TabularCDF) SampleAndRecordBinIndex(u float64) (float64, int) {
	u = clampUnit(u)
	n := len(d.ys)
	switch u {
	case 0:
		return d.ys[0], 0
	case 1:
		return d.ys[n-1], n - 2
	}
	return d.sampleMass(u * d.Mass())
}

func (d *TabularCDF) SampleInSubrange(src random.Source, max float64) (float64, error) {
	return d.SampleWithRandomNumberInSubrange(src.Float64(), max)
}

func (d *TabularCDF) SampleWithRandomNumberInSubrange(u, max float64) (float64, error) {
	if max < d.LowerBound() {
		return 0, subrangeError(max, d.LowerBound())
	}
	if max >= d.UpperBound() {
		return d.SampleWithRandomNumber(u), nil
	}
	y, _ := d.sampleMass(clampUnit(u) * d.cumulative(max))
	return math.Min(y, max), nil
}

func (d *TabularCDF) BinIndex(y float64) int {
	return segmentIndex(d.ys, y)
}

func (d *TabularCDF) Breakpoints() []float64 {
	return d.ys
}

func (d *TabularCDF) LowerBound() float64 {
	return d.ys[0]
}

func (d *TabularCDF) UpperBound() float64 {
	return d.ys[len(d.ys)-1]
}

func (d *TabularCDF) IsContinuous() bool {
	return true
}
