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

// powerEps is the tolerance below which a power-law segment with exponent -1
// is integrated as a logarithm.
const powerEps = 1e-12

// maxNewtonIterations bounds the inversion of logarithmic segments.
const maxNewtonIterations = 100

// segmentKind is the closed form used to integrate and invert a segment.
type segmentKind int

const (
	linearSegment      segmentKind = iota // pdf linear in y
	exponentialSegment                    // pdf exponential in y (LogLin)
	powerSegment                          // pdf power law in y (LogLog)
	logSegment                            // pdf linear in ln y (LinLog)
)

// Tabular is a distribution tabulated by density values on a secondary grid.
// The density is interpolated with the configured scheme and the CDF of each
// segment is its exact integral. Segments linear in ln y have no elementary
// inverse (it needs the Lambert W function) and are inverted by a Newton
// iteration kept inside the segment.
type Tabular struct {
	scheme interp.Scheme
	ys     []float64
	vals   []float64
	cdf    []float64 // unnormalized cumulative mass at the grid points
	kinds  []segmentKind
}

// NewTabular creates a distribution from density values vals at the grid ys.
func NewTabular(scheme interp.Scheme, ys, vals []float64) (*Tabular, error) {
	if err := Check(scheme, ys, vals); err != nil {
		return nil, err
	}
	n := len(ys)
	d := &Tabular{
		scheme: scheme,
		ys:     append([]float64(nil), ys...),
		vals:   append([]float64(nil), vals...),
		cdf:    make([]float64, n),
		kinds:  make([]segmentKind, n-1),
	}

	// Kahan summation keeps small segment masses from being swallowed.
	sum, c := 0.0, 0.0
	for i := range n - 1 {
		d.kinds[i] = d.segmentKind(i)
		f := d.partial(i, d.ys[i+1])
		y := f - c
		t := sum + y
		c = (t - sum) - y
		sum = t
		d.cdf[i+1] = sum
	}
	if !(sum > 0) || math.IsInf(sum, 0) {
		return nil, invalid("distribution has no finite probability mass (%v)", sum)
	}
	return d, nil
}

// MustNewTabular is like NewTabular but panics on invalid input.
func MustNewTabular(scheme interp.Scheme, ys, vals []float64) *Tabular {
	d, err := NewTabular(scheme, ys, vals)
	if err != nil {
		panic(err)
	}
	return d
}

// segmentKind returns the shape Evaluate gives segment i. Values that are
// invalid on a Log axis are interpolated linearly on that axis.
func (d *Tabular) segmentKind(i int) segmentKind {
	y0, y1 := d.ys[i], d.ys[i+1]
	p0, p1 := d.vals[i], d.vals[i+1]
	if p0 == p1 || y0 == y1 {
		return linearSegment
	}
	logDep := d.scheme.Dep == interp.Log && p0 > 0 && p1 > 0
	logIndep := d.scheme.Indep == interp.Log && y0 > 0 && y1 > 0
	switch {
	case logDep && logIndep:
		return powerSegment
	case logDep:
		return exponentialSegment
	case logIndep:
		return logSegment
	default:
		return linearSegment
	}
}

// Scheme returns the interpolation scheme of the density.
func (d *Tabular) Scheme() interp.Scheme {
	return d.scheme
}

// Values returns the tabulated density values. The slice must not be modified.
func (d *Tabular) Values() []float64 {
	return d.vals
}

// Mass returns the unnormalized total probability mass.
func (d *Tabular) Mass() float64 {
	return d.cdf[len(d.cdf)-1]
}

// partial integrates the density of segment i from ys[i] to y.
func (d *Tabular) partial(i int, y float64) float64 {
	y0, y1 := d.ys[i], d.ys[i+1]
	p0, p1 := d.vals[i], d.vals[i+1]
	dy := y - y0
	if dy <= 0 || y1 == y0 {
		return 0
	}
	switch d.kinds[i] {
	case exponentialSegment:
		b := math.Log(p1/p0) / (y1 - y0)
		return p0 * math.Expm1(b*dy) / b
	case powerSegment:
		k := math.Log(p1/p0) / math.Log(y1/y0)
		if math.Abs(k+1) < powerEps {
			return p0 * y0 * math.Log(y/y0)
		}
		return p0 * y0 * (math.Pow(y/y0, k+1) - 1) / (k + 1)
	case logSegment:
		// antiderivative y(p(y) - b) of p(y) = p0 + b ln(y/y0)
		b := (p1 - p0) / math.Log(y1/y0)
		return p0*dy + b*(y*math.Log1p(dy/y0)-dy)
	default:
		m := (p1 - p0) / (y1 - y0)
		return dy * (p0 + 0.5*m*dy)
	}
}

// invert returns the y in segment i whose partial mass is r.
func (d *Tabular) invert(i int, r float64) float64 {
	y0, y1 := d.ys[i], d.ys[i+1]
	p0, p1 := d.vals[i], d.vals[i+1]
	if r <= 0 || y1 == y0 {
		return y0
	}
	var y float64
	switch d.kinds[i] {
	case exponentialSegment:
		b := math.Log(p1/p0) / (y1 - y0)
		y = y0 + math.Log1p(b*r/p0)/b
	case powerSegment:
		k := math.Log(p1/p0) / math.Log(y1/y0)
		if math.Abs(k+1) < powerEps {
			y = y0 * math.Exp(r/(p0*y0))
		} else {
			y = y0 * math.Pow(1+(k+1)*r/(p0*y0), 1/(k+1))
		}
	case logSegment:
		y = d.invertLogSegment(i, r)
	default:
		m := (p1 - p0) / (y1 - y0)
		disc := p0*p0 + 2*m*r
		if disc < 0 {
			disc = 0
		}
		den := p0 + math.Sqrt(disc)
		if den <= 0 {
			return y0
		}
		y = y0 + 2*r/den
	}
	if math.IsNaN(y) || y > y1 {
		return y1
	}
	if y < y0 {
		return y0
	}
	return y
}

// invertLogSegment solves partial(i, y) = r for a segment linear in ln y.
// The segment integral is monotone, so Newton steps leaving the current
// bracket are replaced by bisection.
func (d *Tabular) invertLogSegment(i int, r float64) float64 {
	y0, y1 := d.ys[i], d.ys[i+1]
	p0 := d.vals[i]
	b := (d.vals[i+1] - p0) / math.Log(y1/y0)
	lo, hi := y0, y1
	y := y0 + (y1-y0)*r/(d.cdf[i+1]-d.cdf[i])
	for range maxNewtonIterations {
		f := d.partial(i, y) - r
		if f == 0 {
			return y
		}
		if f > 0 {
			hi = y
		} else {
			lo = y
		}
		next := y - f/(p0+b*math.Log(y/y0))
		if !(next > lo && next < hi) {
			next = 0.5 * (lo + hi)
		}
		if math.Abs(next-y) <= 1e-15*next || hi-lo <= 1e-15*hi {
			return next
		}
		y = next
	}
	return y
}

// cumulative returns the unnormalized mass up to y.
func (d *Tabular) cumulative(y float64) float64 {
	n := len(d.ys)
	if y <= d.ys[0] {
		return 0
	}
	if y >= d.ys[n-1] {
		return d.cdf[n-1]
	}
	i := segmentIndex(d.ys, y)
	return d.cdf[i] + d.partial(i, y)
}

// sampleMass returns the y at which the unnormalized cumulative mass equals
// target together with the index of its segment.
func (d *Tabular) sampleMass(target float64) (float64, int) {
	n := len(d.ys)
	if target <= 0 {
		return d.ys[0], 0
	}
	if target >= d.cdf[n-1] {
		return d.ys[n-1], n - 2
	}
	i := segmentIndex(d.cdf, target)
	return d.invert(i, target-d.cdf[i]), i
}

func (d *Tabular) Evaluate(y float64) float64 {
	if y < d.ys[0] || y > d.ys[len(d.ys)-1] {
		return 0
	}
	i := segmentIndex(d.ys, y)
	if y == d.ys[i] {
		return d.vals[i]
	}
	return d.scheme.Interpolate(d.ys[i], d.ys[i+1], y, d.vals[i], d.vals[i+1])
}

func (d *Tabular) EvaluatePDF(y float64) float64 {
	return d.Evaluate(y) / d.Mass()
}

func (d *Tabular) EvaluateCDF(y float64) float64 {
	return math.Min(d.cumulative(y)/d.Mass(), 1)
}

func (d *Tabular) Sample(src random.Source) float64 {
	return d.SampleWithRandomNumber(src.Float64())
}

func (d *Tabular) SampleWithRandomNumber(u float64) float64 {
	y, _ := d.SampleAndRecordBinIndex(u)
	return y
}

func (d *Tabular) SampleAndRecordBinIndex(u float64) (float64, int) {
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

func (d *Tabular) SampleInSubrange(src random.Source, max float64) (float64, error) {
	return d.SampleWithRandomNumberInSubrange(src.Float64(), max)
}

func (d *Tabular) SampleWithRandomNumberInSubrange(u, max float64) (float64, error) {
	if max < d.LowerBound() {
		return 0, subrangeError(max, d.LowerBound())
	}
	if max >= d.UpperBound() {
		return d.SampleWithRandomNumber(u), nil
	}
	y, _ := d.sampleMass(clampUnit(u) * d.cumulative(max))
	return math.Min(y, max), nil
}

func (d *Tabular) BinIndex(y float64) int {
	return segmentIndex(d.ys, y)
}

func (d *Tabular) Breakpoints() []float64 {
	return d.ys
}

func (d *Tabular) LowerBound() float64 {
	return d.ys[0]
}

func (d *Tabular) UpperBound() float64 {
	return d.ys[len(d.ys)-1]
}

func (d *Tabular) IsContinuous() bool {
	return true
}
