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

// Package elastic combines two-dimensional tables into elastic scattering
// distributions of the scattering angle cosine.
package elastic

import (
	"math"
	"sort"

	"github.com/0xsoniclabs/radiant/interp"
	"github.com/0xsoniclabs/radiant/random"
	"github.com/0xsoniclabs/radiant/twod"
	"github.com/cockroachdb/errors"
)

// ErrInvalidHybrid marks inconsistent hybrid distributions.
var ErrInvalidHybrid = errors.New("invalid hybrid elastic distribution")

// Hybrid is an elastic distribution made of a continuous table of angle
// cosines up to a cutoff and a discrete table above it. The continuous part
// carries the fraction r(x) of the total probability, the ratio of the cutoff
// to the total elastic cross section at the energy x.
type Hybrid struct {
	continuous *twod.Table
	discrete   *twod.Table
	energies   []float64
	ratios     []float64
	ratio      interp.Scheme
	cutoff     float64
}

// NewHybrid creates a hybrid distribution. The cutoff cross section ratios
// are tabulated at energies and interpolated linearly in the primary axis
// processing of the continuous table.
func NewHybrid(continuous, discrete *twod.Table, energies, ratios []float64, cutoff float64) (*Hybrid, error) {
	if continuous == nil || discrete == nil {
		return nil, invalid("both the continuous and the discrete table are required")
	}
	if !continuous.HasSamePrimaryBounds(discrete) {
		return nil, invalid("continuous energy range [%v,%v] differs from discrete energy range [%v,%v]",
			continuous.LowerBoundOfPrimaryIndepVar(), continuous.UpperBoundOfPrimaryIndepVar(),
			discrete.LowerBoundOfPrimaryIndepVar(), discrete.UpperBoundOfPrimaryIndepVar())
	}
	if !(cutoff > -1 && cutoff < 1) {
		return nil, invalid("cutoff angle cosine %v is not in (-1,1)", cutoff)
	}
	if len(energies) == 0 || len(energies) != len(ratios) {
		return nil, invalid("got %d energies for %d cutoff ratios", len(energies), len(ratios))
	}
	for i := range energies {
		if i > 0 && energies[i] <= energies[i-1] {
			return nil, invalid("energies must be strictly increasing, but energy %d (%v) follows %v", i, energies[i], energies[i-1])
		}
		if !(ratios[i] >= 0 && ratios[i] <= 1) {
			return nil, invalid("cutoff ratio %d (%v) is not in [0,1]", i, ratios[i])
		}
	}
	return &Hybrid{
		continuous: continuous,
		discrete:   discrete,
		energies:   append([]float64(nil), energies...),
		ratios:     append([]float64(nil), ratios...),
		ratio:      interp.Scheme{Dep: interp.Lin, Indep: continuous.Scheme().X},
		cutoff:     cutoff,
	}, nil
}

// Continuous returns the table of the cutoff continuous part.
func (h *Hybrid) Continuous() *twod.Table {
	return h.continuous
}

// Discrete returns the table of the discrete part.
func (h *Hybrid) Discrete() *twod.Table {
	return h.discrete
}

// CutoffAngleCosine returns the angle cosine separating both parts.
func (h *Hybrid) CutoffAngleCosine() float64 {
	return h.cutoff
}

// Ratio returns the probability of the continuous part at the energy x.
// Energies beyond the tabulated range use the nearest ratio.
func (h *Hybrid) Ratio(x float64) float64 {
	n := len(h.energies)
	switch {
	case x <= h.energies[0]:
		return h.ratios[0]
	case x >= h.energies[n-1]:
		return h.ratios[n-1]
	}
	i := sort.Search(n, func(i int) bool { return h.energies[i] > x }) - 1
	return h.ratio.Interpolate(h.energies[i], h.energies[i+1], x, h.ratios[i], h.ratios[i+1])
}

func (h *Hybrid) LowerBoundOfPrimaryIndepVar() float64 {
	return h.continuous.LowerBoundOfPrimaryIndepVar()
}

func (h *Hybrid) UpperBoundOfPrimaryIndepVar() float64 {
	return h.continuous.UpperBoundOfPrimaryIndepVar()
}

// LowerBoundOfConditionalIndepVar returns the lowest angle cosine of the
// continuous part at x.
func (h *Hybrid) LowerBoundOfConditionalIndepVar(x float64) (float64, error) {
	return h.continuous.LowerBoundOfConditionalIndepVar(x)
}

// UpperBoundOfConditionalIndepVar returns the highest angle cosine of the
// discrete part at x.
func (h *Hybrid) UpperBoundOfConditionalIndepVar(x float64) (float64, error) {
	return h.discrete.UpperBoundOfConditionalIndepVar(x)
}

// ExtendBeyondPrimaryIndepLimits enables the extension mode of both tables.
func (h *Hybrid) ExtendBeyondPrimaryIndepLimits() {
	h.continuous.ExtendBeyondPrimaryIndepLimits()
	h.discrete.ExtendBeyondPrimaryIndepLimits()
}

// LimitToPrimaryIndepLimits disables the extension mode of both tables.
func (h *Hybrid) LimitToPrimaryIndepLimits() {
	h.continuous.LimitToPrimaryIndepLimits()
	h.discrete.LimitToPrimaryIndepLimits()
}

// Evaluate returns the weighted tabulated value at (x, mu).
func (h *Hybrid) Evaluate(x, mu float64) (float64, error) {
	return h.evaluate(x, mu, (*twod.Table).Evaluate)
}

// EvaluatePDF returns the weighted density at (x, mu). The discrete part
// contributes the probabilities of its points.
func (h *Hybrid) EvaluatePDF(x, mu float64) (float64, error) {
	return h.evaluate(x, mu, (*twod.Table).EvaluatePDF)
}

func (h *Hybrid) evaluate(x, mu float64, f func(*twod.Table, float64, float64) (float64, error)) (float64, error) {
	r := h.Ratio(x)
	if mu <= h.cutoff {
		v, err := f(h.continuous, x, mu)
		return r * v, err
	}
	v, err := f(h.discrete, x, mu)
	return (1 - r) * v, err
}

// EvaluateCDF returns the probability of an angle cosine not above mu.
func (h *Hybrid) EvaluateCDF(x, mu float64) (float64, error) {
	r := h.Ratio(x)
	if mu <= h.cutoff {
		c, err := h.continuous.EvaluateCDF(x, mu)
		return r * c, err
	}
	c, err := h.discrete.EvaluateCDF(x, mu)
	if err != nil {
		return 0, err
	}
	return math.Min(r+(1-r)*c, 1), nil
}

// Sample draws one random number from src and returns an angle cosine.
func (h *Hybrid) Sample(x float64, src random.Source) (float64, error) {
	if err := h.check(x); err != nil {
		return 0, err
	}
	return h.SampleWithRandomNumber(x, src.Float64())
}

// SampleAndRecordTrials is Sample that increments trials once per draw.
func (h *Hybrid) SampleAndRecordTrials(x float64, src random.Source, trials *uint64) (float64, error) {
	if err := h.check(x); err != nil {
		return 0, err
	}
	*trials++
	return h.SampleWithRandomNumber(x, src.Float64())
}

// SampleWithRandomNumber returns the angle cosine for the random number u.
func (h *Hybrid) SampleWithRandomNumber(x, u float64) (float64, error) {
	s, err := h.SampleDetailed(x, u)
	return s.Value, err
}

// SampleDetailed returns the sample of the selected table for the random
// number u. Continuous samples report primary bins of the continuous table,
// discrete samples those of the discrete table.
func (h *Hybrid) SampleDetailed(x, u float64) (twod.Sample, error) {
	r := h.Ratio(x)
	if u <= r && r > 0 {
		return h.continuous.SampleDetailed(x, u/r)
	}
	return h.discrete.SampleDetailed(x, (u-r)/(1-r))
}

// SampleInSubrange returns an angle cosine not above max.
func (h *Hybrid) SampleInSubrange(x float64, src random.Source, max float64) (float64, error) {
	if err := h.check(x); err != nil {
		return 0, err
	}
	return h.SampleWithRandomNumberInSubrange(x, src.Float64(), max)
}

// SampleWithRandomNumberInSubrange returns the angle cosine not above max
// for the random number u.
func (h *Hybrid) SampleWithRandomNumberInSubrange(x, u, max float64) (float64, error) {
	r := h.Ratio(x)
	if max <= h.cutoff {
		return h.continuous.SampleWithRandomNumberInSubrange(x, u, max)
	}
	c, err := h.discrete.EvaluateCDF(x, max)
	if err != nil {
		return 0, err
	}
	// the discrete points below max carry (1-r)*c of the probability
	target := u * (r + (1-r)*c)
	if target <= r && r > 0 {
		return h.continuous.SampleWithRandomNumber(x, target/r)
	}
	v := 0.0
	if mass := (1 - r) * c; mass > 0 {
		v = math.Min((target-r)/mass, 1)
	}
	return h.discrete.SampleWithRandomNumberInSubrange(x, v, max)
}

// check reports a domain error for energies outside of the tables.
func (h *Hybrid) check(x float64) error {
	_, err := h.continuous.LowerBoundOfConditionalIndepVar(x)
	return err
}

func invalid(format string, args ...interface{}) error {
	return errors.Mark(errors.Newf(format, args...), ErrInvalidHybrid)
}
