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

// Package distribution implements one-dimensional tabulated distributions of
// a secondary variable. Every distribution is immutable after construction and
// may be shared by any number of concurrent readers.
package distribution

import (
	"sort"

	"github.com/0xsoniclabs/radiant/random"
	"github.com/cockroachdb/errors"
)

var (
	// ErrInvalidDistribution marks malformed input data rejected at construction.
	ErrInvalidDistribution = errors.New("invalid distribution")
	// ErrDomain marks queries outside the reachable support of a distribution.
	ErrDomain = errors.New("value outside of distribution domain")
)

// Distribution is a normalized density over a secondary variable y restricted
// to [LowerBound(), UpperBound()].
type Distribution interface {
	// Evaluate returns the tabulated (unnormalized) value at y, or 0 outside
	// of the support.
	Evaluate(y float64) float64
	// EvaluatePDF returns the normalized density at y.
	EvaluatePDF(y float64) float64
	// EvaluateCDF returns the cumulative probability up to and including y.
	EvaluateCDF(y float64) float64

	// Sample draws one variate from src and inverts the CDF.
	Sample(src random.Source) float64
	// SampleWithRandomNumber inverts the CDF at u. Values of u outside [0,1]
	// are clamped.
	SampleWithRandomNumber(u float64) float64
	// SampleAndRecordBinIndex inverts the CDF at u and also returns the index
	// of the tabulated segment holding the sample.
	SampleAndRecordBinIndex(u float64) (float64, int)
	// SampleInSubrange draws from the distribution restricted to
	// [LowerBound(), min(UpperBound(), max)].
	SampleInSubrange(src random.Source, max float64) (float64, error)
	// SampleWithRandomNumberInSubrange is SampleInSubrange for a given u.
	SampleWithRandomNumberInSubrange(u, max float64) (float64, error)

	// BinIndex returns the index of the tabulated segment containing y.
	BinIndex(y float64) int
	// Breakpoints returns the tabulated secondary grid. The slice must not be
	// modified.
	Breakpoints() []float64

	LowerBound() float64
	UpperBound() float64
	IsContinuous() bool
}

// clampUnit limits u to [0,1].
func clampUnit(u float64) float64 {
	if u < 0 {
		return 0
	}
	if u > 1 {
		return 1
	}
	return u
}

// segmentIndex returns the index i of the segment [xs[i], xs[i+1]] that holds
// x, i.e. the largest i with xs[i] <= x, limited to [0, len(xs)-2].
func segmentIndex(xs []float64, x float64) int {
	i := sort.Search(len(xs), func(i int) bool { return xs[i] > x }) - 1
	if i < 0 {
		return 0
	}
	if i > len(xs)-2 {
		return len(xs) - 2
	}
	return i
}

// subrangeError reports a cutoff that leaves no support.
func subrangeError(max, lower float64) error {
	return errors.Mark(
		errors.Newf("subrange cutoff %v is below the lower bound %v", max, lower),
		ErrDomain,
	)
}

var (
	_ Distribution = (*Tabular)(nil)
	_ Distribution = (*TabularCDF)(nil)
	_ Distribution = (*Histogram)(nil)
	_ Distribution = (*Uniform)(nil)
	_ Distribution = (*Discrete)(nil)
)
