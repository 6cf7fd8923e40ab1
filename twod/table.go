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

// Package twod implements two-dimensional tabulated distributions: a grid of
// primary values, each carrying a one-dimensional distribution of the
// secondary variable, and the grid policies that combine neighboring bins.
//
// A Table is immutable after construction apart from its extension mode,
// which must not be changed while other goroutines use the table. All
// sampling entry points take their random numbers from an explicit source.
package twod

import (
	"math"
	"sort"

	"github.com/0xsoniclabs/radiant/distribution"
	"github.com/0xsoniclabs/radiant/interp"
	"github.com/cockroachdb/errors"
)

// DefaultEvaluationTol is the relative tolerance of iterative inversions.
const DefaultEvaluationTol = 1e-7

// MaxEvaluationTol is the largest accepted evaluation tolerance.
const MaxEvaluationTol = 1e-1

var (
	// ErrInvalidTable marks malformed tables rejected at construction.
	ErrInvalidTable = errors.New("invalid two-dimensional table")
	// ErrDomain marks queries outside of the reachable domain of a table.
	ErrDomain = errors.New("value outside of table domain")
)

// Bin is a primary grid point with its conditional distribution. A
// distribution may be shared by several bins or tables.
type Bin struct {
	Primary float64
	Dist    distribution.Distribution
}

// Table is a two-dimensional tabulated distribution.
type Table struct {
	bins   []Bin
	scheme interp.TwoD
	policy Policy
	tol    float64
	extend bool
}

// Option configures a Table.
type Option func(*Table)

// WithPolicy sets the grid policy. The default is Correlated.
func WithPolicy(p Policy) Option {
	return func(t *Table) { t.policy = p }
}

// WithScheme sets the interpolation scheme. The default is LinLinLin.
func WithScheme(s interp.TwoD) Option {
	return func(t *Table) { t.scheme = s }
}

// WithEvaluationTol sets the relative tolerance of iterative inversions.
func WithEvaluationTol(tol float64) Option {
	return func(t *Table) { t.tol = tol }
}

// WithExtension makes queries beyond the primary grid use the nearest
// boundary bin instead of failing.
func WithExtension() Option {
	return func(t *Table) { t.extend = true }
}

// New creates a table from bins with strictly increasing primary values.
func New(bins []Bin, opts ...Option) (*Table, error) {
	t := &Table{
		bins:   append([]Bin(nil), bins...),
		scheme: interp.LinLinLin,
		policy: Correlated,
		tol:    DefaultEvaluationTol,
	}
	for _, opt := range opts {
		opt(t)
	}
	if err := t.check(); err != nil {
		return nil, err
	}
	return t, nil
}

// SchemeOf returns the interpolation scheme of a table created with opts.
func SchemeOf(opts ...Option) interp.TwoD {
	t := &Table{scheme: interp.LinLinLin}
	for _, opt := range opts {
		opt(t)
	}
	return t.scheme
}

func (t *Table) check() error {
	if _, ok := policyNames[t.policy]; !ok {
		return invalidTable("unknown grid policy %d", int(t.policy))
	}
	if !(t.tol > 0 && t.tol <= MaxEvaluationTol) {
		return invalidTable("evaluation tolerance %v is not in (0, %v]", t.tol, MaxEvaluationTol)
	}
	if len(t.bins) < 2 {
		return invalidTable("a table needs at least two primary bins, got %d", len(t.bins))
	}
	for i, b := range t.bins {
		if b.Dist == nil {
			return invalidTable("primary bin %d has no distribution", i)
		}
		if math.IsNaN(b.Primary) || math.IsInf(b.Primary, 0) {
			return invalidTable("primary value %d (%v) is not finite", i, b.Primary)
		}
		if !t.scheme.X.IsValid(b.Primary) {
			return invalidTable("primary value %d (%v) is invalid for %v interpolation", i, b.Primary, t.scheme)
		}
		if i > 0 && b.Primary <= t.bins[i-1].Primary {
			return invalidTable("primary values must be strictly increasing, but value %d (%v) follows %v", i, b.Primary, t.bins[i-1].Primary)
		}
		if t.policy.isUnitBase() && !t.scheme.Y.IsValid(b.Dist.LowerBound()) {
			return invalidTable("secondary lower bound %v of bin %d is invalid for %v unit-base interpolation", b.Dist.LowerBound(), i, t.scheme)
		}
	}
	return nil
}

// Policy returns the grid policy.
func (t *Table) Policy() Policy {
	return t.policy
}

// Scheme returns the interpolation scheme.
func (t *Table) Scheme() interp.TwoD {
	return t.scheme
}

// EvaluationTol returns the relative tolerance of iterative inversions.
func (t *Table) EvaluationTol() float64 {
	return t.tol
}

// Len returns the number of primary bins.
func (t *Table) Len() int {
	return len(t.bins)
}

// Bin returns the i-th primary bin.
func (t *Table) Bin(i int) Bin {
	return t.bins[i]
}

// ExtendBeyondPrimaryIndepLimits makes queries beyond the primary grid use
// the nearest boundary bin. It must not be called while the table is in use.
func (t *Table) ExtendBeyondPrimaryIndepLimits() {
	t.extend = true
}

// LimitToPrimaryIndepLimits makes queries beyond the primary grid fail. It
// must not be called while the table is in use.
func (t *Table) LimitToPrimaryIndepLimits() {
	t.extend = false
}

// IsPrimaryLimitExtended reports whether the extension mode is enabled.
func (t *Table) IsPrimaryLimitExtended() bool {
	return t.extend
}

// LowerBoundOfPrimaryIndepVar returns the primary value of the first bin.
func (t *Table) LowerBoundOfPrimaryIndepVar() float64 {
	return t.bins[0].Primary
}

// UpperBoundOfPrimaryIndepVar returns the primary value of the last bin.
func (t *Table) UpperBoundOfPrimaryIndepVar() float64 {
	return t.bins[len(t.bins)-1].Primary
}

// HasSamePrimaryBounds reports whether other spans the same primary range.
// A nil table has no bounds.
func (t *Table) HasSamePrimaryBounds(other *Table) bool {
	if other == nil {
		return false
	}
	return t.LowerBoundOfPrimaryIndepVar() == other.LowerBoundOfPrimaryIndepVar() &&
		t.UpperBoundOfPrimaryIndepVar() == other.UpperBoundOfPrimaryIndepVar()
}

// LowerBoundOfConditionalIndepVar returns the lowest secondary value
// reachable at the primary value x.
func (t *Table) LowerBoundOfConditionalIndepVar(x float64) (float64, error) {
	b, err := t.locate(x)
	if err != nil {
		return 0, err
	}
	lower, _ := t.bounds(b)
	return lower, nil
}

// UpperBoundOfConditionalIndepVar returns the highest secondary value
// reachable at the primary value x.
func (t *Table) UpperBoundOfConditionalIndepVar(x float64) (float64, error) {
	b, err := t.locate(x)
	if err != nil {
		return 0, err
	}
	_, upper := t.bounds(b)
	return upper, nil
}

// bracket locates a primary value on the grid. If single is set, the value
// coincides with (or is clamped to) the bin index and no interpolation
// takes place. Otherwise the value lies between bins index and index+1 at
// the interpolation fraction frac.
type bracket struct {
	index  int
	single bool
	frac   float64
}

func (t *Table) locate(x float64) (bracket, error) {
	n := len(t.bins)
	switch {
	case math.IsNaN(x):
		return bracket{}, domainError("primary value is not a number")
	case x < t.bins[0].Primary:
		if !t.extend {
			return bracket{}, domainError("primary value %v is below the table range [%v,%v]", x, t.bins[0].Primary, t.bins[n-1].Primary)
		}
		return bracket{index: 0, single: true}, nil
	case x > t.bins[n-1].Primary:
		if !t.extend {
			return bracket{}, domainError("primary value %v is above the table range [%v,%v]", x, t.bins[0].Primary, t.bins[n-1].Primary)
		}
		return bracket{index: n - 1, single: true}, nil
	}
	i := sort.Search(n, func(i int) bool { return t.bins[i].Primary > x }) - 1
	if x == t.bins[i].Primary {
		return bracket{index: i, single: true}, nil
	}
	xlo, xhi := t.bins[i].Primary, t.bins[i+1].Primary
	frac := t.scheme.Primary().Fraction(xlo, xhi, x)
	switch {
	case frac <= 0:
		return bracket{index: i, single: true}, nil
	case frac >= 1:
		return bracket{index: i + 1, single: true}, nil
	}
	return bracket{index: i, frac: frac}, nil
}

// pair returns the neighbors of a bracket that is not single.
func (t *Table) pair(b bracket) pair {
	return pair{
		lo:     t.bins[b.index].Dist,
		hi:     t.bins[b.index+1].Dist,
		t:      b.frac,
		scheme: t.scheme,
		tol:    t.tol,
	}
}

func (t *Table) bounds(b bracket) (float64, float64) {
	if b.single {
		d := t.bins[b.index].Dist
		return d.LowerBound(), d.UpperBound()
	}
	p := t.pair(b)
	if t.policy.interpolatesBounds() {
		return p.interpolatedBounds()
	}
	return p.unionBounds()
}

func invalidTable(format string, args ...interface{}) error {
	return errors.Mark(errors.Newf(format, args...), ErrInvalidTable)
}

func domainError(format string, args ...interface{}) error {
	return errors.Mark(errors.Newf(format, args...), ErrDomain)
}
