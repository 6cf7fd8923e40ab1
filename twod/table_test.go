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
	"testing"

	"github.com/0xsoniclabs/radiant/distribution"
	"github.com/0xsoniclabs/radiant/interp"
	"github.com/cockroachdb/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// elasticBins returns the two-bin cutoff elastic table used by the
// regression values below.
func elasticBins(t *testing.T) []Bin {
	t.Helper()
	mu := []float64{-1, 0, 0.999999}
	lo, err := distribution.NewTabular(interp.LinLin, mu, []float64{0.1, 0.5, 1.0})
	require.NoError(t, err)
	hi, err := distribution.NewTabular(interp.LinLin, mu, []float64{1.0, 5.0, 10.0})
	require.NoError(t, err)
	return []Bin{{Primary: 1.0, Dist: lo}, {Primary: 2.0, Dist: hi}}
}

func elasticTable(t *testing.T, opts ...Option) *Table {
	t.Helper()
	table, err := New(elasticBins(t), opts...)
	require.NoError(t, err)
	return table
}

// mixedBins returns three bins with differing supports and shapes.
func mixedBins(t *testing.T) []Bin {
	t.Helper()
	a, err := distribution.NewTabular(interp.LinLin, []float64{0.1, 0.5, 1}, []float64{1, 2, 0.5})
	require.NoError(t, err)
	b, err := distribution.NewTabular(interp.LinLin, []float64{0.2, 1, 2, 4}, []float64{0.5, 1, 1, 0.2})
	require.NoError(t, err)
	c, err := distribution.NewTabularCDF(interp.LinLin, []float64{1, 5, 10}, []float64{0, 0.7, 1})
	require.NoError(t, err)
	return []Bin{{Primary: 1, Dist: a}, {Primary: 10, Dist: b}, {Primary: 100, Dist: c}}
}

func mixedTable(t *testing.T, policy Policy, scheme interp.TwoD) *Table {
	t.Helper()
	table, err := New(mixedBins(t), WithPolicy(policy), WithScheme(scheme))
	require.NoError(t, err)
	return table
}

func TestTable_EvaluateRegressionValues(t *testing.T) {
	tests := map[Policy]float64{
		Correlated: 0.18181818181818182,
		UnitBase:   0.55,
		Direct:     0.55,
	}
	for policy, want := range tests {
		t.Run(policy.String(), func(t *testing.T) {
			table := elasticTable(t, WithPolicy(policy))
			got, err := table.Evaluate(1.5, -1.0)
			require.NoError(t, err)
			assert.InDelta(t, want, got, 1e-15)
		})
	}
}

func TestTable_DefaultsToCorrelatedLinLinLin(t *testing.T) {
	table := elasticTable(t)
	assert.Equal(t, Correlated, table.Policy())
	assert.Equal(t, interp.LinLinLin, table.Scheme())
	assert.Equal(t, DefaultEvaluationTol, table.EvaluationTol())
	assert.False(t, table.IsPrimaryLimitExtended())
	assert.Equal(t, 2, table.Len())
	assert.Equal(t, 2.0, table.Bin(1).Primary)
}

func TestTable_EvaluateAtGridPointReproducesBin(t *testing.T) {
	bins := mixedBins(t)
	for _, policy := range Policies {
		table := mixedTable(t, policy, interp.LinLinLin)
		for _, y := range []float64{0.2, 0.7, 1.5, 3} {
			got, err := table.Evaluate(10, y)
			require.NoError(t, err)
			assert.Equal(t, bins[1].Dist.Evaluate(y), got)
			got, err = table.EvaluateCDF(10, y)
			require.NoError(t, err)
			assert.Equal(t, bins[1].Dist.EvaluateCDF(y), got)
		}
	}
}

func TestTable_CDFBoundaryValues(t *testing.T) {
	for _, scheme := range []interp.TwoD{interp.LinLinLin, interp.LogLogLog, interp.LinLinLog} {
		for _, policy := range Policies {
			table := mixedTable(t, policy, scheme)
			for _, x := range []float64{1.5, 5, 42, 99} {
				lower, err := table.LowerBoundOfConditionalIndepVar(x)
				require.NoError(t, err)
				upper, err := table.UpperBoundOfConditionalIndepVar(x)
				require.NoError(t, err)
				c, err := table.EvaluateCDF(x, lower)
				require.NoError(t, err)
				assert.InDelta(t, 0.0, c, 1e-12, "%v %v x=%v", scheme, policy, x)
				c, err = table.EvaluateCDF(x, upper)
				require.NoError(t, err)
				assert.InDelta(t, 1.0, c, 1e-12, "%v %v x=%v", scheme, policy, x)
			}
		}
	}
}

func TestTable_CDFIsMonotone(t *testing.T) {
	for _, policy := range Policies {
		table := mixedTable(t, policy, interp.LinLinLin)
		for _, x := range []float64{3, 30} {
			lower, err := table.LowerBoundOfConditionalIndepVar(x)
			require.NoError(t, err)
			upper, err := table.UpperBoundOfConditionalIndepVar(x)
			require.NoError(t, err)
			last := -1.0
			for i := 0; i <= 200; i++ {
				y := lower + (upper-lower)*float64(i)/200
				c, err := table.EvaluateCDF(x, y)
				require.NoError(t, err)
				assert.GreaterOrEqual(t, c, last, "%v x=%v y=%v", policy, x, y)
				last = c
			}
		}
	}
}

func TestTable_DensityIsDerivativeOfCDF(t *testing.T) {
	const h = 1e-6
	for _, scheme := range []interp.TwoD{interp.LinLinLin, interp.LogLogLog, interp.LinLinLog, interp.LogLinLin} {
		for _, policy := range Policies {
			table := mixedTable(t, policy, scheme)
			for _, y := range []float64{0.37, 0.81, 1.23} {
				pdf, err := table.EvaluatePDF(5, y)
				require.NoError(t, err)
				c0, err := table.EvaluateCDF(5, y-h)
				require.NoError(t, err)
				c1, err := table.EvaluateCDF(5, y+h)
				require.NoError(t, err)
				assert.InEpsilon(t, (c1-c0)/(2*h), pdf, 1e-4, "%v %v y=%v", scheme, policy, y)
			}
		}
	}
}

func TestTable_BoundsPerPolicy(t *testing.T) {
	direct := mixedTable(t, Direct, interp.LinLinLin)
	lower, err := direct.LowerBoundOfConditionalIndepVar(5.5)
	require.NoError(t, err)
	upper, err := direct.UpperBoundOfConditionalIndepVar(5.5)
	require.NoError(t, err)
	assert.Equal(t, 0.1, lower)
	assert.Equal(t, 4.0, upper)

	unitBase := mixedTable(t, UnitBase, interp.LinLinLin)
	lower, err = unitBase.LowerBoundOfConditionalIndepVar(5.5)
	require.NoError(t, err)
	upper, err = unitBase.UpperBoundOfConditionalIndepVar(5.5)
	require.NoError(t, err)
	assert.InDelta(t, 0.15, lower, 1e-15)
	assert.InDelta(t, 2.5, upper, 1e-15)

	lower, err = unitBase.LowerBoundOfConditionalIndepVar(10)
	require.NoError(t, err)
	assert.Equal(t, 0.2, lower)
}

func TestTable_ExtensionMode(t *testing.T) {
	table := elasticTable(t)
	_, err := table.Evaluate(3.0, 0)
	assert.True(t, errors.Is(err, ErrDomain))
	_, err = table.EvaluateCDF(0.5, 0)
	assert.True(t, errors.Is(err, ErrDomain))
	_, err = table.LowerBoundOfConditionalIndepVar(3.0)
	assert.True(t, errors.Is(err, ErrDomain))

	table.ExtendBeyondPrimaryIndepLimits()
	assert.True(t, table.IsPrimaryLimitExtended())
	got, err := table.Evaluate(3.0, 0)
	require.NoError(t, err)
	assert.Equal(t, 5.0, got)
	got, err = table.Evaluate(0.5, 0)
	require.NoError(t, err)
	assert.Equal(t, 0.5, got)

	table.LimitToPrimaryIndepLimits()
	assert.False(t, table.IsPrimaryLimitExtended())
	_, err = table.Evaluate(3.0, 0)
	assert.True(t, errors.Is(err, ErrDomain))
	got, err = table.Evaluate(2.0, 0)
	require.NoError(t, err)
	assert.Equal(t, 5.0, got)

	extended := elasticTable(t, WithExtension())
	assert.True(t, extended.IsPrimaryLimitExtended())
}

func TestTable_HasSamePrimaryBounds(t *testing.T) {
	a := elasticTable(t)
	b := elasticTable(t, WithPolicy(UnitBase))
	c := mixedTable(t, Direct, interp.LinLinLin)
	assert.True(t, a.HasSamePrimaryBounds(b))
	assert.False(t, a.HasSamePrimaryBounds(c))
	assert.False(t, a.HasSamePrimaryBounds(nil))
	assert.Equal(t, 1.0, a.LowerBoundOfPrimaryIndepVar())
	assert.Equal(t, 2.0, a.UpperBoundOfPrimaryIndepVar())
}

func TestNew_RejectsInvalidTables(t *testing.T) {
	bins := elasticBins(t)
	tests := map[string]struct {
		bins []Bin
		opts []Option
	}{
		"single bin":        {bins[:1], nil},
		"no bins":           {nil, nil},
		"decreasing":        {[]Bin{bins[1], bins[0]}, nil},
		"duplicate primary": {[]Bin{bins[0], {Primary: 1.0, Dist: bins[1].Dist}}, nil},
		"nil distribution":  {[]Bin{bins[0], {Primary: 2.0}}, nil},
		"zero tolerance":    {bins, []Option{WithEvaluationTol(0)}},
		"large tolerance":   {bins, []Option{WithEvaluationTol(0.2)}},
		"log primary":       {[]Bin{{Primary: 0, Dist: bins[0].Dist}, bins[1]}, []Option{WithScheme(interp.LinLinLog)}},
		"log unit base":     {bins, []Option{WithScheme(interp.LinLogLin), WithPolicy(UnitBase)}},
		"unknown policy":    {bins, []Option{WithPolicy(Policy(42))}},
	}
	for name, test := range tests {
		t.Run(name, func(t *testing.T) {
			_, err := New(test.bins, test.opts...)
			require.Error(t, err)
			assert.True(t, errors.Is(err, ErrInvalidTable))
		})
	}
}

func TestPolicy_ParseAndString(t *testing.T) {
	for _, p := range Policies {
		parsed, err := ParsePolicy(p.String())
		require.NoError(t, err)
		assert.Equal(t, p, parsed)
	}
	_, err := ParsePolicy("Histogram")
	assert.Error(t, err)
	assert.Equal(t, "Unknown", Policy(-1).String())
}
