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
	"testing"

	"github.com/0xsoniclabs/radiant/interp"
	"github.com/cockroachdb/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTabularCDF_ShiftsAndNormalizes(t *testing.T) {
	d, err := NewTabularCDF(interp.LinLin, []float64{0, 1, 2}, []float64{0.2, 0.6, 1.2})
	require.NoError(t, err)
	assert.Equal(t, 0.0, d.EvaluateCDF(0))
	assert.Equal(t, 1.0, d.EvaluateCDF(2))
	assert.InDelta(t, 0.4, d.EvaluateCDF(1), 1e-15)
	assert.InDelta(t, 0.4, d.Evaluate(0.5), 1e-15)
	assert.InDelta(t, 0.6, d.Evaluate(1.5), 1e-15)
	assert.InDelta(t, 0.4, d.EvaluatePDF(0.5), 1e-15)
	assert.InDelta(t, 1.5, d.SampleWithRandomNumber(0.7), 1e-14)
}

func TestTabularCDF_LogLogSegments(t *testing.T) {
	d, err := NewTabularCDF(interp.LogLog, []float64{1, 2, 4}, []float64{0, 1, 4})
	require.NoError(t, err)
	// the first segment starts at zero and is interpolated linearly
	assert.InDelta(t, 1.0, d.Evaluate(1.5), 1e-15)
	// C(y) = (y/2)^2 on [2,4]
	assert.InDelta(t, 1.5, d.Evaluate(3), 1e-12)
	assert.InDelta(t, 2.25/4, d.EvaluateCDF(3), 1e-12)
	assert.InDelta(t, 3.0, d.SampleWithRandomNumber(2.25/4), 1e-12)
}

func TestTabularCDF_InverseConsistency(t *testing.T) {
	ys := []float64{1, 2, 5, 10}
	cdf := []float64{0.1, 0.4, 0.9, 1.3}
	for _, scheme := range interp.Schemes {
		t.Run(scheme.String(), func(t *testing.T) {
			d, err := NewTabularCDF(scheme, ys, cdf)
			require.NoError(t, err)
			for i := 0; i <= 50; i++ {
				u := float64(i) / 50
				y, bin := d.SampleAndRecordBinIndex(u)
				assert.InDelta(t, u, d.EvaluateCDF(y), 1e-12)
				require.GreaterOrEqual(t, bin, 0)
				require.Less(t, bin, len(ys)-1)
				assert.LessOrEqual(t, ys[bin], y)
				assert.GreaterOrEqual(t, ys[bin+1], y)
			}
		})
	}
}

func TestTabularCDF_FromPDF(t *testing.T) {
	d, err := NewTabularCDFFromPDF(interp.LinLin, []float64{-1, 0, 0.999999}, []float64{0.1, 0.5, 1.0})
	require.NoError(t, err)
	tab := MustNewTabular(interp.LinLin, []float64{-1, 0, 0.999999}, []float64{0.1, 0.5, 1.0})
	assert.InDelta(t, tab.Mass(), d.Mass(), 1e-14)
	assert.InDelta(t, tab.EvaluateCDF(0), d.EvaluateCDF(0), 1e-14)
}

func TestPDFtoCDF_Accumulates(t *testing.T) {
	cdf := PDFtoCDF([]float64{0, 1, 3}, []float64{1, 1, 2})
	assert.Equal(t, []float64{0, 1, 4}, cdf)
}

func TestTabularCDF_RejectsDecreasingValues(t *testing.T) {
	_, err := NewTabularCDF(interp.LinLin, []float64{0, 1, 2}, []float64{0, 0.5, 0.4})
	assert.True(t, errors.Is(err, ErrInvalidDistribution))
	_, err = NewTabularCDF(interp.LinLin, []float64{0, 1}, []float64{0.5, 0.5})
	assert.True(t, errors.Is(err, ErrInvalidDistribution))
}

func TestTabularCDF_SubrangeIsBounded(t *testing.T) {
	d, err := NewTabularCDF(interp.LinLin, []float64{0, 1, 2}, []float64{0, 0.4, 1})
	require.NoError(t, err)
	for i := 0; i <= 10; i++ {
		y, err := d.SampleWithRandomNumberInSubrange(float64(i)/10, 0.5)
		require.NoError(t, err)
		assert.LessOrEqual(t, y, 0.5)
	}
	_, err = d.SampleWithRandomNumberInSubrange(0.5, -math.SmallestNonzeroFloat64)
	assert.True(t, errors.Is(err, ErrDomain))
}

func TestThin_ReducesDenseTables(t *testing.T) {
	const n = 1001
	ys := make([]float64, n)
	cdf := make([]float64, n)
	for i := range n {
		ys[i] = float64(i) / (n - 1)
		cdf[i] = ys[i] * ys[i]
	}
	d, err := NewTabularCDF(interp.LinLin, ys, cdf)
	require.NoError(t, err)

	thin, err := Thin(d, 50)
	require.NoError(t, err)
	assert.LessOrEqual(t, len(thin.Breakpoints()), 50)
	assert.Equal(t, 0.0, thin.LowerBound())
	assert.Equal(t, 1.0, thin.UpperBound())
	for i := 0; i <= 100; i++ {
		y := float64(i) / 100
		assert.InDelta(t, d.EvaluateCDF(y), thin.EvaluateCDF(y), 1e-3)
	}

	same, err := Thin(d, n)
	require.NoError(t, err)
	assert.Same(t, d, same)

	_, err = Thin(d, 1)
	assert.True(t, errors.Is(err, ErrInvalidDistribution))
}
