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

package main

import (
	"bytes"
	"math"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/0xsoniclabs/radiant/interp"
	"github.com/0xsoniclabs/radiant/tabledata"
	"github.com/gocarina/gocsv"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// run executes the radiant application and returns what it printed.
func run(t *testing.T, args ...string) (string, error) {
	t.Helper()
	var out bytes.Buffer
	app := newApp()
	app.Writer = &out
	app.ErrWriter = &out
	err := app.Run(append([]string{"radiant"}, args...))
	return out.String(), err
}

func writeDocument(t *testing.T, name string, doc *tabledata.Document) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	require.NoError(t, tabledata.Write(path, doc))
	return path
}

func elasticDocument() *tabledata.Document {
	mu := []float64{-1, 0, 0.999999}
	return &tabledata.Document{
		Scheme: "LinLinLin",
		Policy: "UnitBase",
		Bins: []tabledata.BinDocument{
			{Primary: 1.0, Kind: tabledata.KindTabular, Secondary: mu, Values: []float64{0.1, 0.5, 1.0}},
			{Primary: 2.0, Kind: tabledata.KindTabular, Secondary: mu, Values: []float64{1.0, 5.0, 10.0}},
		},
	}
}

func hybridDocument() *tabledata.Document {
	doc := elasticDocument()
	doc.Discrete = []tabledata.BinDocument{
		{Primary: 1.0, Kind: tabledata.KindDiscrete, Secondary: []float64{0.9999993, 0.9999998}, Values: []float64{0.4, 0.6}},
		{Primary: 2.0, Kind: tabledata.KindDiscrete, Secondary: []float64{0.9999993, 0.9999998}, Values: []float64{0.5, 0.5}},
	}
	doc.Energies = []float64{1.0, 2.0}
	doc.Ratios = []float64{0.9, 0.9}
	doc.Cutoff = 0.999999
	return doc
}

// denseDocument tabulates the CDF y^2 on [0,1] at n points.
func denseDocument(n int) *tabledata.Document {
	ys := make([]float64, n)
	cdf := make([]float64, n)
	for i := range ys {
		ys[i] = float64(i) / float64(n-1)
		cdf[i] = ys[i] * ys[i]
	}
	return &tabledata.Document{
		Bins: []tabledata.BinDocument{
			{Primary: 1, Kind: tabledata.KindTabularCDF, Secondary: ys, Values: cdf},
			{Primary: 2, Kind: tabledata.KindTabularCDF, Secondary: ys, Values: cdf},
		},
	}
}

func TestInfo_PrintsTableSummary(t *testing.T) {
	path := writeDocument(t, "table.json", elasticDocument())
	out, err := run(t, "info", "--table", path, "--log", "error")
	require.NoError(t, err)
	assert.Contains(t, out, "UnitBase")
	assert.Contains(t, out, "LinLinLin")
	assert.Contains(t, out, "tabular")
	assert.NotContains(t, out, "ratio")
}

func TestInfo_AppliesOverridesAndHybrid(t *testing.T) {
	path := writeDocument(t, "table.yaml.gz", hybridDocument())
	out, err := run(t, "info", "-t", path, "--policy", "Correlated", "--log", "error")
	require.NoError(t, err)
	assert.Contains(t, out, "Correlated")
	assert.Contains(t, out, "ratio")
	assert.Contains(t, out, "Discrete bins")
}

func TestInfo_RequiresTable(t *testing.T) {
	_, err := run(t, "info", "--log", "error")
	assert.Error(t, err)
	_, err = run(t, "info", "--table", filepath.Join(t.TempDir(), "missing.json"), "--log", "error")
	assert.Error(t, err)
}

func TestEvaluate_WritesCSV(t *testing.T) {
	path := writeDocument(t, "table.json", elasticDocument())
	output := filepath.Join(t.TempDir(), "eval.csv")
	_, err := run(t, "evaluate", "-t", path, "-e", "1.0", "-e", "1.5", "--points", "5", "-o", output, "--log", "error")
	require.NoError(t, err)

	data, err := os.ReadFile(output)
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(string(data), "energy,secondary,value,pdf,cdf"))
	var rows []evaluation
	require.NoError(t, gocsv.UnmarshalBytes(data, &rows))
	require.Len(t, rows, 10)

	assert.Equal(t, 1.5, rows[5].Energy)
	assert.Equal(t, -1.0, rows[5].Secondary)
	assert.InDelta(t, 0.55, rows[5].Value, 1e-12)
	for _, series := range splitByEnergy(rows) {
		require.Len(t, series, 5)
		assert.InDelta(t, 0.0, series[0].CDF, 1e-12)
		assert.InDelta(t, 1.0, series[4].CDF, 1e-12)
		for i := 1; i < len(series); i++ {
			assert.GreaterOrEqual(t, series[i].CDF, series[i-1].CDF)
		}
	}
}

func TestEvaluate_RejectsOutOfRangeEnergy(t *testing.T) {
	path := writeDocument(t, "table.json", elasticDocument())
	_, err := run(t, "evaluate", "-t", path, "-e", "3.0", "--log", "error")
	assert.Error(t, err)

	out, err := run(t, "evaluate", "-t", path, "-e", "3.0", "--extend", "--points", "3", "--log", "error")
	require.NoError(t, err)
	assert.Contains(t, out, "energy,secondary,value,pdf,cdf")
}

func TestSample_IsIndependentOfWorkers(t *testing.T) {
	path := writeDocument(t, "table.json", elasticDocument())
	dir := t.TempDir()
	outputs := map[string]string{"1": filepath.Join(dir, "one.csv"), "3": filepath.Join(dir, "three.csv")}
	for workers, output := range outputs {
		out, err := run(t, "sample", "-t", path, "-e", "1.5", "--histories", "200", "--workers", workers, "--seed", "9", "-o", output, "--log", "error")
		require.NoError(t, err)
		assert.Contains(t, out, "energy 1.5: 200 histories, 200 trials")
	}
	one, err := os.ReadFile(outputs["1"])
	require.NoError(t, err)
	three, err := os.ReadFile(outputs["3"])
	require.NoError(t, err)
	assert.Equal(t, string(one), string(three))

	var draws []draw
	require.NoError(t, gocsv.UnmarshalBytes(one, &draws))
	require.Len(t, draws, 200)
	for _, d := range draws {
		assert.GreaterOrEqual(t, d.Value, -1.0)
		assert.LessOrEqual(t, d.Value, 0.999999)
	}
}

func TestSample_PrintsGroupedCounts(t *testing.T) {
	path := writeDocument(t, "table.json", hybridDocument())
	out, err := run(t, "sample", "-t", path, "--histories", "1500", "--log", "error")
	require.NoError(t, err)
	assert.Contains(t, out, "energy 1: 1,500 histories")
	assert.Contains(t, out, "energy 2: 1,500 histories")
}

func TestSummarize(t *testing.T) {
	s := summarize(1, []float64{3, 1, 2}, 4)
	assert.Equal(t, 3, s.Count)
	assert.Equal(t, uint64(4), s.Trials)
	assert.Equal(t, 2.0, s.Mean)
	assert.Equal(t, 2.0, s.Median)
	assert.Equal(t, 1.0, s.StdDev)
	assert.Equal(t, 1.0, s.Minimum)
	assert.Equal(t, 3.0, s.Maximum)

	s = summarize(1, nil, 0)
	assert.Zero(t, s.Count)
	assert.False(t, math.IsNaN(s.Mean))
}

func TestVisualize_RendersCharts(t *testing.T) {
	path := writeDocument(t, "table.json", elasticDocument())
	output := filepath.Join(t.TempDir(), "charts.html")
	_, err := run(t, "visualize", "-t", path, "--points", "11", "-o", output, "--log", "error")
	require.NoError(t, err)
	data, err := os.ReadFile(output)
	require.NoError(t, err)
	assert.Contains(t, string(data), "Probability density")
	assert.Contains(t, string(data), "Cumulative distribution")
	assert.Contains(t, string(data), "E = 2")
}

func TestThin_ReducesTabularCDFBins(t *testing.T) {
	path := writeDocument(t, "dense.json", denseDocument(101))
	output := filepath.Join(t.TempDir(), "thin.json")
	_, err := run(t, "thin", "-t", path, "--keep", "12", "-o", output, "--log", "error")
	require.NoError(t, err)

	doc, err := tabledata.Read(output)
	require.NoError(t, err)
	for _, b := range doc.Bins {
		n := len(b.Secondary)
		assert.LessOrEqual(t, n, 12)
		assert.Greater(t, n, 2)
		require.Len(t, b.Values, n)
		assert.Equal(t, 0.0, b.Secondary[0])
		assert.Equal(t, 1.0, b.Secondary[n-1])
		assert.Equal(t, 0.0, b.Values[0])
		assert.Equal(t, 1.0, b.Values[n-1])
	}
	_, err = doc.Build()
	assert.NoError(t, err)
}

func TestThin_KeepsSmallAndOtherBins(t *testing.T) {
	bins := elasticDocument().Bins
	n, err := thinBins(bins, interp.LinLin, 2)
	require.NoError(t, err)
	assert.Zero(t, n)
	assert.Equal(t, elasticDocument().Bins, bins)

	bins = denseDocument(11).Bins
	n, err = thinBins(bins, interp.LinLin, 11)
	require.NoError(t, err)
	assert.Zero(t, n)
	assert.Equal(t, denseDocument(11).Bins, bins)
}

func TestThin_RequiresOutput(t *testing.T) {
	path := writeDocument(t, "dense.json", denseDocument(11))
	_, err := run(t, "thin", "-t", path, "--log", "error")
	assert.Error(t, err)
}
