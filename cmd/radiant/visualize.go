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
	"fmt"
	"io"
	"os"

	"github.com/0xsoniclabs/radiant/config"
	"github.com/cockroachdb/errors"
	"github.com/go-echarts/go-echarts/v2/charts"
	"github.com/go-echarts/go-echarts/v2/components"
	"github.com/go-echarts/go-echarts/v2/opts"
	"github.com/go-echarts/go-echarts/v2/types"
	"github.com/urfave/cli/v2"
)

const defaultVisualizeOutput = "radiant.html"

// VisualizeCommand renders density and cumulative distribution of a table
// document into an HTML page.
var VisualizeCommand = cli.Command{
	Action: visualizeAction,
	Name:   "visualize",
	Usage:  "renders PDF and CDF line charts at a set of energies to an HTML page",
	Flags:  withTableFlags(&config.EnergyFlag, &config.PointsFlag, &config.OutputFlag),
}

func visualizeAction(ctx *cli.Context) (err error) {
	cfg, log, err := setup(ctx, "Visualize")
	if err != nil {
		return err
	}
	model, doc, err := loadModel(cfg, log)
	if err != nil {
		return err
	}
	rows, err := evaluateModel(model, energies(cfg, doc), cfg.Points)
	if err != nil {
		return err
	}

	filename := cfg.Output
	if filename == "" {
		filename = defaultVisualizeOutput
	}
	f, err := os.Create(filename)
	if err != nil {
		return errors.Wrapf(err, "cannot create page %v", filename)
	}
	defer func(f *os.File) {
		err = errors.Join(err, f.Close())
	}(f)
	if err := renderPage(f, cfg.Table, rows); err != nil {
		return err
	}
	log.Noticef("Charts written to %v", filename)
	return nil
}

// renderPage writes one PDF and one CDF chart with a series per energy.
func renderPage(w io.Writer, title string, rows []evaluation) error {
	pdf := newDistributionChart("Probability density", title)
	cdf := newDistributionChart("Cumulative distribution", title)
	for _, series := range splitByEnergy(rows) {
		name := fmt.Sprintf("E = %g", series[0].Energy)
		pdfData := make([]opts.LineData, len(series))
		cdfData := make([]opts.LineData, len(series))
		for i, r := range series {
			pdfData[i] = opts.LineData{Value: [2]float64{r.Secondary, r.PDF}}
			cdfData[i] = opts.LineData{Value: [2]float64{r.Secondary, r.CDF}}
		}
		pdf.AddSeries(name, pdfData)
		cdf.AddSeries(name, cdfData)
	}
	page := components.NewPage()
	page.AddCharts(pdf, cdf)
	if err := page.Render(w); err != nil {
		return errors.Wrap(err, "rendering charts")
	}
	return nil
}

// newDistributionChart creates a line chart over the secondary variable.
func newDistributionChart(title, subtitle string) *charts.Line {
	chart := charts.NewLine()
	chart.SetGlobalOptions(charts.WithInitializationOpts(opts.Initialization{
		PageTitle: "Radiant",
		Theme:     types.ThemeChalk,
	}),
		charts.WithToolboxOpts(opts.Toolbox{
			Show: true,
			Feature: &opts.ToolBoxFeature{
				SaveAsImage: &opts.ToolBoxFeatureSaveAsImage{
					Show:  true,
					Title: "Save",
				},
				DataZoom: &opts.ToolBoxFeatureDataZoom{
					Show: true,
				},
			},
		}),
		charts.WithLegendOpts(opts.Legend{Show: true}),
		charts.WithXAxisOpts(opts.XAxis{Type: "value", Name: "secondary"}),
		charts.WithTitleOpts(opts.Title{
			Title:    title,
			Subtitle: subtitle,
		}))
	return chart
}

// splitByEnergy groups consecutive rows of the same energy.
func splitByEnergy(rows []evaluation) [][]evaluation {
	var res [][]evaluation
	for start := 0; start < len(rows); {
		end := start + 1
		for end < len(rows) && rows[end].Energy == rows[start].Energy {
			end++
		}
		res = append(res, rows[start:end])
		start = end
	}
	return res
}
