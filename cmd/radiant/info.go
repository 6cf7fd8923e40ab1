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

	"github.com/0xsoniclabs/radiant/elastic"
	"github.com/0xsoniclabs/radiant/tabledata"
	"github.com/0xsoniclabs/radiant/twod"
	"github.com/cockroachdb/errors"
	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/urfave/cli/v2"
)

// InfoCommand prints a summary of a table document.
var InfoCommand = cli.Command{
	Action: infoAction,
	Name:   "info",
	Usage:  "prints the grid, the policy and the bins of a table document",
	Flags:  withTableFlags(),
}

func infoAction(ctx *cli.Context) error {
	cfg, log, err := setup(ctx, "Info")
	if err != nil {
		return err
	}
	model, doc, err := loadModel(cfg, log)
	if err != nil {
		return err
	}
	return printInfo(ctx.App.Writer, model, doc)
}

// printInfo renders the settings of model and one row per bin of doc.
func printInfo(w io.Writer, model tabledata.Model, doc *tabledata.Document) error {
	var continuous *twod.Table
	var hybrid *elastic.Hybrid
	switch m := model.(type) {
	case *twod.Table:
		continuous = m
	case *elastic.Hybrid:
		hybrid, continuous = m, m.Continuous()
	default:
		return errors.Newf("unsupported model %T", model)
	}

	settings := table.NewWriter()
	settings.SetOutputMirror(w)
	settings.SetTitle("Table")
	settings.AppendRows([]table.Row{
		{"scheme", continuous.Scheme()},
		{"policy", continuous.Policy()},
		{"evaluation tolerance", continuous.EvaluationTol()},
		{"extended", continuous.IsPrimaryLimitExtended()},
		{"primary range", fmt.Sprintf("[%g, %g]", model.LowerBoundOfPrimaryIndepVar(), model.UpperBoundOfPrimaryIndepVar())},
	})
	if hybrid != nil {
		settings.AppendRow(table.Row{"cutoff angle cosine", hybrid.CutoffAngleCosine()})
	}
	settings.SetStyle(table.StyleLight)
	settings.Render()

	bins := table.NewWriter()
	bins.SetOutputMirror(w)
	bins.SetTitle("Bins")
	header := table.Row{"#", "primary", "kind", "lower", "upper", "points"}
	if hybrid != nil {
		header = append(header, "ratio")
	}
	bins.AppendHeader(header)
	for i := 0; i < continuous.Len(); i++ {
		b := continuous.Bin(i)
		row := table.Row{i, b.Primary, kindOf(doc.Bins[i]), b.Dist.LowerBound(), b.Dist.UpperBound(), len(b.Dist.Breakpoints())}
		if hybrid != nil {
			row = append(row, hybrid.Ratio(b.Primary))
		}
		bins.AppendRow(row)
	}
	bins.SetStyle(table.StyleLight)
	bins.Render()

	if hybrid != nil {
		discrete := table.NewWriter()
		discrete.SetOutputMirror(w)
		discrete.SetTitle("Discrete bins")
		discrete.AppendHeader(table.Row{"#", "primary", "points"})
		for i := 0; i < hybrid.Discrete().Len(); i++ {
			b := hybrid.Discrete().Bin(i)
			discrete.AppendRow(table.Row{i, b.Primary, len(b.Dist.Breakpoints())})
		}
		discrete.SetStyle(table.StyleLight)
		discrete.Render()
	}
	return nil
}

func kindOf(b tabledata.BinDocument) string {
	if b.Kind == "" {
		return tabledata.KindTabular
	}
	return b.Kind
}
