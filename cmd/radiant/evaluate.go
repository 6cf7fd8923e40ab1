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
	"github.com/0xsoniclabs/radiant/config"
	"github.com/0xsoniclabs/radiant/tabledata"
	"github.com/cockroachdb/errors"
	"github.com/gocarina/gocsv"
	"github.com/urfave/cli/v2"
)

// EvaluateCommand tabulates a table document on a secondary grid.
var EvaluateCommand = cli.Command{
	Action: evaluateAction,
	Name:   "evaluate",
	Usage:  "writes value, density and cumulative probability on a secondary grid as CSV",
	Flags:  withTableFlags(&config.EnergyFlag, &config.PointsFlag, &config.OutputFlag),
}

// evaluation is one CSV row of the evaluate command.
type evaluation struct {
	Energy    float64 `csv:"energy"`
	Secondary float64 `csv:"secondary"`
	Value     float64 `csv:"value"`
	PDF       float64 `csv:"pdf"`
	CDF       float64 `csv:"cdf"`
}

func evaluateAction(ctx *cli.Context) (err error) {
	cfg, log, err := setup(ctx, "Evaluate")
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

	w, closeOutput, err := createOutput(ctx, cfg.Output)
	if err != nil {
		return err
	}
	defer func() {
		err = errors.Join(err, closeOutput())
	}()
	if err := gocsv.Marshal(&rows, w); err != nil {
		return errors.Wrap(err, "writing evaluations")
	}
	log.Infof("Evaluated %d points", len(rows))
	return nil
}

// evaluateModel evaluates model on points secondary values at each energy.
func evaluateModel(model tabledata.Model, xs []float64, points int) ([]evaluation, error) {
	rows := make([]evaluation, 0, len(xs)*points)
	for _, x := range xs {
		ys, err := secondaryGrid(model, x, points)
		if err != nil {
			return nil, err
		}
		for _, y := range ys {
			value, err := model.Evaluate(x, y)
			if err != nil {
				return nil, err
			}
			pdf, err := model.EvaluatePDF(x, y)
			if err != nil {
				return nil, err
			}
			cdf, err := model.EvaluateCDF(x, y)
			if err != nil {
				return nil, err
			}
			rows = append(rows, evaluation{Energy: x, Secondary: y, Value: value, PDF: pdf, CDF: cdf})
		}
	}
	return rows, nil
}
