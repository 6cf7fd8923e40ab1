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
	"io"
	"os"

	"github.com/0xsoniclabs/radiant/config"
	"github.com/0xsoniclabs/radiant/logger"
	"github.com/0xsoniclabs/radiant/tabledata"
	"github.com/cockroachdb/errors"
	"github.com/op/go-logging"
	"github.com/urfave/cli/v2"
	"gonum.org/v1/gonum/floats"
)

// tableFlags are the flags of every command working on a loaded table.
var tableFlags = []cli.Flag{
	&config.TableFlag,
	&config.RunFileFlag,
	&config.SchemeFlag,
	&config.GridPolicyFlag,
	&config.EvaluationTolFlag,
	&config.ExtendFlag,
	&logger.LogLevelFlag,
}

// withTableFlags appends flags to the common table flags.
func withTableFlags(flags ...cli.Flag) []cli.Flag {
	res := make([]cli.Flag, 0, len(tableFlags)+len(flags))
	res = append(res, tableFlags...)
	return append(res, flags...)
}

// setup creates the configuration and the logger of a command.
func setup(ctx *cli.Context, module string) (*config.Config, *logging.Logger, error) {
	cfg, err := config.NewConfig(ctx)
	if err != nil {
		return nil, nil, err
	}
	return cfg, logger.NewLogger(cfg.LogLevel, module), nil
}

// loadModel reads the configured table document and builds its model.
func loadModel(cfg *config.Config, log *logging.Logger) (tabledata.Model, *tabledata.Document, error) {
	if cfg.Table == "" {
		return nil, nil, errors.New("no table document given, use --table or a run file")
	}
	return tabledata.Load(cfg.Table, log, cfg.Options()...)
}

// energies returns the configured primary values or the primary grid of doc.
func energies(cfg *config.Config, doc *tabledata.Document) []float64 {
	if len(cfg.Energies) > 0 {
		return cfg.Energies
	}
	xs := make([]float64, len(doc.Bins))
	for i, b := range doc.Bins {
		xs[i] = b.Primary
	}
	return xs
}

// secondaryGrid returns points equidistant secondary values covering the
// support of the model at x.
func secondaryGrid(model tabledata.Model, x float64, points int) ([]float64, error) {
	lower, err := model.LowerBoundOfConditionalIndepVar(x)
	if err != nil {
		return nil, err
	}
	upper, err := model.UpperBoundOfConditionalIndepVar(x)
	if err != nil {
		return nil, err
	}
	return floats.Span(make([]float64, points), lower, upper), nil
}

// createOutput opens filename for writing, or returns the application writer
// if no file is given.
func createOutput(ctx *cli.Context, filename string) (io.Writer, func() error, error) {
	if filename == "" {
		return ctx.App.Writer, func() error { return nil }, nil
	}
	f, err := os.Create(filename)
	if err != nil {
		return nil, nil, errors.Wrapf(err, "cannot create output file %v", filename)
	}
	return f, f.Close, nil
}
