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
	"context"
	"io"
	"slices"
	"sync/atomic"
	"time"

	"github.com/0xsoniclabs/radiant/config"
	"github.com/0xsoniclabs/radiant/logger"
	"github.com/0xsoniclabs/radiant/random"
	"github.com/0xsoniclabs/radiant/tabledata"
	"github.com/cockroachdb/errors"
	"github.com/gocarina/gocsv"
	"github.com/urfave/cli/v2"
	"golang.org/x/sync/errgroup"
	"golang.org/x/text/language"
	"golang.org/x/text/message"
	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/stat"
)

// SampleCommand samples a table document at a set of energies.
var SampleCommand = cli.Command{
	Action: sampleAction,
	Name:   "sample",
	Usage:  "samples secondary values and prints their statistics",
	Flags: withTableFlags(
		&config.EnergyFlag,
		&config.SeedFlag,
		&config.HistoriesFlag,
		&config.WorkersFlag,
		&config.OutputFlag,
	),
}

// draw is one CSV row of the sample command.
type draw struct {
	Energy  float64 `csv:"energy"`
	History uint64  `csv:"history"`
	Value   float64 `csv:"value"`
}

// summary holds the sample statistics at one energy.
type summary struct {
	Energy  float64
	Count   int
	Trials  uint64
	Mean    float64
	StdDev  float64
	Median  float64
	Minimum float64
	Maximum float64
}

func sampleAction(ctx *cli.Context) (err error) {
	cfg, log, err := setup(ctx, "Sample")
	if err != nil {
		return err
	}
	model, doc, err := loadModel(cfg, log)
	if err != nil {
		return err
	}

	start := time.Now()
	streams := random.NewStreams(cfg.Seed)
	printer := message.NewPrinter(language.English)
	var draws []draw
	for i, x := range energies(cfg, doc) {
		// every energy has its own block of histories
		offset := uint64(i) * cfg.Histories
		values, trials, err := sampleModel(ctx.Context, model, streams, x, offset, cfg.Histories, cfg.Workers)
		if err != nil {
			return err
		}
		printSummary(ctx.App.Writer, printer, summarize(x, values, trials))
		if cfg.Output != "" {
			for h, v := range values {
				draws = append(draws, draw{Energy: x, History: offset + uint64(h), Value: v})
			}
		}
	}
	hours, minutes, seconds := logger.ParseTime(time.Since(start))
	log.Noticef("Sampling took %vh %vm %vs", hours, minutes, seconds)

	if cfg.Output == "" {
		return nil
	}
	w, closeOutput, err := createOutput(ctx, cfg.Output)
	if err != nil {
		return err
	}
	defer func() {
		err = errors.Join(err, closeOutput())
	}()
	if err := gocsv.Marshal(&draws, w); err != nil {
		return errors.Wrap(err, "writing samples")
	}
	return nil
}

// sampleModel samples the histories [offset, offset+histories) at x using
// the given number of workers. Each history draws from its own stream, so the
// result does not depend on the number of workers.
func sampleModel(ctx context.Context, model tabledata.Model, streams random.Streams, x float64, offset, histories uint64, workers int) ([]float64, uint64, error) {
	if ctx == nil {
		ctx = context.Background()
	}
	values := make([]float64, histories)
	chunk := (histories + uint64(workers) - 1) / uint64(workers)
	var trials atomic.Uint64

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(workers)
	for first := uint64(0); first < histories; first += chunk {
		last := min(first+chunk, histories)
		g.Go(func() error {
			var count uint64
			defer func() { trials.Add(count) }()
			for h := first; h < last; h++ {
				if err := gctx.Err(); err != nil {
					return err
				}
				v, err := model.SampleAndRecordTrials(x, streams.ForHistory(offset+h), &count)
				if err != nil {
					return errors.Wrapf(err, "history %d at energy %v", offset+h, x)
				}
				values[h] = v
			}
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, 0, err
	}
	return values, trials.Load(), nil
}

// summarize computes the statistics of values sampled at x.
func summarize(x float64, values []float64, trials uint64) summary {
	s := summary{Energy: x, Count: len(values), Trials: trials}
	if len(values) == 0 {
		return s
	}
	sorted := slices.Clone(values)
	slices.Sort(sorted)
	s.Mean = stat.Mean(values, nil)
	s.Median = stat.Quantile(0.5, stat.Empirical, sorted, nil)
	s.Minimum = floats.Min(values)
	s.Maximum = floats.Max(values)
	if len(values) > 1 {
		s.StdDev = stat.StdDev(values, nil)
	}
	return s
}

func printSummary(w io.Writer, p *message.Printer, s summary) {
	p.Fprintf(w, "energy %g: %d histories, %d trials\n", s.Energy, s.Count, s.Trials)
	p.Fprintf(w, "\tmean %.6f, std dev %.6f, median %.6f, range [%.6f, %.6f]\n", s.Mean, s.StdDev, s.Median, s.Minimum, s.Maximum)
}
