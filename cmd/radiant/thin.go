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
	"slices"

	"github.com/0xsoniclabs/radiant/config"
	"github.com/0xsoniclabs/radiant/distribution"
	"github.com/0xsoniclabs/radiant/interp"
	"github.com/0xsoniclabs/radiant/logger"
	"github.com/0xsoniclabs/radiant/tabledata"
	"github.com/cockroachdb/errors"
	"github.com/urfave/cli/v2"
)

// ThinCommand reduces the CDF tables of a table document.
var ThinCommand = cli.Command{
	Action: thinAction,
	Name:   "thin",
	Usage:  "reduces tabular-cdf bins to a given number of breakpoints and writes the document",
	Flags: []cli.Flag{
		&config.TableFlag,
		&config.RunFileFlag,
		&config.KeepFlag,
		&config.OutputFlag,
		&logger.LogLevelFlag,
	},
}

func thinAction(ctx *cli.Context) error {
	cfg, log, err := setup(ctx, "Thin")
	if err != nil {
		return err
	}
	if cfg.Table == "" || cfg.Output == "" {
		return errors.New("thinning needs an input document (--table) and an output document (--output)")
	}
	doc, err := tabledata.Read(cfg.Table)
	if err != nil {
		return err
	}
	scheme := interp.LinLinLin
	if doc.Scheme != "" {
		if scheme, err = interp.ParseTwoD(doc.Scheme); err != nil {
			return errors.Mark(err, tabledata.ErrFormat)
		}
	}
	thinned, err := thinBins(doc.Bins, scheme.Secondary(), cfg.Keep)
	if err != nil {
		return err
	}
	discrete, err := thinBins(doc.Discrete, scheme.Secondary(), cfg.Keep)
	if err != nil {
		return err
	}
	// the thinned document must still form a valid table
	if _, err := doc.Build(); err != nil {
		return errors.Wrap(err, "thinned document")
	}
	if err := tabledata.Write(cfg.Output, doc); err != nil {
		return err
	}
	log.Noticef("Thinned %d bins to at most %d breakpoints, written to %v", thinned+discrete, cfg.Keep, cfg.Output)
	return nil
}

// thinBins replaces the tables of all tabular-cdf bins with more than keep
// breakpoints by their thinned version. It returns the number of thinned bins.
func thinBins(bins []tabledata.BinDocument, secondary interp.Scheme, keep int) (int, error) {
	count := 0
	for i := range bins {
		b := &bins[i]
		if b.Kind != tabledata.KindTabularCDF || len(b.Secondary) <= keep {
			continue
		}
		d, err := b.Distribution(secondary)
		if err != nil {
			return count, errors.Wrapf(err, "bin %d at %v", i, b.Primary)
		}
		thin, err := distribution.Thin(d.(*distribution.TabularCDF), keep)
		if err != nil {
			return count, errors.Wrapf(err, "bin %d at %v", i, b.Primary)
		}
		b.Secondary = slices.Clone(thin.Breakpoints())
		b.Values = slices.Clone(thin.Values())
		count++
	}
	return count, nil
}
