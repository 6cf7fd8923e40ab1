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

package config

import (
	"github.com/0xsoniclabs/radiant/twod"
	"github.com/urfave/cli/v2"
)

var (
	TableFlag = cli.PathFlag{
		Name:    "table",
		Aliases: []string{"t"},
		Usage:   "table document (.json, .yaml or .yml, optionally .gz compressed)",
	}
	RunFileFlag = cli.PathFlag{
		Name:  "run",
		Usage: "YAML run file providing defaults for all other options",
	}
	SchemeFlag = cli.StringFlag{
		Name:  "scheme",
		Usage: "two-dimensional interpolation scheme, e.g. LinLinLin or LogLogLog (default: from table)",
	}
	GridPolicyFlag = cli.StringFlag{
		Name:  "policy",
		Usage: "grid policy: Direct, UnitBase, Correlated, UnitBaseCorrelated or Stochastic (default: from table)",
	}
	EvaluationTolFlag = cli.Float64Flag{
		Name:  "evaluation-tol",
		Usage: "relative tolerance of numeric CDF inversion, in (0, 0.1] (default: from table)",
	}
	ExtendFlag = cli.BoolFlag{
		Name:  "extend",
		Usage: "extend the table beyond its primary grid by using the boundary distributions",
	}
	SeedFlag = cli.Uint64Flag{
		Name:  "seed",
		Usage: "master seed of the random streams",
		Value: 1,
	}
	HistoriesFlag = cli.Uint64Flag{
		Name:  "histories",
		Usage: "number of sampled histories per energy",
		Value: 10_000,
	}
	WorkersFlag = cli.IntFlag{
		Name:  "workers",
		Usage: "number of worker threads",
		Value: 4,
	}
	EnergyFlag = cli.Float64SliceFlag{
		Name:    "energy",
		Aliases: []string{"e"},
		Usage:   "primary values to work on (default: every grid point)",
	}
	PointsFlag = cli.IntFlag{
		Name:  "points",
		Usage: "number of secondary grid points",
		Value: 101,
	}
	KeepFlag = cli.IntFlag{
		Name:  "keep",
		Usage: "number of breakpoints kept per thinned distribution",
		Value: 32,
	}
	OutputFlag = cli.PathFlag{
		Name:    "output",
		Aliases: []string{"o"},
		Usage:   "output file",
	}
)

// policyUsage lists the accepted grid policies.
func policyUsage() []string {
	names := make([]string, len(twod.Policies))
	for i, p := range twod.Policies {
		names[i] = p.String()
	}
	return names
}
