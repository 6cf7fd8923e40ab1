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
	"os"

	"github.com/urfave/cli/v2"
)

// newApp creates the radiant command line application.
func newApp() *cli.App {
	return &cli.App{
		Name:      "Radiant",
		HelpName:  "radiant",
		Usage:     "inspect, evaluate and sample two-dimensional tabulated scattering distributions",
		Copyright: "(c) 2025 Sonic Labs",
		Commands: []*cli.Command{
			&InfoCommand,
			&EvaluateCommand,
			&SampleCommand,
			&VisualizeCommand,
			&ThinCommand,
		},
	}
}

func main() {
	if err := newApp().Run(os.Args); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
