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
	"flag"
	"os"
	"path/filepath"
	"testing"

	"github.com/0xsoniclabs/radiant/distribution"
	"github.com/0xsoniclabs/radiant/logger"
	"github.com/0xsoniclabs/radiant/twod"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/urfave/cli/v2"
)

// runConfig runs a command with all radiant flags and returns its configuration.
func runConfig(t *testing.T, args ...string) (*Config, error) {
	t.Helper()
	var cfg *Config
	var cfgErr error
	app := cli.NewApp()
	app.HelpName = "radiant-test"
	app.Commands = []*cli.Command{{
		Name: "testcmd",
		Flags: []cli.Flag{
			&TableFlag, &RunFileFlag, &SchemeFlag, &GridPolicyFlag, &EvaluationTolFlag,
			&ExtendFlag, &SeedFlag, &HistoriesFlag, &WorkersFlag, &EnergyFlag,
			&PointsFlag, &KeepFlag, &OutputFlag, &logger.LogLevelFlag,
		},
		Action: func(ctx *cli.Context) error {
			cfg, cfgErr = NewConfig(ctx)
			return nil
		},
	}}
	require.NoError(t, app.Run(append([]string{"radiant-test", "testcmd"}, args...)))
	return cfg, cfgErr
}

func TestNewConfig_Defaults(t *testing.T) {
	cfg, err := runConfig(t)
	require.NoError(t, err)
	assert.Equal(t, "radiant-test", cfg.AppName)
	assert.Equal(t, "testcmd", cfg.CommandName)
	assert.Equal(t, uint64(1), cfg.Seed)
	assert.Equal(t, uint64(10_000), cfg.Histories)
	assert.Equal(t, 4, cfg.Workers)
	assert.Equal(t, 101, cfg.Points)
	assert.Equal(t, 32, cfg.Keep)
	assert.Equal(t, "info", cfg.LogLevel)
	assert.Empty(t, cfg.Energies)
	assert.Empty(t, cfg.Options())
}

func TestNewConfig_FlagsAreParsed(t *testing.T) {
	cfg, err := runConfig(t,
		"--scheme", "LinLinLog", "--policy", "UnitBase", "--evaluation-tol", "1e-5", "--extend",
		"--seed", "7", "--histories", "50", "--workers", "2", "-e", "1.5", "-e", "2",
		"--points", "11", "--keep", "8", "-o", "out.csv", "-t", "table.json", "--log", "debug")
	require.NoError(t, err)
	assert.Equal(t, "table.json", cfg.Table)
	assert.Equal(t, "LinLinLog", cfg.Scheme)
	assert.Equal(t, "UnitBase", cfg.Policy)
	assert.Equal(t, 1e-5, cfg.EvaluationTol)
	assert.True(t, cfg.Extend)
	assert.Equal(t, uint64(7), cfg.Seed)
	assert.Equal(t, uint64(50), cfg.Histories)
	assert.Equal(t, 2, cfg.Workers)
	assert.Equal(t, []float64{1.5, 2}, cfg.Energies)
	assert.Equal(t, 11, cfg.Points)
	assert.Equal(t, 8, cfg.Keep)
	assert.Equal(t, "out.csv", cfg.Output)
	assert.Equal(t, "debug", cfg.LogLevel)
	assert.Len(t, cfg.Options(), 4)
}

func TestNewConfig_OptionsBuildTable(t *testing.T) {
	cfg, err := runConfig(t, "--policy", "Stochastic", "--evaluation-tol", "0.01", "--extend")
	require.NoError(t, err)
	bins := []twod.Bin{{Primary: 1}, {Primary: 2}}
	for i := range bins {
		bins[i].Dist = uniformBin(t)
	}
	table, err := twod.New(bins, cfg.Options()...)
	require.NoError(t, err)
	assert.Equal(t, twod.Stochastic, table.Policy())
	assert.Equal(t, 0.01, table.EvaluationTol())
	assert.True(t, table.IsPrimaryLimitExtended())
}

func uniformBin(t *testing.T) distribution.Distribution {
	t.Helper()
	d, err := distribution.NewUniform(0, 1, 1)
	require.NoError(t, err)
	return d
}

func TestNewConfig_RejectsInvalidValues(t *testing.T) {
	tests := map[string][]string{
		"scheme":       {"--scheme", "LinLin"},
		"policy":       {"--policy", "Sideways"},
		"tolerance":    {"--evaluation-tol", "0.5"},
		"negative tol": {"--evaluation-tol", "-1e-7"},
		"workers":      {"--workers", "0"},
		"points":       {"--points", "1"},
		"keep":         {"--keep", "1"},
		"missing run":  {"--run", filepath.Join(os.TempDir(), "radiant-missing-run.yaml")},
	}
	for name, args := range tests {
		t.Run(name, func(t *testing.T) {
			_, err := runConfig(t, args...)
			assert.Error(t, err)
		})
	}
}

func TestNewConfig_RunFileProvidesDefaults(t *testing.T) {
	path := filepath.Join(t.TempDir(), "run.yaml")
	require.NoError(t, os.WriteFile(path, []byte(`
table: elastic.json.gz
policy: UnitBase
seed: 42
workers: 8
energies: [1.0, 1.5]
`), 0600))

	cfg, err := runConfig(t, "--run", path, "--workers", "3")
	require.NoError(t, err)
	assert.Equal(t, "elastic.json.gz", cfg.Table)
	assert.Equal(t, "UnitBase", cfg.Policy)
	assert.Equal(t, uint64(42), cfg.Seed)
	assert.Equal(t, 3, cfg.Workers)
	assert.Equal(t, []float64{1.0, 1.5}, cfg.Energies)
	assert.Equal(t, uint64(10_000), cfg.Histories)
}

func TestNewConfig_EmptyRunFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "run.yaml")
	require.NoError(t, os.WriteFile(path, nil, 0600))
	cfg, err := runConfig(t, "--run", path)
	require.NoError(t, err)
	assert.Equal(t, 4, cfg.Workers)
}

func TestNewConfig_RunFileRejectsUnknownKeys(t *testing.T) {
	path := filepath.Join(t.TempDir(), "run.yaml")
	require.NoError(t, os.WriteFile(path, []byte("polcy: UnitBase\n"), 0600))
	_, err := runConfig(t, "--run", path)
	assert.Error(t, err)
}

func TestGetFlagValue(t *testing.T) {
	// app for testing
	app := cli.NewApp()
	app.Commands = []*cli.Command{
		{
			Name: "testcmd",
			Flags: []cli.Flag{
				&cli.IntFlag{Name: "intflag"},
				&cli.Uint64Flag{Name: "uint64flag"},
				&cli.Float64Flag{Name: "float64flag"},
				&cli.StringFlag{Name: "stringflag"},
				&cli.PathFlag{Name: "pathflag"},
				&cli.BoolFlag{Name: "boolflag"},
				&cli.Float64SliceFlag{Name: "float64sliceflag"},
			},
		},
	}

	testCases := []struct {
		name          string
		setup         func(set *flag.FlagSet)
		flagToTest    interface{}
		expectedValue interface{}
	}{
		{"IntFlag value", func(set *flag.FlagSet) { set.Int("intflag", 42, "") }, cli.IntFlag{Name: "intflag"}, 42},
		{"Uint64Flag value", func(set *flag.FlagSet) { set.Uint64("uint64flag", 100, "") }, cli.Uint64Flag{Name: "uint64flag"}, uint64(100)},
		{"Float64Flag value", func(set *flag.FlagSet) { set.Float64("float64flag", 0.5, "") }, cli.Float64Flag{Name: "float64flag"}, 0.5},
		{"StringFlag value", func(set *flag.FlagSet) { set.String("stringflag", "test-string", "") }, cli.StringFlag{Name: "stringflag"}, "test-string"},
		{"PathFlag value", func(set *flag.FlagSet) { set.String("pathflag", "/test/path", "") }, cli.PathFlag{Name: "pathflag"}, "/test/path"},
		{"BoolFlag value", func(set *flag.FlagSet) { set.Bool("boolflag", true, "") }, cli.BoolFlag{Name: "boolflag"}, true},
		{"Float64SliceFlag value", func(set *flag.FlagSet) {
			set.Var(cli.NewFloat64Slice(1, 2.5), "float64sliceflag", "")
		}, cli.Float64SliceFlag{Name: "float64sliceflag"}, []float64{1, 2.5}},
		{"default value", func(set *flag.FlagSet) {}, cli.IntFlag{Name: "otherflag", Value: 7}, 7},
		{"default slice", func(set *flag.FlagSet) {}, cli.Float64SliceFlag{Name: "otherslice"}, []float64(nil)},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			set := flag.NewFlagSet("test", 0)
			tc.setup(set)
			ctx := cli.NewContext(app, set, nil)
			ctx.Command = app.Commands[0]
			assert.Equal(t, tc.expectedValue, getFlagValue(ctx, tc.flagToTest))
		})
	}
}
