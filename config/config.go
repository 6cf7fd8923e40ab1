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
	"io"
	"os"
	"strings"

	"github.com/0xsoniclabs/radiant/interp"
	"github.com/0xsoniclabs/radiant/logger"
	"github.com/0xsoniclabs/radiant/twod"
	"github.com/cockroachdb/errors"
	"github.com/urfave/cli/v2"
	"gopkg.in/yaml.v3"
)

// Config summarizes the options of a radiant run.
type Config struct {
	AppName     string `yaml:"-"`
	CommandName string `yaml:"-"`

	Table         string    `yaml:"table"`         // table document
	RunFile       string    `yaml:"-"`             // YAML run file
	Scheme        string    `yaml:"scheme"`        // interpolation scheme override
	Policy        string    `yaml:"policy"`        // grid policy override
	EvaluationTol float64   `yaml:"evaluationTol"` // inversion tolerance override
	Extend        bool      `yaml:"extend"`        // extension mode
	Seed          uint64    `yaml:"seed"`          // master seed
	Histories     uint64    `yaml:"histories"`     // histories per energy
	Workers       int       `yaml:"workers"`       // number of workers
	Energies      []float64 `yaml:"energies"`      // primary values
	Points        int       `yaml:"points"`        // secondary grid points
	Keep          int       `yaml:"keep"`          // breakpoints kept by thinning
	Output        string    `yaml:"output"`        // output file
	LogLevel      string    `yaml:"log"`           // logging level
}

// NewConfig creates and validates the configuration of the current command.
// Values of the run file replace the flag defaults; flags given on the
// command line replace both.
func NewConfig(ctx *cli.Context) (*Config, error) {
	cfg := createConfigFromFlags(ctx)
	if cfg.RunFile != "" {
		run := *cfg
		if err := readRunFile(cfg.RunFile, &run); err != nil {
			return nil, err
		}
		for name, keep := range overrides {
			if ctx.IsSet(name) {
				keep(&run, cfg)
			}
		}
		cfg = &run
	}
	if err := cfg.validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// createConfigFromFlags returns Config instance with user specified values or the default ones
func createConfigFromFlags(ctx *cli.Context) *Config {
	cfg := &Config{
		AppName:     ctx.App.HelpName,
		CommandName: ctx.Command.Name,

		Table:         getFlagValue(ctx, TableFlag).(string),
		RunFile:       getFlagValue(ctx, RunFileFlag).(string),
		Scheme:        getFlagValue(ctx, SchemeFlag).(string),
		Policy:        getFlagValue(ctx, GridPolicyFlag).(string),
		EvaluationTol: getFlagValue(ctx, EvaluationTolFlag).(float64),
		Extend:        getFlagValue(ctx, ExtendFlag).(bool),
		Seed:          getFlagValue(ctx, SeedFlag).(uint64),
		Histories:     getFlagValue(ctx, HistoriesFlag).(uint64),
		Workers:       getFlagValue(ctx, WorkersFlag).(int),
		Energies:      getFlagValue(ctx, EnergyFlag).([]float64),
		Points:        getFlagValue(ctx, PointsFlag).(int),
		Keep:          getFlagValue(ctx, KeepFlag).(int),
		Output:        getFlagValue(ctx, OutputFlag).(string),
		LogLevel:      getFlagValue(ctx, logger.LogLevelFlag).(string),
	}
	return cfg
}

// overrides copies the value of an explicitly given flag over the run file.
var overrides = map[string]func(dst, src *Config){
	TableFlag.Name:           func(dst, src *Config) { dst.Table = src.Table },
	SchemeFlag.Name:          func(dst, src *Config) { dst.Scheme = src.Scheme },
	GridPolicyFlag.Name:      func(dst, src *Config) { dst.Policy = src.Policy },
	EvaluationTolFlag.Name:   func(dst, src *Config) { dst.EvaluationTol = src.EvaluationTol },
	ExtendFlag.Name:          func(dst, src *Config) { dst.Extend = src.Extend },
	SeedFlag.Name:            func(dst, src *Config) { dst.Seed = src.Seed },
	HistoriesFlag.Name:       func(dst, src *Config) { dst.Histories = src.Histories },
	WorkersFlag.Name:         func(dst, src *Config) { dst.Workers = src.Workers },
	EnergyFlag.Name:          func(dst, src *Config) { dst.Energies = src.Energies },
	PointsFlag.Name:          func(dst, src *Config) { dst.Points = src.Points },
	KeepFlag.Name:            func(dst, src *Config) { dst.Keep = src.Keep },
	OutputFlag.Name:          func(dst, src *Config) { dst.Output = src.Output },
	logger.LogLevelFlag.Name: func(dst, src *Config) { dst.LogLevel = src.LogLevel },
}

// readRunFile decodes the run file over cfg. Unknown keys are rejected.
func readRunFile(filename string, cfg *Config) (err error) {
	file, err := os.Open(filename)
	if err != nil {
		return errors.Wrapf(err, "cannot open run file %v", filename)
	}
	defer func(file *os.File) {
		err = errors.Join(err, file.Close())
	}(file)

	decoder := yaml.NewDecoder(file)
	decoder.KnownFields(true)
	// an empty run file sets nothing
	if err := decoder.Decode(cfg); err != nil && !errors.Is(err, io.EOF) {
		return errors.Wrapf(err, "cannot parse run file %v", filename)
	}
	return nil
}

func (cfg *Config) validate() error {
	if cfg.Scheme != "" {
		if _, err := interp.ParseTwoD(cfg.Scheme); err != nil {
			return err
		}
	}
	if cfg.Policy != "" {
		if _, err := twod.ParsePolicy(cfg.Policy); err != nil {
			return errors.Wrapf(err, "valid policies are %v", strings.Join(policyUsage(), ", "))
		}
	}
	if cfg.EvaluationTol != 0 && !(cfg.EvaluationTol > 0 && cfg.EvaluationTol <= twod.MaxEvaluationTol) {
		return errors.Newf("evaluation tolerance %v is not in (0, %v]", cfg.EvaluationTol, twod.MaxEvaluationTol)
	}
	if cfg.Workers < 1 {
		return errors.Newf("number of workers must be positive, got %d", cfg.Workers)
	}
	if cfg.Points < 2 {
		return errors.Newf("at least 2 secondary grid points are needed, got %d", cfg.Points)
	}
	if cfg.Keep < 2 {
		return errors.Newf("thinning must keep at least 2 breakpoints, got %d", cfg.Keep)
	}
	return nil
}

// Options returns the table options set by this configuration. Options left
// empty keep the values of the table document.
func (cfg *Config) Options() []twod.Option {
	var opts []twod.Option
	if scheme, err := interp.ParseTwoD(cfg.Scheme); err == nil {
		opts = append(opts, twod.WithScheme(scheme))
	}
	if policy, err := twod.ParsePolicy(cfg.Policy); err == nil {
		opts = append(opts, twod.WithPolicy(policy))
	}
	if cfg.EvaluationTol != 0 {
		opts = append(opts, twod.WithEvaluationTol(cfg.EvaluationTol))
	}
	if cfg.Extend {
		opts = append(opts, twod.WithExtension())
	}
	return opts
}

// getFlagValue returns value specified by user if flag is present in cli context, otherwise return default flag value
func getFlagValue(ctx *cli.Context, flag interface{}) interface{} {
	if ctx.Command != nil {
		for _, cmdFlag := range ctx.Command.Flags {
			switch f := flag.(type) {
			case cli.IntFlag:
				if cmdFlag.Names()[0] == f.Name {
					return ctx.Int(f.Name)
				}
			case cli.Uint64Flag:
				if cmdFlag.Names()[0] == f.Name {
					return ctx.Uint64(f.Name)
				}
			case cli.Float64Flag:
				if cmdFlag.Names()[0] == f.Name {
					return ctx.Float64(f.Name)
				}
			case cli.StringFlag:
				if cmdFlag.Names()[0] == f.Name {
					return ctx.String(f.Name)
				}
			case cli.PathFlag:
				if cmdFlag.Names()[0] == f.Name {
					return ctx.Path(f.Name)
				}
			case cli.BoolFlag:
				if cmdFlag.Names()[0] == f.Name {
					return ctx.Bool(f.Name)
				}
			case cli.Float64SliceFlag:
				if cmdFlag.Names()[0] == f.Name {
					return ctx.Float64Slice(f.Name)
				}
			}
		}
	}

	// If flag not found, return the default value of the flag
	switch f := flag.(type) {
	case cli.IntFlag:
		return f.Value
	case cli.Uint64Flag:
		return f.Value
	case cli.Float64Flag:
		return f.Value
	case cli.StringFlag:
		return f.Value
	case cli.PathFlag:
		return f.Value
	case cli.BoolFlag:
		return f.Value
	case cli.Float64SliceFlag:
		if f.Value == nil {
			return []float64(nil)
		}
		return f.Value.Value()
	}

	return nil
}
