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

// Package tabledata reads and writes two-dimensional table documents and
// builds tables from them. Documents carry plain arrays of numbers; any unit
// conversion is the business of the producer.
package tabledata

import (
	"github.com/0xsoniclabs/radiant/distribution"
	"github.com/0xsoniclabs/radiant/elastic"
	"github.com/0xsoniclabs/radiant/interp"
	"github.com/0xsoniclabs/radiant/random"
	"github.com/0xsoniclabs/radiant/twod"
	"github.com/cockroachdb/errors"
)

// FileId identifies table documents.
const FileId = "twod-table"

// Kinds of bin distributions.
const (
	KindTabular    = "tabular"
	KindTabularCDF = "tabular-cdf"
	KindHistogram  = "histogram"
	KindUniform    = "uniform"
	KindDiscrete   = "discrete"
)

// ErrFormat marks documents that cannot be turned into a table.
var ErrFormat = errors.New("invalid table document")

// Document is the serialized form of a table. A document with discrete bins
// describes a hybrid elastic distribution.
type Document struct {
	FileId        string        `json:"FileId" yaml:"FileId"`                                   // file identification
	Scheme        string        `json:"scheme,omitempty" yaml:"scheme,omitempty"`               // e.g. LinLinLog
	Policy        string        `json:"policy,omitempty" yaml:"policy,omitempty"`               // grid policy
	EvaluationTol float64       `json:"evaluationTol,omitempty" yaml:"evaluationTol,omitempty"` // relative tolerance
	Extend        bool          `json:"extend,omitempty" yaml:"extend,omitempty"`               // extension mode
	Bins          []BinDocument `json:"bins" yaml:"bins"`                                       // continuous bins

	Discrete []BinDocument `json:"discrete,omitempty" yaml:"discrete,omitempty"` // discrete bins of a hybrid
	Energies []float64     `json:"energies,omitempty" yaml:"energies,omitempty"` // energies of the cutoff ratios
	Ratios   []float64     `json:"ratios,omitempty" yaml:"ratios,omitempty"`     // cutoff cross section ratios
	Cutoff   float64       `json:"cutoff,omitempty" yaml:"cutoff,omitempty"`     // cutoff angle cosine
}

// BinDocument is the serialized form of a primary bin.
type BinDocument struct {
	Primary   float64   `json:"primary" yaml:"primary"`
	Kind      string    `json:"kind" yaml:"kind"`
	Scheme    string    `json:"scheme,omitempty" yaml:"scheme,omitempty"`
	Secondary []float64 `json:"secondary" yaml:"secondary"`
	Values    []float64 `json:"values,omitempty" yaml:"values,omitempty"`
}

// Model is a two-dimensional distribution built from a document.
type Model interface {
	Evaluate(x, y float64) (float64, error)
	EvaluatePDF(x, y float64) (float64, error)
	EvaluateCDF(x, y float64) (float64, error)
	Sample(x float64, src random.Source) (float64, error)
	SampleWithRandomNumber(x, u float64) (float64, error)
	SampleInSubrange(x float64, src random.Source, max float64) (float64, error)
	SampleAndRecordTrials(x float64, src random.Source, trials *uint64) (float64, error)
	LowerBoundOfPrimaryIndepVar() float64
	UpperBoundOfPrimaryIndepVar() float64
	LowerBoundOfConditionalIndepVar(x float64) (float64, error)
	UpperBoundOfConditionalIndepVar(x float64) (float64, error)
	ExtendBeyondPrimaryIndepLimits()
	LimitToPrimaryIndepLimits()
}

var (
	_ Model = (*twod.Table)(nil)
	_ Model = (*elastic.Hybrid)(nil)
)

// IsHybrid reports whether the document describes a hybrid distribution.
func (d *Document) IsHybrid() bool {
	return len(d.Discrete) > 0
}

// Options returns the table options stored in the document.
func (d *Document) Options() ([]twod.Option, error) {
	var opts []twod.Option
	if d.Scheme != "" {
		scheme, err := interp.ParseTwoD(d.Scheme)
		if err != nil {
			return nil, errors.Mark(err, ErrFormat)
		}
		opts = append(opts, twod.WithScheme(scheme))
	}
	if d.Policy != "" {
		policy, err := twod.ParsePolicy(d.Policy)
		if err != nil {
			return nil, errors.Mark(err, ErrFormat)
		}
		opts = append(opts, twod.WithPolicy(policy))
	}
	if d.EvaluationTol != 0 {
		opts = append(opts, twod.WithEvaluationTol(d.EvaluationTol))
	}
	if d.Extend {
		opts = append(opts, twod.WithExtension())
	}
	return opts, nil
}

// Build creates the model described by the document. Options given here
// take precedence over the options of the document.
func (d *Document) Build(overrides ...twod.Option) (Model, error) {
	opts, err := d.Options()
	if err != nil {
		return nil, err
	}
	opts = append(opts, overrides...)
	table, err := d.buildTable(d.Bins, opts)
	if err != nil {
		return nil, err
	}
	if !d.IsHybrid() {
		return table, nil
	}
	// the discrete part is always correlated
	discrete, err := d.buildTable(d.Discrete, append(opts, twod.WithPolicy(twod.Correlated)))
	if err != nil {
		return nil, errors.Wrap(err, "discrete part")
	}
	return elastic.NewHybrid(table, discrete, d.Energies, d.Ratios, d.Cutoff)
}

func (d *Document) buildTable(docs []BinDocument, opts []twod.Option) (*twod.Table, error) {
	// bins without a scheme of their own follow the table scheme
	scheme := twod.SchemeOf(opts...)
	bins := make([]twod.Bin, len(docs))
	for i, b := range docs {
		dist, err := b.Distribution(scheme.Secondary())
		if err != nil {
			return nil, errors.Wrapf(err, "bin %d at %v", i, b.Primary)
		}
		bins[i] = twod.Bin{Primary: b.Primary, Dist: dist}
	}
	return twod.New(bins, opts...)
}

// Distribution creates the distribution of the bin. The secondary scheme is
// used unless the bin names its own.
func (b *BinDocument) Distribution(secondary interp.Scheme) (distribution.Distribution, error) {
	scheme := secondary
	if b.Scheme != "" {
		s, err := interp.ParseScheme(b.Scheme)
		if err != nil {
			return nil, errors.Mark(err, ErrFormat)
		}
		scheme = s
	}
	switch b.Kind {
	case KindTabular, "":
		return distribution.NewTabular(scheme, b.Secondary, b.Values)
	case KindTabularCDF:
		return distribution.NewTabularCDF(scheme, b.Secondary, b.Values)
	case KindHistogram:
		return distribution.NewHistogram(b.Secondary, b.Values)
	case KindUniform:
		if len(b.Secondary) != 2 {
			return nil, errors.Mark(errors.Newf("uniform bin needs 2 secondary bounds, got %d", len(b.Secondary)), ErrFormat)
		}
		value := 1.0
		if len(b.Values) > 0 {
			value = b.Values[0]
		}
		return distribution.NewUniform(b.Secondary[0], b.Secondary[1], value)
	case KindDiscrete:
		return distribution.NewDiscrete(b.Secondary, b.Values)
	default:
		return nil, errors.Mark(errors.Newf("unknown bin kind %q", b.Kind), ErrFormat)
	}
}
