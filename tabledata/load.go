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

package tabledata

import (
	"github.com/0xsoniclabs/radiant/twod"
	"github.com/op/go-logging"
)

// Load reads the document in filename and builds its model. Options given
// here take precedence over the options of the document.
func Load(filename string, log *logging.Logger, overrides ...twod.Option) (Model, *Document, error) {
	log.Debugf("Reading table document %v", filename)
	doc, err := Read(filename)
	if err != nil {
		return nil, nil, err
	}
	model, err := doc.Build(overrides...)
	if err != nil {
		return nil, nil, err
	}
	if doc.IsHybrid() {
		log.Infof("Loaded hybrid table with %d continuous and %d discrete bins from %v", len(doc.Bins), len(doc.Discrete), filename)
	} else {
		log.Infof("Loaded table with %d bins from %v", len(doc.Bins), filename)
	}
	log.Debugf("Primary range [%v,%v]", model.LowerBoundOfPrimaryIndepVar(), model.UpperBoundOfPrimaryIndepVar())
	return model, doc, nil
}
