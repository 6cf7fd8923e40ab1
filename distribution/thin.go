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

package distribution

import (
	"github.com/paulmach/orb"
	"github.com/paulmach/orb/simplify"
)

// Thin reduces the CDF table of d to at most keep points using the
// Visvalingam-Whyatt algorithm. The secondary axis is rescaled to [0,1]
// before the reduction so that both axes contribute equally to the areas.
// The end points are always kept.
// https://en.wikipedia.org/wiki/Visvalingam-Whyatt_algorithm
func Thin(d *TabularCDF, keep int) (*TabularCDF, error) {
	if keep < 2 {
		return nil, invalid("cannot thin a CDF table to %d points", keep)
	}
	n := len(d.ys)
	if n <= keep {
		return d, nil
	}
	lower, width := d.ys[0], d.ys[n-1]-d.ys[0]
	mass := d.Mass()
	ls := make(orb.LineString, n)
	for i := range n {
		ls[i] = orb.Point{(d.ys[i] - lower) / width, d.cdf[i] / mass}
	}
	thinned := simplify.VisvalingamKeep(keep).Simplify(ls).(orb.LineString)

	// the kept points are an ordered subset of ls
	ys := make([]float64, 0, len(thinned))
	cdf := make([]float64, 0, len(thinned))
	j := 0
	for _, p := range thinned {
		for j < n-1 && ls[j] != p {
			j++
		}
		ys = append(ys, d.ys[j])
		cdf = append(cdf, d.cdf[j]/mass)
		j++
	}
	cdf[0], cdf[len(cdf)-1] = 0, 1
	return NewTabularCDF(d.scheme, ys, cdf)
}
