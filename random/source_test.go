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

package random

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"
)

func TestStream_IsReproducible(t *testing.T) {
	a, b := NewStream(42), NewStream(42)
	for range 100 {
		u := a.Float64()
		assert.Equal(t, u, b.Float64())
		assert.GreaterOrEqual(t, u, 0.0)
		assert.Less(t, u, 1.0)
	}
}

func TestStreams_HistoriesAreIndependentOfOrder(t *testing.T) {
	streams := NewStreams(7)
	first := streams.ForHistory(3).Float64()
	_ = streams.ForHistory(1).Float64()
	assert.Equal(t, first, streams.ForHistory(3).Float64())
	assert.NotEqual(t, first, streams.ForHistory(4).Float64())
	assert.Equal(t, uint64(7), streams.Seed())
}

func TestFakeStream_ReplaysSequence(t *testing.T) {
	s, err := NewFakeStream(0.0, 0.5, 0.9)
	require.NoError(t, err)
	assert.Equal(t, 0.0, s.Float64())
	assert.Equal(t, 0.5, s.Float64())
	assert.Equal(t, 0.9, s.Float64())
	assert.Equal(t, 0.0, s.Float64())
	assert.Equal(t, 4, s.Drawn())
	s.Reset()
	assert.Equal(t, 0, s.Drawn())
	assert.Equal(t, 0.0, s.Float64())
}

func TestFakeStream_RejectsInvalidValues(t *testing.T) {
	_, err := NewFakeStream()
	assert.Error(t, err)
	_, err = NewFakeStream(0.5, 1.5)
	assert.Error(t, err)
	assert.Panics(t, func() { MustFakeStream(-0.1) })
}

func TestMockSource_ImplementsSource(t *testing.T) {
	ctrl := gomock.NewController(t)
	src := NewMockSource(ctrl)
	src.EXPECT().Float64().Return(0.25)

	var s Source = src
	assert.Equal(t, 0.25, s.Float64())
}
