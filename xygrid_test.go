/*
Copyright © 2026 the Cryogrid authors.
This file is part of Cryogrid.

Cryogrid is free software: you can redistribute it and/or modify
it under the terms of the GNU General Public License as published by
the Free Software Foundation, either version 3 of the License, or
(at your option) any later version.

Cryogrid is distributed in the hope that it will be useful,
but WITHOUT ANY WARRANTY; without even the implied warranty of
MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE.  See the
GNU General Public License for more details.

You should have received a copy of the GNU General Public License
along with Cryogrid.  If not, see <http://www.gnu.org/licenses/>.
*/

package cryogrid

import (
	"math"
	"testing"
)

func TestNewXYGrid(t *testing.T) {
	g, err := NewXYGrid("test", testProj, -10, 5, 4, 20, 2.5, 3, nil)
	if err != nil {
		t.Fatal(err)
	}
	if n := g.NCellsRealized(); n != 12 {
		t.Errorf("NCellsRealized = %d; want 12", n)
	}
	if n := g.NVerticesRealized(); n != 20 {
		t.Errorf("NVerticesRealized = %d; want 20", n)
	}
	if g.Type != XY || g.Coordinates != CoordXY || g.Parameterization != L0 {
		t.Errorf("grid flavor = (%v, %v, %v); want (XY, XY, L0)",
			g.Type, g.Coordinates, g.Parameterization)
	}
	for _, c := range g.Cells() {
		if different(c.Area, 5*2.5, testTolerance) {
			t.Errorf("cell %d area = %g; want %g", c.Index, c.Area, 5*2.5)
		}
		if c.Index != c.J*4+c.I {
			t.Errorf("cell %d carries address (%d, %d)", c.Index, c.I, c.J)
		}
	}
	// Spot-check a cell's corner.
	c := g.Cell(5) // i=1, j=1
	if v := c.Vertices[0]; v.X != -5 || v.Y != 22.5 {
		t.Errorf("cell 5 first corner = (%g, %g); want (-5, 22.5)", v.X, v.Y)
	}
}

func TestNewXYGridClipped(t *testing.T) {
	evens := func(ix int) bool { return ix%2 == 0 }
	g, err := NewXYGrid("clip", testProj, 0, 1, 3, 0, 1, 3, evens)
	if err != nil {
		t.Fatal(err)
	}
	if n := g.NCellsRealized(); n != 5 {
		t.Errorf("NCellsRealized = %d; want 5", n)
	}
	if n := g.NCellsFull(); n != 9 {
		t.Errorf("NCellsFull = %d; want full lattice 9", n)
	}
	if n := g.NVerticesFull(); n != 16 {
		t.Errorf("NVerticesFull = %d; want full lattice 16", n)
	}
	for _, c := range g.Cells() {
		if c.Index%2 != 0 {
			t.Errorf("rejected cell %d was realized", c.Index)
		}
	}
}

func TestNewXYGridInvalid(t *testing.T) {
	if _, err := NewXYGrid("bad", testProj, 0, 1, 0, 0, 1, 3, nil); err == nil {
		t.Error("nx = 0 was accepted")
	}
	if _, err := NewXYGrid("bad", "", 0, 1, 3, 0, 1, 3, nil); err == nil {
		t.Error("empty projection was accepted")
	}
}

func TestNewLonLatGrid(t *testing.T) {
	lonB := []float64{0, 1, 2, 3}
	latB := []float64{50, 51}
	g, err := NewLonLatGrid("ll", lonB, latB)
	if err != nil {
		t.Fatal(err)
	}
	if n := g.NCellsRealized(); n != 3 {
		t.Errorf("NCellsRealized = %d; want 3", n)
	}
	if g.Coordinates != CoordLonLat {
		t.Errorf("coordinates = %v; want LONLAT", g.Coordinates)
	}
	deg := math.Pi / 180
	want := EarthRadius * EarthRadius * deg * (math.Sin(51*deg) - math.Sin(50*deg))
	for _, c := range g.Cells() {
		if different(c.Area, want, testTolerance) {
			t.Errorf("cell %d spherical area = %g; want %g", c.Index, c.Area, want)
		}
	}

	if _, err := NewLonLatGrid("bad", []float64{0}, latB); err == nil {
		t.Error("single longitude boundary was accepted")
	}
}
