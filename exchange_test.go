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

import "testing"

func TestOverlap(t *testing.T) {
	a, err := NewXYGrid("a", testProj, 0, 2, 1, 0, 2, 1, nil)
	if err != nil {
		t.Fatal(err)
	}
	b, err := NewXYGrid("b", testProj, 0, 1, 2, 0, 1, 2, nil)
	if err != nil {
		t.Fatal(err)
	}
	x, err := Overlap(a, b)
	if err != nil {
		t.Fatal(err)
	}
	if x.Type != Exchange {
		t.Errorf("overlap grid type = %v; want EXCHANGE", x.Type)
	}
	if x.Name != "a-b" {
		t.Errorf("overlap grid name = %q; want \"a-b\"", x.Name)
	}
	if n := x.NCellsRealized(); n != 4 {
		t.Fatalf("overlap cells = %d; want 4", n)
	}
	total := 0.0
	for _, c := range x.Cells() {
		if c.I != 0 {
			t.Errorf("overlap cell %d tagged with source cell %d; want 0", c.Index, c.I)
		}
		if c.J < 0 || c.J > 3 {
			t.Errorf("overlap cell %d tagged with destination cell %d", c.Index, c.J)
		}
		if different(c.Area, 1, 1e-8) {
			t.Errorf("overlap cell %d area = %g; want 1", c.Index, c.Area)
		}
		total += c.Area
	}
	if different(total, 4, 1e-8) {
		t.Errorf("total overlap area = %g; want source area 4", total)
	}
}

func TestOverlapPartial(t *testing.T) {
	a, err := NewXYGrid("a", testProj, 0, 2, 1, 0, 2, 1, nil)
	if err != nil {
		t.Fatal(err)
	}
	// Shifted half a cell east: only the left half of b overlaps a.
	b, err := NewXYGrid("b", testProj, 1, 2, 1, 0, 2, 1, nil)
	if err != nil {
		t.Fatal(err)
	}
	x, err := Overlap(a, b)
	if err != nil {
		t.Fatal(err)
	}
	if n := x.NCellsRealized(); n != 1 {
		t.Fatalf("overlap cells = %d; want 1", n)
	}
	if c := x.Cells()[0]; different(c.Area, 2, 1e-8) {
		t.Errorf("overlap area = %g; want 2", c.Area)
	}
}

func TestOverlapMultiPiece(t *testing.T) {
	// A bar across the legs of a U overlaps it in two disconnected
	// squares; each piece becomes its own exchange cell.
	a := NewGrid(Generic, CoordXY, L0)
	a.Name = "bar"
	bar := [][2]float64{{0, 0}, {3, 0}, {3, 1}, {0, 1}}
	barVs := make([]*Vertex, len(bar))
	for i, p := range bar {
		barVs[i] = NewVertex(p[0], p[1])
		if err := a.AddVertex(barVs[i]); err != nil {
			t.Fatal(err)
		}
	}
	if err := a.AddCell(NewCell(barVs...)); err != nil {
		t.Fatal(err)
	}

	b := NewGrid(Generic, CoordXY, L0)
	b.Name = "u"
	u := [][2]float64{{0, 0}, {1, 0}, {1, 2}, {2, 2}, {2, 0}, {3, 0}, {3, 3}, {0, 3}}
	uVs := make([]*Vertex, len(u))
	for i, p := range u {
		uVs[i] = NewVertex(p[0], p[1])
		if err := b.AddVertex(uVs[i]); err != nil {
			t.Fatal(err)
		}
	}
	if err := b.AddCell(NewCell(uVs...)); err != nil {
		t.Fatal(err)
	}

	x, err := Overlap(a, b)
	if err != nil {
		t.Fatal(err)
	}
	if n := x.NCellsRealized(); n != 2 {
		t.Fatalf("overlap cells = %d; want one per disconnected piece, 2", n)
	}
	total := 0.0
	for _, c := range x.Cells() {
		if c.I != 0 || c.J != 0 {
			t.Errorf("overlap cell %d tagged (%d, %d); want (0, 0)", c.Index, c.I, c.J)
		}
		if different(c.Area, 1, 1e-8) {
			t.Errorf("overlap piece %d area = %g; want 1", c.Index, c.Area)
		}
		if pa := c.Polygon().Area(); different(pa, c.Area, 1e-8) {
			t.Errorf("overlap piece %d boundary area = %g; want stored area %g", c.Index, pa, c.Area)
		}
		total += c.Area
	}
	if different(total, 2, 1e-8) {
		t.Errorf("total overlap area = %g; want 2", total)
	}
}

func TestOverlapDisjoint(t *testing.T) {
	a, err := NewXYGrid("a", testProj, 0, 1, 1, 0, 1, 1, nil)
	if err != nil {
		t.Fatal(err)
	}
	b, err := NewXYGrid("b", testProj, 5, 1, 1, 5, 1, 1, nil)
	if err != nil {
		t.Fatal(err)
	}
	x, err := Overlap(a, b)
	if err != nil {
		t.Fatal(err)
	}
	if n := x.NCellsRealized(); n != 0 {
		t.Errorf("disjoint grids produced %d overlap cells; want 0", n)
	}
}

func TestOverlapCoordinateMismatch(t *testing.T) {
	a, err := NewXYGrid("a", testProj, 0, 1, 1, 0, 1, 1, nil)
	if err != nil {
		t.Fatal(err)
	}
	b, err := NewLonLatGrid("b", []float64{0, 1}, []float64{0, 1})
	if err != nil {
		t.Fatal(err)
	}
	if _, err := Overlap(a, b); err == nil {
		t.Error("grids in different coordinate systems were accepted")
	}
}
