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

func TestFilterCells(t *testing.T) {
	g := testStrip(t)
	g.FilterCells(func(ix int) bool { return ix == 0 })

	if n := g.NCellsRealized(); n != 1 {
		t.Errorf("NCellsRealized = %d; want 1", n)
	}
	if g.Cell(0) == nil {
		t.Error("kept cell 0 is gone")
	}
	if g.Cell(1) != nil {
		t.Error("dropped cell 1 is still present")
	}

	// The vertices shared with the dropped cell survive; the two
	// vertices only the dropped cell referenced do not.
	want := map[[2]float64]bool{
		{0, 0}: true, {1, 0}: true, {1, 1}: true, {0, 1}: true,
	}
	if n := g.NVerticesRealized(); n != len(want) {
		t.Errorf("NVerticesRealized = %d; want %d", n, len(want))
	}
	for _, v := range g.Vertices() {
		if !want[[2]float64{v.X, v.Y}] {
			t.Errorf("unreferenced vertex (%g, %g) survived", v.X, v.Y)
		}
	}

	// Full-domain counts freeze at their pre-filter values.
	if n := g.NCellsFull(); n != 2 {
		t.Errorf("NCellsFull = %d; want 2", n)
	}
	if n := g.NVerticesFull(); n != 6 {
		t.Errorf("NVerticesFull = %d; want 6", n)
	}

	// Every surviving cell references only surviving vertices.
	for _, c := range g.Cells() {
		for _, v := range c.Vertices {
			if g.Vertex(v.Index) != v {
				t.Errorf("cell %d references dropped vertex %d", c.Index, v.Index)
			}
		}
	}
}

func TestFilterCellsRejectAll(t *testing.T) {
	g := testStrip(t)
	g.FilterCells(func(int) bool { return false })

	if n := g.NCellsRealized(); n != 0 {
		t.Errorf("NCellsRealized = %d; want 0", n)
	}
	if n := g.NVerticesRealized(); n != 0 {
		t.Errorf("NVerticesRealized = %d; want 0", n)
	}
	if n := g.NCellsFull(); n != 2 {
		t.Errorf("NCellsFull = %d; want 2", n)
	}

	// Adding after an emptying filter restarts auto-indexing from 0.
	v := NewVertex(5, 5)
	if err := g.AddVertex(v); err != nil {
		t.Fatal(err)
	}
	if v.Index != 0 {
		t.Errorf("first vertex after reject-all filter has index %d; want 0", v.Index)
	}
}

func TestFilterCellsIdempotent(t *testing.T) {
	g := testStrip(t)
	keep := func(ix int) bool { return ix == 0 }
	g.FilterCells(keep)
	nc, nv := g.NCellsRealized(), g.NVerticesRealized()
	g.FilterCells(keep)
	if g.NCellsRealized() != nc || g.NVerticesRealized() != nv {
		t.Errorf("second identical filter changed counts: (%d, %d) -> (%d, %d)",
			nc, nv, g.NCellsRealized(), g.NVerticesRealized())
	}
	if n := g.NCellsFull(); n != 2 {
		t.Errorf("NCellsFull after refiltering = %d; want 2", n)
	}
}
