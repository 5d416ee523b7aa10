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

// FilterCells removes every cell whose index fails the keep predicate, and
// then every vertex no longer referenced by any remaining cell, for
// example cells outside one parallel worker's spatial domain. The removal
// is irreversible, but the full-domain cardinalities reported by NCellsFull
// and NVerticesFull are frozen at their pre-filter values the first time a
// grid is filtered, so chained filtering never loses the size of the
// original domain.
//
// A vertex's fate depends on the global outcome of the cell pass, not on
// any property of the vertex itself, so the filter runs in two passes:
// first dropping cells while collecting the referenced vertex indices of
// the survivors, then dropping every vertex outside that set.
func (g *Grid) FilterCells(keep func(cellIndex int) bool) {
	g.SetFullCounts(g.NCellsFull(), g.NVerticesFull())

	goodVertices := make(map[int]bool)
	g.maxRealizedCellIndex = UnassignedIndex
	cellOrder := g.cellOrder[:0]
	for _, ix := range g.cellOrder {
		c := g.cells[ix]
		if !keep(c.Index) {
			delete(g.cells, ix)
			continue
		}
		cellOrder = append(cellOrder, ix)
		if c.Index > g.maxRealizedCellIndex {
			g.maxRealizedCellIndex = c.Index
		}
		for _, v := range c.Vertices {
			goodVertices[v.Index] = true
		}
	}
	g.cellOrder = cellOrder

	g.maxRealizedVertexIndex = UnassignedIndex
	vertexOrder := g.vertexOrder[:0]
	for _, ix := range g.vertexOrder {
		if !goodVertices[ix] {
			delete(g.vertices, ix)
			continue
		}
		vertexOrder = append(vertexOrder, ix)
		if ix > g.maxRealizedVertexIndex {
			g.maxRealizedVertexIndex = ix
		}
	}
	g.vertexOrder = vertexOrder
}
