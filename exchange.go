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
	"fmt"

	"github.com/ctessum/geom"
	"github.com/ctessum/geom/index/rtree"
)

// overlapCell pairs a cell with its polygon for spatial indexing.
type overlapCell struct {
	geom.Polygonal
	cell *Cell
}

// Overlap realizes the exchange grid between two grids sharing a
// coordinate system: one cell per connected piece of each overlapping pair
// of source cells, with native address (i, j) = (a-cell index, b-cell
// index) and area equal to that piece's area. The polygon intersections
// themselves are delegated to the geometry library; candidate pairs are
// found with a spatial index rather than the quadratic scan over both cell
// sets. Each piece's outer ring is recorded as the cell boundary; hole
// rings are not stored but are subtracted from the cell area, so the area
// is exact even for holed pieces.
//
// The exchange grid's cell index space is dense insertion order.
func Overlap(a, b *Grid) (*Grid, error) {
	if a.Coordinates != b.Coordinates {
		return nil, fmt.Errorf("cryogrid: computing overlap of grids in %s and %s coordinates",
			a.Coordinates, b.Coordinates)
	}

	index := rtree.NewTree(25, 50)
	for _, c := range b.Cells() {
		index.Insert(&overlapCell{Polygonal: c.Polygon(), cell: c})
	}

	ex := NewGrid(Exchange, a.Coordinates, L0)
	ex.Name = a.Name + "-" + b.Name
	ex.Sproj = a.Sproj
	for _, ca := range a.Cells() {
		pa := ca.Polygon()
		for _, s := range index.SearchIntersect(pa.Bounds()) {
			oc := s.(*overlapCell)
			isect := pa.Intersection(oc.Polygonal)
			if isect == nil {
				continue
			}
			for _, poly := range splitPieces(isect) {
				area := poly.Area()
				if area <= 0 {
					continue
				}
				cell := &Cell{
					Index: UnassignedIndex,
					I:     ca.Index,
					J:     oc.cell.Index,
					Area:  area,
				}
				for _, p := range ring(poly) {
					v := NewVertex(p.X, p.Y)
					if err := ex.AddVertex(v); err != nil {
						return nil, err
					}
					cell.Vertices = append(cell.Vertices, v)
				}
				if err := ex.AddCell(cell); err != nil {
					return nil, err
				}
			}
		}
	}
	return ex, nil
}

// splitPieces separates a clipping result into its connected pieces. The
// clipping library returns all rings of a result, including those of
// disconnected pieces and of holes, as one polygon without a guaranteed
// winding order, so rings are classified by containment instead: a ring
// inside an even number of other rings starts a piece, and every other
// ring becomes a hole of the piece it sits inside. Each returned polygon
// has its outer ring first.
func splitPieces(pl geom.Polygonal) []geom.Polygon {
	var out []geom.Polygon
	for _, p := range pl.Polygons() {
		if len(p) <= 1 {
			out = append(out, p)
			continue
		}
		depth := make([]int, len(p))
		for i, r := range p {
			for j, r2 := range p {
				if i != j && ringWithin(r, geom.Polygon{r2}) {
					depth[i]++
				}
			}
		}
		owner := make([]int, len(p))
		for i, r := range p {
			if depth[i]%2 == 0 {
				owner[i] = len(out)
				out = append(out, geom.Polygon{r})
			}
		}
		for i, r := range p {
			if depth[i]%2 == 1 {
				// A hole belongs to the innermost even-depth
				// ring containing it.
				best, bestDepth := -1, -1
				for j, r2 := range p {
					if j == i || depth[j]%2 == 1 || !ringWithin(r, geom.Polygon{r2}) {
						continue
					}
					if depth[j] > bestDepth {
						best, bestDepth = j, depth[j]
					}
				}
				if best >= 0 {
					out[owner[best]] = append(out[owner[best]], r)
				}
			}
		}
	}
	return out
}

// ringWithin reports whether ring r lies inside other. Rings from a
// clipping result do not cross, so the first point giving a definite
// inside/outside verdict decides; points on other's edge are skipped.
func ringWithin(r geom.Path, other geom.Polygon) bool {
	for _, pt := range r {
		switch pt.Within(other) {
		case geom.Inside:
			return true
		case geom.Outside:
			return false
		}
	}
	return false
}

// ring returns the outer ring of p without a duplicated closing point,
// ignoring any hole rings.
func ring(p geom.Polygon) []geom.Point {
	r := p[0]
	if len(r) > 1 && r[0] == r[len(r)-1] {
		r = r[:len(r)-1]
	}
	return r
}
