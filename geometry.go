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
	"github.com/ctessum/geom"
	"github.com/ctessum/geom/proj"
)

// Area returns the signed area of a cell's polygon by the surveyor's
// formula. The wrap-around edge from the last vertex back to the first is
// included. The sign encodes winding order: counter-clockwise polygons in
// conventional (x, y) axes have positive area. Callers using the result as
// a magnitude must either take the absolute value or guarantee consistent
// winding at construction time.
func Area(c *Cell) float64 {
	var a float64
	n := len(c.Vertices)
	for i := 0; i < n; i++ {
		v0 := c.Vertices[i]
		v1 := c.Vertices[(i+1)%n]
		a += v0.X*v1.Y - v1.X*v0.Y
	}
	return a / 2
}

// ProjArea returns the signed area of a cell's polygon after transforming
// each vertex through t. Each vertex is transformed exactly once.
func ProjArea(c *Cell, t proj.Transformer) (float64, error) {
	var a float64
	x00, y00, err := t(c.Vertices[0].X, c.Vertices[0].Y)
	if err != nil {
		return 0, err
	}
	x0, y0 := x00, y00
	for _, v := range c.Vertices[1:] {
		x1, y1, err := t(v.X, v.Y)
		if err != nil {
			return 0, err
		}
		a += x0*y1 - x1*y0
		x0, y0 = x1, y1
	}
	a += x0*y00 - x00*y0
	return a / 2, nil
}

// PolygonCentroid returns the area-weighted centroid of a cell's polygon
// in the plane, by the standard vertex-pair formula normalized by 1/(6A).
// The result is not geometrically meaningful for polygons expressed in
// lon/lat coordinates.
func PolygonCentroid(c *Cell) geom.Point {
	a := Area(c)
	var cx, cy float64
	n := len(c.Vertices)
	for i := 0; i < n; i++ {
		v0 := c.Vertices[i]
		v1 := c.Vertices[(i+1)%n]
		cross := v0.X*v1.Y - v1.X*v0.Y
		cx += (v0.X + v1.X) * cross
		cy += (v0.Y + v1.Y) * cross
	}
	fact := 1 / (6 * a)
	return geom.Point{X: cx * fact, Y: cy * fact}
}
