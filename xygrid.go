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
	"math"
)

// EarthRadius is the radius used for spherical cell areas [m].
const EarthRadius = 6.371e6

// NewXYGrid realizes a regular cell-centered grid in the projected plane:
// nx by ny cells of size dx by dy starting at (x0, y0), with vertices
// wound counter-clockwise so signed areas are positive. Cell indices are
// row-major (index = j*nx + i) and each cell carries its (i, j) address.
// If keep is non-nil, only the cells it accepts are realized; the full
// domain cardinalities still describe the whole nx by ny lattice.
func NewXYGrid(name, sproj string, x0, dx float64, nx int, y0, dy float64, ny int,
	keep func(cellIndex int) bool) (*Grid, error) {
	if nx <= 0 || ny <= 0 {
		return nil, fmt.Errorf("cryogrid: grid %s has invalid dimensions %d x %d", name, nx, ny)
	}
	if sproj == "" {
		return nil, fmt.Errorf("cryogrid: grid %s is in XY coordinates and requires a projection", name)
	}
	g := NewGrid(XY, CoordXY, L0)
	g.Name = name
	g.Sproj = sproj

	// Vertex lattice, row-major with index = j*(nx+1) + i.
	vertices := make([]*Vertex, (nx+1)*(ny+1))
	for j := 0; j <= ny; j++ {
		for i := 0; i <= nx; i++ {
			v := NewVertex(x0+float64(i)*dx, y0+float64(j)*dy)
			v.Index = j*(nx+1) + i
			if err := g.AddVertex(v); err != nil {
				return nil, err
			}
			vertices[v.Index] = v
		}
	}

	for j := 0; j < ny; j++ {
		for i := 0; i < nx; i++ {
			c := &Cell{
				Index: j*nx + i,
				I:     i,
				J:     j,
				Vertices: []*Vertex{
					vertices[j*(nx+1)+i],
					vertices[j*(nx+1)+i+1],
					vertices[(j+1)*(nx+1)+i+1],
					vertices[(j+1)*(nx+1)+i],
				},
			}
			c.Area = Area(c)
			if err := g.AddCell(c); err != nil {
				return nil, err
			}
		}
	}

	g.SetFullCounts(nx*ny, (nx+1)*(ny+1))
	if keep != nil {
		g.FilterCells(keep)
	}
	return g, nil
}

// NewLonLatGrid realizes a cell-centered grid on the sphere from arrays of
// cell boundary longitudes and latitudes, both in degrees and ascending.
// Cell indices are row-major over (len(lonB)-1) by (len(latB)-1) cells,
// and each cell's area is its exact spherical graticule area.
func NewLonLatGrid(name string, lonB, latB []float64) (*Grid, error) {
	if len(lonB) < 2 || len(latB) < 2 {
		return nil, fmt.Errorf("cryogrid: grid %s needs at least two boundaries per axis", name)
	}
	nlon, nlat := len(lonB)-1, len(latB)-1
	g := NewGrid(LonLat, CoordLonLat, L0)
	g.Name = name

	vertices := make([]*Vertex, len(lonB)*len(latB))
	for j, lat := range latB {
		for i, lon := range lonB {
			v := NewVertex(lon, lat)
			v.Index = j*len(lonB) + i
			if err := g.AddVertex(v); err != nil {
				return nil, err
			}
			vertices[v.Index] = v
		}
	}

	for j := 0; j < nlat; j++ {
		sinLo := math.Sin(latB[j] * math.Pi / 180)
		sinHi := math.Sin(latB[j+1] * math.Pi / 180)
		for i := 0; i < nlon; i++ {
			dlon := (lonB[i+1] - lonB[i]) * math.Pi / 180
			c := &Cell{
				Index: j*nlon + i,
				I:     i,
				J:     j,
				Area:  EarthRadius * EarthRadius * dlon * (sinHi - sinLo),
				Vertices: []*Vertex{
					vertices[j*len(lonB)+i],
					vertices[j*len(lonB)+i+1],
					vertices[(j+1)*len(lonB)+i+1],
					vertices[(j+1)*len(lonB)+i],
				},
			}
			if err := g.AddCell(c); err != nil {
				return nil, err
			}
		}
	}

	g.SetFullCounts(nlon*nlat, len(lonB)*len(latB))
	return g, nil
}
