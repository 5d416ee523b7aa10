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

// Package cryogrid computes conservative regridding operators between
// unstructured polygonal meshes, such as a global atmosphere grid and a
// regional ice-sheet grid, that may use different coordinate systems and
// different field parameterizations.
package cryogrid

import (
	"fmt"
	"math"
	"sort"

	"github.com/ctessum/geom"
	"github.com/ctessum/geom/proj"
)

// Version gives the version number of this version of Cryogrid.
const Version = "0.1.0"

// UnassignedIndex is the sentinel index for vertices and cells whose index
// should be assigned automatically on insertion.
const UnassignedIndex = -1

// GridType describes the overall family of a grid, which determines which
// native address fields of its cells are meaningful.
type GridType int

// The supported grid types.
const (
	Generic GridType = iota
	XY
	LonLat
	Exchange
)

func (t GridType) String() string {
	switch t {
	case Generic:
		return "GENERIC"
	case XY:
		return "XY"
	case LonLat:
		return "LONLAT"
	case Exchange:
		return "EXCHANGE"
	}
	return fmt.Sprintf("GridType(%d)", int(t))
}

// ParseGridType converts the canonical string tag for a grid type back to
// its GridType value.
func ParseGridType(s string) (GridType, error) {
	switch s {
	case "GENERIC":
		return Generic, nil
	case "XY":
		return XY, nil
	case "LONLAT":
		return LonLat, nil
	case "EXCHANGE":
		return Exchange, nil
	}
	return 0, fmt.Errorf("cryogrid: invalid grid type %q", s)
}

// Coordinates describes the coordinate system of a grid's vertices: planar
// projected meters or geographic longitude/latitude. This is independent
// of GridType; a Generic grid may use either.
type Coordinates int

// The supported coordinate systems.
const (
	CoordXY Coordinates = iota
	CoordLonLat
)

func (c Coordinates) String() string {
	switch c {
	case CoordXY:
		return "XY"
	case CoordLonLat:
		return "LONLAT"
	}
	return fmt.Sprintf("Coordinates(%d)", int(c))
}

// ParseCoordinates converts the canonical string tag for a coordinate
// system back to its Coordinates value.
func ParseCoordinates(s string) (Coordinates, error) {
	switch s {
	case "XY":
		return CoordXY, nil
	case "LONLAT":
		return CoordLonLat, nil
	}
	return 0, fmt.Errorf("cryogrid: invalid coordinate system %q", s)
}

// Parameterization describes how field values are attached to a grid:
// cell-centered piecewise-constant (L0, typical of finite difference
// models) or vertex-centered piecewise-linear (L1, typical of finite
// element models). It determines which entity set defines the index space
// of field vectors on the grid.
type Parameterization int

// The supported parameterizations.
const (
	L0 Parameterization = iota
	L1
)

func (p Parameterization) String() string {
	switch p {
	case L0:
		return "L0"
	case L1:
		return "L1"
	}
	return fmt.Sprintf("Parameterization(%d)", int(p))
}

// ParseParameterization converts the canonical string tag for a
// parameterization back to its Parameterization value.
func ParseParameterization(s string) (Parameterization, error) {
	switch s {
	case "L0":
		return L0, nil
	case "L1":
		return L1, nil
	}
	return 0, fmt.Errorf("cryogrid: invalid parameterization %q", s)
}

// A Vertex is a point on the boundary of one or more grid cells. The
// meaning of its coordinates depends on the owning grid's coordinate
// system. Vertices are owned by their grid; cells reference them without
// owning them.
type Vertex struct {
	Index int
	geom.Point
}

// NewVertex returns a vertex at (x, y) with an unassigned index.
func NewVertex(x, y float64) *Vertex {
	return &Vertex{Index: UnassignedIndex, Point: geom.Point{X: x, Y: y}}
}

// A Cell is one polygon of a grid. Its vertices are listed in order around
// the boundary; the polygon is implicitly closed (the last vertex connects
// back to the first). I, J, and K optionally carry a native grid address:
// for XY grids I and J are the column and row, and for Exchange grids I
// and J are the indices of the two overlapping source cells.
type Cell struct {
	Index    int
	I, J, K  int
	Area     float64 // polygon area in native coordinates
	Vertices []*Vertex
}

// NewCell returns a cell with the given boundary vertices and
// an unassigned index.
func NewCell(vertices ...*Vertex) *Cell {
	return &Cell{Index: UnassignedIndex, Vertices: vertices}
}

// Polygon returns the cell boundary as a closed polygon ring.
func (c *Cell) Polygon() geom.Polygon {
	ring := make([]geom.Point, len(c.Vertices)+1)
	for i, v := range c.Vertices {
		ring[i] = v.Point
	}
	ring[len(c.Vertices)] = c.Vertices[0].Point
	return geom.Polygon{ring}
}

// A Grid owns a set of vertices and the cells connecting them. Both are
// keyed by integer index; indices may be sparse, for example when the grid
// holds only the subset of a larger domain relevant to one parallel worker.
// Grids are constructed empty and populated by repeated insertion.
type Grid struct {
	Name             string
	Type             GridType
	Coordinates      Coordinates
	Parameterization Parameterization

	// Sproj is the projection definition (Proj4 format) relating this
	// grid's XY coordinates to lon/lat on the surface of the earth. It
	// must be set when Coordinates is CoordXY and empty otherwise.
	Sproj string

	vertices    map[int]*Vertex
	vertexOrder []int
	cells       map[int]*Cell
	cellOrder   []int

	maxRealizedVertexIndex int
	maxRealizedCellIndex   int

	// Full-domain cardinalities, frozen at the first filter or set
	// explicitly by grid constructors; UnassignedIndex until then.
	nVerticesFull int
	nCellsFull    int
}

// NewGrid returns an empty grid of the given type, coordinate system, and
// parameterization.
func NewGrid(t GridType, c Coordinates, p Parameterization) *Grid {
	return &Grid{
		Type:                   t,
		Coordinates:            c,
		Parameterization:       p,
		vertices:               make(map[int]*Vertex),
		cells:                  make(map[int]*Cell),
		maxRealizedVertexIndex: UnassignedIndex,
		maxRealizedCellIndex:   UnassignedIndex,
		nVerticesFull:          UnassignedIndex,
		nCellsFull:             UnassignedIndex,
	}
}

// AddVertex inserts v into the grid. If v's index is unassigned it is set
// to one more than the largest index currently realized, so purely
// automatic indices never collide. Mixing explicit and automatic indices
// can collide, in which case a DuplicateIndexError is returned.
func (g *Grid) AddVertex(v *Vertex) error {
	if v.Index == UnassignedIndex {
		v.Index = g.maxRealizedVertexIndex + 1
	}
	if _, ok := g.vertices[v.Index]; ok {
		return DuplicateIndexError{Entity: "vertex", Index: v.Index}
	}
	g.vertices[v.Index] = v
	g.vertexOrder = append(g.vertexOrder, v.Index)
	if v.Index > g.maxRealizedVertexIndex {
		g.maxRealizedVertexIndex = v.Index
	}
	return nil
}

// AddCell inserts c into the grid, assigning an index as AddVertex does
// for vertices.
func (g *Grid) AddCell(c *Cell) error {
	if c.Index == UnassignedIndex {
		c.Index = g.maxRealizedCellIndex + 1
	}
	if _, ok := g.cells[c.Index]; ok {
		return DuplicateIndexError{Entity: "cell", Index: c.Index}
	}
	g.cells[c.Index] = c
	g.cellOrder = append(g.cellOrder, c.Index)
	if c.Index > g.maxRealizedCellIndex {
		g.maxRealizedCellIndex = c.Index
	}
	return nil
}

// Vertex returns the vertex with the given index, or nil if it is not
// realized in this grid.
func (g *Grid) Vertex(index int) *Vertex { return g.vertices[index] }

// Cell returns the cell with the given index, or nil if it is not realized
// in this grid.
func (g *Grid) Cell(index int) *Cell { return g.cells[index] }

// Vertices returns the realized vertices in insertion order.
func (g *Grid) Vertices() []*Vertex {
	out := make([]*Vertex, len(g.vertexOrder))
	for i, ix := range g.vertexOrder {
		out[i] = g.vertices[ix]
	}
	return out
}

// Cells returns the realized cells in insertion order.
func (g *Grid) Cells() []*Cell {
	out := make([]*Cell, len(g.cellOrder))
	for i, ix := range g.cellOrder {
		out[i] = g.cells[ix]
	}
	return out
}

// sortedVertices returns the realized vertices in ascending index order.
func (g *Grid) sortedVertices() []*Vertex {
	out := g.Vertices()
	sort.Slice(out, func(i, j int) bool { return out[i].Index < out[j].Index })
	return out
}

// sortedCells returns the realized cells in ascending index order.
func (g *Grid) sortedCells() []*Cell {
	out := g.Cells()
	sort.Slice(out, func(i, j int) bool { return out[i].Index < out[j].Index })
	return out
}

// NVerticesRealized returns the number of vertices currently present.
func (g *Grid) NVerticesRealized() int { return len(g.vertices) }

// NCellsRealized returns the number of cells currently present.
func (g *Grid) NCellsRealized() int { return len(g.cells) }

// NVerticesFull returns the theoretical number of vertices in the full,
// unfiltered domain. Before any filter it is derived from the largest
// realized index; the first filter freezes it.
func (g *Grid) NVerticesFull() int {
	if g.nVerticesFull != UnassignedIndex {
		return g.nVerticesFull
	}
	return g.maxRealizedVertexIndex + 1
}

// NCellsFull returns the theoretical number of cells in the full,
// unfiltered domain.
func (g *Grid) NCellsFull() int {
	if g.nCellsFull != UnassignedIndex {
		return g.nCellsFull
	}
	return g.maxRealizedCellIndex + 1
}

// SetFullCounts fixes the full-domain cardinalities, for grid constructors
// that realize only a subset of a known larger domain. Counts that have
// already been frozen are not changed.
func (g *Grid) SetFullCounts(nCells, nVertices int) {
	if g.nCellsFull == UnassignedIndex {
		g.nCellsFull = nCells
	}
	if g.nVerticesFull == UnassignedIndex {
		g.nVerticesFull = nVertices
	}
}

// NData returns the dimensionality of field vectors on this grid: the full
// vertex count for vertex-centered (L1) grids, otherwise the full cell
// count.
func (g *Grid) NData() int {
	if g.Parameterization == L1 {
		return g.NVerticesFull()
	}
	return g.NCellsFull()
}

// Centroid returns the centroid of the entity with the given index in the
// grid's field index space. For L0 grids that is the area-weighted
// centroid of cell ix's polygon, which is only geometrically valid in
// planar coordinates; callers holding lon/lat grids must project first.
// For L1 grids it is vertex ix's own coordinates.
func (g *Grid) Centroid(ix int) (geom.Point, error) {
	if g.Parameterization == L1 {
		v := g.Vertex(ix)
		if v == nil {
			return geom.Point{}, fmt.Errorf("cryogrid: centroid of unrealized vertex %d", ix)
		}
		return v.Point, nil
	}
	c := g.Cell(ix)
	if c == nil {
		return geom.Point{}, fmt.Errorf("cryogrid: centroid of unrealized cell %d", ix)
	}
	return PolygonCentroid(c), nil
}

// SortRenumberVertices reassigns vertex indices 0..n-1 in lexicographic
// (x, y) order, making independently constructed copies of the same grid
// comparable. Cells keep their vertex references; only the indices change.
func (g *Grid) SortRenumberVertices() {
	vs := g.Vertices()
	sort.Slice(vs, func(i, j int) bool {
		if vs[i].X != vs[j].X {
			return vs[i].X < vs[j].X
		}
		return vs[i].Y < vs[j].Y
	})
	g.vertices = make(map[int]*Vertex, len(vs))
	g.vertexOrder = g.vertexOrder[:0]
	for i, v := range vs {
		v.Index = i
		g.vertices[i] = v
		g.vertexOrder = append(g.vertexOrder, i)
	}
	g.maxRealizedVertexIndex = len(vs) - 1
}

// NativeAreas returns the stored native-coordinate area of every cell in a
// dense array of length NCellsFull, indexed by cell index. Positions of
// cells that are not realized hold NaN.
func (g *Grid) NativeAreas() []float64 {
	area := make([]float64, g.NCellsFull())
	for i := range area {
		area[i] = math.NaN()
	}
	for _, c := range g.cells {
		area[c.Index] = c.Area
	}
	return area
}

// LLToXY returns a transform from this grid's lon/lat coordinates to the
// planar coordinates of the projection sproj. It is only meaningful for
// grids in lon/lat coordinates.
func (g *Grid) LLToXY(sproj string) (proj.Transformer, error) {
	if g.Coordinates != CoordLonLat {
		return nil, UnsupportedCoordinateError{Op: "LLToXY", Coordinates: g.Coordinates}
	}
	llSR, err := proj.Parse("+proj=longlat")
	if err != nil {
		return nil, fmt.Errorf("cryogrid: parsing lon/lat spatial reference: %v", err)
	}
	xySR, err := proj.Parse(sproj)
	if err != nil {
		return nil, fmt.Errorf("cryogrid: parsing projection %q: %v", sproj, err)
	}
	t, err := llSR.NewTransform(xySR)
	if err != nil {
		return nil, fmt.Errorf("cryogrid: creating lon/lat to XY transform: %v", err)
	}
	return t, nil
}

// XYToLL returns the inverse transform of LLToXY. Like LLToXY it is only
// meaningful for grids in lon/lat coordinates.
func (g *Grid) XYToLL(sproj string) (proj.Transformer, error) {
	if g.Coordinates != CoordLonLat {
		return nil, UnsupportedCoordinateError{Op: "XYToLL", Coordinates: g.Coordinates}
	}
	llSR, err := proj.Parse("+proj=longlat")
	if err != nil {
		return nil, fmt.Errorf("cryogrid: parsing lon/lat spatial reference: %v", err)
	}
	xySR, err := proj.Parse(sproj)
	if err != nil {
		return nil, fmt.Errorf("cryogrid: parsing projection %q: %v", sproj, err)
	}
	t, err := xySR.NewTransform(llSR)
	if err != nil {
		return nil, fmt.Errorf("cryogrid: creating XY to lon/lat transform: %v", err)
	}
	return t, nil
}

// ProjAreas returns the area of every realized cell after projecting its
// vertices through sproj, in a dense array of length NCellsFull with NaN
// at unrealized positions.
func (g *Grid) ProjAreas(sproj string) ([]float64, error) {
	t, err := g.LLToXY(sproj)
	if err != nil {
		return nil, err
	}
	area := make([]float64, g.NCellsFull())
	for i := range area {
		area[i] = math.NaN()
	}
	for _, c := range g.cells {
		a, err := ProjArea(c, t)
		if err != nil {
			return nil, err
		}
		area[c.Index] = a
	}
	return area, nil
}
