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
	"os"

	"github.com/ctessum/cdf"
	"github.com/ctessum/geom"
)

// gridFormatVersion is the file format version written to <vname>.info.
const gridFormatVersion = 1

// DefineNC declares the NetCDF schema for this grid under the name prefix
// vname and returns the header plus a deferred writer that populates the
// declared variables. The NetCDF format requires the full schema before any
// data is written, so callers must finish defining the header (including
// any other grids sharing the file), call Define on it and create the file,
// and only then execute the writer.
func (g *Grid) DefineNC(vname string) (*cdf.Header, func(f *cdf.File) error) {
	cells := g.sortedCells()
	vertices := g.sortedVertices()

	nvref := 0
	for _, c := range cells {
		nvref += len(c.Vertices)
	}

	h := cdf.NewHeader(
		[]string{
			vname + ".vertices.num_realized",
			vname + ".cells.num_realized",
			vname + ".cells.num_realized_plus1",
			vname + ".cells.num_vertex_refs",
			"one", "two", "three",
		},
		[]int{len(vertices), len(cells), len(cells) + 1, nvref, 1, 2, 3},
	)

	info := vname + ".info"
	h.AddVariable(info, []string{"one"}, []int32{0})
	h.AddAttribute(info, "version", []int32{gridFormatVersion})
	h.AddAttribute(info, "name", g.Name)
	h.AddAttribute(info, "type", g.Type.String())
	h.AddAttribute(info, "type.comment",
		"The overall type of the grid, controlling which native address fields of its cells are meaningful.")
	h.AddAttribute(info, "coordinates", g.Coordinates.String())
	h.AddAttribute(info, "coordinates.comment",
		"The coordinate system of the grid vertices, either XY or LONLAT (longitude before latitude). "+
			"Independent of the grid type; a GENERIC grid may use either.")
	h.AddAttribute(info, "parameterization", g.Parameterization.String())
	h.AddAttribute(info, "parameterization.comment",
		"How field values are interpolated between grid points. Most finite difference models use L0 "+
			"(cell-centered); finite element models use L1 (vertex-centered).")
	if g.Coordinates == CoordXY {
		h.AddAttribute(info, "projection", g.Sproj)
		h.AddAttribute(info, "projection.comment",
			"The projection converting this grid's XY coordinates to LONLAT coordinates on the surface "+
				"of the earth, in Proj4 format.")
	}
	h.AddAttribute(info, "cells.num_full", []int32{int32(g.NCellsFull())})
	h.AddAttribute(info, "cells.num_full.comment",
		"The total theoretical number of cells (polygons) in this grid. Only a subset may be realized; "+
			"for example, a grid prepared for one ice sheet only realizes atmosphere cells near that sheet.")
	h.AddAttribute(info, "vertices.num_full", []int32{int32(g.NVerticesFull())})
	h.AddAttribute(info, "vertices.num_full.comment",
		"The total theoretical number of polygon vertices in this grid.")

	var v string
	v = vname + ".vertices.index"
	h.AddVariable(v, []string{vname + ".vertices.num_realized"}, []int32{0})
	h.AddAttribute(v, "comment",
		"The index of each realized vertex. Indices are unique but not necessarily contiguous; "+
			"array position gives the implicit dense ordering.")
	h.AddVariable(vname+".vertices.xy", []string{vname + ".vertices.num_realized", "two"}, []float64{0})

	v = vname + ".cells.index"
	h.AddVariable(v, []string{vname + ".cells.num_realized"}, []int32{0})
	h.AddAttribute(v, "comment",
		"The index of each realized cell, in the same order as the other cells arrays.")
	v = vname + ".cells.ijk"
	h.AddVariable(v, []string{vname + ".cells.num_realized", "three"}, []int32{0})
	h.AddAttribute(v, "comment",
		"OPTIONAL: up to three dimensions of native grid address for each cell. For EXCHANGE grids, "+
			"i and j are the indices of the two overlapping source cells.")
	h.AddVariable(vname+".cells.area", []string{vname + ".cells.num_realized"}, []float64{0})

	v = vname + ".cells.vertex_refs"
	h.AddVariable(v, []string{vname + ".cells.num_vertex_refs"}, []int32{0})
	h.AddAttribute(v, "comment",
		"The ordered vertex indices of every cell's boundary, concatenated in cell order.")
	v = vname + ".cells.vertex_refs_start"
	h.AddVariable(v, []string{vname + ".cells.num_realized_plus1"}, []int32{0})
	h.AddAttribute(v, "comment",
		"Start of each cell's slice of vertex_refs; the final entry is the total reference count.")

	return h, func(f *cdf.File) error { return g.writeNC(f, vname, vertices, cells, nvref) }
}

// writeNC populates the variables declared by DefineNC.
func (g *Grid) writeNC(f *cdf.File, vname string, vertices []*Vertex, cells []*Cell, nvref int) error {
	vIndex := make([]int32, len(vertices))
	vXY := make([]float64, 2*len(vertices))
	for i, v := range vertices {
		vIndex[i] = int32(v.Index)
		vXY[2*i] = v.X
		vXY[2*i+1] = v.Y
	}

	cIndex := make([]int32, len(cells))
	cIJK := make([]int32, 3*len(cells))
	cArea := make([]float64, len(cells))
	vrefs := make([]int32, 0, nvref)
	starts := make([]int32, len(cells)+1)
	for i, c := range cells {
		cIndex[i] = int32(c.Index)
		cIJK[3*i] = int32(c.I)
		cIJK[3*i+1] = int32(c.J)
		cIJK[3*i+2] = int32(c.K)
		cArea[i] = c.Area
		starts[i] = int32(len(vrefs))
		for _, v := range c.Vertices {
			vrefs = append(vrefs, int32(v.Index))
		}
	}
	starts[len(cells)] = int32(len(vrefs))

	for _, d := range []struct {
		name string
		data interface{}
	}{
		{vname + ".vertices.index", vIndex},
		{vname + ".vertices.xy", vXY},
		{vname + ".cells.index", cIndex},
		{vname + ".cells.ijk", cIJK},
		{vname + ".cells.area", cArea},
		{vname + ".cells.vertex_refs", vrefs},
		{vname + ".cells.vertex_refs_start", starts},
	} {
		end := f.Header.Lengths(d.name)
		start := make([]int, len(end))
		w := f.Writer(d.name, start, end)
		if _, err := w.Write(d.data); err != nil {
			return fmt.Errorf("cryogrid: writing variable %s: %v", d.name, err)
		}
	}
	return nil
}

// WriteNC writes the grid to w under the name prefix vname, performing the
// schema-definition and data-population phases in sequence.
func (g *Grid) WriteNC(w *os.File, vname string) error {
	h, write := g.DefineNC(vname)
	h.Define()
	f, err := cdf.Create(w, h)
	if err != nil {
		return fmt.Errorf("cryogrid: creating grid file: %v", err)
	}
	if err := write(f); err != nil {
		return err
	}
	if err := cdf.UpdateNumRecs(w); err != nil {
		return fmt.Errorf("cryogrid: finalizing grid file: %v", err)
	}
	return nil
}

// WriteFile writes the grid to the named file under the name prefix vname.
// The file is closed on all exit paths, including a failed write.
func (g *Grid) WriteFile(fname, vname string) error {
	w, err := os.Create(fname)
	if err != nil {
		return fmt.Errorf("cryogrid: creating grid file: %v", err)
	}
	defer w.Close()
	return g.WriteNC(w, vname)
}

// readIntVar reads the named int32 variable in full.
func readIntVar(f *cdf.File, name string) ([]int32, error) {
	if f.Header.Lengths(name) == nil {
		return nil, SchemaError{Name: name, Reason: "variable not in file"}
	}
	r := f.Reader(name, nil, nil)
	buf := r.Zero(-1)
	if _, err := r.Read(buf); err != nil {
		return nil, SchemaError{Name: name, Reason: err.Error()}
	}
	v, ok := buf.([]int32)
	if !ok {
		return nil, SchemaError{Name: name, Reason: fmt.Sprintf("unexpected type %T", buf)}
	}
	return v, nil
}

// readFloatVar reads the named float64 variable in full.
func readFloatVar(f *cdf.File, name string) ([]float64, error) {
	if f.Header.Lengths(name) == nil {
		return nil, SchemaError{Name: name, Reason: "variable not in file"}
	}
	r := f.Reader(name, nil, nil)
	buf := r.Zero(-1)
	if _, err := r.Read(buf); err != nil {
		return nil, SchemaError{Name: name, Reason: err.Error()}
	}
	v, ok := buf.([]float64)
	if !ok {
		return nil, SchemaError{Name: name, Reason: fmt.Sprintf("unexpected type %T", buf)}
	}
	return v, nil
}

// infoString reads a string attribute of the <vname>.info variable.
func infoString(f *cdf.File, info, att string) (string, error) {
	v := f.Header.GetAttribute(info, att)
	if v == nil {
		return "", SchemaError{Name: info + ":" + att, Reason: "attribute not in file"}
	}
	s, ok := v.(string)
	if !ok {
		return "", SchemaError{Name: info + ":" + att, Reason: fmt.Sprintf("unexpected type %T", v)}
	}
	return s, nil
}

// infoInt reads an integer attribute of the <vname>.info variable.
func infoInt(f *cdf.File, info, att string) (int, error) {
	v := f.Header.GetAttribute(info, att)
	if v == nil {
		return 0, SchemaError{Name: info + ":" + att, Reason: "attribute not in file"}
	}
	s, ok := v.([]int32)
	if !ok || len(s) == 0 {
		return 0, SchemaError{Name: info + ":" + att, Reason: fmt.Sprintf("unexpected type %T", v)}
	}
	return int(s[0]), nil
}

// ReadNC reads a grid written under the name prefix vname from rw.
// Vertices are reconstructed before cells so that cell vertex references
// can be resolved by index.
func ReadNC(rw cdf.ReaderWriterAt, vname string) (*Grid, error) {
	f, err := cdf.Open(rw)
	if err != nil {
		return nil, fmt.Errorf("cryogrid: opening grid file: %v", err)
	}

	info := vname + ".info"
	name, err := infoString(f, info, "name")
	if err != nil {
		return nil, err
	}
	stype, err := infoString(f, info, "type")
	if err != nil {
		return nil, err
	}
	gtype, err := ParseGridType(stype)
	if err != nil {
		return nil, SchemaError{Name: info + ":type", Reason: err.Error()}
	}
	scoord, err := infoString(f, info, "coordinates")
	if err != nil {
		return nil, err
	}
	coord, err := ParseCoordinates(scoord)
	if err != nil {
		return nil, SchemaError{Name: info + ":coordinates", Reason: err.Error()}
	}
	sparam, err := infoString(f, info, "parameterization")
	if err != nil {
		return nil, err
	}
	param, err := ParseParameterization(sparam)
	if err != nil {
		return nil, SchemaError{Name: info + ":parameterization", Reason: err.Error()}
	}

	g := NewGrid(gtype, coord, param)
	g.Name = name
	if coord == CoordXY {
		if g.Sproj, err = infoString(f, info, "projection"); err != nil {
			return nil, err
		}
	}
	if g.nCellsFull, err = infoInt(f, info, "cells.num_full"); err != nil {
		return nil, err
	}
	if g.nVerticesFull, err = infoInt(f, info, "vertices.num_full"); err != nil {
		return nil, err
	}

	vIndex, err := readIntVar(f, vname+".vertices.index")
	if err != nil {
		return nil, err
	}
	vXY, err := readFloatVar(f, vname+".vertices.xy")
	if err != nil {
		return nil, err
	}
	if len(vXY) != 2*len(vIndex) {
		return nil, SchemaError{Name: vname + ".vertices.xy",
			Reason: fmt.Sprintf("have %d coordinates for %d vertices", len(vXY), len(vIndex))}
	}
	for i, ix := range vIndex {
		v := &Vertex{Index: int(ix), Point: geom.Point{X: vXY[2*i], Y: vXY[2*i+1]}}
		if err := g.AddVertex(v); err != nil {
			return nil, err
		}
	}

	cIndex, err := readIntVar(f, vname+".cells.index")
	if err != nil {
		return nil, err
	}
	cIJK, err := readIntVar(f, vname+".cells.ijk")
	if err != nil {
		return nil, err
	}
	cArea, err := readFloatVar(f, vname+".cells.area")
	if err != nil {
		return nil, err
	}
	vrefs, err := readIntVar(f, vname+".cells.vertex_refs")
	if err != nil {
		return nil, err
	}
	starts, err := readIntVar(f, vname+".cells.vertex_refs_start")
	if err != nil {
		return nil, err
	}
	if len(starts) != len(cIndex)+1 {
		return nil, SchemaError{Name: vname + ".cells.vertex_refs_start",
			Reason: fmt.Sprintf("have %d offsets for %d cells", len(starts), len(cIndex))}
	}
	// The offsets are used to slice vrefs, so a malformed file must be
	// caught here rather than panicking below.
	for i, s := range starts {
		if s < 0 || (i > 0 && s < starts[i-1]) {
			return nil, SchemaError{Name: vname + ".cells.vertex_refs_start",
				Reason: fmt.Sprintf("offsets must be non-negative and non-decreasing; offset %d is %d", i, s)}
		}
	}
	if int(starts[len(starts)-1]) != len(vrefs) {
		return nil, SchemaError{Name: vname + ".cells.vertex_refs_start",
			Reason: fmt.Sprintf("final offset %d does not match %d vertex references",
				starts[len(starts)-1], len(vrefs))}
	}

	for i, ix := range cIndex {
		c := &Cell{
			Index: int(ix),
			I:     int(cIJK[3*i]),
			J:     int(cIJK[3*i+1]),
			K:     int(cIJK[3*i+2]),
			Area:  cArea[i],
		}
		c.Vertices = make([]*Vertex, 0, starts[i+1]-starts[i])
		for j := starts[i]; j < starts[i+1]; j++ {
			v := g.Vertex(int(vrefs[j]))
			if v == nil {
				return nil, DanglingReferenceError{CellIndex: c.Index, VertexIndex: int(vrefs[j])}
			}
			c.Vertices = append(c.Vertices, v)
		}
		if err := g.AddCell(c); err != nil {
			return nil, err
		}
	}
	return g, nil
}

// ReadFile reads a grid written under the name prefix vname from the named
// file.
func ReadFile(fname, vname string) (*Grid, error) {
	r, err := os.Open(fname)
	if err != nil {
		return nil, fmt.Errorf("cryogrid: opening grid file: %v", err)
	}
	defer r.Close()
	return ReadNC(r, vname)
}
