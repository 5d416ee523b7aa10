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

import "fmt"

// DuplicateIndexError is returned when a vertex or cell is inserted into a
// grid that already holds an entity with the same index.
type DuplicateIndexError struct {
	Entity string // "vertex" or "cell"
	Index  int
}

func (e DuplicateIndexError) Error() string {
	return fmt.Sprintf("cryogrid: repeat %s index %d; %s indices must be unique within a grid",
		e.Entity, e.Index, e.Entity)
}

// SchemaError is returned when a grid file is missing a required variable
// or attribute, or holds one with an unusable value.
type SchemaError struct {
	Name   string // the variable or attribute that is missing or malformed
	Reason string
}

func (e SchemaError) Error() string {
	return fmt.Sprintf("cryogrid: reading grid: %s: %s", e.Name, e.Reason)
}

// DanglingReferenceError is returned when a decoded cell references a vertex
// index that is not present in the decoded vertex table.
type DanglingReferenceError struct {
	CellIndex   int
	VertexIndex int
}

func (e DanglingReferenceError) Error() string {
	return fmt.Sprintf("cryogrid: cell %d references vertex %d, which is not in the vertex table",
		e.CellIndex, e.VertexIndex)
}

// NotRealizedError is returned when a matrix- or area-producing operation is
// invoked on an ice sheet before Realize has been called.
type NotRealizedError struct {
	Sheet string
	Op    string
}

func (e NotRealizedError) Error() string {
	return fmt.Sprintf("cryogrid: %s called on ice sheet %s before realization", e.Op, e.Sheet)
}

// UnsupportedCoordinateError is returned when an operation that is only
// meaningful for one coordinate system is requested on a grid using another,
// for example a lon/lat-to-XY transform on a grid already in XY coordinates.
type UnsupportedCoordinateError struct {
	Op          string
	Coordinates Coordinates
}

func (e UnsupportedCoordinateError) Error() string {
	return fmt.Sprintf("cryogrid: %s is not meaningful for grids in %s coordinates",
		e.Op, e.Coordinates)
}
