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

// An IceSheet produces the regridding operators coupling one ice model
// domain to an atmosphere grid. A coupling orchestrator holds one IceSheet
// per physical domain (e.g. Greenland and Antarctica against one global
// atmosphere), sums each sheet's area contribution into a shared
// accumulator, and adds each sheet's operator contribution into the
// combined operator, without knowing the concrete grid family behind each
// sheet.
type IceSheet interface {
	// AccumAreas adds the ice-covered area of each atmosphere cell,
	// keyed by native atmosphere cell index, into area.
	AccumAreas(area SparseAccumulator) error

	// HPToIce returns the operator mapping height-point-space values
	// onto the ice grid.
	HPToIce() (*Operator, error)

	// HPToAtm returns the operator mapping height-point-space values
	// back onto the atmosphere grid, accumulating the ice-covered area
	// of each atmosphere cell into area as a side effect.
	HPToAtm(area SparseAccumulator) (*Operator, error)
}

// A SheetL0 is an IceSheet over a cell-centered (L0) ice grid. The
// height-point space collapses to the atmosphere grid's own index space in
// the absence of a vertical elevation discretization, which belongs to the
// coupling layer, not this engine.
type SheetL0 struct {
	Name string

	// Atm is the atmosphere grid and Ice the ice model grid. Exch is
	// the exchange grid between them, realized by Realize.
	Atm, Ice, Exch *Grid

	// MsgLog, if non-nil, receives progress messages during
	// realization. The caller must consume them.
	MsgLog chan string

	realized bool
}

// NewSheetL0 returns an unrealized ice sheet coupling the given grids.
// Realize must be called before any matrix- or area-producing operation.
func NewSheetL0(name string, atm, ice *Grid) (*SheetL0, error) {
	if ice.Parameterization != L0 {
		return nil, fmt.Errorf("cryogrid: ice sheet %s requires an L0 ice grid, not %s",
			name, ice.Parameterization)
	}
	return &SheetL0{Name: name, Atm: atm, Ice: ice}, nil
}

// Realize computes the exchange grid between the atmosphere and ice grids
// and fills in any ice cell areas that were not precomputed.
func (s *SheetL0) Realize() error {
	for _, c := range s.Ice.Cells() {
		if c.Area == 0 {
			c.Area = math.Abs(Area(c))
		}
	}
	if s.MsgLog != nil {
		s.MsgLog <- fmt.Sprintf("Computing overlaps between %s and %s", s.Atm.Name, s.Ice.Name)
	}
	ex, err := Overlap(s.Atm, s.Ice)
	if err != nil {
		return fmt.Errorf("cryogrid: realizing ice sheet %s: %v", s.Name, err)
	}
	if s.MsgLog != nil {
		s.MsgLog <- fmt.Sprintf("Exchange grid for %s has %d cells", s.Name, ex.NCellsRealized())
	}
	s.Exch = ex
	s.realized = true
	return nil
}

// FilterCellsAtm restricts the sheet to the atmosphere cells accepted by
// keep, for example the cells inside one parallel worker's domain. Only
// the exchange grid is filtered; the source grids are shared and left
// intact.
func (s *SheetL0) FilterCellsAtm(keep func(atmCellIndex int) bool) error {
	if !s.realized {
		return NotRealizedError{Sheet: s.Name, Op: "FilterCellsAtm"}
	}
	byAtm := make(map[int]bool)
	for _, c := range s.Exch.Cells() {
		if keep(c.I) {
			byAtm[c.Index] = true
		}
	}
	s.Exch.FilterCells(func(ix int) bool { return byAtm[ix] })
	return nil
}

// AccumAreas implements IceSheet.
func (s *SheetL0) AccumAreas(area SparseAccumulator) error {
	if !s.realized {
		return NotRealizedError{Sheet: s.Name, Op: "AccumAreas"}
	}
	for _, c := range s.Exch.Cells() {
		area.Add(c.I, c.Area)
	}
	return nil
}

// HPToIce implements IceSheet. Each ice cell receives the overlap-area
// weighted average of the height-point values covering it, so a constant
// field regrids to the same constant.
func (s *SheetL0) HPToIce() (*Operator, error) {
	if !s.realized {
		return nil, NotRealizedError{Sheet: s.Name, Op: "HPToIce"}
	}
	b := NewOperatorBuilder(s.Ice.NData(), s.Atm.NData())
	for _, c := range s.Exch.Cells() {
		b.Add(c.J, c.I, c.Area)
	}
	normalizeRows(b)
	return b.Operator(), nil
}

// HPToAtm implements IceSheet. Each atmosphere cell receives the
// average of the height-point values over its ice-covered portion, and
// area accumulates that covered area per atmosphere cell.
func (s *SheetL0) HPToAtm(area SparseAccumulator) (*Operator, error) {
	if !s.realized {
		return nil, NotRealizedError{Sheet: s.Name, Op: "HPToAtm"}
	}
	b := NewOperatorBuilder(s.Atm.NData(), s.Ice.NData())
	for _, c := range s.Exch.Cells() {
		b.Add(c.I, c.J, c.Area)
		area.Add(c.I, c.Area)
	}
	normalizeRows(b)
	return b.Operator(), nil
}

// normalizeRows turns accumulated overlap areas into weights summing to
// one per row.
func normalizeRows(b *OperatorBuilder) {
	sums := b.rowSums()
	for i, s := range sums {
		if s != 0 {
			sums[i] = 1 / s
		}
	}
	b.scaleRows(sums)
}
