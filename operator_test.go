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

func TestIndexMap(t *testing.T) {
	m := NewIndexMap(10)
	// Dense indices follow first-seen order, not native order.
	for i, native := range []int{7, 2, 7, 9} {
		want := []int{0, 1, 0, 2}[i]
		if d := m.DenseIndex(native); d != want {
			t.Errorf("DenseIndex(%d) = %d; want %d", native, d, want)
		}
	}
	if m.Len() != 3 {
		t.Errorf("Len = %d; want 3", m.Len())
	}
	if m.Extent() != 10 {
		t.Errorf("Extent = %d; want 10", m.Extent())
	}
	if n := m.Native(1); n != 2 {
		t.Errorf("Native(1) = %d; want 2", n)
	}
	if _, ok := m.Dense(4); ok {
		t.Error("Dense(4) reports a mapping for an unseen native index")
	}
}

func TestOperatorBuilder(t *testing.T) {
	b := NewOperatorBuilder(3, 4)
	b.Add(0, 0, 2.0)
	b.Add(0, 0, 3.0)
	b.Add(1, 2, 1.0)
	o := b.Operator()

	if n := o.Rows.Len(); n != 2 {
		t.Errorf("dense rows = %d; want 2", n)
	}
	if n := o.Cols.Len(); n != 2 {
		t.Errorf("dense cols = %d; want 2", n)
	}
	if n := o.Rows.Extent(); n != 3 {
		t.Errorf("row extent = %d; want 3", n)
	}
	if n := o.Cols.Extent(); n != 4 {
		t.Errorf("col extent = %d; want 4", n)
	}

	// Duplicate triples accumulate.
	r, _ := o.Rows.Dense(0)
	c, _ := o.Cols.Dense(0)
	if v := o.M.Get(r, c); different(v, 5, testTolerance) {
		t.Errorf("entry (0, 0) = %g; want 2 + 3 = 5", v)
	}
	r, _ = o.Rows.Dense(1)
	c, _ = o.Cols.Dense(2)
	if v := o.M.Get(r, c); different(v, 1, testTolerance) {
		t.Errorf("entry (1, 2) = %g; want 1", v)
	}
}

func TestOperatorDense(t *testing.T) {
	b := NewOperatorBuilder(5, 5)
	b.Add(4, 1, 0.25)
	b.Add(3, 1, 0.75)
	d := b.Operator().Dense()
	rows, cols := d.Dims()
	if rows != 2 || cols != 1 {
		t.Fatalf("dense dims = (%d, %d); want (2, 1)", rows, cols)
	}
	if v := d.At(0, 0); different(v, 0.25, testTolerance) {
		t.Errorf("dense (0, 0) = %g; want 0.25", v)
	}
	if v := d.At(1, 0); different(v, 0.75, testTolerance) {
		t.Errorf("dense (1, 0) = %g; want 0.75", v)
	}
}

func TestSparseAccumulator(t *testing.T) {
	a := make(SparseAccumulator)
	a.Add(3, 1.5)
	a.Add(3, 2.5)
	a.Add(0, 1)
	if v := a[3]; different(v, 4, testTolerance) {
		t.Errorf("accumulated value at 3 = %g; want 4", v)
	}
	if len(a) != 2 {
		t.Errorf("accumulator holds %d entries; want 2", len(a))
	}
}
