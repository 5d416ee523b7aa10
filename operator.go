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
	"github.com/ctessum/sparse"
	"gonum.org/v1/gonum/mat"
)

// An IndexMap relates one axis's native index space, which may be sparse
// and non-contiguous, to the dense 0..n-1 positions used for matrix
// storage. Dense positions are assigned lazily in first-seen order. The
// declared native extent is independent of how many native indices were
// actually seen: in regridding it describes the full theoretical domain
// even when the realized subset is smaller.
type IndexMap struct {
	toDense  map[int]int
	toNative []int
	extent   int
}

// NewIndexMap returns an empty index map with the given declared native
// extent.
func NewIndexMap(extent int) *IndexMap {
	return &IndexMap{toDense: make(map[int]int), extent: extent}
}

// DenseIndex returns the dense position for a native index, assigning the
// next free position on first encounter.
func (m *IndexMap) DenseIndex(native int) int {
	if d, ok := m.toDense[native]; ok {
		return d
	}
	d := len(m.toNative)
	m.toDense[native] = d
	m.toNative = append(m.toNative, native)
	return d
}

// Dense returns the dense position already assigned to a native index, and
// whether one has been assigned.
func (m *IndexMap) Dense(native int) (int, bool) {
	d, ok := m.toDense[native]
	return d, ok
}

// Native returns the native index assigned to a dense position.
func (m *IndexMap) Native(dense int) int { return m.toNative[dense] }

// Len returns the number of native indices seen so far, which is the dense
// extent of the axis.
func (m *IndexMap) Len() int { return len(m.toNative) }

// Extent returns the declared native extent of the axis.
func (m *IndexMap) Extent() int { return m.extent }

// An Operator is a sparse weighted regridding relation in dense indices,
// together with the index maps relating each axis back to its native index
// space so that other native-indexed vectors can be mapped into the same
// dense space.
type Operator struct {
	M          *sparse.SparseArray
	Rows, Cols *IndexMap
}

// Dense materializes the operator as a dense matrix for backends that
// require one.
func (o *Operator) Dense() *mat.Dense {
	nr, nc := o.Rows.Len(), o.Cols.Len()
	d := mat.NewDense(nr, nc, nil)
	for i := 0; i < nr; i++ {
		for j := 0; j < nc; j++ {
			d.Set(i, j, o.M.Get(i, j))
		}
	}
	return d
}

// An OperatorBuilder accumulates a stream of (row, col, weight) triples
// expressed in native indices into an Operator. Weights of repeated
// (row, col) pairs sum. The builder is not safe for concurrent use; when
// multiple sources contribute triples concurrently, use one builder per
// goroutine and merge the finished operators.
type OperatorBuilder struct {
	rows, cols *IndexMap
	entries    []entry
}

type entry struct {
	row, col int // dense indices
	weight   float64
}

// NewOperatorBuilder returns a builder for a relation between two native
// index spaces with the given declared extents.
func NewOperatorBuilder(nRowsNative, nColsNative int) *OperatorBuilder {
	return &OperatorBuilder{
		rows: NewIndexMap(nRowsNative),
		cols: NewIndexMap(nColsNative),
	}
}

// Add accumulates one triple, assigning dense positions to previously
// unseen native indices.
func (b *OperatorBuilder) Add(rowNative, colNative int, weight float64) {
	b.entries = append(b.entries, entry{
		row:    b.rows.DenseIndex(rowNative),
		col:    b.cols.DenseIndex(colNative),
		weight: weight,
	})
}

// scaleRows multiplies every entry in each dense row by the corresponding
// factor. Used to normalize accumulated overlap areas into interpolation
// weights.
func (b *OperatorBuilder) scaleRows(factors []float64) {
	for i := range b.entries {
		b.entries[i].weight *= factors[b.entries[i].row]
	}
}

// rowSums returns the accumulated weight of each dense row.
func (b *OperatorBuilder) rowSums() []float64 {
	sums := make([]float64, b.rows.Len())
	for _, e := range b.entries {
		sums[e.row] += e.weight
	}
	return sums
}

// Operator materializes the accumulated triples into a sparse matrix with
// dense shape (rows seen × columns seen). The index maps, including the
// declared native extents, travel with the result.
func (b *OperatorBuilder) Operator() *Operator {
	m := sparse.ZerosSparse(b.rows.Len(), b.cols.Len())
	for _, e := range b.entries {
		m.AddVal(e.weight, e.row, e.col)
	}
	return &Operator{M: m, Rows: b.rows, Cols: b.cols}
}

// A SparseAccumulator sums weighted contributions keyed by a native index,
// for example the ice-covered area of each atmosphere cell summed across
// ice sheets.
type SparseAccumulator map[int]float64

// Add accumulates v at native index i.
func (a SparseAccumulator) Add(i int, v float64) { a[i] += v }
