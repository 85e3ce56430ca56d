// Folio - Book Recommendation Engine
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/folio

package recommend

import (
	"context"
	"fmt"
	"math"
	"runtime"
	"sort"
	"sync"
)

// SparseVector holds the non-zero entries of a row. Indices are strictly
// ascending.
type SparseVector struct {
	Indices []int
	Values  []float64
}

// Len returns the number of stored entries.
func (v SparseVector) Len() int {
	return len(v.Indices)
}

// Norm returns the L2 norm.
func (v SparseVector) Norm() float64 {
	var sum float64
	for _, x := range v.Values {
		sum += x * x
	}
	return math.Sqrt(sum)
}

// Normalized returns a unit-length copy. A zero vector stays zero.
func (v SparseVector) Normalized() SparseVector {
	out := SparseVector{
		Indices: make([]int, len(v.Indices)),
		Values:  make([]float64, len(v.Values)),
	}
	copy(out.Indices, v.Indices)
	norm := v.Norm()
	if norm == 0 {
		return out
	}
	for i, x := range v.Values {
		out.Values[i] = x / norm
	}
	return out
}

// Dot returns the dot product of two sparse vectors.
func (v SparseVector) Dot(o SparseVector) float64 {
	var sum float64
	i, j := 0, 0
	for i < len(v.Indices) && j < len(o.Indices) {
		switch {
		case v.Indices[i] == o.Indices[j]:
			sum += v.Values[i] * o.Values[j]
			i++
			j++
		case v.Indices[i] < o.Indices[j]:
			i++
		default:
			j++
		}
	}
	return sum
}

// Cosine returns the cosine similarity of a and b, or 0 when either norm is 0.
// Rounding never pushes the result outside [-1, 1].
func Cosine(a, b SparseVector) float64 {
	na, nb := a.Norm(), b.Norm()
	if na == 0 || nb == 0 {
		return 0
	}
	return clampUnit(a.Dot(b) / (na * nb))
}

func clampUnit(x float64) float64 {
	return math.Max(-1, math.Min(1, x))
}

// Neighbor is one candidate returned by SimilarityMatrix.TopK.
type Neighbor struct {
	Index int
	Score float64
}

// MatrixOptions tunes similarity matrix construction.
type MatrixOptions struct {
	// Workers parallelises the dense build. 0 = runtime.NumCPU().
	Workers int

	// MaxDenseItems is the largest matrix materialised up front. Larger
	// matrices compute rows on demand with identical values. 0 = always dense.
	MaxDenseItems int
}

type posting struct {
	row   int
	value float64
}

// SimilarityMatrix is a square, symmetric cosine similarity matrix over the
// rows of a sparse feature matrix. Row and column i both belong to
// Index().ISBN(i). The diagonal is exactly 1 for rows with a non-zero norm
// and 0 otherwise.
type SimilarityMatrix struct {
	index    *ItemIndex
	n        int
	vectors  []SparseVector
	postings [][]posting
	nonzero  []bool

	// dense is row-major n*n, nil when rows are computed on demand.
	dense []float64
}

// NewSimilarityMatrix builds the cosine similarity of vectors. vectors[i] is
// the feature row for index position i and dims bounds every feature index.
func NewSimilarityMatrix(ctx context.Context, index *ItemIndex, vectors []SparseVector, dims int, opts MatrixOptions) (*SimilarityMatrix, error) {
	if index.Len() != len(vectors) {
		return nil, fmt.Errorf("index has %d labels but %d vectors were given", index.Len(), len(vectors))
	}

	n := len(vectors)
	m := &SimilarityMatrix{
		index:    index,
		n:        n,
		vectors:  make([]SparseVector, n),
		postings: make([][]posting, dims),
		nonzero:  make([]bool, n),
	}

	for i, v := range vectors {
		for k := 1; k < len(v.Indices); k++ {
			if v.Indices[k] <= v.Indices[k-1] {
				return nil, fmt.Errorf("vector %d: indices must be strictly ascending", i)
			}
		}
		unit := v.Normalized()
		m.vectors[i] = unit
		for k, f := range unit.Indices {
			if f < 0 || f >= dims {
				return nil, fmt.Errorf("vector %d: feature %d out of range [0,%d)", i, f, dims)
			}
			if unit.Values[k] != 0 {
				m.nonzero[i] = true
				m.postings[f] = append(m.postings[f], posting{row: i, value: unit.Values[k]})
			}
		}
	}

	if opts.MaxDenseItems > 0 && n > opts.MaxDenseItems {
		return m, nil
	}
	if err := m.materialize(ctx, opts.Workers); err != nil {
		return nil, err
	}
	return m, nil
}

// materialize fills the dense matrix using chunked workers. Each worker
// writes a disjoint band of rows.
func (m *SimilarityMatrix) materialize(ctx context.Context, workers int) error {
	if workers <= 0 {
		workers = runtime.NumCPU()
	}
	m.dense = make([]float64, m.n*m.n)
	if m.n == 0 {
		return nil
	}

	chunkSize := (m.n + workers - 1) / workers
	var wg sync.WaitGroup
	for w := 0; w < workers; w++ {
		start := w * chunkSize
		end := start + chunkSize
		if end > m.n {
			end = m.n
		}
		if start >= end {
			break
		}

		wg.Add(1)
		go func(start, end int) {
			defer wg.Done()
			for i := start; i < end; i++ {
				if ctx.Err() != nil {
					return
				}
				m.computeRow(i, m.dense[i*m.n:(i+1)*m.n])
			}
		}(start, end)
	}
	wg.Wait()

	if err := ctx.Err(); err != nil {
		m.dense = nil
		return fmt.Errorf("similarity build cancelled: %w", err)
	}
	return nil
}

// computeRow writes row i into dst, which must be zeroed and of length n.
// Contributions are accumulated in ascending feature order, so the result
// for (i, j) is bit-identical to the result for (j, i).
func (m *SimilarityMatrix) computeRow(i int, dst []float64) {
	v := m.vectors[i]
	for k, f := range v.Indices {
		x := v.Values[k]
		if x == 0 {
			continue
		}
		for _, p := range m.postings[f] {
			dst[p.row] += x * p.value
		}
	}
	for j, sim := range dst {
		dst[j] = clampUnit(sim)
	}
	if m.nonzero[i] {
		dst[i] = 1
	} else {
		dst[i] = 0
	}
}

// Len returns the matrix dimension.
func (m *SimilarityMatrix) Len() int {
	return m.n
}

// Index returns the label mapping shared by rows and columns.
func (m *SimilarityMatrix) Index() *ItemIndex {
	return m.index
}

// Dense reports whether the full matrix was materialised.
func (m *SimilarityMatrix) Dense() bool {
	return m.dense != nil
}

// Row returns a copy of row i.
func (m *SimilarityMatrix) Row(i int) []float64 {
	row := make([]float64, m.n)
	if m.dense != nil {
		copy(row, m.dense[i*m.n:(i+1)*m.n])
		return row
	}
	m.computeRow(i, row)
	return row
}

// At returns sim(i, j).
func (m *SimilarityMatrix) At(i, j int) float64 {
	if m.dense != nil {
		return m.dense[i*m.n+j]
	}
	if i == j {
		if m.nonzero[i] {
			return 1
		}
		return 0
	}
	return clampUnit(m.vectors[i].Dot(m.vectors[j]))
}

// TopK returns up to k entries of row i, excluding i itself, ordered by
// similarity descending. Equal scores keep column order.
func (m *SimilarityMatrix) TopK(i, k int) []Neighbor {
	if k <= 0 || i < 0 || i >= m.n {
		return []Neighbor{}
	}

	var row []float64
	if m.dense != nil {
		row = m.dense[i*m.n : (i+1)*m.n]
	} else {
		row = m.Row(i)
	}

	candidates := make([]Neighbor, 0, m.n-1)
	for j, score := range row {
		if j != i {
			candidates = append(candidates, Neighbor{Index: j, Score: score})
		}
	}
	sort.SliceStable(candidates, func(a, b int) bool {
		return candidates[a].Score > candidates[b].Score
	})
	if len(candidates) > k {
		candidates = candidates[:k]
	}
	return candidates
}
