// Folio - Book Recommendation Engine
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/folio

package algorithms

import (
	"context"
	"fmt"
	"sort"

	"github.com/tomtom215/folio/internal/recommend"
)

// CollaborativeConfig configures the item-item model.
type CollaborativeConfig struct {
	MinBookRatings int
	MinUserRatings int
	Matrix         recommend.MatrixOptions
}

// Collaborative recommends books rated alike by the same readers.
//
// Rows of the user-item matrix are the ISBNs of the filtered log in
// ascending order, columns the user IDs in ascending order. A cell holds the
// mean of that user's ratings for the book, implicit zero otherwise.
//
//	sim(i, j) = (v_i . v_j) / (|v_i| * |v_j|), 0 when either norm is 0
type Collaborative struct {
	catalog  *recommend.Catalog
	users    []int
	matrix   *recommend.SimilarityMatrix
	nonZero  int
	filtered int
	unknown  int
}

// NewCollaborative builds the user-item matrix and its item-item similarity.
//
//nolint:gocritic // hugeParam: config is read once
func NewCollaborative(ctx context.Context, catalog *recommend.Catalog, cfg CollaborativeConfig) (*Collaborative, error) {
	filtered := recommend.FilterInteractions(catalog.Interactions(), cfg.MinBookRatings, cfg.MinUserRatings)

	type cell struct {
		sum   float64
		count int
	}
	cells := make(map[string]map[int]*cell)
	userSet := make(map[int]struct{})
	unknown := 0
	for _, in := range filtered {
		if _, ok := catalog.Book(in.ISBN); !ok {
			unknown++
			continue
		}
		row := cells[in.ISBN]
		if row == nil {
			row = make(map[int]*cell)
			cells[in.ISBN] = row
		}
		c := row[in.UserID]
		if c == nil {
			c = &cell{}
			row[in.UserID] = c
		}
		c.sum += float64(in.Rating)
		c.count++
		userSet[in.UserID] = struct{}{}
	}

	isbns := make([]string, 0, len(cells))
	for isbn := range cells {
		isbns = append(isbns, isbn)
	}
	sort.Strings(isbns)

	users := make([]int, 0, len(userSet))
	for u := range userSet {
		users = append(users, u)
	}
	sort.Ints(users)
	column := make(map[int]int, len(users))
	for j, u := range users {
		column[u] = j
	}

	vectors := make([]recommend.SparseVector, len(isbns))
	nonZero := 0
	for i, isbn := range isbns {
		row := cells[isbn]
		cols := make([]int, 0, len(row))
		for u := range row {
			cols = append(cols, column[u])
		}
		sort.Ints(cols)

		v := recommend.SparseVector{Indices: make([]int, 0, len(cols)), Values: make([]float64, 0, len(cols))}
		for _, j := range cols {
			c := row[users[j]]
			mean := c.sum / float64(c.count)
			if mean == 0 {
				continue
			}
			v.Indices = append(v.Indices, j)
			v.Values = append(v.Values, mean)
		}
		nonZero += v.Len()
		vectors[i] = v
	}

	matrix, err := recommend.NewSimilarityMatrix(ctx, recommend.NewItemIndex(isbns), vectors, len(users), cfg.Matrix)
	if err != nil {
		return nil, fmt.Errorf("collaborative similarity: %w", err)
	}

	return &Collaborative{
		catalog:  catalog,
		users:    users,
		matrix:   matrix,
		nonZero:  nonZero,
		filtered: len(filtered),
		unknown:  unknown,
	}, nil
}

// Name returns the model identifier.
func (c *Collaborative) Name() string {
	return string(recommend.MethodCollaborative)
}

// Similar returns up to n books most similar to isbn. An ISBN outside the
// filtered matrix yields an empty result.
func (c *Collaborative) Similar(isbn string, n int) []recommend.Recommendation {
	return similarFromMatrix(c.catalog, c.matrix, isbn, n)
}

// Matrix returns the item-item similarity matrix.
func (c *Collaborative) Matrix() *recommend.SimilarityMatrix {
	return c.matrix
}

// Shape returns the user-item matrix dimensions.
func (c *Collaborative) Shape() (items, users int) {
	return c.matrix.Len(), len(c.users)
}

// Sparsity returns the percentage of unobserved cells in the user-item matrix.
func (c *Collaborative) Sparsity() float64 {
	items, users := c.Shape()
	if items == 0 || users == 0 {
		return 100
	}
	return (1 - float64(c.nonZero)/(float64(items)*float64(users))) * 100
}

// similarFromMatrix turns the top neighbours of isbn into result rows.
func similarFromMatrix(catalog *recommend.Catalog, m *recommend.SimilarityMatrix, isbn string, n int) []recommend.Recommendation {
	i, ok := m.Index().Position(isbn)
	if !ok || n <= 0 {
		return []recommend.Recommendation{}
	}
	neighbors := m.TopK(i, n)
	out := make([]recommend.Recommendation, 0, len(neighbors))
	for _, nb := range neighbors {
		book, ok := catalog.Book(m.Index().ISBN(nb.Index))
		if !ok {
			continue
		}
		out = append(out, recommend.NewRecommendation(book, nb.Score))
	}
	return out
}
