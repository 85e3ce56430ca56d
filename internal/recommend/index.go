// Folio - Book Recommendation Engine
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/folio

package recommend

// ItemIndex is a bidirectional mapping between ISBNs and dense row indices.
type ItemIndex struct {
	isbns     []string
	positions map[string]int
}

// NewItemIndex indexes isbns in the given order. A repeated ISBN keeps its
// first position.
func NewItemIndex(isbns []string) *ItemIndex {
	idx := &ItemIndex{
		isbns:     make([]string, len(isbns)),
		positions: make(map[string]int, len(isbns)),
	}
	copy(idx.isbns, isbns)
	for i, isbn := range isbns {
		if _, ok := idx.positions[isbn]; !ok {
			idx.positions[isbn] = i
		}
	}
	return idx
}

// Len returns the number of indexed positions.
func (x *ItemIndex) Len() int {
	return len(x.isbns)
}

// Position returns the row index for isbn.
func (x *ItemIndex) Position(isbn string) (int, bool) {
	i, ok := x.positions[isbn]
	return i, ok
}

// ISBN returns the label at row i.
func (x *ItemIndex) ISBN(i int) string {
	return x.isbns[i]
}

// Contains reports whether isbn is indexed.
func (x *ItemIndex) Contains(isbn string) bool {
	_, ok := x.positions[isbn]
	return ok
}
