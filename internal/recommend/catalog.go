// Folio - Book Recommendation Engine
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/folio

package recommend

import (
	"context"
	"fmt"
	"sort"
	"strings"
)

// CatalogProvider supplies cleaned tables. It is implemented by the
// database package, which keeps this package free of storage imports.
type CatalogProvider interface {
	// LoadBooks returns one row per ISBN.
	LoadBooks(ctx context.Context) ([]Book, error)

	// LoadInteractions returns the full rating log in source order.
	LoadInteractions(ctx context.Context) ([]Interaction, error)
}

// Catalog is the immutable snapshot every model reads from. Books are held
// in ascending ISBN order, which is the catalog's row order everywhere.
type Catalog struct {
	books        []Book
	index        *ItemIndex
	lowerTitles  []string
	interactions []Interaction
}

// LoadCatalog pulls both tables from p and builds a Catalog.
func LoadCatalog(ctx context.Context, p CatalogProvider) (*Catalog, error) {
	books, err := p.LoadBooks(ctx)
	if err != nil {
		return nil, fmt.Errorf("%w: load books: %w", ErrInitialization, err)
	}
	interactions, err := p.LoadInteractions(ctx)
	if err != nil {
		return nil, fmt.Errorf("%w: load interactions: %w", ErrInitialization, err)
	}
	return NewCatalog(books, interactions)
}

// NewCatalog copies books and interactions into a Catalog. Books are
// stable-sorted by ISBN. Empty tables and duplicate ISBNs are rejected.
func NewCatalog(books []Book, interactions []Interaction) (*Catalog, error) {
	if len(books) == 0 {
		return nil, fmt.Errorf("%w: catalog has no books", ErrInitialization)
	}
	if len(interactions) == 0 {
		return nil, fmt.Errorf("%w: rating log is empty", ErrInitialization)
	}

	sorted := make([]Book, len(books))
	copy(sorted, books)
	sort.SliceStable(sorted, func(i, j int) bool { return sorted[i].ISBN < sorted[j].ISBN })

	isbns := make([]string, len(sorted))
	lower := make([]string, len(sorted))
	for i := range sorted {
		if sorted[i].ISBN == "" {
			return nil, fmt.Errorf("%w: book at row %d has an empty ISBN", ErrInitialization, i)
		}
		if i > 0 && sorted[i].ISBN == sorted[i-1].ISBN {
			return nil, fmt.Errorf("%w: duplicate ISBN %q", ErrInitialization, sorted[i].ISBN)
		}
		isbns[i] = sorted[i].ISBN
		lower[i] = strings.ToLower(sorted[i].Title)
	}

	log := make([]Interaction, len(interactions))
	copy(log, interactions)

	return &Catalog{
		books:        sorted,
		index:        NewItemIndex(isbns),
		lowerTitles:  lower,
		interactions: log,
	}, nil
}

// Len returns the number of books.
func (c *Catalog) Len() int {
	return len(c.books)
}

// Books returns the catalog rows. Callers must not modify the slice.
func (c *Catalog) Books() []Book {
	return c.books
}

// At returns the book at row i.
func (c *Catalog) At(i int) Book {
	return c.books[i]
}

// Book looks up a book by ISBN.
func (c *Catalog) Book(isbn string) (Book, bool) {
	i, ok := c.index.Position(isbn)
	if !ok {
		return Book{}, false
	}
	return c.books[i], true
}

// Index returns the ISBN to row index mapping.
func (c *Catalog) Index() *ItemIndex {
	return c.index
}

// Interactions returns the full rating log. Callers must not modify the slice.
func (c *Catalog) Interactions() []Interaction {
	return c.interactions
}

// FindTitle returns the first book, in catalog order, whose title contains
// substr ignoring case.
func (c *Catalog) FindTitle(substr string) (Book, bool) {
	needle := strings.ToLower(substr)
	for i, title := range c.lowerTitles {
		if strings.Contains(title, needle) {
			return c.books[i], true
		}
	}
	return Book{}, false
}

// FilterInteractions keeps the entries whose ISBN has at least minBook
// ratings and whose user has at least minUser ratings. Both counts are taken
// over the whole log and applied independently. Order is preserved.
func FilterInteractions(log []Interaction, minBook, minUser int) []Interaction {
	bookCounts := make(map[string]int)
	userCounts := make(map[int]int)
	for _, in := range log {
		bookCounts[in.ISBN]++
		userCounts[in.UserID]++
	}

	out := make([]Interaction, 0, len(log))
	for _, in := range log {
		if bookCounts[in.ISBN] >= minBook && userCounts[in.UserID] >= minUser {
			out = append(out, in)
		}
	}
	return out
}
