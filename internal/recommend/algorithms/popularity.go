// Folio - Book Recommendation Engine
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/folio

package algorithms

import (
	"sort"

	"github.com/tomtom215/folio/internal/recommend"
)

// Popularity ranks books by average rating, then by rating count. Equal
// pairs keep catalog order. The score of each row is its average rating.
type Popularity struct {
	ranked []popularBook
}

type popularBook struct {
	book  recommend.Book
	count int
}

// NewPopularity counts ratings per ISBN over the full log and pre-sorts the
// catalog. Ratings for ISBNs outside the catalog are ignored.
func NewPopularity(catalog *recommend.Catalog) *Popularity {
	counts := make(map[string]int)
	for _, in := range catalog.Interactions() {
		counts[in.ISBN]++
	}

	books := catalog.Books()
	ranked := make([]popularBook, len(books))
	for i := range books {
		ranked[i] = popularBook{book: books[i], count: counts[books[i].ISBN]}
	}
	sort.SliceStable(ranked, func(i, j int) bool {
		a, b := ranked[i], ranked[j]
		if a.book.AverageRating != b.book.AverageRating {
			return a.book.AverageRating > b.book.AverageRating
		}
		return a.count > b.count
	})
	return &Popularity{ranked: ranked}
}

// Popular returns the first n ranked books with at least minRatings ratings.
func (p *Popularity) Popular(n, minRatings int) []recommend.Recommendation {
	if n <= 0 {
		return []recommend.Recommendation{}
	}
	out := make([]recommend.Recommendation, 0, min(n, len(p.ranked)))
	for i := range p.ranked {
		if len(out) == n {
			break
		}
		pb := &p.ranked[i]
		if pb.count < minRatings {
			continue
		}
		rec := recommend.NewRecommendation(pb.book, pb.book.AverageRating)
		rec.RatingCount = pb.count
		out = append(out, rec)
	}
	return out
}
