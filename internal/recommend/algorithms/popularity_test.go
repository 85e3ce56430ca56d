// Folio - Book Recommendation Engine
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/folio

package algorithms

import (
	"reflect"
	"testing"

	"github.com/tomtom215/folio/internal/recommend"
)

func ratings(isbn string, count int) []recommend.Interaction {
	out := make([]recommend.Interaction, count)
	for i := range out {
		out[i] = recommend.Interaction{UserID: i + 1, ISBN: isbn, Rating: 8}
	}
	return out
}

func TestPopularity_RatingBeatsCount(t *testing.T) {
	books := []recommend.Book{
		{ISBN: "A", Title: "Nine", AverageRating: 9.0},
		{ISBN: "B", Title: "Eight", AverageRating: 8.0},
	}
	log := append(ratings("A", 20), ratings("B", 50)...)
	p := NewPopularity(mustCatalog(t, books, log))

	got := p.Popular(2, 1)
	if !reflect.DeepEqual(isbns(got), []string{"A", "B"}) {
		t.Fatalf("Popular() = %v, want [A B]", isbns(got))
	}
	if got[0].RatingCount != 20 || got[1].RatingCount != 50 {
		t.Errorf("rating counts = %d/%d, want 20/50", got[0].RatingCount, got[1].RatingCount)
	}
	if got[0].Score != 9.0 {
		t.Errorf("score = %v, want average rating 9.0", got[0].Score)
	}
}

func TestPopularity_Ordering(t *testing.T) {
	books := []recommend.Book{
		{ISBN: "01", AverageRating: 7.5},
		{ISBN: "02", AverageRating: 8.0},
		{ISBN: "03", AverageRating: 8.0},
		{ISBN: "04", AverageRating: 8.0},
		{ISBN: "05", AverageRating: 6.0},
	}
	var log []recommend.Interaction
	log = append(log, ratings("01", 5)...)
	log = append(log, ratings("02", 3)...)
	log = append(log, ratings("03", 9)...)
	log = append(log, ratings("04", 3)...)
	log = append(log, ratings("05", 40)...)
	p := NewPopularity(mustCatalog(t, books, log))

	tests := []struct {
		name       string
		n          int
		minRatings int
		want       []string
	}{
		{"all", 10, 0, []string{"03", "02", "04", "01", "05"}},
		{"truncated", 2, 0, []string{"03", "02"}},
		{"threshold", 10, 5, []string{"03", "01", "05"}},
		{"nothing qualifies", 10, 100, []string{}},
		{"zero n", 0, 0, []string{}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := p.Popular(tt.n, tt.minRatings)
			if got == nil {
				t.Fatal("Popular() returned nil")
			}
			if !reflect.DeepEqual(isbns(got), tt.want) {
				t.Errorf("Popular(%d, %d) = %v, want %v", tt.n, tt.minRatings, isbns(got), tt.want)
			}
			for i := 1; i < len(got); i++ {
				prev, cur := got[i-1], got[i]
				if cur.AverageRating > prev.AverageRating ||
					(cur.AverageRating == prev.AverageRating && cur.RatingCount > prev.RatingCount) {
					t.Errorf("row %d out of order: %+v after %+v", i, cur, prev)
				}
			}
		})
	}
}

func TestPopularity_IgnoresUnknownISBNs(t *testing.T) {
	books := []recommend.Book{{ISBN: "A", AverageRating: 5}}
	log := append(ratings("A", 2), ratings("ghost", 10)...)
	p := NewPopularity(mustCatalog(t, books, log))

	got := p.Popular(5, 0)
	if len(got) != 1 || got[0].RatingCount != 2 {
		t.Errorf("Popular() = %+v, want only A with 2 ratings", got)
	}
}
