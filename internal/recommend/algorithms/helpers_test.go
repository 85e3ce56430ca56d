// Folio - Book Recommendation Engine
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/folio

package algorithms

import (
	"context"
	"testing"

	"github.com/tomtom215/folio/internal/recommend"
)

func mustCatalog(t *testing.T, books []recommend.Book, log []recommend.Interaction) *recommend.Catalog {
	t.Helper()
	c, err := recommend.NewCatalog(books, log)
	if err != nil {
		t.Fatalf("NewCatalog() error = %v", err)
	}
	return c
}

// threeBookFixture: 111 and 222 share five raters with identical ratings,
// 333 is rated by a disjoint group.
func threeBookFixture(t *testing.T) *recommend.Catalog {
	t.Helper()
	books := []recommend.Book{
		{ISBN: "333", Title: "Gardening Basics", Author: "Ann Green", Publisher: "Leaf"},
		{ISBN: "111", Title: "Space Opera", Author: "Rex Nova", Publisher: "Orbit"},
		{ISBN: "222", Title: "Star Fleet", Author: "Rex Nova", Publisher: "Orbit"},
	}
	var log []recommend.Interaction
	for u := 1; u <= 5; u++ {
		log = append(log,
			recommend.Interaction{UserID: u, ISBN: "111", Rating: u + 4},
			recommend.Interaction{UserID: u, ISBN: "222", Rating: u + 4},
		)
	}
	for u := 10; u <= 14; u++ {
		log = append(log, recommend.Interaction{UserID: u, ISBN: "333", Rating: 7})
	}
	return mustCatalog(t, books, log)
}

func mustCollaborative(t *testing.T, c *recommend.Catalog, minBook, minUser int) *Collaborative {
	t.Helper()
	m, err := NewCollaborative(context.Background(), c, CollaborativeConfig{
		MinBookRatings: minBook,
		MinUserRatings: minUser,
		Matrix:         recommend.MatrixOptions{Workers: 2},
	})
	if err != nil {
		t.Fatalf("NewCollaborative() error = %v", err)
	}
	return m
}

func mustContent(t *testing.T, c *recommend.Catalog) *Content {
	t.Helper()
	m, err := NewContent(context.Background(), c, ContentConfig{
		MaxFeatures: 5000,
		Matrix:      recommend.MatrixOptions{Workers: 2},
	})
	if err != nil {
		t.Fatalf("NewContent() error = %v", err)
	}
	return m
}

func isbns(recs []recommend.Recommendation) []string {
	out := make([]string, len(recs))
	for i, r := range recs {
		out[i] = r.ISBN
	}
	return out
}

// stubModel returns canned results keyed by seed.
type stubModel struct {
	name    string
	results map[string][]recommend.Recommendation
	asked   []int
}

func (s *stubModel) Name() string { return s.name }

func (s *stubModel) Similar(isbn string, n int) []recommend.Recommendation {
	s.asked = append(s.asked, n)
	recs := s.results[isbn]
	if len(recs) > n {
		recs = recs[:n]
	}
	out := make([]recommend.Recommendation, len(recs))
	copy(out, recs)
	return out
}
