// Folio - Book Recommendation Engine
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/folio

package algorithms

import (
	"context"
	"math"
	"testing"

	"github.com/tomtom215/folio/internal/recommend"
)

func TestCollaborative_SharedRatersRankFirst(t *testing.T) {
	m := mustCollaborative(t, threeBookFixture(t), 1, 1)

	got := m.Similar("111", 1)
	if len(got) != 1 {
		t.Fatalf("Similar() returned %d rows, want 1", len(got))
	}
	if got[0].ISBN != "222" {
		t.Errorf("Similar(111, 1) = %s, want 222", got[0].ISBN)
	}
	if math.Abs(got[0].Score-1.0) > 1e-9 {
		t.Errorf("score = %v, want ~1.0", got[0].Score)
	}
	if got[0].Title != "Star Fleet" || got[0].Author != "Rex Nova" {
		t.Errorf("metadata not attached: %+v", got[0])
	}
}

func TestCollaborative_NeverReturnsSeed(t *testing.T) {
	m := mustCollaborative(t, threeBookFixture(t), 1, 1)

	for _, seed := range []string{"111", "222", "333"} {
		got := m.Similar(seed, 10)
		if len(got) != 2 {
			t.Errorf("Similar(%s, 10) returned %d rows, want 2", seed, len(got))
		}
		for _, r := range got {
			if r.ISBN == seed {
				t.Errorf("Similar(%s) contains the seed", seed)
			}
		}
	}
}

func TestCollaborative_TiesKeepColumnOrder(t *testing.T) {
	m := mustCollaborative(t, threeBookFixture(t), 1, 1)

	// 333 shares no raters with either book, so both score 0.
	got := isbns(m.Similar("333", 2))
	if len(got) != 2 || got[0] != "111" || got[1] != "222" {
		t.Errorf("Similar(333, 2) = %v, want [111 222]", got)
	}
}

func TestCollaborative_UnknownSeed(t *testing.T) {
	m := mustCollaborative(t, threeBookFixture(t), 1, 1)

	if got := m.Similar("999", 5); got == nil || len(got) != 0 {
		t.Errorf("Similar(unknown) = %v, want empty", got)
	}
}

func TestCollaborative_Thresholds(t *testing.T) {
	// 333 has five ratings; raise the book threshold above that.
	books := []recommend.Book{{ISBN: "111"}, {ISBN: "222"}, {ISBN: "333"}}
	var log []recommend.Interaction
	for u := 1; u <= 6; u++ {
		log = append(log,
			recommend.Interaction{UserID: u, ISBN: "111", Rating: 8},
			recommend.Interaction{UserID: u, ISBN: "222", Rating: 6},
		)
	}
	for u := 1; u <= 5; u++ {
		log = append(log, recommend.Interaction{UserID: u, ISBN: "333", Rating: 9})
	}
	// User 99 rated a single book and is dropped by the user threshold.
	log = append(log, recommend.Interaction{UserID: 99, ISBN: "111", Rating: 10})

	m := mustCollaborative(t, mustCatalog(t, books, log), 6, 2)

	items, users := m.Shape()
	if items != 2 || users != 6 {
		t.Errorf("Shape() = %d x %d, want 2 x 6", items, users)
	}
	if got := m.Similar("333", 5); len(got) != 0 {
		t.Errorf("filtered-out seed returned %v", isbns(got))
	}
	if got := isbns(m.Similar("111", 5)); len(got) != 1 || got[0] != "222" {
		t.Errorf("Similar(111) = %v, want [222]", got)
	}
}

func TestCollaborative_DuplicatePairsAveraged(t *testing.T) {
	books := []recommend.Book{{ISBN: "A"}, {ISBN: "B"}}
	log := []recommend.Interaction{
		{UserID: 1, ISBN: "A", Rating: 2},
		{UserID: 1, ISBN: "A", Rating: 6},
		{UserID: 2, ISBN: "A", Rating: 4},
		{UserID: 1, ISBN: "B", Rating: 4},
		{UserID: 2, ISBN: "B", Rating: 4},
	}
	m := mustCollaborative(t, mustCatalog(t, books, log), 1, 1)

	// A becomes (4, 4) after averaging, identical in direction to B.
	got := m.Similar("A", 1)
	if len(got) != 1 || math.Abs(got[0].Score-1) > 1e-9 {
		t.Errorf("Similar(A) = %+v, want B at ~1.0", got)
	}
}

func TestCollaborative_MatrixProperties(t *testing.T) {
	books := make([]recommend.Book, 0, 12)
	var log []recommend.Interaction
	for b := 0; b < 12; b++ {
		isbn := string(rune('a' + b))
		books = append(books, recommend.Book{ISBN: isbn})
		for u := 0; u < 20; u++ {
			if (u*7+b*3)%5 < 3 {
				log = append(log, recommend.Interaction{UserID: u, ISBN: isbn, Rating: (u+b)%10 + 1})
			}
		}
	}
	// A book rated only with zeros has a zero vector.
	books = append(books, recommend.Book{ISBN: "zero"})
	log = append(log, recommend.Interaction{UserID: 1, ISBN: "zero", Rating: 0})

	m := mustCollaborative(t, mustCatalog(t, books, log), 1, 1)
	sim := m.Matrix()

	for i := 0; i < sim.Len(); i++ {
		diag := sim.At(i, i)
		if sim.Index().ISBN(i) == "zero" {
			if diag != 0 {
				t.Errorf("zero-norm diagonal = %v, want 0", diag)
			}
		} else if diag != 1 {
			t.Errorf("diagonal %d = %v, want exactly 1", i, diag)
		}
		for j := 0; j < sim.Len(); j++ {
			if sim.At(i, j) != sim.At(j, i) {
				t.Errorf("asymmetric at (%d,%d): %v vs %v", i, j, sim.At(i, j), sim.At(j, i))
			}
			if v := sim.At(i, j); v < -1-1e-12 || v > 1+1e-12 {
				t.Errorf("sim(%d,%d) = %v out of range", i, j, v)
			}
		}
	}
	if s := m.Sparsity(); s <= 0 || s >= 100 {
		t.Errorf("Sparsity() = %v, want within (0, 100)", s)
	}
}

func TestCollaborative_LazyMatchesDense(t *testing.T) {
	c := threeBookFixture(t)
	dense := mustCollaborative(t, c, 1, 1)
	lazy, err := NewCollaborative(context.Background(), c, CollaborativeConfig{
		MinBookRatings: 1,
		MinUserRatings: 1,
		Matrix:         recommend.MatrixOptions{Workers: 1, MaxDenseItems: 1},
	})
	if err != nil {
		t.Fatalf("NewCollaborative() error = %v", err)
	}
	if lazy.Matrix().Dense() {
		t.Fatal("expected on-demand matrix")
	}
	for _, seed := range []string{"111", "222", "333"} {
		a, b := dense.Similar(seed, 2), lazy.Similar(seed, 2)
		for i := range a {
			if a[i].ISBN != b[i].ISBN || math.Abs(a[i].Score-b[i].Score) > 1e-12 {
				t.Errorf("seed %s row %d: dense %+v, lazy %+v", seed, i, a[i], b[i])
			}
		}
	}
}

func TestCollaborative_CancelledBuild(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := NewCollaborative(ctx, threeBookFixture(t), CollaborativeConfig{MinBookRatings: 1, MinUserRatings: 1})
	if err == nil {
		t.Fatal("expected error from cancelled build")
	}
}
