// Folio - Book Recommendation Engine
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/folio

package algorithms

import (
	"math"
	"reflect"
	"testing"

	"github.com/tomtom215/folio/internal/recommend"
)

func rec(isbn string, score float64) recommend.Recommendation {
	return recommend.Recommendation{ISBN: isbn, Title: "t-" + isbn, Score: score}
}

func TestHybrid_WeightedSum(t *testing.T) {
	collab := &stubModel{name: "collaborative", results: map[string][]recommend.Recommendation{
		"seed": {rec("a", 0.9), rec("b", 0.5), rec("c", 0.1)},
	}}
	content := &stubModel{name: "content", results: map[string][]recommend.Recommendation{
		"seed": {rec("b", 0.8), rec("d", 0.6), rec("a", 0.2)},
	}}
	h := NewHybrid(collab, content, 0.7, 0.3)

	got := h.Similar("seed", 3)

	want := map[string]float64{
		"a": 0.7*0.9 + 0.3*0.2,
		"b": 0.7*0.5 + 0.3*0.8,
		"c": 0.7 * 0.1,
		"d": 0.3 * 0.6,
	}
	if len(got) != 3 {
		t.Fatalf("Similar() returned %d rows, want 3", len(got))
	}
	if !reflect.DeepEqual(isbns(got), []string{"a", "b", "d"}) {
		t.Errorf("order = %v, want [a b d]", isbns(got))
	}
	for _, r := range got {
		if math.Abs(r.Score-want[r.ISBN]) > 1e-12 {
			t.Errorf("score(%s) = %v, want %v", r.ISBN, r.Score, want[r.ISBN])
		}
	}
	if !reflect.DeepEqual(collab.asked, []int{6}) || !reflect.DeepEqual(content.asked, []int{6}) {
		t.Errorf("over-fetch sizes = %v/%v, want [6]/[6]", collab.asked, content.asked)
	}
}

func TestHybrid_TiesKeepUnionOrder(t *testing.T) {
	collab := &stubModel{results: map[string][]recommend.Recommendation{
		"s": {rec("x", 0.5), rec("y", 0.5)},
	}}
	content := &stubModel{results: map[string][]recommend.Recommendation{
		"s": {rec("z", 1.0), rec("y", 0)},
	}}
	h := NewHybrid(collab, content, 1, 0.5)

	if got := isbns(h.Similar("s", 3)); !reflect.DeepEqual(got, []string{"x", "y", "z"}) {
		t.Errorf("Similar() = %v, want [x y z]", got)
	}
}

func TestHybrid_DegenerateFallback(t *testing.T) {
	content := &stubModel{results: map[string][]recommend.Recommendation{
		"s": {rec("a", 0.9), rec("b", 0.4), rec("c", 0.3)},
	}}
	empty := &stubModel{results: map[string][]recommend.Recommendation{}}

	tests := []struct {
		name   string
		hybrid *Hybrid
		want   []recommend.Recommendation
	}{
		{"no collaborative", NewHybrid(empty, content, 0.5, 0.5), []recommend.Recommendation{rec("a", 0.9), rec("b", 0.4)}},
		{"no content", NewHybrid(content, empty, 0.5, 0.5), []recommend.Recommendation{rec("a", 0.9), rec("b", 0.4)}},
		{"neither", NewHybrid(empty, empty, 0.5, 0.5), []recommend.Recommendation{}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := tt.hybrid.Similar("s", 2)
			if !reflect.DeepEqual(got, tt.want) {
				t.Errorf("Similar() = %+v, want %+v", got, tt.want)
			}
		})
	}
}

func TestHybrid_RealModels(t *testing.T) {
	c := threeBookFixture(t)
	collab := mustCollaborative(t, c, 1, 1)
	content := mustContent(t, c)
	h := NewHybrid(collab, content, 0.5, 0.5)

	got := h.Similar("111", 2)
	if len(got) != 2 || got[0].ISBN != "222" {
		t.Fatalf("Similar(111, 2) = %v, want 222 first", isbns(got))
	}
	cs := collab.Similar("111", 4)
	ts := content.Similar("111", 4)
	want := 0.5*cs[0].Score + 0.5*ts[0].Score
	if math.Abs(got[0].Score-want) > 1e-12 {
		t.Errorf("hybrid score = %v, want %v", got[0].Score, want)
	}
	for _, r := range got {
		if r.ISBN == "111" {
			t.Error("hybrid returned the seed")
		}
	}
}

func TestHybrid_CollabFilteredOutUsesContent(t *testing.T) {
	c := threeBookFixture(t)
	// Threshold above every book's count empties the collaborative index.
	collab := mustCollaborative(t, c, 100, 1)
	content := mustContent(t, c)
	h := NewHybrid(collab, content, 0.5, 0.5)

	want := content.Similar("111", 2)
	if got := h.Similar("111", 2); !reflect.DeepEqual(got, want) {
		t.Errorf("Similar() = %+v, want content verbatim %+v", got, want)
	}
}

func TestHybrid_ZeroN(t *testing.T) {
	h := NewHybrid(&stubModel{}, &stubModel{}, 1, 1)
	if got := h.Similar("s", 0); got == nil || len(got) != 0 {
		t.Errorf("Similar(s, 0) = %v, want empty", got)
	}
}
