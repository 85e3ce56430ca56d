// Folio - Book Recommendation Engine
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/folio

package algorithms

import (
	"sort"

	"github.com/tomtom215/folio/internal/recommend"
)

// overFetch is how many candidates per requested result each signal
// contributes to the merge.
const overFetch = 2

// Hybrid blends a collaborative and a content model.
//
//	score = collabWeight * collab_score + contentWeight * content_score
//
// A candidate missing from one list scores 0 for that signal. The weights
// are applied as given and need not add up to 1.
type Hybrid struct {
	collab        recommend.SimilarityModel
	content       recommend.SimilarityModel
	collabWeight  float64
	contentWeight float64
}

// NewHybrid returns a hybrid over the two models.
func NewHybrid(collab, content recommend.SimilarityModel, collabWeight, contentWeight float64) *Hybrid {
	return &Hybrid{
		collab:        collab,
		content:       content,
		collabWeight:  collabWeight,
		contentWeight: contentWeight,
	}
}

// Name returns the model identifier.
func (h *Hybrid) Name() string {
	return string(recommend.MethodHybrid)
}

// Similar blends with the configured weights.
func (h *Hybrid) Similar(isbn string, n int) []recommend.Recommendation {
	return h.SimilarWeighted(isbn, n, h.collabWeight, h.contentWeight)
}

// SimilarWeighted asks both models for 2n candidates and merges them. When
// one model has nothing, the other's top n is returned as is.
func (h *Hybrid) SimilarWeighted(isbn string, n int, collabWeight, contentWeight float64) []recommend.Recommendation {
	if n <= 0 {
		return []recommend.Recommendation{}
	}

	collab := h.collab.Similar(isbn, n*overFetch)
	content := h.content.Similar(isbn, n*overFetch)
	switch {
	case len(collab) == 0:
		return head(content, n)
	case len(content) == 0:
		return head(collab, n)
	}

	type candidate struct {
		rec     recommend.Recommendation
		collab  float64
		content float64
	}
	// Union order: collaborative list, then content-only entries.
	candidates := make([]*candidate, 0, len(collab)+len(content))
	byISBN := make(map[string]*candidate, len(collab)+len(content))
	for _, r := range collab {
		if _, dup := byISBN[r.ISBN]; dup {
			continue
		}
		c := &candidate{rec: r, collab: r.Score}
		byISBN[r.ISBN] = c
		candidates = append(candidates, c)
	}
	for _, r := range content {
		if c, ok := byISBN[r.ISBN]; ok {
			c.content = r.Score
			continue
		}
		c := &candidate{rec: r, content: r.Score}
		byISBN[r.ISBN] = c
		candidates = append(candidates, c)
	}

	out := make([]recommend.Recommendation, len(candidates))
	for i, c := range candidates {
		out[i] = c.rec
		out[i].Score = collabWeight*c.collab + contentWeight*c.content
	}
	sort.SliceStable(out, func(i, j int) bool { return out[i].Score > out[j].Score })
	return head(out, n)
}

func head(recs []recommend.Recommendation, n int) []recommend.Recommendation {
	if len(recs) > n {
		recs = recs[:n]
	}
	out := make([]recommend.Recommendation, len(recs))
	copy(out, recs)
	return out
}
