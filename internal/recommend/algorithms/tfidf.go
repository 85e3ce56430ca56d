// Folio - Book Recommendation Engine
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/folio

package algorithms

import (
	"math"
	"sort"
	"strings"
	"unicode"

	"github.com/tomtom215/folio/internal/recommend"
)

// Tokenize lower-cases text and returns every run of two or more word
// characters (letters, digits, underscore), stop words removed.
func Tokenize(text string) []string {
	lower := strings.ToLower(text)
	tokens := make([]string, 0, 8)
	start := -1
	runes := 0
	flush := func(end int) {
		if start >= 0 && runes >= 2 {
			tok := lower[start:end]
			if _, stop := englishStopWords[tok]; !stop {
				tokens = append(tokens, tok)
			}
		}
		start, runes = -1, 0
	}
	for i, r := range lower {
		if unicode.IsLetter(r) || unicode.IsDigit(r) || r == '_' {
			if start < 0 {
				start = i
			}
			runes++
			continue
		}
		flush(i)
	}
	flush(len(lower))
	return tokens
}

// TFIDF is a fitted term-document weighting.
//
//	idf(t) = ln((1 + n) / (1 + df(t))) + 1
//	w(t, d) = count(t, d) * idf(t), each row L2-normalised
type TFIDF struct {
	vocabulary map[string]int
	terms      []string
	idf        []float64
}

// FitTFIDF learns a vocabulary of at most maxFeatures terms from docs. When
// the cap bites, the terms with the highest corpus counts are kept, ties
// broken alphabetically. Column order is alphabetical.
func FitTFIDF(docs [][]string, maxFeatures int) *TFIDF {
	totals := make(map[string]int)
	df := make(map[string]int)
	for _, doc := range docs {
		seen := make(map[string]struct{}, len(doc))
		for _, tok := range doc {
			totals[tok]++
			if _, ok := seen[tok]; !ok {
				seen[tok] = struct{}{}
				df[tok]++
			}
		}
	}

	terms := make([]string, 0, len(totals))
	for t := range totals {
		terms = append(terms, t)
	}
	if maxFeatures > 0 && len(terms) > maxFeatures {
		sort.Slice(terms, func(i, j int) bool {
			if totals[terms[i]] != totals[terms[j]] {
				return totals[terms[i]] > totals[terms[j]]
			}
			return terms[i] < terms[j]
		})
		terms = terms[:maxFeatures]
	}
	sort.Strings(terms)

	n := float64(len(docs))
	t := &TFIDF{
		vocabulary: make(map[string]int, len(terms)),
		terms:      terms,
		idf:        make([]float64, len(terms)),
	}
	for i, term := range terms {
		t.vocabulary[term] = i
		t.idf[i] = math.Log((1+n)/(1+float64(df[term]))) + 1
	}
	return t
}

// Size returns the vocabulary size.
func (t *TFIDF) Size() int {
	return len(t.terms)
}

// Terms returns the vocabulary in column order.
func (t *TFIDF) Terms() []string {
	return t.terms
}

// Transform weights one tokenised document. Out-of-vocabulary tokens are
// dropped. The result is L2-normalised, or empty.
func (t *TFIDF) Transform(doc []string) recommend.SparseVector {
	counts := make(map[int]int, len(doc))
	for _, tok := range doc {
		if col, ok := t.vocabulary[tok]; ok {
			counts[col]++
		}
	}

	cols := make([]int, 0, len(counts))
	for col := range counts {
		cols = append(cols, col)
	}
	sort.Ints(cols)

	v := recommend.SparseVector{Indices: cols, Values: make([]float64, len(cols))}
	for k, col := range cols {
		v.Values[k] = float64(counts[col]) * t.idf[col]
	}
	return v.Normalized()
}
