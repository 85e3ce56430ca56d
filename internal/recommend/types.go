// Folio - Book Recommendation Engine
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/folio

package recommend

import (
	"fmt"
	"time"
)

// Book is one cleaned catalog row.
type Book struct {
	ISBN          string  `json:"isbn"`
	Title         string  `json:"title"`
	Author        string  `json:"author"`
	Publisher     string  `json:"publisher"`
	Year          int     `json:"year"`
	AverageRating float64 `json:"average_rating"`
	ImageURLSmall string  `json:"image_url_s,omitempty"`
	ImageURLMed   string  `json:"image_url_m,omitempty"`
	ImageURLLarge string  `json:"image_url_l,omitempty"`
}

// Interaction is one (user, book, rating) triple from the rating log.
// Pairs may repeat.
type Interaction struct {
	UserID int    `json:"user_id"`
	ISBN   string `json:"isbn"`
	Rating int    `json:"rating"`
}

// Recommendation is one row of a ranked result.
type Recommendation struct {
	ISBN          string  `json:"isbn"`
	Title         string  `json:"title"`
	Author        string  `json:"author"`
	Publisher     string  `json:"publisher"`
	AverageRating float64 `json:"average_rating"`
	Score         float64 `json:"score"`

	// RatingCount is only set by the popularity model.
	RatingCount int `json:"rating_count,omitempty"`
}

// NewRecommendation copies book metadata into a result row.
//
//nolint:gocritic // hugeParam: Book is copied on purpose
func NewRecommendation(book Book, score float64) Recommendation {
	return Recommendation{
		ISBN:          book.ISBN,
		Title:         book.Title,
		Author:        book.Author,
		Publisher:     book.Publisher,
		AverageRating: book.AverageRating,
		Score:         score,
	}
}

// Method selects the signal used for a query.
type Method string

const (
	MethodPopularity    Method = "popularity"
	MethodCollaborative Method = "collaborative"
	MethodContent       Method = "content"
	MethodHybrid        Method = "hybrid"
)

// Methods lists every accepted method in display order.
var Methods = []Method{MethodPopularity, MethodCollaborative, MethodContent, MethodHybrid}

// ParseMethod validates s. Matching is exact.
func ParseMethod(s string) (Method, error) {
	switch m := Method(s); m {
	case MethodPopularity, MethodCollaborative, MethodContent, MethodHybrid:
		return m, nil
	}
	return "", fmt.Errorf("%w: unknown method %q", ErrInvalidArgument, s)
}

func (m Method) String() string {
	return string(m)
}

// PopularityModel ranks books without a seed.
type PopularityModel interface {
	Popular(n, minRatings int) []Recommendation
}

// SimilarityModel returns the books most similar to a seed ISBN. An unknown
// seed yields an empty slice. The seed never appears in the output.
type SimilarityModel interface {
	Name() string
	Similar(isbn string, n int) []Recommendation
}

// Models bundles the fitted models an Engine delegates to.
type Models struct {
	Popularity    PopularityModel
	Collaborative SimilarityModel
	Content       SimilarityModel
	Hybrid        SimilarityModel
}

// BuildStats describes what was built at startup.
type BuildStats struct {
	Books                int           `json:"books"`
	Interactions         int           `json:"interactions"`
	FilteredInteractions int           `json:"filtered_interactions"`
	UnknownISBNs         int           `json:"unknown_isbns"`
	CollabItems          int           `json:"collab_items"`
	CollabUsers          int           `json:"collab_users"`
	CollabNonZero        int           `json:"collab_nonzero"`
	Sparsity             float64       `json:"sparsity_percent"`
	ContentDocuments     int           `json:"content_documents"`
	Vocabulary           int           `json:"vocabulary"`
	CollabDuration       time.Duration `json:"collab_build_ns"`
	ContentDuration      time.Duration `json:"content_build_ns"`
	BuiltAt              time.Time     `json:"built_at"`
}
