// Folio - Book Recommendation Engine
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/folio

package algorithms

import (
	"context"
	"fmt"

	"github.com/tomtom215/folio/internal/recommend"
)

// ContentConfig configures the TF-IDF model.
type ContentConfig struct {
	MaxFeatures int
	Matrix      recommend.MatrixOptions
}

// Content recommends books whose author, publisher and title read alike.
// Every catalog book takes part, rated or not.
type Content struct {
	catalog   *recommend.Catalog
	documents []string
	tfidf     *recommend.SimilarityMatrix
	weights   *TFIDF
}

// Document builds the text indexed for a book.
//
//nolint:gocritic // hugeParam: Book is read only
func Document(book recommend.Book) string {
	return book.Author + " " + book.Publisher + " " + book.Title
}

// NewContent fits TF-IDF over one document per catalog row and builds the
// book-book similarity matrix. The documents are owned by the model; the
// catalog is not touched.
//
//nolint:gocritic // hugeParam: config is read once
func NewContent(ctx context.Context, catalog *recommend.Catalog, cfg ContentConfig) (*Content, error) {
	books := catalog.Books()
	documents := make([]string, len(books))
	tokens := make([][]string, len(books))
	for i := range books {
		documents[i] = Document(books[i])
		tokens[i] = Tokenize(documents[i])
	}

	weights := FitTFIDF(tokens, cfg.MaxFeatures)
	vectors := make([]recommend.SparseVector, len(tokens))
	for i, doc := range tokens {
		vectors[i] = weights.Transform(doc)
	}

	matrix, err := recommend.NewSimilarityMatrix(ctx, catalog.Index(), vectors, weights.Size(), cfg.Matrix)
	if err != nil {
		return nil, fmt.Errorf("content similarity: %w", err)
	}
	return &Content{catalog: catalog, documents: documents, tfidf: matrix, weights: weights}, nil
}

// Name returns the model identifier.
func (c *Content) Name() string {
	return string(recommend.MethodContent)
}

// Similar returns up to n books most similar to isbn. An ISBN outside the
// catalog yields an empty result.
func (c *Content) Similar(isbn string, n int) []recommend.Recommendation {
	return similarFromMatrix(c.catalog, c.tfidf, isbn, n)
}

// Matrix returns the book-book similarity matrix.
func (c *Content) Matrix() *recommend.SimilarityMatrix {
	return c.tfidf
}

// Vocabulary returns the fitted vocabulary size.
func (c *Content) Vocabulary() int {
	return c.weights.Size()
}

// Documents returns the indexed text per catalog row.
func (c *Content) Documents() []string {
	return c.documents
}
