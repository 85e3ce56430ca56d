// Folio - Book Recommendation Engine
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/folio

package database

import (
	"context"
	"fmt"

	"github.com/tomtom215/folio/internal/recommend"
)

var _ recommend.CatalogProvider = (*Loader)(nil)

const (
	selectCatalog = `
		SELECT b.isbn, b.title, b.author, b.publisher, b.year, a.average_rating,
		       b.image_url_s, b.image_url_m, b.image_url_l
		FROM books_clean b
		JOIN book_averages a ON a.isbn = b.isbn
		ORDER BY b.isbn`

	selectInteractions = `
		SELECT user_id, isbn, rating
		FROM ratings_clean
		ORDER BY rn`
)

// LoadBooks returns the rated, cleaned catalog in ISBN order.
func (l *Loader) LoadBooks(ctx context.Context) ([]recommend.Book, error) {
	ctx, cancel := ensureContext(ctx)
	defer cancel()

	rows, err := l.conn.QueryContext(ctx, selectCatalog)
	if err != nil {
		return nil, fmt.Errorf("failed to query catalog: %w", err)
	}
	defer closeQuietly(rows)

	books := make([]recommend.Book, 0, l.counts.RatedBooks)
	for rows.Next() {
		var b recommend.Book
		if err := rows.Scan(&b.ISBN, &b.Title, &b.Author, &b.Publisher, &b.Year, &b.AverageRating,
			&b.ImageURLSmall, &b.ImageURLMed, &b.ImageURLLarge); err != nil {
			return nil, fmt.Errorf("failed to scan book: %w", err)
		}
		books = append(books, b)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating catalog: %w", err)
	}
	if len(books) == 0 {
		return nil, fmt.Errorf("%w: no rated books survived cleaning", recommend.ErrInitialization)
	}
	return books, nil
}

// LoadInteractions returns the joined rating log in file order.
func (l *Loader) LoadInteractions(ctx context.Context) ([]recommend.Interaction, error) {
	ctx, cancel := ensureContext(ctx)
	defer cancel()

	rows, err := l.conn.QueryContext(ctx, selectInteractions)
	if err != nil {
		return nil, fmt.Errorf("failed to query ratings: %w", err)
	}
	defer closeQuietly(rows)

	log := make([]recommend.Interaction, 0, l.counts.JoinedRatings)
	for rows.Next() {
		var in recommend.Interaction
		if err := rows.Scan(&in.UserID, &in.ISBN, &in.Rating); err != nil {
			return nil, fmt.Errorf("failed to scan rating: %w", err)
		}
		log = append(log, in)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating ratings: %w", err)
	}
	if len(log) == 0 {
		return nil, fmt.Errorf("%w: no ratings matched the catalog", recommend.ErrInitialization)
	}
	return log, nil
}
