// Folio - Book Recommendation Engine
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/folio

package database

import (
	"context"
	"fmt"
)

// ingestStep is one statement of the cleaning pipeline.
type ingestStep struct {
	name  string
	query string
	args  []interface{}
}

// Raw rows keep their file position in rn so that "first occurrence" and
// log order survive the joins.
const (
	stageBooksRaw = `
		CREATE OR REPLACE TABLE books_raw AS
		SELECT row_number() OVER () AS rn, *
		FROM read_csv(?, header = true, all_varchar = true)`

	stageBooksClean = `
		CREATE OR REPLACE TABLE books_clean AS
		SELECT isbn, title, author, CAST(year AS INTEGER) AS year, publisher,
		       image_url_s, image_url_m, image_url_l
		FROM (
			SELECT rn,
			       "ISBN" AS isbn,
			       COALESCE("Book-Title", '') AS title,
			       "Book-Author" AS author,
			       TRY_CAST(TRIM("Year-Of-Publication") AS DOUBLE) AS year,
			       "Publisher" AS publisher,
			       COALESCE("Image-URL-S", '') AS image_url_s,
			       COALESCE("Image-URL-M", '') AS image_url_m,
			       "Image-URL-L" AS image_url_l
			FROM books_raw
		) b
		WHERE isbn IS NOT NULL AND isbn <> ''
		  AND author IS NOT NULL
		  AND publisher IS NOT NULL
		  AND image_url_l IS NOT NULL
		  AND year IS NOT NULL AND year >= ? AND year <= ? AND year <> 0
		QUALIFY row_number() OVER (PARTITION BY isbn ORDER BY rn) = 1`

	stageRatingsRaw = `
		CREATE OR REPLACE TABLE ratings_raw AS
		SELECT row_number() OVER () AS rn, *
		FROM read_csv(?, header = true, all_varchar = true)`

	stageRatingsClean = `
		CREATE OR REPLACE TABLE ratings_clean AS
		SELECT r.rn, r.user_id, r.isbn, r.rating
		FROM (
			SELECT rn,
			       TRY_CAST(TRIM("User-ID") AS INTEGER) AS user_id,
			       "ISBN" AS isbn,
			       TRY_CAST(TRIM("Book-Rating") AS INTEGER) AS rating
			FROM ratings_raw
		) r
		JOIN books_clean b ON b.isbn = r.isbn
		WHERE r.user_id IS NOT NULL AND r.rating IS NOT NULL`

	stageAverages = `
		CREATE OR REPLACE TABLE book_averages AS
		SELECT isbn, ROUND(AVG(rating), 1) AS average_rating, COUNT(*) AS rating_count
		FROM ratings_clean
		GROUP BY isbn`

	countStages = `
		SELECT
			(SELECT COUNT(*) FROM books_raw),
			(SELECT COUNT(*) FROM books_clean),
			(SELECT COUNT(*) FROM ratings_raw),
			(SELECT COUNT(*) FROM ratings_clean),
			(SELECT COUNT(*) FROM book_averages)`
)

// ingest rebuilds the staging tables from the CSV files.
func (l *Loader) ingest(ctx context.Context, booksPath, ratingsPath string) error {
	ctx, cancel := ensureContext(ctx)
	defer cancel()

	steps := []ingestStep{
		{name: "read books", query: stageBooksRaw, args: []interface{}{booksPath}},
		{name: "clean books", query: stageBooksClean, args: []interface{}{l.cfg.MinYear, l.cfg.MaxYear}},
		{name: "read ratings", query: stageRatingsRaw, args: []interface{}{ratingsPath}},
		{name: "join ratings", query: stageRatingsClean},
		{name: "average ratings", query: stageAverages},
	}
	for _, step := range steps {
		if _, err := l.conn.ExecContext(ctx, step.query, step.args...); err != nil {
			return fmt.Errorf("%s: %w", step.name, err)
		}
		l.logger.Debug().Str("step", step.name).Msg("ingest step complete")
	}

	err := l.conn.QueryRowContext(ctx, countStages).Scan(
		&l.counts.RawBooks,
		&l.counts.CleanBooks,
		&l.counts.RawRatings,
		&l.counts.JoinedRatings,
		&l.counts.RatedBooks,
	)
	if err != nil {
		return fmt.Errorf("count stages: %w", err)
	}

	for _, table := range []string{"books_raw", "ratings_raw"} {
		if _, err := l.conn.ExecContext(ctx, "DROP TABLE IF EXISTS "+table); err != nil {
			l.logger.Warn().Err(err).Str("table", table).Msg("Failed to drop staging table")
		}
	}
	return nil
}
