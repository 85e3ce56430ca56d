// Folio - Book Recommendation Engine
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/folio

package database

import (
	"context"
	"errors"
	"io"
	"os"
	"path/filepath"
	"reflect"
	"testing"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/rs/zerolog"

	"github.com/tomtom215/folio/internal/config"
	"github.com/tomtom215/folio/internal/metrics"
	"github.com/tomtom215/folio/internal/recommend"
)

const booksCSV = `ISBN,Book-Title,Book-Author,Year-Of-Publication,Publisher,Image-URL-S,Image-URL-M,Image-URL-L
0002,Second Book,Author B,1999,Pub B,s2,m2,l2
0001,First Book,Author A,2001,Pub A,s1,m1,l1
0001,First Book Duplicate,Author A,2001,Pub A,s1,m1,l1
0003,No Author,,2001,Pub C,s3,m3,l3
0004,Bad Year,Author D,unknown,Pub D,s4,m4,l4
0005,Zero Year,Author E,0,Pub E,s5,m5,l5
0006,Future,Author F,2030,Pub F,s6,m6,l6
0007,No Cover,Author G,2000,Pub G,s7,m7,
0008,Unrated,Author H,2000,Pub H,s8,m8,l8
0009,"Title, With Comma",Author I,1900,Pub I,s9,m9,l9
`

const ratingsCSV = `User-ID,ISBN,Book-Rating
10,0001,8
11,0001,5
10,0002,0
12,0003,9
13,0009,7
11,9999,4
12,0001,6
`

func writeFixture(t *testing.T, books, ratings string) *config.DataConfig {
	t.Helper()
	dir := t.TempDir()
	if err := os.WriteFile(filepath.Join(dir, "Books.csv"), []byte(books), 0o600); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(filepath.Join(dir, "Ratings.csv"), []byte(ratings), 0o600); err != nil {
		t.Fatal(err)
	}
	return &config.DataConfig{
		Dir:         dir,
		BooksFile:   "Books.csv",
		RatingsFile: "Ratings.csv",
		MinYear:     1900,
		MaxYear:     2025,
		DuckDBPath:  ":memory:",
		MaxMemory:   "256MB",
		Threads:     1,
	}
}

func openFixture(t *testing.T, books, ratings string) *Loader {
	t.Helper()
	l, err := Open(context.Background(), writeFixture(t, books, ratings), zerolog.New(io.Discard))
	if err != nil {
		t.Fatalf("Open() error = %v", err)
	}
	t.Cleanup(func() { _ = l.Close() })
	return l
}

func TestLoader_Counts(t *testing.T) {
	l := openFixture(t, booksCSV, ratingsCSV)

	want := IngestCounts{RawBooks: 10, CleanBooks: 4, RawRatings: 7, JoinedRatings: 5, RatedBooks: 3}
	if got := l.Counts(); got != want {
		t.Errorf("Counts() = %+v, want %+v", got, want)
	}
	if got := testutil.ToFloat64(metrics.IngestRows.WithLabelValues("clean_books")); got != 4 {
		t.Errorf("folio_ingest_rows{stage=clean_books} = %v, want 4", got)
	}
	if stages := want.Stages(); len(stages) != 5 || stages["joined_ratings"] != 5 {
		t.Errorf("Stages() = %v", stages)
	}
}

func TestLoader_LoadBooks(t *testing.T) {
	l := openFixture(t, booksCSV, ratingsCSV)

	books, err := l.LoadBooks(context.Background())
	if err != nil {
		t.Fatalf("LoadBooks() error = %v", err)
	}

	want := []recommend.Book{
		{ISBN: "0001", Title: "First Book", Author: "Author A", Publisher: "Pub A", Year: 2001, AverageRating: 6.3,
			ImageURLSmall: "s1", ImageURLMed: "m1", ImageURLLarge: "l1"},
		{ISBN: "0002", Title: "Second Book", Author: "Author B", Publisher: "Pub B", Year: 1999, AverageRating: 0,
			ImageURLSmall: "s2", ImageURLMed: "m2", ImageURLLarge: "l2"},
		{ISBN: "0009", Title: "Title, With Comma", Author: "Author I", Publisher: "Pub I", Year: 1900, AverageRating: 7,
			ImageURLSmall: "s9", ImageURLMed: "m9", ImageURLLarge: "l9"},
	}
	if !reflect.DeepEqual(books, want) {
		t.Errorf("LoadBooks() =\n%+v\nwant\n%+v", books, want)
	}
}

func TestLoader_LoadInteractions(t *testing.T) {
	l := openFixture(t, booksCSV, ratingsCSV)

	log, err := l.LoadInteractions(context.Background())
	if err != nil {
		t.Fatalf("LoadInteractions() error = %v", err)
	}

	want := []recommend.Interaction{
		{UserID: 10, ISBN: "0001", Rating: 8},
		{UserID: 11, ISBN: "0001", Rating: 5},
		{UserID: 10, ISBN: "0002", Rating: 0},
		{UserID: 13, ISBN: "0009", Rating: 7},
		{UserID: 12, ISBN: "0001", Rating: 6},
	}
	if !reflect.DeepEqual(log, want) {
		t.Errorf("LoadInteractions() = %+v, want %+v", log, want)
	}
}

func TestLoader_FeedsCatalog(t *testing.T) {
	l := openFixture(t, booksCSV, ratingsCSV)

	catalog, err := recommend.LoadCatalog(context.Background(), l)
	if err != nil {
		t.Fatalf("LoadCatalog() error = %v", err)
	}
	if catalog.Len() != 3 || len(catalog.Interactions()) != 5 {
		t.Errorf("catalog has %d books and %d ratings", catalog.Len(), len(catalog.Interactions()))
	}
	if _, ok := catalog.Book("0008"); ok {
		t.Error("unrated book should not be in the catalog")
	}
}

func TestLoader_YearBounds(t *testing.T) {
	cfg := writeFixture(t, booksCSV, ratingsCSV)
	cfg.MinYear = 2000
	l, err := Open(context.Background(), cfg, zerolog.New(io.Discard))
	if err != nil {
		t.Fatalf("Open() error = %v", err)
	}
	defer l.Close()

	books, err := l.LoadBooks(context.Background())
	if err != nil {
		t.Fatalf("LoadBooks() error = %v", err)
	}
	if len(books) != 1 || books[0].ISBN != "0001" {
		t.Errorf("LoadBooks() with min year 2000 = %+v", books)
	}
}

func TestLoader_NoMatchingRatings(t *testing.T) {
	l := openFixture(t, booksCSV, "User-ID,ISBN,Book-Rating\n1,9999,5\n")

	if _, err := l.LoadInteractions(context.Background()); !errors.Is(err, recommend.ErrInitialization) {
		t.Errorf("LoadInteractions() error = %v, want ErrInitialization", err)
	}
	if _, err := l.LoadBooks(context.Background()); !errors.Is(err, recommend.ErrInitialization) {
		t.Errorf("LoadBooks() error = %v, want ErrInitialization", err)
	}
	if _, err := recommend.LoadCatalog(context.Background(), l); !errors.Is(err, recommend.ErrInitialization) {
		t.Errorf("LoadCatalog() error = %v, want ErrInitialization", err)
	}
}

func TestOpen_MissingFile(t *testing.T) {
	cfg := writeFixture(t, booksCSV, ratingsCSV)
	cfg.RatingsFile = "missing.csv"

	if _, err := Open(context.Background(), cfg, zerolog.New(io.Discard)); err == nil {
		t.Fatal("Open() should fail for a missing ratings file")
	}
}

func TestDataPath(t *testing.T) {
	tests := []struct {
		dir, file, want string
	}{
		{"data", "Books.csv", filepath.Join("data", "Books.csv")},
		{"", "Books.csv", "Books.csv"},
		{"data", "/abs/Books.csv", "/abs/Books.csv"},
	}
	for _, tt := range tests {
		if got := dataPath(tt.dir, tt.file); got != tt.want {
			t.Errorf("dataPath(%q, %q) = %q, want %q", tt.dir, tt.file, got, tt.want)
		}
	}
}

func TestConnString(t *testing.T) {
	cfg := &config.DataConfig{DuckDBPath: ":memory:", MaxMemory: "1GB", Threads: 2}
	want := "?threads=2&max_memory=1GB&autoinstall_known_extensions=false&autoload_known_extensions=false"
	if got := connString(cfg); got != want {
		t.Errorf("connString() = %q, want %q", got, want)
	}
}
