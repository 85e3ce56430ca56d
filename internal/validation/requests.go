// Folio - Book Recommendation Engine
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/folio

package validation

// MethodTag is the oneof list accepted for the method parameter.
const MethodTag = "popularity collaborative content hybrid"

// limited is implemented by requests whose n is capped by configuration.
type limited interface {
	limits() (n, maxN int)
}

// PopularRequest holds GET /api/v1/books/popular parameters.
type PopularRequest struct {
	N          int `query:"n" validate:"min=1"`
	MinRatings int `query:"min_ratings" validate:"min=0"`
	MaxN       int `query:"-" validate:"-"`
}

func (r PopularRequest) limits() (int, int) { return r.N, r.MaxN }

// BookRequest holds GET /api/v1/books/{isbn} parameters.
type BookRequest struct {
	ISBN string `query:"isbn" validate:"bookid"`
}

// ISBNRequest holds GET /api/v1/books/{isbn}/recommendations parameters.
type ISBNRequest struct {
	ISBN   string `query:"isbn" validate:"bookid"`
	N      int    `query:"n" validate:"min=1"`
	Method string `query:"method" validate:"oneof=popularity collaborative content hybrid"`
	MaxN   int    `query:"-" validate:"-"`
}

func (r ISBNRequest) limits() (int, int) { return r.N, r.MaxN }

// TitleRequest holds GET /api/v1/recommendations/title parameters.
type TitleRequest struct {
	Query  string `query:"q" validate:"required,max=200"`
	N      int    `query:"n" validate:"min=1"`
	Method string `query:"method" validate:"oneof=popularity collaborative content hybrid"`
	MaxN   int    `query:"-" validate:"-"`
}

func (r TitleRequest) limits() (int, int) { return r.N, r.MaxN }

// UserRequest holds GET /api/v1/users/{userID}/recommendations parameters.
type UserRequest struct {
	UserID int    `query:"user_id" validate:"min=0"`
	N      int    `query:"n" validate:"min=1"`
	Method string `query:"method" validate:"oneof=popularity collaborative content hybrid"`
	MaxN   int    `query:"-" validate:"-"`
}

func (r UserRequest) limits() (int, int) { return r.N, r.MaxN }
