// Folio - Book Recommendation Engine
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/folio

package api

import (
	"errors"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/tomtom215/folio/internal/logging"
	"github.com/tomtom215/folio/internal/models"
	"github.com/tomtom215/folio/internal/recommend"
	"github.com/tomtom215/folio/internal/validation"
)

// PopularBooks handles GET /api/v1/books/popular.
func (h *Handler) PopularBooks(w http.ResponseWriter, r *http.Request) {
	start := time.Now()

	n, apiErr := intQuery(r, "n", h.config.DefaultN)
	if apiErr != nil {
		respondAPIError(w, r, http.StatusBadRequest, apiErr, nil)
		return
	}
	minRatings, apiErr := intQuery(r, "min_ratings", h.config.DefaultMinRatings)
	if apiErr != nil {
		respondAPIError(w, r, http.StatusBadRequest, apiErr, nil)
		return
	}

	req := validation.PopularRequest{N: n, MinRatings: minRatings, MaxN: h.config.MaxN}
	if apiErr := validateRequest(&req); apiErr != nil {
		respondAPIError(w, r, http.StatusBadRequest, apiErr, nil)
		return
	}

	recs, err := h.engine.GetPopular(r.Context(), req.N, req.MinRatings)
	if err != nil {
		h.respondEngineError(w, r, err)
		return
	}

	respondSuccess(w, r, start, &models.RecommendationsResponse{
		Method:          string(recommend.MethodPopularity),
		Count:           len(recs),
		Recommendations: recs,
	})
}

// GetBook handles GET /api/v1/books/{isbn}.
func (h *Handler) GetBook(w http.ResponseWriter, r *http.Request) {
	start := time.Now()

	req := validation.BookRequest{ISBN: chi.URLParam(r, "isbn")}
	if apiErr := validateRequest(&req); apiErr != nil {
		respondAPIError(w, r, http.StatusBadRequest, apiErr, nil)
		return
	}

	book, ok := h.engine.Book(req.ISBN)
	if !ok {
		respondError(w, r, http.StatusNotFound, "NOT_FOUND", "Book not found", nil)
		return
	}
	respondSuccess(w, r, start, book)
}

// BookRecommendations handles GET /api/v1/books/{isbn}/recommendations.
// An ISBN outside the catalog yields an empty list and no seed.
func (h *Handler) BookRecommendations(w http.ResponseWriter, r *http.Request) {
	start := time.Now()

	n, apiErr := intQuery(r, "n", h.config.DefaultN)
	if apiErr != nil {
		respondAPIError(w, r, http.StatusBadRequest, apiErr, nil)
		return
	}

	req := validation.ISBNRequest{
		ISBN:   chi.URLParam(r, "isbn"),
		N:      n,
		Method: methodQuery(r),
		MaxN:   h.config.MaxN,
	}
	if apiErr := validateRequest(&req); apiErr != nil {
		respondAPIError(w, r, http.StatusBadRequest, apiErr, nil)
		return
	}

	recs, err := h.engine.RecommendByISBN(r.Context(), req.ISBN, req.N, recommend.Method(req.Method))
	if err != nil {
		h.respondEngineError(w, r, err)
		return
	}

	resp := &models.RecommendationsResponse{
		Method:          req.Method,
		Count:           len(recs),
		Recommendations: recs,
	}
	if seed, ok := h.engine.Book(req.ISBN); ok {
		resp.Seed = &seed
	}
	respondSuccess(w, r, start, resp)
}

// TitleRecommendations handles GET /api/v1/recommendations/title. A query
// that matches no title yields an empty list and no seed.
func (h *Handler) TitleRecommendations(w http.ResponseWriter, r *http.Request) {
	start := time.Now()

	n, apiErr := intQuery(r, "n", h.config.DefaultN)
	if apiErr != nil {
		respondAPIError(w, r, http.StatusBadRequest, apiErr, nil)
		return
	}

	req := validation.TitleRequest{
		Query:  r.URL.Query().Get("q"),
		N:      n,
		Method: methodQuery(r),
		MaxN:   h.config.MaxN,
	}
	if apiErr := validateRequest(&req); apiErr != nil {
		respondAPIError(w, r, http.StatusBadRequest, apiErr, nil)
		return
	}

	recs, err := h.engine.RecommendByTitle(r.Context(), req.Query, req.N, recommend.Method(req.Method))
	if err != nil {
		h.respondEngineError(w, r, err)
		return
	}

	resp := &models.RecommendationsResponse{
		Method:          req.Method,
		Count:           len(recs),
		Recommendations: recs,
	}
	if seed, ok := h.engine.FindTitle(req.Query); ok {
		resp.Seed = &seed
	} else {
		logging.Ctx(r.Context()).Debug().
			Str("q", sanitizeLogValue(req.Query)).
			Msg("Title query matched no book")
	}
	respondSuccess(w, r, start, resp)
}

// UserRecommendations handles GET /api/v1/users/{userID}/recommendations.
// Unknown users get the popularity list.
func (h *Handler) UserRecommendations(w http.ResponseWriter, r *http.Request) {
	start := time.Now()

	userID, apiErr := pathInt(r, "userID")
	if apiErr != nil {
		respondAPIError(w, r, http.StatusBadRequest, apiErr, nil)
		return
	}
	n, apiErr := intQuery(r, "n", h.config.DefaultN)
	if apiErr != nil {
		respondAPIError(w, r, http.StatusBadRequest, apiErr, nil)
		return
	}

	req := validation.UserRequest{
		UserID: userID,
		N:      n,
		Method: methodQuery(r),
		MaxN:   h.config.MaxN,
	}
	if apiErr := validateRequest(&req); apiErr != nil {
		respondAPIError(w, r, http.StatusBadRequest, apiErr, nil)
		return
	}

	recs, err := h.engine.RecommendForUser(r.Context(), req.UserID, req.N, recommend.Method(req.Method))
	if err != nil {
		h.respondEngineError(w, r, err)
		return
	}

	respondSuccess(w, r, start, &models.RecommendationsResponse{
		Method:          req.Method,
		UserID:          &req.UserID,
		Count:           len(recs),
		Recommendations: recs,
	})
}

func (h *Handler) respondEngineError(w http.ResponseWriter, r *http.Request, err error) {
	if errors.Is(err, recommend.ErrInvalidArgument) {
		respondError(w, r, http.StatusBadRequest, "INVALID_ARGUMENT", err.Error(), nil)
		return
	}
	respondError(w, r, http.StatusInternalServerError, "RECOMMENDATION_ERROR", "Failed to compute recommendations", err)
}
