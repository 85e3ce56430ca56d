// Folio - Book Recommendation Engine
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/folio

// Package validation provides struct validation using go-playground/validator v10.
//
// The package offers a thread-safe singleton validator with field names taken
// from the query tag, so messages refer to parameters as clients send them.
//
// # Quick Start
//
//	req := validation.RecommendRequest{N: n, MaxN: cfg.MaxN, Method: method}
//	if verr := validation.ValidateStruct(&req); verr != nil {
//	    apiErr := verr.ToAPIError()
//	    respondError(w, http.StatusBadRequest, apiErr.Code, apiErr.Message, apiErr.Details)
//	    return
//	}
//
// # Custom Validators
//
//   - bookid: 1-32 printable characters with no whitespace or slashes
package validation
