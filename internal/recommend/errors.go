// Folio - Book Recommendation Engine
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/folio

package recommend

import "errors"

var (
	// ErrInvalidArgument is returned for an unknown method or a negative n.
	ErrInvalidArgument = errors.New("invalid argument")

	// ErrInitialization is returned when the catalog or rating log cannot
	// back a usable engine.
	ErrInitialization = errors.New("initialization failure")
)
