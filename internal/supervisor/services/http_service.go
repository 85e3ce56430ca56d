// Folio - Book Recommendation Engine
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/folio

package services

import (
	"context"
	"errors"
	"fmt"
	"net"
	"net/http"
	"sync"
	"time"

	"github.com/rs/zerolog"
)

// HTTPServer is the part of *http.Server the service drives. The service
// owns the listener so a restart rebinds the port.
type HTTPServer interface {
	Serve(ln net.Listener) error
	Shutdown(ctx context.Context) error
}

// HTTPServerService runs the API server under the supervisor.
//
//	server := &http.Server{Handler: router.Setup()}
//	svc := services.NewHTTPServerService(server, ":8080", 10*time.Second, logger)
//	tree.Add(supervisor.APILayer, svc)
type HTTPServerService struct {
	server  HTTPServer
	addr    string
	drain   time.Duration
	logger  zerolog.Logger
	mu      sync.RWMutex
	boundTo string
}

// NewHTTPServerService binds nothing until Serve runs. A non-positive drain
// timeout becomes 10s.
//
//nolint:gocritic // logger passed by value is acceptable for zerolog
func NewHTTPServerService(server HTTPServer, addr string, drain time.Duration, logger zerolog.Logger) *HTTPServerService {
	if drain <= 0 {
		drain = 10 * time.Second
	}
	return &HTTPServerService{
		server: server,
		addr:   addr,
		drain:  drain,
		logger: logger.With().Str("service", "http-server").Logger(),
	}
}

// Addr is the address the last successful Serve bound, or "" before that.
// With port 0 it reports the port the kernel picked.
func (h *HTTPServerService) Addr() string {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return h.boundTo
}

// Serve implements suture.Service. A listen failure or an unexpected Serve
// return surfaces to the supervisor, which restarts the service.
func (h *HTTPServerService) Serve(ctx context.Context) error {
	var lc net.ListenConfig
	ln, err := lc.Listen(ctx, "tcp", h.addr)
	if err != nil {
		return fmt.Errorf("listen on %s: %w", h.addr, err)
	}

	h.mu.Lock()
	h.boundTo = ln.Addr().String()
	h.mu.Unlock()
	h.logger.Info().Str("addr", ln.Addr().String()).Msg("HTTP server listening")

	done := make(chan error, 1)
	go func() { done <- h.server.Serve(ln) }()

	select {
	case err := <-done:
		if err == nil || errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return fmt.Errorf("http server failed: %w", err)
	case <-ctx.Done():
	}

	drainCtx, cancel := context.WithTimeout(context.Background(), h.drain)
	defer cancel()
	if err := h.server.Shutdown(drainCtx); err != nil {
		return fmt.Errorf("http server shutdown: %w", err)
	}
	<-done
	h.logger.Info().Msg("HTTP server stopped")
	return ctx.Err()
}

func (h *HTTPServerService) String() string {
	return "http-server"
}
