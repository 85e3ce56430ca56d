// Folio - Book Recommendation Engine
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/folio

/*
Package supervisor runs Folio's long-lived services under a suture v4 tree.

The models are built before the tree starts, so nothing here touches the
catalog or the similarity matrices. The tree only keeps the process's
goroutines alive and shuts them down in order:

	folio (root)
	├── engine-layer   cache maintenance
	└── api-layer      HTTP server

A crash in the engine layer restarts only that layer; the HTTP server keeps
serving. Supervisor events are logged through sutureslog, which takes an
slog.Logger; pass logging.NewSlogLogger() so they land in zerolog.

Usage:

	tree, err := supervisor.NewSupervisorTree(logging.NewSlogLogger(), supervisor.DefaultTreeConfig())
	if err != nil {
	    return err
	}
	tree.Add(supervisor.EngineLayer, services.NewCacheMaintenanceService(engine, time.Minute, logger))
	tree.Add(supervisor.APILayer, services.NewHTTPServerService(server, addr, 10*time.Second, logger))
	return tree.Serve(ctx)
*/
package supervisor
