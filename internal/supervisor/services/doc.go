// Cartographus - Media Server Analytics and Geographic Visualization
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/cartographus

/*
Package services provides suture.Service wrappers for the recommendation
engine's long-running components.

This package adapts components with their own lifecycle idiom (a blocking
ListenAndServe, a Start/Stop pair, a Run method) to suture's context-aware
Serve pattern.

# Overview

Each wrapper implements the suture.Service interface:

	type Service interface {
	    Serve(ctx context.Context) error
	}

The wrappers handle:
  - Lifecycle translation (ListenAndServe/Shutdown to Serve)
  - Graceful shutdown via context cancellation
  - Error propagation for supervisor restart decisions
  - Service identification via fmt.Stringer

# Available Services

HTTP Server (HTTPServerService):
  - Wraps *http.Server (the C7 control surface + C4/C6 HTTP glue)
  - Converts the ListenAndServe pattern to Serve
  - Configurable shutdown timeout for draining connections

The projector worker pool (internal/projector.Pool) and the dead-letter
janitor (internal/deadletter) are themselves suture.Service implementations
and are added to the tree directly; they do not need a wrapper here.

# Usage Example

	import (
	    "net/http"
	    "time"

	    "github.com/orbitlane/recoengine/internal/supervisor"
	    "github.com/orbitlane/recoengine/internal/supervisor/services"
	)

	func setupSupervisor(server *http.Server) {
	    tree, _ := supervisor.NewSupervisorTree(logger, config)
	    tree.AddAPIService(services.NewHTTPServerService(server, 30*time.Second))
	    tree.Serve(ctx)
	}

# Lifecycle Patterns

ListenAndServe Pattern:

	type Listener interface {
	    ListenAndServe() error
	    Shutdown(ctx context.Context) error
	}

	func (s *Service) Serve(ctx context.Context) error {
	    go s.server.ListenAndServe()
	    <-ctx.Done()
	    return s.server.Shutdown(shutdownCtx)
	}

# Error Handling

Return values determine supervisor behavior:

	nil         -> Service stopped cleanly, will not restart
	error       -> Service crashed, supervisor will restart
	ctx.Err()   -> Shutdown requested, normal termination

# Service Identification

All services implement fmt.Stringer for logging:

	func (s *HTTPServerService) String() string {
	    return "http-server"
	}

# Thread Safety

All service wrappers are safe for concurrent use. Multiple concurrent
Serve calls on the same instance are not supported.

# See Also

  - internal/supervisor: SupervisorTree that manages these services
  - github.com/thejerf/suture/v4: Underlying supervision library
*/
package services
