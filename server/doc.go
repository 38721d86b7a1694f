// Package server exposes a widgetstore.Store over HTTP.
//
// Routes:
//
//	POST   /widgets             create, 201 with the stored widget
//	GET    /widgets             page (skip, take) or box (leftBound, rightBound, upperBound, lowerBound)
//	GET    /widgets/{id}        read by id
//	PATCH  /widgets/{id}        partial update
//	DELETE /widgets/{id}        delete, 204
//	GET    /healthz             liveness and widget count
//	GET    /debug/invariants    index coherence check
//	GET    /metrics             Prometheus exposition, when a handler is configured
//
// Invalid input maps to 400, unknown ids to 404. Requests under /widgets pass
// admission control first and are rejected with 429 or 503 when over limit.
package server
