// Package server provides the HTTP server for the ContentHub API.
//
// This package implements the core HTTP server that handles all ContentHub
// REST API requests. It uses gorilla/mux for routing and gorilla/handlers for
// request logging and CORS, with a recovery middleware converting panics into
// JSON 500 responses.
//
// # Server Setup
//
//	srv := server.NewServer(records, users, cfg, tokenSecret)
//	if err := srv.Start(); err != nil {
//	    log.Fatal(err)
//	}
//
// # Components
//
// The Server struct holds:
//
//   - Records: content record storage
//   - Users: user account storage
//   - Config: runtime configuration
//   - Secret: signing secret for access tokens
//   - Router: HTTP request router
//
// # Endpoints
//
// API endpoints are registered via the endpoints subpackage:
//
//	endpoints.RegisterAll(srv)
//
// This registers the auth endpoints, the four content collections under
// /api/v1 (training, marketplace, schemes, jobs), /health and /docs.
package server
