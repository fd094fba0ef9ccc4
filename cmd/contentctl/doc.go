// Package main provides contentctl, the CLI for the ContentHub server.
//
// ContentHub is a multi-tenant content listing service: authenticated users
// create, browse, filter and search records across four collections (training
// content, marketplace listings, government schemes, job postings).
//
// # Architecture
//
// The server is organized into several packages:
//
//   - pkg/server: HTTP server and routing
//   - pkg/server/endpoints: REST API endpoint handlers
//   - pkg/server/store: storage interfaces and the gorm implementation
//   - pkg/identity: request identity and roles
//   - pkg/token: access token issuance and verification
//   - pkg/validate: payload validation
//   - pkg/audit: audit logging
//   - pkg/config: configuration management
//
// # Quick Start
//
//	# Run database migrations
//	contentctl db migrate
//
//	# Create an admin account
//	contentctl user create --name Admin --email admin@example.org --password secret --role admin
//
//	# Start the server
//	contentctl server
//
// # Environment Variables
//
//   - DATABASE_URL: PostgreSQL connection string
//   - CONTENTHUB_TOKEN_SECRET: signing secret for access tokens
//   - CONTENTHUB_CONFIG_PATH: config file directory (default /etc/contenthub)
//   - CONTENTHUB_LOG_LEVEL: log level (debug enables SQL logging)
//   - PORT: server port override
package main
