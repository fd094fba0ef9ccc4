package endpoints

import (
	"github.com/gramsetu/contenthub/pkg/server"
)

// RegisterAll registers all API endpoints on the server
func RegisterAll(s *server.Server) {
	RegisterHealthEndpoint(s)
	RegisterDocsEndpoint(s)
	RegisterAuthEndpoints(s)
	RegisterContentEndpoints(s)
}
