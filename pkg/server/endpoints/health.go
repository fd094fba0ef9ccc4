package endpoints

import (
	"net/http"
	"time"

	"github.com/gramsetu/contenthub/pkg/server"
)

// RegisterHealthEndpoint registers the liveness probe.
func RegisterHealthEndpoint(s *server.Server) {
	s.Router.HandleFunc("/health", handleHealth).Methods("GET")
}

func handleHealth(w http.ResponseWriter, r *http.Request) {
	respondWithJSON(w, http.StatusOK, map[string]interface{}{
		"status":    "OK",
		"message":   "ContentHub API is running",
		"timestamp": time.Now().UTC().Format(time.RFC3339),
	})
}
