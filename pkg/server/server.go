package server

import (
	"context"
	"encoding/json"
	"net/http"
	"os"
	"sync/atomic"
	"time"

	"github.com/gorilla/handlers"
	"github.com/gorilla/mux"
	"github.com/rs/zerolog/log"

	"github.com/gramsetu/contenthub/pkg/config"
	"github.com/gramsetu/contenthub/pkg/server/middleware"
	"github.com/gramsetu/contenthub/pkg/server/store"
)

type Server struct {
	Router  *mux.Router
	Records store.RecordsStore
	Users   store.UsersStore
	Secret  []byte
	cfg     atomic.Pointer[config.Config]
	srv     *http.Server
}

func NewServer(
	records store.RecordsStore,
	users store.UsersStore,
	cfg *config.Config,
	secret []byte,
) *Server {
	router := mux.NewRouter()
	router.NotFoundHandler = http.HandlerFunc(handleUnmatched)
	router.MethodNotAllowedHandler = http.HandlerFunc(handleUnmatched)

	s := &Server{
		Router:  router,
		Records: records,
		Users:   users,
		Secret:  secret,
	}
	s.cfg.Store(cfg)

	recovery := middleware.NewRecovery(log.Logger, func() bool {
		return s.Config().IsDevelopment()
	})
	// Bind address, port and CORS origin are fixed for the process lifetime;
	// a config reload does not rebind them.
	cors := handlers.CORS(
		handlers.AllowedOrigins([]string{cfg.AllowedOrigin}),
		handlers.AllowedMethods([]string{"GET", "POST", "PUT", "DELETE", "OPTIONS"}),
		handlers.AllowedHeaders([]string{"Authorization", "Content-Type"}),
	)

	s.srv = &http.Server{
		Handler: handlers.LoggingHandler(os.Stdout, cors(recovery.Middleware(router))),
		Addr:    cfg.Addr(),
		// Good practice: enforce timeouts for servers you create!
		WriteTimeout: 15 * time.Second,
		ReadTimeout:  15 * time.Second,
	}

	return s
}

// Config returns the current configuration. Handlers read it per request so
// a reload takes effect without a restart.
func (s *Server) Config() *config.Config {
	return s.cfg.Load()
}

// SetConfig swaps in a reloaded configuration.
func (s *Server) SetConfig(cfg *config.Config) {
	s.cfg.Store(cfg)
}

func (s *Server) Start() error {
	return s.srv.ListenAndServe()
}

// Shutdown gracefully stops the server, waiting for in-flight requests.
func (s *Server) Shutdown(ctx context.Context) error {
	return s.srv.Shutdown(ctx)
}

func handleUnmatched(w http.ResponseWriter, r *http.Request) {
	body, _ := json.Marshal(map[string]interface{}{
		"success": false,
		"message": "API endpoint not found",
	})

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusNotFound)
	_, _ = w.Write(body)
}
