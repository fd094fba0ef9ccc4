package middleware

import (
	"encoding/json"
	"fmt"
	"net/http"
	"runtime/debug"

	"github.com/rs/zerolog"
)

// Recovery is middleware that converts handler panics into a 500 response. In
// development mode the panic detail is included in the response body.
// Development is consulted per request so a config reload changes behaviour
// without a restart.
type Recovery struct {
	Logger      zerolog.Logger
	Development func() bool
}

// NewRecovery creates a new panic recovery middleware.
func NewRecovery(logger zerolog.Logger, development func() bool) *Recovery {
	return &Recovery{Logger: logger, Development: development}
}

// Middleware returns an HTTP middleware that recovers from panics.
func (rec *Recovery) Middleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		defer func() {
			p := recover()
			if p == nil {
				return
			}

			rec.Logger.Error().
				Str("method", r.Method).
				Str("path", r.URL.Path).
				Interface("panic", p).
				Bytes("stack", debug.Stack()).
				Msg("recovered from handler panic")

			payload := map[string]interface{}{
				"success": false,
				"message": "Something went wrong!",
			}
			if rec.Development() {
				payload["error"] = fmt.Sprint(p)
			}

			body, _ := json.Marshal(payload)
			w.Header().Set("Content-Type", "application/json")
			w.WriteHeader(http.StatusInternalServerError)
			_, _ = w.Write(body)
		}()

		next.ServeHTTP(w, r)
	})
}
