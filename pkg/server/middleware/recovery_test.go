package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
)

func TestRecovery_PassThrough(t *testing.T) {
	rec := NewRecovery(zerolog.Nop(), func() bool { return false })

	handler := rec.Middleware(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNoContent)
	}))

	req := httptest.NewRequest("GET", "/health", nil)
	res := httptest.NewRecorder()

	handler.ServeHTTP(res, req)

	assert.Equal(t, http.StatusNoContent, res.Code)
}

func TestRecovery_PanicProduction(t *testing.T) {
	rec := NewRecovery(zerolog.Nop(), func() bool { return false })

	handler := rec.Middleware(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		panic("database exploded")
	}))

	req := httptest.NewRequest("GET", "/api/v1/jobs", nil)
	res := httptest.NewRecorder()

	handler.ServeHTTP(res, req)

	assert.Equal(t, http.StatusInternalServerError, res.Code)
	body := decodeBody(t, res)
	assert.Equal(t, false, body["success"])
	assert.Equal(t, "Something went wrong!", body["message"])
	assert.NotContains(t, body, "error")
}

func TestRecovery_PanicDevelopment(t *testing.T) {
	rec := NewRecovery(zerolog.Nop(), func() bool { return true })

	handler := rec.Middleware(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		panic("database exploded")
	}))

	req := httptest.NewRequest("GET", "/api/v1/jobs", nil)
	res := httptest.NewRecorder()

	handler.ServeHTTP(res, req)

	assert.Equal(t, http.StatusInternalServerError, res.Code)
	body := decodeBody(t, res)
	assert.Equal(t, "Something went wrong!", body["message"])
	assert.Equal(t, "database exploded", body["error"])
}
