package endpoints

import (
	"encoding/json"
	"net/http"
	"strconv"

	"github.com/gramsetu/contenthub/pkg/server/store"
)

func respondWithJSON(w http.ResponseWriter, code int, payload interface{}) {
	response, _ := json.Marshal(payload)

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	_, _ = w.Write(response)
}

func respondWithError(w http.ResponseWriter, code int, message string) {
	respondWithJSON(w, code, map[string]interface{}{
		"success": false,
		"message": message,
	})
}

func respondWithData(w http.ResponseWriter, code int, data interface{}) {
	respondWithJSON(w, code, map[string]interface{}{
		"success": true,
		"data":    data,
	})
}

func respondWithValidationErrors(w http.ResponseWriter, messages []string) {
	respondWithJSON(w, http.StatusBadRequest, map[string]interface{}{
		"success": false,
		"message": "Validation error",
		"errors":  messages,
	})
}

// respondWithInternalError redacts the failure detail outside development mode.
func respondWithInternalError(w http.ResponseWriter, err error, development bool) {
	payload := map[string]interface{}{
		"success": false,
		"message": "Something went wrong!",
	}
	if development && err != nil {
		payload["error"] = err.Error()
	}
	respondWithJSON(w, http.StatusInternalServerError, payload)
}

// recordJSON flattens a record for the API response: resource attributes at the
// top level alongside the common fields.
func recordJSON(rec *store.Record) map[string]interface{} {
	out := make(map[string]interface{}, len(rec.Attributes)+6)
	for key, value := range rec.Attributes {
		out[key] = value
	}
	out["id"] = rec.ID
	out["language"] = rec.Language
	out["createdBy"] = rec.CreatedBy
	out["created_by_name"] = rec.CreatedByName
	out["createdAt"] = rec.CreatedAt
	out["updatedAt"] = rec.UpdatedAt
	return out
}

func recordsJSON(records []store.Record) []map[string]interface{} {
	out := make([]map[string]interface{}, 0, len(records))
	for i := range records {
		out = append(out, recordJSON(&records[i]))
	}
	return out
}

// parsePage reads page/limit query parameters; out-of-range values fall back
// to defaults during Normalize.
func parsePage(r *http.Request) store.PageRequest {
	page, _ := strconv.Atoi(r.URL.Query().Get("page"))
	limit, _ := strconv.Atoi(r.URL.Query().Get("limit"))
	return store.PageRequest{Page: page, Limit: limit}
}

func clientIP(r *http.Request) string {
	if forwarded := r.Header.Get("X-Forwarded-For"); forwarded != "" {
		return forwarded
	}
	return r.RemoteAddr
}
