package endpoints

import (
	"bytes"
	"encoding/json"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/gramsetu/contenthub/pkg/config"
	"github.com/gramsetu/contenthub/pkg/identity"
	"github.com/gramsetu/contenthub/pkg/server"
	"github.com/gramsetu/contenthub/pkg/server/store"
	"github.com/gramsetu/contenthub/pkg/token"
)

var testSecret = []byte("endpoints-test-secret")

func newTestConfig() *config.Config {
	return &config.Config{
		BindAddress:     "127.0.0.1",
		Port:            0,
		Environment:     "production",
		AllowedOrigin:   "*",
		APIListLimitMax: 100,
		TokenTTLMinutes: 60,
	}
}

func newTestServer(records store.RecordsStore, users store.UsersStore) *server.Server {
	return server.NewServer(records, users, newTestConfig(), testSecret)
}

func bearerToken(t *testing.T, userID, name string, role identity.Role) string {
	t.Helper()
	tokenString, err := token.Issue(testSecret, store.User{
		ID:   userID,
		Name: name,
		Role: role,
	}, time.Minute)
	require.NoError(t, err)
	return "Bearer " + tokenString
}

func doJSONRequest(t *testing.T, s *server.Server, method, path, authHeader string, payload interface{}) *httptest.ResponseRecorder {
	t.Helper()

	var body *bytes.Buffer
	if payload != nil {
		raw, err := json.Marshal(payload)
		require.NoError(t, err)
		body = bytes.NewBuffer(raw)
	} else {
		body = &bytes.Buffer{}
	}

	req := httptest.NewRequest(method, path, body)
	if authHeader != "" {
		req.Header.Set("Authorization", authHeader)
	}
	if payload != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	rec := httptest.NewRecorder()
	s.Router.ServeHTTP(rec, req)
	return rec
}

func parseBody(t *testing.T, rec *httptest.ResponseRecorder) map[string]interface{} {
	t.Helper()
	var body map[string]interface{}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body), "body: %s", rec.Body.String())
	return body
}

func testRecord(kind store.Kind, id, ownerID string, attributes map[string]interface{}) *store.Record {
	now := time.Date(2025, 3, 14, 12, 0, 0, 0, time.UTC)
	return &store.Record{
		ID:            id,
		Kind:          kind,
		Language:      "en",
		Attributes:    attributes,
		CreatedBy:     ownerID,
		CreatedByName: "Asha",
		CreatedAt:     now,
		UpdatedAt:     now,
	}
}

func requireStatus(t *testing.T, rec *httptest.ResponseRecorder, want int) {
	t.Helper()
	require.Equal(t, want, rec.Code, "body: %s", rec.Body.String())
}
