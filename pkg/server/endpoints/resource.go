package endpoints

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/gorilla/mux"

	"github.com/gramsetu/contenthub/pkg/audit"
	"github.com/gramsetu/contenthub/pkg/identity"
	"github.com/gramsetu/contenthub/pkg/server"
	"github.com/gramsetu/contenthub/pkg/server/middleware"
	"github.com/gramsetu/contenthub/pkg/server/store"
	"github.com/gramsetu/contenthub/pkg/validate"
)

// QueryFilter maps a recognized query parameter to an attribute predicate.
// Unrecognized parameters are ignored.
type QueryFilter struct {
	Param string
	Exact bool
}

// PathFilter pins one URL path segment to an attribute predicate, e.g.
// GET /type/{type} for training content.
type PathFilter struct {
	Segment string
	Exact   bool
}

// Resource describes one content collection. The generic handler set below is
// parameterized by these descriptors instead of repeating a router per kind.
type Resource struct {
	Kind store.Kind

	// Name is the route prefix under /api/v1 and the key wrapping the record
	// list in responses.
	Name string

	// Display and Singular feed the response messages ("Job not found",
	// "You can only update your own job").
	Display  string
	Singular string

	// Filters are the recognized list query parameters besides language,
	// page and limit.
	Filters []QueryFilter

	// PathFilters add read-only pinned-filter routes.
	PathFilters []PathFilter

	// SearchFields, when non-empty, enables GET /search/{query} OR-matched
	// across these attribute fields.
	SearchFields []string

	NewPayload func() Payload

	// CreateRoles restricts creation to the listed roles. Empty means any
	// authenticated user.
	CreateRoles []identity.Role

	// ElevatedMutation requires an elevated role for update/delete instead
	// of the ownership gate.
	ElevatedMutation bool
}

func (res Resource) canCreate(role identity.Role) bool {
	if len(res.CreateRoles) == 0 {
		return true
	}
	for _, allowed := range res.CreateRoles {
		if role == allowed {
			return true
		}
	}
	return false
}

type resourceHandler struct {
	resource Resource
	records  store.RecordsStore
	server   *server.Server
}

// limitMax and dev go through the server's live config so a reload applies
// to in-flight traffic.
func (h *resourceHandler) limitMax() int {
	return h.server.Config().APIListLimitMax
}

func (h *resourceHandler) dev() bool {
	return h.server.Config().IsDevelopment()
}

// RegisterResourceEndpoints registers the CRUD and listing routes for one
// resource descriptor. Pinned-filter and search routes are registered before
// the {id} route so they take precedence.
func RegisterResourceEndpoints(s *server.Server, res Resource) {
	h := &resourceHandler{
		resource: res,
		records:  s.Records,
		server:   s,
	}

	auth := middleware.NewAuthenticator(s.Secret)

	r := s.Router.PathPrefix("/api/v1/" + res.Name).Subrouter()

	r.HandleFunc("", h.list).Methods("GET")
	r.HandleFunc("/", h.list).Methods("GET")
	for _, pf := range res.PathFilters {
		r.HandleFunc("/"+pf.Segment+"/{"+pf.Segment+"}", h.pinnedList(pf)).Methods("GET")
	}
	if len(res.SearchFields) > 0 {
		r.HandleFunc("/search/{query}", h.search).Methods("GET")
	}
	r.HandleFunc("/{id}", h.get).Methods("GET")

	r.Handle("", auth.Middleware(http.HandlerFunc(h.create))).Methods("POST")
	r.Handle("/", auth.Middleware(http.HandlerFunc(h.create))).Methods("POST")
	r.Handle("/{id}", auth.Middleware(http.HandlerFunc(h.update))).Methods("PUT")
	r.Handle("/{id}", auth.Middleware(http.HandlerFunc(h.delete))).Methods("DELETE")
}

// filterFromQuery combines the recognized query parameters with AND
// semantics; absent parameters impose no constraint.
func (h *resourceHandler) filterFromQuery(r *http.Request) store.Filter {
	query := r.URL.Query()

	filter := store.Filter{
		Kind:     h.resource.Kind,
		Language: query.Get("language"),
		Equals:   map[string]string{},
		Contains: map[string]string{},
	}
	for _, qf := range h.resource.Filters {
		value := query.Get(qf.Param)
		if value == "" {
			continue
		}
		if qf.Exact {
			filter.Equals[qf.Param] = value
		} else {
			filter.Contains[qf.Param] = value
		}
	}
	return filter
}

func (h *resourceHandler) respondPage(w http.ResponseWriter, r *http.Request, filter store.Filter) {
	page := parsePage(r).Normalize(h.limitMax())

	records, total, err := h.records.ListRecords(filter, page)
	if err != nil {
		respondWithInternalError(w, err, h.dev())
		return
	}

	respondWithData(w, http.StatusOK, map[string]interface{}{
		h.resource.Name: recordsJSON(records),
		"pagination":    store.NewPageInfo(page, total),
	})
}

func (h *resourceHandler) list(w http.ResponseWriter, r *http.Request) {
	h.respondPage(w, r, h.filterFromQuery(r))
}

func (h *resourceHandler) pinnedList(pf PathFilter) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		filter := store.Filter{
			Kind:     h.resource.Kind,
			Language: r.URL.Query().Get("language"),
			Equals:   map[string]string{},
			Contains: map[string]string{},
		}
		value := mux.Vars(r)[pf.Segment]
		if pf.Exact {
			filter.Equals[pf.Segment] = value
		} else {
			filter.Contains[pf.Segment] = value
		}
		h.respondPage(w, r, filter)
	}
}

func (h *resourceHandler) search(w http.ResponseWriter, r *http.Request) {
	filter := store.Filter{
		Kind:     h.resource.Kind,
		Language: r.URL.Query().Get("language"),
		Search: &store.SearchFilter{
			Term:   mux.Vars(r)["query"],
			Fields: h.resource.SearchFields,
		},
	}
	h.respondPage(w, r, filter)
}

func (h *resourceHandler) get(w http.ResponseWriter, r *http.Request) {
	record, err := h.records.FetchRecord(h.resource.Kind, mux.Vars(r)["id"])
	if errors.Is(err, store.ErrRecordNotFound) {
		respondWithError(w, http.StatusNotFound, h.resource.Display+" not found")
		return
	}
	if err != nil {
		respondWithInternalError(w, err, h.dev())
		return
	}

	respondWithData(w, http.StatusOK, recordJSON(record))
}

// decodePayload parses and validates the request body. A false return means
// the response has already been written.
func (h *resourceHandler) decodePayload(w http.ResponseWriter, r *http.Request) (Payload, bool) {
	payload := h.resource.NewPayload()
	if err := json.NewDecoder(r.Body).Decode(payload); err != nil {
		respondWithError(w, http.StatusBadRequest, "Invalid request body")
		return nil, false
	}
	if messages := validate.Struct(payload); len(messages) > 0 {
		respondWithValidationErrors(w, messages)
		return nil, false
	}
	return payload, true
}

func (h *resourceHandler) create(w http.ResponseWriter, r *http.Request) {
	caller, ok := identity.Get(r.Context())
	if !ok {
		respondWithError(w, http.StatusUnauthorized, "Access denied. No token provided")
		return
	}

	if !h.resource.canCreate(caller.Role) {
		respondWithError(w, http.StatusForbidden, "You do not have permission to create "+h.resource.Name)
		return
	}

	payload, ok := h.decodePayload(w, r)
	if !ok {
		return
	}

	record, err := h.records.CreateRecord(h.resource.Kind, caller.UserID, payload.Document())
	if err != nil {
		audit.Log(audit.RecordEvent{
			UserID:       caller.UserID,
			ClientIP:     clientIP(r),
			Operation:    "create",
			Kind:         string(h.resource.Kind),
			Success:      false,
			ErrorMessage: err.Error(),
		})
		respondWithInternalError(w, err, h.dev())
		return
	}

	audit.Log(audit.RecordEvent{
		UserID:    caller.UserID,
		ClientIP:  clientIP(r),
		Operation: "create",
		Kind:      string(h.resource.Kind),
		RecordID:  record.ID,
		Success:   true,
	})
	respondWithData(w, http.StatusCreated, recordJSON(record))
}

// authorizeMutation runs the not-found check before the ownership gate, so a
// missing id always reads as 404 regardless of the caller.
func (h *resourceHandler) authorizeMutation(w http.ResponseWriter, r *http.Request, operation string) (*identity.Identity, string, bool) {
	caller, ok := identity.Get(r.Context())
	if !ok {
		respondWithError(w, http.StatusUnauthorized, "Access denied. No token provided")
		return nil, "", false
	}

	id := mux.Vars(r)["id"]
	existing, err := h.records.FetchRecord(h.resource.Kind, id)
	if errors.Is(err, store.ErrRecordNotFound) {
		respondWithError(w, http.StatusNotFound, h.resource.Display+" not found")
		return nil, "", false
	}
	if err != nil {
		respondWithInternalError(w, err, h.dev())
		return nil, "", false
	}

	var allowed bool
	var message string
	if h.resource.ElevatedMutation {
		allowed = caller.Role.Elevated()
		message = "You do not have permission to " + operation + " " + h.resource.Name
	} else {
		allowed = caller.CanModify(existing.CreatedBy)
		message = "You can only " + operation + " your own " + h.resource.Singular
	}

	if !allowed {
		audit.Log(audit.RecordEvent{
			UserID:       caller.UserID,
			ClientIP:     clientIP(r),
			Operation:    operation,
			Kind:         string(h.resource.Kind),
			RecordID:     id,
			Success:      false,
			ErrorMessage: "forbidden",
		})
		respondWithError(w, http.StatusForbidden, message)
		return nil, "", false
	}

	return caller, id, true
}

func (h *resourceHandler) update(w http.ResponseWriter, r *http.Request) {
	caller, id, ok := h.authorizeMutation(w, r, "update")
	if !ok {
		return
	}

	payload, ok := h.decodePayload(w, r)
	if !ok {
		return
	}

	record, err := h.records.UpdateRecord(h.resource.Kind, id, payload.Document())
	if errors.Is(err, store.ErrRecordNotFound) {
		respondWithError(w, http.StatusNotFound, h.resource.Display+" not found")
		return
	}
	if err != nil {
		respondWithInternalError(w, err, h.dev())
		return
	}

	audit.Log(audit.RecordEvent{
		UserID:    caller.UserID,
		ClientIP:  clientIP(r),
		Operation: "update",
		Kind:      string(h.resource.Kind),
		RecordID:  id,
		Success:   true,
	})
	respondWithData(w, http.StatusOK, recordJSON(record))
}

func (h *resourceHandler) delete(w http.ResponseWriter, r *http.Request) {
	caller, id, ok := h.authorizeMutation(w, r, "delete")
	if !ok {
		return
	}

	err := h.records.DeleteRecord(h.resource.Kind, id)
	if errors.Is(err, store.ErrRecordNotFound) {
		respondWithError(w, http.StatusNotFound, h.resource.Display+" not found")
		return
	}
	if err != nil {
		respondWithInternalError(w, err, h.dev())
		return
	}

	audit.Log(audit.RecordEvent{
		UserID:    caller.UserID,
		ClientIP:  clientIP(r),
		Operation: "delete",
		Kind:      string(h.resource.Kind),
		RecordID:  id,
		Success:   true,
	})
	respondWithJSON(w, http.StatusOK, map[string]interface{}{
		"success": true,
		"message": h.resource.Display + " deleted successfully",
	})
}
