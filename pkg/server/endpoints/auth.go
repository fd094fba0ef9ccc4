package endpoints

import (
	"encoding/json"
	"errors"
	"net/http"

	"golang.org/x/crypto/bcrypt"

	"github.com/gramsetu/contenthub/pkg/audit"
	"github.com/gramsetu/contenthub/pkg/identity"
	"github.com/gramsetu/contenthub/pkg/server"
	"github.com/gramsetu/contenthub/pkg/server/middleware"
	"github.com/gramsetu/contenthub/pkg/server/store"
	"github.com/gramsetu/contenthub/pkg/token"
	"github.com/gramsetu/contenthub/pkg/validate"
)

// RegisterPayload is the request body for account registration. Elevated
// accounts are created with the CLI, not over the API.
type RegisterPayload struct {
	Name     string `json:"name" validate:"required,min=2,max=100"`
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required,min=8,max=72"`
	Role     string `json:"role" validate:"omitempty,oneof=user entrepreneur"`
}

// LoginPayload is the request body for login.
type LoginPayload struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

type authHandler struct {
	users  store.UsersStore
	secret []byte
	server *server.Server
}

// RegisterAuthEndpoints registers registration, login and the identity probe.
func RegisterAuthEndpoints(s *server.Server) {
	h := &authHandler{users: s.Users, secret: s.Secret, server: s}

	auth := middleware.NewAuthenticator(s.Secret)

	r := s.Router.PathPrefix("/api/v1/auth").Subrouter()
	r.HandleFunc("/register", h.register).Methods("POST")
	r.HandleFunc("/login", h.login).Methods("POST")
	r.Handle("/me", auth.Middleware(http.HandlerFunc(h.me))).Methods("GET")
}

func userJSON(user *store.User) map[string]interface{} {
	return map[string]interface{}{
		"id":    user.ID,
		"name":  user.Name,
		"email": user.Email,
		"role":  user.Role.String(),
	}
}

func (h *authHandler) register(w http.ResponseWriter, r *http.Request) {
	var payload RegisterPayload
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		respondWithError(w, http.StatusBadRequest, "Invalid request body")
		return
	}
	if messages := validate.Struct(payload); len(messages) > 0 {
		respondWithValidationErrors(w, messages)
		return
	}

	if payload.Role == "" {
		payload.Role = identity.RoleUser.String()
	}
	role, err := identity.RoleString(payload.Role)
	if err != nil || !role.Registerable() {
		respondWithError(w, http.StatusBadRequest, "Invalid role")
		return
	}

	digest, err := bcrypt.GenerateFromPassword([]byte(payload.Password), bcrypt.DefaultCost)
	if err != nil {
		respondWithInternalError(w, err, h.server.Config().IsDevelopment())
		return
	}

	user, err := h.users.CreateUser(payload.Name, payload.Email, string(digest), role)
	if errors.Is(err, store.ErrEmailTaken) {
		respondWithError(w, http.StatusBadRequest, "Email already registered")
		return
	}
	if err != nil {
		respondWithInternalError(w, err, h.server.Config().IsDevelopment())
		return
	}

	tokenString, err := token.Issue(h.secret, *user, h.server.Config().TokenTTL())
	if err != nil {
		respondWithInternalError(w, err, h.server.Config().IsDevelopment())
		return
	}

	respondWithData(w, http.StatusCreated, map[string]interface{}{
		"token": tokenString,
		"user":  userJSON(user),
	})
}

func (h *authHandler) login(w http.ResponseWriter, r *http.Request) {
	var payload LoginPayload
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		respondWithError(w, http.StatusBadRequest, "Invalid request body")
		return
	}
	if messages := validate.Struct(payload); len(messages) > 0 {
		respondWithValidationErrors(w, messages)
		return
	}

	user, err := h.users.FetchUserByEmail(payload.Email)
	if errors.Is(err, store.ErrUserNotFound) {
		audit.Log(audit.AuthnEvent{
			Email:        payload.Email,
			ClientIP:     clientIP(r),
			Success:      false,
			ErrorMessage: "unknown email",
		})
		respondWithError(w, http.StatusUnauthorized, "Invalid email or password")
		return
	}
	if err != nil {
		respondWithInternalError(w, err, h.server.Config().IsDevelopment())
		return
	}

	if bcrypt.CompareHashAndPassword([]byte(user.PasswordDigest), []byte(payload.Password)) != nil {
		audit.Log(audit.AuthnEvent{
			Email:        payload.Email,
			ClientIP:     clientIP(r),
			Success:      false,
			ErrorMessage: "invalid credentials",
		})
		respondWithError(w, http.StatusUnauthorized, "Invalid email or password")
		return
	}

	tokenString, err := token.Issue(h.secret, *user, h.server.Config().TokenTTL())
	if err != nil {
		respondWithInternalError(w, err, h.server.Config().IsDevelopment())
		return
	}

	audit.Log(audit.AuthnEvent{
		Email:    payload.Email,
		ClientIP: clientIP(r),
		Success:  true,
	})
	respondWithData(w, http.StatusOK, map[string]interface{}{
		"token": tokenString,
		"user":  userJSON(user),
	})
}

func (h *authHandler) me(w http.ResponseWriter, r *http.Request) {
	caller, ok := identity.Get(r.Context())
	if !ok {
		respondWithError(w, http.StatusUnauthorized, "Access denied. No token provided")
		return
	}

	user, err := h.users.FetchUser(caller.UserID)
	if errors.Is(err, store.ErrUserNotFound) {
		respondWithError(w, http.StatusNotFound, "User not found")
		return
	}
	if err != nil {
		respondWithInternalError(w, err, h.server.Config().IsDevelopment())
		return
	}

	respondWithData(w, http.StatusOK, userJSON(user))
}
