package handler

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/gorilla/mux"
	"github.com/sirupsen/logrus"

	"github.com/bancasol/core-service/internal/middleware"
	"github.com/bancasol/core-service/internal/models"
	"github.com/bancasol/core-service/internal/service"
	"github.com/bancasol/core-service/internal/store"
)

// Handler exposes the application service over HTTP
type Handler struct {
	svc *service.Service
	log *logrus.Logger
}

// NewHandler initializes a new handler
func NewHandler(svc *service.Service, log *logrus.Logger) *Handler {
	return &Handler{svc: svc, log: log}
}

func actorFrom(r *http.Request) service.Actor {
	userID, role := middleware.UserFromContext(r.Context())
	return service.Actor{UserID: userID, Role: role}
}

func (h *Handler) respondJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if v == nil {
		return
	}
	if err := json.NewEncoder(w).Encode(v); err != nil {
		h.log.Errorf("Failed to encode response: %v", err)
	}
}

// respondError maps the error taxonomy to HTTP status codes: not-found 404,
// permission-denied 403, validation 422, store-unreachable 502.
func (h *Handler) respondError(w http.ResponseWriter, err error) {
	var validationErr *models.ValidationError
	var storeErr *store.Error

	status := http.StatusInternalServerError
	switch {
	case errors.Is(err, models.ErrNotFound):
		status = http.StatusNotFound
	case errors.Is(err, models.ErrPermissionDenied):
		status = http.StatusForbidden
	case errors.As(err, &validationErr):
		status = http.StatusUnprocessableEntity
	case errors.As(err, &storeErr):
		status = http.StatusBadGateway
	}

	if status >= http.StatusInternalServerError {
		h.log.Errorf("Request failed: %v", err)
	}
	h.respondJSON(w, status, map[string]string{"error": err.Error()})
}

func (h *Handler) decode(w http.ResponseWriter, r *http.Request, v any) bool {
	if err := json.NewDecoder(r.Body).Decode(v); err != nil {
		h.respondJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid request body"})
		return false
	}
	return true
}

// Register handles user registration
func (h *Handler) Register(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Name     string `json:"name"`
		Email    string `json:"email"`
		Password string `json:"password"`
	}
	if !h.decode(w, r, &req) {
		return
	}

	user, err := h.svc.Register(r.Context(), req.Name, req.Email, req.Password)
	if err != nil {
		h.respondError(w, err)
		return
	}
	h.respondJSON(w, http.StatusCreated, user.Sanitized())
}

// Login handles user authentication
func (h *Handler) Login(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Email    string `json:"email"`
		Password string `json:"password"`
	}
	if !h.decode(w, r, &req) {
		return
	}

	token, err := h.svc.Login(r.Context(), req.Email, req.Password)
	if err != nil {
		h.respondError(w, err)
		return
	}
	h.respondJSON(w, http.StatusOK, map[string]string{"token": token})
}

// ComputeScore recalculates and returns the caller's credit score
func (h *Handler) ComputeScore(w http.ResponseWriter, r *http.Request) {
	score, err := h.svc.ComputeScore(r.Context(), actorFrom(r))
	if err != nil {
		h.respondError(w, err)
		return
	}
	h.respondJSON(w, http.StatusOK, score)
}

// UserScore returns the stored score for a user (self or admin)
func (h *Handler) UserScore(w http.ResponseWriter, r *http.Request) {
	score, err := h.svc.UserScore(r.Context(), actorFrom(r), mux.Vars(r)["id"])
	if err != nil {
		h.respondError(w, err)
		return
	}
	h.respondJSON(w, http.StatusOK, score)
}
