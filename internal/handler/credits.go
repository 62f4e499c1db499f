package handler

import (
	"net/http"

	"github.com/gorilla/mux"
	"github.com/shopspring/decimal"
)

// ListCredits returns the caller's credits (all credits for admins)
func (h *Handler) ListCredits(w http.ResponseWriter, r *http.Request) {
	credits, err := h.svc.ListCredits(r.Context(), actorFrom(r))
	if err != nil {
		h.respondError(w, err)
		return
	}
	h.respondJSON(w, http.StatusOK, credits)
}

// RequestCredit submits a new credit request
func (h *Handler) RequestCredit(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Type   string          `json:"type"`
		Amount decimal.Decimal `json:"amount"`
		Term   int             `json:"term"`
	}
	if !h.decode(w, r, &req) {
		return
	}

	credit, err := h.svc.RequestCredit(r.Context(), actorFrom(r), req.Type, req.Amount, req.Term)
	if err != nil {
		h.respondError(w, err)
		return
	}
	h.respondJSON(w, http.StatusCreated, credit)
}

// ApproveCredit activates a pending credit (admin only)
func (h *Handler) ApproveCredit(w http.ResponseWriter, r *http.Request) {
	credit, err := h.svc.ApproveCredit(r.Context(), actorFrom(r), mux.Vars(r)["id"])
	if err != nil {
		h.respondError(w, err)
		return
	}
	h.respondJSON(w, http.StatusOK, credit)
}

// RejectCredit rejects a pending credit (admin only)
func (h *Handler) RejectCredit(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Reason string `json:"reason"`
	}
	if !h.decode(w, r, &req) {
		return
	}

	credit, err := h.svc.RejectCredit(r.Context(), actorFrom(r), mux.Vars(r)["id"], req.Reason)
	if err != nil {
		h.respondError(w, err)
		return
	}
	h.respondJSON(w, http.StatusOK, credit)
}
