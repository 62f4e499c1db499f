package handler

import (
	"net/http"

	"github.com/gorilla/mux"
)

// ListPayments returns the caller's installments, sweeping overdue ones first
func (h *Handler) ListPayments(w http.ResponseWriter, r *http.Request) {
	paymentList, err := h.svc.ListPayments(r.Context(), actorFrom(r))
	if err != nil {
		h.respondError(w, err)
		return
	}
	h.respondJSON(w, http.StatusOK, paymentList)
}

// PayInstallment settles an installment
func (h *Handler) PayInstallment(w http.ResponseWriter, r *http.Request) {
	settlement, err := h.svc.PayInstallment(r.Context(), actorFrom(r), mux.Vars(r)["id"])
	if err != nil {
		h.respondError(w, err)
		return
	}
	h.respondJSON(w, http.StatusOK, settlement)
}

// EvaluateInstallment reports whether an installment could be paid now
func (h *Handler) EvaluateInstallment(w http.ResponseWriter, r *http.Request) {
	elig, err := h.svc.EvaluateInstallment(r.Context(), actorFrom(r), mux.Vars(r)["id"])
	if err != nil {
		h.respondError(w, err)
		return
	}
	h.respondJSON(w, http.StatusOK, map[string]any{
		"eligible": elig.Eligible,
		"reason":   elig.Reason,
	})
}
