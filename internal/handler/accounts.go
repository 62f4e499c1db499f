package handler

import (
	"net/http"
	"strconv"

	"github.com/gorilla/mux"
	"github.com/shopspring/decimal"

	"github.com/bancasol/core-service/internal/service"
)

// ListAccountTypes returns the account type catalog
func (h *Handler) ListAccountTypes(w http.ResponseWriter, r *http.Request) {
	h.respondJSON(w, http.StatusOK, service.AccountTypeList())
}

// ListAccounts returns the caller's accounts (all accounts for admins)
func (h *Handler) ListAccounts(w http.ResponseWriter, r *http.Request) {
	accounts, err := h.svc.ListAccounts(r.Context(), actorFrom(r))
	if err != nil {
		h.respondError(w, err)
		return
	}
	h.respondJSON(w, http.StatusOK, accounts)
}

// CreateAccount opens a new bank account for the caller
func (h *Handler) CreateAccount(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Type           string          `json:"type"`
		InitialBalance decimal.Decimal `json:"initialBalance"`
	}
	if !h.decode(w, r, &req) {
		return
	}

	account, err := h.svc.OpenAccount(r.Context(), actorFrom(r), req.Type, req.InitialBalance)
	if err != nil {
		h.respondError(w, err)
		return
	}
	h.respondJSON(w, http.StatusCreated, account)
}

// AccountInterest projects interest on an account over ?months= (default 12)
func (h *Handler) AccountInterest(w http.ResponseWriter, r *http.Request) {
	months := 12
	if raw := r.URL.Query().Get("months"); raw != "" {
		parsed, err := strconv.Atoi(raw)
		if err != nil {
			h.respondJSON(w, http.StatusBadRequest, map[string]string{"error": "months must be an integer"})
			return
		}
		months = parsed
	}

	interest, err := h.svc.AccountInterest(r.Context(), actorFrom(r), mux.Vars(r)["id"], months)
	if err != nil {
		h.respondError(w, err)
		return
	}
	h.respondJSON(w, http.StatusOK, map[string]any{
		"accountId":         mux.Vars(r)["id"],
		"months":            months,
		"projectedInterest": interest,
	})
}

// QuoteServiceFees sums the monthly fee for a selection of add-on services
func (h *Handler) QuoteServiceFees(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Services []string `json:"services"`
	}
	if !h.decode(w, r, &req) {
		return
	}

	fee, err := service.MonthlyFee(req.Services)
	if err != nil {
		h.respondError(w, err)
		return
	}
	h.respondJSON(w, http.StatusOK, map[string]any{
		"services":   req.Services,
		"monthlyFee": fee,
	})
}

// ListTransactions returns the transactions visible to the caller
func (h *Handler) ListTransactions(w http.ResponseWriter, r *http.Request) {
	transactions, err := h.svc.ListTransactions(r.Context(), actorFrom(r))
	if err != nil {
		h.respondError(w, err)
		return
	}
	h.respondJSON(w, http.StatusOK, transactions)
}

// CreateTransaction performs a deposit, withdrawal or transfer
func (h *Handler) CreateTransaction(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Type        string          `json:"type"`
		AccountID   string          `json:"accountId"`
		ToAccountID string          `json:"toAccountId"`
		Amount      decimal.Decimal `json:"amount"`
		Description string          `json:"description"`
	}
	if !h.decode(w, r, &req) {
		return
	}

	actor := actorFrom(r)
	var err error
	var result any
	switch req.Type {
	case "deposit":
		result, err = h.svc.Deposit(r.Context(), actor, req.AccountID, req.Amount, req.Description)
	case "withdrawal":
		result, err = h.svc.Withdraw(r.Context(), actor, req.AccountID, req.Amount, req.Description)
	case "transfer":
		result, err = h.svc.Transfer(r.Context(), actor, req.AccountID, req.ToAccountID, req.Amount, req.Description)
	default:
		h.respondJSON(w, http.StatusBadRequest, map[string]string{"error": "unknown transaction type: " + req.Type})
		return
	}
	if err != nil {
		h.respondError(w, err)
		return
	}
	h.respondJSON(w, http.StatusCreated, result)
}
