package handlers

import (
	"database/sql"
	"encoding/json"
	"net/http"
	"strings"

	"campusexpense/internal/middleware"

	"github.com/jmoiron/sqlx"
	"github.com/shopspring/decimal"
)

func (h *Handler) GetActiveRate(w http.ResponseWriter, r *http.Request) {
	if _, ok := middleware.UserIDFromContext(r.Context()); !ok {
		respondError(w, http.StatusUnauthorized, "unauthorized")
		return
	}
	currency := strings.TrimSpace(r.URL.Query().Get("currency"))
	if currency == "" {
		respondError(w, http.StatusBadRequest, "currency is required")
		return
	}
	rate, err := h.rates.GetActive(r.Context(), currency)
	if err != nil {
		if err == sql.ErrNoRows {
			respondError(w, http.StatusNotFound, "no rate for currency")
			return
		}
		respondError(w, http.StatusInternalServerError, "failed to load rate")
		return
	}
	respondJSON(w, http.StatusOK, rate)
}

type setRateRequest struct {
	Currency string `json:"currency"`
	Rate     string `json:"rate"`
}

func (h *Handler) SetRate(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.UserIDFromContext(r.Context())
	if !ok {
		respondError(w, http.StatusUnauthorized, "unauthorized")
		return
	}
	var req setRateRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, http.StatusBadRequest, "invalid payload")
		return
	}
	currency := strings.TrimSpace(req.Currency)
	if currency == "" {
		respondError(w, http.StatusBadRequest, "currency is required")
		return
	}
	rate, err := decimal.NewFromString(strings.TrimSpace(req.Rate))
	if err != nil || !rate.IsPositive() {
		respondError(w, http.StatusBadRequest, "invalid rate")
		return
	}
	var rateID string
	err = h.txRunner.WithTx(r.Context(), func(tx *sqlx.Tx) error {
		id, err := h.rates.SetRate(r.Context(), tx, currency, rate.String(), userID)
		if err != nil {
			return err
		}
		rateID = id
		data, _ := json.Marshal(map[string]string{"currency": currency, "rate": rate.String()})
		return h.audit.Log(r.Context(), tx, userID, "rate_set", "display_rate", id, string(data))
	})
	if err != nil {
		respondError(w, http.StatusInternalServerError, "failed to set rate")
		return
	}
	respondJSON(w, http.StatusCreated, map[string]string{"id": rateID})
}

func (h *Handler) ListAuditLog(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.UserIDFromContext(r.Context())
	if !ok {
		respondError(w, http.StatusUnauthorized, "unauthorized")
		return
	}
	limit, offset := parsePagination(r)
	logs, err := h.audit.ListByActor(r.Context(), userID, limit, offset)
	if err != nil {
		respondError(w, http.StatusInternalServerError, "failed to list audit log")
		return
	}
	respondJSON(w, http.StatusOK, map[string]any{"audit": logs})
}
