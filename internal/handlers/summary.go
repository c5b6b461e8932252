package handlers

import (
	"context"
	"database/sql"
	"net/http"
	"strings"
	"time"

	"campusexpense/internal/auth"
	"campusexpense/internal/middleware"
	"campusexpense/internal/money"
	"campusexpense/internal/summary"
	"campusexpense/internal/websocket"

	"github.com/go-chi/chi/v5"
	"github.com/shopspring/decimal"
)

func (h *Handler) GetMonthSummary(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.UserIDFromContext(r.Context())
	if !ok {
		respondError(w, http.StatusUnauthorized, "unauthorized")
		return
	}
	month, err := summary.ParseMonth(chi.URLParam(r, "month"))
	if err != nil {
		respondError(w, http.StatusBadRequest, "invalid month")
		return
	}
	sum, err := h.summary.MonthSummary(r.Context(), userID, month)
	if err != nil {
		respondError(w, http.StatusInternalServerError, "failed to compute summary")
		return
	}
	payload := map[string]any{
		"month":             sum.Month,
		"total_spent":       money.FormatMinor(sum.TotalSpent),
		"transaction_count": sum.TransactionCount,
		"avg_per_day":       money.FormatMinor(sum.AvgPerDay),
		"total_budget":      money.FormatMinor(sum.TotalBudget),
		"remaining":         money.FormatMinor(sum.Remaining),
	}
	if currency := strings.TrimSpace(r.URL.Query().Get("currency")); currency != "" {
		display, err := h.displayAmounts(r.Context(), currency, sum)
		if err != nil {
			if err == sql.ErrNoRows {
				respondError(w, http.StatusNotFound, "no rate for currency")
				return
			}
			respondError(w, http.StatusInternalServerError, "failed to convert amounts")
			return
		}
		payload["display"] = display
	}
	respondJSON(w, http.StatusOK, payload)
}

// displayAmounts converts the summary's base-currency figures through the
// active display rate. Stored values stay in base currency.
func (h *Handler) displayAmounts(ctx context.Context, currency string, sum summary.MonthSummary) (map[string]any, error) {
	rateRow, err := h.rates.GetActive(ctx, currency)
	if err != nil {
		return nil, err
	}
	rate, err := decimal.NewFromString(valueToString(rateRow["rate"]))
	if err != nil {
		return nil, err
	}
	return map[string]any{
		"currency":     currency,
		"rate":         rate.String(),
		"total_spent":  money.ConvertMinor(sum.TotalSpent, rate),
		"total_budget": money.ConvertMinor(sum.TotalBudget, rate),
		"remaining":    money.ConvertMinor(sum.Remaining, rate),
	}, nil
}

func (h *Handler) GetBudgetBreakdown(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.UserIDFromContext(r.Context())
	if !ok {
		respondError(w, http.StatusUnauthorized, "unauthorized")
		return
	}
	month, err := summary.ParseMonth(chi.URLParam(r, "month"))
	if err != nil {
		respondError(w, http.StatusBadRequest, "invalid month")
		return
	}
	task := h.summary.BreakdownAsync(r.Context(), userID, month)
	items, err := task.Wait(r.Context())
	if err != nil {
		if r.Context().Err() != nil {
			return
		}
		respondError(w, http.StatusInternalServerError, "failed to compute breakdown")
		return
	}
	payload := make([]map[string]any, 0, len(items))
	for _, item := range items {
		payload = append(payload, map[string]any{
			"category_id":   item.CategoryID,
			"category_name": item.CategoryName,
			"budget_amount": money.FormatMinor(item.BudgetAmount),
			"spent_amount":  money.FormatMinor(item.SpentAmount),
			"percentage":    item.Percentage,
		})
	}
	respondJSON(w, http.StatusOK, map[string]any{
		"month": month.String(),
		"items": payload,
	})
}

// WSSummary upgrades to a websocket that receives summary updates as
// expenses and budgets change.
func (h *Handler) WSSummary(w http.ResponseWriter, r *http.Request) {
	token := r.URL.Query().Get("token")
	if token == "" {
		authHeader := r.Header.Get("Authorization")
		if strings.HasPrefix(authHeader, "Bearer ") {
			token = strings.TrimPrefix(authHeader, "Bearer ")
		}
	}
	if token == "" {
		respondError(w, http.StatusUnauthorized, "missing token")
		return
	}
	claims, err := auth.ParseToken(h.cfg.JWTSecret, token)
	if err != nil {
		respondError(w, http.StatusUnauthorized, "invalid token")
		return
	}
	h.pushCurrentSummary(claims.UserID)
	websocket.ServeWS(w, r, h.hub, claims.UserID, func(raw string) {
		month, err := summary.ParseMonth(raw)
		if err != nil {
			return
		}
		h.pushSummary(claims.UserID, month)
	})
}

// pushSummaryForMillis recomputes the month containing the given
// timestamp and broadcasts it. Runs detached from the request; a write
// must not fail because nobody is listening.
func (h *Handler) pushSummaryForMillis(userID string, millis int64) {
	at := time.UnixMilli(millis).In(h.summary.Location())
	h.pushSummary(userID, summary.Month{Year: at.Year(), Month: at.Month()})
}

func (h *Handler) pushCurrentSummary(userID string) {
	now := time.Now().In(h.summary.Location())
	h.pushSummary(userID, summary.Month{Year: now.Year(), Month: now.Month()})
}

func (h *Handler) pushSummary(userID string, month summary.Month) {
	go func() {
		ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		sum, err := h.summary.MonthSummary(ctx, userID, month)
		if err != nil {
			return
		}
		h.hub.BroadcastSummary(userID, websocket.SummaryUpdate{
			Month:            sum.Month,
			TotalSpent:       money.FormatMinor(sum.TotalSpent),
			TransactionCount: sum.TransactionCount,
			TotalBudget:      money.FormatMinor(sum.TotalBudget),
			Remaining:        money.FormatMinor(sum.Remaining),
		})
	}()
}
