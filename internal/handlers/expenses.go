package handlers

import (
	"database/sql"
	"encoding/json"
	"net/http"
	"time"

	"campusexpense/internal/middleware"
	"campusexpense/internal/money"
	"campusexpense/internal/summary"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"
)

type expenseRequest struct {
	CategoryID    string `json:"category_id"`
	Amount        string `json:"amount"`
	SpentAtMillis *int64 `json:"spent_at_millis"`
	Note          string `json:"note"`
}

func (h *Handler) CreateExpense(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.UserIDFromContext(r.Context())
	if !ok {
		respondError(w, http.StatusUnauthorized, "unauthorized")
		return
	}
	var req expenseRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, http.StatusBadRequest, "invalid payload")
		return
	}
	amount, err := money.ParseNonNegativeMinor(req.Amount)
	if err != nil {
		respondError(w, http.StatusBadRequest, "invalid amount")
		return
	}
	if _, err := h.categories.GetByID(r.Context(), req.CategoryID, userID); err != nil {
		if err == sql.ErrNoRows {
			respondError(w, http.StatusBadRequest, "category not found")
			return
		}
		respondError(w, http.StatusInternalServerError, "failed to record expense")
		return
	}
	spentAt := time.Now().UnixMilli()
	if req.SpentAtMillis != nil {
		spentAt = *req.SpentAtMillis
	}
	expenseID := uuid.NewString()
	err = h.txRunner.WithTx(r.Context(), func(tx *sqlx.Tx) error {
		if err := h.expenses.Create(r.Context(), tx, expenseID, userID, req.CategoryID, amount, spentAt, req.Note); err != nil {
			return err
		}
		data, _ := json.Marshal(map[string]string{"category_id": req.CategoryID, "amount": money.FormatMinor(amount)})
		return h.audit.Log(r.Context(), tx, userID, "expense_create", "expense", expenseID, string(data))
	})
	if err != nil {
		respondError(w, http.StatusInternalServerError, "failed to record expense")
		return
	}
	h.pushSummaryForMillis(userID, spentAt)
	respondJSON(w, http.StatusCreated, map[string]string{"id": expenseID})
}

func (h *Handler) ListExpenses(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.UserIDFromContext(r.Context())
	if !ok {
		respondError(w, http.StatusUnauthorized, "unauthorized")
		return
	}
	month, err := h.monthFromQuery(r)
	if err != nil {
		respondError(w, http.StatusBadRequest, "invalid month")
		return
	}
	start, end := month.Range(h.summary.Location())
	expenses, err := h.expenses.ListByRange(r.Context(), userID, start, end)
	if err != nil {
		respondError(w, http.StatusInternalServerError, "failed to list expenses")
		return
	}
	items := make([]map[string]any, 0, len(expenses))
	for _, e := range expenses {
		items = append(items, map[string]any{
			"id":              e.ID,
			"category_id":     e.CategoryID,
			"amount":          money.FormatMinor(e.Amount),
			"spent_at_millis": e.SpentAtMillis,
			"note":            e.Note,
		})
	}
	respondJSON(w, http.StatusOK, map[string]any{
		"month":    month.String(),
		"expenses": items,
	})
}

// monthFromQuery reads ?month=YYYY-MM, defaulting to the current month in
// the service location.
func (h *Handler) monthFromQuery(r *http.Request) (summary.Month, error) {
	raw := r.URL.Query().Get("month")
	if raw == "" {
		now := time.Now().In(h.summary.Location())
		return summary.Month{Year: now.Year(), Month: now.Month()}, nil
	}
	return summary.ParseMonth(raw)
}
