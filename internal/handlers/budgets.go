package handlers

import (
	"database/sql"
	"encoding/json"
	"net/http"

	"campusexpense/internal/middleware"
	"campusexpense/internal/money"
	"campusexpense/internal/validator"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"
)

type budgetRequest struct {
	CategoryID string `json:"category_id"`
	Amount     string `json:"amount"`
	Period     string `json:"period"`
}

func (h *Handler) CreateBudget(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.UserIDFromContext(r.Context())
	if !ok {
		respondError(w, http.StatusUnauthorized, "unauthorized")
		return
	}
	var req budgetRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, http.StatusBadRequest, "invalid payload")
		return
	}
	amount, err := money.ParseNonNegativeMinor(req.Amount)
	if err != nil {
		respondError(w, http.StatusBadRequest, "invalid amount")
		return
	}
	if err := validator.ValidatePeriod(req.Period); err != nil {
		respondError(w, http.StatusBadRequest, err.Error())
		return
	}
	if _, err := h.categories.GetByID(r.Context(), req.CategoryID, userID); err != nil {
		if err == sql.ErrNoRows {
			respondError(w, http.StatusBadRequest, "category not found")
			return
		}
		respondError(w, http.StatusInternalServerError, "failed to create budget")
		return
	}
	// pre-insert existence check; one budget per category per user
	exists, err := h.budgets.ExistsForCategory(r.Context(), userID, req.CategoryID)
	if err != nil {
		respondError(w, http.StatusInternalServerError, "failed to create budget")
		return
	}
	if exists {
		respondError(w, http.StatusConflict, "budget for this category already exists")
		return
	}
	budgetID := uuid.NewString()
	err = h.txRunner.WithTx(r.Context(), func(tx *sqlx.Tx) error {
		if err := h.budgets.Create(r.Context(), tx, budgetID, userID, req.CategoryID, amount, req.Period); err != nil {
			return err
		}
		data, _ := json.Marshal(map[string]string{"category_id": req.CategoryID, "amount": money.FormatMinor(amount), "period": req.Period})
		return h.audit.Log(r.Context(), tx, userID, "budget_create", "budget", budgetID, string(data))
	})
	if err != nil {
		respondError(w, http.StatusInternalServerError, "failed to create budget")
		return
	}
	h.pushCurrentSummary(userID)
	respondJSON(w, http.StatusCreated, map[string]string{"id": budgetID})
}

func (h *Handler) ListBudgets(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.UserIDFromContext(r.Context())
	if !ok {
		respondError(w, http.StatusUnauthorized, "unauthorized")
		return
	}
	budgets, err := h.budgets.ListWithCategoryNames(r.Context(), userID)
	if err != nil {
		respondError(w, http.StatusInternalServerError, "failed to list budgets")
		return
	}
	items := make([]map[string]any, 0, len(budgets))
	for _, b := range budgets {
		categoryName := "Unknown Category"
		if b.CategoryName != nil {
			categoryName = *b.CategoryName
		}
		items = append(items, map[string]any{
			"id":            b.ID,
			"category_id":   b.CategoryID,
			"category_name": categoryName,
			"amount":        money.FormatMinor(b.Amount),
			"period":        b.Period,
			"created_at":    b.CreatedAt,
		})
	}
	respondJSON(w, http.StatusOK, map[string]any{"budgets": items})
}

type budgetUpdateRequest struct {
	Amount string `json:"amount"`
	Period string `json:"period"`
}

func (h *Handler) UpdateBudget(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.UserIDFromContext(r.Context())
	if !ok {
		respondError(w, http.StatusUnauthorized, "unauthorized")
		return
	}
	budgetID := chi.URLParam(r, "id")
	var req budgetUpdateRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, http.StatusBadRequest, "invalid payload")
		return
	}
	amount, err := money.ParseNonNegativeMinor(req.Amount)
	if err != nil {
		respondError(w, http.StatusBadRequest, "invalid amount")
		return
	}
	if err := validator.ValidatePeriod(req.Period); err != nil {
		respondError(w, http.StatusBadRequest, err.Error())
		return
	}
	var affected int64
	err = h.txRunner.WithTx(r.Context(), func(tx *sqlx.Tx) error {
		rows, err := h.budgets.Update(r.Context(), tx, budgetID, userID, amount, req.Period)
		if err != nil {
			return err
		}
		affected = rows
		if rows == 0 {
			return nil
		}
		data, _ := json.Marshal(map[string]string{"amount": money.FormatMinor(amount), "period": req.Period})
		return h.audit.Log(r.Context(), tx, userID, "budget_update", "budget", budgetID, string(data))
	})
	if err != nil {
		respondError(w, http.StatusInternalServerError, "failed to update budget")
		return
	}
	if affected == 0 {
		respondError(w, http.StatusNotFound, "budget not found")
		return
	}
	h.pushCurrentSummary(userID)
	respondJSON(w, http.StatusOK, map[string]string{"id": budgetID})
}

func (h *Handler) DeleteBudget(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.UserIDFromContext(r.Context())
	if !ok {
		respondError(w, http.StatusUnauthorized, "unauthorized")
		return
	}
	budgetID := chi.URLParam(r, "id")
	var affected int64
	err := h.txRunner.WithTx(r.Context(), func(tx *sqlx.Tx) error {
		rows, err := h.budgets.Delete(r.Context(), tx, budgetID, userID)
		if err != nil {
			return err
		}
		affected = rows
		if rows == 0 {
			return nil
		}
		return h.audit.Log(r.Context(), tx, userID, "budget_delete", "budget", budgetID, "{}")
	})
	if err != nil {
		respondError(w, http.StatusInternalServerError, "failed to delete budget")
		return
	}
	if affected == 0 {
		respondError(w, http.StatusNotFound, "budget not found")
		return
	}
	h.pushCurrentSummary(userID)
	respondJSON(w, http.StatusOK, map[string]string{"status": "deleted"})
}
