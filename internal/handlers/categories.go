package handlers

import (
	"encoding/json"
	"net/http"

	"campusexpense/internal/middleware"
	"campusexpense/internal/validator"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"
)

type categoryRequest struct {
	Name string `json:"name"`
}

func (h *Handler) CreateCategory(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.UserIDFromContext(r.Context())
	if !ok {
		respondError(w, http.StatusUnauthorized, "unauthorized")
		return
	}
	var req categoryRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, http.StatusBadRequest, "invalid payload")
		return
	}
	if err := validator.ValidateCategoryName(req.Name); err != nil {
		respondError(w, http.StatusBadRequest, err.Error())
		return
	}
	categoryID := uuid.NewString()
	err := h.txRunner.WithTx(r.Context(), func(tx *sqlx.Tx) error {
		return h.categories.Create(r.Context(), tx, categoryID, userID, req.Name)
	})
	if err != nil {
		respondError(w, http.StatusInternalServerError, "failed to create category")
		return
	}
	respondJSON(w, http.StatusCreated, map[string]string{"id": categoryID, "name": req.Name})
}

func (h *Handler) ListCategories(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.UserIDFromContext(r.Context())
	if !ok {
		respondError(w, http.StatusUnauthorized, "unauthorized")
		return
	}
	categories, err := h.categories.GetAllByUser(r.Context(), userID)
	if err != nil {
		respondError(w, http.StatusInternalServerError, "failed to list categories")
		return
	}
	items := make([]map[string]any, 0, len(categories))
	for _, cat := range categories {
		items = append(items, map[string]any{
			"id":         cat.ID,
			"name":       cat.Name,
			"created_at": cat.CreatedAt,
		})
	}
	respondJSON(w, http.StatusOK, map[string]any{"categories": items})
}

func (h *Handler) RenameCategory(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.UserIDFromContext(r.Context())
	if !ok {
		respondError(w, http.StatusUnauthorized, "unauthorized")
		return
	}
	categoryID := chi.URLParam(r, "id")
	var req categoryRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, http.StatusBadRequest, "invalid payload")
		return
	}
	if err := validator.ValidateCategoryName(req.Name); err != nil {
		respondError(w, http.StatusBadRequest, err.Error())
		return
	}
	var affected int64
	err := h.txRunner.WithTx(r.Context(), func(tx *sqlx.Tx) error {
		rows, err := h.categories.Rename(r.Context(), tx, categoryID, userID, req.Name)
		affected = rows
		return err
	})
	if err != nil {
		respondError(w, http.StatusInternalServerError, "failed to rename category")
		return
	}
	if affected == 0 {
		respondError(w, http.StatusNotFound, "category not found")
		return
	}
	respondJSON(w, http.StatusOK, map[string]string{"id": categoryID, "name": req.Name})
}

// DeleteCategory removes the category only. Budgets and expenses that
// still reference it become orphaned and drop out of the breakdown.
func (h *Handler) DeleteCategory(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.UserIDFromContext(r.Context())
	if !ok {
		respondError(w, http.StatusUnauthorized, "unauthorized")
		return
	}
	categoryID := chi.URLParam(r, "id")
	var affected int64
	err := h.txRunner.WithTx(r.Context(), func(tx *sqlx.Tx) error {
		rows, err := h.categories.Delete(r.Context(), tx, categoryID, userID)
		affected = rows
		return err
	})
	if err != nil {
		respondError(w, http.StatusInternalServerError, "failed to delete category")
		return
	}
	if affected == 0 {
		respondError(w, http.StatusNotFound, "category not found")
		return
	}
	respondJSON(w, http.StatusOK, map[string]string{"status": "deleted"})
}
