package handlers

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"campusexpense/internal/store"
)

func TestCreateCategorySuccess(t *testing.T) {
	created := false
	handler := newTestHandler(t, handlerDeps{
		categories: stubCategoryStore{
			createFn: func(ctx context.Context, tx store.Execer, id, userID, name string) error {
				if userID != "user-1" || name != "Groceries" {
					t.Fatalf("unexpected create args: %s %s", userID, name)
				}
				created = true
				return nil
			},
		},
	})

	req := httptest.NewRequest(http.MethodPost, "/categories", strings.NewReader(`{"name":"Groceries"}`))
	rr := serveAuthed(t, handler.CreateCategory, req)
	if rr.Code != http.StatusCreated {
		t.Fatalf("expected 201, got %d: %s", rr.Code, rr.Body.String())
	}
	if !created {
		t.Fatalf("expected category to be created")
	}
}

func TestCreateCategoryRejectsEmptyName(t *testing.T) {
	handler := newTestHandler(t, handlerDeps{})

	req := httptest.NewRequest(http.MethodPost, "/categories", strings.NewReader(`{"name":"  "}`))
	rr := serveAuthed(t, handler.CreateCategory, req)
	if rr.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d", rr.Code)
	}
}

func TestListCategoriesOrdered(t *testing.T) {
	handler := newTestHandler(t, handlerDeps{
		categories: stubCategoryStore{
			getAllFn: func(ctx context.Context, userID string) ([]store.Category, error) {
				return []store.Category{
					{ID: "cat-1", Name: "Food"},
					{ID: "cat-2", Name: "Transport"},
				}, nil
			},
		},
	})

	req := httptest.NewRequest(http.MethodGet, "/categories", nil)
	rr := serveAuthed(t, handler.ListCategories, req)
	if rr.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rr.Code)
	}
	var payload struct {
		Categories []map[string]any `json:"categories"`
	}
	if err := json.NewDecoder(rr.Body).Decode(&payload); err != nil {
		t.Fatalf("failed to decode response: %v", err)
	}
	if len(payload.Categories) != 2 {
		t.Fatalf("expected 2 categories, got %d", len(payload.Categories))
	}
	if payload.Categories[0]["name"] != "Food" || payload.Categories[1]["name"] != "Transport" {
		t.Fatalf("unexpected order: %v", payload.Categories)
	}
}

func TestRenameCategoryNotFound(t *testing.T) {
	handler := newTestHandler(t, handlerDeps{
		categories: stubCategoryStore{
			renameFn: func(ctx context.Context, tx store.Execer, categoryID, userID, name string) (int64, error) {
				return 0, nil
			},
		},
	})

	req := httptest.NewRequest(http.MethodPut, "/categories/cat-gone", strings.NewReader(`{"name":"Bills"}`))
	req = withURLParam(req, "id", "cat-gone")
	rr := serveAuthed(t, handler.RenameCategory, req)
	if rr.Code != http.StatusNotFound {
		t.Fatalf("expected 404, got %d", rr.Code)
	}
}

func TestDeleteCategoryScopedToUser(t *testing.T) {
	var gotUserID string
	handler := newTestHandler(t, handlerDeps{
		categories: stubCategoryStore{
			deleteFn: func(ctx context.Context, tx store.Execer, categoryID, userID string) (int64, error) {
				gotUserID = userID
				return 1, nil
			},
		},
	})

	req := httptest.NewRequest(http.MethodDelete, "/categories/cat-1", nil)
	req = withURLParam(req, "id", "cat-1")
	rr := serveAuthed(t, handler.DeleteCategory, req)
	if rr.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rr.Code)
	}
	if gotUserID != "user-1" {
		t.Fatalf("delete must be scoped to the token's user, got %q", gotUserID)
	}
}
