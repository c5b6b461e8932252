package handlers

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"campusexpense/internal/store"
)

func TestCreateExpenseWithExplicitTimestamp(t *testing.T) {
	var gotSpentAt int64
	handler := newTestHandler(t, handlerDeps{
		expenses: stubExpenseStore{
			createFn: func(ctx context.Context, tx store.Execer, id, userID, categoryID string, amount, spentAtMillis int64, note string) error {
				if amount != 1250 || note != "coffee" {
					t.Fatalf("unexpected create args: %d %q", amount, note)
				}
				gotSpentAt = spentAtMillis
				return nil
			},
		},
	})

	body := `{"category_id":"cat-1","amount":"12.50","spent_at_millis":1709251200000,"note":"coffee"}`
	req := httptest.NewRequest(http.MethodPost, "/expenses", strings.NewReader(body))
	rr := serveAuthed(t, handler.CreateExpense, req)
	if rr.Code != http.StatusCreated {
		t.Fatalf("expected 201, got %d: %s", rr.Code, rr.Body.String())
	}
	if gotSpentAt != 1709251200000 {
		t.Fatalf("expected explicit timestamp to be kept, got %d", gotSpentAt)
	}
}

func TestCreateExpenseDefaultsToNow(t *testing.T) {
	var gotSpentAt int64
	handler := newTestHandler(t, handlerDeps{
		expenses: stubExpenseStore{
			createFn: func(ctx context.Context, tx store.Execer, id, userID, categoryID string, amount, spentAtMillis int64, note string) error {
				gotSpentAt = spentAtMillis
				return nil
			},
		},
	})

	before := time.Now().UnixMilli()
	body := `{"category_id":"cat-1","amount":"5.00"}`
	req := httptest.NewRequest(http.MethodPost, "/expenses", strings.NewReader(body))
	rr := serveAuthed(t, handler.CreateExpense, req)
	after := time.Now().UnixMilli()
	if rr.Code != http.StatusCreated {
		t.Fatalf("expected 201, got %d", rr.Code)
	}
	if gotSpentAt < before || gotSpentAt > after {
		t.Fatalf("expected timestamp defaulted to now, got %d outside [%d, %d]", gotSpentAt, before, after)
	}
}

func TestCreateExpenseRejectsBadAmount(t *testing.T) {
	handler := newTestHandler(t, handlerDeps{})

	body := `{"category_id":"cat-1","amount":"twelve"}`
	req := httptest.NewRequest(http.MethodPost, "/expenses", strings.NewReader(body))
	rr := serveAuthed(t, handler.CreateExpense, req)
	if rr.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d", rr.Code)
	}
}

func TestListExpensesPassesMonthRange(t *testing.T) {
	var gotStart, gotEnd int64
	handler := newTestHandler(t, handlerDeps{
		expenses: stubExpenseStore{
			listFn: func(ctx context.Context, userID string, startMillis, endMillis int64) ([]store.Expense, error) {
				gotStart, gotEnd = startMillis, endMillis
				return []store.Expense{
					{ID: "e-1", CategoryID: "cat-1", Amount: 999, SpentAtMillis: startMillis, Note: "lunch"},
				}, nil
			},
		},
	})

	req := httptest.NewRequest(http.MethodGet, "/expenses?month=2024-02", nil)
	rr := serveAuthed(t, handler.ListExpenses, req)
	if rr.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", rr.Code, rr.Body.String())
	}

	wantStart := time.Date(2024, time.February, 1, 0, 0, 0, 0, time.UTC).UnixMilli()
	wantEnd := time.Date(2024, time.March, 1, 0, 0, 0, 0, time.UTC).UnixMilli() - 1
	if gotStart != wantStart || gotEnd != wantEnd {
		t.Fatalf("unexpected range: got [%d, %d], want [%d, %d]", gotStart, gotEnd, wantStart, wantEnd)
	}

	var payload struct {
		Month    string           `json:"month"`
		Expenses []map[string]any `json:"expenses"`
	}
	if err := json.NewDecoder(rr.Body).Decode(&payload); err != nil {
		t.Fatalf("failed to decode response: %v", err)
	}
	if payload.Month != "2024-02" {
		t.Fatalf("unexpected month: %s", payload.Month)
	}
	if len(payload.Expenses) != 1 || payload.Expenses[0]["amount"] != "9.99" {
		t.Fatalf("unexpected expenses payload: %v", payload.Expenses)
	}
}

func TestListExpensesInvalidMonth(t *testing.T) {
	handler := newTestHandler(t, handlerDeps{})

	req := httptest.NewRequest(http.MethodGet, "/expenses?month=last", nil)
	rr := serveAuthed(t, handler.ListExpenses, req)
	if rr.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d", rr.Code)
	}
}
