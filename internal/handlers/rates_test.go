package handlers

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"campusexpense/internal/store"
)

func TestSetRateSuccess(t *testing.T) {
	audited := false
	handler := newTestHandler(t, handlerDeps{
		rates: stubRateStore{
			setRateFn: func(ctx context.Context, tx store.Tx, currency, rate, actorID string) (string, error) {
				if currency != "EUR" || rate != "0.92" || actorID != "user-1" {
					t.Fatalf("unexpected set rate args: %s %s %s", currency, rate, actorID)
				}
				return "rate-1", nil
			},
		},
		audit: stubAuditStore{
			logFn: func(ctx context.Context, tx store.Execer, actorID, action, entityType, entityID, data string) error {
				if action == "rate_set" && entityID == "rate-1" {
					audited = true
				}
				return nil
			},
		},
	})

	body := `{"currency":"EUR","rate":"0.92"}`
	req := httptest.NewRequest(http.MethodPost, "/rates", strings.NewReader(body))
	rr := serveAuthed(t, handler.SetRate, req)
	if rr.Code != http.StatusCreated {
		t.Fatalf("expected 201, got %d: %s", rr.Code, rr.Body.String())
	}
	if !audited {
		t.Fatalf("expected rate change to be audited")
	}
}

func TestSetRateRejectsNonPositive(t *testing.T) {
	handler := newTestHandler(t, handlerDeps{})

	for _, rate := range []string{"0", "-1.5", "abc"} {
		body := `{"currency":"EUR","rate":"` + rate + `"}`
		req := httptest.NewRequest(http.MethodPost, "/rates", strings.NewReader(body))
		rr := serveAuthed(t, handler.SetRate, req)
		if rr.Code != http.StatusBadRequest {
			t.Fatalf("rate %q: expected 400, got %d", rate, rr.Code)
		}
	}
}

func TestGetActiveRateRequiresCurrency(t *testing.T) {
	handler := newTestHandler(t, handlerDeps{})

	req := httptest.NewRequest(http.MethodGet, "/rates/active", nil)
	rr := serveAuthed(t, handler.GetActiveRate, req)
	if rr.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d", rr.Code)
	}
}

func TestListAuditLogPagination(t *testing.T) {
	var gotLimit, gotOffset int
	handler := newTestHandler(t, handlerDeps{
		audit: stubAuditStore{
			listFn: func(ctx context.Context, actorID string, limit, offset int) ([]map[string]any, error) {
				gotLimit, gotOffset = limit, offset
				return nil, nil
			},
		},
	})

	req := httptest.NewRequest(http.MethodGet, "/audit?limit=10&offset=30", nil)
	rr := serveAuthed(t, handler.ListAuditLog, req)
	if rr.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rr.Code)
	}
	if gotLimit != 10 || gotOffset != 30 {
		t.Fatalf("unexpected pagination: limit=%d offset=%d", gotLimit, gotOffset)
	}
}
