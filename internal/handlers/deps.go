package handlers

import (
	"context"
	"time"

	"campusexpense/internal/store"
	"campusexpense/internal/summary"
)

type UserStore interface {
	Create(ctx context.Context, tx store.Execer, id, username, passwordHash string) error
	GetByUsername(ctx context.Context, username string) (map[string]any, error)
	GetByID(ctx context.Context, userID string) (map[string]any, error)
}

type CategoryStore interface {
	Create(ctx context.Context, tx store.Execer, id, userID, name string) error
	GetAllByUser(ctx context.Context, userID string) ([]store.Category, error)
	GetByID(ctx context.Context, categoryID, userID string) (store.Category, error)
	Rename(ctx context.Context, tx store.Execer, categoryID, userID, name string) (int64, error)
	Delete(ctx context.Context, tx store.Execer, categoryID, userID string) (int64, error)
}

type BudgetStore interface {
	Create(ctx context.Context, tx store.Execer, id, userID, categoryID string, amount int64, period string) error
	ListWithCategoryNames(ctx context.Context, userID string) ([]store.BudgetWithCategory, error)
	ExistsForCategory(ctx context.Context, userID, categoryID string) (bool, error)
	GetByID(ctx context.Context, budgetID, userID string) (store.Budget, error)
	Update(ctx context.Context, tx store.Execer, budgetID, userID string, amount int64, period string) (int64, error)
	Delete(ctx context.Context, tx store.Execer, budgetID, userID string) (int64, error)
}

type ExpenseStore interface {
	Create(ctx context.Context, tx store.Execer, id, userID, categoryID string, amount, spentAtMillis int64, note string) error
	ListByRange(ctx context.Context, userID string, startMillis, endMillis int64) ([]store.Expense, error)
}

type RateStore interface {
	GetActive(ctx context.Context, currency string) (map[string]any, error)
	SetRate(ctx context.Context, tx store.Tx, currency, rate, actorID string) (string, error)
}

type AuditStore interface {
	Log(ctx context.Context, tx store.Execer, actorID, action, entityType, entityID, data string) error
	ListByActor(ctx context.Context, actorID string, limit, offset int) ([]map[string]any, error)
}

type SummaryService interface {
	MonthSummary(ctx context.Context, userID string, month summary.Month) (summary.MonthSummary, error)
	Breakdown(ctx context.Context, userID string, month summary.Month) ([]summary.BreakdownItem, error)
	BreakdownAsync(ctx context.Context, userID string, month summary.Month) *summary.Task
	Location() *time.Location
}
