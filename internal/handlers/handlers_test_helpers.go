package handlers

import (
	"context"
	"testing"
	"time"

	"campusexpense/internal/config"
	"campusexpense/internal/store"
	"campusexpense/internal/summary"
	"campusexpense/internal/websocket"

	"github.com/jmoiron/sqlx"
)

type fakeTxRunner struct {
	withTxFn func(ctx context.Context, fn func(*sqlx.Tx) error) error
}

func (f fakeTxRunner) WithTx(ctx context.Context, fn func(*sqlx.Tx) error) error {
	if f.withTxFn != nil {
		return f.withTxFn(ctx, fn)
	}
	return fn(nil)
}

type stubUserStore struct {
	createFn        func(ctx context.Context, tx store.Execer, id, username, passwordHash string) error
	getByUsernameFn func(ctx context.Context, username string) (map[string]any, error)
	getByIDFn       func(ctx context.Context, userID string) (map[string]any, error)
}

func (s stubUserStore) Create(ctx context.Context, tx store.Execer, id, username, passwordHash string) error {
	if s.createFn == nil {
		return nil
	}
	return s.createFn(ctx, tx, id, username, passwordHash)
}

func (s stubUserStore) GetByUsername(ctx context.Context, username string) (map[string]any, error) {
	if s.getByUsernameFn == nil {
		return nil, nil
	}
	return s.getByUsernameFn(ctx, username)
}

func (s stubUserStore) GetByID(ctx context.Context, userID string) (map[string]any, error) {
	if s.getByIDFn == nil {
		return nil, nil
	}
	return s.getByIDFn(ctx, userID)
}

type stubCategoryStore struct {
	createFn    func(ctx context.Context, tx store.Execer, id, userID, name string) error
	getAllFn    func(ctx context.Context, userID string) ([]store.Category, error)
	getByIDFn   func(ctx context.Context, categoryID, userID string) (store.Category, error)
	renameFn    func(ctx context.Context, tx store.Execer, categoryID, userID, name string) (int64, error)
	deleteFn    func(ctx context.Context, tx store.Execer, categoryID, userID string) (int64, error)
}

func (s stubCategoryStore) Create(ctx context.Context, tx store.Execer, id, userID, name string) error {
	if s.createFn == nil {
		return nil
	}
	return s.createFn(ctx, tx, id, userID, name)
}

func (s stubCategoryStore) GetAllByUser(ctx context.Context, userID string) ([]store.Category, error) {
	if s.getAllFn == nil {
		return nil, nil
	}
	return s.getAllFn(ctx, userID)
}

func (s stubCategoryStore) GetByID(ctx context.Context, categoryID, userID string) (store.Category, error) {
	if s.getByIDFn == nil {
		return store.Category{ID: categoryID, UserID: userID}, nil
	}
	return s.getByIDFn(ctx, categoryID, userID)
}

func (s stubCategoryStore) Rename(ctx context.Context, tx store.Execer, categoryID, userID, name string) (int64, error) {
	if s.renameFn == nil {
		return 1, nil
	}
	return s.renameFn(ctx, tx, categoryID, userID, name)
}

func (s stubCategoryStore) Delete(ctx context.Context, tx store.Execer, categoryID, userID string) (int64, error) {
	if s.deleteFn == nil {
		return 1, nil
	}
	return s.deleteFn(ctx, tx, categoryID, userID)
}

type stubBudgetStore struct {
	createFn   func(ctx context.Context, tx store.Execer, id, userID, categoryID string, amount int64, period string) error
	listFn     func(ctx context.Context, userID string) ([]store.BudgetWithCategory, error)
	existsFn   func(ctx context.Context, userID, categoryID string) (bool, error)
	getByIDFn  func(ctx context.Context, budgetID, userID string) (store.Budget, error)
	updateFn   func(ctx context.Context, tx store.Execer, budgetID, userID string, amount int64, period string) (int64, error)
	deleteFn   func(ctx context.Context, tx store.Execer, budgetID, userID string) (int64, error)
}

func (s stubBudgetStore) Create(ctx context.Context, tx store.Execer, id, userID, categoryID string, amount int64, period string) error {
	if s.createFn == nil {
		return nil
	}
	return s.createFn(ctx, tx, id, userID, categoryID, amount, period)
}

func (s stubBudgetStore) ListWithCategoryNames(ctx context.Context, userID string) ([]store.BudgetWithCategory, error) {
	if s.listFn == nil {
		return nil, nil
	}
	return s.listFn(ctx, userID)
}

func (s stubBudgetStore) ExistsForCategory(ctx context.Context, userID, categoryID string) (bool, error) {
	if s.existsFn == nil {
		return false, nil
	}
	return s.existsFn(ctx, userID, categoryID)
}

func (s stubBudgetStore) GetByID(ctx context.Context, budgetID, userID string) (store.Budget, error) {
	if s.getByIDFn == nil {
		return store.Budget{}, nil
	}
	return s.getByIDFn(ctx, budgetID, userID)
}

func (s stubBudgetStore) Update(ctx context.Context, tx store.Execer, budgetID, userID string, amount int64, period string) (int64, error) {
	if s.updateFn == nil {
		return 1, nil
	}
	return s.updateFn(ctx, tx, budgetID, userID, amount, period)
}

func (s stubBudgetStore) Delete(ctx context.Context, tx store.Execer, budgetID, userID string) (int64, error) {
	if s.deleteFn == nil {
		return 1, nil
	}
	return s.deleteFn(ctx, tx, budgetID, userID)
}

type stubExpenseStore struct {
	createFn func(ctx context.Context, tx store.Execer, id, userID, categoryID string, amount, spentAtMillis int64, note string) error
	listFn   func(ctx context.Context, userID string, startMillis, endMillis int64) ([]store.Expense, error)
}

func (s stubExpenseStore) Create(ctx context.Context, tx store.Execer, id, userID, categoryID string, amount, spentAtMillis int64, note string) error {
	if s.createFn == nil {
		return nil
	}
	return s.createFn(ctx, tx, id, userID, categoryID, amount, spentAtMillis, note)
}

func (s stubExpenseStore) ListByRange(ctx context.Context, userID string, startMillis, endMillis int64) ([]store.Expense, error) {
	if s.listFn == nil {
		return nil, nil
	}
	return s.listFn(ctx, userID, startMillis, endMillis)
}

type stubRateStore struct {
	getActiveFn func(ctx context.Context, currency string) (map[string]any, error)
	setRateFn   func(ctx context.Context, tx store.Tx, currency, rate, actorID string) (string, error)
}

func (s stubRateStore) GetActive(ctx context.Context, currency string) (map[string]any, error) {
	if s.getActiveFn == nil {
		return nil, nil
	}
	return s.getActiveFn(ctx, currency)
}

func (s stubRateStore) SetRate(ctx context.Context, tx store.Tx, currency, rate, actorID string) (string, error) {
	if s.setRateFn == nil {
		return "rate-1", nil
	}
	return s.setRateFn(ctx, tx, currency, rate, actorID)
}

type stubAuditStore struct {
	logFn  func(ctx context.Context, tx store.Execer, actorID, action, entityType, entityID, data string) error
	listFn func(ctx context.Context, actorID string, limit, offset int) ([]map[string]any, error)
}

func (s stubAuditStore) Log(ctx context.Context, tx store.Execer, actorID, action, entityType, entityID, data string) error {
	if s.logFn == nil {
		return nil
	}
	return s.logFn(ctx, tx, actorID, action, entityType, entityID, data)
}

func (s stubAuditStore) ListByActor(ctx context.Context, actorID string, limit, offset int) ([]map[string]any, error) {
	if s.listFn == nil {
		return nil, nil
	}
	return s.listFn(ctx, actorID, limit, offset)
}

// summary service stubs; the handler tests drive a real summary.Service
// over these.
type summaryBudgets struct {
	rows  []store.Budget
	total int64
}

func (s summaryBudgets) GetAllByUser(ctx context.Context, userID string) ([]store.Budget, error) {
	return s.rows, nil
}

func (s summaryBudgets) TotalForUser(ctx context.Context, userID string) (int64, error) {
	return s.total, nil
}

type summaryCategories struct {
	rows []store.Category
}

func (s summaryCategories) GetAllByUser(ctx context.Context, userID string) ([]store.Category, error) {
	return s.rows, nil
}

type summaryExpenses struct {
	total      int64
	count      int
	byCategory map[string]int64
}

func (s summaryExpenses) TotalForRange(ctx context.Context, userID string, startMillis, endMillis int64) (int64, error) {
	return s.total, nil
}

func (s summaryExpenses) CountForRange(ctx context.Context, userID string, startMillis, endMillis int64) (int, error) {
	return s.count, nil
}

func (s summaryExpenses) TotalForCategoryAndRange(ctx context.Context, userID, categoryID string, startMillis, endMillis int64) (int64, error) {
	return s.byCategory[categoryID], nil
}

type handlerDeps struct {
	txRunner   fakeTxRunner
	users      stubUserStore
	categories stubCategoryStore
	budgets    stubBudgetStore
	expenses   stubExpenseStore
	rates      stubRateStore
	audit      stubAuditStore
	summary    *summary.Service
}

func newTestHandler(t *testing.T, deps handlerDeps) *Handler {
	t.Helper()
	cfg := config.Config{
		JWTSecret:      "test-secret",
		TokenTTL:       time.Minute,
		AllowedOrigins: "*",
	}
	svc := deps.summary
	if svc == nil {
		svc = summary.NewService(summaryBudgets{}, summaryCategories{}, summaryExpenses{}, time.UTC)
	}
	return New(deps.txRunner, cfg, deps.users, deps.categories, deps.budgets, deps.expenses, deps.rates, deps.audit, svc, websocket.NewHub())
}

func newSummaryService(budgets summaryBudgets, categories summaryCategories, expenses summaryExpenses) *summary.Service {
	return summary.NewService(budgets, categories, expenses, time.UTC)
}
